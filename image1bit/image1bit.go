// Package image1bit provides an unpacked 1-bit image format: one byte per pixel.
//
// Each pixel is either Set (0xFF) or Clear (0x00). Pixels are stored row-major,
// top row first, with no padding between rows.
package image1bit

import (
	"image"
	"image/color"
)

// Pixel byte values stored in ByteMap.Pix.
const (
	Clear byte = 0x00
	Set   byte = 0xFF
)

// Bit represents a binary pixel. On is white (Set), Off is black (Clear).
type Bit bool

const (
	On  = Bit(true)
	Off = Bit(false)
)

// RGBA converts the Bit to standard RGBA.
func (b Bit) RGBA() (r, g, bl, a uint32) {
	if b {
		return 0xFFFF, 0xFFFF, 0xFFFF, 0xFFFF
	}
	return 0, 0, 0, 0xFFFF
}

func (b Bit) String() string {
	if b {
		return "On"
	}
	return "Off"
}

// toBit converts any color.Color to Bit, thresholding at mid-gray.
func toBit(c color.Color) color.Color {
	if b, ok := c.(Bit); ok {
		return b
	}
	r, g, bl, a := c.RGBA()
	if a == 0 {
		return Off
	}
	// Standard grayscale conversion: 0.299R + 0.587G + 0.114B
	y := (299*r + 587*g + 114*bl + 500) / 1000
	return Bit(y >= 0x8000)
}

// BitModel converts colors to Bit.
var BitModel = color.ModelFunc(toBit)

// ByteMap is a 1-bit image where every pixel occupies a whole byte.
type ByteMap struct {
	Pix    []byte          // Pixel data (1 byte per pixel, Set or Clear)
	Stride int             // Bytes per row
	Rect   image.Rectangle // Image bounds
}

// NewByteMap creates a new ByteMap with the specified bounds. All pixels start Clear.
func NewByteMap(r image.Rectangle) *ByteMap {
	w, h := r.Dx(), r.Dy()
	if w <= 0 || h <= 0 {
		return &ByteMap{Rect: r}
	}
	return &ByteMap{
		Pix:    make([]byte, w*h),
		Stride: w,
		Rect:   r,
	}
}

// ColorModel returns the color model of the image.
func (p *ByteMap) ColorModel() color.Model {
	return BitModel
}

// Bounds returns the image bounds.
func (p *ByteMap) Bounds() image.Rectangle {
	return p.Rect
}

// At returns the color of the pixel at (x, y).
// It implements the image.Image interface.
func (p *ByteMap) At(x, y int) color.Color {
	return p.BitAt(x, y)
}

// BitAt returns the Bit of the pixel at (x, y). Any non-zero byte reads as On.
func (p *ByteMap) BitAt(x, y int) Bit {
	if !(image.Point{X: x, Y: y}.In(p.Rect)) {
		return Off
	}
	return p.Pix[p.pixOffset(x, y)] != Clear
}

// Set sets the color of the pixel at (x, y).
func (p *ByteMap) Set(x, y int, c color.Color) {
	p.SetBit(x, y, BitModel.Convert(c).(Bit))
}

// SetBit sets the Bit of the pixel at (x, y).
// This is faster than Set() as it doesn't require color conversion.
func (p *ByteMap) SetBit(x, y int, b Bit) {
	if !(image.Point{X: x, Y: y}.In(p.Rect)) {
		return
	}
	v := Clear
	if b {
		v = Set
	}
	p.Pix[p.pixOffset(x, y)] = v
}

// Opaque reports whether the image is fully opaque. It always is.
func (p *ByteMap) Opaque() bool {
	return true
}

// Row returns the pixel bytes of row y, counted from the top of the image.
// The returned slice aliases Pix.
func (p *ByteMap) Row(y int) []byte {
	off := y * p.Stride
	return p.Pix[off : off+p.Rect.Dx()]
}

// Clone returns a deep copy of the image.
func (p *ByteMap) Clone() *ByteMap {
	c := &ByteMap{Stride: p.Stride, Rect: p.Rect}
	if p.Pix != nil {
		c.Pix = make([]byte, len(p.Pix))
		copy(c.Pix, p.Pix)
	}
	return c
}

// FlipVertical reverses the row order in place: row i swaps with row h-1-i.
// Images with one row or less are left untouched. Applying it twice restores
// the original image.
func (p *ByteMap) FlipVertical() {
	w, h := p.Rect.Dx(), p.Rect.Dy()
	if h <= 1 || w <= 0 {
		return
	}
	tmp := make([]byte, w)
	for a, b := 0, h-1; a < b; a, b = a+1, b-1 {
		rowA := p.Row(a)
		rowB := p.Row(b)
		copy(tmp, rowA)
		copy(rowA, rowB)
		copy(rowB, tmp)
	}
}

// Gray returns a copy of the image as *image.Gray. Set pixels become white.
func (p *ByteMap) Gray() *image.Gray {
	g := image.NewGray(p.Rect)
	for y := 0; y < p.Rect.Dy(); y++ {
		src := p.Row(y)
		dst := g.Pix[y*g.Stride : y*g.Stride+len(src)]
		for x, v := range src {
			if v != Clear {
				dst[x] = 0xFF
			}
		}
	}
	return g
}

// pixOffset returns the byte offset of the pixel at (x, y).
func (p *ByteMap) pixOffset(x, y int) int {
	return (y-p.Rect.Min.Y)*p.Stride + (x - p.Rect.Min.X)
}
