package bmpraster

import (
	"fmt"
	"io"

	"github.com/flavioheleno/bmpraster/image1bit"
)

// EncodePlain returns the image as one byte per pixel, top row first.
func EncodePlain(m *image1bit.ByteMap) []byte {
	w, h := m.Rect.Dx(), m.Rect.Dy()
	if w <= 0 || h <= 0 {
		return []byte{}
	}
	out := make([]byte, 0, w*h)
	for y := 0; y < h; y++ {
		out = append(out, m.Row(y)...)
	}
	return out
}

// EncodeRaster packs the image 8 pixels per byte, MSB first, top row first,
// with no row padding. The width must be a multiple of 8.
func EncodeRaster(m *image1bit.ByteMap) ([]byte, error) {
	w, h := m.Rect.Dx(), m.Rect.Dy()
	if w%8 != 0 {
		return nil, fmt.Errorf("%w: got %d", ErrUnsupportedWidth, w)
	}
	if w <= 0 || h <= 0 {
		return []byte{}, nil
	}

	out := make([]byte, 0, w/8*h)
	for y := 0; y < h; y++ {
		row := m.Row(y)
		for x := 0; x < w; x += 8 {
			out = append(out, pack8(row[x:x+8]))
		}
	}
	return out, nil
}

// pack8 folds 8 pixel bytes into one byte. The first pixel lands in bit 7.
func pack8(px []byte) byte {
	var b byte
	for _, v := range px[:8] {
		b <<= 1
		if v != image1bit.Clear {
			b |= 1
		}
	}
	return b
}

// WritePlain writes EncodePlain(m) to w.
func WritePlain(w io.Writer, m *image1bit.ByteMap) error {
	return writeAll(w, EncodePlain(m))
}

// WriteRaster writes EncodeRaster(m) to w. Nothing is written when the width
// is not a multiple of 8.
func WriteRaster(w io.Writer, m *image1bit.ByteMap) error {
	data, err := EncodeRaster(m)
	if err != nil {
		return err
	}
	return writeAll(w, data)
}

func writeAll(w io.Writer, data []byte) error {
	n, err := w.Write(data)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrWrite, err)
	}
	if n != len(data) {
		return fmt.Errorf("%w: %w", ErrWrite, io.ErrShortWrite)
	}
	return nil
}
