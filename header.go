package bmpraster

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
)

const (
	fileHeaderLen = 14
	infoHeaderLen = 40
	headerLen     = fileHeaderLen + infoHeaderLen
	paletteEntry  = 4 // BGR + reserved
)

var signature = [2]byte{'B', 'M'}

// fileHeader mirrors BITMAPFILEHEADER.
// https://learn.microsoft.com/en-us/windows/win32/api/wingdi/ns-wingdi-bitmapfileheader
type fileHeader struct {
	Type      [2]byte // "BM"
	Size      uint32  // Size of the whole file in bytes
	Reserved1 uint16
	Reserved2 uint16
	OffBits   uint32 // Offset of the pixel array from the start of the file
}

// infoHeader mirrors BITMAPINFOHEADER.
type infoHeader struct {
	Size            uint32
	Width           int32
	Height          int32 // Negative for top-down pixel storage
	Planes          uint16
	BitCount        uint16
	Compression     uint32
	SizeImage       uint32
	XPixelsPerM     int32
	YPixelsPerM     int32
	ColorsUsed      uint32
	ColorsImportant uint32
}

// Header describes a parsed bitmap container.
type Header struct {
	Width             int32
	Height            int32 // Row count, always positive for valid input
	TopDown           bool  // Rows are stored top row first
	BitsPerPixel      uint16
	ColorCount        uint32 // Palette entries in use (diagnostic only)
	Compression       uint32 // 0 means uncompressed
	PaddingBitsPerRow uint   // Bits appended to each row to reach a 32-bit boundary
	ImageDataLength   uint64 // Byte length of the pixel array

	// Raw container fields, kept for diagnostics.
	FileSize        uint32
	PixelOffset     uint32
	InfoSize        uint32
	Planes          uint16
	SizeImage       uint32
	XPixelsPerMeter int32
	YPixelsPerMeter int32
}

// ParseHeader reads the fixed file and info headers from r.
//
// The two signature bytes are checked before any other field is read. Bit
// depth and compression are not validated here; see Header.Check.
func ParseHeader(r io.Reader) (Header, error) {
	var b [headerLen]byte

	if _, err := io.ReadFull(r, b[:len(signature)]); err != nil {
		return Header{}, readErr(ErrTruncatedHeader, "signature", err)
	}
	if b[0] != signature[0] || b[1] != signature[1] {
		return Header{}, fmt.Errorf("%w: got %q", ErrInvalidSignature, b[:2])
	}
	if _, err := io.ReadFull(r, b[len(signature):]); err != nil {
		return Header{}, readErr(ErrTruncatedHeader, "header", err)
	}

	var (
		fh fileHeader
		ih infoHeader
	)
	br := bytes.NewReader(b[:])
	if err := binary.Read(br, binary.LittleEndian, &fh); err != nil {
		return Header{}, fmt.Errorf("%w: %v", ErrTruncatedHeader, err)
	}
	if err := binary.Read(br, binary.LittleEndian, &ih); err != nil {
		return Header{}, fmt.Errorf("%w: %v", ErrTruncatedHeader, err)
	}
	return newHeader(fh, ih), nil
}

func newHeader(fh fileHeader, ih infoHeader) Header {
	h := Header{
		Width:           ih.Width,
		Height:          ih.Height,
		BitsPerPixel:    ih.BitCount,
		ColorCount:      ih.ColorsUsed,
		Compression:     ih.Compression,
		FileSize:        fh.Size,
		PixelOffset:     fh.OffBits,
		InfoSize:        ih.Size,
		Planes:          ih.Planes,
		SizeImage:       ih.SizeImage,
		XPixelsPerMeter: ih.XPixelsPerM,
		YPixelsPerMeter: ih.YPixelsPerM,
	}
	if h.Height < 0 {
		h.Height = -h.Height
		h.TopDown = true
	}

	dataBits := uint64(max(h.Width, 0)) * uint64(h.BitsPerPixel)
	rowBits := (dataBits + 31) / 32 * 32
	h.PaddingBitsPerRow = uint(rowBits - dataBits)
	h.ImageDataLength = rowBits / 8 * uint64(max(h.Height, 0))
	return h
}

// Check reports whether the pixel array described by h can be extracted.
func (h Header) Check() error {
	switch {
	case h.BitsPerPixel != 1:
		return fmt.Errorf("%w: %d bpp, want 1", ErrUnsupportedBitDepth, h.BitsPerPixel)
	case h.Compression != 0:
		return fmt.Errorf("%w: method %d", ErrUnsupportedCompression, h.Compression)
	case h.Width <= 0 || h.Height <= 0:
		return fmt.Errorf("%w: %dx%d", ErrInvalidDimensions, h.Width, h.Height)
	}
	return nil
}

// RowBytes returns the size of one stored row, padding included.
func (h Header) RowBytes() int {
	return (int(h.Width)*int(h.BitsPerPixel) + 31) / 32 * 4
}

// PixelCount returns Width*Height.
func (h Header) PixelCount() int {
	return int(h.Width) * int(h.Height)
}

// paletteLen returns the byte length of the color table following the headers.
func (h Header) paletteLen() int {
	if h.BitsPerPixel > 8 {
		return 0
	}
	n := uint32(1) << h.BitsPerPixel
	if h.ColorCount != 0 && h.ColorCount < n {
		n = h.ColorCount
	}
	return int(n) * paletteEntry
}

func (h Header) String() string {
	return fmt.Sprintf("bmpraster.Header{%dx%d, %d bpp, compression %d, %d colors, %d padding bits}",
		h.Width, h.Height, h.BitsPerPixel, h.Compression, h.ColorCount, h.PaddingBitsPerRow)
}

// readErr classifies an error returned by io.ReadFull. Running out of input
// is reported as short, anything else as ErrRead.
func readErr(short error, what string, err error) error {
	if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
		return fmt.Errorf("%w: %s", short, what)
	}
	return fmt.Errorf("%w: %s: %w", ErrRead, what, err)
}
