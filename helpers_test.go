package bmpraster

import (
	"bytes"
	"encoding/binary"
	"testing"
)

// bmpSpec describes a synthetic bitmap. rows are given in stored order
// (bottom row first unless height is negative) as strings of '0' and '1'.
type bmpSpec struct {
	width, height int32
	bpp           uint16
	compression   uint32
	rows          []string
	gap           int // Extra bytes between the color table and the pixel array
}

func mono(width, height int32, rows ...string) bmpSpec {
	return bmpSpec{width: width, height: height, bpp: 1, rows: rows}
}

func buildBMP(t testing.TB, s bmpSpec) []byte {
	t.Helper()

	absHeight := int(s.height)
	if absHeight < 0 {
		absHeight = -absHeight
	}
	rowBytes := (int(s.width)*int(s.bpp) + 31) / 32 * 4
	pix := make([]byte, rowBytes*absHeight)
	for r, bits := range s.rows {
		for x, c := range bits {
			if c == '1' {
				pix[r*rowBytes+x/8] |= 0x80 >> (x % 8)
			}
		}
	}
	palette := []byte{
		0x00, 0x00, 0x00, 0x00, // Black
		0xFF, 0xFF, 0xFF, 0x00, // White
	}

	offset := headerLen + len(palette) + s.gap
	fh := fileHeader{
		Type:    signature,
		Size:    uint32(offset + len(pix)),
		OffBits: uint32(offset),
	}
	ih := infoHeader{
		Size:        infoHeaderLen,
		Width:       s.width,
		Height:      s.height,
		Planes:      1,
		BitCount:    s.bpp,
		Compression: s.compression,
		SizeImage:   uint32(len(pix)),
		XPixelsPerM: 2835,
		YPixelsPerM: 2835,
		ColorsUsed:  2,
	}

	var buf bytes.Buffer
	if err := binary.Write(&buf, binary.LittleEndian, fh); err != nil {
		t.Fatalf("write file header: %v", err)
	}
	if err := binary.Write(&buf, binary.LittleEndian, ih); err != nil {
		t.Fatalf("write info header: %v", err)
	}
	buf.Write(palette)
	buf.Write(make([]byte, s.gap))
	buf.Write(pix)
	return buf.Bytes()
}

// scenario is the 16x2 bitmap: stored row 0 (bottom) alternates starting
// with 1, stored row 1 (top) is all ones.
func scenario() bmpSpec {
	return mono(16, 2,
		"1010101010101010",
		"1111111111111111",
	)
}

// unpackRows expands packed MSB-first rows of width/8 bytes into 0/1 bits.
func unpackRows(data []byte, width int) []byte {
	bits := make([]byte, 0, len(data)*8)
	for _, b := range data {
		for i := 7; i >= 0; i-- {
			bits = append(bits, (b>>i)&1)
		}
	}
	return bits[:len(data)*8/width*width]
}

// failWriter fails every write.
type failWriter struct{ err error }

func (w failWriter) Write(p []byte) (int, error) { return 0, w.err }

// shortWriter accepts fewer bytes than requested without an error.
type shortWriter struct{}

func (shortWriter) Write(p []byte) (int, error) { return len(p) / 2, nil }
