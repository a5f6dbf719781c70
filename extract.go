package bmpraster

import (
	"fmt"
	"image"
	"io"

	"github.com/flavioheleno/bmpraster/image1bit"
)

// ReadPixelData reads the pixel array described by h from r, which must be
// positioned right after the fixed headers consumed by ParseHeader.
//
// The color table, and any gap up to h.PixelOffset, is skipped. Exactly
// h.ImageDataLength bytes are returned.
func ReadPixelData(r io.Reader, h Header) ([]byte, error) {
	if err := h.Check(); err != nil {
		return nil, err
	}

	skip := int64(h.paletteLen())
	switch {
	case h.PixelOffset >= headerLen:
		skip = int64(h.PixelOffset) - headerLen
	case h.PixelOffset != 0:
		return nil, fmt.Errorf("%w: pixel offset %d inside header", ErrTruncatedHeader, h.PixelOffset)
	}
	if _, err := io.CopyN(io.Discard, r, skip); err != nil {
		return nil, readErr(ErrTruncatedHeader, "color table", err)
	}

	// Grow with the input rather than trusting the header for the allocation size.
	data, err := io.ReadAll(io.LimitReader(r, int64(h.ImageDataLength)))
	if err != nil {
		return nil, readErr(ErrTruncatedPixelData, "pixel data", err)
	}
	if uint64(len(data)) < h.ImageDataLength {
		return nil, fmt.Errorf("%w: have %d bytes, want %d", ErrTruncatedPixelData, len(data), h.ImageDataLength)
	}
	return data, nil
}

// Extract unpacks 1 bpp DIB pixel data into a ByteMap with row 0 at the top.
//
// Source rows are padded to 32 bits and packed MSB first. Bottom-up storage
// (the default) is reversed so the result is always top-down. A set bit
// becomes image1bit.Set, a clear bit image1bit.Clear.
func Extract(h Header, raw []byte) (*image1bit.ByteMap, error) {
	if err := h.Check(); err != nil {
		return nil, err
	}
	if uint64(len(raw)) < h.ImageDataLength {
		return nil, fmt.Errorf("%w: have %d bytes, want %d", ErrTruncatedPixelData, len(raw), h.ImageDataLength)
	}

	width, height := int(h.Width), int(h.Height)
	stride := h.RowBytes()
	m := image1bit.NewByteMap(image.Rect(0, 0, width, height))

	for r := 0; r < height; r++ {
		src := raw[r*stride : (r+1)*stride]
		y := height - 1 - r
		if h.TopDown {
			y = r
		}
		dst := m.Row(y)
		for x := range dst {
			if src[x>>3]&(0x80>>uint(x&7)) != 0 {
				dst[x] = image1bit.Set
			}
		}
	}
	return m, nil
}

// Decode parses a monochrome bitmap from r.
//
// When the header parses but describes an image that cannot be extracted,
// the header is returned together with the capability error.
func Decode(r io.Reader) (Header, *image1bit.ByteMap, error) {
	h, err := ParseHeader(r)
	if err != nil {
		return Header{}, nil, err
	}
	if err := h.Check(); err != nil {
		return h, nil, err
	}
	raw, err := ReadPixelData(r, h)
	if err != nil {
		return h, nil, err
	}
	m, err := Extract(h, raw)
	if err != nil {
		return h, nil, err
	}
	return h, m, nil
}
