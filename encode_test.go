package bmpraster

import (
	"bytes"
	"errors"
	"image"
	"io"
	"testing"

	"github.com/flavioheleno/bmpraster/image1bit"
)

func TestEncodeRasterScenario(t *testing.T) {
	_, m, err := Decode(bytes.NewReader(buildBMP(t, scenario())))
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}

	got, err := EncodeRaster(m)
	if err != nil {
		t.Fatalf("EncodeRaster: %v", err)
	}
	want := []byte{0xFF, 0xFF, 0xAA, 0xAA}
	if !bytes.Equal(got, want) {
		t.Errorf("EncodeRaster = % X, want % X", got, want)
	}
}

func TestEncodeRasterBitOrder(t *testing.T) {
	tests := []struct {
		name string
		px   []byte
		want byte
	}{
		{"first pixel is MSB", []byte{0xFF, 0, 0, 0, 0, 0, 0, 0}, 0x80},
		{"last pixel is LSB", []byte{0, 0, 0, 0, 0, 0, 0, 0xFF}, 0x01},
		{"non-zero counts as set", []byte{1, 0, 2, 0, 0x10, 0, 0x80, 0}, 0xAA},
		{"all clear", make([]byte, 8), 0x00},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := &image1bit.ByteMap{Pix: tt.px, Stride: 8, Rect: image.Rect(0, 0, 8, 1)}
			got, err := EncodeRaster(m)
			if err != nil {
				t.Fatalf("EncodeRaster: %v", err)
			}
			if len(got) != 1 || got[0] != tt.want {
				t.Errorf("EncodeRaster = % X, want %02X", got, tt.want)
			}
		})
	}
}

func TestEncodeRasterUnsupportedWidth(t *testing.T) {
	for _, w := range []int{1, 7, 9, 15, 17, 100} {
		m := image1bit.NewByteMap(image.Rect(0, 0, w, 2))
		if _, err := EncodeRaster(m); !errors.Is(err, ErrUnsupportedWidth) {
			t.Errorf("width %d: EncodeRaster error = %v, want ErrUnsupportedWidth", w, err)
		}

		var buf bytes.Buffer
		if err := WriteRaster(&buf, m); !errors.Is(err, ErrUnsupportedWidth) {
			t.Errorf("width %d: WriteRaster error = %v, want ErrUnsupportedWidth", w, err)
		}
		if buf.Len() != 0 {
			t.Errorf("width %d: WriteRaster wrote %d bytes, want 0", w, buf.Len())
		}
	}
}

func TestEncodeRasterRoundTrip(t *testing.T) {
	rows := []string{
		"0000000011111111",
		"1100110011001100",
		"0101010100000001",
	}
	_, m, err := Decode(bytes.NewReader(buildBMP(t, mono(16, 3, rows...))))
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	packed, err := EncodeRaster(m)
	if err != nil {
		t.Fatalf("EncodeRaster: %v", err)
	}
	if len(packed) != 16/8*3 {
		t.Fatalf("len = %d, want 6", len(packed))
	}

	got := unpackRows(packed, 16)
	var want []byte
	for r := len(rows) - 1; r >= 0; r-- {
		for _, c := range rows[r] {
			want = append(want, byte(c-'0'))
		}
	}
	if !bytes.Equal(got, want) {
		t.Errorf("unpacked raster = %v, want %v", got, want)
	}
}

func TestEncodePlain(t *testing.T) {
	m := image1bit.NewByteMap(image.Rect(0, 0, 3, 2))
	m.SetBit(0, 0, image1bit.On)
	m.SetBit(2, 1, image1bit.On)

	got := EncodePlain(m)
	want := []byte{0xFF, 0x00, 0x00, 0x00, 0x00, 0xFF}
	if !bytes.Equal(got, want) {
		t.Errorf("EncodePlain = % X, want % X", got, want)
	}

	// The result must not alias the image.
	got[0] = 0
	if m.Pix[0] != image1bit.Set {
		t.Error("EncodePlain output aliases the pixel buffer")
	}
}

func TestEncodeEmpty(t *testing.T) {
	m := image1bit.NewByteMap(image.Rect(0, 0, 8, 0))
	if got := EncodePlain(m); len(got) != 0 {
		t.Errorf("EncodePlain = % X, want empty", got)
	}
	got, err := EncodeRaster(m)
	if err != nil || len(got) != 0 {
		t.Errorf("EncodeRaster = % X, %v, want empty, nil", got, err)
	}
}

func TestWriteErrors(t *testing.T) {
	m := image1bit.NewByteMap(image.Rect(0, 0, 8, 2))
	boom := errors.New("disk full")

	tests := []struct {
		name  string
		write func(io.Writer) error
	}{
		{"plain", func(w io.Writer) error { return WritePlain(w, m) }},
		{"raster", func(w io.Writer) error { return WriteRaster(w, m) }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.write(failWriter{boom})
			if !errors.Is(err, ErrWrite) || !errors.Is(err, boom) {
				t.Errorf("error = %v, want ErrWrite wrapping the cause", err)
			}
			err = tt.write(shortWriter{})
			if !errors.Is(err, ErrWrite) || !errors.Is(err, io.ErrShortWrite) {
				t.Errorf("error = %v, want ErrWrite wrapping io.ErrShortWrite", err)
			}
		})
	}
}
