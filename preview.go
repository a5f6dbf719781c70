package bmpraster

import (
	"fmt"
	"image"
	"io"

	"github.com/disintegration/gift"
	"golang.org/x/image/bmp"

	"github.com/flavioheleno/bmpraster/image1bit"
)

// EncodePreview writes m to w as an 8-bit grayscale BMP, enlarged by scale
// with nearest-neighbor sampling so single pixels stay sharp. A scale below 1
// is treated as 1.
func EncodePreview(w io.Writer, m *image1bit.ByteMap, scale int) error {
	if m.Rect.Empty() {
		return fmt.Errorf("%w: empty image", ErrInvalidDimensions)
	}
	scale = max(scale, 1)

	g := gift.New(gift.Resize(m.Rect.Dx()*scale, m.Rect.Dy()*scale, gift.NearestNeighborResampling))
	dst := image.NewGray(g.Bounds(m.Rect))
	g.Draw(dst, m.Gray())

	if err := bmp.Encode(w, dst); err != nil {
		return fmt.Errorf("%w: %w", ErrWrite, err)
	}
	return nil
}
