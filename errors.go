package bmpraster

import "errors"

var (
	// Decode path.
	ErrInvalidSignature       = errors.New("bmpraster: invalid signature")
	ErrTruncatedHeader        = errors.New("bmpraster: truncated header")
	ErrTruncatedPixelData     = errors.New("bmpraster: truncated pixel data")
	ErrUnsupportedBitDepth    = errors.New("bmpraster: unsupported bit depth")
	ErrUnsupportedCompression = errors.New("bmpraster: unsupported compression")
	ErrInvalidDimensions      = errors.New("bmpraster: invalid dimensions")
	ErrRead                   = errors.New("bmpraster: read error")

	// Encode path.
	ErrUnsupportedWidth = errors.New("bmpraster: width must be a multiple of 8")
	ErrWrite            = errors.New("bmpraster: write error")

	// State.
	ErrNoImageLoaded = errors.New("bmpraster: no image loaded")
	ErrPrinterBusy   = errors.New("bmpraster: printer busy")
	errHalted        = errors.New("bmpraster: halted")
)

// WarningKind classifies recognized but unsupported input reported to an Observer.
type WarningKind int

const (
	WarnBitDepth WarningKind = iota + 1
	WarnCompression
	WarnDimensions
	WarnWidth
)

func (k WarningKind) String() string {
	switch k {
	case WarnBitDepth:
		return "bit depth"
	case WarnCompression:
		return "compression"
	case WarnDimensions:
		return "dimensions"
	case WarnWidth:
		return "width"
	default:
		return "unknown"
	}
}

// warningKind maps a capability error to the warning reported for it.
func warningKind(err error) (WarningKind, bool) {
	switch {
	case errors.Is(err, ErrUnsupportedBitDepth):
		return WarnBitDepth, true
	case errors.Is(err, ErrUnsupportedCompression):
		return WarnCompression, true
	case errors.Is(err, ErrInvalidDimensions):
		return WarnDimensions, true
	case errors.Is(err, ErrUnsupportedWidth):
		return WarnWidth, true
	}
	return 0, false
}
