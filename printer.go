package bmpraster

import (
	"errors"
	"fmt"

	"github.com/flavioheleno/bmpraster/image1bit"
	"periph.io/x/conn/v3"
	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/physic"
	"periph.io/x/conn/v3/spi"
)

// RasterMode selects the scaling applied by GS v 0.
type RasterMode byte

const (
	ModeNormal       RasterMode = 0x00
	ModeDoubleWidth  RasterMode = 0x01
	ModeDoubleHeight RasterMode = 0x02
	ModeQuadruple    RasterMode = 0x03
)

// Opts is the configuration for an ESC/POS raster printer.
type Opts struct {
	MaxWidth   int        // Printable width in dots (default: 576, must be a multiple of 8)
	BandHeight int        // Rows sent per GS v 0 command (default: 24, max 65535)
	Mode       RasterMode // Raster scaling mode (default: ModeNormal)
	FeedLines  int        // Lines fed after each image (default: 0, max 255)

	// Optional busy input; printing is refused while it reads High.
	Busy gpio.PinIn
}

// Printer sends packed raster images to an ESC/POS printer.
type Printer struct {
	c    conn.Conn
	busy gpio.PinIn

	maxWidth   int
	bandHeight int
	mode       RasterMode
	feedLines  int

	halted bool
}

// New creates a printer on an existing connection and sends ESC @ to reset it.
//
// opts can be nil to use defaults (576 dots wide, 24-row bands).
func New(c conn.Conn, opts *Opts) (*Printer, error) {
	if opts == nil {
		opts = &Opts{}
	}
	o := *opts
	if o.MaxWidth == 0 {
		o.MaxWidth = 576
	}
	if o.BandHeight == 0 {
		o.BandHeight = 24
	}

	if o.MaxWidth < 0 || o.MaxWidth%8 != 0 {
		return nil, errors.New("bmpraster: max width must be a positive multiple of 8")
	}
	if o.BandHeight < 0 || o.BandHeight > 0xFFFF {
		return nil, errors.New("bmpraster: band height must be between 1 and 65535")
	}
	if o.FeedLines < 0 || o.FeedLines > 0xFF {
		return nil, errors.New("bmpraster: feed lines must be between 0 and 255")
	}
	if o.Mode > ModeQuadruple {
		return nil, fmt.Errorf("bmpraster: invalid raster mode %d", o.Mode)
	}

	p := &Printer{
		c:          c,
		busy:       o.Busy,
		maxWidth:   o.MaxWidth,
		bandHeight: o.BandHeight,
		mode:       o.Mode,
		feedLines:  o.FeedLines,
	}
	if err := p.Init(); err != nil {
		return nil, err
	}
	return p, nil
}

// NewSPI creates a printer connected via SPI at 1MHz, Mode0, 8-bit transfers.
func NewSPI(port spi.Port, opts *Opts) (*Printer, error) {
	c, err := port.Connect(physic.MegaHertz, spi.Mode0, 8)
	if err != nil {
		return nil, fmt.Errorf("bmpraster: failed to connect: %w", err)
	}
	return New(c, opts)
}

// Init sends ESC @, clearing the print buffer and restoring default settings.
func (p *Printer) Init() error {
	if p.halted {
		return errHalted
	}
	return p.send([]byte{0x1B, 0x40})
}

// PrintImage encodes m as a packed raster and prints it.
func (p *Printer) PrintImage(m *image1bit.ByteMap) error {
	data, err := EncodeRaster(m)
	if err != nil {
		return err
	}
	return p.PrintRaster(m.Rect.Dx(), m.Rect.Dy(), data)
}

// PrintRaster prints packed raster data of the given size in dots.
// The data must be exactly width/8*height bytes.
func (p *Printer) PrintRaster(width, height int, data []byte) error {
	if p.halted {
		return errHalted
	}
	if width%8 != 0 {
		return fmt.Errorf("%w: got %d", ErrUnsupportedWidth, width)
	}
	if width <= 0 || height <= 0 {
		return fmt.Errorf("%w: %dx%d", ErrInvalidDimensions, width, height)
	}
	if width > p.maxWidth {
		return fmt.Errorf("bmpraster: width %d exceeds printable width %d", width, p.maxWidth)
	}
	rowBytes := width / 8
	if len(data) != rowBytes*height {
		return errors.New("bmpraster: invalid raster size")
	}
	if p.busy != nil && p.busy.Read() == gpio.High {
		return ErrPrinterBusy
	}

	for y := 0; y < height; y += p.bandHeight {
		rows := min(p.bandHeight, height-y)
		band := data[y*rowBytes : (y+rows)*rowBytes]
		if err := p.send(rasterCommand(p.mode, rowBytes, rows, band)); err != nil {
			return fmt.Errorf("bmpraster: failed to send band at row %d: %w", y, err)
		}
	}
	if p.feedLines > 0 {
		return p.Feed(byte(p.feedLines))
	}
	return nil
}

// rasterCommand builds GS v 0 m xL xH yL yH followed by the band data.
func rasterCommand(mode RasterMode, rowBytes, rows int, band []byte) []byte {
	cmd := make([]byte, 0, 8+len(band))
	cmd = append(cmd,
		0x1D, 0x76, 0x30, byte(mode),
		byte(rowBytes), byte(rowBytes>>8), // Bytes per row
		byte(rows), byte(rows>>8), // Rows in band
	)
	return append(cmd, band...)
}

// Feed prints the buffer and feeds n lines (ESC d n).
func (p *Printer) Feed(n byte) error {
	if p.halted {
		return errHalted
	}
	return p.send([]byte{0x1B, 0x64, n})
}

// Cut feeds to the cutter and performs a partial cut (GS V B 0).
func (p *Printer) Cut() error {
	if p.halted {
		return errHalted
	}
	return p.send([]byte{0x1D, 0x56, 0x42, 0x00})
}

// Halt stops the printer from accepting further commands.
func (p *Printer) Halt() error {
	p.halted = true
	return nil
}

// String returns a string representation of the printer.
func (p *Printer) String() string {
	return fmt.Sprintf("bmpraster.Printer{%d dots, %s}", p.maxWidth, p.c)
}

func (p *Printer) send(b []byte) error {
	return p.c.Tx(b, nil)
}
