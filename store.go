package bmpraster

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/flavioheleno/bmpraster/image1bit"
)

// Observer is notified about store changes so a view can refresh.
// Calls are made after the store lock is released and must not block.
type Observer interface {
	// StateChanged is called after a successful load (h non-nil) or a clear (h nil).
	StateChanged(h *Header)
	// FormatWarning is called for recognized but unsupported input. h is the
	// header of the image concerned.
	FormatWarning(kind WarningKind, h Header, err error)
}

// ObserverFuncs adapts plain functions to Observer. Nil fields are skipped.
type ObserverFuncs struct {
	OnStateChanged  func(h *Header)
	OnFormatWarning func(kind WarningKind, h Header, err error)
}

func (o ObserverFuncs) StateChanged(h *Header) {
	if o.OnStateChanged != nil {
		o.OnStateChanged(h)
	}
}

func (o ObserverFuncs) FormatWarning(kind WarningKind, h Header, err error) {
	if o.OnFormatWarning != nil {
		o.OnFormatWarning(kind, h, err)
	}
}

// StoreOpts is the configuration for a Store.
type StoreOpts struct {
	Observer Observer // Optional
}

// Store holds at most one decoded image: its header and pixel buffer.
//
// A Store is safe for use by multiple goroutines, but is intended for a
// single control thread issuing one operation at a time.
type Store struct {
	mu  sync.Mutex
	obs Observer

	header *Header
	img    *image1bit.ByteMap
}

// NewStore returns an empty Store. opts can be nil.
func NewStore(opts *StoreOpts) *Store {
	s := &Store{}
	if opts != nil {
		s.obs = opts.Observer
	}
	return s
}

// Load decodes a monochrome bitmap from r and replaces the current image.
//
// The new header and pixel buffer are built completely before the swap, so a
// failed load leaves the store as it was. When the header parses but the
// image cannot be extracted, the header is returned with the error and a
// format warning is reported.
func (s *Store) Load(r io.Reader) (Header, error) {
	h, m, err := Decode(r)
	if err != nil {
		if kind, ok := warningKind(err); ok {
			s.warn(kind, h, err)
		}
		return h, err
	}

	s.mu.Lock()
	s.header = &h
	s.img = m
	s.mu.Unlock()

	view := h
	s.notify(&view)
	return h, nil
}

// LoadFile opens path and loads it.
func (s *Store) LoadFile(path string) (Header, error) {
	f, err := os.Open(path)
	if err != nil {
		return Header{}, fmt.Errorf("%w: %w", ErrRead, err)
	}
	defer f.Close()
	return s.Load(bufio.NewReader(f))
}

// Clear empties the store.
func (s *Store) Clear() {
	s.mu.Lock()
	s.header = nil
	s.img = nil
	s.mu.Unlock()

	s.notify(nil)
}

// Loaded reports whether an image is loaded.
func (s *Store) Loaded() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.img != nil
}

// Header returns the header of the loaded image.
func (s *Store) Header() (Header, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.header == nil {
		return Header{}, false
	}
	return *s.header, true
}

// Image returns a copy of the loaded pixel buffer.
func (s *Store) Image() (*image1bit.ByteMap, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.img == nil {
		return nil, ErrNoImageLoaded
	}
	return s.img.Clone(), nil
}

// Flip reverses the row order of the loaded image in place.
func (s *Store) Flip() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.img == nil {
		return ErrNoImageLoaded
	}
	s.img.FlipVertical()
	return nil
}

// WritePlain writes the loaded image to w, one byte per pixel.
func (s *Store) WritePlain(w io.Writer) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.img == nil {
		return ErrNoImageLoaded
	}
	return WritePlain(w, s.img)
}

// WriteRaster writes the loaded image to w as a packed raster.
func (s *Store) WriteRaster(w io.Writer) error {
	if err := s.checkRaster(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.img == nil {
		return ErrNoImageLoaded
	}
	return WriteRaster(w, s.img)
}

// WritePreview writes the loaded image to w as a grayscale BMP enlarged by scale.
func (s *Store) WritePreview(w io.Writer, scale int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.img == nil {
		return ErrNoImageLoaded
	}
	return EncodePreview(w, s.img, scale)
}

// SavePlain writes the loaded image to the file at path, one byte per pixel.
func (s *Store) SavePlain(path string) error {
	if !s.Loaded() {
		return ErrNoImageLoaded
	}
	return saveFile(path, s.WritePlain)
}

// SaveRaster writes the loaded image to the file at path as a packed raster.
// The file is not created when the width is not a multiple of 8.
func (s *Store) SaveRaster(path string) error {
	if err := s.checkRaster(); err != nil {
		return err
	}
	return saveFile(path, s.WriteRaster)
}

// Print sends the loaded image to p.
func (s *Store) Print(p *Printer) error {
	if err := s.checkRaster(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.img == nil {
		return ErrNoImageLoaded
	}
	return p.PrintImage(s.img)
}

// checkRaster verifies an image is loaded and its width suits the raster
// format, reporting a width warning otherwise.
func (s *Store) checkRaster() error {
	h, ok := s.Header()
	if !ok {
		return ErrNoImageLoaded
	}
	if h.Width%8 != 0 {
		err := fmt.Errorf("%w: got %d", ErrUnsupportedWidth, h.Width)
		s.warn(WarnWidth, h, err)
		return err
	}
	return nil
}

func (s *Store) notify(h *Header) {
	if s.obs != nil {
		s.obs.StateChanged(h)
	}
}

func (s *Store) warn(kind WarningKind, h Header, err error) {
	if s.obs != nil {
		s.obs.FormatWarning(kind, h, err)
	}
}

// saveFile creates path, hands a buffered writer to write and closes the file
// on every path. Flush and close failures are reported as ErrWrite.
func saveFile(path string, write func(io.Writer) error) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrWrite, err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("%w: %w", ErrWrite, cerr)
		}
	}()

	w := bufio.NewWriter(f)
	if err := write(w); err != nil {
		return err
	}
	if err := w.Flush(); err != nil {
		return fmt.Errorf("%w: %w", ErrWrite, err)
	}
	return nil
}

var _ Observer = ObserverFuncs{}
