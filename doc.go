// Package bmpraster converts monochrome BMP files into printer-ready rasters.
//
// A 1 bit per pixel, uncompressed Windows bitmap is decoded into an unpacked
// pixel buffer (see package image1bit), optionally flipped, and written either
// as a plain byte-per-pixel dump or as an MSB-first packed raster that can be
// streamed to an ESC/POS receipt printer with GS v 0.
//
// # Input Format
//
//   - "BM" signature followed by a 14-byte file header and a 40-byte
//     BITMAPINFOHEADER, all little-endian
//   - 1 bit per pixel, BI_RGB (no compression)
//   - rows padded to 32 bits, stored bottom-up (or top-down for a negative height)
//
// Other bit depths and compressions are recognized: ParseHeader returns their
// header and Header.Check reports why the image cannot be extracted.
//
// # Output Formats
//
// The plain format (.BPA) holds one byte per pixel, 0xFF for a set bit and
// 0x00 for a clear one, rows top to bottom with no padding.
//
// The raster format (.R) packs 8 pixels per byte, first pixel in the most
// significant bit. The width must be a multiple of 8:
//
//	Pixels: FF 00 FF 00 FF 00 FF 00
//	Raster: AA
//
// # Basic Usage
//
//	s := bmpraster.NewStore(nil)
//	if _, err := s.LoadFile("label.bmp"); err != nil {
//		log.Fatal(err)
//	}
//	if err := s.Flip(); err != nil {
//		log.Fatal(err)
//	}
//	if err := s.SaveRaster("label.R"); err != nil {
//		log.Fatal(err)
//	}
//
// # Printing
//
// A Printer sends rasters over any periph.io connection, in bands of
// Opts.BandHeight rows:
//
//	host.Init()
//	port, _ := spireg.Open("")
//	p, _ := bmpraster.NewSPI(port, &bmpraster.Opts{MaxWidth: 384})
//	defer p.Halt()
//
//	s.Print(p)
//	p.Feed(3)
//	p.Cut()
//
// An optional busy pin (Opts.Busy) is sampled before each image; printing is
// refused with ErrPrinterBusy while it reads High.
//
// # Observing a Store
//
// A Store reports loads, clears and format warnings to an Observer, so a view
// can refresh without polling:
//
//	s := bmpraster.NewStore(&bmpraster.StoreOpts{
//		Observer: bmpraster.ObserverFuncs{
//			OnFormatWarning: func(kind bmpraster.WarningKind, h bmpraster.Header, err error) {
//				log.Printf("%s: %v", kind, err)
//			},
//		},
//	})
package bmpraster
