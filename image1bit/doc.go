// Package image1bit provides an unpacked 1-bit image format used as the working
// pixel buffer between BMP extraction and raster encoding.
//
// Every pixel occupies one byte, so rows can be swapped and dumped without any
// bit arithmetic. A pixel is either Set (0xFF, white) or Clear (0x00, black).
//
// Memory layout example for a 4x2 image:
//
//	Row 0 (top):    FF 00 FF 00
//	Row 1 (bottom): FF FF FF FF
//	Pix:            FF 00 FF 00 FF FF FF FF
//
// This package provides:
//
// - Bit: A color type with two values, On and Off
// - BitModel: A color model thresholding standard Go colors to Bit
// - ByteMap: An image.Image / draw.Image implementation with one byte per pixel
//
// Example usage:
//
//	// Create a 16x2 image
//	img := image1bit.NewByteMap(image.Rect(0, 0, 16, 2))
//
//	// Set a pixel
//	img.SetBit(3, 1, image1bit.On)
//
//	// Reverse the row order
//	img.FlipVertical()
//
//	// Use with standard Go image operations
//	draw.Draw(img, img.Bounds(), image.White, image.Point{}, draw.Src)
package image1bit
