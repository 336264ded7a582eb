// Package image1bit provides a 1-bit monochrome image format laid out the way
// SSD1306-class controllers store their display RAM.
//
// The SSD1306 groups rows into pages of 8. Each byte holds one column of one
// page, with the least significant bit being the topmost row of the page.
// Pages follow each other top to bottom, columns left to right.
//
// Memory layout example for a 3-column, 8-row image:
//
//	Column:   0     1     2
//	Row 0:    on    off   on
//	Row 1:    off   off   on
//	Row 2..7: off   off   off
//	Bytes:    0x01  0x00  0x03
//
// This package provides:
//
// - Bit: A color type representing a lit or unlit pixel
// - BitModel: A color model for converting standard Go colors to Bit
// - VerticalLSB: An image.Image implementation whose Pix is the page byte sequence
//
// Example usage:
//
//	// Create a 128x64 image (1024 bytes)
//	img := image1bit.NewVerticalLSB(image.Rect(0, 0, 128, 64))
//
//	// Light a pixel
//	img.SetBit(10, 20, image1bit.On)
//
//	// Read it back
//	println(img.BitAt(10, 20))  // Output: true
//
//	// Use with standard Go image operations
//	draw.Draw(img, img.Bounds(), image.NewUniform(image1bit.On), image.Point{}, draw.Src)
package image1bit
