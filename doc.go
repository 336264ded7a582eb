// Package oledbitmap converts 128x64 raster images into the packed 1-bit page
// format used by SSD1306-class monochrome OLED controllers, and emits the
// result as C arrays for firmware.
//
// # Pipeline
//
// Every conversion runs the same fixed steps:
//
//   - Decode the source and reject anything that is not exactly 128x64
//   - Compute luminance as truncated 0.299R + 0.587G + 0.114B (alpha ignored)
//   - Threshold into a binary mask (luma > threshold, or luma < threshold with Reverse)
//   - Mirror the mask left-right and top-bottom (a 180° rotation)
//   - Pack the mirrored mask into 8 pages of 128 column bytes
//
// The mirror matches the physical mounting of the target module and is not
// configurable. Previews are written from the mask before the mirror so they
// look like the source image.
//
// # Byte Layout
//
// The 1024-byte frame is ordered page by page, then column by column. Bit b of
// the byte for page p, column c is row p*8+b of the mirrored mask:
//
//	Pix[0]    page 0, column 0    rows 0..7 (bit 0 = row 0)
//	Pix[1]    page 0, column 1
//	...
//	Pix[127]  page 0, column 127
//	Pix[128]  page 1, column 0    rows 8..15
//	...
//	Pix[1023] page 7, column 127  rows 56..63
//
// # Basic Usage
//
//	frame, err := oledbitmap.EncodeFile("happy.png", &oledbitmap.Options{
//		Threshold: 128,
//		Preview:   true,
//	})
//	if err != nil {
//		log.Fatal(err)
//	}
//	frame.WriteTo(os.Stdout)
//
// Output:
//
//	// happy - 128x64像素，1位单色位图
//	const uint8_t happy[] = {
//	    0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00,
//	    ...
//	};
//
// Batches of animation frames are handled by the sequence package, which
// orders files naturally (frame2 before frame10) and names each array
// <directory>_<index>.
//
// # Symbol Names
//
// Standalone conversions name the array after the file stem. Every character
// that is not a letter, digit or underscore becomes an underscore, so
// "happy face-1.png" yields happy_face_1.
package oledbitmap
