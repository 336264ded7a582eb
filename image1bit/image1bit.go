// Package image1bit provides a 1-bit image format optimized for the SSD1306 display.
//
// Pixels are packed vertically: each byte covers 8 rows of a single column.
// Bit 0 is the top row of the page, bit 7 the bottom row.
package image1bit

import (
	"image"
	"image/color"
)

// Bit represents a monochrome pixel. true means lit.
type Bit bool

const (
	On  = Bit(true)
	Off = Bit(false)
)

// RGBA converts the Bit to standard RGBA: lit is white, unlit is black.
func (c Bit) RGBA() (r, g, b, a uint32) {
	if c {
		return 0xFFFF, 0xFFFF, 0xFFFF, 0xFFFF
	}
	return 0, 0, 0, 0xFFFF
}

func (c Bit) String() string {
	if c {
		return "On"
	}
	return "Off"
}

// toBit converts any color.Color to Bit.
func toBit(c color.Color) color.Color {
	if b, ok := c.(Bit); ok {
		return b
	}
	r, g, b, _ := c.RGBA()
	// Standard grayscale conversion: 0.299R + 0.587G + 0.114B, on 16-bit channels
	y := (299*r + 587*g + 114*b + 500) / 1000
	return Bit(y >= 0x8000)
}

// BitModel converts colors to Bit using a mid-scale luminance cut.
var BitModel = color.ModelFunc(toBit)

// VerticalLSB is a 1-bit image where pixels are stored in vertical pages.
// Byte (page, column) lives at Pix[page*Stride+column].
type VerticalLSB struct {
	Pix    []byte          // Page byte sequence
	Stride int             // Bytes per page (the image width)
	Rect   image.Rectangle // Image bounds
}

// NewVerticalLSB creates a new VerticalLSB image with the specified bounds.
// The height is rounded up to whole pages.
func NewVerticalLSB(r image.Rectangle) *VerticalLSB {
	w, h := r.Dx(), r.Dy()
	if w < 0 || h < 0 {
		return &VerticalLSB{Rect: r}
	}

	pages := (h + 7) / 8
	return &VerticalLSB{
		Pix:    make([]byte, pages*w),
		Stride: w,
		Rect:   r,
	}
}

// Pages returns the number of 8-row pages covering the image.
func (p *VerticalLSB) Pages() int {
	return (p.Rect.Dy() + 7) / 8
}

// ColorModel returns the color model of the image.
func (p *VerticalLSB) ColorModel() color.Model {
	return BitModel
}

// Bounds returns the image bounds.
func (p *VerticalLSB) Bounds() image.Rectangle {
	return p.Rect
}

// At returns the color of the pixel at (x, y).
// It implements the image.Image interface.
func (p *VerticalLSB) At(x, y int) color.Color {
	return p.BitAt(x, y)
}

// BitAt returns the Bit of the pixel at (x, y).
func (p *VerticalLSB) BitAt(x, y int) Bit {
	if !(image.Point{X: x, Y: y}.In(p.Rect)) {
		return Off
	}
	offset, mask := p.pixOffset(x, y)
	return Bit(p.Pix[offset]&mask != 0)
}

// Set sets the color of the pixel at (x, y).
func (p *VerticalLSB) Set(x, y int, c color.Color) {
	p.SetBit(x, y, BitModel.Convert(c).(Bit))
}

// SetBit sets the Bit of the pixel at (x, y).
// This is faster than Set() as it doesn't require color conversion.
func (p *VerticalLSB) SetBit(x, y int, b Bit) {
	if !(image.Point{X: x, Y: y}.In(p.Rect)) {
		return
	}
	offset, mask := p.pixOffset(x, y)
	if b {
		p.Pix[offset] |= mask
	} else {
		p.Pix[offset] &^= mask
	}
}

// pixOffset returns the byte offset and bit mask for the pixel at (x, y).
// Memory layout: each byte contains 8 pixels vertically.
// Row (y % 8) of a page maps to bit (y % 8), LSB first.
func (p *VerticalLSB) pixOffset(x, y int) (offset int, mask byte) {
	row := y - p.Rect.Min.Y
	offset = (row/8)*p.Stride + (x - p.Rect.Min.X)
	mask = 1 << uint(row&7)
	return
}
