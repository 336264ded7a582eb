package oledbitmap

import (
	"fmt"
	"image"
	"image/color"
	"path/filepath"

	"github.com/flavioheleno/oledbitmap/image1bit"
)

// Frame is one encoded image.
type Frame struct {
	Symbol string      // C identifier of the emitted array
	Pix    []byte      // FrameSize bytes, page-major then column
	Mask   *image.Gray // Thresholded mask before orientation, 0x00 or 0xFF
}

// Encode converts img into a packed frame.
//
// img must be exactly 128x64. opts may be nil to use DefaultOptions. When
// opts.Preview is set and opts.PreviewDir is not empty, the un-mirrored mask
// is written there as id.PreviewName(). No frame is returned on error.
func Encode(img image.Image, id Identity, opts *Options) (*Frame, error) {
	if opts == nil {
		opts = DefaultOptions()
	}

	b := img.Bounds()
	if b.Dx() != Width || b.Dy() != Height {
		return nil, fmt.Errorf("%w, got %dx%d", ErrInvalidDimensions, b.Dx(), b.Dy())
	}

	mask := Threshold(Luminance(img), opts.Threshold, opts.Reverse)

	if opts.Preview && opts.PreviewDir != "" {
		if err := WritePreview(mask, filepath.Join(opts.PreviewDir, id.PreviewName())); err != nil {
			return nil, err
		}
	}

	return &Frame{
		Symbol: id.Symbol(),
		Pix:    Pack(mask).Pix,
		Mask:   mask,
	}, nil
}

// Luma returns the truncated 0.299R + 0.587G + 0.114B brightness of a pixel.
func Luma(r, g, b uint8) uint8 {
	// Explicit conversions keep each product rounded on its own; a fused
	// multiply-add flips boundary pixels.
	y := float64(0.299*float64(r)) + float64(0.587*float64(g)) + float64(0.114*float64(b))
	return uint8(y)
}

// Luminance computes the brightness plane of img. Alpha is discarded.
// The result has the same bounds as img.
func Luminance(img image.Image) *image.Gray {
	b := img.Bounds()
	lum := image.NewGray(b)

	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			c := color.NRGBAModel.Convert(img.At(x, y)).(color.NRGBA)
			lum.SetGray(x, y, color.Gray{Y: Luma(c.R, c.G, c.B)})
		}
	}

	return lum
}

// Threshold derives the binary mask of lum. A pixel is lit (0xFF) when its
// luminance is above threshold, or below it when reverse is set. Pixels equal
// to threshold are never lit.
func Threshold(lum *image.Gray, threshold int, reverse bool) *image.Gray {
	b := lum.Bounds()
	mask := image.NewGray(b)

	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			l := int(lum.GrayAt(x, y).Y)
			lit := l > threshold
			if reverse {
				lit = l < threshold
			}
			if lit {
				mask.SetGray(x, y, color.Gray{Y: 0xFF})
			}
		}
	}

	return mask
}

// Pack mirrors mask left-right then top-bottom and packs it into SSD1306 pages.
// The mirror compensates for the scan direction of the target module and is
// always applied.
func Pack(mask *image.Gray) *image1bit.VerticalLSB {
	b := mask.Bounds()
	w, h := b.Dx(), b.Dy()
	out := image1bit.NewVerticalLSB(image.Rect(0, 0, w, h))

	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			if mask.GrayAt(b.Min.X+x, b.Min.Y+y).Y != 0 {
				out.SetBit(w-1-x, h-1-y, image1bit.On)
			}
		}
	}

	return out
}

// Unpack reverses Pack for a full 128x64 frame: it reads the page bytes back
// into a mask and undoes the mirror.
func Unpack(pix []byte) (*image.Gray, error) {
	if len(pix) != FrameSize {
		return nil, fmt.Errorf("oledbitmap: frame must be %d bytes, got %d", FrameSize, len(pix))
	}

	src := &image1bit.VerticalLSB{
		Pix:    pix,
		Stride: Width,
		Rect:   image.Rect(0, 0, Width, Height),
	}
	mask := image.NewGray(src.Rect)

	for y := 0; y < Height; y++ {
		for x := 0; x < Width; x++ {
			if src.BitAt(Width-1-x, Height-1-y) {
				mask.SetGray(x, y, color.Gray{Y: 0xFF})
			}
		}
	}

	return mask, nil
}
