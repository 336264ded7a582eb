// Package testpattern draws the 128x64 calibration images used to check a
// conversion end to end on the display.
package testpattern

import (
	"fmt"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
)

const (
	width  = 128
	height = 64
)

// Pattern is a named test image.
type Pattern struct {
	Name  string
	Image *image.RGBA
}

// All returns every pattern in a stable order.
func All() []Pattern {
	return []Pattern{
		{"test_border", Border()},
		{"test_stripes", Stripes()},
		{"test_checker", Checker()},
		{"test_gradient", Gradient()},
	}
}

// Solid returns a 128x64 image filled with c.
func Solid(c color.Color) *image.RGBA {
	return fill(func(x, y int) color.Color { return c })
}

// Border lights the outermost row and column on every side.
func Border() *image.RGBA {
	return mono(func(x, y int) bool {
		return x == 0 || y == 0 || x == width-1 || y == height-1
	})
}

// Stripes lights two rows out of every four.
func Stripes() *image.RGBA {
	return mono(func(x, y int) bool { return y%4 < 2 })
}

// Checker lights diagonal bands four pixels wide.
func Checker() *image.RGBA {
	return mono(func(x, y int) bool { return (x+y)%8 < 4 })
}

// Gradient lights the left half of the screen.
func Gradient() *image.RGBA {
	return mono(func(x, y int) bool { return x < width/2 })
}

func mono(lit func(x, y int) bool) *image.RGBA {
	return fill(func(x, y int) color.Color {
		if lit(x, y) {
			return color.White
		}
		return color.Black
	})
}

func fill(at func(x, y int) color.Color) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			img.Set(x, y, at(x, y))
		}
	}
	return img
}

// WriteAll saves every pattern as <dir>/<name>.png and returns the paths.
func WriteAll(dir string) ([]string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("testpattern: %w", err)
	}

	var paths []string
	for _, p := range All() {
		path := filepath.Join(dir, p.Name+".png")
		if err := save(p.Image, path); err != nil {
			return paths, fmt.Errorf("testpattern: %s: %w", p.Name, err)
		}
		paths = append(paths, path)
	}
	return paths, nil
}

func save(img image.Image, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := png.Encode(f, img); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
