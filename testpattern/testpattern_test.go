package testpattern

import (
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"
)

func isWhite(img *image.RGBA, x, y int) bool {
	return img.RGBAAt(x, y) == color.RGBA{0xFF, 0xFF, 0xFF, 0xFF}
}

func TestPatternsSize(t *testing.T) {
	for _, p := range All() {
		t.Run(p.Name, func(t *testing.T) {
			if got := p.Image.Bounds(); got != image.Rect(0, 0, 128, 64) {
				t.Errorf("Bounds() = %v, want 128x64", got)
			}
		})
	}
}

func TestPatternPixels(t *testing.T) {
	tests := []struct {
		name string
		img  *image.RGBA
		x, y int
		want bool
	}{
		{"border corner", Border(), 0, 0, true},
		{"border right edge", Border(), 127, 30, true},
		{"border bottom edge", Border(), 50, 63, true},
		{"border inside", Border(), 1, 1, false},
		{"stripes row 1", Stripes(), 10, 1, true},
		{"stripes row 2", Stripes(), 10, 2, false},
		{"stripes row 4", Stripes(), 10, 4, true},
		{"checker origin", Checker(), 0, 0, true},
		{"checker diagonal 4", Checker(), 2, 2, false},
		{"gradient left", Gradient(), 63, 0, true},
		{"gradient right", Gradient(), 64, 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := isWhite(tt.img, tt.x, tt.y); got != tt.want {
				t.Errorf("white at (%d, %d) = %v, want %v", tt.x, tt.y, got, tt.want)
			}
		})
	}
}

func TestSolid(t *testing.T) {
	img := Solid(color.RGBA{10, 20, 30, 255})
	if got := img.RGBAAt(127, 63); got != (color.RGBA{10, 20, 30, 255}) {
		t.Errorf("RGBAAt(127, 63) = %v", got)
	}
}

func TestWriteAll(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "patterns")

	paths, err := WriteAll(dir)
	if err != nil {
		t.Fatalf("WriteAll() error = %v", err)
	}
	if len(paths) != len(All()) {
		t.Fatalf("WriteAll() wrote %d files, want %d", len(paths), len(All()))
	}

	f, err := os.Open(paths[0])
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	img, err := png.Decode(f)
	if err != nil {
		t.Fatalf("png.Decode() error = %v", err)
	}
	if img.Bounds().Dx() != 128 || img.Bounds().Dy() != 64 {
		t.Errorf("decoded bounds = %v, want 128x64", img.Bounds())
	}
}
