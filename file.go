package oledbitmap

import (
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	"image/png"
	"os"
	"path/filepath"
	"strings"

	_ "golang.org/x/image/bmp"
)

// Extensions lists the source file extensions picked up by batch conversion.
var Extensions = []string{".png", ".jpg", ".jpeg", ".bmp", ".gif"}

// Supported reports whether name has one of Extensions, ignoring case.
func Supported(name string) bool {
	ext := strings.ToLower(filepath.Ext(name))
	for _, e := range Extensions {
		if ext == e {
			return true
		}
	}
	return false
}

// Load opens and decodes the image at path.
// Any failure is reported as ErrUnreadableSource.
func Load(path string) (image.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w %s: %v", ErrUnreadableSource, path, err)
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("%w %s: %v", ErrUnreadableSource, path, err)
	}
	return img, nil
}

// EncodeFile converts the image at path, naming the array after the file.
func EncodeFile(path string, opts *Options) (*Frame, error) {
	return EncodeFileAs(path, Named(path), opts)
}

// EncodeFileAs converts the image at path using the given identity.
// Previews default to a "preview" directory next to the source.
func EncodeFileAs(path string, id Identity, opts *Options) (*Frame, error) {
	if opts == nil {
		opts = DefaultOptions()
	}
	if opts.Preview && opts.PreviewDir == "" {
		o := *opts
		o.PreviewDir = filepath.Join(filepath.Dir(path), "preview")
		opts = &o
	}

	img, err := Load(path)
	if err != nil {
		return nil, err
	}

	frame, err := Encode(img, id, opts)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", filepath.Base(path), err)
	}
	return frame, nil
}

// WritePreview saves mask as a grayscale PNG at path, creating its directory.
func WritePreview(mask *image.Gray, path string) (err error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("oledbitmap: failed to create preview directory: %w", err)
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("oledbitmap: failed to create preview: %w", err)
	}
	defer func() {
		if cerr := f.Close(); err == nil && cerr != nil {
			err = fmt.Errorf("oledbitmap: failed to close preview: %w", cerr)
		}
	}()

	if err := png.Encode(f, mask); err != nil {
		return fmt.Errorf("oledbitmap: failed to encode preview: %w", err)
	}
	return nil
}
