package oledbitmap

import (
	"errors"
	"path/filepath"
	"strconv"
	"strings"
)

const (
	// Width and Height are the only accepted source dimensions.
	Width  = 128
	Height = 64

	// Pages is the number of 8-row bands in the packed format.
	Pages = (Height + 7) / 8

	// FrameSize is the length of one packed frame in bytes.
	FrameSize = Pages * Width

	// DefaultThreshold is the luminance cut used when no Options are given.
	DefaultThreshold = 128
)

var (
	// ErrInvalidDimensions is returned for images that are not 128x64.
	ErrInvalidDimensions = errors.New("oledbitmap: image must be 128x64")

	// ErrUnreadableSource is returned when a source file cannot be opened or decoded.
	ErrUnreadableSource = errors.New("oledbitmap: unreadable source image")
)

// Options controls a single conversion.
type Options struct {
	// Threshold is compared against each pixel's luminance (0-255).
	// Values outside that range are accepted and yield all-lit or all-unlit masks.
	Threshold int

	// Reverse lights pixels darker than Threshold instead of brighter.
	Reverse bool

	// Preview writes the un-mirrored mask as a grayscale PNG.
	Preview bool

	// PreviewDir is where previews are written. EncodeFile defaults it to
	// a "preview" directory next to the source file.
	PreviewDir string
}

// DefaultOptions returns the options used when nil is passed.
func DefaultOptions() *Options {
	return &Options{Threshold: DefaultThreshold}
}

// Identity names a frame. In batch mode the symbol is derived from the group
// name and frame index; otherwise from Name, usually the source filename.
type Identity struct {
	Group string
	Index int
	Batch bool
	Name  string
}

// FrameOf returns the identity of frame index within group.
func FrameOf(group string, index int) Identity {
	return Identity{Group: group, Index: index, Batch: true}
}

// Named returns a standalone identity derived from a file path or name.
func Named(path string) Identity {
	return Identity{Name: path}
}

// stem returns the base name of the source without its extension.
func (id Identity) stem() string {
	base := filepath.Base(id.Name)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// Symbol returns the identifier-safe array name for the frame.
func (id Identity) Symbol() string {
	if id.Batch {
		return Sanitize(id.Group + "_" + strconv.Itoa(id.Index))
	}
	return Sanitize(id.stem())
}

// PreviewName returns the file name of the preview image for the frame.
func (id Identity) PreviewName() string {
	if id.Batch {
		return id.Group + "_" + strconv.Itoa(id.Index) + ".png"
	}
	return "preview_" + id.stem() + ".png"
}

// Sanitize replaces every character that is not an ASCII letter, digit or
// underscore with an underscore. A leading digit is prefixed with an
// underscore so the result is a valid C identifier.
func Sanitize(name string) string {
	if name == "" {
		return "_"
	}
	out := make([]byte, 0, len(name)+1)
	for _, c := range name {
		switch {
		case c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z', c >= '0' && c <= '9', c == '_':
			out = append(out, byte(c))
		default:
			out = append(out, '_')
		}
	}
	if out[0] >= '0' && out[0] <= '9' {
		out = append([]byte{'_'}, out...)
	}
	return string(out)
}
