// Package sequence converts a directory of 128x64 images into one ordered
// animation group of SSD1306 frames.
//
// Files are ordered naturally, so frame2.png comes before frame10.png. The
// directory name becomes the group name and each file's sorted position its
// frame index: a directory "heart" yields arrays heart_0, heart_1, ... wrapped
// in a single namespace block.
package sequence

import (
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/flavioheleno/oledbitmap"
	"github.com/flavioheleno/oledbitmap/metrics"
)

const (
	DefaultNamespace = "bitmap_emoji"
	DefaultInclude   = "emoji_data.h"
)

var (
	// ErrDirectoryNotFound is returned when the batch input is missing or not a directory.
	ErrDirectoryNotFound = errors.New("sequence: directory not found")

	// ErrNoMatchingFiles describes an empty batch. Batch does not return it;
	// check Result.Empty instead.
	ErrNoMatchingFiles = errors.New("sequence: no supported image files found")
)

// Options controls a batch conversion.
type Options struct {
	// Encoder is passed to every frame conversion. nil uses oledbitmap defaults.
	Encoder *oledbitmap.Options

	// Namespace wraps the emitted arrays. Empty uses DefaultNamespace.
	Namespace string

	// Include is emitted as an #include line before the namespace. Empty omits it.
	Include string

	// Parallel is the number of files converted at once. Values below 2
	// convert sequentially. Output order never depends on it.
	Parallel int

	// Logger receives progress and skipped files. nil uses log.Default().
	Logger *log.Logger

	// Metrics records each conversion. May be nil.
	Metrics *metrics.Metrics
}

// DefaultOptions returns the options used when nil is passed to Batch.
func DefaultOptions() *Options {
	return &Options{
		Encoder:   oledbitmap.DefaultOptions(),
		Namespace: DefaultNamespace,
		Include:   DefaultInclude,
		Parallel:  1,
	}
}

// Failure is a file that could not be converted.
type Failure struct {
	Path  string
	Index int
	Err   error
}

func (f Failure) Error() string {
	return fmt.Sprintf("%s: %v", filepath.Base(f.Path), f.Err)
}

func (f Failure) Unwrap() error {
	return f.Err
}

// Result is the outcome of a batch conversion.
type Result struct {
	Group     string              // Group name derived from the directory
	Files     []string            // Candidate files in frame order
	Frames    []*oledbitmap.Frame // Successfully converted frames in frame order
	Failures  []Failure           // Files skipped, in frame order
	Namespace string
	Include   string
}

// Empty reports whether the directory held no supported images.
func (r *Result) Empty() bool {
	return len(r.Files) == 0
}

// Symbols returns the array names of the converted frames in order.
func (r *Result) Symbols() []string {
	symbols := make([]string, len(r.Frames))
	for i, f := range r.Frames {
		symbols[i] = f.Symbol
	}
	return symbols
}

// Err joins every per-file failure, or returns nil when none occurred.
func (r *Result) Err() error {
	if len(r.Failures) == 0 {
		return nil
	}
	errs := make([]error, len(r.Failures))
	for i, f := range r.Failures {
		errs[i] = f
	}
	return errors.Join(errs...)
}

// Text renders the batch as one C source unit. An empty batch renders as "".
func (r *Result) Text() string {
	if r.Empty() {
		return ""
	}

	ns := r.Namespace
	if ns == "" {
		ns = DefaultNamespace
	}

	var sb strings.Builder
	if r.Include != "" {
		fmt.Fprintf(&sb, "#include \"%s\"\n\n", r.Include)
	}
	fmt.Fprintf(&sb, "namespace %s {\n\n", ns)
	for _, f := range r.Frames {
		sb.WriteString(f.Text())
		sb.WriteString("\n")
	}
	fmt.Fprintf(&sb, "\n} // namespace %s\n", ns)
	return sb.String()
}

// WriteTo writes Text to w.
func (r *Result) WriteTo(w io.Writer) (int64, error) {
	n, err := io.WriteString(w, r.Text())
	return int64(n), err
}

// GroupName returns the animation group name for dir: its base name after
// cleaning, resolved against the working directory for "." and similar.
func GroupName(dir string) string {
	name := filepath.Base(filepath.Clean(dir))
	if name == "." || name == ".." || name == string(filepath.Separator) {
		if abs, err := filepath.Abs(dir); err == nil {
			name = filepath.Base(abs)
		}
	}
	return name
}

// Discover lists the supported images directly inside dir in natural order.
// Subdirectories are not descended into.
func Discover(dir string) ([]string, error) {
	info, err := os.Stat(dir)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrDirectoryNotFound, dir, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%w: %s is not a directory", ErrDirectoryNotFound, dir)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrDirectoryNotFound, dir, err)
	}

	var names []string
	for _, e := range entries {
		if e.IsDir() || !oledbitmap.Supported(e.Name()) {
			continue
		}
		names = append(names, e.Name())
	}
	Sort(names)

	paths := make([]string, len(names))
	for i, name := range names {
		paths[i] = filepath.Join(dir, name)
	}
	return paths, nil
}

// Batch converts every supported image in dir into one animation group.
//
// A missing directory fails with ErrDirectoryNotFound. A directory without
// images yields an empty Result and no error. Files that fail to convert are
// logged, recorded in Result.Failures and skipped; their frame index is not
// reused.
func Batch(dir string, opts *Options) (*Result, error) {
	if opts == nil {
		opts = DefaultOptions()
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.Default()
	}

	files, err := Discover(dir)
	if err != nil {
		return nil, err
	}

	res := &Result{
		Group:     GroupName(dir),
		Files:     files,
		Namespace: opts.Namespace,
		Include:   opts.Include,
	}
	if len(files) == 0 {
		logger.Printf("%v in %s", ErrNoMatchingFiles, dir)
		return res, nil
	}
	opts.Metrics.ObserveBatch()

	logger.Printf("found %d image files in %s", len(files), dir)
	for i, path := range files {
		logger.Printf("  %d: %s", i, filepath.Base(path))
	}

	frames, errs := encodeAll(res.Group, files, opts)

	for i, path := range files {
		if errs[i] != nil {
			logger.Printf("skipping %s (frame %d): %v", filepath.Base(path), i, errs[i])
			res.Failures = append(res.Failures, Failure{Path: path, Index: i, Err: errs[i]})
			continue
		}
		logger.Printf("converted %s as %s", filepath.Base(path), frames[i].Symbol)
		res.Frames = append(res.Frames, frames[i])
	}

	return res, nil
}

// encodeAll converts files into slots indexed by frame position, so output
// order is independent of which worker finishes first.
func encodeAll(group string, files []string, opts *Options) ([]*oledbitmap.Frame, []error) {
	frames := make([]*oledbitmap.Frame, len(files))
	errs := make([]error, len(files))

	encode := func(i int) {
		start := time.Now()
		frames[i], errs[i] = oledbitmap.EncodeFileAs(files[i], oledbitmap.FrameOf(group, i), opts.Encoder)
		opts.Metrics.ObserveFrame(time.Since(start), errs[i])
	}

	if opts.Parallel < 2 {
		for i := range files {
			encode(i)
		}
		return frames, errs
	}

	jobs := make(chan int)
	var wg sync.WaitGroup
	for w := 0; w < min(opts.Parallel, len(files)); w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				encode(i)
			}
		}()
	}
	for i := range files {
		jobs <- i
	}
	close(jobs)
	wg.Wait()

	return frames, errs
}

// WriteFile writes the rendered batch to path. Empty batches write nothing.
func (r *Result) WriteFile(path string) error {
	if r.Empty() {
		return nil
	}
	if err := os.WriteFile(path, []byte(r.Text()), 0o644); err != nil {
		return fmt.Errorf("sequence: failed to write %s: %w", path, err)
	}
	return nil
}
