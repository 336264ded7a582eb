// Command oledbitmap converts 128x64 images into SSD1306 page bitmaps
// emitted as C arrays.
//
//	oledbitmap happy.png
//	oledbitmap happy.png 100 happy_bitmap.txt --reverse
//	oledbitmap --batch ./images/heart emoji_data.cc 128 --no-preview
//	oledbitmap --batch ./images/heart emoji_data.cc --header emoji_data.h --binary heart.bin --zstd
//	oledbitmap --create-test ./patterns
package main

import (
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/spf13/pflag"

	"github.com/flavioheleno/oledbitmap"
	"github.com/flavioheleno/oledbitmap/config"
	"github.com/flavioheleno/oledbitmap/export"
	"github.com/flavioheleno/oledbitmap/metrics"
	"github.com/flavioheleno/oledbitmap/sequence"
	"github.com/flavioheleno/oledbitmap/testpattern"
)

const Version = "v1.0.0"

func main() {
	if err := run(os.Args[1:], os.Stdout, log.Default()); err != nil {
		log.Fatalf("Error: %v", err)
	}
}

// job is a fully resolved invocation.
type job struct {
	cfg    *config.Config
	batch  bool
	input  string
	logger *log.Logger
	stdout io.Writer
}

func run(args []string, stdout io.Writer, logger *log.Logger) error {
	fs := pflag.NewFlagSet("oledbitmap", pflag.ContinueOnError)
	fs.SortFlags = false
	fs.Usage = func() {
		fmt.Fprintln(os.Stderr, "Usage:")
		fmt.Fprintln(os.Stderr, "  oledbitmap <image> [threshold] [output] [flags]")
		fmt.Fprintln(os.Stderr, "  oledbitmap --batch <input dir> <output> [threshold] [flags]")
		fmt.Fprintln(os.Stderr, "  oledbitmap --create-test [dir]")
		fmt.Fprintln(os.Stderr, "\nFlags:")
		fs.PrintDefaults()
	}

	var (
		batch      = fs.BoolP("batch", "b", false, "Convert every image in a directory into one animation group")
		createTest = fs.Bool("create-test", false, "Write the test pattern images and exit")
		threshold  = fs.IntP("threshold", "t", oledbitmap.DefaultThreshold, "Luminance threshold (0-255)")
		reverse    = fs.BoolP("reverse", "r", false, "Light pixels darker than the threshold")
		noPreview  = fs.Bool("no-preview", false, "Do not write preview images")
		configFile = fs.StringP("config", "c", "", "YAML job file; flags override its values")
		namespace  = fs.String("namespace", sequence.DefaultNamespace, "Namespace wrapping batch output")
		include    = fs.String("include", sequence.DefaultInclude, "Header included by batch output (empty to omit)")
		parallel   = fs.IntP("parallel", "j", 1, "Files converted at once in batch mode")
		header     = fs.String("header", "", "Also write a C header declaring the arrays")
		binaryOut  = fs.String("binary", "", "Also write the frames as a binary container")
		compress   = fs.Bool("zstd", false, "Compress the binary container with zstd")
		pushURL    = fs.String("push-gateway", "", "Prometheus Pushgateway URL for conversion metrics")
		version    = fs.BoolP("version", "v", false, "Print version and exit")
	)

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return nil
		}
		return err
	}

	if *version {
		fmt.Fprintf(stdout, "oledbitmap %s\n", Version)
		return nil
	}

	if *createTest {
		dir := "."
		if fs.NArg() > 0 {
			dir = fs.Arg(0)
		}
		return createTestPatterns(dir, logger)
	}

	cfg := config.Default()
	if *configFile != "" {
		var err error
		if cfg, err = config.Load(*configFile); err != nil {
			return err
		}
	}

	// Explicit flags win over the job file
	if fs.Changed("threshold") || *configFile == "" {
		cfg.Threshold = *threshold
	}
	if *reverse {
		cfg.Reverse = true
	}
	if *noPreview {
		cfg.Preview = false
	}
	if fs.Changed("namespace") || *configFile == "" {
		cfg.Namespace = *namespace
	}
	if fs.Changed("include") || *configFile == "" {
		cfg.Include = *include
	}
	if fs.Changed("parallel") || *configFile == "" {
		cfg.Parallel = *parallel
	}
	if *header != "" {
		cfg.Header = *header
	}
	if *binaryOut != "" {
		cfg.Binary.Path = *binaryOut
	}
	if *compress {
		cfg.Binary.Compress = true
	}
	if *pushURL != "" {
		cfg.Metrics.Pushgateway = *pushURL
	}

	j := &job{cfg: cfg, batch: *batch, logger: logger, stdout: stdout}
	if err := j.positional(fs.Args()); err != nil {
		fs.Usage()
		return err
	}

	m := metrics.New(nil)
	var err error
	if j.batch {
		err = j.runBatch(m)
	} else {
		err = j.runSingle(m)
	}

	if cfg.Metrics.Pushgateway != "" {
		if perr := m.Push(cfg.Metrics.Pushgateway, cfg.Metrics.Job); perr != nil {
			logger.Printf("Warning: %v", perr)
		}
	}
	return err
}

// positional reads the input path, then an optional threshold and output
// path in either order: an integer is the threshold, anything else the output.
func (j *job) positional(args []string) error {
	if len(args) == 0 {
		return errors.New("missing input")
	}
	j.input = args[0]
	rest := args[1:]

	thresholdSet := false
	outputSet := false
	for _, a := range rest {
		if !thresholdSet {
			if t, err := strconv.Atoi(a); err == nil {
				j.cfg.Threshold = t
				thresholdSet = true
				continue
			}
		}
		if !outputSet {
			j.cfg.Output = a
			outputSet = true
			continue
		}
		return fmt.Errorf("unexpected argument %q", a)
	}

	if j.batch && j.cfg.Output == "" {
		return errors.New("batch mode needs an output file")
	}
	return nil
}

func (j *job) runSingle(m *metrics.Metrics) error {
	opts := j.cfg.EncoderOptions()

	start := time.Now()
	frame, err := oledbitmap.EncodeFile(j.input, opts)
	m.ObserveFrame(time.Since(start), err)
	if err != nil {
		return err
	}
	if opts.Preview {
		j.logger.Printf("Preview saved: %s", filepath.Join(filepath.Dir(j.input), "preview", oledbitmap.Named(j.input).PreviewName()))
	}

	if j.cfg.Output == "" {
		if _, err := frame.WriteTo(j.stdout); err != nil {
			return err
		}
	} else {
		if err := os.WriteFile(j.cfg.Output, []byte(frame.Text()), 0o644); err != nil {
			return fmt.Errorf("failed to write %s: %w", j.cfg.Output, err)
		}
		j.logger.Printf("Bitmap array saved to: %s", j.cfg.Output)
	}

	return j.writeExtras([]*oledbitmap.Frame{frame})
}

func (j *job) runBatch(m *metrics.Metrics) error {
	opts := j.cfg.SequenceOptions(m)
	opts.Logger = j.logger

	res, err := sequence.Batch(j.input, opts)
	if err != nil {
		return err
	}
	if res.Empty() {
		j.logger.Printf("No supported image files found in %s", j.input)
		return nil
	}

	if err := res.WriteFile(j.cfg.Output); err != nil {
		return err
	}
	j.logger.Printf("All bitmap arrays saved to: %s (%d frames)", j.cfg.Output, len(res.Frames))

	if len(res.Failures) > 0 {
		j.logger.Printf("%d of %d files skipped:", len(res.Failures), len(res.Files))
		for _, f := range res.Failures {
			j.logger.Printf("  %v", f)
		}
	}

	return j.writeExtras(res.Frames)
}

// writeExtras writes the optional header and binary container.
func (j *job) writeExtras(frames []*oledbitmap.Frame) error {
	if j.cfg.Header != "" {
		symbols := make([]string, len(frames))
		for i, f := range frames {
			symbols[i] = f.Symbol
		}
		if err := writeFile(j.cfg.Header, func(w io.Writer) error {
			return export.WriteHeader(w, j.cfg.Namespace, symbols)
		}); err != nil {
			return err
		}
		j.logger.Printf("Header saved to: %s", j.cfg.Header)
	}

	if j.cfg.Binary.Path != "" {
		if err := writeFile(j.cfg.Binary.Path, func(w io.Writer) error {
			return export.WriteBinary(w, export.Pix(frames), j.cfg.Binary.Compress)
		}); err != nil {
			return err
		}
		j.logger.Printf("Binary frames saved to: %s", j.cfg.Binary.Path)
	}
	return nil
}

func writeFile(path string, write func(io.Writer) error) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	defer func() {
		if cerr := f.Close(); err == nil && cerr != nil {
			err = fmt.Errorf("failed to close %s: %w", path, cerr)
		}
	}()

	if err := write(f); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}

func createTestPatterns(dir string, logger *log.Logger) error {
	paths, err := testpattern.WriteAll(dir)
	if err != nil {
		return err
	}
	for _, p := range paths {
		logger.Printf("Created test pattern: %s", p)
	}
	return nil
}
