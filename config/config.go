// Package config loads conversion jobs from YAML files.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/flavioheleno/oledbitmap"
	"github.com/flavioheleno/oledbitmap/metrics"
	"github.com/flavioheleno/oledbitmap/sequence"
)

// Config represents a conversion job
type Config struct {
	Threshold int    `yaml:"threshold"` // Luminance cut, 0-255 (default: 128)
	Reverse   bool   `yaml:"reverse"`   // Light pixels darker than the threshold
	Preview   bool   `yaml:"preview"`   // Write preview PNGs (default: true)
	Namespace string `yaml:"namespace"` // Namespace wrapping batch output (default: bitmap_emoji)
	Include   string `yaml:"include"`   // Header included by batch output (default: emoji_data.h, "" to omit)
	Parallel  int    `yaml:"parallel"`  // Files converted at once (default: 1)
	Output    string `yaml:"output"`    // C source output path, empty for stdout
	Header    string `yaml:"header"`    // Optional C header output path

	Binary  BinaryConfig  `yaml:"binary"`
	Metrics MetricsConfig `yaml:"metrics"`
}

// BinaryConfig contains the raw frame container output settings
type BinaryConfig struct {
	Path     string `yaml:"path"`     // Container output path, empty to disable
	Compress bool   `yaml:"compress"` // Wrap the container in zstd
}

// MetricsConfig contains Pushgateway settings
type MetricsConfig struct {
	Pushgateway string `yaml:"pushgateway"` // Pushgateway URL, empty to disable
	Job         string `yaml:"job"`         // Job name (default: oledbitmap)
}

// Default returns the configuration used when no file is given.
func Default() *Config {
	return &Config{
		Threshold: oledbitmap.DefaultThreshold,
		Preview:   true,
		Namespace: sequence.DefaultNamespace,
		Include:   sequence.DefaultInclude,
		Parallel:  1,
		Metrics: MetricsConfig{
			Job: metrics.DefaultJob,
		},
	}
}

// Load loads configuration from a YAML file. Keys missing from the file keep
// their default values.
func Load(filename string) (*Config, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	config := Default()
	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	if config.Namespace == "" {
		config.Namespace = sequence.DefaultNamespace
	}
	if config.Parallel < 1 {
		config.Parallel = 1
	}
	if config.Metrics.Job == "" {
		config.Metrics.Job = metrics.DefaultJob
	}

	return config, nil
}

// EncoderOptions returns the per-image options of the job.
func (c *Config) EncoderOptions() *oledbitmap.Options {
	return &oledbitmap.Options{
		Threshold: c.Threshold,
		Reverse:   c.Reverse,
		Preview:   c.Preview,
	}
}

// SequenceOptions returns the batch options of the job. m may be nil.
func (c *Config) SequenceOptions(m *metrics.Metrics) *sequence.Options {
	return &sequence.Options{
		Encoder:   c.EncoderOptions(),
		Namespace: c.Namespace,
		Include:   c.Include,
		Parallel:  c.Parallel,
		Metrics:   m,
	}
}
