package config

import (
	"os"
	"path/filepath"
	"testing"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "job.yaml")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadDefaults(t *testing.T) {
	c, err := Load(writeConfig(t, "output: out.cc\n"))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if c.Threshold != 128 {
		t.Errorf("Threshold = %d, want 128", c.Threshold)
	}
	if !c.Preview {
		t.Error("Preview should default to true")
	}
	if c.Namespace != "bitmap_emoji" || c.Include != "emoji_data.h" {
		t.Errorf("Namespace/Include = %q/%q", c.Namespace, c.Include)
	}
	if c.Parallel != 1 {
		t.Errorf("Parallel = %d, want 1", c.Parallel)
	}
	if c.Metrics.Job != "oledbitmap" {
		t.Errorf("Metrics.Job = %q, want oledbitmap", c.Metrics.Job)
	}
	if c.Output != "out.cc" {
		t.Errorf("Output = %q, want out.cc", c.Output)
	}
}

func TestLoadOverrides(t *testing.T) {
	c, err := Load(writeConfig(t, `
threshold: 0
reverse: true
preview: false
namespace: anim
include: ""
parallel: 4
header: emoji_data.h
binary:
  path: frames.bin
  compress: true
metrics:
  pushgateway: http://localhost:9091
  job: ""
`))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	tests := []struct {
		name string
		got  any
		want any
	}{
		{"threshold zero is kept", c.Threshold, 0},
		{"reverse", c.Reverse, true},
		{"preview", c.Preview, false},
		{"namespace", c.Namespace, "anim"},
		{"include cleared", c.Include, ""},
		{"parallel", c.Parallel, 4},
		{"header", c.Header, "emoji_data.h"},
		{"binary path", c.Binary.Path, "frames.bin"},
		{"binary compress", c.Binary.Compress, true},
		{"pushgateway", c.Metrics.Pushgateway, "http://localhost:9091"},
		{"empty job falls back", c.Metrics.Job, "oledbitmap"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.got != tt.want {
				t.Errorf("got %v, want %v", tt.got, tt.want)
			}
		})
	}
}

func TestLoadErrors(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("Load() should fail for a missing file")
	}
	if _, err := Load(writeConfig(t, "threshold: [1, 2\n")); err == nil {
		t.Error("Load() should fail for invalid YAML")
	}
	if _, err := Load(writeConfig(t, "threshold: high\n")); err == nil {
		t.Error("Load() should fail for a non-integer threshold")
	}
}

func TestOptions(t *testing.T) {
	c := Default()
	c.Threshold = 90
	c.Reverse = true
	c.Parallel = 3

	enc := c.EncoderOptions()
	if enc.Threshold != 90 || !enc.Reverse || !enc.Preview {
		t.Errorf("EncoderOptions() = %+v", enc)
	}

	seq := c.SequenceOptions(nil)
	if seq.Parallel != 3 || seq.Namespace != "bitmap_emoji" || seq.Encoder.Threshold != 90 {
		t.Errorf("SequenceOptions() = %+v", seq)
	}
}
