package export

import (
	"bytes"
	"strings"
	"testing"

	"github.com/flavioheleno/oledbitmap"
)

func sampleFrames(n int) [][]byte {
	frames := make([][]byte, n)
	for i := range frames {
		frames[i] = make([]byte, oledbitmap.FrameSize)
		for j := range frames[i] {
			frames[i][j] = byte(i*7 + j)
		}
	}
	return frames
}

func TestWriteHeader(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteHeader(&buf, "bitmap_emoji", []string{"heart_0", "heart_1"}); err != nil {
		t.Fatalf("WriteHeader() error = %v", err)
	}
	got := buf.String()

	for _, want := range []string{
		"#pragma once\n",
		"namespace bitmap_emoji {\n",
		"extern const uint8_t heart_0[];\nextern const uint8_t heart_1[];\n",
		"constexpr uint16_t EMOJI_WIDTH = 128;\n",
		"constexpr uint16_t EMOJI_HEIGHT = 64;\n",
		"EMOJI_DATA_SIZE = (EMOJI_WIDTH * EMOJI_HEIGHT) / 8;",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("header missing %q", want)
		}
	}
	if !strings.HasSuffix(got, "} // namespace bitmap_emoji\n") {
		t.Error("namespace not closed")
	}
}

func TestBinaryRoundTrip(t *testing.T) {
	tests := []struct {
		name     string
		frames   int
		compress bool
	}{
		{"raw", 3, false},
		{"zstd", 3, true},
		{"empty raw", 0, false},
		{"empty zstd", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			frames := sampleFrames(tt.frames)

			var buf bytes.Buffer
			if err := WriteBinary(&buf, frames, tt.compress); err != nil {
				t.Fatalf("WriteBinary() error = %v", err)
			}
			if !tt.compress {
				if want := 10 + tt.frames*oledbitmap.FrameSize; buf.Len() != want {
					t.Errorf("raw size = %d, want %d", buf.Len(), want)
				}
				if !bytes.HasPrefix(buf.Bytes(), []byte("OLB1")) {
					t.Error("raw container does not start with magic")
				}
			}

			got, err := ReadBinary(&buf)
			if err != nil {
				t.Fatalf("ReadBinary() error = %v", err)
			}
			if len(got) != len(frames) {
				t.Fatalf("ReadBinary() = %d frames, want %d", len(got), len(frames))
			}
			for i := range frames {
				if !bytes.Equal(got[i], frames[i]) {
					t.Errorf("frame %d differs after round trip", i)
				}
			}
		})
	}
}

func TestBinaryCompresses(t *testing.T) {
	frames := make([][]byte, 10)
	for i := range frames {
		frames[i] = make([]byte, oledbitmap.FrameSize)
	}

	var raw, packed bytes.Buffer
	if err := WriteBinary(&raw, frames, false); err != nil {
		t.Fatal(err)
	}
	if err := WriteBinary(&packed, frames, true); err != nil {
		t.Fatal(err)
	}
	if packed.Len() >= raw.Len() {
		t.Errorf("zstd container (%d bytes) not smaller than raw (%d bytes)", packed.Len(), raw.Len())
	}
}

func TestWriteBinaryRejectsBadFrame(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteBinary(&buf, [][]byte{make([]byte, 10)}, false); err == nil {
		t.Error("WriteBinary() should reject a short frame")
	}
}

func TestReadBinaryErrors(t *testing.T) {
	var truncated bytes.Buffer
	if err := WriteBinary(&truncated, sampleFrames(2), false); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name string
		data []byte
	}{
		{"garbage", []byte("hello world")},
		{"short header", []byte("OLB1\x80")},
		{"truncated frames", truncated.Bytes()[:truncated.Len()-1]},
		{"bad geometry", []byte("OLB1\x40\x00\x40\x00\x00\x00")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := ReadBinary(bytes.NewReader(tt.data)); err == nil {
				t.Error("ReadBinary() should fail")
			}
		})
	}
}

func TestPix(t *testing.T) {
	frames := []*oledbitmap.Frame{{Pix: []byte{1}}, {Pix: []byte{2}}}
	got := Pix(frames)
	if len(got) != 2 || got[0][0] != 1 || got[1][0] != 2 {
		t.Errorf("Pix() = %v", got)
	}
}
