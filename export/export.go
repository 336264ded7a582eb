// Package export writes companion outputs for converted frames: the C header
// declaring the arrays, and a compact binary container for firmware that
// loads frames from flash instead of compiling them in.
package export

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"io"

	"github.com/klauspost/compress/zstd"

	"github.com/flavioheleno/oledbitmap"
)

// Magic starts every binary container.
var Magic = [4]byte{'O', 'L', 'B', '1'}

var (
	errBadMagic  = errors.New("export: not a frame container")
	errTruncated = errors.New("export: truncated frame container")
)

// WriteHeader writes a C++ header declaring symbols inside namespace ns along
// with the frame geometry constants.
func WriteHeader(w io.Writer, ns string, symbols []string) error {
	var buf bytes.Buffer

	buf.WriteString("#pragma once\n\n#include <stdint.h>\n\n")
	fmt.Fprintf(&buf, "namespace %s {\n\n", ns)
	for _, s := range symbols {
		fmt.Fprintf(&buf, "extern const uint8_t %s[];\n", s)
	}
	if len(symbols) > 0 {
		buf.WriteString("\n")
	}
	fmt.Fprintf(&buf, "constexpr uint16_t EMOJI_WIDTH = %d;\n", oledbitmap.Width)
	fmt.Fprintf(&buf, "constexpr uint16_t EMOJI_HEIGHT = %d;\n", oledbitmap.Height)
	buf.WriteString("constexpr uint32_t EMOJI_DATA_SIZE = (EMOJI_WIDTH * EMOJI_HEIGHT) / 8;\n")
	fmt.Fprintf(&buf, "\n} // namespace %s\n", ns)

	_, err := w.Write(buf.Bytes())
	return err
}

// header is the fixed part of a binary container, little endian.
type header struct {
	Magic  [4]byte
	Width  uint16
	Height uint16
	Count  uint16
}

// WriteBinary writes frames as a container: magic, width, height and frame
// count as uint16 LE, then each frame's page bytes. With compress set the
// whole container is wrapped in a zstd stream.
func WriteBinary(w io.Writer, frames [][]byte, compress bool) (err error) {
	if len(frames) > 0xFFFF {
		return fmt.Errorf("export: too many frames: %d", len(frames))
	}
	for i, f := range frames {
		if len(f) != oledbitmap.FrameSize {
			return fmt.Errorf("export: frame %d is %d bytes, want %d", i, len(f), oledbitmap.FrameSize)
		}
	}

	if compress {
		enc, zerr := zstd.NewWriter(w, zstd.WithEncoderLevel(zstd.SpeedBestCompression))
		if zerr != nil {
			return fmt.Errorf("export: %w", zerr)
		}
		defer func() {
			if cerr := enc.Close(); err == nil && cerr != nil {
				err = fmt.Errorf("export: %w", cerr)
			}
		}()
		w = enc
	}

	h := header{
		Magic:  Magic,
		Width:  oledbitmap.Width,
		Height: oledbitmap.Height,
		Count:  uint16(len(frames)),
	}
	if err := binary.Write(w, binary.LittleEndian, h); err != nil {
		return fmt.Errorf("export: %w", err)
	}
	for _, f := range frames {
		if _, err := w.Write(f); err != nil {
			return fmt.Errorf("export: %w", err)
		}
	}
	return nil
}

// ReadBinary reads a container written by WriteBinary, compressed or not.
func ReadBinary(r io.Reader) ([][]byte, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("export: %w", err)
	}

	if !bytes.HasPrefix(data, Magic[:]) {
		dec, err := zstd.NewReader(nil)
		if err != nil {
			return nil, fmt.Errorf("export: %w", err)
		}
		defer dec.Close()
		if data, err = dec.DecodeAll(data, nil); err != nil {
			return nil, errBadMagic
		}
	}

	var h header
	rd := bytes.NewReader(data)
	if err := binary.Read(rd, binary.LittleEndian, &h); err != nil {
		return nil, errTruncated
	}
	if h.Magic != Magic {
		return nil, errBadMagic
	}
	if int(h.Width) != oledbitmap.Width || int(h.Height) != oledbitmap.Height {
		return nil, fmt.Errorf("export: unsupported geometry %dx%d", h.Width, h.Height)
	}

	frames := make([][]byte, h.Count)
	for i := range frames {
		frames[i] = make([]byte, oledbitmap.FrameSize)
		if _, err := io.ReadFull(rd, frames[i]); err != nil {
			return nil, errTruncated
		}
	}
	return frames, nil
}

// Pix collects the page bytes of frames in order.
func Pix(frames []*oledbitmap.Frame) [][]byte {
	out := make([][]byte, len(frames))
	for i, f := range frames {
		out[i] = f.Pix
	}
	return out
}
