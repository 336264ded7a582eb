package oledbitmap

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// bytesPerLine is the number of hex literals per array row.
const bytesPerLine = 16

// FormatArray renders pix as a C array declaration named symbol.
//
//	// name - 128x64像素，1位单色位图
//	const uint8_t name[] = {
//	    0x00, 0x00, ..., 0x00,
//	};
func FormatArray(symbol string, pix []byte) string {
	var sb strings.Builder
	sb.Grow(len(symbol)*2 + len(pix)*6 + len(pix)/bytesPerLine*5 + 96)

	fmt.Fprintf(&sb, "// %s - %dx%d像素，1位单色位图\n", symbol, Width, Height)
	fmt.Fprintf(&sb, "const uint8_t %s[] = {\n", symbol)

	for i := 0; i < len(pix); i += bytesPerLine {
		end := min(i+bytesPerLine, len(pix))
		sb.WriteString("    ")
		for j, b := range pix[i:end] {
			if j > 0 {
				sb.WriteString(", ")
			}
			fmt.Fprintf(&sb, "0x%02X", b)
		}
		sb.WriteString(",\n")
	}

	sb.WriteString("};\n")
	return sb.String()
}

// Text returns the C array declaration of the frame.
func (f *Frame) Text() string {
	return FormatArray(f.Symbol, f.Pix)
}

// WriteTo writes the C array declaration of the frame to w.
func (f *Frame) WriteTo(w io.Writer) (int64, error) {
	n, err := io.WriteString(w, f.Text())
	return int64(n), err
}

// ParsedArray is one array read back by ParseArrays.
type ParsedArray struct {
	Symbol string
	Pix    []byte
}

// ParseArrays reads every "const uint8_t name[] = { ... };" declaration in r,
// as produced by FormatArray or a batch conversion. Other lines are ignored.
func ParseArrays(r io.Reader) ([]ParsedArray, error) {
	var (
		arrays []ParsedArray
		cur    *ParsedArray
		line   int
	)

	sc := bufio.NewScanner(r)
	for sc.Scan() {
		line++
		text := strings.TrimSpace(sc.Text())

		if cur == nil {
			if !strings.HasPrefix(text, "const uint8_t ") {
				continue
			}
			name, _, ok := strings.Cut(strings.TrimPrefix(text, "const uint8_t "), "[")
			if !ok {
				return nil, fmt.Errorf("oledbitmap: line %d: malformed declaration", line)
			}
			cur = &ParsedArray{Symbol: strings.TrimSpace(name)}
			continue
		}

		if strings.HasPrefix(text, "};") {
			arrays = append(arrays, *cur)
			cur = nil
			continue
		}

		for _, tok := range strings.Split(text, ",") {
			tok = strings.TrimSpace(tok)
			if tok == "" {
				continue
			}
			v, err := strconv.ParseUint(tok, 0, 8)
			if err != nil {
				return nil, fmt.Errorf("oledbitmap: line %d: %w", line, err)
			}
			cur.Pix = append(cur.Pix, byte(v))
		}
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	if cur != nil {
		return nil, fmt.Errorf("oledbitmap: unterminated array %s", cur.Symbol)
	}

	return arrays, nil
}
