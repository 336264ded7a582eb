package sequence

import (
	"slices"
	"strings"
)

// run is one maximal stretch of digits or non-digits in a file name.
type run struct {
	text  string
	digit bool
}

// tokenize splits name into alternating non-digit and digit runs. The first
// run is always a non-digit run, possibly empty, so runs at the same position
// of two names always have the same kind.
func tokenize(name string) []run {
	runs := []run{{}}
	start := 0
	for i := 0; i <= len(name); i++ {
		if i < len(name) && isDigit(name[i]) == runs[len(runs)-1].digit {
			continue
		}
		runs[len(runs)-1].text = name[start:i]
		if i == len(name) {
			break
		}
		runs = append(runs, run{digit: isDigit(name[i])})
		start = i
	}
	return runs
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}

// compareNumbers compares two ASCII digit strings by integer value without
// parsing them, so runs of any length are ordered correctly.
func compareNumbers(a, b string) int {
	a = strings.TrimLeft(a, "0")
	b = strings.TrimLeft(b, "0")
	if len(a) != len(b) {
		if len(a) < len(b) {
			return -1
		}
		return 1
	}
	return strings.Compare(a, b)
}

// Compare orders two file names naturally: digit runs compare by integer
// value, other runs compare case-insensitively. Names whose keys tie, such as
// "f01" and "f1", fall back to plain byte order to keep the result stable.
func Compare(a, b string) int {
	ra, rb := tokenize(a), tokenize(b)
	for i := 0; i < len(ra) && i < len(rb); i++ {
		var c int
		if ra[i].digit {
			c = compareNumbers(ra[i].text, rb[i].text)
		} else {
			c = strings.Compare(strings.ToLower(ra[i].text), strings.ToLower(rb[i].text))
		}
		if c != 0 {
			return c
		}
	}
	if len(ra) != len(rb) {
		if len(ra) < len(rb) {
			return -1
		}
		return 1
	}
	return strings.Compare(a, b)
}

// Sort orders names in place using Compare.
func Sort(names []string) {
	slices.SortFunc(names, Compare)
}
