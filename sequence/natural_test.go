package sequence

import (
	"slices"
	"testing"
)

func TestSortNatural(t *testing.T) {
	tests := []struct {
		name string
		in   []string
		want []string
	}{
		{
			"numeric suffix",
			[]string{"frame1.png", "frame2.png", "frame10.png", "frame9.png"},
			[]string{"frame1.png", "frame2.png", "frame9.png", "frame10.png"},
		},
		{
			"zero padded mixed with plain",
			[]string{"f010.png", "f9.png", "f0011.png", "f1.png"},
			[]string{"f1.png", "f9.png", "f010.png", "f0011.png"},
		},
		{
			"case insensitive text",
			[]string{"B1.png", "a2.png", "A1.png"},
			[]string{"A1.png", "a2.png", "B1.png"},
		},
		{
			"leading digits sort first",
			[]string{"frame.png", "10.png", "2.png"},
			[]string{"2.png", "10.png", "frame.png"},
		},
		{
			"multiple numeric runs",
			[]string{"s2_f10.png", "s2_f2.png", "s10_f1.png", "s1_f99.png"},
			[]string{"s1_f99.png", "s2_f2.png", "s2_f10.png", "s10_f1.png"},
		},
		{
			"huge numbers do not overflow",
			[]string{"f100000000000000000000001.png", "f99999999999999999999.png"},
			[]string{"f99999999999999999999.png", "f100000000000000000000001.png"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := slices.Clone(tt.in)
			Sort(got)
			if !slices.Equal(got, tt.want) {
				t.Errorf("Sort(%v) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestCompare(t *testing.T) {
	tests := []struct {
		a, b string
		want int
	}{
		{"frame2", "frame10", -1},
		{"frame10", "frame2", 1},
		{"frame10", "frame10a", -1},
		{"abc", "ABC", 1}, // tie on key, byte order decides
		{"f01", "f1", -1},
		{"same", "same", 0},
	}

	for _, tt := range tests {
		if got := Compare(tt.a, tt.b); got != tt.want {
			t.Errorf("Compare(%q, %q) = %d, want %d", tt.a, tt.b, got, tt.want)
		}
	}
}

func TestTokenize(t *testing.T) {
	tests := []struct {
		in   string
		want []string
	}{
		{"frame10.png", []string{"frame", "10", ".png"}},
		{"10.png", []string{"", "10", ".png"}},
		{"abc", []string{"abc"}},
		{"a1b22", []string{"a", "1", "b", "22"}},
		{"", []string{""}},
	}

	for _, tt := range tests {
		runs := tokenize(tt.in)
		got := make([]string, len(runs))
		for i, r := range runs {
			got[i] = r.text
			if r.digit != (i%2 == 1) {
				t.Errorf("tokenize(%q)[%d].digit = %v, runs must alternate", tt.in, i, r.digit)
			}
		}
		if !slices.Equal(got, tt.want) {
			t.Errorf("tokenize(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
