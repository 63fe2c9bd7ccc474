package common

import "testing"

func TestDetectDelimiter(t *testing.T) {
	cases := []struct {
		line string
		want rune
	}{
		{"a,b,c", ','},
		{"a\tb\tc", '\t'},
		{"a;b;c", ';'},
		{"a|b|c", '|'},
		{"", ','},
		{"single", ','},
	}
	for _, c := range cases {
		if got := DetectDelimiter(c.line); got != c.want {
			t.Errorf("DetectDelimiter(%q) = %q, want %q", c.line, got, c.want)
		}
	}
}
