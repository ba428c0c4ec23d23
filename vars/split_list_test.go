package vars

import (
	"fmt"
	"testing"
)

func TestSplitList(t *testing.T) {
	for _, pair := range []struct {
		input    string
		expected string
	}{
		{"wav,mp3", "[wav mp3]"},
		{" WAV , mp3 ", "[wav mp3]"},
		{"json,,md,", "[json md]"},
		{"", "[]"},
		{" , ", "[]"},
	} {
		got := fmt.Sprintf("%v", SplitList(pair.input))
		if got != pair.expected {
			t.Fatalf("SplitList(%q) = %s, want %s", pair.input, got, pair.expected)
		}
	}
}
