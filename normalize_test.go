package pandocreader

import (
	"fmt"
	"strings"
	"testing"
)

func TestCleanDiagnostics(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "trailing whitespace",
			input: "Unknown input format   \nTry pandoc --help   \n",
			want:  "Unknown input format\nTry pandoc --help",
		},
		{
			name:  "blank lines dropped",
			input: "first\n\n\n  \nsecond",
			want:  "first\nsecond",
		},
		{
			name:  "crlf",
			input: "first\r\nsecond\r\n",
			want:  "first\nsecond",
		},
		{
			name:  "control characters",
			input: "\x1b[31merror\x1b[0m\x00",
			want:  "[31merror[0m",
		},
		{
			name:  "invalid utf8",
			input: "bad \xff byte",
			want:  "bad  byte",
		},
		{
			name:  "empty",
			input: "",
			want:  "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := cleanDiagnostics(tt.input)
			if got != tt.want {
				t.Errorf("cleanDiagnostics(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestCleanDiagnosticsCapsLines(t *testing.T) {
	var b strings.Builder
	for i := 0; i < maxDiagnosticLines+5; i++ {
		fmt.Fprintf(&b, "[WARNING] Citeproc: citation ref%d not found\n", i)
	}

	got := strings.Split(cleanDiagnostics(b.String()), "\n")
	if len(got) != maxDiagnosticLines+1 {
		t.Fatalf("got %d lines, want %d", len(got), maxDiagnosticLines+1)
	}
	if got[0] != "[WARNING] Citeproc: citation ref0 not found" {
		t.Errorf("first line = %q", got[0])
	}
	if last := got[len(got)-1]; last != "... 5 more line(s)" {
		t.Errorf("last line = %q, want %q", last, "... 5 more line(s)")
	}
}
