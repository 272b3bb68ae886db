package pandocreader

import (
	"fmt"
	"strings"
	"unicode"
)

// maxDiagnosticLines caps the stderr lines kept in a ConversionError; pandoc
// may print one warning per unresolved reference.
const maxDiagnosticLines = 20

// cleanDiagnostics turns converter stderr into a compact message: invalid
// UTF-8 and control characters are dropped, blank lines removed, each line
// trimmed, and output beyond maxDiagnosticLines summarized.
func cleanDiagnostics(stderr string) string {
	stderr = strings.ToValidUTF8(stderr, "")

	var lines []string
	for _, line := range strings.FieldsFunc(stderr, func(r rune) bool { return r == '\n' || r == '\r' }) {
		line = strings.TrimSpace(strings.Map(func(r rune) rune {
			if unicode.IsControl(r) && r != '\t' {
				return -1
			}
			return r
		}, line))
		if line != "" {
			lines = append(lines, line)
		}
	}

	if extra := len(lines) - maxDiagnosticLines; extra > 0 {
		lines = append(lines[:maxDiagnosticLines], fmt.Sprintf("... %d more line(s)", extra))
	}
	return strings.Join(lines, "\n")
}
