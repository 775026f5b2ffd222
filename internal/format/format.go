package format

import (
	"strings"
	"unicode"

	"hkanno/internal/source"
)

// Text formats an hkanno document. Line endings follow the input: CRLF input
// stays CRLF.
func Text(text string) string {
	newline := "\n"
	if strings.Contains(text, "\r\n") {
		newline = "\r\n"
	}
	w := NewWriter(len(text), newline)
	for _, line := range source.Lines(text) {
		w.Line()
		Line(w, line)
	}
	return w.String()
}

// Line writes the formatted form of a single line into w.
func Line(w *Writer, line string) {
	trimmed := strings.TrimLeftFunc(line, unicode.IsSpace)
	if strings.HasPrefix(trimmed, "#") {
		w.WriteString(trimmed)
		return
	}
	for i, f := range strings.Fields(trimmed) {
		if i > 0 {
			w.Space()
		}
		w.WriteString(f)
	}
}

// Changed reports whether Text would modify text.
func Changed(text string) bool {
	return Text(text) != text
}
