package source

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

// Position is a range on a single line. Lines and columns are 1-based,
// EndColumn is exclusive and columns count UTF-16 code units.
type Position struct {
	Line        int `json:"line"`
	StartColumn int `json:"startColumn"`
	EndColumn   int `json:"endColumn"`
}

// At returns a zero-width position at column col.
func At(line, col int) Position {
	return Position{Line: line, StartColumn: col, EndColumn: col}
}

// Span returns a position covering [start, end).
func Span(line, start, end int) Position {
	if end < start {
		end = start
	}
	return Position{Line: line, StartColumn: start, EndColumn: end}
}

// FullLine covers every column of text on the given line.
func FullLine(line int, text string) Position {
	return Span(line, 1, UTF16Len(text)+1)
}

// IsZero reports whether p was never assigned.
func (p Position) IsZero() bool {
	return p.Line == 0 && p.StartColumn == 0 && p.EndColumn == 0
}

// Len is the width in UTF-16 units.
func (p Position) Len() int {
	if p.EndColumn < p.StartColumn {
		return 0
	}
	return p.EndColumn - p.StartColumn
}

// Empty reports a zero-width position.
func (p Position) Empty() bool {
	return p.Len() == 0
}

// Contains reports whether a caret at col touches p. The end column is
// inclusive so a caret right after a token still selects it.
func (p Position) Contains(col int) bool {
	return col >= p.StartColumn && col <= p.EndColumn
}

// Cover extends p to include other. Positions on different lines are not merged.
func (p Position) Cover(other Position) Position {
	if p.IsZero() {
		return other
	}
	if other.IsZero() || other.Line != p.Line {
		return p
	}
	if other.StartColumn < p.StartColumn {
		p.StartColumn = other.StartColumn
	}
	if other.EndColumn > p.EndColumn {
		p.EndColumn = other.EndColumn
	}
	return p
}

// Widen grows a position narrower than n columns so editors can draw it.
func (p Position) Widen(n int) Position {
	if p.Len() >= n {
		return p
	}
	p.EndColumn = p.StartColumn + n
	return p
}

func (p Position) String() string {
	return fmt.Sprintf("%d:%d-%d", p.Line, p.StartColumn, p.EndColumn)
}

// Cursor is a caret location between characters. Column 1 is before the
// first character of the line.
type Cursor struct {
	Line   int `json:"line" msgpack:"line"`
	Column int `json:"column" msgpack:"column"`
}

// UTF16Len counts the UTF-16 code units needed to encode s.
func UTF16Len(s string) int {
	n := 0
	for _, r := range s {
		n += RuneUnits(r)
	}
	return n
}

// RuneUnits is the UTF-16 width of r.
func RuneUnits(r rune) int {
	if r >= 0x10000 && r <= utf8.MaxRune {
		return 2
	}
	return 1
}

// ByteOffset converts a 1-based UTF-16 column into a byte offset within line.
// Columns past the end clamp to len(line).
func ByteOffset(line string, col int) int {
	if col <= 1 {
		return 0
	}
	units := 0
	for i, r := range line {
		if units >= col-1 {
			return i
		}
		units += RuneUnits(r)
	}
	return len(line)
}

// Column converts a byte offset within line into a 1-based UTF-16 column.
func Column(line string, offset int) int {
	if offset > len(line) {
		offset = len(line)
	}
	if offset < 0 {
		offset = 0
	}
	return UTF16Len(line[:offset]) + 1
}

// Lines splits text on '\n' and drops a trailing '\r' from every line.
// The result always has at least one element.
func Lines(text string) []string {
	lines := strings.Split(text, "\n")
	for i, l := range lines {
		lines[i] = strings.TrimSuffix(l, "\r")
	}
	return lines
}

// Line returns the n-th (1-based) line of text, or "" when out of range.
func Line(text string, n int) string {
	if n < 1 {
		return ""
	}
	lines := Lines(text)
	if n > len(lines) {
		return ""
	}
	return lines[n-1]
}
