package parser

import (
	"unicode"

	"hkanno/internal/source"
	"hkanno/internal/token"
)

// Cursor walks one line rune by rune and tracks UTF-16 columns.
type Cursor struct {
	Line  int
	text  string
	runes []rune
	offs  []int // byte offset of runes[i]; offs[len(runes)] == len(text)
	cols  []int // 1-based UTF-16 column of runes[i]
	Off   int
}

// NewCursor prepares a cursor over text on the given 1-based line.
func NewCursor(text string, line int) *Cursor {
	c := &Cursor{Line: line, text: text}
	col := 1
	for off, r := range text {
		c.runes = append(c.runes, r)
		c.offs = append(c.offs, off)
		c.cols = append(c.cols, col)
		col += source.RuneUnits(r)
	}
	c.offs = append(c.offs, len(text))
	c.cols = append(c.cols, col)
	return c
}

// EOF reports whether the cursor reached the end of the line.
func (c *Cursor) EOF() bool {
	return c.Off >= len(c.runes)
}

// Peek returns the current rune, or 0 at the end.
func (c *Cursor) Peek() rune {
	if c.EOF() {
		return 0
	}
	return c.runes[c.Off]
}

// Bump advances one rune and returns it.
func (c *Cursor) Bump() rune {
	if c.EOF() {
		return 0
	}
	r := c.runes[c.Off]
	c.Off++
	return r
}

// Len is the number of runes on the line.
func (c *Cursor) Len() int { return len(c.runes) }

// Col is the column of rune index i.
func (c *Cursor) Col(i int) int {
	if i < 0 {
		i = 0
	}
	if i > len(c.runes) {
		i = len(c.runes)
	}
	return c.cols[i]
}

// Pos covers rune indices [start, end).
func (c *Cursor) Pos(start, end int) source.Position {
	return source.Span(c.Line, c.Col(start), c.Col(end))
}

// Here is a zero-width position at the cursor.
func (c *Cursor) Here() source.Position {
	return source.At(c.Line, c.Col(c.Off))
}

// Slice returns the text between rune indices [start, end).
func (c *Cursor) Slice(start, end int) string {
	if start < 0 {
		start = 0
	}
	if end > len(c.runes) {
		end = len(c.runes)
	}
	if start >= end {
		return ""
	}
	return c.text[c.offs[start]:c.offs[end]]
}

// Space consumes a run of whitespace.
func (c *Cursor) Space() token.Space {
	start := c.Off
	for !c.EOF() && unicode.IsSpace(c.Peek()) {
		c.Off++
	}
	if c.Off == start {
		return token.Space{}
	}
	return token.Space{Raw: c.Slice(start, c.Off), Pos: c.Pos(start, c.Off)}
}

// Word consumes a run of non-whitespace and returns its rune range.
func (c *Cursor) Word() (start, end int) {
	start = c.Off
	for !c.EOF() && !unicode.IsSpace(c.Peek()) {
		c.Off++
	}
	return start, c.Off
}

// ContentEnd is the rune index where trailing whitespace begins.
func (c *Cursor) ContentEnd() int {
	end := len(c.runes)
	for end > c.Off && unicode.IsSpace(c.runes[end-1]) {
		end--
	}
	return end
}

// Text builds a string field over [start, end).
func (c *Cursor) Text(start, end int) token.Field[string] {
	if start >= end {
		return token.Missing[string](source.At(c.Line, c.Col(start)))
	}
	raw := c.Slice(start, end)
	return token.Field[string]{Value: raw, Raw: raw, Pos: c.Pos(start, end), Valid: true}
}
