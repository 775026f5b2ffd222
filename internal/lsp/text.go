package lsp

import (
	"strings"

	"hkanno/internal/source"
)

func applyChanges(text string, changes []textDocumentContentChangeEvent) string {
	for _, change := range changes {
		if change.Range == nil {
			text = change.Text
			continue
		}
		start := offsetForPosition(text, change.Range.Start)
		end := offsetForPosition(text, change.Range.End)
		if end < start {
			end = start
		}
		text = text[:start] + change.Text + text[end:]
	}
	return text
}

// offsetForPosition converts a 0-based line and UTF-16 character into a byte
// offset, clamping to the line and text bounds.
func offsetForPosition(text string, pos position) int {
	if pos.Line < 0 || pos.Character < 0 {
		return 0
	}
	lineStart := 0
	for line := 0; line < pos.Line; line++ {
		nl := strings.IndexByte(text[lineStart:], '\n')
		if nl < 0 {
			return len(text)
		}
		lineStart += nl + 1
	}
	lineEnd := len(text)
	if nl := strings.IndexByte(text[lineStart:], '\n'); nl >= 0 {
		lineEnd = lineStart + nl
	}
	return lineStart + source.ByteOffset(text[lineStart:lineEnd], pos.Character+1)
}

// cursorFor maps an LSP position onto a 1-based caret.
func cursorFor(pos position) source.Cursor {
	return source.Cursor{Line: max(pos.Line, 0) + 1, Column: max(pos.Character, 0) + 1}
}

func positionFor(c source.Cursor) position {
	return position{Line: max(c.Line-1, 0), Character: max(c.Column-1, 0)}
}

func rangeFor(p source.Position) lspRange {
	line := max(p.Line-1, 0)
	return lspRange{
		Start: position{Line: line, Character: max(p.StartColumn-1, 0)},
		End:   position{Line: line, Character: max(p.EndColumn-1, 0)},
	}
}

// fullRange covers the whole of text.
func fullRange(text string) lspRange {
	lines := source.Lines(text)
	last := lines[len(lines)-1]
	return lspRange{
		End: position{Line: len(lines) - 1, Character: source.UTF16Len(last)},
	}
}
