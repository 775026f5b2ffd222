package langsvc

import (
	"strings"

	"hkanno/internal/ast"
	"hkanno/internal/parser"
	"hkanno/internal/source"
)

const unknown = "<unknown>"

// nodeAt returns the node on line, or a blank node past the end of doc.
func nodeAt(doc *ast.Document, line int) ast.Node {
	if n, ok := doc.Node(line); ok {
		return n
	}
	return parser.ParseLine("", line)
}

// splice replaces columns [start, end) of line with insert.
func splice(line string, start, end int, insert string) string {
	s := source.ByteOffset(line, start)
	e := source.ByteOffset(line, end)
	if e < s {
		e = s
	}
	return line[:s] + insert + line[e:]
}

var snippetEscaper = strings.NewReplacer(`\`, `\\`, `$`, `\$`, `}`, `\}`)

// escapeSnippet makes literal text safe inside a snippet.
func escapeSnippet(s string) string {
	return snippetEscaper.Replace(s)
}

// rawOr returns raw, or the unknown marker when the token is missing.
func rawOr(raw string) string {
	if raw == "" {
		return unknown
	}
	return raw
}
