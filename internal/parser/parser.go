// Package parser turns hkanno text into ast nodes, one node per line.
// ParseLine is total: every input produces a node and nothing panics.
package parser

import (
	"context"
	"fmt"
	"strconv"
	"unicode"

	"golang.org/x/text/cases"

	"hkanno/internal/ast"
	"hkanno/internal/payload"
	"hkanno/internal/source"
	"hkanno/internal/token"
	"hkanno/internal/trace"
)

// Parse parses every line of text.
func Parse(text string) *ast.Document {
	lines := source.Lines(text)
	doc := &ast.Document{Lines: make([]ast.Node, len(lines))}
	for i, l := range lines {
		doc.Lines[i] = ParseLine(l, i+1)
	}
	return doc
}

// ParseContext is Parse wrapped in a trace span taken from ctx.
func ParseContext(ctx context.Context, text string) *ast.Document {
	_, span := trace.Start(ctx, trace.ScopeDocument, "parse")
	doc := Parse(text)
	span.WithExtra("lines", strconv.Itoa(len(doc.Lines))).End("")
	return doc
}

// ParseLine classifies and parses a single line.
func ParseLine(text string, line int) ast.Node {
	c := NewCursor(text, line)
	node := ast.Node{Line: line, Source: text}

	leading := c.Space()
	if c.EOF() {
		node.Kind = ast.KindBlank
		node.Blank = &ast.BlankNode{Leading: leading}
		return node
	}
	if c.Peek() == '#' {
		node.Kind = ast.KindComment
		node.Comment = parseComment(c, leading)
		return node
	}

	start, end := c.Word()
	raw := c.Slice(start, end)
	value, ok := ParseNumber(raw)
	if !ok {
		node.Kind = ast.KindInvalid
		node.Invalid = parseInvalid(c, leading, start, end)
		return node
	}
	time := token.Field[float64]{Value: value, Raw: raw, Pos: c.Pos(start, end), Valid: true}

	gap := c.Space()
	if c.EOF() {
		node.Kind = ast.KindText
		node.Text = &ast.TextNode{
			Leading: leading,
			Time:    time,
			Gap:     gap,
			Text:    token.Missing[string](c.Here()),
		}
		return node
	}

	verbStart := c.Off
	vs, ve := c.Word()
	switch cases.Fold().String(c.Slice(vs, ve)) {
	case ast.VerbMotion:
		node.Kind = ast.KindMotion
		node.Motion = parseMotion(c, leading, time, gap, c.Text(vs, ve))
	case ast.VerbRotation:
		node.Kind = ast.KindRotation
		node.Rotation = parseRotation(c, leading, time, gap, c.Text(vs, ve))
	default:
		c.Off = verbStart
		node.Kind = ast.KindText
		node.Text = parseText(c, leading, time, gap)
	}
	return node
}

func parseComment(c *Cursor, leading token.Space) *ast.CommentNode {
	n := &ast.CommentNode{Leading: leading}
	hashAt := c.Off
	c.Bump()
	n.Hash = c.Text(hashAt, c.Off)
	n.Gap = c.Space()
	end := c.ContentEnd()
	n.Comment = c.Text(c.Off, end)
	n.Meta = parseMeta(c, c.Off, end)
	c.Off = end
	n.Trailing = c.Space()
	return n
}

// parseMeta recognises "key: value" where key is an identifier.
func parseMeta(c *Cursor, start, end int) *ast.Meta {
	colon := -1
	for i := start; i < end; i++ {
		r := c.runes[i]
		if r == ':' {
			colon = i
			break
		}
		if !isIdentRune(r) && !unicode.IsSpace(r) {
			return nil
		}
	}
	if colon < 0 {
		return nil
	}
	keyEnd := colon
	for keyEnd > start && unicode.IsSpace(c.runes[keyEnd-1]) {
		keyEnd--
	}
	if keyEnd == start {
		return nil
	}
	for i := start; i < keyEnd; i++ {
		if !isIdentRune(c.runes[i]) {
			return nil
		}
	}
	valStart := colon + 1
	for valStart < end && unicode.IsSpace(c.runes[valStart]) {
		valStart++
	}
	return &ast.Meta{
		Key:   c.Text(start, keyEnd),
		Colon: c.Pos(colon, colon+1),
		Value: c.Text(valStart, end),
	}
}

func isIdentRune(r rune) bool {
	return r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r)
}

func parseInvalid(c *Cursor, leading token.Space, start, end int) *ast.InvalidNode {
	raw := c.Slice(start, end)
	n := &ast.InvalidNode{
		Leading: leading,
		Time:    token.Field[string]{Raw: raw, Value: raw, Pos: c.Pos(start, end)},
		Reason:  fmt.Sprintf("Time must be a valid number, got %q", raw),
	}
	c.Space()
	n.Rest = c.Text(c.Off, c.ContentEnd())
	return n
}

func parseText(c *Cursor, leading token.Space, time token.Field[float64], gap token.Space) *ast.TextNode {
	n := &ast.TextNode{Leading: leading, Time: time, Gap: gap}
	start, end := c.Off, c.ContentEnd()
	n.Text = c.Text(start, end)
	n.Payload = parsePayload(c, start, end)
	c.Off = end
	n.Trailing = c.Space()
	return n
}

func parseNumberArg(c *Cursor) ast.Arg {
	var arg ast.Arg
	arg.Gap = c.Space()
	if c.EOF() {
		arg.Value = token.Missing[float64](c.Here())
		return arg
	}
	start, end := c.Word()
	raw := c.Slice(start, end)
	v, ok := ParseNumber(raw)
	arg.Value = token.Field[float64]{Value: v, Raw: raw, Pos: c.Pos(start, end), Valid: ok}
	return arg
}

func parseExtra(c *Cursor) (token.Field[string], token.Space) {
	gap := c.Space()
	if c.EOF() {
		return token.Missing[string](c.Here()), gap
	}
	end := c.ContentEnd()
	extra := c.Text(c.Off, end)
	c.Off = end
	return extra, c.Space()
}

func parseMotion(c *Cursor, leading token.Space, time token.Field[float64], gap token.Space, verb token.Field[string]) *ast.MotionNode {
	n := &ast.MotionNode{Leading: leading, Time: time, Gap: gap, Verb: verb}
	for i := range n.Axes {
		n.Axes[i] = parseNumberArg(c)
	}
	n.Extra, n.Trailing = parseExtra(c)
	return n
}

func parseRotation(c *Cursor, leading token.Space, time token.Field[float64], gap token.Space, verb token.Field[string]) *ast.RotationNode {
	n := &ast.RotationNode{Leading: leading, Time: time, Gap: gap, Verb: verb}
	n.Degrees = parseNumberArg(c)
	n.Extra, n.Trailing = parseExtra(c)
	return n
}

// parsePayload reads PIE.@NAME|p1|p2 inside the text range [start, end).
// Parameters run to the next '|' and may contain spaces.
func parsePayload(c *Cursor, start, end int) *ast.Payload {
	i := start
	for i < end && isIdentRune(c.runes[i]) {
		i++
	}
	if i == start || i >= end || c.runes[i] != '.' || !payload.IsNamespace(c.Slice(start, i)) {
		return nil
	}
	p := &ast.Payload{
		Prefix: c.Text(start, i),
		Dot:    c.Pos(i, i+1),
	}
	i++
	if i < end && c.runes[i] == '@' {
		p.At = c.Text(i, i+1)
		i++
	} else {
		p.At = token.Missing[string](source.At(c.Line, c.Col(i)))
	}
	nameStart := i
	for i < end && c.runes[i] != '|' {
		i++
	}
	p.Name = c.Text(nameStart, i)
	for i < end && c.runes[i] == '|' {
		pipe := c.Pos(i, i+1)
		i++
		valStart := i
		for i < end && c.runes[i] != '|' {
			i++
		}
		p.Params = append(p.Params, ast.Param{Pipe: pipe, Value: c.Text(valStart, i)})
	}
	return p
}
