package langsvc

import (
	"fortio.org/safecast"

	"hkanno/internal/ast"
	"hkanno/internal/parser"
	"hkanno/internal/source"
)

// Token types, in legend order.
const (
	TokenNumber uint32 = iota
	TokenKeyword
	TokenVariable
	TokenComment
	TokenInvalid
	TokenFunction
	TokenParameter
)

// TokenTypes is the semantic token legend.
var TokenTypes = []string{"number", "keyword", "variable", "comment", "invalid", "function", "parameter"}

type tokenEncoder struct {
	data     []uint32
	lastLine int
	lastCol  int
}

// push appends one token as a relative 5-tuple. Tokens must arrive in
// document order; zero-width tokens are dropped.
func (e *tokenEncoder) push(pos source.Position, typ uint32) {
	if pos.IsZero() || pos.Empty() {
		return
	}
	line, col := pos.Line-1, pos.StartColumn-1
	deltaLine := line - e.lastLine
	deltaStart := col
	if deltaLine == 0 {
		deltaStart = col - e.lastCol
	}
	dl, err1 := safecast.Conv[uint32](deltaLine)
	ds, err2 := safecast.Conv[uint32](deltaStart)
	ln, err3 := safecast.Conv[uint32](pos.Len())
	if err1 != nil || err2 != nil || err3 != nil {
		return
	}
	e.data = append(e.data, dl, ds, ln, typ, 0)
	e.lastLine, e.lastCol = line, col
}

// SemanticTokens encodes every classified field of doc.
func SemanticTokens(doc *ast.Document) []uint32 {
	if doc == nil {
		return []uint32{}
	}
	e := &tokenEncoder{data: make([]uint32, 0, len(doc.Lines)*10)}
	for _, n := range doc.Lines {
		lineTokens(e, n)
	}
	return e.data
}

func lineTokens(e *tokenEncoder, n ast.Node) {
	switch n.Kind {
	case ast.KindComment:
		c := n.Comment
		if c.Meta == nil {
			e.push(c.Hash.Pos.Cover(c.Comment.Pos), TokenComment)
			return
		}
		e.push(c.Hash.Pos, TokenComment)
		e.push(c.Meta.Key.Pos, TokenVariable)
		if _, ok := parser.ParseNumber(c.Meta.Value.Raw); ok {
			e.push(c.Meta.Value.Pos, TokenNumber)
		} else {
			e.push(c.Meta.Value.Pos, TokenComment)
		}
	case ast.KindText:
		t := n.Text
		e.push(t.Time.Pos, TokenNumber)
		if p := t.Payload; p != nil {
			e.push(p.Prefix.Pos, TokenKeyword)
			e.push(p.Name.Pos, TokenFunction)
			for _, param := range p.Params {
				e.push(param.Value.Pos, TokenParameter)
			}
			return
		}
		e.push(t.Text.Pos, TokenVariable)
	case ast.KindMotion:
		m := n.Motion
		e.push(m.Time.Pos, TokenNumber)
		e.push(m.Verb.Pos, TokenKeyword)
		for _, a := range m.Axes {
			argToken(e, a)
		}
		e.push(m.Extra.Pos, TokenInvalid)
	case ast.KindRotation:
		r := n.Rotation
		e.push(r.Time.Pos, TokenNumber)
		e.push(r.Verb.Pos, TokenKeyword)
		argToken(e, r.Degrees)
		e.push(r.Extra.Pos, TokenInvalid)
	case ast.KindInvalid:
		e.push(n.Invalid.Time.Pos, TokenInvalid)
	}
}

func argToken(e *tokenEncoder, a ast.Arg) {
	if a.Value.Valid {
		e.push(a.Value.Pos, TokenNumber)
	} else {
		e.push(a.Value.Pos, TokenInvalid)
	}
}
