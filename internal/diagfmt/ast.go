package diagfmt

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	"hkanno/internal/ast"
	"hkanno/internal/token"
)

type NodeOutput struct {
	Line   int               `json:"line"`
	Kind   string            `json:"kind"`
	Source string            `json:"source,omitempty"`
	Time   *float64          `json:"time,omitempty"`
	Event  *string           `json:"event,omitempty"`
	Fields map[string]string `json:"fields,omitempty"`
}

type DocumentOutput struct {
	Lines []NodeOutput `json:"lines"`
	Timed int          `json:"timed"`
}

// FormatDocumentPretty prints one tree row per line of doc.
func FormatDocumentPretty(w io.Writer, doc *ast.Document) error {
	if doc == nil {
		return fmt.Errorf("no document")
	}
	var b strings.Builder
	fmt.Fprintf(&b, "Document (lines: %d, timed: %d)\n", len(doc.Lines), len(doc.Timed()))
	for i, n := range doc.Lines {
		branch := "├─ "
		if i == len(doc.Lines)-1 {
			branch = "└─ "
		}
		fmt.Fprintf(&b, "%s%d %s", branch, n.Line, n.Kind)
		for _, kv := range nodeFields(n) {
			fmt.Fprintf(&b, " %s=%s", kv[0], kv[1])
		}
		b.WriteByte('\n')
	}
	_, err := io.WriteString(w, b.String())
	return err
}

// FormatDocumentJSON writes doc as an indented JSON object.
func FormatDocumentJSON(w io.Writer, doc *ast.Document) error {
	if doc == nil {
		return fmt.Errorf("no document")
	}
	out := DocumentOutput{Lines: make([]NodeOutput, 0, len(doc.Lines))}
	for _, n := range doc.Lines {
		node := NodeOutput{Line: n.Line, Kind: n.Kind.String(), Source: n.Source}
		if t, ok := n.Time(); ok {
			v := t.Value
			node.Time = &v
			out.Timed++
		}
		if ev, ok := n.Event(); ok {
			node.Event = &ev
		}
		if fields := nodeFields(n); len(fields) > 0 {
			node.Fields = make(map[string]string, len(fields))
			for _, kv := range fields {
				node.Fields[kv[0]] = kv[1]
			}
		}
		out.Lines = append(out.Lines, node)
	}
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(out)
}

// nodeFields lists the decoded fields of n as ordered key/value pairs.
func nodeFields(n ast.Node) [][2]string {
	var out [][2]string
	add := func(k, v string) { out = append(out, [2]string{k, v}) }
	switch n.Kind {
	case ast.KindComment:
		if m := n.Comment.Meta; m != nil {
			add("key", strconv.Quote(m.Key.Value))
			add("value", strconv.Quote(m.Value.Value))
		} else {
			add("comment", strconv.Quote(n.Comment.Comment.Raw))
		}
	case ast.KindText:
		add("time", number(n.Text.Time))
		add("text", strconv.Quote(n.Text.Text.Raw))
		if p := n.Text.Payload; p != nil {
			add("instruction", strconv.Quote(p.Name.Raw))
			add("params", strconv.Itoa(len(p.Params)))
		}
	case ast.KindMotion:
		add("time", number(n.Motion.Time))
		for i, a := range n.Motion.Axes {
			add(ast.AxisNames[i], number(a.Value))
		}
		if n.Motion.Extra.Present() {
			add("extra", strconv.Quote(n.Motion.Extra.Raw))
		}
	case ast.KindRotation:
		add("time", number(n.Rotation.Time))
		add("degrees", number(n.Rotation.Degrees.Value))
		if n.Rotation.Extra.Present() {
			add("extra", strconv.Quote(n.Rotation.Extra.Raw))
		}
	case ast.KindInvalid:
		add("time", strconv.Quote(n.Invalid.Time.Raw))
		add("reason", strconv.Quote(n.Invalid.Reason))
	}
	return out
}

func number(f token.Field[float64]) string {
	switch {
	case !f.Present():
		return "<missing>"
	case !f.Valid:
		return "<malformed " + strconv.Quote(f.Raw) + ">"
	}
	return strconv.FormatFloat(f.Value, 'g', -1, 64)
}
