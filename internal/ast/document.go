package ast

import "hkanno/internal/diag"

// Document is a parsed hkanno text: one node per source line.
type Document struct {
	Lines       []Node
	Diagnostics []diag.Diagnostic
}

// Node returns the node on a 1-based line.
func (d *Document) Node(line int) (Node, bool) {
	if d == nil || line < 1 || line > len(d.Lines) {
		return Node{}, false
	}
	return d.Lines[line-1], true
}

// Timed returns every timed node in document order.
func (d *Document) Timed() []Node {
	if d == nil {
		return nil
	}
	out := make([]Node, 0, len(d.Lines))
	for _, n := range d.Lines {
		if n.Timed() {
			out = append(out, n)
		}
	}
	return out
}

// Meta returns header comments keyed by their name. Later entries win.
func (d *Document) Meta() map[string]string {
	out := make(map[string]string)
	if d == nil {
		return out
	}
	for _, n := range d.Lines {
		if n.Kind == KindComment && n.Comment.Meta != nil {
			out[n.Comment.Meta.Key.Value] = n.Comment.Meta.Value.Value
		}
	}
	return out
}
