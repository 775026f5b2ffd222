package langsvc

import (
	"hkanno/internal/ast"
	"hkanno/internal/payload"
	"hkanno/internal/source"
)

// HintKind mirrors the two inlay hint kinds editors distinguish.
type HintKind uint8

const (
	HintType HintKind = iota + 1
	HintParameter
)

// InlayHint is a label drawn right before Pos.
type InlayHint struct {
	Pos   source.Cursor
	Label string
	Kind  HintKind
}

// HintOptions selects which labels are produced.
type HintOptions struct {
	Time  bool
	Event bool
	Args  bool
}

// DefaultHintOptions enables every label.
var DefaultHintOptions = HintOptions{Time: true, Event: true, Args: true}

// InlayHints labels the fields on lines [from, to] with every label enabled.
func InlayHints(doc *ast.Document, from, to int) []InlayHint {
	return InlayHintsWith(doc, from, to, DefaultHintOptions)
}

// InlayHintsWith labels the fields on lines [from, to].
func InlayHintsWith(doc *ast.Document, from, to int, opts HintOptions) []InlayHint {
	if doc == nil {
		return nil
	}
	if from < 1 {
		from = 1
	}
	if to > len(doc.Lines) {
		to = len(doc.Lines)
	}
	var hints []InlayHint
	add := func(pos source.Position, label string, kind HintKind) {
		if pos.IsZero() {
			return
		}
		hints = append(hints, InlayHint{
			Pos:   source.Cursor{Line: pos.Line, Column: pos.StartColumn},
			Label: label,
			Kind:  kind,
		})
	}
	for line := from; line <= to; line++ {
		n := doc.Lines[line-1]
		t, timed := n.Time()
		if !timed {
			continue
		}
		if opts.Time {
			add(t.Pos, "time:", HintType)
		}
		switch n.Kind {
		case ast.KindText:
			if opts.Event && n.Text.Text.Present() {
				add(n.Text.Text.Pos, "event:", HintType)
			}
			if p := n.Text.Payload; opts.Args && p != nil {
				if ins, ok := payload.Lookup(p.Name.Value); ok {
					for i, param := range p.Params {
						if name := ins.Param(i); name != "" && param.Value.Present() {
							add(param.Value.Pos, name+":", HintParameter)
						}
					}
				}
			}
		case ast.KindMotion:
			if opts.Event {
				add(n.Motion.Verb.Pos, "event:", HintType)
			}
			if opts.Args {
				for i, a := range n.Motion.Axes {
					if a.Value.Present() {
						add(a.Value.Pos, ast.AxisNames[i]+":", HintParameter)
					}
				}
			}
		case ast.KindRotation:
			if opts.Event {
				add(n.Rotation.Verb.Pos, "event:", HintType)
			}
			if opts.Args && n.Rotation.Degrees.Value.Present() {
				add(n.Rotation.Degrees.Value.Pos, "degrees:", HintParameter)
			}
		}
	}
	return hints
}
