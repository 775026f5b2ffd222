package langsvc

import (
	"strings"
	"unicode"

	"hkanno/internal/ast"
	"hkanno/internal/parser"
	"hkanno/internal/payload"
	"hkanno/internal/source"
)

// Parameter is one highlighted part of a signature label.
type Parameter struct {
	Label         string
	Documentation string
}

// Signature describes the shape of the line being typed.
type Signature struct {
	Label         string
	Documentation string
	Parameters    []Parameter
}

// Help is the signature help answer. Active indices are 0-based.
type Help struct {
	Signatures      []Signature
	ActiveSignature int
	ActiveParameter int
}

// SignatureHelp describes the field the caret is typing, judged from the text
// left of the caret. Returns nil for invalid lines.
func SignatureHelp(doc *ast.Document, cur source.Cursor) *Help {
	line := nodeAt(doc, cur.Line).Source
	before := line[:source.ByteOffset(line, cur.Column)]
	n := parser.ParseLine(before, cur.Line)
	typing := strings.TrimRightFunc(before, unicode.IsSpace) == before

	switch n.Kind {
	case ast.KindBlank:
		return single("<time: f32>", "time", "Timestamp in seconds (e.g. 0.100000).")
	case ast.KindComment:
		key := "numAnnotations"
		if m := n.Comment.Meta; m != nil {
			key = m.Key.Value
		}
		for _, mk := range metaKeys {
			if mk.key == key {
				return single("# "+mk.key+": <value>", "value", mk.doc)
			}
		}
		return single("# numAnnotations: <usize>", "numAnnotations", metaKeys[3].doc)
	case ast.KindInvalid:
		return nil
	case ast.KindMotion:
		count := n.Motion.Count()
		return verbHelp("animmotion <x: f32> <y: f32> <z: f32>", motionVerbDoc,
			[]string{"<x: f32>", "<y: f32>", "<z: f32>"}, active(count, typing))
	case ast.KindRotation:
		count := 0
		if n.Rotation.Degrees.Value.Present() {
			count = 1
		}
		return verbHelp("animrotation <degrees: f32>", rotationVerbDoc,
			[]string{"<degrees: f32>"}, active(count, typing))
	}

	t := n.Text
	if !t.Gap.Present() {
		return single("<time: f32>", "time", "Timestamp in seconds (e.g. 0.100000).")
	}
	if p := t.Payload; p != nil {
		if ins, ok := payload.Lookup(p.Name.Value); ok && len(p.Params) > 0 {
			params := make([]string, len(ins.Params))
			for i, name := range ins.Params {
				params[i] = "<" + name + ">"
			}
			return verbHelp(ins.Usage(), ins.Summary, params, len(p.Params)-1)
		}
		return single("PIE.@<instruction>|<param1>|<param2>|...", "<instruction>", "Payload instruction name.")
	}
	return single("<text: string>", "text", "Annotation label or event name (e.g. `MCO_DodgeOpen`, `animmotion`, `animrotation`).")
}

// active picks the argument being typed: the last present one while the
// caret touches it, otherwise the next one.
func active(count int, typing bool) int {
	if typing && count > 0 {
		return count - 1
	}
	return count
}

func single(label, param, doc string) *Help {
	return &Help{Signatures: []Signature{{
		Label:      label,
		Parameters: []Parameter{{Label: param, Documentation: doc}},
	}}}
}

func verbHelp(label, doc string, params []string, activeParam int) *Help {
	sig := Signature{Label: label, Documentation: doc}
	for _, p := range params {
		sig.Parameters = append(sig.Parameters, Parameter{Label: p, Documentation: strings.Trim(p, "<>") + " value"})
	}
	activeParam = max(0, min(activeParam, len(params)-1))
	return &Help{Signatures: []Signature{sig}, ActiveParameter: activeParam}
}
