package langsvc

import (
	"fmt"
	"strings"

	"hkanno/internal/ast"
	"hkanno/internal/payload"
	"hkanno/internal/source"
)

// HoverResult is markdown shown for the caret position.
type HoverResult struct {
	Contents string
	Range    source.Position
}

// Hover describes the node under cur, or returns nil for blank lines and
// plain comments.
func Hover(doc *ast.Document, cur source.Cursor) *HoverResult {
	n := nodeAt(doc, cur.Line)
	full := source.FullLine(n.Line, n.Source)
	col := cur.Column
	switch n.Kind {
	case ast.KindComment:
		m := n.Comment.Meta
		if m == nil {
			return nil
		}
		return &HoverResult{
			Contents: fmt.Sprintf("**%s**: %s", m.Key.Value, m.Value.Value),
			Range:    m.Key.Pos.Cover(m.Value.Pos),
		}
	case ast.KindMotion:
		m := n.Motion
		if m.Verb.Pos.Contains(col) {
			return &HoverResult{Contents: motionHelp, Range: m.Verb.Pos}
		}
		var b strings.Builder
		fmt.Fprintf(&b, "# animmotion values\n- Time: %ss", rawOr(m.Time.Raw))
		for i, a := range m.Axes {
			fmt.Fprintf(&b, "\n- %s: %s", strings.ToUpper(ast.AxisNames[i]), rawOr(a.Value.Raw))
		}
		return &HoverResult{Contents: b.String(), Range: full}
	case ast.KindRotation:
		r := n.Rotation
		if r.Verb.Pos.Contains(col) {
			return &HoverResult{Contents: rotationHelp, Range: r.Verb.Pos}
		}
		return &HoverResult{
			Contents: fmt.Sprintf("# animrotation value\n- Time: %ss\n- Degrees: %s°", rawOr(r.Time.Raw), rawOr(r.Degrees.Value.Raw)),
			Range:    full,
		}
	case ast.KindText:
		t := n.Text
		if t.Payload != nil && !t.Time.Pos.Contains(col) {
			return payloadHover(t.Payload, col, full)
		}
		return &HoverResult{
			Contents: fmt.Sprintf("# Text annotation\n- Time: %ss\n- Text: `%s`", rawOr(t.Time.Raw), rawOr(t.Text.Raw)),
			Range:    full,
		}
	case ast.KindInvalid:
		return &HoverResult{
			Contents: "**Invalid line**\n\n" + n.Invalid.Reason,
			Range:    n.Invalid.Time.Pos,
		}
	}
	return nil
}

func payloadHover(p *ast.Payload, col int, full source.Position) *HoverResult {
	if p.Prefix.Pos.Contains(col) {
		return &HoverResult{Contents: pieHelp, Range: p.Prefix.Pos}
	}
	ins, known := payload.Lookup(p.Name.Value)
	for i, param := range p.Params {
		if known && param.Value.Pos.Contains(col) && i < ins.Arity() {
			return &HoverResult{
				Contents: fmt.Sprintf("**%s** parameter %d of `%s`\n\n%s", ins.Param(i), i+1, ins.Name, ins.Documentation()),
				Range:    param.Value.Pos,
			}
		}
	}
	if known {
		return &HoverResult{Contents: ins.Documentation(), Range: full}
	}
	params := make([]string, 0, len(p.Params))
	for _, param := range p.Params {
		params = append(params, rawOr(param.Value.Raw))
	}
	lines := []string{"# PIE Instruction", fmt.Sprintf("- Name: `%s`", rawOr(p.Name.Raw))}
	if len(params) > 0 {
		lines = append(lines, "- Parameters: "+strings.Join(params, " | "))
	} else {
		lines = append(lines, "- No parameters")
	}
	return &HoverResult{Contents: strings.Join(lines, "\n"), Range: full}
}

const (
	motionHelp = "# Anim Motion\nApplies linear motion to the animation.\n" +
		"- required: Animation Motion Revolution\n\n# Format\n```hkanno\nanimmotion <x: f32> <y: f32> <z: f32>\n```"
	rotationHelp = "# Anim Rotation\nApplies rotation to the animation.\n" +
		"- required: Animation Motion Revolution\n\n# Format\n```hkanno\nanimrotation <degrees: f32>\n```"
	pieHelp = "# Payload Interpreter Dummy event (PIE)\nPayload instruction.\n" +
		"- required: Payload Interpreter\n\n# Format\n```hkanno\nPIE.@<instruction>|<param1>|<param2>|...\n```"
)
