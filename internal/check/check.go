// Package check runs the diagnostic rules over a parsed hkanno document.
// Every rule looks at a single line; rules are independent of each other and
// of line order.
package check

import (
	"context"
	"fmt"
	"strconv"

	"hkanno/internal/ast"
	"hkanno/internal/diag"
	"hkanno/internal/payload"
	"hkanno/internal/source"
	"hkanno/internal/trace"
)

// Diagnose returns the findings for doc in document order.
func Diagnose(doc *ast.Document) []diag.Diagnostic {
	if doc == nil {
		return nil
	}
	bag := diag.NewBag(0)
	r := diag.NewDedupReporter(diag.BagReporter{Bag: bag})
	for i := range doc.Lines {
		Line(r, &doc.Lines[i])
	}
	bag.Sort()
	return bag.Items()
}

// Run stores the result of Diagnose on doc.Diagnostics and returns it.
func Run(doc *ast.Document) []diag.Diagnostic {
	if doc == nil {
		return nil
	}
	doc.Diagnostics = Diagnose(doc)
	return doc.Diagnostics
}

// RunContext is Run wrapped in a trace span taken from ctx.
func RunContext(ctx context.Context, doc *ast.Document) []diag.Diagnostic {
	_, span := trace.Start(ctx, trace.ScopeDocument, "check")
	diags := Run(doc)
	span.WithExtra("diagnostics", strconv.Itoa(len(diags))).End("")
	return diags
}

// Line reports the findings for a single node.
func Line(r diag.Reporter, n *ast.Node) {
	full := source.FullLine(n.Line, n.Source)
	switch n.Kind {
	case ast.KindInvalid:
		diag.ReportError(r, diag.SynInvalidTime, full, n.Invalid.Reason).
			At(n.Invalid.Time.Pos, full).Emit()
	case ast.KindText:
		checkText(r, n.Text, full)
	case ast.KindMotion:
		m := n.Motion
		for i := range m.Axes {
			checkArg(r, m.Axes[i].Value.Raw, m.Axes[i].Value.Pos, m.Axes[i].Value.Valid, ast.AxisNames[i], ast.VerbMotion, diag.EvtMissingAxis, full)
		}
		checkExtra(r, m.Extra.Raw, m.Extra.Pos, ast.VerbMotion, full)
	case ast.KindRotation:
		rot := n.Rotation
		checkArg(r, rot.Degrees.Value.Raw, rot.Degrees.Value.Pos, rot.Degrees.Value.Valid, "degrees", ast.VerbRotation, diag.EvtMissingDegrees, full)
		checkExtra(r, rot.Extra.Raw, rot.Extra.Pos, ast.VerbRotation, full)
	}
}

func checkArg(r diag.Reporter, raw string, pos source.Position, valid bool, name, verb string, missing diag.Code, full source.Position) {
	switch {
	case raw == "":
		msg := fmt.Sprintf("Missing %s value in %s", name, verb)
		diag.ReportError(r, missing, full, msg).At(widen(pos), full).Emit()
	case !valid:
		msg := fmt.Sprintf("Invalid %s value in %s, got %q", name, verb, raw)
		diag.ReportError(r, diag.SynBadNumber, full, msg).At(pos, full).Emit()
	}
}

func checkExtra(r diag.Reporter, raw string, pos source.Position, verb string, full source.Position) {
	if raw == "" {
		return
	}
	msg := fmt.Sprintf("Unexpected input after %s arguments: %q", verb, raw)
	diag.ReportWarning(r, diag.SynTrailingInput, full, msg).At(pos, full).Emit()
}

func checkText(r diag.Reporter, t *ast.TextNode, full source.Position) {
	if !t.Text.Present() {
		diag.ReportWarning(r, diag.EvtMissingText, full, "Text annotation is missing").
			At(widen(t.Text.Pos), full).Emit()
		return
	}
	if t.Payload != nil {
		checkPayload(r, t.Payload, full)
	}
}

func checkPayload(r diag.Reporter, p *ast.Payload, full source.Position) {
	if !p.At.Present() {
		msg := fmt.Sprintf("Expected '@' after %s.", p.Prefix.Raw)
		diag.ReportError(r, diag.PieMissingAt, full, msg).At(widen(p.At.Pos), full).Emit()
		return
	}
	if !p.Name.Present() {
		diag.ReportError(r, diag.PieMissingName, full, "Missing instruction name after '@'").
			At(widen(p.Name.Pos), full).Emit()
		return
	}
	ins, ok := payload.Lookup(p.Name.Value)
	if !ok {
		msg := fmt.Sprintf("Unknown instruction %q", p.Name.Value)
		diag.ReportWarning(r, diag.PieUnknownInstr, full, msg).At(p.Name.Pos, full).Emit()
		return
	}
	if got := len(p.Params); got < ins.Arity() {
		msg := fmt.Sprintf("%s requires %d parameter(s), got %d", ins.Name, ins.Arity(), got)
		pos := p.Name.Pos
		if got > 0 {
			pos = pos.Cover(p.Params[got-1].Value.Pos).Cover(p.Params[got-1].Pipe)
		}
		diag.ReportError(r, diag.PieArity, full, msg).At(pos, full).Emit()
	}
}

// widen gives zero-width expectations a drawable range.
func widen(pos source.Position) source.Position {
	if pos.IsZero() {
		return pos
	}
	return pos.Widen(1)
}
