package check

import (
	"strings"
	"testing"

	"kr.dev/diff"

	"hkanno/internal/diag"
	"hkanno/internal/parser"
	"hkanno/internal/source"
)

func diagnose(text string) []diag.Diagnostic {
	return Diagnose(parser.Parse(text))
}

func TestCleanLinesHaveNoDiagnostics(t *testing.T) {
	text := strings.Join([]string{
		"# numOriginalFrames: 10",
		"",
		"0.5 animmotion 1 2 3",
		"0.6 animrotation 90",
		"0.25 MCO_DodgeOpen",
		"0.3 PIE.@SGVB|IsAttacking|true",
		"#",
	}, "\n")
	if got := diagnose(text); len(got) != 0 {
		t.Fatalf("expected no diagnostics, got %+v", got)
	}
}

func TestMissingZ(t *testing.T) {
	got := diagnose("0.5 animmotion 1 2")
	if len(got) != 1 {
		t.Fatalf("expected one diagnostic, got %+v", got)
	}
	d := got[0]
	if d.Severity != diag.SevError || d.Code != diag.EvtMissingAxis {
		t.Fatalf("unexpected diagnostic %+v", d)
	}
	if !strings.Contains(d.Message, "z") {
		t.Fatalf("message should name the axis: %q", d.Message)
	}
	diff.Test(t, t.Errorf, d.Pos, source.Span(1, 19, 20))
}

func TestMissingAllAxes(t *testing.T) {
	got := diagnose("1 animmotion")
	msgs := make([]string, 0, len(got))
	for _, d := range got {
		msgs = append(msgs, d.Message)
	}
	diff.Test(t, t.Errorf, msgs, []string{
		"Missing x value in animmotion",
		"Missing y value in animmotion",
		"Missing z value in animmotion",
	})
}

func TestMissingDegrees(t *testing.T) {
	got := diagnose("1 animrotation")
	if len(got) != 1 || got[0].Message != "Missing degrees value in animrotation" {
		t.Fatalf("unexpected diagnostics %+v", got)
	}
}

func TestMissingText(t *testing.T) {
	got := diagnose("0.5   ")
	if len(got) != 1 {
		t.Fatalf("expected one diagnostic, got %+v", got)
	}
	if got[0].Severity != diag.SevWarning || got[0].Message != "Text annotation is missing" {
		t.Fatalf("unexpected diagnostic %+v", got[0])
	}
}

func TestInvalidTime(t *testing.T) {
	got := diagnose("abc hello")
	if len(got) != 1 || got[0].Code != diag.SynInvalidTime {
		t.Fatalf("unexpected diagnostics %+v", got)
	}
	diff.Test(t, t.Errorf, got[0].Pos, source.Span(1, 1, 4))
	if !strings.Contains(got[0].Message, "Time must be a valid number") {
		t.Fatalf("message = %q", got[0].Message)
	}
}

func TestMalformedAndExtraArguments(t *testing.T) {
	got := diagnose("0.5 animmotion 1 x 3 4")
	codes := make([]diag.Code, 0, len(got))
	for _, d := range got {
		codes = append(codes, d.Code)
	}
	diff.Test(t, t.Errorf, codes, []diag.Code{diag.SynBadNumber, diag.SynTrailingInput})
	if got[1].Severity != diag.SevWarning {
		t.Fatalf("trailing input should warn: %+v", got[1])
	}
}

func TestPayloadArity(t *testing.T) {
	got := diagnose("0.1 PIE.@SGVB|IsAttacking")
	if len(got) != 1 {
		t.Fatalf("expected one diagnostic, got %+v", got)
	}
	if got[0].Message != "SGVB requires 2 parameter(s), got 1" {
		t.Fatalf("message = %q", got[0].Message)
	}
}

func TestPayloadShape(t *testing.T) {
	tests := []struct {
		line string
		code diag.Code
		sev  diag.Severity
	}{
		{"0.1 PIE.SGVB|a|b", diag.PieMissingAt, diag.SevError},
		{"0.1 PIE.@", diag.PieMissingName, diag.SevError},
		{"0.1 pie.@NOPE|a", diag.PieUnknownInstr, diag.SevWarning},
	}
	for _, tt := range tests {
		got := diagnose(tt.line)
		if len(got) != 1 || got[0].Code != tt.code || got[0].Severity != tt.sev {
			t.Fatalf("%q: unexpected diagnostics %+v", tt.line, got)
		}
	}
}

func TestRunStoresDiagnostics(t *testing.T) {
	doc := parser.Parse("0.5\n1 animrotation")
	Run(doc)
	if len(doc.Diagnostics) != 2 {
		t.Fatalf("expected 2 diagnostics on document, got %d", len(doc.Diagnostics))
	}
	if doc.Diagnostics[0].Pos.Line != 1 || doc.Diagnostics[1].Pos.Line != 2 {
		t.Fatalf("diagnostics out of order: %+v", doc.Diagnostics)
	}
}
