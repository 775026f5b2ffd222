package diagfmt

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"kr.dev/diff"

	"hkanno/internal/diag"
	"hkanno/internal/parser"
	"hkanno/internal/source"
)

func sampleDiagnostics() []diag.Diagnostic {
	return []diag.Diagnostic{
		diag.NewError(diag.EvtMissingAxis, source.Span(1, 19, 20), "Missing z value in animmotion"),
		diag.NewWarning(diag.SynTrailingInput, source.Span(2, 5, 8), "Unexpected  input"),
	}
}

func TestPrettyPlain(t *testing.T) {
	text := "0.5 animmotion 1 2\n0.1 foo bar\n"
	var buf bytes.Buffer
	err := Pretty(&buf, "dir/anim.txt", text, sampleDiagnostics(), PrettyOpts{PathMode: PathModeBasename})
	if err != nil {
		t.Fatalf("Pretty: %v", err)
	}
	want := strings.Join([]string{
		"anim.txt:1:19: ERROR EVT2001: Missing z value in animmotion",
		"1 | 0.5 animmotion 1 2",
		"  | " + strings.Repeat(" ", 18) + "^",
		"anim.txt:2:5: WARNING SYN1003: Unexpected input",
		"2 | 0.1 foo bar",
		"  |     ^~~",
		"",
	}, "\n")
	diff.Test(t, t.Errorf, buf.String(), want)
}

func TestPrettyNoSource(t *testing.T) {
	var buf bytes.Buffer
	err := Pretty(&buf, "", "", sampleDiagnostics()[:1], PrettyOpts{NoSource: true})
	if err != nil {
		t.Fatalf("Pretty: %v", err)
	}
	diff.Test(t, t.Errorf, buf.String(), "<stdin>:1:19: ERROR EVT2001: Missing z value in animmotion\n")
}

func TestPrettyColorWrapsSeverity(t *testing.T) {
	var buf bytes.Buffer
	if err := Pretty(&buf, "a.txt", "0.5 animmotion 1 2", sampleDiagnostics()[:1], PrettyOpts{Color: true, PathMode: PathModeBasename}); err != nil {
		t.Fatalf("Pretty: %v", err)
	}
	if !strings.Contains(buf.String(), "\x1b[") {
		t.Fatalf("expected ANSI escapes, got %q", buf.String())
	}
}

func TestUnderlineWideRunes(t *testing.T) {
	line := "0.1 日本 x"
	// "日本" starts at column 5 and spans two UTF-16 units.
	got := underline(line, source.Span(1, 5, 7))
	diff.Test(t, t.Errorf, got, "    ^~~~")
}

func TestJSONOutput(t *testing.T) {
	files := []File{{Path: "a.txt", Diagnostics: sampleDiagnostics()}}
	var buf bytes.Buffer
	if err := JSON(&buf, files, JSONOpts{PathMode: PathModeBasename, Max: 1}); err != nil {
		t.Fatalf("JSON: %v", err)
	}
	var got DiagnosticsOutput
	if err := json.Unmarshal(buf.Bytes(), &got); err != nil {
		t.Fatalf("decode: %v", err)
	}
	diff.Test(t, t.Errorf, got, DiagnosticsOutput{
		Count: 1,
		Diagnostics: []DiagnosticJSON{{
			Severity: "error",
			Code:     "EVT2001",
			Message:  "Missing z value in animmotion",
			Location: LocationJSON{File: "a.txt", StartLine: 1, StartCol: 19, EndLine: 1, EndCol: 20},
		}},
	})
}

func TestJSONEmptyIsArray(t *testing.T) {
	var buf bytes.Buffer
	if err := JSON(&buf, nil, JSONOpts{}); err != nil {
		t.Fatalf("JSON: %v", err)
	}
	if !strings.Contains(buf.String(), `"diagnostics": []`) {
		t.Fatalf("expected empty array, got %s", buf.String())
	}
}

func TestDocumentPretty(t *testing.T) {
	doc := parser.Parse("# numOriginalFrames: 10\n0.5 animmotion 1 2")
	var buf bytes.Buffer
	if err := FormatDocumentPretty(&buf, doc); err != nil {
		t.Fatalf("FormatDocumentPretty: %v", err)
	}
	want := strings.Join([]string{
		"Document (lines: 2, timed: 1)",
		`├─ 1 comment key="numOriginalFrames" value="10"`,
		"└─ 2 motion time=0.5 x=1 y=2 z=<missing>",
		"",
	}, "\n")
	diff.Test(t, t.Errorf, buf.String(), want)
}

func TestDocumentJSON(t *testing.T) {
	doc := parser.Parse("0.25 MCO_DodgeOpen\n")
	var buf bytes.Buffer
	if err := FormatDocumentJSON(&buf, doc); err != nil {
		t.Fatalf("FormatDocumentJSON: %v", err)
	}
	var got DocumentOutput
	if err := json.Unmarshal(buf.Bytes(), &got); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if got.Timed != 1 || len(got.Lines) != 2 {
		t.Fatalf("unexpected output %+v", got)
	}
	first := got.Lines[0]
	if first.Kind != "text" || first.Time == nil || *first.Time != 0.25 || first.Event == nil || *first.Event != "MCO_DodgeOpen" {
		t.Fatalf("unexpected first line %+v", first)
	}
	if got.Lines[1].Kind != "blank" {
		t.Fatalf("second line kind = %q", got.Lines[1].Kind)
	}
}
