package lsp

import (
	"encoding/json"
	"strings"
	"testing"

	"kr.dev/diff"
)

func TestHover(t *testing.T) {
	ts := newTestServer(t, ServerOptions{})
	ts.open(t, "0.5 animrotation 90\n")
	var res *hover
	ts.call(t, "textDocument/hover", ts.at(0, 18), &res)
	if res == nil || res.Contents.Kind != "markdown" || !strings.Contains(res.Contents.Value, "Degrees: 90") {
		t.Fatalf("hover = %+v", res)
	}

	res = nil
	ts.call(t, "textDocument/hover", ts.at(1, 0), &res)
	if res != nil {
		t.Fatalf("blank line hover = %+v", res)
	}
}

func TestCompletionOnBlankLine(t *testing.T) {
	ts := newTestServer(t, ServerOptions{})
	ts.open(t, "\n")
	var list completionList
	ts.call(t, "textDocument/completion", ts.at(0, 0), &list)
	labels := make([]string, 0, len(list.Items))
	for _, it := range list.Items {
		labels = append(labels, it.Label)
	}
	diff.Test(t, t.Errorf, labels, []string{
		"# numOriginalFrames:", "# duration:", "# numAnnotationTracks:", "# numAnnotations:", "<time>",
	})
	last := list.Items[len(list.Items)-1]
	if last.TextEdit == nil || last.TextEdit.NewText != "0.0" || last.Kind != itemValue {
		t.Fatalf("time item = %+v", last)
	}
}

func TestSignatureHelp(t *testing.T) {
	ts := newTestServer(t, ServerOptions{})
	ts.open(t, "0.5 animmotion 1 ")
	var help signatureHelp
	ts.call(t, "textDocument/signatureHelp", ts.at(0, 17), &help)
	if len(help.Signatures) != 1 || help.Signatures[0].Label != "animmotion <x: f32> <y: f32> <z: f32>" {
		t.Fatalf("help = %+v", help)
	}
	if help.ActiveParameter != 1 {
		t.Fatalf("active parameter = %d", help.ActiveParameter)
	}
}

func TestInlayHintsFollowSettings(t *testing.T) {
	ts := newTestServer(t, ServerOptions{})
	ts.open(t, "0.5 animrotation 90\n")
	params := inlayHintParams{
		TextDocument: textDocumentIdentifier{URI: ts.uri},
		Range:        lspRange{End: position{Line: 1}},
	}
	labels := func() []string {
		var hints []inlayHint
		ts.call(t, "textDocument/inlayHint", params, &hints)
		out := []string{}
		for _, h := range hints {
			out = append(out, h.Label)
		}
		return out
	}
	if got := labels(); !contains(got, "degrees:") || !contains(got, "time:") {
		t.Fatalf("labels = %v", got)
	}

	settings, _ := json.Marshal(map[string]any{
		"settings": map[string]any{"hkanno": map[string]any{"inlayHints": map[string]any{"args": false}}},
	})
	if err := ts.handleMessage(&rpcMessage{Method: "workspace/didChangeConfiguration", Params: settings}); err != nil {
		t.Fatal(err)
	}
	if got := labels(); contains(got, "degrees:") || !contains(got, "time:") {
		t.Fatalf("labels after settings = %v", got)
	}
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}

func TestSemanticTokens(t *testing.T) {
	ts := newTestServer(t, ServerOptions{})
	ts.open(t, "0.5 animmotion 1 2 3")
	var res semanticTokens
	ts.call(t, "textDocument/semanticTokens/full", semanticTokensParams{TextDocument: textDocumentIdentifier{URI: ts.uri}}, &res)
	// time, verb and three axes
	want := []uint32{
		0, 0, 3, 0, 0,
		0, 4, 10, 1, 0,
		0, 11, 1, 0, 0,
		0, 2, 1, 0, 0,
		0, 2, 1, 0, 0,
	}
	diff.Test(t, t.Errorf, res.Data, want)
}

func TestFormatting(t *testing.T) {
	ts := newTestServer(t, ServerOptions{})
	ts.open(t, "  # note\n0.5    animmotion   1 2  3  \n")
	var edits []textEdit
	ts.call(t, "textDocument/formatting", documentFormattingParams{TextDocument: textDocumentIdentifier{URI: ts.uri}}, &edits)
	if len(edits) != 1 {
		t.Fatalf("edits = %+v", edits)
	}
	if edits[0].NewText != "# note\n0.5 animmotion 1 2 3\n" {
		t.Fatalf("formatted = %q", edits[0].NewText)
	}
	if edits[0].Range.End != (position{Line: 2, Character: 0}) {
		t.Fatalf("range = %+v", edits[0].Range)
	}

	ts.open(t, "# note\n")
	edits = nil
	ts.call(t, "textDocument/formatting", documentFormattingParams{TextDocument: textDocumentIdentifier{URI: ts.uri}}, &edits)
	if len(edits) != 0 {
		t.Fatalf("formatted text should need no edits: %+v", edits)
	}
}

func TestSyncPreview(t *testing.T) {
	ts := newTestServer(t, ServerOptions{})
	ts.open(t, "# numAnnotations: 2\n0.1 a\n0.2 b\n# numAnnotations: 1\n0.3 c\n")
	var res syncPreviewResult
	ts.call(t, "hkanno/syncPreview", ts.at(4, 0), &res)
	if !res.Found || res.Line != 32 {
		t.Fatalf("sync = line %d found %v", res.Line, res.Found)
	}
	lines := strings.Split(res.Preview, "\n")
	if !strings.Contains(lines[res.Line-1], `<hkparam name="time">0.300000</hkparam>`) {
		t.Fatalf("preview line %d = %q", res.Line, lines[res.Line-1])
	}

	ts.mu.Lock()
	cached := ts.docs[ts.uri].preview
	ts.mu.Unlock()
	if cached == nil {
		t.Fatal("preview should be cached")
	}
	res = syncPreviewResult{}
	ts.call(t, "hkanno/syncPreview", ts.at(1, 0), &res)
	if !res.Found || res.Line != 19 {
		t.Fatalf("sync = line %d found %v", res.Line, res.Found)
	}
}
