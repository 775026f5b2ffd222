package trace

import (
	"bytes"
	"context"
	"strings"
	"testing"
)

func TestStreamTracerRespectsLevel(t *testing.T) {
	var buf bytes.Buffer
	tr := NewStreamTracer(&buf, LevelDetail, FormatText)

	span := Begin(tr, ScopeDocument, "check", 0)
	Begin(tr, ScopeLine, "line", span.ID()).End("")
	span.WithExtra("file", "a.txt").End("ok")

	out := buf.String()
	if strings.Count(out, "check") != 2 {
		t.Fatalf("expected begin and end for check, got:\n%s", out)
	}
	if strings.Contains(out, "line") {
		t.Fatalf("line scope should be filtered at detail level:\n%s", out)
	}
	if !strings.Contains(out, "{file=a.txt}") {
		t.Fatalf("missing extra fields:\n%s", out)
	}
}

func TestRingTracerWraps(t *testing.T) {
	tr := NewRingTracer(2, LevelDebug)
	for _, name := range []string{"a", "b", "c"} {
		Point(tr, ScopeRequest, name, "")
	}
	events := tr.Snapshot()
	if len(events) != 2 || events[0].Name != "b" || events[1].Name != "c" {
		t.Fatalf("unexpected snapshot: %+v", events)
	}
}

func TestContextPropagation(t *testing.T) {
	if FromContext(context.Background()) != Nop {
		t.Fatal("expected Nop by default")
	}
	tr := NewRingTracer(8, LevelDebug)
	ctx := WithTracer(context.Background(), tr)
	span := Begin(FromContext(ctx), ScopeCommand, "cmd", 0)
	ctx = WithSpan(ctx, span)
	if CurrentSpan(ctx).SpanID != span.ID() {
		t.Fatal("span not propagated")
	}
}

func TestStartParentsToCurrentSpan(t *testing.T) {
	tr := NewRingTracer(8, LevelDebug)
	ctx, root := Start(WithTracer(context.Background(), tr), ScopeCommand, "check")
	_, child := Start(ctx, ScopeDocument, "parse")
	child.End("")
	root.End("")

	events := tr.Snapshot()
	if len(events) != 4 {
		t.Fatalf("got %d events", len(events))
	}
	if events[1].Name != "parse" || events[1].ParentID != root.ID() {
		t.Fatalf("child begin = %+v, want parent %d", events[1], root.ID())
	}
}

func TestStartWithoutTracerIsInert(t *testing.T) {
	ctx, span := Start(context.Background(), ScopeCommand, "check")
	if span.ID() != 0 || CurrentSpan(ctx).SpanID != 0 {
		t.Fatalf("expected an unrecorded span")
	}
	if d := span.WithExtra("k", "v").End(""); d != 0 {
		t.Fatalf("End = %v", d)
	}
}

func TestParseLevel(t *testing.T) {
	lvl, err := ParseLevel("DETAIL")
	if err != nil || lvl != LevelDetail {
		t.Fatalf("ParseLevel = %v, %v", lvl, err)
	}
	if _, err := ParseLevel("loud"); err == nil {
		t.Fatal("expected error for unknown level")
	}
}
