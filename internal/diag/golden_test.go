package diag

import (
	"testing"

	"hkanno/internal/source"
)

func TestFormatShort(t *testing.T) {
	diags := []Diagnostic{
		NewWarning(EvtMissingText, source.At(2, 4), "Text annotation is missing"),
		NewError(SynInvalidTime, source.Span(1, 1, 4), "first line\nsecond"),
		NewError(EvtMissingAxis, source.Span(2, 1, 2), "Missing z value in animmotion"),
	}

	expected := "error SYN1001 a.txt:1:1 first line second\n" +
		"error EVT2001 a.txt:2:1 Missing z value in animmotion\n" +
		"warning EVT2003 a.txt:2:4 Text annotation is missing"

	if got := FormatShort("a.txt", diags); got != expected {
		t.Fatalf("unexpected short diagnostics:\nwant:\n%s\n\ngot:\n%s", expected, got)
	}
}

func TestBagLimitAndDedup(t *testing.T) {
	bag := NewBag(2)
	r := NewDedupReporter(BagReporter{Bag: bag})
	pos := source.Span(1, 1, 2)
	r.Report(SynBadNumber, SevError, pos, "bad")
	r.Report(SynBadNumber, SevError, pos, "bad")
	r.Report(SynTrailingInput, SevWarning, pos, "extra")
	r.Report(PieArity, SevError, pos, "dropped")

	if bag.Len() != 2 {
		t.Fatalf("expected 2 diagnostics, got %d", bag.Len())
	}
	if !bag.HasErrors() || !bag.HasWarnings() {
		t.Fatal("expected both errors and warnings")
	}
	bag.Filter(SevError)
	if bag.Len() != 1 {
		t.Fatalf("expected 1 error after filter, got %d", bag.Len())
	}
}

func TestCodeID(t *testing.T) {
	cases := map[Code]string{
		SynInvalidTime: "SYN1001",
		EvtMissingAxis: "EVT2001",
		PieArity:       "PIE3002",
		IOLoadFailed:   "IO4001",
		UnknownCode:    "E0000",
	}
	for code, want := range cases {
		if got := code.ID(); got != want {
			t.Fatalf("%d.ID() = %q, want %q", code, got, want)
		}
	}
}
