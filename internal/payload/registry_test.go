package payload

import (
	"regexp"
	"testing"
)

var placeholder = regexp.MustCompile(`\$\{\d+:[^}]+\}`)

func TestSnippetPlaceholdersMatchArity(t *testing.T) {
	for _, ins := range All() {
		got := len(placeholder.FindAllString(ins.Snippet(), -1))
		if got != ins.Arity() {
			t.Fatalf("%s: snippet has %d placeholders, arity %d", ins.Name, got, ins.Arity())
		}
	}
}

func TestLookupIgnoresCase(t *testing.T) {
	ins, ok := Lookup("castSpell")
	if !ok {
		t.Fatal("expected CASTSPELL to be registered")
	}
	if ins.Arity() != 11 {
		t.Fatalf("CASTSPELL arity = %d, want 11", ins.Arity())
	}
	if _, ok := Lookup("NOPE"); ok {
		t.Fatal("unexpected instruction NOPE")
	}
	if !IsNamespace("pie") || IsNamespace("SoundPlay") {
		t.Fatal("namespace matching mismatch")
	}
}

func TestRenderedForms(t *testing.T) {
	ins, _ := Lookup("SGVB")
	if got := ins.Snippet(); got != "SGVB|${1:graphVariable}|${2:bool}" {
		t.Fatalf("Snippet = %q", got)
	}
	if got := ins.Usage(); got != "PIE.@SGVB|<graphVariable>|<bool>" {
		t.Fatalf("Usage = %q", got)
	}
	want := "```hkanno\nPIE.@SGVB|<graphVariable>|<bool>\n```\nSet an animation boolean variable."
	if got := ins.Documentation(); got != want {
		t.Fatalf("Documentation = %q", got)
	}
	if ins.Param(1) != "bool" || ins.Param(2) != "" {
		t.Fatal("Param lookup mismatch")
	}
}
