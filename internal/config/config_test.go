package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"kr.dev/diff"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}

func TestLoadMissingUsesDefaults(t *testing.T) {
	cfg, err := Load(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	diff.Test(t, t.Errorf, cfg, Default())
}

func TestLoadWalksUp(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, FileName), `
[lsp]
debounce_ms = 50

[inlay_hints]
event = false

[editor]
state_dir = "state"
state_codec = "json"
`)
	nested := filepath.Join(root, "a", "b")
	if err := os.MkdirAll(nested, 0o755); err != nil {
		t.Fatal(err)
	}
	cfg, err := Load(nested)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.LSP.DebounceMS != 50 || cfg.LSP.MaxDiagnostics != 100 {
		t.Fatalf("lsp = %+v", cfg.LSP)
	}
	if !cfg.InlayHints.Time || cfg.InlayHints.Event || !cfg.InlayHints.Args {
		t.Fatalf("hints = %+v", cfg.InlayHints)
	}
	dir, err := cfg.StateDir()
	if err != nil {
		t.Fatal(err)
	}
	want, _ := filepath.Abs(filepath.Join(root, "state"))
	if dir != want {
		t.Fatalf("state dir = %q, want %q", dir, want)
	}
	store, err := cfg.OpenState()
	if err != nil {
		t.Fatal(err)
	}
	if store.Dir() != want {
		t.Fatalf("store dir = %q", store.Dir())
	}
}

func TestLoadRejectsUnknownKeys(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, FileName), "[lsp]\ndebounce = 10\n[colors]\nx = 1\n")
	_, err := Load(dir)
	if !errors.Is(err, ErrUnknownKeys) {
		t.Fatalf("err = %v", err)
	}
}

func TestLoadValidates(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, FileName), "[editor]\nstate_codec = \"yaml\"\n")
	if _, err := Load(dir); err == nil {
		t.Fatal("expected codec error")
	}
	writeFile(t, filepath.Join(dir, FileName), "[lsp]\ndebounce_ms = -1\n")
	if _, err := Load(dir); err == nil {
		t.Fatal("expected debounce error")
	}
}
