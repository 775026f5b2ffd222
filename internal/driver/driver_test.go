package driver

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"kr.dev/diff"

	"hkanno/internal/diag"
)

func writeFiles(t *testing.T, files map[string]string) string {
	t.Helper()
	dir := t.TempDir()
	for name, content := range files {
		path := filepath.Join(dir, name)
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	return dir
}

func TestCollectFiles(t *testing.T) {
	dir := writeFiles(t, map[string]string{
		"b.txt":          "",
		"a.hkanno":       "",
		"skip.xml":       "",
		"sub/c.txt":      "",
		".hidden/d.txt":  "",
		"explicit.other": "",
	})
	got, err := CollectFiles(context.Background(), []string{dir, filepath.Join(dir, "explicit.other"), filepath.Join(dir, "b.txt")})
	if err != nil {
		t.Fatalf("CollectFiles: %v", err)
	}
	rel := make([]string, len(got))
	for i, p := range got {
		r, _ := filepath.Rel(dir, p)
		rel[i] = filepath.ToSlash(r)
	}
	diff.Test(t, t.Errorf, rel, []string{"a.hkanno", "b.txt", "explicit.other", "sub/c.txt"})
}

func TestCollectFilesMissingPath(t *testing.T) {
	if _, err := CollectFiles(context.Background(), []string{filepath.Join(t.TempDir(), "nope")}); err == nil {
		t.Fatalf("expected an error for a missing path")
	}
}

func TestCheckPaths(t *testing.T) {
	dir := writeFiles(t, map[string]string{
		"clean.txt": "0.5 animmotion 1 2 3\n",
		"bad.txt":   "0.5 animmotion 1 2\n0.6 animrotation 90 extra\n",
	})
	results, err := CheckPaths(context.Background(), []string{dir}, CheckOptions{Jobs: 2})
	if err != nil {
		t.Fatalf("CheckPaths: %v", err)
	}
	if len(results) != 2 {
		t.Fatalf("got %d results", len(results))
	}
	bad, clean := results[0], results[1]
	if filepath.Base(bad.Path) != "bad.txt" || !bad.HasErrors() {
		t.Fatalf("bad result = %+v", bad)
	}
	if len(clean.Diagnostics) != 0 {
		t.Fatalf("clean result = %+v", clean)
	}
	codes := make([]string, 0, len(bad.Diagnostics))
	for _, d := range bad.Diagnostics {
		codes = append(codes, d.Code.ID())
	}
	diff.Test(t, t.Errorf, codes, []string{"EVT2001", "SYN1003"})
}

func TestCheckWarningsAsErrorsAndLimit(t *testing.T) {
	dir := writeFiles(t, map[string]string{
		"w.txt": "0.6 animrotation 90 extra\n1 animmotion\n",
	})
	results, err := CheckPaths(context.Background(), []string{dir}, CheckOptions{WarningsAsErrors: true, MaxDiagnostics: 2})
	if err != nil {
		t.Fatalf("CheckPaths: %v", err)
	}
	diags := results[0].Diagnostics
	if len(diags) != 2 {
		t.Fatalf("got %d diagnostics, want 2", len(diags))
	}
	if diags[0].Code != diag.SynTrailingInput || diags[0].Severity != diag.SevError {
		t.Fatalf("first diagnostic = %+v", diags[0])
	}
}

func TestCheckCancelled(t *testing.T) {
	dir := writeFiles(t, map[string]string{"a.txt": "0.1 a\n"})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := CheckPaths(ctx, []string{dir}, CheckOptions{}); err == nil {
		t.Fatalf("expected cancellation error")
	}
}

func TestFormatPaths(t *testing.T) {
	dir := writeFiles(t, map[string]string{
		"messy.txt": "   0.5 Hello\n# numOriginalFrames: 10",
		"tidy.txt":  "0.5 Hello\n",
	})

	results, err := FormatPaths(context.Background(), []string{dir}, FormatOptions{Check: true})
	if err != nil {
		t.Fatalf("FormatPaths: %v", err)
	}
	if !results[0].Changed || results[1].Changed {
		t.Fatalf("check results = %+v", results)
	}
	data, _ := os.ReadFile(filepath.Join(dir, "messy.txt"))
	if string(data) != "   0.5 Hello\n# numOriginalFrames: 10" {
		t.Fatalf("check mode rewrote the file: %q", data)
	}

	results, err = FormatPaths(context.Background(), []string{dir}, FormatOptions{Stdout: true})
	if err != nil {
		t.Fatalf("FormatPaths: %v", err)
	}
	if results[0].Formatted != "0.5 Hello\n# numOriginalFrames: 10" {
		t.Fatalf("stdout result = %q", results[0].Formatted)
	}

	if _, err := FormatPaths(context.Background(), []string{dir}, FormatOptions{}); err != nil {
		t.Fatalf("FormatPaths: %v", err)
	}
	data, _ = os.ReadFile(filepath.Join(dir, "messy.txt"))
	if string(data) != "0.5 Hello\n# numOriginalFrames: 10" {
		t.Fatalf("file not rewritten: %q", data)
	}
}
