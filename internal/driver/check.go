package driver

import (
	"context"
	"os"
	"strconv"

	"golang.org/x/sync/errgroup"

	"hkanno/internal/check"
	"hkanno/internal/diag"
	"hkanno/internal/parser"
	"hkanno/internal/source"
	"hkanno/internal/trace"
)

// CheckOptions configures CheckPaths.
type CheckOptions struct {
	Jobs             int
	MaxDiagnostics   int
	WarningsAsErrors bool
}

// CheckResult holds the diagnostics of one file. Text is the content the
// positions refer to.
type CheckResult struct {
	Path        string
	Text        string
	Diagnostics []diag.Diagnostic
}

// HasErrors reports whether any diagnostic is an error.
func (r CheckResult) HasErrors() bool {
	for _, d := range r.Diagnostics {
		if d.Severity >= diag.SevError {
			return true
		}
	}
	return false
}

// CheckPaths diagnoses every file under paths. Files that cannot be read
// yield an IO diagnostic instead of failing the run. Results follow the
// sorted file order.
func CheckPaths(ctx context.Context, paths []string, opts CheckOptions) ([]CheckResult, error) {
	files, err := CollectFiles(ctx, paths)
	if err != nil {
		return nil, err
	}
	ctx, span := trace.Start(ctx, trace.ScopeCommand, "driver.check")
	defer span.WithExtra("files", strconv.Itoa(len(files))).End("")

	results := make([]CheckResult, len(files))
	if len(files) == 0 {
		return results, nil
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(jobLimit(opts.Jobs, len(files)))
	for i, path := range files {
		i, path := i, path
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			// each goroutine owns results[i]
			results[i] = checkFile(gctx, path, opts)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

func checkFile(ctx context.Context, path string, opts CheckOptions) CheckResult {
	data, err := os.ReadFile(path)
	if err != nil {
		return CheckResult{
			Path:        path,
			Diagnostics: []diag.Diagnostic{diag.NewError(diag.IOLoadFailed, source.At(1, 1), "failed to load file: "+err.Error())},
		}
	}
	text := string(data)
	doc := parser.ParseContext(ctx, text)
	diags := check.Diagnose(doc)
	if opts.WarningsAsErrors {
		for i := range diags {
			if diags[i].Severity == diag.SevWarning {
				diags[i].Severity = diag.SevError
			}
		}
	}
	if opts.MaxDiagnostics > 0 && len(diags) > opts.MaxDiagnostics {
		diags = diags[:opts.MaxDiagnostics]
	}
	return CheckResult{Path: path, Text: text, Diagnostics: diags}
}
