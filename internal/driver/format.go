package driver

import (
	"context"
	"os"

	"golang.org/x/sync/errgroup"

	"hkanno/internal/format"
)

// FormatOptions configures FormatPaths.
type FormatOptions struct {
	// Check reports what would change without writing.
	Check bool
	// Stdout returns the formatted text instead of rewriting files.
	Stdout bool
	Jobs   int
}

// FormatResult captures the result of formatting a single file.
type FormatResult struct {
	Path      string
	Changed   bool
	Err       error
	Formatted string
}

// FormatPaths formats every file under paths. Per-file failures are kept in
// the results; only collection errors and cancellation fail the call.
func FormatPaths(ctx context.Context, paths []string, opts FormatOptions) ([]FormatResult, error) {
	files, err := CollectFiles(ctx, paths)
	if err != nil {
		return nil, err
	}
	results := make([]FormatResult, len(files))
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
			results[i] = formatFile(path, opts)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

func formatFile(path string, opts FormatOptions) FormatResult {
	result := FormatResult{Path: path}
	data, err := os.ReadFile(path)
	if err != nil {
		result.Err = err
		return result
	}
	formatted := format.Text(string(data))
	result.Changed = formatted != string(data)

	switch {
	case opts.Check:
	case opts.Stdout:
		result.Formatted = formatted
	case result.Changed:
		if err := writeFileKeepMode(path, []byte(formatted)); err != nil {
			result.Err = err
			result.Changed = false
		}
	}
	return result
}
