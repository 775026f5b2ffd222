package diagfmt

import (
	"encoding/json"
	"io"

	"hkanno/internal/diag"
)

// File pairs a path with the diagnostics found in it.
type File struct {
	Path        string
	Diagnostics []diag.Diagnostic
}

// LocationJSON is a range on one line; columns are 1-based UTF-16 units and
// end_col is exclusive.
type LocationJSON struct {
	File      string `json:"file"`
	StartLine int    `json:"start_line"`
	StartCol  int    `json:"start_col"`
	EndLine   int    `json:"end_line"`
	EndCol    int    `json:"end_col"`
}

type DiagnosticJSON struct {
	Severity string       `json:"severity"`
	Code     string       `json:"code"`
	Message  string       `json:"message"`
	Location LocationJSON `json:"location"`
}

type DiagnosticsOutput struct {
	Diagnostics []DiagnosticJSON `json:"diagnostics"`
	Count       int              `json:"count"`
}

// BuildDiagnosticsOutput flattens files into the JSON shape, honouring
// opts.Max.
func BuildDiagnosticsOutput(files []File, opts JSONOpts) DiagnosticsOutput {
	out := DiagnosticsOutput{Diagnostics: []DiagnosticJSON{}}
	for _, f := range files {
		name := displayPath(f.Path, opts.PathMode, opts.BaseDir)
		for _, d := range f.Diagnostics {
			if opts.Max > 0 && len(out.Diagnostics) >= opts.Max {
				out.Count = len(out.Diagnostics)
				return out
			}
			out.Diagnostics = append(out.Diagnostics, DiagnosticJSON{
				Severity: d.Severity.Label(),
				Code:     d.Code.ID(),
				Message:  d.Message,
				Location: LocationJSON{
					File:      name,
					StartLine: d.Pos.Line,
					StartCol:  d.Pos.StartColumn,
					EndLine:   d.Pos.Line,
					EndCol:    d.Pos.EndColumn,
				},
			})
		}
	}
	out.Count = len(out.Diagnostics)
	return out
}

// JSON writes the diagnostics of files as one indented JSON object.
func JSON(w io.Writer, files []File, opts JSONOpts) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(BuildDiagnosticsOutput(files, opts))
}
