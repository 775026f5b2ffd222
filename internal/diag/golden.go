package diag

import (
	"fmt"
	"strings"
)

// FormatShort renders diagnostics one per line as
// "<severity> <code> <path>:<line>:<col> <message>", sorted deterministically.
// Newlines inside messages are folded to spaces.
func FormatShort(path string, diags []Diagnostic) string {
	if len(diags) == 0 {
		return ""
	}
	sorted := make([]Diagnostic, len(diags))
	copy(sorted, diags)
	Sort(sorted)

	var b strings.Builder
	for i, d := range sorted {
		msg := strings.Join(strings.Fields(d.Message), " ")
		fmt.Fprintf(&b, "%s %s %s:%d:%d %s", d.Severity.Label(), d.Code.ID(), path, d.Pos.Line, d.Pos.StartColumn, msg)
		if i < len(sorted)-1 {
			b.WriteByte('\n')
		}
	}
	return b.String()
}
