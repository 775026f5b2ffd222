// Package diag defines the diagnostic model shared by the checker, the
// language server and the CLI.
//
// Diagnostic is the central record:
//
//   - Severity – tri-level enum (Info, Warning, Error).
//   - Code – compact numeric identifier with a stable string form (see codes.go).
//   - Message – short, actionable text.
//   - Pos – the line range the finding points at.
//
// Producers emit through a Reporter so that storage stays decoupled; BagReporter
// collects into a Bag, which supports sorting, deduplication and a size cap.
//
// Package diag performs no formatting or IO. Rendering lives in
// internal/diagfmt.
package diag
