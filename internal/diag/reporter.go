package diag

import "hkanno/internal/source"

// Reporter is the minimal sink for diagnostics.
// Implementations: BagReporter, DedupReporter.
type Reporter interface {
	Report(code Code, sev Severity, pos source.Position, msg string)
}

// ReportBuilder accumulates diagnostic details before emitting to Reporter.
type ReportBuilder struct {
	reporter Reporter
	diag     Diagnostic
	emitted  bool
}

// NewReportBuilder constructs a builder bound to Reporter.
func NewReportBuilder(r Reporter, sev Severity, code Code, pos source.Position, msg string) *ReportBuilder {
	return &ReportBuilder{
		reporter: r,
		diag:     New(sev, code, pos, msg),
	}
}

// ReportError is a shortcut for SevError diagnostics.
func ReportError(r Reporter, code Code, pos source.Position, msg string) *ReportBuilder {
	return NewReportBuilder(r, SevError, code, pos, msg)
}

// ReportWarning is a shortcut for SevWarning diagnostics.
func ReportWarning(r Reporter, code Code, pos source.Position, msg string) *ReportBuilder {
	return NewReportBuilder(r, SevWarning, code, pos, msg)
}

// At replaces the position, falling back to fallback when pos is unset.
func (b *ReportBuilder) At(pos, fallback source.Position) *ReportBuilder {
	if b == nil {
		return nil
	}
	if pos.IsZero() {
		pos = fallback
	}
	b.diag.Pos = pos
	return b
}

// Emit sends diagnostic to underlying reporter exactly once.
func (b *ReportBuilder) Emit() {
	if b == nil || b.emitted {
		return
	}
	if b.reporter != nil {
		b.reporter.Report(b.diag.Code, b.diag.Severity, b.diag.Pos, b.diag.Message)
	}
	b.emitted = true
}

// Diagnostic returns accumulated diagnostic without emitting.
func (b *ReportBuilder) Diagnostic() Diagnostic {
	if b == nil {
		return Diagnostic{}
	}
	return b.diag
}

// BagReporter writes into a *Bag.
type BagReporter struct{ Bag *Bag }

func (r BagReporter) Report(code Code, sev Severity, pos source.Position, msg string) {
	if r.Bag == nil {
		return
	}
	r.Bag.Add(New(sev, code, pos, msg))
}
