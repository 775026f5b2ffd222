package lsp

import (
	"sort"
	"strconv"
	"sync/atomic"
	"time"

	"hkanno/internal/check"
	"hkanno/internal/diag"
	"hkanno/internal/parser"
	"hkanno/internal/trace"
)

// scheduleDiagnostics marks uri for checking and restarts the debounce timer.
// Only the newest timer's run publishes.
func (s *Server) scheduleDiagnostics(uri string) {
	s.mu.Lock()
	s.dirty[uri] = struct{}{}
	seq := atomic.AddUint64(&s.analysisSeq, 1)
	atomic.StoreUint64(&s.latestSeq, seq)
	if s.debounceTimer != nil {
		s.debounceTimer.Stop()
	}
	s.debounceTimer = time.AfterFunc(s.debounce, func() {
		s.runDiagnostics(seq)
	})
	s.mu.Unlock()
}

type pendingDoc struct {
	uri     string
	text    string
	version int
}

func (s *Server) runDiagnostics(seq uint64) {
	if !s.isLatestSeq(seq) {
		return
	}
	s.mu.Lock()
	pending := make([]pendingDoc, 0, len(s.dirty))
	for uri := range s.dirty {
		if doc, ok := s.docs[uri]; ok {
			pending = append(pending, pendingDoc{uri: uri, text: doc.text, version: doc.version})
		}
	}
	clear(s.dirty)
	maxDiagnostics := s.maxDiagnostics
	warningsAsErrors := s.warningsAsErrors
	s.mu.Unlock()
	sort.Slice(pending, func(i, j int) bool { return pending[i].uri < pending[j].uri })

	for _, p := range pending {
		span := trace.Begin(s.tracer, trace.ScopeDocument, "diagnostics", 0).WithExtra("uri", p.uri)
		diags := check.Diagnose(parser.Parse(p.text))
		list := toLSPDiagnostics(diags, maxDiagnostics, warningsAsErrors)
		span.End(strconv.Itoa(len(list)))

		if !s.stillCurrent(p) {
			s.logfTrace("diagnostics: discard uri=%s version=%d reason=stale", p.uri, p.version)
			continue
		}
		if err := s.sendPublish(p.uri, &p.version, list); err != nil {
			s.logf("failed to publish diagnostics: %v", err)
			continue
		}
		s.mu.Lock()
		if len(list) > 0 {
			s.published[p.uri] = struct{}{}
		} else {
			delete(s.published, p.uri)
		}
		s.mu.Unlock()
	}
}

// stillCurrent reports whether the document is still open with the text the
// diagnostics were computed from.
func (s *Server) stillCurrent(p pendingDoc) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	doc, ok := s.docs[p.uri]
	return ok && doc.version == p.version && doc.text == p.text
}

func toLSPDiagnostics(diags []diag.Diagnostic, limit int, warningsAsErrors bool) []lspDiagnostic {
	if limit > 0 && len(diags) > limit {
		diags = diags[:limit]
	}
	out := make([]lspDiagnostic, 0, len(diags))
	for _, d := range diags {
		out = append(out, lspDiagnostic{
			Range:    rangeFor(d.Pos),
			Severity: lspSeverity(d.Severity, warningsAsErrors),
			Code:     d.Code.ID(),
			Source:   "hkanno",
			Message:  d.Message,
		})
	}
	return out
}

func lspSeverity(sev diag.Severity, warningsAsErrors bool) int {
	switch sev {
	case diag.SevError:
		return 1
	case diag.SevWarning:
		if warningsAsErrors {
			return 1
		}
		return 2
	default:
		return 3
	}
}

func (s *Server) sendPublish(uri string, version *int, list []lspDiagnostic) error {
	if list == nil {
		list = []lspDiagnostic{}
	}
	return s.sendNotification("textDocument/publishDiagnostics", publishDiagnosticsParams{
		URI:         uri,
		Version:     version,
		Diagnostics: list,
	})
}

func (s *Server) clearPublishedDiagnostics() {
	s.mu.Lock()
	uris := make([]string, 0, len(s.published))
	for uri := range s.published {
		uris = append(uris, uri)
	}
	clear(s.published)
	s.mu.Unlock()
	sort.Strings(uris)
	for _, uri := range uris {
		if err := s.sendPublish(uri, nil, nil); err != nil {
			s.logf("failed to clear diagnostics: %v", err)
		}
	}
}

func (s *Server) logfTrace(format string, args ...any) {
	s.mu.Lock()
	enabled := s.traceLSP
	s.mu.Unlock()
	if enabled {
		s.logf(format, args...)
	}
}
