package panesync

import (
	"sync"
	"sync/atomic"
)

// Synchronizer holds the index of the current preview.
type Synchronizer struct {
	mu    sync.RWMutex
	index AnnotationMap
}

// UpdateIndex rebuilds the index from new preview text.
func (s *Synchronizer) UpdateIndex(preview string) AnnotationMap {
	m := BuildIndex(preview)
	s.mu.Lock()
	s.index = m
	s.mu.Unlock()
	return m
}

// Index returns the current index.
func (s *Synchronizer) Index() AnnotationMap {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.index
}

// OnSourceCursorMove maps a caret on line of src to a preview line. ok is
// false when the annotation is not in the preview yet.
func (s *Synchronizer) OnSourceCursorMove(src string, line int) (target int, ok bool) {
	return s.Index().Lookup(FlatIndex(src, line))
}

// Ticket identifies one preview request.
type Ticket struct {
	Seq   uint64
	TabID string
	Text  string
}

// Coordinator hands out tickets for preview requests so that only the
// newest result for the current tab and text is applied.
type Coordinator struct {
	seq atomic.Uint64
}

// Begin records a new request, superseding every earlier one.
func (c *Coordinator) Begin(tabID, text string) Ticket {
	return Ticket{Seq: c.seq.Add(1), TabID: tabID, Text: text}
}

// Accept reports whether a finished request may be applied: it must be the
// newest one, for the tab still active, over text that has not changed.
func (c *Coordinator) Accept(t Ticket, activeTabID, currentText string) bool {
	return t.Seq == c.seq.Load() && t.TabID == activeTabID && t.Text == currentText
}
