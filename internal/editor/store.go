package editor

import (
	"context"
	"fmt"
	"sync"

	"hkanno/internal/trace"
)

// SnapshotVersion is written into every Snapshot.
const SnapshotVersion = 1

// Snapshot is the persisted form of State. Fields are only ever added, and
// missing fields decode to their zero values.
type Snapshot struct {
	Version        int       `json:"version"`
	Tabs           []FileTab `json:"tabs"`
	Active         int       `json:"active"`
	PreviewVisible bool      `json:"preview_visible"`
}

// SnapshotOf captures s.
func SnapshotOf(s State) Snapshot {
	return Snapshot{
		Version:        SnapshotVersion,
		Tabs:           s.Tabs,
		Active:         s.Active,
		PreviewVisible: s.PreviewVisible,
	}
}

// State rebuilds an editor state, dropping duplicate IDs and clamping the
// active index.
func (snap Snapshot) State() State {
	s := open(State{}, snap.Tabs)
	s.Active = clamp(snap.Active, len(s.Tabs))
	s.PreviewVisible = snap.PreviewVisible
	return s
}

// Persister receives every state Store produces.
type Persister interface {
	Persist(Snapshot) error
}

// PersisterFunc adapts a function to Persister.
type PersisterFunc func(Snapshot) error

func (f PersisterFunc) Persist(s Snapshot) error { return f(s) }

// Store owns the current State.
type Store struct {
	mu      sync.Mutex
	state   State
	persist Persister
	tracer  trace.Tracer
}

// NewStore starts from initial. p may be nil.
func NewStore(initial State, p Persister) *Store {
	return &Store{state: initial, persist: p, tracer: trace.Nop}
}

// WithTracer makes Dispatch emit a point event per action.
func (s *Store) WithTracer(t trace.Tracer) *Store {
	if t != nil {
		s.tracer = t
	}
	return s
}

// State returns the current state.
func (s *Store) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Dispatch applies a and persists the result. The state is updated even when
// persisting fails.
func (s *Store) Dispatch(a Action) error {
	s.mu.Lock()
	next := Reduce(s.state, a)
	s.state = next
	s.mu.Unlock()

	trace.Point(s.tracer, trace.ScopeCommand, "editor."+a.Name(), fmt.Sprintf("tabs=%d active=%d", len(next.Tabs), next.Active))
	if s.persist == nil {
		return nil
	}
	if err := s.persist.Persist(SnapshotOf(next)); err != nil {
		return fmt.Errorf("persist editor state: %w", err)
	}
	return nil
}

// KV is the subset of a key-value store the editor persists into.
type KV interface {
	Put(key string, v any) error
	Get(key string, out any) (bool, error)
}

// StateKey is the key the editor state is stored under.
const StateKey = "editor"

// KVPersister writes snapshots into a KV store. Default is what Restore
// yields when nothing was stored yet.
type KVPersister struct {
	Store   KV
	Key     string
	Default State
}

// NewKVPersister persists under StateKey and defaults to an empty state with
// the preview shown.
func NewKVPersister(kv KV) *KVPersister {
	return &KVPersister{Store: kv, Key: StateKey, Default: State{PreviewVisible: true}}
}

func (p *KVPersister) Persist(s Snapshot) error {
	return p.Store.Put(p.key(), s)
}

// Restore reads the last persisted state. A missing or unreadable record
// yields p.Default.
func (p *KVPersister) Restore(ctx context.Context) (State, error) {
	_, span := trace.Start(ctx, trace.ScopeCommand, "editor.restore")
	defer span.End("")

	var snap Snapshot
	ok, err := p.Store.Get(p.key(), &snap)
	if err != nil {
		return p.Default, err
	}
	if !ok {
		return p.Default, nil
	}
	return snap.State(), nil
}

func (p *KVPersister) key() string {
	if p.Key == "" {
		return StateKey
	}
	return p.Key
}
