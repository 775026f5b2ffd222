package editor

import (
	"context"
	"fmt"

	"hkanno/internal/engine"
	"hkanno/internal/hkanno"
	"hkanno/internal/trace"
)

// Level grades a Notification.
type Level uint8

const (
	LevelInfo Level = iota
	LevelError
)

func (l Level) String() string {
	if l == LevelError {
		return "error"
	}
	return "info"
}

// Notification is a transient message for the user.
type Notification struct {
	Level   Level
	Message string
}

func (n Notification) String() string { return n.Message }

// Session runs the commands that need the engine: loading files into tabs and
// saving the active tab. Engine failures turn into notifications and leave
// the state untouched.
type Session struct {
	Store  *Store
	Engine engine.Engine
}

// NewSession binds a store to an engine.
func NewSession(store *Store, eng engine.Engine) *Session {
	return &Session{Store: store, Engine: eng}
}

// Open loads every path and opens the ones that load as tabs.
func (s *Session) Open(ctx context.Context, paths ...string) ([]Notification, error) {
	var notes []Notification
	tabs := make([]FileTab, 0, len(paths))
	for _, path := range paths {
		value, err := s.Engine.Load(ctx, path)
		if err != nil {
			notes = append(notes, Notification{Level: LevelError, Message: fmt.Sprintf("Failed to load: %s", path)})
			trace.Point(trace.FromContext(ctx), trace.ScopeDocument, "editor.load_failed", err.Error())
			continue
		}
		tabs = append(tabs, NewTab(path, value))
	}
	if len(tabs) == 0 {
		return notes, nil
	}
	return notes, s.Store.Dispatch(Open{Tabs: tabs})
}

// SaveResult is a finished write of one tab, waiting to be committed. Text is
// the tab text the write was made from.
type SaveResult struct {
	TabID string
	Text  string
	Value hkanno.Hkanno
	Note  Notification
	ok    bool
}

// Write saves the active tab through the engine without touching the store.
// The value written is the tab text projected over its original value.
func (s *Session) Write(ctx context.Context) SaveResult {
	tab, ok := s.Store.State().ActiveTab()
	if !ok {
		return SaveResult{Note: Notification{Level: LevelError, Message: "No file is open"}}
	}
	value := hkanno.Project(tab.Original, tab.Text)
	if err := s.Engine.Save(ctx, tab.InputPath, tab.OutputPath, tab.Format, value); err != nil {
		trace.Point(trace.FromContext(ctx), trace.ScopeDocument, "editor.save_failed", err.Error())
		return SaveResult{TabID: tab.ID, Note: Notification{Level: LevelError, Message: "Save failed: " + err.Error()}}
	}
	return SaveResult{
		TabID: tab.ID,
		Text:  tab.Text,
		Value: value,
		Note:  Notification{Level: LevelInfo, Message: "Saved successfully"},
		ok:    true,
	}
}

// Commit applies a successful write to the tab it was made from. A tab whose
// text changed in the meantime keeps its dirty flag; a closed tab is left
// alone.
func (s *Session) Commit(r SaveResult) error {
	if !r.ok {
		return nil
	}
	state := s.Store.State()
	idx := state.Index(r.TabID)
	if idx < 0 {
		return nil
	}
	if state.Tabs[idx].Text != r.Text {
		return s.Store.Dispatch(UpdateOriginal{Index: idx, Original: r.Value})
	}
	return s.Store.Dispatch(MarkSaved{Index: idx, Original: r.Value})
}

// Save writes the active tab and commits the result.
func (s *Session) Save(ctx context.Context) (Notification, error) {
	r := s.Write(ctx)
	return r.Note, s.Commit(r)
}

// Preview renders the active tab's current text.
func (s *Session) Preview(ctx context.Context, tab FileTab) (string, error) {
	return s.Engine.Preview(ctx, tab.InputPath, hkanno.Project(tab.Original, tab.Text))
}
