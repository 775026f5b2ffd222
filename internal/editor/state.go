// Package editor holds the open annotation documents and the transitions
// between them. Reduce is a pure function over State; Store owns the current
// State, applies actions and hands every result to a Persister.
package editor

import (
	"hkanno/internal/hkanno"
	"hkanno/internal/source"
)

// FileTab is one open document.
type FileTab struct {
	ID         string           `json:"id"`
	InputPath  string           `json:"input_path"`
	OutputPath string           `json:"output_path"`
	Format     hkanno.OutFormat `json:"format"`
	Text       string           `json:"text"`
	// Original is the last loaded or saved value, used by revert.
	Original hkanno.Hkanno  `json:"original"`
	Dirty    bool           `json:"dirty"`
	Cursor   *source.Cursor `json:"cursor,omitempty"`
}

// NewTab builds a clean tab for a document loaded from path.
func NewTab(path string, value hkanno.Hkanno) FileTab {
	return FileTab{
		ID:         path,
		InputPath:  path,
		OutputPath: hkanno.OutputPath(path),
		Format:     hkanno.FormatFromPath(path),
		Text:       value.String(),
		Original:   value,
	}
}

// State is the whole editor: open tabs, the selected one and whether the
// preview pane is shown. Active is in range whenever Tabs is non-empty.
type State struct {
	Tabs           []FileTab
	Active         int
	PreviewVisible bool
}

// ActiveTab returns the selected tab.
func (s State) ActiveTab() (FileTab, bool) {
	if s.Active < 0 || s.Active >= len(s.Tabs) {
		return FileTab{}, false
	}
	return s.Tabs[s.Active], true
}

// Index returns the position of the tab with id, or -1.
func (s State) Index(id string) int {
	for i, t := range s.Tabs {
		if t.ID == id {
			return i
		}
	}
	return -1
}

// Dirty reports whether any tab has unsaved changes.
func (s State) Dirty() bool {
	for _, t := range s.Tabs {
		if t.Dirty {
			return true
		}
	}
	return false
}

func clamp(i, n int) int {
	if n <= 0 || i < 0 {
		return 0
	}
	if i >= n {
		return n - 1
	}
	return i
}
