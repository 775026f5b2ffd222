package editor

import (
	"hkanno/internal/hkanno"
	"hkanno/internal/source"
)

// Action is a named transition. The set is closed.
type Action interface {
	action()
	// Name identifies the action in traces.
	Name() string
}

type (
	// Open appends tabs whose ID is not open yet and selects the first of them.
	Open struct{ Tabs []FileTab }
	// SetActive selects a tab.
	SetActive struct{ Index int }
	// Close removes a tab.
	Close struct{ Index int }
	// RevertActive resets the selected tab to its original value.
	RevertActive struct{}
	// UpdateText replaces the selected tab's text and marks it dirty.
	UpdateText struct{ Text string }
	// UpdateCursor records the caret of the selected tab.
	UpdateCursor struct{ Cursor source.Cursor }
	// UpdateOutputPath changes where the selected tab is saved.
	UpdateOutputPath struct{ Path string }
	// UpdateFormat changes the output format and the output path's extension.
	UpdateFormat struct{ Format hkanno.OutFormat }
	// TogglePreview shows or hides the preview pane.
	TogglePreview struct{}
	// MarkSaved clears the dirty flag of a tab and records what was written.
	MarkSaved struct {
		Index    int
		Original hkanno.Hkanno
	}
	// UpdateOriginal records what was written for a tab whose text moved on
	// while the write was in flight. The tab stays dirty.
	UpdateOriginal struct {
		Index    int
		Original hkanno.Hkanno
	}
)

func (Open) action()             {}
func (SetActive) action()        {}
func (Close) action()            {}
func (RevertActive) action()     {}
func (UpdateText) action()       {}
func (UpdateCursor) action()     {}
func (UpdateOutputPath) action() {}
func (UpdateFormat) action()     {}
func (TogglePreview) action()    {}
func (MarkSaved) action()        {}
func (UpdateOriginal) action()   {}

func (Open) Name() string             { return "open" }
func (SetActive) Name() string        { return "set_active" }
func (Close) Name() string            { return "close" }
func (RevertActive) Name() string     { return "revert_active" }
func (UpdateText) Name() string       { return "update_text" }
func (UpdateCursor) Name() string     { return "update_cursor" }
func (UpdateOutputPath) Name() string { return "update_output_path" }
func (UpdateFormat) Name() string     { return "update_format" }
func (TogglePreview) Name() string    { return "toggle_preview" }
func (MarkSaved) Name() string        { return "mark_saved" }
func (UpdateOriginal) Name() string   { return "update_original" }
