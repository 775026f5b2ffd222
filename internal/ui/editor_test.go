package ui

import (
	"context"
	"errors"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"hkanno/internal/editor"
	"hkanno/internal/engine"
	"hkanno/internal/hkanno"
)

type fakeEngine struct {
	files  map[string]hkanno.Hkanno
	saved  []hkanno.Hkanno
	onSave func()
}

func (f *fakeEngine) Load(_ context.Context, path string) (hkanno.Hkanno, error) {
	h, ok := f.files[path]
	if !ok {
		return hkanno.Hkanno{}, errors.New("no such file")
	}
	return h, nil
}

func (f *fakeEngine) Save(_ context.Context, _, _ string, _ hkanno.OutFormat, value hkanno.Hkanno) error {
	if f.onSave != nil {
		f.onSave()
	}
	f.saved = append(f.saved, value)
	return nil
}

func (f *fakeEngine) Preview(_ context.Context, _ string, value hkanno.Hkanno) (string, error) {
	return engine.RenderXML(value), nil
}

func str(s string) *string { return &s }

func sample() hkanno.Hkanno {
	return hkanno.Hkanno{
		Ptr:               "#0003",
		NumOriginalFrames: 10,
		Duration:          1,
		AnnotationTracks: []hkanno.AnnotationTrack{{
			TrackName: "Bip01",
			Annotations: []hkanno.Annotation{
				{Time: 0.5, Text: str("hit")},
				{Time: 0.7, Text: str("swing")},
			},
		}},
	}
}

func newModel(t *testing.T, paths ...string) (*Model, *fakeEngine) {
	t.Helper()
	eng := &fakeEngine{files: map[string]hkanno.Hkanno{"a.txt": sample(), "b.xml": sample()}}
	sess := editor.NewSession(editor.NewStore(editor.State{PreviewVisible: true}, nil), eng)
	if _, err := sess.Open(context.Background(), paths...); err != nil {
		t.Fatalf("open: %v", err)
	}
	return New(context.Background(), sess), eng
}

func keyMsg(t tea.KeyType) tea.KeyMsg { return tea.KeyMsg{Type: t} }

func typeText(m *Model, s string) {
	m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)})
}

func TestNewLoadsActiveTab(t *testing.T) {
	m, _ := newModel(t, "a.txt")
	if got, want := m.text.Value(), sample().String(); got != want {
		t.Fatalf("text = %q, want %q", got, want)
	}
}

func TestTabSwitchAndClose(t *testing.T) {
	m, _ := newModel(t, "a.txt", "b.xml")
	state := m.session.Store.State()
	if state.Active != 0 {
		t.Fatalf("active = %d, want 0", state.Active)
	}
	m.Update(keyMsg(tea.KeyF6))
	if got := m.session.Store.State().Active; got != 1 {
		t.Fatalf("after next active = %d", got)
	}
	m.Update(keyMsg(tea.KeyF5))
	if got := m.session.Store.State().Active; got != 0 {
		t.Fatalf("after prev active = %d", got)
	}
	m.Update(keyMsg(tea.KeyCtrlW))
	state = m.session.Store.State()
	if len(state.Tabs) != 1 || state.Tabs[0].ID != "b.xml" {
		t.Fatalf("tabs after close = %+v", state.Tabs)
	}
	m.Update(keyMsg(tea.KeyCtrlW))
	if got := m.text.Value(); got != "" {
		t.Fatalf("text after closing all = %q", got)
	}
	if !strings.Contains(m.View(), "No file is open") {
		t.Fatalf("view should report no file:\n%s", m.View())
	}
}

func TestTypingMarksDirtyAndRevertRestores(t *testing.T) {
	m, _ := newModel(t, "a.txt")
	typeText(m, "x")
	tab, _ := m.session.Store.State().ActiveTab()
	if !tab.Dirty || !strings.HasSuffix(tab.Text, "x") {
		t.Fatalf("tab after typing = %+v", tab)
	}
	if !strings.Contains(tabBar(m.session.Store.State(), 0), "a.txt*") {
		t.Fatalf("tab bar should mark dirty tab")
	}
	m.Update(keyMsg(tea.KeyCtrlR))
	tab, _ = m.session.Store.State().ActiveTab()
	if tab.Dirty || m.text.Value() != sample().String() {
		t.Fatalf("revert left %+v / %q", tab, m.text.Value())
	}
}

func TestQuitAsksAgainWhenDirty(t *testing.T) {
	m, _ := newModel(t, "a.txt")
	typeText(m, "x")
	if _, cmd := m.Update(keyMsg(tea.KeyCtrlQ)); cmd != nil {
		t.Fatalf("first quit with unsaved changes should not quit")
	}
	if m.status.Level != editor.LevelError {
		t.Fatalf("expected a warning, got %+v", m.status)
	}
	_, cmd := m.Update(keyMsg(tea.KeyCtrlQ))
	if cmd == nil {
		t.Fatalf("second quit should return a command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Fatalf("expected tea.QuitMsg")
	}
}

func TestSaveClearsDirty(t *testing.T) {
	m, eng := newModel(t, "a.txt")
	typeText(m, "x")
	_, cmd := m.Update(keyMsg(tea.KeyCtrlS))
	if cmd == nil {
		t.Fatalf("save should return a command")
	}
	m.Update(cmd())
	if m.status.Message != "Saved successfully" {
		t.Fatalf("status = %+v", m.status)
	}
	if tab, _ := m.session.Store.State().ActiveTab(); tab.Dirty {
		t.Fatalf("tab still dirty after save")
	}
	if len(eng.saved) != 1 {
		t.Fatalf("saved %d values", len(eng.saved))
	}
}

func TestTypingDuringSaveStaysDirty(t *testing.T) {
	m, eng := newModel(t, "a.txt")
	typeText(m, "x")
	_, cmd := m.Update(keyMsg(tea.KeyCtrlS))
	eng.onSave = func() { typeText(m, "y") }
	m.Update(cmd())

	tab, _ := m.session.Store.State().ActiveTab()
	if !tab.Dirty || !strings.HasSuffix(tab.Text, "xy") {
		t.Fatalf("tab after save = %+v", tab)
	}
	if got := tab.Original.String(); !strings.Contains(got, "0.500000 hit") {
		t.Fatalf("original = %q", got)
	}
	if _, cmd := m.Update(keyMsg(tea.KeyCtrlQ)); cmd != nil {
		t.Fatalf("quit with the unsaved keystroke should ask first")
	}
}

func TestFormatCycles(t *testing.T) {
	m, _ := newModel(t, "a.txt")
	m.Update(keyMsg(tea.KeyCtrlF))
	tab, _ := m.session.Store.State().ActiveTab()
	if tab.Format != hkanno.FormatAmd64 || tab.OutputPath != "a.modified.hkx" {
		t.Fatalf("tab after format cycle = %s %s", tab.Format, tab.OutputPath)
	}
}

func TestStalePreviewIsDropped(t *testing.T) {
	m, _ := newModel(t, "a.txt")
	stale := m.requestPreview()()
	typeText(m, "x")
	m.Update(stale)
	if m.previewText != "" {
		t.Fatalf("stale preview applied")
	}
	m.Update(m.requestPreview()())
	if !strings.Contains(m.previewText, "hkaSplineCompressedAnimation") {
		t.Fatalf("fresh preview not applied: %q", m.previewText)
	}
}

func TestPreviewFollowsCursor(t *testing.T) {
	m, _ := newModel(t, "a.txt")
	m.Update(m.requestPreview()())
	// The caret starts on the trailing blank line.
	m.Update(keyMsg(tea.KeyUp))
	if m.previewLine != 23 {
		t.Fatalf("preview line = %d, want 23", m.previewLine)
	}
	m.Update(keyMsg(tea.KeyUp))
	if m.previewLine != 19 {
		t.Fatalf("preview line = %d, want 19", m.previewLine)
	}
}

func TestTogglePreviewSkipsRequests(t *testing.T) {
	m, _ := newModel(t, "a.txt")
	m.Update(keyMsg(tea.KeyCtrlP))
	if m.session.Store.State().PreviewVisible {
		t.Fatalf("preview should be hidden")
	}
	if cmd := m.requestPreview(); cmd != nil {
		t.Fatalf("no preview request expected while hidden")
	}
}

func TestTruncate(t *testing.T) {
	if got := truncate("very_long_animation_name.xml", 10); got != "very_lo..." {
		t.Fatalf("truncate = %q", got)
	}
	if got := truncate("short", 10); got != "short" {
		t.Fatalf("truncate = %q", got)
	}
}
