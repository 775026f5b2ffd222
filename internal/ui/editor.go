// Package ui is the terminal editor behind "hkanno edit": a tab bar, the
// annotation text on the left and the XML preview on the right, kept in step
// with the caret.
package ui

import (
	"context"
	"fmt"
	"io"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"hkanno/internal/check"
	"hkanno/internal/diag"
	"hkanno/internal/editor"
	"hkanno/internal/hkanno"
	"hkanno/internal/panesync"
	"hkanno/internal/parser"
	"hkanno/internal/source"
)

type previewMsg struct {
	ticket panesync.Ticket
	text   string
	err    error
}

type saveMsg struct {
	result editor.SaveResult
}

// Model is the Bubble Tea model of the editor. The editor.Store is the source
// of truth; the textarea mirrors the active tab.
type Model struct {
	ctx     context.Context
	session *editor.Session
	keys    keyMap
	help    help.Model

	text    textarea.Model
	preview viewport.Model

	coord       panesync.Coordinator
	sync        panesync.Synchronizer
	previewText string
	previewLine int

	loadedID  string
	status    editor.Notification
	problems  int
	quitArmed bool

	width  int
	height int
}

// New builds the editor over session. The active tab, if any, is loaded
// into the text area.
func New(ctx context.Context, session *editor.Session) *Model {
	ta := textarea.New()
	ta.ShowLineNumbers = true
	ta.CharLimit = 0
	ta.MaxHeight = 0
	ta.Prompt = ""
	ta.Focus()

	m := &Model{
		ctx:     ctx,
		session: session,
		keys:    defaultKeyMap(),
		help:    help.New(),
		text:    ta,
		preview: viewport.New(40, 10),
		width:   80,
		height:  24,
	}
	m.loadActive()
	m.layout()
	return m
}

// Notify shows n in the status line.
func (m *Model) Notify(n editor.Notification) {
	m.status = n
}

func (m *Model) Init() tea.Cmd {
	return tea.Batch(textarea.Blink, m.requestPreview())
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.layout()
		return m, nil
	case previewMsg:
		m.applyPreview(msg)
		return m, nil
	case saveMsg:
		m.status = msg.result.Note
		if err := m.session.Commit(msg.result); err != nil {
			m.status = editor.Notification{Level: editor.LevelError, Message: err.Error()}
		}
		return m, nil
	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	var cmd tea.Cmd
	m.text, cmd = m.text.Update(msg)
	return m, cmd
}

func (m *Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keys.Quit) {
		if m.session.Store.State().Dirty() && !m.quitArmed {
			m.quitArmed = true
			m.status = editor.Notification{Level: editor.LevelError, Message: "Unsaved changes, press again to quit"}
			return m, nil
		}
		return m, tea.Quit
	}
	m.quitArmed = false

	state := m.session.Store.State()
	switch {
	case key.Matches(msg, m.keys.Save):
		return m, m.save()
	case key.Matches(msg, m.keys.Revert):
		m.dispatch(editor.RevertActive{})
		m.loadedID = ""
	case key.Matches(msg, m.keys.Close):
		m.dispatch(editor.Close{Index: state.Active})
	case key.Matches(msg, m.keys.Next):
		m.dispatch(editor.SetActive{Index: state.Active + 1})
	case key.Matches(msg, m.keys.Prev):
		m.dispatch(editor.SetActive{Index: state.Active - 1})
	case key.Matches(msg, m.keys.Preview):
		m.dispatch(editor.TogglePreview{})
		m.layout()
	case key.Matches(msg, m.keys.Format):
		if tab, ok := state.ActiveTab(); ok {
			m.dispatch(editor.UpdateFormat{Format: nextFormat(tab.Format)})
		}
		return m, nil
	default:
		return m, m.edit(msg)
	}
	m.loadActive()
	return m, m.requestPreview()
}

// edit forwards msg to the text area and records text and caret changes.
func (m *Model) edit(msg tea.Msg) tea.Cmd {
	tab, ok := m.session.Store.State().ActiveTab()
	if !ok {
		return nil
	}
	var cmd tea.Cmd
	m.text, cmd = m.text.Update(msg)

	var preview tea.Cmd
	if value := m.text.Value(); value != tab.Text {
		m.dispatch(editor.UpdateText{Text: value})
		m.refreshProblems(value)
		preview = m.requestPreview()
	}
	cur := m.cursor()
	if tab.Cursor == nil || *tab.Cursor != cur {
		m.dispatch(editor.UpdateCursor{Cursor: cur})
	}
	m.followCursor()
	return tea.Batch(cmd, preview)
}

func (m *Model) dispatch(a editor.Action) {
	if err := m.session.Store.Dispatch(a); err != nil {
		m.status = editor.Notification{Level: editor.LevelError, Message: err.Error()}
	}
}

func (m *Model) save() tea.Cmd {
	ctx, session := m.ctx, m.session
	return func() tea.Msg {
		return saveMsg{result: session.Write(ctx)}
	}
}

// requestPreview renders the active tab in the background. Results for an
// older text or another tab are dropped on arrival.
func (m *Model) requestPreview() tea.Cmd {
	state := m.session.Store.State()
	tab, ok := state.ActiveTab()
	if !ok || !state.PreviewVisible {
		return nil
	}
	ticket := m.coord.Begin(tab.ID, tab.Text)
	ctx, session := m.ctx, m.session
	return func() tea.Msg {
		out, err := session.Preview(ctx, tab)
		return previewMsg{ticket: ticket, text: out, err: err}
	}
}

func (m *Model) applyPreview(msg previewMsg) {
	tab, ok := m.session.Store.State().ActiveTab()
	if !ok || !m.coord.Accept(msg.ticket, tab.ID, tab.Text) {
		return
	}
	if msg.err != nil {
		m.status = editor.Notification{Level: editor.LevelError, Message: fmt.Sprintf("Preview failed: %v", msg.err)}
		return
	}
	m.previewText = msg.text
	m.sync.UpdateIndex(msg.text)
	m.previewLine = 0
	m.followCursor()
	m.renderPreview()
}

// followCursor scrolls the preview to the annotation under the caret.
func (m *Model) followCursor() {
	tab, ok := m.session.Store.State().ActiveTab()
	if !ok {
		return
	}
	line, ok := m.sync.OnSourceCursorMove(tab.Text, m.cursor().Line)
	if !ok || line == m.previewLine {
		return
	}
	m.previewLine = line
	m.renderPreview()
	m.preview.SetYOffset(max(0, line-1-m.preview.Height/2))
}

// loadActive copies the active tab into the text area when it is not
// already there.
func (m *Model) loadActive() {
	tab, ok := m.session.Store.State().ActiveTab()
	if !ok {
		m.loadedID = ""
		m.text.SetValue("")
		m.previewText = ""
		m.previewLine = 0
		m.problems = 0
		m.renderPreview()
		return
	}
	if tab.ID == m.loadedID && m.text.Value() == tab.Text {
		return
	}
	m.loadedID = tab.ID
	m.text.SetValue(tab.Text)
	m.previewText = ""
	m.previewLine = 0
	m.refreshProblems(tab.Text)
	m.renderPreview()
}

func (m *Model) refreshProblems(text string) {
	m.problems = 0
	for _, d := range check.Diagnose(parser.Parse(text)) {
		if d.Severity >= diag.SevWarning {
			m.problems++
		}
	}
}

// cursor is the caret of the text area as a 1-based line and UTF-16 column.
func (m *Model) cursor() source.Cursor {
	row := m.text.Line()
	li := m.text.LineInfo()
	line := source.Line(m.text.Value(), row+1)
	offset := byteAfterRunes(line, li.StartColumn+li.ColumnOffset)
	return source.Cursor{Line: row + 1, Column: source.Column(line, offset)}
}

func byteAfterRunes(s string, n int) int {
	for i := range s {
		if n == 0 {
			return i
		}
		n--
	}
	return len(s)
}

func nextFormat(f hkanno.OutFormat) hkanno.OutFormat {
	for i, known := range hkanno.Formats {
		if known == f {
			return hkanno.Formats[(i+1)%len(hkanno.Formats)]
		}
	}
	return hkanno.Formats[0]
}

// Run starts the editor on the terminal and blocks until the user quits.
func Run(ctx context.Context, session *editor.Session, notes []editor.Notification, in io.Reader, out io.Writer) error {
	m := New(ctx, session)
	if len(notes) > 0 {
		m.Notify(notes[len(notes)-1])
	}
	opts := []tea.ProgramOption{tea.WithContext(ctx), tea.WithAltScreen(), tea.WithOutput(out)}
	if in != nil {
		opts = append(opts, tea.WithInput(in))
	}
	_, err := tea.NewProgram(m, opts...).Run()
	return err
}
