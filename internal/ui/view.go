package ui

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"hkanno/internal/editor"
)

const tabLabelWidth = 24

var (
	activeTabStyle   = lipgloss.NewStyle().Bold(true).Underline(true).Padding(0, 1)
	inactiveTabStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("8")).Padding(0, 1)
	paneStyle        = lipgloss.NewStyle().Border(lipgloss.NormalBorder()).BorderForeground(lipgloss.Color("8"))
	highlightStyle   = lipgloss.NewStyle().Background(lipgloss.Color("237"))
	formatStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("6"))
)

func statusStyle(level editor.Level) lipgloss.Style {
	if level == editor.LevelError {
		return lipgloss.NewStyle().Foreground(lipgloss.Color("1"))
	}
	return lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
}

// layout sizes the panes for the current window. The preview takes the
// right half when visible.
func (m *Model) layout() {
	bodyHeight := max(3, m.height-3)
	editorWidth := m.width
	if m.session.Store.State().PreviewVisible {
		editorWidth = m.width / 2
		m.preview.Width = max(10, m.width-editorWidth-2)
		m.preview.Height = max(1, bodyHeight-2)
	}
	m.text.SetWidth(max(10, editorWidth))
	m.text.SetHeight(bodyHeight)
	m.help.Width = m.width
	m.renderPreview()
}

func (m *Model) renderPreview() {
	if m.previewText == "" {
		m.preview.SetContent("")
		return
	}
	lines := strings.Split(strings.TrimSuffix(m.previewText, "\n"), "\n")
	if i := m.previewLine - 1; i >= 0 && i < len(lines) {
		lines[i] = highlightStyle.Render(lines[i])
	}
	m.preview.SetContent(strings.Join(lines, "\n"))
}

func (m *Model) View() string {
	state := m.session.Store.State()
	var b strings.Builder
	b.WriteString(tabBar(state, m.width))
	b.WriteByte('\n')

	body := m.text.View()
	if state.PreviewVisible {
		body = lipgloss.JoinHorizontal(lipgloss.Top, body, paneStyle.Render(m.preview.View()))
	}
	b.WriteString(body)
	b.WriteByte('\n')
	b.WriteString(m.statusLine(state))
	b.WriteByte('\n')
	b.WriteString(m.help.View(m.keys))
	return b.String()
}

func (m *Model) statusLine(state editor.State) string {
	tab, ok := state.ActiveTab()
	if !ok {
		return statusStyle(editor.LevelInfo).Render("No file is open")
	}
	parts := []string{
		fmt.Sprintf("%s %s", formatStyle.Render(string(tab.Format)), truncate(tab.OutputPath, max(20, m.width/3))),
	}
	if m.problems > 0 {
		parts = append(parts, statusStyle(editor.LevelError).Render(fmt.Sprintf("%d problem(s)", m.problems)))
	}
	if m.status.Message != "" {
		parts = append(parts, statusStyle(m.status.Level).Render(m.status.Message))
	}
	return strings.Join(parts, "  ")
}

// tabBar renders one label per tab; dirty tabs carry a '*'.
func tabBar(state editor.State, width int) string {
	labels := make([]string, 0, len(state.Tabs))
	for i, tab := range state.Tabs {
		style := inactiveTabStyle
		if i == state.Active {
			style = activeTabStyle
		}
		labels = append(labels, style.Render(tabLabel(tab)))
	}
	bar := lipgloss.JoinHorizontal(lipgloss.Top, labels...)
	if width > 0 && lipgloss.Width(bar) > width {
		return lipgloss.NewStyle().MaxWidth(width).Render(bar)
	}
	return bar
}

func tabLabel(tab editor.FileTab) string {
	label := truncate(filepath.Base(tab.InputPath), tabLabelWidth)
	if tab.Dirty {
		label += "*"
	}
	return label
}

func truncate(value string, width int) string {
	if width <= 0 {
		return value
	}
	if runewidth.StringWidth(value) <= width {
		return value
	}
	if width <= 3 {
		return runewidth.Truncate(value, width, "")
	}
	return runewidth.Truncate(value, width-3, "...")
}
