package ui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Save    key.Binding
	Revert  key.Binding
	Close   key.Binding
	Next    key.Binding
	Prev    key.Binding
	Preview key.Binding
	Format  key.Binding
	Quit    key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Save:    key.NewBinding(key.WithKeys("ctrl+s"), key.WithHelp("ctrl+s", "save")),
		Revert:  key.NewBinding(key.WithKeys("ctrl+r"), key.WithHelp("ctrl+r", "revert")),
		Close:   key.NewBinding(key.WithKeys("ctrl+w"), key.WithHelp("ctrl+w", "close")),
		Next:    key.NewBinding(key.WithKeys("ctrl+pgdown", "f6"), key.WithHelp("f6", "next tab")),
		Prev:    key.NewBinding(key.WithKeys("ctrl+pgup", "f5"), key.WithHelp("f5", "prev tab")),
		Preview: key.NewBinding(key.WithKeys("ctrl+p"), key.WithHelp("ctrl+p", "preview")),
		Format:  key.NewBinding(key.WithKeys("ctrl+f"), key.WithHelp("ctrl+f", "format")),
		Quit:    key.NewBinding(key.WithKeys("ctrl+q", "ctrl+c"), key.WithHelp("ctrl+q", "quit")),
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Save, k.Revert, k.Close, k.Next, k.Preview, k.Format, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Save, k.Revert, k.Close},
		{k.Next, k.Prev},
		{k.Preview, k.Format, k.Quit},
	}
}
