package ui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	NextSheet  key.Binding
	PrevSheet  key.Binding
	ExportCSV  key.Binding
	ExportJSON key.Binding
	Remove     key.Binding
	Back       key.Binding
	Quit       key.Binding
}

var keys = keyMap{
	NextSheet: key.NewBinding(
		key.WithKeys("tab", "right", "l"),
		key.WithHelp("tab/→", "next sheet"),
	),
	PrevSheet: key.NewBinding(
		key.WithKeys("shift+tab", "left", "h"),
		key.WithHelp("shift+tab/←", "prev sheet"),
	),
	ExportCSV: key.NewBinding(
		key.WithKeys("c"),
		key.WithHelp("c", "export csv"),
	),
	ExportJSON: key.NewBinding(
		key.WithKeys("J"),
		key.WithHelp("J", "export json"),
	),
	Remove: key.NewBinding(
		key.WithKeys("r", "backspace"),
		key.WithHelp("r", "remove file"),
	),
	Back: key.NewBinding(
		key.WithKeys("esc", "enter"),
		key.WithHelp("esc", "back"),
	),
	Quit: key.NewBinding(
		key.WithKeys("q", "ctrl+c"),
		key.WithHelp("q", "quit"),
	),
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.NextSheet, k.PrevSheet, k.ExportCSV, k.ExportJSON, k.Remove, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.NextSheet, k.PrevSheet},
		{k.ExportCSV, k.ExportJSON},
		{k.Remove, k.Back, k.Quit},
	}
}
