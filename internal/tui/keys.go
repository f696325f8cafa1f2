package tui

import "github.com/charmbracelet/bubbles/key"

// Letters go to the query input, so every binding here is a control or
// navigation key.
type keyMap struct {
	Up        key.Binding
	Down      key.Binding
	Copy      key.Binding
	Quit      key.Binding
	NextGroup key.Binding
	PrevGroup key.Binding
	HalfUp    key.Binding
	HalfDown  key.Binding
	Sender    key.Binding
}

var keys = keyMap{
	Up:        key.NewBinding(key.WithKeys("up", "ctrl+k"), key.WithHelp("↑", "previous hit")),
	Down:      key.NewBinding(key.WithKeys("down", "ctrl+j"), key.WithHelp("↓", "next hit")),
	Copy:      key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "copy message")),
	Quit:      key.NewBinding(key.WithKeys("esc", "ctrl+c"), key.WithHelp("esc", "quit")),
	NextGroup: key.NewBinding(key.WithKeys("ctrl+n", "pgdown"), key.WithHelp("C-n", "next period")),
	PrevGroup: key.NewBinding(key.WithKeys("ctrl+p", "pgup"), key.WithHelp("C-p", "previous period")),
	HalfUp:    key.NewBinding(key.WithKeys("ctrl+u"), key.WithHelp("C-u", "scroll up")),
	HalfDown:  key.NewBinding(key.WithKeys("ctrl+d"), key.WithHelp("C-d", "scroll down")),
	Sender:    key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "filter by sender")),
}

func (k keyMap) help() []key.Binding {
	return []key.Binding{k.Down, k.NextGroup, k.Sender, k.Copy, k.Quit}
}
