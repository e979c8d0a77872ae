package ui

import "github.com/charmbracelet/bubbles/key"

// keyMap defines the [key.Binding] mapping for the entry form.
type keyMap struct {
	next key.Binding
	prev key.Binding
	quit key.Binding
}

func newKeyMap() keyMap {
	return keyMap{
		next: key.NewBinding(key.WithKeys("enter", "tab", "down"), key.WithHelp("enter/tab", "next")),
		prev: key.NewBinding(key.WithKeys("shift+tab", "up"), key.WithHelp("shift+tab", "back")),
		quit: key.NewBinding(key.WithKeys("esc", "ctrl+c"), key.WithHelp("esc", "cancel")),
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.next, k.prev, k.quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{{k.next, k.prev}, {k.quit}}
}
