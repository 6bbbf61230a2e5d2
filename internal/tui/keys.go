package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	ForceQuit key.Binding

	// poll list
	Create key.Binding
	Open   key.Binding

	// poll screen
	Vote key.Binding
	Back key.Binding

	// create form
	Submit       key.Binding
	Cancel       key.Binding
	Next         key.Binding
	Prev         key.Binding
	AddOption    key.Binding
	RemoveOption key.Binding
}

func defaultKeys() keyMap {
	return keyMap{
		ForceQuit: key.NewBinding(key.WithKeys("ctrl+c")),

		Create: key.NewBinding(key.WithKeys("c", "n"), key.WithHelp("c", "create")),
		Open:   key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "open")),

		Vote: key.NewBinding(key.WithKeys("enter", " "), key.WithHelp("enter/space", "vote")),
		Back: key.NewBinding(key.WithKeys("esc", "backspace"), key.WithHelp("esc", "back")),

		Submit:       key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "create poll")),
		Cancel:       key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "cancel")),
		Next:         key.NewBinding(key.WithKeys("tab", "down"), key.WithHelp("tab", "next field")),
		Prev:         key.NewBinding(key.WithKeys("shift+tab", "up"), key.WithHelp("shift+tab", "prev field")),
		AddOption:    key.NewBinding(key.WithKeys("ctrl+n"), key.WithHelp("ctrl+n", "add option")),
		RemoveOption: key.NewBinding(key.WithKeys("ctrl+x"), key.WithHelp("ctrl+x", "remove option")),
	}
}

func (k keyMap) formHelp() []key.Binding {
	return []key.Binding{k.Submit, k.Next, k.AddOption, k.RemoveOption, k.Cancel}
}
