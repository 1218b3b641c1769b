package main

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Up        key.Binding
	Down      key.Binding
	PageUp    key.Binding
	PageDown  key.Binding
	Top       key.Binding
	Bottom    key.Binding
	Select    key.Binding
	Favorite  key.Binding
	Favorites key.Binding
	NextGenre key.Binding
	PrevGenre key.Binding
	Search    key.Binding
	Retry     key.Binding
	Open      key.Binding
	Remove    key.Binding
	Back      key.Binding
	Quit      key.Binding
	ForceQuit key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Up:        key.NewBinding(key.WithKeys("up", "k")),
		Down:      key.NewBinding(key.WithKeys("down", "j")),
		PageUp:    key.NewBinding(key.WithKeys("pgup", "ctrl+u")),
		PageDown:  key.NewBinding(key.WithKeys("pgdown", "ctrl+d")),
		Top:       key.NewBinding(key.WithKeys("home", "g")),
		Bottom:    key.NewBinding(key.WithKeys("end", "G")),
		Select:    key.NewBinding(key.WithKeys("enter")),
		Favorite:  key.NewBinding(key.WithKeys("f", " ")),
		Favorites: key.NewBinding(key.WithKeys("F", "ctrl+f")),
		NextGenre: key.NewBinding(key.WithKeys("]")),
		PrevGenre: key.NewBinding(key.WithKeys("[")),
		Search:    key.NewBinding(key.WithKeys("/", "tab")),
		Retry:     key.NewBinding(key.WithKeys("r")),
		Open:      key.NewBinding(key.WithKeys("o")),
		Remove:    key.NewBinding(key.WithKeys("x", "delete")),
		Back:      key.NewBinding(key.WithKeys("esc", "backspace")),
		Quit:      key.NewBinding(key.WithKeys("q")),
		ForceQuit: key.NewBinding(key.WithKeys("ctrl+c")),
	}
}
