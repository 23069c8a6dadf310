package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Up     key.Binding
	Down   key.Binding
	Toggle key.Binding
	Study  key.Binding
	Fast   key.Binding
	Hint   key.Binding
	Start  key.Binding
	Back   key.Binding
	Quit   key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Up:     key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		Down:   key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		Toggle: key.NewBinding(key.WithKeys(" ", "x"), key.WithHelp("space", "toggle course")),
		Study:  key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "study")),
		Fast:   key.NewBinding(key.WithKeys("f"), key.WithHelp("f", "fast")),
		Hint:   key.NewBinding(key.WithKeys("h"), key.WithHelp("h", "hint")),
		Start:  key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "start")),
		Back:   key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "courses")),
		Quit:   key.NewBinding(key.WithKeys("ctrl+c", "q"), key.WithHelp("q", "quit")),
	}
}

func (k keyMap) selectorHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Toggle, k.Study, k.Fast, k.Hint, k.Start, k.Quit}
}

func (k keyMap) practiceHelp() []key.Binding {
	return []key.Binding{k.Back, key.NewBinding(key.WithKeys("ctrl+c"), key.WithHelp("ctrl+c", "quit"))}
}
