package finder

import (
	"github.com/amonks/findpage/internal/help"
	"github.com/charmbracelet/bubbles/key"
)

type keyMap struct {
	Open     key.Binding
	Close    key.Binding
	Next     key.Binding
	Previous key.Binding
	Regexp   key.Binding

	Help     key.Binding
	Quit     key.Binding
	Up       key.Binding
	Down     key.Binding
	PageUp   key.Binding
	PageDown key.Binding
	Top      key.Binding
	Bottom   key.Binding
}

// Shift+F3 arrives from most terminals as F15.
var defaultKeys = keyMap{
	Open:     key.NewBinding(key.WithKeys("ctrl+f", "/"), key.WithHelp("ctrl+f, /", "find")),
	Close:    key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "close find")),
	Next:     key.NewBinding(key.WithKeys("enter", "f3", "ctrl+n"), key.WithHelp("enter, f3", "next match")),
	Previous: key.NewBinding(key.WithKeys("f15", "ctrl+p"), key.WithHelp("shift+f3, ctrl+p", "previous match")),
	Regexp:   key.NewBinding(key.WithKeys("ctrl+r"), key.WithHelp("ctrl+r", "toggle regexp")),

	Help:     key.NewBinding(key.WithKeys("?", "h"), key.WithHelp("?, h", "show help")),
	Quit:     key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	Up:       key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑, k", "up")),
	Down:     key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓, j", "down")),
	PageUp:   key.NewBinding(key.WithKeys("pgup", "ctrl+u"), key.WithHelp("pgup", "page up")),
	PageDown: key.NewBinding(key.WithKeys("pgdown", "ctrl+d", " "), key.WithHelp("pgdown", "page down")),
	Top:      key.NewBinding(key.WithKeys("g", "home"), key.WithHelp("g", "go to top")),
	Bottom:   key.NewBinding(key.WithKeys("G", "end"), key.WithHelp("G", "go to bottom")),
}

func (k keyMap) helpmenu() help.Menu {
	return help.Menu{
		help.FromBindings("Page", k.Open, k.Help, k.Up, k.Down, k.PageUp, k.PageDown, k.Top, k.Bottom, k.Quit),
		help.FromBindings("Find", k.Next, k.Previous, k.Regexp, k.Close),
		{
			Title: "Help",
			Keys:  []help.Key{{Keys: "esc", Desc: "exit help"}},
		},
	}
}

func (k keyMap) footer() help.Section {
	return help.FromBindings("", k.Open, k.Help, k.Quit)
}
