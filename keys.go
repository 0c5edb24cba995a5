package main

import "github.com/charmbracelet/bubbles/key"

// keyMap holds the bindings of the sphere view. Field editing and the
// palette use the fixed keys shown in their own hints.
type keyMap struct {
	Apply    key.Binding
	Undo     key.Binding
	Rerender key.Binding
	Inverse  key.Binding
	Palette  key.Binding
	Fields   key.Binding
	Gate     key.Binding
	State    key.Binding
	Camera   key.Binding
	Reset    key.Binding
	Help     key.Binding
	Quit     key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Apply:    key.NewBinding(key.WithKeys("a", "enter"), key.WithHelp("a", "apply")),
		Undo:     key.NewBinding(key.WithKeys("u", "backspace"), key.WithHelp("u", "undo")),
		Rerender: key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "rerender")),
		Inverse:  key.NewBinding(key.WithKeys("d"), key.WithHelp("d", "dagger")),
		Palette:  key.NewBinding(key.WithKeys("p"), key.WithHelp("p", "palette")),
		Fields:   key.NewBinding(key.WithKeys("tab", "e"), key.WithHelp("tab", "edit fields")),
		Gate:     key.NewBinding(key.WithKeys("i", "x", "y", "z", "h", "s", "t", "S", "T"), key.WithHelp("x y z h s t S T i", "gate")),
		State:    key.NewBinding(key.WithKeys("0", "1", "+", "-"), key.WithHelp("0 1 + -", "state")),
		Camera:   key.NewBinding(key.WithKeys("up", "down", "left", "right"), key.WithHelp("←↑↓→", "camera")),
		Reset:    key.NewBinding(key.WithKeys("c"), key.WithHelp("c", "reset camera")),
		Help:     key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "more")),
		Quit:     key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

// ShortHelp implements help.KeyMap.
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Apply, k.Undo, k.Gate, k.State, k.Fields, k.Help, k.Quit}
}

// FullHelp implements help.KeyMap.
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Apply, k.Undo, k.Rerender, k.Inverse},
		{k.Gate, k.State, k.Palette, k.Fields},
		{k.Camera, k.Reset, k.Help, k.Quit},
	}
}

// shortcutItem finds the palette entry bound to a key.
func shortcutItem(k string) (cat int, item menuItem, ok bool) {
	for ci, c := range palette {
		for _, it := range c.items {
			if it.shortcut == k {
				return ci, it, true
			}
		}
	}
	return 0, menuItem{}, false
}
