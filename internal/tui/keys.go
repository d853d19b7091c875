package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Quit     key.Binding
	Undo     key.Binding
	Save     key.Binding
	Clear    key.Binding
	Escape   key.Binding
	Delete   key.Binding
	Confirm  key.Binding
	Cancel   key.Binding
	Tools    []key.Binding
	Filters  []key.Binding
	Explorer key.Binding
	Paste    key.Binding
	Table    key.Binding
	PNG      key.Binding
	GeoJSON  key.Binding
	CSV      key.Binding
	Help     key.Binding
	Enter    key.Binding
}

func defaultKeys() keyMap {
	return keyMap{
		Quit:    key.NewBinding(key.WithKeys("ctrl+c", "q"), key.WithHelp("q", "quit")),
		Undo:    key.NewBinding(key.WithKeys("ctrl+z", "u"), key.WithHelp("ctrl+z", "undo")),
		Save:    key.NewBinding(key.WithKeys("ctrl+s", "s"), key.WithHelp("s", "save")),
		Clear:   key.NewBinding(key.WithKeys("c"), key.WithHelp("c", "clear")),
		Escape:  key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "cancel")),
		Delete:  key.NewBinding(key.WithKeys("delete", "backspace"), key.WithHelp("del", "delete")),
		Confirm: key.NewBinding(key.WithKeys("y", "enter"), key.WithHelp("y", "confirm")),
		Cancel:  key.NewBinding(key.WithKeys("n"), key.WithHelp("n", "cancel")),
		Tools: []key.Binding{
			key.NewBinding(key.WithKeys("1"), key.WithHelp("1-5", "tool")),
			key.NewBinding(key.WithKeys("2")),
			key.NewBinding(key.WithKeys("3")),
			key.NewBinding(key.WithKeys("4")),
			key.NewBinding(key.WithKeys("5")),
		},
		Filters: []key.Binding{
			key.NewBinding(key.WithKeys("!", "alt+1"), key.WithHelp("⇧1-5", "filter")),
			key.NewBinding(key.WithKeys("@", "alt+2")),
			key.NewBinding(key.WithKeys("#", "alt+3")),
			key.NewBinding(key.WithKeys("$", "alt+4")),
			key.NewBinding(key.WithKeys("%", "alt+5")),
		},
		Explorer: key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "import")),
		Paste:    key.NewBinding(key.WithKeys("p"), key.WithHelp("p", "paste")),
		Table:    key.NewBinding(key.WithKeys("t"), key.WithHelp("t", "table")),
		PNG:      key.NewBinding(key.WithKeys("x"), key.WithHelp("x", "png")),
		GeoJSON:  key.NewBinding(key.WithKeys("g"), key.WithHelp("g", "geojson")),
		CSV:      key.NewBinding(key.WithKeys("e"), key.WithHelp("e", "csv")),
		Help:     key.NewBinding(key.WithKeys("h", "?"), key.WithHelp("h", "help")),
		Enter:    key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "open")),
	}
}

// shortHelp lists the bindings shown in the footer.
func (k keyMap) shortHelp() []key.Binding {
	return []key.Binding{k.Tools[0], k.Filters[0], k.Undo, k.Save, k.Clear, k.Delete, k.Explorer, k.Paste, k.Table, k.PNG, k.GeoJSON, k.Help, k.Quit}
}
