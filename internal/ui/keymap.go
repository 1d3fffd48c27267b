package ui

import "charm.land/bubbles/v2/key"

// KeyMap holds the bindings the split model handles itself. Everything
// else is forwarded to the focused column.
type KeyMap struct {
	NextColumn key.Binding
	PrevColumn key.Binding
	Back       key.Binding
	ToggleHelp key.Binding
	Quit       key.Binding
}

// DefaultKeyMap returns the default bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		NextColumn: key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "next column")),
		PrevColumn: key.NewBinding(key.WithKeys("shift+tab"), key.WithHelp("shift+tab", "prev column")),
		Back:       key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "back")),
		ToggleHelp: key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "toggle help")),
		Quit:       key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

// ShortHelp returns the bindings shown in the footer.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.NextColumn, k.Back, k.ToggleHelp, k.Quit}
}

// FullHelp returns every binding, grouped.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.NextColumn, k.PrevColumn, k.Back},
		{k.ToggleHelp, k.Quit},
	}
}

// WithExtra appends bindings contributed by the hosting program to the help.
type WithExtra struct {
	KeyMap
	Extra []key.Binding
}

// ShortHelp implements help.KeyMap.
func (k WithExtra) ShortHelp() []key.Binding {
	return append(k.KeyMap.ShortHelp(), k.Extra...)
}

// FullHelp implements help.KeyMap.
func (k WithExtra) FullHelp() [][]key.Binding {
	return append(k.KeyMap.FullHelp(), k.Extra)
}
