package ui

import (
	"strings"
	"testing"

	"charm.land/bubbles/v2/key"
	tea "charm.land/bubbletea/v2"
	"github.com/charmbracelet/x/ansi"
	"github.com/stretchr/testify/assert"
)

func TestDefaultKeyMapMatches(t *testing.T) {
	k := DefaultKeyMap()

	assert.True(t, key.Matches(tea.KeyPressMsg{Code: tea.KeyTab}, k.NextColumn))
	assert.True(t, key.Matches(tea.KeyPressMsg{Code: tea.KeyTab, Mod: tea.ModShift}, k.PrevColumn))
	assert.True(t, key.Matches(tea.KeyPressMsg{Code: tea.KeyEscape}, k.Back))
	assert.True(t, key.Matches(tea.KeyPressMsg{Code: 'q', Text: "q"}, k.Quit))
	assert.False(t, key.Matches(tea.KeyPressMsg{Code: 'x', Text: "x"}, k.Quit))
}

func TestKeyMapHelp(t *testing.T) {
	k := DefaultKeyMap()
	assert.Len(t, k.ShortHelp(), 4)
	assert.Len(t, k.FullHelp(), 2)

	extra := key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "show secondary"))
	withExtra := WithExtra{KeyMap: k, Extra: []key.Binding{extra}}
	assert.Len(t, withExtra.ShortHelp(), 5)
	assert.Len(t, withExtra.FullHelp(), 3)
}

func TestRenderFooter(t *testing.T) {
	out := ansi.Strip(RenderFooter(NewHelp(), DefaultKeyMap(), 120, true))

	assert.Contains(t, out, "next column")
	assert.Contains(t, out, "quit")
	assert.Equal(t, 1, strings.Count(out, "\n")+1)
}
