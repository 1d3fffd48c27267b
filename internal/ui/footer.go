package ui

import (
	"charm.land/bubbles/v2/help"
	"charm.land/lipgloss/v2"
)

// NewHelp returns a help bubble in short mode.
func NewHelp() help.Model {
	h := help.New()
	h.ShowAll = false
	return h
}

// RenderFooter renders the help line for keys, fitted to width cells.
func RenderFooter(h help.Model, keys help.KeyMap, width int, noColor bool) string {
	h.SetWidth(max(0, width-2))
	style := lipgloss.NewStyle().Padding(0, 1).Width(max(0, width))
	if !noColor {
		style = style.Foreground(lipgloss.Color("243"))
	}
	return style.Render(h.View(keys))
}
