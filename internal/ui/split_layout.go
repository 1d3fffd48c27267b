package ui

import (
	"strings"

	"charm.land/lipgloss/v2"
	"github.com/charmbracelet/x/ansi"
	runewidth "github.com/mattn/go-runewidth"
)

// SeparatorRune is drawn between adjacent columns.
const SeparatorRune = "│"

// ColumnState is one visible column, already sized in cells.
type ColumnState struct {
	Title   string
	Body    string
	Width   int
	Focused bool
	// Depth is the number of items on the column's back stack.
	Depth int
}

// SplitLayoutState captures everything needed to draw the split columns.
// The model fills it from the controller so rendering stays a pure function.
type SplitLayoutState struct {
	Columns []ColumnState
	Height  int
	NoColor bool

	SeparatorColor string
	// ShowStatusBar reserves the first row for StatusBar. Separators whose
	// x offset is below StatusBarClip cells leave that row blank.
	ShowStatusBar bool
	StatusBar     string
	StatusBarClip int

	Footer string
}

// RenderSplitLayout renders the columns side by side, row by row.
func RenderSplitLayout(state SplitLayoutState) string {
	if state.Height <= 0 {
		state.Height = 24
	}
	footerHeight := 0
	if state.Footer != "" {
		footerHeight = lipgloss.Height(state.Footer)
	}
	statusRows := 0
	if state.ShowStatusBar {
		statusRows = 1
	}
	bodyRows := max(1, state.Height-footerHeight-statusRows)

	cols := make([][]string, len(state.Columns))
	total := 0
	for i, col := range state.Columns {
		cols[i] = renderColumn(col, bodyRows, state.NoColor)
		total += col.Width
	}
	total += max(0, len(state.Columns)-1)

	sepStyle := lipgloss.NewStyle()
	if !state.NoColor && state.SeparatorColor != "" {
		sepStyle = sepStyle.Foreground(lipgloss.Color(state.SeparatorColor))
	}
	sep := sepStyle.Render(SeparatorRune)

	var b strings.Builder
	if state.ShowStatusBar {
		b.WriteString(statusRow(state, total, sep))
		b.WriteString("\n")
	}
	for row := 0; row < bodyRows; row++ {
		for i := range cols {
			if i > 0 {
				b.WriteString(sep)
			}
			b.WriteString(cols[i][row])
		}
		if row < bodyRows-1 {
			b.WriteString("\n")
		}
	}
	if state.Footer != "" {
		b.WriteString("\n")
		b.WriteString(state.Footer)
	}
	return b.String()
}

// statusRow draws the status bar text and, past the clip width, the top
// cells of the separators.
func statusRow(state SplitLayoutState, total int, sep string) string {
	text := fitCells(state.StatusBar, total)
	if len(state.Columns) < 2 {
		return text
	}
	var b strings.Builder
	x := 0
	for i, col := range state.Columns {
		segment := fitCells(ansi.Cut(text, x, x+col.Width), col.Width)
		b.WriteString(segment)
		x += col.Width
		if i == len(state.Columns)-1 {
			break
		}
		if SeparatorClipped(x, state.StatusBarClip) {
			b.WriteString(fitCells(ansi.Cut(text, x, x+1), 1))
		} else {
			b.WriteString(sep)
		}
		x++
	}
	return b.String()
}

// SeparatorClipped reports whether a separator at cell offset x is hidden
// in the status bar row.
func SeparatorClipped(x, clip int) bool {
	return x < clip
}

func renderColumn(col ColumnState, rows int, noColor bool) []string {
	width := max(0, col.Width)
	out := make([]string, 0, rows)

	title := col.Title
	if col.Depth > 1 {
		title = "‹ " + title
	}
	title = TruncateTitle(title, width)
	titleStyle := lipgloss.NewStyle().Bold(col.Focused)
	if !noColor {
		if col.Focused {
			titleStyle = titleStyle.Foreground(lipgloss.Color("12"))
		} else {
			titleStyle = titleStyle.Foreground(lipgloss.Color("250"))
		}
	}
	out = append(out, titleStyle.Render(runewidth.FillRight(title, width)))

	for _, line := range strings.Split(col.Body, "\n") {
		if len(out) == rows {
			break
		}
		out = append(out, fitCells(line, width))
	}
	blank := strings.Repeat(" ", width)
	for len(out) < rows {
		out = append(out, blank)
	}
	return out[:rows]
}

// TruncateTitle shortens a plain-text title to width cells, marking the
// cut with an ellipsis.
func TruncateTitle(title string, width int) string {
	if width <= 0 {
		return ""
	}
	title = strings.TrimSpace(title)
	if runewidth.StringWidth(title) <= width {
		return title
	}
	return runewidth.Truncate(title, width, "…")
}

// fitCells truncates or pads a possibly styled line to exactly width cells.
func fitCells(s string, width int) string {
	if width <= 0 {
		return ""
	}
	s = ansi.Truncate(s, width, "")
	if w := ansi.StringWidth(s); w < width {
		s += strings.Repeat(" ", width-w)
	}
	return s
}
