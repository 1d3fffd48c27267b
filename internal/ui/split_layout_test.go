package ui

import (
	"strings"
	"testing"

	"github.com/charmbracelet/x/ansi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderSplitLayoutRows(t *testing.T) {
	out := RenderSplitLayout(SplitLayoutState{
		Columns: []ColumnState{
			{Title: "left", Body: "a\nb", Width: 6, Focused: true},
			{Title: "right", Body: "c", Width: 7},
		},
		Height:  4,
		NoColor: true,
	})

	lines := strings.Split(ansi.Strip(out), "\n")
	require.Len(t, lines, 4)
	assert.Equal(t, "left  │right  ", lines[0])
	assert.Equal(t, "a     │c      ", lines[1])
	assert.Equal(t, "b     │       ", lines[2])
	assert.Equal(t, "      │       ", lines[3])
}

func TestRenderSplitLayoutTruncatesWideLines(t *testing.T) {
	out := RenderSplitLayout(SplitLayoutState{
		Columns: []ColumnState{
			{Title: "a very long title", Body: "0123456789", Width: 5},
		},
		Height:  2,
		NoColor: true,
	})

	lines := strings.Split(ansi.Strip(out), "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, "a ve…", lines[0])
	assert.Equal(t, "01234", lines[1])
}

func TestRenderSplitLayoutStatusBarClip(t *testing.T) {
	state := SplitLayoutState{
		Columns: []ColumnState{
			{Title: "a", Width: 4},
			{Title: "b", Width: 4},
			{Title: "c", Width: 4},
		},
		Height:        3,
		NoColor:       true,
		ShowStatusBar: true,
		StatusBar:     "ok",
		StatusBarClip: 6,
	}

	lines := strings.Split(ansi.Strip(RenderSplitLayout(state)), "\n")

	require.Len(t, lines, 3)
	assert.Equal(t, "ok       │    ", lines[0])
	status := []rune(lines[0])
	assert.Equal(t, ' ', status[4], "separator at x=4 is under the clip width")
	assert.Equal(t, '│', status[9])
	assert.Equal(t, "ok", string(status[:2]))
	body := []rune(lines[1])
	assert.Equal(t, '│', body[4])
}

func TestRenderSplitLayoutFooter(t *testing.T) {
	out := RenderSplitLayout(SplitLayoutState{
		Columns: []ColumnState{{Title: "only", Width: 10}},
		Height:  4,
		NoColor: true,
		Footer:  "footer",
	})

	lines := strings.Split(ansi.Strip(out), "\n")
	require.Len(t, lines, 4)
	assert.Equal(t, "footer", lines[3])
}

func TestRenderSplitLayoutDepthMarker(t *testing.T) {
	out := RenderSplitLayout(SplitLayoutState{
		Columns: []ColumnState{{Title: "page", Width: 10, Depth: 2}},
		Height:  1,
		NoColor: true,
	})
	assert.Equal(t, "‹ page    ", ansi.Strip(out))
}

func TestSeparatorColorApplied(t *testing.T) {
	colored := RenderSplitLayout(SplitLayoutState{
		Columns:        []ColumnState{{Width: 2}, {Width: 2}},
		Height:         1,
		SeparatorColor: "#555555",
	})
	plain := RenderSplitLayout(SplitLayoutState{
		Columns:        []ColumnState{{Width: 2}, {Width: 2}},
		Height:         1,
		NoColor:        true,
		SeparatorColor: "#555555",
	})
	assert.NotEqual(t, colored, plain)
	assert.Equal(t, ansi.Strip(colored), ansi.Strip(plain))
}

func TestTruncateTitle(t *testing.T) {
	tests := []struct {
		title string
		width int
		want  string
	}{
		{"inbox", 10, "inbox"},
		{"  padded  ", 10, "padded"},
		{"inbox", 0, ""},
		{"messages", 5, "mess…"},
		{"日本語タイトル", 5, "日本…"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, TruncateTitle(tt.title, tt.width), "%q at %d", tt.title, tt.width)
	}
}

func TestSeparatorClipped(t *testing.T) {
	assert.True(t, SeparatorClipped(3, 7))
	assert.False(t, SeparatorClipped(7, 7))
	assert.False(t, SeparatorClipped(0, 0))
}
