package splitview

import (
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"
	"github.com/charmbracelet/x/ansi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// settle runs cmd and feeds every resulting message back into m, returning
// the messages in the order they were delivered.
func settle(t *testing.T, m *Model, cmd tea.Cmd) []tea.Msg {
	t.Helper()
	var delivered []tea.Msg
	queue := []tea.Cmd{cmd}
	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]
		if current == nil {
			continue
		}
		msg := current()
		switch msg := msg.(type) {
		case tea.BatchMsg:
			queue = append(queue, []tea.Cmd(msg)...)
			continue
		case nil:
			continue
		}
		delivered = append(delivered, msg)
		updated, next := m.Update(msg)
		require.Same(t, m, updated)
		queue = append(queue, next)
	}
	return delivered
}

func send(t *testing.T, m *Model, msg tea.Msg) []tea.Msg {
	t.Helper()
	updated, cmd := m.Update(msg)
	require.Same(t, m, updated)
	return settle(t, m, cmd)
}

type modelFixture struct {
	p, s, d *mockContent
	c       *Controller
	m       *Model
}

func newModelFixture(t *testing.T, opts ...Option) *modelFixture {
	t.Helper()
	f := &modelFixture{p: newMock("inbox"), s: newMock("threads"), d: newMock("message")}
	f.c = New(0, []Content{f.p, f.s, f.d}, opts...)
	f.m = NewModel(f.c, WithNoColor(true))
	t.Cleanup(f.m.Close)
	settle(t, f.m, f.m.Init())
	return f
}

func TestModelInit(t *testing.T) {
	f := newModelFixture(t)

	assert.True(t, f.p.initCalled)
	assert.True(t, f.s.initCalled)
	assert.True(t, f.d.initCalled)
	assert.True(t, f.d.focused, "the top of the merged primary stack gets focus")
	assert.Equal(t, Primary, f.m.Focus())
}

func TestModelWindowSizeDrivesController(t *testing.T) {
	f := newModelFixture(t)
	require.Equal(t, 1, f.c.Count())

	msgs := send(t, f.m, tea.WindowSizeMsg{Width: 150, Height: 30})

	assert.Equal(t, 3, f.c.Count())
	assert.InDelta(t, 1200, f.c.Width(), 1e-9)
	require.Len(t, msgs, 1)
	changed, ok := msgs[0].(ColumnsChangedMsg)
	require.True(t, ok)
	assert.Equal(t, 1, changed.From)
	assert.Equal(t, 3, changed.To)
	assert.Equal(t, f.c.ID(), changed.ContainerID)

	// 390 and 360 units at 8 units per cell, detail takes the rest.
	assert.Equal(t, 48, f.p.width)
	assert.Equal(t, 45, f.s.width)
	assert.Equal(t, 150-2-48-45, f.d.width)
	assert.Equal(t, 28, f.p.height)
}

func TestModelFocusCycling(t *testing.T) {
	f := newModelFixture(t)
	send(t, f.m, tea.WindowSizeMsg{Width: 150, Height: 30})

	send(t, f.m, tea.KeyPressMsg{Code: tea.KeyTab})
	assert.Equal(t, Secondary, f.m.Focus())
	assert.True(t, f.s.focused)

	send(t, f.m, tea.KeyPressMsg{Code: tea.KeyTab})
	send(t, f.m, tea.KeyPressMsg{Code: tea.KeyTab})
	assert.Equal(t, Primary, f.m.Focus())

	send(t, f.m, tea.KeyPressMsg{Code: tea.KeyTab, Mod: tea.ModShift})
	assert.Equal(t, Detail, f.m.Focus())
	assert.True(t, f.d.focused)
	assert.False(t, f.p.focused)
}

func TestModelFocusFallsBackWhenColumnCollapses(t *testing.T) {
	f := newModelFixture(t)
	send(t, f.m, tea.WindowSizeMsg{Width: 150, Height: 30})
	send(t, f.m, tea.KeyPressMsg{Code: tea.KeyTab, Mod: tea.ModShift})
	require.Equal(t, Detail, f.m.Focus())

	send(t, f.m, tea.WindowSizeMsg{Width: 60, Height: 30})

	assert.Equal(t, 1, f.c.Count())
	assert.Equal(t, Primary, f.m.Focus())
}

func TestModelBackPopsFocusedColumn(t *testing.T) {
	f := newModelFixture(t)
	send(t, f.m, tea.WindowSizeMsg{Width: 150, Height: 30})
	x := newMock("x")
	require.NoError(t, f.c.Push(Secondary, x))
	send(t, f.m, tea.KeyPressMsg{Code: tea.KeyTab})

	send(t, f.m, tea.KeyPressMsg{Code: tea.KeyEscape})

	assertItems(t, f.c, Secondary, "threads")
	assert.Equal(t, 0, x.updateCalls)

	// Nothing left to pop, so the key reaches the content.
	send(t, f.m, tea.KeyPressMsg{Code: tea.KeyEscape})
	assert.Equal(t, 1, f.s.updateCalls)
}

func TestModelForwardsKeysToFocusedContent(t *testing.T) {
	f := newModelFixture(t)
	send(t, f.m, tea.WindowSizeMsg{Width: 150, Height: 30})

	send(t, f.m, tea.KeyPressMsg{Code: 'x', Text: "x"})

	assert.Equal(t, 1, f.p.updateCalls)
	assert.Equal(t, 0, f.s.updateCalls)
	key, ok := f.p.lastMsg.(tea.KeyPressMsg)
	require.True(t, ok)
	assert.Equal(t, "x", key.String())
}

func TestModelSwapsContentReturnedFromUpdate(t *testing.T) {
	f := newModelFixture(t)
	send(t, f.m, tea.WindowSizeMsg{Width: 150, Height: 30})
	next := newMock("inbox v2")
	f.p.replaceWith = next

	send(t, f.m, tea.KeyPressMsg{Code: 'x', Text: "x"})

	assert.Same(t, next, f.c.PrimaryContent())
	owner, ok := OwnerOf(next)
	require.True(t, ok)
	assert.Same(t, f.c, owner)
}

func TestModelShowFromContentBecomesMessage(t *testing.T) {
	f := newModelFixture(t)
	send(t, f.m, tea.WindowSizeMsg{Width: 150, Height: 30})
	require.NoError(t, ShowDetail(f.p, newMock("draft")))

	msgs := send(t, f.m, tea.KeyPressMsg{Code: 'x', Text: "x"})

	require.Len(t, msgs, 1)
	shown, ok := msgs[0].(ShowTargetChangedMsg)
	require.True(t, ok)
	assert.Equal(t, Detail, shown.Column)
}

func TestModelQuit(t *testing.T) {
	f := newModelFixture(t)

	_, cmd := f.m.Update(tea.KeyPressMsg{Code: 'q', Text: "q"})

	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
	assert.Empty(t, f.m.Render())
}

func TestModelRender(t *testing.T) {
	f := newModelFixture(t)
	send(t, f.m, tea.WindowSizeMsg{Width: 150, Height: 10})

	lines := strings.Split(ansi.Strip(f.m.Render()), "\n")

	require.Len(t, lines, 10)
	header := []rune(lines[0])
	assert.Equal(t, '│', header[48])
	assert.Equal(t, '│', header[94])
	assert.Contains(t, lines[0], "inbox")
	assert.Contains(t, lines[0], "threads")
	assert.Contains(t, lines[0], "message")
	assert.Contains(t, lines[1], "inbox view")
	assert.Contains(t, lines[len(lines)-1], "quit")

	v := f.m.View()
	assert.True(t, v.AltScreen)
}

func TestModelRenderClipsSeparatorUnderStatusBar(t *testing.T) {
	cfg := DefaultConfig()
	cfg.ShowStatusBar = true
	cfg.SeparatorStatusBarClipWidth = 400
	f := &modelFixture{p: newMock("inbox"), s: newMock("threads"), d: newMock("message")}
	f.c = New(1200, []Content{f.p, f.s, f.d}, WithConfig(cfg))
	f.m = NewModel(f.c, WithNoColor(true), WithoutFooter())
	t.Cleanup(f.m.Close)
	send(t, f.m, tea.WindowSizeMsg{Width: 150, Height: 10})

	lines := strings.Split(ansi.Strip(f.m.Render()), "\n")

	require.Len(t, lines, 10)
	status := []rune(lines[0])
	assert.Equal(t, ' ', status[48], "separator inside the clip width is hidden")
	assert.Equal(t, '│', status[94])
	body := []rune(lines[1])
	assert.Equal(t, '│', body[48])
}

func TestModelDepthMarker(t *testing.T) {
	f := newModelFixture(t)
	send(t, f.m, tea.WindowSizeMsg{Width: 150, Height: 10})
	require.NoError(t, f.c.Push(Primary, newMock("page")))

	lines := strings.Split(ansi.Strip(f.m.Render()), "\n")

	assert.True(t, strings.HasPrefix(lines[0], "‹ page"), lines[0])
}
