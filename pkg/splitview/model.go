package splitview

import (
	"math"
	"os"

	"charm.land/bubbles/v2/help"
	"charm.land/bubbles/v2/key"
	tea "charm.land/bubbletea/v2"
	"golang.org/x/term"

	"github.com/oakwood-commons/splitview/internal/policy"
	"github.com/oakwood-commons/splitview/internal/ui"
	"github.com/oakwood-commons/splitview/pkg/logger"
)

// ColumnsChangedMsg is sent after the controller changed its column count.
type ColumnsChangedMsg struct {
	Event
}

// ShowTargetChangedMsg is sent after a show request was handled.
type ShowTargetChangedMsg struct {
	Event
}

// Model presents a Controller inside a bubbletea program. It converts
// window sizes to widths, routes keys to the focused column and renders the
// visible columns with separators.
type Model struct {
	c *Controller

	keys   ui.KeyMap
	extra  []key.Binding
	help   help.Model
	focus  ColumnKind
	width  int
	height int

	noColor    bool
	hideFooter bool
	statusBar  string

	pending     *[]Event
	unsubscribe func()
	quitting    bool
}

// ModelOption configures a Model.
type ModelOption func(*Model)

// WithNoColor disables colors.
func WithNoColor(noColor bool) ModelOption {
	return func(m *Model) { m.noColor = noColor }
}

// WithStatusBar sets the text drawn in the status bar row. The row is only
// shown when the controller config has ShowStatusBar set.
func WithStatusBar(text string) ModelOption {
	return func(m *Model) { m.statusBar = text }
}

// WithKeyMap replaces the default bindings.
func WithKeyMap(keys ui.KeyMap) ModelOption {
	return func(m *Model) { m.keys = keys }
}

// WithHelpKeys adds bindings handled by column content to the footer help.
func WithHelpKeys(bindings ...key.Binding) ModelOption {
	return func(m *Model) { m.extra = append(m.extra, bindings...) }
}

// WithoutFooter hides the help footer.
func WithoutFooter() ModelOption {
	return func(m *Model) { m.hideFooter = true }
}

// NewModel wraps c. The model subscribes to c's events until Close.
func NewModel(c *Controller, opts ...ModelOption) *Model {
	pending := []Event{}
	m := &Model{
		c:       c,
		keys:    ui.DefaultKeyMap(),
		help:    ui.NewHelp(),
		focus:   Primary,
		width:   80,
		height:  24,
		pending: &pending,
	}
	for _, opt := range opts {
		opt(m)
	}
	m.unsubscribe = c.Subscribe(func(ev Event) {
		*m.pending = append(*m.pending, ev)
	})
	return m
}

// Controller returns the wrapped controller.
func (m *Model) Controller() *Controller {
	return m.c
}

// Focus returns the focused column.
func (m *Model) Focus() ColumnKind {
	return m.focus
}

// Close unsubscribes from the controller and closes it.
func (m *Model) Close() {
	if m.unsubscribe != nil {
		m.unsubscribe()
		m.unsubscribe = nil
	}
	m.c.Close()
}

// Init initializes every content item the controller holds.
func (m *Model) Init() tea.Cmd {
	var cmds []tea.Cmd
	for _, k := range policy.Kinds {
		for _, it := range m.c.Items(k) {
			cmds = append(cmds, it.Init())
		}
	}
	if f, ok := m.c.PrimaryContent().(Focusable); ok {
		cmds = append(cmds, f.Focus())
	}
	return tea.Batch(cmds...)
}

// Update routes msg to the controller or to content.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		units := m.c.Config().UnitsPerCell
		if err := m.c.SetWidth(float64(msg.Width) * units); err != nil {
			m.c.log.V(1).Info("resize left a column collapsed", logger.WidthKey, msg.Width, "error", err.Error())
		}
		m.resizeContents()

	case tea.KeyPressMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit
		case key.Matches(msg, m.keys.NextColumn):
			cmds = append(cmds, m.cycleFocus(1))
		case key.Matches(msg, m.keys.PrevColumn):
			cmds = append(cmds, m.cycleFocus(-1))
		case key.Matches(msg, m.keys.ToggleHelp):
			m.help.ShowAll = !m.help.ShowAll
		case key.Matches(msg, m.keys.Back):
			if _, ok := m.c.Pop(m.focus); !ok {
				cmds = append(cmds, m.forward(m.focus, msg))
			}
		default:
			cmds = append(cmds, m.forward(m.focus, msg))
		}

	case ColumnsChangedMsg:
		cmds = append(cmds, m.ensureFocusVisible())
		m.resizeContents()
		return m, tea.Batch(cmds...)

	case ShowTargetChangedMsg:
		m.resizeContents()
		return m, nil

	default:
		for _, k := range m.c.VisibleKinds() {
			cmds = append(cmds, m.forward(k, msg))
		}
	}

	cmds = append(cmds, m.drainEvents())
	return m, tea.Batch(cmds...)
}

// forward delivers msg to the top content of kind and swaps in whatever
// Update returned.
func (m *Model) forward(kind ColumnKind, msg tea.Msg) tea.Cmd {
	top, ok := m.c.Top(kind)
	if !ok {
		return nil
	}
	next, cmd := top.Update(msg)
	if next != nil && next != top {
		m.c.Replace(top, next)
	}
	return cmd
}

func (m *Model) drainEvents() tea.Cmd {
	if len(*m.pending) == 0 {
		return nil
	}
	events := *m.pending
	*m.pending = nil
	cmds := make([]tea.Cmd, 0, len(events))
	for _, ev := range events {
		var msg tea.Msg
		switch ev.Type {
		case EventColumnsChanged:
			msg = ColumnsChangedMsg{Event: ev}
		case EventShowTargetChanged:
			msg = ShowTargetChangedMsg{Event: ev}
		default:
			continue
		}
		cmds = append(cmds, func() tea.Msg { return msg })
	}
	return tea.Batch(cmds...)
}

func (m *Model) cycleFocus(delta int) tea.Cmd {
	kinds := m.c.VisibleKinds()
	idx := 0
	for i, k := range kinds {
		if k == m.focus {
			idx = i
		}
	}
	idx = (idx + delta + len(kinds)) % len(kinds)
	return m.setFocus(kinds[idx])
}

func (m *Model) ensureFocusVisible() tea.Cmd {
	if !m.c.IsCollapsed(m.focus) {
		return nil
	}
	return m.setFocus(Primary)
}

func (m *Model) setFocus(kind ColumnKind) tea.Cmd {
	if kind == m.focus {
		return nil
	}
	if f, ok := m.topOf(m.focus).(Focusable); ok {
		f.Blur()
	}
	m.focus = kind
	if f, ok := m.topOf(kind).(Focusable); ok {
		return f.Focus()
	}
	return nil
}

func (m *Model) topOf(kind ColumnKind) Content {
	top, _ := m.c.Top(kind)
	return top
}

// columnCells converts the allocated widths into cell counts. Separators
// take one cell each and the last column absorbs rounding.
func (m *Model) columnCells() map[ColumnKind]int {
	kinds := m.c.VisibleKinds()
	units := m.c.Config().UnitsPerCell
	out := make(map[ColumnKind]int, len(kinds))
	available := m.width - (len(kinds) - 1)
	used := 0
	for i, k := range kinds {
		if i == len(kinds)-1 {
			out[k] = max(0, available-used)
			break
		}
		cells := int(math.Floor(m.c.ColumnWidth(k) / units))
		out[k] = cells
		used += cells
	}
	return out
}

func (m *Model) bodyHeight() int {
	h := m.height - 1
	if !m.hideFooter {
		h--
	}
	if m.c.Config().ShowStatusBar {
		h--
	}
	return max(1, h)
}

func (m *Model) resizeContents() {
	cells := m.columnCells()
	height := m.bodyHeight()
	for _, k := range m.c.VisibleKinds() {
		for _, it := range m.c.Items(k) {
			if s, ok := it.(Sized); ok {
				s.SetSize(cells[k], height)
			}
		}
	}
}

func (m *Model) helpKeys() help.KeyMap {
	if len(m.extra) == 0 {
		return m.keys
	}
	return ui.WithExtra{KeyMap: m.keys, Extra: m.extra}
}

// Render returns the current frame as a string.
func (m *Model) Render() string {
	if m.quitting {
		return ""
	}
	cfg := m.c.Config()
	cells := m.columnCells()
	state := ui.SplitLayoutState{
		Height:         m.height,
		NoColor:        m.noColor,
		SeparatorColor: cfg.SeparatorStrokeColor,
		ShowStatusBar:  cfg.ShowStatusBar,
		StatusBar:      m.statusBar,
		StatusBarClip:  int(math.Ceil(cfg.SeparatorStatusBarClipWidth / cfg.UnitsPerCell)),
	}
	for _, k := range m.c.VisibleKinds() {
		top, _ := m.c.Top(k)
		col := ui.ColumnState{
			Width:   cells[k],
			Focused: k == m.focus,
			Depth:   len(m.c.Items(k)),
		}
		if top != nil {
			col.Title = titleOf(top)
			col.Body = top.View()
		}
		if col.Title == "" {
			col.Title = k.String()
		}
		state.Columns = append(state.Columns, col)
	}
	if !m.hideFooter {
		state.Footer = ui.RenderFooter(m.help, m.helpKeys(), m.width, m.noColor)
	}
	return ui.RenderSplitLayout(state)
}

// View implements tea.Model.
func (m *Model) View() tea.View {
	v := tea.NewView(m.Render())
	v.AltScreen = true
	v.KeyboardEnhancements.ReportEventTypes = true
	return v
}

// Run starts a bubbletea program for m. A zero width or height is detected
// from the terminal, falling back to 80x24.
func Run(m *Model, width, height int, opts ...tea.ProgramOption) error {
	if width <= 0 || height <= 0 {
		if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
			if width <= 0 {
				width = w
			}
			if height <= 0 {
				height = h
			}
		}
	}
	if width <= 0 {
		width = 80
	}
	if height <= 0 {
		height = 24
	}
	opts = append(opts, tea.WithWindowSize(width, height))
	defer m.Close()
	_, err := tea.NewProgram(m, opts...).Run()
	return err
}
