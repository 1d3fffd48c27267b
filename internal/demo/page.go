// Package demo holds the sample pages used by the interactive preview.
package demo

import (
	"fmt"
	"strings"

	"charm.land/bubbles/v2/key"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/oakwood-commons/splitview/pkg/splitview"
)

// Keys are the bindings a Page handles.
type Keys struct {
	Open          key.Binding
	ShowSecondary key.Binding
	ShowDetail    key.Binding
	Up            key.Binding
	Down          key.Binding
}

// DefaultKeys returns the page bindings.
func DefaultKeys() Keys {
	return Keys{
		Open:          key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "open page")),
		ShowSecondary: key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "show secondary")),
		ShowDetail:    key.NewBinding(key.WithKeys("d"), key.WithHelp("d", "show detail")),
		Up:            key.NewBinding(key.WithKeys("k", "up"), key.WithHelp("k/↑", "up")),
		Down:          key.NewBinding(key.WithKeys("j", "down"), key.WithHelp("j/↓", "down")),
	}
}

// Bindings lists the page bindings for the help footer.
func (k Keys) Bindings() []key.Binding {
	return []key.Binding{k.Open, k.ShowSecondary, k.ShowDetail}
}

// Page is a small list that can open further pages in place, as the
// secondary column, or as the detail column.
type Page struct {
	id      string
	title   string
	items   []string
	cursor  int
	width   int
	height  int
	focused bool
	noColor bool

	keys   Keys
	maker  splitview.Maker
	handle splitview.Handle
	// Status holds the outcome of the last show request.
	Status string
}

// NewPage creates a page listing items.
func NewPage(id, title string, items []string, maker splitview.Maker) *Page {
	return &Page{
		id:    id,
		title: title,
		items: items,
		keys:  DefaultKeys(),
		maker: maker,
	}
}

// ID returns the id the page was made for.
func (p *Page) ID() string { return p.id }

// Title implements splitview.Titled.
func (p *Page) Title() string { return p.title }

// SetSize implements splitview.Sized.
func (p *Page) SetSize(width, height int) {
	p.width = width
	p.height = height
}

// Focus implements splitview.Focusable.
func (p *Page) Focus() tea.Cmd {
	p.focused = true
	return nil
}

// Blur implements splitview.Focusable.
func (p *Page) Blur() { p.focused = false }

// Focused implements splitview.Focusable.
func (p *Page) Focused() bool { return p.focused }

// SetSplitHandle implements splitview.OwnerAware.
func (p *Page) SetSplitHandle(h splitview.Handle) { p.handle = h }

// Handle returns the handle to the container presenting the page.
func (p *Page) Handle() splitview.Handle { return p.handle }

// SetNoColor disables the selection highlight color.
func (p *Page) SetNoColor(noColor bool) { p.noColor = noColor }

// Init implements splitview.Content.
func (p *Page) Init() tea.Cmd { return nil }

// Update implements splitview.Content.
func (p *Page) Update(msg tea.Msg) (splitview.Content, tea.Cmd) {
	km, ok := msg.(tea.KeyPressMsg)
	if !ok {
		return p, nil
	}
	switch {
	case key.Matches(km, p.keys.Up):
		if p.cursor > 0 {
			p.cursor--
		}
	case key.Matches(km, p.keys.Down):
		if p.cursor < len(p.items)-1 {
			p.cursor++
		}
	case key.Matches(km, p.keys.Open):
		p.show(func(next splitview.Content) error { return splitview.ShowInPlace(p, next) })
	case key.Matches(km, p.keys.ShowSecondary):
		p.show(func(next splitview.Content) error { return splitview.ShowSecondary(p, next) })
	case key.Matches(km, p.keys.ShowDetail):
		p.show(func(next splitview.Content) error { return splitview.ShowDetail(p, next) })
	}
	return p, nil
}

func (p *Page) show(present func(splitview.Content) error) {
	if p.maker == nil || len(p.items) == 0 {
		return
	}
	selected := p.items[p.cursor]
	next, _ := p.maker.Make(p.id+"/"+selected, p.width, p.height)
	if next == nil {
		return
	}
	if _, open := splitview.OwnerOf(next); open {
		p.Status = selected + " is already open"
		return
	}
	if err := present(next); err != nil {
		p.Status = err.Error()
		return
	}
	p.Status = ""
}

// View implements splitview.Content.
func (p *Page) View() string {
	selected := lipgloss.NewStyle().Reverse(true)
	if !p.noColor && p.focused {
		selected = selected.Foreground(lipgloss.Color("12"))
	}
	var b strings.Builder
	for i, it := range p.items {
		line := "  " + it
		if i == p.cursor {
			line = selected.Render("› " + it)
		}
		b.WriteString(line)
		b.WriteString("\n")
	}
	if p.Status != "" {
		b.WriteString("\n")
		b.WriteString(p.Status)
	}
	return strings.TrimRight(b.String(), "\n")
}

// NewMaker returns a cached maker producing pages whose items are derived
// from the id, so every page can open a few more.
func NewMaker() *splitview.CachedMaker {
	var cached *splitview.CachedMaker
	cached = splitview.NewCachedMaker(splitview.MakerFunc(func(id string, width, height int) (splitview.Content, tea.Cmd) {
		name := id[strings.LastIndex(id, "/")+1:]
		items := make([]string, 0, 4)
		for i := 1; i <= 4; i++ {
			items = append(items, fmt.Sprintf("%s.%d", name, i))
		}
		p := NewPage(id, name, items, cached)
		p.SetSize(width, height)
		return p, nil
	}))
	return cached
}

// Seed returns the initial primary, secondary and detail pages.
func Seed(maker splitview.Maker) []splitview.Content {
	out := make([]splitview.Content, 0, 3)
	for _, name := range []string{"inbox", "threads", "message"} {
		c, _ := maker.Make(name, 0, 0)
		out = append(out, c)
	}
	return out
}
