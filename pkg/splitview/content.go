package splitview

import tea "charm.land/bubbletea/v2"

// Content is anything a column can present. It follows the usual bubbletea
// child-model shape: Update may return a different value, in which case the
// controller swaps it in place wherever the old value sat.
//
// Content values are tracked by identity, so implementations should be
// pointer types (or otherwise comparable).
type Content interface {
	Init() tea.Cmd
	Update(msg tea.Msg) (Content, tea.Cmd)
	View() string
}

// Titled content supplies the text shown in its column header.
type Titled interface {
	Title() string
}

// Sized content is told its cell dimensions whenever the layout changes.
type Sized interface {
	SetSize(width, height int)
}

// Focusable content is notified when its column gains or loses focus.
type Focusable interface {
	Focus() tea.Cmd
	Blur()
	Focused() bool
}

// OwnerAware content is handed a non-owning handle to its container when it
// is placed into one, and a zero Handle when it leaves.
type OwnerAware interface {
	SetSplitHandle(h Handle)
}

// AuxiliaryCollapser lets the content at the root of the primary column take
// over the collapse of an auxiliary column. Returning true means the content
// handled it and no stack transfer happens.
type AuxiliaryCollapser interface {
	CollapseAuxiliary(auxiliary Content, kind ColumnKind, c *Controller) bool
}

// AuxiliarySeparator lets the content at the root of the primary column
// supply the auxiliary content when a column separates again. Returning nil
// falls through to restoring the recorded transfer.
type AuxiliarySeparator interface {
	SeparateAuxiliary(kind ColumnKind, c *Controller) Content
}

func titleOf(c Content) string {
	if t, ok := c.(Titled); ok {
		return t.Title()
	}
	return ""
}
