// Package splitview is a container that presents up to three columns of
// content (primary, secondary, detail) side by side, collapsing auxiliary
// columns onto primary as width shrinks and separating them again as it
// grows.
//
// A Controller holds the column state machine and is driven by SetWidth.
// Model wraps a Controller for use inside a bubbletea program.
//
// Controllers are not safe for concurrent use: every call must come from the
// goroutine that owns the presentation (normally the bubbletea update loop).
package splitview

import (
	"errors"
	"fmt"
	"runtime"

	"github.com/go-logr/logr"
	"github.com/google/uuid"

	"github.com/oakwood-commons/splitview/internal/policy"
	"github.com/oakwood-commons/splitview/internal/stack"
	"github.com/oakwood-commons/splitview/pkg/logger"
)

// Layout is the width allocation for the visible columns.
type Layout = policy.Allocation

// Controller is the column visibility state machine.
type Controller struct {
	id       uuid.UUID
	cfg      Config
	delegate *Delegate
	gw       gateway
	log      logr.Logger

	// stacks[k] is the back stack column k presents while visible.
	stacks  [3]*stack.Stack[Content]
	roots   [3]Content
	adapter *stack.Adapter[Content]
	records [3]*stack.TransferRecord[Content]

	count  int
	width  float64
	layout Layout

	busy  bool
	queue []float64

	subs    []subscription
	nextSub int
	closed  bool
}

var _ stack.BackStack[Content] = (*stack.Stack[Content])(nil)

// Option configures a Controller at construction.
type Option func(*Controller)

// WithConfig sets the initial configuration.
func WithConfig(cfg Config) Option {
	return func(c *Controller) { c.cfg = cfg }
}

// WithDelegate sets the initial delegate.
func WithDelegate(d *Delegate) Option {
	return func(c *Controller) { c.delegate = d }
}

// WithLogger sets the logger used for transitions and clamping notices.
func WithLogger(l logr.Logger) Option {
	return func(c *Controller) { c.log = l }
}

// New creates a controller for the given width.
//
// contents are assigned left to right: one item is primary only, two are
// primary and detail, three are primary, secondary and detail. Anything past
// the third is ignored, and so is content that Push would reject. The initial column count is whatever the policy
// yields for width; hidden columns start out collapsed onto primary.
func New(width float64, contents []Content, opts ...Option) *Controller {
	c := &Controller{
		id:      uuid.New(),
		cfg:     DefaultConfig(),
		log:     *logger.GetGlobalLogger(),
		adapter: stack.NewAdapter[Content](),
		count:   3,
	}
	for _, opt := range opts {
		opt(c)
	}
	c.gw = gateway{c: c}
	c.log = c.log.WithValues(logger.ContainerKey, c.id.String())
	c.applyConfig(c.cfg)

	for _, k := range policy.Kinds {
		c.stacks[k] = stack.New[Content](k.String())
	}
	if len(contents) > 3 {
		c.log.Info("ignoring content beyond the third column", "count", len(contents))
		contents = contents[:3]
	}
	var kinds []ColumnKind
	switch len(contents) {
	case 1:
		kinds = []ColumnKind{Primary}
	case 2:
		kinds = []ColumnKind{Primary, Detail}
	case 3:
		kinds = []ColumnKind{Primary, Secondary, Detail}
	}
	for i, k := range kinds {
		if err := checkContent(contents[i]); err != nil {
			if contents[i] != nil {
				c.log.Error(err, "skipping column content", logger.ColumnKey, k.String())
			}
			continue
		}
		c.roots[k] = contents[i]
		c.stacks[k].Push(contents[i])
		c.own(contents[i])
	}

	c.busy = true
	if err := c.applyWidth(width, false); err != nil {
		c.log.Error(err, "initial layout")
	}
	c.busy = false
	runtime.AddCleanup(c, func(struct{}) { purgeOwners() }, struct{}{})
	return c
}

// ID identifies the controller in notifications.
func (c *Controller) ID() uuid.UUID {
	return c.id
}

// Config returns the active (clamped) configuration.
func (c *Controller) Config() Config {
	return c.cfg
}

// SetConfig replaces the configuration. It takes effect on the next width
// evaluation; call Refresh to apply it right away.
func (c *Controller) SetConfig(cfg Config) {
	c.applyConfig(cfg)
}

func (c *Controller) applyConfig(cfg Config) {
	normalized, clamped := cfg.Normalize()
	if len(clamped) > 0 {
		c.log.V(1).Info("configuration clamped", "fields", clamped)
	}
	c.cfg = normalized
}

// Delegate returns the current delegate, which may be nil.
func (c *Controller) Delegate() *Delegate {
	return c.delegate
}

// SetDelegate replaces the delegate. nil restores default behavior everywhere.
func (c *Controller) SetDelegate(d *Delegate) {
	c.delegate = d
}

// SetWidth re-evaluates the layout for width, collapsing or expanding
// columns as needed, and emits EventColumnsChanged after a structural
// change. Calls made while a previous call is still running (for example
// from a delegate) are queued and applied once it finishes.
//
// The returned error wraps ErrStateMismatch when an expand had to be aborted.
func (c *Controller) SetWidth(width float64) error {
	if c.closed {
		return ErrClosed
	}
	if c.busy {
		c.queue = append(c.queue, width)
		return nil
	}
	c.busy = true
	defer func() { c.busy = false }()

	errs := []error{c.applyWidth(width, true)}
	for len(c.queue) > 0 {
		next := c.queue[0]
		c.queue = c.queue[1:]
		errs = append(errs, c.applyWidth(next, true))
	}
	return errors.Join(errs...)
}

// Refresh re-evaluates the current width, picking up config changes.
func (c *Controller) Refresh() error {
	return c.SetWidth(c.width)
}

func (c *Controller) applyWidth(width float64, notify bool) error {
	target := policy.TargetColumnCount(width, c.cfg)
	from := c.count
	c.width = width

	var err error
	for c.count > target {
		c.collapseStep()
	}
	for c.count < target {
		if err = c.expandStep(); err != nil {
			break
		}
	}

	c.layout = policy.AllocateWidths(width, policy.VisibleKinds(c.count), c.cfg)
	if c.layout.CollapseRequired {
		c.log.V(1).Info("detail column below its minimum width", logger.WidthKey, width, "detail", c.layout.WidthOf(Detail))
	}
	if c.count == from {
		return err
	}
	c.log.V(1).Info("columns changed", logger.FromKey, from, logger.ToKey, c.count, logger.WidthKey, width)
	if notify {
		c.emit(Event{Type: EventColumnsChanged, From: from, To: c.count})
	}
	return err
}

// collapseStep hides one auxiliary column: secondary when three are shown,
// detail when two are shown.
func (c *Controller) collapseStep() {
	kind := Detail
	if c.count == 3 {
		kind = Secondary
	}
	log := c.log.WithValues(logger.ColumnKey, kind.String())

	c.substitutePrimary(c.gw.primaryForCollapsing(kind))

	aux := c.stacks[kind]
	auxTop, _ := aux.Top()
	primaryTop, _ := c.stacks[Primary].Top()
	primaryRoot, _ := c.stacks[Primary].Root()

	switch {
	case aux.Len() == 0:
		log.V(1).Info("collapsing empty column")
	case c.gw.collapse(auxTop, kind, primaryTop):
		log.V(1).Info("collapse handled by delegate")
	case collapsedByContent(primaryRoot, auxTop, kind, c):
		log.V(1).Info("collapse handled by primary content")
	default:
		c.records[kind] = c.adapter.Collapse(aux, c.stacks[Primary])
		log.V(1).Info("collapsed onto primary", "items", c.records[kind].Len())
	}
	c.count--
}

func collapsedByContent(primaryRoot, aux Content, kind ColumnKind, c *Controller) bool {
	h, ok := primaryRoot.(AuxiliaryCollapser)
	return ok && h.CollapseAuxiliary(aux, kind, c)
}

// expandStep shows one more auxiliary column: detail when one is shown,
// secondary when two are shown.
func (c *Controller) expandStep() error {
	kind := Secondary
	if c.count == 1 {
		kind = Detail
	}
	log := c.log.WithValues(logger.ColumnKey, kind.String())

	c.substitutePrimary(c.gw.primaryForExpanding(kind))

	primaryTop, _ := c.stacks[Primary].Top()
	primaryRoot, _ := c.stacks[Primary].Root()

	if sub := c.gw.separate(kind, primaryTop); sub != nil {
		log.V(1).Info("separate handled by delegate")
		c.replaceColumn(kind, sub)
	} else if sub := separatedByContent(primaryRoot, kind, c); sub != nil {
		log.V(1).Info("separate handled by primary content")
		c.replaceColumn(kind, sub)
	} else if rec := c.records[kind]; rec != nil {
		if err := c.adapter.Expand(rec); err != nil {
			log.Error(err, "expand aborted, column stays collapsed")
			return fmt.Errorf("expand %s column: %w", kind, err)
		}
		c.records[kind] = nil
		log.V(1).Info("expanded from primary", "items", rec.Len())
	}
	c.count++
	return nil
}

func separatedByContent(primaryRoot Content, kind ColumnKind, c *Controller) Content {
	if h, ok := primaryRoot.(AuxiliarySeparator); ok {
		return h.SeparateAuxiliary(kind, c)
	}
	return nil
}

// replaceColumn makes content the sole item of kind's own stack, removing
// whatever the column held before, merged or not.
func (c *Controller) replaceColumn(kind ColumnKind, content Content) {
	c.dropRecord(kind)
	c.release(c.stacks[kind].Items()...)
	c.stacks[kind].SetItems([]Content{content})
	c.roots[kind] = content
	c.own(content)
}

// dropRecord removes the collapsed range of kind from the merged stack.
func (c *Controller) dropRecord(kind ColumnKind) {
	rec := c.records[kind]
	if rec == nil {
		return
	}
	c.records[kind] = nil
	removed := append([]Content(nil), rec.Items...)
	if err := c.adapter.Discard(rec); err != nil {
		// The range is gone already; nothing left to remove.
		c.adapter.Forget(rec)
		c.log.V(1).Info("discarding stale transfer", logger.ColumnKey, kind.String(), "error", err.Error())
		return
	}
	c.release(removed...)
}

// substitutePrimary swaps the root of the primary stack for sub.
func (c *Controller) substitutePrimary(sub Content) {
	if sub == nil {
		return
	}
	primary := c.stacks[Primary]
	if old, ok := primary.Root(); ok {
		if old == sub {
			return
		}
		primary.Replace(old, sub)
		c.adapter.Replaced(primary, old, sub)
		c.release(old)
	} else {
		primary.Push(sub)
	}
	c.roots[Primary] = sub
	c.own(sub)
	c.log.V(1).Info("primary content substituted")
}

// Count returns the number of visible columns.
func (c *Controller) Count() int {
	return c.count
}

// Width returns the width last passed to SetWidth.
func (c *Controller) Width() float64 {
	return c.width
}

// VisibleKinds returns the visible columns left to right.
func (c *Controller) VisibleKinds() []ColumnKind {
	return policy.VisibleKinds(c.count)
}

// IsCollapsed reports whether kind is currently hidden.
func (c *Controller) IsCollapsed(kind ColumnKind) bool {
	return !policy.Visible(kind, c.count)
}

// HasTransfer reports whether kind is collapsed with a pending transfer record.
func (c *Controller) HasTransfer(kind ColumnKind) bool {
	return kind.Valid() && c.records[kind] != nil && c.adapter.Active(c.records[kind])
}

// Layout returns the width allocation for the visible columns.
func (c *Controller) Layout() Layout {
	return c.layout
}

// Widths returns the allocated width of every visible column.
func (c *Controller) Widths() map[ColumnKind]float64 {
	out := make(map[ColumnKind]float64, len(c.layout.Widths))
	for k, w := range c.layout.Widths {
		out[k] = w
	}
	return out
}

// ColumnWidth returns the width allocated to kind, 0 when hidden.
func (c *Controller) ColumnWidth(kind ColumnKind) float64 {
	return c.layout.WidthOf(kind)
}

// Contents returns the content assigned to each column, left to right. It is
// not affected by collapsing; only show requests and substitutions change it.
func (c *Controller) Contents() []Content {
	var out []Content
	for _, k := range policy.Kinds {
		if c.roots[k] != nil {
			out = append(out, c.roots[k])
		}
	}
	return out
}

// Assigned returns the content assigned to kind, or nil.
func (c *Controller) Assigned(kind ColumnKind) Content {
	if !kind.Valid() {
		return nil
	}
	return c.roots[kind]
}

// Items returns a copy of the back stack kind presents while visible.
func (c *Controller) Items(kind ColumnKind) []Content {
	if !kind.Valid() {
		return nil
	}
	return c.stacks[kind].Items()
}

// Top returns the top of kind's stack when kind is visible.
func (c *Controller) Top(kind ColumnKind) (Content, bool) {
	if !kind.Valid() || c.IsCollapsed(kind) {
		return nil, false
	}
	return c.stacks[kind].Top()
}

// VisibleContents returns the top content of each visible column, left to right.
func (c *Controller) VisibleContents() []Content {
	var out []Content
	for _, k := range c.VisibleKinds() {
		if top, ok := c.stacks[k].Top(); ok {
			out = append(out, top)
		}
	}
	return out
}

// PrimaryContent returns the content shown in the primary column.
func (c *Controller) PrimaryContent() Content {
	top, _ := c.Top(Primary)
	return top
}

// SecondaryContent returns the content shown in the secondary column, or nil when hidden.
func (c *Controller) SecondaryContent() Content {
	top, _ := c.Top(Secondary)
	return top
}

// DetailContent returns the content shown in the detail column, or nil when hidden.
func (c *Controller) DetailContent() Content {
	top, _ := c.Top(Detail)
	return top
}

// presenting returns the stack that currently displays kind: its own when
// visible, primary's when collapsed.
func (c *Controller) presenting(kind ColumnKind) *stack.Stack[Content] {
	if c.IsCollapsed(kind) {
		return c.stacks[Primary]
	}
	return c.stacks[kind]
}

func (c *Controller) mutable() error {
	switch {
	case c.closed:
		return ErrClosed
	case c.busy:
		return ErrTransitionInProgress
	}
	return nil
}

// Push pushes content onto the stack currently presenting kind. For a
// collapsed column that is the merged primary stack, above any recorded
// range, so it stays in primary when the column separates.
func (c *Controller) Push(kind ColumnKind, content Content) error {
	if err := c.mutable(); err != nil {
		return err
	}
	if err := checkContent(content); err != nil {
		return err
	}
	if !kind.Valid() {
		kind = Primary
	}
	st := c.presenting(kind)
	if st.Len() == 0 {
		if c.IsCollapsed(kind) {
			kind = Primary
		}
		c.roots[kind] = content
	}
	st.Push(content)
	c.own(content)
	return nil
}

// Pop removes the top content of the stack presenting kind. The root of a
// stack is never popped. Popping into a collapsed column's merged range
// shrinks what the column gets back when it separates.
func (c *Controller) Pop(kind ColumnKind) (Content, bool) {
	if c.mutable() != nil || !kind.Valid() {
		return nil, false
	}
	st := c.presenting(kind)
	if st.Len() <= 1 {
		return nil, false
	}
	top, _ := st.Pop()
	c.adapter.Popped(st, top)
	for _, k := range policy.Kinds {
		if c.records[k] != nil && !c.adapter.Active(c.records[k]) {
			// Everything the column would get back was popped.
			c.records[k] = nil
			if c.stacks[k].Len() == 0 {
				c.roots[k] = nil
			}
		}
	}
	c.release(top)
	return top, true
}

// Replace swaps old for replacement wherever old sits, keeping transfer
// records consistent. It reports whether old was found; content that fails
// the checks Push applies is never swapped in.
func (c *Controller) Replace(old, replacement Content) bool {
	if !comparableContent(old) || !comparableContent(replacement) || old == replacement || c.closed {
		return false
	}
	for _, k := range policy.Kinds {
		st := c.stacks[k]
		if !st.Replace(old, replacement) {
			continue
		}
		c.adapter.Replaced(st, old, replacement)
		for i := range c.roots {
			if c.roots[i] == old {
				c.roots[i] = replacement
			}
		}
		c.release(old)
		c.own(replacement)
		return true
	}
	return false
}

// columnOf returns the column whose stack holds content.
func (c *Controller) columnOf(content Content) (ColumnKind, bool) {
	for _, k := range policy.Kinds {
		if c.stacks[k].Index(content) >= 0 {
			return k, true
		}
	}
	return Primary, false
}

// Close tears the controller down. Collapsed content is abandoned where it
// was merged, every owned item is released, and subscriptions are dropped.
func (c *Controller) Close() {
	if c.closed {
		return
	}
	c.adapter.Reset()
	c.records = [3]*stack.TransferRecord[Content]{}
	for _, st := range c.stacks {
		c.release(st.Items()...)
	}
	c.subs = nil
	c.queue = nil
	c.closed = true
}
