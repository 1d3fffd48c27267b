package splitview

// Delegate lets an owner override the controller at each decision point.
// Every field is optional; a nil field, or a nil *Delegate, behaves exactly
// like a handler that declined.
//
// Handlers get the operands of the decision and must not mutate the
// controller from inside the call; mutators return ErrTransitionInProgress
// while a transition is running.
type Delegate struct {
	// ShowSecondary returns true when it fully handled presenting content as the secondary column.
	ShowSecondary func(c *Controller, content, sender Content) bool
	// ShowDetail returns true when it fully handled presenting content as the detail column.
	ShowDetail func(c *Controller, content, sender Content) bool
	// Collapse returns true when it took responsibility for collapsing an
	// auxiliary column onto primary. No stack transfer happens then, and the
	// auxiliary content stays hidden in its own stack.
	Collapse func(c *Controller, auxiliary Content, kind ColumnKind, primary Content) bool
	// Separate returns the content for an auxiliary column that is expanding
	// out of primary, or nil for the default restore.
	Separate func(c *Controller, kind ColumnKind, primary Content) Content
	// PrimaryForCollapsing returns replacement primary content when kind collapses, or nil.
	PrimaryForCollapsing func(c *Controller, kind ColumnKind) Content
	// PrimaryForExpanding returns replacement primary content when kind expands, or nil.
	PrimaryForExpanding func(c *Controller, kind ColumnKind) Content
}

// ChainDelegates combines delegates so that, at each decision point, the
// first one giving a definite answer wins.
func ChainDelegates(delegates ...*Delegate) *Delegate {
	var ds []*Delegate
	for _, d := range delegates {
		if d != nil {
			ds = append(ds, d)
		}
	}
	switch len(ds) {
	case 0:
		return nil
	case 1:
		return ds[0]
	}

	boolChain := func(pick func(*Delegate) bool, call func(*Delegate) bool) bool {
		for _, d := range ds {
			if pick(d) && call(d) {
				return true
			}
		}
		return false
	}
	contentChain := func(call func(*Delegate) Content) Content {
		for _, d := range ds {
			if got := call(d); got != nil {
				return got
			}
		}
		return nil
	}

	return &Delegate{
		ShowSecondary: func(c *Controller, content, sender Content) bool {
			return boolChain(func(d *Delegate) bool { return d.ShowSecondary != nil },
				func(d *Delegate) bool { return d.ShowSecondary(c, content, sender) })
		},
		ShowDetail: func(c *Controller, content, sender Content) bool {
			return boolChain(func(d *Delegate) bool { return d.ShowDetail != nil },
				func(d *Delegate) bool { return d.ShowDetail(c, content, sender) })
		},
		Collapse: func(c *Controller, auxiliary Content, kind ColumnKind, primary Content) bool {
			return boolChain(func(d *Delegate) bool { return d.Collapse != nil },
				func(d *Delegate) bool { return d.Collapse(c, auxiliary, kind, primary) })
		},
		Separate: func(c *Controller, kind ColumnKind, primary Content) Content {
			return contentChain(func(d *Delegate) Content {
				if d.Separate == nil {
					return nil
				}
				return d.Separate(c, kind, primary)
			})
		},
		PrimaryForCollapsing: func(c *Controller, kind ColumnKind) Content {
			return contentChain(func(d *Delegate) Content {
				if d.PrimaryForCollapsing == nil {
					return nil
				}
				return d.PrimaryForCollapsing(c, kind)
			})
		},
		PrimaryForExpanding: func(c *Controller, kind ColumnKind) Content {
			return contentChain(func(d *Delegate) Content {
				if d.PrimaryForExpanding == nil {
					return nil
				}
				return d.PrimaryForExpanding(c, kind)
			})
		},
	}
}

// gateway dispatches each decision point to the delegate and falls back to
// "declined" when the delegate or the specific handler is missing.
type gateway struct {
	c *Controller
}

func (g gateway) d() *Delegate {
	return g.c.delegate
}

func (g gateway) showSecondary(content, sender Content) bool {
	d := g.d()
	if d == nil || d.ShowSecondary == nil {
		return false
	}
	return d.ShowSecondary(g.c, content, sender)
}

func (g gateway) showDetail(content, sender Content) bool {
	d := g.d()
	if d == nil || d.ShowDetail == nil {
		return false
	}
	return d.ShowDetail(g.c, content, sender)
}

func (g gateway) collapse(auxiliary Content, kind ColumnKind, primary Content) bool {
	d := g.d()
	if d == nil || d.Collapse == nil {
		return false
	}
	return d.Collapse(g.c, auxiliary, kind, primary)
}

func (g gateway) separate(kind ColumnKind, primary Content) Content {
	d := g.d()
	if d == nil || d.Separate == nil {
		return nil
	}
	return d.Separate(g.c, kind, primary)
}

func (g gateway) primaryForCollapsing(kind ColumnKind) Content {
	d := g.d()
	if d == nil || d.PrimaryForCollapsing == nil {
		return nil
	}
	return d.PrimaryForCollapsing(g.c, kind)
}

func (g gateway) primaryForExpanding(kind ColumnKind) Content {
	d := g.d()
	if d == nil || d.PrimaryForExpanding == nil {
		return nil
	}
	return d.PrimaryForExpanding(g.c, kind)
}
