package splitview

import "github.com/oakwood-commons/splitview/pkg/logger"

// Show presents content in the column named by as. sender is the content
// that asked, passed through to delegate hooks; it may be nil.
//
// Kinds that MaximumNumberOfColumns does not allow are downgraded to
// Primary. A visible auxiliary column has its stack replaced by content. A
// collapsed one has its previous content removed and content pushed onto
// primary, from where the next expand moves it back out.
func (c *Controller) Show(content Content, as ColumnKind, sender Content) error {
	if err := c.mutable(); err != nil {
		return err
	}
	if err := checkContent(content); err != nil {
		return err
	}
	kind := c.permittedKind(as)

	c.busy = true
	handled := false
	switch kind {
	case Secondary:
		handled = c.gw.showSecondary(content, sender)
	case Detail:
		handled = c.gw.showDetail(content, sender)
	}
	if handled {
		c.log.V(1).Info("show handled by delegate", logger.ColumnKey, kind.String())
	} else {
		c.assign(kind, content)
	}
	c.busy = false

	c.emit(Event{Type: EventShowTargetChanged, From: c.count, To: c.count, Column: kind})
	return c.drainQueue()
}

// ShowSecondary presents content as the secondary column.
func (c *Controller) ShowSecondary(content, sender Content) error {
	return c.Show(content, Secondary, sender)
}

// ShowDetail presents content as the detail column.
func (c *Controller) ShowDetail(content, sender Content) error {
	return c.Show(content, Detail, sender)
}

// ShowSecondaryWithDetail presents secondary like ShowSecondary and also
// replaces the detail content without bringing it forward: a collapsed
// detail column keeps it aside until it separates.
func (c *Controller) ShowSecondaryWithDetail(secondary, detail, sender Content) error {
	if err := c.Show(secondary, Secondary, sender); err != nil {
		return err
	}
	if detail == nil {
		return nil
	}
	if c.permittedKind(Detail) != Detail || !c.IsCollapsed(Detail) {
		return c.Show(detail, Detail, sender)
	}
	if err := c.mutable(); err != nil {
		return err
	}
	if err := checkContent(detail); err != nil {
		return err
	}
	c.replaceColumn(Detail, detail)
	c.emit(Event{Type: EventShowTargetChanged, From: c.count, To: c.count, Column: Detail})
	return nil
}

// ShowInPlace pushes content onto whichever stack holds sender, so it
// appears where sender is. Without a known sender it goes to primary.
func (c *Controller) ShowInPlace(content, sender Content) error {
	if err := c.mutable(); err != nil {
		return err
	}
	if err := checkContent(content); err != nil {
		return err
	}
	kind, _ := c.columnOf(sender)
	st := c.stacks[kind]
	if st.Len() == 0 {
		c.roots[kind] = content
	}
	st.Push(content)
	c.own(content)
	c.emit(Event{Type: EventShowTargetChanged, From: c.count, To: c.count, Column: c.displayedIn(kind)})
	return nil
}

// permittedKind downgrades auxiliary kinds the column ceiling never shows.
func (c *Controller) permittedKind(kind ColumnKind) ColumnKind {
	maxColumns := c.cfg.MaximumNumberOfColumns
	switch {
	case !kind.Valid():
		return Primary
	case kind == Detail && maxColumns < 2, kind == Secondary && maxColumns < 3:
		c.log.V(1).Info("show request downgraded to primary", logger.ColumnKey, kind.String(), "maximum_number_of_columns", maxColumns)
		return Primary
	}
	return kind
}

// displayedIn returns the column the content of kind's stack is shown in.
func (c *Controller) displayedIn(kind ColumnKind) ColumnKind {
	if c.IsCollapsed(kind) {
		return Primary
	}
	return kind
}

// assign places content as the new content of kind.
func (c *Controller) assign(kind ColumnKind, content Content) {
	primary := c.stacks[Primary]
	switch {
	case kind == Primary:
		if primary.Len() == 0 {
			c.roots[Primary] = content
		}
		primary.Push(content)
		c.own(content)
	case !c.IsCollapsed(kind):
		c.replaceColumn(kind, content)
	default:
		c.dropRecord(kind)
		// A delegate-handled collapse leaves the old content in its own stack.
		c.release(c.stacks[kind].Items()...)
		c.stacks[kind].SetItems(nil)

		primary.Push(content)
		c.roots[kind] = content
		c.own(content)
		rec, err := c.adapter.Adopt(c.stacks[kind], primary, primary.Len()-1, []Content{content})
		if err != nil {
			c.log.Error(err, "register pending content", logger.ColumnKey, kind.String())
			return
		}
		c.records[kind] = rec
	}
}

// drainQueue applies widths queued by hooks that ran during a show.
func (c *Controller) drainQueue() error {
	if len(c.queue) == 0 {
		return nil
	}
	next := c.queue[0]
	c.queue = c.queue[1:]
	return c.SetWidth(next)
}

// Show presents content as kind in the container that presents sender.
func Show(sender, content Content, as ColumnKind) error {
	c, ok := OwnerOf(sender)
	if !ok {
		return ErrNotOwned
	}
	return c.Show(content, as, sender)
}

// ShowSecondary presents content as the secondary column of sender's container.
func ShowSecondary(sender, content Content) error {
	return Show(sender, content, Secondary)
}

// ShowDetail presents content as the detail column of sender's container.
func ShowDetail(sender, content Content) error {
	return Show(sender, content, Detail)
}

// ShowInPlace pushes content next to sender in sender's container.
func ShowInPlace(sender, content Content) error {
	c, ok := OwnerOf(sender)
	if !ok {
		return ErrNotOwned
	}
	return c.ShowInPlace(content, sender)
}
