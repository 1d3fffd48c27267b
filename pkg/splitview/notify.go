package splitview

import (
	"slices"

	"github.com/google/uuid"
)

// EventType distinguishes the notifications a controller broadcasts.
type EventType int

const (
	// EventColumnsChanged follows every structural transition (column count change).
	EventColumnsChanged EventType = iota
	// EventShowTargetChanged follows every show request the controller handled.
	EventShowTargetChanged
)

func (t EventType) String() string {
	switch t {
	case EventColumnsChanged:
		return "columns-changed"
	case EventShowTargetChanged:
		return "show-target-changed"
	default:
		return "unknown"
	}
}

// Event is delivered to subscribers. Content that needs to re-synchronize
// its own chrome can compare ContainerID against its owner's ID.
type Event struct {
	Type        EventType
	ContainerID uuid.UUID
	From        int
	To          int
	Column      ColumnKind
}

type subscription struct {
	id int
	fn func(Event)
}

// Subscribe registers fn for every event this controller emits, in
// subscription order. The returned func removes the subscription.
func (c *Controller) Subscribe(fn func(Event)) (unsubscribe func()) {
	if fn == nil {
		return func() {}
	}
	c.nextSub++
	id := c.nextSub
	c.subs = append(c.subs, subscription{id: id, fn: fn})
	return func() {
		c.subs = slices.DeleteFunc(c.subs, func(s subscription) bool { return s.id == id })
	}
}

func (c *Controller) emit(ev Event) {
	ev.ContainerID = c.id
	for _, s := range slices.Clone(c.subs) {
		s.fn(ev)
	}
}
