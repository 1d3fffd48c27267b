package stack

import (
	"errors"
	"fmt"
	"slices"
)

var (
	// ErrStateMismatch is returned when a recorded range is no longer present
	// at its recorded position in the destination stack.
	ErrStateMismatch = errors.New("transfer record no longer matches destination stack")
	// ErrInactiveRecord is returned for records that were already expanded or discarded.
	ErrInactiveRecord = errors.New("transfer record is no longer active")
)

// TransferRecord is the undo token produced by a collapse. It remembers which
// items were appended to which destination, and at what index, so the
// matching expand can move exactly those items back.
type TransferRecord[T comparable] struct {
	Source      BackStack[T]
	Destination BackStack[T]
	Start       int
	Items       []T
}

// Len returns the number of items covered by the record.
func (r *TransferRecord[T]) Len() int {
	return len(r.Items)
}

// End returns the index just past the recorded range.
func (r *TransferRecord[T]) End() int {
	return r.Start + len(r.Items)
}

func (r *TransferRecord[T]) String() string {
	return fmt.Sprintf("%s -> %s [%d:%d]", r.Source.ID(), r.Destination.ID(), r.Start, r.End())
}

// Adapter performs collapse and expand transfers and tracks every live
// TransferRecord. Several records may share a destination; removing one
// range shifts the start of any later range on the same destination.
type Adapter[T comparable] struct {
	records []*TransferRecord[T]
}

// NewAdapter creates an adapter with no live records.
func NewAdapter[T comparable]() *Adapter[T] {
	return &Adapter[T]{}
}

// Collapse appends the whole source stack onto destination, empties source,
// and returns the record needed to undo it. An empty source transfers
// nothing and yields a nil record.
func (a *Adapter[T]) Collapse(source, destination BackStack[T]) *TransferRecord[T] {
	items := source.Items()
	if len(items) == 0 {
		return nil
	}
	rec := &TransferRecord[T]{
		Source:      source,
		Destination: destination,
		Start:       destination.Len(),
		Items:       items,
	}
	destination.SetItems(append(destination.Items(), items...))
	source.SetItems(nil)
	a.records = append(a.records, rec)
	return rec
}

// Expand removes the recorded range from the destination and reinstates it
// on the source. Nothing changes when it returns an error.
func (a *Adapter[T]) Expand(rec *TransferRecord[T]) error {
	if err := a.verify(rec); err != nil {
		return err
	}
	a.removeRange(rec)
	rec.Source.SetItems(append(rec.Source.Items(), rec.Items...))
	return nil
}

// Discard removes the recorded range from the destination without
// restoring it anywhere. Used when a column's content is replaced while
// collapsed.
func (a *Adapter[T]) Discard(rec *TransferRecord[T]) error {
	if err := a.verify(rec); err != nil {
		return err
	}
	a.removeRange(rec)
	return nil
}

// Adopt registers a record for items that are already sitting on
// destination starting at start.
func (a *Adapter[T]) Adopt(source, destination BackStack[T], start int, items []T) (*TransferRecord[T], error) {
	rec := &TransferRecord[T]{
		Source:      source,
		Destination: destination,
		Start:       start,
		Items:       append([]T(nil), items...),
	}
	if err := rangeMatches(rec); err != nil {
		return nil, err
	}
	a.records = append(a.records, rec)
	return rec, nil
}

// Popped must be called after item was popped off the top of destination.
// A record whose range ended with that item is trimmed, and dropped once
// empty, so back navigation inside a merged stack stays consistent.
func (a *Adapter[T]) Popped(destination BackStack[T], item T) {
	top := destination.Len()
	for _, rec := range slices.Clone(a.records) {
		if rec.Destination != destination || rec.Len() == 0 || rec.End()-1 != top {
			continue
		}
		if rec.Items[rec.Len()-1] != item {
			continue
		}
		rec.Items = rec.Items[:rec.Len()-1]
		if rec.Len() == 0 {
			a.forget(rec)
		}
	}
}

// Replaced keeps records pointing at the right values after an item on
// destination was swapped for another.
func (a *Adapter[T]) Replaced(destination BackStack[T], old, replacement T) {
	for _, rec := range a.records {
		if rec.Destination != destination {
			continue
		}
		for i, it := range rec.Items {
			if it == old {
				rec.Items[i] = replacement
			}
		}
	}
}

// Shifted must be called after delta items were inserted (or, when
// negative, removed) on destination at index from, outside any recorded range.
func (a *Adapter[T]) Shifted(destination BackStack[T], from, delta int) {
	for _, rec := range a.records {
		if rec.Destination == destination && rec.Start >= from {
			rec.Start += delta
		}
	}
}

// Forget abandons rec without touching either stack. Its items stay merged.
func (a *Adapter[T]) Forget(rec *TransferRecord[T]) {
	a.forget(rec)
}

// Active reports whether rec is still awaiting its expand.
func (a *Adapter[T]) Active(rec *TransferRecord[T]) bool {
	return rec != nil && slices.Contains(a.records, rec)
}

// Records returns the live records in creation order.
func (a *Adapter[T]) Records() []*TransferRecord[T] {
	return slices.Clone(a.records)
}

// Reset abandons every live record. Collapsed content stays where it was merged.
func (a *Adapter[T]) Reset() {
	a.records = nil
}

func (a *Adapter[T]) verify(rec *TransferRecord[T]) error {
	if !a.Active(rec) {
		return ErrInactiveRecord
	}
	return rangeMatches(rec)
}

func rangeMatches[T comparable](rec *TransferRecord[T]) error {
	items := rec.Destination.Items()
	if rec.Start < 0 || rec.End() > len(items) {
		return fmt.Errorf("%w: range %s outside stack of %d items", ErrStateMismatch, rec, len(items))
	}
	for i, it := range rec.Items {
		if items[rec.Start+i] != it {
			return fmt.Errorf("%w: item %d of range %s was replaced", ErrStateMismatch, i, rec)
		}
	}
	return nil
}

func (a *Adapter[T]) removeRange(rec *TransferRecord[T]) {
	items := rec.Destination.Items()
	rec.Destination.SetItems(slices.Delete(items, rec.Start, rec.End()))
	a.forget(rec)
	for _, other := range a.records {
		if other.Destination == rec.Destination && other.Start >= rec.End() {
			other.Start -= rec.Len()
		}
	}
}

func (a *Adapter[T]) forget(rec *TransferRecord[T]) {
	a.records = slices.DeleteFunc(a.records, func(r *TransferRecord[T]) bool { return r == rec })
}
