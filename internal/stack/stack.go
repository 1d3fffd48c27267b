// Package stack provides the back-stack container that each column presents,
// and the adapter that moves content between two stacks when a column
// collapses or expands.
package stack

// BackStack is an ordered, bottom-first list of content items supporting
// push and pop. The adapter only depends on this interface.
type BackStack[T comparable] interface {
	ID() string
	Items() []T
	SetItems(items []T)
	Push(item T)
	Pop() (T, bool)
	Len() int
}

// Stack is the default BackStack implementation.
type Stack[T comparable] struct {
	id    string
	items []T
}

// New creates a stack seeded with items (bottom first).
func New[T comparable](id string, items ...T) *Stack[T] {
	return &Stack[T]{
		id:    id,
		items: append([]T(nil), items...),
	}
}

// ID returns the identifier the stack was created with.
func (s *Stack[T]) ID() string {
	return s.id
}

// Items returns a copy of the stack contents, bottom first.
func (s *Stack[T]) Items() []T {
	return append([]T(nil), s.items...)
}

// SetItems replaces the stack contents.
func (s *Stack[T]) SetItems(items []T) {
	s.items = append(s.items[:0:0], items...)
}

// Push appends item on top of the stack.
func (s *Stack[T]) Push(item T) {
	s.items = append(s.items, item)
}

// Pop removes and returns the top item.
func (s *Stack[T]) Pop() (T, bool) {
	var zero T
	if len(s.items) == 0 {
		return zero, false
	}
	top := s.items[len(s.items)-1]
	s.items[len(s.items)-1] = zero
	s.items = s.items[:len(s.items)-1]
	return top, true
}

// Len returns the number of items on the stack.
func (s *Stack[T]) Len() int {
	return len(s.items)
}

// Top returns the top item without removing it.
func (s *Stack[T]) Top() (T, bool) {
	var zero T
	if len(s.items) == 0 {
		return zero, false
	}
	return s.items[len(s.items)-1], true
}

// Root returns the bottom item.
func (s *Stack[T]) Root() (T, bool) {
	var zero T
	if len(s.items) == 0 {
		return zero, false
	}
	return s.items[0], true
}

// Index returns the position of item, or -1.
func (s *Stack[T]) Index(item T) int {
	for i, it := range s.items {
		if it == item {
			return i
		}
	}
	return -1
}

// Replace swaps old for replacement in place. It reports whether old was found.
func (s *Stack[T]) Replace(old, replacement T) bool {
	i := s.Index(old)
	if i < 0 {
		return false
	}
	s.items[i] = replacement
	return true
}
