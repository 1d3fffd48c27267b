package splitview

import (
	"errors"

	"github.com/oakwood-commons/splitview/internal/stack"
)

var (
	// ErrStateMismatch reports that an expand found its recorded range missing
	// from the merged stack. The column stays collapsed.
	ErrStateMismatch = stack.ErrStateMismatch
	// ErrTransitionInProgress is returned by mutators called from a delegate
	// or content hook while a transition is running.
	ErrTransitionInProgress = errors.New("split controller is in the middle of a transition")
	// ErrNotOwned is returned when the sender is not presented by any controller.
	ErrNotOwned = errors.New("content is not presented by a split controller")
	// ErrNilContent is returned when a show or push request carries no content.
	ErrNilContent = errors.New("content must not be nil")
	// ErrUncomparableContent is returned for content whose dynamic type
	// cannot be compared, such as a struct value holding a slice. Content is
	// tracked by identity, so use a pointer type.
	ErrUncomparableContent = errors.New("content type is not comparable")
	// ErrClosed is returned by mutators after Close.
	ErrClosed = errors.New("split controller is closed")
)
