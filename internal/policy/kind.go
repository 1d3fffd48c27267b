package policy

import (
	"fmt"
	"strings"
)

// Kind identifies one of the three logical columns.
type Kind int

const (
	// Primary is the leftmost column. It is the only column shown when space is tight.
	Primary Kind = iota
	// Secondary sits between primary and detail and is the first to collapse.
	Secondary
	// Detail is the widest column along the right hand side.
	Detail
)

// Kinds lists every column kind in left-to-right order.
var Kinds = []Kind{Primary, Secondary, Detail}

func (k Kind) String() string {
	switch k {
	case Primary:
		return "primary"
	case Secondary:
		return "secondary"
	case Detail:
		return "detail"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// Valid reports whether k names one of the three columns.
func (k Kind) Valid() bool {
	return k >= Primary && k <= Detail
}

// Auxiliary reports whether k is a column that may collapse away.
func (k Kind) Auxiliary() bool {
	return k == Secondary || k == Detail
}

// ParseKind converts a column name (case-insensitive) to a Kind.
func ParseKind(s string) (Kind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "primary":
		return Primary, nil
	case "secondary":
		return Secondary, nil
	case "detail":
		return Detail, nil
	default:
		return Primary, fmt.Errorf("unknown column kind %q (want primary, secondary or detail)", s)
	}
}

// VisibleKinds returns the left-to-right columns rendered for a column count.
// Counts outside 1..3 are clamped.
func VisibleKinds(count int) []Kind {
	switch {
	case count >= 3:
		return []Kind{Primary, Secondary, Detail}
	case count == 2:
		return []Kind{Primary, Detail}
	default:
		return []Kind{Primary}
	}
}

// Visible reports whether kind is rendered at the given column count.
func Visible(kind Kind, count int) bool {
	for _, k := range VisibleKinds(count) {
		if k == kind {
			return true
		}
	}
	return false
}
