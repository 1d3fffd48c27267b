// Package policy decides how many columns fit in a given width and how that
// width is shared between the visible columns. Everything here is a pure
// function of its inputs.
package policy

import "math"

// Allocation is the outcome of sharing a width among visible columns.
type Allocation struct {
	Width   float64
	Visible []Kind
	Widths  map[Kind]float64
	// CollapseRequired is set when Detail, after absorbing the leftover,
	// ended up narrower than DetailColumnMinimumWidth.
	CollapseRequired bool
}

// WidthOf returns the allocated width for kind, or 0 when it is not visible.
func (a Allocation) WidthOf(kind Kind) float64 {
	return a.Widths[kind]
}

// TargetColumnCount returns how many columns (1, 2 or 3) fit in width.
//
// Columns collapse in a fixed order: Secondary before Detail, and Detail
// before Primary becomes the sole column. MaximumNumberOfColumns is a ceiling
// applied after the width test.
func TargetColumnCount(width float64, cfg Config) int {
	cfg, _ = cfg.Normalize()
	twoColumn := cfg.PrimaryColumnMinimumWidth + cfg.DetailColumnMinimumWidth
	full := twoColumn + cfg.SecondaryColumnMinimumWidth

	switch {
	case width >= full && cfg.MaximumNumberOfColumns >= 3:
		return 3
	case width >= twoColumn && cfg.MaximumNumberOfColumns >= 2:
		return 2
	default:
		return 1
	}
}

// AllocateWidths shares width among the visible kinds.
//
// Primary takes its preferred fraction clamped to its min/max, Secondary
// takes its maximum fraction but never less than its minimum, and Detail
// absorbs whatever is left over (or missing).
func AllocateWidths(width float64, visible []Kind, cfg Config) Allocation {
	cfg, _ = cfg.Normalize()
	if width < 0 || math.IsNaN(width) {
		width = 0
	}

	alloc := Allocation{
		Width:   width,
		Visible: append([]Kind(nil), visible...),
		Widths:  make(map[Kind]float64, len(visible)),
	}

	hasSecondary, hasDetail := false, false
	for _, k := range visible {
		switch k {
		case Secondary:
			hasSecondary = true
		case Detail:
			hasDetail = true
		}
	}

	if !hasSecondary && !hasDetail {
		alloc.Widths[Primary] = width
		return alloc
	}

	primary := clamp(width*cfg.PreferredPrimaryColumnWidthFraction, cfg.PrimaryColumnMinimumWidth, cfg.PrimaryColumnMaximumWidth)
	alloc.Widths[Primary] = primary
	remaining := width - primary

	if hasSecondary {
		preferred := width * cfg.SecondaryColumnMaximumWidth
		secondary := clamp(preferred, cfg.SecondaryColumnMinimumWidth, math.Max(cfg.SecondaryColumnMinimumWidth, preferred))
		alloc.Widths[Secondary] = secondary
		remaining -= secondary
	}

	if hasDetail {
		alloc.Widths[Detail] = remaining
		alloc.CollapseRequired = remaining < cfg.DetailColumnMinimumWidth
	}
	return alloc
}

func clamp(v, lo, hi float64) float64 {
	if hi < lo {
		hi = lo
	}
	return math.Min(math.Max(v, lo), hi)
}
