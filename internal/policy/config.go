package policy

import "math"

// Documented defaults for the column thresholds.
const (
	DefaultMaximumNumberOfColumns              = 3
	DefaultPrimaryColumnMinimumWidth           = 280.0
	DefaultPrimaryColumnMaximumWidth           = 390.0
	DefaultPreferredPrimaryColumnWidthFraction = 0.38
	DefaultSecondaryColumnMinimumWidth         = 320.0
	DefaultSecondaryColumnMaximumWidth         = 0.3
	DefaultDetailColumnMinimumWidth            = 430.0
	DefaultSeparatorStrokeColor                = "#555555"
	DefaultSeparatorStatusBarClipWidth         = 55.0
	DefaultUnitsPerCell                        = 8.0
)

// Config holds the width thresholds that decide how many columns fit.
//
// Widths are abstract units; the terminal model converts cells to units
// using UnitsPerCell. SecondaryColumnMaximumWidth is a fraction of the
// available width, not an absolute value.
type Config struct {
	MaximumNumberOfColumns              int     `yaml:"maximum_number_of_columns" json:"maximum_number_of_columns" toml:"maximum_number_of_columns"`
	PrimaryColumnMinimumWidth           float64 `yaml:"primary_column_minimum_width" json:"primary_column_minimum_width" toml:"primary_column_minimum_width"`
	PrimaryColumnMaximumWidth           float64 `yaml:"primary_column_maximum_width" json:"primary_column_maximum_width" toml:"primary_column_maximum_width"`
	PreferredPrimaryColumnWidthFraction float64 `yaml:"preferred_primary_column_width_fraction" json:"preferred_primary_column_width_fraction" toml:"preferred_primary_column_width_fraction"`
	SecondaryColumnMinimumWidth         float64 `yaml:"secondary_column_minimum_width" json:"secondary_column_minimum_width" toml:"secondary_column_minimum_width"`
	SecondaryColumnMaximumWidth         float64 `yaml:"secondary_column_maximum_width" json:"secondary_column_maximum_width" toml:"secondary_column_maximum_width"`
	DetailColumnMinimumWidth            float64 `yaml:"detail_column_minimum_width" json:"detail_column_minimum_width" toml:"detail_column_minimum_width"`
	SeparatorStrokeColor                string  `yaml:"separator_stroke_color" json:"separator_stroke_color" toml:"separator_stroke_color"`
	SeparatorStatusBarClipWidth         float64 `yaml:"separator_status_bar_clip_width" json:"separator_status_bar_clip_width" toml:"separator_status_bar_clip_width"`
	ShowStatusBar                       bool    `yaml:"show_status_bar" json:"show_status_bar" toml:"show_status_bar"`
	UnitsPerCell                        float64 `yaml:"units_per_cell" json:"units_per_cell" toml:"units_per_cell"`
}

// DefaultConfig returns the documented default thresholds.
func DefaultConfig() Config {
	return Config{
		MaximumNumberOfColumns:              DefaultMaximumNumberOfColumns,
		PrimaryColumnMinimumWidth:           DefaultPrimaryColumnMinimumWidth,
		PrimaryColumnMaximumWidth:           DefaultPrimaryColumnMaximumWidth,
		PreferredPrimaryColumnWidthFraction: DefaultPreferredPrimaryColumnWidthFraction,
		SecondaryColumnMinimumWidth:         DefaultSecondaryColumnMinimumWidth,
		SecondaryColumnMaximumWidth:         DefaultSecondaryColumnMaximumWidth,
		DetailColumnMinimumWidth:            DefaultDetailColumnMinimumWidth,
		SeparatorStrokeColor:                DefaultSeparatorStrokeColor,
		SeparatorStatusBarClipWidth:         DefaultSeparatorStatusBarClipWidth,
		UnitsPerCell:                        DefaultUnitsPerCell,
	}
}

// Normalize clamps out-of-range values to the nearest valid value and
// returns the clamped config along with the names of the fields it touched.
// Invalid input is never rejected.
func (c Config) Normalize() (Config, []string) {
	var clamped []string
	note := func(name string) { clamped = append(clamped, name) }

	switch {
	case c.MaximumNumberOfColumns < 1:
		c.MaximumNumberOfColumns = 1
		note("maximum_number_of_columns")
	case c.MaximumNumberOfColumns > 3:
		c.MaximumNumberOfColumns = 3
		note("maximum_number_of_columns")
	}

	if v, ok := nonNegative(c.PrimaryColumnMinimumWidth); !ok {
		c.PrimaryColumnMinimumWidth = v
		note("primary_column_minimum_width")
	}
	if v, ok := nonNegative(c.SecondaryColumnMinimumWidth); !ok {
		c.SecondaryColumnMinimumWidth = v
		note("secondary_column_minimum_width")
	}
	if v, ok := nonNegative(c.DetailColumnMinimumWidth); !ok {
		c.DetailColumnMinimumWidth = v
		note("detail_column_minimum_width")
	}
	if c.PrimaryColumnMaximumWidth < c.PrimaryColumnMinimumWidth || math.IsNaN(c.PrimaryColumnMaximumWidth) {
		c.PrimaryColumnMaximumWidth = c.PrimaryColumnMinimumWidth
		note("primary_column_maximum_width")
	}
	if v, ok := fraction(c.PreferredPrimaryColumnWidthFraction); !ok {
		c.PreferredPrimaryColumnWidthFraction = v
		note("preferred_primary_column_width_fraction")
	}
	if v, ok := fraction(c.SecondaryColumnMaximumWidth); !ok {
		c.SecondaryColumnMaximumWidth = v
		note("secondary_column_maximum_width")
	}
	if v, ok := nonNegative(c.SeparatorStatusBarClipWidth); !ok {
		c.SeparatorStatusBarClipWidth = v
		note("separator_status_bar_clip_width")
	}
	if c.UnitsPerCell <= 0 || math.IsNaN(c.UnitsPerCell) || math.IsInf(c.UnitsPerCell, 0) {
		c.UnitsPerCell = DefaultUnitsPerCell
		note("units_per_cell")
	}
	if c.SeparatorStrokeColor == "" {
		c.SeparatorStrokeColor = DefaultSeparatorStrokeColor
	}
	return c, clamped
}

func nonNegative(v float64) (float64, bool) {
	if math.IsNaN(v) || v < 0 {
		return 0, false
	}
	if math.IsInf(v, 1) {
		return math.MaxFloat64, false
	}
	return v, true
}

func fraction(v float64) (float64, bool) {
	switch {
	case math.IsNaN(v) || v < 0:
		return 0, false
	case v > 1:
		return 1, false
	}
	return v, true
}
