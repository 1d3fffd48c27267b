package splitview

import (
	_ "embed"
	"fmt"
	"os"
	"sync"

	"gopkg.in/yaml.v3"

	"github.com/oakwood-commons/splitview/internal/policy"
)

// Config is the set of width thresholds and separator settings. See
// DefaultConfig for the documented defaults.
type Config = policy.Config

// ColumnKind identifies a column.
type ColumnKind = policy.Kind

// Column kinds.
const (
	Primary   = policy.Primary
	Secondary = policy.Secondary
	Detail    = policy.Detail
)

// ParseColumnKind converts "primary", "secondary" or "detail" to a ColumnKind.
func ParseColumnKind(s string) (ColumnKind, error) {
	return policy.ParseKind(s)
}

// RuleConfig holds CEL expressions that become delegate decisions.
type RuleConfig struct {
	// CollapseInPlace, when it evaluates to true, reports a collapse as
	// handled so the auxiliary content stays hidden in its own column.
	CollapseInPlace string `yaml:"collapse_in_place" json:"collapse_in_place" toml:"collapse_in_place"`
}

// FileConfig is the full contents of a splitview config file.
type FileConfig struct {
	Split Config     `yaml:"split" json:"split" toml:"split"`
	Rules RuleConfig `yaml:"rules" json:"rules" toml:"rules"`
}

//go:embed default_config.yaml
var embeddedDefaultConfig []byte

var (
	embeddedConfigOnce sync.Once
	embeddedConfig     FileConfig
	embeddedConfigErr  error
)

// DefaultConfigYAML returns a copy of the embedded default config.
func DefaultConfigYAML() []byte {
	return append([]byte(nil), embeddedDefaultConfig...)
}

// EmbeddedDefaultConfig parses the embedded default config once.
func EmbeddedDefaultConfig() (FileConfig, error) {
	embeddedConfigOnce.Do(func() {
		if len(embeddedDefaultConfig) == 0 {
			embeddedConfigErr = fmt.Errorf("embedded default config is empty")
			return
		}
		if err := yaml.Unmarshal(embeddedDefaultConfig, &embeddedConfig); err != nil {
			embeddedConfigErr = fmt.Errorf("decode embedded default config: %w", err)
		}
	})
	return embeddedConfig, embeddedConfigErr
}

// DefaultConfig returns the default thresholds from the embedded config,
// falling back to the compiled-in constants if it cannot be read.
func DefaultConfig() Config {
	fc, err := EmbeddedDefaultConfig()
	if err != nil {
		return policy.DefaultConfig()
	}
	return fc.Split
}

// fileOverlay mirrors FileConfig with pointer fields so that keys missing
// from a user file keep their default values.
type fileOverlay struct {
	Split struct {
		MaximumNumberOfColumns              *int     `yaml:"maximum_number_of_columns"`
		PrimaryColumnMinimumWidth           *float64 `yaml:"primary_column_minimum_width"`
		PrimaryColumnMaximumWidth           *float64 `yaml:"primary_column_maximum_width"`
		PreferredPrimaryColumnWidthFraction *float64 `yaml:"preferred_primary_column_width_fraction"`
		SecondaryColumnMinimumWidth         *float64 `yaml:"secondary_column_minimum_width"`
		SecondaryColumnMaximumWidth         *float64 `yaml:"secondary_column_maximum_width"`
		DetailColumnMinimumWidth            *float64 `yaml:"detail_column_minimum_width"`
		SeparatorStrokeColor                *string  `yaml:"separator_stroke_color"`
		SeparatorStatusBarClipWidth         *float64 `yaml:"separator_status_bar_clip_width"`
		ShowStatusBar                       *bool    `yaml:"show_status_bar"`
		UnitsPerCell                        *float64 `yaml:"units_per_cell"`
	} `yaml:"split"`
	Rules struct {
		CollapseInPlace *string `yaml:"collapse_in_place"`
	} `yaml:"rules"`
}

// LoadConfig reads the config file at path and merges it over the embedded
// defaults. An empty path returns the defaults. Values are not clamped here;
// the controller clamps them when they are applied.
func LoadConfig(path string) (FileConfig, error) {
	cfg, err := EmbeddedDefaultConfig()
	if err != nil {
		return FileConfig{Split: policy.DefaultConfig()}, err
	}
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("read config %s: %w", path, err)
	}
	return MergeConfig(cfg, data)
}

// MergeConfig applies the YAML document in data on top of base.
func MergeConfig(base FileConfig, data []byte) (FileConfig, error) {
	var overlay fileOverlay
	if err := yaml.Unmarshal(data, &overlay); err != nil {
		return base, fmt.Errorf("decode config: %w", err)
	}
	out := base
	s := overlay.Split
	setInt(&out.Split.MaximumNumberOfColumns, s.MaximumNumberOfColumns)
	setFloat(&out.Split.PrimaryColumnMinimumWidth, s.PrimaryColumnMinimumWidth)
	setFloat(&out.Split.PrimaryColumnMaximumWidth, s.PrimaryColumnMaximumWidth)
	setFloat(&out.Split.PreferredPrimaryColumnWidthFraction, s.PreferredPrimaryColumnWidthFraction)
	setFloat(&out.Split.SecondaryColumnMinimumWidth, s.SecondaryColumnMinimumWidth)
	setFloat(&out.Split.SecondaryColumnMaximumWidth, s.SecondaryColumnMaximumWidth)
	setFloat(&out.Split.DetailColumnMinimumWidth, s.DetailColumnMinimumWidth)
	setFloat(&out.Split.SeparatorStatusBarClipWidth, s.SeparatorStatusBarClipWidth)
	setFloat(&out.Split.UnitsPerCell, s.UnitsPerCell)
	if s.SeparatorStrokeColor != nil {
		out.Split.SeparatorStrokeColor = *s.SeparatorStrokeColor
	}
	if s.ShowStatusBar != nil {
		out.Split.ShowStatusBar = *s.ShowStatusBar
	}
	if overlay.Rules.CollapseInPlace != nil {
		out.Rules.CollapseInPlace = *overlay.Rules.CollapseInPlace
	}
	return out, nil
}

func setInt(dst *int, v *int) {
	if v != nil {
		*dst = *v
	}
}

func setFloat(dst *float64, v *float64) {
	if v != nil {
		*dst = *v
	}
}
