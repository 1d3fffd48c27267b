package rules

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCompileEmptyDisablesRule(t *testing.T) {
	e, err := Compile(Config{})
	require.NoError(t, err)
	assert.False(t, e.HasCollapseInPlace())

	got, err := e.CollapseInPlace(Facts{Column: "detail"})
	require.NoError(t, err)
	assert.False(t, got)
}

func TestCollapseInPlace(t *testing.T) {
	e, err := Compile(Config{CollapseInPlace: `column == "secondary" && width < 900.0`})
	require.NoError(t, err)
	require.True(t, e.HasCollapseInPlace())

	tests := []struct {
		name  string
		facts Facts
		want  bool
	}{
		{"secondary narrow", Facts{Column: "secondary", Width: 800}, true},
		{"secondary wide", Facts{Column: "secondary", Width: 1000}, false},
		{"detail narrow", Facts{Column: "detail", Width: 500}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := e.CollapseInPlace(tt.facts)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestCollapseInPlaceStringsExtension(t *testing.T) {
	e, err := Compile(Config{CollapseInPlace: `auxiliary_title.lowerAscii().startsWith("preview") && max_columns == 3`})
	require.NoError(t, err)

	got, err := e.CollapseInPlace(Facts{AuxiliaryTitle: "Preview: notes", MaxColumns: 3})
	require.NoError(t, err)
	assert.True(t, got)
}

func TestCompileErrors(t *testing.T) {
	_, err := Compile(Config{CollapseInPlace: `column ==`})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "collapse_in_place")

	_, err = Compile(Config{CollapseInPlace: `width + 1.0`})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "must evaluate to bool")

	_, err = Compile(Config{CollapseInPlace: `unknown_var`})
	require.Error(t, err)
}

func TestNilEngine(t *testing.T) {
	var e *Engine
	got, err := e.CollapseInPlace(Facts{})
	require.NoError(t, err)
	assert.False(t, got)
}
