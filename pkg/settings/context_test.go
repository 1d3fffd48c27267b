package settings

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIntoContextFromContextRoundTrip(t *testing.T) {
	tests := []struct {
		name     string
		settings *Run
	}{
		{name: "empty", settings: &Run{}},
		{name: "with values", settings: &Run{NoColor: true, MaxColumns: 2, ConfigPath: "/tmp/x.yaml"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := IntoContext(context.Background(), tt.settings)
			got, ok := FromContext(ctx)
			require.True(t, ok)
			assert.Same(t, tt.settings, got)
		})
	}
}

func TestFromContextMissingOrWrongType(t *testing.T) {
	got, ok := FromContext(context.Background())
	assert.False(t, ok)
	assert.Nil(t, got)

	ctx := context.WithValue(context.Background(), settingsContextKey, "wrong type")
	got, ok = FromContext(ctx)
	assert.False(t, ok)
	assert.Nil(t, got)
}

func TestFromContextOrDefault(t *testing.T) {
	assert.Equal(t, NewCliParams(), FromContextOrDefault(context.Background()))

	s := &Run{MaxColumns: 1}
	assert.Same(t, s, FromContextOrDefault(IntoContext(context.Background(), s)))
}
