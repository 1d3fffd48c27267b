package splitview

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestChainDelegatesFirstDefiniteAnswerWins(t *testing.T) {
	var calls []string
	first := &Delegate{
		Collapse: func(*Controller, Content, ColumnKind, Content) bool {
			calls = append(calls, "first")
			return false
		},
		Separate: func(*Controller, ColumnKind, Content) Content { return nil },
	}
	x := newMock("x")
	second := &Delegate{
		Collapse: func(*Controller, Content, ColumnKind, Content) bool {
			calls = append(calls, "second")
			return true
		},
		Separate: func(*Controller, ColumnKind, Content) Content { return x },
	}
	third := &Delegate{
		Collapse: func(*Controller, Content, ColumnKind, Content) bool {
			calls = append(calls, "third")
			return true
		},
	}

	chained := ChainDelegates(first, nil, second, third)
	require.NotNil(t, chained)

	assert.True(t, chained.Collapse(nil, nil, Secondary, nil))
	assert.Equal(t, []string{"first", "second"}, calls)
	assert.Same(t, x, chained.Separate(nil, Detail, nil))
	assert.False(t, chained.ShowDetail(nil, x, nil))
	assert.Nil(t, chained.PrimaryForCollapsing(nil, Secondary))
	assert.Nil(t, chained.PrimaryForExpanding(nil, Secondary))
}

func TestChainDelegatesDegenerate(t *testing.T) {
	assert.Nil(t, ChainDelegates())
	assert.Nil(t, ChainDelegates(nil, nil))

	only := &Delegate{}
	assert.Same(t, only, ChainDelegates(nil, only))
}

func TestGatewayWithoutDelegateDeclines(t *testing.T) {
	c := New(1200, []Content{newMock("p")})
	defer c.Close()
	g := gateway{c: c}

	assert.False(t, g.showSecondary(newMock("x"), nil))
	assert.False(t, g.showDetail(newMock("x"), nil))
	assert.False(t, g.collapse(nil, Secondary, nil))
	assert.Nil(t, g.separate(Secondary, nil))
	assert.Nil(t, g.primaryForCollapsing(Secondary))
	assert.Nil(t, g.primaryForExpanding(Detail))

	c.SetDelegate(&Delegate{})
	assert.False(t, g.collapse(nil, Detail, nil))
	assert.Nil(t, g.separate(Detail, nil))
}
