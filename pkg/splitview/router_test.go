package splitview

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func (f *fixture) shows() []ColumnKind {
	var out []ColumnKind
	for _, ev := range f.events {
		if ev.Type == EventShowTargetChanged {
			out = append(out, ev.Column)
		}
	}
	return out
}

func TestShowDetailWhileCollapsedSurfacesOnExpand(t *testing.T) {
	f := newFixture(t, 500)
	d2 := newMock("d2")

	require.NoError(t, f.c.ShowDetail(d2, f.p))

	assertItems(t, f.c, Primary, "p", "s", "d2")
	assert.Same(t, d2, f.c.PrimaryContent())
	assert.Same(t, d2, f.c.Assigned(Detail))
	_, owned := OwnerOf(f.d)
	assert.False(t, owned, "replaced detail is released")

	require.NoError(t, f.c.SetWidth(760))
	assert.Equal(t, 2, f.c.Count())
	assert.Same(t, d2, f.c.DetailContent())
	assertItems(t, f.c, Primary, "p", "s")

	require.NoError(t, f.c.SetWidth(1200))
	assertItems(t, f.c, Primary, "p")
	assertItems(t, f.c, Secondary, "s")
	assertItems(t, f.c, Detail, "d2")
	assert.Equal(t, []ColumnKind{Detail}, f.shows())
}

func TestShowSecondaryReplacesVisibleColumn(t *testing.T) {
	f := newFixture(t, 1200)
	require.NoError(t, f.c.Push(Secondary, newMock("s.1")))
	s2 := newMock("s2")

	require.NoError(t, f.c.ShowSecondary(s2, f.p))

	assertItems(t, f.c, Secondary, "s2")
	_, owned := OwnerOf(f.s)
	assert.False(t, owned)

	require.NoError(t, f.c.SetWidth(760))
	assertItems(t, f.c, Primary, "p", "s2")
	require.NoError(t, f.c.SetWidth(1200))
	assertItems(t, f.c, Primary, "p")
	assertItems(t, f.c, Secondary, "s2")
}

func TestShowSecondaryWhileCollapsedDiscardsOldRecord(t *testing.T) {
	f := newFixture(t, 760)
	s2 := newMock("s2")

	require.NoError(t, f.c.ShowSecondary(s2, f.p))

	assertItems(t, f.c, Primary, "p", "s2")
	assert.True(t, f.c.HasTransfer(Secondary))

	require.NoError(t, f.c.SetWidth(1200))
	assertItems(t, f.c, Primary, "p")
	assertItems(t, f.c, Secondary, "s2")
}

func TestShowAfterDelegateHandledCollapse(t *testing.T) {
	f := newFixture(t, 1200, WithDelegate(&Delegate{
		Collapse: func(*Controller, Content, ColumnKind, Content) bool { return true },
	}))
	require.NoError(t, f.c.SetWidth(760))
	s2 := newMock("s2")

	require.NoError(t, f.c.ShowSecondary(s2, nil))

	assertItems(t, f.c, Secondary)
	assertItems(t, f.c, Primary, "p", "s2")
	_, owned := OwnerOf(f.s)
	assert.False(t, owned)

	f.c.SetDelegate(nil)
	require.NoError(t, f.c.SetWidth(1200))
	assertItems(t, f.c, Secondary, "s2")
}

func TestShowPrimaryPushes(t *testing.T) {
	f := newFixture(t, 1200)
	x := newMock("x")

	require.NoError(t, f.c.Show(x, Primary, nil))

	assertItems(t, f.c, Primary, "p", "x")
	assert.Equal(t, []ColumnKind{Primary}, f.shows())
}

func TestShowDowngradesToPermittedKind(t *testing.T) {
	tests := []struct {
		name       string
		maxColumns int
		as         ColumnKind
		want       ColumnKind
	}{
		{"detail with one column", 1, Detail, Primary},
		{"secondary with one column", 1, Secondary, Primary},
		{"secondary with two columns", 2, Secondary, Primary},
		{"detail with two columns", 2, Detail, Detail},
		{"secondary with three columns", 3, Secondary, Secondary},
		{"invalid kind", 3, ColumnKind(9), Primary},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			cfg.MaximumNumberOfColumns = tt.maxColumns
			f := newFixture(t, 2000, WithConfig(cfg))
			x := newMock("x")

			require.NoError(t, f.c.Show(x, tt.as, nil))

			assert.Equal(t, []ColumnKind{tt.want}, f.shows())
			if tt.want == Primary {
				assert.Same(t, x, f.c.PrimaryContent())
			} else {
				assertItems(t, f.c, tt.want, "x")
			}
		})
	}
}

func TestDelegateShowHandlers(t *testing.T) {
	var secondary, detail []Content
	f := newFixture(t, 1200, WithDelegate(&Delegate{
		ShowSecondary: func(_ *Controller, content, sender Content) bool {
			secondary = append(secondary, content, sender)
			return true
		},
		ShowDetail: func(_ *Controller, content, _ Content) bool {
			detail = append(detail, content)
			return false
		},
	}))
	x, y := newMock("x"), newMock("y")

	require.NoError(t, f.c.ShowSecondary(x, f.p))
	require.NoError(t, f.c.ShowDetail(y, f.p))

	assert.Equal(t, []Content{x, f.p}, secondary)
	assert.Equal(t, []Content{y}, detail)
	assertItems(t, f.c, Secondary, "s")
	assertItems(t, f.c, Detail, "y")
	assert.Equal(t, []ColumnKind{Secondary, Detail}, f.shows())
}

func TestShowFromDelegateIsRejected(t *testing.T) {
	var nested error
	f := newFixture(t, 1200, WithDelegate(&Delegate{
		Collapse: func(c *Controller, _ Content, _ ColumnKind, _ Content) bool {
			nested = c.ShowDetail(newMock("x"), nil)
			return false
		},
	}))

	require.NoError(t, f.c.SetWidth(760))
	assert.ErrorIs(t, nested, ErrTransitionInProgress)
}

func TestShowQueuesWidthChangesFromHandlers(t *testing.T) {
	f := newFixture(t, 1200, WithDelegate(&Delegate{
		ShowDetail: func(c *Controller, _, _ Content) bool {
			require.NoError(t, c.SetWidth(500))
			return false
		},
	}))

	require.NoError(t, f.c.ShowDetail(newMock("d2"), nil))

	assert.Equal(t, 1, f.c.Count())
	assertItems(t, f.c, Primary, "p", "s", "d2")
}

func TestShowSecondaryWithDetail(t *testing.T) {
	f := newFixture(t, 500)
	s2, d2 := newMock("s2"), newMock("d2")

	require.NoError(t, f.c.ShowSecondaryWithDetail(s2, d2, f.p))

	assertItems(t, f.c, Primary, "p", "s2")
	assertItems(t, f.c, Detail, "d2")
	assert.Same(t, s2, f.c.PrimaryContent())

	require.NoError(t, f.c.SetWidth(760))
	assert.Same(t, d2, f.c.DetailContent())
	assertItems(t, f.c, Primary, "p", "s2")

	require.NoError(t, f.c.SetWidth(1200))
	assertItems(t, f.c, Primary, "p")
	assertItems(t, f.c, Secondary, "s2")
	assertItems(t, f.c, Detail, "d2")
}

func TestShowSecondaryWithDetailVisible(t *testing.T) {
	f := newFixture(t, 1200)
	s2, d2 := newMock("s2"), newMock("d2")

	require.NoError(t, f.c.ShowSecondaryWithDetail(s2, d2, nil))

	assertItems(t, f.c, Secondary, "s2")
	assertItems(t, f.c, Detail, "d2")
	assert.Equal(t, []ColumnKind{Secondary, Detail}, f.shows())
}

func TestShowInPlace(t *testing.T) {
	f := newFixture(t, 1200)
	x, y := newMock("x"), newMock("y")

	require.NoError(t, f.c.ShowInPlace(x, f.s))
	require.NoError(t, f.c.ShowInPlace(y, nil))

	assertItems(t, f.c, Secondary, "s", "x")
	assertItems(t, f.c, Primary, "p", "y")
}

func TestShowRejectsNilContent(t *testing.T) {
	f := newFixture(t, 1200)

	assert.ErrorIs(t, f.c.ShowDetail(nil, nil), ErrNilContent)
	assert.ErrorIs(t, f.c.ShowInPlace(nil, nil), ErrNilContent)
	assert.Empty(t, f.shows())
}

func TestPackageShowResolvesOwner(t *testing.T) {
	f := newFixture(t, 1200)
	x, y := newMock("x"), newMock("y")

	require.NoError(t, ShowDetail(f.s, x))
	require.NoError(t, ShowInPlace(x, y))
	require.NoError(t, ShowSecondary(f.p, newMock("s2")))

	assertItems(t, f.c, Detail, "x", "y")
	assertItems(t, f.c, Secondary, "s2")
	assert.ErrorIs(t, Show(newMock("stranger"), x, Detail), ErrNotOwned)
	assert.ErrorIs(t, ShowInPlace(nil, x), ErrNotOwned)
}
