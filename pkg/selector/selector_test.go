package selector

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"exchange-form/pkg/catalog"
)

func newSelector(t *testing.T, bus *Bus, onChange func(catalog.Currency)) *Selector {
	t.Helper()

	c, err := catalog.Default()
	require.NoError(t, err)

	return New(Config{
		ID:       "from",
		Variant:  Send,
		Catalog:  c,
		Bus:      bus,
		OnChange: onChange,
		Logger:   zaptest.NewLogger(t),
	})
}

func TestFilterGroupsAndMatches(t *testing.T) {
	c, err := catalog.Default()
	require.NoError(t, err)

	all := Filter(c.All(), "")
	assert.Equal(t, c.Len(), all.Len())
	assert.Len(t, all.Popular, 5)

	byName := Filter(c.All(), "bit")
	require.Len(t, byName.Popular, 1)
	assert.Equal(t, "BTC", byName.Popular[0].Symbol)
	assert.Empty(t, byName.Others)

	bySymbol := Filter(c.All(), "xr")
	require.Equal(t, 1, bySymbol.Len())
	assert.Equal(t, "XRP", bySymbol.All()[0].Symbol)

	assert.Equal(t, 0, Filter(c.All(), "zzz-none").Len())
}

func TestFilterIsIdempotent(t *testing.T) {
	c, err := catalog.Default()
	require.NoError(t, err)

	for _, term := range []string{"", "e", "ETH", "coin", "t"} {
		once := Filter(c.All(), term)
		twice := Filter(once.All(), term)
		assert.Equal(t, once, twice, term)
	}
}

func TestSelectInactiveIsNoop(t *testing.T) {
	calls := 0
	s := newSelector(t, NewBus(), func(catalog.Currency) { calls++ })

	s.Open()
	assert.False(t, s.Select(catalog.Currency{Symbol: "AVAX", Active: false}))
	assert.True(t, s.IsOpen())
	assert.Zero(t, calls)
}

func TestSelectActiveClosesAndNotifiesOnce(t *testing.T) {
	bus := NewBus()
	var got []catalog.Currency
	s := newSelector(t, bus, func(c catalog.Currency) { got = append(got, c) })

	s.Open()
	s.Search("lite")
	ltc := catalog.Currency{Symbol: "LTC", Name: "Litecoin", Active: true}
	assert.True(t, s.Select(ltc))

	assert.False(t, s.IsOpen())
	assert.Empty(t, s.Term())
	require.Len(t, got, 1)
	assert.Equal(t, ltc, got[0])
	assert.Zero(t, bus.Listeners())
}

func TestOutsideInteractionCloses(t *testing.T) {
	bus := NewBus()
	s := newSelector(t, bus, nil)

	assert.Zero(t, bus.Listeners())
	s.Open()
	assert.Equal(t, 1, bus.Listeners())

	bus.Publish(Interaction{Owner: "from", Part: PartSearch})
	bus.Publish(Interaction{Owner: "from", Part: PartList})
	assert.True(t, s.IsOpen())

	bus.Publish(Interaction{Owner: "to", Part: PartTrigger})
	assert.False(t, s.IsOpen())
	assert.Zero(t, bus.Listeners())
}

func TestOutsideHelperCloses(t *testing.T) {
	bus := NewBus()
	s := newSelector(t, bus, nil)

	s.Open()
	bus.Publish(Outside())
	assert.False(t, s.IsOpen())
}

func TestSubscriptionHeldOnlyWhileOpen(t *testing.T) {
	bus := NewBus()
	s := newSelector(t, bus, nil)

	s.Toggle()
	s.Open()
	assert.Equal(t, 1, bus.Listeners())

	s.Toggle()
	assert.False(t, s.IsOpen())
	assert.Zero(t, bus.Listeners())

	s.Trigger()()
	assert.True(t, s.IsOpen())
	s.Teardown()
	assert.Zero(t, bus.Listeners())
}

func TestCursorNavigation(t *testing.T) {
	var picked string
	s := newSelector(t, NewBus(), func(c catalog.Currency) { picked = c.Symbol })

	s.Open()
	s.Search("bitcoin")
	c, ok := s.Highlighted()
	require.True(t, ok)
	assert.Equal(t, "BTC", c.Symbol)

	s.Move(5)
	assert.Equal(t, 0, s.Cursor())
	s.Move(-3)
	assert.Equal(t, 0, s.Cursor())

	assert.True(t, s.SelectHighlighted())
	assert.Equal(t, "BTC", picked)

	s.Open()
	s.Search("zzz-none")
	_, ok = s.Highlighted()
	assert.False(t, ok)
	assert.False(t, s.SelectHighlighted())
}
