package catalog

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultCatalog(t *testing.T) {
	c, err := Default()
	require.NoError(t, err)

	btc, err := c.Get("btc")
	require.NoError(t, err)
	assert.Equal(t, "Bitcoin", btc.Name)
	assert.True(t, btc.Active)
	assert.True(t, btc.Popular)

	avax, err := c.Get("AVAX")
	require.NoError(t, err)
	assert.False(t, avax.Active, "AVAX is listed but disabled")

	usdt, err := c.Get("USDT")
	require.NoError(t, err)
	assert.Equal(t, "Tether (ERC20) [ETH]", usdt.Label())

	for _, sym := range []string{"XRP", "XLM", "BNB", "EOS", "ATOM", "TON"} {
		assert.True(t, c.Has(sym), sym)
	}

	assert.NotEmpty(t, c.Rates())
}

func TestDefaultRatesHaveOneDirection(t *testing.T) {
	c, err := Default()
	require.NoError(t, err)

	seen := make(map[string]bool)
	for _, r := range c.Rates() {
		assert.False(t, seen[r.To+"/"+r.From], "pair %s/%s listed in both directions", r.From, r.To)
		seen[r.From+"/"+r.To] = true
	}
}

func TestGetUnknown(t *testing.T) {
	c, err := Default()
	require.NoError(t, err)

	_, err = c.Get("DOGE")
	assert.ErrorIs(t, err, ErrUnknownCurrency)
}

func TestNewRejectsBadInput(t *testing.T) {
	_, err := New([]Currency{{Symbol: "BTC"}, {Symbol: "btc"}}, nil)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "duplicate")

	_, err = New([]Currency{{Name: "Nameless"}}, nil)
	assert.Error(t, err)

	_, err = New([]Currency{{Symbol: "BTC"}}, []RateEntry{{From: "BTC", To: "ETH", Rate: "1"}})
	assert.ErrorIs(t, err, ErrUnknownCurrency)
}

func TestLoadFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalog.yaml")
	doc := []byte(`
currencies:
  - {symbol: aaa, name: Alpha, network: A, active: true, popular: true}
  - {symbol: BBB, network: B, active: false}
rates:
  - {from: AAA, to: bbb, rate: "2"}
`)
	require.NoError(t, os.WriteFile(path, doc, 0600))

	c, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 2, c.Len())

	b, err := c.Get("BBB")
	require.NoError(t, err)
	assert.Equal(t, "BBB", b.Name, "name defaults to the symbol")
	assert.Equal(t, []RateEntry{{From: "AAA", To: "BBB", Rate: "2"}}, c.Rates())

	_, err = Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestBounds(t *testing.T) {
	lo, hi := Currency{Min: "0.1", Max: "10"}.Bounds()
	assert.Equal(t, "0.1", lo.String())
	assert.Equal(t, "10", hi.String())

	lo, hi = Currency{}.Bounds()
	assert.True(t, lo.IsZero())
	assert.True(t, hi.IsZero())
}
