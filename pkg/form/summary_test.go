package form

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"exchange-form/pkg/rates"
	"exchange-form/pkg/validate"
)

func TestSummaryCompleteOrder(t *testing.T) {
	f := newFixture(t, nil)
	f.ctrl.EditFromAmount("2")
	f.ctrl.EditDestinationAddress(btcAddress)

	sum := f.ctrl.Summary()
	assert.Equal(t, "Exchanging 2 BTC for 30.40000000 ETH", sum.Headline)
	assert.Equal(t, "1 BTC ≈ 15.200000 ETH", sum.RateLine)
	assert.Equal(t, "1 ETH ≈ 0.065789 BTC", sum.InverseLine)
	assert.Equal(t, "$76506.00", sum.FromUSD)
	assert.Equal(t, "$66099.02", sum.ToUSD)
	assert.Equal(t, "0.5%", sum.Fee)
	assert.Equal(t, "Memo", sum.TagLabel)
	assert.Empty(t, sum.Problems)
	assert.Empty(t, sum.Warnings)
	assert.Equal(t, "0.01", Fee(f.ctrl.State()).String())
}

func TestSummaryProblems(t *testing.T) {
	f := newFixture(t, nil)
	f.ctrl.SelectToCurrency(f.currency(t, "XRP"))
	f.ctrl.SetOrderType(Fixed)

	sum := f.ctrl.Summary()
	assert.Equal(t, "Enter an amount of BTC or XRP", sum.Headline)
	assert.Equal(t, "1.0%", sum.Fee)
	assert.Equal(t, []string{
		"Enter a BTC amount greater than zero",
		"Destination address must be at least 10 characters",
		"Destination Tag is required for XRP",
	}, sum.Problems)
	require.Len(t, sum.Warnings, 1)
	assert.Contains(t, sum.Warnings[0], "No BTC/XRP rate available")
	assert.Empty(t, sum.FromUSD)
}

func TestSummaryAdvisoryWarnings(t *testing.T) {
	f := newFixture(t, func(o *Options) {
		o.To = "USDT"
		o.Formats = validate.NetworkFormats{}
	})
	f.ctrl.EditFromAmount("20")
	f.ctrl.EditDestinationAddress(btcAddress)

	sum := f.ctrl.Summary()
	assert.Empty(t, sum.Problems)
	assert.Equal(t, []string{
		"BTC amount is outside the usual 0.0005 to 10 range",
		"Address does not look like a ETH address",
	}, sum.Warnings)
	assert.Equal(t, "$765060.00", sum.FromUSD)
	assert.Equal(t, "$765060.00", sum.ToUSD)
}

func TestSummaryPendingRate(t *testing.T) {
	f := newFixture(t, func(o *Options) {
		o.Rates = &slowRates{table: o.Rates.(*rates.Table)}
	})
	f.ctrl.EditFromAmount("2")

	sum := f.ctrl.Summary()
	assert.Equal(t, "Fetching BTC/ETH rate", sum.RateLine)
	assert.Empty(t, sum.InverseLine)
	assert.Empty(t, sum.FromUSD)
	assert.Contains(t, sum.Problems, "ETH amount is not available yet")
}
