package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"exchange-form/pkg/types"
)

func TestParseQuoteCommand(t *testing.T) {
	tests := []struct {
		input  string
		amount string
		from   string
		to     string
	}{
		{"2 BTC to ETH", "2", "BTC", "ETH"},
		{"exchange 0.5 xmr for ltc", "0.5", "XMR", "LTC"},
		{"quote 100 usdt -> btc", "100", "USDT", "BTC"},
		{"  swap   .25   wbtc  TO  tether ", ".25", "BTC", "USDT"},
		{"3. bitcoin to monero", "3.", "BTC", "XMR"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			req, err := ParseQuoteCommand(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.amount, req.Amount)
			assert.Equal(t, tt.from, req.SourceToken)
			assert.Equal(t, tt.to, req.DestToken)
		})
	}
}

func TestParseQuoteCommandRejects(t *testing.T) {
	for _, input := range []string{"", "BTC to ETH", ". BTC to ETH", "2 BTC ETH", "-1 BTC to ETH", "1.2.3 BTC to ETH"} {
		_, err := ParseQuoteCommand(input)
		assert.Error(t, err, input)
	}
}

func TestParseArgs(t *testing.T) {
	req, err := ParseArgs([]string{"2", "btc", "to", "eth"})
	require.NoError(t, err)
	assert.Equal(t, "BTC", req.SourceToken)
}

func TestValidateQuoteRequest(t *testing.T) {
	assert.NoError(t, ValidateQuoteRequest(&types.QuoteRequest{Amount: "1", SourceToken: "BTC", DestToken: "ETH"}))
	assert.Error(t, ValidateQuoteRequest(&types.QuoteRequest{SourceToken: "BTC", DestToken: "ETH"}))
	assert.Error(t, ValidateQuoteRequest(&types.QuoteRequest{Amount: "1", DestToken: "ETH"}))
	assert.Error(t, ValidateQuoteRequest(&types.QuoteRequest{Amount: "1", SourceToken: "BTC"}))
	assert.Error(t, ValidateQuoteRequest(&types.QuoteRequest{Amount: "1", SourceToken: "BTC", DestToken: "BTC"}))
}
