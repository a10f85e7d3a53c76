package parser

import (
	"fmt"
	"regexp"
	"strings"

	"exchange-form/pkg/types"
)

// Pattern: <amount> <source> TO <dest>
// Matches: "2 BTC TO ETH", "0.5 XMR TO LTC", ".25 ETH TO USDT"
var commandPattern = regexp.MustCompile(`^(\d*\.?\d*)\s+([A-Z0-9]+)\s+(?:TO|FOR|->)\s+([A-Z0-9]+)$`)

// ParseQuoteCommand parses a natural language exchange command
// Examples:
//   - "2 BTC to ETH"
//   - "exchange 0.5 xmr for ltc"
//   - "quote 100 usdt -> btc"
func ParseQuoteCommand(command string) (*types.QuoteRequest, error) {
	// Normalize the command
	command = strings.Join(strings.Fields(strings.ToUpper(command)), " ")

	// Remove a leading verb if present
	for _, verb := range []string{"QUOTE ", "EXCHANGE ", "SWAP "} {
		command = strings.TrimPrefix(command, verb)
	}

	matches := commandPattern.FindStringSubmatch(command)
	if matches == nil || !strings.ContainsAny(matches[1], "0123456789") {
		return nil, fmt.Errorf("invalid command format. Expected: '<amount> <currency> to <currency>' (e.g., '2 BTC to ETH')")
	}

	return &types.QuoteRequest{
		Amount:      matches[1],
		SourceToken: NormalizeTokenSymbol(matches[2]),
		DestToken:   NormalizeTokenSymbol(matches[3]),
	}, nil
}

// ParseArgs joins command-line arguments and parses them as one command
func ParseArgs(args []string) (*types.QuoteRequest, error) {
	return ParseQuoteCommand(strings.Join(args, " "))
}

// ValidateQuoteRequest validates that a quote request has all required fields
func ValidateQuoteRequest(req *types.QuoteRequest) error {
	if req.Amount == "" {
		return fmt.Errorf("amount is required")
	}
	if req.SourceToken == "" {
		return fmt.Errorf("source currency is required")
	}
	if req.DestToken == "" {
		return fmt.Errorf("destination currency is required")
	}
	if req.SourceToken == req.DestToken {
		return fmt.Errorf("source and destination currencies must differ")
	}
	return nil
}

// aliases maps wrapped and colloquial names to catalog symbols
var aliases = map[string]string{
	"WBTC":     "BTC",
	"XBT":      "BTC",
	"BITCOIN":  "BTC",
	"WETH":     "ETH",
	"ETHER":    "ETH",
	"WSOL":     "SOL",
	"TETHER":   "USDT",
	"MONERO":   "XMR",
	"LITECOIN": "LTC",
	"RIPPLE":   "XRP",
}

// NormalizeTokenSymbol normalizes currency symbols to catalog format
func NormalizeTokenSymbol(symbol string) string {
	// Convert to uppercase for consistency
	symbol = strings.TrimSpace(strings.ToUpper(symbol))

	if normalized, exists := aliases[symbol]; exists {
		return normalized
	}
	return symbol
}
