package client

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	oneclick "github.com/defuse-protocol/one-click-sdk-go"
	"github.com/shopspring/decimal"

	"exchange-form/pkg/types"
)

// OneClickClient wraps the 1Click SDK
type OneClickClient struct {
	client *oneclick.APIClient
	token  string
}

// NewOneClickClient creates a new 1Click API client
func NewOneClickClient(jwtToken, baseURL string, timeout time.Duration) *OneClickClient {
	config := oneclick.NewConfiguration()
	if baseURL != "" {
		config.Servers = oneclick.ServerConfigurations{{URL: strings.TrimSuffix(baseURL, "/")}}
	}
	if timeout > 0 {
		config.HTTPClient = &http.Client{Timeout: timeout}
	}

	return &OneClickClient{
		client: oneclick.NewAPIClient(config),
		token:  jwtToken,
	}
}

// authenticated attaches the access token to a caller context
func (c *OneClickClient) authenticated(ctx context.Context) context.Context {
	return context.WithValue(ctx, oneclick.ContextAccessToken, c.token)
}

// GetSupportedTokens retrieves all supported tokens
func (c *OneClickClient) GetSupportedTokens(ctx context.Context) ([]oneclick.TokenResponse, error) {
	resp, httpResp, err := c.client.OneClickAPI.GetTokens(c.authenticated(ctx)).Execute()
	if err != nil {
		return nil, fmt.Errorf("failed to get tokens: %w", err)
	}
	defer httpResp.Body.Close()

	if httpResp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("API returned status code %d", httpResp.StatusCode)
	}

	return resp, nil
}

// FindToken searches for a token by symbol, optionally restricted to one chain
func (c *OneClickClient) FindToken(ctx context.Context, symbol, chain string) (*oneclick.TokenResponse, error) {
	tokens, err := c.GetSupportedTokens(ctx)
	if err != nil {
		return nil, err
	}

	return pickToken(tokens, symbol, chain)
}

// pickToken prefers an exact symbol match; without a chain it falls back to a partial match
func pickToken(tokens []oneclick.TokenResponse, symbol, chain string) (*oneclick.TokenResponse, error) {
	symbol = strings.ToUpper(symbol)

	for i := range tokens {
		if strings.ToUpper(tokens[i].GetSymbol()) != symbol {
			continue
		}
		if chain == "" || strings.EqualFold(tokens[i].GetBlockchain(), chain) {
			return &tokens[i], nil
		}
	}

	if chain != "" {
		return nil, fmt.Errorf("token '%s' not found on chain '%s'", symbol, chain)
	}

	for i := range tokens {
		if strings.Contains(strings.ToUpper(tokens[i].GetSymbol()), symbol) {
			return &tokens[i], nil
		}
	}

	return nil, fmt.Errorf("token '%s' not found", symbol)
}

// Supported reports whether tokens lists symbol exactly, on any chain
func Supported(tokens []oneclick.TokenResponse, symbol string) bool {
	for i := range tokens {
		if strings.EqualFold(tokens[i].GetSymbol(), symbol) {
			return true
		}
	}
	return false
}

// QuoteAmounts requests a dry quote and returns the formatted input and output amounts
func (c *OneClickClient) QuoteAmounts(ctx context.Context, req *types.QuoteRequest) (string, string, error) {
	tokens, err := c.GetSupportedTokens(ctx)
	if err != nil {
		return "", "", err
	}

	sourceToken, err := pickToken(tokens, req.SourceToken, req.SourceChain)
	if err != nil {
		return "", "", fmt.Errorf("source token error: %w", err)
	}
	destToken, err := pickToken(tokens, req.DestToken, req.DestChain)
	if err != nil {
		return "", "", fmt.Errorf("destination token error: %w", err)
	}

	amountIn, err := decimal.NewFromString(req.Amount)
	if err != nil {
		return "", "", fmt.Errorf("invalid amount: %w", err)
	}

	// Convert amount to the token's smallest unit
	smallestUnit := amountIn.Shift(int32(sourceToken.GetDecimals())).Round(0).String()

	recipient := req.RecipientAddr
	if recipient == "" {
		return "", "", fmt.Errorf("recipient address is required for quotes")
	}
	refundTo := req.RefundAddr
	if refundTo == "" {
		refundTo = recipient
	}

	quoteReq := oneclick.NewQuoteRequest(
		true,                     // dry - only the price is needed, no deposit address
		"EXACT_INPUT",            // swapType
		100,                      // slippageTolerance (1%)
		sourceToken.GetAssetId(), // originAsset
		"ORIGIN_CHAIN",           // depositType
		destToken.GetAssetId(),   // destinationAsset
		smallestUnit,             // amount in smallest unit
		refundTo,                 // refundTo
		"ORIGIN_CHAIN",           // refundType
		recipient,                // recipient
		"DESTINATION_CHAIN",      // recipientType
		time.Now().Add(time.Hour),
	)

	resp, httpResp, err := c.client.OneClickAPI.GetQuote(c.authenticated(ctx)).QuoteRequest(*quoteReq).Execute()
	if err != nil {
		if httpResp != nil {
			defer httpResp.Body.Close()
			return "", "", apiError(httpResp, err)
		}
		return "", "", fmt.Errorf("failed to get quote from API: %w", err)
	}
	defer httpResp.Body.Close()

	if httpResp.StatusCode < 200 || httpResp.StatusCode >= 300 {
		return "", "", fmt.Errorf("API returned status code %d", httpResp.StatusCode)
	}
	if resp == nil {
		return "", "", fmt.Errorf("empty quote response")
	}

	quote := resp.GetQuote()
	return quote.GetAmountInFormatted(), quote.GetAmountOutFormatted(), nil
}

// apiError extracts the server's message from a failed response
func apiError(httpResp *http.Response, err error) error {
	bodyBytes, readErr := io.ReadAll(httpResp.Body)
	if readErr != nil || len(bodyBytes) == 0 {
		return fmt.Errorf("failed to get quote from API (status: %d): %w", httpResp.StatusCode, err)
	}

	var errorResp map[string]interface{}
	if jsonErr := json.Unmarshal(bodyBytes, &errorResp); jsonErr == nil {
		if message, ok := errorResp["message"].(string); ok {
			return fmt.Errorf("API error (status %d): %s", httpResp.StatusCode, message)
		}
	}

	return fmt.Errorf("API error (status %d): %s", httpResp.StatusCode, string(bodyBytes))
}
