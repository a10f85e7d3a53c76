package rates

import (
	"context"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"exchange-form/pkg/types"
)

// QuoteClient returns the formatted input and output amounts of a dry quote.
// *client.OneClickClient satisfies it.
type QuoteClient interface {
	QuoteAmounts(ctx context.Context, req *types.QuoteRequest) (string, string, error)
}

// OneClick derives live rates from 1Click dry quotes: rate = amountOut / amountIn.
type OneClick struct {
	client    QuoteClient
	probe     string
	recipient string
	refundTo  string
	logger    *zap.Logger
}

// NewOneClick creates a quote-backed provider. probe is the source amount
// quoted to measure the price; it defaults to "1".
func NewOneClick(c QuoteClient, recipient, refundTo, probe string, logger *zap.Logger) *OneClick {
	if probe == "" {
		probe = "1"
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &OneClick{
		client:    c,
		probe:     probe,
		recipient: recipient,
		refundTo:  refundTo,
		logger:    logger,
	}
}

// Rate implements Provider.
func (o *OneClick) Rate(ctx context.Context, from, to string) (Rate, error) {
	from, to = strings.ToUpper(from), strings.ToUpper(to)
	if from == to {
		return Parity(from, to, false), nil
	}

	req := &types.QuoteRequest{
		Amount:        o.probe,
		SourceToken:   from,
		DestToken:     to,
		RecipientAddr: o.recipient,
		RefundAddr:    o.refundTo,
	}

	in, out, err := o.client.QuoteAmounts(ctx, req)
	if err != nil {
		return Rate{}, fmt.Errorf("failed to get quote: %w", err)
	}

	amountIn, err := decimal.NewFromString(in)
	if err != nil {
		return Rate{}, fmt.Errorf("failed to parse amount in: %w", err)
	}
	amountOut, err := decimal.NewFromString(out)
	if err != nil {
		return Rate{}, fmt.Errorf("failed to parse amount out: %w", err)
	}

	r, err := Fraction(from, to, amountOut, amountIn)
	if err != nil {
		return Rate{}, err
	}

	o.logger.Debug("quoted rate",
		zap.String("from", from),
		zap.String("to", to),
		zap.String("amount_in", in),
		zap.String("amount_out", out),
		zap.Stringer("rate", r))

	return r, nil
}
