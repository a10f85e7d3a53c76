package form

import (
	"fmt"

	"github.com/shopspring/decimal"

	"exchange-form/pkg/amount"
	"exchange-form/pkg/rates"
	"exchange-form/pkg/validate"
)

// USD is the symbol dollar estimates are priced in.
const USD = "USDT"

// Summary is the human-readable reading of a state.
type Summary struct {
	Headline    string   // "Exchanging 2 BTC for 30.40000000 ETH"
	RateLine    string   // "1 BTC ≈ 15.200000 ETH"
	InverseLine string   // "1 ETH ≈ 0.065789 BTC"
	FromUSD     string   // "$76506.00", empty when no real rate to USD exists
	ToUSD       string   // Same for the destination amount
	Fee         string   // "0.5%"
	TagLabel    string   // "Destination Tag" or "Memo"
	Problems    []string // Why the form cannot be submitted
	Warnings    []string // Advisory notes that do not block submission
}

// Summary describes the current state.
func (c *Controller) Summary() Summary {
	return Summarize(c.state, c.lookup)
}

// Summarize describes s. USD estimates are computed only when usd is non-nil
// and knows a real rate to USDT.
func Summarize(s State, usd rates.Synchronous) Summary {
	from, to := s.Pair()
	sum := Summary{
		Fee:      s.OrderType.FeePercent().StringFixed(1) + "%",
		TagLabel: s.Fields.TagLabel,
	}

	if s.FromAmount != "" && s.ToAmount != "" {
		sum.Headline = fmt.Sprintf("Exchanging %s %s for %s %s", s.FromAmount, from, s.ToAmount, to)
	} else {
		sum.Headline = fmt.Sprintf("Enter an amount of %s or %s", from, to)
	}

	switch {
	case s.RatePending:
		sum.RateLine = fmt.Sprintf("Fetching %s/%s rate", from, to)
	case s.ExchangeRate.IsSet():
		sum.RateLine = rateLine(s.ExchangeRate)
		sum.InverseLine = rateLine(s.ExchangeRate.Inverse())
		if s.ExchangeRate.Fallback {
			sum.Warnings = append(sum.Warnings, fmt.Sprintf("No %s/%s rate available, 1:1 shown as a placeholder", from, to))
		}
	}

	if usd != nil {
		sum.FromUSD = usdEstimate(usd, from, s.FromAmount)
		sum.ToUSD = usdEstimate(usd, to, s.ToAmount)
	}

	sum.Problems = problems(s)

	if !s.Fields.FromInRange {
		lo, hi := s.FromCurrency.Bounds()
		sum.Warnings = append(sum.Warnings, fmt.Sprintf("%s amount is outside the usual %s to %s range", from, lo, hi))
	}
	if s.Fields.AddressFormat == validate.FormatInvalid {
		sum.Warnings = append(sum.Warnings, fmt.Sprintf("Address does not look like a %s address", s.ToCurrency.Network))
	}
	return sum
}

func rateLine(r rates.Rate) string {
	return fmt.Sprintf("1 %s ≈ %s %s", r.From, r.Value(6).StringFixed(6), r.To)
}

func usdEstimate(usd rates.Synchronous, symbol, raw string) string {
	if raw == "" {
		return ""
	}
	r := usd.Lookup(symbol, USD)
	if r.Fallback || !r.IsSet() {
		return ""
	}
	v := amount.Parse(raw).Mul(r.Value(amount.Places))
	return "$" + v.Round(2).StringFixed(2)
}

func problems(s State) []string {
	var out []string
	f := s.Fields

	if !f.FromAmount {
		out = append(out, fmt.Sprintf("Enter a %s amount greater than zero", s.FromCurrency.Symbol))
	}
	if !f.ToAmount && f.FromAmount {
		out = append(out, fmt.Sprintf("%s amount is not available yet", s.ToCurrency.Symbol))
	}
	if !f.Address {
		out = append(out, fmt.Sprintf("Destination address must be at least %d characters", validate.MinAddressLength))
	}
	if !f.Tag {
		out = append(out, fmt.Sprintf("%s is required for %s", f.TagLabel, s.ToCurrency.Symbol))
	}
	if !f.DistinctCurrencies {
		out = append(out, "Source and destination currencies must differ")
	}
	return out
}

// Fee returns the fee charged on the source amount.
func Fee(s State) decimal.Decimal {
	return amount.Parse(s.FromAmount).Mul(s.OrderType.FeePercent()).Div(decimal.NewFromInt(100))
}
