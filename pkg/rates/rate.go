package rates

import (
	"fmt"

	"github.com/shopspring/decimal"

	"exchange-form/pkg/amount"
)

// Rate is the number of To units obtainable for one From unit.
//
// The value is held as an exact fraction so that a rate and its reciprocal
// multiply back to exactly one. The zero Rate is "unset".
type Rate struct {
	From string
	To   string

	// Fallback is true when no table entry existed in either direction and
	// the rate was defaulted to 1. It must not be displayed as authoritative.
	Fallback bool

	num decimal.Decimal
	den decimal.Decimal
}

// New returns the rate from -> to with the given positive value.
func New(from, to string, value decimal.Decimal) (Rate, error) {
	return Fraction(from, to, value, decimal.NewFromInt(1))
}

// Fraction returns the rate from -> to equal to num/den. Both must be positive.
func Fraction(from, to string, num, den decimal.Decimal) (Rate, error) {
	if !num.IsPositive() || !den.IsPositive() {
		return Rate{}, fmt.Errorf("rate %s/%s must be positive, got %s/%s", from, to, num, den)
	}
	return Rate{From: from, To: to, num: num, den: den}, nil
}

// Parity returns the 1:1 rate between two symbols.
func Parity(from, to string, fallback bool) Rate {
	one := decimal.NewFromInt(1)
	return Rate{From: from, To: to, Fallback: fallback, num: one, den: one}
}

// IsSet reports whether the rate holds a value.
func (r Rate) IsSet() bool {
	return r.den.IsPositive() && r.num.IsPositive()
}

// Inverse returns the rate in the opposite direction.
func (r Rate) Inverse() Rate {
	return Rate{From: r.To, To: r.From, Fallback: r.Fallback, num: r.den, den: r.num}
}

// Convert returns amount × rate rounded half up to amount.Places decimals.
func (r Rate) Convert(v decimal.Decimal) decimal.Decimal {
	return v.Mul(r.num).DivRound(r.den, amount.Places)
}

// Reverse returns amount ÷ rate rounded half up to amount.Places decimals.
func (r Rate) Reverse(v decimal.Decimal) decimal.Decimal {
	return v.Mul(r.den).DivRound(r.num, amount.Places)
}

// Value returns the rate as a decimal rounded to the given places.
func (r Rate) Value(places int32) decimal.Decimal {
	if !r.IsSet() {
		return decimal.Zero
	}
	return r.num.DivRound(r.den, places)
}

// Float64 returns an approximation of the rate for display math.
func (r Rate) Float64() float64 {
	f, _ := r.Value(16).Float64()
	return f
}

// Mul chains two rates. The result goes from r.From to o.To.
func (r Rate) Mul(o Rate) Rate {
	return Rate{
		From:     r.From,
		To:       o.To,
		Fallback: r.Fallback || o.Fallback,
		num:      r.num.Mul(o.num),
		den:      r.den.Mul(o.den),
	}
}

// Equal compares the exact values of two rates, ignoring symbols.
func (r Rate) Equal(o Rate) bool {
	return r.num.Mul(o.den).Equal(o.num.Mul(r.den))
}

// IsOne reports whether the rate is exactly 1.
func (r Rate) IsOne() bool {
	return r.IsSet() && r.num.Equal(r.den)
}

func (r Rate) String() string {
	if !r.IsSet() {
		return "unset"
	}
	return r.Value(amount.Places).String()
}
