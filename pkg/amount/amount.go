package amount

import (
	"regexp"

	"github.com/shopspring/decimal"
)

// Places is the number of decimal places every derived amount is rounded to.
const Places = 8

// editPattern matches an unsigned decimal prefix: digits, at most one point, digits.
var editPattern = regexp.MustCompile(`^\d*\.?\d*$`)

// IsEditable reports whether raw may be accepted into an amount field.
// The empty string is always editable; it clears the field.
func IsEditable(raw string) bool {
	return raw == "" || editPattern.MatchString(raw)
}

// Parse converts an accepted amount field into a decimal.
// Values without any digits ("" or ".") parse as zero.
func Parse(raw string) decimal.Decimal {
	if !hasDigit(raw) {
		return decimal.Zero
	}

	// NewFromString handles "3." and ".5"; the pattern already rules out signs and exponents
	d, err := decimal.NewFromString(raw)
	if err != nil {
		return decimal.Zero
	}
	return d
}

// Positive reports whether the field holds a number strictly greater than zero.
func Positive(raw string) bool {
	return Parse(raw).IsPositive()
}

// Format renders a derived amount with exactly Places decimals, rounding half up.
func Format(d decimal.Decimal) string {
	return d.StringFixed(Places)
}

func hasDigit(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] >= '0' && s[i] <= '9' {
			return true
		}
	}
	return false
}
