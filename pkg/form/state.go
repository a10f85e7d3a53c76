package form

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"exchange-form/pkg/catalog"
	"exchange-form/pkg/rates"
	"exchange-form/pkg/validate"
)

// OrderType is the pricing mode of an exchange
type OrderType string

const (
	Fixed OrderType = "fixed" // Rate locked when the order is created
	Float OrderType = "float" // Rate resolved at settlement
)

// ParseOrderType accepts "fixed" or "float" in any case.
func ParseOrderType(s string) (OrderType, error) {
	switch OrderType(strings.ToLower(strings.TrimSpace(s))) {
	case Fixed:
		return Fixed, nil
	case Float:
		return Float, nil
	default:
		return "", fmt.Errorf("invalid order type %q: must be fixed or float", s)
	}
}

// Valid reports whether o is a known order type.
func (o OrderType) Valid() bool {
	return o == Fixed || o == Float
}

// FeePercent returns the service fee charged for the order type.
func (o OrderType) FeePercent() decimal.Decimal {
	if o == Fixed {
		return decimal.NewFromInt(1)
	}
	return decimal.NewFromFloat(0.5)
}

// Fields holds the per-field flags derived from a state.
type Fields struct {
	FromAmount         bool // From amount is a number > 0
	ToAmount           bool // To amount is a number > 0
	Address            bool // Address passes the length check
	TagRequired        bool // Destination currency needs a tag or memo
	Tag                bool // Tag satisfies the requirement
	DistinctCurrencies bool
	TagLabel           string

	// Advisory only. These never feed into IsValid.
	FromInRange   bool
	AddressFormat validate.Format
}

// State is one snapshot of the form. Snapshots handed out by the controller
// are values and never change afterwards.
type State struct {
	Session            string
	FromCurrency       catalog.Currency
	ToCurrency         catalog.Currency
	FromAmount         string
	ToAmount           string
	DestinationAddress string
	DestinationTag     string
	OrderType          OrderType
	ExchangeRate       rates.Rate
	RatePending        bool
	IsValid            bool
	Fields             Fields
}

// Pair returns the selected symbols.
func (s State) Pair() (from, to string) {
	return s.FromCurrency.Symbol, s.ToCurrency.Symbol
}
