package rates

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"exchange-form/pkg/catalog"
)

// ErrNoPending is returned when a rate result arrives but no lookup is outstanding.
var ErrNoPending = errors.New("no pending rate lookup")

// Provider resolves conversion rates. Implementations backed by a network
// service may block; callers must not hold form state across the call.
type Provider interface {
	Rate(ctx context.Context, from, to string) (Rate, error)
}

// Synchronous is implemented by providers that answer from memory and never fail.
type Synchronous interface {
	Lookup(from, to string) Rate
}

type pair struct {
	from string
	to   string
}

// Table is a static, in-memory rate table.
type Table struct {
	entries map[pair]decimal.Decimal
}

// NewTable builds a table from rate entries. Every rate must be positive.
func NewTable(entries []catalog.RateEntry) (*Table, error) {
	t := &Table{entries: make(map[pair]decimal.Decimal, len(entries))}

	for _, e := range entries {
		value, err := decimal.NewFromString(e.Rate)
		if err != nil {
			return nil, fmt.Errorf("invalid rate %s/%s: %w", e.From, e.To, err)
		}
		if !value.IsPositive() {
			return nil, fmt.Errorf("rate %s/%s must be positive", e.From, e.To)
		}
		t.entries[pair{strings.ToUpper(e.From), strings.ToUpper(e.To)}] = value
	}

	return t, nil
}

// FromCatalog builds a table from the rates shipped with a catalog.
func FromCatalog(c *catalog.Catalog) (*Table, error) {
	return NewTable(c.Rates())
}

// Lookup returns the effective rate from -> to:
// 1 for the same symbol, the direct entry, the reciprocal of the reverse
// entry, or 1 flagged as Fallback when neither direction is listed.
func (t *Table) Lookup(from, to string) Rate {
	from, to = strings.ToUpper(from), strings.ToUpper(to)

	if from == to {
		return Parity(from, to, false)
	}

	if v, ok := t.entries[pair{from, to}]; ok {
		return Rate{From: from, To: to, num: v, den: decimal.NewFromInt(1)}
	}

	if v, ok := t.entries[pair{to, from}]; ok {
		return Rate{From: from, To: to, num: decimal.NewFromInt(1), den: v}
	}

	return Parity(from, to, true)
}

// Rate implements Provider.
func (t *Table) Rate(_ context.Context, from, to string) (Rate, error) {
	return t.Lookup(from, to), nil
}

// Len returns the number of listed directions.
func (t *Table) Len() int {
	return len(t.entries)
}
