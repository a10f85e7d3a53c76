package catalog

import (
	_ "embed"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
)

//go:embed catalog.yaml
var defaultCatalog []byte

// ErrUnknownCurrency is returned when a symbol is not listed in the catalog.
var ErrUnknownCurrency = errors.New("unknown currency")

// Currency is a listed asset. Values are immutable once the catalog is loaded.
type Currency struct {
	Symbol      string `yaml:"symbol" json:"symbol"`               // Unique ticker, e.g. "USDT"
	Name        string `yaml:"name" json:"name"`                   // Display name, e.g. "Tether (ERC20)"
	Network     string `yaml:"network" json:"network"`             // Settlement network, e.g. "ETH"
	ShowNetwork bool   `yaml:"show_network" json:"show_network"`   // Network must be shown to disambiguate
	Active      bool   `yaml:"active" json:"active"`               // Selectable vs listed-but-disabled
	Popular     bool   `yaml:"popular" json:"popular"`             // Listed in the popular group
	Min         string `yaml:"min,omitempty" json:"min,omitempty"` // Suggested minimum send amount
	Max         string `yaml:"max,omitempty" json:"max,omitempty"` // Suggested maximum send amount
}

// Label returns the name with the network appended when the network must be shown.
func (c Currency) Label() string {
	if c.ShowNetwork && c.Network != "" {
		return fmt.Sprintf("%s [%s]", c.Name, c.Network)
	}
	return c.Name
}

// Bounds returns the min/max hints. A zero value means no bound.
func (c Currency) Bounds() (lo, hi decimal.Decimal) {
	if c.Min != "" {
		lo, _ = decimal.NewFromString(c.Min)
	}
	if c.Max != "" {
		hi, _ = decimal.NewFromString(c.Max)
	}
	return lo, hi
}

// RateEntry is one direction of the static rate table shipped with the catalog.
type RateEntry struct {
	From string `yaml:"from"`
	To   string `yaml:"to"`
	Rate string `yaml:"rate"`
}

// file is the YAML layout of a catalog document
type file struct {
	Currencies []Currency  `yaml:"currencies"`
	Rates      []RateEntry `yaml:"rates"`
}

// Catalog is the read-only registry of known currencies.
type Catalog struct {
	currencies []Currency
	bySymbol   map[string]int
	rates      []RateEntry
}

// Default returns the catalog embedded in the binary.
func Default() (*Catalog, error) {
	return Parse(defaultCatalog)
}

// Load reads a catalog from a YAML file. An empty path yields the embedded catalog.
func Load(path string) (*Catalog, error) {
	if path == "" {
		return Default()
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read catalog: %w", err)
	}

	return Parse(data)
}

// Parse builds a catalog from a YAML document.
func Parse(data []byte) (*Catalog, error) {
	var doc file
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to unmarshal catalog: %w", err)
	}

	return New(doc.Currencies, doc.Rates)
}

// New builds a catalog from currency records and rate entries.
func New(currencies []Currency, rates []RateEntry) (*Catalog, error) {
	c := &Catalog{
		currencies: make([]Currency, 0, len(currencies)),
		bySymbol:   make(map[string]int, len(currencies)),
	}

	for _, cur := range currencies {
		cur.Symbol = strings.ToUpper(strings.TrimSpace(cur.Symbol))
		if cur.Symbol == "" {
			return nil, fmt.Errorf("currency %q has no symbol", cur.Name)
		}
		if _, exists := c.bySymbol[cur.Symbol]; exists {
			return nil, fmt.Errorf("duplicate currency symbol %s", cur.Symbol)
		}
		if cur.Name == "" {
			cur.Name = cur.Symbol
		}
		c.bySymbol[cur.Symbol] = len(c.currencies)
		c.currencies = append(c.currencies, cur)
	}

	for _, r := range rates {
		r.From = strings.ToUpper(r.From)
		r.To = strings.ToUpper(r.To)
		if !c.Has(r.From) || !c.Has(r.To) {
			return nil, fmt.Errorf("rate %s/%s: %w", r.From, r.To, ErrUnknownCurrency)
		}
		c.rates = append(c.rates, r)
	}

	return c, nil
}

// All returns every currency in catalog order.
func (c *Catalog) All() []Currency {
	out := make([]Currency, len(c.currencies))
	copy(out, c.currencies)
	return out
}

// Get returns the currency with the given symbol (case-insensitive).
func (c *Catalog) Get(symbol string) (Currency, error) {
	i, ok := c.bySymbol[strings.ToUpper(strings.TrimSpace(symbol))]
	if !ok {
		return Currency{}, fmt.Errorf("%w: %s", ErrUnknownCurrency, symbol)
	}
	return c.currencies[i], nil
}

// Has reports whether the symbol is listed.
func (c *Catalog) Has(symbol string) bool {
	_, ok := c.bySymbol[strings.ToUpper(symbol)]
	return ok
}

// Rates returns the rate entries shipped with the catalog.
func (c *Catalog) Rates() []RateEntry {
	out := make([]RateEntry, len(c.rates))
	copy(out, c.rates)
	return out
}

// Len returns the number of listed currencies.
func (c *Catalog) Len() int {
	return len(c.currencies)
}
