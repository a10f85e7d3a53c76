package form

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"exchange-form/pkg/amount"
	"exchange-form/pkg/catalog"
	"exchange-form/pkg/clipboard"
	"exchange-form/pkg/rates"
	"exchange-form/pkg/validate"
)

// ErrInactiveCurrency is returned when a listed but disabled currency is requested by symbol.
var ErrInactiveCurrency = errors.New("currency is not active")

// Side names one of the two currency selections.
type Side int

const (
	From Side = iota
	To
)

func (s Side) String() string {
	if s == To {
		return "to"
	}
	return "from"
}

// Options configures a Controller.
type Options struct {
	Catalog   *catalog.Catalog
	Rates     rates.Provider
	Validator *validate.Validator    // nil uses the default tag policy
	Formats   validate.FormatChecker // nil disables the address format hint
	Clipboard clipboard.ReadWriter   // nil disables paste and copy
	From      string                 // Default source symbol
	To        string                 // Default destination symbol
	OrderType OrderType              // Defaults to Float
	Logger    *zap.Logger
}

// Controller owns the form state and applies every mutation atomically.
//
// A Controller is not safe for concurrent use. The goroutine that owns it
// must also feed back asynchronous rate results through ApplyRate.
type Controller struct {
	catalog   *catalog.Catalog
	provider  rates.Provider
	lookup    rates.Synchronous
	validator *validate.Validator
	formats   validate.FormatChecker
	clip      clipboard.ReadWriter
	logger    *zap.Logger
	onChange  func(State)

	state State
}

// New creates a controller with the default currencies and empty amounts.
func New(opts Options) (*Controller, error) {
	if opts.Catalog == nil {
		return nil, errors.New("form: catalog is required")
	}
	if opts.Rates == nil {
		return nil, errors.New("form: rate provider is required")
	}
	if opts.Validator == nil {
		opts.Validator = validate.New(nil)
	}
	if opts.OrderType == "" {
		opts.OrderType = Float
	}
	if !opts.OrderType.Valid() {
		return nil, fmt.Errorf("form: invalid order type %q", opts.OrderType)
	}
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}

	from, err := activeCurrency(opts.Catalog, opts.From)
	if err != nil {
		return nil, fmt.Errorf("form: default source: %w", err)
	}
	to, err := activeCurrency(opts.Catalog, opts.To)
	if err != nil {
		return nil, fmt.Errorf("form: default destination: %w", err)
	}

	session := uuid.NewString()
	c := &Controller{
		catalog:   opts.Catalog,
		provider:  opts.Rates,
		validator: opts.Validator,
		formats:   opts.Formats,
		clip:      opts.Clipboard,
		logger:    opts.Logger.With(zap.String("session", session)),
	}
	c.lookup, _ = opts.Rates.(rates.Synchronous)

	next := State{
		Session:      session,
		FromCurrency: from,
		ToCurrency:   to,
		OrderType:    opts.OrderType,
	}
	c.state = c.derive(c.rerate(next))

	c.logger.Debug("form session started",
		zap.String("from", from.Symbol),
		zap.String("to", to.Symbol),
		zap.Bool("rate_pending", c.state.RatePending))
	return c, nil
}

func activeCurrency(cat *catalog.Catalog, symbol string) (catalog.Currency, error) {
	cur, err := cat.Get(symbol)
	if err != nil {
		return catalog.Currency{}, err
	}
	if !cur.Active {
		return catalog.Currency{}, fmt.Errorf("%s: %w", cur.Symbol, ErrInactiveCurrency)
	}
	return cur, nil
}

// OnStateChange registers the callback fired after every accepted mutation.
func (c *Controller) OnStateChange(fn func(State)) {
	c.onChange = fn
}

// State returns the current snapshot.
func (c *Controller) State() State {
	return c.state
}

// Catalog returns the catalog the controller selects from.
func (c *Controller) Catalog() *catalog.Catalog {
	return c.catalog
}

// commit replaces the state with next after deriving validity, then notifies.
func (c *Controller) commit(next State) (State, bool) {
	c.state = c.derive(next)
	if c.onChange != nil {
		c.onChange(c.state)
	}
	return c.state, true
}

func (c *Controller) reject(reason string, fields ...zap.Field) (State, bool) {
	c.logger.Debug(reason, fields...)
	return c.state, false
}

// EditFromAmount sets the source amount and recomputes the destination amount.
func (c *Controller) EditFromAmount(raw string) (State, bool) {
	if !amount.IsEditable(raw) {
		return c.reject("from amount rejected", zap.String("raw", raw))
	}

	next := c.state
	next.FromAmount = raw
	next.ToAmount = c.convert(next, raw, From)
	return c.commit(next)
}

// EditToAmount sets the destination amount and recomputes the source amount.
func (c *Controller) EditToAmount(raw string) (State, bool) {
	if !amount.IsEditable(raw) {
		return c.reject("to amount rejected", zap.String("raw", raw))
	}

	next := c.state
	next.ToAmount = raw
	next.FromAmount = c.convert(next, raw, To)
	return c.commit(next)
}

// convert derives the counterpart of an amount typed on side. An empty
// input or an unresolved rate yields an empty counterpart.
func (c *Controller) convert(s State, raw string, side Side) string {
	if raw == "" || !s.ExchangeRate.IsSet() {
		return ""
	}
	v := amount.Parse(raw)
	if side == From {
		return amount.Format(s.ExchangeRate.Convert(v))
	}
	return amount.Format(s.ExchangeRate.Reverse(v))
}

// SelectFromCurrency changes the source currency.
func (c *Controller) SelectFromCurrency(cur catalog.Currency) (State, bool) {
	return c.selectCurrency(From, cur)
}

// SelectToCurrency changes the destination currency.
func (c *Controller) SelectToCurrency(cur catalog.Currency) (State, bool) {
	return c.selectCurrency(To, cur)
}

// SelectSymbol looks a symbol up in the catalog and selects it on side.
func (c *Controller) SelectSymbol(side Side, symbol string) (State, error) {
	cur, err := activeCurrency(c.catalog, symbol)
	if err != nil {
		return c.state, err
	}
	s, _ := c.selectCurrency(side, cur)
	return s, nil
}

func (c *Controller) selectCurrency(side Side, cur catalog.Currency) (State, bool) {
	if !cur.Active {
		return c.reject("inactive currency rejected",
			zap.Stringer("side", side),
			zap.String("symbol", cur.Symbol))
	}

	other := c.state.ToCurrency
	if side == To {
		other = c.state.FromCurrency
	}
	// Picking the counterpart's asset on this side means the user wants the roles reversed
	if strings.EqualFold(cur.Symbol, other.Symbol) {
		return c.Swap()
	}

	next := c.state
	if side == From {
		next.FromCurrency = cur
	} else {
		next.ToCurrency = cur
	}
	next = c.rerate(next)

	// The source amount is authoritative on a currency change
	if next.FromAmount != "" {
		next.ToAmount = c.convert(next, next.FromAmount, From)
	} else if next.ToAmount != "" && next.ExchangeRate.IsSet() {
		next.FromAmount = c.convert(next, next.ToAmount, To)
	}
	return c.commit(next)
}

// Swap exchanges the currencies and the amounts in one transition.
// Amounts are exchanged as-is, never recomputed.
func (c *Controller) Swap() (State, bool) {
	next := c.state
	next.FromCurrency, next.ToCurrency = c.state.ToCurrency, c.state.FromCurrency
	next.FromAmount, next.ToAmount = c.state.ToAmount, c.state.FromAmount
	next = c.rerate(next)
	return c.commit(next)
}

// rerate refreshes the rate for the pair in s. Synchronous providers answer
// immediately; otherwise the rate is left unset and marked pending.
func (c *Controller) rerate(s State) State {
	from, to := s.Pair()
	if c.lookup == nil {
		s.ExchangeRate = rates.Rate{}
		s.RatePending = true
		return s
	}

	r := c.lookup.Lookup(from, to)
	if r.Fallback {
		c.logger.Warn("no rate for pair, using 1:1 fallback",
			zap.String("from", from),
			zap.String("to", to))
	}
	s.ExchangeRate = r
	s.RatePending = false
	return s
}

// PendingRate returns the pair awaiting an asynchronous rate, if any.
func (c *Controller) PendingRate() (from, to string, ok bool) {
	if !c.state.RatePending {
		return "", "", false
	}
	from, to = c.state.Pair()
	return from, to, true
}

// ApplyRate feeds back an asynchronously resolved rate. Results for a pair
// that is no longer selected, or that nothing is waiting for, are discarded.
func (c *Controller) ApplyRate(r rates.Rate) (State, bool) {
	from, to, ok := c.PendingRate()
	if !ok || !strings.EqualFold(r.From, from) || !strings.EqualFold(r.To, to) {
		return c.reject("stale rate discarded",
			zap.String("from", r.From),
			zap.String("to", r.To))
	}
	if !r.IsSet() {
		return c.reject("unset rate discarded", zap.String("from", from), zap.String("to", to))
	}

	next := c.state
	next.ExchangeRate = r
	next.RatePending = false
	if next.FromAmount != "" {
		next.ToAmount = c.convert(next, next.FromAmount, From)
	} else if next.ToAmount != "" {
		next.FromAmount = c.convert(next, next.ToAmount, To)
	}

	c.logger.Debug("rate resolved",
		zap.String("from", from),
		zap.String("to", to),
		zap.Stringer("rate", r))
	return c.commit(next)
}

// RateFailed records a failed asynchronous lookup. The state is left as is
// so the lookup can be retried.
func (c *Controller) RateFailed(from, to string, err error) {
	c.logger.Warn("rate lookup failed",
		zap.String("from", from),
		zap.String("to", to),
		zap.Error(err))
}

// ResolvePending fetches the pending rate from the provider and applies it.
// It blocks for as long as the provider does.
func (c *Controller) ResolvePending(ctx context.Context) (State, error) {
	from, to, ok := c.PendingRate()
	if !ok {
		return c.state, rates.ErrNoPending
	}

	r, err := c.provider.Rate(ctx, from, to)
	if err != nil {
		c.RateFailed(from, to, err)
		return c.state, fmt.Errorf("resolve rate %s/%s: %w", from, to, err)
	}

	s, _ := c.ApplyRate(r)
	return s, nil
}

// EditDestinationAddress sets the destination address.
func (c *Controller) EditDestinationAddress(value string) (State, bool) {
	next := c.state
	next.DestinationAddress = value
	return c.commit(next)
}

// EditDestinationTag sets the destination tag or memo.
func (c *Controller) EditDestinationTag(value string) (State, bool) {
	next := c.state
	next.DestinationTag = value
	return c.commit(next)
}

// ClearAddress empties the destination address.
func (c *Controller) ClearAddress() (State, bool) {
	return c.EditDestinationAddress("")
}

// ClearTag empties the destination tag.
func (c *Controller) ClearTag() (State, bool) {
	return c.EditDestinationTag("")
}

// SetOrderType switches between fixed and float pricing.
func (c *Controller) SetOrderType(o OrderType) (State, bool) {
	if !o.Valid() {
		return c.reject("order type rejected", zap.String("order_type", string(o)))
	}

	next := c.state
	next.OrderType = o
	return c.commit(next)
}

// PasteAddress replaces the address with the clipboard text. A clipboard
// failure is logged and leaves the state unchanged.
func (c *Controller) PasteAddress() (State, bool) {
	text, ok := c.readClipboard()
	if !ok {
		return c.state, false
	}
	return c.EditDestinationAddress(text)
}

// PasteTag replaces the tag with the clipboard text.
func (c *Controller) PasteTag() (State, bool) {
	text, ok := c.readClipboard()
	if !ok {
		return c.state, false
	}
	return c.EditDestinationTag(text)
}

func (c *Controller) readClipboard() (string, bool) {
	if c.clip == nil {
		c.logger.Warn("clipboard not configured")
		return "", false
	}
	text, err := c.clip.ReadAll()
	if err != nil {
		c.logger.Warn("clipboard read failed", zap.Error(err))
		return "", false
	}
	return strings.TrimSpace(text), true
}

// CopyAddress writes the destination address to the clipboard.
func (c *Controller) CopyAddress() bool {
	if c.clip == nil || c.state.DestinationAddress == "" {
		return false
	}
	if err := c.clip.WriteAll(c.state.DestinationAddress); err != nil {
		c.logger.Warn("clipboard write failed", zap.Error(err))
		return false
	}
	return true
}

// derive recomputes the field flags and IsValid for s.
func (c *Controller) derive(s State) State {
	f := Fields{
		FromAmount:         amount.Positive(s.FromAmount),
		ToAmount:           amount.Positive(s.ToAmount),
		Address:            c.validator.ValidateAddress(s.DestinationAddress),
		TagRequired:        c.validator.TagRequired(s.ToCurrency),
		DistinctCurrencies: !strings.EqualFold(s.FromCurrency.Symbol, s.ToCurrency.Symbol),
		TagLabel:           validate.TagLabel(s.ToCurrency),
		FromInRange:        inRange(s.FromCurrency, s.FromAmount),
	}
	f.Tag = c.validator.ValidateTag(s.DestinationTag, f.TagRequired)
	if c.formats != nil {
		f.AddressFormat = c.formats.CheckFormat(s.DestinationAddress, s.ToCurrency)
	}

	s.Fields = f
	s.IsValid = f.FromAmount && f.ToAmount && f.Address && f.Tag && f.DistinctCurrencies
	return s
}

// inRange reports whether raw lies within the currency's min/max hints.
// An empty amount is in range.
func inRange(cur catalog.Currency, raw string) bool {
	if raw == "" {
		return true
	}
	v := amount.Parse(raw)
	lo, hi := cur.Bounds()
	if lo.IsPositive() && v.LessThan(lo) {
		return false
	}
	if hi.IsPositive() && v.GreaterThan(hi) {
		return false
	}
	return true
}
