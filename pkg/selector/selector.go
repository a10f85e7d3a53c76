package selector

import (
	"strings"

	"go.uber.org/zap"

	"exchange-form/pkg/catalog"
)

// Variant is the styling axis of a selector. It carries no behavior.
type Variant string

const (
	Send    Variant = "send"
	Receive Variant = "receive"
)

// Groups is the catalog split the way the dropdown lists it.
type Groups struct {
	Popular []catalog.Currency
	Others  []catalog.Currency
}

// Len returns the number of listed currencies.
func (g Groups) Len() int {
	return len(g.Popular) + len(g.Others)
}

// All returns popular currencies followed by the others.
func (g Groups) All() []catalog.Currency {
	out := make([]catalog.Currency, 0, g.Len())
	out = append(out, g.Popular...)
	return append(out, g.Others...)
}

// Filter groups currencies, keeping those whose name or symbol contains term
// case-insensitively. An empty term keeps everything.
func Filter(currencies []catalog.Currency, term string) Groups {
	term = strings.ToLower(strings.TrimSpace(term))

	var g Groups
	for _, c := range currencies {
		if term != "" &&
			!strings.Contains(strings.ToLower(c.Name), term) &&
			!strings.Contains(strings.ToLower(c.Symbol), term) {
			continue
		}

		if c.Popular {
			g.Popular = append(g.Popular, c)
		} else {
			g.Others = append(g.Others, c)
		}
	}
	return g
}

// Config wires one selector. ID must be unique per bus.
type Config struct {
	ID       string
	Variant  Variant
	Catalog  *catalog.Catalog
	Bus      *Bus
	OnChange func(catalog.Currency)
	Logger   *zap.Logger
}

// Selector is a filterable, grouped currency dropdown.
type Selector struct {
	cfg     Config
	open    bool
	term    string
	cursor  int
	release func()
}

// New creates a closed selector.
func New(cfg Config) *Selector {
	if cfg.Logger == nil {
		cfg.Logger = zap.NewNop()
	}
	if cfg.Bus == nil {
		cfg.Bus = NewBus()
	}
	if cfg.Variant == "" {
		cfg.Variant = Send
	}
	return &Selector{cfg: cfg}
}

// ID returns the selector's owner id on the bus.
func (s *Selector) ID() string { return s.cfg.ID }

// Variant returns the configured styling variant.
func (s *Selector) Variant() Variant { return s.cfg.Variant }

// IsOpen reports whether the dropdown is shown.
func (s *Selector) IsOpen() bool { return s.open }

// Term returns the current search term.
func (s *Selector) Term() string { return s.term }

// Open shows the dropdown and starts listening for outside interactions.
func (s *Selector) Open() {
	if s.open {
		return
	}
	s.open = true
	s.cursor = 0
	s.release = s.cfg.Bus.Subscribe(s.onInteraction)
}

// Close hides the dropdown, clears the search and releases the subscription.
func (s *Selector) Close() {
	if !s.open {
		return
	}
	s.open = false
	s.term = ""
	s.cursor = 0
	s.unsubscribe()
}

// Toggle flips between open and closed.
func (s *Selector) Toggle() {
	if s.open {
		s.Close()
		return
	}
	s.Open()
}

// Trigger returns the func an external label calls to open this selector.
func (s *Selector) Trigger() func() {
	return s.Open
}

// Teardown releases every resource held by the selector.
func (s *Selector) Teardown() {
	s.open = false
	s.unsubscribe()
}

func (s *Selector) unsubscribe() {
	if s.release != nil {
		s.release()
		s.release = nil
	}
}

func (s *Selector) onInteraction(ev Interaction) {
	if ev.Owner == s.cfg.ID && ev.Part != PartNone {
		return
	}
	s.Close()
}

// Search updates the search term and resets the cursor.
func (s *Selector) Search(term string) {
	s.term = term
	s.cursor = 0
}

// Visible returns the grouped currencies matching the current term.
func (s *Selector) Visible() Groups {
	return Filter(s.cfg.Catalog.All(), s.term)
}

// Move shifts the cursor by delta within the visible list, clamped to its ends.
func (s *Selector) Move(delta int) {
	n := s.Visible().Len()
	s.cursor += delta
	if s.cursor >= n {
		s.cursor = n - 1
	}
	if s.cursor < 0 {
		s.cursor = 0
	}
}

// Cursor returns the index of the highlighted entry in Visible().All().
func (s *Selector) Cursor() int { return s.cursor }

// Highlighted returns the currency under the cursor.
func (s *Selector) Highlighted() (catalog.Currency, bool) {
	all := s.Visible().All()
	if s.cursor < 0 || s.cursor >= len(all) {
		return catalog.Currency{}, false
	}
	return all[s.cursor], true
}

// Select picks c. Inactive currencies are refused and leave the dropdown
// open; an active one closes it and is reported to OnChange exactly once.
func (s *Selector) Select(c catalog.Currency) bool {
	if !c.Active {
		s.cfg.Logger.Debug("inactive currency not selectable",
			zap.String("selector", s.cfg.ID),
			zap.String("symbol", c.Symbol))
		return false
	}

	s.Close()
	if s.cfg.OnChange != nil {
		s.cfg.OnChange(c)
	}
	return true
}

// SelectHighlighted selects the currency under the cursor.
func (s *Selector) SelectHighlighted() bool {
	c, ok := s.Highlighted()
	if !ok {
		return false
	}
	return s.Select(c)
}
