package tui

import (
	"context"
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"exchange-form/pkg/catalog"
	"exchange-form/pkg/form"
	"exchange-form/pkg/rates"
	"exchange-form/pkg/selector"
)

// Field is the focusable part of the form.
type Field int

const (
	FieldFromAmount Field = iota
	FieldFromCurrency
	FieldToAmount
	FieldToCurrency
	FieldAddress
	FieldTag
	FieldOrderType
	FieldSubmit
	fieldCount
)

// rateMsg carries the result of an asynchronous rate lookup back to the loop.
type rateMsg struct {
	from string
	to   string
	rate rates.Rate
	err  error
}

// Model is the interactive exchange form.
type Model struct {
	ctrl     *form.Controller
	provider rates.Provider
	timeout  time.Duration
	logger   *zap.Logger

	bus      *selector.Bus
	fromSel  *selector.Selector
	toSel    *selector.Selector
	triggers map[string]func()

	focus     Field
	fetching  string
	status    string
	submitted bool

	terminalWidth  int
	terminalHeight int
}

// New creates the form model. provider must be the provider the controller
// was built with; it answers pending lookups off the event loop.
func New(ctrl *form.Controller, provider rates.Provider, timeout time.Duration, logger *zap.Logger) *Model {
	if logger == nil {
		logger = zap.NewNop()
	}
	if timeout <= 0 {
		timeout = 10 * time.Second
	}

	m := &Model{
		ctrl:     ctrl,
		provider: provider,
		timeout:  timeout,
		logger:   logger,
		bus:      selector.NewBus(),
	}

	m.fromSel = selector.New(selector.Config{
		ID:      "from",
		Variant: selector.Send,
		Catalog: ctrl.Catalog(),
		Bus:     m.bus,
		Logger:  logger,
		OnChange: func(c catalog.Currency) {
			m.ctrl.SelectFromCurrency(c)
		},
	})
	m.toSel = selector.New(selector.Config{
		ID:      "to",
		Variant: selector.Receive,
		Catalog: ctrl.Catalog(),
		Bus:     m.bus,
		Logger:  logger,
		OnChange: func(c catalog.Currency) {
			m.ctrl.SelectToCurrency(c)
		},
	})

	// Field labels open their selector directly
	m.triggers = map[string]func(){
		"f2": m.fromSel.Trigger(),
		"f3": m.toSel.Trigger(),
	}
	return m
}

// Submitted reports whether the user confirmed a valid form.
func (m *Model) Submitted() bool { return m.submitted }

// State returns the controller's current snapshot.
func (m *Model) State() form.State { return m.ctrl.State() }

// Init starts the lookup of the initial rate when the provider is asynchronous.
func (m *Model) Init() tea.Cmd {
	return m.fetchPending()
}

// Update handles one event to completion.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.terminalWidth = msg.Width
		m.terminalHeight = msg.Height
		return m, nil

	case rateMsg:
		m.fetching = ""
		if msg.err != nil {
			// Retried on the next key press
			m.ctrl.RateFailed(msg.from, msg.to, msg.err)
			m.status = fmt.Sprintf("Rate unavailable: %v", msg.err)
			return m, nil
		}
		m.ctrl.ApplyRate(msg.rate)
		return m, m.fetchPending()

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			m.teardown()
			return m, tea.Quit
		}
		if open := m.openSelector(); open != nil {
			m.handleSelectorKey(open, msg)
			return m, m.fetchPending()
		}
		if quit := m.handleKey(msg); quit {
			m.teardown()
			return m, tea.Quit
		}
		return m, m.fetchPending()
	}
	return m, nil
}

func (m *Model) teardown() {
	m.fromSel.Teardown()
	m.toSel.Teardown()
}

func (m *Model) openSelector() *selector.Selector {
	switch {
	case m.fromSel.IsOpen():
		return m.fromSel
	case m.toSel.IsOpen():
		return m.toSel
	default:
		return nil
	}
}

// fetchPending returns a command resolving the pending rate, at most one per pair.
func (m *Model) fetchPending() tea.Cmd {
	from, to, ok := m.ctrl.PendingRate()
	if !ok {
		return nil
	}
	key := from + "/" + to
	if m.fetching == key {
		return nil
	}
	m.fetching = key

	provider, timeout := m.provider, m.timeout
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		r, err := provider.Rate(ctx, from, to)
		return rateMsg{from: from, to: to, rate: r, err: err}
	}
}

func (m *Model) handleSelectorKey(sel *selector.Selector, msg tea.KeyMsg) {
	switch key := msg.String(); key {
	case "esc":
		sel.Close()
	case "up", "ctrl+p":
		m.bus.Publish(selector.Interaction{Owner: sel.ID(), Part: selector.PartList})
		sel.Move(-1)
	case "down", "ctrl+n":
		m.bus.Publish(selector.Interaction{Owner: sel.ID(), Part: selector.PartList})
		sel.Move(1)
	case "enter":
		c, ok := sel.Highlighted()
		if !ok {
			return
		}
		if !sel.Select(c) {
			m.status = fmt.Sprintf("%s is not available right now", c.Symbol)
		} else {
			m.status = ""
		}
	case "backspace":
		m.bus.Publish(selector.Interaction{Owner: sel.ID(), Part: selector.PartSearch})
		if term := []rune(sel.Term()); len(term) > 0 {
			sel.Search(string(term[:len(term)-1]))
		}
	case "tab", "shift+tab":
		// Focus leaves the dropdown
		m.bus.Publish(selector.Outside())
		m.moveFocus(key)
	default:
		if msg.Type == tea.KeyRunes {
			m.bus.Publish(selector.Interaction{Owner: sel.ID(), Part: selector.PartSearch})
			sel.Search(sel.Term() + string(msg.Runes))
		}
	}
}

func (m *Model) moveFocus(key string) {
	if key == "shift+tab" || key == "up" {
		m.focus = (m.focus + fieldCount - 1) % fieldCount
		return
	}
	m.focus = (m.focus + 1) % fieldCount
}

// handleKey processes a key with no dropdown open. It reports whether to quit.
func (m *Model) handleKey(msg tea.KeyMsg) bool {
	key := msg.String()
	if trigger, ok := m.triggers[key]; ok {
		m.bus.Publish(selector.Outside())
		trigger()
		return false
	}

	switch key {
	case "esc":
		return true
	case "tab", "shift+tab", "down", "up":
		m.moveFocus(key)
		return false
	case "ctrl+r":
		m.ctrl.Swap()
		return false
	}

	s := m.ctrl.State()
	switch m.focus {
	case FieldFromAmount:
		m.editText(msg, s.FromAmount, m.ctrl.EditFromAmount)
	case FieldToAmount:
		m.editText(msg, s.ToAmount, m.ctrl.EditToAmount)
	case FieldFromCurrency, FieldToCurrency:
		if key == "enter" || key == " " || key == "space" {
			sel := m.fromSel
			if m.focus == FieldToCurrency {
				sel = m.toSel
			}
			m.bus.Publish(selector.Interaction{Owner: sel.ID(), Part: selector.PartTrigger})
			sel.Toggle()
		}
	case FieldAddress:
		switch key {
		case "ctrl+v":
			if _, ok := m.ctrl.PasteAddress(); !ok {
				m.status = "Clipboard is not available"
			}
		case "ctrl+y":
			if m.ctrl.CopyAddress() {
				m.status = "Copied address to clipboard"
			}
		case "ctrl+u":
			m.ctrl.ClearAddress()
		default:
			m.editText(msg, s.DestinationAddress, m.ctrl.EditDestinationAddress)
		}
	case FieldTag:
		switch key {
		case "ctrl+v":
			if _, ok := m.ctrl.PasteTag(); !ok {
				m.status = "Clipboard is not available"
			}
		case "ctrl+u":
			m.ctrl.ClearTag()
		default:
			m.editText(msg, s.DestinationTag, m.ctrl.EditDestinationTag)
		}
	case FieldOrderType:
		if key == "left" || key == "right" || key == " " || key == "space" {
			next := form.Fixed
			if s.OrderType == form.Fixed {
				next = form.Float
			}
			m.ctrl.SetOrderType(next)
		}
	case FieldSubmit:
		if key == "enter" {
			return m.submit()
		}
	}
	return false
}

// editText appends typed runes to current or removes the last one, and
// hands the result to edit. Rejected edits leave the field as it was.
func (m *Model) editText(msg tea.KeyMsg, current string, edit func(string) (form.State, bool)) {
	switch {
	case msg.Type == tea.KeyBackspace:
		if r := []rune(current); len(r) > 0 {
			edit(string(r[:len(r)-1]))
		}
	case msg.Type == tea.KeyRunes:
		edit(current + string(msg.Runes))
	}
}

func (m *Model) submit() bool {
	s := m.ctrl.State()
	if !s.IsValid {
		sum := m.ctrl.Summary()
		if len(sum.Problems) > 0 {
			m.status = sum.Problems[0]
		}
		return false
	}

	m.logger.Info("exchange confirmed",
		zap.String("from", s.FromCurrency.Symbol),
		zap.String("to", s.ToCurrency.Symbol),
		zap.String("amount", s.FromAmount),
		zap.String("order_type", string(s.OrderType)))
	m.submitted = true
	return true
}
