package tui

import (
	"context"
	"errors"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"exchange-form/pkg/catalog"
	"exchange-form/pkg/form"
	"exchange-form/pkg/rates"
)

const btcAddress = "1A1zP1eP5QGefi2DMPTfTL5SLmv7DivfNa"

type slowRates struct {
	table *rates.Table
	err   error
}

func (s *slowRates) Rate(_ context.Context, from, to string) (rates.Rate, error) {
	if s.err != nil {
		return rates.Rate{}, s.err
	}
	return s.table.Lookup(from, to), nil
}

func newModel(t *testing.T, wrap func(*rates.Table) rates.Provider) *Model {
	t.Helper()

	cat, err := catalog.Default()
	require.NoError(t, err)
	table, err := rates.FromCatalog(cat)
	require.NoError(t, err)

	var provider rates.Provider = table
	if wrap != nil {
		provider = wrap(table)
	}

	logger := zaptest.NewLogger(t)
	ctrl, err := form.New(form.Options{
		Catalog: cat,
		Rates:   provider,
		From:    "BTC",
		To:      "ETH",
		Logger:  logger,
	})
	require.NoError(t, err)

	return New(ctrl, provider, time.Second, logger)
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func key(k tea.KeyType) tea.KeyMsg {
	return tea.KeyMsg{Type: k}
}

func send(m *Model, msgs ...tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	for _, msg := range msgs {
		_, cmd = m.Update(msg)
	}
	return cmd
}

func TestTypingAmountSynchronizes(t *testing.T) {
	m := newModel(t, nil)
	assert.Nil(t, m.Init())

	send(m, runes("2"), runes("x"), runes("."), runes("5"))
	s := m.State()
	assert.Equal(t, "2.5", s.FromAmount)
	assert.Equal(t, "38.00000000", s.ToAmount)

	send(m, key(tea.KeyBackspace), key(tea.KeyBackspace))
	assert.Equal(t, "2", m.State().FromAmount)
	assert.Equal(t, "30.40000000", m.State().ToAmount)
}

func TestSwapShortcut(t *testing.T) {
	m := newModel(t, nil)
	send(m, runes("2"), key(tea.KeyCtrlR))

	s := m.State()
	assert.Equal(t, "ETH", s.FromCurrency.Symbol)
	assert.Equal(t, "30.40000000", s.FromAmount)
	assert.Equal(t, "2", s.ToAmount)
}

func TestSelectorSearchAndPick(t *testing.T) {
	m := newModel(t, nil)

	// Focus the destination currency and open it
	send(m, key(tea.KeyTab), key(tea.KeyTab), key(tea.KeyTab), key(tea.KeyEnter))
	require.True(t, m.toSel.IsOpen())
	assert.Equal(t, 1, m.bus.Listeners())

	send(m, runes("mon"), key(tea.KeyEnter))
	assert.False(t, m.toSel.IsOpen())
	assert.Zero(t, m.bus.Listeners())
	assert.Equal(t, "XMR", m.State().ToCurrency.Symbol)
}

func TestSelectorInactiveStaysOpen(t *testing.T) {
	m := newModel(t, nil)

	send(m, key(tea.KeyF3), runes("avax"), key(tea.KeyEnter))
	assert.True(t, m.toSel.IsOpen())
	assert.Equal(t, "ETH", m.State().ToCurrency.Symbol)
	assert.Contains(t, m.status, "AVAX")

	send(m, key(tea.KeyEsc))
	assert.False(t, m.toSel.IsOpen())
}

func TestSelectorClosesWhenFocusLeaves(t *testing.T) {
	m := newModel(t, nil)

	send(m, key(tea.KeyF2))
	require.True(t, m.fromSel.IsOpen())

	send(m, key(tea.KeyDown), runes("e"))
	assert.True(t, m.fromSel.IsOpen())

	send(m, key(tea.KeyTab))
	assert.False(t, m.fromSel.IsOpen())
	assert.Zero(t, m.bus.Listeners())
}

func TestSubmitRequiresValidForm(t *testing.T) {
	m := newModel(t, nil)
	send(m, runes("2"))

	m.focus = FieldSubmit
	cmd := send(m, key(tea.KeyEnter))
	assert.Nil(t, cmd)
	assert.False(t, m.Submitted())
	assert.Contains(t, m.status, "Destination address")

	m.focus = FieldAddress
	send(m, runes(btcAddress))
	m.focus = FieldSubmit
	cmd = send(m, key(tea.KeyEnter))
	require.NotNil(t, cmd)
	assert.True(t, m.Submitted())
}

func TestOrderTypeToggle(t *testing.T) {
	m := newModel(t, nil)
	m.focus = FieldOrderType

	send(m, key(tea.KeyRight))
	assert.Equal(t, form.Fixed, m.State().OrderType)
	send(m, key(tea.KeyLeft))
	assert.Equal(t, form.Float, m.State().OrderType)
}

func TestAsyncRateLoop(t *testing.T) {
	m := newModel(t, func(table *rates.Table) rates.Provider {
		return &slowRates{table: table}
	})

	cmd := m.Init()
	require.NotNil(t, cmd)
	assert.True(t, m.State().RatePending)

	// A second request for the same pair is not issued while one is in flight
	assert.Nil(t, send(m, runes("2")))
	assert.Empty(t, m.State().ToAmount)

	send(m, cmd())
	assert.False(t, m.State().RatePending)
	assert.Equal(t, "30.40000000", m.State().ToAmount)
}

func TestAsyncRateFailure(t *testing.T) {
	m := newModel(t, func(table *rates.Table) rates.Provider {
		return &slowRates{table: table, err: errors.New("timeout")}
	})

	cmd := m.Init()
	require.NotNil(t, cmd)
	send(m, cmd())
	assert.True(t, m.State().RatePending)
	assert.Contains(t, m.status, "Rate unavailable")
}

func TestViewRenders(t *testing.T) {
	m := newModel(t, nil)
	send(m, runes("2"), key(tea.KeyF2))

	out := m.View()
	assert.Contains(t, out, "1 BTC ≈ 15.200000 ETH")
	assert.Contains(t, out, "Popular currencies")
	assert.Contains(t, out, "Avalanche (C-Chain) [C-CHAIN] (unavailable)")
}
