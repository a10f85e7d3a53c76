package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"exchange-form/pkg/catalog"
	"exchange-form/pkg/form"
	"exchange-form/pkg/selector"
	"exchange-form/pkg/validate"
)

var (
	containerStyle = lipgloss.NewStyle().
			Padding(1, 2).
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("63"))

	titleStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("63"))
	labelStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Width(16)
	focusStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("212"))
	mutedStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	errorStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
	validStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	warnStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("214"))
	sendStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("39"))
	receiveStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	dropdownStyle = lipgloss.NewStyle().
			Border(lipgloss.NormalBorder()).
			BorderForeground(lipgloss.Color("240")).
			Padding(0, 1)
)

// View renders the form.
func (m *Model) View() string {
	s := m.ctrl.State()
	sum := m.ctrl.Summary()

	var b strings.Builder
	b.WriteString(titleStyle.Render("Exchange"))
	b.WriteString("\n\n")

	b.WriteString(m.row(FieldFromAmount, "You send", placeholder(s.FromAmount, "0")))
	b.WriteString(m.row(FieldFromCurrency, "", m.currencyButton(m.fromSel, s.FromCurrency)))
	if m.fromSel.IsOpen() {
		b.WriteString(renderDropdown(m.fromSel, s.FromCurrency))
	}
	if sum.FromUSD != "" {
		b.WriteString(mutedStyle.Render("≈ "+sum.FromUSD) + "\n")
	}

	if sum.RateLine != "" {
		b.WriteString("\n" + mutedStyle.Render(sum.RateLine) + "  " + mutedStyle.Render("ctrl+r swap") + "\n\n")
	}

	b.WriteString(m.row(FieldToAmount, "You get", placeholder(s.ToAmount, "0")))
	b.WriteString(m.row(FieldToCurrency, "", m.currencyButton(m.toSel, s.ToCurrency)))
	if m.toSel.IsOpen() {
		b.WriteString(renderDropdown(m.toSel, s.ToCurrency))
	}
	if sum.ToUSD != "" {
		b.WriteString(mutedStyle.Render("≈ "+sum.ToUSD) + "\n")
	}
	b.WriteString("\n")

	b.WriteString(m.row(FieldAddress, "Address", placeholder(s.DestinationAddress, "recipient "+s.ToCurrency.Symbol+" address")+fieldMark(s.DestinationAddress != "", s.Fields.Address)))
	if s.Fields.AddressFormat == validate.FormatInvalid {
		b.WriteString(warnStyle.Render(fmt.Sprintf("  does not look like a %s address", s.ToCurrency.Network)) + "\n")
	}

	tagLabel := s.Fields.TagLabel
	if !s.Fields.TagRequired {
		tagLabel += " (optional)"
	}
	b.WriteString(m.row(FieldTag, tagLabel, placeholder(s.DestinationTag, "")+fieldMark(s.Fields.TagRequired, s.Fields.Tag)))

	b.WriteString(m.row(FieldOrderType, "Rate", orderTypeToggle(s.OrderType)+mutedStyle.Render("  fee "+sum.Fee)))
	b.WriteString("\n")

	button := "[ Exchange ]"
	if !s.IsValid {
		button = mutedStyle.Render(button)
	}
	b.WriteString(m.row(FieldSubmit, "", button))

	for _, w := range sum.Warnings {
		b.WriteString(warnStyle.Render("! "+w) + "\n")
	}
	if m.status != "" {
		b.WriteString("\n" + errorStyle.Render(m.status) + "\n")
	}

	b.WriteString("\n" + mutedStyle.Render("tab move · enter open/confirm · f2/f3 pick currency · ctrl+v paste · esc quit"))
	return containerStyle.Render(b.String())
}

func (m *Model) row(f Field, label, value string) string {
	cursor := "  "
	if m.focus == f {
		cursor = focusStyle.Render("> ")
	}
	return cursor + labelStyle.Render(label) + value + "\n"
}

func (m *Model) currencyButton(sel *selector.Selector, c catalog.Currency) string {
	style := sendStyle
	if sel.Variant() == selector.Receive {
		style = receiveStyle
	}
	arrow := "▾"
	if sel.IsOpen() {
		arrow = "▴"
	}
	return style.Render(fmt.Sprintf("%s %s %s", c.Symbol, mutedStyle.Render(c.Label()), arrow))
}

func renderDropdown(sel *selector.Selector, current catalog.Currency) string {
	groups := sel.Visible()

	var b strings.Builder
	b.WriteString("search: " + sel.Term() + "_\n")
	if groups.Len() == 0 {
		b.WriteString(mutedStyle.Render("no currencies found"))
		return dropdownStyle.Render(b.String()) + "\n"
	}

	i := 0
	write := func(title string, list []catalog.Currency) {
		if len(list) == 0 {
			return
		}
		b.WriteString(mutedStyle.Render(title) + "\n")
		for _, c := range list {
			line := fmt.Sprintf("%-5s %s", c.Symbol, c.Label())
			switch {
			case !c.Active:
				line = mutedStyle.Render(line + " (unavailable)")
			case c.Symbol == current.Symbol:
				line = validStyle.Render(line + " ✓")
			}
			if i == sel.Cursor() {
				line = focusStyle.Render("› ") + line
			} else {
				line = "  " + line
			}
			b.WriteString(line + "\n")
			i++
		}
	}
	write("Popular currencies", groups.Popular)
	write("All currencies", groups.Others)

	return dropdownStyle.Render(strings.TrimRight(b.String(), "\n")) + "\n"
}

func orderTypeToggle(o form.OrderType) string {
	fixed, float := "fixed", "float"
	if o == form.Fixed {
		fixed = focusStyle.Render("[fixed]")
	} else {
		float = focusStyle.Render("[float]")
	}
	return fixed + " / " + float
}

func placeholder(value, hint string) string {
	if value == "" {
		return mutedStyle.Render(hint)
	}
	return value
}

// fieldMark shows a check or cross once the field matters.
func fieldMark(show, ok bool) string {
	if !show {
		return ""
	}
	if ok {
		return validStyle.Render(" ✓")
	}
	return errorStyle.Render(" ✗")
}
