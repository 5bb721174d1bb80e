// Package pricing implements the pricing section: a debounced drug input
// and a benchmark price table adjusted for the selected region.
package pricing

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/medibuddy/tui/internal/client"
	"github.com/medibuddy/tui/internal/theme"
)

// ResultMsg is returned when a pricing request resolves.
type ResultMsg struct {
	Gen    uint64
	Result *client.PricingResponse
	Err    error
}

// Model holds the pricing section state.
type Model struct {
	Input   textinput.Model
	Result  *client.PricingResponse
	Err     string
	Loading bool
}

// New creates the pricing section model.
func New() Model {
	ti := textinput.New()
	ti.Placeholder = "Drug name for pricing…"
	ti.CharLimit = 64
	ti.Focus()
	return Model{Input: ti}
}

// Update feeds keys to the input field.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	var cmd tea.Cmd
	m.Input, cmd = m.Input.Update(msg)
	return m, cmd
}

// Query returns the current input text.
func (m Model) Query() string {
	return m.Input.Value()
}

// SetResult installs a resolved pricing response.
func (m *Model) SetResult(r *client.PricingResponse) {
	m.Result = r
	m.Err = ""
	m.Loading = false
}

// Clear empties the table.
func (m *Model) Clear() {
	m.Result = nil
	m.Err = ""
	m.Loading = false
}

// View renders the section.
func (m Model) View() string {
	var lines []string
	lines = append(lines, lipgloss.NewStyle().Bold(true).Foreground(theme.ColorBright).Render("Pricing"))
	lines = append(lines, "  "+m.Input.View())

	switch {
	case m.Err != "":
		lines = append(lines, lipgloss.NewStyle().Foreground(theme.ColorDanger).Render("  "+m.Err))
	case m.Loading:
		lines = append(lines, lipgloss.NewStyle().Foreground(theme.ColorDimmed).Render("  Fetching prices…"))
	case m.Result == nil:
		lines = append(lines, lipgloss.NewStyle().Foreground(theme.ColorDimmed).Render("  Type a drug name to see benchmark prices"))
	default:
		lines = append(lines, m.renderTable())
	}

	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func (m Model) renderTable() string {
	r := m.Result
	var b strings.Builder

	symbol := "$"
	title := fmt.Sprintf("%s (%s)", r.DrugName, r.GenericName)
	if adj := r.Pricing.LocationAdjustment; adj != nil {
		symbol = adj.Symbol
		title += lipgloss.NewStyle().Foreground(theme.ColorDimmed).
			Render(fmt.Sprintf("  %s · ×%.2f · %s", adj.Name, adj.Multiplier, adj.Currency))
	}
	b.WriteString(lipgloss.NewStyle().Bold(true).Foreground(theme.ColorBright).Render(title) + "\n")

	writePrice(&b, "AWP", symbol, &r.Pricing.AWP)
	writePrice(&b, "WAC", symbol, &r.Pricing.WAC)
	writePrice(&b, "NADAC", symbol, r.Pricing.NADAC)
	writePrice(&b, "ASP", symbol, r.Pricing.ASP)
	writePrice(&b, "340B ceiling", symbol, r.Pricing.Price340B)
	writePrice(&b, "GoodRx low", symbol, r.Pricing.GoodRxLow)
	writePrice(&b, "Cost Plus", symbol, r.Pricing.CostPlusPrice)

	return lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(theme.ColorBorder).
		Padding(0, 1).
		Render(strings.TrimRight(b.String(), "\n"))
}

func writePrice(b *strings.Builder, label, symbol string, v *float64) {
	l := lipgloss.NewStyle().Foreground(theme.ColorDimmed).Width(14).Render(label)
	if v == nil {
		b.WriteString(l + lipgloss.NewStyle().Foreground(theme.ColorDimmed).Render("—") + "\n")
		return
	}
	b.WriteString(l + lipgloss.NewStyle().Foreground(theme.ColorBright).Render(fmt.Sprintf("%s%.2f", symbol, *v)) + "\n")
}
