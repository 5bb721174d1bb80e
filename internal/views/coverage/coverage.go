// Package coverage implements the formulary coverage section. The drug
// input is enter-submitted, not debounced: coverage lookups fan out across
// payers and are issued deliberately. The last submitted drug is the
// section's standing query for region-change refreshes.
package coverage

import (
	"fmt"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/medibuddy/tui/internal/client"
	"github.com/medibuddy/tui/internal/theme"
)

// ResultsMsg is returned when a coverage lookup resolves.
type ResultsMsg struct {
	Drug    string
	Entries []client.CoverageEntry
	Err     error
}

// PayersMsg delivers the payer list used for the filter.
type PayersMsg struct {
	Payers []client.Payer
	Err    error
}

// Model holds the coverage section state.
type Model struct {
	Input     textinput.Model
	Payers    []client.Payer
	PayerIdx  int // -1 means "all payers"
	Entries   []client.CoverageEntry
	LastQuery string
	Err       string
	Loading   bool
}

// New creates the coverage section model.
func New() Model {
	ti := textinput.New()
	ti.Placeholder = "Drug name, then enter…"
	ti.CharLimit = 64
	ti.Focus()
	return Model{Input: ti, PayerIdx: -1}
}

// Update feeds keys to the input field. Enter submission and payer cycling
// are handled by the app, which owns the transport.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	var cmd tea.Cmd
	m.Input, cmd = m.Input.Update(msg)
	return m, cmd
}

// Query returns the typed drug name.
func (m Model) Query() string {
	return m.Input.Value()
}

// PayerFilter returns the selected payer name, or "" for all.
func (m Model) PayerFilter() string {
	if m.PayerIdx < 0 || m.PayerIdx >= len(m.Payers) {
		return ""
	}
	return m.Payers[m.PayerIdx].Name
}

// CyclePayer advances the payer filter, wrapping through "all".
func (m *Model) CyclePayer() {
	if len(m.Payers) == 0 {
		return
	}
	m.PayerIdx++
	if m.PayerIdx >= len(m.Payers) {
		m.PayerIdx = -1
	}
}

// SetEntries installs a resolved lookup.
func (m *Model) SetEntries(drug string, entries []client.CoverageEntry) {
	m.LastQuery = drug
	m.Entries = entries
	m.Err = ""
	m.Loading = false
}

// View renders the section.
func (m Model) View() string {
	var lines []string
	lines = append(lines, lipgloss.NewStyle().Bold(true).Foreground(theme.ColorBright).Render("Coverage"))
	lines = append(lines, "  "+m.Input.View())

	filter := "all payers"
	if f := m.PayerFilter(); f != "" {
		filter = f
	}
	lines = append(lines, lipgloss.NewStyle().Foreground(theme.ColorDimmed).
		Render("  filter: "+filter+"  (ctrl+p to cycle)"))

	switch {
	case m.Err != "":
		lines = append(lines, lipgloss.NewStyle().Foreground(theme.ColorDanger).Render("  "+m.Err))
	case m.Loading:
		lines = append(lines, lipgloss.NewStyle().Foreground(theme.ColorDimmed).Render("  Looking up coverage…"))
	case len(m.Entries) == 0 && m.LastQuery != "":
		lines = append(lines, lipgloss.NewStyle().Foreground(theme.ColorDimmed).Render("  No coverage found for "+m.LastQuery))
	}

	for _, e := range m.Entries {
		lines = append(lines, m.renderEntry(e))
	}

	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func (m Model) renderEntry(e client.CoverageEntry) string {
	tier := lipgloss.NewStyle().Foreground(theme.TierColor(e.Coverage.Tier)).
		Render(fmt.Sprintf("Tier %d", e.Coverage.Tier))
	payer := lipgloss.NewStyle().Foreground(theme.ColorBright).
		Render(fmt.Sprintf("%s — %s", e.Payer.Name, e.Payer.PlanName))

	extras := ""
	if e.Coverage.Copay != nil {
		extras += fmt.Sprintf("  copay $%.0f", *e.Coverage.Copay)
	}
	if e.Coverage.PriorAuthRequired {
		extras += "  " + lipgloss.NewStyle().Foreground(theme.ColorWarning).Render("PA required")
	}
	if e.Coverage.StepTherapyRequired {
		extras += "  " + lipgloss.NewStyle().Foreground(theme.ColorWarning).Render("step therapy")
	}
	if e.Coverage.QuantityLimit != "" {
		extras += "  QL " + e.Coverage.QuantityLimit
	}

	return "  " + tier + "  " + payer + lipgloss.NewStyle().Foreground(theme.ColorDimmed).Render(extras)
}
