// Package interactions implements the drug-drug interaction checker. Input
// is a comma-separated drug list submitted with enter; the backend needs at
// least two drugs, which is validated before any request is issued.
package interactions

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/medibuddy/tui/internal/client"
	"github.com/medibuddy/tui/internal/theme"
)

// ReportMsg is returned when an interaction check resolves.
type ReportMsg struct {
	Report *client.InteractionReport
	Err    error
}

// Model holds the interactions section state.
type Model struct {
	Input   textinput.Model
	Report  *client.InteractionReport
	Err     string
	Loading bool
}

// New creates the interactions section model.
func New() Model {
	ti := textinput.New()
	ti.Placeholder = "warfarin, amiodarone, …  then enter"
	ti.CharLimit = 128
	ti.Focus()
	return Model{Input: ti}
}

// Update feeds keys to the input field.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	var cmd tea.Cmd
	m.Input, cmd = m.Input.Update(msg)
	return m, cmd
}

// Drugs parses the comma-separated input into trimmed, non-empty names.
func (m Model) Drugs() []string {
	parts := strings.Split(m.Input.Value(), ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if t := strings.TrimSpace(p); t != "" {
			out = append(out, t)
		}
	}
	return out
}

// Validate returns an inline message when submission is not possible yet.
func (m Model) Validate() string {
	if len(m.Drugs()) < 2 {
		return "Enter at least two drugs, separated by commas"
	}
	return ""
}

// SetReport installs a resolved report.
func (m *Model) SetReport(r *client.InteractionReport) {
	m.Report = r
	m.Err = ""
	m.Loading = false
}

// View renders the section.
func (m Model) View() string {
	var lines []string
	lines = append(lines, lipgloss.NewStyle().Bold(true).Foreground(theme.ColorBright).Render("Interaction check"))
	lines = append(lines, "  "+m.Input.View())

	switch {
	case m.Err != "":
		lines = append(lines, lipgloss.NewStyle().Foreground(theme.ColorDanger).Render("  "+m.Err))
	case m.Loading:
		lines = append(lines, lipgloss.NewStyle().Foreground(theme.ColorDimmed).Render("  Checking…"))
	}

	if m.Report != nil {
		summary := lipgloss.NewStyle().Foreground(theme.ColorDimmed).Render("  " + m.Report.Summary)
		if m.Report.HasMajorInteraction {
			summary += lipgloss.NewStyle().Foreground(theme.ColorCritical).Render("  ⚠ major interaction")
		}
		lines = append(lines, summary)
		for _, ix := range m.Report.Interactions {
			lines = append(lines, m.renderInteraction(ix))
		}
		if len(m.Report.Interactions) == 0 {
			lines = append(lines, lipgloss.NewStyle().Foreground(theme.ColorHealthy).Render("  No interactions found"))
		}
	}

	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func (m Model) renderInteraction(ix client.Interaction) string {
	sev := lipgloss.NewStyle().Foreground(theme.InteractionColor(ix.Severity)).Render(ix.Severity)
	pair := lipgloss.NewStyle().Foreground(theme.ColorBright).Render(ix.DrugA + " + " + ix.DrugB)
	desc := lipgloss.NewStyle().Foreground(theme.ColorDimmed).Render("  " + ix.ClinicalEffect)
	return "  " + sev + "  " + pair + desc
}
