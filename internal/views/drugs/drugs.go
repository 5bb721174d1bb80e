// Package drugs implements the drug lookup section: a debounced search
// input, a result list, and a detail flyout for the selected drug.
package drugs

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/medibuddy/tui/internal/client"
	"github.com/medibuddy/tui/internal/theme"
)

const panelWidth = 72

// ResultsMsg is returned when a search request resolves. Gen ties the
// response to the query generation that issued it.
type ResultsMsg struct {
	Gen   uint64
	Items []client.DrugSummary
	Err   error
}

// DetailMsg is returned when a drug detail fetch resolves.
type DetailMsg struct {
	Detail *client.DrugDetail
	Err    error
}

// Model holds the drug section state.
type Model struct {
	Input    textinput.Model
	Results  []client.DrugSummary
	Selected int
	Detail   *client.DrugDetail
	Err      string
	Loading  bool
	Width    int
}

// New creates the drug section model.
func New() Model {
	ti := textinput.New()
	ti.Placeholder = "Search drugs (brand or generic)…"
	ti.CharLimit = 64
	ti.Focus()
	return Model{Input: ti}
}

// Update handles keys while the section is visible. Navigation keys drive
// the result list; everything else feeds the search input.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.String() {
		case "up":
			if m.Selected > 0 {
				m.Selected--
			}
			return m, nil
		case "down":
			if m.Selected < len(m.Results)-1 {
				m.Selected++
			}
			return m, nil
		case "esc":
			if m.Detail != nil {
				m.Detail = nil
				return m, nil
			}
		}
	}
	var cmd tea.Cmd
	m.Input, cmd = m.Input.Update(msg)
	return m, cmd
}

// Query returns the current search text.
func (m Model) Query() string {
	return m.Input.Value()
}

// SelectedDrug returns the highlighted result, or nil.
func (m Model) SelectedDrug() *client.DrugSummary {
	if m.Selected < 0 || m.Selected >= len(m.Results) {
		return nil
	}
	return &m.Results[m.Selected]
}

// SetResults installs a resolved search result set.
func (m *Model) SetResults(items []client.DrugSummary) {
	m.Results = items
	m.Selected = 0
	m.Detail = nil
	m.Err = ""
	m.Loading = false
}

// Clear empties results (input too short or deleted).
func (m *Model) Clear() {
	m.Results = nil
	m.Selected = 0
	m.Detail = nil
	m.Err = ""
	m.Loading = false
}

// View renders the section.
func (m Model) View() string {
	var lines []string
	lines = append(lines, lipgloss.NewStyle().Bold(true).Foreground(theme.ColorBright).Render("Drug lookup"))
	lines = append(lines, "  "+m.Input.View())

	switch {
	case m.Err != "":
		lines = append(lines, lipgloss.NewStyle().Foreground(theme.ColorDanger).Render("  "+m.Err))
	case m.Loading:
		lines = append(lines, lipgloss.NewStyle().Foreground(theme.ColorDimmed).Render("  Searching…"))
	case len(m.Results) == 0:
		lines = append(lines, lipgloss.NewStyle().Foreground(theme.ColorDimmed).Render("  No results"))
	}

	for i, d := range m.Results {
		prefix := "  "
		style := lipgloss.NewStyle().Foreground(theme.ColorBright)
		if i == m.Selected {
			prefix = "> "
			style = style.Bold(true).Foreground(theme.ColorAccent)
		}
		name := fmt.Sprintf("%s (%s)", d.BrandName, d.GenericName)
		meta := lipgloss.NewStyle().Foreground(theme.ColorDimmed).Render("  " + d.DrugClass)
		warn := ""
		if d.HasBlackBox {
			warn = lipgloss.NewStyle().Foreground(theme.ColorCritical).Render(" ■ black box")
		}
		lines = append(lines, prefix+style.Render(name)+meta+warn)
	}

	if m.Detail != nil {
		lines = append(lines, m.renderDetail())
	}

	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func (m Model) renderDetail() string {
	d := m.Detail.Drug
	var b strings.Builder

	title := lipgloss.NewStyle().Bold(true).Foreground(theme.ColorBright).
		Render(fmt.Sprintf("%s — %s", d.BrandName, d.GenericName))
	b.WriteString(title + "\n")
	b.WriteString(strings.Repeat("─", panelWidth-4) + "\n")

	writeRow(&b, "Manufacturer", d.Manufacturer)
	writeRow(&b, "Class", d.DrugClass)
	writeRow(&b, "Route", d.Route)
	writeRow(&b, "Forms", strings.Join(d.DosageForms, ", "))
	writeRow(&b, "Strengths", strings.Join(d.Strengths, ", "))
	writeRow(&b, "Schedule", d.Schedule)
	writeRow(&b, "Pregnancy", d.PregnancyCategory)
	if d.RequiresPriorAuth {
		writeRow(&b, "Prior auth", "required")
	}
	if d.RemsRequired {
		writeRow(&b, "REMS", "required")
	}

	if len(d.Warnings) > 0 {
		b.WriteString(lipgloss.NewStyle().Bold(true).Foreground(theme.ColorDimmed).Render("Warnings") + "\n")
		for _, w := range d.Warnings {
			color := theme.ColorWarning
			if w.Type == "Black Box" {
				color = theme.ColorCritical
			}
			b.WriteString("  " + lipgloss.NewStyle().Foreground(color).Render(w.Type+": "+w.Title) + "\n")
		}
	}

	if len(m.Detail.Alternatives) > 0 {
		alts := make([]string, 0, len(m.Detail.Alternatives))
		for _, a := range m.Detail.Alternatives {
			alts = append(alts, a.BrandName)
		}
		writeRow(&b, "Alternatives", strings.Join(alts, ", "))
	}

	return lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(theme.ColorBorder).
		Padding(0, 1).
		Width(panelWidth).
		Render(strings.TrimRight(b.String(), "\n"))
}

func writeRow(b *strings.Builder, label, value string) {
	if value == "" {
		return
	}
	l := lipgloss.NewStyle().Foreground(theme.ColorDimmed).Width(14).Render(label)
	b.WriteString(l + lipgloss.NewStyle().Foreground(theme.ColorBright).Render(value) + "\n")
}
