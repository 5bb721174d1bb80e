// Package specialty implements the specialty pharmacy section: a debounced
// search over specialty-tier drugs.
package specialty

import (
	"fmt"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/medibuddy/tui/internal/client"
	"github.com/medibuddy/tui/internal/theme"
)

// ResultsMsg is returned when a specialty search resolves.
type ResultsMsg struct {
	Gen   uint64
	Items []client.DrugSummary
	Err   error
}

// Model holds the specialty section state.
type Model struct {
	Input   textinput.Model
	Results []client.DrugSummary
	Err     string
	Loading bool
}

// New creates the specialty section model.
func New() Model {
	ti := textinput.New()
	ti.Placeholder = "Search specialty drugs…"
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

// SetResults installs a resolved result set.
func (m *Model) SetResults(items []client.DrugSummary) {
	m.Results = items
	m.Err = ""
	m.Loading = false
}

// Clear empties results.
func (m *Model) Clear() {
	m.Results = nil
	m.Err = ""
	m.Loading = false
}

// View renders the section.
func (m Model) View() string {
	var lines []string
	lines = append(lines, lipgloss.NewStyle().Bold(true).Foreground(theme.ColorBright).Render("Specialty pharmacy"))
	lines = append(lines, "  "+m.Input.View())

	switch {
	case m.Err != "":
		lines = append(lines, lipgloss.NewStyle().Foreground(theme.ColorDanger).Render("  "+m.Err))
	case m.Loading:
		lines = append(lines, lipgloss.NewStyle().Foreground(theme.ColorDimmed).Render("  Searching…"))
	case len(m.Results) == 0:
		lines = append(lines, lipgloss.NewStyle().Foreground(theme.ColorDimmed).Render("  No specialty matches"))
	}

	for _, d := range m.Results {
		name := lipgloss.NewStyle().Foreground(theme.ColorBright).
			Render(fmt.Sprintf("%s (%s)", d.BrandName, d.GenericName))
		meta := lipgloss.NewStyle().Foreground(theme.ColorDimmed).Render("  " + d.DrugClass)
		rems := ""
		if d.HasBlackBox {
			rems = lipgloss.NewStyle().Foreground(theme.ColorCritical).Render(" ■ black box")
		}
		lines = append(lines, "  "+name+meta+rems)
	}

	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}
