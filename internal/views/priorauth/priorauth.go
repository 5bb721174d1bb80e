// Package priorauth implements the prior authorization section: a
// three-field form (drug, payer, diagnosis) that generates a PA request
// letter. All fields are required before submission.
package priorauth

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/medibuddy/tui/internal/client"
	"github.com/medibuddy/tui/internal/theme"
)

// ResultMsg is returned when form generation resolves.
type ResultMsg struct {
	Result *client.PriorAuthResult
	Err    error
}

const (
	fieldDrug = iota
	fieldPayer
	fieldDiagnosis
	fieldCount
)

var fieldLabels = [fieldCount]string{"Drug", "Payer", "Diagnosis"}

// Model holds the prior auth section state.
type Model struct {
	Fields  [fieldCount]textinput.Model
	Focus   int
	Result  *client.PriorAuthResult
	Err     string
	Loading bool
	Width   int
}

// New creates the prior auth section model.
func New() Model {
	var m Model
	placeholders := [fieldCount]string{"Ozempic", "Aetna Commercial", "Type 2 diabetes, A1C 9.2"}
	for i := range m.Fields {
		ti := textinput.New()
		ti.Placeholder = placeholders[i]
		ti.CharLimit = 96
		m.Fields[i] = ti
	}
	m.Fields[fieldDrug].Focus()
	return m
}

// Update cycles focus with up/down and feeds keys to the focused field.
// Tab is taken by global section switching.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.String() {
		case "down":
			m.setFocus((m.Focus + 1) % fieldCount)
			return m, nil
		case "up":
			m.setFocus((m.Focus + fieldCount - 1) % fieldCount)
			return m, nil
		}
	}
	var cmd tea.Cmd
	m.Fields[m.Focus], cmd = m.Fields[m.Focus].Update(msg)
	return m, cmd
}

func (m *Model) setFocus(i int) {
	m.Fields[m.Focus].Blur()
	m.Focus = i
	m.Fields[m.Focus].Focus()
}

// Request builds the submission payload from the form.
func (m Model) Request() client.PriorAuthRequest {
	return client.PriorAuthRequest{
		DrugName:  strings.TrimSpace(m.Fields[fieldDrug].Value()),
		PayerName: strings.TrimSpace(m.Fields[fieldPayer].Value()),
		Diagnosis: strings.TrimSpace(m.Fields[fieldDiagnosis].Value()),
	}
}

// Validate returns an inline message when a required field is empty.
func (m Model) Validate() string {
	req := m.Request()
	switch {
	case req.DrugName == "":
		return "Drug is required"
	case req.PayerName == "":
		return "Payer is required"
	case req.Diagnosis == "":
		return "Diagnosis is required"
	}
	return ""
}

// SetResult installs a generated form.
func (m *Model) SetResult(r *client.PriorAuthResult) {
	m.Result = r
	m.Err = ""
	m.Loading = false
}

// View renders the form and any generated letter.
func (m Model) View() string {
	var lines []string
	lines = append(lines, lipgloss.NewStyle().Bold(true).Foreground(theme.ColorBright).Render("Prior authorization"))

	for i := range m.Fields {
		label := lipgloss.NewStyle().Foreground(theme.ColorDimmed).Width(12).Render(fieldLabels[i])
		lines = append(lines, "  "+label+m.Fields[i].View())
	}
	lines = append(lines, lipgloss.NewStyle().Foreground(theme.ColorDimmed).Render("  ↑/↓: switch field  enter: generate"))

	switch {
	case m.Err != "":
		lines = append(lines, lipgloss.NewStyle().Foreground(theme.ColorDanger).Render("  "+m.Err))
	case m.Loading:
		lines = append(lines, lipgloss.NewStyle().Foreground(theme.ColorDimmed).Render("  Generating…"))
	}

	if m.Result != nil {
		form := lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(theme.ColorBorder).
			Padding(0, 1).
			Render(m.Result.Form)
		lines = append(lines, form)
	}

	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}
