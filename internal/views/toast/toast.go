// Package toast renders transient notifications layered above the active
// section. Each toast expires on its own clock; a tick prunes the stack.
package toast

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/medibuddy/tui/internal/theme"
)

const (
	lifetime     = 5 * time.Second
	maxVisible   = 3
	tickInterval = time.Second
)

// TickMsg drives expiry.
type TickMsg struct{}

// Toast is one transient notification.
type Toast struct {
	Text     string
	Severity string
	Until    time.Time
}

// Model holds the active toast stack.
type Model struct {
	Toasts []Toast
	Width  int
}

// New creates an empty toast model.
func New() Model {
	return Model{}
}

// Push adds a notification and returns the expiry tick command. The caller
// always schedules it; redundant ticks are harmless and Prune is cheap.
func (m *Model) Push(text, severity string) tea.Cmd {
	m.Toasts = append(m.Toasts, Toast{Text: text, Severity: severity, Until: time.Now().Add(lifetime)})
	if len(m.Toasts) > maxVisible {
		m.Toasts = m.Toasts[len(m.Toasts)-maxVisible:]
	}
	return Tick()
}

// Tick schedules the next expiry check.
func Tick() tea.Cmd {
	return tea.Tick(tickInterval, func(time.Time) tea.Msg { return TickMsg{} })
}

// Prune drops expired toasts and reports whether any remain (meaning the
// caller should keep ticking).
func (m *Model) Prune() bool {
	now := time.Now()
	kept := m.Toasts[:0]
	for _, t := range m.Toasts {
		if t.Until.After(now) {
			kept = append(kept, t)
		}
	}
	m.Toasts = kept
	return len(m.Toasts) > 0
}

// View renders the toast stack, newest last. Empty when nothing is active.
func (m Model) View() string {
	if len(m.Toasts) == 0 {
		return ""
	}
	var lines []string
	for _, t := range m.Toasts {
		style := lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(theme.SeverityColor(t.Severity)).
			Padding(0, 1)
		glyph := lipgloss.NewStyle().
			Foreground(theme.SeverityColor(t.Severity)).
			Render(theme.SeverityGlyph(t.Severity))
		lines = append(lines, style.Render(glyph+" "+t.Text))
	}
	return lipgloss.JoinVertical(lipgloss.Right, lines...)
}
