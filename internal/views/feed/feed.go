// Package feed renders the dashboard: the live update feed plus a summary
// of the backend's real-time engine. The feed is a capped ring; history
// beyond the cap scrolls off.
package feed

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/medibuddy/tui/internal/client"
	"github.com/medibuddy/tui/internal/theme"
)

const maxEntries = 200

// Entry is one feed line.
type Entry struct {
	Time     time.Time
	Text     string
	Severity string // router severity class name
}

// StatusLoadedMsg is returned after fetching /api/status.
type StatusLoadedMsg struct {
	Status *client.SystemStatus
	Err    error
}

// RecentLoadedMsg is returned after fetching /api/updates/recent, used to
// seed the feed at startup.
type RecentLoadedMsg struct {
	Updates *client.RecentUpdates
	Err     error
}

// Model holds the dashboard state.
type Model struct {
	Entries []Entry
	Status  *client.SystemStatus
	Err     string
	Width   int
	Height  int
}

// New creates an empty dashboard model.
func New() Model {
	return Model{}
}

// Add appends a feed entry and caps the buffer.
func (m *Model) Add(text, severity string) {
	m.Entries = append(m.Entries, Entry{Time: time.Now(), Text: text, Severity: severity})
	if len(m.Entries) > maxEntries {
		m.Entries = m.Entries[len(m.Entries)-maxEntries:]
	}
}

// Seed prepends historical updates fetched at startup. Entries already in
// the feed (live pushes that raced the fetch) stay at the tail.
func (m *Model) Seed(updates []client.FactUpdate, classify func(int) string) {
	seeded := make([]Entry, 0, len(updates))
	// Backend returns newest first; the feed renders oldest first.
	for i := len(updates) - 1; i >= 0; i-- {
		u := updates[i]
		text := fmt.Sprintf("%s: %s → %s", u.EntityID, u.Field, u.ValueString())
		seeded = append(seeded, Entry{Time: time.Now(), Text: text, Severity: classify(u.Importance)})
	}
	m.Entries = append(seeded, m.Entries...)
	if len(m.Entries) > maxEntries {
		m.Entries = m.Entries[len(m.Entries)-maxEntries:]
	}
}

// View renders the engine summary and the feed.
func (m Model) View() string {
	var lines []string

	lines = append(lines, lipgloss.NewStyle().Bold(true).Foreground(theme.ColorBright).Render("Live updates"))
	if m.Err != "" {
		lines = append(lines, lipgloss.NewStyle().Foreground(theme.ColorDanger).Render("  "+m.Err))
	}
	lines = append(lines, m.renderStatusRow())

	visible := m.Entries
	max := m.Height - 4
	if max > 0 && len(visible) > max {
		visible = visible[len(visible)-max:]
	}
	if len(visible) == 0 {
		lines = append(lines, lipgloss.NewStyle().Foreground(theme.ColorDimmed).Render("  No updates yet"))
	}
	for _, e := range visible {
		glyph := lipgloss.NewStyle().
			Foreground(theme.SeverityColor(e.Severity)).
			Render(theme.SeverityGlyph(e.Severity))
		ts := lipgloss.NewStyle().Foreground(theme.ColorDimmed).Render(e.Time.Format("15:04:05"))
		lines = append(lines, fmt.Sprintf("  %s %s %s", ts, glyph, e.Text))
	}

	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func (m Model) renderStatusRow() string {
	if m.Status == nil {
		return lipgloss.NewStyle().Foreground(theme.ColorDimmed).Render("  engine: …")
	}
	s := m.Status
	parts := []string{
		fmt.Sprintf("engine: %s", s.RealtimeEngine.Status),
		fmt.Sprintf("%d drugs", s.Database.Drugs),
		fmt.Sprintf("%d payers", s.Database.Payers),
		fmt.Sprintf("%d facts", s.RealtimeEngine.KnowledgeGraph.TotalFacts),
		fmt.Sprintf("%d sources", s.RealtimeEngine.Firehose.SourcesActive),
	}
	return lipgloss.NewStyle().Foreground(theme.ColorDimmed).Render("  " + strings.Join(parts, "  "))
}
