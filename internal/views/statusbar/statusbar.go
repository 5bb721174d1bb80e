// Package statusbar renders the top bar: connection indicator, active
// section, region, and unread update count.
package statusbar

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"

	"github.com/medibuddy/tui/internal/theme"
)

// Model holds the status bar state.
type Model struct {
	Connected  bool
	Section    string
	Region     string
	RegionName string
	Unread     int
	Width      int
}

// New creates a status bar model.
func New() Model {
	return Model{}
}

// View renders the status bar.
func (m Model) View() string {
	width := m.Width
	if width < 40 {
		width = 40
	}

	var connStr string
	if m.Connected {
		connStr = lipgloss.NewStyle().Foreground(theme.ColorHealthy).Render("● Connected")
	} else {
		connStr = lipgloss.NewStyle().Foreground(theme.ColorDanger).Render("○ Reconnecting…")
	}

	section := lipgloss.NewStyle().Bold(true).Foreground(theme.ColorBright).Render(m.Section)

	region := m.Region
	if m.RegionName != "" {
		region = fmt.Sprintf("%s (%s)", m.Region, m.RegionName)
	}
	regionStr := lipgloss.NewStyle().Foreground(theme.ColorAccent).Render("⚑ " + region)

	unreadStr := ""
	if m.Unread > 0 {
		unreadStr = lipgloss.NewStyle().Foreground(theme.ColorWarning).Render(fmt.Sprintf("✉ %d updates", m.Unread))
	}

	sep := lipgloss.NewStyle().Foreground(theme.ColorBorder).Render(" | ")
	content := connStr + sep + section + sep + regionStr
	if unreadStr != "" {
		content += sep + unreadStr
	}

	return lipgloss.NewStyle().
		Width(width).
		Padding(0, 1).
		BorderStyle(lipgloss.DoubleBorder()).
		BorderForeground(theme.ColorBorder).
		Render(content)
}
