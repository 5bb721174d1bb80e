// Package theme provides the Lip Gloss color palette and reusable styles
// for the MediBuddy TUI. It is a leaf package with no internal imports
// to avoid import cycles.
package theme

import "github.com/charmbracelet/lipgloss"

// Severity colors, shared by the feed, toasts, and interaction results.
var (
	ColorCritical = lipgloss.Color("#dc2626")
	ColorWarning  = lipgloss.Color("#d97706")
	ColorInfo     = lipgloss.Color("#2563eb")
	ColorLow      = lipgloss.Color("#6b7280")
)

// Formulary tier colors (tier 0-1 cheap, 4-5 specialty).
var (
	ColorTierLow  = lipgloss.Color("#22c55e")
	ColorTierMid  = lipgloss.Color("#d97706")
	ColorTierHigh = lipgloss.Color("#dc2626")
)

// UI chrome colors.
var (
	ColorBorder  = lipgloss.Color("#4b5563")
	ColorDimmed  = lipgloss.Color("#6b7280")
	ColorBright  = lipgloss.Color("#f9fafb")
	ColorInk     = lipgloss.Color("#111827")
	ColorHealthy = lipgloss.Color("#22c55e")
	ColorDanger  = lipgloss.Color("#dc2626")
	ColorAccent  = lipgloss.Color("#06b6d4")
)

// Theme is a resolved style set for one color scheme.
type Theme struct {
	Header   lipgloss.Style
	Dimmed   lipgloss.Style
	Text     lipgloss.Style
	Accent   lipgloss.Style
	Error    lipgloss.Style
	Selected lipgloss.Style
}

// Dark is the default scheme.
func Dark() Theme {
	return Theme{
		Header:   lipgloss.NewStyle().Bold(true).Foreground(ColorBright),
		Dimmed:   lipgloss.NewStyle().Foreground(ColorDimmed),
		Text:     lipgloss.NewStyle().Foreground(ColorBright),
		Accent:   lipgloss.NewStyle().Foreground(ColorAccent),
		Error:    lipgloss.NewStyle().Foreground(ColorDanger),
		Selected: lipgloss.NewStyle().Bold(true).Foreground(ColorAccent),
	}
}

// Light inverts the text colors for light terminals.
func Light() Theme {
	return Theme{
		Header:   lipgloss.NewStyle().Bold(true).Foreground(ColorInk),
		Dimmed:   lipgloss.NewStyle().Foreground(lipgloss.Color("#9ca3af")),
		Text:     lipgloss.NewStyle().Foreground(ColorInk),
		Accent:   lipgloss.NewStyle().Foreground(lipgloss.Color("#0e7490")),
		Error:    lipgloss.NewStyle().Foreground(ColorDanger),
		Selected: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#0e7490")),
	}
}

// ForName maps a stored theme preference to a style set.
func ForName(name string) Theme {
	if name == "light" {
		return Light()
	}
	return Dark()
}

// SeverityColor returns the color for a 0-10 importance class name as
// produced by the router ("critical", "warning", "info", "low").
func SeverityColor(class string) lipgloss.Color {
	switch class {
	case "critical":
		return ColorCritical
	case "warning":
		return ColorWarning
	case "info":
		return ColorInfo
	default:
		return ColorLow
	}
}

// SeverityGlyph returns the feed marker for a severity class.
func SeverityGlyph(class string) string {
	switch class {
	case "critical":
		return "✗"
	case "warning":
		return "▲"
	case "info":
		return "●"
	default:
		return "·"
	}
}

// InteractionColor maps backend interaction severities to colors.
func InteractionColor(severity string) lipgloss.Color {
	switch severity {
	case "Major":
		return ColorCritical
	case "Moderate":
		return ColorWarning
	case "Minor":
		return ColorInfo
	default:
		return ColorLow
	}
}

// TierColor returns the color for a formulary tier.
func TierColor(tier int) lipgloss.Color {
	switch {
	case tier <= 1:
		return ColorTierLow
	case tier <= 3:
		return ColorTierMid
	default:
		return ColorTierHigh
	}
}
