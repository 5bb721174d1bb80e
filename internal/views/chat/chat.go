// Package chat implements the assistant chat section: a transcript with
// markdown-rendered replies, an input line, and a typing indicator while a
// reply is pending.
package chat

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"

	"github.com/medibuddy/tui/internal/client"
	"github.com/medibuddy/tui/internal/theme"
)

const (
	roleUser      = "you"
	roleAssistant = "medibuddy"

	wrapWidth     = 76
	maxTranscript = 100
)

// FallbackMsg is returned when the HTTP chat fallback resolves (used when
// the live channel is down).
type FallbackMsg struct {
	Answer *client.ChatAnswer
	Err    error
}

// Message is one transcript entry.
type Message struct {
	Role    string
	Text    string
	Sources []string
}

// Model holds the chat section state.
type Model struct {
	Input      textinput.Model
	Transcript []Message
	Typing     bool
	Err        string

	renderer *glamour.TermRenderer
}

// New creates the chat section model.
func New() Model {
	ti := textinput.New()
	ti.Placeholder = "Ask about drugs, coverage, pricing…"
	ti.CharLimit = 256
	ti.Focus()

	// Markdown rendering is best-effort; a nil renderer falls back to
	// plain text.
	r, _ := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(wrapWidth),
	)
	return Model{Input: ti, renderer: r}
}

// Update feeds keys to the input field.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	var cmd tea.Cmd
	m.Input, cmd = m.Input.Update(msg)
	return m, cmd
}

// AddUser appends the user's outbound message and shows the typing
// indicator until a reply lands.
func (m *Model) AddUser(text string) {
	m.append(Message{Role: roleUser, Text: text})
	m.Typing = true
	m.Err = ""
}

// AddAssistant appends a reply and hides the typing indicator.
func (m *Model) AddAssistant(a client.ChatAnswer) {
	m.append(Message{Role: roleAssistant, Text: a.Response, Sources: a.Sources})
	m.Typing = false
}

func (m *Model) append(msg Message) {
	m.Transcript = append(m.Transcript, msg)
	if len(m.Transcript) > maxTranscript {
		m.Transcript = m.Transcript[len(m.Transcript)-maxTranscript:]
	}
}

// View renders the transcript and input line.
func (m Model) View() string {
	var lines []string
	lines = append(lines, lipgloss.NewStyle().Bold(true).Foreground(theme.ColorBright).Render("Chat"))

	for _, msg := range m.Transcript {
		lines = append(lines, m.renderMessage(msg))
	}

	if m.Typing {
		lines = append(lines, lipgloss.NewStyle().Foreground(theme.ColorDimmed).Render("  medibuddy is typing…"))
	}
	if m.Err != "" {
		lines = append(lines, lipgloss.NewStyle().Foreground(theme.ColorDanger).Render("  "+m.Err))
	}

	lines = append(lines, "  "+m.Input.View())
	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func (m Model) renderMessage(msg Message) string {
	if msg.Role == roleUser {
		label := lipgloss.NewStyle().Bold(true).Foreground(theme.ColorAccent).Render("you ")
		return "  " + label + lipgloss.NewStyle().Foreground(theme.ColorBright).Render(msg.Text)
	}

	body := msg.Text
	if m.renderer != nil {
		if out, err := m.renderer.Render(msg.Text); err == nil {
			body = strings.TrimRight(out, "\n")
		}
	}
	label := lipgloss.NewStyle().Bold(true).Foreground(theme.ColorHealthy).Render("  medibuddy")
	out := label + "\n" + body
	if len(msg.Sources) > 0 {
		out += "\n" + lipgloss.NewStyle().Foreground(theme.ColorDimmed).
			Render("  sources: "+strings.Join(msg.Sources, ", "))
	}
	return out
}
