// Package router classifies inbound push events and decides which UI
// subsystems they touch. It is pure: Route inspects an event plus a small
// snapshot of the current UI state and returns the effects to apply, so the
// dispatch rules can be tested without a terminal or a connection.
package router

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/medibuddy/tui/internal/client"
)

// Severity is the urgency class of a pushed change.
type Severity int

const (
	SeverityLow Severity = iota
	SeverityInfo
	SeverityWarning
	SeverityCritical
)

// toastThreshold is the importance at and above which a change also gets a
// transient toast, not just a feed entry.
const toastThreshold = 7

// Classify maps a 0-10 importance score onto a severity class. The mapping
// is total and monotonic: >=9 critical, 7-8 warning, 5-6 info, <5 low.
func Classify(importance int) Severity {
	switch {
	case importance >= 9:
		return SeverityCritical
	case importance >= 7:
		return SeverityWarning
	case importance >= 5:
		return SeverityInfo
	default:
		return SeverityLow
	}
}

// String returns the lowercase class name.
func (s Severity) String() string {
	switch s {
	case SeverityCritical:
		return "critical"
	case SeverityWarning:
		return "warning"
	case SeverityInfo:
		return "info"
	default:
		return "low"
	}
}

// FeedEntry is one line for the live update feed.
type FeedEntry struct {
	Text     string
	Severity Severity
}

// Toast is a transient notification.
type Toast struct {
	Text     string
	Severity Severity
}

// Snapshot carries the pieces of session state that routing decisions
// depend on.
type Snapshot struct {
	// PricingVisible is true when the pricing section is on screen.
	PricingVisible bool
	// PricingQuery is the pricing surface's current input text.
	PricingQuery string
}

// Effects is the result of routing one event. Zero value means the event
// was absorbed with no UI impact.
type Effects struct {
	Feed           *FeedEntry
	Toast          *Toast
	UnreadDelta    int
	ChatReply      *client.ChatAnswer
	RequeryPricing bool
}

// MatchesEntity reports whether a price update's entity loosely matches the
// query text: case-insensitive substring in either direction. The rule is
// deliberately loose; backend entity ids are not normalized drug names.
func MatchesEntity(query, entityID string) bool {
	q := strings.ToLower(strings.TrimSpace(query))
	e := strings.ToLower(strings.TrimSpace(entityID))
	if q == "" || e == "" {
		return false
	}
	return strings.Contains(q, e) || strings.Contains(e, q)
}

// Route dispatches one push event. Messages that are not push events (and
// push kinds this build does not know) produce zero Effects.
func Route(msg tea.Msg, snap Snapshot) Effects {
	switch msg := msg.(type) {
	case client.PushConnectedMsg:
		text := msg.Message
		if text == "" {
			text = "Connected to real-time intelligence engine"
		}
		return Effects{Feed: &FeedEntry{Text: text, Severity: SeverityInfo}}

	case client.PushFactMsg:
		return routeFact(msg.Fact)

	case client.PushChatMsg:
		answer := msg.Answer
		return Effects{ChatReply: &answer}

	case client.PushPriceMsg:
		// The match is evaluated on every price update regardless of
		// section; rendering only happens while pricing is visible.
		if !MatchesEntity(snap.PricingQuery, msg.Fact.EntityID) {
			return Effects{}
		}
		if !snap.PricingVisible {
			return Effects{}
		}
		return Effects{
			RequeryPricing: true,
			Toast: &Toast{
				Text:     fmt.Sprintf("Price update: %s %s = %s", msg.Fact.EntityID, msg.Fact.Field, msg.Fact.ValueString()),
				Severity: Classify(msg.Fact.Importance),
			},
		}
	}
	return Effects{}
}

func routeFact(f client.FactUpdate) Effects {
	sev := Classify(f.Importance)
	text := fmt.Sprintf("%s: %s → %s", f.EntityID, f.Field, f.ValueString())
	if f.Source != "" {
		text += " (" + f.Source + ")"
	}
	eff := Effects{
		Feed:        &FeedEntry{Text: text, Severity: sev},
		UnreadDelta: 1,
	}
	if f.Importance >= toastThreshold {
		eff.Toast = &Toast{Text: text, Severity: sev}
	}
	return eff
}
