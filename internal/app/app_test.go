package app

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/medibuddy/tui/internal/client"
	"github.com/medibuddy/tui/internal/query"
	"github.com/medibuddy/tui/internal/session"
	"github.com/medibuddy/tui/internal/views/drugs"
)

// newTestModel builds a model with immediate (non-debounced) coordinators
// whose output is captured in the returned slice instead of a running
// program.
func newTestModel() (Model, *[]tea.Msg) {
	var sent []tea.Msg
	send := func(m tea.Msg) { sent = append(sent, m) }
	immediate := func(f func()) { f() }

	store := session.NewStore(session.State{
		Region: client.DefaultRegion,
		Theme:  "dark",
	}, func(region, theme string) {})

	m := New(Deps{
		HTTP:       client.NewHTTPClient("http://127.0.0.1:1"),
		WS:         client.NewWSClient("ws://127.0.0.1:1/ws"),
		Store:      store,
		DrugCoord:  query.NewWithDebouncer(query.SurfaceDrugs, immediate, send),
		PriceCoord: query.NewWithDebouncer(query.SurfacePricing, immediate, send),
		SpecCoord:  query.NewWithDebouncer(query.SurfaceSpecialty, immediate, send),
	})
	m.width = 100
	m.height = 30
	return m, &sent
}

func countFires(sent []tea.Msg, surface query.Surface) int {
	n := 0
	for _, msg := range sent {
		if f, ok := msg.(query.FireMsg); ok && f.Surface == surface {
			n++
		}
	}
	return n
}

func TestSectionCyclingWraps(t *testing.T) {
	m, _ := newTestModel()

	if got := m.store.Get().Section; got != session.SectionDashboard {
		t.Fatalf("initial section = %v, want dashboard", got)
	}
	for i := 0; i < len(sectionOrder); i++ {
		next, _ := m.Update(tea.KeyMsg{Type: tea.KeyTab})
		m = next.(Model)
	}
	if got := m.store.Get().Section; got != session.SectionDashboard {
		t.Errorf("after full cycle section = %v, want dashboard", got)
	}

	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyShiftTab})
	m = next.(Model)
	if got := m.store.Get().Section; got != session.SectionChat {
		t.Errorf("shift+tab from dashboard = %v, want chat", got)
	}
}

func TestRefreshReissuesPricingQuery(t *testing.T) {
	m, sent := newTestModel()
	m.store.SetSection(session.SectionPricing)
	m.priceCoord.OnInput("lipitor")
	before := countFires(*sent, query.SurfacePricing)

	next, _ := m.Update(RefreshSectionMsg{})
	m = next.(Model)

	if got := countFires(*sent, query.SurfacePricing) - before; got != 1 {
		t.Errorf("refresh fired %d pricing queries, want exactly 1", got)
	}
	_ = m
}

func TestRefreshNoopForFormSections(t *testing.T) {
	for _, sec := range []session.Section{
		session.SectionPriorAuth,
		session.SectionInteractions,
		session.SectionChat,
	} {
		m, sent := newTestModel()
		m.store.SetSection(sec)
		m.priceCoord.OnInput("lipitor")
		before := len(*sent)

		next, cmd := m.Update(RefreshSectionMsg{})
		m = next.(Model)

		if cmd != nil {
			t.Errorf("%v: refresh returned a command, want none", sec)
		}
		if len(*sent) != before {
			t.Errorf("%v: refresh issued %d messages, want none", sec, len(*sent)-before)
		}
	}
}

func TestRefreshNoopForEmptyStandingQuery(t *testing.T) {
	m, sent := newTestModel()
	m.store.SetSection(session.SectionDrugs)
	before := len(*sent)

	next, _ := m.Update(RefreshSectionMsg{})
	_ = next

	if len(*sent) != before {
		t.Errorf("refresh with no query issued %d messages, want none", len(*sent)-before)
	}
}

func TestFactPushUpdatesFeedAndUnread(t *testing.T) {
	m, _ := newTestModel()

	next, _ := m.Update(client.PushFactMsg{Fact: client.FactUpdate{
		EntityID:   "metformin",
		Field:      "max_dose",
		Value:      2000,
		Importance: 8,
		Source:     "FDA",
	}})
	m = next.(Model)

	if got := m.store.Get().Unread; got != 1 {
		t.Errorf("unread = %d, want 1", got)
	}
	if len(m.dashboard.Entries) != 1 {
		t.Fatalf("feed entries = %d, want 1", len(m.dashboard.Entries))
	}
	if !strings.Contains(m.dashboard.Entries[0].Text, "metformin") {
		t.Errorf("feed entry %q should mention the entity", m.dashboard.Entries[0].Text)
	}
	if len(m.toasts.Toasts) != 1 {
		t.Errorf("importance 8 should raise a toast, got %d", len(m.toasts.Toasts))
	}
}

func TestMarkReadClearsUnread(t *testing.T) {
	m, _ := newTestModel()
	m.store.IncrementUnread()
	m.store.IncrementUnread()

	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyCtrlU})
	m = next.(Model)

	if got := m.store.Get().Unread; got != 0 {
		t.Errorf("unread after mark read = %d, want 0", got)
	}
}

func TestStaleDrugResultsDropped(t *testing.T) {
	m, _ := newTestModel()

	m.drugCoord.OnInput("amio") // gen 1
	m.drugCoord.OnInput("amiodarone")

	results := []client.DrugSummary{{BrandName: "Cordarone", GenericName: "amiodarone"}}

	next, _ := m.Update(drugs.ResultsMsg{Gen: 1, Items: results})
	m = next.(Model)
	if len(m.drugs.Results) != 0 {
		t.Error("stale generation results should be discarded")
	}

	next, _ = m.Update(drugs.ResultsMsg{Gen: 2, Items: results})
	m = next.(Model)
	if len(m.drugs.Results) != 1 {
		t.Error("current generation results should render")
	}
}

func TestConnectionStatusFlow(t *testing.T) {
	m, _ := newTestModel()

	next, cmd := m.Update(client.ChannelUpMsg{})
	m = next.(Model)
	if m.store.Get().Connection != session.Connected {
		t.Error("channel up should mark the session connected")
	}
	if cmd == nil {
		t.Error("channel up should start the read loop")
	}
	if !strings.Contains(m.View(), "Connected") {
		t.Error("status bar should show Connected")
	}

	next, cmd = m.Update(client.ChannelDownMsg{})
	m = next.(Model)
	if m.store.Get().Connection != session.Disconnected {
		t.Error("channel down should mark the session disconnected")
	}
	if cmd == nil {
		t.Error("channel down should schedule a reconnect")
	}
	if !strings.Contains(m.View(), "Reconnecting") {
		t.Error("status bar should show Reconnecting")
	}
}

func TestViewShowsActiveSection(t *testing.T) {
	m, _ := newTestModel()
	m.store.SetSection(session.SectionInteractions)
	m.syncBar()

	v := m.View()
	if !strings.Contains(v, "Interactions") {
		t.Errorf("view should name the active section, got:\n%s", v)
	}
}
