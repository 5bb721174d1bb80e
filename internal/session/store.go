// Package session owns the process-wide UI session state. Every mutation
// goes through a named Store setter, giving one choke point for invariants
// (unread never negative) and for the side effects a mutation owns
// (preference persistence, section refresh).
package session

// Section identifies one major UI view; exactly one is visible at a time.
type Section int

const (
	SectionDashboard Section = iota
	SectionDrugs
	SectionPricing
	SectionCoverage
	SectionInteractions
	SectionPriorAuth
	SectionSpecialty
	SectionChat
)

var sectionNames = [...]string{
	"Dashboard", "Drugs", "Pricing", "Coverage",
	"Interactions", "Prior Auth", "Specialty", "Chat",
}

func (s Section) String() string {
	if int(s) < len(sectionNames) {
		return sectionNames[s]
	}
	return "Unknown"
}

// Connection is the live channel status.
type Connection int

const (
	Disconnected Connection = iota
	Connected
)

// State is the shared session state snapshot. It is read by render code and
// mutated only through Store setters; it is never replaced wholesale.
type State struct {
	Section    Section
	Connection Connection
	Region     string
	Unread     int
	Theme      string // "light" or "dark"
}

// Store owns the State. All access happens on the Bubble Tea update loop,
// so mutations are atomic with respect to rendering by construction.
type Store struct {
	state State

	// persist mirrors region/theme to durable storage on every change.
	persist func(region, theme string)
	// refresh is the section refresh dispatcher, invoked on region and
	// section changes.
	refresh func()
}

// NewStore creates a store seeded with the given initial state (typically
// from loaded preferences).
func NewStore(initial State, persist func(region, theme string)) *Store {
	if persist == nil {
		persist = func(string, string) {}
	}
	return &Store{state: initial, persist: persist, refresh: func() {}}
}

// OnRefresh registers the section refresh dispatcher. It fires after region
// and section changes, never for connection, unread, or theme changes.
func (s *Store) OnRefresh(f func()) {
	if f != nil {
		s.refresh = f
	}
}

// Get returns a copy of the current state.
func (s *Store) Get() State {
	return s.state
}

// SetRegion changes the selected region, persists it, and triggers a
// refresh of the visible section. Setting the current region is a no-op.
func (s *Store) SetRegion(code string) {
	if code == "" || code == s.state.Region {
		return
	}
	s.state.Region = code
	s.persist(s.state.Region, s.state.Theme)
	s.refresh()
}

// SetSection switches the visible section and triggers a refresh so the new
// section re-issues its standing query, if it has one.
func (s *Store) SetSection(sec Section) {
	if sec == s.state.Section {
		return
	}
	s.state.Section = sec
	s.refresh()
}

// SetConnection records the live channel status.
func (s *Store) SetConnection(c Connection) {
	s.state.Connection = c
}

// IncrementUnread bumps the unread update counter by one. This is the only
// operation that raises it.
func (s *Store) IncrementUnread() {
	s.state.Unread++
}

// ResetUnread clears the unread counter (the "mark read" action).
func (s *Store) ResetUnread() {
	s.state.Unread = 0
}

// SetTheme switches the color theme and persists it. Theme changes do not
// refresh queries; results are theme-independent.
func (s *Store) SetTheme(t string) {
	if t != "light" && t != "dark" {
		return
	}
	if t == s.state.Theme {
		return
	}
	s.state.Theme = t
	s.persist(s.state.Region, s.state.Theme)
}
