package session

import "testing"

type recorder struct {
	persists  []string
	refreshes int
}

func (r *recorder) persist(region, theme string) {
	r.persists = append(r.persists, region+"/"+theme)
}

func (r *recorder) refresh() { r.refreshes++ }

func newTestStore() (*Store, *recorder) {
	rec := &recorder{}
	s := NewStore(State{Region: "FL", Theme: "dark"}, rec.persist)
	s.OnRefresh(rec.refresh)
	return s, rec
}

func TestSetRegionPersistsAndRefreshes(t *testing.T) {
	s, rec := newTestStore()

	s.SetRegion("NY")

	if got := s.Get().Region; got != "NY" {
		t.Errorf("region = %q, want NY", got)
	}
	if len(rec.persists) != 1 || rec.persists[0] != "NY/dark" {
		t.Errorf("persists = %v, want one NY/dark write", rec.persists)
	}
	if rec.refreshes != 1 {
		t.Errorf("refreshes = %d, want exactly 1", rec.refreshes)
	}
}

func TestSetRegionSameValueIsNoop(t *testing.T) {
	s, rec := newTestStore()

	s.SetRegion("FL")

	if len(rec.persists) != 0 || rec.refreshes != 0 {
		t.Errorf("same-value region set persisted %d times, refreshed %d times", len(rec.persists), rec.refreshes)
	}
}

func TestSetSectionRefreshesWithoutPersisting(t *testing.T) {
	s, rec := newTestStore()

	s.SetSection(SectionPricing)

	if got := s.Get().Section; got != SectionPricing {
		t.Errorf("section = %v, want pricing", got)
	}
	if rec.refreshes != 1 {
		t.Errorf("refreshes = %d, want 1", rec.refreshes)
	}
	if len(rec.persists) != 0 {
		t.Errorf("section change persisted preferences: %v", rec.persists)
	}
}

func TestConnectionAndUnreadDoNotRefresh(t *testing.T) {
	s, rec := newTestStore()

	s.SetConnection(Connected)
	s.IncrementUnread()
	s.IncrementUnread()
	s.ResetUnread()

	if rec.refreshes != 0 {
		t.Errorf("connection/unread mutations refreshed %d times", rec.refreshes)
	}
	if len(rec.persists) != 0 {
		t.Errorf("connection/unread mutations persisted: %v", rec.persists)
	}
}

func TestUnreadCounting(t *testing.T) {
	s, _ := newTestStore()

	for i := 0; i < 5; i++ {
		s.IncrementUnread()
	}
	if got := s.Get().Unread; got != 5 {
		t.Errorf("unread = %d, want 5", got)
	}

	s.ResetUnread()
	if got := s.Get().Unread; got != 0 {
		t.Errorf("unread after reset = %d, want 0", got)
	}

	// Reset on an already-zero counter must not go negative.
	s.ResetUnread()
	if got := s.Get().Unread; got < 0 {
		t.Errorf("unread went negative: %d", got)
	}
}

func TestSetThemePersistsWithoutRefreshing(t *testing.T) {
	s, rec := newTestStore()

	s.SetTheme("light")

	if got := s.Get().Theme; got != "light" {
		t.Errorf("theme = %q, want light", got)
	}
	if len(rec.persists) != 1 || rec.persists[0] != "FL/light" {
		t.Errorf("persists = %v", rec.persists)
	}
	if rec.refreshes != 0 {
		t.Errorf("theme change refreshed %d times", rec.refreshes)
	}
}

func TestSetThemeRejectsUnknownValues(t *testing.T) {
	s, rec := newTestStore()

	s.SetTheme("neon")

	if got := s.Get().Theme; got != "dark" {
		t.Errorf("theme = %q, want unchanged dark", got)
	}
	if len(rec.persists) != 0 {
		t.Errorf("invalid theme persisted: %v", rec.persists)
	}
}

func TestSectionNames(t *testing.T) {
	if SectionPriorAuth.String() != "Prior Auth" {
		t.Errorf("SectionPriorAuth = %q", SectionPriorAuth.String())
	}
	if Section(99).String() != "Unknown" {
		t.Errorf("out-of-range section = %q", Section(99).String())
	}
}
