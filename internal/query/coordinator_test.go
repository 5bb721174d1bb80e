package query

import (
	"sync"
	"testing"
	"time"

	"github.com/bep/debounce"
	tea "github.com/charmbracelet/bubbletea"
)

// sink collects emitted messages behind a mutex; the real sink is
// tea.Program.Send which tolerates timer goroutines the same way.
type sink struct {
	mu   sync.Mutex
	msgs []tea.Msg
}

func (s *sink) send(m tea.Msg) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.msgs = append(s.msgs, m)
}

func (s *sink) all() []tea.Msg {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]tea.Msg, len(s.msgs))
	copy(out, s.msgs)
	return out
}

// manualDebouncer captures the last scheduled func so tests control when
// the settling window "elapses".
type manualDebouncer struct {
	mu    sync.Mutex
	last  func()
	calls int
}

func (d *manualDebouncer) debounce(f func()) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.last = f
	d.calls++
}

func (d *manualDebouncer) elapse() {
	d.mu.Lock()
	f := d.last
	d.mu.Unlock()
	if f != nil {
		f()
	}
}

func TestRapidInputFiresOnceWithLastText(t *testing.T) {
	s := &sink{}
	d := &manualDebouncer{}
	c := NewWithDebouncer(SurfaceDrugs, d.debounce, s.send)

	c.OnInput("ami")
	c.OnInput("amio")
	c.OnInput("amiodarone")
	d.elapse()

	msgs := s.all()
	if len(msgs) != 1 {
		t.Fatalf("got %d messages, want exactly 1 fire", len(msgs))
	}
	fire, ok := msgs[0].(FireMsg)
	if !ok {
		t.Fatalf("got %T, want FireMsg", msgs[0])
	}
	if fire.Text != "amiodarone" {
		t.Errorf("fired text = %q, want last input %q", fire.Text, "amiodarone")
	}
	if fire.Surface != SurfaceDrugs {
		t.Errorf("fired surface = %q, want drugs", fire.Surface)
	}
}

func TestShortInputClearsWithoutScheduling(t *testing.T) {
	s := &sink{}
	d := &manualDebouncer{}
	c := NewWithDebouncer(SurfacePricing, d.debounce, s.send)

	c.OnInput(" a ")

	if d.calls != 0 {
		t.Errorf("short input scheduled %d debounce calls, want 0", d.calls)
	}
	msgs := s.all()
	if len(msgs) != 1 {
		t.Fatalf("got %d messages, want 1 clear", len(msgs))
	}
	if _, ok := msgs[0].(ClearMsg); !ok {
		t.Errorf("got %T, want ClearMsg", msgs[0])
	}
}

func TestShortInputSupersedesInFlightResponse(t *testing.T) {
	s := &sink{}
	d := &manualDebouncer{}
	c := NewWithDebouncer(SurfaceDrugs, d.debounce, s.send)

	c.OnInput("metformin")
	d.elapse()
	fire := s.all()[0].(FireMsg)

	// User deletes the query while the request is in flight.
	c.OnInput("")

	if !c.Stale(fire.Gen) {
		t.Error("in-flight response should be stale after the input was cleared")
	}
}

func TestStaleResponseDiscarded(t *testing.T) {
	s := &sink{}
	d := &manualDebouncer{}
	c := NewWithDebouncer(SurfaceDrugs, d.debounce, s.send)

	// Query A fires; its network call is in flight when B is issued.
	c.OnInput("lisinopril")
	d.elapse()
	genA := s.all()[0].(FireMsg).Gen

	c.OnInput("lipitor")
	d.elapse()
	genB := s.all()[1].(FireMsg).Gen

	// A resolves after B: A must not render, B must.
	if !c.Stale(genA) {
		t.Error("superseded query A should be stale")
	}
	if c.Stale(genB) {
		t.Error("latest query B should not be stale")
	}
}

func TestSupersededWindowNeverFires(t *testing.T) {
	s := &sink{}
	d := &manualDebouncer{}
	c := NewWithDebouncer(SurfaceDrugs, d.debounce, s.send)

	c.OnInput("warfarin")
	first := d.last
	c.OnInput("warfarin 5mg")

	// Simulate the pathological case where the first closure still runs
	// (a real timer that fired just before being reset).
	first()

	for _, m := range s.all() {
		if f, ok := m.(FireMsg); ok && f.Text == "warfarin" {
			t.Error("superseded window fired with stale text")
		}
	}
}

func TestFireBypassesWindow(t *testing.T) {
	s := &sink{}
	d := &manualDebouncer{}
	c := NewWithDebouncer(SurfaceSpecialty, d.debounce, s.send)

	c.OnInput("humira")
	c.Fire()

	msgs := s.all()
	if len(msgs) != 1 {
		t.Fatalf("got %d messages, want 1 immediate fire", len(msgs))
	}
	fire := msgs[0].(FireMsg)
	if fire.Text != "humira" {
		t.Errorf("fired text = %q", fire.Text)
	}
	// The pending window must not produce a second fire.
	d.elapse()
	for _, m := range s.all()[1:] {
		if _, ok := m.(FireMsg); ok {
			t.Error("window fired after an immediate trigger superseded it")
		}
	}
}

func TestRefreshNoopOnEmptyInput(t *testing.T) {
	s := &sink{}
	d := &manualDebouncer{}
	c := NewWithDebouncer(SurfacePricing, d.debounce, s.send)

	c.Refresh()
	if len(s.all()) != 0 {
		t.Errorf("refresh with no standing query emitted %d messages", len(s.all()))
	}

	c.OnInput("ozempic")
	s.mu.Lock()
	s.msgs = nil
	s.mu.Unlock()

	c.Refresh()
	msgs := s.all()
	if len(msgs) != 1 {
		t.Fatalf("refresh with standing query emitted %d messages, want 1", len(msgs))
	}
	if f := msgs[0].(FireMsg); f.Text != "ozempic" {
		t.Errorf("refresh fired %q", f.Text)
	}
}

func TestRealDebouncerSettlesOnce(t *testing.T) {
	s := &sink{}
	c := NewWithDebouncer(SurfaceDrugs, debounce.New(20*time.Millisecond), s.send)

	c.OnInput("ami")
	time.Sleep(5 * time.Millisecond)
	c.OnInput("amiodarone")

	deadline := time.Now().Add(time.Second)
	for time.Now().Before(deadline) {
		if len(s.all()) > 0 {
			break
		}
		time.Sleep(5 * time.Millisecond)
	}
	// Allow any straggler to land before asserting the count.
	time.Sleep(50 * time.Millisecond)

	var fires []FireMsg
	for _, m := range s.all() {
		if f, ok := m.(FireMsg); ok {
			fires = append(fires, f)
		}
	}
	if len(fires) != 1 {
		t.Fatalf("got %d fires, want 1", len(fires))
	}
	if fires[0].Text != "amiodarone" {
		t.Errorf("fired %q, want amiodarone", fires[0].Text)
	}
}
