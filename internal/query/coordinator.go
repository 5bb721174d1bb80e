// Package query coordinates user-input-driven searches. Each search surface
// (drug lookup, pricing, specialty) owns one Coordinator; rapid input inside
// the settling window issues a single request for the last text, and
// responses from superseded requests are discarded even when they complete
// late.
package query

import (
	"strings"
	"sync"
	"time"
	"unicode/utf8"

	"github.com/bep/debounce"
	tea "github.com/charmbracelet/bubbletea"
)

// Surface identifies one independently-debounced search input.
type Surface string

const (
	SurfaceDrugs     Surface = "drugs"
	SurfacePricing   Surface = "pricing"
	SurfaceSpecialty Surface = "specialty"
)

// minQueryLen is the shortest trimmed input that issues a request. Anything
// shorter clears results instead.
const minQueryLen = 2

// FireMsg tells the app to issue the surface's request now. Gen identifies
// the query generation; the response must be checked against Stale before
// rendering.
type FireMsg struct {
	Surface Surface
	Text    string
	Gen     uint64
}

// ClearMsg tells the app to empty the surface's results immediately.
type ClearMsg struct {
	Surface Surface
}

// Coordinator debounces one surface's input. The settling window timer and
// the message sink are injected so tests run without a Bubble Tea program
// or real time.
type Coordinator struct {
	surface  Surface
	send     func(tea.Msg)
	debounce func(func())

	mu   sync.Mutex
	gen  uint64
	text string
}

// New creates a coordinator with the given settling window. send is
// typically tea.Program.Send, which is safe to call from timer goroutines.
func New(surface Surface, window time.Duration, send func(tea.Msg)) *Coordinator {
	return NewWithDebouncer(surface, debounce.New(window), send)
}

// NewWithDebouncer creates a coordinator with an injected debouncer,
// matching bep/debounce's func(func()) shape. Tests pass one that runs
// immediately or captures the scheduled call.
func NewWithDebouncer(surface Surface, deb func(func()), send func(tea.Msg)) *Coordinator {
	return &Coordinator{surface: surface, send: send, debounce: deb}
}

// OnInput records a keystroke. It supersedes any scheduled-but-unfired
// query and any in-flight response for this surface. Input shorter than two
// characters after trimming clears results and schedules nothing.
func (c *Coordinator) OnInput(text string) {
	trimmed := strings.TrimSpace(text)

	c.mu.Lock()
	c.gen++
	gen := c.gen
	c.text = text
	c.mu.Unlock()

	if utf8.RuneCountInString(trimmed) < minQueryLen {
		c.send(ClearMsg{Surface: c.surface})
		return
	}

	c.debounce(func() {
		// The debouncer resets its timer on every call, but a closure that
		// already started cannot be recalled; the generation check makes a
		// superseded closure a no-op.
		c.mu.Lock()
		current := gen == c.gen
		c.mu.Unlock()
		if current {
			c.send(FireMsg{Surface: c.surface, Text: trimmed, Gen: gen})
		}
	})
}

// Fire issues the current input immediately, bypassing the settling window
// (activation key / focus-loss path). Short input clears instead, same as
// OnInput.
func (c *Coordinator) Fire() {
	c.mu.Lock()
	c.gen++
	gen := c.gen
	trimmed := strings.TrimSpace(c.text)
	c.mu.Unlock()

	if utf8.RuneCountInString(trimmed) < minQueryLen {
		c.send(ClearMsg{Surface: c.surface})
		return
	}
	c.send(FireMsg{Surface: c.surface, Text: trimmed, Gen: gen})
}

// Refresh re-issues the standing query immediately, used when shared state
// (region, visible section) changes. Unlike Fire it is a no-op when the
// surface holds no usable query.
func (c *Coordinator) Refresh() {
	c.mu.Lock()
	trimmed := strings.TrimSpace(c.text)
	c.mu.Unlock()
	if utf8.RuneCountInString(trimmed) < minQueryLen {
		return
	}
	c.Fire()
}

// Stale reports whether a response generation has been superseded. Stale
// responses must not render.
func (c *Coordinator) Stale(gen uint64) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return gen != c.gen
}

// Text returns the surface's current raw input.
func (c *Coordinator) Text() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.text
}
