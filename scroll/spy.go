// ABOUTME: Scroll-spy engine mapping scroll position to the active section
// ABOUTME: Retains the previous index across measurement gaps to avoid flicker

package scroll

import (
	"fmt"
	"strings"
)

// None is the active index before any section has been matched
const None = -1

// Lookahead returns the bias added to the scroll position before matching.
// It must depend only on the sample, never on the section being tested.
type Lookahead func(Sample) float64

// HalfViewport activates a section once it reaches the middle of the viewport
func HalfViewport() Lookahead {
	return func(s Sample) float64 {
		return s.ViewportHeight / 2
	}
}

// Fixed activates a section a constant distance below the top edge
func Fixed(offset float64) Lookahead {
	return func(Sample) float64 {
		return offset
	}
}

// Lookahead modes accepted by ParseLookahead
const (
	LookaheadHalfViewport = "half-viewport"
	LookaheadFixed        = "fixed"
)

// ParseLookahead builds a lookahead from its configured mode
func ParseLookahead(mode string, fixed float64) (Lookahead, error) {
	switch strings.ToLower(strings.TrimSpace(mode)) {
	case LookaheadHalfViewport, "":
		return HalfViewport(), nil
	case LookaheadFixed:
		return Fixed(fixed), nil
	default:
		return nil, fmt.Errorf("unknown lookahead mode %q", mode)
	}
}

// Spy tracks the active section index
type Spy struct {
	registry  *Registry
	source    Source
	lookahead Lookahead
	active    int

	listeners map[int]func(prev, next int)
	nextID    int
}

// NewSpy creates a scroll-spy over a registry and scroll source.
// A nil lookahead means no bias.
func NewSpy(registry *Registry, source Source, lookahead Lookahead) *Spy {
	if lookahead == nil {
		lookahead = Fixed(0)
	}

	return &Spy{
		registry:  registry,
		source:    source,
		lookahead: lookahead,
		active:    None,
		listeners: make(map[int]func(prev, next int)),
	}
}

// SetLookahead swaps the activation bias; takes effect on the next Update
func (s *Spy) SetLookahead(lookahead Lookahead) {
	if lookahead == nil {
		lookahead = Fixed(0)
	}

	s.lookahead = lookahead
}

// Active returns the current section index, or None
func (s *Spy) Active() int {
	return s.active
}

// Update reads one sample and recomputes the active index.
// changed is true only when the index moved.
func (s *Spy) Update() (index int, changed bool) {
	return s.Evaluate(s.source.Sample())
}

// Evaluate recomputes the active index for an explicit sample
func (s *Spy) Evaluate(sample Sample) (index int, changed bool) {
	probe := sample.Position + s.lookahead(sample)

	next, ok := s.registry.Find(probe)
	if !ok || next == s.active {
		// Gap between sections: keep the previous index
		return s.active, false
	}

	prev := s.active
	s.active = next
	s.notify(prev, next)

	return next, true
}

// OnChange registers a listener invoked synchronously on every index change
func (s *Spy) OnChange(fn func(prev, next int)) (unsubscribe func()) {
	id := s.nextID
	s.nextID++
	s.listeners[id] = fn

	return func() {
		delete(s.listeners, id)
	}
}

func (s *Spy) notify(prev, next int) {
	for _, fn := range s.listeners {
		fn(prev, next)
	}
}
