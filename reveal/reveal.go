// ABOUTME: Visibility controller gating section reveal animations
// ABOUTME: Threshold-based intersection, trigger-once locking, fail-open when unmeasurable

// Package reveal decides when page sections become visible and sequences
// the staggered entrance of their children.
package reveal

import (
	"errors"
	"time"

	"folio/scroll"
)

// ErrUnavailable is returned by an Intersector that cannot measure.
// The controller fails open on it.
var ErrUnavailable = errors.New("intersection measurement unavailable")

// State is the visibility of one section
type State int

// Visibility states
const (
	Hidden  State = iota // Not yet seen, or scrolled out in repeat mode
	Visible              // Intersecting in repeat mode
	Locked               // Seen once in trigger-once mode; never reverts
)

// String returns the state name
func (s State) String() string {
	switch s {
	case Visible:
		return "visible"
	case Locked:
		return "locked"
	default:
		return "hidden"
	}
}

// Shown reports whether content should be displayed
func (s State) Shown() bool {
	return s != Hidden
}

// Intersector measures how much of a section is inside the viewport
type Intersector interface {
	// Ratio returns the intersecting fraction in [0, 1]
	Ratio(d scroll.Descriptor, s scroll.Sample) (float64, error)
}

// Geometric computes intersection from descriptor and sample geometry.
// The ratio is relative to the smaller of the section and the viewport,
// so sections taller than the screen still reach full intersection.
type Geometric struct{}

// Ratio implements Intersector
func (Geometric) Ratio(d scroll.Descriptor, s scroll.Sample) (float64, error) {
	if !d.Measured() || s.ViewportHeight <= 0 {
		return 0, nil
	}

	top := max(d.Top, s.Position)
	bottom := min(d.Top+d.Height, s.Position+s.ViewportHeight)

	overlap := bottom - top
	if overlap <= 0 {
		return 0, nil
	}

	return min(overlap/min(d.Height, s.ViewportHeight), 1), nil
}

// Options configures a Controller
type Options struct {
	Threshold float64          // Fraction that must intersect, e.g. 0.3
	Once      bool             // Trigger-once: lock after first reveal
	Now       func() time.Time // Clock; defaults to time.Now
}

// Transition records one state change produced by Observe
type Transition struct {
	ID   string
	From State
	To   State
}

type entry struct {
	state State
	since time.Time
}

// Controller tracks per-section visibility
type Controller struct {
	registry    *scroll.Registry
	intersector Intersector
	opts        Options
	entries     map[string]*entry
	release     func()
}

// NewController creates a controller. A nil intersector means the
// measurement primitive is unavailable: every section is shown at once.
func NewController(registry *scroll.Registry, intersector Intersector, opts Options) *Controller {
	if opts.Now == nil {
		opts.Now = time.Now
	}

	c := &Controller{
		registry:    registry,
		intersector: intersector,
		opts:        opts,
		entries:     make(map[string]*entry, registry.Len()),
	}

	for _, d := range registry.Descriptors() {
		c.entries[d.ID] = &entry{state: Hidden}
	}

	// A detached section starts over as hidden when it mounts again
	c.release = registry.OnDetach(c.Forget)

	return c
}

// Close stops following the registry's detach events
func (c *Controller) Close() {
	c.release()
}

// SetThreshold changes the intersection threshold for later observations
func (c *Controller) SetThreshold(threshold float64) {
	c.opts.Threshold = threshold
}

// SetOnce switches between trigger-once and repeat mode.
// Sections already locked stay locked.
func (c *Controller) SetOnce(once bool) {
	c.opts.Once = once
}

// Observe evaluates every section against a sample and returns transitions
func (c *Controller) Observe(s scroll.Sample) []Transition {
	var transitions []Transition

	now := c.opts.Now()

	for _, d := range c.registry.Descriptors() {
		e, ok := c.entries[d.ID]
		if !ok {
			e = &entry{state: Hidden}
			c.entries[d.ID] = e
		}

		if e.state == Locked {
			continue
		}

		next := c.evaluate(d, s)
		if next == e.state {
			continue
		}

		transitions = append(transitions, Transition{ID: d.ID, From: e.state, To: next})

		if !e.state.Shown() {
			e.since = now
		}

		e.state = next
	}

	return transitions
}

func (c *Controller) evaluate(d scroll.Descriptor, s scroll.Sample) State {
	visible := Visible
	if c.opts.Once {
		visible = Locked
	}

	if c.intersector == nil {
		return visible
	}

	ratio, err := c.intersector.Ratio(d, s)
	if err != nil {
		// Fail open rather than leave content hidden
		return visible
	}

	if !d.Measured() {
		// Wait for the next measurement
		return c.entries[d.ID].state
	}

	if ratio > 0 && ratio >= c.opts.Threshold {
		return visible
	}

	return Hidden
}

// State returns a section's visibility state
func (c *Controller) State(id string) State {
	if e, ok := c.entries[id]; ok {
		return e.state
	}

	return Hidden
}

// IsVisible reports whether a section's content should be shown
func (c *Controller) IsVisible(id string) bool {
	return c.State(id).Shown()
}

// VisibleSince returns when a section last became visible
func (c *Controller) VisibleSince(id string) (time.Time, bool) {
	e, ok := c.entries[id]
	if !ok || !e.state.Shown() {
		return time.Time{}, false
	}

	return e.since, true
}

// Forget drops a section's state. Detached sections are forgotten automatically.
func (c *Controller) Forget(id string) {
	delete(c.entries, id)
}
