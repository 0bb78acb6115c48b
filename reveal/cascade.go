// ABOUTME: Staggered child entrance once a section has been revealed
// ABOUTME: Second level of the reveal state machine: section gate, then timed cascade

package reveal

import "time"

// Cascade sequences child entrances after the section gate opens.
// Child k appears at Delay + k*Stagger after the section became visible.
type Cascade struct {
	Delay   time.Duration
	Stagger time.Duration
}

// Revealed returns how many of n children are shown after elapsed time.
// Negative elapsed (section not yet visible) reveals nothing.
func (c Cascade) Revealed(n int, elapsed time.Duration) int {
	if n <= 0 || elapsed < c.Delay {
		return 0
	}

	if c.Stagger <= 0 {
		return n
	}

	shown := int((elapsed-c.Delay)/c.Stagger) + 1

	return min(shown, n)
}

// Done reports whether all n children are shown
func (c Cascade) Done(n int, elapsed time.Duration) bool {
	return n <= 0 || elapsed >= c.Duration(n)
}

// Duration returns the time until the last of n children appears
func (c Cascade) Duration(n int) time.Duration {
	if n <= 0 {
		return 0
	}

	return c.Delay + time.Duration(n-1)*max(c.Stagger, 0)
}

// Progress combines the section gate with the cascade: it returns the
// number of children of section id that are shown at time now.
func (c *Controller) Progress(id string, cascade Cascade, n int, now time.Time) int {
	since, ok := c.VisibleSince(id)
	if !ok {
		return 0
	}

	return cascade.Revealed(n, now.Sub(since))
}
