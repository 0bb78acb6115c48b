// ABOUTME: Animation-frame gate that coalesces bursts of scroll events
// ABOUTME: At most one pending frame; stale frame generations are rejected

package scroll

import "time"

// FrameInterval is the animation frame period used for coalescing
const FrameInterval = 16 * time.Millisecond

// FrameGate ensures derived state is recomputed at most once per frame.
// Scroll events call Request; the frame callback calls Flush.
type FrameGate struct {
	gen     uint64
	pending bool
}

// Request arms a frame if none is pending.
// schedule is true when the caller must schedule a frame for gen.
func (g *FrameGate) Request() (schedule bool, gen uint64) {
	if g.pending {
		return false, 0
	}

	g.pending = true
	g.gen++

	return true, g.gen
}

// Flush consumes the pending frame. Returns false for a stale or
// cancelled generation, in which case the caller must not recompute.
func (g *FrameGate) Flush(gen uint64) bool {
	if !g.pending || gen != g.gen {
		return false
	}

	g.pending = false

	return true
}

// Pending reports whether a frame is armed
func (g *FrameGate) Pending() bool {
	return g.pending
}

// Cancel drops any pending frame. Called on teardown.
func (g *FrameGate) Cancel() {
	g.pending = false
	g.gen++
}
