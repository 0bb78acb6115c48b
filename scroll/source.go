// ABOUTME: Viewport probes that report the current scroll sample
// ABOUTME: Window (page-level) and Container (inner panel) bindings behind one interface

// Package scroll tracks which page section is active as the viewport scrolls.
package scroll

import "github.com/charmbracelet/bubbles/viewport"

// Sample is one reading of the viewport, taken on every scroll tick
type Sample struct {
	Position       float64 // Scroll offset from the content origin
	ViewportHeight float64 // Visible height
}

// Source reports the current scroll sample.
// It is the only part of the engine that touches the host surface.
type Source interface {
	Sample() Sample
}

// Func adapts a plain function into a Source
type Func func() Sample

// Sample implements Source
func (f Func) Sample() Sample {
	return f()
}

// Window is the page-level binding: the whole terminal is the viewport
// and the page scrolls underneath it.
type Window struct {
	width         int
	height        int
	offset        int
	contentHeight int
}

// NewWindow creates a window source with the given terminal size
func NewWindow(width, height int) *Window {
	return &Window{width: width, height: height}
}

// SetSize updates the terminal dimensions and re-clamps the offset
func (w *Window) SetSize(width, height int) {
	w.width = width
	w.height = height
	w.offset = w.clamp(w.offset)
}

// SetContentHeight updates the total page height in rows
func (w *Window) SetContentHeight(total int) {
	w.contentHeight = total
	w.offset = w.clamp(w.offset)
}

// Width returns the terminal width
func (w *Window) Width() int { return w.width }

// Height returns the viewport height
func (w *Window) Height() int { return w.height }

// Offset returns the current scroll offset
func (w *Window) Offset() int { return w.offset }

// MaxOffset returns the largest offset that still fills the viewport
func (w *Window) MaxOffset() int {
	maxOffset := w.contentHeight - w.height
	if maxOffset < 0 {
		maxOffset = 0
	}

	return maxOffset
}

// ScrollBy moves the offset by delta rows.
// Returns true if the offset changed.
func (w *Window) ScrollBy(delta int) bool {
	return w.ScrollTo(w.offset + delta)
}

// ScrollTo moves the offset to an absolute row, clamped to the content.
// Returns true if the offset changed.
func (w *Window) ScrollTo(offset int) bool {
	next := w.clamp(offset)
	if next == w.offset {
		return false
	}

	w.offset = next

	return true
}

// AtBottom reports whether the last page row is visible
func (w *Window) AtBottom() bool {
	return w.offset >= w.MaxOffset()
}

// Sample implements Source
func (w *Window) Sample() Sample {
	return Sample{
		Position:       float64(w.offset),
		ViewportHeight: float64(w.height),
	}
}

func (w *Window) clamp(offset int) int {
	if offset < 0 {
		return 0
	}

	if maxOffset := w.MaxOffset(); offset > maxOffset {
		return maxOffset
	}

	return offset
}

// Container binds to a dedicated scrollable panel. The panel owns the
// scroll offset; the container only reads it.
type Container struct {
	panel *viewport.Model
}

// NewContainer binds a source to the given panel
func NewContainer(panel *viewport.Model) *Container {
	return &Container{panel: panel}
}

// Sample implements Source
func (c *Container) Sample() Sample {
	if c.panel == nil {
		return Sample{}
	}

	return Sample{
		Position:       float64(c.panel.YOffset),
		ViewportHeight: float64(c.panel.Height),
	}
}
