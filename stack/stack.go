// ABOUTME: Sticky-stack layout engine for the project showcase
// ABOUTME: Places overlapping cards with a per-card lip and releases the floating title in lockstep

// Package stack computes the geometry of a sticky stack of cards: each card
// sticks below the header with a small visible lip per card, and the section
// title moves out of view once the stack itself scrolls away.
package stack

import (
	"sort"

	"folio/scroll"
)

// Theme holds a card's colors as hex strings
type Theme struct {
	Background string `yaml:"bg"`
	Glow       string `yaml:"glow"`
	Border     string `yaml:"border"`
}

// Entry is one card in the stack. Order determines both z-order and offset.
type Entry struct {
	ID    string
	Order int
	Theme Theme
}

// Metrics are the fixed layout constants in rows
type Metrics struct {
	HeaderHeight float64 // Fixed header above the stack
	TitleHeight  float64 // Floating title block
	CardOffset   float64 // Visible lip per stacked card
	CardHeight   float64 // Rendered card height
}

// Spacing is the scroll distance between cards, as viewport fractions.
// Only spacing depends on the viewport class; CardOffset never does.
type Spacing struct {
	Stack     float64 `toml:"stack"`
	LastExtra float64 `toml:"last_extra"`
}

// DefaultSpacing returns the per-class spacing table
func DefaultSpacing() map[scroll.Class]Spacing {
	return map[scroll.Class]Spacing{
		scroll.Mobile:  {Stack: 0.55, LastExtra: 0.40},
		scroll.Tablet:  {Stack: 0.65, LastExtra: 0.50},
		scroll.Desktop: {Stack: 0.75, LastExtra: 0.60},
	}
}

// Placement is where one card is drawn in the current frame
type Placement struct {
	Index int
	ID    string
	Top   float64 // Screen row of the card's top edge, including its offset
	Z     int
}

// Frame is the layout of the stack for one scroll position
type Frame struct {
	Cards          []Placement // In z-order, lowest first
	TitleTop       float64     // Screen row of the title, transform applied
	TitleTransform float64     // 0 or negative
	Top            float64     // Screen row of the section top
	Bottom         float64     // Screen row just past the section bottom
}

// Engine computes stack geometry
type Engine struct {
	entries        []Entry
	metrics        Metrics
	spacing        map[scroll.Class]Spacing
	class          scroll.Class
	viewportHeight float64
}

// New creates an engine. Entries are copied and ordered by Order;
// the caller's slice is never modified.
func New(entries []Entry, metrics Metrics, spacing map[scroll.Class]Spacing) *Engine {
	sorted := append([]Entry(nil), entries...)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Order < sorted[j].Order
	})

	if spacing == nil {
		spacing = DefaultSpacing()
	}

	return &Engine{
		entries: sorted,
		metrics: metrics,
		spacing: spacing,
		class:   scroll.Desktop,
	}
}

// Resize applies a new viewport class and height.
// Later spacing calculations use the new constants immediately.
func (e *Engine) Resize(class scroll.Class, viewportHeight float64) {
	e.class = class
	e.viewportHeight = viewportHeight
}

// SetCardOffset changes the per-card lip
func (e *Engine) SetCardOffset(offset float64) {
	e.metrics.CardOffset = offset
}

// Metrics returns the current layout constants
func (e *Engine) Metrics() Metrics {
	return e.metrics
}

// Entries returns the ordered entries
func (e *Engine) Entries() []Entry {
	return append([]Entry(nil), e.entries...)
}

// Len returns the number of cards
func (e *Engine) Len() int {
	return len(e.entries)
}

// Class returns the viewport class in effect
func (e *Engine) Class() scroll.Class {
	return e.class
}

// Anchor is the sticky top shared by every card
func (e *Engine) Anchor() float64 {
	return e.metrics.HeaderHeight + e.metrics.TitleHeight
}

// Resting returns card i's resting screen position
func (e *Engine) Resting(i int) float64 {
	return e.Anchor() + float64(i)*e.metrics.CardOffset
}

// ZIndex returns card i's stacking order; later cards are above
func (e *Engine) ZIndex(i int) int {
	return i + 1
}

// StackSpacing is the scroll distance between consecutive cards
func (e *Engine) StackSpacing() float64 {
	return e.spacing[e.class].Stack * e.viewportHeight
}

// LastExtra is the extra scroll distance after the last card
func (e *Engine) LastExtra() float64 {
	return e.spacing[e.class].LastExtra * e.viewportHeight
}

// cardsBottom is the bottom of the cards container relative to the section top
func (e *Engine) cardsBottom() float64 {
	n := len(e.entries)
	if n == 0 {
		return e.metrics.TitleHeight
	}

	return e.metrics.TitleHeight + float64(n-1)*e.StackSpacing() + e.metrics.CardHeight + e.LastExtra()
}

// Height is the section's total height, for registering with the spy
func (e *Engine) Height() float64 {
	return e.cardsBottom()
}

// TitleTransform returns the title's vertical translation given the
// last card's measured top. Identity until the last card passes its
// resting position, then exactly the overshoot, upward.
func (e *Engine) TitleTransform(lastTop float64) float64 {
	n := len(e.entries)
	if n == 0 {
		return 0
	}

	resting := e.Resting(n - 1)
	if lastTop >= resting {
		return 0
	}

	return -(resting - lastTop)
}

// Layout computes the frame for a section at sectionTop (document row)
// viewed at scroll position pos. Everything is derived from the current
// geometry, never from a cached scroll delta.
func (e *Engine) Layout(sectionTop, pos float64) Frame {
	top := sectionTop - pos
	frame := Frame{
		Top:    top,
		Bottom: top + e.Height(),
		Cards:  make([]Placement, 0, len(e.entries)),
	}

	stickyTop := e.Anchor()
	containerBottom := top + e.cardsBottom()
	spacing := e.StackSpacing()

	// Released cards keep their lips and the last one ends at the container bottom
	lips := float64(max(len(e.entries)-1, 0)) * e.metrics.CardOffset
	releaseTop := containerBottom - e.metrics.CardHeight - lips

	for i, entry := range e.entries {
		natural := top + e.metrics.TitleHeight + float64(i)*spacing

		cardTop := max(natural, stickyTop)
		cardTop = min(cardTop, releaseTop)

		frame.Cards = append(frame.Cards, Placement{
			Index: i,
			ID:    entry.ID,
			Top:   cardTop + float64(i)*e.metrics.CardOffset,
			Z:     e.ZIndex(i),
		})
	}

	titleTop := max(top, e.metrics.HeaderHeight)

	if n := len(frame.Cards); n > 0 {
		frame.TitleTransform = e.TitleTransform(frame.Cards[n-1].Top)
	}

	frame.TitleTop = titleTop + frame.TitleTransform

	return frame
}
