// ABOUTME: Ordered registry of section boundary descriptors
// ABOUTME: Slots are fixed at construction; anchors attach and detach as sections mount

package scroll

import (
	"errors"
	"fmt"
)

// ErrUnknownSection is returned for identifiers the registry was not built with
var ErrUnknownSection = errors.New("unknown section")

// Anchor is a back-reference to a mounted section. The registry reads
// offsets from it but never owns the underlying element.
type Anchor interface {
	// Measure returns the section's top offset and height.
	// ok is false when the section has not been laid out yet.
	Measure() (top, height float64, ok bool)
}

// AnchorFunc adapts a function into an Anchor
type AnchorFunc func() (top, height float64, ok bool)

// Measure implements Anchor
func (f AnchorFunc) Measure() (float64, float64, bool) {
	return f()
}

// Descriptor is the measured boundary of one section
type Descriptor struct {
	ID     string
	Top    float64
	Height float64
}

// Measured reports whether the descriptor has a usable height
func (d Descriptor) Measured() bool {
	return d.Height > 0
}

// Contains reports whether pos falls inside [Top, Top+Height)
func (d Descriptor) Contains(pos float64) bool {
	return d.Measured() && pos >= d.Top && pos < d.Top+d.Height
}

// Registry holds section descriptors in page order.
// Index i is always the i-th section from the top.
type Registry struct {
	descriptors []Descriptor
	anchors     []Anchor
	index       map[string]int

	detachListeners map[int]func(id string)
	nextID          int
}

// NewRegistry creates a registry with one unmeasured slot per identifier
func NewRegistry(ids ...string) *Registry {
	r := &Registry{
		descriptors: make([]Descriptor, len(ids)),
		anchors:     make([]Anchor, len(ids)),
		index:       make(map[string]int, len(ids)),

		detachListeners: make(map[int]func(id string)),
	}

	for i, id := range ids {
		r.descriptors[i] = Descriptor{ID: id}
		r.index[id] = i
	}

	return r
}

// Len returns the number of section slots
func (r *Registry) Len() int {
	return len(r.descriptors)
}

// Index returns the fixed position of a section
func (r *Registry) Index(id string) (int, error) {
	i, ok := r.index[id]
	if !ok {
		return -1, fmt.Errorf("%w: %q", ErrUnknownSection, id)
	}

	return i, nil
}

// Attach binds an anchor to a section slot and measures it
func (r *Registry) Attach(id string, anchor Anchor) error {
	i, err := r.Index(id)
	if err != nil {
		return err
	}

	r.anchors[i] = anchor
	r.measure(i)

	return nil
}

// Detach releases a section's anchor and marks the slot unmeasured
func (r *Registry) Detach(id string) error {
	i, err := r.Index(id)
	if err != nil {
		return err
	}

	r.anchors[i] = nil
	r.descriptors[i].Top = 0
	r.descriptors[i].Height = 0

	for _, fn := range r.detachListeners {
		fn(id)
	}

	return nil
}

// Attached reports whether a section currently has an anchor
func (r *Registry) Attached(id string) bool {
	i, ok := r.index[id]
	return ok && r.anchors[i] != nil
}

// OnDetach registers a listener invoked synchronously after a section detaches
func (r *Registry) OnDetach(fn func(id string)) (unsubscribe func()) {
	id := r.nextID
	r.nextID++
	r.detachListeners[id] = fn

	return func() {
		delete(r.detachListeners, id)
	}
}

// Set overwrites a section's boundary directly
func (r *Registry) Set(id string, top, height float64) error {
	i, err := r.Index(id)
	if err != nil {
		return err
	}

	r.descriptors[i].Top = top
	r.descriptors[i].Height = height

	return nil
}

// Measure re-reads every attached anchor. Called on mount and resize.
func (r *Registry) Measure() {
	for i := range r.descriptors {
		r.measure(i)
	}
}

func (r *Registry) measure(i int) {
	anchor := r.anchors[i]
	if anchor == nil {
		return
	}

	top, height, ok := anchor.Measure()
	if !ok {
		// Not laid out yet: leave unmeasured so the spy skips it
		height = 0
	}

	r.descriptors[i].Top = top
	r.descriptors[i].Height = height
}

// At returns the descriptor at index i
func (r *Registry) At(i int) (Descriptor, bool) {
	if i < 0 || i >= len(r.descriptors) {
		return Descriptor{}, false
	}

	return r.descriptors[i], true
}

// Lookup returns the descriptor for a section identifier
func (r *Registry) Lookup(id string) (Descriptor, error) {
	i, err := r.Index(id)
	if err != nil {
		return Descriptor{}, err
	}

	return r.descriptors[i], nil
}

// Descriptors returns a copy of all descriptors in page order
func (r *Registry) Descriptors() []Descriptor {
	return append([]Descriptor(nil), r.descriptors...)
}

// Find returns the index of the first measured section containing pos
func (r *Registry) Find(pos float64) (int, bool) {
	for i, d := range r.descriptors {
		if d.Contains(pos) {
			return i, true
		}
	}

	return -1, false
}
