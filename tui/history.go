// ABOUTME: Back/forward history of section jumps
// ABOUTME: Manages position history with maximum stack size limit

package tui

// Position is a scroll offset remembered by the jump history
type Position struct {
	Offset  int
	Section int // Active section index at the time, scroll.None if unknown
}

// JumpHistory manages back/forward stacks with maximum size limit
type JumpHistory struct {
	back    []Position
	forward []Position
	maxSize int
}

// NewJumpHistory creates a new history with the specified max stack size
func NewJumpHistory(maxSize int) *JumpHistory {
	return &JumpHistory{
		back:    []Position{},
		forward: []Position{},
		maxSize: maxSize,
	}
}

// Push records the position being left by a jump.
// Clears the forward stack (a new jump starts a new branch).
func (h *JumpHistory) Push(pos Position) {
	h.back = append(h.back, pos)

	if len(h.back) > h.maxSize {
		h.back = h.back[1:]
	}

	h.forward = []Position{}
}

// Back returns the previous position, or false if there is none
func (h *JumpHistory) Back(current Position) (Position, bool) {
	if len(h.back) == 0 {
		return Position{}, false
	}

	h.forward = append(h.forward, current)

	if len(h.forward) > h.maxSize {
		h.forward = h.forward[1:]
	}

	pos := h.back[len(h.back)-1]
	h.back = h.back[:len(h.back)-1]

	return pos, true
}

// Forward returns the position undone by Back, or false if there is none
func (h *JumpHistory) Forward(current Position) (Position, bool) {
	if len(h.forward) == 0 {
		return Position{}, false
	}

	h.back = append(h.back, current)

	if len(h.back) > h.maxSize {
		h.back = h.back[1:]
	}

	pos := h.forward[len(h.forward)-1]
	h.forward = h.forward[:len(h.forward)-1]

	return pos, true
}

// BackSize returns the number of positions in the back stack
func (h *JumpHistory) BackSize() int {
	return len(h.back)
}

// ForwardSize returns the number of positions in the forward stack
func (h *JumpHistory) ForwardSize() int {
	return len(h.forward)
}

// Clear clears both stacks
func (h *JumpHistory) Clear() {
	h.back = []Position{}
	h.forward = []Position{}
}
