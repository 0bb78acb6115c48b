// ABOUTME: Viewport manager for page scrolling and section jumps
// ABOUTME: Pure offset math shared by the window and container binding modes

package tui

// ViewportManager computes scroll offsets for a page of rows
type ViewportManager struct {
	height int // Visible rows
	total  int // Total page rows
}

// NewViewportManager creates a new viewport manager
func NewViewportManager(height, total int) *ViewportManager {
	return &ViewportManager{
		height: height,
		total:  total,
	}
}

// SetHeight updates the visible height
func (vm *ViewportManager) SetHeight(height int) {
	vm.height = height
}

// SetTotal updates the page length
func (vm *ViewportManager) SetTotal(total int) {
	vm.total = total
}

// MaxOffset is the largest offset that still fills the viewport
func (vm *ViewportManager) MaxOffset() int {
	return max(vm.total-vm.height, 0)
}

// Clamp bounds an offset to the scrollable range
func (vm *ViewportManager) Clamp(offset int) int {
	return min(max(offset, 0), vm.MaxOffset())
}

// JumpOffset returns the offset that puts a section top just below
// inset rows of fixed chrome
func (vm *ViewportManager) JumpOffset(top, inset int) int {
	return vm.Clamp(top - inset)
}

// PageSize is the distance of one page step, keeping two rows of context
func (vm *ViewportManager) PageSize() int {
	return max(vm.height-2, 1)
}

// ScrollPhase describes where the offset sits in the page
type ScrollPhase int

// Scroll phases: at the top, somewhere in the middle, or at the end
const (
	TopPhase    ScrollPhase = iota // Nothing above
	MiddlePhase                    // Content above and below
	BottomPhase                    // Nothing below
)

// GetPhase returns the phase for offset
func (vm *ViewportManager) GetPhase(offset int) ScrollPhase {
	if vm.total <= vm.height || offset <= 0 {
		return TopPhase
	}

	if offset >= vm.MaxOffset() {
		return BottomPhase
	}

	return MiddlePhase
}
