// ABOUTME: Tests for ViewportManager offset math
// ABOUTME: Verifies clamping, section jumps and scroll phases

package tui

import "testing"

func TestViewportManager_Clamp(t *testing.T) {
	// Viewport with 10 rows, 50 row page
	vm := NewViewportManager(10, 50)

	tests := []struct {
		name   string
		offset int
		want   int
	}{
		{"negative", -5, 0},
		{"zero", 0, 0},
		{"middle", 20, 20},
		{"at max", 40, 40},
		{"past max", 41, 40},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := vm.Clamp(tt.offset); got != tt.want {
				t.Errorf("Clamp(%d) = %d, want %d", tt.offset, got, tt.want)
			}
		})
	}
}

func TestViewportManager_ShortPage(t *testing.T) {
	// Page shorter than the viewport never scrolls
	vm := NewViewportManager(20, 5)

	if vm.MaxOffset() != 0 {
		t.Errorf("MaxOffset() = %d, want 0", vm.MaxOffset())
	}

	if got := vm.Clamp(3); got != 0 {
		t.Errorf("Clamp(3) = %d, want 0", got)
	}

	if vm.GetPhase(0) != TopPhase {
		t.Errorf("short page should be in TopPhase")
	}
}

func TestViewportManager_JumpOffset(t *testing.T) {
	vm := NewViewportManager(10, 50)

	tests := []struct {
		name  string
		top   int
		inset int
		want  int
	}{
		{"first section", 0, 2, 0},
		{"below header", 20, 2, 18},
		{"no header", 20, 0, 20},
		{"last section clamps", 48, 2, 40},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := vm.JumpOffset(tt.top, tt.inset); got != tt.want {
				t.Errorf("JumpOffset(%d, %d) = %d, want %d", tt.top, tt.inset, got, tt.want)
			}
		})
	}
}

func TestViewportManager_Phases(t *testing.T) {
	vm := NewViewportManager(10, 50)

	tests := []struct {
		offset int
		want   ScrollPhase
	}{
		{0, TopPhase},
		{1, MiddlePhase},
		{39, MiddlePhase},
		{40, BottomPhase},
	}

	for _, tt := range tests {
		if got := vm.GetPhase(tt.offset); got != tt.want {
			t.Errorf("GetPhase(%d) = %v, want %v", tt.offset, got, tt.want)
		}
	}
}

func TestViewportManager_Resize(t *testing.T) {
	vm := NewViewportManager(10, 50)
	vm.SetHeight(30)
	vm.SetTotal(40)

	if vm.MaxOffset() != 10 {
		t.Errorf("MaxOffset() after resize = %d, want 10", vm.MaxOffset())
	}

	if vm.PageSize() != 28 {
		t.Errorf("PageSize() = %d, want 28", vm.PageSize())
	}
}
