// ABOUTME: Tests for viewport sources, frame gate and viewport classes
// ABOUTME: Verifies clamping, container binding and frame coalescing

package scroll

import (
	"strings"
	"testing"

	"github.com/charmbracelet/bubbles/viewport"
)

func TestWindow_Clamping(t *testing.T) {
	w := NewWindow(100, 10)
	w.SetContentHeight(50)

	tests := []struct {
		name   string
		target int
		want   int
	}{
		{"negative", -5, 0},
		{"inside", 20, 20},
		{"past end", 100, 40},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w.ScrollTo(tt.target)

			if w.Offset() != tt.want {
				t.Errorf("ScrollTo(%d) offset = %d, want %d", tt.target, w.Offset(), tt.want)
			}
		})
	}

	if !w.AtBottom() {
		t.Error("expected AtBottom after scrolling past end")
	}

	// Growing the viewport shrinks the maximum offset
	w.SetSize(100, 30)

	if w.Offset() != 20 {
		t.Errorf("after resize offset = %d, want 20", w.Offset())
	}

	s := w.Sample()
	if s.Position != 20 || s.ViewportHeight != 30 {
		t.Errorf("Sample() = %+v", s)
	}
}

func TestWindow_ScrollByReportsChange(t *testing.T) {
	w := NewWindow(80, 10)
	w.SetContentHeight(12)

	if w.ScrollBy(-1) {
		t.Error("ScrollBy(-1) at top should not change offset")
	}

	if !w.ScrollBy(1) {
		t.Error("ScrollBy(1) should change offset")
	}
}

func TestContainer_ReadsPanelOffset(t *testing.T) {
	panel := viewport.New(40, 10)
	panel.SetContent(strings.Repeat("line\n", 100))
	panel.SetYOffset(25)

	c := NewContainer(&panel)

	s := c.Sample()
	if s.Position != 25 || s.ViewportHeight != 10 {
		t.Errorf("Sample() = %+v, want {25 10}", s)
	}

	var nilContainer Container
	if got := nilContainer.Sample(); got != (Sample{}) {
		t.Errorf("unbound container Sample() = %+v", got)
	}
}

func TestFrameGate_Coalesces(t *testing.T) {
	var g FrameGate

	schedule, gen := g.Request()
	if !schedule {
		t.Fatal("first Request should schedule")
	}

	for range 5 {
		if again, _ := g.Request(); again {
			t.Fatal("Request while pending must not schedule another frame")
		}
	}

	if !g.Flush(gen) {
		t.Fatal("Flush(current gen) should succeed")
	}

	if g.Flush(gen) {
		t.Error("second Flush of the same frame should fail")
	}
}

func TestFrameGate_CancelRejectsStale(t *testing.T) {
	var g FrameGate

	_, gen := g.Request()
	g.Cancel()

	if g.Flush(gen) {
		t.Error("Flush after Cancel should fail")
	}

	if g.Pending() {
		t.Error("no frame should be pending after Cancel")
	}
}

func TestClassify(t *testing.T) {
	bp := DefaultBreakpoints()

	tests := []struct {
		width int
		want  Class
	}{
		{40, Mobile},
		{79, Mobile},
		{80, Tablet},
		{119, Tablet},
		{120, Desktop},
		{300, Desktop},
	}

	for _, tt := range tests {
		if got := Classify(tt.width, bp); got != tt.want {
			t.Errorf("Classify(%d) = %v, want %v", tt.width, got, tt.want)
		}
	}
}
