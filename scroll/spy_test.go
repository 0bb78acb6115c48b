// ABOUTME: Tests for the scroll-spy engine
// ABOUTME: Covers containment, gap retention, unmeasured sections and monotonicity

package scroll

import (
	"errors"
	"testing"
)

// pageRegistry builds the Hero/About/Projects layout used across tests
func pageRegistry(t *testing.T) *Registry {
	t.Helper()

	r := NewRegistry("hero", "about", "projects")
	sections := []struct {
		id          string
		top, height float64
	}{
		{"hero", 0, 800},
		{"about", 800, 600},
		{"projects", 1400, 900},
	}

	for _, s := range sections {
		if err := r.Set(s.id, s.top, s.height); err != nil {
			t.Fatalf("Set(%s) failed: %v", s.id, err)
		}
	}

	return r
}

func TestSpy_ScenarioAboutActive(t *testing.T) {
	r := pageRegistry(t)
	spy := NewSpy(r, Func(func() Sample { return Sample{Position: 1000, ViewportHeight: 600} }), Fixed(0))

	index, changed := spy.Update()
	if index != 1 || !changed {
		t.Errorf("Update() = (%d, %v), want (1, true)", index, changed)
	}
}

func TestSpy_StrictlyInsideSection(t *testing.T) {
	r := pageRegistry(t)
	spy := NewSpy(r, nil, Fixed(0))

	tests := []struct {
		name string
		pos  float64
		want int
	}{
		{"hero start", 0, 0},
		{"hero middle", 400, 0},
		{"hero last row", 799, 0},
		{"about start", 800, 1},
		{"about middle", 1100, 1},
		{"projects start", 1400, 2},
		{"projects end", 2299, 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, _ := spy.Evaluate(Sample{Position: tt.pos, ViewportHeight: 600})
			if got != tt.want {
				t.Errorf("Evaluate(%v) = %d, want %d", tt.pos, got, tt.want)
			}
		})
	}
}

func TestSpy_InitialStateIsNone(t *testing.T) {
	spy := NewSpy(NewRegistry("a", "b"), nil, nil)

	if spy.Active() != None {
		t.Errorf("Active() = %d, want None", spy.Active())
	}

	// Nothing measured: stays None
	if got, changed := spy.Evaluate(Sample{Position: 0}); got != None || changed {
		t.Errorf("Evaluate() = (%d, %v), want (None, false)", got, changed)
	}
}

func TestSpy_UnmeasuredSectionSkipped(t *testing.T) {
	r := NewRegistry("hero", "about")
	// hero unmeasured (zero height at top 0), about measured
	if err := r.Set("about", 0, 500); err != nil {
		t.Fatal(err)
	}

	spy := NewSpy(r, nil, Fixed(0))

	got, _ := spy.Evaluate(Sample{Position: 0})
	if got != 1 {
		t.Errorf("Evaluate(0) = %d, want 1 (unmeasured hero must not match)", got)
	}
}

func TestSpy_GapRetainsPrevious(t *testing.T) {
	r := NewRegistry("a", "b")
	_ = r.Set("a", 0, 100)
	_ = r.Set("b", 150, 100)

	spy := NewSpy(r, nil, Fixed(0))
	spy.Evaluate(Sample{Position: 50})

	got, changed := spy.Evaluate(Sample{Position: 120})
	if got != 0 || changed {
		t.Errorf("Evaluate(gap) = (%d, %v), want (0, false)", got, changed)
	}

	got, _ = spy.Evaluate(Sample{Position: 400})
	if got != 0 {
		t.Errorf("Evaluate(past end) = %d, want previous index 0", got)
	}
}

func TestSpy_HalfViewportLookahead(t *testing.T) {
	r := pageRegistry(t)
	spy := NewSpy(r, nil, HalfViewport())

	// 500 + 600/2 = 800 -> about
	got, _ := spy.Evaluate(Sample{Position: 500, ViewportHeight: 600})
	if got != 1 {
		t.Errorf("Evaluate() = %d, want 1", got)
	}
}

func TestSpy_MonotonicScroll(t *testing.T) {
	r := pageRegistry(t)
	spy := NewSpy(r, nil, Fixed(150))

	prev := spy.Active()
	changes := 0

	for pos := 0.0; pos < 2300; pos += 7 {
		got, changed := spy.Evaluate(Sample{Position: pos, ViewportHeight: 600})
		if got < prev {
			t.Fatalf("index went backwards at %v: %d -> %d", pos, prev, got)
		}

		if changed {
			changes++

			if prev != None && got != prev+1 {
				t.Fatalf("index skipped at %v: %d -> %d", pos, prev, got)
			}
		}

		prev = got
	}

	if changes != 3 {
		t.Errorf("expected 3 changes over a full sweep, got %d", changes)
	}
}

func TestSpy_OnChangeNotifiesOnlyOnChange(t *testing.T) {
	r := pageRegistry(t)
	spy := NewSpy(r, nil, Fixed(0))

	var calls [][2]int
	unsubscribe := spy.OnChange(func(prev, next int) {
		calls = append(calls, [2]int{prev, next})
	})

	spy.Evaluate(Sample{Position: 10})
	spy.Evaluate(Sample{Position: 20})
	spy.Evaluate(Sample{Position: 900})

	if len(calls) != 2 {
		t.Fatalf("expected 2 notifications, got %d", len(calls))
	}

	if calls[0] != [2]int{None, 0} || calls[1] != [2]int{0, 1} {
		t.Errorf("unexpected notifications: %v", calls)
	}

	unsubscribe()
	spy.Evaluate(Sample{Position: 1500})

	if len(calls) != 2 {
		t.Errorf("listener called after unsubscribe")
	}
}

func TestParseLookahead(t *testing.T) {
	s := Sample{Position: 0, ViewportHeight: 40}

	half, err := ParseLookahead("half-viewport", 0)
	if err != nil || half(s) != 20 {
		t.Errorf("half-viewport lookahead wrong: %v", err)
	}

	fixed, err := ParseLookahead("FIXED", 150)
	if err != nil || fixed(s) != 150 {
		t.Errorf("fixed lookahead wrong: %v", err)
	}

	if _, err := ParseLookahead("sideways", 0); err == nil {
		t.Error("expected error for unknown mode")
	}
}

func TestRegistry_AttachDetach(t *testing.T) {
	r := NewRegistry("hero", "about")

	measured := false
	anchor := AnchorFunc(func() (float64, float64, bool) {
		return 10, 20, measured
	})

	if err := r.Attach("about", anchor); err != nil {
		t.Fatal(err)
	}

	if d, _ := r.Lookup("about"); d.Measured() {
		t.Error("anchor not laid out yet should leave slot unmeasured")
	}

	measured = true
	r.Measure()

	if d, _ := r.Lookup("about"); d.Top != 10 || d.Height != 20 {
		t.Errorf("after Measure got %+v", d)
	}

	if err := r.Detach("about"); err != nil {
		t.Fatal(err)
	}

	r.Measure()

	if d, _ := r.Lookup("about"); d.Measured() {
		t.Error("detached slot must be unmeasured")
	}

	if err := r.Attach("contact", anchor); !errors.Is(err, ErrUnknownSection) {
		t.Errorf("Attach(unknown) err = %v, want ErrUnknownSection", err)
	}

	if i, _ := r.Index("about"); i != 1 {
		t.Errorf("Index(about) = %d, want 1", i)
	}
}

func TestRegistry_OnDetach(t *testing.T) {
	r := NewRegistry("hero", "about")

	var detached []string
	unsubscribe := r.OnDetach(func(id string) {
		detached = append(detached, id)
	})

	_ = r.Attach("about", AnchorFunc(func() (float64, float64, bool) { return 0, 10, true }))

	if !r.Attached("about") || r.Attached("hero") {
		t.Fatal("only about should be attached")
	}

	_ = r.Detach("about")

	if r.Attached("about") {
		t.Error("about should no longer be attached")
	}

	unsubscribe()
	unsubscribe()
	_ = r.Detach("hero")

	if len(detached) != 1 || detached[0] != "about" {
		t.Errorf("detach events = %v, want [about]", detached)
	}
}
