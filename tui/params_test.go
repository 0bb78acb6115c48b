// ABOUTME: Tests for ParamManager parameter adjustment and navigation
// ABOUTME: Verifies boundary checking, float/int/bool handling, and reset functionality

package tui

import (
	"fmt"
	"testing"

	"folio/config"
	"folio/scroll"
)

func TestParamManager_Selection(t *testing.T) {
	tests := []struct {
		name          string
		paramCount    int
		initialIndex  int
		operation     string
		expectedIndex int
	}{
		{"select next", 5, 0, "next", 1},
		{"select next at end", 5, 4, "next", 4},
		{"select previous", 5, 2, "prev", 1},
		{"select previous at start", 5, 0, "prev", 0},
		{"set valid index", 5, 0, "set:3", 3},
		{"set invalid negative", 5, 2, "set:-1", 2},
		{"set invalid too high", 5, 2, "set:10", 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pm := NewParamManager(createTestParams(tt.paramCount))
			pm.SetSelected(tt.initialIndex)

			switch tt.operation {
			case "next":
				pm.SelectNext()
			case "prev":
				pm.SelectPrevious()
			default:
				var idx int
				if _, err := fmt.Sscanf(tt.operation, "set:%d", &idx); err == nil {
					pm.SetSelected(idx)
				}
			}

			if pm.Selected() != tt.expectedIndex {
				t.Errorf("Expected index %d, got %d", tt.expectedIndex, pm.Selected())
			}
		})
	}
}

func TestParamManager_Float(t *testing.T) {
	val := 0.5
	pm := NewParamManager([]Parameter{{Name: "test", Value: &val, Min: 0, Max: 1, Step: 0.25}})

	tests := []struct {
		name         string
		initialVal   float64
		increase     bool
		expectChange bool
		expectedVal  float64
	}{
		{"increase from middle", 0.5, true, true, 0.75},
		{"increase to max", 0.75, true, true, 1.0},
		{"increase at max", 1.0, true, false, 1.0},
		{"decrease from middle", 0.5, false, true, 0.25},
		{"decrease to min", 0.25, false, true, 0.0},
		{"decrease at min", 0.0, false, false, 0.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			val = tt.initialVal

			var changed bool
			if tt.increase {
				changed = pm.Increase()
			} else {
				changed = pm.Decrease()
			}

			if changed != tt.expectChange {
				t.Errorf("Expected changed=%v, got %v", tt.expectChange, changed)
			}

			if val != tt.expectedVal {
				t.Errorf("Expected value %.2f, got %.2f", tt.expectedVal, val)
			}
		})
	}
}

func TestParamManager_FloatPrecisionClamping(t *testing.T) {
	val := 0.05
	pm := NewParamManager([]Parameter{{Name: "threshold", Value: &val, Min: 0, Max: 1, Step: 0.05}})

	if !pm.Decrease() {
		t.Error("Expected decrease to succeed")
	}

	// Should be clamped to exactly 0.0, not a tiny negative number
	if val != 0.0 {
		t.Errorf("Expected value to be 0.0, got %.10f", val)
	}

	val = 0.95
	if !pm.Increase() {
		t.Error("Expected increase to succeed")
	}

	if val != 1.0 {
		t.Errorf("Expected value to be clamped to 1.0, got %.10f", val)
	}
}

func TestParamManager_Integer(t *testing.T) {
	val := 50
	pm := NewParamManager([]Parameter{{Name: "stagger", IntValue: &val, Min: 0, Max: 100, Step: 10}})

	tests := []struct {
		name         string
		initialVal   int
		increase     bool
		expectChange bool
		expectedVal  int
	}{
		{"increase from middle", 50, true, true, 60},
		{"increase to max", 90, true, true, 100},
		{"increase would exceed max", 95, true, false, 95},
		{"decrease to min", 10, false, true, 0},
		{"decrease would go below min", 5, false, false, 5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			val = tt.initialVal

			var changed bool
			if tt.increase {
				changed = pm.Increase()
			} else {
				changed = pm.Decrease()
			}

			if changed != tt.expectChange {
				t.Errorf("Expected changed=%v, got %v", tt.expectChange, changed)
			}

			if val != tt.expectedVal {
				t.Errorf("Expected value %d, got %d", tt.expectedVal, val)
			}
		})
	}
}

func TestParamManager_Bool(t *testing.T) {
	val := false
	pm := NewParamManager([]Parameter{{Name: "once", BoolValue: &val}})

	if pm.Decrease() {
		t.Error("Decrease on false should not change")
	}

	if !pm.Increase() || !val {
		t.Error("Increase should switch on")
	}

	if pm.Increase() {
		t.Error("Increase on true should not change")
	}

	if !pm.Decrease() || val {
		t.Error("Decrease should switch off")
	}
}

func TestTuning_ResetAndConfig(t *testing.T) {
	defaults := config.DefaultConfig()
	tn := newTuning(defaults)
	pm := NewParamManager(tn.params())

	// Modify every parameter
	for i := range pm.Len() {
		pm.SetSelected(i)

		p := pm.GetSelected()
		if p.BoolValue != nil {
			*p.BoolValue = !*p.BoolValue
		} else {
			pm.Decrease()
		}
	}

	if got := tn.Config().Lookahead.Mode; got != scroll.LookaheadFixed {
		t.Errorf("toggling half-viewport off should select fixed mode, got %q", got)
	}

	pm.ResetToDefaults(defaults)
	cfg := tn.Config()

	if cfg.Lookahead.Mode != defaults.Lookahead.Mode {
		t.Errorf("lookahead mode not reset: %q", cfg.Lookahead.Mode)
	}

	if cfg.Lookahead.Fixed != defaults.Lookahead.Fixed || cfg.Reveal.Threshold != defaults.Reveal.Threshold {
		t.Errorf("float params not reset: %+v", cfg)
	}

	if cfg.Reveal.Once != defaults.Reveal.Once || cfg.Reveal.StaggerMS != defaults.Reveal.StaggerMS {
		t.Errorf("reveal params not reset: %+v", cfg.Reveal)
	}

	if cfg.Stack.CardOffset != defaults.Stack.CardOffset {
		t.Errorf("card offset not reset: %v", cfg.Stack.CardOffset)
	}
}

func TestParamManager_GetMethods(t *testing.T) {
	params := createTestParams(5)
	pm := NewParamManager(params)

	if pm.Len() != 5 {
		t.Errorf("Expected length 5, got %d", pm.Len())
	}

	param := pm.Get(2)
	if param == nil {
		t.Fatal("Expected non-nil parameter")
	}

	if param.Name != params[2].Name {
		t.Errorf("Expected parameter %s, got %s", params[2].Name, param.Name)
	}

	if pm.Get(-1) != nil {
		t.Error("Expected nil for negative index")
	}

	if pm.Get(10) != nil {
		t.Error("Expected nil for out-of-bounds index")
	}

	pm.SetSelected(3)

	selected := pm.GetSelected()
	if selected == nil || selected.Name != params[3].Name {
		t.Errorf("Expected selected parameter %s, got %v", params[3].Name, selected)
	}

	if len(pm.All()) != 5 {
		t.Errorf("Expected All() to return 5 parameters, got %d", len(pm.All()))
	}
}

// Helper function to create test parameters
func createTestParams(count int) []Parameter {
	params := make([]Parameter, count)
	for i := range params {
		val := float64(i) * 0.25
		params[i] = Parameter{
			Name:  fmt.Sprintf("param_%d", i),
			Value: &val,
			Min:   0.0,
			Max:   1.0,
			Step:  0.25,
		}
	}
	return params
}
