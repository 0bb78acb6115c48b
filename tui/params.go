// ABOUTME: Parameter manager for the scroll engine tuning panel
// ABOUTME: Handles parameter value adjustments with boundary checking

package tui

import (
	"folio/config"
	"folio/scroll"
)

// Parameter names, also used for reset lookup
const (
	paramHalfViewport = "Half-viewport lookahead"
	paramFixed        = "Fixed lookahead (rows)"
	paramThreshold    = "Reveal threshold"
	paramOnce         = "Reveal once"
	paramStagger      = "Stagger (ms)"
	paramCardOffset   = "Card offset (rows)"
)

// Parameter represents a tunable value with constraints.
// Exactly one of Value, IntValue and BoolValue is set.
type Parameter struct {
	Name      string
	Value     *float64
	IntValue  *int
	BoolValue *bool
	Min       float64
	Max       float64
	Step      float64
}

// tuning holds the panel's editable copy of the config
type tuning struct {
	cfg          config.Config
	halfViewport bool
}

func newTuning(cfg config.Config) *tuning {
	return &tuning{
		cfg:          cfg,
		halfViewport: cfg.Lookahead.Mode != scroll.LookaheadFixed,
	}
}

// Config returns the tuned config with the lookahead mode folded back in
func (t *tuning) Config() config.Config {
	cfg := t.cfg
	if t.halfViewport {
		cfg.Lookahead.Mode = scroll.LookaheadHalfViewport
	} else {
		cfg.Lookahead.Mode = scroll.LookaheadFixed
	}

	return cfg
}

// params builds the parameter list pointing into the tuning copy
func (t *tuning) params() []Parameter {
	return []Parameter{
		{Name: paramHalfViewport, BoolValue: &t.halfViewport},
		{Name: paramFixed, Value: &t.cfg.Lookahead.Fixed, Min: 0, Max: 40, Step: 1},
		{Name: paramThreshold, Value: &t.cfg.Reveal.Threshold, Min: 0, Max: 1, Step: 0.05},
		{Name: paramOnce, BoolValue: &t.cfg.Reveal.Once},
		{Name: paramStagger, IntValue: &t.cfg.Reveal.StaggerMS, Min: 0, Max: 1000, Step: 50},
		{Name: paramCardOffset, Value: &t.cfg.Stack.CardOffset, Min: 0, Max: 4, Step: 1},
	}
}

// ParamManager manages parameter adjustments
type ParamManager struct {
	params        []Parameter
	selectedIndex int
}

// NewParamManager creates a new parameter manager
func NewParamManager(params []Parameter) *ParamManager {
	return &ParamManager{
		params:        params,
		selectedIndex: 0,
	}
}

// Selected returns the index of the currently selected parameter
func (pm *ParamManager) Selected() int {
	return pm.selectedIndex
}

// SetSelected sets the selected parameter index
func (pm *ParamManager) SetSelected(index int) {
	if index >= 0 && index < len(pm.params) {
		pm.selectedIndex = index
	}
}

// SelectNext moves selection to the next parameter
func (pm *ParamManager) SelectNext() {
	if pm.selectedIndex < len(pm.params)-1 {
		pm.selectedIndex++
	}
}

// SelectPrevious moves selection to the previous parameter
func (pm *ParamManager) SelectPrevious() {
	if pm.selectedIndex > 0 {
		pm.selectedIndex--
	}
}

// Increase increases the selected parameter value
// Returns true if the value was changed
func (pm *ParamManager) Increase() bool {
	if pm.selectedIndex >= len(pm.params) {
		return false
	}

	param := &pm.params[pm.selectedIndex]

	switch {
	case param.BoolValue != nil:
		if !*param.BoolValue {
			*param.BoolValue = true
			return true
		}
	case param.IntValue != nil:
		newVal := *param.IntValue + int(param.Step)
		if float64(newVal) <= param.Max {
			*param.IntValue = newVal
			return true
		}
	case param.Value != nil:
		newVal := *param.Value + param.Step
		// Clamp to max if we're very close (handles floating point precision)
		if newVal > param.Max && newVal <= param.Max+0.0001 {
			newVal = param.Max
		}

		if newVal <= param.Max {
			*param.Value = newVal
			return true
		}
	}

	return false
}

// Decrease decreases the selected parameter value
// Returns true if the value was changed
func (pm *ParamManager) Decrease() bool {
	if pm.selectedIndex >= len(pm.params) {
		return false
	}

	param := &pm.params[pm.selectedIndex]

	switch {
	case param.BoolValue != nil:
		if *param.BoolValue {
			*param.BoolValue = false
			return true
		}
	case param.IntValue != nil:
		newVal := *param.IntValue - int(param.Step)
		if float64(newVal) >= param.Min {
			*param.IntValue = newVal
			return true
		}
	case param.Value != nil:
		newVal := *param.Value - param.Step
		// Clamp to min if we're very close (handles floating point precision)
		if newVal < param.Min && newVal >= param.Min-0.0001 {
			newVal = param.Min
		}

		if newVal >= param.Min {
			*param.Value = newVal
			return true
		}
	}

	return false
}

// ResetToDefaults resets all parameters to their default values
// Uses name-based lookup to avoid fragile array indexing
func (pm *ParamManager) ResetToDefaults(defaults config.Config) {
	for i := range pm.params {
		p := &pm.params[i]

		switch p.Name {
		case paramHalfViewport:
			*p.BoolValue = defaults.Lookahead.Mode != scroll.LookaheadFixed
		case paramFixed:
			*p.Value = defaults.Lookahead.Fixed
		case paramThreshold:
			*p.Value = defaults.Reveal.Threshold
		case paramOnce:
			*p.BoolValue = defaults.Reveal.Once
		case paramStagger:
			*p.IntValue = defaults.Reveal.StaggerMS
		case paramCardOffset:
			*p.Value = defaults.Stack.CardOffset
		}
	}
}

// Get returns the parameter at the given index
func (pm *ParamManager) Get(index int) *Parameter {
	if index >= 0 && index < len(pm.params) {
		return &pm.params[index]
	}
	return nil
}

// GetSelected returns the currently selected parameter
func (pm *ParamManager) GetSelected() *Parameter {
	return pm.Get(pm.selectedIndex)
}

// Len returns the number of parameters
func (pm *ParamManager) Len() int {
	return len(pm.params)
}

// All returns all parameters (for rendering)
func (pm *ParamManager) All() []Parameter {
	return pm.params
}
