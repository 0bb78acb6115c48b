// ABOUTME: Viewport classification (mobile/tablet/desktop) from terminal width
// ABOUTME: Breakpoints are configurable; classification is recomputed on resize

package scroll

// Class is the responsive viewport classification
type Class int

// Viewport classes, narrowest first
const (
	Mobile Class = iota
	Tablet
	Desktop
)

// String returns the class name
func (c Class) String() string {
	switch c {
	case Mobile:
		return "mobile"
	case Tablet:
		return "tablet"
	default:
		return "desktop"
	}
}

// Breakpoints are the inclusive maximum widths of the narrower classes
type Breakpoints struct {
	MobileMax int `toml:"mobile_max"`
	TabletMax int `toml:"tablet_max"`
}

// DefaultBreakpoints are sized for terminal columns
func DefaultBreakpoints() Breakpoints {
	return Breakpoints{MobileMax: 79, TabletMax: 119}
}

// Classify maps a width onto a viewport class
func Classify(width int, bp Breakpoints) Class {
	switch {
	case width <= bp.MobileMax:
		return Mobile
	case width <= bp.TabletMax:
		return Tablet
	default:
		return Desktop
	}
}
