// ABOUTME: Configuration management for the scroll engine and page shell
// ABOUTME: Handles loading/saving TOML config files with fallback to defaults

package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"

	"folio/reveal"
	"folio/scroll"
	"folio/stack"
)

// Binding modes for the scroll source
const (
	ModeWindow    = "window"
	ModeContainer = "container"
)

// Config holds all tunable parameters
type Config struct {
	Mode    string `toml:"mode"`    // window or container
	Lang    string `toml:"lang"`    // Empty means detect from the environment
	Content string `toml:"content"` // Empty means the embedded document

	Lookahead   LookaheadConfig    `toml:"lookahead"`
	Reveal      RevealConfig       `toml:"reveal"`
	Stack       StackConfig        `toml:"stack"`
	Breakpoints scroll.Breakpoints `toml:"breakpoints"`
}

// LookaheadConfig selects the scroll-spy probe offset
type LookaheadConfig struct {
	Mode  string  `toml:"mode"`  // half-viewport or fixed
	Fixed float64 `toml:"fixed"` // Rows, used in fixed mode
}

// RevealConfig tunes section entrance
type RevealConfig struct {
	Threshold float64 `toml:"threshold"`
	Once      bool    `toml:"once"`
	DelayMS   int     `toml:"delay_ms"`
	StaggerMS int     `toml:"stagger_ms"`
}

// StackConfig tunes the project card stack, in rows
type StackConfig struct {
	HeaderHeight float64                  `toml:"header_height"`
	TitleHeight  float64                  `toml:"title_height"`
	CardOffset   float64                  `toml:"card_offset"`
	CardHeight   float64                  `toml:"card_height"`
	Spacing      map[string]stack.Spacing `toml:"spacing"` // Keyed by viewport class name
}

// GetConfigPath returns the default config file path
// First tries current directory, then falls back to ~/.config/folio/config.toml
func GetConfigPath() string {
	if _, err := os.Stat("./folio.toml"); err == nil {
		return "./folio.toml"
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return "./folio.toml"
	}

	return filepath.Join(home, ".config", "folio", "config.toml")
}

// LoadConfig loads configuration from a TOML file
// If the file doesn't exist, returns default config
func LoadConfig(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return DefaultConfig(), nil
		}
		return DefaultConfig(), fmt.Errorf("failed to read config file: %w", err)
	}

	// Decode over the defaults so partial files keep the remaining values
	config := DefaultConfig()
	if err := toml.Unmarshal(data, &config); err != nil {
		return DefaultConfig(), fmt.Errorf("failed to parse config file: %w", err)
	}

	if err := config.Validate(); err != nil {
		return DefaultConfig(), fmt.Errorf("invalid config file: %w", err)
	}

	return config, nil
}

// SaveConfig saves configuration to a TOML file
func SaveConfig(path string, config Config) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	// Round floats to match UI precision
	config = roundConfigPrecision(config)

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create config file: %w", err)
	}
	defer func() {
		if err := f.Close(); err != nil {
			fmt.Printf("Warning: failed to close config file: %v\n", err)
		}
	}()

	encoder := toml.NewEncoder(f)
	if err := encoder.Encode(config); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}

	return nil
}

// DefaultConfig returns the default configuration
func DefaultConfig() Config {
	spacing := make(map[string]stack.Spacing, 3)
	for class, s := range stack.DefaultSpacing() {
		spacing[class.String()] = s
	}

	return Config{
		Mode: ModeWindow,
		Lookahead: LookaheadConfig{
			Mode:  scroll.LookaheadHalfViewport,
			Fixed: 8,
		},
		Reveal: RevealConfig{
			Threshold: 0.3,
			Once:      true,
			DelayMS:   200,
			StaggerMS: 150,
		},
		Stack: StackConfig{
			HeaderHeight: 2,
			TitleHeight:  3,
			CardOffset:   1,
			CardHeight:   12,
			Spacing:      spacing,
		},
		Breakpoints: scroll.DefaultBreakpoints(),
	}
}

// Validate rejects values the engine cannot work with
func (c Config) Validate() error {
	var errs []error

	if c.Mode != ModeWindow && c.Mode != ModeContainer {
		errs = append(errs, fmt.Errorf("mode must be %q or %q, got %q", ModeWindow, ModeContainer, c.Mode))
	}

	if _, err := c.LookaheadFunc(); err != nil {
		errs = append(errs, err)
	}

	if c.Reveal.Threshold < 0 || c.Reveal.Threshold > 1 {
		errs = append(errs, fmt.Errorf("reveal.threshold must be within [0, 1], got %v", c.Reveal.Threshold))
	}

	if c.Reveal.DelayMS < 0 || c.Reveal.StaggerMS < 0 {
		errs = append(errs, errors.New("reveal delays must not be negative"))
	}

	if c.Stack.CardHeight <= 0 {
		errs = append(errs, errors.New("stack.card_height must be positive"))
	}

	if c.Stack.CardOffset < 0 || c.Stack.HeaderHeight < 0 || c.Stack.TitleHeight < 0 {
		errs = append(errs, errors.New("stack metrics must not be negative"))
	}

	for name := range c.Stack.Spacing {
		if _, ok := parseClass(name); !ok {
			errs = append(errs, fmt.Errorf("stack.spacing: unknown viewport class %q", name))
		}
	}

	if c.Breakpoints.MobileMax >= c.Breakpoints.TabletMax {
		errs = append(errs, errors.New("breakpoints.mobile_max must be below tablet_max"))
	}

	return errors.Join(errs...)
}

// LookaheadFunc builds the scroll-spy lookahead strategy
func (c Config) LookaheadFunc() (scroll.Lookahead, error) {
	return scroll.ParseLookahead(c.Lookahead.Mode, c.Lookahead.Fixed)
}

// Cascade returns the child entrance timing
func (c Config) Cascade() reveal.Cascade {
	return reveal.Cascade{
		Delay:   time.Duration(c.Reveal.DelayMS) * time.Millisecond,
		Stagger: time.Duration(c.Reveal.StaggerMS) * time.Millisecond,
	}
}

// Metrics returns the stack layout constants
func (c Config) Metrics() stack.Metrics {
	return stack.Metrics{
		HeaderHeight: c.Stack.HeaderHeight,
		TitleHeight:  c.Stack.TitleHeight,
		CardOffset:   c.Stack.CardOffset,
		CardHeight:   c.Stack.CardHeight,
	}
}

// SpacingTable returns per-class spacing, filling classes the file omits
func (c Config) SpacingTable() map[scroll.Class]stack.Spacing {
	table := stack.DefaultSpacing()

	for name, s := range c.Stack.Spacing {
		if class, ok := parseClass(name); ok {
			table[class] = s
		}
	}

	return table
}

func parseClass(name string) (scroll.Class, bool) {
	for _, class := range []scroll.Class{scroll.Mobile, scroll.Tablet, scroll.Desktop} {
		if strings.EqualFold(name, class.String()) {
			return class, true
		}
	}

	return 0, false
}

// roundConfigPrecision rounds tunable float fields to 2 decimal places
func roundConfigPrecision(config Config) Config {
	round := func(x float64) float64 {
		return float64(int(x*100+0.5)) / 100
	}

	config.Lookahead.Fixed = round(config.Lookahead.Fixed)
	config.Reveal.Threshold = round(config.Reveal.Threshold)
	config.Stack.HeaderHeight = round(config.Stack.HeaderHeight)
	config.Stack.TitleHeight = round(config.Stack.TitleHeight)
	config.Stack.CardOffset = round(config.Stack.CardOffset)
	config.Stack.CardHeight = round(config.Stack.CardHeight)

	spacing := make(map[string]stack.Spacing, len(config.Stack.Spacing))
	for name, s := range config.Stack.Spacing {
		spacing[name] = stack.Spacing{Stack: round(s.Stack), LastExtra: round(s.LastExtra)}
	}
	config.Stack.Spacing = spacing

	return config
}
