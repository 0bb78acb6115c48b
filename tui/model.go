// ABOUTME: Terminal UI model and core state management
// ABOUTME: Wires the scroll-spy, reveal and sticky-stack engines into a Bubble Tea program

// Package tui renders the portfolio as a scrollable terminal page.
package tui

import (
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"folio/config"
	"folio/contact"
	"folio/content"
	"folio/locale"
	"folio/reveal"
	"folio/scroll"
	"folio/signal"
	"folio/stack"
)

// Layout constants for UI dimensions
const (
	headerRows    = 2 // Name and navigation, then a rule
	statusBarRows = 1 // Bottom status or help line
	panelBorder   = 2 // Container mode border, top and bottom
	maxColumn     = 84
	minColumn     = 24
)

// Navigation and interaction constants
const (
	lineStep              = 1
	wheelStep             = 3
	statusMessageDuration = 5 * time.Second
	contactCloseDelay     = 2 * time.Second
	maxHistorySize        = 50
)

// model holds the TUI state
type model struct {
	// Dependencies
	loadContent func(string) (*content.Document, error)
	sender      contact.Sender
	copy        func(string) error
	bus         *signal.Bus
	unsubscribe func()
	watcher     ChangeWaiter
	debugf      func(string, ...any)
	now         func() time.Time

	// Configuration
	tune        *tuning
	paramMgr    *ParamManager
	defaults    config.Config
	contentPath string
	mode        string
	tuned       bool

	// Content
	doc  *content.Document
	lang locale.Lang

	// Engines (pointers so the bound sources survive model copies)
	registry *scroll.Registry
	source   scroll.Source
	window   *scroll.Window
	panel    *viewport.Model
	spy      *scroll.Spy
	gate     *scroll.FrameGate
	reveal   *reveal.Controller
	cascade  reveal.Cascade
	engine   *stack.Engine
	vm       *ViewportManager
	history  *JumpHistory
	page     *page
	signals  chan signal.Name

	// UI state
	width        int
	height       int
	ready        bool
	quitting     bool
	tuneOpen     bool
	statusMsg    string
	statusMsgAge time.Time
	form         *contactForm
}

// Key bindings
type keyMap struct {
	Up       key.Binding
	Down     key.Binding
	Left     key.Binding
	Right    key.Binding
	PageUp   key.Binding
	PageDown key.Binding
	Home     key.Binding
	End      key.Binding
	Jump     key.Binding
	Back     key.Binding
	Forward  key.Binding
	Activate key.Binding
	Contact  key.Binding
	Copy     key.Binding
	Lang     key.Binding
	Tune     key.Binding
	Reset    key.Binding
	Close    key.Binding
	Quit     key.Binding
}

var keys = keyMap{
	Up: key.NewBinding(
		key.WithKeys("up", "k"),
		key.WithHelp("↑/k", "scroll up"),
	),
	Down: key.NewBinding(
		key.WithKeys("down", "j"),
		key.WithHelp("↓/j", "scroll down"),
	),
	Left: key.NewBinding(
		key.WithKeys("left", "h"),
		key.WithHelp("←/h", "decrease"),
	),
	Right: key.NewBinding(
		key.WithKeys("right", "l"),
		key.WithHelp("→/l", "increase"),
	),
	PageUp: key.NewBinding(
		key.WithKeys("pgup", "ctrl+u"),
		key.WithHelp("pgup", "page up"),
	),
	PageDown: key.NewBinding(
		key.WithKeys("pgdown", "ctrl+d", " "),
		key.WithHelp("pgdn", "page down"),
	),
	Home: key.NewBinding(
		key.WithKeys("home", "g"),
		key.WithHelp("g", "top"),
	),
	End: key.NewBinding(
		key.WithKeys("end", "G"),
		key.WithHelp("G", "bottom"),
	),
	Jump: key.NewBinding(
		key.WithKeys("1", "2", "3", "4"),
		key.WithHelp("1-4", "jump to section"),
	),
	Back: key.NewBinding(
		key.WithKeys("b", "backspace"),
		key.WithHelp("b", "back"),
	),
	Forward: key.NewBinding(
		key.WithKeys("f"),
		key.WithHelp("f", "forward"),
	),
	Activate: key.NewBinding(
		key.WithKeys("enter"),
		key.WithHelp("enter", "open contact form"),
	),
	Contact: key.NewBinding(
		key.WithKeys("c"),
		key.WithHelp("c", "contact"),
	),
	Copy: key.NewBinding(
		key.WithKeys("y"),
		key.WithHelp("y", "copy email"),
	),
	Lang: key.NewBinding(
		key.WithKeys("L"),
		key.WithHelp("L", "language"),
	),
	Tune: key.NewBinding(
		key.WithKeys("t"),
		key.WithHelp("t", "settings"),
	),
	Reset: key.NewBinding(
		key.WithKeys("r"),
		key.WithHelp("r", "reset settings"),
	),
	Close: key.NewBinding(
		key.WithKeys("esc"),
		key.WithHelp("esc", "close"),
	),
	Quit: key.NewBinding(
		key.WithKeys("q", "ctrl+c"),
		key.WithHelp("q", "quit"),
	),
}

// Styles
var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("12"))

	headingStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("11"))

	navStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("250")).
			Padding(0, 1)

	activeNavStyle = lipgloss.NewStyle().
			Background(lipgloss.Color("12")).
			Foreground(lipgloss.Color("0")).
			Bold(true).
			Padding(0, 1)

	ruleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("238"))

	mutedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("245"))

	accentStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("14"))

	paramStyle = lipgloss.NewStyle().
			Padding(0, 1)

	selectedParamStyle = lipgloss.NewStyle().
				Background(lipgloss.Color("240")).
				Foreground(lipgloss.Color("15")).
				Bold(true).
				Padding(0, 1)

	statusStyle = lipgloss.NewStyle().
			Background(lipgloss.Color("236")).
			Foreground(lipgloss.Color("15")).
			Padding(0, 1)

	fabStyle = lipgloss.NewStyle().
			Background(lipgloss.Color("13")).
			Foreground(lipgloss.Color("0")).
			Bold(true).
			Padding(0, 1)

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196")).
			Bold(true)

	panelStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("240"))

	dialogStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("13")).
			Padding(1, 2)
)

// Run starts the TUI with injected dependencies
func Run(opts Options, deps Dependencies) error {
	// The watcher is released on every exit path, including failed setup
	if deps.Watcher != nil {
		defer deps.Watcher.Close()
	}

	doc, err := deps.LoadContent(opts.ContentPath)
	if err != nil {
		return err
	}

	m, err := initModel(doc, opts, deps)
	if err != nil {
		return err
	}

	defer m.unsubscribe()
	defer m.gate.Cancel()
	defer m.reveal.Close()

	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseCellMotion())

	finalModel, err := p.Run()
	if err != nil {
		return fmt.Errorf("TUI error: %w", err)
	}

	// Persist tuning panel changes
	if fm, ok := finalModel.(model); ok && fm.tuned && deps.SaveConfig != nil {
		if err := deps.SaveConfig(deps.ConfigPath, fm.tune.Config()); err != nil {
			return fmt.Errorf("failed to save config: %w", err)
		}

		fmt.Printf("Saved settings to: %s\n", deps.ConfigPath)
	}

	return nil
}

// initModel creates the initial model with injected dependencies
func initModel(doc *content.Document, opts Options, deps Dependencies) (model, error) {
	cfg := deps.Config
	if opts.Mode != "" {
		cfg.Mode = opts.Mode
	}

	if err := cfg.Validate(); err != nil {
		return model{}, fmt.Errorf("invalid config: %w", err)
	}

	lookahead, err := cfg.LookaheadFunc()
	if err != nil {
		return model{}, err
	}

	debugf := deps.Debugf
	if debugf == nil {
		debugf = func(string, ...any) {}
	}

	bus := deps.Bus
	if bus == nil {
		bus = signal.New()
	}

	now := deps.Now
	if now == nil {
		now = time.Now
	}

	sender := deps.Sender
	if sender == nil {
		sender = &contact.SimulatedSender{Delay: contact.SimulatedDelay}
	}

	lang := opts.Lang
	if lang == "" {
		lang = locale.KO
	}

	registry := scroll.NewRegistry(sectionIDs...)
	window := scroll.NewWindow(0, 0)
	panel := viewport.New(0, 0)

	var source scroll.Source = window
	if cfg.Mode == config.ModeContainer {
		source = scroll.NewContainer(&panel)
	}

	tune := newTuning(cfg)

	m := model{
		loadContent: deps.LoadContent,
		sender:      sender,
		copy:        deps.Copy,
		bus:         bus,
		watcher:     deps.Watcher,
		debugf:      debugf,
		now:         now,

		tune:        tune,
		paramMgr:    NewParamManager(tune.params()),
		defaults:    config.DefaultConfig(),
		contentPath: opts.ContentPath,
		mode:        cfg.Mode,

		doc:  doc,
		lang: lang,

		registry: registry,
		source:   source,
		window:   window,
		panel:    &panel,
		spy:      scroll.NewSpy(registry, source, lookahead),
		gate:     &scroll.FrameGate{},
		reveal: reveal.NewController(registry, reveal.Geometric{}, reveal.Options{
			Threshold: cfg.Reveal.Threshold,
			Once:      cfg.Reveal.Once,
			Now:       now,
		}),
		cascade: cfg.Cascade(),
		engine:  stack.New(doc.StackEntries(), stackMetrics(cfg), cfg.SpacingTable()),
		vm:      NewViewportManager(0, 0),
		history: NewJumpHistory(maxHistorySize),
		signals: make(chan signal.Name, 1),
		form:    newContactForm(),
	}

	m.spy.OnChange(func(prev, next int) {
		debugf("[SPY] active section %d -> %d", prev, next)
	})

	// The contact panel listens on the bus for the lifetime of the program
	signals := m.signals
	m.unsubscribe = bus.Subscribe(signal.OpenContact, func() {
		select {
		case signals <- signal.OpenContact:
		default:
		}
	})

	debugf("[SIGNAL] %s has %d subscribers", signal.OpenContact, bus.Subscribers(signal.OpenContact))

	return m, nil
}

// stackMetrics adapts the configured metrics to the binding mode.
// In container mode cards stick to the panel top, not below the header.
func stackMetrics(cfg config.Config) stack.Metrics {
	metrics := cfg.Metrics()
	if cfg.Mode == config.ModeContainer {
		metrics.HeaderHeight = 0
	}

	return metrics
}

// Init initializes the model
func (m model) Init() tea.Cmd {
	cmds := []tea.Cmd{waitForSignal(m.signals)}

	if m.watcher != nil {
		cmds = append(cmds, waitForContentChange(m.watcher))
	}

	return tea.Batch(cmds...)
}

// waitForSignal delivers bus signals as messages
func waitForSignal(signals <-chan signal.Name) tea.Cmd {
	return func() tea.Msg {
		name, ok := <-signals
		if !ok {
			return nil
		}

		return signalMsg{name: name}
	}
}

// waitForContentChange blocks until the content file changes
func waitForContentChange(w ChangeWaiter) tea.Cmd {
	return func() tea.Msg {
		if !w.Wait() {
			return nil
		}

		return contentChangedMsg{}
	}
}

// reloadContent loads the content file in the background
func reloadContent(load func(string) (*content.Document, error), path string) tea.Cmd {
	return func() tea.Msg {
		doc, err := load(path)
		return contentLoadedMsg{doc: doc, err: err}
	}
}

// ========== Geometry ==========

// pageHeight is the number of page rows visible at once
func (m model) pageHeight() int {
	if m.mode == config.ModeContainer {
		return max(m.height-headerRows-statusBarRows-panelBorder, 1)
	}

	return max(m.height-statusBarRows, 1)
}

// pageWidth is the number of columns the page is laid out in
func (m model) pageWidth() int {
	if m.mode == config.ModeContainer {
		return max(m.width-2, minColumn)
	}

	return max(m.width, minColumn)
}

// jumpInset is the number of screen rows the fixed header covers
func (m model) jumpInset() int {
	if m.mode == config.ModeContainer {
		return 0
	}

	return headerRows
}

// dialogWidth is the outer width of the contact and settings dialogs
func (m model) dialogWidth() int {
	return max(min(64, m.width-4), minColumn)
}

// offset returns the current scroll offset
func (m model) offset() int {
	if m.mode == config.ModeContainer {
		return m.panel.YOffset
	}

	return m.window.Offset()
}

// scrollTo moves to an absolute offset, reporting whether it moved
func (m *model) scrollTo(offset int) bool {
	offset = m.vm.Clamp(offset)

	if m.mode == config.ModeContainer {
		if m.panel.YOffset == offset {
			return false
		}

		m.panel.SetYOffset(offset)

		return true
	}

	return m.window.ScrollTo(offset)
}

// scrollBy moves relative to the current offset
func (m *model) scrollBy(delta int) bool {
	return m.scrollTo(m.offset() + delta)
}

// relayout rebuilds the page for the current size, language and content
// and republishes every section's geometry to the registry
func (m *model) relayout() {
	if !m.ready {
		return
	}

	class := scroll.Classify(m.width, m.tune.cfg.Breakpoints)
	m.engine.Resize(class, float64(m.pageHeight()))

	// Anchors hold this pointer, so later layouts replace the page in place
	if m.page == nil {
		m.page = &page{}
	}

	*m.page = *buildPage(m.doc, m.lang, m.pageWidth(), m.pageHeight(), m.jumpInset(), m.engine)

	m.mountSections()
	m.registry.Measure()

	m.window.SetSize(m.width, m.pageHeight())
	m.window.SetContentHeight(m.page.total)
	m.vm.SetHeight(m.pageHeight())
	m.vm.SetTotal(m.page.total)

	m.panel.Width = m.pageWidth()
	m.panel.Height = m.pageHeight()
	m.form.setWidth(m.dialogWidth() - 6)

	m.debugf("[LAYOUT] %dx%d class=%s total=%d", m.width, m.height, class, m.page.total)

	m.syncPanel()
}

// mountSections attaches an anchor for every laid-out section and
// detaches sections the current content no longer has
func (m *model) mountSections() {
	for _, id := range sectionIDs {
		present := m.page.section(id) != nil

		switch {
		case present && !m.registry.Attached(id):
			if err := m.registry.Attach(id, sectionAnchor(m.page, id)); err != nil {
				m.debugf("[LAYOUT] %v", err)
			}

			m.debugf("[LAYOUT] mounted %s", id)

		case !present && m.registry.Attached(id):
			if err := m.registry.Detach(id); err != nil {
				m.debugf("[LAYOUT] %v", err)
			}

			m.debugf("[LAYOUT] unmounted %s", id)
		}
	}
}

// sectionAnchor measures a section of p by id
func sectionAnchor(p *page, id string) scroll.AnchorFunc {
	return func() (float64, float64, bool) {
		s := p.section(id)
		if s == nil {
			return 0, 0, false
		}

		return float64(s.top), float64(s.height), true
	}
}

// syncPanel refreshes the container panel with the page at the current offset.
// The sticky stack depends on the offset, so this runs after every scroll.
func (m *model) syncPanel() {
	if m.mode != config.ModeContainer || m.page == nil {
		return
	}

	offset := m.panel.YOffset
	m.panel.SetContent(joinLines(m.composePage(offset)))
	m.panel.SetYOffset(offset)
}

// requestFrame arms the frame gate, returning the tick that flushes it
func (m *model) requestFrame() tea.Cmd {
	schedule, gen := m.gate.Request()
	if !schedule {
		return nil
	}

	return tea.Tick(scroll.FrameInterval, func(time.Time) tea.Msg {
		return frameMsg{gen: gen}
	})
}

// observe runs one coalesced recomputation of the spy and reveal state.
// Returns true while a reveal cascade is still running.
func (m *model) observe() bool {
	// One sample feeds both engines so they agree on the frame
	sample := m.source.Sample()
	m.spy.Evaluate(sample)

	for _, t := range m.reveal.Observe(sample) {
		m.debugf("[REVEAL] %s %s -> %s", t.ID, t.From, t.To)
	}

	m.syncPanel()

	return m.cascading()
}

// cascading reports whether any visible section is still revealing children
func (m model) cascading() bool {
	if m.page == nil {
		return false
	}

	now := m.now()

	for _, s := range m.page.sections {
		since, ok := m.reveal.VisibleSince(s.id)
		if !ok {
			continue
		}

		if !m.cascade.Done(s.children(), now.Sub(since)) {
			return true
		}
	}

	return false
}

// revealed returns how many children of a section are shown now
func (m model) revealed(s *pageSection) int {
	return m.reveal.Progress(s.id, m.cascade, s.children(), m.now())
}

// setStatus shows a transient status message
func (m *model) setStatus(msg string) tea.Cmd {
	m.statusMsg = msg
	m.statusMsgAge = m.now()
	at := m.statusMsgAge

	return tea.Tick(statusMessageDuration, func(time.Time) tea.Msg {
		return statusClearMsg{at: at}
	})
}

// applyTuning pushes the tuning panel values into the engines
func (m *model) applyTuning() tea.Cmd {
	cfg := m.tune.Config()
	m.tuned = true

	lookahead, err := cfg.LookaheadFunc()
	if err != nil {
		m.debugf("[TUNE] %v", err)
		return nil
	}

	m.spy.SetLookahead(lookahead)
	m.reveal.SetThreshold(cfg.Reveal.Threshold)
	m.reveal.SetOnce(cfg.Reveal.Once)
	m.cascade = cfg.Cascade()
	m.engine.SetCardOffset(cfg.Stack.CardOffset)

	m.debugf("[TUNE] lookahead=%s/%.0f threshold=%.2f once=%v stagger=%d offset=%.0f",
		cfg.Lookahead.Mode, cfg.Lookahead.Fixed, cfg.Reveal.Threshold, cfg.Reveal.Once,
		cfg.Reveal.StaggerMS, cfg.Stack.CardOffset)

	m.relayout()

	return m.requestFrame()
}
