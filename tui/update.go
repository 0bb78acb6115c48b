// ABOUTME: Event handling and state updates for the TUI
// ABOUTME: Implements the Bubble Tea Update() function and message handlers

package tui

import (
	"fmt"
	"runtime/debug"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"folio/locale"
	"folio/signal"
	"folio/stack"
)

// Update handles messages and updates the model
//
//nolint:ireturn // Bubble Tea framework requires returning tea.Model interface
func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	defer func() {
		if r := recover(); r != nil {
			m.debugf("[PANIC] Update panic: %v", r)
			m.debugf("[PANIC] Stack trace: %s", string(debug.Stack()))
			panic(r) // Re-panic so Bubble Tea can handle it
		}
	}()

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ready = true

		m.relayout()

		cmd := m.requestFrame()
		return m, cmd

	case frameMsg:
		// Stale generations were superseded by a newer frame
		if !m.gate.Flush(msg.gen) {
			return m, nil
		}

		if m.observe() {
			cmd := m.requestFrame()
			return m, cmd
		}

		return m, nil

	case signalMsg:
		cmd := m.handleSignal(msg.name)
		return m, tea.Batch(cmd, waitForSignal(m.signals))

	case contentChangedMsg:
		m.debugf("[CONTENT] %s changed, reloading", m.contentPath)

		return m, tea.Batch(
			reloadContent(m.loadContent, m.contentPath),
			waitForContentChange(m.watcher),
		)

	case contentLoadedMsg:
		cmd := m.handleContentLoaded(msg)
		return m, cmd

	case contactResultMsg:
		cmd := m.handleContactResult(msg)
		return m, cmd

	case contactCloseMsg:
		if msg.epoch == m.form.epoch && m.form.state == formSent {
			m.form.Close()
		}

		return m, nil

	case statusClearMsg:
		// A newer message replaced this one
		if msg.at.Equal(m.statusMsgAge) {
			m.statusMsg = ""
		}

		return m, nil

	case tea.MouseMsg:
		cmd := m.handleMouse(msg)
		return m, cmd

	case tea.KeyMsg:
		switch {
		case m.form.open:
			return m.handleFormKey(msg)
		case m.tuneOpen:
			return m.handleTuneKey(msg)
		default:
			return m.handlePageKey(msg)
		}
	}

	// Cursor blinks and similar field messages
	if m.form.open {
		return m, m.form.update(msg)
	}

	return m, nil
}

// handlePageKey handles keys while no dialog is open
func (m model) handlePageKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.Quit):
		m.quitting = true
		return m, tea.Quit

	case key.Matches(msg, keys.Up):
		cmd := m.afterScroll(m.scrollBy(-lineStep))
		return m, cmd

	case key.Matches(msg, keys.Down):
		cmd := m.afterScroll(m.scrollBy(lineStep))
		return m, cmd

	case key.Matches(msg, keys.PageUp):
		cmd := m.afterScroll(m.scrollBy(-m.vm.PageSize()))
		return m, cmd

	case key.Matches(msg, keys.PageDown):
		cmd := m.afterScroll(m.scrollBy(m.vm.PageSize()))
		return m, cmd

	case key.Matches(msg, keys.Home):
		cmd := m.afterScroll(m.scrollTo(0))
		return m, cmd

	case key.Matches(msg, keys.End):
		cmd := m.afterScroll(m.scrollTo(m.vm.MaxOffset()))
		return m, cmd

	case key.Matches(msg, keys.Jump):
		cmd := m.jumpTo(int(msg.String()[0] - '1'))
		return m, cmd

	case key.Matches(msg, keys.Back):
		cmd := m.handleBack()
		return m, cmd

	case key.Matches(msg, keys.Forward):
		cmd := m.handleForward()
		return m, cmd

	case key.Matches(msg, keys.Activate):
		if m.activeSection() == sectionContact {
			m.bus.Publish(signal.OpenContact)
		}

	case key.Matches(msg, keys.Contact):
		m.bus.Publish(signal.OpenContact)

	case key.Matches(msg, keys.Copy):
		cmd := m.copyEmail()
		return m, cmd

	case key.Matches(msg, keys.Lang):
		m.lang = m.lang.Toggle()
		m.debugf("[LOCALE] switched to %s", m.lang)
		m.relayout()

		cmd := m.requestFrame()
		return m, cmd

	case key.Matches(msg, keys.Tune):
		m.tuneOpen = true
	}

	return m, nil
}

// handleTuneKey handles keys while the settings panel is open
func (m model) handleTuneKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case msg.String() == "ctrl+c":
		m.quitting = true
		return m, tea.Quit

	case key.Matches(msg, keys.Close), key.Matches(msg, keys.Tune):
		m.tuneOpen = false

	case key.Matches(msg, keys.Up):
		m.paramMgr.SelectPrevious()

	case key.Matches(msg, keys.Down):
		m.paramMgr.SelectNext()

	case key.Matches(msg, keys.Left):
		if m.paramMgr.Decrease() {
			cmd := m.applyTuning()
			return m, cmd
		}

	case key.Matches(msg, keys.Right):
		if m.paramMgr.Increase() {
			cmd := m.applyTuning()
			return m, cmd
		}

	case key.Matches(msg, keys.Reset):
		m.paramMgr.ResetToDefaults(m.defaults)
		cmd := m.applyTuning()
		return m, cmd
	}

	return m, nil
}

// handleMouse scrolls on the wheel and opens the contact panel from the button
func (m *model) handleMouse(msg tea.MouseMsg) tea.Cmd {
	if m.form.open || m.tuneOpen {
		return nil
	}

	switch {
	case msg.Button == tea.MouseButtonWheelUp:
		return m.afterScroll(m.scrollBy(-wheelStep))

	case msg.Button == tea.MouseButtonWheelDown:
		return m.afterScroll(m.scrollBy(wheelStep))

	case msg.Action == tea.MouseActionPress && msg.Button == tea.MouseButtonLeft:
		if m.fabHit(msg.X, msg.Y) {
			m.bus.Publish(signal.OpenContact)
		}
	}

	return nil
}

// afterScroll refreshes the panel and schedules a coalesced frame
func (m *model) afterScroll(moved bool) tea.Cmd {
	if !moved {
		return nil
	}

	m.syncPanel()

	return m.requestFrame()
}

// activeSection returns the id of the section the scroll-spy marks active
func (m model) activeSection() string {
	active := m.spy.Active()
	if active < 0 || active >= len(sectionIDs) {
		return ""
	}

	return sectionIDs[active]
}

// current returns the position recorded in jump history
func (m model) current() Position {
	return Position{Offset: m.offset(), Section: m.spy.Active()}
}

// jumpTo scrolls so section i starts just below the fixed header
func (m *model) jumpTo(i int) tea.Cmd {
	if i < 0 || i >= len(sectionIDs) {
		return nil
	}

	id := sectionIDs[i]

	d, err := m.registry.Lookup(id)
	if err != nil || !d.Measured() {
		// Sections the content leaves out have nowhere to jump to
		return nil
	}

	target := m.vm.JumpOffset(int(d.Top), m.jumpInset())
	if target == m.offset() {
		return nil
	}

	m.history.Push(m.current())
	m.debugf("[NAV] jump to %s at %d", id, target)

	return m.afterScroll(m.scrollTo(target))
}

// handleBack returns to the position before the last jump
func (m *model) handleBack() tea.Cmd {
	pos, ok := m.history.Back(m.current())
	if !ok {
		return nil
	}

	return m.afterScroll(m.scrollTo(pos.Offset))
}

// handleForward re-applies a jump undone by handleBack
func (m *model) handleForward() tea.Cmd {
	pos, ok := m.history.Forward(m.current())
	if !ok {
		return nil
	}

	return m.afterScroll(m.scrollTo(pos.Offset))
}

// handleSignal reacts to a bus signal
func (m *model) handleSignal(name signal.Name) tea.Cmd {
	if name != signal.OpenContact || m.form.open {
		return nil
	}

	m.debugf("[SIGNAL] %s", name)
	m.tuneOpen = false

	return m.form.Open(m.lang)
}

// copyEmail puts the profile address on the clipboard
func (m *model) copyEmail() tea.Cmd {
	if m.copy == nil {
		return nil
	}

	if err := m.copy(m.doc.Profile.Email); err != nil {
		m.debugf("[CONTACT] copy failed: %v", err)
		return m.setStatus(fmt.Sprintf("%s: %v", m.doc.Profile.Email, err))
	}

	return m.setStatus(locale.T(m.lang, locale.KeyCopied))
}

// handleContentLoaded swaps in a reloaded document, keeping the old one on error
func (m *model) handleContentLoaded(msg contentLoadedMsg) tea.Cmd {
	if msg.err != nil {
		m.debugf("[CONTENT] reload failed: %v", msg.err)
		return m.setStatus(locale.T(m.lang, locale.KeyReloadFailed))
	}

	cfg := m.tune.Config()

	m.doc = msg.doc
	m.engine = stack.New(m.doc.StackEntries(), stackMetrics(cfg), cfg.SpacingTable())
	m.relayout()

	m.debugf("[CONTENT] reloaded %d projects", len(m.doc.Projects))

	return tea.Batch(m.setStatus(locale.T(m.lang, locale.KeyReloaded)), m.requestFrame())
}
