// ABOUTME: Rendering and display functions for the TUI
// ABOUTME: Implements the Bubble Tea View() function for both binding modes

package tui

import (
	"runtime/debug"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"folio/config"
)

// View renders the TUI
func (m model) View() string {
	defer func() {
		if r := recover(); r != nil {
			m.debugf("[PANIC] View panic: %v", r)
			m.debugf("[PANIC] Stack trace: %s", string(debug.Stack()))
			panic(r) // Re-panic so Bubble Tea can handle it
		}
	}()

	if m.quitting {
		if m.tuned {
			return "Saving settings and exiting...\n"
		}

		return ""
	}

	if !m.ready || m.page == nil {
		return "Loading...\n"
	}

	var body []string
	if m.mode == config.ModeContainer {
		body = m.containerBody()
	} else {
		body = m.windowBody()
	}

	return joinLines(body) + "\n" + m.renderStatusBar()
}

// windowBody renders the page scrolled by the terminal itself.
// The header is drawn over the first page rows, so content scrolls under it.
func (m model) windowBody() []string {
	height := m.pageHeight()
	offset := m.offset()

	screen := make([]string, height)
	if dialog := m.renderDialog(); dialog != "" {
		copy(screen, strings.Split(m.place(dialog, height), "\n"))
	} else {
		lines := m.composePage(offset)
		if offset < len(lines) {
			copy(screen, lines[offset:])
		}
	}

	copy(screen, m.renderHeader())

	return screen
}

// containerBody renders the header above a bordered scrolling panel
func (m model) containerBody() []string {
	body := m.renderHeader()

	if dialog := m.renderDialog(); dialog != "" {
		placed := m.place(dialog, m.pageHeight()+panelBorder)
		return append(body, strings.Split(placed, "\n")...)
	}

	panel := panelStyle.Render(m.panel.View())

	return append(body, strings.Split(panel, "\n")...)
}

// renderDialog returns the open dialog, if any
func (m model) renderDialog() string {
	switch {
	case m.form.open:
		return m.renderContactForm()
	case m.tuneOpen:
		return m.renderTuning()
	}

	return ""
}

// place centers a dialog in an area of the given height
func (m model) place(dialog string, height int) string {
	return lipgloss.Place(m.width, height, lipgloss.Center, lipgloss.Center, dialog)
}

// scrollIndicator shows which directions still have content
func (m model) scrollIndicator() string {
	switch m.vm.GetPhase(m.offset()) {
	case TopPhase:
		if m.vm.MaxOffset() == 0 {
			return " "
		}

		return "↓"
	case BottomPhase:
		return "↑"
	default:
		return "↕"
	}
}
