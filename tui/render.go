// ABOUTME: Rendering functions for TUI components
// ABOUTME: Composes revealed sections, the sticky card stack, header, status bar and settings

package tui

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"folio/content"
	"folio/locale"
	"folio/stack"
)

// composePage renders every page row for the scroll offset.
// Hidden children keep their rows blank; the stack is placed per offset.
func (m model) composePage(offset int) []string {
	if m.page == nil {
		return nil
	}

	lines := make([]string, 0, m.page.total)

	for i := range m.page.sections {
		s := &m.page.sections[i]
		canvas := make([]string, s.height)
		shown := m.revealed(s)

		if s.id == sectionProjects {
			m.paintStack(canvas, s, shown, offset)
		} else {
			paintBlocks(canvas, s, shown)
		}

		lines = append(lines, canvas...)
	}

	return lines
}

// paintBlocks lays blocks top to bottom, leaving unrevealed ones blank
func paintBlocks(canvas []string, s *pageSection, shown int) {
	row := s.padTop

	for k, block := range s.blocks {
		if k < shown {
			paint(canvas, row, block)
		}

		row += len(block)
	}
}

// paintStack draws the floating title and the cards where the stack
// engine places them. Cards paint in z-order so later cards cover earlier.
func (m model) paintStack(canvas []string, s *pageSection, shown, offset int) {
	frame := m.engine.Layout(float64(s.top), float64(offset))

	// Screen row to section row
	rel := func(screen float64) int {
		return int(math.Round(screen + float64(offset) - float64(s.top)))
	}

	if shown >= 1 && len(s.blocks) > 0 {
		paint(canvas, rel(frame.TitleTop), s.blocks[0])
	}

	for _, p := range frame.Cards {
		child := p.Index + 1
		if child >= len(s.blocks) || shown <= child {
			continue
		}

		paint(canvas, rel(p.Top), s.blocks[child])
	}
}

// paint copies lines into canvas at row, clipping at both edges
func paint(canvas []string, row int, lines []string) {
	for i, line := range lines {
		r := row + i
		if r >= 0 && r < len(canvas) {
			canvas[r] = line
		}
	}
}

// renderCard renders one project as a bordered card of exactly height rows
func renderCard(p content.Project, theme stack.Theme, lang locale.Lang, width, height int) []string {
	inner := max(width-4, 1)

	meta := p.Type.Get(lang)
	if p.Period != "" {
		meta += " · " + p.Period
	}

	glowStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(theme.Glow))
	borderStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(theme.Border))

	body := []string{
		mutedStyle.Render(content.Truncate(meta, inner)),
		glowStyle.Render(content.Truncate(p.Title.Get(lang), inner)),
		"",
	}

	for _, f := range p.Features.Get(lang) {
		for i, line := range content.Wrap(f, inner-2) {
			if i == 0 {
				body = append(body, borderStyle.Render("▸ ")+line)
			} else {
				body = append(body, "  "+line)
			}
		}
	}

	if desc := p.Description.Get(lang); desc != "" {
		body = append(body, "")
		body = append(body, content.RenderMarkdown(desc, inner)...)
	}

	if len(p.Technologies) > 0 {
		body = append(body, "")

		for _, line := range content.Wrap(strings.Join(p.Technologies, " · "), inner) {
			body = append(body, accentStyle.Render(line))
		}
	}

	var links []string
	if p.GitHub != "" {
		links = append(links, p.GitHub)
	}

	if p.Live != "" {
		links = append(links, p.Live)
	}

	if len(links) > 0 {
		body = append(body, mutedStyle.Render(content.Truncate(strings.Join(links, "  "), inner)))
	}

	// The links row survives when the body overflows
	rows := max(height-2, 1)
	if len(body) > rows && len(links) > 0 {
		last := body[len(body)-1]
		body = append(body[:rows-1], last)
	}

	card := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(theme.Border)).
		Padding(0, 1).
		Width(max(width-2, 1)).
		Height(rows).
		Render(joinLines(fitRows(body, rows)))

	return fitRows(strings.Split(card, "\n"), height)
}

// renderHeader renders the fixed name and navigation rows.
// The active section comes from the scroll-spy.
func (m model) renderHeader() []string {
	name := titleStyle.Render(content.Truncate(m.doc.Name(m.lang), 24))
	active := m.spy.Active()

	items := make([]string, len(sectionNavKeys))
	for i, key := range sectionNavKeys {
		label := fmt.Sprintf("%d %s", i+1, locale.T(m.lang, key))
		if i == active {
			items[i] = activeNavStyle.Render(label)
		} else {
			items[i] = navStyle.Render(label)
		}
	}

	line := name + "  " + strings.Join(items, "")
	langTag := mutedStyle.Render(m.scrollIndicator() + " " + strings.ToUpper(m.lang.String()))

	if gap := m.width - lipgloss.Width(line) - lipgloss.Width(langTag); gap > 0 {
		line += strings.Repeat(" ", gap) + langTag
	}

	line = lipgloss.NewStyle().MaxWidth(m.width).Render(line)
	rule := ruleStyle.Render(strings.Repeat("─", max(m.width, 0)))

	return []string{line, rule}
}

// renderStatusBar renders the status or help line with the contact button
func (m model) renderStatusBar() string {
	fab := m.renderFab()

	text := locale.T(m.lang, locale.KeyHelp)
	if m.statusMsg != "" {
		text = m.statusMsg
	}

	avail := m.width - lipgloss.Width(fab)
	if avail < 3 {
		return fab
	}

	left := statusStyle.Width(avail).Render(content.Truncate(text, avail-2))

	return lipgloss.JoinHorizontal(lipgloss.Top, left, fab)
}

func (m model) renderFab() string {
	return fabStyle.Render(locale.T(m.lang, locale.KeyFab))
}

// fabHit reports whether a screen cell lies on the contact button
func (m model) fabHit(x, y int) bool {
	return y == m.height-1 && x >= m.width-lipgloss.Width(m.renderFab())
}

// renderTuning renders the scroll engine settings panel
func (m model) renderTuning() string {
	var s string

	s += titleStyle.Render(locale.T(m.lang, locale.KeyTuneTitle)) + "\n\n"

	for i, param := range m.paramMgr.All() {
		var value string

		switch {
		case param.BoolValue != nil:
			value = "off"
			if *param.BoolValue {
				value = "on"
			}
		case param.IntValue != nil:
			value = strconv.Itoa(*param.IntValue)
		case param.Value != nil:
			value = fmt.Sprintf("%.2f", *param.Value)
		default:
			value = "N/A"
		}

		// Fixed width formatting to prevent column misalignment
		prefix := "  "
		if i == m.paramMgr.Selected() {
			prefix = "► "
		}

		line := fmt.Sprintf("%s%-25s %6s", prefix, param.Name, value)

		if i == m.paramMgr.Selected() {
			s += selectedParamStyle.Render(line) + "\n"
		} else {
			s += paramStyle.Render(line) + "\n"
		}
	}

	s += "\n" + helpStyle.Render("↑/↓ select | ←/→ adjust | r reset | esc close")

	return dialogStyle.Render(s)
}
