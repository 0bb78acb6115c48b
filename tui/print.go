// ABOUTME: Non-interactive rendering of the whole page
// ABOUTME: Lays the page out once, fully revealed, for piping to a file or pager

package tui

import (
	"fmt"
	"io"
	"strings"

	"folio/config"
	"folio/content"
	"folio/reveal"
)

// printHeight is the viewport height the printed page is laid out for
const printHeight = 24

// Print writes every page row, fully revealed, laid out for width columns.
// The stack is drawn at rest, so cards appear one after another.
func Print(w io.Writer, doc *content.Document, opts Options, deps Dependencies, width int) error {
	opts.Mode = config.ModeWindow
	deps.Config.Reveal.DelayMS = 0
	deps.Config.Reveal.StaggerMS = 0

	m, err := initModel(doc, opts, deps)
	if err != nil {
		return err
	}
	defer m.unsubscribe()

	// Without an intersector every section is shown at once
	m.reveal.Close()
	m.reveal = reveal.NewController(m.registry, nil, reveal.Options{Now: m.now})
	defer m.reveal.Close()

	m.width = max(width, minColumn)
	m.height = printHeight
	m.ready = true

	m.relayout()
	m.reveal.Observe(m.source.Sample())

	for _, line := range m.composePage(0) {
		if _, err := fmt.Fprintln(w, strings.TrimRight(line, " ")); err != nil {
			return fmt.Errorf("failed to write page: %w", err)
		}
	}

	return nil
}
