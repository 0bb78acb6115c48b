// ABOUTME: Print mode implementation for non-interactive output
// ABOUTME: Loads content and writes the fully revealed page to a writer

package main

import (
	"io"

	"folio/config"
	"folio/content"
	"folio/tui"
)

// RunPrint writes the page for opts at the given width
func RunPrint(w io.Writer, opts tui.Options, cfg config.Config, width int) error {
	doc, err := content.Load(opts.ContentPath)
	if err != nil {
		return err
	}

	deps := tui.Dependencies{
		Config: cfg,
		Debugf: debugf,
	}

	return tui.Print(w, doc, opts, deps, width)
}
