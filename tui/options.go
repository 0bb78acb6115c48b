// ABOUTME: Page shell configuration and injected dependencies
// ABOUTME: Defines input parameters for running the TUI

package tui

import (
	"time"

	"folio/config"
	"folio/contact"
	"folio/content"
	"folio/locale"
	"folio/signal"
)

// Options contains configuration for running the TUI
type Options struct {
	ContentPath string      // Content file; empty uses the embedded document
	Lang        locale.Lang // Initial display language
	Mode        string      // config.ModeWindow or config.ModeContainer
}

// Dependencies holds all external dependencies for the TUI
type Dependencies struct {
	Config      config.Config
	ConfigPath  string
	SaveConfig  func(string, config.Config) error
	LoadContent func(string) (*content.Document, error)
	Sender      contact.Sender
	Copy        func(string) error
	Bus         *signal.Bus
	Watcher     ChangeWaiter // nil disables live reload
	Debugf      func(string, ...any)
	Now         func() time.Time // nil uses time.Now
}
