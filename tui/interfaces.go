// ABOUTME: Interfaces and messages connecting the page shell to background work
// ABOUTME: Content watching, signal delivery and mail sending re-enter as messages

package tui

import (
	"time"

	"folio/content"
	"folio/signal"
)

// ChangeWaiter blocks until watched content changes.
// content.Watcher implements it.
type ChangeWaiter interface {
	Wait() bool
	Close() error
}

// frameMsg flushes one pending animation frame
type frameMsg struct {
	gen uint64
}

// signalMsg delivers a bus signal into the update loop
type signalMsg struct {
	name signal.Name
}

// contentChangedMsg is sent when the content file changes on disk
type contentChangedMsg struct{}

// contentLoadedMsg carries a reloaded document
type contentLoadedMsg struct {
	doc *content.Document
	err error
}

// contactResultMsg reports a finished send
type contactResultMsg struct {
	epoch int
	err   error
}

// contactCloseMsg auto-closes the contact panel after a successful send
type contactCloseMsg struct {
	epoch int
}

// statusClearMsg clears a transient status message
type statusClearMsg struct {
	at time.Time
}
