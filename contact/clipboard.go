// ABOUTME: Copies the contact address to the system clipboard
// ABOUTME: Fails cleanly on headless systems without a clipboard utility

package contact

import (
	"errors"

	"github.com/atotto/clipboard"
)

// ErrNoClipboard is returned when the platform has no clipboard support
var ErrNoClipboard = errors.New("clipboard unavailable")

var writeClipboard = clipboard.WriteAll

// CopyAddress writes addr to the clipboard
func CopyAddress(addr string) error {
	if addr == "" {
		return ErrMissingField
	}

	if clipboard.Unsupported {
		return ErrNoClipboard
	}

	return writeClipboard(addr)
}
