// ABOUTME: Content file watcher for live reload while editing copy
// ABOUTME: Watches the parent directory so editor rename-and-replace saves are seen

package content

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
)

// ReloadDebounce is how long Wait lets a burst of events settle
const ReloadDebounce = 100 * time.Millisecond

// Watcher reports changes to a single content file
type Watcher struct {
	fs       *fsnotify.Watcher
	path     string
	debounce time.Duration
	logf     func(format string, args ...any)
}

// Watch starts watching path. logf receives watcher errors and may be nil.
func Watch(path string, logf func(format string, args ...any)) (*Watcher, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve content path: %w", err)
	}

	fs, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create file watcher: %w", err)
	}

	if err := fs.Add(filepath.Dir(abs)); err != nil {
		fs.Close()
		return nil, fmt.Errorf("failed to watch content directory: %w", err)
	}

	if logf == nil {
		logf = func(string, ...any) {}
	}

	return &Watcher{fs: fs, path: abs, debounce: ReloadDebounce, logf: logf}, nil
}

// Path returns the absolute path being watched
func (w *Watcher) Path() string {
	return w.path
}

// Wait blocks until the file changes and the burst settles.
// It returns false once the watcher is closed.
func (w *Watcher) Wait() bool {
	for {
		select {
		case event, ok := <-w.fs.Events:
			if !ok {
				return false
			}

			if w.relevant(event) {
				return w.settle()
			}

		case err, ok := <-w.fs.Errors:
			if !ok {
				return false
			}

			w.logf("[WATCHER] Error: %v", err)
		}
	}
}

// settle swallows follow-up events until the file has been quiet for the debounce window
func (w *Watcher) settle() bool {
	timer := time.NewTimer(w.debounce)
	defer timer.Stop()

	for {
		select {
		case event, ok := <-w.fs.Events:
			if !ok {
				return false
			}

			if w.relevant(event) {
				timer.Reset(w.debounce)
			}

		case err, ok := <-w.fs.Errors:
			if !ok {
				return false
			}

			w.logf("[WATCHER] Error: %v", err)

		case <-timer.C:
			return true
		}
	}
}

func (w *Watcher) relevant(event fsnotify.Event) bool {
	if filepath.Clean(event.Name) != w.path {
		return false
	}

	return event.Has(fsnotify.Write) || event.Has(fsnotify.Create) || event.Has(fsnotify.Rename)
}

// Close stops watching
func (w *Watcher) Close() error {
	return w.fs.Close()
}
