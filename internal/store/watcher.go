package store

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/fsnotify/fsnotify"

	"multiblog/internal/logging"
)

// Watcher reports external changes to the data files so long-lived views
// (the interactive UI) can refresh when another process rewrites the data.
// Temp files from in-flight atomic writes are ignored; only the rename
// that lands the final file triggers a notification.
type Watcher struct {
	fw     *fsnotify.Watcher
	events chan string
	done   chan struct{}
}

// NewWatcher watches the directory holding the data files. The returned
// channel carries the base name of each changed data file.
func NewWatcher(dataDir string) (*Watcher, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create watcher: %w", err)
	}
	if err := fw.Add(dataDir); err != nil {
		fw.Close()
		return nil, fmt.Errorf("failed to watch %s: %w", dataDir, err)
	}

	w := &Watcher{
		fw:     fw,
		events: make(chan string, 8),
		done:   make(chan struct{}),
	}
	go w.run()
	return w, nil
}

// Events returns the channel of changed data file names.
func (w *Watcher) Events() <-chan string {
	return w.events
}

func (w *Watcher) run() {
	defer close(w.events)
	for {
		select {
		case <-w.done:
			return
		case ev, ok := <-w.fw.Events:
			if !ok {
				return
			}
			name := filepath.Base(ev.Name)
			if strings.HasPrefix(name, ".") || strings.HasSuffix(name, ".tmp") {
				continue
			}
			if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) && !ev.Has(fsnotify.Rename) {
				continue
			}
			logging.Get(logging.CategoryStore).Debug("data file changed: %s (%s)", name, ev.Op)
			select {
			case w.events <- name:
			default:
				// Drop when the consumer lags; a refresh is a refresh.
			}
		case err, ok := <-w.fw.Errors:
			if !ok {
				return
			}
			logging.Get(logging.CategoryStore).Warn("watcher error: %v", err)
		}
	}
}

// Close stops the watcher and releases its resources.
func (w *Watcher) Close() error {
	close(w.done)
	return w.fw.Close()
}
