package store

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestWatcherReportsDataFileChanges(t *testing.T) {
	dir := t.TempDir()
	w, err := NewWatcher(dir)
	require.NoError(t, err)
	defer w.Close()

	require.NoError(t, writeFileAtomic(filepath.Join(dir, "posts.json"), []byte("[]")))

	deadline := time.After(3 * time.Second)
	for {
		select {
		case name := <-w.Events():
			require.NotContains(t, name, ".tmp", "temp files from atomic writes are filtered")
			if name == "posts.json" {
				return
			}
		case <-deadline:
			t.Fatal("timed out waiting for change notification")
		}
	}
}

func TestWatcherClose(t *testing.T) {
	w, err := NewWatcher(t.TempDir())
	require.NoError(t, err)
	require.NoError(t, w.Close())

	// Events channel drains and closes once the watcher stops.
	select {
	case _, ok := <-w.Events():
		require.False(t, ok)
	case <-time.After(3 * time.Second):
		t.Fatal("events channel not closed")
	}
}
