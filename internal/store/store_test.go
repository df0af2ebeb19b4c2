package store

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func TestNextID(t *testing.T) {
	tests := []struct {
		name string
		ids  []string
		want string
	}{
		{"empty", nil, "1"},
		{"sequential", []string{"1", "2", "3"}, "4"},
		{"gap does not reuse", []string{"1", "5"}, "6"},
		{"unordered", []string{"7", "2", "4"}, "8"},
		{"unparseable ignored", []string{"x", "2"}, "3"},
		{"all unparseable", []string{"a", "b"}, "1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := nextID(tt.ids); got != tt.want {
				t.Errorf("nextID(%v) = %q, want %q", tt.ids, got, tt.want)
			}
		})
	}
}

func TestWriteFileAtomic(t *testing.T) {
	dir := t.TempDir()

	t.Run("creates parent directory", func(t *testing.T) {
		path := filepath.Join(dir, "nested", "deep", "file.txt")
		require.NoError(t, writeFileAtomic(path, []byte("hello")))

		data, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Equal(t, "hello", string(data))
	})

	t.Run("replaces existing content", func(t *testing.T) {
		path := filepath.Join(dir, "replace.txt")
		require.NoError(t, writeFileAtomic(path, []byte("old")))
		require.NoError(t, writeFileAtomic(path, []byte("new")))

		data, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Equal(t, "new", string(data))
	})

	t.Run("leaves no temp files behind", func(t *testing.T) {
		path := filepath.Join(dir, "clean.txt")
		require.NoError(t, writeFileAtomic(path, []byte("x")))

		entries, err := os.ReadDir(dir)
		require.NoError(t, err)
		for _, e := range entries {
			assert.NotContains(t, e.Name(), ".tmp")
		}
	})
}
