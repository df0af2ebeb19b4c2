package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	assert.Equal(t, "data", cfg.Storage.DataDir)
	assert.Equal(t, "info", cfg.Logging.Level)
	assert.False(t, cfg.Logging.DebugMode)
	assert.Equal(t, "auto", cfg.UI.Theme)
	assert.Equal(t, 80, cfg.UI.WordWrap)
}

func TestLoadWithoutConfigFile(t *testing.T) {
	root := t.TempDir()
	cfg, err := Load(root)
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(root, "data"), cfg.Storage.DataDir)
	assert.Equal(t, filepath.Join(root, "data", "autores.csv"), cfg.AuthorsFile())
	assert.Equal(t, filepath.Join(root, "data", "posts.json"), cfg.PostsFile())
}

func TestLoadFromFile(t *testing.T) {
	root := t.TempDir()
	dir := filepath.Join(root, ".blog")
	require.NoError(t, os.MkdirAll(dir, 0755))
	content := `
storage:
  data_dir: content
logging:
  debug_mode: true
  level: debug
ui:
  theme: dark
  word_wrap: 100
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(content), 0644))

	cfg, err := Load(root)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(root, "content"), cfg.Storage.DataDir, "relative data_dir resolved against root")
	assert.True(t, cfg.Logging.DebugMode)
	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.Equal(t, "dark", cfg.UI.Theme)
	assert.Equal(t, 100, cfg.UI.WordWrap)
}

func TestLoadInvalidYAML(t *testing.T) {
	root := t.TempDir()
	dir := filepath.Join(root, ".blog")
	require.NoError(t, os.MkdirAll(dir, 0755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(":\n  - ["), 0644))

	_, err := Load(root)
	assert.Error(t, err)
}

func TestEnvOverrides(t *testing.T) {
	root := t.TempDir()

	t.Run("data dir", func(t *testing.T) {
		other := t.TempDir()
		t.Setenv("BLOG_DATA_DIR", other)

		cfg, err := Load(root)
		require.NoError(t, err)
		assert.Equal(t, other, cfg.Storage.DataDir)
	})

	t.Run("relative data dir resolved against root", func(t *testing.T) {
		t.Setenv("BLOG_DATA_DIR", "elsewhere")

		cfg, err := Load(root)
		require.NoError(t, err)
		assert.Equal(t, filepath.Join(root, "elsewhere"), cfg.Storage.DataDir)
	})

	t.Run("debug and level", func(t *testing.T) {
		t.Setenv("BLOG_DEBUG", "1")
		t.Setenv("BLOG_LOG_LEVEL", "warn")

		cfg, err := Load(root)
		require.NoError(t, err)
		assert.True(t, cfg.Logging.DebugMode)
		assert.Equal(t, "warn", cfg.Logging.Level)
	})
}

func TestSaveLoadRoundTrip(t *testing.T) {
	root := t.TempDir()

	cfg := DefaultConfig()
	cfg.Logging.DebugMode = true
	cfg.UI.Theme = "light"
	require.NoError(t, cfg.Save(root))

	got, err := Load(root)
	require.NoError(t, err)
	assert.True(t, got.Logging.DebugMode)
	assert.Equal(t, "light", got.UI.Theme)
}
