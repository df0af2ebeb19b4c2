// Package config loads and resolves the blog manager configuration.
// Configuration is optional: with no config file present the defaults
// place the data files under <root>/data/, matching the layout earlier
// versions of the tool used. The resolved root is always explicit — it
// is threaded into store construction, never read from process state.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// ConfigFileName is the optional per-project config file, relative to root.
const ConfigFileName = ".blog/config.yaml"

// Data file names inside the data directory. These are fixed: the CSV and
// JSON formats (and names) are shared with earlier versions of the tool.
const (
	AuthorsFileName = "autores.csv"
	PostsFileName   = "posts.json"
)

// Config holds all blog manager configuration.
type Config struct {
	// Core settings
	Name    string `yaml:"name"`
	Version string `yaml:"version"`

	// Storage settings
	Storage StorageConfig `yaml:"storage"`

	// Logging
	Logging LoggingConfig `yaml:"logging"`

	// UI settings
	UI UIConfig `yaml:"ui"`
}

// StorageConfig configures the flat-file stores.
type StorageConfig struct {
	// DataDir holds autores.csv and posts.json. Relative values are
	// resolved against the project root at load time.
	DataDir string `yaml:"data_dir"`
}

// LoggingConfig configures the category file logger.
type LoggingConfig struct {
	DebugMode bool   `yaml:"debug_mode"`
	Level     string `yaml:"level"` // debug, info, warn, error
}

// UIConfig configures the interactive terminal UI.
type UIConfig struct {
	Theme    string `yaml:"theme"` // auto, light, dark
	WordWrap int    `yaml:"word_wrap"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		Name:    "multiblog",
		Version: "1.0.0",

		Storage: StorageConfig{
			DataDir: "data",
		},

		Logging: LoggingConfig{
			DebugMode: false,
			Level:     "info",
		},

		UI: UIConfig{
			Theme:    "auto",
			WordWrap: 80,
		},
	}
}

// Load reads the config for the given project root. A missing config file
// is not an error: defaults apply. Environment variables override file
// values. The returned config has Storage.DataDir resolved to an
// absolute path.
func Load(root string) (*Config, error) {
	return load(root, filepath.Join(root, filepath.FromSlash(ConfigFileName)), true)
}

// LoadFile is Load with an explicit config file path. Unlike the default
// location, an explicitly named file must exist.
func LoadFile(root, path string) (*Config, error) {
	return load(root, path, false)
}

func load(root, path string, missingOK bool) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if !missingOK || !os.IsNotExist(err) {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	} else if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
	}

	cfg.applyEnvOverrides()

	if !filepath.IsAbs(cfg.Storage.DataDir) {
		cfg.Storage.DataDir = filepath.Join(root, cfg.Storage.DataDir)
	}
	return cfg, nil
}

// applyEnvOverrides applies BLOG_* environment variables on top of the
// file/default values.
func (c *Config) applyEnvOverrides() {
	if v := os.Getenv("BLOG_DATA_DIR"); v != "" {
		c.Storage.DataDir = v
	}
	if v := os.Getenv("BLOG_DEBUG"); v == "1" || v == "true" {
		c.Logging.DebugMode = true
	}
	if v := os.Getenv("BLOG_LOG_LEVEL"); v != "" {
		c.Logging.Level = v
	}
}

// AuthorsFile returns the resolved path of the authors CSV.
func (c *Config) AuthorsFile() string {
	return filepath.Join(c.Storage.DataDir, AuthorsFileName)
}

// PostsFile returns the resolved path of the posts JSON.
func (c *Config) PostsFile() string {
	return filepath.Join(c.Storage.DataDir, PostsFileName)
}

// Save writes the config to <root>/.blog/config.yaml.
func (c *Config) Save(root string) error {
	path := filepath.Join(root, filepath.FromSlash(ConfigFileName))
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	return nil
}
