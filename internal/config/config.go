package config

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// Defaults applied when the config file is missing or a field is unset.
const (
	DefaultCardPrefix         = "card"
	DefaultSprintPrefix       = "sprint"
	DefaultSprintDurationDays = 14
	DefaultHistoryLimit       = 100
	DefaultDebounceMs         = 250
	DefaultRetryAttempts      = 5
	DefaultRetryBaseDelayMs   = 50
)

// Config represents the main configuration for kanban.
type Config struct {
	DataFile           string        `toml:"data_file"`
	LogDir             string        `toml:"log_dir"`
	CardPrefix         string        `toml:"card_prefix"`
	SprintPrefix       string        `toml:"sprint_prefix"`
	SprintDurationDays int           `toml:"sprint_duration_days"`
	History            HistoryConfig `toml:"history"`
	Watch              WatchConfig   `toml:"watch"`
	Save               SaveConfig    `toml:"save"`
}

// HistoryConfig bounds the undo/redo stacks.
type HistoryConfig struct {
	Limit int `toml:"limit"`
}

// WatchConfig tunes the file change detector.
type WatchConfig struct {
	DebounceMs int `toml:"debounce_ms"`
}

// SaveConfig tunes retry behaviour for conflicted saves.
type SaveConfig struct {
	RetryAttempts    int `toml:"retry_attempts"`
	RetryBaseDelayMs int `toml:"retry_base_delay_ms"`
}

// NewConfig creates a Config with defaults rooted under baseDir.
func NewConfig(baseDir string) *Config {
	cfg := &Config{
		DataFile: filepath.Join(baseDir, "kanban.json"),
		LogDir:   filepath.Join(baseDir, "log"),
	}
	cfg.applyDefaults()
	return cfg
}

// applyDefaults fills unset fields in place.
func (c *Config) applyDefaults() {
	if c.CardPrefix == "" {
		c.CardPrefix = DefaultCardPrefix
	}
	if c.SprintPrefix == "" {
		c.SprintPrefix = DefaultSprintPrefix
	}
	if c.SprintDurationDays <= 0 {
		c.SprintDurationDays = DefaultSprintDurationDays
	}
	if c.History.Limit <= 0 {
		c.History.Limit = DefaultHistoryLimit
	}
	if c.Watch.DebounceMs <= 0 {
		c.Watch.DebounceMs = DefaultDebounceMs
	}
	if c.Save.RetryAttempts <= 0 {
		c.Save.RetryAttempts = DefaultRetryAttempts
	}
	if c.Save.RetryBaseDelayMs <= 0 {
		c.Save.RetryBaseDelayMs = DefaultRetryBaseDelayMs
	}
}

// DefaultDir returns the default config directory, honouring
// XDG_CONFIG_HOME.
func DefaultDir() (string, error) {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "kanban"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolving home directory: %w", err)
	}
	return filepath.Join(home, ".config", "kanban"), nil
}

// DefaultPath returns the default config file path.
func DefaultPath() (string, error) {
	dir, err := DefaultDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.toml"), nil
}

// Manager handles reading and writing configuration.
type Manager struct{}

// Read decodes a Config from the provided reader and applies defaults.
func (m *Manager) Read(r io.Reader) (*Config, error) {
	var cfg Config
	if _, err := toml.NewDecoder(r).Decode(&cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}
	cfg.applyDefaults()
	return &cfg, nil
}

// Write encodes a Config to the provided writer.
func (m *Manager) Write(w io.Writer, cfg *Config) error {
	if err := toml.NewEncoder(w).Encode(cfg); err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}
	return nil
}

// Load reads the config at path. A missing file yields the defaults
// rooted next to the config file.
func Load(path string) (*Config, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return NewConfig(filepath.Dir(path)), nil
		}
		return nil, fmt.Errorf("failed to open config file: %w", err)
	}
	defer f.Close()

	m := &Manager{}
	cfg, err := m.Read(f)
	if err != nil {
		return nil, fmt.Errorf("reading config from %s: %w", path, err)
	}
	return cfg, nil
}

// writeToFile writes a Config to the specified file path.
func writeToFile(path string, cfg *Config) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create config file: %w", err)
	}
	defer f.Close()

	m := &Manager{}
	if err := m.Write(f, cfg); err != nil {
		return fmt.Errorf("writing config to %s: %w", path, err)
	}
	return nil
}

// Init initializes a new config file at the specified path with the
// provided Config. Refuses to overwrite an existing file.
func Init(path string, cfg *Config) error {
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("config file already exists at %s", path)
	}

	if err := writeToFile(path, cfg); err != nil {
		return fmt.Errorf("initializing config: %w", err)
	}
	return nil
}
