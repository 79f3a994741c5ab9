package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/pelletier/go-toml/v2"

	"searchbox/internal/domain"
	"searchbox/internal/eventbus"
)

const (
	DefaultBaseURL        = "http://localhost:5000"
	DefaultDebounceMS     = 200
	DefaultMaxSuggestions = 8
	DefaultHistoryLimit   = 8
)

// Config represents the application configuration
type Config struct {
	Version          int        `toml:"version"`
	BaseURL          string     `toml:"base_url"`
	SearchType       string     `toml:"search_type"`
	DebounceMS       int        `toml:"debounce_ms"`
	MaxSuggestions   int        `toml:"max_suggestions"`
	HistoryLimit     int        `toml:"history_limit"`
	RequestTimeoutMS int        `toml:"request_timeout_ms"` // 0 = no client-side timeout
	UISettings       UISettings `toml:"ui"`
}

// UISettings represents UI-related configuration
type UISettings struct {
	ShowScores bool `toml:"show_scores"`
	Mouse      bool `toml:"mouse"`
}

// Debounce returns the input debounce interval
func (c *Config) Debounce() time.Duration {
	return time.Duration(c.DebounceMS) * time.Millisecond
}

// RequestTimeout returns the HTTP client timeout, zero meaning none
func (c *Config) RequestTimeout() time.Duration {
	return time.Duration(c.RequestTimeoutMS) * time.Millisecond
}

// Mode returns the configured search type
func (c *Config) Mode() domain.SearchType {
	return domain.ParseSearchType(c.SearchType)
}

// normalize replaces unset or invalid values with defaults
func (c *Config) normalize() {
	if c.Version == 0 {
		c.Version = 1
	}
	if c.BaseURL == "" {
		c.BaseURL = DefaultBaseURL
	}
	c.SearchType = string(domain.ParseSearchType(c.SearchType))
	if c.DebounceMS <= 0 {
		c.DebounceMS = DefaultDebounceMS
	}
	if c.MaxSuggestions <= 0 {
		c.MaxSuggestions = DefaultMaxSuggestions
	}
	if c.HistoryLimit <= 0 {
		c.HistoryLimit = DefaultHistoryLimit
	}
	if c.RequestTimeoutMS < 0 {
		c.RequestTimeoutMS = 0
	}
}

// ConfigService handles configuration management
type ConfigService interface {
	Load() (*Config, error)
	Save(config *Config) error
	LoadFromPath(path string) (*Config, error)
	SaveToPath(config *Config, path string) error
	Path() string
}

// configService is the concrete implementation
type configService struct {
	bus      eventbus.EventBus
	filePath string
}

// DefaultPath returns the per-user config file location
func DefaultPath() string {
	configDir, err := os.UserConfigDir()
	if err != nil {
		configDir, err = os.UserHomeDir()
		if err != nil {
			configDir = "."
		}
		configDir = filepath.Join(configDir, ".config")
	}
	return filepath.Join(configDir, "searchbox", "config.toml")
}

// NewConfigService creates a config service for the given file.
// An empty path selects DefaultPath.
func NewConfigService(path string) ConfigService {
	if path == "" {
		path = DefaultPath()
	}
	return &configService{filePath: path}
}

// NewConfigServiceWithBus creates a config service with event bus support
func NewConfigServiceWithBus(path string, bus eventbus.EventBus) ConfigService {
	cs := NewConfigService(path).(*configService)
	cs.bus = bus
	return cs
}

func (cs *configService) Path() string {
	return cs.filePath
}

// Load loads the configuration from file, falling back to defaults when it does not exist
func (cs *configService) Load() (*Config, error) {
	cfg, err := cs.LoadFromPath(cs.filePath)
	if errors.Is(err, os.ErrNotExist) {
		cfg = DefaultConfig()
	} else if err != nil {
		return nil, err
	}

	if cs.bus != nil {
		cs.bus.Publish(domain.ConfigLoadedEvent{
			BaseURL:    cfg.BaseURL,
			SearchType: cfg.Mode(),
		})
	}

	return cfg, nil
}

// Save saves the configuration to file
func (cs *configService) Save(config *Config) error {
	if err := cs.SaveToPath(config, cs.filePath); err != nil {
		return err
	}

	if cs.bus != nil {
		cs.bus.Publish(domain.ConfigSavedEvent{})
	}

	return nil
}

// LoadFromPath loads configuration from a specific path.
// A missing file yields an error wrapping os.ErrNotExist.
func (cs *configService) LoadFromPath(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("config file not found: %s: %w", path, err)
		}
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := DefaultConfig()
	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	cfg.normalize()

	return cfg, nil
}

// SaveToPath saves configuration to a specific path
func (cs *configService) SaveToPath(config *Config, path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := toml.Marshal(config)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		Version:        1,
		BaseURL:        DefaultBaseURL,
		SearchType:     string(domain.SearchWebpage),
		DebounceMS:     DefaultDebounceMS,
		MaxSuggestions: DefaultMaxSuggestions,
		HistoryLimit:   DefaultHistoryLimit,
		UISettings: UISettings{
			Mouse: true,
		},
	}
}
