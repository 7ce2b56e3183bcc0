package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/hashicorp/go-multierror"
	"github.com/pelletier/go-toml/v2"
)

// Environment overrides applied on top of the config file
const (
	EnvEndpoint = "SUGGESTBOX_ENDPOINT"
	EnvLogFile  = "SUGGESTBOX_LOG_FILE"
)

// Config represents the application configuration
type Config struct {
	Version int            `toml:"version"`
	Source  SourceSettings `toml:"source"`
	UI      UISettings     `toml:"ui"`
	LogFile string         `toml:"log_file"`
}

// SourceSettings configures the remote suggestion endpoint
type SourceSettings struct {
	Endpoint  string  `toml:"endpoint"`
	Path      string  `toml:"path"`
	TimeoutMS int     `toml:"timeout_ms"`
	RateLimit float64 `toml:"rate_limit"` // queries per second, 0 disables limiting
}

// UISettings represents combobox behaviour
type UISettings struct {
	Placeholder     string `toml:"placeholder"`
	Prompt          string `toml:"prompt"`
	DebounceMS      int    `toml:"debounce_ms"`
	MinQueryLength  int    `toml:"min_query_length"`
	MaxResults      int    `toml:"max_results"`
	MaxVisible      int    `toml:"max_visible"`
	AutoSelectFirst bool   `toml:"auto_select_first"`
	CopyOnSelect    bool   `toml:"copy_on_select"`
}

// Debounce returns the debounce interval
func (u UISettings) Debounce() time.Duration {
	return time.Duration(u.DebounceMS) * time.Millisecond
}

// Timeout returns the per-request timeout
func (s SourceSettings) Timeout() time.Duration {
	return time.Duration(s.TimeoutMS) * time.Millisecond
}

// URL returns the endpoint joined with the suggestion path
func (s SourceSettings) URL() string {
	return strings.TrimRight(s.Endpoint, "/") + "/" + strings.TrimLeft(s.Path, "/")
}

// Validate reports every problem with the configuration at once
func (c *Config) Validate() error {
	var result *multierror.Error

	if c.Source.Endpoint == "" {
		result = multierror.Append(result, errors.New("source.endpoint must be set"))
	} else if u, err := url.Parse(c.Source.Endpoint); err != nil {
		result = multierror.Append(result, fmt.Errorf("source.endpoint: %w", err))
	} else if u.Scheme != "http" && u.Scheme != "https" {
		result = multierror.Append(result, fmt.Errorf("source.endpoint: unsupported scheme %q", u.Scheme))
	}
	if c.Source.TimeoutMS < 0 {
		result = multierror.Append(result, errors.New("source.timeout_ms must not be negative"))
	}
	if c.Source.RateLimit < 0 {
		result = multierror.Append(result, errors.New("source.rate_limit must not be negative"))
	}
	if c.UI.DebounceMS < 0 {
		result = multierror.Append(result, errors.New("ui.debounce_ms must not be negative"))
	}
	if c.UI.MinQueryLength < 0 {
		result = multierror.Append(result, errors.New("ui.min_query_length must not be negative"))
	}
	if c.UI.MaxResults < 0 {
		result = multierror.Append(result, errors.New("ui.max_results must not be negative"))
	}
	if c.UI.MaxVisible < 1 {
		result = multierror.Append(result, errors.New("ui.max_visible must be at least 1"))
	}

	return result.ErrorOrNil()
}

// ApplyEnv overrides settings from the environment
func (c *Config) ApplyEnv() {
	if v := os.Getenv(EnvEndpoint); v != "" {
		c.Source.Endpoint = v
	}
	if v := os.Getenv(EnvLogFile); v != "" {
		c.LogFile = v
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
	filePath string
}

// NewConfigService creates a config service rooted in the user config directory
func NewConfigService() ConfigService {
	configDir, err := os.UserConfigDir()
	if err != nil {
		configDir, err = os.UserHomeDir()
		if err != nil {
			configDir = "."
		}
		configDir = filepath.Join(configDir, ".config")
	}

	return &configService{
		filePath: filepath.Join(configDir, "suggestbox", "config.toml"),
	}
}

// NewConfigServiceAt creates a config service backed by an explicit file
func NewConfigServiceAt(path string) ConfigService {
	return &configService{filePath: path}
}

// Path returns the backing config file
func (cs *configService) Path() string {
	return cs.filePath
}

// Load loads the configuration, falling back to defaults when no file exists
func (cs *configService) Load() (*Config, error) {
	if _, err := os.Stat(cs.filePath); os.IsNotExist(err) {
		cfg := DefaultConfig()
		cfg.ApplyEnv()
		return cfg, nil
	}

	cfg, err := cs.LoadFromPath(cs.filePath)
	if err != nil {
		return nil, err
	}
	cfg.ApplyEnv()
	return cfg, nil
}

// Save saves the configuration to the service's file
func (cs *configService) Save(config *Config) error {
	return cs.SaveToPath(config, cs.filePath)
}

// LoadFromPath loads configuration from a specific path.
// Keys missing from the file keep their default values.
func (cs *configService) LoadFromPath(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("config file not found: %s", path)
		}
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := DefaultConfig()
	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

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
		Version: 1,
		Source: SourceSettings{
			Endpoint:  "http://127.0.0.1:8080",
			Path:      "/v1/autocomplete",
			TimeoutMS: 2000,
		},
		UI: UISettings{
			Placeholder:     "Start typing...",
			Prompt:          "› ",
			DebounceMS:      250,
			MinQueryLength:  1,
			MaxResults:      50,
			MaxVisible:      8,
			AutoSelectFirst: true,
		},
		LogFile: "suggestbox.log",
	}
}
