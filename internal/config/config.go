package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Backend selects the display resolver implementation.
const (
	BackendAuto   = "auto"   // x11 when DISPLAY is set, otherwise static
	BackendX11    = "x11"    // require a live X11 connection
	BackendStatic = "static" // serve the configured display list
)

// StaticDisplay describes one configured display for the static
// backend.
type StaticDisplay struct {
	Name    string `yaml:"name"`
	X       int    `yaml:"x"`
	Y       int    `yaml:"y"`
	Width   int    `yaml:"width"`
	Height  int    `yaml:"height"`
	Primary bool   `yaml:"primary"`
}

// DisplayConfig selects and parameterizes the display backend.
type DisplayConfig struct {
	Backend string          `yaml:"backend"`
	Static  []StaticDisplay `yaml:"static,omitempty"`
}

// LoggingConfig controls the daemon's query log.
type LoggingConfig struct {
	Enabled   bool   `yaml:"enabled"`
	Level     string `yaml:"level"`
	File      string `yaml:"file"`
	MaxSizeMB int    `yaml:"max_size_mb"`
	MaxFiles  int    `yaml:"max_files"`
}

// Config is the root configuration document.
type Config struct {
	Display DisplayConfig `yaml:"display"`
	Logging LoggingConfig `yaml:"logging"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Display: DisplayConfig{
			Backend: BackendAuto,
		},
		Logging: LoggingConfig{
			Enabled:   false,
			Level:     "info",
			File:      defaultLogPath(),
			MaxSizeMB: 10,
			MaxFiles:  3,
		},
	}
}

func defaultLogPath() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "sheen-query.log"
	}
	return filepath.Join(homeDir, ".local", "state", "sheen", "query.log")
}

// DefaultConfigPath returns the standard config file location.
func DefaultConfigPath() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(homeDir, ".config", "sheen", "config.yaml"), nil
}

// Load reads the configuration from the standard location. A missing
// file yields the defaults.
func Load() (*Config, error) {
	path, err := DefaultConfigPath()
	if err != nil {
		return nil, err
	}
	return LoadFromPath(path)
}

// LoadFromPath reads the configuration from path, applying defaults
// for unset fields and validating the result. A missing file is not
// an error; the defaults are returned.
func LoadFromPath(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, fmt.Errorf("failed to read config %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
	}

	applyDefaults(cfg)
	if err := Validate(cfg); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return cfg, nil
}

func applyDefaults(cfg *Config) {
	if cfg.Display.Backend == "" {
		cfg.Display.Backend = BackendAuto
	}
	if cfg.Logging.Level == "" {
		cfg.Logging.Level = "info"
	}
	if cfg.Logging.File == "" {
		cfg.Logging.File = defaultLogPath()
	}
	if cfg.Logging.MaxSizeMB <= 0 {
		cfg.Logging.MaxSizeMB = 10
	}
	if cfg.Logging.MaxFiles <= 0 {
		cfg.Logging.MaxFiles = 3
	}
}

// Validate checks the configuration for inconsistencies.
func Validate(cfg *Config) error {
	switch cfg.Display.Backend {
	case BackendAuto, BackendX11, BackendStatic:
	default:
		return fmt.Errorf("display.backend: unknown backend %q (want %s, %s or %s)",
			cfg.Display.Backend, BackendAuto, BackendX11, BackendStatic)
	}

	if cfg.Display.Backend == BackendStatic && len(cfg.Display.Static) == 0 {
		return fmt.Errorf("display.static: static backend requires at least one display")
	}

	for i, d := range cfg.Display.Static {
		if d.Width <= 0 || d.Height <= 0 {
			return fmt.Errorf("display.static[%d]: non-positive size %dx%d", i, d.Width, d.Height)
		}
	}

	switch cfg.Logging.Level {
	case "debug", "info", "warn", "warning", "error":
	default:
		return fmt.Errorf("logging.level: unknown level %q", cfg.Logging.Level)
	}

	return nil
}

// Print writes the effective configuration as YAML.
func (c *Config) Print() ([]byte, error) {
	out, err := yaml.Marshal(c)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal config: %w", err)
	}
	return out, nil
}
