package config

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"time"

	"gopkg.in/yaml.v3"

	glyphcode "github.com/ledgerline/glyphcode"
)

// Config holds all glyphcode configuration.
type Config struct {
	Render  RenderConfig  `yaml:"render"`
	Server  ServerConfig  `yaml:"server"`
	Logging LoggingConfig `yaml:"logging"`
}

// RenderConfig holds the defaults used by the render, serve and preview
// commands. Flags override these values.
type RenderConfig struct {
	Size       float64 `yaml:"size"`
	Format     string  `yaml:"format"`
	Foreground string  `yaml:"foreground"`
	Background string  `yaml:"background"`
	LogoSize   float64 `yaml:"logo_size"`
	LogoMark   string  `yaml:"logo_mark"`
	QuietZone  int     `yaml:"quiet_zone"`

	// MaxSize is the largest canvas size accepted by the service and the
	// largest PNG side rendered anywhere.
	MaxSize float64 `yaml:"max_size"`
}

// ServerConfig configures the HTTP service.
type ServerConfig struct {
	Addr            string `yaml:"addr"`
	ReadTimeout     string `yaml:"read_timeout"`
	WriteTimeout    string `yaml:"write_timeout"`
	ShutdownTimeout string `yaml:"shutdown_timeout"`
}

// LoggingConfig configures the zap logger.
type LoggingConfig struct {
	Level  string `yaml:"level"`  // debug, info, warn, error
	Format string `yaml:"format"` // json, console
}

// MaxSizeLimit is the ceiling for render.max_size.
const MaxSizeLimit = 16384

// ValidLevels lists the accepted log levels.
var ValidLevels = []string{"debug", "info", "warn", "error"}

// ValidLogFormats lists the accepted log encodings.
var ValidLogFormats = []string{"json", "console"}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		Render: RenderConfig{
			Size:       210,
			Format:     "svg",
			Foreground: "#000000",
			Background: "#ffffff",
			LogoSize:   40,
			MaxSize:    4096,
		},
		Server: ServerConfig{
			Addr:            ":8080",
			ReadTimeout:     "5s",
			WriteTimeout:    "10s",
			ShutdownTimeout: "5s",
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
		},
	}
}

// Load loads configuration from a YAML file. A missing file yields the
// defaults. Environment overrides are applied in both cases.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	switch {
	case os.IsNotExist(err):
	case err != nil:
		return nil, fmt.Errorf("failed to read config: %w", err)
	default:
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config: %w", err)
		}
	}

	cfg.applyEnvOverrides()
	return cfg, nil
}

// Save saves configuration to a YAML file.
func (c *Config) Save(path string) error {
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

func (c *Config) applyEnvOverrides() {
	if addr := os.Getenv("GLYPHCODE_ADDR"); addr != "" {
		c.Server.Addr = addr
	}
	if level := os.Getenv("GLYPHCODE_LOG_LEVEL"); level != "" {
		c.Logging.Level = level
	}
	if fg := os.Getenv("GLYPHCODE_FOREGROUND"); fg != "" {
		c.Render.Foreground = fg
	}
	if bg := os.Getenv("GLYPHCODE_BACKGROUND"); bg != "" {
		c.Render.Background = bg
	}
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	if c.Render.MaxSize <= 0 || c.Render.MaxSize > MaxSizeLimit {
		return fmt.Errorf("invalid render max_size: %v (must be in (0, %d])", c.Render.MaxSize, MaxSizeLimit)
	}
	if c.Render.Size <= 0 || c.Render.Size > c.Render.MaxSize {
		return fmt.Errorf("invalid render size: %v (max_size %v)", c.Render.Size, c.Render.MaxSize)
	}
	if _, err := glyphcode.ParseFormat(c.Render.Format); err != nil {
		return fmt.Errorf("invalid render format: %w", err)
	}
	if _, err := c.EncodeOptions().RenderOptions(); err != nil {
		return fmt.Errorf("invalid render colors: %w", err)
	}
	if c.Render.QuietZone < 0 {
		return fmt.Errorf("invalid quiet zone: %d", c.Render.QuietZone)
	}
	if !slices.Contains(ValidLevels, c.Logging.Level) {
		return fmt.Errorf("invalid log level: %s (valid: %v)", c.Logging.Level, ValidLevels)
	}
	if !slices.Contains(ValidLogFormats, c.Logging.Format) {
		return fmt.Errorf("invalid log format: %s (valid: %v)", c.Logging.Format, ValidLogFormats)
	}
	for name, value := range map[string]string{
		"read_timeout":     c.Server.ReadTimeout,
		"write_timeout":    c.Server.WriteTimeout,
		"shutdown_timeout": c.Server.ShutdownTimeout,
	} {
		if _, err := time.ParseDuration(value); err != nil {
			return fmt.Errorf("invalid server %s: %w", name, err)
		}
	}
	return nil
}

// EncodeOptions maps the render section onto glyphcode.EncodeOptions.
func (c *Config) EncodeOptions() *glyphcode.EncodeOptions {
	return &glyphcode.EncodeOptions{
		Foreground: c.Render.Foreground,
		Background: c.Render.Background,
		LogoSize:   c.Render.LogoSize,
		LogoMark:   c.Render.LogoMark,
		QuietZone:  c.Render.QuietZone,

		MaxRasterSide: int(min(c.Render.MaxSize, MaxSizeLimit)),
	}
}

// GetReadTimeout returns the server read timeout as a duration.
func (c *Config) GetReadTimeout() time.Duration {
	return parseDuration(c.Server.ReadTimeout, 5*time.Second)
}

// GetWriteTimeout returns the server write timeout as a duration.
func (c *Config) GetWriteTimeout() time.Duration {
	return parseDuration(c.Server.WriteTimeout, 10*time.Second)
}

// GetShutdownTimeout returns how long the server waits for in-flight
// requests when stopping.
func (c *Config) GetShutdownTimeout() time.Duration {
	return parseDuration(c.Server.ShutdownTimeout, 5*time.Second)
}

func parseDuration(s string, fallback time.Duration) time.Duration {
	d, err := time.ParseDuration(s)
	if err != nil {
		return fallback
	}
	return d
}
