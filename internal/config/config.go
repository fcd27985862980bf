// Package config handles configuration loading from YAML files and environment variables.
// Configuration precedence: CLI flags > environment variables > config file > defaults.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config holds all daemon configuration.
type Config struct {
	Display DisplayConfig `yaml:"display"`
	Media   MediaConfig   `yaml:"media"`
	Logging LoggingConfig `yaml:"logging"`
}

// DisplayConfig holds panel connection settings.
type DisplayConfig struct {
	// Bus selects /dev/i2c-<bus>.
	Bus int `yaml:"bus"`
	// Address is the panel's I²C address, hex ("0x3C") or decimal.
	Address string `yaml:"address"`
	// Preview renders to the terminal instead of the panel.
	Preview bool `yaml:"preview"`
}

// MediaConfig holds animation asset settings.
type MediaConfig struct {
	// GIFDir is the directory searched for low.gif, medium.gif, high.gif.
	GIFDir string `yaml:"gif_dir"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level string `yaml:"level"`
	File  string `yaml:"file"`
}

// ParseAddress returns the panel address as a bus address value.
func (d DisplayConfig) ParseAddress() (uint16, error) {
	addr, err := strconv.ParseUint(d.Address, 0, 16)
	if err != nil {
		return 0, fmt.Errorf("invalid i2c address %q: %w", d.Address, err)
	}
	return uint16(addr), nil
}

// DefaultConfig returns the default configuration: the first I²C bus and
// the usual SSD1306 address.
func DefaultConfig() *Config {
	return &Config{
		Display: DisplayConfig{
			Bus:     1,
			Address: "0x3C",
			Preview: false,
		},
		Media: MediaConfig{
			GIFDir: "./gifs",
		},
		Logging: LoggingConfig{
			Level: "info",
			File:  "",
		},
	}
}

// LoadFromBytes parses YAML configuration from a byte slice and merges with defaults.
// Environment variables take higher precedence and override values from the byte slice.
func LoadFromBytes(data []byte) (*Config, error) {
	cfg := DefaultConfig()

	if len(data) > 0 {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config data: %w", err)
		}
	}

	applyEnvOverrides(cfg)

	return cfg, nil
}

// Load reads configuration from a YAML file and merges with defaults.
// If path is empty or the file does not exist, only defaults and environment
// variables are used.
func Load(path string) (*Config, error) {
	if path == "" {
		return LoadFromBytes(nil)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if !os.IsNotExist(err) {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
		return LoadFromBytes(nil)
	}

	return LoadFromBytes(data)
}

// CLIOverrides holds values from command-line flags.
// Zero values are treated as "not set" and skipped.
type CLIOverrides struct {
	GIFDir  string
	Preview bool
}

// Locate searches standard config file paths and returns the first one found.
// Returns empty string if no config file exists.
func Locate() string {
	for _, p := range configSearchPaths() {
		if _, err := os.Stat(p); err == nil {
			return p
		}
	}
	return ""
}

// LoadLayered loads configuration with the full precedence chain:
// CLI flags > env vars > external YAML file > defaults. A .env file in the
// working directory is folded into the environment first so a checkout can
// carry its own overrides.
//
// An optional configPath argument controls external-file discovery:
//   - omitted        → auto-discover via Locate()
//   - explicit value → use that path ("" means no external file)
func LoadLayered(cli CLIOverrides, configPath ...string) (*Config, error) {
	_ = godotenv.Load()

	cfg := DefaultConfig()

	var filePath string
	if len(configPath) > 0 {
		filePath = configPath[0]
	} else {
		filePath = Locate()
	}
	if filePath != "" {
		data, err := os.ReadFile(filePath)
		if err == nil {
			if err := yaml.Unmarshal(data, cfg); err != nil {
				return nil, fmt.Errorf("parsing config file %s: %w", filePath, err)
			}
		}
	}

	applyEnvOverrides(cfg)

	if cli.GIFDir != "" {
		cfg.Media.GIFDir = cli.GIFDir
	}
	if cli.Preview {
		cfg.Display.Preview = true
	}

	return cfg, nil
}

// WriteConfig serializes the config to a YAML file at the given path.
// Creates parent directories if needed.
func WriteConfig(cfg *Config, path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	return os.WriteFile(path, data, 0640)
}

// applyEnvOverrides applies environment variable overrides to the configuration.
func applyEnvOverrides(cfg *Config) {
	if bus := os.Getenv("OLEDTOP_I2C_BUS"); bus != "" {
		if v, err := strconv.Atoi(bus); err == nil {
			cfg.Display.Bus = v
		}
	}
	if addr := os.Getenv("OLEDTOP_I2C_ADDR"); addr != "" {
		cfg.Display.Address = addr
	}
	if preview := os.Getenv("OLEDTOP_PREVIEW"); preview != "" {
		if v, err := strconv.ParseBool(preview); err == nil {
			cfg.Display.Preview = v
		}
	}
	if dir := os.Getenv("OLEDTOP_GIF_DIR"); dir != "" {
		cfg.Media.GIFDir = dir
	}
	if level := os.Getenv("OLEDTOP_LOG_LEVEL"); level != "" {
		cfg.Logging.Level = level
	}
	if file := os.Getenv("OLEDTOP_LOG_FILE"); file != "" {
		cfg.Logging.File = file
	}
}

// Validate checks that the configuration can drive a real panel.
func (c *Config) Validate() error {
	if c.Display.Bus < 0 {
		return fmt.Errorf("i2c bus must be non-negative (got %d)", c.Display.Bus)
	}
	if _, err := c.Display.ParseAddress(); err != nil {
		return err
	}
	if c.Media.GIFDir == "" {
		return fmt.Errorf("gif directory is required")
	}
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("unknown log level %q", c.Logging.Level)
	}
	return nil
}
