// Package config loads and persists the gridref YAML configuration.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/osgb/gridref/internal/logging"
	"github.com/osgb/gridref/internal/osgrid"
)

const (
	// EnvConfigPath overrides the config file location.
	EnvConfigPath = "GRIDREF_CONFIG"

	configDirName  = ".gridref"
	configFileName = "config.yaml"

	configDirMode  = 0o750
	configFileMode = 0o600
)

// Config is the root of the YAML configuration file.
type Config struct {
	Output  OutputConfig  `yaml:"output"`
	Logging LoggingConfig `yaml:"logging"`

	// path is where Load found the file or Save will write it.
	path string
}

// OutputConfig holds default formatting options applied when the CLI flags
// are not set.
type OutputConfig struct {
	// Figures is the combined easting+northing digit count (even, 0-10).
	Figures int `yaml:"figures"`

	// Variable trims trailing zeros for variable-precision references.
	Variable bool `yaml:"variable"`

	// Spaces separates letters, easting, and northing with spaces.
	Spaces bool `yaml:"spaces"`
}

// LoggingConfig holds log output settings.
type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
	File   string `yaml:"file"`
}

// New returns a Config populated with defaults: a fixed six-figure reference
// and console logging at info level.
func New() *Config {
	return &Config{
		Output: OutputConfig{
			Figures: osgrid.DefaultFigures,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: logging.FormatConsole,
		},
		path: defaultPath(),
	}
}

// Load reads the config file, returning defaults when none exists.
func Load() (*Config, error) {
	return LoadFrom(defaultPath())
}

// LoadFrom reads the config file at path, returning defaults when it does
// not exist.
func LoadFrom(path string) (*Config, error) {
	cfg := New()
	cfg.path = path

	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}

	return cfg, nil
}

// Save writes the configuration to its path, creating the directory first.
func (c *Config) Save() error {
	if err := os.MkdirAll(filepath.Dir(c.path), configDirMode); err != nil {
		return fmt.Errorf("create config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}

	if err := os.WriteFile(c.path, data, configFileMode); err != nil {
		return fmt.Errorf("write config %s: %w", c.path, err)
	}

	return nil
}

// Validate rejects option values the formatter cannot honour.
func (c *Config) Validate() error {
	if c.Output.Figures%2 != 0 || c.Output.Figures < 0 || c.Output.Figures > osgrid.MaxFigures {
		return fmt.Errorf("output.figures: %w: got %d", osgrid.ErrInvalidFigures, c.Output.Figures)
	}
	return nil
}

// Path returns the file this configuration was loaded from or saves to.
func (c *Config) Path() string {
	return c.path
}

// SetPath overrides where Save writes the configuration.
func (c *Config) SetPath(path string) {
	c.path = path
}

// FormatOptions converts the output section to formatter options.
func (c *Config) FormatOptions() osgrid.Options {
	return osgrid.Options{
		Figures:  c.Output.Figures,
		Variable: c.Output.Variable,
		Spaces:   c.Output.Spaces,
	}
}

// ToLoggingConfig bridges the YAML logging section to the logging package.
// A configured file path switches output from stderr to that file.
func (lc LoggingConfig) ToLoggingConfig() logging.Config {
	output := logging.OutputStderr
	if lc.File != "" {
		output = logging.OutputFile
	}

	return logging.Config{
		Level:  lc.Level,
		Format: lc.Format,
		Output: output,
		File:   lc.File,
	}
}

// defaultPath resolves the config file location: GRIDREF_CONFIG if set,
// otherwise ~/.gridref/config.yaml.
func defaultPath() string {
	if p := os.Getenv(EnvConfigPath); p != "" {
		return p
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".", configDirName, configFileName)
	}
	return filepath.Join(home, configDirName, configFileName)
}
