// Package config provides configuration loading and management.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/caarlos0/env/v11"
	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

const (
	// DefaultConfigDir is the directory name for legendlore configuration.
	DefaultConfigDir = ".legendlore"
	// DefaultConfigFile is the default config file name.
	DefaultConfigFile = "config.yaml"
	// TOMLConfigFile is the alternative TOML config file name.
	TOMLConfigFile = "config.toml"
	// EnvPrefix prefixes every environment override.
	EnvPrefix = "LEGENDLORE_"
)

// ErrUnsupportedFormat is returned for a config file that is neither YAML nor TOML.
var ErrUnsupportedFormat = errors.New("unsupported config format")

// Config holds static configuration (read-only after init).
type Config struct {
	Compendium CompendiumConfig `yaml:"compendium" toml:"compendium"`
	Format     FormatConfig     `yaml:"format" toml:"format"`
	Log        LogConfig        `yaml:"log" toml:"log"`
}

// CompendiumConfig selects the dataset files.
type CompendiumConfig struct {
	// Sources are doublestar glob patterns, relative to the working directory.
	Sources []string `yaml:"sources,omitempty" toml:"sources,omitempty" env:"SOURCES" envSeparator:","`
	// Encoding overrides the declared encoding of XML sources.
	Encoding string `yaml:"encoding,omitempty" toml:"encoding,omitempty" env:"ENCODING"`
	// Errata collapses duplicate spell entries after loading.
	Errata bool `yaml:"errata" toml:"errata" env:"ERRATA"`
}

// FormatConfig holds the point form defaults.
type FormatConfig struct {
	Tabstop int    `yaml:"tabstop" toml:"tabstop" env:"TABSTOP"`
	Header  string `yaml:"header" toml:"header" env:"HEADER"`
	Body    string `yaml:"body" toml:"body" env:"BODY"`
}

// LogConfig holds logging options.
type LogConfig struct {
	Level  string `yaml:"level" toml:"level" env:"LOG_LEVEL"`
	Format string `yaml:"format" toml:"format" env:"LOG_FORMAT"`
}

// Default returns a Config with default values.
func Default() *Config {
	return &Config{
		Compendium: CompendiumConfig{
			Sources: []string{"data/**/*.xml"},
			Errata:  true,
		},
		Format: FormatConfig{
			Tabstop: 2,
			Header:  "-",
			Body:    "-",
		},
		Log: LogConfig{
			Level:  "warn",
			Format: "text",
		},
	}
}

// Load loads configuration from the .legendlore directory in the given path.
// config.yaml is preferred over config.toml. Without either file the
// defaults are used. Environment overrides always apply.
func Load(basePath string) (*Config, error) {
	for _, name := range []string{DefaultConfigFile, TOMLConfigFile} {
		path := filepath.Join(basePath, DefaultConfigDir, name)
		if _, err := os.Stat(path); err == nil {
			return LoadFile(path)
		}
	}

	cfg := Default()
	if err := cfg.applyEnvOverrides(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadFile loads a YAML or TOML config file, chosen by extension.
func LoadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	// Start with defaults
	cfg := Default()

	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, cfg)
	case ".toml":
		err = toml.Unmarshal(data, cfg)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, path)
	}
	if err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}

	if err := cfg.applyEnvOverrides(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// applyEnvOverrides applies LEGENDLORE_* environment variable overrides.
func (c *Config) applyEnvOverrides() error {
	if err := env.ParseWithOptions(c, env.Options{Prefix: EnvPrefix}); err != nil {
		return fmt.Errorf("parsing environment: %w", err)
	}
	return nil
}

// Validate reports the first invalid setting.
func (c *Config) Validate() error {
	if c.Format.Tabstop < 0 {
		return fmt.Errorf("format.tabstop must not be negative, got %d", c.Format.Tabstop)
	}
	switch c.Log.Format {
	case "text", "json":
	default:
		return fmt.Errorf("log.format must be text or json, got %q", c.Log.Format)
	}
	return nil
}

// ConfigDir returns the path to the .legendlore config directory.
func ConfigDir(basePath string) string {
	return filepath.Join(basePath, DefaultConfigDir)
}

// ConfigFilePath returns the path to the config file.
func ConfigFilePath(basePath string) string {
	return filepath.Join(basePath, DefaultConfigDir, DefaultConfigFile)
}
