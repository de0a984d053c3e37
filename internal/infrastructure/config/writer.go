package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// DefaultConfigYAML is the default configuration content.
const DefaultConfigYAML = `# legendlore configuration

compendium:
  # doublestar globs selecting FC5e XML or raw JSON entry files
  sources:
    - data/**/*.xml
  # encoding: windows-1252 (overrides the XML declaration)
  errata: true

format:
  tabstop: 2
  header: "-"
  body: "-"

log:
  level: warn
  format: text
`

// WriteDefault creates the .legendlore directory and writes a default config file.
func WriteDefault(basePath string) error {
	configDir := filepath.Join(basePath, DefaultConfigDir)
	configFile := filepath.Join(configDir, DefaultConfigFile)

	if err := os.MkdirAll(configDir, 0755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	if _, err := os.Stat(configFile); err == nil {
		return fmt.Errorf("config file already exists: %s", configFile)
	}

	if err := os.WriteFile(configFile, []byte(DefaultConfigYAML), 0644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}

	return nil
}

// Write writes the given config to the config file.
func Write(basePath string, cfg *Config) error {
	configDir := filepath.Join(basePath, DefaultConfigDir)
	configFile := filepath.Join(configDir, DefaultConfigFile)

	if err := os.MkdirAll(configDir, 0755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}

	if err := os.WriteFile(configFile, data, 0644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}

	return nil
}

// Exists checks if a legendlore config exists in the given path.
func Exists(basePath string) bool {
	for _, name := range []string{DefaultConfigFile, TOMLConfigFile} {
		if _, err := os.Stat(filepath.Join(basePath, DefaultConfigDir, name)); err == nil {
			return true
		}
	}
	return false
}
