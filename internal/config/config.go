package config

import (
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

// Config holds the complete phpcodings configuration.
type Config struct {
	PHP       PHPConfig       `yaml:"php"`
	Scenarios ScenariosConfig `yaml:"scenarios"`
	Logging   LogConfig       `yaml:"logging"`
	Output    OutputConfig    `yaml:"output"`
}

type PHPConfig struct {
	INI map[string]string `yaml:"ini"` // ini settings honored by the scenarios (precision)
}

type ScenariosConfig struct {
	Uppercase UppercaseConfig `yaml:"uppercase"`
	Construct ConstructConfig `yaml:"construct"`
}

type UppercaseConfig struct {
	Input    []string `yaml:"input"`
	CaseMode string   `yaml:"case_mode"` // ascii, unicode
}

type ConstructConfig struct {
	Count int     `yaml:"count"`
	Ratio float64 `yaml:"ratio"`
}

type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
	Output string `yaml:"output"`
}

type OutputConfig struct {
	Format string `yaml:"format"` // text, json
}

// Load reads config from a YAML file, applying defaults for missing values.
// An empty path yields the defaults. Callers run Validate once any
// overrides are applied.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}

	return cfg, nil
}

// Precision returns php.ini precision as an int, or the default if it does
// not parse.
func (c *Config) Precision() int {
	p, err := strconv.Atoi(c.PHP.INI["precision"])
	if err != nil {
		return DefaultPrecision
	}
	return p
}

// Validate checks the config for invalid values.
func (c *Config) Validate() error {
	if raw, ok := c.PHP.INI["precision"]; ok {
		p, err := strconv.Atoi(raw)
		if err != nil {
			return fmt.Errorf("php.ini.precision must be an integer, got %q", raw)
		}
		if p < 1 || p > 17 {
			return fmt.Errorf("php.ini.precision must be between 1 and 17, got %d", p)
		}
	}

	validCaseModes := map[string]bool{"ascii": true, "unicode": true}
	if !validCaseModes[c.Scenarios.Uppercase.CaseMode] {
		return fmt.Errorf("scenarios.uppercase.case_mode must be 'ascii' or 'unicode', got %q", c.Scenarios.Uppercase.CaseMode)
	}

	validLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLevels[c.Logging.Level] {
		return fmt.Errorf("logging.level must be debug, info, warn or error, got %q", c.Logging.Level)
	}

	validLogFormats := map[string]bool{"text": true, "json": true}
	if !validLogFormats[c.Logging.Format] {
		return fmt.Errorf("logging.format must be 'text' or 'json', got %q", c.Logging.Format)
	}
	if c.Logging.Output == "" {
		return fmt.Errorf("logging.output is required")
	}

	if !validLogFormats[c.Output.Format] {
		return fmt.Errorf("output.format must be 'text' or 'json', got %q", c.Output.Format)
	}
	return nil
}
