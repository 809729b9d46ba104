// Package config handles medguard.yaml configuration files and environment
// overrides.
package config

import (
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

// FileName is the expected config file name in the working directory.
const FileName = "medguard.yaml"

// Config holds the server configuration. Precedence: defaults, then the
// YAML file, then MEDGUARD_* environment variables.
type Config struct {
	// DataDir is the processed-data directory the registry loads from.
	DataDir string `yaml:"data_dir,omitempty"`
	// Listen is the address the HTTP server binds.
	Listen string `yaml:"listen,omitempty"`
	// RiskWarn and RiskCritical are the classification thresholds for the
	// overfishing risk index.
	RiskWarn     float64 `yaml:"risk_warn,omitempty"`
	RiskCritical float64 `yaml:"risk_critical,omitempty"`
	Verbose      bool    `yaml:"verbose,omitempty"`
}

// Default returns the built-in configuration. The data dir default matches
// the processing pipeline's output folder.
func Default() Config {
	return Config{
		DataDir:      "processed",
		Listen:       ":8080",
		RiskWarn:     0.3,
		RiskCritical: 0.6,
	}
}

// Load builds the effective configuration from defaults, an optional
// medguard.yaml in the working directory, and the environment.
func Load() (Config, error) {
	return LoadFrom(FileName)
}

// LoadFrom is Load with an explicit config file path.
func LoadFrom(path string) (Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("parse %s: %w", path, err)
		}
	case !os.IsNotExist(err):
		return cfg, fmt.Errorf("read %s: %w", path, err)
	}
	cfg.applyEnv()
	return cfg, nil
}

func (c *Config) applyEnv() {
	if v := os.Getenv("MEDGUARD_DATA_DIR"); v != "" {
		c.DataDir = v
	}
	if v := os.Getenv("MEDGUARD_LISTEN"); v != "" {
		c.Listen = v
	}
	if v := os.Getenv("MEDGUARD_RISK_WARN"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			c.RiskWarn = f
		}
	}
	if v := os.Getenv("MEDGUARD_RISK_CRITICAL"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			c.RiskCritical = f
		}
	}
	if v := os.Getenv("MEDGUARD_VERBOSE"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			c.Verbose = b
		}
	}
}
