// Package config handles configuration loading from YAML files and environment variables.
// Configuration precedence: environment variables > config file > embedded defaults > built-in defaults.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config holds all bootcfg configuration.
type Config struct {
	Paths   PathsConfig   `yaml:"paths"`
	Logging LoggingConfig `yaml:"logging"`
}

// PathsConfig holds the locations of the kernel pseudo-files and the
// last-resort device-tree directory. Overriding these is mainly useful for
// inspecting pseudo-file snapshots captured on another device.
type PathsConfig struct {
	Bootconfig    string `yaml:"bootconfig"`
	Cmdline       string `yaml:"cmdline"`
	DTFallbackDir string `yaml:"dt_fallback_dir"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level string `yaml:"level"`
	File  string `yaml:"file"`
}

// DefaultConfig returns the default configuration, bound to the live
// kernel pseudo-files.
func DefaultConfig() *Config {
	return &Config{
		Paths: PathsConfig{
			Bootconfig:    "/proc/bootconfig",
			Cmdline:       "/proc/cmdline",
			DTFallbackDir: "/proc/device-tree/firmware/android/",
		},
		Logging: LoggingConfig{
			Level: "info",
			File:  "",
		},
	}
}

// LoadFromBytes parses YAML configuration from a byte slice and merges with defaults.
// Environment variables take highest precedence and override values from the byte slice.
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
		// File doesn't exist — use defaults + env overrides
		return LoadFromBytes(nil)
	}

	return LoadFromBytes(data)
}

// LoadLayered loads configuration with the full precedence chain:
// env vars > external YAML file > embedded bytes > defaults.
func LoadLayered(embedded []byte, path string) (*Config, error) {
	cfg := DefaultConfig()

	if len(embedded) > 0 {
		if err := yaml.Unmarshal(embedded, cfg); err != nil {
			return nil, fmt.Errorf("parsing embedded config: %w", err)
		}
	}

	if path != "" {
		data, err := os.ReadFile(path)
		if err == nil {
			if err := yaml.Unmarshal(data, cfg); err != nil {
				return nil, fmt.Errorf("parsing config file %s: %w", path, err)
			}
		}
	}

	applyEnvOverrides(cfg)
	return cfg, nil
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

// applyEnvOverrides applies environment variable overrides to the configuration.
// Environment variables have the highest precedence.
func applyEnvOverrides(cfg *Config) {
	if path := os.Getenv("BOOTCFG_BOOTCONFIG_PATH"); path != "" {
		cfg.Paths.Bootconfig = path
	}
	if path := os.Getenv("BOOTCFG_CMDLINE_PATH"); path != "" {
		cfg.Paths.Cmdline = path
	}
	if dir := os.Getenv("BOOTCFG_DT_FALLBACK_DIR"); dir != "" {
		cfg.Paths.DTFallbackDir = dir
	}
	if level := os.Getenv("BOOTCFG_LOG_LEVEL"); level != "" {
		cfg.Logging.Level = level
	}
}

// Validate checks that the configuration is usable.
func (c *Config) Validate() error {
	if c.Paths.Bootconfig == "" {
		return fmt.Errorf("bootconfig path is required")
	}
	if c.Paths.Cmdline == "" {
		return fmt.Errorf("cmdline path is required")
	}
	if c.Paths.DTFallbackDir == "" {
		return fmt.Errorf("device-tree fallback directory is required")
	}
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("unknown log level %q", c.Logging.Level)
	}
	return nil
}
