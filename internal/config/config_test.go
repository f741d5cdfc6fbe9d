package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadLayered_EnvOverridesEverything(t *testing.T) {
	embedded := []byte("paths:\n  bootconfig: \"/embedded/bootconfig\"\n")
	t.Setenv("BOOTCFG_BOOTCONFIG_PATH", "/env/bootconfig")

	cfg, err := LoadLayered(embedded, "")
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Paths.Bootconfig != "/env/bootconfig" {
		t.Errorf("Bootconfig = %q, want env override", cfg.Paths.Bootconfig)
	}
}

func TestLoadLayered_FileOverridesEmbed(t *testing.T) {
	embedded := []byte("paths:\n  cmdline: \"/embedded/cmdline\"\nlogging:\n  level: \"debug\"\n")
	path := filepath.Join(t.TempDir(), "bootcfg.yaml")
	if err := os.WriteFile(path, []byte("paths:\n  cmdline: \"/file/cmdline\"\n"), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadLayered(embedded, path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Paths.Cmdline != "/file/cmdline" {
		t.Errorf("Cmdline = %q, want file override", cfg.Paths.Cmdline)
	}
	if cfg.Logging.Level != "debug" {
		t.Errorf("Level = %q, want embedded value", cfg.Logging.Level)
	}
}

func TestLoadLayered_DefaultsWhenEmpty(t *testing.T) {
	cfg, err := LoadLayered(nil, "")
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Paths.Bootconfig != "/proc/bootconfig" {
		t.Errorf("Bootconfig = %q, want /proc/bootconfig default", cfg.Paths.Bootconfig)
	}
	if cfg.Paths.Cmdline != "/proc/cmdline" {
		t.Errorf("Cmdline = %q, want /proc/cmdline default", cfg.Paths.Cmdline)
	}
	if cfg.Paths.DTFallbackDir != "/proc/device-tree/firmware/android/" {
		t.Errorf("DTFallbackDir = %q, want procfs default", cfg.Paths.DTFallbackDir)
	}
}

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Logging.Level != "info" {
		t.Errorf("Level = %q, want info default", cfg.Logging.Level)
	}
}

func TestLoadFromBytes_InvalidYAML(t *testing.T) {
	if _, err := LoadFromBytes([]byte("paths: [not a map")); err == nil {
		t.Error("expected error for invalid YAML")
	}
}

func TestLocate(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	if got := Locate(); got != "" && got != "/etc/bootcfg.yaml" {
		t.Errorf("Locate() = %q with no user config present", got)
	}

	path := filepath.Join(home, ".config", "bootcfg", "bootcfg.yaml")
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte("logging:\n  level: debug\n"), 0644); err != nil {
		t.Fatal(err)
	}
	if got := Locate(); got != path {
		t.Errorf("Locate() = %q, want %q", got, path)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"defaults_valid", func(c *Config) {}, false},
		{"missing_bootconfig", func(c *Config) { c.Paths.Bootconfig = "" }, true},
		{"missing_cmdline", func(c *Config) { c.Paths.Cmdline = "" }, true},
		{"missing_dt_fallback", func(c *Config) { c.Paths.DTFallbackDir = "" }, true},
		{"bad_log_level", func(c *Config) { c.Logging.Level = "verbose" }, true},
		{"debug_level_valid", func(c *Config) { c.Logging.Level = "debug" }, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}
