package config

import (
	"os"
	"path/filepath"
)

// configSearchPaths lists the standard bootcfg config locations, most
// specific first.
func configSearchPaths() []string {
	home, _ := os.UserHomeDir()
	return []string{
		filepath.Join(home, ".config", "bootcfg", "bootcfg.yaml"),
		"/etc/bootcfg.yaml",
	}
}
