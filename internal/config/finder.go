package config

import (
	"os"
	"path/filepath"
)

// Extensions lists the config formats probed, in order of preference
var Extensions = []string{"toml", "yaml", "yml", "json"}

// FindConfig returns the first config.<ext> file in dir, or "" if there is none
func FindConfig(dir string) string {
	for _, ext := range Extensions {
		path := filepath.Join(dir, "config."+ext)

		if info, err := os.Stat(path); err == nil && !info.IsDir() {
			return path
		}
	}

	return ""
}
