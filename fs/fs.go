// Package fs provides the working-tree views of the UI: the file explorer,
// the source reader, and on-disk caches.
package fs

import (
	"os"
	"path/filepath"
)

const appName = "klpgit"

// DefaultConfigDir returns the configuration directory.
// Uses XDG_CONFIG_HOME if set, otherwise ~/.config/klpgit.
func DefaultConfigDir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, appName)
	}
	home, err := os.UserHomeDir()
	if err != nil || home == "" {
		return filepath.Join(os.TempDir(), appName)
	}
	return filepath.Join(home, ".config", appName)
}

// DefaultCacheDir returns the cache directory.
// Uses XDG_CACHE_HOME if set, otherwise falls back to ~/.cache/klpgit,
// or the system temp directory if home is unavailable.
func DefaultCacheDir() string {
	if xdg := os.Getenv("XDG_CACHE_HOME"); xdg != "" {
		return filepath.Join(xdg, appName)
	}
	home, err := os.UserHomeDir()
	if err != nil || home == "" {
		return filepath.Join(os.TempDir(), appName)
	}
	return filepath.Join(home, ".cache", appName)
}
