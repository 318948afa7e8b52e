// Package toml loads klpgit configuration files.
package toml

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"

	"github.com/AmKilopa/KlpGIT"
	"github.com/pelletier/go-toml/v2"
)

// FileName is the config file name inside the config directory.
const FileName = "config.toml"

// Path returns the config file location inside dir.
func Path(dir string) string {
	return filepath.Join(dir, FileName)
}

// Load reads the config file at path over klpgit.DefaultConfig. A missing
// file yields the defaults.
func Load(path string) (klpgit.Config, error) {
	cfg := klpgit.DefaultConfig()
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return cfg, fmt.Errorf("read config: %w", err)
	}
	if err := Decode(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config %s: %w", path, err)
	}
	return cfg, nil
}

// Decode unmarshals data into cfg, rejecting unknown keys and invalid values.
func Decode(data []byte, cfg *klpgit.Config) error {
	dec := toml.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(cfg); err != nil {
		var strict *toml.StrictMissingError
		if errors.As(err, &strict) {
			return errors.New(strict.String())
		}
		return err
	}
	return validate(*cfg)
}

// Save writes cfg to path, creating the directory.
func Save(path string, cfg klpgit.Config) error {
	data, err := toml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("encode config: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}

func validate(cfg klpgit.Config) error {
	if cfg.Port < 0 || cfg.Port > 65535 {
		return fmt.Errorf("port %d out of range", cfg.Port)
	}
	if !slices.Contains([]string{"text", "json"}, cfg.LogFormat) {
		return fmt.Errorf("unknown log_format %q", cfg.LogFormat)
	}
	if !slices.Contains([]string{klpgit.EngineRegex, klpgit.EngineChroma}, cfg.Highlight.Engine) {
		return fmt.Errorf("unknown highlight engine %q", cfg.Highlight.Engine)
	}
	if !slices.Contains([]string{"dark", "light"}, cfg.Highlight.Theme) {
		return fmt.Errorf("unknown theme %q", cfg.Highlight.Theme)
	}
	if cfg.DebounceMS < 0 {
		return errors.New("debounce_ms must not be negative")
	}
	return nil
}
