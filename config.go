package klpgit

import "time"

// DefaultPort is the preferred HTTP port.
const DefaultPort = 4219

// Highlight engines.
const (
	EngineRegex  = "regex"
	EngineChroma = "chroma"
)

// Config is the runtime configuration. Zero fields of a loaded file keep
// their defaults.
type Config struct {
	Port       int             `toml:"port"`
	Dir        string          `toml:"dir"`
	Open       bool            `toml:"open"`
	WebDir     string          `toml:"web_dir"`
	LogFormat  string          `toml:"log_format"` // "text" or "json"
	LogLevel   string          `toml:"log_level"`
	DebounceMS int             `toml:"debounce_ms"`
	Highlight  HighlightConfig `toml:"highlight"`
	Gemini     GeminiConfig    `toml:"gemini"`
}

// HighlightConfig selects the syntax highlighting engine and the terminal
// color theme.
type HighlightConfig struct {
	Engine string `toml:"engine"`
	Theme  string `toml:"theme"` // "dark" or "light"
}

// GeminiConfig configures commit message suggestions.
type GeminiConfig struct {
	Model string `toml:"model"`
}

// DefaultConfig returns the configuration used when nothing overrides it.
func DefaultConfig() Config {
	return Config{
		Port:       DefaultPort,
		Dir:        ".",
		Open:       true,
		LogFormat:  "text",
		LogLevel:   "info",
		DebounceMS: 300,
		Highlight:  HighlightConfig{Engine: EngineRegex, Theme: "dark"},
	}
}

// Debounce returns the watcher quiet window.
func (c Config) Debounce() time.Duration {
	return time.Duration(c.DebounceMS) * time.Millisecond
}
