package main

import (
	"bytes"
	"errors"
	"fmt"
	"path/filepath"
	"strconv"

	"github.com/AmKilopa/KlpGIT"
	klpfs "github.com/AmKilopa/KlpGIT/fs"
	klpstyle "github.com/AmKilopa/KlpGIT/lipgloss"
	"github.com/AmKilopa/KlpGIT/toml"
	"github.com/spf13/pflag"
)

var errHelp = errors.New("help requested")

// commands maps each subcommand to whether it takes a file argument.
var commands = map[string]bool{
	"serve": false,
	"lint":  true,
	"show":  true,
	"diff":  false,
	"view":  true,
}

// Options is the parsed command line.
type Options struct {
	Command string
	Path    string
	Config  klpgit.Config
	Usage   string
}

// ParseOptions resolves the configuration in order of precedence: flags,
// environment, config file, defaults.
func ParseOptions(args []string, getenv func(string) string) (Options, error) {
	var (
		opts       Options
		configPath string
		port       int
		dir        string
		noOpen     bool
		webDir     string
		logFormat  string
		logLevel   string
		engine     string
		theme      string
	)

	flags := pflag.NewFlagSet("klpgit", pflag.ContinueOnError)
	flags.SetOutput(&bytes.Buffer{})
	flags.StringVar(&configPath, "config", "", "config file (default "+toml.Path(klpfs.DefaultConfigDir())+")")
	flags.IntVarP(&port, "port", "p", klpgit.DefaultPort, "preferred port, a free one is chosen when taken (env KLPGIT_PORT)")
	flags.StringVarP(&dir, "dir", "C", ".", "working directory")
	flags.BoolVar(&noOpen, "no-open", false, "do not open a browser window")
	flags.StringVar(&webDir, "web", "", "directory of the web client")
	flags.StringVar(&logFormat, "log-format", "text", "log format: text or json")
	flags.StringVar(&logLevel, "log-level", "info", "log level: debug, info, warn or error")
	flags.StringVar(&engine, "engine", klpgit.EngineRegex, "highlight engine: regex or chroma")
	flags.StringVar(&theme, "theme", "dark", "terminal color theme: dark or light")
	opts.Usage = usage(flags)

	if err := flags.Parse(args); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return opts, errHelp
		}
		return opts, err
	}

	if configPath == "" {
		configPath = toml.Path(klpfs.DefaultConfigDir())
	}
	cfg, err := toml.Load(configPath)
	if err != nil {
		return opts, err
	}

	if v := getenv("KLPGIT_PORT"); v != "" {
		p, err := strconv.Atoi(v)
		if err != nil || p < 0 || p > 65535 {
			return opts, fmt.Errorf("invalid KLPGIT_PORT %q", v)
		}
		cfg.Port = p
	}

	if flags.Changed("port") {
		cfg.Port = port
	}
	if flags.Changed("dir") {
		cfg.Dir = dir
	}
	if noOpen {
		cfg.Open = false
	}
	if flags.Changed("web") {
		cfg.WebDir = webDir
	}
	if flags.Changed("log-format") {
		cfg.LogFormat = logFormat
	}
	if flags.Changed("log-level") {
		cfg.LogLevel = logLevel
	}
	if flags.Changed("engine") {
		cfg.Highlight.Engine = engine
	}
	if cfg.Highlight.Engine != klpgit.EngineRegex && cfg.Highlight.Engine != klpgit.EngineChroma {
		return opts, fmt.Errorf("unknown highlight engine %q", cfg.Highlight.Engine)
	}
	if flags.Changed("theme") {
		if _, ok := klpstyle.ThemeByName(theme); !ok {
			return opts, fmt.Errorf("unknown theme %q", theme)
		}
		cfg.Highlight.Theme = theme
	}

	abs, err := filepath.Abs(cfg.Dir)
	if err != nil {
		return opts, fmt.Errorf("resolve dir: %w", err)
	}
	cfg.Dir = abs
	opts.Config = cfg

	rest := flags.Args()
	opts.Command = "serve"
	if len(rest) > 0 {
		opts.Command = rest[0]
		rest = rest[1:]
	}
	needsPath, ok := commands[opts.Command]
	if !ok {
		return opts, fmt.Errorf("unknown command %q", opts.Command)
	}
	switch {
	case needsPath && len(rest) != 1:
		return opts, fmt.Errorf("%s requires exactly one file", opts.Command)
	case !needsPath && len(rest) > 1, opts.Command == "serve" && len(rest) > 0:
		return opts, fmt.Errorf("too many arguments for %s", opts.Command)
	}
	if len(rest) == 1 {
		opts.Path = rest[0]
	}
	return opts, nil
}

func usage(flags *pflag.FlagSet) string {
	return `Usage: klpgit [flags] [command] [file]

Commands:
  serve        start the web UI (default)
  lint <file>  report hygiene issues, exit status 1 on warnings
  show <file>  print highlighted source
  diff [file]  print the rendered diff of a file or the whole tree
  view <file>  page through the diff, or the source when unchanged

Flags:
` + flags.FlagUsages()
}
