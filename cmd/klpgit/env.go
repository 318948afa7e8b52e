package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"path/filepath"
	"strings"

	"github.com/AmKilopa/KlpGIT"
	"github.com/AmKilopa/KlpGIT/bubbletea"
	"github.com/AmKilopa/KlpGIT/chroma"
	"github.com/AmKilopa/KlpGIT/clipboard"
	klpfs "github.com/AmKilopa/KlpGIT/fs"
	"github.com/AmKilopa/KlpGIT/gemini"
	"github.com/AmKilopa/KlpGIT/git"
	"github.com/AmKilopa/KlpGIT/highlight"
	klpstyle "github.com/AmKilopa/KlpGIT/lipgloss"
)

// NewLogger returns a slog logger writing to w in the given format.
func NewLogger(w io.Writer, format, level string) (*slog.Logger, error) {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(level)); err != nil {
		return nil, fmt.Errorf("invalid log level %q", level)
	}
	opts := &slog.HandlerOptions{Level: lvl}
	switch strings.ToLower(format) {
	case "", "text":
		return slog.New(slog.NewTextHandler(w, opts)), nil
	case "json":
		return slog.New(slog.NewJSONHandler(w, opts)), nil
	default:
		return nil, fmt.Errorf("invalid log format %q", format)
	}
}

// Env holds the collaborators wired from the configuration.
type Env struct {
	Config    klpgit.Config
	Logger    *slog.Logger
	Project   klpgit.ProjectInfo
	Repo      *git.Repository
	Tree      *klpfs.Tree
	Files     *klpfs.Reader
	Registry  *highlight.Registry
	Suggester klpgit.CommitMessageSuggester // nil without GEMINI_API_KEY
}

// NewEnv wires the collaborators for cfg.Dir.
func NewEnv(ctx context.Context, cfg klpgit.Config, getenv func(string) string, logger *slog.Logger) (*Env, error) {
	reg := highlight.NewRegistry()
	var detector klpgit.LanguageDetector = reg
	if cfg.Highlight.Engine == klpgit.EngineChroma {
		n := chroma.Install(reg)
		detector = chroma.NewDetector(reg)
		logger.Debug("chroma lexers installed", "languages", n)
	}

	repo := git.NewRepository(cfg.Dir, git.NewRunner(""))
	env := &Env{
		Config: cfg,
		Logger: logger,
		Project: klpgit.ProjectInfo{
			Dir:    cfg.Dir,
			HasGit: repo.HasRepo(),
			Name:   filepath.Base(cfg.Dir),
		},
		Repo:     repo,
		Tree:     klpfs.NewTree(cfg.Dir),
		Files:    klpfs.NewReader(cfg.Dir, detector),
		Registry: reg,
	}

	if key := getenv("GEMINI_API_KEY"); key != "" {
		client, err := gemini.NewClient(ctx, key)
		if err != nil {
			return nil, err
		}
		inner := gemini.NewSuggester(client, cfg.Gemini.Model)
		env.Suggester = klpfs.NewSuggester(inner, klpfs.DefaultCacheDir())
	}
	return env, nil
}

// App returns the terminal commands bound to env.
func (e *Env) App(stdout io.Writer) *App {
	theme, ok := klpstyle.ThemeByName(e.Config.Highlight.Theme)
	if !ok {
		theme = klpstyle.DefaultTheme()
	}
	printer := klpstyle.NewPrinter(klpstyle.WithTheme(theme))

	var cb klpgit.Clipboard
	if sys := clipboard.NewSystem(); sys.Available() {
		cb = sys
	}
	return &App{
		Stdout:      stdout,
		Repo:        e.Repo,
		Files:       e.Files,
		Highlighter: e.Registry,
		Printer:     printer,
		Viewer: bubbletea.NewViewer(
			bubbletea.WithPrinter(printer),
			bubbletea.WithViewerClipboard(cb),
		),
	}
}
