package main

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/AmKilopa/KlpGIT"
	klpstyle "github.com/AmKilopa/KlpGIT/lipgloss"
)

// ErrWarnings is returned by lint when a warning was reported.
var ErrWarnings = errors.New("warnings reported")

// Highlighter tokenizes file content by extension.
type Highlighter interface {
	HighlightLines(content, ext string) [][]klpgit.Token
}

// App implements the terminal subcommands.
type App struct {
	Stdout      io.Writer
	Repo        klpgit.Repository
	Files       klpgit.FileReader
	Highlighter Highlighter
	Printer     *klpstyle.Printer
	Viewer      klpgit.Viewer
}

// Lint prints the validation report of path.
func (a *App) Lint(path string) error {
	content, err := a.Files.ReadFile(path)
	if err != nil {
		return err
	}
	issues := klpgit.Validate(content.Content)
	fmt.Fprint(a.Stdout, a.Printer.Issues(path, issues))
	for _, issue := range issues {
		if issue.Severity == klpgit.SeverityWarning {
			return ErrWarnings
		}
	}
	return nil
}

// Show prints the highlighted source of path.
func (a *App) Show(path string) error {
	source, err := a.source(path)
	if err != nil {
		return err
	}
	fmt.Fprint(a.Stdout, a.Printer.Source(source))
	return nil
}

// Diff prints the rendered diff of path, or of the whole tree when path is
// empty.
func (a *App) Diff(ctx context.Context, path string) error {
	text, err := a.diffText(ctx, path)
	if err != nil {
		return err
	}
	if path != "" {
		fmt.Fprintln(a.Stdout, a.Printer.Title(path))
	}
	fmt.Fprint(a.Stdout, a.Printer.Diff(klpgit.RenderDiff(text)))
	return nil
}

// View pages through the diff of path, or its source when it is unchanged.
func (a *App) View(ctx context.Context, path string) error {
	var diff klpgit.RenderedDiff
	if a.Repo.HasRepo() {
		text, err := a.diffText(ctx, path)
		if err != nil {
			return err
		}
		diff = klpgit.RenderDiff(text)
	}

	var source [][]klpgit.Token
	if len(diff.Lines) == 0 {
		var err error
		if source, err = a.source(path); err != nil {
			return err
		}
	}
	return a.Viewer.View(ctx, path, diff, source)
}

func (a *App) diffText(ctx context.Context, path string) (string, error) {
	if path == "" {
		return a.Repo.AllDiff(ctx)
	}
	return a.Repo.Diff(ctx, path)
}

func (a *App) source(path string) ([][]klpgit.Token, error) {
	content, err := a.Files.ReadFile(path)
	if err != nil {
		return nil, err
	}
	if content.Content == "" {
		return nil, nil
	}
	return a.Highlighter.HighlightLines(content.Content, content.Language), nil
}
