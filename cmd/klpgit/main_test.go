package main_test

import (
	"bytes"
	"context"
	"errors"
	"net"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/AmKilopa/KlpGIT"
	main "github.com/AmKilopa/KlpGIT/cmd/klpgit"
	"github.com/AmKilopa/KlpGIT/highlight"
	klpstyle "github.com/AmKilopa/KlpGIT/lipgloss"
	"github.com/AmKilopa/KlpGIT/mock"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func plainPrinter() *klpstyle.Printer {
	r := lipgloss.NewRenderer(&bytes.Buffer{})
	r.SetColorProfile(termenv.Ascii)
	return klpstyle.NewPrinter(klpstyle.WithRenderer(r))
}

func newApp(files map[string]string) (*main.App, *bytes.Buffer) {
	var out bytes.Buffer
	return &main.App{
		Stdout: &out,
		Repo: &mock.Repository{
			HasRepoFn: func() bool { return true },
			DiffFn: func(ctx context.Context, path string) (string, error) {
				if path == "changed.go" {
					return "@@ -1 +1 @@\n-old\n+new\n", nil
				}
				return "", nil
			},
			AllDiffFn: func(ctx context.Context) (string, error) {
				return "diff --git a/x b/x\n@@ -1 +1 @@\n+y\n", nil
			},
		},
		Files: &mock.FileReader{
			ReadFileFn: func(path string) (*klpgit.FileContent, error) {
				content, ok := files[path]
				if !ok {
					return nil, klpgit.ErrNotFound
				}
				return &klpgit.FileContent{Content: content, Language: klpgit.ClassifyExtension(path)}, nil
			},
		},
		Highlighter: highlight.NewRegistry(),
		Printer:     plainPrinter(),
	}, &out
}

func TestApp_Lint(t *testing.T) {
	t.Parallel()

	t.Run("warnings", func(t *testing.T) {
		t.Parallel()

		app, out := newApp(map[string]string{"a.js": "console.log(1)\n"})

		err := app.Lint("a.js")

		assert.ErrorIs(t, err, main.ErrWarnings)
		assert.Contains(t, out.String(), "consoleStatements (1) lines 1")
	})

	t.Run("info only", func(t *testing.T) {
		t.Parallel()

		app, out := newApp(map[string]string{"a.js": "// TODO"})

		require.NoError(t, app.Lint("a.js"))
		assert.Contains(t, out.String(), "todoComments")
		assert.Contains(t, out.String(), "missingNewline")
	})

	t.Run("missing file", func(t *testing.T) {
		t.Parallel()

		app, _ := newApp(nil)

		assert.ErrorIs(t, app.Lint("nope.js"), klpgit.ErrNotFound)
	})
}

func TestApp_Show(t *testing.T) {
	t.Parallel()

	app, out := newApp(map[string]string{"main.go": "package main\n"})

	require.NoError(t, app.Show("main.go"))

	assert.Equal(t, "   1  package main\n   2  \n", out.String())
}

func TestApp_Diff(t *testing.T) {
	t.Parallel()

	t.Run("single file", func(t *testing.T) {
		t.Parallel()

		app, out := newApp(nil)

		require.NoError(t, app.Diff(context.Background(), "changed.go"))

		assert.True(t, strings.HasPrefix(out.String(), " changed.go \n"))
		assert.Contains(t, out.String(), "   1 + new")
		assert.Contains(t, out.String(), "+1 −1")
	})

	t.Run("whole tree", func(t *testing.T) {
		t.Parallel()

		app, out := newApp(nil)

		require.NoError(t, app.Diff(context.Background(), ""))

		assert.Contains(t, out.String(), "diff --git a/x b/x")
	})
}

func TestApp_View(t *testing.T) {
	t.Parallel()

	t.Run("changed file shows diff", func(t *testing.T) {
		t.Parallel()

		app, _ := newApp(nil)
		app.Viewer = &mock.Viewer{
			ViewFn: func(ctx context.Context, path string, diff klpgit.RenderedDiff, source [][]klpgit.Token) error {
				assert.Equal(t, "changed.go", path)
				assert.Equal(t, 1, diff.Added)
				assert.Nil(t, source)
				return nil
			},
		}

		require.NoError(t, app.View(context.Background(), "changed.go"))
	})

	t.Run("unchanged file shows source", func(t *testing.T) {
		t.Parallel()

		app, _ := newApp(map[string]string{"same.go": "package x\n"})
		app.Viewer = &mock.Viewer{
			ViewFn: func(ctx context.Context, path string, diff klpgit.RenderedDiff, source [][]klpgit.Token) error {
				assert.Empty(t, diff.Lines)
				require.NotEmpty(t, source)
				assert.Equal(t, "package x", klpgit.JoinTokens(source[0]))
				return nil
			},
		}

		require.NoError(t, app.View(context.Background(), "same.go"))
	})

	t.Run("viewer error", func(t *testing.T) {
		t.Parallel()

		viewErr := errors.New("no tty")
		app, _ := newApp(nil)
		app.Viewer = &mock.Viewer{
			ViewFn: func(context.Context, string, klpgit.RenderedDiff, [][]klpgit.Token) error { return viewErr },
		}

		assert.ErrorIs(t, app.View(context.Background(), "changed.go"), viewErr)
	})
}

func env(vars map[string]string) func(string) string {
	return func(k string) string { return vars[k] }
}

func TestParseOptions(t *testing.T) {
	t.Parallel()

	noConfig := func(t *testing.T) string {
		return "--config=" + filepath.Join(t.TempDir(), "none.toml")
	}

	t.Run("defaults to serve", func(t *testing.T) {
		t.Parallel()

		opts, err := main.ParseOptions([]string{noConfig(t)}, env(nil))

		require.NoError(t, err)
		assert.Equal(t, "serve", opts.Command)
		assert.Equal(t, klpgit.DefaultPort, opts.Config.Port)
		assert.True(t, opts.Config.Open)
		assert.True(t, filepath.IsAbs(opts.Config.Dir))
	})

	t.Run("precedence", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "config.toml")
		require.NoError(t, os.WriteFile(path, []byte("port = 5000\nlog_level = \"debug\"\n"), 0o644))

		opts, err := main.ParseOptions([]string{"--config", path}, env(nil))
		require.NoError(t, err)
		assert.Equal(t, 5000, opts.Config.Port)
		assert.Equal(t, "debug", opts.Config.LogLevel)

		opts, err = main.ParseOptions([]string{"--config", path}, env(map[string]string{"KLPGIT_PORT": "6000"}))
		require.NoError(t, err)
		assert.Equal(t, 6000, opts.Config.Port)

		opts, err = main.ParseOptions([]string{"--config", path, "-p", "7000"}, env(map[string]string{"KLPGIT_PORT": "6000"}))
		require.NoError(t, err)
		assert.Equal(t, 7000, opts.Config.Port)
	})

	t.Run("flags", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		opts, err := main.ParseOptions([]string{noConfig(t), "-C", dir, "--no-open", "--log-format", "json", "--engine", "chroma", "lint", "a.go"}, env(nil))

		require.NoError(t, err)
		assert.Equal(t, "lint", opts.Command)
		assert.Equal(t, "a.go", opts.Path)
		assert.Equal(t, dir, opts.Config.Dir)
		assert.False(t, opts.Config.Open)
		assert.Equal(t, "json", opts.Config.LogFormat)
		assert.Equal(t, klpgit.EngineChroma, opts.Config.Highlight.Engine)
		assert.Equal(t, "dark", opts.Config.Highlight.Theme)
	})

	t.Run("theme", func(t *testing.T) {
		t.Parallel()

		opts, err := main.ParseOptions([]string{noConfig(t), "--theme", "light"}, env(nil))
		require.NoError(t, err)
		assert.Equal(t, "light", opts.Config.Highlight.Theme)

		_, err = main.ParseOptions([]string{noConfig(t), "--theme", "neon"}, env(nil))
		assert.Error(t, err)
	})

	t.Run("diff takes an optional file", func(t *testing.T) {
		t.Parallel()

		opts, err := main.ParseOptions([]string{noConfig(t), "diff"}, env(nil))
		require.NoError(t, err)
		assert.Empty(t, opts.Path)

		opts, err = main.ParseOptions([]string{noConfig(t), "diff", "a.go"}, env(nil))
		require.NoError(t, err)
		assert.Equal(t, "a.go", opts.Path)
	})

	t.Run("errors", func(t *testing.T) {
		t.Parallel()

		for _, args := range [][]string{
			{"frobnicate"},
			{"lint"},
			{"show", "a", "b"},
			{"serve", "x"},
			{"--engine", "pygments"},
			{"--bogus"},
		} {
			_, err := main.ParseOptions(append([]string{noConfig(t)}, args...), env(nil))
			assert.Error(t, err, strings.Join(args, " "))
		}

		_, err := main.ParseOptions([]string{noConfig(t)}, env(map[string]string{"KLPGIT_PORT": "http"}))
		assert.Error(t, err)
	})

	t.Run("help", func(t *testing.T) {
		t.Parallel()

		opts, err := main.ParseOptions([]string{"--help"}, env(nil))

		require.Error(t, err)
		assert.Contains(t, opts.Usage, "--port")
		assert.Contains(t, opts.Usage, "lint <file>")
	})
}

func TestNewLogger(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger, err := main.NewLogger(&buf, "json", "warn")
	require.NoError(t, err)

	logger.Info("hidden")
	logger.Warn("shown", "k", "v")

	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), `"msg":"shown"`)

	_, err = main.NewLogger(&buf, "xml", "info")
	assert.Error(t, err)
	_, err = main.NewLogger(&buf, "text", "loud")
	assert.Error(t, err)
}

func TestListen(t *testing.T) {
	t.Parallel()

	busy, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	t.Cleanup(func() { _ = busy.Close() })
	taken := busy.Addr().(*net.TCPAddr).Port

	ln, err := main.Listen(taken)
	require.NoError(t, err)
	t.Cleanup(func() { _ = ln.Close() })

	got := ln.Addr().(*net.TCPAddr).Port
	assert.NotEqual(t, taken, got)
	assert.NotZero(t, got)
	assert.Equal(t, "127.0.0.1", ln.Addr().(*net.TCPAddr).IP.String())
}

func TestBrowserCommands(t *testing.T) {
	t.Parallel()

	url := "http://localhost:4219"
	for _, goos := range []string{"linux", "darwin", "windows"} {
		t.Run(goos, func(t *testing.T) {
			t.Parallel()

			cmds := main.BrowserCommands(goos, url)

			require.GreaterOrEqual(t, len(cmds), 2)
			assert.Contains(t, cmds[0], "--app="+url)
			assert.Contains(t, cmds[0], "--window-size=1280,840")
			last := cmds[len(cmds)-1]
			assert.Equal(t, url, last[len(last)-1])
		})
	}
}
