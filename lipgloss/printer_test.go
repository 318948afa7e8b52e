package lipgloss_test

import (
	"io"
	"strings"
	"testing"

	"github.com/AmKilopa/KlpGIT"
	"github.com/AmKilopa/KlpGIT/lipgloss"
	lg "github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"github.com/stretchr/testify/assert"
)

// renderer returns a renderer with a fixed color profile, independent of the
// test terminal.
func renderer(profile termenv.Profile) *lg.Renderer {
	r := lg.NewRenderer(io.Discard)
	r.SetColorProfile(profile)
	return r
}

func plainPrinter() *lipgloss.Printer {
	return lipgloss.NewPrinter(lipgloss.WithRenderer(renderer(termenv.Ascii)))
}

const sampleDiff = "diff --git a/a.go b/a.go\n@@ -1,2 +1,2 @@\n x\n-y\n+z\n"

func TestPrinter_Diff(t *testing.T) {
	t.Parallel()

	t.Run("gutter and sign columns", func(t *testing.T) {
		t.Parallel()

		got := plainPrinter().Diff(klpgit.RenderDiff(sampleDiff))

		want := strings.Join([]string{
			"     diff --git a/a.go b/a.go",
			"     @@ -1,2 +1,2 @@",
			"   1   x",
			"     − y",
			"   2 + z",
			"+1 −1",
			"",
		}, "\n")
		assert.Equal(t, want, got)
	})

	t.Run("expands tabs", func(t *testing.T) {
		t.Parallel()

		got := plainPrinter().Diff(klpgit.RenderDiff("@@ -1 +1 @@\n+\tx\n"))

		assert.Contains(t, got, "   1 +         x")
	})

	t.Run("empty diff", func(t *testing.T) {
		t.Parallel()

		got := plainPrinter().Diff(klpgit.RenderDiff(""))

		assert.Equal(t, klpgit.ErrNoChanges.Error()+"\n", got)
	})

	t.Run("true color output is styled", func(t *testing.T) {
		t.Parallel()

		p := lipgloss.NewPrinter(lipgloss.WithRenderer(renderer(termenv.TrueColor)))

		got := p.Diff(klpgit.RenderDiff(sampleDiff))

		assert.Contains(t, got, "\x1b[")
		// #a6e3a1 added foreground
		assert.Contains(t, got, "38;2;166;227;161")
	})

	t.Run("width pads rows", func(t *testing.T) {
		t.Parallel()

		p := lipgloss.NewPrinter(lipgloss.WithRenderer(renderer(termenv.Ascii)), lipgloss.WithWidth(40))

		got := p.Diff(klpgit.RenderDiff(sampleDiff))

		for _, line := range strings.Split(strings.TrimSuffix(got, "\n"), "\n")[:5] {
			assert.Equal(t, 40, lg.Width(line), line)
		}
	})
}

func TestPrinter_Source(t *testing.T) {
	t.Parallel()

	lines := [][]klpgit.Token{
		{{Kind: klpgit.TokenKeyword, Text: "package"}, {Text: " main"}},
		{},
		{{Text: "\t"}, {Kind: klpgit.TokenComment, Text: "// x"}},
	}

	t.Run("plain", func(t *testing.T) {
		t.Parallel()

		got := plainPrinter().Source(lines)

		assert.Equal(t, "   1  package main\n   2  \n   3          // x\n", got)
	})

	t.Run("colored by kind", func(t *testing.T) {
		t.Parallel()

		p := lipgloss.NewPrinter(
			lipgloss.WithRenderer(renderer(termenv.TrueColor)),
			lipgloss.WithTheme(lipgloss.LightTheme()),
		)

		got := p.Source(lines)

		// #8839ef keyword color of the light palette
		assert.Contains(t, got, "38;2;136;57;239")
	})
}

func TestPrinter_Issues(t *testing.T) {
	t.Parallel()

	t.Run("lists issues", func(t *testing.T) {
		t.Parallel()

		issues := klpgit.Validate("a \nb")

		got := plainPrinter().Issues("a.go", issues)

		assert.Equal(t, "a.go\n  warning trailingWhitespace (1) lines 1\n  info    missingNewline (1)\n", got)
	})

	t.Run("caps listed lines", func(t *testing.T) {
		t.Parallel()

		lines := make([]int, 12)
		for i := range lines {
			lines[i] = i + 1
		}
		issues := []klpgit.ValidationIssue{{Severity: klpgit.SeverityInfo, Kind: klpgit.IssueTodoComments, Count: 12, Lines: lines}}

		got := plainPrinter().Issues("a.go", issues)

		assert.Contains(t, got, "lines 1, 2, 3, 4, 5, 6, 7, 8, 9, 10 and 2 more")
	})

	t.Run("clean file", func(t *testing.T) {
		t.Parallel()

		assert.Equal(t, "a.go: no issues\n", plainPrinter().Issues("a.go", nil))
	})
}

func TestPrinter_Title(t *testing.T) {
	t.Parallel()

	assert.Equal(t, " main.go ", plainPrinter().Title("main.go"))
}
