package bubbletea

import (
	"context"
	"errors"
	"fmt"

	"github.com/AmKilopa/KlpGIT"
	klpstyle "github.com/AmKilopa/KlpGIT/lipgloss"
	tea "github.com/charmbracelet/bubbletea"
)

// Compile-time interface verification.
var _ klpgit.Viewer = (*Viewer)(nil)

// ViewerOption configures a Viewer.
type ViewerOption func(*Viewer)

// WithPrinter sets the printer used to render content.
func WithPrinter(p *klpstyle.Printer) ViewerOption {
	return func(v *Viewer) { v.printer = p }
}

// WithViewerClipboard sets the clipboard used by the copy binding.
func WithViewerClipboard(cb klpgit.Clipboard) ViewerOption {
	return func(v *Viewer) { v.clipboard = cb }
}

// WithProgramOptions adds Bubble Tea program options, such as input and
// output overrides.
func WithProgramOptions(opts ...tea.ProgramOption) ViewerOption {
	return func(v *Viewer) { v.programOpts = append(v.programOpts, opts...) }
}

// Viewer implements klpgit.Viewer using a Bubble Tea pager.
type Viewer struct {
	printer     *klpstyle.Printer
	clipboard   klpgit.Clipboard
	programOpts []tea.ProgramOption
}

// NewViewer creates a new Viewer.
func NewViewer(opts ...ViewerOption) *Viewer {
	v := &Viewer{printer: klpstyle.NewPrinter()}
	for _, opt := range opts {
		opt(v)
	}
	return v
}

// Model builds the pager model for path. The rendered diff is shown when it
// has rows, the highlighted source otherwise.
func (v *Viewer) Model(path string, diff klpgit.RenderedDiff, source [][]klpgit.Token) Model {
	opts := []ModelOption{
		WithClipboard(v.clipboard, path),
		WithBarStyle(v.printer.HeaderStyle()),
	}

	if len(diff.Lines) == 0 {
		return NewModel(path, v.printer.Source(source), opts...)
	}

	var marks []int
	for i, l := range diff.Lines {
		if l.Kind == klpgit.DiffHunk {
			marks = append(marks, i)
		}
	}
	title := fmt.Sprintf("%s  +%d %s%d", path, diff.Added, klpgit.SignRemoved, diff.Removed)
	return NewModel(title, v.printer.Diff(diff), append(opts, WithMarks(marks))...)
}

// View displays path and blocks until the user exits or ctx is cancelled.
func (v *Viewer) View(ctx context.Context, path string, diff klpgit.RenderedDiff, source [][]klpgit.Token) error {
	opts := append([]tea.ProgramOption{
		tea.WithContext(ctx),
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
	}, v.programOpts...)

	_, err := tea.NewProgram(v.Model(path, diff, source), opts...).Run()
	if err != nil && errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
		return nil
	}
	return err
}
