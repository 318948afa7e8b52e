package lipgloss

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/AmKilopa/KlpGIT"
	"github.com/charmbracelet/lipgloss"
)

// minGutterWidth is the minimum width of the line number column.
const minGutterWidth = 4

// maxListedLines caps the line numbers printed per issue.
const maxListedLines = 10

// PrinterOption configures a Printer.
type PrinterOption func(*Printer)

// WithTheme sets the color theme.
func WithTheme(t klpgit.Theme) PrinterOption {
	return func(p *Printer) { p.theme = t }
}

// WithRenderer sets the lipgloss renderer, which decides the color profile.
func WithRenderer(r *lipgloss.Renderer) PrinterOption {
	return func(p *Printer) { p.renderer = r }
}

// WithWidth pads diff rows to width so row backgrounds span the terminal.
func WithWidth(width int) PrinterOption {
	return func(p *Printer) { p.width = width }
}

// Printer renders klpgit values as styled terminal text.
type Printer struct {
	renderer *lipgloss.Renderer
	theme    klpgit.Theme
	width    int
}

// NewPrinter creates a Printer with the default theme and renderer.
func NewPrinter(opts ...PrinterOption) *Printer {
	p := &Printer{
		renderer: lipgloss.DefaultRenderer(),
		theme:    DefaultTheme(),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

func (p *Printer) style(cp klpgit.ColorPair) lipgloss.Style {
	style := p.renderer.NewStyle()
	if cp.Foreground != "" {
		style = style.Foreground(lipgloss.Color(cp.Foreground))
	}
	if cp.Background != "" {
		style = style.Background(lipgloss.Color(cp.Background))
	}
	return style
}

// HeaderStyle returns the style of title and status bars.
func (p *Printer) HeaderStyle() lipgloss.Style {
	return p.style(p.theme.Styles().Header).Bold(true)
}

// Title renders a header bar.
func (p *Printer) Title(text string) string {
	return p.HeaderStyle().Padding(0, 1).Render(text)
}

// Diff renders a rendered diff with a gutter of new-file line numbers and a
// sign column, followed by a "+N −M" summary.
func (p *Printer) Diff(d klpgit.RenderedDiff) string {
	if len(d.Lines) == 0 {
		return p.style(p.theme.Styles().Context).Render(klpgit.ErrNoChanges.Error()) + "\n"
	}

	styles := p.theme.Styles()
	rowStyles := map[klpgit.DiffLineKind]lipgloss.Style{
		klpgit.DiffAdded:   p.style(styles.Added),
		klpgit.DiffRemoved: p.style(styles.Removed),
		klpgit.DiffContext: p.style(styles.Context),
		klpgit.DiffHunk:    p.style(styles.Hunk),
		klpgit.DiffMeta:    p.style(styles.Meta).Bold(true),
	}
	numStyle := p.style(styles.LineNumber)

	maxNum := 0
	for _, l := range d.Lines {
		maxNum = max(maxNum, l.Number)
	}
	width := gutterWidth(maxNum)

	var sb strings.Builder
	for _, l := range d.Lines {
		sb.WriteString(numStyle.Render(formatLineNum(l.Number, width)))
		sb.WriteString(" ")

		text := ExpandTabs(body(l), 0)
		style := rowStyles[l.Kind]
		if l.Kind == klpgit.DiffHunk || l.Kind == klpgit.DiffMeta {
			sb.WriteString(p.pad(style, text))
		} else {
			sign := l.Sign
			if sign == "" {
				sign = " "
			}
			sb.WriteString(p.pad(style, sign+" "+text))
		}
		sb.WriteString("\n")
	}

	summary := fmt.Sprintf("+%d %s%d", d.Added, klpgit.SignRemoved, d.Removed)
	sb.WriteString(rowStyles[klpgit.DiffAdded].UnsetBackground().Render(summary))
	sb.WriteString("\n")
	return sb.String()
}

// pad renders text in style, stretched to the printer width when set.
func (p *Printer) pad(style lipgloss.Style, text string) string {
	if p.width > 0 {
		if w := p.width - minGutterWidth - 1; w > lipgloss.Width(text) {
			style = style.Width(w)
		}
	}
	return style.Render(text)
}

// body returns the row text without its diff marker.
func body(l klpgit.DiffLine) string {
	switch l.Kind {
	case klpgit.DiffAdded, klpgit.DiffRemoved:
		return l.Text[1:]
	case klpgit.DiffContext:
		return strings.TrimPrefix(l.Text, " ")
	default:
		return l.Text
	}
}

// Source renders highlighted lines with a 1-based line number gutter.
func (p *Printer) Source(lines [][]klpgit.Token) string {
	palette := p.theme.Palette()
	numStyle := p.style(p.theme.Styles().LineNumber)
	width := gutterWidth(len(lines))

	kindStyles := make(map[klpgit.TokenKind]lipgloss.Style, len(klpgit.TokenKinds)+1)
	kindStyles[klpgit.TokenPlain] = p.style(klpgit.ColorPair{Foreground: palette.Foreground})
	for _, kind := range klpgit.TokenKinds {
		s := p.style(klpgit.ColorPair{Foreground: palette.Color(kind)})
		if kind == klpgit.TokenComment {
			s = s.Italic(true)
		}
		kindStyles[kind] = s
	}

	var sb strings.Builder
	for i, tokens := range lines {
		sb.WriteString(numStyle.Render(formatLineNum(i+1, width)))
		sb.WriteString("  ")
		col := 0
		for _, tok := range tokens {
			text := ExpandTabs(tok.Text, col)
			col += lipgloss.Width(text)
			sb.WriteString(kindStyles[tok.Kind].Render(text))
		}
		sb.WriteString("\n")
	}
	return sb.String()
}

// Issues renders a validation report for path, one issue per line.
func (p *Printer) Issues(path string, issues []klpgit.ValidationIssue) string {
	styles := p.theme.Styles()
	var sb strings.Builder
	if len(issues) == 0 {
		sb.WriteString(path)
		sb.WriteString(": ")
		sb.WriteString(p.style(styles.Added).UnsetBackground().Render("no issues"))
		sb.WriteString("\n")
		return sb.String()
	}

	sb.WriteString(p.style(styles.Meta).Bold(true).Render(path))
	sb.WriteString("\n")
	for _, issue := range issues {
		sevStyle := p.style(styles.Info)
		if issue.Severity == klpgit.SeverityWarning {
			sevStyle = p.style(styles.Warning)
		}
		sev := string(issue.Severity)
		fmt.Fprintf(&sb, "  %s%s %s (%d)", sevStyle.Render(sev), strings.Repeat(" ", max(7-len(sev), 0)), issue.Kind, issue.Count)
		if len(issue.Lines) > 0 {
			sb.WriteString(p.style(styles.LineNumber).Render(" lines " + formatLines(issue.Lines)))
		}
		sb.WriteString("\n")
	}
	return sb.String()
}

func formatLines(lines []int) string {
	n := min(len(lines), maxListedLines)
	parts := make([]string, n)
	for i := range n {
		parts[i] = strconv.Itoa(lines[i])
	}
	s := strings.Join(parts, ", ")
	if rest := len(lines) - n; rest > 0 {
		s += fmt.Sprintf(" and %d more", rest)
	}
	return s
}

func gutterWidth(maxLineNum int) int {
	return max(len(strconv.Itoa(maxLineNum)), minGutterWidth)
}

// formatLineNum right-aligns num, or returns blanks for zero.
func formatLineNum(num, width int) string {
	if num == 0 {
		return strings.Repeat(" ", width)
	}
	return fmt.Sprintf("%*d", width, num)
}
