package klpgit

import (
	"regexp"
	"strconv"
	"strings"
)

// DiffLineKind classifies a row of a rendered diff.
type DiffLineKind string

// Diff row kinds.
const (
	DiffAdded   DiffLineKind = "added"
	DiffRemoved DiffLineKind = "removed"
	DiffHunk    DiffLineKind = "hunk-header"
	DiffMeta    DiffLineKind = "file-meta"
	DiffContext DiffLineKind = "context"
)

// Diff row signs. SignRemoved is U+2212 MINUS SIGN.
const (
	SignAdded   = "+"
	SignRemoved = "−"
)

// placeholder keeps empty rows at full height when displayed.
const placeholder = " "

// DiffLine is one row of a rendered diff. Number is the new-file line number
// and is only set on added and context rows; zero means no number.
type DiffLine struct {
	Kind   DiffLineKind `json:"kind"`
	Number int          `json:"number,omitempty"`
	Sign   string       `json:"sign,omitempty"`
	Text   string       `json:"text"`
}

// Display returns the row text, or a non-breaking space for empty rows.
func (l DiffLine) Display() string {
	if l.Text == "" {
		return placeholder
	}
	return l.Text
}

// RenderedDiff is a unified diff classified row by row.
type RenderedDiff struct {
	Lines   []DiffLine `json:"lines"`
	Added   int        `json:"added"`
	Removed int        `json:"removed"`
}

// hunkHeader captures the new-file start of "@@ -a[,b] +c[,d] @@". The
// counts are optional and default to 1 in the unified format; only the start
// is needed for numbering.
var hunkHeader = regexp.MustCompile(`^@@ -\d+(?:,\d+)? \+(\d+)(?:,\d+)? @@`)

// metaPrefixes mark file header rows. Besides the ---/+++/diff/index headers
// this covers the git extended headers and the "\ No newline" marker, none of
// which are lines of the new file.
var metaPrefixes = []string{
	"+++",
	"---",
	"diff ",
	"index ",
	"new file mode",
	"deleted file mode",
	"old mode",
	"new mode",
	"similarity index",
	"dissimilarity index",
	"rename from",
	"rename to",
	"copy from",
	"copy to",
	"Binary files",
	`\ `,
}

// RenderDiff classifies every line of a unified diff in a single pass,
// numbering added and context rows against the new file. A hunk header that
// cannot be parsed is still emitted and leaves the counter unchanged.
func RenderDiff(diffText string) RenderedDiff {
	var out RenderedDiff
	if diffText == "" {
		return out
	}

	lines := strings.Split(strings.TrimSuffix(diffText, "\n"), "\n")
	out.Lines = make([]DiffLine, 0, len(lines))

	current := 0
	for _, line := range lines {
		row := DiffLine{Text: line}
		switch {
		case isMeta(line):
			row.Kind = DiffMeta
		case strings.HasPrefix(line, "@@"):
			row.Kind = DiffHunk
			if start, ok := parseHunkStart(line); ok {
				current = start - 1
			}
		case strings.HasPrefix(line, "+"):
			current++
			row.Kind = DiffAdded
			row.Number = current
			row.Sign = SignAdded
			out.Added++
		case strings.HasPrefix(line, "-"):
			row.Kind = DiffRemoved
			row.Sign = SignRemoved
			out.Removed++
		default:
			current++
			row.Kind = DiffContext
			row.Number = current
		}
		out.Lines = append(out.Lines, row)
	}
	return out
}

func isMeta(line string) bool {
	for _, p := range metaPrefixes {
		if strings.HasPrefix(line, p) {
			return true
		}
	}
	return false
}

func parseHunkStart(line string) (int, bool) {
	m := hunkHeader.FindStringSubmatch(line)
	if m == nil {
		return 0, false
	}
	n, err := strconv.Atoi(m[1])
	if err != nil {
		return 0, false
	}
	return n, true
}
