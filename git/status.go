package git

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/AmKilopa/KlpGIT"
)

var aheadBehind = regexp.MustCompile(`\[(?:ahead (\d+))?(?:, )?(?:behind (\d+))?\]`)

// ParseStatus parses the output of "git status --porcelain=v1 --branch -z".
//
// Each path is listed once. Paths are grouped by the first category they
// fall in, in the order staged, modified, untracked, deleted, keeping git's
// order within a group.
func ParseStatus(output string) *klpgit.Status {
	status := &klpgit.Status{Files: []klpgit.FileStatus{}}

	groups := map[klpgit.FileState][]string{}
	entries := strings.Split(output, "\x00")
	for i := 0; i < len(entries); i++ {
		entry := entries[i]
		if rest, ok := strings.CutPrefix(entry, "## "); ok {
			parseBranchLine(status, rest)
			continue
		}
		if len(entry) < 4 {
			continue
		}
		x, y, path := entry[0], entry[1], entry[3:]
		// Renames and copies are followed by their source path.
		if x == 'R' || x == 'C' {
			i++
		}
		if state, ok := classify(x, y); ok {
			groups[state] = append(groups[state], path)
		}
	}

	for _, state := range []klpgit.FileState{
		klpgit.StateStaged,
		klpgit.StateModified,
		klpgit.StateUntracked,
		klpgit.StateDeleted,
	} {
		for _, path := range groups[state] {
			status.Files = append(status.Files, klpgit.FileStatus{Path: path, Status: state})
		}
	}

	status.Staged = len(groups[klpgit.StateStaged])
	status.Total = len(status.Files)
	status.Modified = status.Total - status.Staged
	return status
}

// classify returns the first state an XY status code belongs to.
func classify(x, y byte) (klpgit.FileState, bool) {
	switch {
	case x == '?' && y == '?':
		return klpgit.StateUntracked, true
	case x == '!':
		return "", false
	case strings.IndexByte("MADRCT", x) >= 0:
		return klpgit.StateStaged, true
	case y == 'M' || y == 'T':
		return klpgit.StateModified, true
	case y == 'D':
		return klpgit.StateDeleted, true
	case x == 'U' || y == 'U' || y == 'A':
		return klpgit.StateModified, true
	}
	return "", false
}

// parseBranchLine reads "main...origin/main [ahead 1, behind 2]",
// "No commits yet on main" and "HEAD (no branch)".
func parseBranchLine(status *klpgit.Status, line string) {
	if m := aheadBehind.FindStringSubmatch(line); m != nil {
		status.Ahead, _ = strconv.Atoi(m[1])
		status.Behind, _ = strconv.Atoi(m[2])
		line = strings.TrimSpace(line[:strings.Index(line, "[")])
	}
	line = strings.TrimPrefix(line, "No commits yet on ")
	line = strings.TrimPrefix(line, "Initial commit on ")
	if line == "HEAD (no branch)" {
		return
	}
	if i := strings.Index(line, "..."); i >= 0 {
		line = line[:i]
	}
	status.Branch = line
}
