// Package gitdiff parses git's unified diff output using bluekeyes/go-gitdiff.
package gitdiff

import (
	"fmt"
	"io"
	"strings"

	"github.com/AmKilopa/KlpGIT"
	"github.com/bluekeyes/go-gitdiff/gitdiff"
)

var _ klpgit.DiffParser = (*Parser)(nil)

// Parser parses unified diff content into structured file changes.
type Parser struct{}

// NewParser creates a new Parser.
func NewParser() *Parser {
	return &Parser{}
}

// Parse reads diff content and returns the parsed result.
func (p *Parser) Parse(r io.Reader) (*klpgit.Diff, error) {
	files, _, err := gitdiff.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("parse diff: %w", err)
	}

	result := &klpgit.Diff{Files: make([]klpgit.FileDiff, 0, len(files))}
	for _, f := range files {
		result.Files = append(result.Files, convertFile(f))
	}
	return result, nil
}

func convertFile(f *gitdiff.File) klpgit.FileDiff {
	fd := klpgit.FileDiff{
		OldPath:  f.OldName,
		NewPath:  f.NewName,
		IsBinary: f.IsBinary,
		OldMode:  f.OldMode,
		NewMode:  f.NewMode,
	}

	switch {
	case f.IsNew:
		fd.Operation = klpgit.FileAdded
	case f.IsDelete:
		fd.Operation = klpgit.FileDeleted
	case f.IsRename:
		fd.Operation = klpgit.FileRenamed
	case f.IsCopy:
		fd.Operation = klpgit.FileCopied
	default:
		fd.Operation = klpgit.FileModified
	}

	fd.Hunks = make([]klpgit.Hunk, 0, len(f.TextFragments))
	for _, frag := range f.TextFragments {
		fd.Hunks = append(fd.Hunks, convertFragment(frag))
	}
	return fd
}

// convertFragment numbers each line against both sides of the hunk. Line
// content is stored without its newline.
func convertFragment(frag *gitdiff.TextFragment) klpgit.Hunk {
	hunk := klpgit.Hunk{
		OldStart: int(frag.OldPosition),
		OldCount: int(frag.OldLines),
		NewStart: int(frag.NewPosition),
		NewCount: int(frag.NewLines),
		Section:  frag.Comment,
		Lines:    make([]klpgit.Line, 0, len(frag.Lines)),
	}

	oldNum, newNum := hunk.OldStart, hunk.NewStart
	for _, l := range frag.Lines {
		line := klpgit.Line{Content: strings.TrimSuffix(l.Line, "\n")}
		switch l.Op {
		case gitdiff.OpContext:
			line.Type = klpgit.LineContext
			line.OldLineNum, line.NewLineNum = oldNum, newNum
			oldNum++
			newNum++
		case gitdiff.OpAdd:
			line.Type = klpgit.LineAdded
			line.NewLineNum = newNum
			newNum++
		case gitdiff.OpDelete:
			line.Type = klpgit.LineDeleted
			line.OldLineNum = oldNum
			oldNum++
		}
		hunk.Lines = append(hunk.Lines, line)
	}
	return hunk
}
