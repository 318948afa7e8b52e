package fs

import (
	"bufio"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/AmKilopa/KlpGIT"
	"github.com/go-git/go-git/v5/plumbing/format/gitignore"
	"github.com/lithammer/fuzzysearch/fuzzy"
)

// DefaultIgnore names entries never shown in the explorer.
var DefaultIgnore = map[string]bool{
	"node_modules": true,
	".git":         true,
	".klpgit":      true,
	"dist":         true,
	"build":        true,
	".next":        true,
	".nuxt":        true,
	"coverage":     true,
	".cache":       true,
	"__pycache__":  true,
	".venv":        true,
	"venv":         true,
	".env":         true,
	".idea":        true,
	".vscode":      true,
}

var _ klpgit.TreeLister = (*Tree)(nil)

// Tree lists the working tree for the file explorer.
type Tree struct {
	root string
}

// NewTree returns a tree rooted at root.
func NewTree(root string) *Tree {
	return &Tree{root: root}
}

// Tree walks the working tree. Directories come before files, each group in
// case-insensitive name order. Hidden entries other than .gitignore, the
// DefaultIgnore names and paths matched by .gitignore files are skipped.
// Unreadable directories are listed without children. Symlinks, including
// links to directories, are leaf entries.
func (t *Tree) Tree() ([]klpgit.TreeEntry, error) {
	if _, err := os.Stat(t.root); err != nil {
		return nil, err
	}
	return t.readDir(nil, nil), nil
}

func (t *Tree) readDir(rel []string, patterns []gitignore.Pattern) []klpgit.TreeEntry {
	dir := filepath.Join(append([]string{t.root}, rel...)...)
	entries, err := os.ReadDir(dir)
	if err != nil {
		return []klpgit.TreeEntry{}
	}

	patterns = append(patterns, readIgnoreFile(filepath.Join(dir, ".gitignore"), rel)...)
	matcher := gitignore.NewMatcher(patterns)

	result := make([]klpgit.TreeEntry, 0, len(entries))
	for _, e := range entries {
		name := e.Name()
		if Hidden(name) {
			continue
		}
		// Symlinks are listed as files and never followed.
		isDir := e.IsDir() && e.Type()&os.ModeSymlink == 0
		path := append(append([]string{}, rel...), name)
		if matcher.Match(path, isDir) {
			continue
		}

		node := klpgit.TreeEntry{Name: name, Path: strings.Join(path, "/"), Type: klpgit.EntryFile}
		if isDir {
			node.Type = klpgit.EntryDir
			node.Children = t.readDir(path, patterns)
		}
		result = append(result, node)
	}

	sortEntries(result)
	return result
}

// Hidden reports whether an entry name is excluded from the explorer
// regardless of .gitignore.
func Hidden(name string) bool {
	if DefaultIgnore[name] {
		return true
	}
	return strings.HasPrefix(name, ".") && name != ".gitignore"
}

func readIgnoreFile(path string, domain []string) []gitignore.Pattern {
	f, err := os.Open(path)
	if err != nil {
		return nil
	}
	defer f.Close()

	var patterns []gitignore.Pattern
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		patterns = append(patterns, gitignore.ParsePattern(line, domain))
	}
	return patterns
}

func sortEntries(entries []klpgit.TreeEntry) {
	sort.SliceStable(entries, func(i, j int) bool {
		a, b := entries[i], entries[j]
		if a.IsDir() != b.IsDir() {
			return a.IsDir()
		}
		al, bl := strings.ToLower(a.Name), strings.ToLower(b.Name)
		if al != bl {
			return al < bl
		}
		return a.Name < b.Name
	})
}

// Filter returns the entries whose path fuzzy-matches query, ignoring case,
// with the directories leading to them. Directories whose own name matches
// are kept even when no child does. An empty query returns entries as is.
func Filter(entries []klpgit.TreeEntry, query string) []klpgit.TreeEntry {
	query = strings.TrimSpace(query)
	if query == "" {
		return entries
	}
	return filter(entries, query)
}

func filter(entries []klpgit.TreeEntry, query string) []klpgit.TreeEntry {
	out := []klpgit.TreeEntry{}
	for _, e := range entries {
		if !e.IsDir() {
			if fuzzy.MatchFold(query, e.Path) {
				out = append(out, e)
			}
			continue
		}
		children := filter(e.Children, query)
		if len(children) > 0 || fuzzy.MatchFold(query, e.Name) {
			e.Children = children
			out = append(out, e)
		}
	}
	return out
}
