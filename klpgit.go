// Package klpgit provides domain types for browsing a git working tree,
// viewing diffs and source, and committing changes from a local web UI.
package klpgit

import (
	"context"
	"errors"
	"io"
	"io/fs"
)

// AllFiles is the file-list sentinel meaning "everything in the working tree".
const AllFiles = "."

// Sentinel errors shared by the collaborators.
var (
	ErrEmptyMessage    = errors.New("commit message required")
	ErrPathOutsideRoot = errors.New("access denied")
	ErrNotFound        = errors.New("not found")
	ErrNoChanges       = errors.New("no changes to display")
)

// FileState is the working-tree state of a changed file.
type FileState string

// File states, in the order a path is claimed when it appears in several
// porcelain categories.
const (
	StateStaged    FileState = "staged"
	StateModified  FileState = "modified"
	StateUntracked FileState = "untracked"
	StateDeleted   FileState = "deleted"
)

// FileStatus pairs a repository-relative path with its state.
type FileStatus struct {
	Path   string    `json:"path"`
	Status FileState `json:"status"`
}

// Status is a snapshot of the repository as shown in the sidebar.
type Status struct {
	Branch    string       `json:"branch"`
	RemoteURL string       `json:"remoteUrl"`
	Staged    int          `json:"staged"`
	Modified  int          `json:"modified"` // every listed file that is not staged
	Total     int          `json:"total"`
	Files     []FileStatus `json:"files"`
	Ahead     int          `json:"ahead"`
	Behind    int          `json:"behind"`
}

// TreeEntry is a node of the working-tree file explorer.
type TreeEntry struct {
	Name     string      `json:"name"`
	Path     string      `json:"path"`
	Type     string      `json:"type"` // "file" or "dir"
	Children []TreeEntry `json:"children,omitempty"`
}

// Entry types.
const (
	EntryFile = "file"
	EntryDir  = "dir"
)

// IsDir reports whether the entry is a directory.
func (e TreeEntry) IsDir() bool { return e.Type == EntryDir }

// FileContent is a file served to the source view.
type FileContent struct {
	Content  string `json:"content"`
	Language string `json:"language"`               // extension token, see ClassifyExtension
	Name     string `json:"languageName,omitempty"` // human readable language name
}

// CommitResult describes a successful commit and push.
type CommitResult struct {
	Hash   string `json:"hash"`
	Branch string `json:"branch"`
}

// ProjectInfo describes the directory the server was started in.
type ProjectInfo struct {
	Dir    string `json:"cwd"`
	HasGit bool   `json:"hasGit"`
	Name   string `json:"name"`
}

// Repository is the git porcelain used by the UI. It covers exactly the
// status, diff, commit and push cycle.
type Repository interface {
	// HasRepo reports whether the directory holds a .git directory.
	HasRepo() bool
	Status(ctx context.Context) (*Status, error)
	// Diff returns the unified diff of a single file, preferring the staged
	// diff over the working-tree diff. Empty when there are no differences.
	Diff(ctx context.Context, path string) (string, error)
	// AllDiff returns the staged and unstaged diff of the whole tree.
	AllDiff(ctx context.Context) (string, error)
	// StagedDiff returns the diff of the index against HEAD.
	StagedDiff(ctx context.Context) (string, error)
	Add(ctx context.Context, files []string) error
	// CommitAndPush stages files (AllFiles for everything), commits and
	// pushes to the current branch, creating the upstream when missing.
	CommitAndPush(ctx context.Context, message string, files []string) (*CommitResult, error)
	Init(ctx context.Context, remoteURL string) error
	RemoveRemote(ctx context.Context) error
}

// TreeLister enumerates the working tree for the file explorer.
type TreeLister interface {
	Tree() ([]TreeEntry, error)
}

// FileReader reads repository-relative files for the source view.
type FileReader interface {
	ReadFile(path string) (*FileContent, error)
}

// Broadcaster delivers an event to every connected observer.
type Broadcaster interface {
	Broadcast(event string, data any)
}

// CommitMessageSuggester proposes a commit message for a parsed diff.
type CommitMessageSuggester interface {
	Suggest(ctx context.Context, diff *Diff) (string, error)
}

// DiffParser parses unified diff text into structured file changes.
type DiffParser interface {
	Parse(r io.Reader) (*Diff, error)
}

// Clipboard provides copy-to-clipboard functionality.
type Clipboard interface {
	Copy(content string) error
}

// Viewer displays a rendered file interactively.
type Viewer interface {
	View(ctx context.Context, path string, diff RenderedDiff, source [][]Token) error
}

// Diff represents a complete diff containing one or more file changes.
type Diff struct {
	Files []FileDiff
}

// FileDiff represents changes to a single file.
type FileDiff struct {
	OldPath   string      // empty for new files
	NewPath   string      // empty for deleted files
	Operation FileOp      // Added, Deleted, Modified, Renamed, Copied
	IsBinary  bool        // Binary files have no hunks
	OldMode   fs.FileMode // 0 if unchanged
	NewMode   fs.FileMode
	Hunks     []Hunk
}

// Path returns the new path, or the old path for deletions.
func (f FileDiff) Path() string {
	if f.NewPath != "" {
		return f.NewPath
	}
	return f.OldPath
}

// Stats returns the number of added and deleted lines in the file.
func (f FileDiff) Stats() (added, deleted int) {
	for _, hunk := range f.Hunks {
		for _, line := range hunk.Lines {
			switch line.Type {
			case LineAdded:
				added++
			case LineDeleted:
				deleted++
			}
		}
	}
	return added, deleted
}

// FileOp represents the type of operation performed on a file.
type FileOp int

// File operation types.
const (
	FileModified FileOp = iota
	FileAdded
	FileDeleted
	FileRenamed
	FileCopied
)

// String returns the lowercase operation name.
func (op FileOp) String() string {
	switch op {
	case FileAdded:
		return "added"
	case FileDeleted:
		return "deleted"
	case FileRenamed:
		return "renamed"
	case FileCopied:
		return "copied"
	default:
		return "modified"
	}
}

// Hunk represents a contiguous block of changes within a file.
type Hunk struct {
	OldStart int    // From @@ -X,...
	OldCount int    // From @@ -X,Y ...
	NewStart int    // From @@ ...,+X
	NewCount int    // From @@ ...,+X,Y
	Section  string // Optional function name after @@ ... @@
	Lines    []Line
}

// Line represents a single line within a hunk.
type Line struct {
	Type       LineType
	Content    string
	OldLineNum int // 0 if line is Added
	NewLineNum int // 0 if line is Deleted
}

// LineType represents the type of a diff line.
type LineType int

// Line types.
const (
	LineContext LineType = iota
	LineAdded
	LineDeleted
)

// FileChange is the per-file summary of a working-tree diff.
type FileChange struct {
	Path      string `json:"path"`
	Operation string `json:"operation"`
	Added     int    `json:"added"`
	Removed   int    `json:"removed"`
}

// Changes summarizes every file of a diff.
func (d *Diff) Changes() []FileChange {
	if d == nil {
		return nil
	}
	changes := make([]FileChange, 0, len(d.Files))
	for _, f := range d.Files {
		added, deleted := f.Stats()
		changes = append(changes, FileChange{
			Path:      f.Path(),
			Operation: f.Operation.String(),
			Added:     added,
			Removed:   deleted,
		})
	}
	return changes
}
