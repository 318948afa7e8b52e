package git

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/AmKilopa/KlpGIT"
	gogit "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
)

var _ klpgit.Repository = (*Repository)(nil)

// DefaultBranch is reported when the current branch cannot be determined.
const DefaultBranch = "main"

// Repository implements klpgit.Repository for one working directory.
type Repository struct {
	dir    string
	runner *Runner
}

// NewRepository returns a repository rooted at dir.
func NewRepository(dir string, runner *Runner) *Repository {
	return &Repository{dir: dir, runner: runner}
}

// HasRepo reports whether dir holds a .git entry.
func (r *Repository) HasRepo() bool {
	_, err := os.Stat(filepath.Join(r.dir, ".git"))
	return err == nil
}

// Status returns the working-tree status with the origin URL.
func (r *Repository) Status(ctx context.Context) (*klpgit.Status, error) {
	out, err := r.runner.Run(ctx, r.dir, "status", "--porcelain=v1", "--branch", "-z")
	if err != nil {
		return nil, err
	}
	status := ParseStatus(out)
	if status.Branch == "" {
		status.Branch = r.headName()
	}
	if status.Branch == "" {
		status.Branch = DefaultBranch
	}
	status.RemoteURL = r.remoteURL()
	return status, nil
}

// Diff prefers the staged diff of path, then the working-tree diff, then a
// whole-file diff when path is untracked. Git failures yield empty text.
func (r *Repository) Diff(ctx context.Context, path string) (string, error) {
	if staged, _ := r.runner.Run(ctx, r.dir, "diff", "--staged", "--", path); staged != "" {
		return staged, nil
	}
	if unstaged, _ := r.runner.Run(ctx, r.dir, "diff", "--", path); unstaged != "" {
		return unstaged, nil
	}
	if r.isUntracked(ctx, path) {
		out, _ := r.runner.RunDiff(ctx, r.dir, "diff", "--no-index", "--", os.DevNull, path)
		return out, nil
	}
	return "", nil
}

func (r *Repository) isUntracked(ctx context.Context, path string) bool {
	out, err := r.runner.Run(ctx, r.dir, "ls-files", "--others", "--exclude-standard", "--", path)
	return err == nil && strings.TrimSpace(out) != ""
}

// AllDiff returns the diff of the working tree against HEAD, or the staged
// and unstaged diffs concatenated when there is no commit yet.
func (r *Repository) AllDiff(ctx context.Context) (string, error) {
	if out, err := r.runner.Run(ctx, r.dir, "diff", "HEAD"); err == nil {
		return out, nil
	}
	staged, err := r.StagedDiff(ctx)
	if err != nil {
		return "", err
	}
	unstaged, err := r.runner.Run(ctx, r.dir, "diff")
	if err != nil {
		return "", err
	}
	return staged + unstaged, nil
}

// StagedDiff returns the diff of the index against HEAD.
func (r *Repository) StagedDiff(ctx context.Context) (string, error) {
	return r.runner.Run(ctx, r.dir, "diff", "--cached")
}

// Add stages files, or the whole tree when files is empty or holds
// klpgit.AllFiles.
func (r *Repository) Add(ctx context.Context, files []string) error {
	args := []string{"add", "."}
	if len(files) > 0 && !slices.Contains(files, klpgit.AllFiles) {
		args = append([]string{"add", "--"}, files...)
	}
	_, err := r.runner.Run(ctx, r.dir, args...)
	return err
}

// CommitAndPush stages files when any are given, commits with message and
// pushes the current branch to origin, setting the upstream when the plain
// push is rejected.
func (r *Repository) CommitAndPush(ctx context.Context, message string, files []string) (*klpgit.CommitResult, error) {
	if strings.TrimSpace(message) == "" {
		return nil, klpgit.ErrEmptyMessage
	}
	if len(files) > 0 {
		if err := r.Add(ctx, files); err != nil {
			return nil, err
		}
	}
	if _, err := r.runner.Run(ctx, r.dir, "commit", "-m", message); err != nil {
		return nil, err
	}

	hash, err := r.runner.Run(ctx, r.dir, "rev-parse", "--short", "HEAD")
	if err != nil {
		return nil, err
	}
	branch := r.currentBranch(ctx)

	if _, err := r.runner.Run(ctx, r.dir, "push", "origin", branch); err != nil {
		if _, err := r.runner.Run(ctx, r.dir, "push", "-u", "origin", branch); err != nil {
			return nil, fmt.Errorf("push %s: %w", branch, err)
		}
	}
	return &klpgit.CommitResult{Hash: strings.TrimSpace(hash), Branch: branch}, nil
}

// Init creates the repository when missing and adds origin when remoteURL
// is set. An existing origin is left as is.
func (r *Repository) Init(ctx context.Context, remoteURL string) error {
	if !r.HasRepo() {
		if _, err := r.runner.Run(ctx, r.dir, "init"); err != nil {
			return err
		}
	}
	if remoteURL == "" {
		return nil
	}
	if _, err := r.runner.Run(ctx, r.dir, "remote", "add", "origin", remoteURL); err != nil &&
		!strings.Contains(err.Error(), "already exists") {
		return err
	}
	return nil
}

// RemoveRemote removes origin.
func (r *Repository) RemoveRemote(ctx context.Context) error {
	_, err := r.runner.Run(ctx, r.dir, "remote", "remove", "origin")
	return err
}

func (r *Repository) currentBranch(ctx context.Context) string {
	if out, err := r.runner.Run(ctx, r.dir, "symbolic-ref", "--short", "-q", "HEAD"); err == nil {
		if b := strings.TrimSpace(out); b != "" {
			return b
		}
	}
	if name := r.headName(); name != "" {
		return name
	}
	return DefaultBranch
}

// headName resolves HEAD with go-git: the branch HEAD points at, even before
// the first commit, or the short hash of a detached HEAD.
func (r *Repository) headName() string {
	repo, err := gogit.PlainOpen(r.dir)
	if err != nil {
		return ""
	}
	ref, err := repo.Reference(plumbing.HEAD, false)
	if err != nil {
		return ""
	}
	if ref.Type() == plumbing.SymbolicReference {
		return ref.Target().Short()
	}
	if hash := ref.Hash().String(); len(hash) >= 7 {
		return hash[:7]
	}
	return ""
}

// remoteURL returns origin's first URL with credentials redacted.
func (r *Repository) remoteURL() string {
	repo, err := gogit.PlainOpen(r.dir)
	if err != nil {
		return ""
	}
	remote, err := repo.Remote("origin")
	if err != nil {
		return ""
	}
	if urls := remote.Config().URLs; len(urls) > 0 {
		return Redact(urls[0])
	}
	return ""
}
