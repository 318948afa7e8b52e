package mock

import (
	"context"

	"github.com/AmKilopa/KlpGIT"
)

// Compile-time interface verification.
var _ klpgit.Repository = (*Repository)(nil)

// Repository is a mock implementation of klpgit.Repository.
type Repository struct {
	HasRepoFn       func() bool
	StatusFn        func(ctx context.Context) (*klpgit.Status, error)
	DiffFn          func(ctx context.Context, path string) (string, error)
	AllDiffFn       func(ctx context.Context) (string, error)
	StagedDiffFn    func(ctx context.Context) (string, error)
	AddFn           func(ctx context.Context, files []string) error
	CommitAndPushFn func(ctx context.Context, message string, files []string) (*klpgit.CommitResult, error)
	InitFn          func(ctx context.Context, remoteURL string) error
	RemoveRemoteFn  func(ctx context.Context) error
}

func (r *Repository) HasRepo() bool {
	return r.HasRepoFn()
}

func (r *Repository) Status(ctx context.Context) (*klpgit.Status, error) {
	return r.StatusFn(ctx)
}

func (r *Repository) Diff(ctx context.Context, path string) (string, error) {
	return r.DiffFn(ctx, path)
}

func (r *Repository) AllDiff(ctx context.Context) (string, error) {
	return r.AllDiffFn(ctx)
}

func (r *Repository) StagedDiff(ctx context.Context) (string, error) {
	return r.StagedDiffFn(ctx)
}

func (r *Repository) Add(ctx context.Context, files []string) error {
	return r.AddFn(ctx, files)
}

func (r *Repository) CommitAndPush(ctx context.Context, message string, files []string) (*klpgit.CommitResult, error) {
	return r.CommitAndPushFn(ctx, message, files)
}

func (r *Repository) Init(ctx context.Context, remoteURL string) error {
	return r.InitFn(ctx, remoteURL)
}

func (r *Repository) RemoveRemote(ctx context.Context) error {
	return r.RemoveRemoteFn(ctx)
}
