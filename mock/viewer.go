package mock

import (
	"context"

	"github.com/AmKilopa/KlpGIT"
)

// Compile-time interface verification.
var (
	_ klpgit.Viewer    = (*Viewer)(nil)
	_ klpgit.Clipboard = (*Clipboard)(nil)
)

// Viewer is a mock implementation of klpgit.Viewer.
type Viewer struct {
	ViewFn func(ctx context.Context, path string, diff klpgit.RenderedDiff, source [][]klpgit.Token) error
}

func (v *Viewer) View(ctx context.Context, path string, diff klpgit.RenderedDiff, source [][]klpgit.Token) error {
	return v.ViewFn(ctx, path, diff, source)
}

// Clipboard is a mock implementation of klpgit.Clipboard.
type Clipboard struct {
	CopyFn func(content string) error
}

func (c *Clipboard) Copy(content string) error {
	return c.CopyFn(content)
}
