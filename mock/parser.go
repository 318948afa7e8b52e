// Package mock provides test doubles for klpgit interfaces.
package mock

import (
	"io"

	"github.com/AmKilopa/KlpGIT"
)

// Compile-time interface verification.
var _ klpgit.DiffParser = (*DiffParser)(nil)

// DiffParser is a mock implementation of klpgit.DiffParser.
type DiffParser struct {
	ParseFn func(r io.Reader) (*klpgit.Diff, error)
}

func (p *DiffParser) Parse(r io.Reader) (*klpgit.Diff, error) {
	return p.ParseFn(r)
}
