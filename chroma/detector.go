package chroma

import (
	"path/filepath"
	"strings"

	"github.com/AmKilopa/KlpGIT"
	"github.com/alecthomas/chroma/v2/lexers"
)

var _ klpgit.LanguageDetector = (*Detector)(nil)

// Detector names the language of a path using chroma's filename globs,
// deferring to a fallback detector for files chroma does not know.
type Detector struct {
	fallback klpgit.LanguageDetector
}

// NewDetector creates a detector. fallback may be nil.
func NewDetector(fallback klpgit.LanguageDetector) *Detector {
	return &Detector{fallback: fallback}
}

// DetectFromPath returns the language name for path, or "" when neither
// chroma nor the fallback recognizes it. The "a/" and "b/" prefixes of diff
// paths are ignored.
func (d *Detector) DetectFromPath(path string) string {
	path = strings.TrimPrefix(path, "a/")
	path = strings.TrimPrefix(path, "b/")

	if lexer := lexers.Match(filepath.Base(path)); lexer != nil {
		return lexer.Config().Name
	}
	if d.fallback != nil {
		return d.fallback.DetectFromPath(path)
	}
	return ""
}
