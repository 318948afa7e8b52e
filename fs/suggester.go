package fs

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/AmKilopa/KlpGIT"
)

var _ klpgit.CommitMessageSuggester = (*Suggester)(nil)

// Suggester wraps a CommitMessageSuggester with a file cache keyed by the
// diff, so asking again for an unchanged index costs nothing.
type Suggester struct {
	inner    klpgit.CommitMessageSuggester
	cacheDir string
}

// NewSuggester creates a caching suggester storing entries in cacheDir.
func NewSuggester(inner klpgit.CommitMessageSuggester, cacheDir string) *Suggester {
	return &Suggester{inner: inner, cacheDir: cacheDir}
}

type cacheEntry struct {
	Message string `json:"message"`
}

// Suggest returns a cached message or delegates to the inner suggester.
func (s *Suggester) Suggest(ctx context.Context, diff *klpgit.Diff) (string, error) {
	key := hashDiff(diff)
	if msg, err := s.load(key); err == nil {
		return msg, nil
	}

	msg, err := s.inner.Suggest(ctx, diff)
	if err != nil {
		return "", err
	}

	// Best-effort.
	_ = s.save(key, msg)
	return msg, nil
}

func hashDiff(diff *klpgit.Diff) string {
	data, _ := json.Marshal(diff)
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}

func (s *Suggester) path(key string) string {
	return filepath.Join(s.cacheDir, "suggest-"+key+".json")
}

func (s *Suggester) load(key string) (string, error) {
	data, err := os.ReadFile(s.path(key))
	if err != nil {
		return "", err
	}
	var entry cacheEntry
	if err := json.Unmarshal(data, &entry); err != nil {
		return "", err
	}
	return entry.Message, nil
}

func (s *Suggester) save(key, msg string) error {
	if err := os.MkdirAll(s.cacheDir, 0o755); err != nil {
		return err
	}
	data, err := json.Marshal(cacheEntry{Message: msg})
	if err != nil {
		return err
	}
	return os.WriteFile(s.path(key), data, 0o644)
}
