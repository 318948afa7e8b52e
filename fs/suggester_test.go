package fs_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/AmKilopa/KlpGIT"
	"github.com/AmKilopa/KlpGIT/fs"
	"github.com/AmKilopa/KlpGIT/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSuggester(t *testing.T) {
	t.Parallel()

	diff := &klpgit.Diff{Files: []klpgit.FileDiff{{NewPath: "main.go"}}}

	t.Run("caches inner result", func(t *testing.T) {
		t.Parallel()

		calls := 0
		inner := &mock.Suggester{
			SuggestFn: func(ctx context.Context, d *klpgit.Diff) (string, error) {
				calls++
				return "feat: add main", nil
			},
		}
		s := fs.NewSuggester(inner, t.TempDir())

		first, err := s.Suggest(context.Background(), diff)
		require.NoError(t, err)
		second, err := s.Suggest(context.Background(), diff)
		require.NoError(t, err)

		assert.Equal(t, "feat: add main", first)
		assert.Equal(t, first, second)
		assert.Equal(t, 1, calls)
	})

	t.Run("different diffs miss the cache", func(t *testing.T) {
		t.Parallel()

		calls := 0
		inner := &mock.Suggester{
			SuggestFn: func(ctx context.Context, d *klpgit.Diff) (string, error) {
				calls++
				return d.Files[0].NewPath, nil
			},
		}
		s := fs.NewSuggester(inner, t.TempDir())

		a, err := s.Suggest(context.Background(), diff)
		require.NoError(t, err)
		b, err := s.Suggest(context.Background(), &klpgit.Diff{Files: []klpgit.FileDiff{{NewPath: "other.go"}}})
		require.NoError(t, err)

		assert.Equal(t, "main.go", a)
		assert.Equal(t, "other.go", b)
		assert.Equal(t, 2, calls)
	})

	t.Run("errors are not cached", func(t *testing.T) {
		t.Parallel()

		cacheDir := t.TempDir()
		inner := &mock.Suggester{
			SuggestFn: func(ctx context.Context, d *klpgit.Diff) (string, error) {
				return "", errors.New("quota exceeded")
			},
		}
		s := fs.NewSuggester(inner, cacheDir)

		_, err := s.Suggest(context.Background(), diff)
		require.Error(t, err)

		entries, err := os.ReadDir(cacheDir)
		require.NoError(t, err)
		assert.Empty(t, entries)
	})

	t.Run("corrupt cache entry falls through", func(t *testing.T) {
		t.Parallel()

		cacheDir := t.TempDir()
		inner := &mock.Suggester{
			SuggestFn: func(ctx context.Context, d *klpgit.Diff) (string, error) {
				return "fix: x", nil
			},
		}
		s := fs.NewSuggester(inner, cacheDir)
		_, err := s.Suggest(context.Background(), diff)
		require.NoError(t, err)

		files, err := filepath.Glob(filepath.Join(cacheDir, "*.json"))
		require.NoError(t, err)
		require.Len(t, files, 1)
		require.NoError(t, os.WriteFile(files[0], []byte("{"), 0o644))

		msg, err := s.Suggest(context.Background(), diff)
		require.NoError(t, err)
		assert.Equal(t, "fix: x", msg)
	})
}
