package fs

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/AmKilopa/KlpGIT"
)

// MaxReadSize is the largest file served with content.
const MaxReadSize = 1 << 20

var _ klpgit.FileReader = (*Reader)(nil)

// Reader reads working-tree files for the source view.
type Reader struct {
	root     string
	detector klpgit.LanguageDetector
}

// NewReader returns a reader confined to root. detector may be nil.
func NewReader(root string, detector klpgit.LanguageDetector) *Reader {
	return &Reader{root: root, detector: detector}
}

// Resolve returns the absolute path of path, or klpgit.ErrPathOutsideRoot
// when it would leave the root, directly or through a symlink. Relative paths
// are taken from the root; absolute ones must already lie inside it.
func (r *Reader) Resolve(path string) (string, error) {
	root, err := filepath.Abs(r.root)
	if err != nil {
		return "", err
	}
	rel := filepath.FromSlash(path)
	if filepath.IsAbs(rel) {
		if !within(root, rel) {
			return "", klpgit.ErrPathOutsideRoot
		}
		if rel, err = filepath.Rel(root, rel); err != nil {
			return "", err
		}
	}
	full := filepath.Join(root, rel)
	if !within(root, full) {
		return "", klpgit.ErrPathOutsideRoot
	}

	if real, err := filepath.EvalSymlinks(full); err == nil {
		realRoot, err := filepath.EvalSymlinks(root)
		if err != nil {
			return "", err
		}
		if !within(realRoot, real) {
			return "", klpgit.ErrPathOutsideRoot
		}
	}
	return full, nil
}

func within(root, path string) bool {
	rel, err := filepath.Rel(root, path)
	if err != nil {
		return false
	}
	return rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator)) && !filepath.IsAbs(rel)
}

// ReadFile returns the content and language of path. Files larger than
// MaxReadSize come back with empty content and language.
func (r *Reader) ReadFile(path string) (*klpgit.FileContent, error) {
	full, err := r.Resolve(path)
	if err != nil {
		return nil, err
	}

	info, err := os.Stat(full)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("%s: %w", path, klpgit.ErrNotFound)
	} else if err != nil {
		return nil, err
	}
	if info.IsDir() {
		return nil, fmt.Errorf("%s is a directory: %w", path, klpgit.ErrNotFound)
	}
	if info.Size() > MaxReadSize {
		return &klpgit.FileContent{}, nil
	}

	data, err := os.ReadFile(full)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}

	fc := &klpgit.FileContent{
		Content:  string(data),
		Language: klpgit.ClassifyExtension(path),
	}
	if r.detector != nil {
		fc.Name = r.detector.DetectFromPath(path)
	}
	return fc, nil
}
