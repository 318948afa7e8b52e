package mock

import "github.com/AmKilopa/KlpGIT"

// Compile-time interface verification.
var (
	_ klpgit.TreeLister       = (*TreeLister)(nil)
	_ klpgit.FileReader       = (*FileReader)(nil)
	_ klpgit.LanguageDetector = (*LanguageDetector)(nil)
)

// TreeLister is a mock implementation of klpgit.TreeLister.
type TreeLister struct {
	TreeFn func() ([]klpgit.TreeEntry, error)
}

func (l *TreeLister) Tree() ([]klpgit.TreeEntry, error) {
	return l.TreeFn()
}

// FileReader is a mock implementation of klpgit.FileReader.
type FileReader struct {
	ReadFileFn func(path string) (*klpgit.FileContent, error)
}

func (r *FileReader) ReadFile(path string) (*klpgit.FileContent, error) {
	return r.ReadFileFn(path)
}

// LanguageDetector is a mock implementation of klpgit.LanguageDetector.
type LanguageDetector struct {
	DetectFromPathFn func(path string) string
}

func (d *LanguageDetector) DetectFromPath(path string) string {
	return d.DetectFromPathFn(path)
}
