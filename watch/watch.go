// Package watch reports working-tree changes with fsnotify, coalescing
// bursts of events into a single notification.
package watch

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	klpfs "github.com/AmKilopa/KlpGIT/fs"
	"github.com/fsnotify/fsnotify"
)

// Defaults.
const (
	DefaultDebounce = 300 * time.Millisecond
	DefaultMaxDepth = 5
)

// Option configures a Watcher.
type Option func(*Watcher)

// WithDebounce sets the quiet window after the last event before OnChange
// runs. Non-positive values are ignored.
func WithDebounce(d time.Duration) Option {
	return func(w *Watcher) {
		if d > 0 {
			w.debounce = d
		}
	}
}

// WithMaxDepth limits how many directory levels below the root are watched.
func WithMaxDepth(n int) Option {
	return func(w *Watcher) { w.maxDepth = n }
}

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) Option {
	return func(w *Watcher) {
		if l != nil {
			w.logger = l
		}
	}
}

// Watcher watches a directory tree and calls onChange once per burst of
// changes.
type Watcher struct {
	root     string
	onChange func(ctx context.Context)
	debounce time.Duration
	maxDepth int
	logger   *slog.Logger

	mu      sync.Mutex
	fsw     *fsnotify.Watcher
	timer   *time.Timer
	stopped bool
}

// New creates a watcher for root.
func New(root string, onChange func(ctx context.Context), opts ...Option) *Watcher {
	w := &Watcher{
		root:     root,
		onChange: onChange,
		debounce: DefaultDebounce,
		maxDepth: DefaultMaxDepth,
		logger:   slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// Open registers the directory tree with fsnotify. Run calls it when it has
// not been called yet.
func (w *Watcher) Open() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.fsw != nil {
		return nil
	}
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	w.fsw = fsw
	w.addRecursive(w.root)
	return nil
}

// Run delivers change notifications until ctx is cancelled.
func (w *Watcher) Run(ctx context.Context) error {
	if err := w.Open(); err != nil {
		return err
	}
	defer w.close()

	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-w.fsw.Events:
			if !ok {
				return nil
			}
			w.handle(ctx, ev)
		case err, ok := <-w.fsw.Errors:
			if !ok {
				return nil
			}
			w.logger.Warn("watcher error", "error", err)
		}
	}
}

func (w *Watcher) handle(ctx context.Context, ev fsnotify.Event) {
	if Ignored(w.root, ev.Name) {
		return
	}
	if ev.Op == fsnotify.Chmod {
		return
	}
	if ev.Has(fsnotify.Create) {
		if info, err := os.Stat(ev.Name); err == nil && info.IsDir() {
			w.mu.Lock()
			w.addRecursive(ev.Name)
			w.mu.Unlock()
		}
	}
	w.logger.Debug("change", "path", ev.Name, "op", ev.Op.String())
	w.schedule(ctx)
}

// addRecursive watches dir and its subdirectories up to the depth limit.
// Caller holds w.mu.
func (w *Watcher) addRecursive(dir string) {
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil || !d.IsDir() {
			return nil
		}
		if path != w.root && Ignored(w.root, path) {
			return filepath.SkipDir
		}
		if depth(w.root, path) > w.maxDepth {
			return filepath.SkipDir
		}
		if err := w.fsw.Add(path); err != nil {
			w.logger.Warn("watch directory failed", "path", path, "error", err)
		}
		return nil
	})
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		w.logger.Warn("walk failed", "path", dir, "error", err)
	}
}

func (w *Watcher) schedule(ctx context.Context) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.stopped {
		return
	}
	if w.timer != nil {
		w.timer.Stop()
	}
	w.timer = time.AfterFunc(w.debounce, func() {
		if ctx.Err() != nil {
			return
		}
		w.onChange(ctx)
	})
}

func (w *Watcher) close() {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.stopped = true
	if w.timer != nil {
		w.timer.Stop()
	}
	if w.fsw != nil {
		_ = w.fsw.Close()
	}
}

// Ignored reports whether path, inside root, lies in a hidden or ignored
// directory or is itself hidden.
func Ignored(root, path string) bool {
	rel, err := filepath.Rel(root, path)
	if err != nil || rel == "." {
		return false
	}
	for _, part := range strings.Split(filepath.ToSlash(rel), "/") {
		if part == ".." {
			continue
		}
		if strings.HasPrefix(part, ".") || klpfs.DefaultIgnore[part] {
			return true
		}
	}
	return false
}

func depth(root, path string) int {
	rel, err := filepath.Rel(root, path)
	if err != nil || rel == "." {
		return 0
	}
	return strings.Count(filepath.ToSlash(rel), "/") + 1
}
