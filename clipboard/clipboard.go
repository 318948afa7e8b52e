// Package clipboard copies text to the system clipboard with atotto/clipboard.
package clipboard

import (
	"errors"
	"fmt"

	"github.com/AmKilopa/KlpGIT"
	"github.com/atotto/clipboard"
)

// ErrUnsupported is returned when no clipboard utility is available.
var ErrUnsupported = errors.New("clipboard unsupported on this system")

// Ensure System implements the Clipboard interface.
var _ klpgit.Clipboard = (*System)(nil)

// System implements klpgit.Clipboard using the platform clipboard.
type System struct{}

// NewSystem returns a new System clipboard.
func NewSystem() *System {
	return &System{}
}

// Available reports whether a clipboard utility was found.
func (s *System) Available() bool {
	return !clipboard.Unsupported
}

// Copy writes content to the system clipboard.
func (s *System) Copy(content string) error {
	if clipboard.Unsupported {
		return ErrUnsupported
	}
	if err := clipboard.WriteAll(content); err != nil {
		return fmt.Errorf("copy to clipboard: %w", err)
	}
	return nil
}

// Paste returns the clipboard content.
func (s *System) Paste() (string, error) {
	if clipboard.Unsupported {
		return "", ErrUnsupported
	}
	text, err := clipboard.ReadAll()
	if err != nil {
		return "", fmt.Errorf("read clipboard: %w", err)
	}
	return text, nil
}
