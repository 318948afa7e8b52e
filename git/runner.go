// Package git implements the repository operations behind the UI by running
// the git binary, with go-git for read-only lookups.
package git

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"regexp"
	"slices"
	"strings"
)

// Runner executes git commands.
type Runner struct {
	bin string
}

// NewRunner creates a runner for the git binary at bin, or "git" from PATH
// when bin is empty.
func NewRunner(bin string) *Runner {
	if strings.TrimSpace(bin) == "" {
		bin = "git"
	}
	return &Runner{bin: bin}
}

// Run executes git with args in dir and returns its standard output. Errors
// carry the sanitized subcommand and the redacted stderr.
func (r *Runner) Run(ctx context.Context, dir string, args ...string) (string, error) {
	return r.run(ctx, dir, nil, args)
}

// RunDiff is like Run but treats exit status 1 as success, as
// "git diff --no-index" does when the inputs differ.
func (r *Runner) RunDiff(ctx context.Context, dir string, args ...string) (string, error) {
	return r.run(ctx, dir, []int{1}, args)
}

func (r *Runner) run(ctx context.Context, dir string, okCodes []int, args []string) (string, error) {
	cmd := exec.CommandContext(ctx, r.bin, args...)
	cmd.Dir = dir
	// A push must fail rather than wait for credentials on a terminal.
	cmd.Env = append(os.Environ(), "GIT_TERMINAL_PROMPT=0")

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) && slices.Contains(okCodes, exitErr.ExitCode()) {
			return stdout.String(), nil
		}
		msg := strings.TrimSpace(stderr.String())
		if msg == "" {
			msg = strings.TrimSpace(stdout.String())
		}
		if msg == "" {
			msg = err.Error()
		}
		return "", fmt.Errorf("git %s failed: %s", sanitizeArgs(args), Redact(msg))
	}
	return stdout.String(), nil
}

var safeArg = regexp.MustCompile(`^[a-z][a-z-]*$`)

// sanitizeArgs keeps at most the first two subcommand words, stopping at
// anything that could be a path, URL or message.
func sanitizeArgs(args []string) string {
	safe := make([]string, 0, 2)
	for _, a := range args {
		if !safeArg.MatchString(a) {
			break
		}
		safe = append(safe, a)
		if len(safe) == 2 {
			break
		}
	}
	if len(safe) == 0 {
		return "<redacted>"
	}
	return strings.Join(safe, " ")
}

var (
	urlCredentials = regexp.MustCompile(`(https?://)[^\s/@]+@`)
	secretPairs    = regexp.MustCompile(`(?i)(token|secret|password|passwd|bearer)=[^\s&]+`)
)

// Redact removes credentials embedded in URLs and key=value secrets from s.
func Redact(s string) string {
	s = urlCredentials.ReplaceAllString(s, "${1}<redacted>@")
	return secretPairs.ReplaceAllString(s, "${1}=<redacted>")
}
