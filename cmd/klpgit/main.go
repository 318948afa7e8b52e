package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
)

// Exit codes.
const (
	exitOK       = 0
	exitError    = 1
	exitWarnings = 1
	exitUsage    = 2
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := run(ctx, os.Args[1:], os.Getenv, os.Stdout, os.Stderr)
	cancel()
	os.Exit(code)
}

// run executes the command line and returns the process exit code.
func run(ctx context.Context, args []string, getenv func(string) string, stdout, stderr io.Writer) int {
	opts, err := ParseOptions(args, getenv)
	if errors.Is(err, errHelp) {
		fmt.Fprint(stdout, opts.Usage)
		return exitOK
	}
	if err != nil {
		fmt.Fprintln(stderr, "klpgit:", err)
		return exitUsage
	}

	logger, err := NewLogger(stderr, opts.Config.LogFormat, opts.Config.LogLevel)
	if err != nil {
		fmt.Fprintln(stderr, "klpgit:", err)
		return exitUsage
	}

	env, err := NewEnv(ctx, opts.Config, getenv, logger)
	if err != nil {
		fmt.Fprintln(stderr, "klpgit:", err)
		return exitError
	}
	app := env.App(stdout)

	switch opts.Command {
	case "serve":
		err = Serve(ctx, env, stdout)
	case "lint":
		err = app.Lint(opts.Path)
	case "show":
		err = app.Show(opts.Path)
	case "diff":
		err = app.Diff(ctx, opts.Path)
	case "view":
		err = app.View(ctx, opts.Path)
	}

	switch {
	case err == nil:
		return exitOK
	case errors.Is(err, ErrWarnings):
		return exitWarnings
	default:
		fmt.Fprintln(stderr, "klpgit:", err)
		return exitError
	}
}
