package main

import (
	"context"
	"fmt"
	"io"
	"net"
	"strconv"

	klphttp "github.com/AmKilopa/KlpGIT/http"
	"github.com/AmKilopa/KlpGIT/watch"
	"golang.org/x/sync/errgroup"
)

// Listen binds the preferred port on the loopback interface, falling back to
// an ephemeral port when it is taken. Port 0 always picks an ephemeral port.
func Listen(preferred int) (net.Listener, error) {
	ln, err := net.Listen("tcp", net.JoinHostPort("127.0.0.1", strconv.Itoa(preferred)))
	if err == nil {
		return ln, nil
	}
	ln, fallbackErr := net.Listen("tcp", "127.0.0.1:0")
	if fallbackErr != nil {
		return nil, fmt.Errorf("listen: %w", fallbackErr)
	}
	return ln, nil
}

// Serve runs the HTTP server and the working-tree watcher until ctx is
// cancelled or either fails.
func Serve(ctx context.Context, env *Env, stdout io.Writer) error {
	ln, err := Listen(env.Config.Port)
	if err != nil {
		return err
	}
	port := ln.Addr().(*net.TCPAddr).Port
	url := fmt.Sprintf("http://localhost:%d", port)

	hub := klphttp.NewHub(env.Logger)
	opts := []klphttp.Option{
		klphttp.WithLogger(env.Logger),
		klphttp.WithHighlighter(env.Registry),
		klphttp.WithHub(hub),
		klphttp.WithWebDir(env.Config.WebDir),
	}
	if env.Suggester != nil {
		opts = append(opts, klphttp.WithSuggester(env.Suggester))
	}
	server := klphttp.NewServer(env.Project, env.Repo, env.Tree, env.Files, opts...)

	watcher := watch.New(env.Config.Dir, server.BroadcastStatus,
		watch.WithDebounce(env.Config.Debounce()),
		watch.WithLogger(env.Logger),
	)

	printBanner(stdout, url, env.Config.Port, port)
	env.Logger.Info("serving", "dir", env.Config.Dir, "addr", ln.Addr().String(), "git", env.Project.HasGit)

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error { return server.Serve(ctx, ln) })
	g.Go(func() error { return watcher.Run(ctx) })
	if env.Config.Open {
		g.Go(func() error {
			if err := OpenApp(ctx, url); err != nil {
				env.Logger.Warn("open browser failed", "url", url, "error", err)
			}
			return nil
		})
	}
	return g.Wait()
}

func printBanner(w io.Writer, url string, preferred, port int) {
	fmt.Fprintln(w)
	fmt.Fprintln(w, "  \x1b[35m\x1b[1mKlpGIT\x1b[0m")
	fmt.Fprintln(w)
	fmt.Fprintf(w, "  \x1b[36m→\x1b[0m %s\n", url)
	if preferred != 0 && port != preferred {
		fmt.Fprintf(w, "  \x1b[90m(port %d is busy, using %d)\x1b[0m\n", preferred, port)
	}
	fmt.Fprintln(w, "  \x1b[90mCtrl+C to quit\x1b[0m")
	fmt.Fprintln(w)
}
