// Package http serves the KlpGIT JSON API, the static web client and the
// live status channel.
package http

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/http"
	"net/url"
	"time"

	"github.com/AmKilopa/KlpGIT"
	"github.com/AmKilopa/KlpGIT/gitdiff"
	"github.com/AmKilopa/KlpGIT/highlight"
)

// ShutdownTimeout bounds graceful shutdown.
const ShutdownTimeout = 5 * time.Second

// Highlighter tokenizes file content by extension.
type Highlighter interface {
	HighlightLines(content, ext string) [][]klpgit.Token
}

// Option configures a Server.
type Option func(*Server)

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) Option {
	return func(s *Server) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithHighlighter replaces the default regex highlighter.
func WithHighlighter(h Highlighter) Option {
	return func(s *Server) { s.highlighter = h }
}

// WithParser replaces the default diff parser.
func WithParser(p klpgit.DiffParser) Option {
	return func(s *Server) { s.parser = p }
}

// WithSuggester enables POST /api/suggest.
func WithSuggester(sg klpgit.CommitMessageSuggester) Option {
	return func(s *Server) { s.suggester = sg }
}

// WithHub sends status events to b after every mutation. When b is also an
// http.Handler it serves the live channel at /ws, and when it is an io.Closer
// it is closed on shutdown.
func WithHub(b klpgit.Broadcaster) Option {
	return func(s *Server) { s.hub = b }
}

// WithWebDir serves static files from dir at /.
func WithWebDir(dir string) Option {
	return func(s *Server) { s.webDir = dir }
}

// Server is the HTTP front end of one working directory.
type Server struct {
	project     klpgit.ProjectInfo
	repo        klpgit.Repository
	tree        klpgit.TreeLister
	files       klpgit.FileReader
	highlighter Highlighter
	parser      klpgit.DiffParser
	suggester   klpgit.CommitMessageSuggester
	hub         klpgit.Broadcaster
	webDir      string
	logger      *slog.Logger

	handler http.Handler
}

// NewServer wires the API routes over the given collaborators.
func NewServer(project klpgit.ProjectInfo, repo klpgit.Repository, tree klpgit.TreeLister, files klpgit.FileReader, opts ...Option) *Server {
	s := &Server{
		project:     project,
		repo:        repo,
		tree:        tree,
		files:       files,
		highlighter: highlight.Default(),
		parser:      gitdiff.NewParser(),
		logger:      slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.handler = s.routes()
	return s
}

// Handler returns the root handler.
func (s *Server) Handler() http.Handler { return s.handler }

func (s *Server) routes() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/info", s.handleInfo)
	mux.HandleFunc("GET /api/status", s.handleStatus)
	mux.HandleFunc("GET /api/tree", s.handleTree)
	mux.HandleFunc("GET /api/diff", s.handleDiff)
	mux.HandleFunc("GET /api/diff/render", s.handleRenderDiff)
	mux.HandleFunc("GET /api/changes", s.handleChanges)
	mux.HandleFunc("GET /api/file", s.handleFile)
	mux.HandleFunc("GET /api/highlight", s.handleHighlight)
	mux.HandleFunc("GET /api/validate", s.handleValidate)
	mux.HandleFunc("POST /api/add", s.handleAdd)
	mux.HandleFunc("POST /api/submit", s.handleSubmit)
	mux.HandleFunc("POST /api/init", s.handleInit)
	mux.HandleFunc("POST /api/disconnect", s.handleDisconnect)
	mux.HandleFunc("POST /api/suggest", s.handleSuggest)
	if h, ok := s.hub.(http.Handler); ok {
		mux.Handle("GET /ws", h)
	}
	if s.webDir != "" {
		mux.Handle("GET /", http.FileServer(http.Dir(s.webDir)))
	}
	return s.sameOrigin(mux)
}

// Serve answers requests on ln until ctx is cancelled, then shuts down
// gracefully.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	srv := &http.Server{
		Handler:           s.handler,
		ReadHeaderTimeout: 10 * time.Second,
		BaseContext:       func(net.Listener) context.Context { return ctx },
	}

	errc := make(chan error, 1)
	go func() { errc <- srv.Serve(ln) }()

	select {
	case err := <-errc:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("serve: %w", err)
	case <-ctx.Done():
	}

	if c, ok := s.hub.(io.Closer); ok {
		_ = c.Close()
	}
	shutdownCtx, cancel := context.WithTimeout(context.Background(), ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}

// BroadcastStatus sends the current status to live channel clients. Errors
// are logged, not broadcast.
func (s *Server) BroadcastStatus(ctx context.Context) {
	if s.hub == nil {
		return
	}
	status, err := s.repo.Status(ctx)
	if err != nil {
		s.logger.Warn("status refresh failed", "error", err)
		return
	}
	s.hub.Broadcast("status", status)
}

// sameOrigin rejects cross-origin state-changing requests with 403 and
// allows the served origin only.
func (s *Server) sameOrigin(next http.Handler) http.Handler {
	protection := http.NewCrossOriginProtection()
	protection.SetDenyHandler(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s.logger.Warn("cross-origin request rejected", "method", r.Method, "path", r.URL.Path, "origin", r.Header.Get("Origin"))
		writeJSON(w, http.StatusForbidden, errorResponse{Error: "cross-origin request rejected"})
	}))
	allowed := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if origin := r.Header.Get("Origin"); origin != "" {
			w.Header().Add("Vary", "Origin")
			if u, err := url.Parse(origin); err == nil && u.Host == r.Host {
				w.Header().Set("Access-Control-Allow-Origin", origin)
			}
		}
		next.ServeHTTP(w, r)
	})
	return protection.Handler(allowed)
}
