// Package server hosts the umlpad browser editor and its JSON API.
//
// Routes:
//
//	GET    /                     editor page
//	GET    /healthz              liveness probe
//	POST   /api/render           {"code"} -> {"url","encoded","metadata"}
//	POST   /api/image            {"code"} -> image bytes from the rendering service
//	POST   /api/entities         {"code"} -> {"entities"}
//	POST   /api/complete         {"code","prefix"} -> {"options"}
//	GET    /api/snippets         {"snippets"}
//	GET    /api/keywords         {"keywords"}
//	POST   /api/drafts           {"code"} -> new draft with a generated id
//	GET    /api/drafts/{id}      saved draft, or the default document
//	PUT    /api/drafts/{id}      {"code"} -> saved draft
//	DELETE /api/drafts/{id}      removes the draft, returns the default document
//
// Client mistakes are answered with 400 and a message; internal failures
// are logged and answered with a fixed message that never includes the
// cause.
package server

import (
	"context"
	stderrors "errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/matzehuels/umlpad/internal/config"
	"github.com/matzehuels/umlpad/pkg/draft"
	"github.com/matzehuels/umlpad/pkg/plantuml"
	"github.com/matzehuels/umlpad/pkg/render"
)

// maxBodyBytes limits JSON request bodies.
const maxBodyBytes = 1 << 20

// Options configures a Server.
type Options struct {
	Renderer *render.Renderer
	Drafts   draft.Store
	Logger   *log.Logger

	// DefaultCode is returned for drafts that do not exist yet.
	// Defaults to plantuml.DefaultCode.
	DefaultCode string
}

// Server serves the editor and API.
type Server struct {
	renderer    *render.Renderer
	drafts      draft.Store
	logger      *log.Logger
	defaultCode string
	router      chi.Router
}

// New creates a Server. Renderer and Drafts are required.
func New(opts Options) (*Server, error) {
	if opts.Renderer == nil {
		return nil, fmt.Errorf("server: renderer is required")
	}
	if opts.Drafts == nil {
		return nil, fmt.Errorf("server: draft store is required")
	}
	if opts.Logger == nil {
		opts.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	if opts.DefaultCode == "" {
		opts.DefaultCode = plantuml.DefaultCode
	}

	s := &Server{
		renderer:    opts.Renderer,
		drafts:      opts.Drafts,
		logger:      opts.Logger,
		defaultCode: opts.DefaultCode,
	}
	s.router = s.routes()
	return s, nil
}

func (s *Server) routes() chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(requestLogger(s.logger))
	r.Use(middleware.Recoverer)

	r.Get("/", s.handleIndex)
	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		_, _ = io.WriteString(w, "ok")
	})

	r.Route("/api", func(r chi.Router) {
		r.Use(middleware.AllowContentType("application/json"))
		r.Use(middleware.NoCache)

		r.Post("/render", s.handleRender)
		r.Post("/image", s.handleImage)
		r.Post("/entities", s.handleEntities)
		r.Post("/complete", s.handleComplete)
		r.Get("/snippets", s.handleSnippets)
		r.Get("/keywords", s.handleKeywords)

		r.Route("/drafts", func(r chi.Router) {
			r.Post("/", s.handleCreateDraft)
			r.Get("/{id}", s.handleGetDraft)
			r.Put("/{id}", s.handlePutDraft)
			r.Delete("/{id}", s.handleDeleteDraft)
		})
	})
	return r
}

// Handler returns the HTTP handler for the server.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Run listens on cfg.Addr and serves until ctx is cancelled, then shuts
// down gracefully within cfg.ShutdownTimeout.
func (s *Server) Run(ctx context.Context, cfg config.ServerConfig) error {
	ln, err := net.Listen("tcp", cfg.Addr)
	if err != nil {
		return fmt.Errorf("listen %s: %w", cfg.Addr, err)
	}
	return s.Serve(ctx, ln, cfg)
}

// Serve is Run on an existing listener.
func (s *Server) Serve(ctx context.Context, ln net.Listener, cfg config.ServerConfig) error {
	srv := &http.Server{
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       cfg.ReadTimeout.Duration,
		WriteTimeout:      cfg.WriteTimeout.Duration,
		BaseContext:       func(net.Listener) context.Context { return ctx },
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("listening", "addr", "http://"+ln.Addr().String())
		errCh <- srv.Serve(ln)
	}()

	select {
	case err := <-errCh:
		if stderrors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	timeout := cfg.ShutdownTimeout.Duration
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	shutdownCtx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	s.logger.Info("shutting down")
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	if err := <-errCh; err != nil && !stderrors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
