// Package server exposes the dimensioning pipeline over HTTP.
//
// Routes:
//
//	POST /v1/solve       solve a room program, optionally saving the run
//	GET  /v1/runs        list saved runs, newest first
//	GET  /v1/runs/{id}   fetch one saved run
//	GET  /v1/catalog     the room type catalog in use
//	GET  /healthz        liveness probe
//
// Every request runs its own pipeline over its own rooms, so handlers
// share only the runner, whose cache is safe for concurrent use, and the
// run store.
package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/gduarte0/program2mass/pkg/pipeline"
	"github.com/gduarte0/program2mass/pkg/store"
)

const (
	// maxBodyBytes bounds a solve request.
	maxBodyBytes = 1 << 20

	// maxRooms bounds a single program.
	maxRooms = 500

	shutdownTimeout = 10 * time.Second
)

// Server holds the HTTP handlers and their dependencies.
type Server struct {
	Runner *pipeline.Runner
	Store  store.Store
	// Defaults are the options every request starts from.
	Defaults pipeline.Options
	Logger   *log.Logger
}

// New creates a server. A nil store keeps runs in memory.
func New(runner *pipeline.Runner, st store.Store, defaults pipeline.Options, logger *log.Logger) *Server {
	if runner == nil {
		runner = pipeline.NewRunner(nil, nil, logger)
	}
	if st == nil {
		st = store.NewMemory()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Server{Runner: runner, Store: st, Defaults: defaults, Logger: logger}
}

// Routes returns the HTTP handler.
func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(s.observe)

	r.Get("/healthz", s.handleHealth)
	r.Route("/v1", func(r chi.Router) {
		r.Post("/solve", s.handleSolve)
		r.Get("/runs", s.handleListRuns)
		r.Get("/runs/{id}", s.handleGetRun)
		r.Get("/catalog", s.handleCatalog)
	})
	return r
}

// ListenAndServe serves on addr until ctx is cancelled, then shuts down
// gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Routes(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errc := make(chan error, 1)
	go func() {
		s.Logger.Info("listening", "addr", addr)
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	s.Logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	return nil
}
