// Package web serves the country dataset over HTTP: JSON views, statistics,
// and CSV/XLSX/PNG downloads for a browser dashboard.
package web

import (
	"context"
	"errors"
	"net/http"
	"sync"
	"time"

	"github.com/KaramelBytes/countrydash/internal/dataset"
	"github.com/KaramelBytes/countrydash/internal/export"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"
)

// Source produces a Dataset. On failure it still returns a usable (empty)
// Dataset together with the error.
type Source interface {
	Dataset(ctx context.Context) (*dataset.Dataset, error)
}

// SourceFunc adapts a function to Source.
type SourceFunc func(ctx context.Context) (*dataset.Dataset, error)

func (f SourceFunc) Dataset(ctx context.Context) (*dataset.Dataset, error) { return f(ctx) }

// Server is the HTTP server for the dashboard.
type Server struct {
	source Source
	logger *zap.Logger
	chart  export.ChartOptions
	router *chi.Mux
	server *http.Server

	mu      sync.RWMutex
	ds      *dataset.Dataset
	lastErr error
}

// Options configures NewServer.
type Options struct {
	Logger *zap.Logger
	Chart  export.ChartOptions
}

// NewServer creates a Server. Call Refresh (or Start) to load the first Dataset.
func NewServer(src Source, opt Options) *Server {
	if opt.Logger == nil {
		opt.Logger = zap.NewNop()
	}
	s := &Server{
		source: src,
		logger: opt.Logger,
		chart:  opt.Chart,
		router: chi.NewRouter(),
		ds:     dataset.Empty(),
	}
	s.setupMiddleware()
	s.setupRoutes()
	return s
}

func (s *Server) setupMiddleware() {
	s.router.Use(middleware.RequestID)
	s.router.Use(middleware.RealIP)
	s.router.Use(requestLogger(s.logger))
	s.router.Use(middleware.Recoverer)
	s.router.Use(middleware.Timeout(60 * time.Second))
}

func (s *Server) setupRoutes() {
	s.router.Get("/healthz", s.handleHealth)

	s.router.Route("/api", func(r chi.Router) {
		r.Get("/columns", s.handleColumns)
		r.Get("/countries", s.handleCountries)
		r.Get("/stats/{column}", s.handleStats)
		r.Get("/describe", s.handleDescribe)
		r.Get("/export/{format}", s.handleExport)
		r.Get("/chart", s.handleChart)
		r.Get("/markers", s.handleMarkers)
		r.Post("/refresh", s.handleRefresh)
	})
}

// Handler exposes the router, mainly for tests.
func (s *Server) Handler() http.Handler { return s.router }

// Refresh fetches a new Dataset and replaces the current one wholesale. A
// failed fetch installs an empty Dataset and is remembered for /healthz.
func (s *Server) Refresh(ctx context.Context) error {
	ds, err := s.source.Dataset(ctx)
	if ds == nil {
		ds = dataset.Empty()
	}
	s.mu.Lock()
	s.ds = ds
	s.lastErr = err
	s.mu.Unlock()
	return err
}

// current returns the Dataset in use and the error of the last fetch.
func (s *Server) current() (*dataset.Dataset, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.ds, s.lastErr
}

// Start loads the Dataset and serves on addr until ctx is cancelled. A failed
// initial fetch is logged and the server runs with an empty Dataset.
func (s *Server) Start(ctx context.Context, addr string) error {
	if err := s.Refresh(ctx); err != nil {
		s.logger.Warn("initial fetch failed", zap.Error(err))
	}
	s.server = &http.Server{
		Addr:              addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}
	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("listening", zap.String("addr", addr))
		errCh <- s.server.ListenAndServe()
	}()
	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return s.server.Shutdown(shutdownCtx)
	}
}
