// Package server exposes the driftboard engine and scene store over HTTP.
package server

import (
	"context"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/driftboard/driftboard/pkg/cache"
	"github.com/driftboard/driftboard/pkg/geometry"
	"github.com/driftboard/driftboard/pkg/store"
)

// =============================================================================
// Server
// =============================================================================

// renderTTL bounds how long cached render artifacts live. Scene edits
// change the content hash, so this only reclaims space for dead keys.
const renderTTL = 24 * time.Hour

// Server wires the geometry engine, the scene store, and the artifact
// cache behind a chi router.
type Server struct {
	logger *log.Logger
	engine *geometry.Engine
	store  store.Store
	cache  cache.Cache
	router chi.Router
}

// New creates a server and mounts all routes.
func New(logger *log.Logger, engine *geometry.Engine, st store.Store, ca cache.Cache) *Server {
	s := &Server{
		logger: logger,
		engine: engine,
		store:  st,
		cache:  ca,
	}
	s.router = s.routes()
	return s
}

// Handler returns the server's HTTP handler.
func (s *Server) Handler() http.Handler { return s.router }

func (s *Server) routes() chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(s.logRequests)

	r.Get("/healthz", s.handleHealth)

	r.Route("/v1", func(r chi.Router) {
		r.Post("/placement", s.handlePlacement)
		r.Post("/repulsion", s.handleRepulsion)
		r.Post("/arrange", s.handleArrange)

		r.Route("/scenes", func(r chi.Router) {
			r.Get("/", s.handleListScenes)
			r.Put("/{id}", s.handlePutScene)
			r.Get("/{id}", s.handleGetScene)
			r.Delete("/{id}", s.handleDeleteScene)
			r.Get("/{id}/render.svg", s.handleRenderScene)
		})
	})

	return r
}

// ListenAndServe runs the server until the context is canceled, then
// shuts down gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("listening", "addr", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	case err := <-errCh:
		if err == http.ErrServerClosed {
			return nil
		}
		return err
	}
}

// logRequests logs each request with its status and duration.
func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)
		s.logger.Debug("request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"duration", time.Since(start),
		)
	})
}
