// Package server exposes a built tree as a read-only JSON HTTP API.
//
// # Endpoints
//
//	GET /healthz              liveness
//	GET /tree                 node-link JSON of the whole tree
//	GET /trace?node=L         root path to L
//	GET /depth?node=L         max depth below L (all categories when node is omitted)
//	GET /levels               node count per depth
//	GET /rank?k=N             top N categories by descendants
//	GET /report?trace=L...    full analysis report
//	GET /diagram.dot          Graphviz source (?highlight=L marks the path to L)
//	GET /diagram.svg          rendered diagram, served from the cache when possible
//
// Errors are JSON objects {"error": {"code": ..., "message": ...}}.
// NODE_NOT_FOUND maps to 404, INVALID_INPUT to 400, anything else to 500.
//
// The tree is frozen, so handlers share it without locking.
package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/matzehuels/foodtree/pkg/cache"
	apperrors "github.com/matzehuels/foodtree/pkg/errors"
	"github.com/matzehuels/foodtree/pkg/query"
)

// Config configures a [Server].
type Config struct {
	Engine *query.Engine
	Logger *log.Logger

	// Cache holds rendered diagrams. Nil disables caching.
	Cache    cache.Cache
	Keyer    cache.Keyer
	CacheTTL time.Duration

	// TopK is used by /rank and /report when the request gives none.
	TopK int
	// Title labels rendered diagrams.
	Title string
}

// Server serves the API.
type Server struct {
	cfg    Config
	router chi.Router
}

// New validates cfg and builds the router.
func New(cfg Config) (*Server, error) {
	if cfg.Engine == nil {
		return nil, apperrors.New(apperrors.ErrCodeInvalidInput, "server needs a query engine")
	}
	if cfg.Logger == nil {
		cfg.Logger = log.Default()
	}
	if cfg.Cache == nil {
		cfg.Cache = cache.NewNullCache()
	}
	if cfg.Keyer == nil {
		cfg.Keyer = cache.NewDefaultKeyer()
	}
	if cfg.TopK == 0 {
		cfg.TopK = query.DefaultTopK
	}

	s := &Server{cfg: cfg}
	s.router = s.routes()
	return s, nil
}

// Handler returns the HTTP handler.
func (s *Server) Handler() http.Handler { return s.router }

func (s *Server) routes() chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(s.logRequests)
	r.Use(middleware.Recoverer)

	r.Get("/healthz", s.handleHealth)
	r.Get("/tree", s.handleTree)
	r.Get("/trace", s.handleTrace)
	r.Get("/depth", s.handleDepth)
	r.Get("/levels", s.handleLevels)
	r.Get("/rank", s.handleRank)
	r.Get("/report", s.handleReport)
	r.Get("/diagram.dot", s.handleDOT)
	r.Get("/diagram.svg", s.handleSVG)

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, apperrors.New(apperrors.ErrCodeNotFound, "no route for %s", r.URL.Path))
	})
	return r
}

// Run serves on addr until ctx is canceled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.cfg.Logger.Info("Serving", "addr", addr, "root", s.cfg.Engine.Tree().Root())
		errCh <- srv.ListenAndServe()
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
		s.cfg.Logger.Info("Shutting down")
		return srv.Shutdown(shutdownCtx)
	}
}
