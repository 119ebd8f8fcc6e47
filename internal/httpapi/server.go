// Package httpapi exposes the estimation and saved-estimate services over
// HTTP.
package httpapi

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/alexanderramin/buildcost/internal/service"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"golang.org/x/sync/errgroup"
)

const (
	maxBodyBytes    = 1 << 20
	shutdownTimeout = 5 * time.Second
)

// Config holds the server's collaborators.
type Config struct {
	Addr      string
	Estimates service.EstimateService
	Saved     service.SavedEstimateService
	Logger    *slog.Logger
}

type Server struct {
	addr     string
	handlers *handlers
	logger   *slog.Logger
	router   chi.Router
}

func NewServer(cfg Config) *Server {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	h := &handlers{estimates: cfg.Estimates, saved: cfg.Saved, logger: logger}

	r := chi.NewRouter()
	r.Use(
		middleware.RequestID,
		middleware.Logger,
		middleware.Recoverer,
	)
	r.Route("/api", func(r chi.Router) {
		r.Get("/health", h.health)
		r.Get("/catalog", h.catalog)
		r.Post("/estimate", h.basic)
		r.Post("/estimate/detailed", h.detailed)
		r.Post("/estimate/validate", h.validate)
		r.Post("/save/{name}", h.save)
		r.Get("/load/{name}", h.load)
		r.Get("/list-saved", h.listSaved)
		r.Delete("/saved/{name}", h.deleteSaved)
	})

	return &Server{addr: cfg.Addr, handlers: h, logger: logger, router: r}
}

// Handler returns the routed API.
func (s *Server) Handler() http.Handler { return s.router }

// Serve listens on the configured address and blocks until ctx is
// cancelled or the listener fails. Cancellation shuts the server down
// gracefully and returns nil.
func (s *Server) Serve(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.addr)
	if err != nil {
		return fmt.Errorf("listening on %s: %w", s.addr, err)
	}
	return s.ServeListener(ctx, ln)
}

// ServeListener is Serve on an existing listener.
func (s *Server) ServeListener(ctx context.Context, ln net.Listener) error {
	eg, egctx := errgroup.WithContext(ctx)

	srv := &http.Server{
		Handler: s.router,
		BaseContext: func(_ net.Listener) context.Context {
			return egctx
		},
		ReadHeaderTimeout: 10 * time.Second,
	}

	s.logger.Info("starting API server", "addr", ln.Addr().String())

	eg.Go(func() error {
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	})

	eg.Go(func() error {
		<-egctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		s.logger.Info("shutting down API server")
		return srv.Shutdown(shutdownCtx)
	})

	return eg.Wait()
}
