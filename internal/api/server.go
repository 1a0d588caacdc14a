package api

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"github.com/edvin/grantsync/internal/api/handler"
	mw "github.com/edvin/grantsync/internal/api/middleware"
	"github.com/edvin/grantsync/internal/converge"
)

// Pinger reports whether the target server connection is usable.
type Pinger interface {
	Ping(ctx context.Context) error
}

type Server struct {
	router chi.Router
	logger zerolog.Logger
	pinger Pinger
}

func NewServer(logger zerolog.Logger, engine handler.Engine, ex converge.Executor, pinger Pinger) *Server {
	s := &Server{
		router: chi.NewRouter(),
		logger: logger,
		pinger: pinger,
	}

	s.router.Use(middleware.RequestID)
	s.router.Use(middleware.RealIP)
	s.router.Use(mw.RequestLogger(logger))
	s.router.Use(middleware.Recoverer)

	s.router.Handle("/metrics", promhttp.Handler())
	s.router.Get("/healthz", s.handleHealthz)
	s.router.Get("/readyz", s.handleReadyz)

	conv := handler.NewConverge(engine, ex)
	s.router.Route("/api/v1", func(r chi.Router) {
		r.Post("/converge", conv.Run)
		r.Get("/accounts/{user}/{host}/grants", conv.Grants)
	})

	return s
}

func (s *Server) Handler() http.Handler {
	return s.router
}

func (s *Server) handleHealthz(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("ok"))
}

func (s *Server) handleReadyz(w http.ResponseWriter, r *http.Request) {
	if err := s.pinger.Ping(r.Context()); err != nil {
		http.Error(w, "database unavailable", http.StatusServiceUnavailable)
		return
	}
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("ready"))
}
