// Package debugserver exposes game state and prometheus metrics over HTTP
// while the game runs in debug mode.
package debugserver

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"sync/atomic"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const DefaultAddr = "127.0.0.1:6061"

type Config struct {
	// CORSOrigins defaults to localhost on any port.
	CORSOrigins []string
	// DisableLogging drops the request logger middleware.
	DisableLogging bool
}

// Server is safe for concurrent use: the game goroutine publishes snapshots
// and records timings; HTTP handlers only read the latest snapshot.
type Server struct {
	router  *chi.Mux
	snap    atomic.Pointer[Snapshot]
	metrics *metrics
	http    *http.Server
}

func New(cfg Config) *Server {
	s := &Server{}
	s.metrics = newMetrics(s.snap.Load)

	r := chi.NewRouter()
	if !cfg.DisableLogging {
		r.Use(middleware.Logger)
	}
	r.Use(middleware.Recoverer)

	origins := cfg.CORSOrigins
	if origins == nil {
		origins = []string{"http://localhost:*", "http://127.0.0.1:*"}
	}
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: origins,
		AllowedMethods: []string{"GET", "OPTIONS"},
		AllowedHeaders: []string{"*"},
	}))

	r.Handle("/metrics", promhttp.HandlerFor(s.metrics.registry, promhttp.HandlerOpts{}))
	r.Route("/debug", func(r chi.Router) {
		r.Get("/state", s.handleState)
		r.Get("/animations", s.handleAnimations)
	})

	s.router = r
	return s
}

// Router returns the HTTP handler for use with httptest.
func (s *Server) Router() http.Handler {
	return s.router
}

// Publish replaces the snapshot served to readers.
func (s *Server) Publish(snap *Snapshot) {
	s.snap.Store(snap)
}

func (s *Server) Snapshot() *Snapshot {
	return s.snap.Load()
}

func (s *Server) ObserveTick(d time.Duration) {
	s.metrics.observeTick(d)
}

func (s *Server) ObserveSystem(name string, d time.Duration) {
	s.metrics.observeSystem(name, d)
}

func (s *Server) ObserveTransition(state string) {
	s.metrics.transitions.WithLabelValues(state).Inc()
}

// Start listens on addr in the background.
func (s *Server) Start(addr string) {
	if addr == "" {
		addr = DefaultAddr
	}
	s.http = &http.Server{
		Addr:              addr,
		Handler:           s.router,
		ReadHeaderTimeout: 5 * time.Second,
	}
	go func() {
		log.Printf("debugserver: listening on http://%s", addr)
		if err := s.http.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Printf("debugserver: %v", err)
		}
	}()
}

func (s *Server) Shutdown(ctx context.Context) error {
	if s.http == nil {
		return nil
	}
	return s.http.Shutdown(ctx)
}

func (s *Server) handleState(w http.ResponseWriter, r *http.Request) {
	snap := s.snap.Load()
	if snap == nil {
		http.Error(w, "no snapshot yet", http.StatusServiceUnavailable)
		return
	}
	writeJSON(w, snap)
}

func (s *Server) handleAnimations(w http.ResponseWriter, r *http.Request) {
	snap := s.snap.Load()
	if snap == nil {
		http.Error(w, "no snapshot yet", http.StatusServiceUnavailable)
		return
	}
	writeJSON(w, map[string]any{
		"stats": snap.Animation,
		"clips": snap.Clips,
	})
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("debugserver: encode: %v", err)
	}
}
