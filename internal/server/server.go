// Package server exposes the client board over HTTP.
package server

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/thenoetrevino/carril/internal/services/client"
)

const shutdownTimeout = 5 * time.Second

// Server serves the client API over HTTP
type Server struct {
	addr    string
	clients client.Service
	metrics *Metrics
	httpSrv *http.Server
}

// NewServer creates a new API server listening on addr
func NewServer(addr string, clients client.Service) *Server {
	s := &Server{
		addr:    addr,
		clients: clients,
		metrics: NewMetrics(),
	}

	mux := http.NewServeMux()
	mux.HandleFunc("GET /clients", s.handleListClients)
	mux.HandleFunc("GET /clients/{id}", s.handleGetClient)
	mux.HandleFunc("PUT /clients/{id}", s.handleUpdateClient)
	mux.HandleFunc("GET /healthz", s.handleHealthz)
	mux.HandleFunc("GET /metrics", s.handleMetrics)

	s.httpSrv = &http.Server{
		Addr:              addr,
		Handler:           s.logRequests(mux),
		ReadHeaderTimeout: 10 * time.Second,
	}

	return s
}

// Handler returns the server's root handler
func (s *Server) Handler() http.Handler {
	return s.httpSrv.Handler
}

// Start runs the server until ctx is cancelled, then shuts down gracefully
func (s *Server) Start(ctx context.Context) error {
	serveErr := make(chan error, 1)
	go func() {
		slog.Info("server listening", "addr", s.addr)
		if err := s.httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
	}()

	select {
	case <-ctx.Done():
		slog.Info("shutting down server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return s.httpSrv.Shutdown(shutdownCtx)
	case err := <-serveErr:
		return err
	}
}

// logRequests counts and logs every handled request
func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		s.metrics.IncRequestsTotal()
		next.ServeHTTP(w, r)
		slog.Debug("request handled",
			"method", r.Method,
			"path", r.URL.Path,
			"duration", time.Since(start),
		)
	})
}
