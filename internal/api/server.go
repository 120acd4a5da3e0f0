package api

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"
)

// HTTP timeouts. Requests are small JSON bodies against per-record
// transactions, so short limits are safe.
const (
	readTimeout     = 15 * time.Second
	writeTimeout    = 15 * time.Second
	shutdownTimeout = 30 * time.Second
)

// Server runs the HTTP API with graceful shutdown
type Server struct {
	httpServer *http.Server
	logger     *slog.Logger
}

// NewServer creates a server listening on addr (host:port)
func NewServer(handler http.Handler, addr string, logger *slog.Logger) *Server {
	return &Server{
		httpServer: &http.Server{
			Addr:         addr,
			Handler:      handler,
			ReadTimeout:  readTimeout,
			WriteTimeout: writeTimeout,
		},
		logger: logger,
	}
}

// Start listens and serves until Shutdown is called. A clean shutdown
// returns nil.
func (s *Server) Start() error {
	s.logger.Info("starting HTTP server", slog.String("addr", s.httpServer.Addr))

	err := s.httpServer.ListenAndServe()
	if errors.Is(err, http.ErrServerClosed) {
		return nil
	}
	return err
}

// Shutdown drains in-flight requests, up to the shutdown timeout
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("shutting down HTTP server")

	shutdownCtx, cancel := context.WithTimeout(ctx, shutdownTimeout)
	defer cancel()

	err := s.httpServer.Shutdown(shutdownCtx)
	if err == nil {
		s.logger.Info("HTTP server stopped")
	}
	return err
}

// Addr returns the server's listen address
func (s *Server) Addr() string {
	return s.httpServer.Addr
}
