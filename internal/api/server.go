// Package api serves the cells simulation over HTTP and WebSocket.
// Every request decodes its own board, so handlers share no board state.
package api

import (
	"bufio"
	"context"
	"errors"
	"net"
	"net/http"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gorilla/websocket"
	"github.com/matryer/way"

	"github.com/vovakirdan/tui-cells/internal/games/cells/core"
	"github.com/vovakirdan/tui-cells/internal/games/cells/levels"
	"github.com/vovakirdan/tui-cells/internal/storage"
)

// Options configures a Server.
type Options struct {
	Catalog *levels.Catalog
	Stepper core.Stepper

	// Store backs the /boards endpoints. They are not routed when nil.
	Store *storage.Store

	Logger *log.Logger

	// StreamInterval is the default delay between /ws/run frames.
	StreamInterval time.Duration

	// MaxTicks bounds /step and /ws/run.
	MaxTicks int
}

// Server routes API requests.
type Server struct {
	router   *way.Router
	opts     Options
	logger   *log.Logger
	upgrader *websocket.Upgrader
}

// New creates a Server with its routes registered.
func New(opts Options) *Server {
	if opts.Logger == nil {
		opts.Logger = log.NewWithOptions(os.Stderr, log.Options{
			ReportTimestamp: true,
			Prefix:          "cells-api",
		})
	}
	if opts.StreamInterval <= 0 {
		opts.StreamInterval = 250 * time.Millisecond
	}
	if opts.MaxTicks <= 0 {
		opts.MaxTicks = 1000
	}

	s := &Server{
		opts:     opts,
		logger:   opts.Logger,
		upgrader: &websocket.Upgrader{},
	}
	s.routes()
	return s
}

// ServeHTTP logs and dispatches a request.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
	s.router.ServeHTTP(rec, r)
	s.logger.Debug("request",
		"method", r.Method,
		"path", r.URL.Path,
		"status", rec.status,
		"duration", time.Since(start),
	)
}

// ListenAndServe serves on addr until ctx is cancelled.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errc := make(chan error, 1)
	go func() {
		s.logger.Info("starting API server", "address", addr)
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
	}

	s.logger.Info("shutting down...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errc; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// statusRecorder captures the response status for logging.
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

// Hijack lets the WebSocket upgrade take over the connection.
func (r *statusRecorder) Hijack() (net.Conn, *bufio.ReadWriter, error) {
	h, ok := r.ResponseWriter.(http.Hijacker)
	if !ok {
		return nil, nil, errors.New("api: response writer cannot be hijacked")
	}
	r.status = http.StatusSwitchingProtocols
	return h.Hijack()
}
