// Package server exposes the DICOM decoder over HTTP: a multipart upload
// returns the file's metadata and a base64 PNG rendition of its pixels.
package server

import (
	"context"
	"errors"
	"log/slog"
	"net"
	"net/http"
	"time"
)

// Option configures a Server instance.
type Option func(*Server)

// WithLogger overrides the logger used by the server.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) {
		s.Logger = logger
	}
}

// Server is the DICOM upload service
type Server struct {
	Config Config
	Logger *slog.Logger
}

// New builds a Server from cfg
func New(cfg Config, opts ...Option) *Server {
	srv := &Server{Config: cfg}
	for _, opt := range opts {
		opt(srv)
	}
	return srv
}

// Handler returns the routed handler with request ID, CORS and access log
// middleware applied
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("POST "+s.Config.Route, s.handleUpload)
	mux.HandleFunc("GET /healthz", handleHealth)
	return s.withRequestID(s.withCORS(s.withAccessLog(mux)))
}

// Run listens on the configured address and serves until ctx is done
func (s *Server) Run(ctx context.Context) error {
	if err := s.Config.Validate(); err != nil {
		return err
	}
	listener, err := net.Listen("tcp", s.Config.Addr)
	if err != nil {
		return err
	}
	defer listener.Close()
	return s.Serve(ctx, listener)
}

// Serve accepts connections from listener until ctx is cancelled, then shuts
// down gracefully, letting in-flight uploads finish
func (s *Server) Serve(ctx context.Context, listener net.Listener) error {
	if listener == nil {
		return errors.New("server: listener is required")
	}
	logger := s.logger()

	hs := &http.Server{
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       s.Config.ReadTimeout,
		WriteTimeout:      s.Config.WriteTimeout,
		BaseContext:       func(net.Listener) context.Context { return ctx },
		ErrorLog:          slog.NewLogLogger(logger.Handler(), slog.LevelWarn),
	}

	errc := make(chan error, 1)
	go func() {
		errc <- hs.Serve(listener)
	}()
	logger.InfoContext(ctx, "DICOM upload service listening",
		"address", listener.Addr().String(),
		"route", s.Config.Route)

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
	}

	timeout := s.Config.ShutdownTimeout
	if timeout <= 0 {
		timeout = DefaultConfig().ShutdownTimeout
	}
	shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), timeout)
	defer cancel()
	if err := hs.Shutdown(shutdownCtx); err != nil {
		logger.Warn("Shutdown incomplete", "error", err)
		return err
	}
	if err := <-errc; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	logger.Info("DICOM upload service stopped")
	return nil
}

func (s *Server) logger() *slog.Logger {
	if s.Logger != nil {
		return s.Logger
	}
	return slog.Default()
}

func handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.Write([]byte("ok"))
}
