// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
)

// WebService serves the HTTP router.
type WebService struct {
	server *http.Server
	logger *slog.Logger
}

func NewWebService(addr string, handler http.Handler, logger *slog.Logger) *WebService {
	if logger == nil {
		logger = slog.Default()
	}
	return &WebService{
		server: &http.Server{Addr: addr, Handler: handler},
		logger: logger,
	}
}

func (s *WebService) Serve(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.server.Addr)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", s.server.Addr, err)
	}
	s.logger.Info("Listening", "service", "web", "addr", ln.Addr().String())
	return s.ServeListener(ctx, ln)
}

// ServeListener serves HTTP on ln and closes the server when ctx is cancelled.
func (s *WebService) ServeListener(ctx context.Context, ln net.Listener) error {
	stop := context.AfterFunc(ctx, func() { s.server.Close() })
	defer stop()

	err := s.server.Serve(ln)
	if err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	s.logger.Info("Server closed")
	return nil
}
