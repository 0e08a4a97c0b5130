// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package services

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"strings"
	"sync"

	"github.com/google/uuid"

	"github.com/danielhkuo/quickly-tally/controller"
	"github.com/danielhkuo/quickly-tally/lexicon"
)

// TCPService serves one command per line, one goroutine per connection.
type TCPService struct {
	lineHandler
	addr string
}

func NewTCPService(addr string, ctrl *controller.VotingController, lex lexicon.Lexicon, logger *slog.Logger) *TCPService {
	return &TCPService{lineHandler: newLineHandler(ctrl, lex, logger), addr: addr}
}

func (s *TCPService) Serve(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.addr)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", s.addr, err)
	}
	s.logger.Info("Listening", "service", "tcp", "addr", ln.Addr().String())
	return s.ServeListener(ctx, ln)
}

// ServeListener accepts connections until ctx is cancelled. Open
// connections are closed and drained before it returns.
func (s *TCPService) ServeListener(ctx context.Context, ln net.Listener) error {
	var wg sync.WaitGroup
	defer wg.Wait()

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	stop := context.AfterFunc(ctx, func() { ln.Close() })
	defer stop()

	for {
		conn, err := ln.Accept()
		if err != nil {
			if ctx.Err() != nil {
				return nil
			}
			ln.Close()
			return fmt.Errorf("failed to accept connection: %w", err)
		}

		wg.Add(1)
		go func() {
			defer wg.Done()
			s.serveConn(ctx, conn)
		}()
	}
}

func (s *TCPService) serveConn(ctx context.Context, conn net.Conn) {
	defer conn.Close()
	stop := context.AfterFunc(ctx, func() { conn.Close() })
	defer stop()

	logger := s.logger.With("conn_id", uuid.NewString(), "remote", conn.RemoteAddr().String())
	logger.Debug("connection opened")
	defer logger.Debug("connection closed")

	scanner := bufio.NewScanner(conn)
	scanner.Buffer(make([]byte, 0, 4096), maxLineSize)
	for scanner.Scan() {
		response, err := s.handle(ctx, scanner.Text())
		if err != nil {
			logger.Error("command failed, closing connection", "error", err)
			fmt.Fprintln(conn, errorMessage(err))
			return
		}
		if !strings.HasSuffix(response, "\n") {
			response += "\n"
		}
		if _, err := conn.Write([]byte(response)); err != nil {
			logger.Warn("failed to write response", "error", err)
			return
		}
	}
	err := scanner.Err()
	switch {
	case errors.Is(err, bufio.ErrTooLong):
		logger.Warn("line too long, closing connection", "limit", maxLineSize)
		conn.Write([]byte(s.lex.InvalidCommand))
	case err != nil && ctx.Err() == nil:
		logger.Warn("connection read failed", "error", err)
	}
}
