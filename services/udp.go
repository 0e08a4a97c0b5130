// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package services

import (
	"context"
	"fmt"
	"log/slog"
	"net"
	"sync"

	"github.com/danielhkuo/quickly-tally/controller"
	"github.com/danielhkuo/quickly-tally/lexicon"
)

// maxDatagramSize is the largest UDP payload over IPv4.
const maxDatagramSize = 65507

// UDPService answers one command per datagram, replying to the sender.
type UDPService struct {
	lineHandler
	addr string
}

func NewUDPService(addr string, ctrl *controller.VotingController, lex lexicon.Lexicon, logger *slog.Logger) *UDPService {
	return &UDPService{lineHandler: newLineHandler(ctrl, lex, logger), addr: addr}
}

func (s *UDPService) Serve(ctx context.Context) error {
	conn, err := net.ListenPacket("udp", s.addr)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", s.addr, err)
	}
	s.logger.Info("Listening", "service", "udp", "addr", conn.LocalAddr().String())
	return s.ServePacketConn(ctx, conn)
}

// ServePacketConn serves datagrams from conn until ctx is cancelled, then
// waits for in-flight replies and closes conn.
func (s *UDPService) ServePacketConn(ctx context.Context, conn net.PacketConn) error {
	defer conn.Close()

	var wg sync.WaitGroup
	defer wg.Wait()

	stop := context.AfterFunc(ctx, func() { conn.Close() })
	defer stop()

	buf := make([]byte, maxDatagramSize)
	for {
		n, addr, err := conn.ReadFrom(buf)
		if err != nil {
			if ctx.Err() != nil {
				return nil
			}
			return fmt.Errorf("failed to read datagram: %w", err)
		}
		line := string(buf[:n])

		wg.Add(1)
		go func() {
			defer wg.Done()

			response, err := s.handle(ctx, line)
			if err != nil {
				s.logger.Error("command failed", "error", err, "remote", addr.String())
				response = errorMessage(err)
			}
			if _, err := conn.WriteTo([]byte(response), addr); err != nil {
				s.logger.Warn("failed to send reply", "error", err, "remote", addr.String())
			}
		}()
	}
}
