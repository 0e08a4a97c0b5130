// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package services

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/danielhkuo/quickly-tally/controller"
	"github.com/danielhkuo/quickly-tally/lexicon"
)

// StdioService reads one command per line and prints each response.
type StdioService struct {
	lineHandler
	in  io.Reader
	out io.Writer
}

func NewStdioService(in io.Reader, out io.Writer, ctrl *controller.VotingController, lex lexicon.Lexicon, logger *slog.Logger) *StdioService {
	return &StdioService{
		lineHandler: newLineHandler(ctrl, lex, logger),
		in:          in,
		out:         out,
	}
}

// Serve returns nil at end of input. A storage error is printed and the
// loop goes on with the next line.
func (s *StdioService) Serve(ctx context.Context) error {
	lines := make(chan string)
	scanErr := make(chan error, 1)

	// Reads block, so they run apart from the loop watching ctx
	go func() {
		defer close(lines)
		scanner := bufio.NewScanner(s.in)
		for scanner.Scan() {
			select {
			case lines <- scanner.Text():
			case <-ctx.Done():
				return
			}
		}
		scanErr <- scanner.Err()
	}()

	for {
		select {
		case <-ctx.Done():
			return nil
		case line, ok := <-lines:
			if !ok {
				select {
				case err := <-scanErr:
					return err
				default:
					return nil
				}
			}

			response, err := s.handle(ctx, line)
			if err != nil {
				s.logger.Error("command failed", "error", err)
				response = errorMessage(err)
			}
			if _, err := fmt.Fprintln(s.out, response); err != nil {
				return fmt.Errorf("failed to write response: %w", err)
			}
		}
	}
}
