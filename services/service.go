// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package services

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/danielhkuo/quickly-tally/controller"
	"github.com/danielhkuo/quickly-tally/lexicon"
	"github.com/danielhkuo/quickly-tally/protocol"
)

// maxLineSize bounds one TCP command line, newline included.
const maxLineSize = 64 * 1024

// Service is a front-end feeding requests to the controller. Serve blocks
// until ctx is cancelled or the front-end fails.
type Service interface {
	Serve(ctx context.Context) error
}

// lineHandler is the part every line-oriented front-end shares.
type lineHandler struct {
	ctrl   *controller.VotingController
	lex    lexicon.Lexicon
	logger *slog.Logger
}

func newLineHandler(ctrl *controller.VotingController, lex lexicon.Lexicon, logger *slog.Logger) lineHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return lineHandler{ctrl: ctrl, lex: lex, logger: logger}
}

func (h lineHandler) handle(ctx context.Context, line string) (string, error) {
	return protocol.HandleLine(ctx, strings.TrimRight(line, "\r\n"), h.ctrl, h.lex)
}

func errorMessage(err error) string {
	return fmt.Sprintf("error: %v", err)
}
