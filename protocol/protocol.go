// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package protocol

import (
	"context"
	"strings"

	"github.com/danielhkuo/quickly-tally/controller"
	"github.com/danielhkuo/quickly-tally/lexicon"
	"github.com/danielhkuo/quickly-tally/models"
)

// HandleLine runs one command and returns the rendered response. Malformed
// commands get a message, not an error; errors only come from storage.
func HandleLine(ctx context.Context, line string, ctrl *controller.VotingController, lex lexicon.Lexicon) (string, error) {
	words := strings.Fields(line)
	if len(words) == 0 {
		return lex.Help, nil
	}

	switch words[0] {
	case lex.Vote:
		if len(words) < 2 {
			return lex.MissingVoter, nil
		}
		candidate := ""
		if len(words) > 2 {
			candidate = words[2]
		}
		outcome, err := ctrl.Submit(ctx, models.NewBallotPaper(words[1], candidate))
		if err != nil {
			return "", err
		}
		return lex.FormatOutcome(outcome), nil

	case lex.Scores:
		machine, err := ctrl.Snapshot(ctx)
		if err != nil {
			return "", err
		}
		return lex.FormatScoreboard(machine.Scoreboard), nil

	case lex.Voters:
		machine, err := ctrl.Snapshot(ctx)
		if err != nil {
			return "", err
		}
		return lex.FormatAttendance(machine.Voters), nil

	default:
		return lex.InvalidCommand, nil
	}
}
