// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package models defines the voting domain and the JSON request/response types.

# Domain Types

  - Voter, Candidate: opaque names
  - Score: non-negative vote count
  - AttendanceSheet: set of voters who have voted (append-only)
  - Scoreboard: candidate → Score, plus Blank and Invalid counters
  - BallotPaper: voter and optional candidate (nil means blank)
  - VoteOutcome: accepted, blank, invalid or already voted
  - VotingMachine: the aggregate (attendance sheet + scoreboard)

# Voting

VotingMachine.Vote is the only state transition:

	machine := models.NewVotingMachine([]models.Candidate{"NixOS", "Windows"})
	outcome := machine.Vote(models.NewBallotPaper("alice", "NixOS"))
	// outcome.Kind == models.OutcomeAccepted

The order of checks is attendance first: a voter already on the sheet gets
OutcomeAlreadyVoted and nothing changes. Otherwise the voter is recorded and
the ballot is counted as blank (no candidate), accepted (known candidate) or
invalid (unknown candidate).

The sum of all candidate scores plus blank and invalid always equals the
number of voters on the sheet. Validate checks this for machines loaded
from storage.

Vote performs no I/O and is not safe for concurrent use; the controller
package serializes access.

# Request Types

  - SubmitBallotRequest: voter, candidate

# Response Types

  - SubmitBallotResponse: outcome, voter, candidate, message
  - ResultsResponse: scores, blank_score, invalid_score, voters
  - ErrorResponse: error, message

# Constants

Outcome kinds:

	OutcomeAccepted     = "accepted"
	OutcomeBlank        = "blank"
	OutcomeInvalid      = "invalid"
	OutcomeAlreadyVoted = "already_voted"
*/
package models
