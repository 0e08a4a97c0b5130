// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package models

import (
	"errors"
	"fmt"
)

var (
	ErrInconsistentTally = errors.New("scores do not add up to the attendance sheet")
	ErrScoreOverflow     = errors.New("scores overflow")
)

// VotingMachine is the aggregate of attendance sheet and scoreboard. All
// mutation goes through Vote.
type VotingMachine struct {
	Voters     AttendanceSheet
	Scoreboard Scoreboard
}

// NewVotingMachine returns an empty machine for a fixed candidate list.
func NewVotingMachine(candidates []Candidate) *VotingMachine {
	return &VotingMachine{
		Voters:     NewAttendanceSheet(),
		Scoreboard: NewScoreboard(candidates),
	}
}

// Vote records a ballot. A voter already on the attendance sheet changes
// nothing; otherwise the voter is recorded and exactly one counter is
// incremented (blank, the named candidate, or invalid).
func (m *VotingMachine) Vote(ballot BallotPaper) VoteOutcome {
	voter := ballot.Voter
	if m.Voters.Has(voter) {
		return HasAlreadyVoted(voter)
	}
	m.Voters.add(voter)

	if ballot.Candidate == nil {
		m.Scoreboard.Blank++
		return BlankVote(voter)
	}

	candidate := *ballot.Candidate
	if score, ok := m.Scoreboard.Scores[candidate]; ok {
		m.Scoreboard.Scores[candidate] = score + 1
		return AcceptedVote(voter, candidate)
	}

	m.Scoreboard.Invalid++
	return InvalidVote(voter)
}

// Clone returns a deep copy that shares no maps with m.
func (m *VotingMachine) Clone() *VotingMachine {
	scores := make(map[Candidate]Score, len(m.Scoreboard.Scores))
	for c, s := range m.Scoreboard.Scores {
		scores[c] = s
	}
	voters := make(map[Voter]struct{}, m.Voters.Len())
	for v := range m.Voters.voters {
		voters[v] = struct{}{}
	}
	return &VotingMachine{
		Voters: AttendanceSheet{voters: voters},
		Scoreboard: Scoreboard{
			Scores:  scores,
			Blank:   m.Scoreboard.Blank,
			Invalid: m.Scoreboard.Invalid,
		},
	}
}

// Validate checks that every counted ballot belongs to exactly one voter.
func (m *VotingMachine) Validate() error {
	voters := Score(m.Voters.Len())
	total, err := m.Scoreboard.Total()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrInconsistentTally, err)
	}
	if total != voters {
		return fmt.Errorf("%w: %d ballots for %d voters", ErrInconsistentTally, total, voters)
	}
	return nil
}

// Equal reports whether two machines hold the same voters and scores.
func (m *VotingMachine) Equal(o *VotingMachine) bool {
	if m.Voters.Len() != o.Voters.Len() || len(m.Scoreboard.Scores) != len(o.Scoreboard.Scores) {
		return false
	}
	if m.Scoreboard.Blank != o.Scoreboard.Blank || m.Scoreboard.Invalid != o.Scoreboard.Invalid {
		return false
	}
	for v := range m.Voters.voters {
		if !o.Voters.Has(v) {
			return false
		}
	}
	for c, s := range m.Scoreboard.Scores {
		if os, ok := o.Scoreboard.Scores[c]; !ok || os != s {
			return false
		}
	}
	return true
}
