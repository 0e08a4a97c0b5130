// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package models

import (
	"sort"
	"strings"
)

// Outcome kind constants
const (
	OutcomeAccepted     = "accepted"
	OutcomeBlank        = "blank"
	OutcomeInvalid      = "invalid"
	OutcomeAlreadyVoted = "already_voted"
)

// Domain types

// Voter identifies a participant. Two voters are the same if their names are.
type Voter string

// Candidate is one option on the ballot.
type Candidate string

// Score is a vote count.
type Score uint64

// BallotPaper is one vote submission. A nil Candidate is a blank vote.
type BallotPaper struct {
	Voter     Voter
	Candidate *Candidate
}

// NewBallotPaper builds a ballot from raw strings; an empty candidate means blank.
func NewBallotPaper(voter, candidate string) BallotPaper {
	ballot := BallotPaper{Voter: Voter(voter)}
	if candidate != "" {
		c := Candidate(candidate)
		ballot.Candidate = &c
	}
	return ballot
}

// VoteOutcome is the result of a single ballot. Kind is one of the Outcome*
// constants; Candidate is only set for accepted votes.
type VoteOutcome struct {
	Kind      string
	Voter     Voter
	Candidate Candidate
}

func AcceptedVote(voter Voter, candidate Candidate) VoteOutcome {
	return VoteOutcome{Kind: OutcomeAccepted, Voter: voter, Candidate: candidate}
}

func BlankVote(voter Voter) VoteOutcome {
	return VoteOutcome{Kind: OutcomeBlank, Voter: voter}
}

func InvalidVote(voter Voter) VoteOutcome {
	return VoteOutcome{Kind: OutcomeInvalid, Voter: voter}
}

func HasAlreadyVoted(voter Voter) VoteOutcome {
	return VoteOutcome{Kind: OutcomeAlreadyVoted, Voter: voter}
}

// Counted reports whether the outcome changed the tally.
func (o VoteOutcome) Counted() bool {
	return o.Kind != OutcomeAlreadyVoted
}

// AttendanceSheet is the set of voters who have already voted.
type AttendanceSheet struct {
	voters map[Voter]struct{}
}

// NewAttendanceSheet returns a sheet holding the given voters.
func NewAttendanceSheet(voters ...Voter) AttendanceSheet {
	sheet := AttendanceSheet{voters: make(map[Voter]struct{}, len(voters))}
	for _, v := range voters {
		sheet.voters[v] = struct{}{}
	}
	return sheet
}

func (a *AttendanceSheet) Has(voter Voter) bool {
	_, ok := a.voters[voter]
	return ok
}

func (a *AttendanceSheet) add(voter Voter) {
	if a.voters == nil {
		a.voters = make(map[Voter]struct{})
	}
	a.voters[voter] = struct{}{}
}

func (a *AttendanceSheet) Len() int {
	return len(a.voters)
}

// Voters returns the roll in ascending name order.
func (a *AttendanceSheet) Voters() []Voter {
	voters := make([]Voter, 0, len(a.voters))
	for v := range a.voters {
		voters = append(voters, v)
	}
	sort.Slice(voters, func(i, j int) bool { return voters[i] < voters[j] })
	return voters
}

// Scoreboard holds one score per candidate plus the blank and invalid counters.
// The set of keys in Scores is the fixed candidate list.
type Scoreboard struct {
	Scores  map[Candidate]Score
	Blank   Score
	Invalid Score
}

// NewScoreboard returns a zeroed scoreboard for the given candidates.
func NewScoreboard(candidates []Candidate) Scoreboard {
	scores := make(map[Candidate]Score, len(candidates))
	for _, c := range candidates {
		scores[c] = 0
	}
	return Scoreboard{Scores: scores}
}

// Candidates returns the candidate list in ascending name order.
func (s *Scoreboard) Candidates() []Candidate {
	candidates := make([]Candidate, 0, len(s.Scores))
	for c := range s.Scores {
		candidates = append(candidates, c)
	}
	sort.Slice(candidates, func(i, j int) bool { return candidates[i] < candidates[j] })
	return candidates
}

// Total is the number of ballots counted, blank and invalid included. It
// fails with ErrScoreOverflow if the counters do not fit in a Score.
func (s *Scoreboard) Total() (Score, error) {
	total, err := addScores(s.Blank, s.Invalid)
	if err != nil {
		return 0, err
	}
	for _, score := range s.Scores {
		if total, err = addScores(total, score); err != nil {
			return 0, err
		}
	}
	return total, nil
}

func addScores(a, b Score) (Score, error) {
	if a+b < a {
		return 0, ErrScoreOverflow
	}
	return a + b, nil
}

// ParseCandidates splits a comma separated list, trimming blanks.
func ParseCandidates(list string) []Candidate {
	var candidates []Candidate
	for _, name := range strings.Split(list, ",") {
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}
		candidates = append(candidates, Candidate(name))
	}
	return candidates
}

// Request types

// voter + optional candidate, "" means blank
type SubmitBallotRequest struct {
	Voter     string `json:"voter"`
	Candidate string `json:"candidate"`
}

// Response types

type SubmitBallotResponse struct {
	Outcome   string `json:"outcome"`
	Voter     string `json:"voter"`
	Candidate string `json:"candidate,omitempty"`
	Message   string `json:"message"`
}

type CandidateScore struct {
	Candidate string `json:"candidate"`
	Score     Score  `json:"score"`
}

type ResultsResponse struct {
	Scores       []CandidateScore `json:"scores"`
	BlankScore   Score            `json:"blank_score"`
	InvalidScore Score            `json:"invalid_score"`
	Voters       []string         `json:"voters"`
}

// Error response

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}
