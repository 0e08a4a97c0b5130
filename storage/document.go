// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package storage

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/danielhkuo/quickly-tally/models"
)

// machineDocument is the on-disk shape of a voting machine.
type machineDocument struct {
	Voters     []string           `json:"voters"`
	Scoreboard scoreboardDocument `json:"scoreboard"`
}

type scoreboardDocument struct {
	Scores        map[string]uint64 `json:"scores"`
	BlankScores   uint64            `json:"blank_scores"`
	InvalidScores uint64            `json:"invalid_scores"`
}

func newMachineDocument(machine *models.VotingMachine) machineDocument {
	voters := machine.Voters.Voters()
	doc := machineDocument{
		Voters: make([]string, 0, len(voters)),
		Scoreboard: scoreboardDocument{
			Scores:        make(map[string]uint64, len(machine.Scoreboard.Scores)),
			BlankScores:   uint64(machine.Scoreboard.Blank),
			InvalidScores: uint64(machine.Scoreboard.Invalid),
		},
	}
	for _, v := range voters {
		doc.Voters = append(doc.Voters, string(v))
	}
	for c, s := range machine.Scoreboard.Scores {
		doc.Scoreboard.Scores[string(c)] = uint64(s)
	}
	return doc
}

func (d machineDocument) machine() *models.VotingMachine {
	voters := make([]models.Voter, 0, len(d.Voters))
	for _, v := range d.Voters {
		voters = append(voters, models.Voter(v))
	}
	scores := make(map[models.Candidate]models.Score, len(d.Scoreboard.Scores))
	for c, s := range d.Scoreboard.Scores {
		scores[models.Candidate(c)] = models.Score(s)
	}
	return &models.VotingMachine{
		Voters: models.NewAttendanceSheet(voters...),
		Scoreboard: models.Scoreboard{
			Scores:  scores,
			Blank:   models.Score(d.Scoreboard.BlankScores),
			Invalid: models.Score(d.Scoreboard.InvalidScores),
		},
	}
}

// encodeMachine writes the machine as an indented JSON document.
func encodeMachine(w io.Writer, machine *models.VotingMachine) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(newMachineDocument(machine))
}

// decodeMachine reads a JSON document and checks the tally adds up.
func decodeMachine(r io.Reader) (*models.VotingMachine, error) {
	var doc machineDocument
	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&doc); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDecode, err)
	}
	if doc.Voters == nil || doc.Scoreboard.Scores == nil {
		return nil, fmt.Errorf("%w: missing voters or scores", ErrDecode)
	}

	machine := doc.machine()
	if len(doc.Voters) != machine.Voters.Len() {
		return nil, fmt.Errorf("%w: duplicate voters", ErrDecode)
	}
	if err := machine.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDecode, err)
	}
	return machine, nil
}
