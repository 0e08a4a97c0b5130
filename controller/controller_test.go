// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package controller

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/danielhkuo/quickly-tally/models"
	"github.com/danielhkuo/quickly-tally/storage"
)

var errDiskFull = errors.New("disk full")

// flakyStore fails writes while failWrites is set.
type flakyStore struct {
	storage.Storage
	failWrites atomic.Bool
	writes     atomic.Int32
}

func (s *flakyStore) Write(ctx context.Context, m *models.VotingMachine) error {
	s.writes.Add(1)
	if s.failWrites.Load() {
		return fmt.Errorf("%w: %w", storage.ErrIO, errDiskFull)
	}
	return s.Storage.Write(ctx, m)
}

func newTestController(t *testing.T) *VotingController {
	t.Helper()
	machine := models.NewVotingMachine([]models.Candidate{"NixOS", "Windows"})
	return NewVotingController(storage.NewMemoryStore(machine), nil)
}

func submit(t *testing.T, c *VotingController, voter, candidate string) models.VoteOutcome {
	t.Helper()
	outcome, err := c.Submit(context.Background(), models.NewBallotPaper(voter, candidate))
	if err != nil {
		t.Fatalf("Submit(%s, %s) failed: %v", voter, candidate, err)
	}
	return outcome
}

func snapshot(t *testing.T, c *VotingController) *models.VotingMachine {
	t.Helper()
	machine, err := c.Snapshot(context.Background())
	if err != nil {
		t.Fatalf("Snapshot failed: %v", err)
	}
	if err := machine.Validate(); err != nil {
		t.Fatalf("Snapshot is inconsistent: %v", err)
	}
	return machine
}

func TestSubmit_Scenarios(t *testing.T) {
	c := newTestController(t)

	// Scenario A
	if outcome := submit(t, c, "alice", "NixOS"); outcome != models.AcceptedVote("alice", "NixOS") {
		t.Errorf("Expected accepted vote, got %+v", outcome)
	}
	m := snapshot(t, c)
	if m.Scoreboard.Scores["NixOS"] != 1 || m.Scoreboard.Scores["Windows"] != 0 {
		t.Errorf("Expected NixOS=1 Windows=0, got %v", m.Scoreboard.Scores)
	}

	// Scenario B
	if outcome := submit(t, c, "bob", ""); outcome != models.BlankVote("bob") {
		t.Errorf("Expected blank vote, got %+v", outcome)
	}
	if m := snapshot(t, c); m.Scoreboard.Blank != 1 {
		t.Errorf("Expected blank=1, got %d", m.Scoreboard.Blank)
	}

	// Scenario C
	if outcome := submit(t, c, "carol", "Linux"); outcome != models.InvalidVote("carol") {
		t.Errorf("Expected invalid vote, got %+v", outcome)
	}
	if m := snapshot(t, c); m.Scoreboard.Invalid != 1 {
		t.Errorf("Expected invalid=1, got %d", m.Scoreboard.Invalid)
	}

	// Scenario D
	if outcome := submit(t, c, "alice", "Windows"); outcome != models.HasAlreadyVoted("alice") {
		t.Errorf("Expected already voted, got %+v", outcome)
	}
	m = snapshot(t, c)
	if m.Scoreboard.Scores["NixOS"] != 1 || m.Scoreboard.Scores["Windows"] != 0 {
		t.Errorf("Expected scores unchanged, got %v", m.Scoreboard.Scores)
	}
	if m.Voters.Len() != 3 {
		t.Errorf("Expected 3 voters, got %d", m.Voters.Len())
	}
}

func TestSubmit_MissingVoter(t *testing.T) {
	c := newTestController(t)

	_, err := c.Submit(context.Background(), models.NewBallotPaper("", "NixOS"))
	if !errors.Is(err, ErrMissingVoter) {
		t.Errorf("Expected ErrMissingVoter, got %v", err)
	}
	if m := snapshot(t, c); m.Voters.Len() != 0 {
		t.Errorf("Expected no voters, got %d", m.Voters.Len())
	}
}

func TestSubmit_RejectedBallotSkipsWrite(t *testing.T) {
	store := &flakyStore{Storage: storage.NewMemoryStore(models.NewVotingMachine([]models.Candidate{"NixOS"}))}
	c := NewVotingController(store, nil)

	submit(t, c, "alice", "NixOS")
	submit(t, c, "alice", "NixOS")

	if writes := store.writes.Load(); writes != 1 {
		t.Errorf("Expected 1 write, got %d", writes)
	}
}

func TestSubmit_WriteFailureKeepsCommittedState(t *testing.T) {
	store := &flakyStore{Storage: storage.NewMemoryStore(models.NewVotingMachine([]models.Candidate{"NixOS"}))}
	c := NewVotingController(store, nil)

	submit(t, c, "alice", "NixOS")

	store.failWrites.Store(true)
	_, err := c.Submit(context.Background(), models.NewBallotPaper("bob", "NixOS"))
	if !errors.Is(err, storage.ErrIO) || !errors.Is(err, errDiskFull) {
		t.Fatalf("Expected wrapped storage error, got %v", err)
	}

	m := snapshot(t, c)
	if m.Voters.Has("bob") || m.Scoreboard.Scores["NixOS"] != 1 {
		t.Errorf("Failed ballot must not be visible, got voters=%v scores=%v", m.Voters.Voters(), m.Scoreboard.Scores)
	}

	// The lock was released and bob can retry
	store.failWrites.Store(false)
	if outcome := submit(t, c, "bob", "NixOS"); outcome.Kind != models.OutcomeAccepted {
		t.Errorf("Expected retry to be accepted, got %s", outcome.Kind)
	}
}

func TestSubmit_CancelledContext(t *testing.T) {
	c := newTestController(t)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := c.Submit(ctx, models.NewBallotPaper("alice", "NixOS")); !errors.Is(err, context.Canceled) {
		t.Errorf("Expected context.Canceled, got %v", err)
	}
	if m := snapshot(t, c); m.Voters.Len() != 0 {
		t.Error("Cancelled ballot must not be counted")
	}
}

// TestConcurrentSubmissions verifies N distinct voters voting at once for
// the same candidate are all counted
func TestConcurrentSubmissions(t *testing.T) {
	stores := map[string]func(t *testing.T, m *models.VotingMachine) storage.Storage{
		"memory": func(t *testing.T, m *models.VotingMachine) storage.Storage {
			return storage.NewMemoryStore(m)
		},
		"file": func(t *testing.T, m *models.VotingMachine) storage.Storage {
			s, err := storage.NewFileStore(context.Background(), filepath.Join(t.TempDir(), "machine.json"), m, nil)
			if err != nil {
				t.Fatalf("Failed to create file store: %v", err)
			}
			return s
		},
	}

	for name, newStore := range stores {
		t.Run(name, func(t *testing.T) {
			machine := models.NewVotingMachine([]models.Candidate{"NixOS", "Windows"})
			c := NewVotingController(newStore(t, machine), nil)

			numVoters := 50
			var accepted atomic.Int32
			var wg sync.WaitGroup

			for i := 0; i < numVoters; i++ {
				wg.Add(1)
				go func(voterIdx int) {
					defer wg.Done()
					outcome, err := c.Submit(context.Background(), models.NewBallotPaper(fmt.Sprintf("voter-%d", voterIdx), "NixOS"))
					if err != nil {
						t.Errorf("Submit failed: %v", err)
						return
					}
					if outcome.Kind == models.OutcomeAccepted {
						accepted.Add(1)
					}
				}(i)

				// Readers run alongside the writers
				wg.Add(1)
				go func() {
					defer wg.Done()
					m, err := c.Snapshot(context.Background())
					if err != nil {
						t.Errorf("Snapshot failed: %v", err)
						return
					}
					if err := m.Validate(); err != nil {
						t.Errorf("Snapshot observed a partial ballot: %v", err)
					}
				}()
			}

			wg.Wait()

			if int(accepted.Load()) != numVoters {
				t.Errorf("Expected %d accepted ballots, got %d", numVoters, accepted.Load())
			}
			m := snapshot(t, c)
			if int(m.Scoreboard.Scores["NixOS"]) != numVoters {
				t.Errorf("Expected NixOS=%d, got %d (lost updates)", numVoters, m.Scoreboard.Scores["NixOS"])
			}
			if m.Voters.Len() != numVoters {
				t.Errorf("Expected %d voters, got %d", numVoters, m.Voters.Len())
			}
		})
	}
}

// TestConcurrentSameVoter is scenario E: the same voter racing with
// themselves is counted exactly once
func TestConcurrentSameVoter(t *testing.T) {
	c := newTestController(t)

	attempts := 10
	var accepted, rejected atomic.Int32
	var wg sync.WaitGroup

	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			outcome, err := c.Submit(context.Background(), models.NewBallotPaper("dave", "NixOS"))
			if err != nil {
				t.Errorf("Submit failed: %v", err)
				return
			}
			switch outcome.Kind {
			case models.OutcomeAccepted:
				accepted.Add(1)
			case models.OutcomeAlreadyVoted:
				rejected.Add(1)
			}
		}()
	}

	wg.Wait()

	if accepted.Load() != 1 {
		t.Errorf("Expected exactly 1 accepted ballot, got %d", accepted.Load())
	}
	if int(rejected.Load()) != attempts-1 {
		t.Errorf("Expected %d rejected ballots, got %d", attempts-1, rejected.Load())
	}
	if m := snapshot(t, c); m.Scoreboard.Scores["NixOS"] != 1 {
		t.Errorf("Expected NixOS=1, got %d", m.Scoreboard.Scores["NixOS"])
	}
}
