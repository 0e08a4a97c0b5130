// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package controller

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/danielhkuo/quickly-tally/models"
	"github.com/danielhkuo/quickly-tally/storage"
)

var ErrMissingVoter = errors.New("ballot has no voter")

// VotingController runs ballots against a Storage. Submit holds the write
// lock for the whole read-vote-write cycle; Snapshot takes the read lock.
type VotingController struct {
	mu     sync.RWMutex
	store  storage.Storage
	logger *slog.Logger
}

// NewVotingController wraps store. A nil logger uses slog.Default().
func NewVotingController(store storage.Storage, logger *slog.Logger) *VotingController {
	if logger == nil {
		logger = slog.Default()
	}
	return &VotingController{store: store, logger: logger}
}

// Submit counts one ballot and returns its outcome once the new state is
// stored. On error nothing was stored and the caller may retry.
func (c *VotingController) Submit(ctx context.Context, ballot models.BallotPaper) (models.VoteOutcome, error) {
	if ballot.Voter == "" {
		return models.VoteOutcome{}, ErrMissingVoter
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	// The caller may have gone away while waiting for the lock
	if err := ctx.Err(); err != nil {
		return models.VoteOutcome{}, err
	}

	machine, err := c.store.Read(ctx)
	if err != nil {
		c.logger.Error("failed to read voting machine", "error", err)
		return models.VoteOutcome{}, fmt.Errorf("failed to read voting machine: %w", err)
	}

	outcome := machine.Vote(ballot)
	if !outcome.Counted() {
		c.logger.Info("ballot rejected", "voter", outcome.Voter, "outcome", outcome.Kind)
		return outcome, nil
	}

	if err := c.store.Write(ctx, machine); err != nil {
		c.logger.Error("failed to write voting machine", "error", err, "voter", outcome.Voter)
		return models.VoteOutcome{}, fmt.Errorf("failed to write voting machine: %w", err)
	}

	c.logger.Info("ballot counted", "voter", outcome.Voter, "outcome", outcome.Kind)
	return outcome, nil
}

// Snapshot returns a copy of the last stored machine. It never observes a
// ballot that is only half stored.
func (c *VotingController) Snapshot(ctx context.Context) (*models.VotingMachine, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	machine, err := c.store.Read(ctx)
	if err != nil {
		c.logger.Error("failed to read voting machine", "error", err)
		return nil, fmt.Errorf("failed to read voting machine: %w", err)
	}
	return machine, nil
}
