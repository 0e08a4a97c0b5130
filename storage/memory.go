// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package storage

import (
	"context"
	"sync"

	"github.com/danielhkuo/quickly-tally/models"
)

// MemoryStore keeps the machine in process memory. It never fails.
type MemoryStore struct {
	mu      sync.RWMutex
	machine *models.VotingMachine
}

func NewMemoryStore(initial *models.VotingMachine) *MemoryStore {
	return &MemoryStore{machine: initial.Clone()}
}

func (s *MemoryStore) Read(_ context.Context) (*models.VotingMachine, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.machine.Clone(), nil
}

func (s *MemoryStore) Write(_ context.Context, machine *models.VotingMachine) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.machine = machine.Clone()
	return nil
}
