// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package storage

import (
	"context"
	"errors"

	"github.com/danielhkuo/quickly-tally/models"
)

var (
	ErrInitialization = errors.New("storage initialization failed")
	ErrIO             = errors.New("storage i/o failed")
	ErrDecode         = errors.New("stored voting machine is corrupt")
)

// Storage holds the persisted copy of the voting machine. Read returns a copy
// the caller may mutate freely; Write replaces the stored machine wholesale
// and leaves the previous one intact if it fails.
type Storage interface {
	Read(ctx context.Context) (*models.VotingMachine, error)
	Write(ctx context.Context, machine *models.VotingMachine) error
}

// Backend names accepted by configuration
const (
	BackendMemory   = "memory"
	BackendFile     = "file"
	BackendSQLite   = "sqlite"
	BackendPostgres = "postgres"
)
