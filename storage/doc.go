// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package storage persists the voting machine.

# Backends

All backends implement Storage:

	type Storage interface {
		Read(ctx context.Context) (*models.VotingMachine, error)
		Write(ctx context.Context, machine *models.VotingMachine) error
	}

  - MemoryStore: process memory, never fails after construction
  - FileStore: JSON document, written to a temp file and renamed into place
  - SQLStore: sqlite (modernc.org/sqlite) or postgres (github.com/lib/pq),
    each Write is one transaction

Read always returns a private copy. Storage does not serialize
read-modify-write cycles; that is the controller's job.

# File Format

	{
	  "voters": ["alice", "bob"],
	  "scoreboard": {
	    "scores": {"NixOS": 1, "Windows": 0},
	    "blank_scores": 1,
	    "invalid_scores": 0
	  }
	}

Unknown fields, duplicate voters and tallies that do not add up to the
number of voters are rejected with ErrDecode.

# Errors

  - ErrInitialization: an existing file or database could not be loaded
  - ErrIO: reading or writing failed; the previous state is intact
  - ErrDecode: the stored machine is corrupt

Use errors.Is to test for them.
*/
package storage
