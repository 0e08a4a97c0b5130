// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package controller serializes ballots against the stored voting machine.

# Submitting Ballots

	ctrl := controller.NewVotingController(store, logger)
	outcome, err := ctrl.Submit(ctx, models.NewBallotPaper("alice", "NixOS"))

Submit reads the machine from storage, applies the ballot and writes the
result back. The three steps run under one write lock, so concurrent
submissions from the stdio, UDP, TCP and HTTP front-ends never lose an
update: each ballot is decided against every ballot stored before it.

Rejected ballots (voter already on the sheet) skip the write. An error from
Read or Write is returned to the caller and the lock is released; the
stored machine is the last one successfully written.

A ballot with an empty voter returns ErrMissingVoter without touching
storage. Front-ends reject those earlier with a localized message.

# Reading the Tally

	machine, err := ctrl.Snapshot(ctx)

Snapshot takes the read lock: snapshots run in parallel with each other but
never while a submission is in flight.

One controller must own a given Storage; two controllers over the same
file or database do not coordinate.
*/
package controller
