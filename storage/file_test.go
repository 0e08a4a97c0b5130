// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package storage

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/danielhkuo/quickly-tally/models"
)

func TestFileStoreCreateAndRead(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "machine.json")
	initial := newTestMachine()

	store, err := NewFileStore(ctx, path, initial, nil)
	require.NoError(t, err)
	require.FileExists(t, path)

	machine, err := store.Read(ctx)
	require.NoError(t, err)
	require.True(t, initial.Equal(machine))
}

func TestFileStoreRoundTrip(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "machine.json")

	store, err := NewFileStore(ctx, path, newTestMachine(), nil)
	require.NoError(t, err)

	machine := newTestMachine()
	machine.Vote(models.NewBallotPaper("alice", "NixOS"))
	machine.Vote(models.NewBallotPaper("bob", ""))
	machine.Vote(models.NewBallotPaper("carol", "Linux"))
	require.NoError(t, store.Write(ctx, machine))

	stored, err := store.Read(ctx)
	require.NoError(t, err)
	require.True(t, machine.Equal(stored))

	// write(read()) leaves the same decoded state
	require.NoError(t, store.Write(ctx, stored))
	again, err := store.Read(ctx)
	require.NoError(t, err)
	require.True(t, stored.Equal(again))
}

func TestFileStoreDocumentFormat(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "machine.json")

	store, err := NewFileStore(ctx, path, newTestMachine(), nil)
	require.NoError(t, err)

	machine := newTestMachine()
	machine.Vote(models.NewBallotPaper("alice", "NixOS"))
	machine.Vote(models.NewBallotPaper("bob", ""))
	require.NoError(t, store.Write(ctx, machine))

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var doc struct {
		Voters     []string `json:"voters"`
		Scoreboard struct {
			Scores        map[string]int `json:"scores"`
			BlankScores   int            `json:"blank_scores"`
			InvalidScores int            `json:"invalid_scores"`
		} `json:"scoreboard"`
	}
	require.NoError(t, json.Unmarshal(data, &doc))
	require.Equal(t, []string{"alice", "bob"}, doc.Voters)
	require.Equal(t, map[string]int{"NixOS": 1, "Windows": 0}, doc.Scoreboard.Scores)
	require.Equal(t, 1, doc.Scoreboard.BlankScores)
	require.Equal(t, 0, doc.Scoreboard.InvalidScores)
}

func TestFileStoreKeepsExistingDocument(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "machine.json")

	store, err := NewFileStore(ctx, path, newTestMachine(), nil)
	require.NoError(t, err)

	machine := newTestMachine()
	machine.Vote(models.NewBallotPaper("alice", "NixOS"))
	require.NoError(t, store.Write(ctx, machine))

	// A second store on the same path resumes the tally
	reopened, err := NewFileStore(ctx, path, newTestMachine(), nil)
	require.NoError(t, err)

	stored, err := reopened.Read(ctx)
	require.NoError(t, err)
	require.True(t, stored.Voters.Has("alice"))
	require.Equal(t, models.Score(1), stored.Scoreboard.Scores["NixOS"])
}

func TestFileStoreRejectsCorruptDocument(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"not json", "{not json"},
		{"empty", ""},
		{"missing scores", `{"voters": [], "scoreboard": {"blank_scores": 0, "invalid_scores": 0}}`},
		{"unknown field", `{"voters": [], "scoreboard": {"scores": {}, "blank_scores": 0, "invalid_scores": 0}, "extra": 1}`},
		{"negative score", `{"voters": [], "scoreboard": {"scores": {"a": -1}, "blank_scores": 0, "invalid_scores": 0}}`},
		{"tally mismatch", `{"voters": ["alice"], "scoreboard": {"scores": {"a": 2}, "blank_scores": 0, "invalid_scores": 0}}`},
		{"duplicate voters", `{"voters": ["alice", "alice"], "scoreboard": {"scores": {"a": 2}, "blank_scores": 0, "invalid_scores": 0}}`},
		{"blank overflows to zero", `{"voters": [], "scoreboard": {"scores": {"A": 0}, "blank_scores": 18446744073709551615, "invalid_scores": 1}}`},
		{"scores overflow to voter count", `{"voters": ["alice"], "scoreboard": {"scores": {"A": 18446744073709551615, "B": 2}, "blank_scores": 0, "invalid_scores": 0}}`},
		{"score too large", `{"voters": [], "scoreboard": {"scores": {"A": 18446744073709551616}, "blank_scores": 0, "invalid_scores": 0}}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "machine.json")
			require.NoError(t, os.WriteFile(path, []byte(tt.content), 0o644))

			_, err := NewFileStore(context.Background(), path, newTestMachine(), nil)
			require.ErrorIs(t, err, ErrInitialization)
			require.ErrorIs(t, err, ErrDecode)
		})
	}
}

func TestFileStoreReadErrors(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "machine.json")

	store, err := NewFileStore(ctx, path, newTestMachine(), nil)
	require.NoError(t, err)

	require.NoError(t, os.WriteFile(path, []byte("garbage"), 0o644))
	_, err = store.Read(ctx)
	require.ErrorIs(t, err, ErrDecode)

	require.NoError(t, os.Remove(path))
	_, err = store.Read(ctx)
	require.ErrorIs(t, err, ErrIO)
}

func TestFileStoreFailedWriteKeepsPreviousDocument(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	path := filepath.Join(dir, "machine.json")

	store, err := NewFileStore(ctx, path, newTestMachine(), nil)
	require.NoError(t, err)

	committed := newTestMachine()
	committed.Vote(models.NewBallotPaper("alice", "NixOS"))
	require.NoError(t, store.Write(ctx, committed))

	// Point a second store at a directory that does not exist: the temp
	// file cannot be created and nothing is renamed.
	broken := &FileStore{path: filepath.Join(dir, "missing", "machine.json")}
	next := committed.Clone()
	next.Vote(models.NewBallotPaper("bob", "Windows"))
	require.ErrorIs(t, broken.Write(ctx, next), ErrIO)

	// Renaming over a directory fails after the temp file was written
	blocked := filepath.Join(dir, "blocked")
	require.NoError(t, os.MkdirAll(filepath.Join(blocked, "child"), 0o755))
	require.ErrorIs(t, (&FileStore{path: blocked}).Write(ctx, next), ErrIO)

	stored, err := store.Read(ctx)
	require.NoError(t, err)
	require.True(t, committed.Equal(stored))

	// No temporary files are left behind
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	for _, entry := range entries {
		require.NotContains(t, entry.Name(), "tmp-")
	}
}

func TestFileStoreLogsResumeToGivenLogger(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "machine.json")

	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))

	_, err := NewFileStore(ctx, path, newTestMachine(), logger)
	require.NoError(t, err)
	require.Empty(t, buf.String(), "a fresh file is not a resume")

	_, err = NewFileStore(ctx, path, newTestMachine(), logger)
	require.NoError(t, err)
	require.Contains(t, buf.String(), "resuming voting machine from file")
	require.Contains(t, buf.String(), path)
}
