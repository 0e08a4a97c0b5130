// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package storage

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/danielhkuo/quickly-tally/models"
)

// DefaultFilePath is used when no storage file is configured.
const DefaultFilePath = "machine.json"

// FileStore keeps the machine in a JSON document on disk. Writes go to a
// temporary file in the same directory which is then renamed over the
// document, so a reader only ever sees a complete document.
type FileStore struct {
	path   string
	logger *slog.Logger
}

// NewFileStore opens the document at path. An existing document is kept and
// must decode; otherwise initial is written as the first document.
func NewFileStore(ctx context.Context, path string, initial *models.VotingMachine, logger *slog.Logger) (*FileStore, error) {
	if path == "" {
		path = DefaultFilePath
	}
	if logger == nil {
		logger = slog.Default()
	}
	s := &FileStore{path: path, logger: logger}

	_, err := os.Stat(path)
	switch {
	case err == nil:
		if _, err := s.Read(ctx); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrInitialization, err)
		}
		s.logger.Info("resuming voting machine from file", "path", path)
	case errors.Is(err, fs.ErrNotExist):
		if err := s.Write(ctx, initial); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrInitialization, err)
		}
	default:
		return nil, fmt.Errorf("%w: failed to stat %s: %w", ErrInitialization, path, err)
	}

	return s, nil
}

// Path returns the location of the document.
func (s *FileStore) Path() string {
	return s.path
}

func (s *FileStore) Read(_ context.Context) (*models.VotingMachine, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to read %s: %w", ErrIO, s.path, err)
	}
	return decodeMachine(bytes.NewReader(data))
}

func (s *FileStore) Write(_ context.Context, machine *models.VotingMachine) error {
	tmpFile, err := os.CreateTemp(filepath.Dir(s.path), "tmp-"+filepath.Base(s.path)+"-")
	if err != nil {
		return fmt.Errorf("%w: failed to write state: %w", ErrIO, err)
	}
	tmpName := tmpFile.Name()

	if err := writeAndClose(tmpFile, machine); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("%w: failed to write state: %w", ErrIO, err)
	}

	if err := os.Rename(tmpName, s.path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("%w: failed to replace %s: %w", ErrIO, s.path, err)
	}

	return nil
}

func writeAndClose(f *os.File, machine *models.VotingMachine) error {
	if err := encodeMachine(f, machine); err != nil {
		f.Close()
		return err
	}
	if err := f.Sync(); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
