// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package storage

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	_ "github.com/lib/pq"
	_ "modernc.org/sqlite"

	"github.com/danielhkuo/quickly-tally/db"
	"github.com/danielhkuo/quickly-tally/models"
)

// SQLStore keeps the machine in three tables (see package db). Write
// replaces all rows inside one transaction.
type SQLStore struct {
	db     *sql.DB
	logger *slog.Logger
}

// OpenSQL opens a database for the sqlite or postgres backend.
func OpenSQL(backend, dsn string) (*sql.DB, error) {
	driver := db.DriverSQLite
	if backend == BackendPostgres {
		driver = db.DriverPostgres
	}

	conn, err := sql.Open(driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInitialization, err)
	}

	// An in-memory sqlite database exists per connection
	if driver == db.DriverSQLite {
		conn.SetMaxOpenConns(1)
	}

	if err := conn.Ping(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("%w: database ping failed: %w", ErrInitialization, err)
	}
	return conn, nil
}

// NewSQLStore creates the schema if needed. An empty database is seeded with
// initial; an existing tally is kept and must decode. A nil logger uses
// slog.Default().
func NewSQLStore(ctx context.Context, conn *sql.DB, initial *models.VotingMachine, logger *slog.Logger) (*SQLStore, error) {
	if err := db.CreateSchema(ctx, conn); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInitialization, err)
	}
	if logger == nil {
		logger = slog.Default()
	}
	s := &SQLStore{db: conn, logger: logger}

	var rows int
	if err := conn.QueryRowContext(ctx, `SELECT COUNT(*) FROM tally`).Scan(&rows); err != nil {
		return nil, fmt.Errorf("%w: failed to query tally: %w", ErrInitialization, err)
	}

	if rows == 0 {
		if err := s.Write(ctx, initial); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrInitialization, err)
		}
		return s, nil
	}

	if _, err := s.Read(ctx); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInitialization, err)
	}
	s.logger.Info("resuming voting machine from database")
	return s, nil
}

func (s *SQLStore) Read(ctx context.Context) (*models.VotingMachine, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to begin transaction: %w", ErrIO, err)
	}
	defer tx.Rollback()

	voters, err := queryVoters(ctx, tx)
	if err != nil {
		return nil, err
	}
	scores, err := queryScores(ctx, tx)
	if err != nil {
		return nil, err
	}

	var blank, invalid int64
	err = tx.QueryRowContext(ctx, `
		SELECT blank_score, invalid_score FROM tally WHERE id = 1
	`).Scan(&blank, &invalid)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("%w: tally row missing", ErrDecode)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: failed to query tally: %w", ErrIO, err)
	}
	if blank < 0 || invalid < 0 {
		return nil, fmt.Errorf("%w: negative blank or invalid score", ErrDecode)
	}

	machine := &models.VotingMachine{
		Voters: models.NewAttendanceSheet(voters...),
		Scoreboard: models.Scoreboard{
			Scores:  scores,
			Blank:   models.Score(blank),
			Invalid: models.Score(invalid),
		},
	}
	if err := machine.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDecode, err)
	}
	return machine, nil
}

func queryVoters(ctx context.Context, tx *sql.Tx) ([]models.Voter, error) {
	rows, err := tx.QueryContext(ctx, `SELECT name FROM voter ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to query voters: %w", ErrIO, err)
	}
	defer rows.Close()

	voters := []models.Voter{}
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("%w: failed to scan voter: %w", ErrDecode, err)
		}
		voters = append(voters, models.Voter(name))
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: failed to query voters: %w", ErrIO, err)
	}
	return voters, nil
}

func queryScores(ctx context.Context, tx *sql.Tx) (map[models.Candidate]models.Score, error) {
	rows, err := tx.QueryContext(ctx, `SELECT candidate, score FROM candidate_score`)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to query scores: %w", ErrIO, err)
	}
	defer rows.Close()

	scores := make(map[models.Candidate]models.Score)
	for rows.Next() {
		var candidate string
		var score int64
		if err := rows.Scan(&candidate, &score); err != nil {
			return nil, fmt.Errorf("%w: failed to scan score: %w", ErrDecode, err)
		}
		if score < 0 {
			return nil, fmt.Errorf("%w: negative score for %s", ErrDecode, candidate)
		}
		scores[models.Candidate(candidate)] = models.Score(score)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: failed to query scores: %w", ErrIO, err)
	}
	return scores, nil
}

func (s *SQLStore) Write(ctx context.Context, machine *models.VotingMachine) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("%w: failed to begin transaction: %w", ErrIO, err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM voter`); err != nil {
		return fmt.Errorf("%w: failed to clear voters: %w", ErrIO, err)
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM candidate_score`); err != nil {
		return fmt.Errorf("%w: failed to clear scores: %w", ErrIO, err)
	}

	for _, voter := range machine.Voters.Voters() {
		_, err := tx.ExecContext(ctx, `INSERT INTO voter (name) VALUES ($1)`, string(voter))
		if err != nil {
			return fmt.Errorf("%w: failed to insert voter: %w", ErrIO, err)
		}
	}

	for candidate, score := range machine.Scoreboard.Scores {
		_, err := tx.ExecContext(ctx, `
			INSERT INTO candidate_score (candidate, score) VALUES ($1, $2)
		`, string(candidate), int64(score))
		if err != nil {
			return fmt.Errorf("%w: failed to insert score: %w", ErrIO, err)
		}
	}

	_, err = tx.ExecContext(ctx, `
		INSERT INTO tally (id, blank_score, invalid_score) VALUES (1, $1, $2)
		ON CONFLICT (id) DO UPDATE
		SET blank_score = excluded.blank_score, invalid_score = excluded.invalid_score
	`, int64(machine.Scoreboard.Blank), int64(machine.Scoreboard.Invalid))
	if err != nil {
		return fmt.Errorf("%w: failed to update tally: %w", ErrIO, err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("%w: failed to commit transaction: %w", ErrIO, err)
	}
	return nil
}
