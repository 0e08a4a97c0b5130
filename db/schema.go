// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package db

import (
	"context"
	"database/sql"
	"fmt"
)

// Driver names registered by the sqlite and postgres packages
const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

// CreateSchema creates all tables needed for the application.
// Safe to call multiple times - uses IF NOT EXISTS.
func CreateSchema(ctx context.Context, db *sql.DB) error {
	for _, stmt := range schema {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("failed to create schema: %w", err)
		}
	}

	return nil
}

// One statement per entry: lib/pq and modernc sqlite disagree on
// multi-statement Exec with no arguments.
var schema = []string{
	// Attendance sheet
	`CREATE TABLE IF NOT EXISTS voter (
    name TEXT PRIMARY KEY
)`,

	// Per-candidate scores; the rows are the fixed candidate list
	`CREATE TABLE IF NOT EXISTS candidate_score (
    candidate TEXT PRIMARY KEY,
    score BIGINT NOT NULL DEFAULT 0 CHECK (score >= 0)
)`,

	// Blank and invalid counters, single row
	`CREATE TABLE IF NOT EXISTS tally (
    id INTEGER PRIMARY KEY CHECK (id = 1),
    blank_score BIGINT NOT NULL DEFAULT 0 CHECK (blank_score >= 0),
    invalid_score BIGINT NOT NULL DEFAULT 0 CHECK (invalid_score >= 0)
)`,
}
