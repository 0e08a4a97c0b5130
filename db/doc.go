// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package db handles database schema creation for the SQL storage backend.

# Schema Creation

CreateSchema initializes all required tables:

	if err := db.CreateSchema(ctx, conn); err != nil {
		log.Fatal(err)
	}

Safe to call multiple times - uses IF NOT EXISTS for all tables. The same
statements run on SQLite (modernc.org/sqlite, driver "sqlite") and
PostgreSQL (github.com/lib/pq, driver "postgres").

# Tables

  - voter: the attendance sheet, one row per voter
  - candidate_score: one row per candidate with its score
  - tally: a single row (id = 1) with blank_score and invalid_score

Scores are BIGINT with CHECK (>= 0) constraints.
*/
package db
