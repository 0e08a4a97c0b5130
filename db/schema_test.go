// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package db

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"

	_ "modernc.org/sqlite"
)

func openTestDB(t *testing.T) *sql.DB {
	t.Helper()
	conn, err := sql.Open(DriverSQLite, filepath.Join(t.TempDir(), "schema.db"))
	if err != nil {
		t.Fatalf("Failed to open database: %v", err)
	}
	t.Cleanup(func() { conn.Close() })
	return conn
}

func TestCreateSchema_Idempotent(t *testing.T) {
	conn := openTestDB(t)
	ctx := context.Background()

	for i := 0; i < 2; i++ {
		if err := CreateSchema(ctx, conn); err != nil {
			t.Fatalf("CreateSchema call %d failed: %v", i+1, err)
		}
	}

	for _, table := range []string{"voter", "candidate_score", "tally"} {
		var count int
		if err := conn.QueryRow(`SELECT COUNT(*) FROM ` + table).Scan(&count); err != nil {
			t.Errorf("Table %s missing: %v", table, err)
		}
	}
}

func TestCreateSchema_Constraints(t *testing.T) {
	conn := openTestDB(t)
	if err := CreateSchema(context.Background(), conn); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name string
		stmt string
	}{
		{"negative score", `INSERT INTO candidate_score (candidate, score) VALUES ('NixOS', -1)`},
		{"second tally row", `INSERT INTO tally (id, blank_score, invalid_score) VALUES (2, 0, 0)`},
		{"negative blank", `INSERT INTO tally (id, blank_score, invalid_score) VALUES (1, -1, 0)`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := conn.Exec(tt.stmt); err == nil {
				t.Errorf("Expected constraint violation for %s", tt.stmt)
			}
		})
	}

	// Duplicate voters are rejected by the primary key
	if _, err := conn.Exec(`INSERT INTO voter (name) VALUES ('alice')`); err != nil {
		t.Fatal(err)
	}
	if _, err := conn.Exec(`INSERT INTO voter (name) VALUES ('alice')`); err == nil {
		t.Error("Expected duplicate voter to be rejected")
	}
}
