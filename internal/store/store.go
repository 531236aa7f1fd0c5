// Package store provides the SQLite plumbing around the matchmaking engine:
// the population source, the detailed-run catalog, and the weighted-results
// sink. The engine itself never touches SQL; it consumes loaded vectors and
// records and hands back a finished result table.
package store

import (
	"database/sql"
	"fmt"

	_ "modernc.org/sqlite" // SQLite driver
)

// Open opens a SQLite database at path with the settings used throughout
// starmatch. SQLite works best with a single writer, so the pool is capped
// at one connection.
func Open(path string) (*sql.DB, error) {
	db, err := sql.Open("sqlite", path+"?_pragma=foreign_keys(1)&_pragma=journal_mode(WAL)")
	if err != nil {
		return nil, fmt.Errorf("failed to open database %s: %w", path, err)
	}
	db.SetMaxOpenConns(1)
	return db, nil
}
