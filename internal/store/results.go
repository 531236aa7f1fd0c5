package store

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/starlab-dev/starmatch/internal/match"
)

// ResultSink persists the final weighted result table. Merging duplicate run
// identifiers is the aggregator's responsibility; the sink writes whatever it
// is handed, one row per (run, weight) pair.
type ResultSink struct {
	db     *sql.DB
	logger *slog.Logger
}

// NewResultSink wraps an open results database.
func NewResultSink(db *sql.DB, logger *slog.Logger) *ResultSink {
	return &ResultSink{db: db, logger: logger}
}

// EnsureTable creates the weighted_runs table if it does not exist. A
// pre-existing table is not an error; it is logged and reused.
func (s *ResultSink) EnsureTable(ctx context.Context) error {
	existing, err := tableExists(ctx, s.db, "weighted_runs")
	if err != nil {
		return err
	}
	if existing {
		s.logger.Info("results table already exists, appending", "table", "weighted_runs")
	}

	if _, err := s.db.ExecContext(ctx, resultsSchema); err != nil {
		return fmt.Errorf("failed to create results table: %w", err)
	}
	return nil
}

// Write persists every (run, weight) pair of the result in one transaction.
func (s *ResultSink) Write(ctx context.Context, result match.WeightedResult) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin results transaction: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx, `INSERT INTO weighted_runs (run_name, weight) VALUES (?, ?)`)
	if err != nil {
		return fmt.Errorf("failed to prepare results insert: %w", err)
	}
	defer stmt.Close()

	for id, weight := range result {
		if _, err := stmt.ExecContext(ctx, id, weight); err != nil {
			return fmt.Errorf("failed to insert result for run %s: %w", id, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit results: %w", err)
	}

	s.logger.Info("results written", "runs", len(result))
	return nil
}

func tableExists(ctx context.Context, db *sql.DB, name string) (bool, error) {
	var n int
	err := db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM sqlite_master WHERE type = 'table' AND name = ?`, name).Scan(&n)
	if err != nil {
		return false, fmt.Errorf("failed to check for table %s: %w", name, err)
	}
	return n > 0, nil
}
