package store

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/starlab-dev/starmatch/internal/dimension"
)

// Population reads simulated binaries from a population database table and
// maps the configured columns onto schema vectors.
type Population struct {
	db     *sql.DB
	table  string
	schema *dimension.Schema
}

// NewPopulation wraps an open population database.
func NewPopulation(db *sql.DB, table string, schema *dimension.Schema) *Population {
	return &Population{db: db, table: table, schema: schema}
}

// FetchAll loads every population member as a physical-space vector in schema
// order. A missing or misnamed column is fatal: without the key columns no
// match can be computed at all.
func (p *Population) FetchAll(ctx context.Context) ([]dimension.Vector, error) {
	cols := make([]string, p.schema.Len())
	for i := 0; i < p.schema.Len(); i++ {
		cols[i] = quoteIdent(p.schema.Axis(i).Column)
	}

	query := fmt.Sprintf("SELECT %s FROM %s", strings.Join(cols, ", "), quoteIdent(p.table))
	rows, err := p.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query population table %s: %w", p.table, err)
	}
	defer rows.Close()

	var members []dimension.Vector
	for rows.Next() {
		member := p.schema.NewVector()
		dest := make([]any, len(member))
		for i := range member {
			dest[i] = &member[i]
		}
		if err := rows.Scan(dest...); err != nil {
			return nil, fmt.Errorf("failed to scan population row: %w", err)
		}
		members = append(members, member)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read population rows: %w", err)
	}

	return members, nil
}

// Count returns the number of members in the population table.
func (p *Population) Count(ctx context.Context) (int, error) {
	var n int
	err := p.db.QueryRowContext(ctx, fmt.Sprintf("SELECT COUNT(*) FROM %s", quoteIdent(p.table))).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("failed to count population: %w", err)
	}
	return n, nil
}

// Columns returns the column names of the population table, in table order.
func (p *Population) Columns(ctx context.Context) ([]string, error) {
	rows, err := p.db.QueryContext(ctx, fmt.Sprintf("SELECT * FROM %s LIMIT 0", quoteIdent(p.table)))
	if err != nil {
		return nil, fmt.Errorf("failed to inspect population table %s: %w", p.table, err)
	}
	defer rows.Close()
	return rows.Columns()
}

// quoteIdent quotes a SQL identifier so configured table and column names
// cannot terminate the statement.
func quoteIdent(name string) string {
	return `"` + strings.ReplaceAll(name, `"`, `""`) + `"`
}
