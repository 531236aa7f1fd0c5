package store

import (
	"context"
	"database/sql"
	"fmt"
	"io"
	"strings"

	"github.com/starlab-dev/starmatch/internal/dimension"
	"github.com/starlab-dev/starmatch/internal/match"
)

// Catalog reads detailed-run records from the catalog database.
type Catalog struct {
	db       *sql.DB
	table    string
	idColumn string
	schema   *dimension.Schema
}

// NewCatalog wraps an open catalog database. idColumn holds the unique run
// identifier; the per-axis parameter columns come from the schema.
func NewCatalog(db *sql.DB, table, idColumn string, schema *dimension.Schema) *Catalog {
	return &Catalog{db: db, table: table, idColumn: idColumn, schema: schema}
}

// Records loads all catalog runs into memory. The catalog is immutable for
// the duration of a pass, so one load serves every resolution.
func (c *Catalog) Records(ctx context.Context) ([]match.RunRecord, error) {
	cols := make([]string, 0, c.schema.Len()+1)
	cols = append(cols, quoteIdent(c.idColumn))
	for i := 0; i < c.schema.Len(); i++ {
		cols = append(cols, quoteIdent(c.schema.Axis(i).CatalogColumn))
	}

	query := fmt.Sprintf("SELECT %s FROM %s", strings.Join(cols, ", "), quoteIdent(c.table))
	rows, err := c.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query catalog table %s: %w", c.table, err)
	}
	defer rows.Close()

	var records []match.RunRecord
	for rows.Next() {
		rec := match.RunRecord{Coords: c.schema.NewVector()}
		dest := make([]any, 0, c.schema.Len()+1)
		dest = append(dest, &rec.ID)
		for i := range rec.Coords {
			dest = append(dest, &rec.Coords[i])
		}
		if err := rows.Scan(dest...); err != nil {
			return nil, fmt.Errorf("failed to scan catalog row: %w", err)
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read catalog rows: %w", err)
	}

	return records, nil
}

// Show writes the catalog contents to w, one run per line.
func (c *Catalog) Show(ctx context.Context, w io.Writer) error {
	records, err := c.Records(ctx)
	if err != nil {
		return err
	}

	for _, rec := range records {
		fmt.Fprintf(w, "%s %s\n", rec.ID, c.schema.String(rec.Coords))
	}
	return nil
}
