package store

import (
	"bufio"
	"context"
	"database/sql"
	"fmt"
	"os"
	"strconv"
	"strings"
)

// compasColumns renames the raw column headers of a COMPAS summary file to the
// short names used in the population database. Headers not in this table are
// rejected so a renamed upstream column surfaces immediately.
var compasColumns = map[string]string{
	"Mass@ZAMS(1)":               "m1i",
	"Mass@ZAMS(2)":               "m2i",
	"Eccentricity@ZAMS":          "ei",
	"SemiMajorAxis@ZAMS":         "ai",
	"Age(SN)":                    "age_pre_cc",
	"Mass_CO_Core@CO(SN)":        "c_core_mass_pre_cc",
	"Eccentricity<SN":            "e_pre_cc",
	"SemiMajorAxis<SN":           "a_pre_cc",
	"Orb_Velocity<SN":            "v_orb_pre_cc",
	"Drawn_Kick_Magnitude(SN)":   "w_kick",
	"Applied_Kick_Magnitude(SN)": "w_kick_applied",
	"SN_Kick_Theta(SN)":          "theta_kick",
	"SN_Kick_Phi(SN)":            "phi_kick",
	"Fallback_Fraction(SN)":      "f_fb",
	"Supernova_State":            "sn_state",
	"Mass(SN)":                   "remnant_mass",
	"Mass(CP)":                   "companion_mass",
	"Stellar_Type(CP)":           "companion_stellar_type",
	"SemiMajorAxis":              "a_pm",
	"Eccentricity":               "e_pm",
	"Orbital_Period":             "porb_pm",
}

// ImportPopulationFile loads a whitespace-delimited COMPAS summary file into
// the population table, replacing any previous contents. The format is two
// banner lines, a header line of raw COMPAS column names, then one numeric
// row per binary.
func ImportPopulationFile(ctx context.Context, db *sql.DB, table, path string) (int, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, fmt.Errorf("failed to open population file: %w", err)
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 1024*1024), 1024*1024)

	// Two banner lines precede the header.
	for i := 0; i < 2; i++ {
		if !scanner.Scan() {
			return 0, fmt.Errorf("population file %s: unexpected end of file in banner", path)
		}
	}

	if !scanner.Scan() {
		return 0, fmt.Errorf("population file %s: missing header line", path)
	}
	rawHeader := strings.Fields(scanner.Text())
	if len(rawHeader) == 0 {
		return 0, fmt.Errorf("population file %s: empty header line", path)
	}

	columns := make([]string, len(rawHeader))
	for i, raw := range rawHeader {
		short, ok := compasColumns[raw]
		if !ok {
			return 0, fmt.Errorf("population file %s: unknown column %q", path, raw)
		}
		columns[i] = short
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("failed to begin import transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, fmt.Sprintf("DROP TABLE IF EXISTS %s", quoteIdent(table))); err != nil {
		return 0, fmt.Errorf("failed to drop old population table: %w", err)
	}

	defs := make([]string, len(columns))
	marks := make([]string, len(columns))
	for i, col := range columns {
		defs[i] = quoteIdent(col) + " REAL"
		marks[i] = "?"
	}
	createStmt := fmt.Sprintf("CREATE TABLE %s (%s)", quoteIdent(table), strings.Join(defs, ", "))
	if _, err := tx.ExecContext(ctx, createStmt); err != nil {
		return 0, fmt.Errorf("failed to create population table: %w", err)
	}

	quoted := make([]string, len(columns))
	for i, col := range columns {
		quoted[i] = quoteIdent(col)
	}
	insert, err := tx.PrepareContext(ctx, fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s)",
		quoteIdent(table), strings.Join(quoted, ", "), strings.Join(marks, ", ")))
	if err != nil {
		return 0, fmt.Errorf("failed to prepare population insert: %w", err)
	}
	defer insert.Close()

	count := 0
	line := 3
	for scanner.Scan() {
		line++
		fields := strings.Fields(scanner.Text())
		if len(fields) == 0 {
			continue
		}
		if len(fields) != len(columns) {
			return 0, fmt.Errorf("population file %s line %d: %d values, expected %d", path, line, len(fields), len(columns))
		}

		values := make([]any, len(fields))
		for i, field := range fields {
			v, err := strconv.ParseFloat(field, 64)
			if err != nil {
				return 0, fmt.Errorf("population file %s line %d: bad value %q: %w", path, line, field, err)
			}
			values[i] = v
		}

		if _, err := insert.ExecContext(ctx, values...); err != nil {
			return 0, fmt.Errorf("failed to insert population row: %w", err)
		}
		count++
	}
	if err := scanner.Err(); err != nil {
		return 0, fmt.Errorf("failed to read population file: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("failed to commit population import: %w", err)
	}

	return count, nil
}
