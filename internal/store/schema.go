package store

// resultsSchema holds the weighted result table. One row per catalog run that
// received weight; accumulation across a pass happens in memory before the
// write, so run_name is unique per pass but deliberately not constrained —
// separate passes may append to the same table.
const resultsSchema = `
CREATE TABLE IF NOT EXISTS weighted_runs (
    run_name TEXT NOT NULL,
    weight REAL NOT NULL
);
`
