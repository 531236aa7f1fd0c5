package match

import (
	"errors"

	"github.com/starlab-dev/starmatch/internal/dimension"
)

// ErrEmptyCatalog is returned when run resolution is attempted against a
// catalog with no records. No run can be attributed, so the pass aborts.
var ErrEmptyCatalog = errors.New("run catalog is empty")

// RunRecord is one detailed catalog run: its identifier and its recorded
// physical-space parameters, in schema order.
type RunRecord struct {
	ID     string
	Coords dimension.Vector
}

// Resolver maps physical-space coordinates to the closest catalog run.
// The catalog is loaded once per pass and read-only, so a Resolver is safe
// for concurrent use.
type Resolver struct {
	records []RunRecord
}

// NewResolver builds a resolver over the loaded catalog records.
func NewResolver(records []RunRecord) *Resolver {
	return &Resolver{records: records}
}

// ClosestRun returns the identifier of the record with the minimum sum of
// squared per-axis differences from q. Ties keep the earlier record.
func (r *Resolver) ClosestRun(q dimension.Vector) (string, error) {
	if len(r.records) == 0 {
		return "", ErrEmptyCatalog
	}

	bestID := ""
	bestDist := 0.0
	for i, rec := range r.records {
		var dist float64
		for k := range q {
			d := q[k] - rec.Coords[k]
			dist += d * d
		}
		if i == 0 || dist < bestDist {
			bestID, bestDist = rec.ID, dist
		}
	}
	return bestID, nil
}
