package match

import (
	"fmt"
	"math"

	"github.com/starlab-dev/starmatch/internal/dimension"
	"github.com/starlab-dev/starmatch/internal/grid"
)

// nearZero is the tolerance below which a fractional distance is treated as
// exactly on a corner. A zero factor would make the corner's raw weight
// infinite, so it is substituted with nearZero itself.
const nearZero = 1e-15

// Neighbor is one grid point selected for a query, with its interpolation
// weight. Point is in comparison space.
type Neighbor struct {
	Point  dimension.Vector
	Weight float64
}

// Locator selects weighted grid neighbors for a comparison-space query.
type Locator interface {
	// Neighbors returns either a single neighbor with weight 1.0 or the full
	// 2^D corner set of the enclosing cell with weights summing to 1.0.
	Neighbors(q dimension.Vector) []Neighbor
}

// NewLocator builds the locator named by strategy ("nearest" or "weighted").
func NewLocator(strategy string, g *grid.Grid) (Locator, error) {
	switch strategy {
	case "nearest":
		return &NearestLocator{grid: g}, nil
	case "weighted", "":
		return &WeightedLocator{grid: g}, nil
	default:
		return nil, fmt.Errorf("unknown matching strategy %q (valid: nearest, weighted)", strategy)
	}
}

// NearestLocator picks, for each axis independently, the grid sample closest
// to the query on that axis. The result is a single neighbor with weight 1.0.
//
// This is a per-axis minimization, not a joint nearest-vertex search: the
// returned point need not be the closest grid vertex under a combined metric.
// It is kept as a cheap, explicitly inferior alternative to WeightedLocator.
type NearestLocator struct {
	grid *grid.Grid
}

// Neighbors returns the single per-axis nearest grid point with weight 1.0.
// Ties between two equidistant samples break to the lower index.
func (l *NearestLocator) Neighbors(q dimension.Vector) []Neighbor {
	schema := l.grid.Schema()
	point := schema.NewVector()
	for i := 0; i < schema.Len(); i++ {
		axis := l.grid.Axis(i)
		point[i] = axis[nearestIndex(axis, q[i])]
	}
	return []Neighbor{{Point: point, Weight: 1.0}}
}

// nearestIndex returns the index of the sample minimizing |axis[k]-v|,
// taking the first minimum on ties.
func nearestIndex(axis []float64, v float64) int {
	best := 0
	bestDist := math.Abs(axis[0] - v)
	for k := 1; k < len(axis); k++ {
		if d := math.Abs(axis[k] - v); d < bestDist {
			best, bestDist = k, d
		}
	}
	return best
}

// WeightedLocator returns the full 2^D-corner neighborhood of the grid cell
// containing (or, at the grid's edges, adjacent to) the query, with normalized
// multilinear-interpolation weights. Corners closer to the query receive more
// weight; the weights form a partition of unity.
type WeightedLocator struct {
	grid *grid.Grid
}

// Neighbors enumerates the 2^D corners of the enclosing cell and assigns each
// a normalized weight built from the reciprocal of its per-axis fractional
// distances to the query.
func (l *WeightedLocator) Neighbors(q dimension.Vector) []Neighbor {
	schema := l.grid.Schema()
	dim := schema.Len()

	// Lower corner of the enclosing cell, per axis. The index is clamped so
	// that lower+1 is always a valid sample even when the query sits outside
	// the grid's extremes.
	lower := make([]int, dim)
	for i := 0; i < dim; i++ {
		axis := l.grid.Axis(i)
		idx := nearestIndex(axis, q[i])
		if q[i] < axis[idx] {
			idx--
		}
		if idx < 0 {
			idx = 0
		}
		if idx > len(axis)-2 {
			idx = len(axis) - 2
		}
		lower[i] = idx
	}

	corners := 1 << dim
	neighbors := make([]Neighbor, 0, corners)
	var total float64

	for c := 0; c < corners; c++ {
		point := schema.NewVector()
		product := 1.0
		for i := 0; i < dim; i++ {
			axis := l.grid.Axis(i)
			idx := lower[i] + (c>>i)&1
			point[i] = axis[idx]

			frac := math.Abs(q[i]-axis[idx]) / (axis[lower[i]+1] - axis[lower[i]])
			switch {
			case math.Abs(frac-1) < nearZero:
				product *= 1
			case math.Abs(frac) < nearZero:
				product *= nearZero
			default:
				product *= frac
			}
		}

		w := 1 / product
		total += w
		neighbors = append(neighbors, Neighbor{Point: point, Weight: w})
	}

	for i := range neighbors {
		neighbors[i].Weight /= total
	}
	return neighbors
}
