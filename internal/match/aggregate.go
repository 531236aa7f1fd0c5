package match

// WeightedResult maps a catalog run identifier to the total matching weight
// attributed to it across the population. Created empty at the start of a
// pass, mutated only through Accumulate and Merge, then handed read-only to
// the results sink.
type WeightedResult map[string]float64

// Accumulate adds weight to runID, inserting it if absent. Accumulation is
// associative and commutative over arrival order, so members may be processed
// in any order or in parallel and partial results merged in any order.
func (r WeightedResult) Accumulate(runID string, weight float64) {
	r[runID] += weight
}

// Merge folds a partial result into r.
func (r WeightedResult) Merge(partial WeightedResult) {
	for id, w := range partial {
		r[id] += w
	}
}

// Total returns the sum of all accumulated weights. For a weighted-strategy
// pass this equals the number of members processed, since each member's
// corner weights sum to one.
func (r WeightedResult) Total() float64 {
	var total float64
	for _, w := range r {
		total += w
	}
	return total
}
