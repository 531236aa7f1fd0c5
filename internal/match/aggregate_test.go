package match

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWeightedResult_Accumulate(t *testing.T) {
	r := make(WeightedResult)

	r.Accumulate("run_a", 0.25)
	r.Accumulate("run_b", 0.75)
	r.Accumulate("run_a", 0.5)

	assert.InDelta(t, 0.75, r["run_a"], 1e-12)
	assert.InDelta(t, 0.75, r["run_b"], 1e-12)
	assert.Len(t, r, 2)
}

func TestWeightedResult_MergeOrderIndependent(t *testing.T) {
	pairs := []struct {
		id string
		w  float64
	}{
		{"a", 0.1}, {"b", 0.4}, {"a", 0.5}, {"c", 1.0}, {"b", 0.25},
	}

	forward := make(WeightedResult)
	for _, p := range pairs {
		forward.Accumulate(p.id, p.w)
	}

	backward := make(WeightedResult)
	for i := len(pairs) - 1; i >= 0; i-- {
		backward.Accumulate(pairs[i].id, pairs[i].w)
	}

	// Split into partials merged in the opposite order.
	left, right := make(WeightedResult), make(WeightedResult)
	for i, p := range pairs {
		if i%2 == 0 {
			left.Accumulate(p.id, p.w)
		} else {
			right.Accumulate(p.id, p.w)
		}
	}
	merged := make(WeightedResult)
	merged.Merge(right)
	merged.Merge(left)

	for id := range forward {
		assert.InDelta(t, forward[id], backward[id], 1e-12)
		assert.InDelta(t, forward[id], merged[id], 1e-12)
	}
	assert.Len(t, backward, len(forward))
	assert.Len(t, merged, len(forward))
}

func TestWeightedResult_Total(t *testing.T) {
	r := make(WeightedResult)
	assert.Equal(t, 0.0, r.Total())

	r.Accumulate("a", 0.25)
	r.Accumulate("b", 0.75)
	r.Accumulate("c", 2.0)
	assert.InDelta(t, 3.0, r.Total(), 1e-12)
}
