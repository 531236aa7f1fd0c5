package match

import (
	"bufio"
	"context"
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/starlab-dev/starmatch/internal/dimension"
	"github.com/starlab-dev/starmatch/internal/grid"
	"github.com/starlab-dev/starmatch/internal/logging"
)

// passFixture wires a small but complete pass: one log axis, one linear axis,
// a 3x3 grid, and a catalog with one run per grid column.
func passFixture(t *testing.T, strategy string, policy InvalidPolicy) *Pass {
	t.Helper()

	schema, err := dimension.NewSchema([]dimension.Axis{
		{Name: "m", Column: "mass", CatalogColumn: "mi", Log: true},
		{Name: "ecc", Column: "e_pm", CatalogColumn: "ei"},
	})
	require.NoError(t, err)

	g, err := grid.Load(schema, map[string][]float64{
		"m":   {1, 10, 100},
		"ecc": {0, 0.5, 1},
	})
	require.NoError(t, err)

	locator, err := NewLocator(strategy, g)
	require.NoError(t, err)

	resolver := NewResolver([]RunRecord{
		{ID: "low", Coords: dimension.Vector{1, 0.2}},
		{ID: "mid", Coords: dimension.Vector{10, 0.5}},
		{ID: "high", Coords: dimension.Vector{100, 0.8}},
	})

	return &Pass{
		Schema:    schema,
		Locator:   locator,
		Resolver:  resolver,
		Logger:    logging.NewLogger("info", io.Discard),
		Workers:   4,
		OnInvalid: policy,
	}
}

func members() []dimension.Vector {
	return []dimension.Vector{
		{2, 0.1},
		{9, 0.55},
		{40, 0.3},
		{75, 0.9},
		{1, 0},
		{100, 1},
		{5.5, 0.62},
	}
}

func TestPass_WeightConservation(t *testing.T) {
	pass := passFixture(t, "weighted", SkipInvalid)

	result, stats, err := pass.Run(context.Background(), members())
	require.NoError(t, err)

	assert.Equal(t, len(members()), stats.Matched)
	assert.Equal(t, 0, stats.Skipped)

	// Each member's corner weights sum to one, so the population contributes
	// exactly one unit of weight per member.
	assert.InDelta(t, float64(len(members())), result.Total(), 1e-9)
}

func TestPass_NearestStrategy(t *testing.T) {
	pass := passFixture(t, "nearest", SkipInvalid)

	result, stats, err := pass.Run(context.Background(), members())
	require.NoError(t, err)

	assert.Equal(t, len(members()), stats.Matched)
	assert.InDelta(t, float64(len(members())), result.Total(), 1e-9)
}

func TestPass_Idempotent(t *testing.T) {
	pass := passFixture(t, "weighted", SkipInvalid)

	first, _, err := pass.Run(context.Background(), members())
	require.NoError(t, err)
	second, _, err := pass.Run(context.Background(), members())
	require.NoError(t, err)

	require.Len(t, second, len(first))
	for id, w := range first {
		assert.InDelta(t, w, second[id], 1e-12, "run %s", id)
	}
}

func TestPass_SkipsInvalidMembers(t *testing.T) {
	pass := passFixture(t, "weighted", SkipInvalid)

	bad := append(members(), dimension.Vector{-3, 0.5}, dimension.Vector{0, 0.5})
	result, stats, err := pass.Run(context.Background(), bad)
	require.NoError(t, err)

	assert.Equal(t, len(members()), stats.Matched)
	assert.Equal(t, 2, stats.Skipped)
	assert.InDelta(t, float64(len(members())), result.Total(), 1e-9)
}

func TestPass_AbortsOnInvalidMember(t *testing.T) {
	pass := passFixture(t, "weighted", AbortOnInvalid)

	bad := append(members(), dimension.Vector{-3, 0.5})
	_, _, err := pass.Run(context.Background(), bad)
	require.ErrorIs(t, err, ErrInvalidValue)
}

func TestPass_EmptyCatalogAborts(t *testing.T) {
	pass := passFixture(t, "weighted", SkipInvalid)
	pass.Resolver = NewResolver(nil)

	_, _, err := pass.Run(context.Background(), members())
	require.ErrorIs(t, err, ErrEmptyCatalog)
}

func TestPass_NoMembers(t *testing.T) {
	pass := passFixture(t, "weighted", SkipInvalid)

	result, stats, err := pass.Run(context.Background(), nil)
	require.NoError(t, err)
	assert.Empty(t, result)
	assert.Equal(t, Stats{}, stats)
}

func TestPass_TraceRecordsNeighborWeights(t *testing.T) {
	pass := passFixture(t, "weighted", SkipInvalid)

	dir := t.TempDir()
	tracer := logging.NewTraceLogger(dir, "trace")
	require.NotNil(t, tracer)
	pass.Tracer = tracer

	_, _, err := pass.Run(context.Background(), members())
	require.NoError(t, err)
	tracer.Close()

	f, err := os.Open(filepath.Join(dir, "matches.jsonl"))
	require.NoError(t, err)
	defer f.Close()

	// One event per member, each carrying every corner with its resolved
	// run and weight; a member's weights sum to one.
	lines := 0
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		lines++
		var event logging.MatchEvent
		require.NoError(t, json.Unmarshal(scanner.Bytes(), &event))
		require.Len(t, event.Neighbors, 4, "member %s", event.Member)

		var sum float64
		for _, n := range event.Neighbors {
			assert.NotEmpty(t, n.Run)
			assert.NotEmpty(t, n.Point)
			sum += n.Weight
		}
		assert.InDelta(t, 1.0, sum, 1e-9, "member %s", event.Member)
	}
	require.NoError(t, scanner.Err())
	assert.Equal(t, len(members()), lines)
}

func TestPass_CancelledContext(t *testing.T) {
	pass := passFixture(t, "weighted", SkipInvalid)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	// A large member list guarantees the feeder observes cancellation.
	many := make([]dimension.Vector, 0, 10000)
	for i := 0; i < 10000; i++ {
		many = append(many, dimension.Vector{2, 0.1})
	}

	_, _, err := pass.Run(ctx, many)
	require.ErrorIs(t, err, context.Canceled)
}
