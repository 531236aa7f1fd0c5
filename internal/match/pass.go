// Package match implements the grid-neighbor matching and weight-accumulation
// engine: coordinate-space transforms, the two neighbor-location strategies,
// minimum-distance run resolution, and the population-wide weighted reduction.
package match

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"runtime"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/starlab-dev/starmatch/internal/dimension"
	"github.com/starlab-dev/starmatch/internal/logging"
)

// InvalidPolicy controls what happens when a member fails the comparison-space
// transform (non-positive value on a log axis).
type InvalidPolicy string

const (
	// SkipInvalid logs the offending member and continues the pass.
	SkipInvalid InvalidPolicy = "skip"
	// AbortOnInvalid aborts the whole pass on the first bad member.
	AbortOnInvalid InvalidPolicy = "abort"
)

// Stats summarizes a completed pass.
type Stats struct {
	Matched int
	Skipped int
}

// Pass orchestrates one matchmaking run over a population. Grid and resolver
// state are read-only for the duration, so members are processed by a pool of
// independent workers, each folding into a local partial result; partials are
// merged by a single writer after all workers finish.
type Pass struct {
	Schema    *dimension.Schema
	Locator   Locator
	Resolver  *Resolver
	Logger    *slog.Logger
	Tracer    *logging.TraceLogger
	Workers   int
	OnInvalid InvalidPolicy
}

// Run matches every member and returns the accumulated weighted result.
// Members are physical-space vectors in schema order.
func (p *Pass) Run(ctx context.Context, members []dimension.Vector) (WeightedResult, Stats, error) {
	workers := p.Workers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	if workers > len(members) && len(members) > 0 {
		workers = len(members)
	}

	p.Logger.Info("start matchmaking pass",
		"members", len(members),
		"workers", workers,
		"dimensions", p.Schema.Len())

	result := make(WeightedResult)
	stats := Stats{}

	var mu sync.Mutex // guards result and stats during the merge step

	jobs := make(chan dimension.Vector)

	g, gctx := errgroup.WithContext(ctx)
	for w := 0; w < workers; w++ {
		g.Go(func() error {
			partial := make(WeightedResult)
			matched, skipped := 0, 0
			for member := range jobs {
				if err := p.matchMember(member, partial); err != nil {
					if errors.Is(err, ErrInvalidValue) && p.OnInvalid != AbortOnInvalid {
						p.Logger.Warn("skipping member", "member", p.Schema.String(member), "err", err)
						skipped++
						continue
					}
					return err
				}
				matched++
			}

			mu.Lock()
			result.Merge(partial)
			stats.Matched += matched
			stats.Skipped += skipped
			mu.Unlock()
			return nil
		})
	}

	g.Go(func() error {
		defer close(jobs)
		for _, member := range members {
			select {
			case jobs <- member:
			case <-gctx.Done():
				return gctx.Err()
			}
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, stats, fmt.Errorf("matchmaking pass: %w", err)
	}

	p.Logger.Info("matchmaking pass complete",
		"matched", stats.Matched,
		"skipped", stats.Skipped,
		"runs", len(result),
		"total_weight", result.Total())
	return result, stats, nil
}

// matchMember resolves one population member and folds its neighbor weights
// into the worker's partial result.
func (p *Pass) matchMember(member dimension.Vector, partial WeightedResult) error {
	query, err := ToComparisonSpace(p.Schema, member)
	if err != nil {
		return err
	}

	neighbors := p.Locator.Neighbors(query)
	event := logging.MatchEvent{
		Member:    p.Schema.String(member),
		Neighbors: make([]logging.NeighborTrace, 0, len(neighbors)),
	}

	for _, n := range neighbors {
		point := ToPhysicalSpace(p.Schema, n.Point)

		runID, err := p.Resolver.ClosestRun(point)
		if err != nil {
			return err
		}

		p.Logger.Log(context.Background(), logging.LevelTrace,
			"neighbor resolved",
			"member", event.Member,
			"neighbor", p.Schema.String(point),
			"run", runID,
			"weight", n.Weight)

		partial.Accumulate(runID, n.Weight)
		event.Neighbors = append(event.Neighbors, logging.NeighborTrace{
			Point:  p.Schema.String(point),
			Run:    runID,
			Weight: n.Weight,
		})
	}

	p.Tracer.Log(event)
	return nil
}
