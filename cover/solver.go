// Copyright 2018, RadiantBlue Technologies, Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//   http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package cover selects a minimal set of shrunk footprints that fully covers
// a target region.
//
// The search is the standard greedy maximum-coverage heuristic: at each step
// the candidate covering the most currently-uncovered area wins. This does
// not guarantee the mathematically minimal scene count, but it empirically
// approaches it and is bounded by the classical logarithmic approximation
// factor relative to optimal. Each selected scene costs significant
// downstream download and preprocessing time, which is why scene count is
// minimized at all.
package cover

import (
	"context"
	"fmt"
	"runtime"
	"sync"
	"time"

	"github.com/venicegeo/bf-s1-mosaic/geometry"
	"github.com/venicegeo/bf-s1-mosaic/model"
)

// Reason classifies why full coverage was not reached
type Reason string

// Failure reasons. BudgetExceeded is distinguished from NotAchievable since
// coverage might still be reachable with a larger budget.
const (
	ReasonNotAchievable  Reason = "coverage_not_achievable"
	ReasonBudgetExceeded Reason = "search_budget_exceeded"
)

// Options tunes a solve run
type Options struct {
	// MaxIterations caps the number of greedy selection steps. Zero means
	// twice the candidate count.
	MaxIterations int

	// Workers bounds the per-iteration parallel gain computation. Zero
	// means the number of available cores.
	Workers int
}

// State is the coverage bookkeeping of a solve run: the union of selected
// footprints and the remaining uncovered residual. It shrinks monotonically
// and is owned exclusively by the in-flight solve call.
type State struct {
	Accumulated geometry.Geometry
	Uncovered   geometry.Geometry
}

// Result is the terminal outcome of a solve run
type Result struct {
	// Covered reports whether the selected footprints fully cover the region
	Covered bool

	// Selected is the ordered sequence of selected granule ids
	Selected []string

	// Residual is the uncovered remainder; empty when Covered
	Residual geometry.Geometry

	// ResidualArea is area(Residual) in squared map units
	ResidualArea float64

	// Reason is set when Covered is false
	Reason Reason

	// Iterations is the number of greedy steps performed
	Iterations int

	// FinalState is the coverage state at termination, for diagnostics
	FinalState State
}

// Solve runs the greedy minimal-cover search of the candidates against the
// region. The time window is not a filter here (the planner filters before
// calling) but feeds the deterministic tie-break: equal gains are broken by
// proximity of the acquisition timestamp to the window start, then by
// ascending granule id. Cancellation is cooperative and checked between
// iterations.
func Solve(ctx context.Context, engine geometry.Engine, region geometry.Geometry,
	candidates []model.ShrunkFootprint, window model.TimeWindow, options Options) (*Result, error) {

	workers := options.Workers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	maxIterations := options.MaxIterations
	if maxIterations <= 0 {
		maxIterations = 2 * len(candidates)
	}

	// Check up front whether full coverage is reachable at all with every
	// candidate combined. This costs one union but reports the true
	// geometric gap instead of a greedy leftover, and skips the search
	// entirely when the candidate set cannot succeed.
	geometries := make([]geometry.Geometry, len(candidates))
	for i, candidate := range candidates {
		geometries[i] = candidate.Geometry
	}
	everything, err := engine.Union(geometries)
	if err != nil {
		return nil, err
	}
	gap, err := engine.Difference(region, everything)
	if err != nil {
		return nil, err
	}
	if gap.Area() > 0 {
		return &Result{
			Covered:      false,
			Residual:     gap,
			ResidualArea: gap.Area(),
			Reason:       ReasonNotAchievable,
			FinalState:   State{Accumulated: engine.Empty(), Uncovered: region},
		}, nil
	}

	state := State{Accumulated: engine.Empty(), Uncovered: region}
	selected := []string{}
	taken := make([]bool, len(candidates))
	iterations := 0

	for state.Uncovered.Area() > 0 && len(selected) < len(candidates) {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if iterations >= maxIterations {
			return &Result{
				Covered:      false,
				Selected:     selected,
				Residual:     state.Uncovered,
				ResidualArea: state.Uncovered.Area(),
				Reason:       ReasonBudgetExceeded,
				Iterations:   iterations,
				FinalState:   state,
			}, nil
		}
		iterations++

		gains, err := computeGains(ctx, engine, state.Uncovered, candidates, taken, workers)
		if err != nil {
			return nil, err
		}

		best := pickBest(candidates, taken, gains, window)
		if best < 0 || gains[best] == 0 {
			// No remaining candidate reduces the uncovered area; full
			// coverage is unreachable with this candidate set.
			break
		}

		taken[best] = true
		selected = append(selected, candidates[best].SourceID)

		if state.Accumulated, err = engine.Union([]geometry.Geometry{state.Accumulated, candidates[best].Geometry}); err != nil {
			return nil, err
		}
		if state.Uncovered, err = engine.Difference(state.Uncovered, candidates[best].Geometry); err != nil {
			return nil, err
		}
	}

	result := Result{
		Selected:     selected,
		Iterations:   iterations,
		FinalState:   state,
		Residual:     state.Uncovered,
		ResidualArea: state.Uncovered.Area(),
	}
	if result.ResidualArea == 0 {
		result.Covered = true
		result.Residual = engine.Empty()
	} else {
		result.Reason = ReasonNotAchievable
	}
	return &result, nil
}

// computeGains calculates, for every unselected candidate, the area it would
// newly cover. The per-candidate computations are independent and run over a
// bounded worker pool; the call joins before returning.
func computeGains(ctx context.Context, engine geometry.Engine, uncovered geometry.Geometry,
	candidates []model.ShrunkFootprint, taken []bool, workers int) ([]float64, error) {

	gains := make([]float64, len(candidates))
	errs := make([]error, len(candidates))
	jobs := make(chan int)

	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				if ctx.Err() != nil {
					continue
				}
				gains[i], errs[i] = engine.IntersectionArea(candidates[i].Geometry, uncovered)
			}
		}()
	}
	for i := range candidates {
		if !taken[i] {
			jobs <- i
		}
	}
	close(jobs)
	wg.Wait()

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	for i, err := range errs {
		if err != nil {
			return nil, fmt.Errorf("gain computation for %v: %v", candidates[i].SourceID, err)
		}
	}
	return gains, nil
}

// pickBest returns the index of the unselected candidate with the largest
// gain. Ties are broken deterministically: smallest absolute difference
// between acquisition timestamp and the window start, then ascending granule
// id. Returns -1 when no unselected candidate remains.
func pickBest(candidates []model.ShrunkFootprint, taken []bool, gains []float64, window model.TimeWindow) int {
	best := -1
	for i := range candidates {
		if taken[i] {
			continue
		}
		if best < 0 || betterCandidate(candidates, gains, i, best, window) {
			best = i
		}
	}
	return best
}

func betterCandidate(candidates []model.ShrunkFootprint, gains []float64, i, j int, window model.TimeWindow) bool {
	if gains[i] != gains[j] {
		return gains[i] > gains[j]
	}
	di := absDuration(candidates[i].AcquiredDate.Sub(window.Start))
	dj := absDuration(candidates[j].AcquiredDate.Sub(window.Start))
	if di != dj {
		return di < dj
	}
	return candidates[i].SourceID < candidates[j].SourceID
}

func absDuration(d time.Duration) time.Duration {
	if d < 0 {
		return -d
	}
	return d
}
