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

// Package mosaic orchestrates the coverage-planning pipeline: filter raw
// footprints, shrink them, solve for a minimal cover, and hand the selected
// granules to the download collaborator. Any fatal condition halts the
// pipeline before the download begins, preventing partial downloads.
package mosaic

import (
	"context"
	"errors"
	"fmt"

	"github.com/venicegeo/bf-s1-mosaic/cover"
	"github.com/venicegeo/bf-s1-mosaic/download"
	"github.com/venicegeo/bf-s1-mosaic/geometry"
	"github.com/venicegeo/bf-s1-mosaic/model"
	"github.com/venicegeo/bf-s1-mosaic/shrink"
	"github.com/venicegeo/bf-s1-mosaic/util"
)

// Context is the context for a mosaic planning operation
type Context struct {
	Engine        geometry.Engine
	Downloader    download.Downloader
	DownloadDir   string
	MarginMeters  float64
	MaxIterations int
	Workers       int
	sessionID     string
}

// AppName returns the overall application name
func (c *Context) AppName() string {
	return "bf-s1-mosaic"
}

// SessionID returns a session ID, creating one if needed
func (c *Context) SessionID() string {
	if c.sessionID == "" {
		c.sessionID = util.NewSessionID()
	}
	return c.sessionID
}

// LogRootDir returns an empty string
func (c *Context) LogRootDir() string {
	return ""
}

// Pipeline stages, logged as the planner advances
const (
	stageFiltering = "Filtering"
	stageShrinking = "Shrinking"
	stageSolving   = "Solving"
	stageHandoff   = "Handoff"
	stageAbort     = "Abort"
)

// CoverageError reports that full coverage was not reached. It carries
// enough geometric detail for the user to widen the time window or region.
type CoverageError struct {
	Reason          cover.Reason
	ResidualGeoJSON []byte
	ResidualArea    float64
}

// Error implements the error interface
func (e *CoverageError) Error() string {
	if e.Reason == cover.ReasonBudgetExceeded {
		return fmt.Sprintf("search budget exceeded before full coverage was reached (uncovered area %v); retry with a larger budget", e.ResidualArea)
	}
	return fmt.Sprintf("no full coverage can be achieved with the available scenes (uncovered area %v); try again with a wider time range", e.ResidualArea)
}

// Result is the outcome of a planning run: the solver result plus the
// shrunk footprints backing the selected granule ids, in selection order
type Result struct {
	*cover.Result
	SelectedFootprints []model.ShrunkFootprint
	Downloads          []download.Status
}

// Planner drives the coverage-planning pipeline. A Planner may be reused;
// each Plan call owns its own coverage state.
type Planner struct {
	Context *Context

	lastState *cover.State
}

// NewPlanner creates a Planner using defaults from the environment for any
// unset context field
func NewPlanner(planContext *Context) *Planner {
	if planContext.Engine == nil {
		planContext.Engine = geometry.NewEngine()
	}
	if planContext.MarginMeters == 0 {
		planContext.MarginMeters = util.GetShrinkMarginMeters()
	}
	if planContext.MaxIterations == 0 {
		planContext.MaxIterations = util.GetSolverMaxIterations()
	}
	return &Planner{Context: planContext}
}

// LastCoverageState returns the final coverage state of the most recent Plan
// call, for diagnostics. Nil before the first call.
func (p *Planner) LastCoverageState() *cover.State {
	return p.lastState
}

// Plan filters the raw footprints to the time window and region, shrinks
// them, runs the coverage solver, and on success hands the selected granule
// ids to the download collaborator (when one is configured). On failure the
// returned error is a *CoverageError carrying the uncovered residual.
//
// No retries are automatic: a wider time window means a larger candidate set
// and a longer solve, so that tradeoff is an explicit caller decision.
func (p *Planner) Plan(ctx context.Context, region geometry.Geometry, window model.TimeWindow, rawFootprints []model.Footprint) (*Result, error) {
	c := p.Context
	if err := window.Validate(); err != nil {
		return nil, err
	}

	p.logStage(stageFiltering, fmt.Sprintf("%d raw footprint(s)", len(rawFootprints)))
	candidates, err := p.filter(region, window, rawFootprints)
	if err != nil {
		return nil, err
	}
	if len(candidates) == 0 {
		return nil, util.LogSimpleErr(c, fmt.Sprintf("No input scenes found between %v and %v",
			window.Start.Format("2006-01-02"), window.End.Format("2006-01-02")), errors.New("empty candidate set"))
	}

	p.logStage(stageShrinking, fmt.Sprintf("%d candidate(s), margin %vm", len(candidates), c.MarginMeters))
	shrunk, err := p.shrinkAll(candidates)
	if err != nil {
		return nil, err
	}
	if len(shrunk) == 0 {
		return nil, util.LogSimpleErr(c, "All candidate footprints collapsed under the shrink margin.", shrink.ErrDegenerateFootprint)
	}

	p.logStage(stageSolving, fmt.Sprintf("%d shrunk candidate(s)", len(shrunk)))
	solved, err := cover.Solve(ctx, c.Engine, region, shrunk, window, cover.Options{
		MaxIterations: c.MaxIterations,
		Workers:       c.Workers,
	})
	if err != nil {
		return nil, err
	}
	p.lastState = &solved.FinalState

	result := &Result{Result: solved}
	byID := make(map[string]model.ShrunkFootprint, len(shrunk))
	for _, candidate := range shrunk {
		byID[candidate.SourceID] = candidate
	}
	for _, id := range solved.Selected {
		result.SelectedFootprints = append(result.SelectedFootprints, byID[id])
	}

	if !solved.Covered {
		residualGeoJSON, gjErr := solved.Residual.GeoJSON()
		if gjErr != nil {
			util.LogSimpleErr(c, "Could not serialize the uncovered residual geometry.", gjErr)
		}
		p.logStage(stageAbort, fmt.Sprintf("uncovered area %v, reason %v", solved.ResidualArea, solved.Reason))
		return result, &CoverageError{
			Reason:          solved.Reason,
			ResidualGeoJSON: residualGeoJSON,
			ResidualArea:    solved.ResidualArea,
		}
	}

	util.LogInfo(c, fmt.Sprintf("Scene(s) %v cover the target region.", solved.Selected))
	if c.Downloader != nil {
		p.logStage(stageHandoff, fmt.Sprintf("%d granule(s)", len(solved.Selected)))
		statuses, err := c.Downloader.Download(ctx, solved.Selected, c.DownloadDir)
		if err != nil {
			return result, err
		}
		result.Downloads = statuses
		for _, status := range statuses {
			if status.Err != nil {
				return result, status.Err
			}
		}
	}
	return result, nil
}

// filter keeps footprints acquired inside the window whose geometry
// intersects the region
func (p *Planner) filter(region geometry.Geometry, window model.TimeWindow, rawFootprints []model.Footprint) ([]model.Footprint, error) {
	c := p.Context
	candidates := make([]model.Footprint, 0, len(rawFootprints))
	for _, footprint := range rawFootprints {
		if !window.Contains(footprint.AcquiredDate) {
			continue
		}
		outline, err := c.Engine.ParseGeoJSON(footprint.Geometry)
		if err != nil {
			return nil, util.LogSimpleErr(c, fmt.Sprintf("Footprint %v has unparseable geometry.", footprint.GranuleID), err)
		}
		overlap, err := c.Engine.IntersectionArea(outline, region)
		if err != nil {
			return nil, err
		}
		if overlap > 0 {
			candidates = append(candidates, footprint)
		}
	}
	return candidates, nil
}

// shrinkAll shrinks every candidate in parallel, discarding degenerate
// footprints with a logged warning. Any other shrink failure is fatal.
func (p *Planner) shrinkAll(candidates []model.Footprint) ([]model.ShrunkFootprint, error) {
	c := p.Context
	outcomes := shrink.ShrinkAll(c.Engine, candidates, c.MarginMeters, c.Workers)

	shrunk := make([]model.ShrunkFootprint, 0, len(outcomes))
	for _, outcome := range outcomes {
		if outcome.Err != nil {
			if errors.Is(outcome.Err, shrink.ErrDegenerateFootprint) {
				util.LogAlert(c, fmt.Sprintf("Excluding degenerate footprint: %v", outcome.Err))
				continue
			}
			return nil, util.LogSimpleErr(c, "Footprint correction failed.", outcome.Err)
		}
		shrunk = append(shrunk, outcome.Footprint)
	}
	return shrunk, nil
}

func (p *Planner) logStage(stage, message string) {
	util.LogAudit(p.Context, util.LogAuditInput{
		Actor: "mosaic/Planner", Action: stage, Actee: "pipeline", Message: message, Severity: util.INFO,
	})
}
