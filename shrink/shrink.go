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

// Package shrink corrects raw catalog footprints for sensor border noise by
// eroding them in range direction, perpendicular to the orbit track.
package shrink

import (
	"errors"
	"fmt"
	"runtime"
	"sync"

	"github.com/venicegeo/bf-s1-mosaic/geometry"
	"github.com/venicegeo/bf-s1-mosaic/model"
)

// ErrDegenerateFootprint indicates a footprint that collapses to zero area
// under the shrink margin. Callers must exclude such footprints from
// coverage candidacy.
var ErrDegenerateFootprint = errors.New("footprint collapses under the shrink margin")

// Shrink erodes a footprint by marginMeters on each side in range direction.
// Footprint coordinates are geographic lon/lat; the metric margin is
// converted to a degree displacement at the footprint's mean latitude. Pure
// function of its inputs; a margin of zero returns the source geometry
// unchanged.
func Shrink(engine geometry.Engine, footprint model.Footprint, marginMeters float64) (model.ShrunkFootprint, error) {
	result := model.ShrunkFootprint{
		SourceID:     footprint.GranuleID,
		AcquiredDate: footprint.AcquiredDate,
	}
	if marginMeters < 0 {
		return result, fmt.Errorf("footprint %v: negative shrink margin %v", footprint.GranuleID, marginMeters)
	}

	polygon, err := engine.ParseGeoJSON(footprint.Geometry)
	if err != nil {
		return result, fmt.Errorf("footprint %v: %v", footprint.GranuleID, err)
	}
	if marginMeters == 0 {
		result.Geometry = polygon
		return result, nil
	}

	ring, err := exteriorRing(footprint.Geometry)
	if err != nil {
		return result, fmt.Errorf("footprint %v: %v", footprint.GranuleID, err)
	}
	heading, err := estimateTrackHeading(ring)
	if err != nil {
		return result, fmt.Errorf("footprint %v: %v", footprint.GranuleID, err)
	}
	offsetX, offsetY, err := rangeOffsetDegrees(ring, heading, marginMeters)
	if err != nil {
		return result, fmt.Errorf("footprint %v: %v", footprint.GranuleID, err)
	}

	eroded, err := engine.AsymmetricInwardBuffer(polygon, offsetX, offsetY)
	if err != nil {
		return result, fmt.Errorf("footprint %v: %v", footprint.GranuleID, err)
	}
	if eroded.IsEmpty() {
		return result, fmt.Errorf("footprint %v: %w", footprint.GranuleID, ErrDegenerateFootprint)
	}

	result.Geometry = eroded
	return result, nil
}

// Outcome is the per-footprint result of a ShrinkAll run
type Outcome struct {
	Footprint model.ShrunkFootprint
	Err       error
}

// ShrinkAll shrinks every footprint over a worker pool. Each input is
// immutable and each output is a fresh value, so the work is parallel per
// footprint. Outcomes are returned in input order.
func ShrinkAll(engine geometry.Engine, footprints []model.Footprint, marginMeters float64, workers int) []Outcome {
	if workers <= 0 {
		workers = runtime.NumCPU()
	}

	outcomes := make([]Outcome, len(footprints))
	jobs := make(chan int)

	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				shrunk, err := Shrink(engine, footprints[i], marginMeters)
				outcomes[i] = Outcome{Footprint: shrunk, Err: err}
			}
		}()
	}
	for i := range footprints {
		jobs <- i
	}
	close(jobs)
	wg.Wait()

	return outcomes
}
