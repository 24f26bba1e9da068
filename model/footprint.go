package model

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/venicegeo/bf-s1-mosaic/geometry"
)

// FlightDirection is the satellite orbit direction during acquisition
type FlightDirection string

// Recognized flight directions
const (
	Ascending  FlightDirection = "ASCENDING"
	Descending FlightDirection = "DESCENDING"
)

// ParseFlightDirection normalizes a flight direction string from catalog
// metadata
func ParseFlightDirection(raw string) (FlightDirection, error) {
	switch FlightDirection(raw) {
	case Ascending, Descending:
		return FlightDirection(raw), nil
	}
	return "", fmt.Errorf("Unrecognized flight direction: %q", raw)
}

// Footprint is the published outline of a satellite acquisition as returned
// by the catalog service. The outline is larger than the true usable scene
// due to sensor border noise; see ShrunkFootprint. Immutable after fetch.
type Footprint struct {
	GranuleID       string
	Geometry        json.RawMessage
	AcquiredDate    time.Time
	FlightDirection FlightDirection
	Platform        string
}

// ShrunkFootprint is a Footprint eroded in range direction to exclude the
// border-noise margin. It carries a back-reference to its source granule and
// is never mutated once produced.
type ShrunkFootprint struct {
	SourceID     string
	AcquiredDate time.Time
	Geometry     geometry.Geometry
}

// TimeWindow bounds the catalog search interval
type TimeWindow struct {
	Start time.Time
	End   time.Time
}

// MaxTimeWindow caps the search interval. Sentinel-1 coverage of any region
// is achievable well within two months; longer windows blow up solver
// runtime for no benefit.
const MaxTimeWindow = 60 * 24 * time.Hour

// Validate checks the window invariants
func (w TimeWindow) Validate() error {
	if w.End.Before(w.Start) {
		return fmt.Errorf("End date %v is before start date %v", w.End.Format("2006-01-02"), w.Start.Format("2006-01-02"))
	}
	if w.End.Sub(w.Start) > MaxTimeWindow {
		return fmt.Errorf("Difference between start and end date is more than 60 days, please choose a shorter time range")
	}
	return nil
}

// Contains reports whether t falls inside the window, bounds inclusive
func (w TimeWindow) Contains(t time.Time) bool {
	return !t.Before(w.Start) && !t.After(w.End)
}
