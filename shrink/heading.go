package shrink

import (
	"encoding/json"
	"fmt"
	"math"
)

type rawGeometry struct {
	Type        string          `json:"type"`
	Coordinates json.RawMessage `json:"coordinates"`
}

// exteriorRing extracts the outer ring of a GeoJSON Polygon or MultiPolygon.
// For MultiPolygons the largest part wins; catalog footprints are dissolved
// into a single outline before shrinking, so multiple parts only occur for
// scenes crossing a projection seam.
func exteriorRing(data []byte) ([][]float64, error) {
	var g rawGeometry
	if err := json.Unmarshal(data, &g); err != nil {
		return nil, fmt.Errorf("Could not parse footprint geometry: %v", err)
	}
	switch g.Type {
	case "Polygon":
		var rings [][][]float64
		if err := json.Unmarshal(g.Coordinates, &rings); err != nil {
			return nil, err
		}
		if len(rings) == 0 || len(rings[0]) < 4 {
			return nil, fmt.Errorf("Footprint polygon has no usable exterior ring")
		}
		return rings[0], nil
	case "MultiPolygon":
		var polygons [][][][]float64
		if err := json.Unmarshal(g.Coordinates, &polygons); err != nil {
			return nil, err
		}
		var best [][]float64
		for _, rings := range polygons {
			if len(rings) > 0 && len(rings[0]) > len(best) {
				best = rings[0]
			}
		}
		if len(best) < 4 {
			return nil, fmt.Errorf("Footprint multipolygon has no usable exterior ring")
		}
		return best, nil
	}
	return nil, fmt.Errorf("Unsupported footprint geometry type: %q", g.Type)
}

// estimateTrackHeading derives the orbit track direction from the footprint
// corner geometry: the two northernmost and the two southernmost corners are
// paired up, and the heading is the bearing from the southern pair midpoint
// to the northern pair midpoint. Returned as a compass bearing in degrees.
func estimateTrackHeading(ring [][]float64) (float64, error) {
	if len(ring) < 4 {
		return 0, fmt.Errorf("Footprint ring has too few vertices: %d", len(ring))
	}

	var (
		north = ring[0]
		south = ring[0]
		east  = ring[0]
		west  = ring[0]
	)
	for _, vertex := range ring {
		if len(vertex) < 2 {
			return 0, fmt.Errorf("Footprint ring contains a malformed vertex")
		}
		if vertex[1] > north[1] {
			north = vertex
		}
		if vertex[1] < south[1] {
			south = vertex
		}
		if vertex[0] > east[0] {
			east = vertex
		}
		if vertex[0] < west[0] {
			west = vertex
		}
	}

	// Which of the east/west corners belongs to the northern pair depends
	// on the orbit direction
	north2, south2 := east, west
	if west[1] > east[1] {
		north2, south2 = west, east
	}

	nmx := (north[0] + north2[0]) / 2
	nmy := (north[1] + north2[1]) / 2
	smx := (south[0] + south2[0]) / 2
	smy := (south[1] + south2[1]) / 2

	dx := nmx - smx
	dy := nmy - smy
	if dx == 0 && dy == 0 {
		return 0, fmt.Errorf("Footprint corner midpoints coincide, cannot derive heading")
	}

	bearing := math.Atan2(dx, dy) * 180.0 / math.Pi
	if bearing < 0 {
		bearing += 360
	}
	return bearing, nil
}

// metersPerDegreeLat approximates the meridian arc length of one degree of
// latitude on the WGS84 ellipsoid
const metersPerDegreeLat = 111320.0

// rangeOffsetDegrees converts the metric range-direction margin into a
// lon/lat displacement vector perpendicular to the track heading. Footprint
// coordinates are geographic, so a meter spans more degrees of longitude the
// farther the scene lies from the equator; the conversion uses the mean
// latitude of the footprint ring.
func rangeOffsetDegrees(ring [][]float64, headingDegrees, marginMeters float64) (float64, float64, error) {
	var latSum float64
	for _, vertex := range ring {
		latSum += vertex[1]
	}
	meanLat := latSum / float64(len(ring))

	lonScale := metersPerDegreeLat * math.Cos(meanLat*math.Pi/180)
	if lonScale < 1 {
		return 0, 0, fmt.Errorf("Footprint latitude %v is too close to a pole", meanLat)
	}

	theta := headingDegrees * math.Pi / 180
	offsetX := marginMeters * math.Cos(theta) / lonScale
	offsetY := marginMeters * -math.Sin(theta) / metersPerDegreeLat
	return offsetX, offsetY, nil
}
