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

// Package geometry provides the 2D polygon operations the mosaic planner
// needs, behind an Engine interface so the solver does not commit to a
// particular geometry backend.
package geometry

// Geometry is an opaque planar geometry handle. Values are produced and
// consumed by the Engine that created them and are never mutated.
type Geometry interface {
	// Area returns the areal extent in squared map units. Areas below the
	// engine's epsilon are clipped to zero.
	Area() float64

	// IsEmpty reports whether the geometry covers no area
	IsEmpty() bool

	// GeoJSON serializes the geometry for diagnostics and wire output
	GeoJSON() ([]byte, error)
}

// Engine is the set of polygon operations used by the shrinker, the
// coverage solver and the planner. All operations are pure: inputs are
// never modified, results are fresh values. Operations are planar in the
// coordinate units of the inputs; callers working in geographic lon/lat
// coordinates convert metric distances to degrees before calling.
type Engine interface {
	// ParseGeoJSON parses a GeoJSON geometry document
	ParseGeoJSON(data []byte) (Geometry, error)

	// Empty returns the explicit empty-geometry marker
	Empty() Geometry

	// Union dissolves the given polygons into a single geometry
	Union(polygons []Geometry) (Geometry, error)

	// Intersection returns the shared area of a and b, possibly empty
	Intersection(a, b Geometry) (Geometry, error)

	// IntersectionArea returns area(a ∩ b), clipped to zero below epsilon
	IntersectionArea(a, b Geometry) (float64, error)

	// Difference returns the part of a not covered by b, possibly empty
	Difference(a, b Geometry) (Geometry, error)

	// AsymmetricInwardBuffer erodes the polygon by the given offset vector
	// on each side: the result is the intersection of the polygon
	// translated by +(offsetX, offsetY) and by -(offsetX, offsetY).
	// Erosion happens along the offset direction only; the perpendicular
	// extent is preserved. If the erosion collapses the polygon, the empty
	// marker is returned rather than a degenerate sliver.
	AsymmetricInwardBuffer(polygon Geometry, offsetX, offsetY float64) (Geometry, error)
}
