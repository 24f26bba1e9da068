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

package geometry

import (
	"encoding/json"
	"fmt"

	"github.com/peterstace/simplefeatures/geom"
)

// DefaultEpsilon is the area (in squared map units) below which results are
// treated as numerical noise and clipped to zero
const DefaultEpsilon = 1e-6

type sfGeometry struct {
	g       geom.Geometry
	epsilon float64
}

// Area implements the Geometry interface
func (s sfGeometry) Area() float64 {
	area := s.g.Area()
	if area < s.epsilon {
		return 0
	}
	return area
}

// IsEmpty implements the Geometry interface
func (s sfGeometry) IsEmpty() bool {
	return s.g.IsEmpty() || s.g.Area() < s.epsilon
}

// GeoJSON implements the Geometry interface
func (s sfGeometry) GeoJSON() ([]byte, error) {
	return json.Marshal(s.g)
}

type sfEngine struct {
	epsilon float64
}

// NewEngine returns an Engine backed by the simplefeatures geometry library,
// using the default precision epsilon
func NewEngine() Engine {
	return NewEngineWithEpsilon(DefaultEpsilon)
}

// NewEngineWithEpsilon returns a simplefeatures-backed Engine with a custom
// area epsilon
func NewEngineWithEpsilon(epsilon float64) Engine {
	return sfEngine{epsilon: epsilon}
}

func (e sfEngine) wrap(g geom.Geometry) Geometry {
	return sfGeometry{g: g, epsilon: e.epsilon}
}

func (e sfEngine) unwrap(g Geometry) (geom.Geometry, error) {
	if sf, ok := g.(sfGeometry); ok {
		return sf.g, nil
	}
	return geom.Geometry{}, fmt.Errorf("Geometry %T was not produced by this engine", g)
}

// ParseGeoJSON implements the Engine interface
func (e sfEngine) ParseGeoJSON(data []byte) (Geometry, error) {
	g, err := geom.UnmarshalGeoJSON(data)
	if err != nil {
		return nil, fmt.Errorf("Could not parse GeoJSON geometry: %v", err)
	}
	return e.wrap(g), nil
}

// Empty implements the Engine interface
func (e sfEngine) Empty() Geometry {
	return e.wrap(geom.Geometry{})
}

// Union implements the Engine interface
func (e sfEngine) Union(polygons []Geometry) (Geometry, error) {
	result := geom.Geometry{}
	for _, polygon := range polygons {
		g, err := e.unwrap(polygon)
		if err != nil {
			return nil, err
		}
		result, err = geom.Union(result, g)
		if err != nil {
			return nil, fmt.Errorf("Union failed: %v", err)
		}
	}
	return e.wrap(result), nil
}

// Intersection implements the Engine interface
func (e sfEngine) Intersection(a, b Geometry) (Geometry, error) {
	ga, err := e.unwrap(a)
	if err != nil {
		return nil, err
	}
	gb, err := e.unwrap(b)
	if err != nil {
		return nil, err
	}
	result, err := geom.Intersection(ga, gb)
	if err != nil {
		return nil, fmt.Errorf("Intersection failed: %v", err)
	}
	return e.clip(result), nil
}

// IntersectionArea implements the Engine interface
func (e sfEngine) IntersectionArea(a, b Geometry) (float64, error) {
	intersection, err := e.Intersection(a, b)
	if err != nil {
		return 0, err
	}
	return intersection.Area(), nil
}

// Difference implements the Engine interface
func (e sfEngine) Difference(a, b Geometry) (Geometry, error) {
	ga, err := e.unwrap(a)
	if err != nil {
		return nil, err
	}
	gb, err := e.unwrap(b)
	if err != nil {
		return nil, err
	}
	result, err := geom.Difference(ga, gb)
	if err != nil {
		return nil, fmt.Errorf("Difference failed: %v", err)
	}
	return e.clip(result), nil
}

// AsymmetricInwardBuffer implements the Engine interface. The erosion is the
// intersection of the polygon translated by +offset and -offset: any point
// within the offset length of the polygon boundary in the offset direction
// drops out, while the perpendicular extent is untouched.
func (e sfEngine) AsymmetricInwardBuffer(polygon Geometry, offsetX, offsetY float64) (Geometry, error) {
	if offsetX == 0 && offsetY == 0 {
		return polygon, nil
	}
	g, err := e.unwrap(polygon)
	if err != nil {
		return nil, err
	}

	shifted := func(dx, dy float64) geom.Geometry {
		return g.TransformXY(func(xy geom.XY) geom.XY {
			return geom.XY{X: xy.X + dx, Y: xy.Y + dy}
		})
	}
	eroded, err := geom.Intersection(shifted(offsetX, offsetY), shifted(-offsetX, -offsetY))
	if err != nil {
		return nil, fmt.Errorf("Inward buffer failed: %v", err)
	}
	if eroded.Area() < e.epsilon {
		return e.Empty(), nil
	}
	return e.wrap(eroded), nil
}

func (e sfEngine) clip(g geom.Geometry) Geometry {
	if g.IsEmpty() || g.Area() < e.epsilon {
		return e.Empty()
	}
	return e.wrap(g)
}
