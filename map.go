/*
Copyright © 2019 the oilfate authors.
This file is part of oilfate.

oilfate is free software: you can redistribute it and/or modify
it under the terms of the GNU General Public License as published by
the Free Software Foundation, either version 3 of the License, or
(at your option) any later version.

oilfate is distributed in the hope that it will be useful,
but WITHOUT ANY WARRANTY; without even the implied warranty of
MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
GNU General Public License for more details.

You should have received a copy of the GNU General Public License
along with oilfate.  If not, see <http://www.gnu.org/licenses/>.
*/

package oilfate

import (
	"github.com/ctessum/geom"
)

// Map determines whether positions are within the model domain and
// whether they are on land. Positions are (lon, lat, depth).
type Map interface {
	OnMap(p [3]float64) bool
	OnLand(p [3]float64) bool
}

// WaterWorld is a Map with no land and no boundaries.
type WaterWorld struct{}

// OnMap returns true.
func (WaterWorld) OnMap([3]float64) bool { return true }

// OnLand returns false.
func (WaterWorld) OnLand([3]float64) bool { return false }

// PolygonMap is a Map whose domain and land are specified by polygons
// in (lon, lat) coordinates.
type PolygonMap struct {
	// Bounds is the model domain. If nil, the domain is unbounded.
	Bounds geom.Polygonal

	// Land holds the land areas.
	Land []geom.Polygonal

	landBounds []*geom.Bounds
}

// NewPolygonMap creates a map from the given domain and land polygons.
func NewPolygonMap(bounds geom.Polygonal, land ...geom.Polygonal) *PolygonMap {
	m := &PolygonMap{Bounds: bounds, Land: land}
	m.landBounds = make([]*geom.Bounds, len(land))
	for i, l := range land {
		m.landBounds[i] = l.Bounds()
	}
	return m
}

// OnMap returns whether p is inside or on the edge of the map bounds.
func (m *PolygonMap) OnMap(p [3]float64) bool {
	if m.Bounds == nil {
		return true
	}
	return geom.Point{X: p[0], Y: p[1]}.Within(m.Bounds) != geom.Outside
}

// OnLand returns whether p is strictly inside a land polygon.
func (m *PolygonMap) OnLand(p [3]float64) bool {
	pt := geom.Point{X: p[0], Y: p[1]}
	for i, l := range m.Land {
		if b := m.landBounds[i]; b != nil && (pt.X < b.Min.X || pt.X > b.Max.X || pt.Y < b.Min.Y || pt.Y > b.Max.Y) {
			continue
		}
		if pt.Within(l) == geom.Inside {
			return true
		}
	}
	return false
}

// applyMap updates the status of in-water elements that have left the
// map or beached.
func applyMap(m Map, sc *SpillContainer) error {
	if m == nil {
		return nil
	}
	pos, err := sc.Elements.Vector(Positions.Name)
	if err != nil {
		return err
	}
	codes, err := sc.Elements.Status()
	if err != nil {
		return err
	}
	for _, i := range rowsWithStatus(codes, InWater) {
		p := [3]float64{pos.At(i, 0), pos.At(i, 1), pos.At(i, 2)}
		if !m.OnMap(p) {
			codes[i] = OffMap
		} else if m.OnLand(p) {
			codes[i] = OnLand
		}
	}
	return nil
}
