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
	"math"
	"time"

	"gonum.org/v1/gonum/floats"
)

// Weatherer changes the mass and composition of elements.
type Weatherer interface {
	// Key returns the mass balance key under which the weatherer
	// records the mass it removes.
	Key() string

	// ArrayTypes returns the data arrays the weatherer reads or writes,
	// beyond DefaultArrayTypes.
	ArrayTypes() []ArrayType

	// PrepareForModelRun is called once before the first step. It
	// registers Key in the mass balance if the weatherer is on.
	PrepareForModelRun(sc *SpillContainer) error

	// PrepareForModelStep recomputes any time-varying data arrays.
	// It must not change any data if the weatherer is inactive.
	PrepareForModelStep(sc *SpillContainer, dt time.Duration, t time.Time) error

	// WeatherElements removes mass from the elements in sc and adds
	// the removed mass to the mass balance, returning the mass removed
	// [kg]. The model only calls it when the weatherer is active and sc
	// contains released elements.
	WeatherElements(sc *SpillContainer, dt time.Duration, t time.Time) (float64, error)

	// Active returns whether the weatherer is active in the current step.
	Active() bool
}

// RemoveMass subtracts removed(i, k, m) from component k of the
// mass_components of each element i in rows, where m is the current
// component mass, and sets mass to the sum of the remaining components.
// Removals are limited to the range [0, m]. It returns the total mass
// removed.
func RemoveMass(e *Elements, rows []int, removed func(i, k int, m float64) float64) (float64, error) {
	if len(rows) == 0 {
		return 0, nil
	}
	mc, err := e.Vector(MassComponents.Name)
	if err != nil {
		return 0, err
	}
	mass, err := e.Scalar(Mass.Name)
	if err != nil {
		return 0, err
	}
	_, nc := mc.Dims()
	var total float64
	for _, i := range rows {
		row := mc.RawRowView(i)
		for k := 0; k < nc; k++ {
			m := row[k]
			r := removed(i, k, m)
			if math.IsNaN(r) || r < 0 {
				r = 0
			} else if r > m {
				r = m
			}
			row[k] = m - r
			total += r
		}
		mass[i] = floats.Sum(row[:nc])
	}
	return total, nil
}
