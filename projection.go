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

	"gonum.org/v1/gonum/mat"
)

// DegreesPerMeter is the number of degrees of latitude per meter of
// north-south distance on a sphere of radius 6366707.0195 m.
const DegreesPerMeter = 8.9982311916e-6

// MetersToLonLat converts an N×3 metric displacement (x east, y north,
// z down) [m] into an N×3 displacement in (longitude, latitude) degrees
// and depth [m], given the N×3 current (lon, lat, depth) positions.
// The conversion uses a flat-earth approximation and is not valid near
// the poles.
func MetersToLonLat(delta, positions mat.Matrix) *mat.Dense {
	r, c := delta.Dims()
	if r == 0 || c == 0 {
		return &mat.Dense{}
	}
	o := mat.NewDense(r, c, nil)
	o.Apply(func(i, j int, v float64) float64 {
		switch j {
		case 0:
			return v * DegreesPerMeter / math.Cos(positions.At(i, 1)*math.Pi/180)
		case 1:
			return v * DegreesPerMeter
		default:
			return v
		}
	}, delta)
	return o
}

// LonLatToMeters is the inverse of MetersToLonLat.
func LonLatToMeters(delta, positions mat.Matrix) *mat.Dense {
	r, c := delta.Dims()
	if r == 0 || c == 0 {
		return &mat.Dense{}
	}
	o := mat.NewDense(r, c, nil)
	o.Apply(func(i, j int, v float64) float64 {
		switch j {
		case 0:
			return v / DegreesPerMeter * math.Cos(positions.At(i, 1)*math.Pi/180)
		case 1:
			return v / DegreesPerMeter
		default:
			return v
		}
	}, delta)
	return o
}
