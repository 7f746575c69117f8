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

	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat/distuv"
)

// NewSource returns a random number source. If seed is zero, the source
// is seeded from the wall clock.
func NewSource(seed uint64) rand.Source {
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	return rand.NewSource(seed)
}

// UniformPerturb adds an independent U(-scale[j], scale[j]) draw to
// column j of each of the given rows of delta.
func UniformPerturb(delta *mat.Dense, rows []int, scale [3]float64, src rand.Source) {
	u := distuv.Uniform{Min: -1, Max: 1, Src: src}
	_, c := delta.Dims()
	for _, i := range rows {
		for j := 0; j < c && j < 3; j++ {
			delta.Set(i, j, delta.At(i, j)+u.Rand()*scale[j])
		}
	}
}

// ProportionalPerturb adds to each element of the given rows of delta an
// independent random offset bounded by scale times the magnitude of
// that element.
func ProportionalPerturb(delta *mat.Dense, rows []int, scale float64, src rand.Source) {
	if scale == 0 {
		return
	}
	u := distuv.Uniform{Min: -1, Max: 1, Src: src}
	_, c := delta.Dims()
	for _, i := range rows {
		for j := 0; j < c; j++ {
			v := delta.At(i, j)
			delta.Set(i, j, v+u.Rand()*scale*math.Abs(v))
		}
	}
}
