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

// Package randommover simulates horizontal turbulent diffusion with a
// random walk.
package randommover

import (
	"fmt"
	"math"
	"time"

	"github.com/spatialmodel/oilfate"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat/distuv"
)

// Mover displaces each in-water element horizontally by an independent
// uniformly distributed random step whose variance matches Fickian
// diffusion. It fulfils the github.com/spatialmodel/oilfate.Mover
// interface.
type Mover struct {
	oilfate.Process

	// DiffusionCoef is the horizontal diffusion coefficient [m²/s].
	DiffusionCoef float64

	// UncertainFactor multiplies DiffusionCoef in uncertain runs.
	UncertainFactor float64
}

// New returns a mover with the given diffusion coefficient [m²/s].
func New(diffusionCoef float64) *Mover {
	return &Mover{
		Process:         oilfate.NewProcess(),
		DiffusionCoef:   diffusionCoef,
		UncertainFactor: 2,
	}
}

// Validate checks the mover configuration.
func (m *Mover) Validate() error {
	if m.DiffusionCoef < 0 {
		return &oilfate.ConfigurationError{Field: "random mover",
			Reason: fmt.Sprintf("diffusion coefficient %g should be >= 0", m.DiffusionCoef)}
	}
	if m.UncertainFactor < 1 {
		return &oilfate.ConfigurationError{Field: "random mover",
			Reason: fmt.Sprintf("uncertain factor %g should be >= 1", m.UncertainFactor)}
	}
	return m.CheckWindow("random mover")
}

// ArrayTypes returns nil because the mover only uses the default arrays.
func (m *Mover) ArrayTypes() []oilfate.ArrayType { return nil }

// GetMove returns the random displacement of each element over dt.
// A uniform distribution on [-1, 1] has variance 1/3, so scaling by
// sqrt(6 D dt) gives a step variance of 2 D dt in each direction.
func (m *Mover) GetMove(sc *oilfate.SpillContainer, dt time.Duration, _ time.Time) (*mat.Dense, error) {
	delta, rows, err := oilfate.MoveSetup(sc, "random mover")
	if err != nil {
		return nil, err
	}
	if !m.Active() || m.DiffusionCoef == 0 {
		return delta, nil
	}
	d := m.DiffusionCoef
	if sc.Uncertain {
		d *= m.UncertainFactor
	}
	scale := math.Sqrt(6 * d * dt.Seconds())
	u := distuv.Uniform{Min: -1, Max: 1, Src: sc.Rand}
	for _, i := range rows {
		delta.Set(i, 0, u.Rand()*scale)
		delta.Set(i, 1, u.Rand()*scale)
	}
	return delta, nil
}
