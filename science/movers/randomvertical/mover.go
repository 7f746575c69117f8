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

// Package randomvertical simulates vertical turbulent diffusion, with
// separate diffusion coefficients above and below the mixed layer.
package randomvertical

import (
	"fmt"
	"math"
	"time"

	"github.com/spatialmodel/oilfate"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat/distuv"
)

// Mover displaces each in-water element vertically by a normally
// distributed random step. Elements that would be moved above the water
// surface are reflected back below it. It fulfils the
// github.com/spatialmodel/oilfate.Mover interface.
type Mover struct {
	oilfate.Process

	// CoefAboveML and CoefBelowML are the vertical diffusion
	// coefficients [m²/s] above and below the mixed layer.
	CoefAboveML, CoefBelowML float64

	// MixedLayerDepth is the depth of the mixed layer [m].
	MixedLayerDepth float64

	// UncertainFactor multiplies the diffusion coefficients in
	// uncertain runs.
	UncertainFactor float64
}

// New returns a mover with the default coefficients of 5 cm²/s
// above and 0.11 cm²/s below a 10 m mixed layer.
func New() *Mover {
	return &Mover{
		Process:         oilfate.NewProcess(),
		CoefAboveML:     5e-4,
		CoefBelowML:     1.1e-5,
		MixedLayerDepth: 10,
		UncertainFactor: 2,
	}
}

// Validate checks the mover configuration.
func (m *Mover) Validate() error {
	if m.CoefAboveML < 0 || m.CoefBelowML < 0 {
		return &oilfate.ConfigurationError{Field: "random vertical mover",
			Reason: fmt.Sprintf("diffusion coefficients (%g, %g) should be >= 0", m.CoefAboveML, m.CoefBelowML)}
	}
	if m.MixedLayerDepth < 0 {
		return &oilfate.ConfigurationError{Field: "random vertical mover",
			Reason: fmt.Sprintf("mixed layer depth %g should be >= 0", m.MixedLayerDepth)}
	}
	if m.UncertainFactor < 1 {
		return &oilfate.ConfigurationError{Field: "random vertical mover",
			Reason: fmt.Sprintf("uncertain factor %g should be >= 1", m.UncertainFactor)}
	}
	return m.CheckWindow("random vertical mover")
}

// ArrayTypes returns nil because the mover only uses the default arrays.
func (m *Mover) ArrayTypes() []oilfate.ArrayType { return nil }

// GetMove returns the vertical displacement of each element over dt.
func (m *Mover) GetMove(sc *oilfate.SpillContainer, dt time.Duration, _ time.Time) (*mat.Dense, error) {
	delta, rows, err := oilfate.MoveSetup(sc, "random vertical mover")
	if err != nil {
		return nil, err
	}
	if !m.Active() {
		return delta, nil
	}
	pos, err := sc.Elements.Vector(oilfate.Positions.Name)
	if err != nil {
		return nil, err
	}
	f := 1.
	if sc.Uncertain {
		f = m.UncertainFactor
	}
	norm := distuv.Normal{Mu: 0, Sigma: 1, Src: sc.Rand}
	s := dt.Seconds()
	for _, i := range rows {
		z := pos.At(i, 2)
		d := m.CoefBelowML
		if z <= m.MixedLayerDepth {
			d = m.CoefAboveML
		}
		dz := norm.Rand() * math.Sqrt(2*d*f*s)
		if z+dz < 0 {
			// Reflect at the surface.
			dz = -z - (z + dz)
		}
		delta.Set(i, 2, dz)
	}
	return delta, nil
}
