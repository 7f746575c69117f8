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

// Package simplemover moves elements at a constant velocity.
package simplemover

import (
	"fmt"
	"time"

	"github.com/spatialmodel/oilfate"
	"gonum.org/v1/gonum/mat"
)

// Mover moves every in-water element at the same constant velocity.
// It fulfils the github.com/spatialmodel/oilfate.Mover interface.
type Mover struct {
	oilfate.Process

	// Velocity is the (east, north, down) velocity [m/s].
	Velocity [3]float64

	// UncertaintyScale bounds the random perturbation applied in
	// uncertain runs, as a fraction of the displacement.
	UncertaintyScale float64
}

// New returns a new mover with the given velocity [m/s] and the default
// uncertainty scale of 0.5.
func New(velocity [3]float64) *Mover {
	return &Mover{
		Process:          oilfate.NewProcess(),
		Velocity:         velocity,
		UncertaintyScale: 0.5,
	}
}

// Validate checks the mover configuration.
func (m *Mover) Validate() error {
	if m.UncertaintyScale < 0 {
		return &oilfate.ConfigurationError{Field: "simple mover",
			Reason: fmt.Sprintf("uncertainty scale %g should be >= 0", m.UncertaintyScale)}
	}
	return m.CheckWindow("simple mover")
}

// ArrayTypes returns nil because the mover only uses the default arrays.
func (m *Mover) ArrayTypes() []oilfate.ArrayType { return nil }

// GetMove returns the displacement of each element over dt.
func (m *Mover) GetMove(sc *oilfate.SpillContainer, dt time.Duration, _ time.Time) (*mat.Dense, error) {
	delta, rows, err := oilfate.MoveSetup(sc, "simple mover")
	if err != nil {
		return nil, err
	}
	if !m.Active() {
		return delta, nil
	}
	s := dt.Seconds()
	for _, i := range rows {
		for j, v := range m.Velocity {
			delta.Set(i, j, v*s)
		}
	}
	if sc.Uncertain {
		oilfate.ProportionalPerturb(delta, rows, m.UncertaintyScale, sc.Rand)
	}
	return delta, nil
}
