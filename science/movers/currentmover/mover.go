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

// Package currentmover moves elements with a velocity field, such as
// ocean currents.
package currentmover

import (
	"fmt"
	"time"

	"github.com/spatialmodel/oilfate"
	"gonum.org/v1/gonum/mat"
)

// Mover moves each in-water element with the velocity of a field
// sampled at the element position. It fulfils the
// github.com/spatialmodel/oilfate.Mover interface.
type Mover struct {
	oilfate.Process

	Field oilfate.VelocityField

	// Scale multiplies the sampled velocities.
	Scale float64

	// UncertaintyScale bounds the random perturbation applied in
	// uncertain runs, as a fraction of the displacement.
	UncertaintyScale float64
}

// New returns a mover for the given velocity field.
func New(field oilfate.VelocityField) *Mover {
	return &Mover{
		Process:          oilfate.NewProcess(),
		Field:            field,
		Scale:            1,
		UncertaintyScale: 0.5,
	}
}

// Validate checks the mover configuration.
func (m *Mover) Validate() error {
	if m.Field == nil {
		return &oilfate.MissingDataError{Name: "velocity field", Component: "current mover"}
	}
	if m.UncertaintyScale < 0 {
		return &oilfate.ConfigurationError{Field: "current mover",
			Reason: fmt.Sprintf("uncertainty scale %g should be >= 0", m.UncertaintyScale)}
	}
	return m.CheckWindow("current mover")
}

// ArrayTypes returns nil because the mover only uses the default arrays.
func (m *Mover) ArrayTypes() []oilfate.ArrayType { return nil }

// GetMove returns the displacement of each element over the step
// starting at t.
func (m *Mover) GetMove(sc *oilfate.SpillContainer, dt time.Duration, t time.Time) (*mat.Dense, error) {
	delta, rows, err := oilfate.MoveSetup(sc, "current mover")
	if err != nil {
		return nil, err
	}
	if !m.Active() || len(rows) == 0 {
		return delta, nil
	}
	if m.Field == nil {
		return nil, &oilfate.MissingDataError{Name: "velocity field", Component: "current mover"}
	}
	pos, err := sc.Elements.Vector(oilfate.Positions.Name)
	if err != nil {
		return nil, err
	}
	s := dt.Seconds() * m.Scale
	for _, i := range rows {
		v, err := m.Field.ValueAt([3]float64{pos.At(i, 0), pos.At(i, 1), pos.At(i, 2)}, t)
		if err != nil {
			return nil, fmt.Errorf("currentmover: sampling velocity for element %d: %w", i, err)
		}
		for j := 0; j < 3; j++ {
			delta.Set(i, j, v[j]*s)
		}
	}
	if sc.Uncertain {
		oilfate.ProportionalPerturb(delta, rows, m.UncertaintyScale, sc.Rand)
	}
	return delta, nil
}
