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
	"time"

	"gonum.org/v1/gonum/mat"
)

// Mover computes element displacements.
type Mover interface {
	// ArrayTypes returns the data arrays the mover reads or writes,
	// beyond DefaultArrayTypes.
	ArrayTypes() []ArrayType

	// PrepareForModelRun is called once before the first step.
	PrepareForModelRun(sc *SpillContainer) error

	// PrepareForModelStep is called at the start of every step, before
	// any displacement is computed. It determines whether the mover is
	// active for the step.
	PrepareForModelStep(sc *SpillContainer, dt time.Duration, t time.Time) error

	// GetMove returns the N×3 metric displacement [m] (east, north,
	// down) of every element in sc over the step of length dt starting
	// at t. Rows for elements that are not InWater must be zero, and
	// an inactive mover must return all zeros.
	GetMove(sc *SpillContainer, dt time.Duration, t time.Time) (*mat.Dense, error)

	// ModelStepIsDone is called after the step is complete.
	ModelStepIsDone(sc *SpillContainer) error

	// Active returns whether the mover is active in the current step.
	Active() bool
}

// ZeroMove returns an N×3 zero displacement for the elements in sc.
func ZeroMove(sc *SpillContainer) *mat.Dense {
	n := sc.Elements.Len()
	if n == 0 {
		return &mat.Dense{}
	}
	return mat.NewDense(n, 3, nil)
}

// MoveSetup checks that sc holds positions, status codes and the named
// arrays, and returns a zero displacement matrix for sc together with
// the indices of the in-water elements. If the batch is empty, the
// returned row list is empty.
func MoveSetup(sc *SpillContainer, component string, names ...string) (*mat.Dense, []int, error) {
	e := sc.Elements
	if err := e.Require(component, append([]string{Positions.Name, StatusCodes.Name}, names...)...); err != nil {
		return nil, nil, err
	}
	return ZeroMove(sc), sc.InWater(), nil
}
