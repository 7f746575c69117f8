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

// Package windmover moves floating elements with the wind.
package windmover

import (
	"fmt"
	"time"

	"github.com/spatialmodel/oilfate"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat/distuv"
)

// Mover moves in-water elements at the surface by a fraction of the wind
// velocity. The fraction (windage) of each element is drawn at random
// from WindageRange every step. It fulfils the
// github.com/spatialmodel/oilfate.Mover interface.
type Mover struct {
	oilfate.Process

	Wind oilfate.VectorSampler

	// WindageRange is the range of windages [fraction].
	WindageRange [2]float64

	// UncertaintyScale widens WindageRange by the given fraction on
	// each side in uncertain runs.
	UncertaintyScale float64
}

// New returns a mover for the given wind with the default windage
// range of 1 to 4 percent.
func New(wind oilfate.VectorSampler) *Mover {
	return &Mover{
		Process:          oilfate.NewProcess(),
		Wind:             wind,
		WindageRange:     [2]float64{0.01, 0.04},
		UncertaintyScale: 0.5,
	}
}

// Validate checks the mover configuration.
func (m *Mover) Validate() error {
	if m.Wind == nil {
		return &oilfate.MissingDataError{Name: "wind", Component: "wind mover"}
	}
	if m.WindageRange[0] < 0 || m.WindageRange[1] < m.WindageRange[0] {
		return &oilfate.ConfigurationError{Field: "wind mover",
			Reason: fmt.Sprintf("invalid windage range %v", m.WindageRange)}
	}
	return m.CheckWindow("wind mover")
}

// ArrayTypes returns the windages array.
func (m *Mover) ArrayTypes() []oilfate.ArrayType {
	return []oilfate.ArrayType{oilfate.Windages}
}

// windageRange returns the windage range for sc.
func (m *Mover) windageRange(sc *oilfate.SpillContainer) (lo, hi float64) {
	lo, hi = m.WindageRange[0], m.WindageRange[1]
	if sc.Uncertain {
		w := (hi - lo) * m.UncertaintyScale
		lo, hi = lo-w, hi+w
		if lo < 0 {
			lo = 0
		}
	}
	return lo, hi
}

// GetMove returns the wind-driven displacement of each surface element
// over the step starting at t.
func (m *Mover) GetMove(sc *oilfate.SpillContainer, dt time.Duration, t time.Time) (*mat.Dense, error) {
	delta, rows, err := oilfate.MoveSetup(sc, "wind mover", oilfate.Windages.Name)
	if err != nil {
		return nil, err
	}
	if !m.Active() || len(rows) == 0 {
		return delta, nil
	}
	if m.Wind == nil {
		return nil, &oilfate.MissingDataError{Name: "wind", Component: "wind mover"}
	}
	uv, err := m.Wind.SampleAt(t)
	if err != nil {
		return nil, fmt.Errorf("windmover: sampling wind: %w", err)
	}
	pos, err := sc.Elements.Vector(oilfate.Positions.Name)
	if err != nil {
		return nil, err
	}
	windages, err := sc.Elements.Scalar(oilfate.Windages.Name)
	if err != nil {
		return nil, err
	}
	lo, hi := m.windageRange(sc)
	u := distuv.Uniform{Min: lo, Max: hi, Src: sc.Rand}
	s := dt.Seconds()
	for _, i := range rows {
		if pos.At(i, 2) > 0 {
			continue
		}
		windages[i] = u.Rand()
		delta.Set(i, 0, uv[0]*windages[i]*s)
		delta.Set(i, 1, uv[1]*windages[i]*s)
	}
	return delta, nil
}
