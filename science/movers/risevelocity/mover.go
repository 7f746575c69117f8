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

// Package risevelocity moves submerged droplets vertically at their
// buoyant rise velocity.
package risevelocity

import (
	"fmt"
	"time"

	"github.com/spatialmodel/oilfate"
	"gonum.org/v1/gonum/mat"
)

const g = 9.80665 // m/s²

// Mover moves in-water elements upward at the Stokes terminal velocity
// of their droplets. Elements stop when they reach the surface. It
// fulfils the github.com/spatialmodel/oilfate.Mover interface.
type Mover struct {
	oilfate.Process

	Water *oilfate.Water
}

// New returns a mover for droplets rising through the given water.
func New(water *oilfate.Water) *Mover {
	return &Mover{Process: oilfate.NewProcess(), Water: water}
}

// Validate checks the mover configuration.
func (m *Mover) Validate() error {
	if m.Water == nil {
		return &oilfate.MissingDataError{Name: "water", Component: "rise velocity mover"}
	}
	if !(m.Water.Density > 0) || !(m.Water.Viscosity > 0) {
		return &oilfate.ConfigurationError{Field: "rise velocity mover",
			Reason: fmt.Sprintf("water density (%g) and viscosity (%g) should be > 0", m.Water.Density, m.Water.Viscosity)}
	}
	return m.CheckWindow("rise velocity mover")
}

// ArrayTypes returns the arrays used by the mover.
func (m *Mover) ArrayTypes() []oilfate.ArrayType {
	return []oilfate.ArrayType{oilfate.DropletAvgSize, oilfate.Density, oilfate.RiseVel}
}

// StokesVelocity returns the terminal rise velocity [m/s, positive
// upward] of a droplet of diameter d [m] and density rho [kg/m³] in
// water of density rhoW [kg/m³] and kinematic viscosity nu [m²/s].
func StokesVelocity(d, rho, rhoW, nu float64) float64 {
	if d <= 0 || rhoW <= 0 || nu <= 0 {
		return 0
	}
	return g * d * d * (rhoW - rho) / (18 * nu * rhoW)
}

// GetMove returns the vertical displacement of each element over the
// step starting at t and records the rise velocities in rise_vel.
func (m *Mover) GetMove(sc *oilfate.SpillContainer, dt time.Duration, t time.Time) (*mat.Dense, error) {
	e := sc.Elements
	names := []string{oilfate.DropletAvgSize.Name, oilfate.Density.Name, oilfate.RiseVel.Name}
	delta, rows, err := oilfate.MoveSetup(sc, "rise velocity mover", names...)
	if err != nil {
		return nil, err
	}
	if !m.Active() || len(rows) == 0 {
		return delta, nil
	}
	if m.Water == nil {
		return nil, &oilfate.MissingDataError{Name: "water", Component: "rise velocity mover"}
	}
	var temp float64
	if m.Water.Temperature != nil {
		if temp, err = m.Water.Temperature.SampleAt(t); err != nil {
			return nil, fmt.Errorf("risevelocity: sampling water temperature: %w", err)
		}
	}
	pos, err := e.Vector(oilfate.Positions.Name)
	if err != nil {
		return nil, err
	}
	size, err := e.Scalar(oilfate.DropletAvgSize.Name)
	if err != nil {
		return nil, err
	}
	density, err := e.Scalar(oilfate.Density.Name)
	if err != nil {
		return nil, err
	}
	riseVel, err := e.Scalar(oilfate.RiseVel.Name)
	if err != nil {
		return nil, err
	}
	spillNum, err := e.Scalar(oilfate.SpillNum.Name)
	if err != nil {
		return nil, err
	}
	s := dt.Seconds()
	for _, i := range rows {
		rho := density[i]
		if rho <= 0 {
			sub := sc.Spills[int(spillNum[i])].Substance
			if sub == nil || temp == 0 {
				riseVel[i] = 0
				continue
			}
			rho = sub.Density(temp)
		}
		w := StokesVelocity(size[i], rho, m.Water.Density, m.Water.Viscosity)
		riseVel[i] = w
		z := pos.At(i, 2)
		dz := -w * s
		if z+dz < 0 {
			dz = -z
		}
		delta.Set(i, 2, dz)
	}
	return delta, nil
}
