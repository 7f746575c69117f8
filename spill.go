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
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/ctessum/unit"
)

// Volume conversion factors [m³].
const (
	barrel = 0.158987294928
	gallon = 0.003785411784
)

// Spill is a group of elements released together.
type Spill struct {
	Name string

	// ReleaseTime is the time the release starts. If EndReleaseTime is
	// zero or not after ReleaseTime, all elements are released at
	// ReleaseTime; otherwise they are released at a constant rate
	// until EndReleaseTime.
	ReleaseTime, EndReleaseTime time.Time

	// NumElements is the total number of elements to release.
	NumElements int

	// StartPosition is the (lon, lat, depth) release location. If
	// EndPosition is not nil, elements are released evenly along the
	// line from StartPosition to EndPosition.
	StartPosition [3]float64
	EndPosition   *[3]float64

	Substance *Substance

	// Amount is the total amount released, in Units. Accepted units
	// are kg, g, tonnes, m^3, bbl and gal.
	Amount float64
	Units  string

	// FracCoverage is the fraction of the slick area that is covered
	// by oil, and FracWater is the water fraction of the emulsion.
	FracCoverage, FracWater float64

	// InitialValues holds initial values for scalar data arrays of
	// newly released elements, keyed by array name. Arrays that are
	// not held by the batch are ignored.
	InitialValues map[string]float64
}

// Validate checks the spill configuration.
func (s *Spill) Validate() error {
	field := fmt.Sprintf("spill %q", s.Name)
	if s.NumElements <= 0 {
		return &ConfigurationError{Field: field, Reason: fmt.Sprintf("number of elements %d should be > 0", s.NumElements)}
	}
	if !s.EndReleaseTime.IsZero() && s.EndReleaseTime.Before(s.ReleaseTime) {
		return &ConfigurationError{Field: field, Reason: "release ends before it starts"}
	}
	if s.FracCoverage < 0 || s.FracCoverage > 1 {
		return &ConfigurationError{Field: field, Reason: fmt.Sprintf("fraction coverage %g should be between 0 and 1", s.FracCoverage)}
	}
	if s.FracWater < 0 || s.FracWater > 1 {
		return &ConfigurationError{Field: field, Reason: fmt.Sprintf("water fraction %g should be between 0 and 1", s.FracWater)}
	}
	if s.Amount < 0 {
		return &ConfigurationError{Field: field, Reason: fmt.Sprintf("amount %g should be >= 0", s.Amount)}
	}
	if s.Substance == nil {
		return &MissingDataError{Name: "substance", Component: field}
	}
	if err := s.Substance.Validate(); err != nil {
		return err
	}
	if _, err := s.MassKg(); err != nil {
		return &ConfigurationError{Field: field, Reason: err.Error()}
	}
	return nil
}

// continuous returns whether the spill is released over a time window.
func (s *Spill) continuous() bool {
	return !s.EndReleaseTime.IsZero() && s.EndReleaseTime.After(s.ReleaseTime)
}

// NumToRelease returns the total number of elements of the spill that
// should have been released before time until.
func (s *Spill) NumToRelease(until time.Time) int {
	if !s.ReleaseTime.Before(until) {
		return 0
	}
	if !s.continuous() || !until.Before(s.EndReleaseTime) {
		return s.NumElements
	}
	frac := until.Sub(s.ReleaseTime).Seconds() / s.EndReleaseTime.Sub(s.ReleaseTime).Seconds()
	return int(math.Floor(frac * float64(s.NumElements)))
}

// MassKg returns the total mass of the spill in kilograms. Volumes are
// converted using the substance density at its reference temperature.
func (s *Spill) MassKg() (float64, error) {
	var amount *unit.Unit
	switch strings.ToLower(strings.TrimSpace(s.Units)) {
	case "kg", "":
		amount = unit.New(s.Amount, unit.Kilogram)
	case "g":
		amount = unit.New(s.Amount/1000, unit.Kilogram)
	case "tonnes", "t":
		amount = unit.New(s.Amount*1000, unit.Kilogram)
	case "m^3", "m3":
		amount = unit.New(s.Amount, unit.Meter3)
	case "bbl":
		amount = unit.New(s.Amount*barrel, unit.Meter3)
	case "gal":
		amount = unit.New(s.Amount*gallon, unit.Meter3)
	default:
		return 0, fmt.Errorf("oilfate: invalid spill units %q; valid options are kg, g, tonnes, m^3, bbl and gal", s.Units)
	}
	if amount.Check(unit.Meter3) == nil {
		if s.Substance == nil {
			return 0, &MissingDataError{Name: "substance", Component: fmt.Sprintf("spill %q", s.Name)}
		}
		rho := unit.New(s.Substance.ReferenceDensity, unit.KilogramPerMeter3)
		amount = unit.Mul(amount, rho)
	}
	if err := amount.Check(unit.Kilogram); err != nil {
		return 0, fmt.Errorf("oilfate: spill %q amount: %v", s.Name, err)
	}
	return amount.Value(), nil
}

// initialize sets the data for the elements of the spill at rows
// [first, first+n) of e. released is the number of elements of the
// spill that were released before these and spillNum is the index of
// the spill in its container.
func (s *Spill) initialize(e *Elements, first, n, released, spillNum int) error {
	kg, err := s.MassKg()
	if err != nil {
		return err
	}
	perElement := kg / float64(s.NumElements)

	pos, err := e.Vector(Positions.Name)
	if err != nil {
		return err
	}
	status, err := e.Status()
	if err != nil {
		return err
	}
	sn, err := e.Scalar(SpillNum.Name)
	if err != nil {
		return err
	}
	mass, err := e.Scalar(Mass.Name)
	if err != nil {
		return err
	}
	mc, err := e.Vector(MassComponents.Name)
	if err != nil {
		return err
	}
	_, nc := mc.Dims()
	fracs := s.Substance.MassFractions()

	for j := 0; j < n; j++ {
		i := first + j
		p := s.position(released + j)
		for d := 0; d < 3; d++ {
			pos.Set(i, d, p[d])
		}
		status[i] = InWater
		sn[i] = float64(spillNum)
		mass[i] = perElement
		for k := 0; k < nc && k < len(fracs); k++ {
			mc.Set(i, k, perElement*fracs[k])
		}
	}
	for name, v := range s.InitialValues {
		if !e.Has(name) {
			continue
		}
		d, err := e.Scalar(name)
		if err != nil {
			return fmt.Errorf("oilfate: spill %q initial value: %v", s.Name, err)
		}
		for j := 0; j < n; j++ {
			d[first+j] = v
		}
	}
	return nil
}

// position returns the release position of the jth element of the spill.
func (s *Spill) position(j int) [3]float64 {
	if s.EndPosition == nil || s.NumElements < 2 {
		return s.StartPosition
	}
	frac := float64(j) / float64(s.NumElements-1)
	var p [3]float64
	for d := 0; d < 3; d++ {
		p[d] = s.StartPosition[d] + frac*(s.EndPosition[d]-s.StartPosition[d])
	}
	return p
}
