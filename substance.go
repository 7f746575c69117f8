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

	"gonum.org/v1/gonum/floats"
)

// ComponentType is the SARA class of a substance component.
type ComponentType string

// Component types.
const (
	Saturates   ComponentType = "Saturates"
	Aromatics   ComponentType = "Aromatics"
	Resins      ComponentType = "Resins"
	Asphaltenes ComponentType = "Asphaltenes"
)

// Physical constants.
const (
	GasConstant         = 8.314462618 // J/(mol K)
	AtmosphericPressure = 101325.0    // Pa
	defaultExpansion    = 0.0008      // 1/K
)

// Component is one pseudo-component of a substance.
type Component struct {
	Name            string
	Type            ComponentType
	BoilingPoint    float64 // [K]
	MolecularWeight float64 // [kg/mol]
	MassFraction    float64 // [fraction]
}

// Substance holds static reference data for a spilled material.
// It is not changed during a simulation.
type Substance struct {
	Name       string
	Components []Component

	ReferenceDensity float64 // [kg/m³] at ReferenceTemp
	ReferenceTemp    float64 // [K]

	// ThermalExpansion is the density thermal expansion coefficient
	// [1/K]. If zero, 0.0008 is used.
	ThermalExpansion float64
}

// Len returns the number of components in the substance.
func (s *Substance) Len() int { return len(s.Components) }

// Validate checks that the substance has the data required by the
// weathering processes.
func (s *Substance) Validate() error {
	if len(s.Components) == 0 {
		return &InvalidSubstanceError{Substance: s.Name, Reason: "no components"}
	}
	if !(s.ReferenceDensity > 0) {
		return &InvalidSubstanceError{Substance: s.Name, Reason: fmt.Sprintf("reference density %g should be > 0", s.ReferenceDensity)}
	}
	if !(s.ReferenceTemp > 0) {
		return &InvalidSubstanceError{Substance: s.Name, Reason: fmt.Sprintf("reference temperature %g K should be > 0", s.ReferenceTemp)}
	}
	for i, c := range s.Components {
		if !(c.BoilingPoint > 0) {
			return &InvalidSubstanceError{Substance: s.Name, Reason: fmt.Sprintf("component %d (%s) is missing a boiling point", i, c.Name)}
		}
		if !(c.MolecularWeight > 0) {
			return &InvalidSubstanceError{Substance: s.Name, Reason: fmt.Sprintf("component %d (%s) is missing a molecular weight", i, c.Name)}
		}
		if c.MassFraction < 0 || math.IsNaN(c.MassFraction) {
			return &InvalidSubstanceError{Substance: s.Name, Reason: fmt.Sprintf("component %d (%s) has mass fraction %g", i, c.Name, c.MassFraction)}
		}
	}
	if sum := floats.Sum(s.MassFractions()); math.Abs(sum-1) > 1.e-6 {
		return &InvalidSubstanceError{Substance: s.Name, Reason: fmt.Sprintf("mass fractions sum to %g rather than 1", sum)}
	}
	return nil
}

// MassFractions returns the mass fraction of each component.
func (s *Substance) MassFractions() []float64 {
	o := make([]float64, len(s.Components))
	for i, c := range s.Components {
		o[i] = c.MassFraction
	}
	return o
}

// MolecularWeights returns the molecular weight of each component [kg/mol].
func (s *Substance) MolecularWeights() []float64 {
	o := make([]float64, len(s.Components))
	for i, c := range s.Components {
		o[i] = c.MolecularWeight
	}
	return o
}

// Density returns the substance density [kg/m³] at temperature temp [K].
func (s *Substance) Density(temp float64) float64 {
	k0 := s.ThermalExpansion
	if k0 == 0 {
		k0 = defaultExpansion
	}
	return s.ReferenceDensity / (1 - k0*(s.ReferenceTemp-temp))
}

// VaporPressure returns the vapor pressure [Pa] of each component at
// temperature temp [K], estimated from the component boiling points.
func (s *Substance) VaporPressure(temp float64) []float64 {
	const (
		dZb  = 0.97
		rCal = 1.987 // cal/(mol K)
	)
	o := make([]float64, len(s.Components))
	for i, c := range s.Components {
		bp := c.BoilingPoint
		dS := 8.75 + rCal*math.Log(bp)
		c2 := 0.19*bp - 18
		v := 1/(bp-c2) - 1/(temp-c2)
		lnPiPo := dS * (bp - c2) * (bp - c2) / (dZb * rCal * bp) * v
		o[i] = math.Exp(lnPiPo) * AtmosphericPressure
	}
	return o
}
