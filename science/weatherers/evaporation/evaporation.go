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

// Package evaporation simulates the evaporation of floating oil.
package evaporation

import (
	"fmt"
	"math"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spatialmodel/oilfate"
)

// Key is the mass balance key for evaporated mass.
const Key = "evaporated"

// cEvap is the evaporation mass transfer constant.
const cEvap = 0.0025

// massEpsilon is the element mass [kg] below which an element is
// considered to have evaporated completely.
const massEpsilon = 1e-12

// MassTransferRate returns the evaporation mass transfer rate [m/s]
// for wind speed u [m/s].
func MassTransferRate(u float64) float64 {
	if u <= 10 {
		return cEvap * math.Pow(u, 0.78)
	}
	return 0.06 * cEvap * u * u
}

// Weatherer removes mass from floating elements at a per-component rate
// proportional to the component vapor pressure. It fulfils the
// github.com/spatialmodel/oilfate.Weatherer interface.
type Weatherer struct {
	oilfate.Process

	// WindSpeed is the wind speed [m/s].
	WindSpeed oilfate.ScalarSampler

	Water *oilfate.Water

	// Thickness is the slick thickness [m].
	Thickness float64
}

// New returns an evaporation weatherer.
func New(windSpeed oilfate.ScalarSampler, water *oilfate.Water) *Weatherer {
	return &Weatherer{
		Process:   oilfate.NewProcess(),
		WindSpeed: windSpeed,
		Water:     water,
		Thickness: 1,
	}
}

// Key returns the mass balance key.
func (w *Weatherer) Key() string { return Key }

// Validate checks the weatherer configuration.
func (w *Weatherer) Validate() error {
	if w.WindSpeed == nil {
		return &oilfate.MissingDataError{Name: "wind", Component: "evaporation"}
	}
	if w.Water == nil || w.Water.Temperature == nil {
		return &oilfate.MissingDataError{Name: "water temperature", Component: "evaporation"}
	}
	if !(w.Thickness > 0) {
		return &oilfate.ConfigurationError{Field: "evaporation",
			Reason: fmt.Sprintf("thickness %g should be > 0", w.Thickness)}
	}
	return w.CheckWindow("evaporation")
}

// ArrayTypes returns the arrays used by the weatherer.
func (w *Weatherer) ArrayTypes() []oilfate.ArrayType {
	return []oilfate.ArrayType{oilfate.MassComponents, oilfate.Density,
		oilfate.Thickness, oilfate.Mol, oilfate.EvapDecayConstant}
}

// PrepareForModelRun registers the mass balance key.
func (w *Weatherer) PrepareForModelRun(sc *oilfate.SpillContainer) error {
	if w.On {
		sc.MassBalance.Register(Key)
	}
	return nil
}

// PrepareForModelStep computes the density, thickness, molar total,
// and evaporation decay constants of each in-water element from the
// wind speed and water temperature at t.
func (w *Weatherer) PrepareForModelStep(sc *oilfate.SpillContainer, _ time.Duration, t time.Time) error {
	w.UpdateActive(t)
	if !w.Active() || sc.NumReleased() == 0 {
		return nil
	}
	if w.WindSpeed == nil {
		return &oilfate.MissingDataError{Name: "wind", Component: "evaporation"}
	}
	if w.Water == nil || w.Water.Temperature == nil {
		return &oilfate.MissingDataError{Name: "water temperature", Component: "evaporation"}
	}
	e := sc.Elements
	if err := e.Require("evaporation", oilfate.Density.Name, oilfate.Thickness.Name,
		oilfate.Mol.Name, oilfate.EvapDecayConstant.Name); err != nil {
		return err
	}
	u, err := w.WindSpeed.SampleAt(t)
	if err != nil {
		return fmt.Errorf("evaporation: sampling wind speed: %w", err)
	}
	temp, err := w.Water.Temperature.SampleAt(t)
	if err != nil {
		return fmt.Errorf("evaporation: sampling water temperature: %w", err)
	}
	if !(temp > 0) {
		return &oilfate.ConfigurationError{Field: "evaporation",
			Reason: fmt.Sprintf("water temperature %g K should be > 0", temp)}
	}
	k := MassTransferRate(u)

	mass, err := e.Scalar(oilfate.Mass.Name)
	if err != nil {
		return err
	}
	density, err := e.Scalar(oilfate.Density.Name)
	if err != nil {
		return err
	}
	thickness, err := e.Scalar(oilfate.Thickness.Name)
	if err != nil {
		return err
	}
	mol, err := e.Scalar(oilfate.Mol.Name)
	if err != nil {
		return err
	}
	spillNum, err := e.Scalar(oilfate.SpillNum.Name)
	if err != nil {
		return err
	}
	mc, err := e.Vector(oilfate.MassComponents.Name)
	if err != nil {
		return err
	}
	edc, err := e.Vector(oilfate.EvapDecayConstant.Name)
	if err != nil {
		return err
	}
	for _, g := range sc.SubstanceData() {
		mw := g.Substance.MolecularWeights()
		vp := g.Substance.VaporPressure(temp)
		rho := g.Substance.Density(temp)
		for _, i := range g.Rows {
			s := sc.Spills[int(spillNum[i])]
			density[i] = rho
			thickness[i] = w.Thickness
			mol[i] = 0
			for c, m := range mw {
				mol[i] += mc.At(i, c) / m
			}
			area := mass[i] / rho / w.Thickness
			for c := range vp {
				if mol[i] <= 0 {
					edc.Set(i, c, 0)
					continue
				}
				edc.Set(i, c, area*k*vp[c]*s.FracCoverage*(1-s.FracWater)/
					(oilfate.GasConstant*temp*mol[i]))
			}
		}
	}
	return nil
}

// WeatherElements removes the mass evaporated over dt from each in-water
// element. Elements with no mass remaining are marked as evaporated.
func (w *Weatherer) WeatherElements(sc *oilfate.SpillContainer, dt time.Duration, _ time.Time) (float64, error) {
	e := sc.Elements
	if err := e.Require("evaporation", oilfate.MassComponents.Name, oilfate.EvapDecayConstant.Name); err != nil {
		return 0, err
	}
	edc, err := e.Vector(oilfate.EvapDecayConstant.Name)
	if err != nil {
		return 0, err
	}
	mass, err := e.Scalar(oilfate.Mass.Name)
	if err != nil {
		return 0, err
	}
	codes, err := e.Status()
	if err != nil {
		return 0, err
	}
	s := dt.Seconds()
	var total float64
	for _, g := range sc.SubstanceData() {
		removed, err := oilfate.RemoveMass(e, g.Rows, func(i, c int, m float64) float64 {
			return m * (1 - math.Exp(-edc.At(i, c)*s))
		})
		if err != nil {
			return 0, err
		}
		total += removed
		var gone int
		for _, i := range g.Rows {
			if mass[i] <= massEpsilon {
				codes[i] = oilfate.Evaporated
				gone++
			}
		}
		w.Logger().WithFields(logrus.Fields{
			"substance":  g.Substance.Name,
			"elements":   len(g.Rows),
			"removed":    removed,
			"evaporated": gone,
			"uncertain":  sc.Uncertain,
		}).Debug("evaporation")
	}
	if err := sc.MassBalance.Add(Key, total); err != nil {
		return 0, err
	}
	return total, nil
}
