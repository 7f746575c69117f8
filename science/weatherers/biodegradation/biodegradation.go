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

// Package biodegradation simulates the biodegradation of oil droplets
// dispersed in the water column.
package biodegradation

import (
	"fmt"
	"math"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spatialmodel/oilfate"
)

// Key is the mass balance key for biodegraded mass.
const Key = "bio_degradation"

// ColdWaterTemperature is the water temperature [K] below which the
// arctic rate coefficients are used.
const ColdWaterTemperature = 279.15

const (
	saturatesMaxBP = 722.85 // K
	aromaticsBP    = 630    // K
)

// Rate coefficients [kg/(m² day)].
var (
	saturatesRate = [2]float64{0.941386396, 0.128807242}
	lowAromatics  = [2]float64{0.575541103, 0.126982603}
	highAromatics = [2]float64{0.084840485, 0.021054707}
)

// RateCoefficient returns the biodegradation rate coefficient
// [kg/(m² day)] of component c. cold specifies whether the water is
// colder than ColdWaterTemperature.
func RateCoefficient(sub string, c oilfate.Component, cold bool) (float64, error) {
	if !(c.BoilingPoint > 0) {
		return 0, &oilfate.InvalidSubstanceError{Substance: sub,
			Reason: fmt.Sprintf("component %s is missing a boiling point", c.Name)}
	}
	regime := 0
	if cold {
		regime = 1
	}
	switch c.Type {
	case oilfate.Saturates:
		if c.BoilingPoint < saturatesMaxBP {
			return saturatesRate[regime], nil
		}
		return 0, nil
	case oilfate.Aromatics:
		if c.BoilingPoint < aromaticsBP {
			return lowAromatics[regime], nil
		}
		return highAromatics[regime], nil
	default:
		return 0, nil
	}
}

// Weatherer removes mass from droplets at a rate proportional to droplet
// surface area. It fulfils the github.com/spatialmodel/oilfate.Weatherer
// interface.
type Weatherer struct {
	oilfate.Process

	Water *oilfate.Water

	cold  bool
	rates map[*oilfate.Substance][]float64
}

// New returns a biodegradation weatherer for the given water body.
func New(water *oilfate.Water) *Weatherer {
	return &Weatherer{Process: oilfate.NewProcess(), Water: water}
}

// Key returns the mass balance key.
func (w *Weatherer) Key() string { return Key }

// Validate checks the weatherer configuration.
func (w *Weatherer) Validate() error {
	if w.Water == nil || w.Water.Temperature == nil {
		return &oilfate.MissingDataError{Name: "water temperature", Component: "biodegradation"}
	}
	return w.CheckWindow("biodegradation")
}

// ArrayTypes returns the arrays used by the weatherer.
func (w *Weatherer) ArrayTypes() []oilfate.ArrayType {
	return []oilfate.ArrayType{oilfate.MassComponents, oilfate.DropletAvgSize}
}

// PrepareForModelRun registers the mass balance key.
func (w *Weatherer) PrepareForModelRun(sc *oilfate.SpillContainer) error {
	if w.On {
		sc.MassBalance.Register(Key)
	}
	return nil
}

// PrepareForModelStep samples the water temperature and computes the
// rate coefficients for the step.
func (w *Weatherer) PrepareForModelStep(sc *oilfate.SpillContainer, _ time.Duration, t time.Time) error {
	w.UpdateActive(t)
	if !w.Active() {
		return nil
	}
	if w.Water == nil || w.Water.Temperature == nil {
		return &oilfate.MissingDataError{Name: "water temperature", Component: "biodegradation"}
	}
	temp, err := w.Water.Temperature.SampleAt(t)
	if err != nil {
		return fmt.Errorf("biodegradation: sampling water temperature: %w", err)
	}
	w.cold = temp < ColdWaterTemperature
	w.rates = make(map[*oilfate.Substance][]float64)
	for _, s := range sc.Spills {
		if _, ok := w.rates[s.Substance]; ok || s.Substance == nil {
			continue
		}
		k := make([]float64, s.Substance.Len())
		for i, c := range s.Substance.Components {
			if k[i], err = RateCoefficient(s.Substance.Name, c, w.cold); err != nil {
				return err
			}
		}
		w.rates[s.Substance] = k
	}
	return nil
}

// WeatherElements removes the mass biodegraded over dt from each
// in-water element.
func (w *Weatherer) WeatherElements(sc *oilfate.SpillContainer, dt time.Duration, _ time.Time) (float64, error) {
	e := sc.Elements
	if err := e.Require("biodegradation", oilfate.MassComponents.Name, oilfate.DropletAvgSize.Name); err != nil {
		return 0, err
	}
	size, err := e.Scalar(oilfate.DropletAvgSize.Name)
	if err != nil {
		return 0, err
	}
	mass, err := e.Scalar(oilfate.Mass.Name)
	if err != nil {
		return 0, err
	}
	days := dt.Hours() / 24
	var total float64
	for _, g := range sc.SubstanceData() {
		k, ok := w.rates[g.Substance]
		if !ok {
			return 0, &oilfate.MissingDataError{Name: "rate coefficients", Component: "biodegradation"}
		}
		m0 := make(map[int]float64, len(g.Rows))
		for _, i := range g.Rows {
			m0[i] = mass[i]
		}
		removed, err := oilfate.RemoveMass(e, g.Rows, func(i, c int, m float64) float64 {
			r := size[i] / 2
			if m0[i] <= 0 || r <= 0 || c >= len(k) || k[c] == 0 {
				return 0
			}
			return m * (1 - math.Exp(-4*math.Pi*r*r*k[c]*days/m0[i]))
		})
		if err != nil {
			return 0, err
		}
		w.Logger().WithFields(logrus.Fields{
			"substance": g.Substance.Name,
			"elements":  len(g.Rows),
			"removed":   removed,
			"cold":      w.cold,
			"uncertain": sc.Uncertain,
		}).Debug("biodegradation")
		total += removed
	}
	if err := sc.MassBalance.Add(Key, total); err != nil {
		return 0, err
	}
	return total, nil
}
