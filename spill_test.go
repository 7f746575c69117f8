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
	"errors"
	"math"
	"testing"
	"time"
)

func TestSubstanceValidate(t *testing.T) {
	if err := TestSubstance().Validate(); err != nil {
		t.Fatal(err)
	}
	for _, test := range []struct {
		name   string
		modify func(s *Substance)
	}{
		{name: "no components", modify: func(s *Substance) { s.Components = nil }},
		{name: "density", modify: func(s *Substance) { s.ReferenceDensity = 0 }},
		{name: "temperature", modify: func(s *Substance) { s.ReferenceTemp = -1 }},
		{name: "boiling point", modify: func(s *Substance) { s.Components[1].BoilingPoint = 0 }},
		{name: "molecular weight", modify: func(s *Substance) { s.Components[2].MolecularWeight = math.NaN() }},
		{name: "fractions", modify: func(s *Substance) { s.Components[0].MassFraction = 0.5 }},
		{name: "negative fraction", modify: func(s *Substance) {
			s.Components[0].MassFraction = 0.6
			s.Components[3].MassFraction = -0.1
		}},
	} {
		t.Run(test.name, func(t *testing.T) {
			s := TestSubstance()
			test.modify(s)
			var ie *InvalidSubstanceError
			if err := s.Validate(); !errors.As(err, &ie) {
				t.Errorf("want InvalidSubstanceError, have %v", err)
			}
		})
	}
}

func TestSubstanceProperties(t *testing.T) {
	s := TestSubstance()
	t.Run("density", func(t *testing.T) {
		if d := s.Density(s.ReferenceTemp); d != s.ReferenceDensity {
			t.Errorf("have %g, want %g", d, s.ReferenceDensity)
		}
		if s.Density(s.ReferenceTemp-10) <= s.ReferenceDensity {
			t.Error("density should increase as temperature decreases")
		}
		if s.Density(s.ReferenceTemp+10) >= s.ReferenceDensity {
			t.Error("density should decrease as temperature increases")
		}
	})
	t.Run("vapor pressure at boiling point", func(t *testing.T) {
		for i, c := range s.Components {
			vp := s.VaporPressure(c.BoilingPoint)[i]
			if different(vp, AtmosphericPressure, 1.e-10) {
				t.Errorf("component %d: have %g, want %g", i, vp, AtmosphericPressure)
			}
		}
	})
	t.Run("vapor pressure", func(t *testing.T) {
		cold := s.VaporPressure(273.15)
		warm := s.VaporPressure(303.15)
		for i := range cold {
			if !(warm[i] > cold[i]) {
				t.Errorf("component %d: vapor pressure should increase with temperature: %g, %g", i, cold[i], warm[i])
			}
		}
		if !(cold[0] > cold[1]) {
			t.Errorf("lighter components should be more volatile: %g, %g", cold[0], cold[1])
		}
	})
}

func TestSpillRelease(t *testing.T) {
	t0 := TestStartTime
	s := &Spill{Name: "s", ReleaseTime: t0, NumElements: 10, Substance: TestSubstance(), Amount: 100}

	t.Run("instantaneous", func(t *testing.T) {
		for _, test := range []struct {
			until time.Time
			want  int
		}{
			{until: t0.Add(-time.Second), want: 0},
			{until: t0, want: 0},
			{until: t0.Add(time.Nanosecond), want: 10},
			{until: t0.Add(time.Hour), want: 10},
		} {
			if n := s.NumToRelease(test.until); n != test.want {
				t.Errorf("%v: have %d, want %d", test.until, n, test.want)
			}
		}
	})
	t.Run("continuous", func(t *testing.T) {
		c := *s
		c.EndReleaseTime = t0.Add(time.Hour)
		for _, test := range []struct {
			until time.Time
			want  int
		}{
			{until: t0, want: 0},
			{until: t0.Add(30 * time.Minute), want: 5},
			{until: t0.Add(59 * time.Minute), want: 9},
			{until: t0.Add(time.Hour), want: 10},
			{until: t0.Add(2 * time.Hour), want: 10},
		} {
			if n := c.NumToRelease(test.until); n != test.want {
				t.Errorf("%v: have %d, want %d", test.until, n, test.want)
			}
		}
	})
}

func TestSpillMass(t *testing.T) {
	sub := TestSubstance()
	for _, test := range []struct {
		amount float64
		units  string
		want   float64
	}{
		{amount: 100, units: "kg", want: 100},
		{amount: 100, units: "", want: 100},
		{amount: 5000, units: "g", want: 5},
		{amount: 2, units: "tonnes", want: 2000},
		{amount: 2, units: "m^3", want: 1800},
		{amount: 1, units: "bbl", want: barrel * 900},
		{amount: 10, units: "gal", want: 10 * gallon * 900},
	} {
		t.Run(test.units, func(t *testing.T) {
			s := &Spill{Name: "s", Substance: sub, Amount: test.amount, Units: test.units}
			kg, err := s.MassKg()
			if err != nil {
				t.Fatal(err)
			}
			if different(kg, test.want, 1.e-12) {
				t.Errorf("have %g, want %g", kg, test.want)
			}
		})
	}
	t.Run("invalid", func(t *testing.T) {
		s := &Spill{Name: "s", Substance: sub, Amount: 1, Units: "furlongs"}
		if _, err := s.MassKg(); err == nil {
			t.Error("should be an error")
		}
	})
}

func TestSpillValidate(t *testing.T) {
	valid := func() *Spill {
		return &Spill{Name: "s", ReleaseTime: TestStartTime, NumElements: 10,
			Substance: TestSubstance(), Amount: 100, FracCoverage: 1}
	}
	if err := valid().Validate(); err != nil {
		t.Fatal(err)
	}
	for _, test := range []struct {
		name   string
		modify func(s *Spill)
	}{
		{name: "elements", modify: func(s *Spill) { s.NumElements = 0 }},
		{name: "window", modify: func(s *Spill) { s.EndReleaseTime = s.ReleaseTime.Add(-time.Hour) }},
		{name: "coverage", modify: func(s *Spill) { s.FracCoverage = 1.5 }},
		{name: "water", modify: func(s *Spill) { s.FracWater = -0.5 }},
		{name: "amount", modify: func(s *Spill) { s.Amount = -1 }},
		{name: "units", modify: func(s *Spill) { s.Units = "furlongs" }},
	} {
		t.Run(test.name, func(t *testing.T) {
			s := valid()
			test.modify(s)
			var ce *ConfigurationError
			if err := s.Validate(); !errors.As(err, &ce) {
				t.Errorf("want ConfigurationError, have %v", err)
			}
		})
	}
	t.Run("substance", func(t *testing.T) {
		s := valid()
		s.Substance = nil
		var me *MissingDataError
		if err := s.Validate(); !errors.As(err, &me) {
			t.Errorf("want MissingDataError, have %v", err)
		}
		s.Substance = TestSubstance()
		s.Substance.ReferenceDensity = 0
		var ie *InvalidSubstanceError
		if err := s.Validate(); !errors.As(err, &ie) {
			t.Errorf("want InvalidSubstanceError, have %v", err)
		}
	})
}

func TestSpillInitialize(t *testing.T) {
	end := [3]float64{-119, 35, 10}
	s := &Spill{
		Name:          "line",
		ReleaseTime:   TestStartTime,
		NumElements:   5,
		StartPosition: [3]float64{-120, 34, 0},
		EndPosition:   &end,
		Substance:     TestSubstance(),
		Amount:        50,
		InitialValues: map[string]float64{DropletAvgSize.Name: 1.e-4, "not_an_array": 3},
	}
	schema, err := NewSchema(4, append(DefaultArrayTypes, DropletAvgSize)...)
	if err != nil {
		t.Fatal(err)
	}
	e := NewElements(schema)
	first := e.Append(5)
	if err := s.initialize(e, first, 5, 0, 2); err != nil {
		t.Fatal(err)
	}
	pos, _ := e.Vector(Positions.Name)
	wantLon := []float64{-120, -119.75, -119.5, -119.25, -119}
	wantDepth := []float64{0, 2.5, 5, 7.5, 10}
	for i := 0; i < 5; i++ {
		if math.Abs(pos.At(i, 0)-wantLon[i]) > 1.e-12 || math.Abs(pos.At(i, 2)-wantDepth[i]) > 1.e-12 {
			t.Errorf("element %d: position (%g, %g, %g)", i, pos.At(i, 0), pos.At(i, 1), pos.At(i, 2))
		}
	}
	mass, _ := e.Scalar(Mass.Name)
	mc, _ := e.Vector(MassComponents.Name)
	sn, _ := e.Scalar(SpillNum.Name)
	dsize, _ := e.Scalar(DropletAvgSize.Name)
	codes, _ := e.Status()
	fracs := s.Substance.MassFractions()
	for i := 0; i < 5; i++ {
		if mass[i] != 10 {
			t.Errorf("element %d mass: have %g, want 10", i, mass[i])
		}
		var sum float64
		for k := range fracs {
			if different(mc.At(i, k), 10*fracs[k], 1.e-12) {
				t.Errorf("element %d component %d: have %g, want %g", i, k, mc.At(i, k), 10*fracs[k])
			}
			sum += mc.At(i, k)
		}
		if different(sum, mass[i], 1.e-12) {
			t.Errorf("element %d: components sum to %g, mass is %g", i, sum, mass[i])
		}
		if codes[i] != InWater || sn[i] != 2 || dsize[i] != 1.e-4 {
			t.Errorf("element %d: status %s, spill %g, droplet size %g", i, codes[i], sn[i], dsize[i])
		}
	}
}
