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

package evaporation

import (
	"context"
	"errors"
	"math"
	"strings"
	"testing"
	"time"

	"github.com/spatialmodel/oilfate"
)

func different(a, b, tolerance float64) bool {
	if 2*math.Abs(a-b)/math.Abs(a+b) > tolerance || math.IsNaN(a) || math.IsNaN(b) {
		return true
	}
	return false
}

func TestMassTransferRate(t *testing.T) {
	for _, test := range []struct{ u, want float64 }{
		{u: 0, want: 0},
		{u: 5, want: 0.0025 * math.Pow(5, 0.78)},
		{u: 10, want: 0.0025 * math.Pow(10, 0.78)},
		{u: 20, want: 0.06 * 0.0025 * 400},
	} {
		if k := MassTransferRate(test.u); different(k, test.want, 1.e-12) {
			t.Errorf("u=%g: have %g, want %g", test.u, k, test.want)
		}
	}
}

func newWeatherer() *Weatherer {
	w := New(oilfate.ConstantScalar(5), oilfate.DefaultWater())
	w.Thickness = 0.001
	return w
}

func testModel(w ...oilfate.Weatherer) *oilfate.Model {
	return &oilfate.Model{
		StartTime: oilfate.TestStartTime,
		Duration:  6 * time.Hour,
		TimeStep:  time.Hour,
		Seed:      1,
		Spills: []*oilfate.Spill{{
			Name:          "test",
			ReleaseTime:   oilfate.TestStartTime,
			NumElements:   10,
			StartPosition: [3]float64{-120, 30, 0},
			Substance:     oilfate.TestSubstance(),
			Amount:        10,
			FracCoverage:  1,
		}},
		Weatherers: w,
	}
}

func TestEvaporation(t *testing.T) {
	w := newWeatherer()
	m := testModel(w)
	var last float64
	err := m.Run(context.Background(), func(r *oilfate.StepResult) error {
		mb := r.MassBalance
		if mb[Key] < last {
			t.Errorf("step %d: evaporated mass decreased from %g to %g", r.Step, last, mb[Key])
		}
		if mb[Key] == last {
			t.Errorf("step %d: nothing evaporated", r.Step)
		}
		last = mb[Key]
		if different(mb[Key]+mb[oilfate.Floating], mb[oilfate.AmountReleased], 1.e-10) {
			t.Errorf("step %d: mass is not conserved: %g + %g != %g", r.Step,
				mb[Key], mb[oilfate.Floating], mb[oilfate.AmountReleased])
		}
		return nil
	})
	if err != nil {
		t.Fatal(err)
	}

	e := m.Containers()[0].Elements
	mc, _ := e.Vector(oilfate.MassComponents.Name)
	mass, _ := e.Scalar(oilfate.Mass.Name)
	fracs := oilfate.TestSubstance().MassFractions()
	remaining := func(k int) float64 { return mc.At(0, k) / fracs[k] }
	if !(remaining(0) < remaining(2) && remaining(2) < remaining(1)) {
		t.Errorf("volatile components should evaporate first: %g, %g, %g",
			remaining(0), remaining(2), remaining(1))
	}
	var sum float64
	for k := range fracs {
		sum += mc.At(0, k)
	}
	if different(sum, mass[0], 1.e-12) {
		t.Errorf("mass %g should equal the sum of the components %g", mass[0], sum)
	}
	density, _ := e.Scalar(oilfate.Density.Name)
	if density[0] != oilfate.TestSubstance().Density(288.15) {
		t.Errorf("density: have %g", density[0])
	}
}

func TestWindDependence(t *testing.T) {
	evaporated := func(u float64) float64 {
		w := newWeatherer()
		w.WindSpeed = oilfate.ConstantScalar(u)
		m := testModel(w)
		if err := m.Run(context.Background(), nil); err != nil {
			t.Fatal(err)
		}
		return m.Containers()[0].MassBalance[Key]
	}
	calm, windy := evaporated(1), evaporated(15)
	if !(windy > calm) {
		t.Errorf("more should evaporate in higher winds: %g, %g", calm, windy)
	}
}

func TestInactive(t *testing.T) {
	w := newWeatherer()
	w.ActiveStart = oilfate.TestStartTime.Add(time.Hour)
	sc, err := oilfate.TestContainer(5, [3]float64{0, 0, 0}, 5, false, 1, w.ArrayTypes()...)
	if err != nil {
		t.Fatal(err)
	}
	if err := w.PrepareForModelStep(sc, time.Hour, oilfate.TestStartTime); err != nil {
		t.Fatal(err)
	}
	if w.Active() {
		t.Fatal("weatherer should not be active")
	}
	for _, name := range []string{oilfate.Density.Name, oilfate.Thickness.Name, oilfate.Mol.Name} {
		d, _ := sc.Elements.Scalar(name)
		for i, v := range d {
			if v != 0 {
				t.Errorf("%s[%d] changed to %g", name, i, v)
			}
		}
	}
	edc, _ := sc.Elements.Vector(oilfate.EvapDecayConstant.Name)
	for _, v := range edc.RawMatrix().Data {
		if v != 0 {
			t.Fatal("evaporation decay constants should not change")
		}
	}

	t.Run("off", func(t *testing.T) {
		w := newWeatherer()
		w.On = false
		m := testModel(w)
		if err := m.Run(context.Background(), nil); err != nil {
			t.Fatal(err)
		}
		mb := m.Containers()[0].MassBalance
		if _, ok := mb[Key]; ok {
			t.Error("switched-off weatherer should not register its key")
		}
		if mb[oilfate.Floating] != mb[oilfate.AmountReleased] {
			t.Errorf("nothing should evaporate: %v", mb)
		}
	})
}

func TestComplete(t *testing.T) {
	light := &oilfate.Substance{
		Name:             "light",
		ReferenceDensity: 700,
		ReferenceTemp:    288.15,
		Components: []oilfate.Component{
			{Name: "c5", Type: oilfate.Saturates, BoilingPoint: 350, MolecularWeight: 0.1, MassFraction: 1},
		},
	}
	w := New(oilfate.ConstantScalar(10), oilfate.DefaultWater())
	w.Thickness = 1.e-4
	m := testModel(w)
	m.Spills[0].Substance = light
	if err := m.Run(context.Background(), nil); err != nil {
		t.Fatal(err)
	}
	sc := m.Containers()[0]
	codes, _ := sc.Elements.Status()
	for i, c := range codes {
		if c != oilfate.Evaporated {
			t.Errorf("element %d: status %s", i, c)
		}
	}
	if mb := sc.MassBalance; different(mb[Key], 10, 1.e-9) || mb[oilfate.Floating] > 1.e-9 {
		t.Errorf("mass balance: %v", mb)
	}
}

func TestMissingData(t *testing.T) {
	sc, err := oilfate.TestContainer(5, [3]float64{0, 0, 0}, 5, false, 1)
	if err != nil {
		t.Fatal(err)
	}
	w := newWeatherer()
	var me *oilfate.MissingDataError
	if err := w.PrepareForModelStep(sc, time.Hour, oilfate.TestStartTime); !errors.As(err, &me) {
		t.Errorf("want MissingDataError, have %v", err)
	}
	w.WindSpeed = nil
	if err := w.Validate(); !errors.As(err, &me) {
		t.Errorf("want MissingDataError, have %v", err)
	}
}

func TestWrongArrayKind(t *testing.T) {
	thickness := oilfate.ArrayType{Name: oilfate.Thickness.Name, Kind: oilfate.VectorKind, Width: 3}
	sc, err := oilfate.TestContainer(5, [3]float64{0, 0, 0}, 5, false, 1,
		oilfate.Density, thickness, oilfate.Mol, oilfate.EvapDecayConstant)
	if err != nil {
		t.Fatal(err)
	}
	w := newWeatherer()
	err = w.PrepareForModelStep(sc, time.Hour, oilfate.TestStartTime)
	if err == nil || !strings.Contains(err.Error(), oilfate.Thickness.Name) {
		t.Errorf("want error naming %q, have %v", oilfate.Thickness.Name, err)
	}
}
