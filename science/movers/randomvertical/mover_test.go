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

package randomvertical

import (
	"context"
	"math"
	"testing"
	"time"

	"github.com/spatialmodel/oilfate"
	"github.com/spatialmodel/oilfate/science/movers/risevelocity"
	"gonum.org/v1/gonum/stat"
)

func TestSurface(t *testing.T) {
	sc, err := oilfate.TestContainer(1000, [3]float64{0, 0, 0}, 1, false, 1)
	if err != nil {
		t.Fatal(err)
	}
	m := New()
	m.PrepareForModelStep(sc, time.Hour, oilfate.TestStartTime)
	delta, err := m.GetMove(sc, time.Hour, oilfate.TestStartTime)
	if err != nil {
		t.Fatal(err)
	}
	var moved bool
	for i := 0; i < 1000; i++ {
		if delta.At(i, 2) < 0 {
			t.Errorf("element %d would leave the water: %g", i, delta.At(i, 2))
		}
		if delta.At(i, 2) > 0 {
			moved = true
		}
		if delta.At(i, 0) != 0 || delta.At(i, 1) != 0 {
			t.Errorf("element %d moved horizontally", i)
		}
	}
	if !moved {
		t.Error("elements should be mixed downward")
	}
}

func TestMixedLayer(t *testing.T) {
	const n = 10000
	dt := 900 * time.Second
	sc, err := oilfate.TestContainer(n, [3]float64{0, 0, 5}, 1, false, 2)
	if err != nil {
		t.Fatal(err)
	}
	pos, _ := sc.Elements.Vector(oilfate.Positions.Name)
	for i := n / 2; i < n; i++ {
		pos.Set(i, 2, 50)
	}
	m := New()
	m.PrepareForModelStep(sc, dt, oilfate.TestStartTime)
	delta, err := m.GetMove(sc, dt, oilfate.TestStartTime)
	if err != nil {
		t.Fatal(err)
	}
	dz := make([]float64, n)
	for i := range dz {
		dz[i] = delta.At(i, 2)
	}
	above, below := stat.StdDev(dz[:n/2], nil), stat.StdDev(dz[n/2:], nil)
	wantAbove := math.Sqrt(2 * m.CoefAboveML * dt.Seconds())
	wantBelow := math.Sqrt(2 * m.CoefBelowML * dt.Seconds())
	if math.Abs(above-wantAbove)/wantAbove > 0.05 {
		t.Errorf("above mixed layer: have %g, want %g", above, wantAbove)
	}
	if math.Abs(below-wantBelow)/wantBelow > 0.05 {
		t.Errorf("below mixed layer: have %g, want %g", below, wantBelow)
	}
}

func TestModel(t *testing.T) {
	m := &oilfate.Model{
		StartTime: oilfate.TestStartTime,
		Duration:  24 * time.Hour,
		TimeStep:  time.Hour,
		Seed:      3,
		Spills: []*oilfate.Spill{{
			Name:          "test",
			ReleaseTime:   oilfate.TestStartTime,
			NumElements:   500,
			StartPosition: [3]float64{-120, 30, 0},
			Substance:     oilfate.TestSubstance(),
			Amount:        10,
			FracCoverage:  1,
		}},
		Movers: []oilfate.Mover{New()},
	}
	if err := m.Run(context.Background(), nil); err != nil {
		t.Fatal(err)
	}
	pos, _ := m.Containers()[0].Elements.Vector(oilfate.Positions.Name)
	for i := 0; i < 500; i++ {
		if pos.At(i, 2) < 0 {
			t.Errorf("element %d is above the surface: %g", i, pos.At(i, 2))
		}
	}
}

// Rising droplets mixed by vertical diffusion must not be moved above
// the surface by the combined displacement.
func TestWithRiseVelocity(t *testing.T) {
	const n = 200
	m := &oilfate.Model{
		StartTime: oilfate.TestStartTime,
		Duration:  time.Hour,
		TimeStep:  time.Hour,
		Seed:      5,
		Spills: []*oilfate.Spill{{
			Name:          "plume",
			ReleaseTime:   oilfate.TestStartTime,
			NumElements:   n,
			StartPosition: [3]float64{-88, 28, 2},
			Substance:     oilfate.TestSubstance(),
			Amount:        10,
			FracCoverage:  1,
			InitialValues: map[string]float64{oilfate.DropletAvgSize.Name: 2.e-4},
		}},
		Movers: []oilfate.Mover{risevelocity.New(oilfate.DefaultWater()), New()},
	}
	if err := m.Run(context.Background(), nil); err != nil {
		t.Fatal(err)
	}
	pos, _ := m.Containers()[0].Elements.Vector(oilfate.Positions.Name)
	var surface int
	for i := 0; i < n; i++ {
		z := pos.At(i, 2)
		if z < 0 {
			t.Errorf("element %d is above the surface: %g", i, z)
		}
		if z == 0 {
			surface++
		}
	}
	if surface == 0 {
		t.Error("no elements reached the surface")
	}
}

func TestValidate(t *testing.T) {
	m := New()
	if err := m.Validate(); err != nil {
		t.Error(err)
	}
	m.UncertainFactor = 0.5
	if err := m.Validate(); err == nil {
		t.Error("should be an error")
	}
}
