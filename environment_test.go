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
	"math"
	"testing"
	"time"

	"github.com/ctessum/geom"
	"gonum.org/v1/gonum/mat"
)

func TestTimeSeries(t *testing.T) {
	t0 := TestStartTime
	ts, err := NewTimeSeries([]time.Time{t0, t0.Add(time.Hour), t0.Add(3 * time.Hour)}, []float64{0, 10, 0})
	if err != nil {
		t.Fatal(err)
	}
	for _, test := range []struct {
		t    time.Time
		want float64
	}{
		{t: t0.Add(-time.Hour), want: 0},
		{t: t0, want: 0},
		{t: t0.Add(30 * time.Minute), want: 5},
		{t: t0.Add(time.Hour), want: 10},
		{t: t0.Add(2 * time.Hour), want: 5},
		{t: t0.Add(10 * time.Hour), want: 0},
	} {
		v, err := ts.SampleAt(test.t)
		if err != nil {
			t.Fatal(err)
		}
		if math.Abs(v-test.want) > 1.e-12 {
			t.Errorf("%v: have %g, want %g", test.t, v, test.want)
		}
	}

	t.Run("single", func(t *testing.T) {
		ts, err := NewTimeSeries([]time.Time{t0}, []float64{4})
		if err != nil {
			t.Fatal(err)
		}
		if v, _ := ts.SampleAt(t0.Add(time.Hour)); v != 4 {
			t.Errorf("have %g, want 4", v)
		}
	})
	t.Run("mismatch", func(t *testing.T) {
		if _, err := NewTimeSeries([]time.Time{t0}, []float64{1, 2}); err == nil {
			t.Error("should be an error")
		}
		if _, err := NewTimeSeries(nil, nil); err == nil {
			t.Error("should be an error")
		}
	})
}

func TestWind(t *testing.T) {
	for _, test := range []struct {
		dir  float64
		want [2]float64
	}{
		{dir: 0, want: [2]float64{0, -5}},
		{dir: 90, want: [2]float64{-5, 0}},
		{dir: 180, want: [2]float64{0, 5}},
		{dir: 270, want: [2]float64{5, 0}},
	} {
		w := ConstantWind{Speed: 5, Direction: test.dir}
		uv, err := w.SampleAt(TestStartTime)
		if err != nil {
			t.Fatal(err)
		}
		if math.Abs(uv[0]-test.want[0]) > 1.e-12 || math.Abs(uv[1]-test.want[1]) > 1.e-12 {
			t.Errorf("from %g°: have %v, want %v", test.dir, uv, test.want)
		}
		if s, _ := w.SpeedSampler().SampleAt(TestStartTime); s != 5 {
			t.Errorf("speed: have %g, want 5", s)
		}
	}
	t.Run("series", func(t *testing.T) {
		t0 := TestStartTime
		w, err := NewWindSeries([]time.Time{t0, t0.Add(time.Hour)}, []float64{2, 4}, []float64{270, 270})
		if err != nil {
			t.Fatal(err)
		}
		uv, _ := w.SampleAt(t0.Add(30 * time.Minute))
		if math.Abs(uv[0]-3) > 1.e-12 || math.Abs(uv[1]) > 1.e-12 {
			t.Errorf("have %v, want [3 0]", uv)
		}
		if s, _ := w.SpeedSampler().SampleAt(t0.Add(time.Hour)); s != 4 {
			t.Errorf("speed: have %g, want 4", s)
		}
	})
	t.Run("north", func(t *testing.T) {
		t0 := TestStartTime
		times := []time.Time{t0, t0.Add(2 * time.Hour), t0.Add(4 * time.Hour)}
		w, err := NewWindSeries(times, []float64{10, 10, 10}, []float64{350, 10, 340})
		if err != nil {
			t.Fatal(err)
		}
		for _, test := range []struct {
			at   time.Duration
			want [2]float64
		}{
			{at: time.Hour, want: [2]float64{0, -10}},
			{at: 3 * time.Hour, want: windUV(10, 355)},
		} {
			uv, _ := w.SampleAt(t0.Add(test.at))
			if math.Abs(uv[0]-test.want[0]) > 1.e-9 || math.Abs(uv[1]-test.want[1]) > 1.e-9 {
				t.Errorf("at %v: have %v, want %v", test.at, uv, test.want)
			}
		}
	})
}

func TestPerturb(t *testing.T) {
	base := func() *mat.Dense {
		return mat.NewDense(4, 3, []float64{
			10, -20, 0,
			1, 1, 1,
			0, 0, 0,
			100, 0, -5,
		})
	}
	rows := []int{0, 1, 3}

	t.Run("proportional", func(t *testing.T) {
		a, b := base(), base()
		ProportionalPerturb(a, rows, 0.5, NewSource(7))
		ProportionalPerturb(b, rows, 0.5, NewSource(7))
		if !mat.Equal(a, b) {
			t.Error("same seed should give the same draws")
		}
		c := base()
		ProportionalPerturb(c, rows, 0.5, NewSource(8))
		if mat.Equal(a, c) {
			t.Error("different seeds should give different draws")
		}
		orig := base()
		for i := 0; i < 4; i++ {
			for j := 0; j < 3; j++ {
				v := orig.At(i, j)
				if math.Abs(a.At(i, j)-v) > 0.5*math.Abs(v) {
					t.Errorf("(%d, %d): %g is too far from %g", i, j, a.At(i, j), v)
				}
			}
		}
		if !mat.Equal(a.RowView(2), orig.RowView(2)) {
			t.Error("rows that are not listed should not change")
		}
		if a.At(0, 0) == orig.At(0, 0) {
			t.Error("listed rows should change")
		}
	})
	t.Run("zero scale", func(t *testing.T) {
		a := base()
		ProportionalPerturb(a, rows, 0, NewSource(7))
		if !mat.Equal(a, base()) {
			t.Error("zero scale should not change the displacement")
		}
	})
	t.Run("uniform", func(t *testing.T) {
		a := base()
		scale := [3]float64{1, 2, 0}
		UniformPerturb(a, rows, scale, NewSource(3))
		orig := base()
		for _, i := range rows {
			for j := 0; j < 3; j++ {
				if math.Abs(a.At(i, j)-orig.At(i, j)) > scale[j] {
					t.Errorf("(%d, %d): %g is too far from %g", i, j, a.At(i, j), orig.At(i, j))
				}
			}
		}
		if a.At(2, 0) != 0 || a.At(2, 1) != 0 {
			t.Error("rows that are not listed should not change")
		}
	})
}

func TestMassBalance(t *testing.T) {
	mb := make(MassBalance)
	mb.Register("evaporated")
	mb.Register("evaporated")
	if err := mb.Add("evaporated", 2); err != nil {
		t.Fatal(err)
	}
	mb.Register("evaporated")
	if mb["evaporated"] != 2 {
		t.Errorf("registering twice should not reset the value: %g", mb["evaporated"])
	}
	if err := mb.Add("evaporated", -1); err == nil {
		t.Error("should be an error")
	}
	if err := mb.Add("bio_degradation", 1); err != nil {
		t.Fatal(err)
	}
	c := mb.Copy()
	mb["evaporated"] = 10
	if c["evaporated"] != 2 {
		t.Error("copy should not share storage")
	}
	mb.restore(c)
	if mb["evaporated"] != 2 || len(mb) != 2 {
		t.Errorf("restore: have %v", mb)
	}
	if k := mb.Keys(); len(k) != 2 || k[0] != "bio_degradation" || k[1] != "evaporated" {
		t.Errorf("keys: have %v", k)
	}
}

func square(x0, y0, x1, y1 float64) geom.Polygon {
	return geom.Polygon{{{X: x0, Y: y0}, {X: x1, Y: y0}, {X: x1, Y: y1}, {X: x0, Y: y1}, {X: x0, Y: y0}}}
}

func TestPolygonMap(t *testing.T) {
	m := NewPolygonMap(square(-10, -10, 10, 10), square(0, 0, 5, 5))
	for _, test := range []struct {
		p             [3]float64
		onMap, onLand bool
	}{
		{p: [3]float64{-5, -5, 0}, onMap: true},
		{p: [3]float64{2, 2, 0}, onMap: true, onLand: true},
		{p: [3]float64{5, 2, 0}, onMap: true},
		{p: [3]float64{10, 3, 0}, onMap: true},
		{p: [3]float64{11, 3, 0}},
		{p: [3]float64{7, 7, 0}, onMap: true},
	} {
		if m.OnMap(test.p) != test.onMap || m.OnLand(test.p) != test.onLand {
			t.Errorf("%v: have (%v, %v), want (%v, %v)", test.p, m.OnMap(test.p), m.OnLand(test.p), test.onMap, test.onLand)
		}
	}

	t.Run("apply", func(t *testing.T) {
		sc, err := TestContainer(3, [3]float64{-5, -5, 0}, 3, false, 1)
		if err != nil {
			t.Fatal(err)
		}
		pos, _ := sc.Elements.Vector(Positions.Name)
		pos.Set(1, 0, 2)
		pos.Set(1, 1, 2)
		pos.Set(2, 0, 20)
		if err := applyMap(m, sc); err != nil {
			t.Fatal(err)
		}
		codes, _ := sc.Elements.Status()
		if codes[0] != InWater || codes[1] != OnLand || codes[2] != OffMap {
			t.Errorf("have %v", codes)
		}
		if err := sc.updateMassSnapshot(); err != nil {
			t.Fatal(err)
		}
		if sc.MassBalance[Floating] != 1 || sc.MassBalance[OnLandMass] != 1 || sc.MassBalance[OffMapsMass] != 1 {
			t.Errorf("mass balance: %v", sc.MassBalance)
		}
	})

	t.Run("unbounded", func(t *testing.T) {
		m := NewPolygonMap(nil)
		if !m.OnMap([3]float64{1000, 1000, 0}) || m.OnLand([3]float64{0, 0, 0}) {
			t.Error("a map with no polygons should be all water")
		}
	})
}
