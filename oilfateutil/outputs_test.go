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

package oilfateutil

import (
	"math"
	"strings"
	"testing"

	"github.com/spatialmodel/oilfate"
)

func different(a, b, tolerance float64) bool {
	if 2*math.Abs(a-b)/math.Abs(a+b) > tolerance || math.IsNaN(a) || math.IsNaN(b) {
		return true
	}
	return false
}

func TestOutputter(t *testing.T) {
	o, err := NewOutputter(map[string]string{
		"Remaining": "frac(floating, amount_released)",
		"Lost":      "sum(evaporated, bio_degradation,\n on_land)",
		"Percent":   "Remaining * 100",
		"Growth":    "exp(0)",
		"None":      "frac(floating, off_maps)",
	})
	if err != nil {
		t.Fatal(err)
	}
	mb := oilfate.MassBalance{
		oilfate.AmountReleased: 10,
		oilfate.Floating:       6,
		oilfate.OnLandMass:     1,
		oilfate.OffMapsMass:    0,
		"evaporated":           2,
		"bio_degradation":      1,
	}
	vals, err := o.Evaluate(mb)
	if err != nil {
		t.Fatal(err)
	}
	want := map[string]float64{
		"Remaining": 0.6,
		"Lost":      4,
		"Percent":   60,
		"Growth":    1,
		"None":      0,
	}
	for k, w := range want {
		if different(vals[k], w, 1.e-10) {
			t.Errorf("%s: have %g, want %g", k, vals[k], w)
		}
	}
	if len(vals) != len(want) {
		t.Errorf("have %d values, want %d", len(vals), len(want))
	}
	if s := o.Format(map[string]float64{"b": 2, "a": 1}); s != "a=1\tb=2" {
		t.Errorf("format: %q", s)
	}
}

func TestOutputterErrors(t *testing.T) {
	tests := []struct {
		name string
		vars map[string]string
		want string
	}{
		{name: "cycle", vars: map[string]string{"a": "b + 1", "b": "a + 1"}, want: "circular reference"},
		{name: "self", vars: map[string]string{"a": "a + 1"}, want: "refers to itself"},
		{name: "syntax", vars: map[string]string{"a": "(floating"}, want: "output variable a"},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			_, err := NewOutputter(test.vars)
			if err == nil {
				t.Fatal("expected an error")
			}
			if !strings.Contains(err.Error(), test.want) {
				t.Errorf("error %q should contain %q", err, test.want)
			}
		})
	}

	o, err := NewOutputter(map[string]string{"a": "frac(floating)"})
	if err != nil {
		t.Fatal(err)
	}
	if _, err := o.Evaluate(oilfate.MassBalance{oilfate.Floating: 1}); err == nil {
		t.Error("expected an error for the wrong number of arguments")
	}
}
