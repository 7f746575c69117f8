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

import "time"

// TestStartTime is the release time of the spill created by TestContainer.
var TestStartTime = time.Date(2019, time.January, 1, 0, 0, 0, 0, time.UTC)

// TestSubstance returns a four-component substance for use in tests.
func TestSubstance() *Substance {
	return &Substance{
		Name:             "test oil",
		ReferenceDensity: 900,
		ReferenceTemp:    288.15,
		Components: []Component{
			{Name: "light saturates", Type: Saturates, BoilingPoint: 450, MolecularWeight: 0.14, MassFraction: 0.4},
			{Name: "heavy saturates", Type: Saturates, BoilingPoint: 750, MolecularWeight: 0.45, MassFraction: 0.2},
			{Name: "light aromatics", Type: Aromatics, BoilingPoint: 500, MolecularWeight: 0.13, MassFraction: 0.3},
			{Name: "resins", Type: Resins, BoilingPoint: 800, MolecularWeight: 0.8, MassFraction: 0.1},
		},
	}
}

// TestContainer returns a container holding n in-water elements released
// at TestStartTime from a single spill of kg kilograms of TestSubstance at
// position pos. The element batch holds the default arrays plus the
// given array types. It is meant for testing movers and weatherers.
func TestContainer(n int, pos [3]float64, kg float64, uncertain bool, seed uint64, types ...ArrayType) (*SpillContainer, error) {
	s := &Spill{
		Name:          "test",
		ReleaseTime:   TestStartTime,
		NumElements:   n,
		StartPosition: pos,
		Substance:     TestSubstance(),
		Amount:        kg,
		Units:         "kg",
		FracCoverage:  1,
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	schema, err := NewSchema(s.Substance.Len(), DefaultArrayTypes...)
	if err != nil {
		return nil, err
	}
	if err := schema.Add(types...); err != nil {
		return nil, err
	}
	sc := NewSpillContainer([]*Spill{s}, schema, uncertain, NewSource(seed))
	if _, err := sc.Release(TestStartTime.Add(time.Second)); err != nil {
		return nil, err
	}
	return sc, nil
}
