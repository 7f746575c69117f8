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
	"time"

	"golang.org/x/exp/rand"
)

// SpillContainer holds the elements, spills and mass balance of one
// realization of a model run. An uncertain run has a second, independent
// container.
type SpillContainer struct {
	Spills      []*Spill
	Elements    *Elements
	MassBalance MassBalance

	// Uncertain is true for the container of the uncertain realization.
	Uncertain bool

	// Rand is the source of all random draws for this container.
	Rand rand.Source

	// released holds the number of elements released by each spill.
	released []int
}

// NewSpillContainer creates a container for the given spills whose
// elements hold the arrays in schema.
func NewSpillContainer(spills []*Spill, schema *Schema, uncertain bool, src rand.Source) *SpillContainer {
	return &SpillContainer{
		Spills:      spills,
		Elements:    NewElements(schema),
		MassBalance: make(MassBalance),
		Uncertain:   uncertain,
		Rand:        src,
		released:    make([]int, len(spills)),
	}
}

// Release adds the elements of every spill that are due to be released
// before time until. It returns the number of elements added.
func (sc *SpillContainer) Release(until time.Time) (int, error) {
	var added int
	for i, s := range sc.Spills {
		n := s.NumToRelease(until) - sc.released[i]
		if n <= 0 {
			continue
		}
		first := sc.Elements.Append(n)
		if err := s.initialize(sc.Elements, first, n, sc.released[i], i); err != nil {
			return added, err
		}
		kg, err := s.MassKg()
		if err != nil {
			return added, err
		}
		sc.MassBalance[AmountReleased] += kg * float64(n) / float64(s.NumElements)
		sc.released[i] += n
		added += n
	}
	return added, nil
}

// NumReleased returns the number of elements that have been released.
func (sc *SpillContainer) NumReleased() int { return sc.Elements.Len() }

// InWater returns the indices of the elements that are in the water.
func (sc *SpillContainer) InWater() []int {
	codes, err := sc.Elements.Status()
	if err != nil {
		return nil
	}
	return rowsWithStatus(codes, InWater)
}

// SpillMask returns the indices of the elements released by spill i.
func (sc *SpillContainer) SpillMask(i int) []int {
	sn, err := sc.Elements.Scalar(SpillNum.Name)
	if err != nil {
		return nil
	}
	var rows []int
	for r, v := range sn {
		if int(v) == i {
			rows = append(rows, r)
		}
	}
	return rows
}

// SubstanceGroup is the set of in-water elements that hold a given
// substance.
type SubstanceGroup struct {
	Substance *Substance
	Rows      []int

	// Spills holds the indices of the spills of this substance.
	Spills []int
}

// SubstanceData groups the in-water elements by substance. Groups are
// returned in the order the substances first appear among the spills,
// and substances with no in-water elements are skipped.
func (sc *SpillContainer) SubstanceData() []SubstanceGroup {
	codes, err := sc.Elements.Status()
	if err != nil {
		return nil
	}
	sn, err := sc.Elements.Scalar(SpillNum.Name)
	if err != nil {
		return nil
	}
	var groups []SubstanceGroup
	index := make(map[*Substance]int)
	for i, s := range sc.Spills {
		g, ok := index[s.Substance]
		if !ok {
			g = len(groups)
			index[s.Substance] = g
			groups = append(groups, SubstanceGroup{Substance: s.Substance})
		}
		groups[g].Spills = append(groups[g].Spills, i)
	}
	for r, c := range codes {
		if c != InWater {
			continue
		}
		g := index[sc.Spills[int(sn[r])].Substance]
		groups[g].Rows = append(groups[g].Rows, r)
	}
	o := groups[:0]
	for _, g := range groups {
		if len(g.Rows) > 0 {
			o = append(o, g)
		}
	}
	return o
}

// updateMassSnapshot records the mass currently floating, on land, and
// off the map.
func (sc *SpillContainer) updateMassSnapshot() error {
	codes, err := sc.Elements.Status()
	if err != nil {
		return err
	}
	mass, err := sc.Elements.Scalar(Mass.Name)
	if err != nil {
		return err
	}
	var floating, onLand, offMap float64
	for i, c := range codes {
		switch c {
		case InWater:
			floating += mass[i]
		case OnLand:
			onLand += mass[i]
		case OffMap:
			offMap += mass[i]
		}
	}
	sc.MassBalance[Floating] = floating
	sc.MassBalance[OnLandMass] = onLand
	sc.MassBalance[OffMapsMass] = offMap
	return nil
}

type containerSnapshot struct {
	elements *Elements
	mb       MassBalance
	released []int
}

func (sc *SpillContainer) snapshot() containerSnapshot {
	return containerSnapshot{
		elements: sc.Elements.Clone(),
		mb:       sc.MassBalance.Copy(),
		released: append([]int(nil), sc.released...),
	}
}

func (sc *SpillContainer) restore(s containerSnapshot) {
	sc.Elements.Restore(s.elements)
	sc.MassBalance.restore(s.mb)
	copy(sc.released, s.released)
}
