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
	"sort"
)

// Mass balance keys recorded by the model rather than by weatherers.
// These hold totals for the current step rather than cumulative values,
// except for AmountReleased.
const (
	AmountReleased = "amount_released"
	Floating       = "floating"
	OnLandMass     = "on_land"
	OffMapsMass    = "off_maps"
)

// MassBalance holds the cumulative mass [kg] removed by each weathering
// process, keyed by process name.
type MassBalance map[string]float64

// Register sets key to zero if it is not already present.
func (mb MassBalance) Register(key string) {
	if _, ok := mb[key]; !ok {
		mb[key] = 0
	}
}

// Add adds kg to the value for key. It returns an error if kg is negative,
// because process entries may only increase.
func (mb MassBalance) Add(key string, kg float64) error {
	if kg < 0 {
		return fmt.Errorf("oilfate: negative mass %g added to mass balance key %q", kg, key)
	}
	mb[key] += kg
	return nil
}

// Keys returns the sorted keys of the ledger.
func (mb MassBalance) Keys() []string {
	keys := make([]string, 0, len(mb))
	for k := range mb {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Copy returns a copy of the ledger.
func (mb MassBalance) Copy() MassBalance {
	o := make(MassBalance, len(mb))
	for k, v := range mb {
		o[k] = v
	}
	return o
}

// restore replaces the contents of mb with the contents of from.
func (mb MassBalance) restore(from MassBalance) {
	for k := range mb {
		delete(mb, k)
	}
	for k, v := range from {
		mb[k] = v
	}
}
