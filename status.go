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

import "fmt"

// StatusCode specifies which computations an element takes part in.
type StatusCode uint8

// Element status codes.
const (
	NotReleased StatusCode = iota
	InWater
	OnLand
	OffMap
	Evaporated
	ToBeRemoved
)

var statusNames = [...]string{
	NotReleased: "not_released",
	InWater:     "in_water",
	OnLand:      "on_land",
	OffMap:      "off_map",
	Evaporated:  "evaporated",
	ToBeRemoved: "to_be_removed",
}

func (s StatusCode) String() string {
	if int(s) < len(statusNames) {
		return statusNames[s]
	}
	return fmt.Sprintf("StatusCode(%d)", s)
}

// rowsWithStatus returns the indices of the elements that have status s.
func rowsWithStatus(codes []StatusCode, s StatusCode) []int {
	var rows []int
	for i, c := range codes {
		if c == s {
			rows = append(rows, i)
		}
	}
	return rows
}
