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

// Kind is the semantic type of an element data array.
type Kind int

// Data array kinds.
const (
	// ScalarKind arrays hold one value per element.
	ScalarKind Kind = iota

	// VectorKind arrays hold a fixed number of values per element,
	// specified by ArrayType.Width.
	VectorKind

	// ComponentsKind arrays hold one value per substance component
	// for each element.
	ComponentsKind

	// StatusKind arrays hold one StatusCode per element.
	StatusKind
)

func (k Kind) String() string {
	switch k {
	case ScalarKind:
		return "scalar"
	case VectorKind:
		return "vector"
	case ComponentsKind:
		return "components"
	case StatusKind:
		return "status"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// ArrayType describes a per-element data array that a component needs.
type ArrayType struct {
	Name string
	Kind Kind

	// Width is the number of values per element for VectorKind arrays.
	Width int

	// Default is the initial value given to each new element.
	Default float64
}

// Standard array types.
var (
	Positions         = ArrayType{Name: "positions", Kind: VectorKind, Width: 3}
	StatusCodes       = ArrayType{Name: "status_codes", Kind: StatusKind, Default: float64(NotReleased)}
	SpillNum          = ArrayType{Name: "spill_num", Kind: ScalarKind}
	Mass              = ArrayType{Name: "mass", Kind: ScalarKind}
	MassComponents    = ArrayType{Name: "mass_components", Kind: ComponentsKind}
	Age               = ArrayType{Name: "age", Kind: ScalarKind}
	Density           = ArrayType{Name: "density", Kind: ScalarKind}
	Thickness         = ArrayType{Name: "thickness", Kind: ScalarKind}
	Mol               = ArrayType{Name: "mol", Kind: ScalarKind}
	EvapDecayConstant = ArrayType{Name: "evap_decay_constant", Kind: ComponentsKind}
	DropletAvgSize    = ArrayType{Name: "droplet_avg_size", Kind: ScalarKind}
	RiseVel           = ArrayType{Name: "rise_vel", Kind: ScalarKind}
	Windages          = ArrayType{Name: "windages", Kind: ScalarKind}
)

// DefaultArrayTypes are the arrays that every element batch holds,
// regardless of which movers and weatherers are active.
var DefaultArrayTypes = []ArrayType{Positions, StatusCodes, SpillNum, Mass, MassComponents, Age}

// Schema is the set of data arrays held by an element batch. A Schema
// is built for each run by composing the array types declared by every
// component before the batch is allocated.
type Schema struct {
	// NumComponents is the number of substance components held
	// by ComponentsKind arrays.
	NumComponents int

	types map[string]ArrayType
}

// NewSchema creates a schema holding the given array types.
func NewSchema(numComponents int, types ...ArrayType) (*Schema, error) {
	s := &Schema{NumComponents: numComponents, types: make(map[string]ArrayType)}
	if err := s.Add(types...); err != nil {
		return nil, err
	}
	return s, nil
}

// Add adds array types to the schema. Declaring the same array twice
// is allowed as long as the declarations agree.
func (s *Schema) Add(types ...ArrayType) error {
	for _, t := range types {
		if t.Name == "" {
			return &ConfigurationError{Field: "array type", Reason: "array name is empty"}
		}
		if t.Kind == VectorKind && t.Width <= 0 {
			return &ConfigurationError{Field: t.Name, Reason: fmt.Sprintf("vector width %d should be > 0", t.Width)}
		}
		if old, ok := s.types[t.Name]; ok {
			if old.Kind != t.Kind || old.Width != t.Width {
				return &ConfigurationError{Field: t.Name,
					Reason: fmt.Sprintf("declared as both %s(%d) and %s(%d)", old.Kind, old.Width, t.Kind, t.Width)}
			}
			continue
		}
		s.types[t.Name] = t
	}
	return nil
}

// Lookup returns the array type with the given name.
func (s *Schema) Lookup(name string) (ArrayType, bool) {
	t, ok := s.types[name]
	return t, ok
}

// Names returns the sorted names of the arrays in the schema.
func (s *Schema) Names() []string {
	names := make([]string, 0, len(s.types))
	for n := range s.types {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// width returns the number of values each element holds in an array
// of type t.
func (s *Schema) width(t ArrayType) int {
	switch t.Kind {
	case VectorKind:
		return t.Width
	case ComponentsKind:
		return s.NumComponents
	default:
		return 1
	}
}
