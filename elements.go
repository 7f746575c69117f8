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

	"gonum.org/v1/gonum/mat"
)

// column holds the data for one array. Status arrays are stored in codes;
// all other arrays are stored row-major in data.
type column struct {
	t     ArrayType
	width int
	data  []float64
	codes []StatusCode
}

func (c *column) grow(n int) {
	if c.t.Kind == StatusKind {
		for i := 0; i < n; i++ {
			c.codes = append(c.codes, StatusCode(c.t.Default))
		}
		return
	}
	for i := 0; i < n*c.width; i++ {
		c.data = append(c.data, c.t.Default)
	}
}

func (c *column) clone() *column {
	c2 := &column{t: c.t, width: c.width}
	if c.data != nil {
		c2.data = append([]float64(nil), c.data...)
	}
	if c.codes != nil {
		c2.codes = append([]StatusCode(nil), c.codes...)
	}
	return c2
}

// Elements is a column-oriented batch of elements. Every array holds one
// row per element and element i lives at row i of every array.
type Elements struct {
	schema *Schema
	n      int
	cols   map[string]*column
}

// NewElements allocates an empty element batch holding the arrays in s.
func NewElements(s *Schema) *Elements {
	e := &Elements{schema: s, cols: make(map[string]*column)}
	for _, name := range s.Names() {
		t, _ := s.Lookup(name)
		e.cols[name] = &column{t: t, width: s.width(t)}
	}
	return e
}

// Len returns the number of elements in the batch.
func (e *Elements) Len() int { return e.n }

// Schema returns the schema of the batch.
func (e *Elements) Schema() *Schema { return e.schema }

// Has returns whether the batch holds the named array.
func (e *Elements) Has(name string) bool {
	_, ok := e.cols[name]
	return ok
}

// Require returns a MissingDataError naming component if any of the
// named arrays are not held by the batch.
func (e *Elements) Require(component string, names ...string) error {
	for _, n := range names {
		if !e.Has(n) {
			return &MissingDataError{Name: n, Component: component}
		}
	}
	return nil
}

func (e *Elements) column(name string, kinds ...Kind) (*column, error) {
	c, ok := e.cols[name]
	if !ok {
		return nil, &MissingDataError{Name: name}
	}
	for _, k := range kinds {
		if c.t.Kind == k {
			return c, nil
		}
	}
	return nil, fmt.Errorf("oilfate: data array %q is of kind %s, not %v", name, c.t.Kind, kinds)
}

// Scalar returns the values of the named scalar array. The returned
// slice shares storage with the batch.
func (e *Elements) Scalar(name string) ([]float64, error) {
	c, err := e.column(name, ScalarKind)
	if err != nil {
		return nil, err
	}
	return c.data, nil
}

// Vector returns an N×width view of the named vector or components
// array. The view shares storage with the batch, so changes to it
// change the elements. If the batch or the array width is empty, the
// returned matrix is empty.
func (e *Elements) Vector(name string) (*mat.Dense, error) {
	c, err := e.column(name, VectorKind, ComponentsKind)
	if err != nil {
		return nil, err
	}
	if e.n == 0 || c.width == 0 {
		return &mat.Dense{}, nil
	}
	return mat.NewDense(e.n, c.width, c.data), nil
}

// Status returns the element status codes. The returned slice shares
// storage with the batch.
func (e *Elements) Status() ([]StatusCode, error) {
	c, err := e.column(StatusCodes.Name, StatusKind)
	if err != nil {
		return nil, err
	}
	return c.codes, nil
}

// Append adds n elements to the batch, initializing every array to its
// default value. It returns the index of the first new element.
func (e *Elements) Append(n int) int {
	first := e.n
	for _, c := range e.cols {
		c.grow(n)
	}
	e.n += n
	return first
}

// Clone returns a deep copy of the batch.
func (e *Elements) Clone() *Elements {
	e2 := &Elements{schema: e.schema, n: e.n, cols: make(map[string]*column, len(e.cols))}
	for name, c := range e.cols {
		e2.cols[name] = c.clone()
	}
	return e2
}

// Restore replaces the contents of e with the contents of from, which
// should have been created by e.Clone.
func (e *Elements) Restore(from *Elements) {
	e.n = from.n
	e.cols = make(map[string]*column, len(from.cols))
	for name, c := range from.cols {
		e.cols[name] = c.clone()
	}
}
