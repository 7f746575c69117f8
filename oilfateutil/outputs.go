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
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/Knetic/govaluate"
	"github.com/spatialmodel/oilfate"
	"gonum.org/v1/gonum/floats"
)

// Outputter evaluates output variables, which are expressions of mass
// balance keys and other output variables.
//
// In addition to the arithmetic operators, expressions may use the
// functions:
//
// 'exp(x)' which applies the exponential function e^x;
//
// 'sum(x, y, ...)' which sums its arguments;
//
// 'frac(x, y)' which returns x/y, or 0 if y is 0.
type Outputter struct {
	exprs map[string]*govaluate.EvaluableExpression
	order []string
}

var outputFunctions = map[string]govaluate.ExpressionFunction{
	"exp": func(arg ...interface{}) (interface{}, error) {
		if len(arg) != 1 {
			return nil, fmt.Errorf("oilfate: got %d arguments for function 'exp', but needs 1", len(arg))
		}
		x, ok := arg[0].(float64)
		if !ok {
			return nil, fmt.Errorf("oilfate: invalid argument %v for function 'exp'", arg[0])
		}
		return math.Exp(x), nil
	},
	"sum": func(arg ...interface{}) (interface{}, error) {
		v := make([]float64, len(arg))
		for i, a := range arg {
			x, ok := a.(float64)
			if !ok {
				return nil, fmt.Errorf("oilfate: invalid argument %v for function 'sum'", a)
			}
			v[i] = x
		}
		return floats.Sum(v), nil
	},
	"frac": func(arg ...interface{}) (interface{}, error) {
		if len(arg) != 2 {
			return nil, fmt.Errorf("oilfate: got %d arguments for function 'frac', but needs 2", len(arg))
		}
		x, ok1 := arg[0].(float64)
		y, ok2 := arg[1].(float64)
		if !ok1 || !ok2 {
			return nil, fmt.Errorf("oilfate: invalid arguments %v for function 'frac'", arg)
		}
		if y == 0 {
			return 0., nil
		}
		return x / y, nil
	},
}

// NewOutputter parses the given output variables, which map variable
// names to expressions.
func NewOutputter(vars map[string]string) (*Outputter, error) {
	o := &Outputter{exprs: make(map[string]*govaluate.EvaluableExpression, len(vars))}
	for name, v := range vars {
		v = strings.Replace(v, "\r\n", " ", -1)
		v = strings.Replace(v, "\n", " ", -1)
		e, err := govaluate.NewEvaluableExpressionWithFunctions(v, outputFunctions)
		if err != nil {
			return nil, fmt.Errorf("oilfate: output variable %s: %v", name, err)
		}
		o.exprs[name] = e
	}
	names := make([]string, 0, len(vars))
	for name := range vars {
		names = append(names, name)
	}
	sort.Strings(names)

	// Order the variables so that each one comes after any output
	// variables its expression refers to.
	state := make(map[string]int) // 1: visiting, 2: done
	var visit func(name string, path []string) error
	visit = func(name string, path []string) error {
		switch state[name] {
		case 1:
			return fmt.Errorf("oilfate: output variables have a circular reference: %s", strings.Join(append(path, name), " -> "))
		case 2:
			return nil
		}
		state[name] = 1
		for _, v := range o.exprs[name].Vars() {
			if _, ok := o.exprs[v]; ok && v != name {
				if err := visit(v, append(path, name)); err != nil {
					return err
				}
			} else if v == name {
				return fmt.Errorf("oilfate: output variable %s refers to itself", name)
			}
		}
		state[name] = 2
		o.order = append(o.order, name)
		return nil
	}
	for _, name := range names {
		if err := visit(name, nil); err != nil {
			return nil, err
		}
	}
	return o, nil
}

// Evaluate calculates the output variables from the mass balance mb.
func (o *Outputter) Evaluate(mb oilfate.MassBalance) (map[string]float64, error) {
	params := make(map[string]interface{}, len(mb)+len(o.order))
	for k, v := range mb {
		params[k] = v
	}
	out := make(map[string]float64, len(o.order))
	for _, name := range o.order {
		r, err := o.exprs[name].Evaluate(params)
		if err != nil {
			return nil, fmt.Errorf("oilfate: evaluating output variable %s: %v", name, err)
		}
		v, ok := r.(float64)
		if !ok {
			return nil, fmt.Errorf("oilfate: output variable %s is %T, not a number", name, r)
		}
		out[name] = v
		params[name] = v
	}
	return out, nil
}

// Format returns the output values as sorted name=value pairs.
func (o *Outputter) Format(vals map[string]float64) string {
	names := make([]string, 0, len(vals))
	for n := range vals {
		names = append(names, n)
	}
	sort.Strings(names)
	s := make([]string, len(names))
	for i, n := range names {
		s[i] = fmt.Sprintf("%s=%g", n, vals[n])
	}
	return strings.Join(s, "\t")
}
