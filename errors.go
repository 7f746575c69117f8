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
	"errors"
	"fmt"
)

// ErrCompleted is returned by Model.Step when the model has already
// reached its end time.
var ErrCompleted = errors.New("oilfate: model run is complete")

// MissingDataError is returned when a data array, environment object, or
// substance required by a component is not available.
type MissingDataError struct {
	// Name is the name of the missing item.
	Name string

	// Component is the name of the component that requires the item.
	// It may be empty.
	Component string
}

func (e *MissingDataError) Error() string {
	if e.Component == "" {
		return fmt.Sprintf("oilfate: required data %q is missing", e.Name)
	}
	return fmt.Sprintf("oilfate: %s requires data %q, which is missing", e.Component, e.Name)
}

// InvalidSubstanceError is returned when substance reference data is
// malformed or missing required fields.
type InvalidSubstanceError struct {
	Substance string
	Reason    string
}

func (e *InvalidSubstanceError) Error() string {
	return fmt.Sprintf("oilfate: invalid substance %q: %s", e.Substance, e.Reason)
}

// ConfigurationError is returned for inconsistent model or component
// configuration, such as a non-positive time step or an active window
// that stops before it starts.
type ConfigurationError struct {
	Field  string
	Reason string
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("oilfate: invalid configuration for %s: %s", e.Field, e.Reason)
}
