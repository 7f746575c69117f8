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

// Package oilfate simulates the transport and weathering of oil and other
// contaminants released into water. A spill is represented by a
// population of Lagrangian elements whose positions are advanced by a set
// of movers and whose mass and composition are changed by a sequence of
// weatherers, one fixed time step at a time.
package oilfate

// Version gives the version number.
const Version = "0.1.0"
