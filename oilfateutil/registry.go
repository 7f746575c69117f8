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
	"sort"
	"strings"

	"github.com/spatialmodel/oilfate"
	"github.com/spatialmodel/oilfate/science/movers/currentmover"
	"github.com/spatialmodel/oilfate/science/movers/randommover"
	"github.com/spatialmodel/oilfate/science/movers/randomvertical"
	"github.com/spatialmodel/oilfate/science/movers/risevelocity"
	"github.com/spatialmodel/oilfate/science/movers/simplemover"
	"github.com/spatialmodel/oilfate/science/movers/windmover"
	"github.com/spatialmodel/oilfate/science/weatherers/biodegradation"
	"github.com/spatialmodel/oilfate/science/weatherers/evaporation"
)

// MoverConstructor creates a mover from its configuration.
type MoverConstructor func(cfg map[string]interface{}, env *oilfate.Environment) (oilfate.Mover, error)

// WeathererConstructor creates a weatherer from its configuration.
type WeathererConstructor func(cfg map[string]interface{}, env *oilfate.Environment) (oilfate.Weatherer, error)

// Movers holds the available movers, keyed by the tag used in the
// Type field of their configuration.
var Movers = map[string]MoverConstructor{
	"simple":          newSimpleMover,
	"random":          newRandomMover,
	"random_vertical": newRandomVerticalMover,
	"current":         newCurrentMover,
	"wind":            newWindMover,
	"rise_velocity":   newRiseVelocityMover,
}

// Weatherers holds the available weatherers, keyed by the tag used in the
// Type field of their configuration.
var Weatherers = map[string]WeathererConstructor{
	"evaporation":    newEvaporation,
	"biodegradation": newBiodegradation,
}

// tag returns the Type field of a component configuration.
func tag(cfg map[string]interface{}) string {
	t, _ := newParams(cfg).str("Type", "")
	return strings.ToLower(t)
}

func validTags(keys []string) string {
	sort.Strings(keys)
	return strings.Join(keys, ", ")
}

// NewMover creates the mover specified by the Type field of cfg.
func NewMover(cfg map[string]interface{}, env *oilfate.Environment) (oilfate.Mover, error) {
	t := tag(cfg)
	c, ok := Movers[t]
	if !ok {
		keys := make([]string, 0, len(Movers))
		for k := range Movers {
			keys = append(keys, k)
		}
		return nil, &oilfate.ConfigurationError{Field: "mover Type",
			Reason: fmt.Sprintf("invalid option %q; valid options are %s", t, validTags(keys))}
	}
	return c(cfg, env)
}

// NewWeatherer creates the weatherer specified by the Type field of cfg.
func NewWeatherer(cfg map[string]interface{}, env *oilfate.Environment) (oilfate.Weatherer, error) {
	t := tag(cfg)
	c, ok := Weatherers[t]
	if !ok {
		keys := make([]string, 0, len(Weatherers))
		for k := range Weatherers {
			keys = append(keys, k)
		}
		return nil, &oilfate.ConfigurationError{Field: "weatherer Type",
			Reason: fmt.Sprintf("invalid option %q; valid options are %s", t, validTags(keys))}
	}
	return c(cfg, env)
}

func newSimpleMover(cfg map[string]interface{}, _ *oilfate.Environment) (oilfate.Mover, error) {
	p := newParams(cfg)
	v, err := p.vector3("Velocity", [3]float64{})
	if err != nil {
		return nil, err
	}
	m := simplemover.New(v)
	if m.UncertaintyScale, err = p.float("UncertaintyScale", m.UncertaintyScale); err != nil {
		return nil, err
	}
	if err := p.process(&m.Process); err != nil {
		return nil, err
	}
	return m, nil
}

func newRandomMover(cfg map[string]interface{}, _ *oilfate.Environment) (oilfate.Mover, error) {
	p := newParams(cfg)
	d, err := p.float("DiffusionCoef", 10) // m²/s
	if err != nil {
		return nil, err
	}
	m := randommover.New(d)
	if m.UncertainFactor, err = p.float("UncertainFactor", m.UncertainFactor); err != nil {
		return nil, err
	}
	if err := p.process(&m.Process); err != nil {
		return nil, err
	}
	return m, nil
}

func newRandomVerticalMover(cfg map[string]interface{}, _ *oilfate.Environment) (oilfate.Mover, error) {
	p := newParams(cfg)
	m := randomvertical.New()
	var err error
	if m.CoefAboveML, err = p.float("CoefAboveML", m.CoefAboveML); err != nil {
		return nil, err
	}
	if m.CoefBelowML, err = p.float("CoefBelowML", m.CoefBelowML); err != nil {
		return nil, err
	}
	if m.MixedLayerDepth, err = p.float("MixedLayerDepth", m.MixedLayerDepth); err != nil {
		return nil, err
	}
	if m.UncertainFactor, err = p.float("UncertainFactor", m.UncertainFactor); err != nil {
		return nil, err
	}
	if err := p.process(&m.Process); err != nil {
		return nil, err
	}
	return m, nil
}

func newCurrentMover(cfg map[string]interface{}, env *oilfate.Environment) (oilfate.Mover, error) {
	p := newParams(cfg)
	if env == nil || env.Current == nil {
		return nil, &oilfate.MissingDataError{Name: "current", Component: "current mover"}
	}
	m := currentmover.New(env.Current)
	var err error
	if m.Scale, err = p.float("Scale", m.Scale); err != nil {
		return nil, err
	}
	if m.UncertaintyScale, err = p.float("UncertaintyScale", m.UncertaintyScale); err != nil {
		return nil, err
	}
	if err := p.process(&m.Process); err != nil {
		return nil, err
	}
	return m, nil
}

func newWindMover(cfg map[string]interface{}, env *oilfate.Environment) (oilfate.Mover, error) {
	p := newParams(cfg)
	if env == nil || env.Wind == nil {
		return nil, &oilfate.MissingDataError{Name: "wind", Component: "wind mover"}
	}
	m := windmover.New(env.Wind)
	r, err := p.floats("WindageRange")
	if err != nil {
		return nil, err
	}
	if r != nil {
		if len(r) != 2 {
			return nil, &oilfate.ConfigurationError{Field: "WindageRange", Reason: fmt.Sprintf("has %d values, should have 2", len(r))}
		}
		m.WindageRange = [2]float64{r[0], r[1]}
	}
	if m.UncertaintyScale, err = p.float("UncertaintyScale", m.UncertaintyScale); err != nil {
		return nil, err
	}
	if err := p.process(&m.Process); err != nil {
		return nil, err
	}
	return m, nil
}

func newRiseVelocityMover(cfg map[string]interface{}, env *oilfate.Environment) (oilfate.Mover, error) {
	p := newParams(cfg)
	if env == nil || env.Water == nil {
		return nil, &oilfate.MissingDataError{Name: "water", Component: "rise velocity mover"}
	}
	m := risevelocity.New(env.Water)
	if err := p.process(&m.Process); err != nil {
		return nil, err
	}
	return m, nil
}

func newEvaporation(cfg map[string]interface{}, env *oilfate.Environment) (oilfate.Weatherer, error) {
	p := newParams(cfg)
	if env == nil || env.Wind == nil {
		return nil, &oilfate.MissingDataError{Name: "wind", Component: "evaporation"}
	}
	if env.Water == nil {
		return nil, &oilfate.MissingDataError{Name: "water", Component: "evaporation"}
	}
	w := evaporation.New(env.Wind.SpeedSampler(), env.Water)
	var err error
	if w.Thickness, err = p.float("Thickness", w.Thickness); err != nil {
		return nil, err
	}
	if err := p.process(&w.Process); err != nil {
		return nil, err
	}
	return w, nil
}

func newBiodegradation(cfg map[string]interface{}, env *oilfate.Environment) (oilfate.Weatherer, error) {
	p := newParams(cfg)
	if env == nil || env.Water == nil {
		return nil, &oilfate.MissingDataError{Name: "water", Component: "biodegradation"}
	}
	w := biodegradation.New(env.Water)
	if err := p.process(&w.Process); err != nil {
		return nil, err
	}
	return w, nil
}
