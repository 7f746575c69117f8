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
	"bytes"
	"encoding/json"
	"fmt"
	"io/ioutil"
	"os"
	"strings"
	"time"

	"github.com/ctessum/geom"
	"github.com/ctessum/geom/encoding/geojson"
	"github.com/lnashier/viper"
	"github.com/sirupsen/logrus"
	"github.com/spatialmodel/oilfate"
	"github.com/spatialmodel/oilfate/internal/hash"
	"github.com/spf13/cast"
)

// GetStringMapString returns a map[string]string from a viper configuration,
// accounting for the fact that it might be a json object if it was set
// from a command line argument.
func GetStringMapString(varName string, cfg *viper.Viper) (map[string]string, error) {
	i := cfg.Get(varName)
	switch i.(type) {
	case map[string]string:
		return i.(map[string]string), nil
	case map[string]interface{}:
		return cast.ToStringMapString(i), nil
	case string:
		b := bytes.NewBuffer(([]byte)(i.(string)))
		d := json.NewDecoder(b)
		o := make(map[string]string)
		if err := d.Decode(&o); err != nil {
			return nil, &oilfate.ConfigurationError{Field: varName, Reason: err.Error()}
		}
		return o, nil
	default:
		return nil, &oilfate.ConfigurationError{Field: varName, Reason: fmt.Sprintf("invalid type %T", i)}
	}
}

// getMapSlice returns a slice of maps from a viper configuration, such
// as a TOML array of tables. The value may also be a JSON array if it
// was set from the command line or an environment variable.
func getMapSlice(varName string, cfg *viper.Viper) ([]map[string]interface{}, error) {
	i := cfg.Get(varName)
	switch v := i.(type) {
	case nil:
		return nil, nil
	case []map[string]interface{}:
		return v, nil
	case []interface{}:
		o := make([]map[string]interface{}, len(v))
		for j, vv := range v {
			m, err := cast.ToStringMapE(vv)
			if err != nil {
				return nil, fmt.Errorf("oilfate: reading %s item %d: %v", varName, j, err)
			}
			o[j] = m
		}
		return o, nil
	case string:
		if v == "" {
			return nil, nil
		}
		var o []map[string]interface{}
		if err := json.NewDecoder(strings.NewReader(v)).Decode(&o); err != nil {
			return nil, fmt.Errorf("oilfate: decoding %s: %v", varName, err)
		}
		return o, nil
	default:
		return nil, fmt.Errorf("oilfate: invalid type for %s: %T", varName, i)
	}
}

// params holds the configuration of one model component. Configuration
// keys are not case sensitive.
type params map[string]interface{}

func newParams(m map[string]interface{}) params {
	p := make(params, len(m))
	for k, v := range m {
		p[strings.ToLower(k)] = v
	}
	return p
}

func (p params) has(name string) bool {
	_, ok := p[strings.ToLower(name)]
	return ok
}

func (p params) float(name string, def float64) (float64, error) {
	v, ok := p[strings.ToLower(name)]
	if !ok {
		return def, nil
	}
	f, err := cast.ToFloat64E(v)
	if err != nil {
		return 0, &oilfate.ConfigurationError{Field: name, Reason: err.Error()}
	}
	return f, nil
}

func (p params) integer(name string, def int) (int, error) {
	v, ok := p[strings.ToLower(name)]
	if !ok {
		return def, nil
	}
	i, err := cast.ToIntE(v)
	if err != nil {
		return 0, &oilfate.ConfigurationError{Field: name, Reason: err.Error()}
	}
	return i, nil
}

func (p params) boolean(name string, def bool) (bool, error) {
	v, ok := p[strings.ToLower(name)]
	if !ok {
		return def, nil
	}
	b, err := cast.ToBoolE(v)
	if err != nil {
		return false, &oilfate.ConfigurationError{Field: name, Reason: err.Error()}
	}
	return b, nil
}

func (p params) str(name, def string) (string, error) {
	v, ok := p[strings.ToLower(name)]
	if !ok {
		return def, nil
	}
	s, err := cast.ToStringE(v)
	if err != nil {
		return "", &oilfate.ConfigurationError{Field: name, Reason: err.Error()}
	}
	return os.ExpandEnv(s), nil
}

// time returns the named time, which should be in RFC 3339 format.
// A missing or empty value gives the zero time.
func (p params) time(name string) (time.Time, error) {
	v, ok := p[strings.ToLower(name)]
	if !ok {
		return time.Time{}, nil
	}
	if t, ok := v.(time.Time); ok {
		return t, nil
	}
	s, err := cast.ToStringE(v)
	if err != nil {
		return time.Time{}, &oilfate.ConfigurationError{Field: name, Reason: err.Error()}
	}
	if s == "" {
		return time.Time{}, nil
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}, &oilfate.ConfigurationError{Field: name, Reason: err.Error()}
	}
	return t, nil
}

// floats returns the named list of numbers. A missing value gives nil.
func (p params) floats(name string) ([]float64, error) {
	v, ok := p[strings.ToLower(name)]
	if !ok {
		return nil, nil
	}
	s, err := cast.ToSliceE(v)
	if err != nil {
		if fs, ok := v.([]float64); ok {
			return fs, nil
		}
		return nil, &oilfate.ConfigurationError{Field: name, Reason: err.Error()}
	}
	o := make([]float64, len(s))
	for i, vv := range s {
		if o[i], err = cast.ToFloat64E(vv); err != nil {
			return nil, &oilfate.ConfigurationError{Field: name, Reason: err.Error()}
		}
	}
	return o, nil
}

// vector3 returns the named 3-vector.
func (p params) vector3(name string, def [3]float64) ([3]float64, error) {
	f, err := p.floats(name)
	if err != nil || f == nil {
		return def, err
	}
	if len(f) != 3 {
		return def, &oilfate.ConfigurationError{Field: name, Reason: fmt.Sprintf("has %d values, should have 3", len(f))}
	}
	return [3]float64{f[0], f[1], f[2]}, nil
}

// stringMapFloat returns the named table of numbers.
func (p params) stringMapFloat(name string) (map[string]float64, error) {
	v, ok := p[strings.ToLower(name)]
	if !ok {
		return nil, nil
	}
	m, err := cast.ToStringMapE(v)
	if err != nil {
		return nil, &oilfate.ConfigurationError{Field: name, Reason: err.Error()}
	}
	o := make(map[string]float64, len(m))
	for k, vv := range m {
		if o[strings.ToLower(k)], err = cast.ToFloat64E(vv); err != nil {
			return nil, &oilfate.ConfigurationError{Field: name + "." + k, Reason: err.Error()}
		}
	}
	return o, nil
}

// process sets the on/off switch and active window of proc.
func (p params) process(proc *oilfate.Process) error {
	var err error
	if proc.On, err = p.boolean("On", true); err != nil {
		return err
	}
	if proc.ActiveStart, err = p.time("ActiveStart"); err != nil {
		return err
	}
	proc.ActiveStop, err = p.time("ActiveStop")
	return err
}

// EnvironmentConfig creates the model environment from the configuration.
func EnvironmentConfig(cfg *viper.Viper) (*oilfate.Environment, error) {
	env := &oilfate.Environment{
		Water: &oilfate.Water{
			Temperature: oilfate.ConstantScalar(cfg.GetFloat64("Environment.WaterTemperature")),
			Density:     cfg.GetFloat64("Environment.WaterDensity"),
			Viscosity:   cfg.GetFloat64("Environment.WaterViscosity"),
		},
		Current: oilfate.UniformField{
			cfg.GetFloat64("Environment.CurrentU"),
			cfg.GetFloat64("Environment.CurrentV"),
			0,
		},
	}
	series, err := getMapSlice("Environment.WindSeries", cfg)
	if err != nil {
		return nil, err
	}
	if len(series) == 0 {
		env.Wind = oilfate.ConstantWind{
			Speed:     cfg.GetFloat64("Environment.WindSpeed"),
			Direction: cfg.GetFloat64("Environment.WindDirection"),
		}
		return env, nil
	}
	times := make([]time.Time, len(series))
	speed := make([]float64, len(series))
	dir := make([]float64, len(series))
	for i, s := range series {
		p := newParams(s)
		if times[i], err = p.time("Time"); err != nil {
			return nil, err
		}
		if speed[i], err = p.float("Speed", 0); err != nil {
			return nil, err
		}
		if dir[i], err = p.float("Direction", 0); err != nil {
			return nil, err
		}
	}
	if env.Wind, err = oilfate.NewWindSeries(times, speed, dir); err != nil {
		return nil, err
	}
	return env, nil
}

// SpillsConfig creates the spills specified in the configuration, using
// the substances in subs.
func SpillsConfig(cfg *viper.Viper, subs map[string]*oilfate.Substance) ([]*oilfate.Spill, error) {
	items, err := getMapSlice("Spills", cfg)
	if err != nil {
		return nil, err
	}
	spills := make([]*oilfate.Spill, len(items))
	for i, item := range items {
		if spills[i], err = newSpill(newParams(item), subs); err != nil {
			return nil, fmt.Errorf("oilfate: spill %d: %w", i, err)
		}
	}
	return spills, nil
}

func newSpill(p params, subs map[string]*oilfate.Substance) (*oilfate.Spill, error) {
	s := new(oilfate.Spill)
	var err error
	if s.Name, err = p.str("Name", ""); err != nil {
		return nil, err
	}
	if s.ReleaseTime, err = p.time("ReleaseTime"); err != nil {
		return nil, err
	}
	if s.EndReleaseTime, err = p.time("EndReleaseTime"); err != nil {
		return nil, err
	}
	if s.NumElements, err = p.integer("NumElements", 1000); err != nil {
		return nil, err
	}
	if s.StartPosition, err = p.vector3("StartPosition", [3]float64{}); err != nil {
		return nil, err
	}
	if p.has("EndPosition") {
		end, err := p.vector3("EndPosition", s.StartPosition)
		if err != nil {
			return nil, err
		}
		s.EndPosition = &end
	}
	subName, err := p.str("Substance", "")
	if err != nil {
		return nil, err
	}
	var ok bool
	if s.Substance, ok = subs[subName]; !ok {
		return nil, &oilfate.MissingDataError{Name: "substance " + subName, Component: fmt.Sprintf("spill %q", s.Name)}
	}
	if s.Amount, err = p.float("Amount", 0); err != nil {
		return nil, err
	}
	if s.Units, err = p.str("Units", "kg"); err != nil {
		return nil, err
	}
	if s.FracCoverage, err = p.float("FracCoverage", 1); err != nil {
		return nil, err
	}
	if s.FracWater, err = p.float("FracWater", 0); err != nil {
		return nil, err
	}
	if s.InitialValues, err = p.stringMapFloat("InitialValues"); err != nil {
		return nil, err
	}
	return s, nil
}

// MapConfig creates the model map from the configuration.
func MapConfig(cfg *viper.Viper) (oilfate.Map, error) {
	landFile := os.ExpandEnv(cfg.GetString("Map.LandGeoJSON"))
	boundsFile := os.ExpandEnv(cfg.GetString("Map.BoundsGeoJSON"))
	if landFile == "" && boundsFile == "" {
		return oilfate.WaterWorld{}, nil
	}
	var bounds geom.Polygonal
	if boundsFile != "" {
		b, err := readPolygons(boundsFile)
		if err != nil {
			return nil, err
		}
		bounds = b
	}
	var land []geom.Polygonal
	if landFile != "" {
		l, err := readPolygons(landFile)
		if err != nil {
			return nil, err
		}
		land = append(land, l)
	}
	return oilfate.NewPolygonMap(bounds, land...), nil
}

// readPolygons reads a Polygon or MultiPolygon from a GeoJSON file.
func readPolygons(file string) (geom.Polygonal, error) {
	f, err := os.Open(file)
	if err != nil {
		return nil, fmt.Errorf("oilfate: opening map file: %v", err)
	}
	defer f.Close()
	b, err := ioutil.ReadAll(f)
	if err != nil {
		return nil, fmt.Errorf("oilfate: reading map file: %v", err)
	}
	g, err := geojson.Decode(b)
	if err != nil {
		return nil, fmt.Errorf("oilfate: decoding map file %s: %v", file, err)
	}
	switch p := g.(type) {
	case geom.Polygon:
		return p, nil
	case geom.MultiPolygon:
		return p, nil
	default:
		return nil, fmt.Errorf("oilfate: invalid map geometry type %T in %s", g, file)
	}
}

// NewModel assembles a model from the configuration.
func NewModel(cfg *viper.Viper) (*oilfate.Model, error) {
	start, err := time.Parse(time.RFC3339, os.ExpandEnv(cfg.GetString("StartTime")))
	if err != nil {
		return nil, &oilfate.ConfigurationError{Field: "StartTime", Reason: err.Error()}
	}
	duration, err := time.ParseDuration(cfg.GetString("Duration"))
	if err != nil {
		return nil, &oilfate.ConfigurationError{Field: "Duration", Reason: err.Error()}
	}
	step, err := time.ParseDuration(cfg.GetString("TimeStep"))
	if err != nil {
		return nil, &oilfate.ConfigurationError{Field: "TimeStep", Reason: err.Error()}
	}
	seed := cfg.GetInt("Seed")
	if seed < 0 {
		return nil, &oilfate.ConfigurationError{Field: "Seed", Reason: fmt.Sprintf("seed %d should be >= 0", seed)}
	}
	env, err := EnvironmentConfig(cfg)
	if err != nil {
		return nil, err
	}
	subs, err := loadSubstances(cfg)
	if err != nil {
		return nil, err
	}
	spills, err := SpillsConfig(cfg, subs)
	if err != nil {
		return nil, err
	}
	moverCfgs, err := getMapSlice("Movers", cfg)
	if err != nil {
		return nil, err
	}
	weathererCfgs, err := getMapSlice("Weatherers", cfg)
	if err != nil {
		return nil, err
	}
	log := logrus.StandardLogger()
	m := &oilfate.Model{
		StartTime: start,
		Duration:  duration,
		TimeStep:  step,
		Uncertain: cfg.GetBool("Uncertain"),
		Seed:      uint64(seed),
		Spills:    spills,
		Log:       log,
	}
	for i, c := range moverCfgs {
		mv, err := NewMover(c, env)
		if err != nil {
			return nil, fmt.Errorf("oilfate: mover %d: %w", i, err)
		}
		log.WithFields(logrus.Fields{"type": tag(c), "hash": hash.Hash(c)}).Debug("created mover")
		m.Movers = append(m.Movers, mv)
	}
	for i, c := range weathererCfgs {
		w, err := NewWeatherer(c, env)
		if err != nil {
			return nil, fmt.Errorf("oilfate: weatherer %d: %w", i, err)
		}
		log.WithFields(logrus.Fields{"type": tag(c), "hash": hash.Hash(c)}).Debug("created weatherer")
		m.Weatherers = append(m.Weatherers, w)
	}
	if m.Map, err = MapConfig(cfg); err != nil {
		return nil, err
	}
	return m, nil
}

// ScenarioHash returns a fingerprint of the scenario configuration,
// which identifies runs that were configured identically.
func ScenarioHash(cfg *viper.Viper) string {
	keys := []string{"StartTime", "Duration", "TimeStep", "Uncertain", "Seed",
		"Spills", "Movers", "Weatherers", "Environment", "SubstanceFile", "Map"}
	vals := make(map[string]interface{}, len(keys))
	for _, k := range keys {
		vals[k] = cfg.Get(k)
	}
	return hash.Hash(vals)
}
