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
	"math"
	"time"

	"gonum.org/v1/gonum/interp"
)

// ScalarSampler is a source of a time-varying scalar quantity, such as
// wind speed or water temperature.
type ScalarSampler interface {
	SampleAt(t time.Time) (float64, error)
}

// VectorSampler is a source of a time-varying horizontal vector, such as
// the (u, v) wind velocity [m/s].
type VectorSampler interface {
	SampleAt(t time.Time) ([2]float64, error)
}

// VelocityField is a source of spatially and temporally varying
// velocities [m/s], such as ocean currents. pos is (lon, lat, depth).
type VelocityField interface {
	ValueAt(pos [3]float64, t time.Time) ([3]float64, error)
}

// ConstantScalar is a ScalarSampler that does not vary in time.
type ConstantScalar float64

// SampleAt returns the constant value.
func (c ConstantScalar) SampleAt(time.Time) (float64, error) { return float64(c), nil }

// TimeSeries is a ScalarSampler that linearly interpolates between
// observations. Values before the first time or after the last time
// are held constant.
type TimeSeries struct {
	start time.Time
	value float64
	pl    *interp.PiecewiseLinear
}

// NewTimeSeries creates a time series from the given observation times
// and values. Times must be strictly increasing.
func NewTimeSeries(times []time.Time, values []float64) (*TimeSeries, error) {
	if len(times) == 0 || len(times) != len(values) {
		return nil, &ConfigurationError{Field: "time series",
			Reason: fmt.Sprintf("%d times and %d values", len(times), len(values))}
	}
	ts := &TimeSeries{start: times[0], value: values[0]}
	if len(times) == 1 {
		return ts, nil
	}
	xs := make([]float64, len(times))
	for i, t := range times {
		xs[i] = t.Sub(ts.start).Seconds()
	}
	ts.pl = new(interp.PiecewiseLinear)
	if err := ts.pl.Fit(xs, values); err != nil {
		return nil, &ConfigurationError{Field: "time series", Reason: err.Error()}
	}
	return ts, nil
}

// SampleAt returns the interpolated value at t.
func (ts *TimeSeries) SampleAt(t time.Time) (float64, error) {
	if ts.pl == nil {
		return ts.value, nil
	}
	return ts.pl.Predict(t.Sub(ts.start).Seconds()), nil
}

// windUV converts a wind speed [m/s] and the direction the wind is
// blowing from [degrees clockwise from north] to (u, v) components.
func windUV(speed, from float64) [2]float64 {
	r := from * math.Pi / 180
	return [2]float64{-speed * math.Sin(r), -speed * math.Cos(r)}
}

// ConstantWind is a wind that does not vary in time.
type ConstantWind struct {
	Speed     float64 // [m/s]
	Direction float64 // direction the wind blows from [degrees]
}

// SampleAt returns the (u, v) wind velocity.
func (w ConstantWind) SampleAt(time.Time) ([2]float64, error) {
	return windUV(w.Speed, w.Direction), nil
}

// SpeedSampler returns a ScalarSampler of the wind speed.
func (w ConstantWind) SpeedSampler() ScalarSampler { return ConstantScalar(w.Speed) }

// WindSeries is a time-varying wind. Speed and direction are
// interpolated separately, and the direction turns the shorter way
// between consecutive values.
type WindSeries struct {
	Speed, Direction *TimeSeries
}

// NewWindSeries creates a wind time series.
func NewWindSeries(times []time.Time, speed, direction []float64) (*WindSeries, error) {
	s, err := NewTimeSeries(times, speed)
	if err != nil {
		return nil, err
	}
	d, err := NewTimeSeries(times, unwrapDegrees(direction))
	if err != nil {
		return nil, err
	}
	return &WindSeries{Speed: s, Direction: d}, nil
}

// unwrapDegrees returns a copy of dir in which each value differs from
// the one before it by at most 180°.
func unwrapDegrees(dir []float64) []float64 {
	o := make([]float64, len(dir))
	copy(o, dir)
	for i := 1; i < len(o); i++ {
		d := math.Mod(o[i]-o[i-1], 360)
		if d > 180 {
			d -= 360
		} else if d < -180 {
			d += 360
		}
		o[i] = o[i-1] + d
	}
	return o
}

// SampleAt returns the (u, v) wind velocity at t.
func (w *WindSeries) SampleAt(t time.Time) ([2]float64, error) {
	s, err := w.Speed.SampleAt(t)
	if err != nil {
		return [2]float64{}, err
	}
	d, err := w.Direction.SampleAt(t)
	if err != nil {
		return [2]float64{}, err
	}
	return windUV(s, d), nil
}

// SpeedSampler returns a ScalarSampler of the wind speed.
func (w *WindSeries) SpeedSampler() ScalarSampler { return w.Speed }

// UniformField is a VelocityField with the same velocity everywhere.
type UniformField [3]float64

// ValueAt returns the velocity.
func (u UniformField) ValueAt([3]float64, time.Time) ([3]float64, error) { return u, nil }

// FieldFunc adapts a function to the VelocityField interface.
type FieldFunc func(pos [3]float64, t time.Time) ([3]float64, error)

// ValueAt calls f(pos, t).
func (f FieldFunc) ValueAt(pos [3]float64, t time.Time) ([3]float64, error) { return f(pos, t) }

// Water holds the properties of the receiving water body.
type Water struct {
	// Temperature is the water temperature [K].
	Temperature ScalarSampler

	Density   float64 // [kg/m³]
	Viscosity float64 // kinematic viscosity [m²/s]
}

// DefaultWater returns sea water at 15 °C.
func DefaultWater() *Water {
	return &Water{
		Temperature: ConstantScalar(288.15),
		Density:     1025,
		Viscosity:   1.0e-6,
	}
}

// Wind is a wind data source that can also report the wind speed.
type Wind interface {
	VectorSampler
	SpeedSampler() ScalarSampler
}

// Environment holds the environment data sources available to movers
// and weatherers. Any field may be nil, in which case components that
// require it return a MissingDataError.
type Environment struct {
	Wind    Wind
	Water   *Water
	Current VelocityField
}
