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
	"context"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
	"gonum.org/v1/gonum/mat"
)

// State is the state of a Model.
type State int

// Model states.
const (
	Uninitialized State = iota
	Prepared
	Stepping
	Completed
)

func (s State) String() string {
	switch s {
	case Uninitialized:
		return "uninitialized"
	case Prepared:
		return "prepared"
	case Stepping:
		return "stepping"
	case Completed:
		return "completed"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// Model advances a set of spills through time under the influence of
// its movers and weatherers.
type Model struct {
	StartTime time.Time
	Duration  time.Duration
	TimeStep  time.Duration

	// Uncertain specifies whether to run a second, uncertain
	// realization alongside the certain one.
	Uncertain bool

	// Seed seeds the random number sources. If zero, the sources are
	// seeded from the wall clock.
	Seed uint64

	Spills []*Spill

	// Movers are the displacement processes. Their order does not
	// affect the results.
	Movers []Mover

	// Weatherers are the weathering processes, which are applied in
	// the order given.
	Weatherers []Weatherer

	// Map is the model domain. If nil, WaterWorld is used.
	Map Map

	// Log receives progress messages. If nil, logrus.StandardLogger()
	// is used.
	Log logrus.FieldLogger

	state      State
	step       int
	t          time.Time
	containers []*SpillContainer
}

// StepResult holds information about a completed model step.
type StepResult struct {
	// Step is the index of the completed step, starting at 0.
	Step int

	// Time is the model time at the end of the step.
	Time time.Time

	// MassBalance is a copy of the mass balance of the certain
	// container, and UncertainMassBalance is a copy of the mass balance
	// of the uncertain container, or nil for a run without uncertainty.
	MassBalance, UncertainMassBalance MassBalance
}

// State returns the current state of the model.
func (m *Model) State() State { return m.state }

// Time returns the current model time.
func (m *Model) Time() time.Time { return m.t }

// CurrentStep returns the number of steps that have been completed.
func (m *Model) CurrentStep() int { return m.step }

// EndTime returns the time at which the run is complete.
func (m *Model) EndTime() time.Time { return m.StartTime.Add(m.Duration) }

// Containers returns the spill containers of the run: the certain
// container, followed by the uncertain container if there is one.
func (m *Model) Containers() []*SpillContainer { return m.containers }

type validator interface {
	Validate() error
}

type logSetter interface {
	SetLogger(logrus.FieldLogger)
}

func (m *Model) validate() error {
	if m.TimeStep <= 0 {
		return &ConfigurationError{Field: "TimeStep", Reason: fmt.Sprintf("time step %v should be > 0", m.TimeStep)}
	}
	if m.Duration < 0 {
		return &ConfigurationError{Field: "Duration", Reason: fmt.Sprintf("duration %v should be >= 0", m.Duration)}
	}
	for _, s := range m.Spills {
		if err := s.Validate(); err != nil {
			return err
		}
	}
	for _, mv := range m.Movers {
		if v, ok := mv.(validator); ok {
			if err := v.Validate(); err != nil {
				return err
			}
		}
	}
	for _, w := range m.Weatherers {
		if v, ok := w.(validator); ok {
			if err := v.Validate(); err != nil {
				return err
			}
		}
	}
	return nil
}

// schema composes the data arrays declared by every component.
func (m *Model) schema() (*Schema, error) {
	var nc int
	for _, s := range m.Spills {
		if l := s.Substance.Len(); l > nc {
			nc = l
		}
	}
	s, err := NewSchema(nc, DefaultArrayTypes...)
	if err != nil {
		return nil, err
	}
	for _, mv := range m.Movers {
		if err := s.Add(mv.ArrayTypes()...); err != nil {
			return nil, err
		}
	}
	for _, w := range m.Weatherers {
		if err := s.Add(w.ArrayTypes()...); err != nil {
			return nil, err
		}
	}
	return s, nil
}

// Setup validates the configuration, allocates the spill containers, and
// prepares every mover and weatherer for the run.
func (m *Model) Setup() error {
	if m.state != Uninitialized {
		return &ConfigurationError{Field: "model", Reason: fmt.Sprintf("Setup called in state %s", m.state)}
	}
	if m.Log == nil {
		m.Log = logrus.StandardLogger()
	}
	if m.Map == nil {
		m.Map = WaterWorld{}
	}
	if err := m.validate(); err != nil {
		return err
	}
	for _, mv := range m.Movers {
		if l, ok := mv.(logSetter); ok {
			l.SetLogger(m.Log)
		}
	}
	for _, w := range m.Weatherers {
		if l, ok := w.(logSetter); ok {
			l.SetLogger(m.Log)
		}
	}
	s, err := m.schema()
	if err != nil {
		return err
	}
	m.containers = []*SpillContainer{NewSpillContainer(m.Spills, s, false, NewSource(m.Seed))}
	if m.Uncertain {
		seed := m.Seed
		if seed != 0 {
			seed++
		}
		m.containers = append(m.containers, NewSpillContainer(m.Spills, s, true, NewSource(seed)))
	}
	for _, sc := range m.containers {
		for _, mv := range m.Movers {
			if err := mv.PrepareForModelRun(sc); err != nil {
				return err
			}
		}
		for _, w := range m.Weatherers {
			if err := w.PrepareForModelRun(sc); err != nil {
				return err
			}
		}
	}
	m.t = m.StartTime
	m.step = 0
	m.state = Prepared
	m.Log.WithFields(logrus.Fields{
		"start":      m.StartTime,
		"end":        m.EndTime(),
		"time_step":  m.TimeStep,
		"uncertain":  m.Uncertain,
		"movers":     len(m.Movers),
		"weatherers": len(m.Weatherers),
		"arrays":     s.Names(),
	}).Info("model prepared")
	return nil
}

// Step advances the model by one time step. It returns ErrCompleted if
// the run is already complete. If an error occurs, the elements and mass
// balances are returned to their state before the step.
func (m *Model) Step() (*StepResult, error) {
	switch m.state {
	case Uninitialized:
		return nil, &ConfigurationError{Field: "model", Reason: "Step called before Setup"}
	case Completed:
		return nil, ErrCompleted
	}
	if !m.t.Before(m.EndTime()) {
		m.state = Completed
		return nil, ErrCompleted
	}
	snapshots := make([]containerSnapshot, len(m.containers))
	for i, sc := range m.containers {
		snapshots[i] = sc.snapshot()
	}
	restore := func() {
		for i, sc := range m.containers {
			sc.restore(snapshots[i])
		}
	}
	for _, sc := range m.containers {
		if err := m.stepContainer(sc); err != nil {
			restore()
			return nil, fmt.Errorf("oilfate: step %d: %w", m.step, err)
		}
	}
	for _, sc := range m.containers {
		for _, mv := range m.Movers {
			if err := mv.ModelStepIsDone(sc); err != nil {
				restore()
				return nil, fmt.Errorf("oilfate: step %d: %w", m.step, err)
			}
		}
	}

	r := &StepResult{Step: m.step, Time: m.t.Add(m.TimeStep), MassBalance: m.containers[0].MassBalance.Copy()}
	if len(m.containers) > 1 {
		r.UncertainMassBalance = m.containers[1].MassBalance.Copy()
	}
	m.t = m.t.Add(m.TimeStep)
	m.step++
	m.state = Stepping
	if !m.t.Before(m.EndTime()) {
		m.state = Completed
	}
	m.Log.WithFields(logrus.Fields{
		"step":     r.Step,
		"time":     r.Time,
		"elements": m.containers[0].NumReleased(),
		"floating": r.MassBalance[Floating],
	}).Info("completed step")
	return r, nil
}

// stepContainer carries out one time step for a single container.
func (m *Model) stepContainer(sc *SpillContainer) error {
	dt, t := m.TimeStep, m.t
	if _, err := sc.Release(t.Add(dt)); err != nil {
		return err
	}
	for _, mv := range m.Movers {
		if err := mv.PrepareForModelStep(sc, dt, t); err != nil {
			return err
		}
	}
	for _, w := range m.Weatherers {
		if err := w.PrepareForModelStep(sc, dt, t); err != nil {
			return err
		}
	}
	if err := m.move(sc, dt, t); err != nil {
		return err
	}
	if err := applyMap(m.Map, sc); err != nil {
		return err
	}
	if sc.NumReleased() > 0 {
		for _, w := range m.Weatherers {
			if !w.Active() {
				continue
			}
			removed, err := w.WeatherElements(sc, dt, t)
			if err != nil {
				return err
			}
			m.Log.WithFields(logrus.Fields{
				"process":   w.Key(),
				"removed":   removed,
				"uncertain": sc.Uncertain,
			}).Debug("weathered elements")
		}
	}
	if err := updateAge(sc, dt); err != nil {
		return err
	}
	return sc.updateMassSnapshot()
}

// move sums the displacements from all movers and applies them to the
// element positions. In-water elements that end up above the surface are
// returned to it.
func (m *Model) move(sc *SpillContainer, dt time.Duration, t time.Time) error {
	n := sc.Elements.Len()
	if n == 0 {
		return nil
	}
	delta := mat.NewDense(n, 3, nil)
	for _, mv := range m.Movers {
		d, err := mv.GetMove(sc, dt, t)
		if err != nil {
			return err
		}
		if r, c := d.Dims(); r != n || c != 3 {
			return fmt.Errorf("oilfate: mover %T returned a %d×%d displacement for %d elements", mv, r, c, n)
		}
		delta.Add(delta, d)
	}
	pos, err := sc.Elements.Vector(Positions.Name)
	if err != nil {
		return err
	}
	pos.Add(pos, MetersToLonLat(delta, pos))

	// Each mover keeps its own displacement below the surface, but their
	// sum may not be.
	codes, err := sc.Elements.Status()
	if err != nil {
		return err
	}
	for _, i := range rowsWithStatus(codes, InWater) {
		if pos.At(i, 2) < 0 {
			pos.Set(i, 2, 0)
		}
	}
	return nil
}

// updateAge increases the age of every released element by dt.
func updateAge(sc *SpillContainer, dt time.Duration) error {
	if !sc.Elements.Has(Age.Name) {
		return nil
	}
	age, err := sc.Elements.Scalar(Age.Name)
	if err != nil {
		return err
	}
	codes, err := sc.Elements.Status()
	if err != nil {
		return err
	}
	for i, c := range codes {
		if c != NotReleased {
			age[i] += dt.Seconds()
		}
	}
	return nil
}

// Run steps the model until it is complete, calling f, if it is not nil,
// after every step. ctx is checked between steps.
func (m *Model) Run(ctx context.Context, f func(*StepResult) error) error {
	if m.state == Uninitialized {
		if err := m.Setup(); err != nil {
			return err
		}
	}
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		r, err := m.Step()
		if err == ErrCompleted {
			m.Log.WithField("steps", m.step).Info("model run complete")
			return nil
		} else if err != nil {
			return err
		}
		if f != nil {
			if err := f(r); err != nil {
				return err
			}
		}
	}
}
