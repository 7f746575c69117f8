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
	"time"

	"github.com/sirupsen/logrus"
)

// Process holds the on/off switch and active time window shared by all
// movers and weatherers. It is meant to be embedded.
type Process struct {
	// On specifies whether the process takes part in the run.
	On bool

	// ActiveStart and ActiveStop bound the model times at which the
	// process is active. A zero value is unbounded.
	ActiveStart, ActiveStop time.Time

	// Log receives messages from the process. If nil, the model sets it
	// to the model logger in Setup.
	Log logrus.FieldLogger

	active bool
}

// NewProcess returns a process that is switched on with an unbounded
// active window.
func NewProcess() Process { return Process{On: true} }

// CheckWindow checks that the active window of the process called name
// is consistent.
func (p *Process) CheckWindow(name string) error {
	if !p.ActiveStart.IsZero() && !p.ActiveStop.IsZero() && p.ActiveStop.Before(p.ActiveStart) {
		return &ConfigurationError{Field: name,
			Reason: fmt.Sprintf("active window stops (%v) before it starts (%v)", p.ActiveStop, p.ActiveStart)}
	}
	return nil
}

// UpdateActive sets whether the process is active for the step starting
// at model time t.
func (p *Process) UpdateActive(t time.Time) {
	p.active = p.On &&
		(p.ActiveStart.IsZero() || !t.Before(p.ActiveStart)) &&
		(p.ActiveStop.IsZero() || t.Before(p.ActiveStop))
}

// SetLogger sets Log to l if it has not already been set.
func (p *Process) SetLogger(l logrus.FieldLogger) {
	if p.Log == nil {
		p.Log = l
	}
}

// Logger returns Log, or the standard logger if Log is nil.
func (p *Process) Logger() logrus.FieldLogger {
	if p.Log == nil {
		return logrus.StandardLogger()
	}
	return p.Log
}

// Active returns whether the process is active in the current step.
func (p *Process) Active() bool { return p.active }

// PrepareForModelRun does nothing.
func (p *Process) PrepareForModelRun(*SpillContainer) error { return nil }

// PrepareForModelStep updates whether the process is active.
func (p *Process) PrepareForModelStep(_ *SpillContainer, _ time.Duration, t time.Time) error {
	p.UpdateActive(t)
	return nil
}

// ModelStepIsDone does nothing.
func (p *Process) ModelStepIsDone(*SpillContainer) error { return nil }
