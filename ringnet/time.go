// Copyright (c) 2024, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package ringnet

// ringnet.Time contains the simulation clock state and step parameters
// for one run.  It is an explicit context passed to every integration
// and event call, never ambient global state, so that multiple runs
// (e.g., parameter sweeps) stay independent.
type Time struct {
	Time float32 `desc:"current simulation time (msec) -- state at step boundaries only"`
	Step int     `desc:"number of fixed steps taken since Reset"`

	TimePerStep float32 `def:"0.025" desc:"fixed integration step size (msec)"`
	RunTime     float32 `def:"100" desc:"termination time (msec) -- the run completes when Time reaches this"`
}

// NewTime returns a new Time struct with default parameters
func NewTime() *Time {
	tm := &Time{}
	tm.Defaults()
	return tm
}

// Defaults sets default values
func (tm *Time) Defaults() {
	tm.TimePerStep = 0.025
	tm.RunTime = 100
}

// Reset resets the clock back to zero -- no residual state leaks into a
// subsequent run
func (tm *Time) Reset() {
	tm.Time = 0
	tm.Step = 0
	if tm.TimePerStep == 0 {
		tm.Defaults()
	}
}

// StepInc increments time by one fixed step
func (tm *Time) StepInc() {
	tm.Step++
	tm.Time += tm.TimePerStep
}

// Done returns true once current time has reached the termination time
// (within half a step, to absorb float accumulation error)
func (tm *Time) Done() bool {
	return tm.Time >= tm.RunTime-0.5*tm.TimePerStep
}
