// Copyright (c) 2024, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package ringnet

import (
	"fmt"

	"github.com/goki/ki/kit"
)

// SimState is the lifecycle state of one simulation run
type SimState int

//go:generate stringer -type=SimState

var KiT_SimState = kit.Enums.AddEnum(SimStateN, kit.NotBitFlag, nil)

func (ev SimState) MarshalJSON() ([]byte, error)  { return kit.EnumMarshalJSON(ev) }
func (ev *SimState) UnmarshalJSON(b []byte) error { return kit.EnumUnmarshalJSON(ev, b) }

const (
	// Initialized means Init has run: cells at rest, gating at steady
	// state, and the event queue holds only the external stimulus
	Initialized SimState = iota

	// Running means stepping is in progress
	Running

	// Complete means current time reached the termination time -- any
	// events still queued are discarded, which is not an error
	Complete

	// Failed means a fatal numerical error stopped the run early --
	// all data recorded up to the failure point remains available
	Failed

	SimStateN
)

// ringnet.Sim drives one simulation run: it owns the clock, the event
// queue, and the recorded traces, and advances the network through the
// fixed-step loop.  Within each step the ordering is invariant:
// integrate all cables, then run all spike detectors, then deliver all
// events due in this step's window, then advance the clock.  A spike
// generated in step k therefore affects dynamics only from step k+1 on.
type Sim struct {
	Net   *Network    `desc:"the network being simulated"`
	Time  *Time       `desc:"simulation clock -- explicit context, one per run"`
	Queue *EventQueue `desc:"pending delivery events, owned by this run"`
	Log   *TraceLog   `desc:"recorded voltage traces and spike raster"`
	State SimState    `desc:"lifecycle state of this run"`
	Err   error       `desc:"the fatal error that put the run in Failed state, if any"`
}

// NewSim returns a simulation for the given network and clock, with a
// fresh event queue and trace log
func NewSim(nt *Network, tm *Time) *Sim {
	ss := &Sim{Net: nt, Time: tm}
	ss.Queue = NewEventQueue()
	ss.Log = NewTraceLog(nt.NCells())
	return ss
}

// Init (re)initializes the run: clock at zero, all cells at resting
// state, queue emptied and pre-loaded with the one external stimulus
// event, and the trace log reset with the initial state as row 0.
// Independent runs from the same Sim are fully reproducible: no state
// leaks across Init boundaries.
func (ss *Sim) Init() {
	ss.Time.Reset()
	ss.Net.InitActs()
	ss.Queue.Reset()
	ss.Net.Stim.Schedule(ss.Queue)
	ss.Log.Reset()
	ss.Log.Record(ss.Time, ss.Net)
	ss.Err = nil
	ss.State = Initialized
}

// StepOne advances the simulation by exactly one fixed step.  Returns
// a non-nil error (and enters Failed state) on numerical divergence;
// the error identifies the cell, compartment and step.
func (ss *Sim) StepOne() error {
	if ss.State != Initialized && ss.State != Running {
		return fmt.Errorf("Sim.StepOne: cannot step in state %s", ss.State)
	}
	ss.State = Running
	tm := ss.Time
	t := tm.Time
	dt := tm.TimePerStep

	// integrate: synaptic conductances decay continuously across the
	// step, then every cable advances by dt
	for _, cl := range ss.Net.Cells {
		cl.Syn.DecayFmDt(dt)
		if err := cl.StepFmG(t, dt); err != nil {
			ss.Err = fmt.Errorf("cell %d at step %d (t=%v msec): %w", cl.Gid, tm.Step, t, err)
			ss.State = Failed
			return ss.Err
		}
	}

	// detect: threshold crossings schedule delayed deliveries
	for _, cl := range ss.Net.Cells {
		if ts, spk := cl.Det.DetectFmVm(cl.Cable.Comps[cl.DetComp].Vm, t, dt); spk {
			ss.Net.ScheduleSpike(ss.Queue, cl.Gid, ts)
			ss.Log.RecordSpike(cl.Gid, ts)
		}
	}

	// deliver: all events due in [t, t+dt), in time order, FIFO ties.
	// topology is fixed, so a gid without a live target is a
	// programming error and panics rather than being recovered
	for ev := ss.Queue.PopBefore(t + dt); ev != nil; ev = ss.Queue.PopBefore(t + dt) {
		ss.Net.Cells[ev.Cell].Syn.DeliverWt(ev.Wt)
	}

	tm.StepInc()
	ss.Log.Record(tm, ss.Net)
	if tm.Done() {
		ss.State = Complete
	}
	return nil
}

// Run steps from the current state until the termination time or a
// fatal error.  On error the run is Failed and everything recorded up
// to the failure point stays available in Log and the cell detectors.
func (ss *Sim) Run() error {
	for ss.State == Initialized || ss.State == Running {
		if err := ss.StepOne(); err != nil {
			return err
		}
	}
	return nil
}
