// Copyright (c) 2024, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package ringnet

// ringnet.SpikeDetector monitors one compartment's voltage for upward
// threshold crossings.  It fires exactly once per crossing from below
// threshold to at-or-above threshold, and re-arms immediately, so a
// subsequent spike is detected as soon as the voltage has dropped back
// below threshold and risen again.  Downward crossings are ignored.
type SpikeDetector struct {
	Thr float32 `def:"10" desc:"voltage threshold (mV) for spike detection"`

	PrevVm float32   `desc:"monitored voltage at the previous step, for crossing detection"`
	Times  []float32 `desc:"recorded spike times (msec), append-only over one run"`
}

func (sd *SpikeDetector) Defaults() {
	sd.Thr = 10
}

// Init resets the detector state to the given starting voltage and
// clears the recorded spike times
func (sd *SpikeDetector) Init(v float32) {
	sd.PrevVm = v
	sd.Times = nil
}

// DetectFmVm checks for a threshold crossing given the just-integrated
// voltage v over the step [t, t+dt].  On a crossing it records and
// returns the linearly interpolated crossing time and true.  The
// detector always updates its previous-voltage state.
func (sd *SpikeDetector) DetectFmVm(v, t, dt float32) (float32, bool) {
	prev := sd.PrevVm
	sd.PrevVm = v
	if prev >= sd.Thr || v < sd.Thr {
		return 0, false
	}
	ts := t + dt*(sd.Thr-prev)/(v-prev)
	sd.Times = append(sd.Times, ts)
	return ts, true
}

// NSpikes returns the number of spikes recorded so far
func (sd *SpikeDetector) NSpikes() int {
	return len(sd.Times)
}
