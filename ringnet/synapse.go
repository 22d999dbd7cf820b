// Copyright (c) 2024, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package ringnet

import (
	"fmt"

	"github.com/chewxy/math32"
)

// ringnet.Synapse is a single-state exponential conductance synapse at
// a fixed location on a cable: incoming weight impulses add to the
// conductance instantaneously, and the conductance decays exponentially
// between them.  Because the kinetics are purely linear, overlapping
// inputs from any number of sources are additive in the one state
// variable -- an exact modeling equivalence, not an approximation.
type Synapse struct {
	Tau float32 `def:"2" min:"0.001" desc:"decay time constant (msec)"`
	E   float32 `def:"0" desc:"reversal potential (mV) -- 0 for an excitatory synapse"`

	G      float32 `desc:"conductance state (uS) -- accumulates delivered weights, decays exponentially"`
	NDeliv int     `desc:"number of weight deliveries received since Init -- bookkeeping for diagnostics"`
}

func (sy *Synapse) Defaults() {
	sy.Tau = 2
	sy.E = 0
}

func (sy *Synapse) Update() {
}

// Validate returns an error for parameter values that cannot produce a
// runnable synapse
func (sy *Synapse) Validate() error {
	if sy.Tau <= 0 {
		return fmt.Errorf("Synapse: Tau must be > 0, got %v", sy.Tau)
	}
	return nil
}

// Init clears the conductance state
func (sy *Synapse) Init() {
	sy.G = 0
	sy.NDeliv = 0
}

// DecayFmDt decays the conductance by dt msec using the exact
// exponential solution, so that with no further input the conductance
// at any later time is exactly w * exp(-(t-t0)/Tau)
func (sy *Synapse) DecayFmDt(dt float32) {
	sy.G *= math32.Exp(-dt / sy.Tau)
}

// DeliverWt applies one delivered weight impulse: G += wt (uS)
func (sy *Synapse) DeliverWt(wt float32) {
	sy.G += wt
	sy.NDeliv++
}

// GmS returns the conductance in mS for the uA-denominated cable
// current balance (synaptic conductances are specified in uS)
func (sy *Synapse) GmS() float32 {
	return sy.G * 1e-3
}
