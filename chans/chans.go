// Copyright (c) 2024, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

/*
Package chans provides standard ion channel mechanisms for compartmental
cable models: the classic Hodgkin-Huxley sodium and potassium channels
with voltage-gated first-order gating kinetics, and the passive leak
channel.  Conductance densities are in mS/cm^2 and potentials in mV, so
that g * V currents come out in uA/cm^2, matching Cm in uF/cm^2 with
time in msec.
*/
package chans

// Chans are ion channel values for the channel types used in
// compartmental cable models: one value per channel, e.g., maximal
// conductance density (mS/cm^2) or reversal potential (mV)
type Chans struct {
	Na float32 `desc:"fast voltage-gated sodium channels, driving the rising phase of the action potential"`
	K  float32 `desc:"delayed-rectifier potassium channels, driving repolarization"`
	L  float32 `desc:"constant leak channels -- determines resting potential along with the Na, K steady states"`
}

// SetAll sets all the values
func (ch *Chans) SetAll(na, k, l float32) {
	ch.Na, ch.K, ch.L = na, k, l
}

// Mech is a membrane current mechanism attached to one compartment.
// Mechanisms present a uniform contract so that cable assembly code can
// iterate over them without knowing concrete types: internal gating
// state advances from the compartment voltage, and the resulting
// contribution enters the voltage equation as a conductance and a
// conductance-weighted reversal potential.
type Mech interface {
	// Defaults sets default parameter values
	Defaults()

	// InitFmV initializes gating state to its steady state at voltage v (mV)
	InitFmV(v float32)

	// StepFmV advances gating state by dt (msec) using voltage v,
	// which is the voltage from the *previous* integration step under
	// the staggered update scheme
	StepFmV(v, dt float32)

	// Gs accumulates this mechanism's current conductance density
	// (mS/cm^2) into g, and conductance-weighted reversal potential
	// (mS/cm^2 * mV) into ge, for the implicit voltage update
	Gs(g, ge *float32)
}
