// Copyright (c) 2024, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package chans

// PasParams are passive leak channel parameters, for compartments with
// no active channels (e.g., dendrites in reduced models)
type PasParams struct {
	G float32 `def:"1" desc:"leak conductance density (mS/cm^2)"`
	E float32 `def:"-65" desc:"leak reversal potential (mV) -- sets the local resting potential"`
}

func (pp *PasParams) Defaults() {
	pp.G = 1
	pp.E = -65
}

func (pp *PasParams) Update() {
}

// PasMech is the passive leak mechanism.  It has no gating state, so
// init and step are no-ops.  Implements the Mech interface.
type PasMech struct {
	Pas PasParams `view:"inline" desc:"leak conductance and reversal parameters"`
}

// NewPasMech returns a new passive mechanism with default parameters
func NewPasMech() *PasMech {
	pm := &PasMech{}
	pm.Defaults()
	return pm
}

func (pm *PasMech) Defaults() {
	pm.Pas.Defaults()
}

func (pm *PasMech) InitFmV(v float32) {
}

func (pm *PasMech) StepFmV(v, dt float32) {
}

func (pm *PasMech) Gs(g, ge *float32) {
	*g += pm.Pas.G
	*ge += pm.Pas.G * pm.Pas.E
}
