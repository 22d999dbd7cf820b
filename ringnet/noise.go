// Copyright (c) 2024, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package ringnet

import (
	"github.com/emer/emergent/erand"
)

// NoiseParams are parameters for optional per-step membrane potential
// noise.  Off by default: reference runs are strictly deterministic,
// and all the determinism guarantees only hold with noise off.
type NoiseParams struct {
	erand.RndParams
	On bool `desc:"whether to add noise to Vm each step"`
}

func (np *NoiseParams) Defaults() {
	np.On = false
	np.Mean = 0
	np.Var = 0.1
	np.Dist = erand.Gaussian
}

func (np *NoiseParams) Update() {
}

// VmNoise returns one noise sample (mV) to add to a compartment's
// voltage, or 0 if Off
func (np *NoiseParams) VmNoise() float32 {
	if !np.On {
		return 0
	}
	return float32(np.Gen(-1))
}
