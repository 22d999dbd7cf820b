// Copyright (c) 2024, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package chans

import (
	"github.com/chewxy/math32"
)

// HHParams are the parameters of the classic Hodgkin-Huxley squid-axon
// sodium and potassium channels plus leak, with the standard rate
// functions at 6.3 deg C (no temperature scaling).  Conductance
// densities are mS/cm^2, potentials mV.
type HHParams struct {
	Gbar Chans `desc:"[Defaults: 120, 36, 0.3] maximal conductance densities for the channels (mS/cm^2)"`
	Erev Chans `desc:"[Defaults: 50, -77, -54.3] reversal potentials for the channels (mV)"`
}

func (hh *HHParams) Defaults() {
	hh.Gbar.SetAll(120, 36, 0.3)
	hh.Erev.SetAll(50, -77, -54.3)
}

func (hh *HHParams) Update() {
}

// VTrap computes x / (exp(x/y) - 1) with the singularity at x = 0
// removed by its Taylor expansion, as in the standard rate functions
func VTrap(x, y float32) float32 {
	if math32.Abs(x/y) < 1e-6 {
		return y * (1 - x/y/2)
	}
	return x / (math32.Exp(x/y) - 1)
}

// MRates returns the opening and closing rates (1/msec) for the
// sodium activation gate m at voltage v
func (hh *HHParams) MRates(v float32) (alpha, beta float32) {
	alpha = 0.1 * VTrap(-(v+40), 10)
	beta = 4 * math32.Exp(-(v+65)/18)
	return
}

// HRates returns the opening and closing rates (1/msec) for the
// sodium inactivation gate h at voltage v
func (hh *HHParams) HRates(v float32) (alpha, beta float32) {
	alpha = 0.07 * math32.Exp(-(v+65)/20)
	beta = 1 / (1 + math32.Exp(-(v+35)/10))
	return
}

// NRates returns the opening and closing rates (1/msec) for the
// potassium activation gate n at voltage v
func (hh *HHParams) NRates(v float32) (alpha, beta float32) {
	alpha = 0.01 * VTrap(-(v+55), 10)
	beta = 0.125 * math32.Exp(-(v+65)/80)
	return
}

// Gates holds the Hodgkin-Huxley gating variable state for one
// compartment: each is the fraction of open gates of that type, in 0-1
type Gates struct {
	M float32 `desc:"sodium channel activation gate"`
	H float32 `desc:"sodium channel inactivation gate"`
	N float32 `desc:"potassium channel activation gate"`
}

// gateSS returns the steady state for one gate from its rates
func gateSS(alpha, beta float32) float32 {
	return alpha / (alpha + beta)
}

// gateFmV advances one gate by dt using the exact exponential solution
// of dx/dt = (xinf - x) / tau with rates held at voltage v
func gateFmV(x *float32, alpha, beta, dt float32) {
	sum := alpha + beta
	xinf := alpha / sum
	*x += (xinf - *x) * (1 - math32.Exp(-dt*sum))
}

// HHMech is the Hodgkin-Huxley active channel mechanism: params plus
// per-compartment gating state.  Implements the Mech interface.
type HHMech struct {
	HH    HHParams `view:"inline" desc:"channel conductance and kinetics parameters"`
	Gates Gates    `desc:"gating variable state for the host compartment"`
}

// NewHHMech returns a new HH mechanism with default parameters
func NewHHMech() *HHMech {
	hm := &HHMech{}
	hm.Defaults()
	return hm
}

func (hm *HHMech) Defaults() {
	hm.HH.Defaults()
}

func (hm *HHMech) InitFmV(v float32) {
	am, bm := hm.HH.MRates(v)
	ah, bh := hm.HH.HRates(v)
	an, bn := hm.HH.NRates(v)
	hm.Gates.M = gateSS(am, bm)
	hm.Gates.H = gateSS(ah, bh)
	hm.Gates.N = gateSS(an, bn)
}

func (hm *HHMech) StepFmV(v, dt float32) {
	am, bm := hm.HH.MRates(v)
	ah, bh := hm.HH.HRates(v)
	an, bn := hm.HH.NRates(v)
	gateFmV(&hm.Gates.M, am, bm, dt)
	gateFmV(&hm.Gates.H, ah, bh, dt)
	gateFmV(&hm.Gates.N, an, bn, dt)
}

func (hm *HHMech) Gs(g, ge *float32) {
	m, h, n := hm.Gates.M, hm.Gates.H, hm.Gates.N
	gna := hm.HH.Gbar.Na * m * m * m * h
	gk := hm.HH.Gbar.K * n * n * n * n
	gl := hm.HH.Gbar.L
	*g += gna + gk + gl
	*ge += gna*hm.HH.Erev.Na + gk*hm.HH.Erev.K + gl*hm.HH.Erev.L
}
