// Copyright (c) 2024, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package ringnet

import (
	"fmt"

	"github.com/chewxy/math32"
	"github.com/emer/etable/minmax"
	"github.com/emer/ringnet/chans"
)

// cable.go implements the multi-compartment cable: membrane current
// balance per compartment, axial coupling through the morphology tree,
// and the staggered implicit integration step.
//
// Units: geometry um, resistivity ohm*cm, capacitance uF/cm^2,
// conductance densities mS/cm^2, absolute conductances mS, potentials
// mV, currents uA, time msec.  mS * mV = uA and uF * mV / msec = uA,
// so no unit factors appear in the voltage equation.

// CableParams are the electrical constants shared by all compartments
// of one cable
type CableParams struct {
	Ra      float32     `def:"100" min:"0.001" desc:"axial (cytoplasmic) resistivity (ohm cm)"`
	Cm      float32     `def:"1" min:"0.001" desc:"specific membrane capacitance (uF/cm^2)"`
	VInit   float32     `def:"-65" desc:"initial (resting) membrane potential (mV) -- gating variables initialize to their steady state at this voltage"`
	VmRange minmax.F32  `view:"inline" desc:"physically sane bounds on Vm -- leaving this range is treated as numerical divergence and stops the run"`
	Noise   NoiseParams `view:"no-inline" desc:"optional per-step membrane potential noise -- Off by default, and must stay off for deterministic runs"`
}

func (cp *CableParams) Defaults() {
	cp.Ra = 100
	cp.Cm = 1
	cp.VInit = -65
	cp.VmRange.Set(-120, 80)
	cp.Noise.Defaults()
}

func (cp *CableParams) Update() {
}

// Validate returns an error for parameter values that cannot produce a
// runnable cable
func (cp *CableParams) Validate() error {
	if cp.Ra <= 0 {
		return fmt.Errorf("CableParams: Ra must be > 0, got %v", cp.Ra)
	}
	if cp.Cm <= 0 {
		return fmt.Errorf("CableParams: Cm must be > 0, got %v", cp.Cm)
	}
	return nil
}

// Compartment is one electrically uniform membrane cylinder in a cable.
// Compartments are owned exclusively by their Cable and are stored in
// parent-before-child order (root first, Par < own index).
type Compartment struct {
	Name string  `desc:"name of the morphological section this compartment belongs to, e.g., soma, dend"`
	Par  int     `desc:"index of parent compartment in the cable -- -1 for the root (soma)"`
	L    float32 `desc:"length (um)"`
	Diam float32 `desc:"diameter (um)"`

	Mechs []chans.Mech `desc:"membrane current mechanisms attached to this compartment"`

	Vm float32 `desc:"membrane potential (mV) -- the state variable integrated over time"`

	Area float32 `inactive:"+" desc:"membrane surface area (cm^2), computed from geometry at build time"`
	Cap  float32 `inactive:"+" desc:"absolute capacitance (uF) = Cm * Area"`
	Bpar float32 `inactive:"+" desc:"axial coupling conductance to parent (mS), from series half-cylinder resistances -- 0 for root"`
}

// halfAxialR returns the axial resistance (ohm) of half this
// compartment's length, from its center to its end
func (cm *Compartment) halfAxialR(ra float32) float32 {
	lcm := cm.L * 1e-4 / 2
	rcm := cm.Diam * 1e-4 / 2
	return ra * lcm / (math32.Pi * rcm * rcm)
}

// Cable is a tree of compartments sharing axial current -- one neuron's
// morphology, presented to the integrator as a single coupled system.
// The implicit backward-Euler voltage update is solved directly in O(n)
// by eliminating children into parents (compartments are ordered parent
// first), so a single-compartment cable is just the n=1 case of the
// same code path.
type Cable struct {
	Params CableParams    `desc:"electrical constants for all compartments"`
	Comps  []*Compartment `desc:"compartments in parent-before-child order -- index 0 is the morphological root (soma)"`

	GSyn  []float32 `view:"-" desc:"per-compartment synaptic conductance (mS) for the current step, set by the owning cell before Step"`
	GESyn []float32 `view:"-" desc:"per-compartment synaptic conductance * reversal (mS mV) for the current step"`
	Inj   []float32 `view:"-" desc:"per-compartment injected current (uA) for the current step, e.g., from an IClamp"`

	diag []float32
	rhs  []float32
}

// NewCable returns a cable with default parameters and no compartments
func NewCable() *Cable {
	cb := &Cable{}
	cb.Params.Defaults()
	return cb
}

// AddComp appends a compartment with given name, parent index and
// geometry, returning its index
func (cb *Cable) AddComp(name string, par int, l, diam float32, mechs ...chans.Mech) int {
	cm := &Compartment{Name: name, Par: par, L: l, Diam: diam, Mechs: mechs}
	cb.Comps = append(cb.Comps, cm)
	return len(cb.Comps) - 1
}

// Build validates the tree structure and computes the derived geometry
// (areas, capacitances, axial coupling conductances), which are fixed
// from then on.  Must be called before Init or Step.
func (cb *Cable) Build() error {
	if err := cb.Params.Validate(); err != nil {
		return err
	}
	n := len(cb.Comps)
	if n == 0 {
		return fmt.Errorf("Cable: no compartments")
	}
	for i, cm := range cb.Comps {
		if i == 0 {
			if cm.Par != -1 {
				return fmt.Errorf("Cable: compartment 0 (%s) must be the root (Par = -1), got %d", cm.Name, cm.Par)
			}
		} else if cm.Par < 0 || cm.Par >= i {
			return fmt.Errorf("Cable: compartment %d (%s) parent %d is not an earlier compartment", i, cm.Name, cm.Par)
		}
		if cm.L <= 0 || cm.Diam <= 0 {
			return fmt.Errorf("Cable: compartment %d (%s) has non-positive geometry L=%v Diam=%v", i, cm.Name, cm.L, cm.Diam)
		}
	}
	for i, cm := range cb.Comps {
		cm.Area = math32.Pi * cm.Diam * cm.L * 1e-8
		cm.Cap = cb.Params.Cm * cm.Area
		if i > 0 {
			pr := cb.Comps[cm.Par]
			rsum := cm.halfAxialR(cb.Params.Ra) + pr.halfAxialR(cb.Params.Ra)
			cm.Bpar = 1000 / rsum // ohm -> S -> mS
		}
	}
	cb.GSyn = make([]float32, n)
	cb.GESyn = make([]float32, n)
	cb.Inj = make([]float32, n)
	cb.diag = make([]float32, n)
	cb.rhs = make([]float32, n)
	return nil
}

// InitActs sets all compartments to the resting potential with gating
// variables at their steady state for that voltage, and clears all
// per-step inputs
func (cb *Cable) InitActs() {
	for _, cm := range cb.Comps {
		cm.Vm = cb.Params.VInit
		for _, mc := range cm.Mechs {
			mc.InitFmV(cm.Vm)
		}
	}
	for i := range cb.GSyn {
		cb.GSyn[i] = 0
		cb.GESyn[i] = 0
		cb.Inj[i] = 0
	}
}

// DivergeError reports numerical divergence of the voltage solution in
// one compartment: the run must stop rather than produce corrupted
// traces
type DivergeError struct {
	Comp int     `desc:"index of the offending compartment"`
	Name string  `desc:"section name of the offending compartment"`
	Vm   float32 `desc:"diverged voltage value"`
}

func (de *DivergeError) Error() string {
	return fmt.Sprintf("voltage diverged in compartment %d (%s): Vm = %v mV", de.Comp, de.Name, de.Vm)
}

// StepFmG advances the cable by one step of dt msec, using the synaptic
// and injected inputs currently set in GSyn / GESyn / Inj.  Gating
// variables advance first from the previous step's voltages (exact
// exponential update), then the voltage advances by backward Euler on
// the axial coupling tree with the updated ionic conductances -- the
// staggered scheme.  Returns a DivergeError if any voltage leaves the
// sane range.
func (cb *Cable) StepFmG(dt float32) error {
	n := len(cb.Comps)
	for _, cm := range cb.Comps {
		for _, mc := range cm.Mechs {
			mc.StepFmV(cm.Vm, dt)
		}
	}
	for i, cm := range cb.Comps {
		var g, ge float32
		for _, mc := range cm.Mechs {
			mc.Gs(&g, &ge)
		}
		cfac := cm.Cap / dt
		cb.diag[i] = cfac + g*cm.Area + cb.GSyn[i]
		cb.rhs[i] = cfac*cm.Vm + ge*cm.Area + cb.GESyn[i] + cb.Inj[i]
	}
	for i := 1; i < n; i++ {
		cm := cb.Comps[i]
		cb.diag[i] += cm.Bpar
		cb.diag[cm.Par] += cm.Bpar
	}
	// eliminate children into parents, leaves to root
	for i := n - 1; i >= 1; i-- {
		cm := cb.Comps[i]
		f := cm.Bpar / cb.diag[i]
		cb.diag[cm.Par] -= f * cm.Bpar
		cb.rhs[cm.Par] += f * cb.rhs[i]
	}
	// back substitute, root to leaves
	cb.Comps[0].Vm = cb.rhs[0] / cb.diag[0]
	for i := 1; i < n; i++ {
		cm := cb.Comps[i]
		cm.Vm = (cb.rhs[i] + cm.Bpar*cb.Comps[cm.Par].Vm) / cb.diag[i]
	}
	if cb.Params.Noise.On {
		for _, cm := range cb.Comps {
			cm.Vm += cb.Params.Noise.VmNoise()
		}
	}
	for i, cm := range cb.Comps {
		if math32.IsNaN(cm.Vm) || math32.IsInf(cm.Vm, 0) ||
			cm.Vm < cb.Params.VmRange.Min || cm.Vm > cb.Params.VmRange.Max {
			return &DivergeError{Comp: i, Name: cm.Name, Vm: cm.Vm}
		}
	}
	return nil
}
