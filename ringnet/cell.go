// Copyright (c) 2024, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package ringnet

import (
	"fmt"

	"github.com/emer/ringnet/chans"
	"github.com/goki/mat32"
)

// CellParams are the morphology, channel and synapse parameters for one
// ball-and-stick cell: an active (Hodgkin-Huxley) soma with a passive
// dendrite attached, a synapse at a fractional position along the
// dendrite, and a spike detector at the soma
type CellParams struct {
	SomaL    float32         `def:"12.6157" desc:"soma length (um) -- default gives 500 um^2 soma area with the matching diameter"`
	SomaDiam float32         `def:"12.6157" desc:"soma diameter (um)"`
	DendL    float32         `def:"200" desc:"dendrite length (um)"`
	DendDiam float32         `def:"1" desc:"dendrite diameter (um)"`
	NSeg     int             `def:"5" desc:"number of dendrite compartments -- odd, so a compartment center sits at the dendrite midpoint"`
	SynLoc   float32         `def:"0.5" min:"0" max:"1" desc:"fractional position of the synapse along the dendrite (0 = soma end, 1 = distal tip)"`
	Thr      float32         `def:"10" desc:"spike detection threshold (mV) at the soma"`
	Cable    CableParams     `view:"inline" desc:"electrical constants (Ra, Cm, resting potential, divergence bounds)"`
	Syn      Synapse         `view:"inline" desc:"synapse parameters -- the state portion is per-cell, copied at build"`
	Pas      chans.PasParams `view:"inline" desc:"passive leak parameters for the dendrite compartments"`
}

func (cp *CellParams) Defaults() {
	cp.SomaL = 12.6157
	cp.SomaDiam = 12.6157
	cp.DendL = 200
	cp.DendDiam = 1
	cp.NSeg = 5
	cp.SynLoc = 0.5
	cp.Thr = 10
	cp.Cable.Defaults()
	cp.Syn.Defaults()
	cp.Pas.Defaults()
}

func (cp *CellParams) Update() {
}

// Validate returns an error for parameter values that cannot produce a
// runnable cell
func (cp *CellParams) Validate() error {
	if cp.NSeg < 1 || cp.NSeg%2 == 0 {
		return fmt.Errorf("CellParams: NSeg must be a positive odd number, got %d", cp.NSeg)
	}
	if cp.SynLoc < 0 || cp.SynLoc > 1 {
		return fmt.Errorf("CellParams: SynLoc must be in [0,1], got %v", cp.SynLoc)
	}
	if err := cp.Cable.Validate(); err != nil {
		return err
	}
	return cp.Syn.Validate()
}

// ringnet.Cell is the unit of network composition: one cable assembly,
// one synapse, one spike detector, plus placement metadata and any
// current clamps.  Outgoing connections are owned by the Network, not
// the cell.
type Cell struct {
	Gid int        `desc:"unique cell id -- index of this cell in its network"`
	Pos mat32.Vec3 `desc:"spatial position of the soma (um), set by the network builder"`
	Rot float32    `desc:"rotation about the vertical axis (radians), set by the network builder"`

	Cable *Cable         `desc:"the compartmental cable for this cell"`
	Syn   *Synapse       `desc:"the synapse receiving all of this cell's network input"`
	Det   *SpikeDetector `desc:"threshold detector monitoring the soma"`

	SynComp int `inactive:"+" desc:"cable compartment index the synapse is attached to"`
	DetComp int `inactive:"+" desc:"cable compartment index the detector monitors"`

	Stims []*IClamp `desc:"current clamps injecting into this cell's compartments"`
}

// NewCell builds a ball-and-stick cell from the given parameters.
// The soma is compartment 0 with Hodgkin-Huxley channels; the dendrite
// is a chain of NSeg passive compartments.
func NewCell(gid int, cp *CellParams) (*Cell, error) {
	if err := cp.Validate(); err != nil {
		return nil, err
	}
	cl := &Cell{Gid: gid}
	cb := NewCable()
	cb.Params = cp.Cable
	cb.AddComp("soma", -1, cp.SomaL, cp.SomaDiam, chans.NewHHMech())
	segL := cp.DendL / float32(cp.NSeg)
	par := 0
	for i := 0; i < cp.NSeg; i++ {
		pas := chans.NewPasMech()
		pas.Pas = cp.Pas
		par = cb.AddComp("dend", par, segL, cp.DendDiam, pas)
	}
	if err := cb.Build(); err != nil {
		return nil, err
	}
	cl.Cable = cb

	syn := &Synapse{}
	*syn = cp.Syn
	cl.Syn = syn
	// compartment whose center spans the fractional position
	seg := int(cp.SynLoc * float32(cp.NSeg))
	if seg >= cp.NSeg {
		seg = cp.NSeg - 1
	}
	cl.SynComp = 1 + seg

	det := &SpikeDetector{}
	det.Defaults()
	det.Thr = cp.Thr
	cl.Det = det
	cl.DetComp = 0
	return cl, nil
}

// InitActs initializes all cell state for a new run: cable at rest,
// synapse cleared, detector re-armed at the resting voltage
func (cl *Cell) InitActs() {
	cl.Cable.InitActs()
	cl.Syn.Init()
	cl.Det.Init(cl.Cable.Comps[cl.DetComp].Vm)
}

// SomaVm returns the current soma membrane potential (mV)
func (cl *Cell) SomaVm() float32 {
	return cl.Cable.Comps[0].Vm
}

// AddIClamp attaches a current clamp to the given compartment
func (cl *Cell) AddIClamp(comp int, del, dur, amp float32) *IClamp {
	ic := &IClamp{Comp: comp, Del: del, Dur: dur, Amp: amp}
	cl.Stims = append(cl.Stims, ic)
	return ic
}

// StepFmG advances this cell's cable one step: loads the synapse
// conductance and clamp currents into the cable's per-step inputs,
// then integrates.  The synapse has already been decayed for this step
// by the caller.
func (cl *Cell) StepFmG(t, dt float32) error {
	cb := cl.Cable
	for i := range cb.GSyn {
		cb.GSyn[i] = 0
		cb.GESyn[i] = 0
		cb.Inj[i] = 0
	}
	g := cl.Syn.GmS()
	cb.GSyn[cl.SynComp] = g
	cb.GESyn[cl.SynComp] = g * cl.Syn.E
	for _, ic := range cl.Stims {
		cb.Inj[ic.Comp] += ic.IFmT(t)
	}
	return cb.StepFmG(dt)
}
