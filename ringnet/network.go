// Copyright (c) 2024, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package ringnet

import (
	"fmt"

	"github.com/chewxy/math32"
	"github.com/goki/mat32"
)

// RingParams configure a ring network: N cells, each cell's spike
// detector wired to the next cell's synapse around the ring, and one
// external stimulus into cell 0
type RingParams struct {
	N        int        `def:"5" min:"1" desc:"number of cells in the ring"`
	SynWt    float32    `def:"0.01" desc:"weight (uS) on every ring edge"`
	SynDelay float32    `def:"5" desc:"delivery delay (msec) on every ring edge"`
	Radius   float32    `def:"50" desc:"ring radius (um) -- placement geometry only, does not affect dynamics"`
	Stim     NetStim    `view:"inline" desc:"the one-shot external stimulus, delivered to cell 0"`
	Cell     CellParams `view:"no-inline" desc:"parameters for every cell -- cells are uniform"`
}

func (rp *RingParams) Defaults() {
	rp.N = 5
	rp.SynWt = 0.01
	rp.SynDelay = 5
	rp.Radius = 50
	rp.Stim.Defaults()
	rp.Cell.Defaults()
}

func (rp *RingParams) Update() {
}

// Validate fails fast on construction parameters that cannot produce a
// runnable network, before any simulation state is created
func (rp *RingParams) Validate() error {
	if rp.N < 1 {
		return fmt.Errorf("RingParams: N must be >= 1, got %d", rp.N)
	}
	if rp.SynDelay < 0 {
		return fmt.Errorf("RingParams: negative SynDelay %v", rp.SynDelay)
	}
	if rp.N == 1 && rp.SynDelay <= 0 {
		return fmt.Errorf("RingParams: N=1 self-loop requires SynDelay > 0")
	}
	if err := rp.Stim.Validate(); err != nil {
		return err
	}
	return rp.Cell.Validate()
}

// ringnet.Network holds the cells and their connectivity.  Topology is
// fixed at construction: connections live in one adjacency list owned
// by the network, referencing cells by gid, and only the cells'
// internal continuous and decaying state changes thereafter.
type Network struct {
	Cells []*Cell       `desc:"the cells, indexed by gid"`
	Cons  []*Connection `desc:"all directed edges, owned here -- endpoints referenced by gid"`
	Stim  *NetStim      `desc:"the external stimulus generator -- fires exactly once per run"`

	SendCons [][]int `view:"-" desc:"per-cell indexes into Cons of outgoing edges, for spike-time event scheduling"`
}

// ConfigRing builds an N-cell ring network: cell i's detector connects
// to cell (i+1) mod N's synapse with the uniform weight and delay, and
// the stimulus targets cell 0.  Cells are placed at evenly spaced
// angles around a circle of the configured radius.  N = 1 is the legal
// degenerate self-loop case.
func ConfigRing(rp *RingParams) (*Network, error) {
	if err := rp.Validate(); err != nil {
		return nil, err
	}
	nt := &Network{}
	nt.Cells = make([]*Cell, rp.N)
	nt.SendCons = make([][]int, rp.N)
	for i := 0; i < rp.N; i++ {
		cl, err := NewCell(i, &rp.Cell)
		if err != nil {
			return nil, err
		}
		theta := 2 * math32.Pi * float32(i) / float32(rp.N)
		cl.Pos = mat32.Vec3{X: rp.Radius * math32.Cos(theta), Y: rp.Radius * math32.Sin(theta), Z: 0}
		cl.Rot = theta
		nt.Cells[i] = cl
	}
	for i := 0; i < rp.N; i++ {
		cn := &Connection{Send: i, Recv: (i + 1) % rp.N, Wt: rp.SynWt, Delay: rp.SynDelay}
		if err := cn.Validate(); err != nil {
			return nil, err
		}
		nt.Cons = append(nt.Cons, cn)
		nt.SendCons[i] = append(nt.SendCons[i], len(nt.Cons)-1)
	}
	stim := rp.Stim
	stim.Recv = 0
	nt.Stim = &stim
	return nt, nil
}

// NCells returns the number of cells
func (nt *Network) NCells() int {
	return len(nt.Cells)
}

// InitActs initializes all cell state for a new run
func (nt *Network) InitActs() {
	for _, cl := range nt.Cells {
		cl.InitActs()
	}
}

// ScheduleSpike enqueues delivery events for every outgoing connection
// of the given cell, firing at time ts
func (nt *Network) ScheduleSpike(eq *EventQueue, gid int, ts float32) {
	for _, ci := range nt.SendCons[gid] {
		cn := nt.Cons[ci]
		eq.Add(ts+cn.Delay, cn.Recv, cn.Wt)
	}
}

// SpikeTimes returns the recorded spike times for the given cell
func (nt *Network) SpikeTimes(gid int) []float32 {
	return nt.Cells[gid].Det.Times
}
