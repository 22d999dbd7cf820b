// Copyright (c) 2024, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package ringnet

import "fmt"

// ringnet.Connection is a directed, weighted, delayed edge from a spike
// source to a target cell's synapse.  Connections are owned by the
// Network as index-based adjacency (gids, not pointers), so the cyclic
// ring wiring never creates cyclic ownership.
type Connection struct {
	Send  int     `desc:"gid of the sending cell whose spike detector drives this edge -- -1 for an external stimulus source"`
	Recv  int     `desc:"gid of the receiving cell whose synapse gets the weight"`
	Wt    float32 `desc:"weight: conductance increment (uS) added to the target synapse per delivered spike"`
	Delay float32 `desc:"fixed latency (msec) between source firing and delivery"`
}

// Validate returns an error for edge parameters that cannot produce
// well-defined behavior.  Self-loops require a strictly positive delay
// to guarantee forward progress in time.
func (cn *Connection) Validate() error {
	if cn.Delay < 0 {
		return fmt.Errorf("Connection %d -> %d: negative delay %v", cn.Send, cn.Recv, cn.Delay)
	}
	if cn.Send == cn.Recv && cn.Delay <= 0 {
		return fmt.Errorf("Connection %d -> %d: self-loop requires delay > 0", cn.Send, cn.Recv)
	}
	return nil
}

// NetStim is an external stimulus generator that fires exactly once at
// a configured time, driving one connection onto a target synapse
type NetStim struct {
	Start float32 `def:"9" desc:"time (msec) at which the single stimulus spike fires"`
	Wt    float32 `def:"0.04" desc:"weight (uS) delivered to the target synapse"`
	Delay float32 `def:"1" desc:"latency (msec) between firing and delivery"`
	Recv  int     `desc:"gid of the target cell"`
}

func (ns *NetStim) Defaults() {
	ns.Start = 9
	ns.Wt = 0.04
	ns.Delay = 1
}

// Validate returns an error for stimulus parameters that cannot produce
// well-defined behavior
func (ns *NetStim) Validate() error {
	if ns.Start < 0 {
		return fmt.Errorf("NetStim: negative start time %v", ns.Start)
	}
	if ns.Delay < 0 {
		return fmt.Errorf("NetStim: negative delay %v", ns.Delay)
	}
	return nil
}

// Schedule enqueues the stimulus's single delivery event.  Called once
// during simulation init -- the stimulus never fires again within a run.
func (ns *NetStim) Schedule(eq *EventQueue) {
	eq.Add(ns.Start+ns.Delay, ns.Recv, ns.Wt)
}

// IClamp injects a constant current into one compartment over a fixed
// window -- the standard tool for probing a cell's intrinsic
// excitability without any network machinery
type IClamp struct {
	Comp int     `desc:"index of the target compartment in the cell's cable"`
	Del  float32 `desc:"onset time (msec)"`
	Dur  float32 `desc:"duration (msec)"`
	Amp  float32 `desc:"amplitude (nA)"`
}

// IFmT returns the injected current (uA) at time t
func (ic *IClamp) IFmT(t float32) float32 {
	if t < ic.Del || t >= ic.Del+ic.Dur {
		return 0
	}
	return ic.Amp * 1e-3 // nA -> uA
}
