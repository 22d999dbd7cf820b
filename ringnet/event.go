// Copyright (c) 2024, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package ringnet

import "container/heap"

// ringnet.Event is one pending synaptic weight delivery: at Time, add
// Wt to the synapse of the cell with the given gid.  Events reference
// their target by gid rather than pointer, keeping connectivity free of
// ownership cycles.  Events are transient: created when a source fires,
// consumed and discarded when delivered.
type Event struct {
	Time float32 `desc:"absolute delivery time (msec)"`
	Cell int     `desc:"gid of the target cell whose synapse receives the weight"`
	Wt   float32 `desc:"weight (conductance increment, uS) to add on delivery"`
	Seq  int     `desc:"insertion sequence number -- breaks delivery-time ties in FIFO order for determinism"`
}

// eventHeap orders events by delivery time, ties broken by insertion
// order
type eventHeap []*Event

func (eh eventHeap) Len() int { return len(eh) }

func (eh eventHeap) Less(i, j int) bool {
	if eh[i].Time != eh[j].Time {
		return eh[i].Time < eh[j].Time
	}
	return eh[i].Seq < eh[j].Seq
}

func (eh eventHeap) Swap(i, j int) { eh[i], eh[j] = eh[j], eh[i] }

func (eh *eventHeap) Push(x any) { *eh = append(*eh, x.(*Event)) }

func (eh *eventHeap) Pop() any {
	old := *eh
	n := len(old)
	ev := old[n-1]
	old[n-1] = nil
	*eh = old[:n-1]
	return ev
}

// EventQueue is the priority queue of pending delivery events, owned by
// one simulation run.  All state is per-queue, so independent runs
// (e.g., parameter sweeps) never share event state.
type EventQueue struct {
	evs eventHeap
	seq int
}

// NewEventQueue returns a new empty event queue
func NewEventQueue() *EventQueue {
	return &EventQueue{}
}

// Reset discards all pending events and restarts the insertion sequence
func (eq *EventQueue) Reset() {
	eq.evs = nil
	eq.seq = 0
}

// Len returns the number of pending events
func (eq *EventQueue) Len() int {
	return len(eq.evs)
}

// Add schedules delivery of wt to the synapse of cell gid at time t
func (eq *EventQueue) Add(t float32, gid int, wt float32) {
	ev := &Event{Time: t, Cell: gid, Wt: wt, Seq: eq.seq}
	eq.seq++
	heap.Push(&eq.evs, ev)
}

// PopBefore removes and returns the earliest pending event with
// delivery time < t, or nil if none.  Repeated calls drain all events
// in a delivery window in increasing time order, FIFO within ties.
func (eq *EventQueue) PopBefore(t float32) *Event {
	if len(eq.evs) == 0 || eq.evs[0].Time >= t {
		return nil
	}
	return heap.Pop(&eq.evs).(*Event)
}
