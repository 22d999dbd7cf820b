// Copyright (c) 2024, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

/*
Package ringnet is the overall repository for a deterministic hybrid
simulator of small networks of biophysically modeled neurons, combining
continuous fixed-step integration of multi-compartment cable equations
with discrete, delayed synaptic spike events.

This top-level of the repository has no functional code -- everything is
organized into the following sub-repositories:

* chans: ion channel mechanisms -- classic Hodgkin-Huxley sodium and
potassium channels with voltage-gated first-order kinetics, and the
passive leak channel, as uniform membrane mechanisms that compartments
iterate over without knowing concrete types.

* ringnet: the core simulation engine -- compartmental cables with an
implicit axial-coupling solve, exponential-decay synapses, threshold
spike detectors, the delivery event queue, and the ring network builder
and simulation clock that tie them together.
*/
package ringnet
