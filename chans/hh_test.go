// Copyright (c) 2024, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package chans

import (
	"testing"

	"github.com/chewxy/math32"
)

// difTol is the numerical difference tolerance for comparing values
const difTol = float32(1.0e-5)

func TestVTrapSingularity(t *testing.T) {
	// continuous across the removable singularity at x = 0
	lo := VTrap(-1e-4, 10)
	mid := VTrap(0, 10)
	hi := VTrap(1e-4, 10)
	if math32.Abs(mid-10) > difTol {
		t.Errorf("VTrap(0, 10) = %v, want 10", mid)
	}
	if math32.Abs(lo-mid) > 1e-3 || math32.Abs(hi-mid) > 1e-3 {
		t.Errorf("VTrap discontinuous near 0: %v %v %v", lo, mid, hi)
	}
}

func TestHHRates(t *testing.T) {
	hh := HHParams{}
	hh.Defaults()
	// rates must be positive over the physiological range
	for v := float32(-100); v <= 60; v += 2.5 {
		am, bm := hh.MRates(v)
		ah, bh := hh.HRates(v)
		an, bn := hh.NRates(v)
		for _, r := range []float32{am, bm, ah, bh, an, bn} {
			if !(r > 0) {
				t.Fatalf("non-positive rate at v=%v", v)
			}
		}
	}
	// m activation steady state increases with depolarization,
	// h inactivation steady state decreases
	am1, bm1 := hh.MRates(-65)
	am2, bm2 := hh.MRates(-40)
	if gateSS(am2, bm2) <= gateSS(am1, bm1) {
		t.Errorf("m steady state not increasing with v")
	}
	ah1, bh1 := hh.HRates(-65)
	ah2, bh2 := hh.HRates(-40)
	if gateSS(ah2, bh2) >= gateSS(ah1, bh1) {
		t.Errorf("h steady state not decreasing with v")
	}
}

func TestGatesSteadyStateFixedPoint(t *testing.T) {
	hm := NewHHMech()
	vrest := float32(-65)
	hm.InitFmV(vrest)
	g0 := hm.Gates
	for _, x := range []float32{g0.M, g0.H, g0.N} {
		if x <= 0 || x >= 1 {
			t.Fatalf("gate steady state out of (0,1): %v", x)
		}
	}
	// stepping at the same voltage must leave the gates at steady state
	for i := 0; i < 100; i++ {
		hm.StepFmV(vrest, 0.025)
	}
	if math32.Abs(hm.Gates.M-g0.M) > difTol ||
		math32.Abs(hm.Gates.H-g0.H) > difTol ||
		math32.Abs(hm.Gates.N-g0.N) > difTol {
		t.Errorf("gates drifted at steady state: %v -> %v", g0, hm.Gates)
	}
}

func TestGatesRelaxToNewSteadyState(t *testing.T) {
	hm := NewHHMech()
	hm.InitFmV(-65)
	vdep := float32(-30)
	// long exposure to a fixed voltage converges to that voltage's steady state
	for i := 0; i < 4000; i++ {
		hm.StepFmV(vdep, 0.025)
	}
	ref := NewHHMech()
	ref.InitFmV(vdep)
	if math32.Abs(hm.Gates.M-ref.Gates.M) > 1e-4 ||
		math32.Abs(hm.Gates.H-ref.Gates.H) > 1e-4 ||
		math32.Abs(hm.Gates.N-ref.Gates.N) > 1e-4 {
		t.Errorf("gates did not relax to steady state: %v vs %v", hm.Gates, ref.Gates)
	}
}

func TestMechGs(t *testing.T) {
	hm := NewHHMech()
	hm.InitFmV(-65)
	var g, ge float32
	hm.Gs(&g, &ge)
	if !(g > 0) {
		t.Errorf("HH conductance not positive: %v", g)
	}
	// at rest the conductance-weighted reversal must be dominated by
	// the hyperpolarized K and leak reversals
	if ge/g > -50 || ge/g < -90 {
		t.Errorf("HH resting reversal implausible: %v", ge/g)
	}

	pm := NewPasMech()
	g, ge = 0, 0
	pm.Gs(&g, &ge)
	if math32.Abs(g-pm.Pas.G) > difTol || math32.Abs(ge-pm.Pas.G*pm.Pas.E) > difTol {
		t.Errorf("PasMech Gs wrong: g=%v ge=%v", g, ge)
	}
}
