// Copyright 2016 The Gomhd Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package gravity

import (
	"testing"

	"github.com/cpmech/gosl/chk"
)

// TestMomentumCouplingUniformPotentialVanishes checks that a spatially
// uniform potential exerts no force (phiR-phiL=0), independent of half-step
// scaling -- the basic sanity check of a gradient-only coupling.
func TestMomentumCouplingUniformPotentialVanishes(tst *testing.T) {
	chk.PrintTitle("uniform potential gives zero momentum coupling")
	got := MomentumCoupling(true, 0.1, 2.0, 2.0, 1.5)
	chk.Scalar(tst, "dM", 1e-15, got, 0)
	got = MomentumCoupling(false, 0.1, 2.0, 2.0, 1.5)
	chk.Scalar(tst, "dM", 1e-15, got, 0)
}

// TestMomentumCouplingHalfStepIsHalfOfFull checks that the predictor
// coupling is exactly half the corrector coupling for the same inputs, per
// spec.md's "same formulae ... with the ½ removed".
func TestMomentumCouplingHalfStepIsHalfOfFull(tst *testing.T) {
	chk.PrintTitle("predictor gravity coupling is half of corrector's")
	half := MomentumCoupling(true, 0.2, 1.0, 1.4, 2.0)
	full := MomentumCoupling(false, 0.2, 1.0, 1.4, 2.0)
	chk.Scalar(tst, "half*2", 1e-12, half*2, full)
}

// TestMomentumCouplingSign checks the direction: a potential that increases
// to the right (phiR>phiL) pulls momentum to the left (negative ΔM), i.e.
// the force points down the potential gradient.
func TestMomentumCouplingSign(tst *testing.T) {
	chk.PrintTitle("gravity momentum coupling points down the potential gradient")
	got := MomentumCoupling(false, 0.1, 0.0, 1.0, 2.0)
	if got >= 0 {
		tst.Fatalf("expected negative coupling when potential increases rightward, got %v", got)
	}
}

func TestEnergyCouplingHalfStepIsHalfOfFull(tst *testing.T) {
	chk.PrintTitle("predictor gravity energy coupling is half of corrector's")
	half := EnergyCoupling(true, 0.2, 1.0, 0.9, 0.7, 0.5, 0.4)
	full := EnergyCoupling(false, 0.2, 1.0, 0.9, 0.7, 0.5, 0.4)
	chk.Scalar(tst, "half*2", 1e-12, half*2, full)
}

func TestEnergyCouplingUniformPotentialVanishes(tst *testing.T) {
	chk.PrintTitle("uniform potential gives zero energy coupling")
	got := EnergyCoupling(false, 0.1, 3.0, 3.0, 3.0, 0.2, -0.3)
	chk.Scalar(tst, "dE", 1e-15, got, 0)
}
