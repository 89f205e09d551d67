// Copyright 2016 The Gomhd Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package recon

import (
	"testing"

	"github.com/cmhpc/gomhd/eos"
	"github.com/cpmech/gosl/chk"
)

// roundTrip checks that Synthesize(Project(dw)) reproduces dw, the basic
// consistency law of a characteristic decomposition (L*R=I by construction
// of invert, so this also exercises that construction).
func roundTrip(tst *testing.T, label string, w eos.Prim, bx float64, cfg eos.Config, dw eos.Prim) {
	eig := Build(w, bx, cfg)
	alpha := eig.Project(dw)
	got := eig.Synthesize(alpha)
	chk.Scalar(tst, label+".D", 1e-8, got.D, dw.D)
	chk.Scalar(tst, label+".V1", 1e-8, got.V1, dw.V1)
	chk.Scalar(tst, label+".V2", 1e-8, got.V2, dw.V2)
	chk.Scalar(tst, label+".V3", 1e-8, got.V3, dw.V3)
	if !cfg.Isothermal {
		chk.Scalar(tst, label+".P", 1e-8, got.P, dw.P)
	}
	if cfg.MHD {
		chk.Scalar(tst, label+".B2", 1e-8, got.B2, dw.B2)
		chk.Scalar(tst, label+".B3", 1e-8, got.B3, dw.B3)
	}
}

func TestEigensystemRoundTripHydroAdiabatic(tst *testing.T) {
	chk.PrintTitle("hydro adiabatic eigensystem round trip")
	cfg := eos.New(1.4, 0, false, false, 0)
	w := eos.Prim{D: 1.2, V1: 0.3, V2: -0.1, V3: 0.2, P: 1.5}
	dw := eos.Prim{D: 0.01, V1: 0.02, V2: -0.03, V3: 0.01, P: 0.04}
	roundTrip(tst, "hydro", w, 0, cfg, dw)
}

func TestEigensystemRoundTripHydroIsothermal(tst *testing.T) {
	chk.PrintTitle("hydro isothermal eigensystem round trip")
	cfg := eos.New(0, 0.5, true, false, 0)
	w := eos.Prim{D: 0.8, V1: -0.2, V2: 0.1, V3: 0.0}
	dw := eos.Prim{D: -0.02, V1: 0.03, V2: 0.01, V3: -0.01}
	roundTrip(tst, "iso", w, 0, cfg, dw)
}

func TestEigensystemRoundTripMHDAdiabatic(tst *testing.T) {
	chk.PrintTitle("mhd adiabatic eigensystem round trip")
	cfg := eos.New(5.0/3.0, 0, false, true, 0)
	w := eos.Prim{D: 1.0, V1: 0.1, V2: 0.05, V3: -0.05, P: 1.0, B1: 0.75, B2: 1.0, B3: 0.3}
	dw := eos.Prim{D: 0.01, V1: -0.02, V2: 0.01, V3: 0.02, P: 0.03, B2: -0.01, B3: 0.02}
	roundTrip(tst, "mhd", w, w.B1, cfg, dw)
}

func TestEigensystemRoundTripMHDZeroTransverseField(tst *testing.T) {
	chk.PrintTitle("mhd eigensystem round trip, bt near zero")
	cfg := eos.New(5.0/3.0, 0, false, true, 0)
	w := eos.Prim{D: 1.0, V1: 0.1, V2: 0.0, V3: 0.0, P: 1.0, B1: 1.0, B2: 0.0, B3: 0.0}
	dw := eos.Prim{D: 0.01, V1: -0.02, V2: 0.01, V3: 0.02, P: 0.03, B2: -0.01, B3: 0.02}
	roundTrip(tst, "mhd-bt0", w, w.B1, cfg, dw)
}

func TestEigensystemRoundTripMHDIsothermal(tst *testing.T) {
	chk.PrintTitle("mhd isothermal eigensystem round trip")
	cfg := eos.New(0, 0.7, true, true, 0)
	w := eos.Prim{D: 0.9, V1: 0.2, V2: -0.1, V3: 0.05, B1: 0.5, B2: 0.8, B3: -0.2}
	dw := eos.Prim{D: -0.01, V1: 0.01, V2: 0.02, V3: -0.02, B2: 0.01, B3: -0.01}
	roundTrip(tst, "mhd-iso", w, w.B1, cfg, dw)
}

func TestEigensystemEigenvaluesOrderedAroundV1(tst *testing.T) {
	chk.PrintTitle("mhd eigenvalues bracket v1")
	cfg := eos.New(5.0/3.0, 0, false, true, 0)
	w := eos.Prim{D: 1.0, V1: 0.2, V2: 0, V3: 0, P: 0.6, B1: 0.5, B2: 0.7, B3: 0.1}
	eig := Build(w, w.B1, cfg)
	lmin, lmax := eig.Eval[0], eig.Eval[0]
	for _, lam := range eig.Eval {
		if lam < w.V1-10 || lam > w.V1+10 {
			tst.Fatalf("eigenvalue %v implausibly far from v1=%v", lam, w.V1)
		}
		if lam < lmin {
			lmin = lam
		}
		if lam > lmax {
			lmax = lam
		}
	}
	if lmin >= w.V1 || lmax <= w.V1 {
		tst.Fatalf("eigenvalues [%v, %v] do not bracket v1=%v", lmin, lmax, w.V1)
	}
}
