// Copyright 2016 The Gomhd Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package riemann

import (
	"testing"

	"github.com/cmhpc/gomhd/eos"
	"github.com/cpmech/gosl/chk"
)

func TestHLLEUniformStateIsFixedPoint(tst *testing.T) {
	chk.PrintTitle("hlle uniform state")
	cfg := eos.New(1.4, 0, false, false, 0)
	w := eos.Prim{D: 1.0, V1: 0.3, V2: 0, V3: 0, P: 1.0}
	u := eos.ConsFromPrim(w, cfg)
	solver, ok := Get("hlle")
	if !ok {
		tst.Fatal("hlle not registered")
	}
	f := solver.Flux(0, u, u, 0, cfg)
	exact := physicalFlux(0, u, w, cfg)
	chk.Scalar(tst, "F.D", 1e-12, f.D, exact.D)
	chk.Scalar(tst, "F.M1", 1e-12, f.M1, exact.M1)
	chk.Scalar(tst, "F.E", 1e-12, f.E, exact.E)
}

func TestHLLDUniformStateIsFixedPoint(tst *testing.T) {
	chk.PrintTitle("hlld uniform state")
	cfg := eos.New(5.0/3.0, 0, false, true, 0)
	w := eos.Prim{D: 1.0, V1: 0.1, V2: 0.2, V3: -0.1, P: 1.0, B1: 0.75, B2: 0.5, B3: -0.3}
	u := eos.ConsFromPrim(w, cfg)
	solver, ok := Get("hlld")
	if !ok {
		tst.Fatal("hlld not registered")
	}
	f := solver.Flux(w.B1, u, u, 0, cfg)
	exact := physicalFlux(w.B1, u, w, cfg)
	chk.Scalar(tst, "F.D", 1e-10, f.D, exact.D)
	chk.Scalar(tst, "F.M1", 1e-10, f.M1, exact.M1)
	chk.Scalar(tst, "F.M2", 1e-10, f.M2, exact.M2)
	chk.Scalar(tst, "F.E", 1e-10, f.E, exact.E)
	chk.Scalar(tst, "F.B2", 1e-10, f.B2, exact.B2)
	chk.Scalar(tst, "F.B3", 1e-10, f.B3, exact.B3)
}

func TestHLLEOutsideWaveFanReturnsUpwindFlux(tst *testing.T) {
	chk.PrintTitle("hlle supersonic upwind")
	cfg := eos.New(1.4, 0, false, false, 0)
	wl := eos.Prim{D: 1.0, V1: 10.0, P: 1.0}
	wr := eos.Prim{D: 0.5, V1: 9.0, P: 0.8}
	ul := eos.ConsFromPrim(wl, cfg)
	ur := eos.ConsFromPrim(wr, cfg)
	solver, _ := Get("hlle")
	f := solver.Flux(0, ul, ur, 0, cfg)
	exact := physicalFlux(0, ul, wl, cfg)
	chk.Scalar(tst, "F.D", 1e-12, f.D, exact.D)
}
