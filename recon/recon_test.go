// Copyright 2016 The Gomhd Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package recon

import (
	"testing"

	"github.com/cmhpc/gomhd/eos"
	"github.com/cpmech/gosl/chk"
)

func uniformStrip(n int, w eos.Prim) []eos.Prim {
	s := make([]eos.Prim, n)
	for i := range s {
		s[i] = w
	}
	return s
}

func TestFirstOrderInterfaceConvention(tst *testing.T) {
	chk.PrintTitle("first order Wl[i]=W[i-1], Wr[i]=W[i]")
	cfg := eos.New(1.4, 0, false, false, 0)
	w := []eos.Prim{
		{D: 1, V1: 0.1, P: 1},
		{D: 2, V1: 0.2, P: 2},
		{D: 3, V1: 0.3, P: 3},
	}
	wl, wr := make([]eos.Prim, 3), make([]eos.Prim, 3)
	(FirstOrder{}).Reconstruct(w, make([]float64, 3), cfg, 0.1, 1, 2, wl, wr)
	chk.Scalar(tst, "Wl[1].D", 1e-15, wl[1].D, 1)
	chk.Scalar(tst, "Wr[1].D", 1e-15, wr[1].D, 2)
	chk.Scalar(tst, "Wl[2].D", 1e-15, wl[2].D, 2)
	chk.Scalar(tst, "Wr[2].D", 1e-15, wr[2].D, 3)
}

func TestPLMUniformStateReproducesState(tst *testing.T) {
	chk.PrintTitle("plm on a uniform strip returns the uniform state")
	cfg := eos.New(5.0/3.0, 0, false, true, 0)
	w := eos.Prim{D: 1.0, V1: 0.1, V2: 0.05, V3: -0.05, P: 1.0, B1: 0.75, B2: 0.5, B3: -0.2}
	n := 8
	strip := uniformStrip(n, w)
	bn := make([]float64, n)
	for i := range bn {
		bn[i] = w.B1
	}
	wl, wr := make([]eos.Prim, n), make([]eos.Prim, n)
	(PLM{}).Reconstruct(strip, bn, cfg, 0.05, 2, n-3, wl, wr)
	for i := 2; i <= n-3; i++ {
		chk.Scalar(tst, "Wl.D", 1e-9, wl[i].D, w.D)
		chk.Scalar(tst, "Wr.D", 1e-9, wr[i].D, w.D)
		chk.Scalar(tst, "Wl.P", 1e-9, wl[i].P, w.P)
		chk.Scalar(tst, "Wr.P", 1e-9, wr[i].P, w.P)
	}
}

func TestPPMUniformStateReproducesState(tst *testing.T) {
	chk.PrintTitle("ppm on a uniform strip returns the uniform state")
	cfg := eos.New(1.4, 0, false, false, 0)
	w := eos.Prim{D: 1.0, V1: 0.2, V2: 0, V3: 0, P: 1.0}
	n := 10
	strip := uniformStrip(n, w)
	bn := make([]float64, n)
	wl, wr := make([]eos.Prim, n), make([]eos.Prim, n)
	(PPM{}).Reconstruct(strip, bn, cfg, 0.02, 3, n-4, wl, wr)
	for i := 3; i <= n-4; i++ {
		chk.Scalar(tst, "Wl.D", 1e-9, wl[i].D, w.D)
		chk.Scalar(tst, "Wr.D", 1e-9, wr[i].D, w.D)
	}
}

func TestPLMClampsToNeighbourRange(tst *testing.T) {
	chk.PrintTitle("plm interface values stay within neighbour bounds at an extremum")
	cfg := eos.New(1.4, 0, false, false, 0)
	w := []eos.Prim{
		{D: 1, V1: 0, P: 1},
		{D: 1, V1: 0, P: 1},
		{D: 5, V1: 0, P: 1}, // local spike
		{D: 1, V1: 0, P: 1},
		{D: 1, V1: 0, P: 1},
	}
	bn := make([]float64, len(w))
	wl, wr := make([]eos.Prim, len(w)), make([]eos.Prim, len(w))
	(PLM{}).Reconstruct(w, bn, cfg, 0.0, 2, 2, wl, wr)
	if wr[2].D > 5.0+1e-9 || wr[2].D < 1.0-1e-9 {
		tst.Fatalf("Wr[2].D=%v escaped neighbour range [1,5]", wr[2].D)
	}
}
