// Copyright 2016 The Gomhd Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package block

import (
	"github.com/cmhpc/gomhd/eos"
	"github.com/cmhpc/gomhd/riemann"
)

// Scratch holds every buffer the integrator needs that is not part of the
// observable block state: the half-step state, predictor face B, L/R
// interface states, per-direction fluxes, edge EMFs, reference EMFs and the
// first-order-correction flags. It is allocated once, sized to the block
// plus ghosts, and reused every step (spec §3 "Lifecycle").
type Scratch struct {
	// half-step (predictor) cell-centred state U^{n+1/2}
	Dh, M1h, M2h, M3h, Eh [][][]float64
	B1ch, B2ch, B3ch      [][][]float64
	Sh                    [][][][]float64

	// U^n and B^n_face, preserved across the step so the first-order flux
	// correction (spec §4.6) can redo the corrector's divergence/CT updates
	// for just the flagged interfaces without having to reconstruct the
	// pre-corrector state from the (already overwritten) block arrays
	Dn, M1n, M2n, M3n, En [][][]float64
	Sn                    [][][][]float64
	Bn1i, Bn2i, Bn3i      [][][]float64

	// predictor/corrector face-centred B, updated in place each half/full step
	Bp1i, Bp2i, Bp3i [][][]float64

	// reconstructed L/R conserved states at each interface, one array per sweep direction
	UL1, UR1 [][][]eos.Cons
	UL2, UR2 [][][]eos.Cons
	UL3, UR3 [][][]eos.Cons

	// per-direction interface fluxes (reused for predictor, overwritten by corrector)
	F1, F2, F3 [][][]riemann.Flux

	// cell-centred reference EMF E^cc = -v x B
	Ecc1, Ecc2, Ecc3 [][][]float64

	// edge-centred EMFs consumed by CT; corner (k,j,i) is the low corner of cell (k,j,i)
	Emf1, Emf2, Emf3 [][][]float64

	// H-correction eta per interface (only populated when enabled)
	Eta1, Eta2, Eta3 [][][]float64

	// first-order-correction flags, one array per interface kind
	HydroFlag1, HydroFlag2, HydroFlag3 [][][]bool
	MhdFlag1, MhdFlag2, MhdFlag3       [][][]bool

	// reusable 1-D strip buffers for reconstruction, sized to the longest
	// direction; safe to share across sweeps because the integrator runs the
	// sweeps one after another
	StripW           []eos.Prim
	StripBn          []float64
	StripWl, StripWr []eos.Prim
}

func newScratch(n1, n2, n3, nscalars int) *Scratch {
	s := &Scratch{}
	s.Dh = alloc3(n3, n2, n1)
	s.M1h = alloc3(n3, n2, n1)
	s.M2h = alloc3(n3, n2, n1)
	s.M3h = alloc3(n3, n2, n1)
	s.Eh = alloc3(n3, n2, n1)
	s.B1ch = alloc3(n3, n2, n1)
	s.B2ch = alloc3(n3, n2, n1)
	s.B3ch = alloc3(n3, n2, n1)
	if nscalars > 0 {
		s.Sh = alloc4(n3, n2, n1, nscalars)
	}

	s.Dn = alloc3(n3, n2, n1)
	s.M1n = alloc3(n3, n2, n1)
	s.M2n = alloc3(n3, n2, n1)
	s.M3n = alloc3(n3, n2, n1)
	s.En = alloc3(n3, n2, n1)
	if nscalars > 0 {
		s.Sn = alloc4(n3, n2, n1, nscalars)
	}
	s.Bn1i = alloc3(n3, n2, n1+1)
	s.Bn2i = alloc3(n3, n2+1, n1)
	s.Bn3i = alloc3(n3+1, n2, n1)

	s.Bp1i = alloc3(n3, n2, n1+1)
	s.Bp2i = alloc3(n3, n2+1, n1)
	s.Bp3i = alloc3(n3+1, n2, n1)

	s.UL1 = allocCons(n3, n2, n1+1)
	s.UR1 = allocCons(n3, n2, n1+1)
	s.UL2 = allocCons(n3, n2+1, n1)
	s.UR2 = allocCons(n3, n2+1, n1)
	s.UL3 = allocCons(n3+1, n2, n1)
	s.UR3 = allocCons(n3+1, n2, n1)

	s.F1 = allocFlux(n3, n2, n1+1)
	s.F2 = allocFlux(n3, n2+1, n1)
	s.F3 = allocFlux(n3+1, n2, n1)

	s.Ecc1 = alloc3(n3, n2, n1)
	s.Ecc2 = alloc3(n3, n2, n1)
	s.Ecc3 = alloc3(n3, n2, n1)

	s.Emf1 = alloc3(n3+1, n2+1, n1+1)
	s.Emf2 = alloc3(n3+1, n2+1, n1+1)
	s.Emf3 = alloc3(n3+1, n2+1, n1+1)

	s.Eta1 = alloc3(n3, n2, n1+1)
	s.Eta2 = alloc3(n3, n2+1, n1)
	s.Eta3 = alloc3(n3+1, n2, n1)

	s.HydroFlag1 = allocBool(n3, n2, n1+1)
	s.HydroFlag2 = allocBool(n3, n2+1, n1)
	s.HydroFlag3 = allocBool(n3+1, n2, n1)
	s.MhdFlag1 = allocBool(n3, n2, n1+1)
	s.MhdFlag2 = allocBool(n3, n2+1, n1)
	s.MhdFlag3 = allocBool(n3+1, n2, n1)

	longest := n1
	if n2 > longest {
		longest = n2
	}
	if n3 > longest {
		longest = n3
	}
	s.StripW = make([]eos.Prim, longest)
	s.StripBn = make([]float64, longest)
	s.StripWl = make([]eos.Prim, longest)
	s.StripWr = make([]eos.Prim, longest)
	return s
}

func allocCons(n3, n2, n1 int) [][][]eos.Cons {
	a := make([][][]eos.Cons, n3)
	for k := range a {
		a[k] = make([][]eos.Cons, n2)
		for j := range a[k] {
			a[k][j] = make([]eos.Cons, n1)
		}
	}
	return a
}

func allocFlux(n3, n2, n1 int) [][][]riemann.Flux {
	a := make([][][]riemann.Flux, n3)
	for k := range a {
		a[k] = make([][]riemann.Flux, n2)
		for j := range a[k] {
			a[k][j] = make([]riemann.Flux, n1)
		}
	}
	return a
}

func allocBool(n3, n2, n1 int) [][][]bool {
	a := make([][][]bool, n3)
	for k := range a {
		a[k] = make([][]bool, n2)
		for j := range a[k] {
			a[k][j] = make([]bool, n1)
		}
	}
	return a
}
