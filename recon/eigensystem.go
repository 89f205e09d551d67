// Copyright 2016 The Gomhd Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package recon

import (
	"math"

	"github.com/cmhpc/gomhd/eos"
)

// Eigensystem is the local characteristic decomposition of the primitive
// quasi-linear form used by the van Leer limiter of spec §4.3. Its vectors
// hold the primitive fields present for cfg in the order toVec gives them
// (always D,V1,V2,V3, plus P unless isothermal, plus B2,B3 if MHD); R and L are NWave x NWave with
// L = R^-1 by construction (see invert in linalg.go), so Project/Synthesize
// round-trip exactly.
type Eigensystem struct {
	NWave int
	Eval  []float64
	r, l  [][]float64
	cfg   eos.Config
}

const alfvenSmallBt = 1e-12
const waveSpeedEps = 1e-10

// Build constructs the eigensystem of the 1-D (normal-direction) primitive
// Jacobian at state w with normal field bx, for the given fluid model. It
// mirrors the bt-rotation of Stone & Gardiner: the transverse field is
// rotated into a single effective component so that the coplanar
// (entropy/slow/fast) block and the Alfven block separate exactly, and the
// resulting eigenvectors are rotated back before being returned.
func Build(w eos.Prim, bx float64, cfg eos.Config) *Eigensystem {
	if cfg.MHD {
		return buildMHD(w, bx, cfg)
	}
	return buildHydro(w, cfg)
}

func buildHydro(w eos.Prim, cfg eos.Config) *Eigensystem {
	n := 4
	if !cfg.Isothermal {
		n++
	}
	idxP := 4
	r := zeros(n, n)
	eval := make([]float64, n)

	var a float64
	if cfg.Isothermal {
		a = math.Sqrt(cfg.Cs2)
	} else {
		a = math.Sqrt(cfg.Gamma * w.P / w.D)
	}

	col := 0
	// acoustic minus
	eval[col] = w.V1 - a
	r[0][col] = -w.D / a
	r[1][col] = 1
	if !cfg.Isothermal {
		r[idxP][col] = -a * w.D
	}
	col++
	// shear v2
	eval[col] = w.V1
	r[2][col] = 1
	col++
	// entropy (adiabatic only)
	if !cfg.Isothermal {
		eval[col] = w.V1
		r[0][col] = 1
		col++
	}
	// shear v3
	eval[col] = w.V1
	r[3][col] = 1
	col++
	// acoustic plus
	eval[col] = w.V1 + a
	r[0][col] = w.D / a
	r[1][col] = 1
	if !cfg.Isothermal {
		r[idxP][col] = a * w.D
	}

	l := invert(r, n)
	return &Eigensystem{NWave: n, Eval: eval, r: r, l: l, cfg: cfg}
}

func buildMHD(w eos.Prim, bx float64, cfg eos.Config) *Eigensystem {
	n := 6
	idxP := -1
	if !cfg.Isothermal {
		n = 7
		idxP = 4
	}
	idxB2, idxB3 := n-2, n-1
	r := zeros(n, n)
	eval := make([]float64, n)

	d := w.D
	bt2 := w.B2*w.B2 + w.B3*w.B3
	bt := math.Sqrt(bt2)
	bet2, bet3 := 1.0, 0.0
	if bt > alfvenSmallBt {
		bet2, bet3 = w.B2/bt, w.B3/bt
	}

	var a2 float64
	if cfg.Isothermal {
		a2 = cfg.Cs2
	} else {
		a2 = cfg.Gamma * w.P / w.D
	}
	vaxsq := bx * bx / d
	ct2 := bt2 / d
	qsq := a2 + vaxsq + ct2
	disc := qsq*qsq - 4*a2*vaxsq
	if disc < 0 {
		disc = 0
	}
	sq := math.Sqrt(disc)
	cfsq := 0.5 * (qsq + sq)
	if cfsq < waveSpeedEps {
		cfsq = waveSpeedEps
	}
	cssq := a2 * vaxsq / cfsq
	if cssq < 0 {
		cssq = 0
	}
	cf := math.Sqrt(cfsq)
	cs := math.Sqrt(cssq)
	va := math.Abs(bx) / math.Sqrt(d)
	sqrtd := math.Sqrt(d)
	signBx := 1.0
	if bx < 0 {
		signBx = -1.0
	}

	// coplanar column builder: rotated-frame perturbation (xd,xv1,xv2p,[xp],xb2p)
	// for a magnetosonic root mu, un-rotated into the physical v2/v3/b2/b3 slots.
	coplanar := func(col int, mu float64) {
		eval[col] = w.V1 + mu
		if math.Abs(mu) < waveSpeedEps {
			r[0][col] = 1
			return
		}
		denom := mu*mu - vaxsq
		if math.Abs(denom) < waveSpeedEps {
			if denom >= 0 {
				denom = waveSpeedEps
			} else {
				denom = -waveSpeedEps
			}
		}
		xd := d / mu
		xv2p := -bx * bt / (d * denom)
		xb2p := bt * mu / denom
		r[0][col] = xd
		r[1][col] = 1
		if idxP >= 0 {
			r[idxP][col] = a2 * d / mu
		}
		r[2][col] = bet2 * xv2p
		r[3][col] = bet3 * xv2p
		r[idxB2][col] = bet2 * xb2p
		r[idxB3][col] = bet3 * xb2p
	}

	alfven := func(col int, mu, sign float64) {
		eval[col] = w.V1 + mu
		xv3p := 1.0
		xb3p := sign * signBx * sqrtd
		r[2][col] = -bet3 * xv3p
		r[3][col] = bet2 * xv3p
		r[idxB2][col] = -bet3 * xb3p
		r[idxB3][col] = bet2 * xb3p
	}

	col := 0
	alfven(col, -va, 1)
	col++
	coplanar(col, -cf)
	col++
	coplanar(col, -cs)
	col++
	if !cfg.Isothermal {
		coplanar(col, 0)
		col++
	}
	coplanar(col, cs)
	col++
	coplanar(col, cf)
	col++
	alfven(col, va, -1)

	l := invert(r, n)
	return &Eigensystem{NWave: n, Eval: eval, r: r, l: l, cfg: cfg}
}

func zeros(rows, cols int) [][]float64 {
	m := make([][]float64, rows)
	for i := range m {
		m[i] = make([]float64, cols)
	}
	return m
}

// toVec extracts the dynamic primitive fields of w (same ordering Build uses)
// into a flat vector, suitable for characteristic projection of a difference
// or slope. Scalars are not included: their left/right eigenvectors are the
// identity, so they are limited directly in primitive space by recon.go.
func toVec(w eos.Prim, cfg eos.Config) []float64 {
	n := 4
	if !cfg.Isothermal {
		n++
	}
	if cfg.MHD {
		n += 2
	}
	v := make([]float64, n)
	v[0], v[1], v[2], v[3] = w.D, w.V1, w.V2, w.V3
	idx := 4
	if !cfg.Isothermal {
		v[4] = w.P
		idx = 5
	}
	if cfg.MHD {
		v[idx], v[idx+1] = w.B2, w.B3
	}
	return v
}

func fromVec(v []float64, cfg eos.Config) eos.Prim {
	var w eos.Prim
	w.D, w.V1, w.V2, w.V3 = v[0], v[1], v[2], v[3]
	idx := 4
	if !cfg.Isothermal {
		w.P = v[4]
		idx = 5
	}
	if cfg.MHD {
		w.B2, w.B3 = v[idx], v[idx+1]
	}
	return w
}

// Project converts a primitive-space difference into characteristic
// amplitudes, the alpha of spec §4.3 step 2.
func (e *Eigensystem) Project(dw eos.Prim) []float64 {
	return matVec(e.l, toVec(dw, e.cfg))
}

// Synthesize converts characteristic amplitudes back into a primitive-space
// difference, spec §4.3 step 5.
func (e *Eigensystem) Synthesize(alpha []float64) eos.Prim {
	return fromVec(matVec(e.r, alpha), e.cfg)
}
