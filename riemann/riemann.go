// Copyright 2016 The Gomhd Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package riemann implements the pluggable one-dimensional MHD/hydro Riemann
// flux of spec §4.2. All states are expressed in the LOCAL (normal) frame:
// M1/B1 is the sweep-normal component, M2/B2 and M3/B3 are transverse, per
// the orientation convention of spec §3 (the caller permutes before and
// after calling). Solvers are registered by name, following msolid's
// GetModel/allocators pattern.
package riemann

import "github.com/cmhpc/gomhd/eos"

// Flux is the normal flux of the conserved state, indexed in the same local
// frame as the L/R states passed in. The MHD components carry the
// edge-EMF identities documented in spec §4.2's table; the caller (ct
// package) interprets B2/B3 accordingly per sweep direction.
type Flux struct {
	D          float64
	M1, M2, M3 float64
	E          float64
	B2, B3     float64
	S          []float64
}

// Solver computes the upwinded 1-D flux given the (constant) normal field bx,
// left/right conserved states, and the H-correction broadening parameter
// etah (0 when H-correction is disabled).
type Solver interface {
	Flux(bx float64, ul, ur eos.Cons, etah float64, cfg eos.Config) Flux
}

var registry = make(map[string]func() Solver)

// Register adds a solver allocator under name; called from package init()
// functions in hlle.go/hlld.go, mirroring msolid's allocators map.
func Register(name string, alloc func() Solver) {
	registry[name] = alloc
}

// Get returns a freshly allocated solver registered under name.
func Get(name string) (Solver, bool) {
	alloc, ok := registry[name]
	if !ok {
		return nil, false
	}
	return alloc(), true
}

// physicalFlux evaluates the exact (non-upwinded) 1-D flux of the ideal
// MHD/hydro equations for one state, used by both HLL-type averaging and the
// HLLD intermediate-state construction.
func physicalFlux(bx float64, u eos.Cons, w eos.Prim, cfg eos.Config) Flux {
	var f Flux
	vx := w.V1
	pstar := w.P
	if cfg.MHD {
		pstar += 0.5 * (bx*bx + w.B2*w.B2 + w.B3*w.B3)
	}
	f.D = u.M1
	f.M1 = u.M1*vx + pstar
	f.M2 = u.M2 * vx
	f.M3 = u.M3 * vx
	if cfg.MHD {
		f.M1 -= bx * bx
		f.M2 -= bx * w.B2
		f.M3 -= bx * w.B3
	}
	if !cfg.Isothermal {
		vdotB := 0.0
		if cfg.MHD {
			vdotB = vx*bx + w.V2*w.B2 + w.V3*w.B3
		}
		f.E = vx * (u.E + pstar)
		if cfg.MHD {
			f.E -= bx * vdotB
		}
	}
	if cfg.MHD {
		f.B2 = vx*w.B2 - w.V2*bx
		f.B3 = vx*w.B3 - w.V3*bx
	}
	if cfg.NScalars > 0 {
		f.S = make([]float64, cfg.NScalars)
		for n := 0; n < cfg.NScalars; n++ {
			f.S[n] = vx * u.S[n]
		}
	}
	return f
}

// consVec/fluxVec give a uniform numeric view (ρ, Mx, My, Mz, E, By, Bz, s...)
// used by the HLL average and the HLLD star-state flux updates, avoiding repetitive
// per-field arithmetic.
func consVec(u eos.Cons, cfg eos.Config) []float64 {
	n := 5 + cfg.NScalars
	if cfg.MHD {
		n += 2
	}
	v := make([]float64, n)
	v[0], v[1], v[2], v[3] = u.D, u.M1, u.M2, u.M3
	v[4] = u.E
	idx := 5
	if cfg.MHD {
		v[5], v[6] = u.B2, u.B3
		idx = 7
	}
	for i := 0; i < cfg.NScalars; i++ {
		v[idx+i] = u.S[i]
	}
	return v
}

func fluxVec(f Flux, cfg eos.Config) []float64 {
	n := 5 + cfg.NScalars
	if cfg.MHD {
		n += 2
	}
	v := make([]float64, n)
	v[0], v[1], v[2], v[3] = f.D, f.M1, f.M2, f.M3
	v[4] = f.E
	idx := 5
	if cfg.MHD {
		v[5], v[6] = f.B2, f.B3
		idx = 7
	}
	for i := 0; i < cfg.NScalars; i++ {
		v[idx+i] = f.S[i]
	}
	return v
}

func vecToFlux(v []float64, cfg eos.Config) Flux {
	var f Flux
	f.D, f.M1, f.M2, f.M3 = v[0], v[1], v[2], v[3]
	f.E = v[4]
	idx := 5
	if cfg.MHD {
		f.B2, f.B3 = v[5], v[6]
		idx = 7
	}
	if cfg.NScalars > 0 {
		f.S = make([]float64, cfg.NScalars)
		for i := 0; i < cfg.NScalars; i++ {
			f.S[i] = v[idx+i]
		}
	}
	return f
}
