// Copyright 2016 The Gomhd Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package eos implements the pure primitive/conservative converter and the
// fast magnetosonic speed for ideal (adiabatic or isothermal) MHD/hydro.
package eos

import (
	"math"

	"github.com/cmhpc/gomhd/diag"
	"github.com/cpmech/gosl/chk"
)

// PressureFloorEps is the small positive pressure floor ε_P of spec §4.1.
const PressureFloorEps = 1e-10

// Config bundles the equation-of-state and problem-size toggles. It is
// immutable after New and passed by value everywhere, matching the
// fun.Prms-style read-only parameter bags used throughout gofem's models.
type Config struct {
	Gamma      float64 // adiabatic index, ignored when Isothermal
	Cs2        float64 // isothermal sound speed squared, ignored otherwise
	Isothermal bool
	MHD        bool
	NScalars   int
}

// New validates and returns a Config, panicking (gofem/chk.Panic idiom) on
// configuration errors that must abort before the first step.
func New(gamma, cs2 float64, isothermal, mhd bool, nscalars int) (cfg Config) {
	if !isothermal && gamma <= 1.0 {
		chk.Panic("eos: adiabatic gamma must be > 1, got %v", gamma)
	}
	if isothermal && cs2 <= 0 {
		chk.Panic("eos: isothermal cs2 must be > 0, got %v", cs2)
	}
	if nscalars < 0 {
		chk.Panic("eos: NScalars must be >= 0, got %d", nscalars)
	}
	cfg.Gamma, cfg.Cs2, cfg.Isothermal, cfg.MHD, cfg.NScalars = gamma, cs2, isothermal, mhd, nscalars
	return
}

// Cons is the conserved state (ρ, ρv, E, B_cc, s) at a point.
type Cons struct {
	D          float64 // ρ
	M1, M2, M3 float64 // ρv1, ρv2, ρv3
	E          float64 // total energy (unused when Isothermal)
	B1, B2, B3 float64 // cell-centred B (unused when !MHD)
	S          []float64
}

// Prim is the primitive state (ρ, v, P, B_cc, r) at a point.
type Prim struct {
	D          float64 // ρ
	V1, V2, V3 float64
	P          float64 // pressure (unused when Isothermal)
	B1, B2, B3 float64
	R          []float64
}

// PrimFromCons converts conserved to primitive variables, clamping the
// pressure to PressureFloorEps and recording the clamp in report (report may
// be nil to skip accounting, e.g. in unit tests of the round-trip law).
func PrimFromCons(u Cons, cfg Config, report *diag.StepReport) (w Prim) {
	w.D = u.D
	w.V1 = u.M1 / u.D
	w.V2 = u.M2 / u.D
	w.V3 = u.M3 / u.D
	if cfg.MHD {
		w.B1, w.B2, w.B3 = u.B1, u.B2, u.B3
	}
	if cfg.Isothermal {
		w.P = cfg.Cs2 * w.D
	} else {
		ke := 0.5 * u.D * (w.V1*w.V1 + w.V2*w.V2 + w.V3*w.V3)
		me := 0.0
		if cfg.MHD {
			me = 0.5 * (u.B1*u.B1 + u.B2*u.B2 + u.B3*u.B3)
		}
		w.P = (cfg.Gamma - 1.0) * (u.E - ke - me)
		if w.P < PressureFloorEps {
			w.P = PressureFloorEps
			if report != nil {
				report.PressureFloorHits++
			}
		}
	}
	if cfg.NScalars > 0 {
		w.R = make([]float64, cfg.NScalars)
		for n := 0; n < cfg.NScalars; n++ {
			w.R[n] = u.S[n] / u.D
		}
	}
	return
}

// ConsFromPrim converts primitive to conserved variables (exact inverse of
// PrimFromCons on states with ρ>0, P>0; no flooring is applied here since the
// caller is expected to have already produced a physical primitive state).
func ConsFromPrim(w Prim, cfg Config) (u Cons) {
	u.D = w.D
	u.M1 = w.D * w.V1
	u.M2 = w.D * w.V2
	u.M3 = w.D * w.V3
	if cfg.MHD {
		u.B1, u.B2, u.B3 = w.B1, w.B2, w.B3
	}
	if !cfg.Isothermal {
		ke := 0.5 * w.D * (w.V1*w.V1 + w.V2*w.V2 + w.V3*w.V3)
		me := 0.0
		if cfg.MHD {
			me = 0.5 * (w.B1*w.B1 + w.B2*w.B2 + w.B3*w.B3)
		}
		u.E = w.P/(cfg.Gamma-1.0) + ke + me
	}
	if cfg.NScalars > 0 {
		u.S = make([]float64, cfg.NScalars)
		for n := 0; n < cfg.NScalars; n++ {
			u.S[n] = w.D * w.R[n]
		}
	}
	return
}

// FastSpeed returns the fast magnetosonic speed c_f for MHD, the sound speed
// for pure hydro, and √Cs2 for the isothermal case, given bx the
// normal-direction interface (or cell-centred) field.
func FastSpeed(u Cons, bx float64, cfg Config) float64 {
	var a2 float64
	if cfg.Isothermal {
		a2 = cfg.Cs2
	} else {
		ke := 0.5 * (u.M1*u.M1 + u.M2*u.M2 + u.M3*u.M3) / u.D
		me := 0.0
		if cfg.MHD {
			me = 0.5 * (u.B1*u.B1 + u.B2*u.B2 + u.B3*u.B3)
		}
		p := (cfg.Gamma - 1.0) * (u.E - ke - me)
		if p < PressureFloorEps {
			p = PressureFloorEps
		}
		a2 = cfg.Gamma * p / u.D
	}
	if !cfg.MHD {
		return math.Sqrt(a2)
	}
	b2 := bx * bx / u.D
	bperp2 := (u.B2*u.B2 + u.B3*u.B3) / u.D
	sum := a2 + b2 + bperp2
	disc := sum*sum - 4.0*a2*b2
	if disc < 0 {
		disc = 0
	}
	return math.Sqrt(0.5 * (sum + math.Sqrt(disc)))
}
