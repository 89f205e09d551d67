// Copyright 2016 The Gomhd Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package riemann

import (
	"math"

	"github.com/cmhpc/gomhd/eos"
)

func init() {
	Register("hlld", func() Solver { return &HLLD{} })
}

// HLLD is the four-wave solver of Miyoshi & Kusano (2005), resolving the
// rotational discontinuities either side of the contact. It is selected by
// name ("hlld"); cmd/gomhd's default solver is hlle. The isothermal variant
// is not implemented; for Isothermal configs (or when MHD is off) this
// solver falls back to HLLE, which is exact for those cases' wave structure
// up to the two-wave approximation already inherent to HLL.
type HLLD struct{}

// Flux implements Solver.
func (s *HLLD) Flux(bx float64, ul, ur eos.Cons, etah float64, cfg eos.Config) Flux {
	if cfg.Isothermal || !cfg.MHD {
		return (&HLLE{}).Flux(bx, ul, ur, etah, cfg)
	}

	wl := eos.PrimFromCons(ul, cfg, nil)
	wr := eos.PrimFromCons(ur, cfg, nil)
	cfl := eos.FastSpeed(ul, bx, cfg)
	cfr := eos.FastSpeed(ur, bx, cfg)

	sl := math.Min(wl.V1, wr.V1) - math.Max(cfl, cfr) - etah
	sr := math.Max(wl.V1, wr.V1) + math.Max(cfl, cfr) + etah

	fl := physicalFlux(bx, ul, wl, cfg)
	if sl >= 0 {
		return fl
	}
	fr := physicalFlux(bx, ur, wr, cfg)
	if sr <= 0 {
		return fr
	}

	ptL := wl.P + 0.5*(bx*bx+wl.B2*wl.B2+wl.B3*wl.B3)
	ptR := wr.P + 0.5*(bx*bx+wr.B2*wr.B2+wr.B3*wr.B3)
	rL, rR := wl.D, wr.D
	vxL, vxR := wl.V1, wr.V1

	denom := (sr-vxR)*rR - (sl-vxL)*rL
	sm := ((sr-vxR)*rR*vxR - (sl-vxL)*rL*vxL - ptR + ptL) / denom

	rLs := rL * (sl - vxL) / (sl - sm)
	rRs := rR * (sr - vxR) / (sr - sm)
	pts := ptL + rL*(sl-vxL)*(sm-vxL)

	const tiny = 1e-12
	vyLs, vzLs, byLs, bzLs := rotatedState(rL, vxL, wl.V2, wl.V3, wl.B2, wl.B3, bx, sl, sm, tiny)
	vyRs, vzRs, byRs, bzRs := rotatedState(rR, vxR, wr.V2, wr.V3, wr.B2, wr.B3, bx, sr, sm, tiny)

	vdotBL := vxL*bx + wl.V2*wl.B2 + wl.V3*wl.B3
	vdotBLs := sm*bx + vyLs*byLs + vzLs*bzLs
	eLs := ((sl-vxL)*ul.E - ptL*vxL + pts*sm + bx*(vdotBL-vdotBLs)) / (sl - sm)

	vdotBR := vxR*bx + wr.V2*wr.B2 + wr.V3*wr.B3
	vdotBRs := sm*bx + vyRs*byRs + vzRs*bzRs
	eRs := ((sr-vxR)*ur.E - ptR*vxR + pts*sm + bx*(vdotBR-vdotBRs)) / (sr - sm)

	sLs := sm - math.Abs(bx)/math.Sqrt(rLs)
	sRs := sm + math.Abs(bx)/math.Sqrt(rRs)

	sqrtRLs, sqrtRRs := math.Sqrt(rLs), math.Sqrt(rRs)
	signBx := 1.0
	if bx < 0 {
		signBx = -1.0
	}
	denomSS := sqrtRLs + sqrtRRs
	vyss := (sqrtRLs*vyLs + sqrtRRs*vyRs + (byRs-byLs)*signBx) / denomSS
	vzss := (sqrtRLs*vzLs + sqrtRRs*vzRs + (bzRs-bzLs)*signBx) / denomSS
	byss := (sqrtRLs*byRs + sqrtRRs*byLs + sqrtRLs*sqrtRRs*(vyRs-vyLs)*signBx) / denomSS
	bzss := (sqrtRLs*bzRs + sqrtRRs*bzLs + sqrtRLs*sqrtRRs*(vzRs-vzLs)*signBx) / denomSS

	eLss := eLs - sqrtRLs*(vyLs*byLs-vyss*byss+vzLs*bzLs-vzss*bzss)*signBx
	eRss := eRs + sqrtRRs*(vyRs*byRs-vyss*byss+vzRs*bzRs-vzss*bzss)*signBx

	ulStar := eos.Cons{D: rLs, M1: rLs * sm, M2: rLs * vyLs, M3: rLs * vzLs, E: eLs, B1: bx, B2: byLs, B3: bzLs}
	urStar := eos.Cons{D: rRs, M1: rRs * sm, M2: rRs * vyRs, M3: rRs * vzRs, E: eRs, B1: bx, B2: byRs, B3: bzRs}
	ulSS := eos.Cons{D: rLs, M1: rLs * sm, M2: rLs * vyss, M3: rLs * vzss, E: eLss, B1: bx, B2: byss, B3: bzss}
	urSS := eos.Cons{D: rRs, M1: rRs * sm, M2: rRs * vyss, M3: rRs * vzss, E: eRss, B1: bx, B2: byss, B3: bzss}
	if cfg.NScalars > 0 {
		ulStar.S = scaledScalars(wl.R, rLs)
		urStar.S = scaledScalars(wr.R, rRs)
		ulSS.S = ulStar.S
		urSS.S = urStar.S
	}

	switch {
	case sl <= 0 && 0 <= sLs:
		return addFluxDiff(fl, ul, ulStar, sl, cfg)
	case sLs <= 0 && 0 <= sm:
		f1 := addFluxDiff(fl, ul, ulStar, sl, cfg)
		return addFluxDiff(f1, ulStar, ulSS, sLs, cfg)
	case sm <= 0 && 0 <= sRs:
		f1 := addFluxDiff(fr, ur, urStar, sr, cfg)
		return addFluxDiff(f1, urStar, urSS, sRs, cfg)
	case sRs <= 0 && 0 <= sr:
		return addFluxDiff(fr, ur, urStar, sr, cfg)
	default:
		return fr
	}
}

// rotatedState computes the single-star transverse velocity and field
// (eq. 23-28 in Miyoshi & Kusano) for one side, guarding against the
// rotational-discontinuity degeneracy near bx=0.
func rotatedState(rho, vx, vy, vz, by, bz, bx, s, sm, tiny float64) (vys, vzs, bys, bzs float64) {
	d := rho*(s-vx)*(s-sm) - bx*bx
	if math.Abs(d) < tiny {
		return vy, vz, by, bz
	}
	vys = vy - bx*by*(sm-vx)/d
	vzs = vz - bx*bz*(sm-vx)/d
	fac := (rho*(s-vx)*(s-vx) - bx*bx) / d
	bys = by * fac
	bzs = bz * fac
	return
}

func scaledScalars(r []float64, rho float64) []float64 {
	s := make([]float64, len(r))
	for i, ri := range r {
		s[i] = ri * rho
	}
	return s
}

// addFluxDiff returns f + speed*(uStar-u), the standard HLL-family flux
// update once an intermediate conserved state is known.
func addFluxDiff(f Flux, u, uStar eos.Cons, speed float64, cfg eos.Config) Flux {
	fv := fluxVec(f, cfg)
	uv := consVec(u, cfg)
	usv := consVec(uStar, cfg)
	out := make([]float64, len(fv))
	for i := range out {
		out[i] = fv[i] + speed*(usv[i]-uv[i])
	}
	return vecToFlux(out, cfg)
}
