// Copyright 2016 The Gomhd Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package riemann

import (
	"math"

	"github.com/cmhpc/gomhd/eos"
)

func init() {
	Register("hlle", func() Solver { return &HLLE{} })
	Register("hllehydro", func() Solver { return &HLLE{} })
}

// HLLE is the two-wave Einfeldt-bounded solver: a single intermediate state
// between the fastest left- and right-going signals. It is the simplest
// solver satisfying the §4.2 contract and is used as the default for the
// Sod hydro tube and as a robust fallback for MHD.
type HLLE struct{}

// Flux implements Solver.
func (s *HLLE) Flux(bx float64, ul, ur eos.Cons, etah float64, cfg eos.Config) Flux {
	wl := eos.PrimFromCons(ul, cfg, nil)
	wr := eos.PrimFromCons(ur, cfg, nil)
	cfl := eos.FastSpeed(ul, bx, cfg)
	cfr := eos.FastSpeed(ur, bx, cfg)

	sl := math.Min(wl.V1-cfl, wr.V1-cfr) - etah
	sr := math.Max(wl.V1+cfl, wr.V1+cfr) + etah

	fl := physicalFlux(bx, ul, wl, cfg)
	if sl >= 0 {
		return fl
	}
	fr := physicalFlux(bx, ur, wr, cfg)
	if sr <= 0 {
		return fr
	}

	ulv, urv := consVec(ul, cfg), consVec(ur, cfg)
	flv, frv := fluxVec(fl, cfg), fluxVec(fr, cfg)
	out := make([]float64, len(ulv))
	for i := range out {
		out[i] = (sr*flv[i] - sl*frv[i] + sl*sr*(urv[i]-ulv[i])) / (sr - sl)
	}
	return vecToFlux(out, cfg)
}
