// Copyright 2016 The Gomhd Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package integrator

import (
	"github.com/cmhpc/gomhd/block"
	"github.com/cmhpc/gomhd/eos"
	"github.com/cmhpc/gomhd/riemann"
)

// cellCons reads the global-frame conserved state of cell (k,j,i) directly
// out of the block's cell-centred arrays.
func cellCons(blk *block.Block, cfg eos.Config, k, j, i int) (u eos.Cons) {
	u.D = blk.D[k][j][i]
	u.M1, u.M2, u.M3 = blk.M1[k][j][i], blk.M2[k][j][i], blk.M3[k][j][i]
	if !cfg.Isothermal {
		u.E = blk.E[k][j][i]
	}
	if cfg.MHD {
		u.B1, u.B2, u.B3 = blk.B1c[k][j][i], blk.B2c[k][j][i], blk.B3c[k][j][i]
	}
	if cfg.NScalars > 0 {
		u.S = blk.S[k][j][i]
	}
	return
}

// halfCons is cellCons read from the predictor half-step buffers.
func halfCons(blk *block.Block, cfg eos.Config, k, j, i int) (u eos.Cons) {
	s := blk.Scratch
	u.D = s.Dh[k][j][i]
	u.M1, u.M2, u.M3 = s.M1h[k][j][i], s.M2h[k][j][i], s.M3h[k][j][i]
	if !cfg.Isothermal {
		u.E = s.Eh[k][j][i]
	}
	if cfg.MHD {
		u.B1, u.B2, u.B3 = s.B1ch[k][j][i], s.B2ch[k][j][i], s.B3ch[k][j][i]
	}
	if cfg.NScalars > 0 {
		u.S = s.Sh[k][j][i]
	}
	return
}

// localCons1/2/3 rotate a global-frame conserved state into the local frame
// of an x1/x2/x3 sweep, per the cyclic relabelling of spec §3: the normal
// slot receives the sweep direction's own momentum, the transverse B pair
// (By,Bz) receives the two other cell-centred B components in the order the
// spec's orientation table gives. B1 of the returned value is never read by
// riemann.Solver (the normal field travels separately as bn) and is left zero.
func localCons1(u eos.Cons) eos.Cons {
	return eos.Cons{D: u.D, M1: u.M1, M2: u.M2, M3: u.M3, E: u.E, B2: u.B2, B3: u.B3, S: u.S}
}
func localCons2(u eos.Cons) eos.Cons {
	return eos.Cons{D: u.D, M1: u.M2, M2: u.M3, M3: u.M1, E: u.E, B2: u.B3, B3: u.B1, S: u.S}
}
func localCons3(u eos.Cons) eos.Cons {
	return eos.Cons{D: u.D, M1: u.M3, M2: u.M1, M3: u.M2, E: u.E, B2: u.B1, B3: u.B2, S: u.S}
}

// globalMomentum1/2/3 rotate a local-frame flux's momentum components back
// into the global (M1,M2,M3) slots, the inverse of localCons1/2/3's momentum
// permutation. The flux's B2/B3 (EMF-carrying) components are never rotated:
// they stay in the ct package's direction-local frame for the lifetime of
// the step (spec §4.2's table already accounts for this per sweep).
func globalMomentum1(f riemann.Flux) (m1, m2, m3 float64) { return f.M1, f.M2, f.M3 }
func globalMomentum2(f riemann.Flux) (m1, m2, m3 float64) { return f.M3, f.M1, f.M2 }
func globalMomentum3(f riemann.Flux) (m1, m2, m3 float64) { return f.M2, f.M3, f.M1 }
