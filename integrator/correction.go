// Copyright 2016 The Gomhd Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package integrator

import (
	"github.com/cmhpc/gomhd/block"
	"github.com/cmhpc/gomhd/ct"
	"github.com/cmhpc/gomhd/gravity"
)

// applyFirstOrderCorrection is spec §4.6's recovery path, run from C7 only
// when the corrector's high-order update left some cell with non-positive
// density: mark the hydro interfaces bounding every offending cell, carry
// that flag into whichever MHD face-B updates and edge EMFs actually consume
// those interfaces, revert and redo both the hydro divergence and the CT
// update for exactly the flagged interfaces, leaving everything else at its
// high-order value.
//
// The propagation from a flagged hydro interface to the set of affected edge
// EMFs and face-B updates is written out per direction in flagCorners; its
// conditions copy by hand the index dependencies that ct.AssembleEMF1...3 and
// advanceFaceB read, and nothing derives them from those functions.
func (it *Integrator) applyFirstOrderCorrection(blk *block.Block, offenders []cellIdx) {
	s := blk.Scratch
	clearFlags(s.HydroFlag1, s.HydroFlag2, s.HydroFlag3, s.MhdFlag1, s.MhdFlag2, s.MhdFlag3)
	it.markHydroFlags(blk, offenders)
	it.Report.CorrectedHydro += countFlagged(s.HydroFlag1) + countFlagged(s.HydroFlag2) + countFlagged(s.HydroFlag3)
	if !it.Cfg.MHD {
		it.reflux(blk, nil, nil, nil)
		it.reapplyOffenders(blk, offenders, nil, nil, nil)
		return
	}

	emf1Flag, emf2Flag, emf3Flag := it.flagCorners(blk)
	it.reflux(blk, emf1Flag, emf2Flag, emf3Flag)
	it.Report.CorrectedMHD += countFlagged(s.MhdFlag1) + countFlagged(s.MhdFlag2) + countFlagged(s.MhdFlag3)
	it.reapplyOffenders(blk, offenders, s.MhdFlag1, s.MhdFlag2, s.MhdFlag3)
}

// markHydroFlags is the first step of spec §4.6: every offending cell flags
// both of its bounding interfaces in each of the three directions.
func (it *Integrator) markHydroFlags(blk *block.Block, offenders []cellIdx) {
	s := blk.Scratch
	for _, c := range offenders {
		s.HydroFlag1[c.k][c.j][c.i] = true
		s.HydroFlag1[c.k][c.j][c.i+1] = true
		s.HydroFlag2[c.k][c.j][c.i] = true
		s.HydroFlag2[c.k][c.j+1][c.i] = true
		s.HydroFlag3[c.k][c.j][c.i] = true
		s.HydroFlag3[c.k+1][c.j][c.i] = true
	}
}

// flagCorners propagates the hydro flags to the edge EMFs that read the
// flagged faces (the B2/B3-carrying flux components), using exactly the
// corner dependencies ct.AssembleEMF1/2/3 already read, then derives
// scratch's per-direction MhdFlag arrays from the same dependency structure
// advanceFaceB reads when it turns an edge EMF into a face-B update.
func (it *Integrator) flagCorners(blk *block.Block) (emf1, emf2, emf3 map[cellIdx]bool) {
	s := blk.Scratch
	n3, n2, n1 := len(blk.D), len(blk.D[0]), len(blk.D[0][0])
	klo, khi := 1, n3-2
	jlo, jhi := 1, n2-2
	ilo, ihi := 1, n1-2

	emf1, emf2, emf3 = map[cellIdx]bool{}, map[cellIdx]bool{}, map[cellIdx]bool{}
	for k := klo; k <= khi; k++ {
		for j := jlo; j <= jhi; j++ {
			for i := ilo; i <= ihi; i++ {
				if s.HydroFlag2[k][j][i] || s.HydroFlag2[k-1][j][i] || s.HydroFlag3[k][j][i] || s.HydroFlag3[k][j-1][i] {
					emf1[cellIdx{k, j, i}] = true
				}
				if s.HydroFlag3[k][j][i] || s.HydroFlag3[k][j][i-1] || s.HydroFlag1[k][j][i] || s.HydroFlag1[k-1][j][i] {
					emf2[cellIdx{k, j, i}] = true
				}
				if s.HydroFlag2[k][j][i] || s.HydroFlag2[k][j][i-1] || s.HydroFlag1[k][j][i] || s.HydroFlag1[k][j-1][i] {
					emf3[cellIdx{k, j, i}] = true
				}
			}
		}
	}

	for k := range s.MhdFlag1 {
		for j := range s.MhdFlag1[k] {
			for i := range s.MhdFlag1[k][j] {
				s.MhdFlag1[k][j][i] = emf3[cellIdx{k, j + 1, i}] || emf3[cellIdx{k, j, i}] ||
					emf2[cellIdx{k + 1, j, i}] || emf2[cellIdx{k, j, i}]
			}
		}
	}
	for k := range s.MhdFlag2 {
		for j := range s.MhdFlag2[k] {
			for i := range s.MhdFlag2[k][j] {
				s.MhdFlag2[k][j][i] = emf1[cellIdx{k + 1, j, i}] || emf1[cellIdx{k, j, i}] ||
					emf3[cellIdx{k, j, i + 1}] || emf3[cellIdx{k, j, i}]
			}
		}
	}
	for k := range s.MhdFlag3 {
		for j := range s.MhdFlag3[k] {
			for i := range s.MhdFlag3[k][j] {
				s.MhdFlag3[k][j][i] = emf2[cellIdx{k, j, i + 1}] || emf2[cellIdx{k, j, i}] ||
					emf1[cellIdx{k, j + 1, i}] || emf1[cellIdx{k, j, i}]
			}
		}
	}
	return
}

// reflux is step 4 of spec §4.6: on every flagged hydro interface, replace
// the high-order flux with a direct first-order Riemann flux built straight
// from U^{n+½} (no reconstruction, no H-correction), then reassemble exactly
// the edge EMFs whose corner dependencies changed.
func (it *Integrator) reflux(blk *block.Block, emf1, emf2, emf3 map[cellIdx]bool) {
	s := blk.Scratch
	n3, n2, n1 := len(blk.D), len(blk.D[0]), len(blk.D[0][0])

	for k := 0; k < n3; k++ {
		for j := 0; j < n2; j++ {
			for i := 1; i <= n1-1; i++ {
				if !s.HydroFlag1[k][j][i] {
					continue
				}
				ul := localCons1(halfCons(blk, it.Cfg, k, j, i-1))
				ur := localCons1(halfCons(blk, it.Cfg, k, j, i))
				s.F1[k][j][i] = it.Solver.Flux(s.Bp1i[k][j][i], ul, ur, 0, it.Cfg)
			}
		}
	}
	for k := 0; k < n3; k++ {
		for j := 1; j <= n2-1; j++ {
			for i := 0; i < n1; i++ {
				if !s.HydroFlag2[k][j][i] {
					continue
				}
				ul := localCons2(halfCons(blk, it.Cfg, k, j-1, i))
				ur := localCons2(halfCons(blk, it.Cfg, k, j, i))
				s.F2[k][j][i] = it.Solver.Flux(s.Bp2i[k][j][i], ul, ur, 0, it.Cfg)
			}
		}
	}
	for k := 1; k <= n3-1; k++ {
		for j := 0; j < n2; j++ {
			for i := 0; i < n1; i++ {
				if !s.HydroFlag3[k][j][i] {
					continue
				}
				ul := localCons3(halfCons(blk, it.Cfg, k-1, j, i))
				ur := localCons3(halfCons(blk, it.Cfg, k, j, i))
				s.F3[k][j][i] = it.Solver.Flux(s.Bp3i[k][j][i], ul, ur, 0, it.Cfg)
			}
		}
	}

	if !it.Cfg.MHD {
		return
	}
	for c := range emf1 {
		ct.AssembleEMF1(s.F2, s.F3, s.Ecc1, c.k, c.k, c.j, c.j, c.i, c.i, s.Emf1)
	}
	for c := range emf2 {
		ct.AssembleEMF2(s.F3, s.F1, s.Ecc2, c.k, c.k, c.j, c.j, c.i, c.i, s.Emf2)
	}
	for c := range emf3 {
		ct.AssembleEMF3(s.F2, s.F1, s.Ecc3, c.k, c.k, c.j, c.j, c.i, c.i, s.Emf3)
	}
}

// reapplyOffenders is steps 3/5 of spec §4.6 for the cell-centred update:
// every offending cell, and every active cell sharing one of its flagged
// interfaces, is recomputed once from the preserved U^n state using the
// (now partly first-order) flux arrays, reproducing exactly what C5+C6 would
// have produced had those fluxes been used from the start. Flagged face-B
// entries are similarly rebuilt from the preserved B^n_face using the
// reassembled edge EMFs.
func (it *Integrator) reapplyOffenders(blk *block.Block, offenders []cellIdx, mhd1, mhd2, mhd3 [][][]bool) {
	s := blk.Scratch
	redo := map[cellIdx]bool{}
	for _, c := range offenders {
		for _, n := range []cellIdx{c, {c.k, c.j, c.i - 1}, {c.k, c.j, c.i + 1}, {c.k, c.j - 1, c.i}, {c.k, c.j + 1, c.i}, {c.k - 1, c.j, c.i}, {c.k + 1, c.j, c.i}} {
			if n.k >= blk.Lo() && n.k <= blk.Hi3() && n.j >= blk.Lo() && n.j <= blk.Hi2() && n.i >= blk.Lo() && n.i <= blk.Hi1() {
				redo[n] = true
			}
		}
	}
	for c := range redo {
		it.reapplyCell(blk, c.k, c.j, c.i)
	}
	if mhd1 == nil {
		return
	}
	for k := range mhd1 {
		for j := range mhd1[k] {
			for i := range mhd1[k][j] {
				if mhd1[k][j][i] {
					blk.B1i[k][j][i] = s.Bn1i[k][j][i] - blk.Dt*curl1(s.Emf2, s.Emf3, blk.Dx2, blk.Dx3, k, j, i)
				}
			}
		}
	}
	for k := range mhd2 {
		for j := range mhd2[k] {
			for i := range mhd2[k][j] {
				if mhd2[k][j][i] {
					blk.B2i[k][j][i] = s.Bn2i[k][j][i] - blk.Dt*curl2(s.Emf1, s.Emf3, blk.Dx1, blk.Dx3, k, j, i)
				}
			}
		}
	}
	for k := range mhd3 {
		for j := range mhd3[k] {
			for i := range mhd3[k][j] {
				if mhd3[k][j][i] {
					blk.B3i[k][j][i] = s.Bn3i[k][j][i] - blk.Dt*curl3(s.Emf1, s.Emf2, blk.Dx1, blk.Dx2, k, j, i)
				}
			}
		}
	}
}

// clearFlags zeroes every scratch correction-flag array at the start of
// applyFirstOrderCorrection: these arrays persist in Scratch across steps, so
// a step with no offenders must not let a previous step's flags leak in.
func clearFlags(arrays ...[][][]bool) {
	for _, flags := range arrays {
		for _, a := range flags {
			for _, b := range a {
				for i := range b {
					b[i] = false
				}
			}
		}
	}
}

func countFlagged(flags [][][]bool) int {
	n := 0
	for _, a := range flags {
		for _, b := range a {
			for _, v := range b {
				if v {
					n++
				}
			}
		}
	}
	return n
}

func curl1(emf2, emf3 [][][]float64, dx2, dx3 float64, k, j, i int) float64 {
	return (emf3[k][j+1][i]-emf3[k][j][i])/dx2 - (emf2[k+1][j][i]-emf2[k][j][i])/dx3
}
func curl2(emf1, emf3 [][][]float64, dx1, dx3 float64, k, j, i int) float64 {
	return (emf1[k+1][j][i]-emf1[k][j][i])/dx3 - (emf3[k][j][i+1]-emf3[k][j][i])/dx1
}
func curl3(emf1, emf2 [][][]float64, dx1, dx2 float64, k, j, i int) float64 {
	return (emf2[k][j][i+1]-emf2[k][j][i])/dx1 - (emf1[k][j+1][i]-emf1[k][j][i])/dx2
}

// reapplyCell redoes C5 (if gravity is active) and C6 for one cell, reading
// U^n from the Un buffers and the three bounding-face fluxes from scratch
// (a mix of untouched high-order values and the freshly re-fluxed ones).
func (it *Integrator) reapplyCell(blk *block.Block, k, j, i int) {
	s := blk.Scratch
	dtdx1, dtdx2, dtdx3 := blk.Dt/blk.Dx1, blk.Dt/blk.Dx2, blk.Dt/blk.Dx3

	fl1, fr1 := s.F1[k][j][i], s.F1[k][j][i+1]
	fl2, fr2 := s.F2[k][j][i], s.F2[k][j+1][i]
	fl3, fr3 := s.F3[k][j][i], s.F3[k+1][j][i]

	rho := s.Dn[k][j][i]
	m1, m2, m3 := s.M1n[k][j][i], s.M2n[k][j][i], s.M3n[k][j][i]

	if it.Gravity != nil {
		x1, x2, x3 := blk.X1c(i), blk.X2c(j), blk.X3c(k)
		phiC := it.Gravity(x1, x2, x3)
		phi1L, phi1R := it.Gravity(blk.X1i(i), x2, x3), it.Gravity(blk.X1i(i+1), x2, x3)
		phi2L, phi2R := it.Gravity(x1, blk.X2i(j), x3), it.Gravity(x1, blk.X2i(j+1), x3)
		phi3L, phi3R := it.Gravity(x1, x2, blk.X3i(k)), it.Gravity(x1, x2, blk.X3i(k+1))
		rhoh := s.Dh[k][j][i]
		m1 += gravity.MomentumCoupling(false, dtdx1, phi1L, phi1R, rhoh)
		m2 += gravity.MomentumCoupling(false, dtdx2, phi2L, phi2R, rhoh)
		m3 += gravity.MomentumCoupling(false, dtdx3, phi3L, phi3R, rhoh)
		if !it.Cfg.Isothermal {
			s.En[k][j][i] += gravity.EnergyCoupling(false, dtdx1, phi1L, phiC, phi1R, fl1.D, fr1.D)
			s.En[k][j][i] += gravity.EnergyCoupling(false, dtdx2, phi2L, phiC, phi2R, fl2.D, fr2.D)
			s.En[k][j][i] += gravity.EnergyCoupling(false, dtdx3, phi3L, phiC, phi3R, fl3.D, fr3.D)
		}
	}

	gm1r1, gm2r1, gm3r1 := globalMomentum1(fr1)
	gm1l1, gm2l1, gm3l1 := globalMomentum1(fl1)
	gm1r2, gm2r2, gm3r2 := globalMomentum2(fr2)
	gm1l2, gm2l2, gm3l2 := globalMomentum2(fl2)
	gm1r3, gm2r3, gm3r3 := globalMomentum3(fr3)
	gm1l3, gm2l3, gm3l3 := globalMomentum3(fl3)

	blk.D[k][j][i] = rho - dtdx1*(fr1.D-fl1.D) - dtdx2*(fr2.D-fl2.D) - dtdx3*(fr3.D-fl3.D)
	blk.M1[k][j][i] = m1 - dtdx1*(gm1r1-gm1l1) - dtdx2*(gm1r2-gm1l2) - dtdx3*(gm1r3-gm1l3)
	blk.M2[k][j][i] = m2 - dtdx1*(gm2r1-gm2l1) - dtdx2*(gm2r2-gm2l2) - dtdx3*(gm2r3-gm2l3)
	blk.M3[k][j][i] = m3 - dtdx1*(gm3r1-gm3l1) - dtdx2*(gm3r2-gm3l2) - dtdx3*(gm3r3-gm3l3)
	if !it.Cfg.Isothermal {
		blk.E[k][j][i] = s.En[k][j][i] - dtdx1*(fr1.E-fl1.E) - dtdx2*(fr2.E-fl2.E) - dtdx3*(fr3.E-fl3.E)
	}
	for n := 0; n < it.Cfg.NScalars; n++ {
		blk.S[k][j][i][n] = s.Sn[k][j][i][n] - dtdx1*(fr1.S[n]-fl1.S[n]) - dtdx2*(fr2.S[n]-fl2.S[n]) - dtdx3*(fr3.S[n]-fl3.S[n])
	}
}
