// Copyright 2016 The Gomhd Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package integrator orchestrates the van-Leer predictor/corrector update of
// spec §4.4: one method per phase (P0..P5, C1..C8), called in order from
// Step. Scratch ownership, the Riemann solver, the reconstructor and the
// optional gravity callback are all bundled on the Integrator value and
// reused across steps, matching gofem's FEM.Run driving a Domain through a
// fixed sequence of solver-owned phases.
package integrator

import (
	"github.com/cmhpc/gomhd/block"
	"github.com/cmhpc/gomhd/ct"
	"github.com/cmhpc/gomhd/diag"
	"github.com/cmhpc/gomhd/eos"
	"github.com/cmhpc/gomhd/gravity"
	"github.com/cmhpc/gomhd/recon"
	"github.com/cmhpc/gomhd/riemann"
	"github.com/cpmech/gosl/chk"
)

// boundaryMargin is the fixed number of array entries left untouched at
// every edge of the predictor's working arrays. The exact minimal-ghost
// bookkeeping of spec §4.4's loop-bounds table is not reproduced cell for
// cell here (see DESIGN.md); instead the predictor's hydro, CT and gravity
// updates always compute over the largest window the scratch arrays support
// with this safety margin. In the corrector, the hydro update (C6) and the
// density check cover exactly the active-cell window
// block.Lo()..block.Hi{1,2,3}(), which block.New's own nghost validation
// already guarantees has enough surrounding ghost data; its reconstruction
// and fluxes (C1, C3) cover the active faces of the sweep direction across
// the full transverse extent, and its CT (C4) and gravity (C5) updates use
// this boundaryMargin window.
const boundaryMargin = 2

// Integrator bundles everything a Step needs beyond the block itself.
type Integrator struct {
	Cfg                   eos.Config
	Solver                riemann.Solver
	Recon                 recon.Reconstructor
	Gravity               gravity.PotentialFunc // nil disables P5/C5
	HCorrection           bool
	FirstOrderCorrection  bool
	Parallel              bool // not read by Step: the three directional sweeps always run one after another
	Report                diag.StepReport
}

// New validates the toggle combination forbidden by spec §4.6 and returns a
// ready-to-use Integrator.
func New(cfg eos.Config, solver riemann.Solver, rec recon.Reconstructor, grav gravity.PotentialFunc, hcorrection, firstOrderCorrection bool) *Integrator {
	if hcorrection && firstOrderCorrection {
		chk.Panic("integrator: H-correction and first-order flux correction cannot both be enabled (spec §4.6)")
	}
	return &Integrator{Cfg: cfg, Solver: solver, Recon: rec, Gravity: grav, HCorrection: hcorrection, FirstOrderCorrection: firstOrderCorrection}
}

// Step advances blk by one time step, running P0..P5 then C1..C8 in order
// (spec §4.4, §5's ordering requirement that all predictor phases complete
// before any corrector phase begins).
func (it *Integrator) Step(blk *block.Block) error {
	it.Report.Reset()

	it.predictorSeed(blk)
	it.predictorFluxes(blk)
	it.predictorEMFs(blk)
	it.predictorCT(blk)
	it.predictorHydro(blk)
	it.predictorGravity(blk)

	it.correctorReconstruct(blk)
	if it.HCorrection {
		it.hCorrection(blk)
	}
	it.correctorFluxes(blk)
	it.correctorEMFCT(blk)
	it.correctorGravity(blk)
	it.correctorHydro(blk)

	if err := it.densityCheck(blk); err != nil {
		return err
	}
	it.finaliseB(blk)
	blk.Time += blk.Dt
	return nil
}

// predictorSeed is P0: copy U^n into the half-step buffer, and separately
// preserve U^n and B^n_face verbatim in the Un/Bn buffers so the first-order
// flux correction (spec §4.6) can redo the corrector's updates for just the
// flagged interfaces after C6/C4 have already overwritten the block arrays.
func (it *Integrator) predictorSeed(blk *block.Block) {
	s := blk.Scratch
	for k := range blk.D {
		for j := range blk.D[k] {
			copy(s.Dh[k][j], blk.D[k][j])
			copy(s.M1h[k][j], blk.M1[k][j])
			copy(s.M2h[k][j], blk.M2[k][j])
			copy(s.M3h[k][j], blk.M3[k][j])
			copy(s.Dn[k][j], blk.D[k][j])
			copy(s.M1n[k][j], blk.M1[k][j])
			copy(s.M2n[k][j], blk.M2[k][j])
			copy(s.M3n[k][j], blk.M3[k][j])
			if !it.Cfg.Isothermal {
				copy(s.Eh[k][j], blk.E[k][j])
				copy(s.En[k][j], blk.E[k][j])
			}
			if it.Cfg.MHD {
				copy(s.B1ch[k][j], blk.B1c[k][j])
				copy(s.B2ch[k][j], blk.B2c[k][j])
				copy(s.B3ch[k][j], blk.B3c[k][j])
			}
			if it.Cfg.NScalars > 0 {
				for i := range blk.S[k][j] {
					copy(s.Sh[k][j][i], blk.S[k][j][i])
					copy(s.Sn[k][j][i], blk.S[k][j][i])
				}
			}
		}
	}
	if it.Cfg.MHD {
		copyFaceB(blk.B1i, s.Bn1i)
		copyFaceB(blk.B2i, s.Bn2i)
		copyFaceB(blk.B3i, s.Bn3i)
	}
}

// predictorFluxes is P1: first-order L/R states straight from cell centres,
// one Riemann call per interface, no H-correction (etah=0).
func (it *Integrator) predictorFluxes(blk *block.Block) {
	it.predictorFluxDir1(blk)
	it.predictorFluxDir2(blk)
	it.predictorFluxDir3(blk)
}

func (it *Integrator) predictorFluxDir1(blk *block.Block) {
	s := blk.Scratch
	n3, n2, n1 := len(blk.D), len(blk.D[0]), len(blk.D[0][0])
	for k := 0; k < n3; k++ {
		for j := 0; j < n2; j++ {
			for i := 1; i <= n1-1; i++ {
				bn := blk.B1i[k][j][i]
				ul := localCons1(cellCons(blk, it.Cfg, k, j, i-1))
				ur := localCons1(cellCons(blk, it.Cfg, k, j, i))
				s.F1[k][j][i] = it.Solver.Flux(bn, ul, ur, 0, it.Cfg)
			}
		}
	}
}

func (it *Integrator) predictorFluxDir2(blk *block.Block) {
	s := blk.Scratch
	n3, n2, n1 := len(blk.D), len(blk.D[0]), len(blk.D[0][0])
	for k := 0; k < n3; k++ {
		for j := 1; j <= n2-1; j++ {
			for i := 0; i < n1; i++ {
				bn := blk.B2i[k][j][i]
				ul := localCons2(cellCons(blk, it.Cfg, k, j-1, i))
				ur := localCons2(cellCons(blk, it.Cfg, k, j, i))
				s.F2[k][j][i] = it.Solver.Flux(bn, ul, ur, 0, it.Cfg)
			}
		}
	}
}

func (it *Integrator) predictorFluxDir3(blk *block.Block) {
	s := blk.Scratch
	n3, n2, n1 := len(blk.D), len(blk.D[0]), len(blk.D[0][0])
	for k := 1; k <= n3-1; k++ {
		for j := 0; j < n2; j++ {
			for i := 0; i < n1; i++ {
				bn := blk.B3i[k][j][i]
				ul := localCons3(cellCons(blk, it.Cfg, k-1, j, i))
				ur := localCons3(cellCons(blk, it.Cfg, k, j, i))
				s.F3[k][j][i] = it.Solver.Flux(bn, ul, ur, 0, it.Cfg)
			}
		}
	}
}

// predictorEMFs is P2: reference EMFs from U^n, then the corner assembler.
func (it *Integrator) predictorEMFs(blk *block.Block) {
	if !it.Cfg.MHD {
		return
	}
	it.assembleReferenceEMF(blk, blk.D, blk.M1, blk.M2, blk.M3, blk.B1c, blk.B2c, blk.B3c)
	it.assembleEdgeEMF(blk)
}

func (it *Integrator) assembleReferenceEMF(blk *block.Block, d, m1, m2, m3, b1, b2, b3 [][][]float64) {
	s := blk.Scratch
	for k := range d {
		for j := range d[k] {
			for i := range d[k][j] {
				rho := d[k][j][i]
				v1, v2, v3 := m1[k][j][i]/rho, m2[k][j][i]/rho, m3[k][j][i]/rho
				bb1, bb2, bb3 := b1[k][j][i], b2[k][j][i], b3[k][j][i]
				s.Ecc1[k][j][i] = v3*bb2 - v2*bb3
				s.Ecc2[k][j][i] = v1*bb3 - v3*bb1
				s.Ecc3[k][j][i] = v2*bb1 - v1*bb2
			}
		}
	}
}

func (it *Integrator) assembleEdgeEMF(blk *block.Block) {
	s := blk.Scratch
	n3, n2, n1 := len(blk.D), len(blk.D[0]), len(blk.D[0][0])
	klo, khi := 1, n3-2
	jlo, jhi := 1, n2-2
	ilo, ihi := 1, n1-2
	ct.AssembleEMF1(s.F2, s.F3, s.Ecc1, klo, khi, jlo, jhi, ilo, ihi, s.Emf1)
	ct.AssembleEMF2(s.F3, s.F1, s.Ecc2, klo, khi, jlo, jhi, ilo, ihi, s.Emf2)
	ct.AssembleEMF3(s.F2, s.F1, s.Ecc3, klo, khi, jlo, jhi, ilo, ihi, s.Emf3)
}

// predictorCT is P3: advance face B a half step via the discrete curl of
// the edge EMFs, then set cell-centred B to the mean of the bounding faces.
func (it *Integrator) predictorCT(blk *block.Block) {
	s := blk.Scratch
	if !it.Cfg.MHD {
		return
	}
	copyFaceB(blk.B1i, s.Bp1i)
	copyFaceB(blk.B2i, s.Bp2i)
	copyFaceB(blk.B3i, s.Bp3i)

	halfDt := 0.5 * blk.Dt
	it.advanceFaceB(s.Bp1i, s.Bp2i, s.Bp3i, s.Emf1, s.Emf2, s.Emf3, blk.Dx1, blk.Dx2, blk.Dx3, halfDt)
	it.meanFaceToCell(s.Bp1i, s.Bp2i, s.Bp3i, s.B1ch, s.B2ch, s.B3ch)
}

func copyFaceB(src, dst [][][]float64) {
	for k := range src {
		for j := range src[k] {
			copy(dst[k][j], src[k][j])
		}
	}
}

// advanceFaceB applies spec §4.5's implied CT update (the discrete curl of
// the edge-centred EMFs) to the three face arrays over the region where
// edge EMFs were actually assembled.
func (it *Integrator) advanceFaceB(b1i, b2i, b3i, emf1, emf2, emf3 [][][]float64, dx1, dx2, dx3, dt float64) {
	n3, n2, n1 := len(b1i), len(b1i[0]), len(b1i[0][0])-1 // n1 = active cell count in x1
	lo := boundaryMargin
	for k := lo; k <= n3-1-lo; k++ {
		for j := lo; j <= n2-1-lo; j++ {
			for i := lo; i <= n1-lo; i++ {
				b1i[k][j][i] -= dt * ((emf3[k][j+1][i]-emf3[k][j][i])/dx2 - (emf2[k+1][j][i]-emf2[k][j][i])/dx3)
			}
		}
	}
	n3, n2, n1 = len(b2i), len(b2i[0])-1, len(b2i[0][0])
	for k := lo; k <= n3-1-lo; k++ {
		for j := lo; j <= n2-lo; j++ {
			for i := lo; i <= n1-1-lo; i++ {
				b2i[k][j][i] -= dt * ((emf1[k+1][j][i]-emf1[k][j][i])/dx3 - (emf3[k][j][i+1]-emf3[k][j][i])/dx1)
			}
		}
	}
	n3, n2, n1 = len(b3i)-1, len(b3i[0]), len(b3i[0][0])
	for k := lo; k <= n3-lo; k++ {
		for j := lo; j <= n2-1-lo; j++ {
			for i := lo; i <= n1-1-lo; i++ {
				b3i[k][j][i] -= dt * ((emf2[k][j][i+1]-emf2[k][j][i])/dx1 - (emf1[k][j+1][i]-emf1[k][j][i])/dx2)
			}
		}
	}
}

// meanFaceToCell is spec invariant 2: cell-centred B equals the mean of its
// two bounding interface fields.
func (it *Integrator) meanFaceToCell(b1i, b2i, b3i, b1c, b2c, b3c [][][]float64) {
	n3, n2, n1 := len(b1c), len(b1c[0]), len(b1c[0][0])
	for k := 0; k < n3; k++ {
		for j := 0; j < n2; j++ {
			for i := 0; i < n1; i++ {
				b1c[k][j][i] = 0.5 * (b1i[k][j][i] + b1i[k][j][i+1])
				b2c[k][j][i] = 0.5 * (b2i[k][j][i] + b2i[k][j+1][i])
				b3c[k][j][i] = 0.5 * (b3i[k][j][i] + b3i[k+1][j][i])
			}
		}
	}
}

// predictorHydro is P4: subtract the ½Δt flux divergence from U^{n+½}.
func (it *Integrator) predictorHydro(blk *block.Block) {
	s := blk.Scratch
	halfDt := 0.5 * blk.Dt
	it.applyFluxDivergence(s.Dh, s.M1h, s.M2h, s.M3h, s.Eh, s.Sh, s.F1, s.F2, s.F3, halfDt, blk.Dx1, blk.Dx2, blk.Dx3, boundaryMargin)
}

// applyFluxDivergence updates the given cell-centred arrays in place by
// -(dt/dx_alpha)(F_R - F_L) summed over the three directions (P4/C6's shared
// formula), over the interior window [margin, dim-1-margin] in every
// direction.
func (it *Integrator) applyFluxDivergence(d, m1, m2, m3, e [][][]float64, s [][][][]float64, f1, f2, f3 [][][]riemann.Flux, dt, dx1, dx2, dx3 float64, margin int) {
	n3, n2, n1 := len(d), len(d[0]), len(d[0][0])
	dtdx1, dtdx2, dtdx3 := dt/dx1, dt/dx2, dt/dx3
	for k := margin; k <= n3-1-margin; k++ {
		for j := margin; j <= n2-1-margin; j++ {
			for i := margin; i <= n1-1-margin; i++ {
				fl1, fr1 := f1[k][j][i], f1[k][j][i+1]
				fl2, fr2 := f2[k][j][i], f2[k][j+1][i]
				fl3, fr3 := f3[k][j][i], f3[k+1][j][i]

				d[k][j][i] -= dtdx1*(fr1.D-fl1.D) + dtdx2*(fr2.D-fl2.D) + dtdx3*(fr3.D-fl3.D)

				gm1r1, gm2r1, gm3r1 := globalMomentum1(fr1)
				gm1l1, gm2l1, gm3l1 := globalMomentum1(fl1)
				gm1r2, gm2r2, gm3r2 := globalMomentum2(fr2)
				gm1l2, gm2l2, gm3l2 := globalMomentum2(fl2)
				gm1r3, gm2r3, gm3r3 := globalMomentum3(fr3)
				gm1l3, gm2l3, gm3l3 := globalMomentum3(fl3)

				m1[k][j][i] -= dtdx1*(gm1r1-gm1l1) + dtdx2*(gm1r2-gm1l2) + dtdx3*(gm1r3-gm1l3)
				m2[k][j][i] -= dtdx1*(gm2r1-gm2l1) + dtdx2*(gm2r2-gm2l2) + dtdx3*(gm2r3-gm2l3)
				m3[k][j][i] -= dtdx1*(gm3r1-gm3l1) + dtdx2*(gm3r2-gm3l2) + dtdx3*(gm3r3-gm3l3)

				if !it.Cfg.Isothermal {
					e[k][j][i] -= dtdx1*(fr1.E-fl1.E) + dtdx2*(fr2.E-fl2.E) + dtdx3*(fr3.E-fl3.E)
				}
				for n := 0; n < it.Cfg.NScalars; n++ {
					s[k][j][i][n] -= dtdx1*(fr1.S[n]-fl1.S[n]) + dtdx2*(fr2.S[n]-fl2.S[n]) + dtdx3*(fr3.S[n]-fl3.S[n])
				}
			}
		}
	}
}

// predictorGravity is P5: add the momentum/energy source using ρ^n and the
// predictor's first-order fluxes, skipped entirely when Gravity is nil.
func (it *Integrator) predictorGravity(blk *block.Block) {
	if it.Gravity == nil {
		return
	}
	it.applyGravity(blk, true, blk.D, blk.Scratch.M1h, blk.Scratch.M2h, blk.Scratch.M3h, blk.Scratch.Eh, blk.Scratch.F1, blk.Scratch.F2, blk.Scratch.F3)
}

// applyGravity adds the spec §4.4 P5/C5 momentum and (non-isothermal)
// energy source terms, reading the potential at cell centres and faces from
// the block's coordinate accessors.
func (it *Integrator) applyGravity(blk *block.Block, half bool, rho, m1, m2, m3, e [][][]float64, f1, f2, f3 [][][]riemann.Flux) {
	n3, n2, n1 := len(rho), len(rho[0]), len(rho[0][0])
	margin := boundaryMargin
	for k := margin; k <= n3-1-margin; k++ {
		for j := margin; j <= n2-1-margin; j++ {
			for i := margin; i <= n1-1-margin; i++ {
				x1, x2, x3 := blk.X1c(i), blk.X2c(j), blk.X3c(k)
				phiC := it.Gravity(x1, x2, x3)
				r := rho[k][j][i]

				phi1L, phi1R := it.Gravity(blk.X1i(i), x2, x3), it.Gravity(blk.X1i(i+1), x2, x3)
				m1[k][j][i] += gravity.MomentumCoupling(half, blk.Dt/blk.Dx1, phi1L, phi1R, r)
				phi2L, phi2R := it.Gravity(x1, blk.X2i(j), x3), it.Gravity(x1, blk.X2i(j+1), x3)
				m2[k][j][i] += gravity.MomentumCoupling(half, blk.Dt/blk.Dx2, phi2L, phi2R, r)
				phi3L, phi3R := it.Gravity(x1, x2, blk.X3i(k)), it.Gravity(x1, x2, blk.X3i(k+1))
				m3[k][j][i] += gravity.MomentumCoupling(half, blk.Dt/blk.Dx3, phi3L, phi3R, r)

				if !it.Cfg.Isothermal {
					fl1, fr1 := f1[k][j][i], f1[k][j][i+1]
					fl2, fr2 := f2[k][j][i], f2[k][j+1][i]
					fl3, fr3 := f3[k][j][i], f3[k+1][j][i]
					e[k][j][i] += gravity.EnergyCoupling(half, blk.Dt/blk.Dx1, phi1L, phiC, phi1R, fl1.D, fr1.D)
					e[k][j][i] += gravity.EnergyCoupling(half, blk.Dt/blk.Dx2, phi2L, phiC, phi2R, fl2.D, fr2.D)
					e[k][j][i] += gravity.EnergyCoupling(half, blk.Dt/blk.Dx3, phi3L, phiC, phi3R, fl3.D, fr3.D)
				}
			}
		}
	}
}
