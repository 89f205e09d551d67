// Copyright 2016 The Gomhd Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package ct implements the corner-EMF assembler of spec §4.5: combining the
// face-centred MHD flux arrays (which encode EMF contributions per spec
// §4.2's sign table) with cell-centred reference EMFs into edge-centred EMFs
// suitable for constrained transport. The three directions are related by
// the cyclic permutation of spec §3; AssembleEMF2/3 are AssembleEMF1 with
// the roles of (F1,F2,F3) and (k,j,i) rotated.
package ct

import "github.com/cmhpc/gomhd/riemann"

// upwind picks the cell-centred reference EMF on the upwind side of a face
// given that face's own mass flux d, per spec §4.5's upwinding rule.
func upwind(d, eccLow, eccHigh float64) float64 {
	switch {
	case d > 0:
		return eccLow
	case d < 0:
		return eccHigh
	default:
		return 0.5 * (eccLow + eccHigh)
	}
}

// AssembleEMF1 fills emf1[k][j][i] for every interior corner in
// [klo,khi]x[jlo,jhi]x[ilo,ihi], the x1-direction edge EMF (E_x), built from
// the x2- and x3-sweep fluxes (F2, F3) and their cell-centred reference EMF
// ecc1 = (-v x B)_x.
func AssembleEMF1(f2, f3 [][][]riemann.Flux, ecc1 [][][]float64, klo, khi, jlo, jhi, ilo, ihi int, emf1 [][][]float64) {
	for k := klo; k <= khi; k++ {
		for j := jlo; j <= jhi; j++ {
			for i := ilo; i <= ihi; i++ {
				ref := 0.25 * (f3[k][j][i].B3 + f3[k][j-1][i].B3 - f2[k][j][i].B2 - f2[k-1][j][i].B2)

				deL2 := -f2[k-1][j][i].B2 - upwind(f2[k-1][j][i].D, ecc1[k-1][j-1][i], ecc1[k-1][j][i])
				deR2 := -f2[k][j][i].B2 - upwind(f2[k][j][i].D, ecc1[k][j-1][i], ecc1[k][j][i])
				deL3 := f3[k][j-1][i].B3 - upwind(f3[k][j-1][i].D, ecc1[k-1][j-1][i], ecc1[k][j-1][i])
				deR3 := f3[k][j][i].B3 - upwind(f3[k][j][i].D, ecc1[k-1][j][i], ecc1[k][j][i])

				emf1[k][j][i] = ref + 0.25*(deL2+deR2+deL3+deR3)
			}
		}
	}
}

// AssembleEMF2 fills emf2[k][j][i], the x2-direction edge EMF (E_y), built
// from F3 and F1 (cyclic permutation of AssembleEMF1: 1->2->3->1).
func AssembleEMF2(f3, f1 [][][]riemann.Flux, ecc2 [][][]float64, klo, khi, jlo, jhi, ilo, ihi int, emf2 [][][]float64) {
	for k := klo; k <= khi; k++ {
		for j := jlo; j <= jhi; j++ {
			for i := ilo; i <= ihi; i++ {
				ref := 0.25 * (f1[k][j][i].B3 + f1[k-1][j][i].B3 - f3[k][j][i].B2 - f3[k][j][i-1].B2)

				deL3 := -f3[k][j][i-1].B2 - upwind(f3[k][j][i-1].D, ecc2[k-1][j][i-1], ecc2[k][j][i-1])
				deR3 := -f3[k][j][i].B2 - upwind(f3[k][j][i].D, ecc2[k-1][j][i], ecc2[k][j][i])
				deL1 := f1[k-1][j][i].B3 - upwind(f1[k-1][j][i].D, ecc2[k-1][j][i-1], ecc2[k-1][j][i])
				deR1 := f1[k][j][i].B3 - upwind(f1[k][j][i].D, ecc2[k][j][i-1], ecc2[k][j][i])

				emf2[k][j][i] = ref + 0.25*(deL3+deR3+deL1+deR1)
			}
		}
	}
}

// AssembleEMF3 fills emf3[k][j][i], the x3-direction edge EMF (E_z), built
// from F2 and F1 (cyclic permutation of AssembleEMF1: 2->3->1->2).
func AssembleEMF3(f2, f1 [][][]riemann.Flux, ecc3 [][][]float64, klo, khi, jlo, jhi, ilo, ihi int, emf3 [][][]float64) {
	for k := klo; k <= khi; k++ {
		for j := jlo; j <= jhi; j++ {
			for i := ilo; i <= ihi; i++ {
				ref := 0.25 * (f2[k][j][i].B3 + f2[k][j][i-1].B3 - f1[k][j][i].B2 - f1[k][j-1][i].B2)

				deL1 := -f1[k][j-1][i].B2 - upwind(f1[k][j-1][i].D, ecc3[k][j-1][i-1], ecc3[k][j-1][i])
				deR1 := -f1[k][j][i].B2 - upwind(f1[k][j][i].D, ecc3[k][j][i-1], ecc3[k][j][i])
				deL2 := f2[k][j][i-1].B3 - upwind(f2[k][j][i-1].D, ecc3[k][j-1][i-1], ecc3[k][j][i-1])
				deR2 := f2[k][j][i].B3 - upwind(f2[k][j][i].D, ecc3[k][j-1][i], ecc3[k][j][i])

				emf3[k][j][i] = ref + 0.25*(deL1+deR1+deL2+deR2)
			}
		}
	}
}
