// Copyright 2016 The Gomhd Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package gravity implements the P5/C5 static-gravity source coupling of
// spec §4.4. The potential itself is an external collaborator supplied by
// the caller (spec §6); this package only turns a sampled potential into
// the momentum and energy corrections the integrator adds to a cell.
package gravity

// PotentialFunc is the caller-registered static gravitational potential, a
// plain function of physical position, matching gofem's use of plain
// callback types for material-like capabilities supplied from outside the
// core (fun.Func). A nil PotentialFunc means no gravity is registered and
// the integrator skips P5/C5 entirely.
type PotentialFunc func(x1, x2, x3 float64) float64

// MomentumCoupling returns ΔM_α, the momentum source added along the sweep
// direction whose cell size is dx (spec §4.4 P5/C5):
// half=true (predictor) applies the leading ½, half=false (corrector) does
// not. phiL, phiR are the potential at the cell's two bounding faces and
// rho is the density used for the coupling (ρ^n in the predictor,
// ρ^{n+½} in the corrector).
func MomentumCoupling(half bool, dtdx, phiL, phiR, rho float64) float64 {
	factor := 1.0
	if half {
		factor = 0.5
	}
	return -factor * dtdx * (phiR - phiL) * rho
}

// EnergyCoupling returns ΔE, the energy source added along the sweep
// direction (spec §4.4 P5/C5). fluxLd, fluxRd are the mass-flux (F.D)
// components of the bounding interface fluxes (the predictor's first-order
// fluxes in P5, the corrector's final fluxes in C5); phiL, phiC, phiR are
// the potential at the left face, cell centre and right face.
func EnergyCoupling(half bool, dtdx, phiL, phiC, phiR, fluxLd, fluxRd float64) float64 {
	factor := 1.0
	if half {
		factor = 0.5
	}
	return factor * dtdx * (fluxLd*(phiL-phiC) + fluxRd*(phiC-phiR))
}
