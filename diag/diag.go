// Copyright 2016 The Gomhd Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package diag collects per-step diagnostics and prints them the way gofem's
// Summary narrates stage progress.
package diag

import "github.com/cpmech/gosl/io"

// StepReport accumulates counters for one integrator step.
type StepReport struct {
	PressureFloorHits int     // number of cells where the pressure floor was applied
	CorrectedHydro    int     // number of hydro interfaces reverted to first order
	CorrectedMHD      int     // number of CT (face-B) interfaces reverted to first order
	MaxDivB           float64 // max |discrete div(B)| observed over the block
}

// Reset zeroes all counters; called once at the start of every Step.
func (r *StepReport) Reset() {
	r.PressureFloorHits = 0
	r.CorrectedHydro = 0
	r.CorrectedMHD = 0
	r.MaxDivB = 0
}

// Print writes a one-line coloured summary, following fem.FEM.onexit's style.
func (r *StepReport) Print() {
	if r.PressureFloorHits > 0 {
		io.Pfyel("  pressure floor applied in %d cells\n", r.PressureFloorHits)
	}
	if r.CorrectedHydro > 0 || r.CorrectedMHD > 0 {
		io.Pfyel("  first-order correction: %d hydro, %d mhd interfaces\n", r.CorrectedHydro, r.CorrectedMHD)
	}
	if r.MaxDivB > 1e-8 {
		io.Pfred("  max|div(B)| = %23.15e\n", r.MaxDivB)
	}
}
