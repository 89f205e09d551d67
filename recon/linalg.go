// Copyright 2016 The Gomhd Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package recon

import (
	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/la"
)

// invert returns the inverse of the square matrix a (n x n), delegating the
// Gauss-Jordan solve to la.MatInvG rather than hand-rolling it. Building the
// left eigenvectors this way -- rather than by hand-derived closed-form
// formulas -- guarantees L = R^-1 exactly (up to round-off) regardless of how
// involved the right-eigenvector construction is.
func invert(a [][]float64, n int) [][]float64 {
	inv := la.MatAlloc(n, n)
	if err := la.MatInvG(inv, a, 1e-10); err != nil {
		chk.Panic("recon: eigenvector matrix is singular: %v", err)
	}
	return inv
}

// matVec returns a*x, delegating to la.MatVecMul.
func matVec(a [][]float64, x []float64) []float64 {
	out := make([]float64, len(a))
	la.MatVecMul(out, 1, a, x)
	return out
}
