// Copyright 2016 The Gomhd Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package integrator

import (
	"testing"

	"github.com/cmhpc/gomhd/block"
	"github.com/cmhpc/gomhd/eos"
	"github.com/cmhpc/gomhd/recon"
	"github.com/cmhpc/gomhd/riemann"
	"github.com/cpmech/gosl/chk"
)

func fillUniform(blk *block.Block, cfg eos.Config, d, m1, m2, m3, e, b1, b2, b3 float64) {
	for k := range blk.D {
		for j := range blk.D[k] {
			for i := range blk.D[k][j] {
				blk.D[k][j][i] = d
				blk.M1[k][j][i] = m1
				blk.M2[k][j][i] = m2
				blk.M3[k][j][i] = m3
				blk.E[k][j][i] = e
				if cfg.MHD {
					blk.B1c[k][j][i] = b1
					blk.B2c[k][j][i] = b2
					blk.B3c[k][j][i] = b3
				}
			}
		}
	}
	if !cfg.MHD {
		return
	}
	for k := range blk.B1i {
		for j := range blk.B1i[k] {
			for i := range blk.B1i[k][j] {
				blk.B1i[k][j][i] = b1
			}
		}
	}
	for k := range blk.B2i {
		for j := range blk.B2i[k] {
			for i := range blk.B2i[k][j] {
				blk.B2i[k][j][i] = b2
			}
		}
	}
	for k := range blk.B3i {
		for j := range blk.B3i[k] {
			for i := range blk.B3i[k][j] {
				blk.B3i[k][j][i] = b3
			}
		}
	}
}

// TestStepUniformStateIsFixedPoint checks spec §8's testable property that a
// spatially uniform state with no gravity is left unchanged by a step: every
// interface flux is the same in both directions at a cell, so the flux
// divergence vanishes, and a uniform edge EMF has zero discrete curl.
func TestStepUniformStateIsFixedPoint(tst *testing.T) {
	chk.PrintTitle("a uniform MHD state is a fixed point of one step")
	cfg := eos.New(5.0/3.0, 0, false, true, 0)
	solver, _ := riemann.Get("hlle")
	rec, _ := recon.Get("first-order")
	it := New(cfg, solver, rec, nil, false, false)

	blk := block.New(4, 4, 4, 2, 0.1, 0.1, 0.1, 0, rec.Ghost(), false, false)
	blk.Dt = 1e-3
	fillUniform(blk, cfg, 1.0, 0.2, 0.0, 0.0, 2.5, 0.1, 0.1, 0.1)

	if err := it.Step(blk); err != nil {
		tst.Fatalf("unexpected error from Step: %v", err)
	}

	k, j, i := 4, 4, 4 // an interior active cell, well clear of the boundaryMargin window
	chk.Scalar(tst, "D", 1e-9, blk.D[k][j][i], 1.0)
	chk.Scalar(tst, "M1", 1e-9, blk.M1[k][j][i], 0.2)
	chk.Scalar(tst, "M2", 1e-9, blk.M2[k][j][i], 0.0)
	chk.Scalar(tst, "M3", 1e-9, blk.M3[k][j][i], 0.0)
	chk.Scalar(tst, "E", 1e-9, blk.E[k][j][i], 2.5)
	chk.Scalar(tst, "B1c", 1e-9, blk.B1c[k][j][i], 0.1)
	chk.Scalar(tst, "B2c", 1e-9, blk.B2c[k][j][i], 0.1)
	chk.Scalar(tst, "B3c", 1e-9, blk.B3c[k][j][i], 0.1)

	if it.Report.MaxDivB > 1e-9 {
		tst.Fatalf("expected near-zero divergence, got %v", it.Report.MaxDivB)
	}
}

// TestNewRejectsIncompatibleToggles checks spec §4.6's forbidden combination.
func TestNewRejectsIncompatibleToggles(tst *testing.T) {
	chk.PrintTitle("H-correction and first-order flux correction cannot both be enabled")
	defer func() {
		if r := recover(); r == nil {
			tst.Fatal("expected New to panic when both toggles are enabled")
		}
	}()
	cfg := eos.New(5.0/3.0, 0, false, false, 0)
	solver, _ := riemann.Get("hlle")
	rec, _ := recon.Get("first-order")
	New(cfg, solver, rec, nil, true, true)
}
