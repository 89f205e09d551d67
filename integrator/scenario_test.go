// Copyright 2016 The Gomhd Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package integrator

import (
	"testing"

	"github.com/cmhpc/gomhd/recon"
	"github.com/cmhpc/gomhd/riemann"
	"github.com/cmhpc/gomhd/testproblems"
	"github.com/cpmech/gosl/chk"
)

// TestUniformFlowScenarioIsUnchangedAfter100Steps exercises spec §8's
// concrete scenario 4 end to end through testproblems' collaborator setup.
func TestUniformFlowScenarioIsUnchangedAfter100Steps(tst *testing.T) {
	chk.PrintTitle("3-D uniform flow is unchanged after 100 steps")
	blk, cfg := testproblems.UniformFlow(8)
	blk.Dt = 1e-4

	solver, _ := riemann.Get("hlle")
	rec, _ := recon.Get("plm")
	it := New(cfg, solver, rec, nil, false, false)

	for n := 0; n < 100; n++ {
		if err := it.Step(blk); err != nil {
			tst.Fatalf("step %d: unexpected error: %v", n, err)
		}
	}

	k, j, i := blk.Lo()+2, blk.Lo()+2, blk.Lo()+2
	chk.Scalar(tst, "D", 1e-8, blk.D[k][j][i], 1.0)
	chk.Scalar(tst, "M1", 1e-8, blk.M1[k][j][i], 1.0)
	chk.Scalar(tst, "M2", 1e-8, blk.M2[k][j][i], 0.0)
	chk.Scalar(tst, "M3", 1e-8, blk.M3[k][j][i], 0.0)
}
