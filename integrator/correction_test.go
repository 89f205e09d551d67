// Copyright 2016 The Gomhd Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package integrator

import (
	"testing"

	"github.com/cmhpc/gomhd/block"
	"github.com/cmhpc/gomhd/eos"
	"github.com/cpmech/gosl/chk"
)

// TestMarkHydroFlagsSetsBoundingInterfaces checks spec §4.6's first step in
// isolation: an offending cell flags exactly its six bounding interfaces.
func TestMarkHydroFlagsSetsBoundingInterfaces(tst *testing.T) {
	chk.PrintTitle("marking an offending cell flags its six bounding interfaces")
	blk := block.New(8, 8, 8, 3, 1, 1, 1, 0, 1, false, true)
	it := &Integrator{Cfg: testCfg(true)}
	c := cellIdx{6, 6, 6}
	it.markHydroFlags(blk, []cellIdx{c})

	s := blk.Scratch
	if !s.HydroFlag1[6][6][6] || !s.HydroFlag1[6][6][7] {
		tst.Fatal("expected both x1 bounding interfaces flagged")
	}
	if !s.HydroFlag2[6][6][6] || !s.HydroFlag2[6][7][6] {
		tst.Fatal("expected both x2 bounding interfaces flagged")
	}
	if !s.HydroFlag3[6][6][6] || !s.HydroFlag3[7][6][6] {
		tst.Fatal("expected both x3 bounding interfaces flagged")
	}
	if s.HydroFlag1[2][2][2] {
		tst.Fatal("expected an unrelated interface to remain unflagged")
	}
}

// TestFlagCornersPropagatesNearOffenderOnly checks that flagCorners marks the
// edge EMFs and face-B updates touching the offender's own corner, while
// leaving a far-away corner untouched.
func TestFlagCornersPropagatesNearOffenderOnly(tst *testing.T) {
	chk.PrintTitle("EMF/face-B flags propagate near the offender, not far away")
	blk := block.New(8, 8, 8, 3, 1, 1, 1, 0, 1, false, true)
	it := &Integrator{Cfg: testCfg(true)}
	c := cellIdx{6, 6, 6}
	it.markHydroFlags(blk, []cellIdx{c})
	emf1, emf2, emf3 := it.flagCorners(blk)

	near := cellIdx{6, 6, 6}
	if !emf1[near] || !emf2[near] || !emf3[near] {
		tst.Fatal("expected all three edge EMFs flagged at the offender's own corner")
	}
	far := cellIdx{2, 2, 2}
	if emf1[far] || emf2[far] || emf3[far] {
		tst.Fatal("expected a far corner to remain unflagged")
	}

	s := blk.Scratch
	if !s.MhdFlag3[6][6][6] {
		tst.Fatal("expected MhdFlag3 set at the offender's own face, it depends on the flagged emf2 corner")
	}
	if s.MhdFlag3[2][2][2] {
		tst.Fatal("expected a far MhdFlag3 entry to remain unflagged")
	}
}

func testCfg(mhd bool) eos.Config {
	return eos.New(5.0/3.0, 0, false, mhd, 0)
}
