// Copyright 2016 The Gomhd Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package testproblems

import (
	"math"
	"testing"

	"github.com/cpmech/gosl/chk"
)

func checkNoNaNAndPositive(tst *testing.T, name string, d [][][]float64) {
	for k := range d {
		for j := range d[k] {
			for i := range d[k][j] {
				v := d[k][j][i]
				if math.IsNaN(v) || math.IsInf(v, 0) {
					tst.Fatalf("%s: non-finite density at (%d,%d,%d): %v", name, k, j, i, v)
				}
				if v <= 0 {
					tst.Fatalf("%s: non-positive density at (%d,%d,%d): %v", name, k, j, i, v)
				}
			}
		}
	}
}

func TestSodInitialConditionIsPositiveAndDiscontinuous(tst *testing.T) {
	chk.PrintTitle("Sod tube initial condition")
	blk, _ := Sod()
	checkNoNaNAndPositive(tst, "sod", blk.D)
	lo, hi := blk.Lo(), blk.Hi1()
	chk.Scalar(tst, "left density", 1e-12, blk.D[blk.Lo()][blk.Lo()][lo], 1.0)
	chk.Scalar(tst, "right density", 1e-12, blk.D[blk.Lo()][blk.Lo()][hi], 0.125)
}

func TestBrioWuInitialConditionHasUniformBx(tst *testing.T) {
	chk.PrintTitle("Brio-Wu tube initial condition")
	blk, _ := BrioWu()
	checkNoNaNAndPositive(tst, "briowu", blk.D)
	for k := range blk.B1i {
		for j := range blk.B1i[k] {
			for i := range blk.B1i[k][j] {
				chk.Scalar(tst, "Bx", 1e-12, blk.B1i[k][j][i], 0.75)
			}
		}
	}
}

func TestFieldLoopBIsDivergenceFree(tst *testing.T) {
	chk.PrintTitle("field loop initial condition satisfies div(B)=0")
	blk, _ := FieldLoop(16)
	for k := blk.Lo(); k <= blk.Hi3(); k++ {
		for j := blk.Lo(); j <= blk.Hi2(); j++ {
			for i := blk.Lo(); i <= blk.Hi1(); i++ {
				div := (blk.B1i[k][j][i+1]-blk.B1i[k][j][i])/blk.Dx1 +
					(blk.B2i[k][j+1][i]-blk.B2i[k][j][i])/blk.Dx2
				if math.Abs(div) > 1e-6 {
					tst.Fatalf("non-zero div(B) at (%d,%d,%d): %v", k, j, i, div)
				}
			}
		}
	}
}

func TestUniformFlowIsSpatiallyConstant(tst *testing.T) {
	chk.PrintTitle("uniform flow initial condition")
	blk, _ := UniformFlow(8)
	for k := blk.Lo(); k <= blk.Hi3(); k++ {
		for j := blk.Lo(); j <= blk.Hi2(); j++ {
			for i := blk.Lo(); i <= blk.Hi1(); i++ {
				chk.Scalar(tst, "D", 1e-12, blk.D[k][j][i], 1.0)
				chk.Scalar(tst, "M1", 1e-12, blk.M1[k][j][i], 1.0)
			}
		}
	}
}

func TestRayleighTaylorHeavyFluidIsOnTop(tst *testing.T) {
	chk.PrintTitle("Rayleigh-Taylor initial condition")
	blk, _, phi := RayleighTaylor(8, 16, 0.1, 1.0)
	checkNoNaNAndPositive(tst, "rt", blk.D)
	topRho := blk.D[blk.Lo()][blk.Hi2()][blk.Lo()]
	bottomRho := blk.D[blk.Lo()][blk.Lo()][blk.Lo()]
	if topRho <= bottomRho {
		tst.Fatalf("expected heavier fluid on top, got top=%v bottom=%v", topRho, bottomRho)
	}
	if phi(0, 1, 0) <= phi(0, -1, 0) {
		tst.Fatal("expected the potential to increase upward for a downward-pointing force")
	}
}

func TestCarbuncleInitialConditionIsPositive(tst *testing.T) {
	chk.PrintTitle("carbuncle seed initial condition")
	blk, _ := Carbuncle(32, 8, 1, 1e-4)
	checkNoNaNAndPositive(tst, "carbuncle", blk.D)
}
