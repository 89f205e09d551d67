// Copyright 2016 The Gomhd Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package testproblems builds the initial-condition blocks for the six
// scenarios of spec §8's "Concrete scenarios" table. Like gofem's inp/ana
// packages, it is an external collaborator: it never touches the integrator
// directly, only produces a *block.Block (and, where relevant, a registered
// gravity.PotentialFunc) ready to be stepped by the caller.
package testproblems

import (
	"math"

	"github.com/cmhpc/gomhd/block"
	"github.com/cmhpc/gomhd/eos"
	"github.com/cmhpc/gomhd/gravity"
	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/rnd"
)

// nghostFor returns the minimum ghost count block.New would itself compute
// for stencil=3 (PPM, the widest reconstruction), so every scenario builder
// below can be driven at any reconstruction order without reallocating.
func nghostFor(hcorrection, firstOrderCorrection bool) int {
	n := 3 + 1
	if hcorrection {
		n++
	}
	if firstOrderCorrection {
		n++
	}
	return n
}

func fillCellMHD(blk *block.Block, cfg eos.Config, k, j, i int, rho, v1, v2, v3, p, b1, b2, b3 float64) {
	blk.D[k][j][i] = rho
	blk.M1[k][j][i] = rho * v1
	blk.M2[k][j][i] = rho * v2
	blk.M3[k][j][i] = rho * v3
	if cfg.MHD {
		blk.B1c[k][j][i] = b1
		blk.B2c[k][j][i] = b2
		blk.B3c[k][j][i] = b3
	}
	if !cfg.Isothermal {
		ke := 0.5 * rho * (v1*v1 + v2*v2 + v3*v3)
		me := 0.0
		if cfg.MHD {
			me = 0.5 * (b1*b1 + b2*b2 + b3*b3)
		}
		blk.E[k][j][i] = p/(cfg.Gamma-1.0) + ke + me
	}
}

// Sod is scenario 1: a one-dimensional hydro shock tube, run along x1 with
// Nx2=Nx3=1, γ=1.4, 200 active cells on [0,1], discontinuity at the midpoint.
func Sod() (*block.Block, eos.Config) {
	cfg := eos.New(1.4, 0, false, false, 0)
	nghost := nghostFor(false, false)
	blk := block.New(200, 1, 1, nghost, 1.0/200, 1.0, 1.0, 0, 3, false, false)
	for k := range blk.D {
		for j := range blk.D[k] {
			for i := range blk.D[k][j] {
				x := blk.X1c(i)
				if x < 0.5 {
					fillCellMHD(blk, cfg, k, j, i, 1.0, 0, 0, 0, 1.0, 0, 0, 0)
				} else {
					fillCellMHD(blk, cfg, k, j, i, 0.125, 0, 0, 0, 0.1, 0, 0, 0)
				}
			}
		}
	}
	return blk, cfg
}

// BrioWu is scenario 2: the MHD Rankine-Hugoniot shock tube of Brio & Wu
// (1988), γ=2, a uniform longitudinal field Bx=0.75, 400 active cells.
func BrioWu() (*block.Block, eos.Config) {
	cfg := eos.New(2.0, 0, false, true, 0)
	nghost := nghostFor(false, false)
	blk := block.New(400, 1, 1, nghost, 1.0/400, 1.0, 1.0, 0, 3, false, false)
	const bx = 0.75
	for k := range blk.D {
		for j := range blk.D[k] {
			for i := range blk.D[k][j] {
				x := blk.X1c(i)
				if x < 0.5 {
					fillCellMHD(blk, cfg, k, j, i, 1.0, 0, 0, 0, 1.0, bx, 1.0, 0)
				} else {
					fillCellMHD(blk, cfg, k, j, i, 0.125, 0, 0, 0, 0.1, bx, -1.0, 0)
				}
			}
		}
	}
	for k := range blk.B1i {
		for j := range blk.B1i[k] {
			for i := range blk.B1i[k][j] {
				blk.B1i[k][j][i] = bx
			}
		}
	}
	for k := range blk.B2i {
		for j := range blk.B2i[k] {
			for i := range blk.B2i[k][j] {
				x := blk.X1c(i)
				if x < 0.5 {
					blk.B2i[k][j][i] = 1.0
				} else {
					blk.B2i[k][j][i] = -1.0
				}
			}
		}
	}
	return blk, cfg
}

// FieldLoop is scenario 3: a weak circular current loop of radius R0 and
// field strength A0, advected diagonally by a uniform velocity on a doubly
// periodic square grid of nx cells per side.
func FieldLoop(nx int) (*block.Block, eos.Config) {
	cfg := eos.New(5.0/3.0, 0, false, true, 0)
	nghost := nghostFor(false, false)
	blk := block.New(nx, nx, 1, nghost, 2.0/float64(nx), 2.0/float64(nx), 1.0, 0, 3, false, false)
	blk.Origin1, blk.Origin2 = -1.0, -1.0
	const r0, a0 = 0.3, 1.0e-3
	const v1, v2 = 2.0, 1.0

	az := func(x, y float64) float64 {
		r := math.Hypot(x, y)
		if r < r0 {
			return a0 * (r0 - r)
		}
		return 0
	}
	for k := range blk.D {
		for j := range blk.D[k] {
			for i := range blk.D[k][j] {
				fillCellMHD(blk, cfg, k, j, i, 1.0, v1, v2, 0, 1.0, 0, 0, 0)
			}
		}
	}
	// B = curl(Az ẑ): Bx = dAz/dy, By = -dAz/dx, each face value taken as the
	// difference of Az between the two cell corners bounding that face, so
	// the discrete divergence of the interface fields vanishes to round-off;
	// cell-centred B is then the mean of the two faces (invariant 2).
	for k := range blk.B1i {
		for j := range blk.B1i[k] {
			for i := range blk.B1i[k][j] {
				x := blk.X1i(i)
				blk.B1i[k][j][i] = (az(x, blk.X2i(j+1)) - az(x, blk.X2i(j))) / blk.Dx2
			}
		}
	}
	for k := range blk.B2i {
		for j := range blk.B2i[k] {
			for i := range blk.B2i[k][j] {
				y := blk.X2i(j)
				blk.B2i[k][j][i] = -(az(blk.X1i(i+1), y) - az(blk.X1i(i), y)) / blk.Dx1
			}
		}
	}
	for k := range blk.D {
		for j := range blk.D[k] {
			for i := range blk.D[k][j] {
				blk.B1c[k][j][i] = 0.5 * (blk.B1i[k][j][i] + blk.B1i[k][j][i+1])
				blk.B2c[k][j][i] = 0.5 * (blk.B2i[k][j][i] + blk.B2i[k][j+1][i])
			}
		}
	}
	return blk, cfg
}

// UniformFlow is scenario 4: a spatially constant state used to check that
// 100 steps change nothing beyond round-off.
func UniformFlow(nx int) (*block.Block, eos.Config) {
	cfg := eos.New(5.0/3.0, 0, false, true, 0)
	nghost := nghostFor(false, false)
	blk := block.New(nx, nx, nx, nghost, 1.0/float64(nx), 1.0/float64(nx), 1.0/float64(nx), 0, 3, false, false)
	for k := range blk.D {
		for j := range blk.D[k] {
			for i := range blk.D[k][j] {
				fillCellMHD(blk, cfg, k, j, i, 1.0, 1.0, 0, 0, 1.0, 0, 0, 0)
			}
		}
	}
	return blk, cfg
}

// RayleighTaylor is scenario 5: a two-density hydro interface at y=0 under a
// uniform downward gravity g, the interface displaced by a single cos(2*pi*x)
// mode of amplitude 0.01*amp, heavy fluid (Atwood=1/3 => rhoHi/rhoLo=2) on top.
func RayleighTaylor(nx, ny int, g, amp float64) (*block.Block, eos.Config, gravity.PotentialFunc) {
	if amp <= 0 {
		chk.Panic("testproblems: Rayleigh-Taylor perturbation amplitude must be > 0, got %v", amp)
	}
	cfg := eos.New(1.4, 0, false, false, 0)
	nghost := nghostFor(false, false)
	blk := block.New(nx, ny, 1, nghost, 1.0/float64(nx), 2.0/float64(ny), 1.0, 0, 3, false, false)
	blk.Origin1, blk.Origin2 = 0, -1.0

	const rhoLo, rhoHi = 1.0, 2.0
	const p0 = 2.5
	phi := func(x1, x2, x3 float64) float64 { return g * x2 }
	for k := range blk.D {
		for j := range blk.D[k] {
			for i := range blk.D[k][j] {
				x, y := blk.X1c(i), blk.X2c(j)
				yInterface := 0.01 * amp * math.Cos(2*math.Pi*x)
				rho := rhoLo
				if y > yInterface {
					rho = rhoHi
				}
				p := p0 - rho*g*y
				fillCellMHD(blk, cfg, k, j, i, rho, 0, 0, 0, p, 0, 0, 0)
			}
		}
	}
	return blk, cfg, phi
}

// Carbuncle is scenario 6: a planar Mach-10 shock travelling along x1,
// seeded with a small transverse random perturbation of the post-shock
// density so an unstable scheme develops the carbuncle artifact; a stable
// scheme (H-correction enabled) keeps the front planar.
func Carbuncle(nx, ny int, seed int, amplitude float64) (*block.Block, eos.Config) {
	cfg := eos.New(1.4, 0, false, false, 0)
	nghost := nghostFor(true, false)
	blk := block.New(nx, ny, 1, nghost, 1.0/float64(nx), 1.0/float64(ny), 1.0, 0, 3, true, false)

	rnd.Init(seed)
	const machPre = 10.0
	const rhoPre, pPre, gamma = 1.0, 1.0/1.4, 1.4
	cs := math.Sqrt(gamma * pPre / rhoPre)
	vPre := machPre * cs

	rhoPost := rhoPre * (gamma + 1) * machPre * machPre / ((gamma-1)*machPre*machPre + 2)
	pPost := pPre * (2*gamma*machPre*machPre - (gamma - 1)) / (gamma + 1)
	vPost := vPre * rhoPre / rhoPost

	for k := range blk.D {
		for j := range blk.D[k] {
			for i := range blk.D[k][j] {
				x := blk.X1c(i)
				if x < 0.1 {
					perturb := 1.0 + amplitude*(2*rnd.Float64(0, 1)-1)
					fillCellMHD(blk, cfg, k, j, i, rhoPost*perturb, -vPost, 0, 0, pPost, 0, 0, 0)
				} else {
					fillCellMHD(blk, cfg, k, j, i, rhoPre, -vPre, 0, 0, pPre, 0, 0, 0)
				}
			}
		}
	}
	return blk, cfg
}
