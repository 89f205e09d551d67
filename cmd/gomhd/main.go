// Copyright 2016 The Gomhd Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"flag"

	"github.com/cmhpc/gomhd/block"
	"github.com/cmhpc/gomhd/eos"
	"github.com/cmhpc/gomhd/gravity"
	"github.com/cmhpc/gomhd/integrator"
	"github.com/cmhpc/gomhd/recon"
	"github.com/cmhpc/gomhd/riemann"
	"github.com/cmhpc/gomhd/testproblems"
	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
	"github.com/cpmech/gosl/mpi"
	"github.com/cpmech/gosl/plt"
	"github.com/cpmech/gosl/utl"
)

func main() {

	// catch errors
	defer func() {
		if err := recover(); err != nil {
			if mpi.Rank() == 0 {
				chk.Verbose = true
				for i := 8; i > 3; i-- {
					chk.CallerInfo(i)
				}
				io.PfRed("ERROR: %v\n", err)
			}
		}
		mpi.Stop(false)
	}()
	mpi.Start(false)

	// command-line options
	scenario := flag.String("scenario", "sod", "scenario: sod, briowu, fieldloop, uniform, rt, carbuncle")
	nsteps := flag.Int("nsteps", 100, "number of steps to run")
	every := flag.Int("every", 10, "print a step report every N steps")
	dt := flag.Float64("dt", 1e-3, "fixed time step")
	solverName := flag.String("solver", "hlle", "Riemann solver: hlle or hlld")
	reconName := flag.String("recon", "plm", "reconstruction: first-order, plm or ppm")
	hcorrection := flag.Bool("hcorrection", false, "enable the Sanders-Morano-Druguet H-correction")
	focorrection := flag.Bool("focorrection", false, "enable the first-order flux correction on negative density")
	nx := flag.Int("nx", 128, "cells per side for scenarios that take a size")
	seed := flag.Int("seed", 1, "perturbation seed for the carbuncle scenario")
	amp := flag.Float64("amp", 1e-4, "perturbation amplitude (carbuncle, rt)")
	gconst := flag.Float64("g", 0.1, "gravitational acceleration (rt)")
	plotOut := flag.String("plot", "", "if set, write a density/pressure profile plot to this file")
	flag.Parse()

	if mpi.Rank() == 0 {
		io.PfWhite("\ngomhd -- 3-D unsplit van Leer MHD integrator\n\n")
		io.Pf("Copyright 2016 The Gomhd Authors. All rights reserved.\n")
		io.Pf("Use of this source code is governed by a BSD-style\n")
		io.Pf("license that can be found in the LICENSE file.\n\n")
	}

	defer utl.DoProf(false)()

	blk, cfg, grav := buildScenario(*scenario, *nx, *seed, *amp, *gconst)
	blk.Dt = *dt

	solver, ok := riemann.Get(*solverName)
	if !ok {
		chk.Panic("unknown Riemann solver %q\n", *solverName)
	}
	rec, ok := recon.Get(*reconName)
	if !ok {
		chk.Panic("unknown reconstruction %q\n", *reconName)
	}

	it := integrator.New(cfg, solver, rec, grav, *hcorrection, *focorrection)

	io.Pf("scenario=%s solver=%s recon=%s hcorrection=%v focorrection=%v nsteps=%d dt=%v\n\n",
		*scenario, *solverName, *reconName, *hcorrection, *focorrection, *nsteps, *dt)

	for n := 0; n < *nsteps; n++ {
		if err := it.Step(blk); err != nil {
			chk.Panic("step %d: %v\n", n, err)
		}
		if *every > 0 && (n+1)%*every == 0 {
			io.Pf("step %4d  t=%12.5e\n", n+1, blk.Time)
			it.Report.Print()
		}
	}

	if *plotOut != "" {
		plotProfile(blk, cfg, *plotOut)
	}
}

// buildScenario dispatches to the matching testproblems builder; the
// returned gravity.PotentialFunc is nil for every scenario but Rayleigh-Taylor.
func buildScenario(name string, nx, seed int, amp, g float64) (*block.Block, eos.Config, gravity.PotentialFunc) {
	switch name {
	case "sod":
		blk, cfg := testproblems.Sod()
		return blk, cfg, nil
	case "briowu":
		blk, cfg := testproblems.BrioWu()
		return blk, cfg, nil
	case "fieldloop":
		blk, cfg := testproblems.FieldLoop(nx)
		return blk, cfg, nil
	case "uniform":
		blk, cfg := testproblems.UniformFlow(nx)
		return blk, cfg, nil
	case "rt":
		blk, cfg, phi := testproblems.RayleighTaylor(nx, 2*nx, g, amp)
		return blk, cfg, phi
	case "carbuncle":
		blk, cfg := testproblems.Carbuncle(nx, nx/4, seed, amp)
		return blk, cfg, nil
	}
	chk.Panic("unknown scenario %q\n", name)
	return nil, eos.Config{}, nil
}

// plotProfile dumps a density/pressure slice along x1 through the first
// active row (j=k=Lo()), the way gofem's msolid/plotter.go narrates a state snapshot.
func plotProfile(blk *block.Block, cfg eos.Config, fn string) {
	lo, hi := blk.Lo(), blk.Hi1()
	j, k := blk.Lo(), blk.Lo()
	n := hi - lo + 1
	x := make([]float64, n)
	rho := make([]float64, n)
	prs := make([]float64, n)
	for idx, i := 0, lo; i <= hi; idx, i = idx+1, i+1 {
		x[idx] = blk.X1c(i)
		rho[idx] = blk.D[k][j][i]
		u := eos.Cons{D: blk.D[k][j][i], M1: blk.M1[k][j][i], M2: blk.M2[k][j][i], M3: blk.M3[k][j][i]}
		if cfg.MHD {
			u.B1, u.B2, u.B3 = blk.B1c[k][j][i], blk.B2c[k][j][i], blk.B3c[k][j][i]
		}
		if !cfg.Isothermal {
			u.E = blk.E[k][j][i]
		}
		w := eos.PrimFromCons(u, cfg, nil)
		prs[idx] = w.P
	}
	plt.Subplot(2, 1, 1)
	plt.Plot(x, rho, "'b-'")
	plt.Gll("$x$", "$\\rho$", "")
	plt.Subplot(2, 1, 2)
	plt.Plot(x, prs, "'r-'")
	plt.Gll("$x$", "$P$", "")
	plt.SaveD(".", fn)
}
