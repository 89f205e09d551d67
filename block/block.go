// Copyright 2016 The Gomhd Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package block defines the grid block consumed and advanced by the
// integrator: a 3-D array of cells indexed [k][j][i] with nghost guard cells
// on every active face, plus the three face-centred interface B arrays.
package block

import "github.com/cpmech/gosl/chk"

// Block is a 3-D uniform Cartesian grid block. Arrays are indexed [k][j][i]
// over the full extent including ghosts; Lo() and Hi1()/Hi2()/Hi3() give the
// active-cell index range in each direction.
type Block struct {
	Nx1, Nx2, Nx3 int // number of ACTIVE cells in each direction
	Nghost        int // guard cells on every face
	Dx1, Dx2, Dx3 float64
	Time, Dt      float64
	NScalars      int

	// physical coordinate of the low corner of the first active cell (i=Nghost)
	Origin1, Origin2, Origin3 float64

	// conserved cell-centred hydro state
	D, M1, M2, M3, E [][][]float64
	// cell-centred magnetic field (mean of bounding face fields, invariant 2)
	B1c, B2c, B3c [][][]float64
	// passive scalar densities s[n] = ρ r[n]
	S [][][][]float64

	// face-centred interface fields, one cell wider than the cell arrays in
	// their own normal direction
	B1i, B2i, B3i [][][]float64

	Scratch *Scratch
}

// New allocates a block sized nx1 x nx2 x nx3 active cells with nghost guard
// cells, and its scratch pool. It panics (chk.Panic, the gofem idiom for
// configuration errors detected at construction time) if nghost is too thin
// for the given reconstruction stencil radius and feature set.
func New(nx1, nx2, nx3, nghost int, dx1, dx2, dx3 float64, nscalars int, stencil int, hcorrection, firstOrderCorrection bool) *Block {
	minGhost := stencil + 1
	if hcorrection {
		minGhost++
	}
	if firstOrderCorrection {
		minGhost++
	}
	if nghost < minGhost {
		chk.Panic("block: nghost=%d is insufficient for stencil=%d (hcorr=%v, focorr=%v); need >= %d",
			nghost, stencil, hcorrection, firstOrderCorrection, minGhost)
	}
	if nx1 <= 0 || nx2 <= 0 || nx3 <= 0 {
		chk.Panic("block: active cell counts must be positive, got (%d,%d,%d)", nx1, nx2, nx3)
	}

	b := &Block{Nx1: nx1, Nx2: nx2, Nx3: nx3, Nghost: nghost, Dx1: dx1, Dx2: dx2, Dx3: dx3, NScalars: nscalars}

	n1, n2, n3 := nx1+2*nghost, nx2+2*nghost, nx3+2*nghost
	b.D = alloc3(n3, n2, n1)
	b.M1 = alloc3(n3, n2, n1)
	b.M2 = alloc3(n3, n2, n1)
	b.M3 = alloc3(n3, n2, n1)
	b.E = alloc3(n3, n2, n1)
	b.B1c = alloc3(n3, n2, n1)
	b.B2c = alloc3(n3, n2, n1)
	b.B3c = alloc3(n3, n2, n1)
	if nscalars > 0 {
		b.S = alloc4(n3, n2, n1, nscalars)
	}
	b.B1i = alloc3(n3, n2, n1+1)
	b.B2i = alloc3(n3, n2+1, n1)
	b.B3i = alloc3(n3+1, n2, n1)

	b.Scratch = newScratch(n1, n2, n3, nscalars)
	return b
}

// Clean releases integrator-owned resources. Go's GC reclaims the
// backing arrays; this method exists only for lifecycle symmetry with
// gofem's Domain.Clean and is safe to call multiple times.
func (b *Block) Clean() {}

// Lo returns the first active-cell index in a direction (inclusive).
func (b *Block) Lo() int { return b.Nghost }

// Hi1, Hi2, Hi3 return the last active-cell index (inclusive) in each direction.
func (b *Block) Hi1() int { return b.Nghost + b.Nx1 - 1 }
func (b *Block) Hi2() int { return b.Nghost + b.Nx2 - 1 }
func (b *Block) Hi3() int { return b.Nghost + b.Nx3 - 1 }

// X1c, X2c, X3c return the physical coordinate of the centre of cell index i
// (a cell-array index, possibly in the ghost region).
func (b *Block) X1c(i int) float64 { return b.Origin1 + (float64(i-b.Nghost)+0.5)*b.Dx1 }
func (b *Block) X2c(j int) float64 { return b.Origin2 + (float64(j-b.Nghost)+0.5)*b.Dx2 }
func (b *Block) X3c(k int) float64 { return b.Origin3 + (float64(k-b.Nghost)+0.5)*b.Dx3 }

// X1i, X2i, X3i return the physical coordinate of face index i (a
// face-array index, one wider than the cell arrays in its own direction);
// face i bounds cells i-1 and i.
func (b *Block) X1i(i int) float64 { return b.Origin1 + float64(i-b.Nghost)*b.Dx1 }
func (b *Block) X2i(j int) float64 { return b.Origin2 + float64(j-b.Nghost)*b.Dx2 }
func (b *Block) X3i(k int) float64 { return b.Origin3 + float64(k-b.Nghost)*b.Dx3 }

func alloc3(n3, n2, n1 int) [][][]float64 {
	a := make([][][]float64, n3)
	for k := range a {
		a[k] = make([][]float64, n2)
		for j := range a[k] {
			a[k][j] = make([]float64, n1)
		}
	}
	return a
}

func alloc4(n3, n2, n1, ns int) [][][][]float64 {
	a := make([][][][]float64, n3)
	for k := range a {
		a[k] = make([][][]float64, n2)
		for j := range a[k] {
			a[k][j] = make([][]float64, n1)
			for i := range a[k][j] {
				a[k][j][i] = make([]float64, ns)
			}
		}
	}
	return a
}
