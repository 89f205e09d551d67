// Copyright 2016 The Gomhd Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package recon implements the reconstruction step of spec §4.3: given a
// strip of cell-centred primitive states, produce the left/right interface
// states consumed by the riemann package. Interface i sits to the left of
// cell i, the same convention block's B1i/B2i/B3i and scratch's UL/UR arrays
// use, so Wl[i]/Wr[i] are written directly into those arrays by the
// integrator with no re-indexing. All orders above first share the
// characteristic machinery built in eigensystem.go; they differ only in how
// many neighbours contribute to the face value and whether the limiter acts
// on a linear slope or a parabola.
package recon

import (
	"math"

	"github.com/cmhpc/gomhd/eos"
)

// Reconstructor fills Wl[i]/Wr[i] for every interface i in [ilo,ihi] (the
// interface to the left of cell i) from the cell-centred strip w/bn, which
// must be indexed consistently with wl/wr (i.e. the same global indices used
// by the caller's block arrays). Ghost returns the stencil radius s of spec
// §4.4's loop-bounds table (1, 2 or 3); the caller must supply w[i-s-1:i+s]
// for every requested interface i.
type Reconstructor interface {
	Ghost() int
	Reconstruct(w []eos.Prim, bn []float64, cfg eos.Config, dtdx float64, ilo, ihi int, wl, wr []eos.Prim)
}

var registry = map[string]func() Reconstructor{
	"first-order": func() Reconstructor { return FirstOrder{} },
	"plm":         func() Reconstructor { return PLM{} },
	"ppm":         func() Reconstructor { return PPM{} },
}

// Get returns a freshly allocated Reconstructor registered under name,
// mirroring riemann.Get's configuration-selected lookup.
func Get(name string) (Reconstructor, bool) {
	alloc, ok := registry[name]
	if !ok {
		return nil, false
	}
	return alloc(), true
}

// FirstOrder reuses the cell-centred state directly: Wl[i]=W[i-1], Wr[i]=W[i].
// This is also the scheme the predictor (§4.4 P1) and the first-order flux
// correction (§4.6) always use, regardless of the configured order.
type FirstOrder struct{}

// Ghost implements Reconstructor.
func (FirstOrder) Ghost() int { return 1 }

// Reconstruct implements Reconstructor.
func (FirstOrder) Reconstruct(w []eos.Prim, bn []float64, cfg eos.Config, dtdx float64, ilo, ihi int, wl, wr []eos.Prim) {
	for i := ilo; i <= ihi; i++ {
		wl[i] = w[i-1]
		wr[i] = w[i]
	}
}

// PLM is the piecewise-linear, characteristic-limited reconstruction of spec
// §4.3 steps 1-5. Step 6 (characteristic tracing of non-reaching waves) is
// intentionally not applied; see the Open Question note in SPEC_FULL.md.
type PLM struct{}

// Ghost implements Reconstructor.
func (PLM) Ghost() int { return 2 }

// Reconstruct implements Reconstructor.
func (PLM) Reconstruct(w []eos.Prim, bn []float64, cfg eos.Config, dtdx float64, ilo, ihi int, wl, wr []eos.Prim) {
	pWl := make([]eos.Prim, len(w))
	pWr := make([]eos.Prim, len(w))
	for c := ilo - 1; c <= ihi; c++ {
		eig := Build(w[c], bn[c], cfg)

		dC := subPrim(w[c+1], w[c-1])
		dL := subPrim(w[c], w[c-1])
		dR := subPrim(w[c+1], w[c])

		aC := eig.Project(dC)
		aL := eig.Project(dL)
		aR := eig.Project(dR)
		alim := make([]float64, eig.NWave)
		for k := range alim {
			alim[k] = monotonize(aC[k], aL[k], aR[k])
		}
		dM := eig.Synthesize(alim)
		if cfg.NScalars > 0 {
			dM.R = make([]float64, cfg.NScalars)
			for s := range dM.R {
				dc := w[c+1].R[s] - w[c-1].R[s]
				dl := w[c].R[s] - w[c-1].R[s]
				dr := w[c+1].R[s] - w[c].R[s]
				dM.R[s] = monotonize(dc, dl, dr)
			}
		}

		wRV := clampToNeighbours(addScaled(w[c], dM, 0.5), w[c], w[c+1])
		wLV := clampToNeighbours(addScaled(w[c], dM, -0.5), w[c-1], w[c])
		dW := subPrim(wRV, wLV)

		lmax, lmin := eig.Eval[0], eig.Eval[0]
		for _, lam := range eig.Eval {
			if lam > lmax {
				lmax = lam
			}
			if lam < lmin {
				lmin = lam
			}
		}
		pWl[c] = addScaled(wRV, dW, -0.5*posPart(lmax)*dtdx)
		pWr[c] = addScaled(wLV, dW, 0.5*posPart(-lmin)*dtdx)
	}
	for i := ilo; i <= ihi; i++ {
		wl[i] = pWl[i-1]
		wr[i] = pWr[i]
	}
}

func posPart(x float64) float64 {
	if x > 0 {
		return x
	}
	return 0
}

// monotonize implements spec §4.3 step 3: zero across a local extremum,
// otherwise the sign of the centred difference times the most restrictive of
// twice the one-sided minimum, half the centred difference, and the van-Leer
// (harmonic) difference.
func monotonize(dc, dl, dr float64) float64 {
	if dl*dr <= 0 {
		return 0
	}
	dg := 2 * dl * dr / (dl + dr)
	sign := 1.0
	if dc < 0 {
		sign = -1.0
	}
	m := 2 * math.Min(math.Abs(dl), math.Abs(dr))
	if v := 0.5 * math.Abs(dc); v < m {
		m = v
	}
	if v := math.Abs(dg); v < m {
		m = v
	}
	return sign * m
}

// PPM is the parabolic, third-order reconstruction generalising the same
// characteristic-limiting machinery across a 5-cell stencil, following the
// monotonicity procedure of Colella & Woodward (1984) eq. 1.10 applied in
// characteristic space, then the same domain-of-dependence time
// extrapolation PLM uses (step 6 wave tracing is not implemented, matching
// PLM's omission; see DESIGN.md).
type PPM struct{}

// Ghost implements Reconstructor.
func (PPM) Ghost() int { return 3 }

// Reconstruct implements Reconstructor.
func (PPM) Reconstruct(w []eos.Prim, bn []float64, cfg eos.Config, dtdx float64, ilo, ihi int, wl, wr []eos.Prim) {
	pWl := make([]eos.Prim, len(w))
	pWr := make([]eos.Prim, len(w))
	for c := ilo - 1; c <= ihi; c++ {
		eig := Build(w[c], bn[c], cfg)
		am2 := eig.Project(subPrim(w[c-2], w[c]))
		am1 := eig.Project(subPrim(w[c-1], w[c]))
		ap1 := eig.Project(subPrim(w[c+1], w[c]))
		ap2 := eig.Project(subPrim(w[c+2], w[c]))

		aFaceL := make([]float64, eig.NWave)
		aFaceR := make([]float64, eig.NWave)
		for k := 0; k < eig.NWave; k++ {
			fr := (7.0/12.0)*ap1[k] - (1.0/12.0)*(am1[k]+ap2[k])
			fl := (7.0/12.0)*am1[k] - (1.0/12.0)*(am2[k]+ap1[k])
			aFaceL[k], aFaceR[k] = ppmLimit(fl, fr)
		}
		faceL := eig.Synthesize(aFaceL)
		faceR := eig.Synthesize(aFaceR)
		if cfg.NScalars > 0 {
			faceL.R = make([]float64, cfg.NScalars)
			faceR.R = make([]float64, cfg.NScalars)
			for s := range faceL.R {
				dm2 := w[c-2].R[s] - w[c].R[s]
				dm1 := w[c-1].R[s] - w[c].R[s]
				dp1 := w[c+1].R[s] - w[c].R[s]
				dp2 := w[c+2].R[s] - w[c].R[s]
				fr := (7.0/12.0)*dp1 - (1.0/12.0)*(dm1+dp2)
				fl := (7.0/12.0)*dm1 - (1.0/12.0)*(dm2+dp1)
				faceL.R[s], faceR.R[s] = ppmLimit(fl, fr)
			}
		}

		wRV := clampToNeighbours(addPrim(w[c], faceR), w[c], w[c+1])
		wLV := clampToNeighbours(addPrim(w[c], faceL), w[c-1], w[c])
		dW := subPrim(wRV, wLV)

		lmax, lmin := eig.Eval[0], eig.Eval[0]
		for _, lam := range eig.Eval {
			if lam > lmax {
				lmax = lam
			}
			if lam < lmin {
				lmin = lam
			}
		}
		pWl[c] = addScaled(wRV, dW, -0.5*posPart(lmax)*dtdx)
		pWr[c] = addScaled(wLV, dW, 0.5*posPart(-lmin)*dtdx)
	}
	for i := ilo; i <= ihi; i++ {
		wl[i] = pWl[i-1]
		wr[i] = pWr[i]
	}
}

// ppmLimit applies the Colella-Woodward monotonicity constraint to a pair of
// face deviations (fl, fr) measured relative to the cell average (zero).
func ppmLimit(fl, fr float64) (float64, float64) {
	if fr*(-fl) <= 0 {
		return 0, 0
	}
	diff := fr - fl
	if diff*(-0.5*(fl+fr)) > diff*diff/6 {
		fl = -2 * fr
	} else if -diff*diff/6 > diff*(-0.5*(fl+fr)) {
		fr = -2 * fl
	}
	return fl, fr
}

// clampToNeighbours is spec §4.3 step 4's "monotone safety net": an
// interface value synthesised from the limited characteristic slope must
// still lie within the range spanned by the two cells it separates.
func clampToNeighbours(v, a, b eos.Prim) eos.Prim {
	v.D = clamp(v.D, a.D, b.D)
	v.V1 = clamp(v.V1, a.V1, b.V1)
	v.V2 = clamp(v.V2, a.V2, b.V2)
	v.V3 = clamp(v.V3, a.V3, b.V3)
	v.P = clamp(v.P, a.P, b.P)
	v.B2 = clamp(v.B2, a.B2, b.B2)
	v.B3 = clamp(v.B3, a.B3, b.B3)
	for i := range v.R {
		v.R[i] = clamp(v.R[i], a.R[i], b.R[i])
	}
	return v
}

func clamp(x, a, b float64) float64 {
	lo, hi := a, b
	if lo > hi {
		lo, hi = hi, lo
	}
	if x < lo {
		return lo
	}
	if x > hi {
		return hi
	}
	return x
}

func subPrim(a, b eos.Prim) eos.Prim {
	d := eos.Prim{
		D: a.D - b.D, V1: a.V1 - b.V1, V2: a.V2 - b.V2, V3: a.V3 - b.V3,
		P: a.P - b.P, B1: a.B1 - b.B1, B2: a.B2 - b.B2, B3: a.B3 - b.B3,
	}
	if len(a.R) > 0 {
		d.R = make([]float64, len(a.R))
		for i := range d.R {
			d.R[i] = a.R[i] - b.R[i]
		}
	}
	return d
}

func scalePrim(a eos.Prim, s float64) eos.Prim {
	w := eos.Prim{D: a.D * s, V1: a.V1 * s, V2: a.V2 * s, V3: a.V3 * s, P: a.P * s, B1: a.B1 * s, B2: a.B2 * s, B3: a.B3 * s}
	if len(a.R) > 0 {
		w.R = make([]float64, len(a.R))
		for i := range w.R {
			w.R[i] = a.R[i] * s
		}
	}
	return w
}

// addPrim and addScaled treat a missing (nil) delta scalar slice as an
// all-zero delta.

func addPrim(a, d eos.Prim) eos.Prim {
	w := eos.Prim{
		D: a.D + d.D, V1: a.V1 + d.V1, V2: a.V2 + d.V2, V3: a.V3 + d.V3,
		P: a.P + d.P, B1: a.B1 + d.B1, B2: a.B2 + d.B2, B3: a.B3 + d.B3,
	}
	if len(a.R) > 0 {
		w.R = make([]float64, len(a.R))
		for i := range w.R {
			if i < len(d.R) {
				w.R[i] = a.R[i] + d.R[i]
			} else {
				w.R[i] = a.R[i]
			}
		}
	}
	return w
}

func addScaled(a, d eos.Prim, s float64) eos.Prim {
	w := eos.Prim{
		D: a.D + s*d.D, V1: a.V1 + s*d.V1, V2: a.V2 + s*d.V2, V3: a.V3 + s*d.V3,
		P: a.P + s*d.P, B1: a.B1 + s*d.B1, B2: a.B2 + s*d.B2, B3: a.B3 + s*d.B3,
	}
	if len(a.R) > 0 {
		w.R = make([]float64, len(a.R))
		for i := range w.R {
			if i < len(d.R) {
				w.R[i] = a.R[i] + s*d.R[i]
			} else {
				w.R[i] = a.R[i]
			}
		}
	}
	return w
}
