// Copyright 2026 The GoSPH Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package kernel

import (
	"math"

	"github.com/cpmech/gosph/vecd"
)

func init() {
	register("CubicSpline", func(effDim int) Kernel { return &cubicSpline{effDim: effDim, sigma: cubicSplineSigma(effDim)} })
}

// cubicSpline is the standard M4 cubic-spline kernel (Monaghan 1992).
type cubicSpline struct {
	effDim int
	sigma  float64
}

func cubicSplineSigma(d int) float64 {
	switch d {
	case 1:
		return 2.0 / 3.0
	case 2:
		return 10.0 / (7.0 * pi)
	default:
		return 1.0 / pi
	}
}

func (k *cubicSpline) EffDim() int { return k.effDim }

// f evaluates the dimensionless shape function of q=r/h.
func (k *cubicSpline) f(q float64) float64 {
	switch {
	case q < 0:
		return 0
	case q < 1:
		return 1 - 1.5*q*q + 0.75*q*q*q
	case q < 2:
		t := 2 - q
		return 0.25 * t * t * t
	default:
		return 0
	}
}

// fprime is d f/d q.
func (k *cubicSpline) fprime(q float64) float64 {
	switch {
	case q < 0:
		return 0
	case q < 1:
		return -3*q + 2.25*q*q
	case q < 2:
		t := 2 - q
		return -0.75 * t * t
	default:
		return 0
	}
}

// The Monaghan shape functions f/fprime above are defined on the
// classic q=r/(h/2) scale (support q<2, i.e. r<2*(h/2)). Every other
// kernel and every pair loop in this package takes "h" to mean the
// compact-support radius itself (q=r/h<1, matching wendland.go), so W,
// GradW and DWDH evaluate f/fprime at the half-smoothing-length hh =
// h/2 rather than at h directly; this rescales the support to [0,h)
// without changing the shape of the polynomial or its normalisation
// (sigma is unchanged: the integral is invariant under the r=h*q,
// hh=h/2 substitution).

func (k *cubicSpline) W(r, h float64) float64 {
	if h <= 0 {
		return 0
	}
	hh := 0.5 * h
	q := r / hh
	if q >= 2 {
		return 0
	}
	return k.sigma / hpow(hh, k.effDim) * k.f(q)
}

func (k *cubicSpline) GradW(rvec vecd.Vec, r, h float64) vecd.Vec {
	if h <= 0 || r == 0 {
		return vecd.Vec{}
	}
	hh := 0.5 * h
	q := r / hh
	if q >= 2 {
		return vecd.Vec{}
	}
	coeff := k.sigma / hpow(hh, k.effDim) * k.fprime(q) / (hh * r)
	return rvec.Scale(coeff)
}

func (k *cubicSpline) DWDH(r, h float64) float64 {
	if h <= 0 {
		return 0
	}
	hh := 0.5 * h
	q := r / hh
	if q >= 2 {
		return 0
	}
	d := float64(k.effDim)
	dWdhh := -k.sigma / hpow(hh, k.effDim) * (d*k.f(q) + q*k.fprime(q)) / hh
	return 0.5 * dWdhh // chain rule: hh = h/2
}

// anisoHalf applies the same hh=h/2 rescaling the isotropic W/GradW/
// DWDH use, to both the xy and z smoothing lengths.
func (k *cubicSpline) anisoHalf(hxy, hz float64) (A, B float64) {
	return 0.5 * hxy, 0.5 * hz
}

func (k *cubicSpline) WAniso(rxy, rz, hxy, hz float64) float64 {
	if hxy <= 0 || hz <= 0 {
		return 0
	}
	A, B := k.anisoHalf(hxy, hz)
	q := anisoQ(rxy, rz, A, B)
	if q >= 2 {
		return 0
	}
	return k.sigma / hpow(A, k.effDim) * k.f(q)
}

func (k *cubicSpline) GradWAniso(d vecd.Vec, hxy, hz float64) vecd.Vec {
	if hxy <= 0 || hz <= 0 {
		return vecd.Vec{}
	}
	A, B := k.anisoHalf(hxy, hz)
	rxy := math.Hypot(d[0], d[1])
	rz := d[2]
	q := anisoQ(rxy, rz, A, B)
	if q >= 2 || q == 0 {
		return vecd.Vec{}
	}
	fp := k.fprime(q)
	base := k.sigma / hpow(A, k.effDim)
	cxy := base * fp / (A * A * q)
	cz := base * fp / (B * B * q)
	return vecd.Vec{d[0] * cxy, d[1] * cxy, d[2] * cz}
}

func (k *cubicSpline) DWDHxyAniso(rxy, rz, hxy, hz float64) float64 {
	if hxy <= 0 || hz <= 0 {
		return 0
	}
	A, B := k.anisoHalf(hxy, hz)
	q := anisoQ(rxy, rz, A, B)
	if q >= 2 {
		return 0
	}
	d := float64(k.effDim)
	base := k.sigma / hpow(A, k.effDim)
	dWdA := -d * base * k.f(q) / A
	if q > 0 {
		dWdA -= base * k.fprime(q) * rxy * rxy / (A * A * A * q)
	}
	return 0.5 * dWdA // chain rule: A = hxy/2
}
