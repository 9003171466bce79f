// Copyright 2026 The GoSPH Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package kernel

import (
	"math"

	"github.com/cpmech/gosph/vecd"
)

func init() {
	register("Wendland", func(effDim int) Kernel { return &wendlandC4{effDim: effDim, sigma: wendlandC4Sigma(effDim)} })
}

// wendlandC4 is the Wendland C4 kernel, compact support [0,h) with
// q=r/h, so q<1 inside the support. The polynomial is
// (1-q)^5 (1+5q+8q^2) in 1-D and (1-q)^6 (1+6q+35q^2/3) in 2-D and
// 3-D; sigma normalises each to unit integral.
type wendlandC4 struct {
	effDim int
	sigma  float64
}

func wendlandC4Sigma(d int) float64 {
	switch d {
	case 1:
		return 3.0 / 2.0
	case 2:
		return 9.0 / pi
	default:
		return 495.0 / (32.0 * pi)
	}
}

func (k *wendlandC4) EffDim() int { return k.effDim }

func (k *wendlandC4) f(q float64) float64 {
	if q < 0 || q >= 1 {
		return 0
	}
	t := 1 - q
	t2 := t * t
	t4 := t2 * t2
	if k.effDim == 1 {
		return t4 * t * (1 + 5*q + 8*q*q)
	}
	return t4 * t2 * (1 + 6*q + 35.0/3.0*q*q)
}

func (k *wendlandC4) W(r, h float64) float64 {
	if h <= 0 {
		return 0
	}
	q := r / h
	if q >= 1 {
		return 0
	}
	return k.sigma / hpow(h, k.effDim) * k.f(q)
}

func (k *wendlandC4) GradW(rvec vecd.Vec, r, h float64) vecd.Vec {
	if h <= 0 || r == 0 {
		return vecd.Vec{}
	}
	q := r / h
	if q >= 1 {
		return vecd.Vec{}
	}
	coeff := k.sigma / hpow(h, k.effDim) * k.dfdq(q) / (h * r)
	return rvec.Scale(coeff)
}

// dfdq is the exact derivative of f(q): of (1-q)^5 (1+5q+8q^2) in 1-D
// and of (1-q)^6 (1+6q+35q^2/3) otherwise.
func (k *wendlandC4) dfdq(q float64) float64 {
	if q < 0 || q >= 1 {
		return 0
	}
	t := 1 - q
	t4 := t * t * t * t
	if k.effDim == 1 {
		poly := 1 + 5*q + 8*q*q
		dpoly := 5 + 16*q
		return -5*t4*poly + t4*t*dpoly
	}
	poly := 1 + 6*q + 35.0/3.0*q*q
	dpoly := 6 + 70.0/3.0*q
	return -6*t4*t*poly + t4*t*t*dpoly
}

func (k *wendlandC4) DWDH(r, h float64) float64 {
	if h <= 0 {
		return 0
	}
	q := r / h
	if q >= 1 {
		return 0
	}
	d := float64(k.effDim)
	return -k.sigma / hpow(h, k.effDim) * (d*k.f(q) + q*k.dfdq(q)) / h
}

// WAniso, GradWAniso and DWDHxyAniso implement the anisotropic 2.5-D
// kernel of §4.4; unlike the cubic spline, Wendland's q=r/h already
// matches the support-h convention, so hxy/hz are used directly as the
// internal xy/z scales (no hh=h/2 rescaling needed).

func (k *wendlandC4) WAniso(rxy, rz, hxy, hz float64) float64 {
	if hxy <= 0 || hz <= 0 {
		return 0
	}
	q := anisoQ(rxy, rz, hxy, hz)
	if q >= 1 {
		return 0
	}
	return k.sigma / hpow(hxy, k.effDim) * k.f(q)
}

func (k *wendlandC4) GradWAniso(d vecd.Vec, hxy, hz float64) vecd.Vec {
	if hxy <= 0 || hz <= 0 {
		return vecd.Vec{}
	}
	rxy := math.Hypot(d[0], d[1])
	rz := d[2]
	q := anisoQ(rxy, rz, hxy, hz)
	if q >= 1 || q == 0 {
		return vecd.Vec{}
	}
	fp := k.dfdq(q)
	base := k.sigma / hpow(hxy, k.effDim)
	cxy := base * fp / (hxy * hxy * q)
	cz := base * fp / (hz * hz * q)
	return vecd.Vec{d[0] * cxy, d[1] * cxy, d[2] * cz}
}

func (k *wendlandC4) DWDHxyAniso(rxy, rz, hxy, hz float64) float64 {
	if hxy <= 0 || hz <= 0 {
		return 0
	}
	q := anisoQ(rxy, rz, hxy, hz)
	if q >= 1 {
		return 0
	}
	d := float64(k.effDim)
	base := k.sigma / hpow(hxy, k.effDim)
	dWdhxy := -d * base * k.f(q) / hxy
	if q > 0 {
		dWdhxy -= base * k.dfdq(q) * rxy * rxy / (hxy * hxy * hxy * q)
	}
	return dWdhxy
}
