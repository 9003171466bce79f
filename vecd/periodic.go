// Copyright 2026 The GoSPH Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package vecd

import (
	"math"

	"github.com/cpmech/gosl/chk"
)

// AxisRange holds the periodic extent of one axis.
type AxisRange struct {
	On  bool    `json:"on"`  // axis is periodic
	Min float64 `json:"min"` // lower bound
	Max float64 `json:"max"` // upper bound
}

// length returns Max-Min.
func (a AxisRange) length() float64 { return a.Max - a.Min }

// Periodic is an immutable per-axis periodic-domain descriptor. It is
// passed by value (or pointer-to-immutable) into every pair
// computation; wrapping is a pure function of its fields and the two
// input positions, matching the Design Notes' "periodic boundary as an
// immutable value" guidance.
type Periodic struct {
	Dim  int         `json:"dim"`  // ambient dimension, 1..3
	Axes [3]AxisRange `json:"axes"` // per-axis descriptor, only [0:Dim) meaningful
}

// NewPeriodic validates and returns a Periodic descriptor.
func NewPeriodic(dim int, axes []AxisRange) (p Periodic, err error) {
	if dim < 1 || dim > 3 {
		return p, chk.Err("vecd: dimension must be 1, 2 or 3; got %d", dim)
	}
	if len(axes) != dim {
		return p, chk.Err("vecd: periodic axis count (%d) does not match dimension (%d)", len(axes), dim)
	}
	p.Dim = dim
	for i, a := range axes {
		if a.On && a.Max <= a.Min {
			return p, chk.Err("vecd: periodic axis %d has empty or inverted range [%g,%g]", i, a.Min, a.Max)
		}
		p.Axes[i] = a
	}
	return p, nil
}

// Displacement returns the minimum-image vector ri-rj, wrapping any
// enabled axis to (-L/2, L/2]. Disabled axes use the raw difference.
func (p Periodic) Displacement(ri, rj Vec) Vec {
	var d Vec
	for i := 0; i < p.Dim; i++ {
		dx := ri[i] - rj[i]
		a := p.Axes[i]
		if a.On {
			L := a.length()
			dx -= L * roundHalfDown(dx/L)
		}
		d[i] = dx
	}
	// pass through any ambient components beyond Dim unmodified (2.5-D z-axis)
	for i := p.Dim; i < 3; i++ {
		d[i] = ri[i] - rj[i]
	}
	return d
}

// Wrap maps a position back into [Min,Max) on every enabled axis.
func (p Periodic) Wrap(r Vec) Vec {
	out := r
	for i := 0; i < p.Dim; i++ {
		a := p.Axes[i]
		if !a.On {
			continue
		}
		L := a.length()
		x := r[i] - a.Min
		x -= L * floorDiv(x, L)
		out[i] = x + a.Min
	}
	return out
}

// roundHalfDown rounds x to the nearest integer, taking exact halves
// toward -Inf, so that x - roundHalfDown(x) lies in (-1/2, 1/2].
func roundHalfDown(x float64) float64 {
	return math.Ceil(x - 0.5)
}

func floorDiv(x, L float64) float64 {
	q := x / L
	iq := float64(int64(q))
	if q < 0 && iq != q {
		iq -= 1
	}
	return iq
}
