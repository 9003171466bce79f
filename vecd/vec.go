// Copyright 2026 The GoSPH Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package vecd implements fixed-dimension vector arithmetic for D in {1,2,3}
package vecd

import "math"

// Vec is a 3-component vector; only the first Dim components of a
// particle's vectors are ever meaningful for a given compile-time
// dimension, but the storage is always 3-wide so that 2.5-D mode (3-D
// positions with a 2-D kernel normalisation) can carry a z-component
// alongside a D=2 dynamics.
type Vec [3]float64

// New builds a Vec from up to 3 components; missing components are zero.
func New(comps ...float64) (v Vec) {
	for i := 0; i < len(comps) && i < 3; i++ {
		v[i] = comps[i]
	}
	return
}

// Add returns p+q.
func (p Vec) Add(q Vec) Vec {
	return Vec{p[0] + q[0], p[1] + q[1], p[2] + q[2]}
}

// Sub returns p-q.
func (p Vec) Sub(q Vec) Vec {
	return Vec{p[0] - q[0], p[1] - q[1], p[2] - q[2]}
}

// Scale returns p scaled by f.
func (p Vec) Scale(f float64) Vec {
	return Vec{p[0] * f, p[1] * f, p[2] * f}
}

// AddScaled returns p + q*f.
func (p Vec) AddScaled(q Vec, f float64) Vec {
	return Vec{p[0] + q[0]*f, p[1] + q[1]*f, p[2] + q[2]*f}
}

// Dot returns the inner product p.q over dim components.
func (p Vec) Dot(q Vec, dim int) float64 {
	var s float64
	for i := 0; i < dim; i++ {
		s += p[i] * q[i]
	}
	return s
}

// Norm returns the Euclidean length over dim components.
func (p Vec) Norm(dim int) float64 {
	return math.Sqrt(p.Dot(p, dim))
}

// Norm2 returns the squared Euclidean length over dim components.
func (p Vec) Norm2(dim int) float64 {
	return p.Dot(p, dim)
}

// Unit returns p/|p| over dim components; returns the zero vector if
// |p| is (numerically) zero, avoiding the 1/r singularity at r=0.
func (p Vec) Unit(dim int) Vec {
	n := p.Norm(dim)
	if n == 0 {
		return Vec{}
	}
	return p.Scale(1 / n)
}

// Cross2 returns the scalar z-component of the 2-D cross product p x q
// (used by the Balsara curl estimator in 2-D).
func Cross2(p, q Vec) float64 {
	return p[0]*q[1] - p[1]*q[0]
}

// Cross3 returns the 3-D cross product p x q.
func Cross3(p, q Vec) Vec {
	return Vec{
		p[1]*q[2] - p[2]*q[1],
		p[2]*q[0] - p[0]*q[2],
		p[0]*q[1] - p[1]*q[0],
	}
}
