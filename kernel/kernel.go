// Copyright 2026 The GoSPH Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package kernel implements the SPH smoothing-kernel family: scalar
// weight W(r,h), gradient dW/dr and dW/dh, for a family of compactly
// supported kernels selected by name at start-up.
package kernel

import (
	"math"

	"github.com/cpmech/gosl/chk"

	"github.com/cpmech/gosph/vecd"
)

// Kernel defines the capability set every smoothing kernel must implement.
// A Kernel is constructed once (for a given effective dimension) and
// passed by reference to every module that needs it; it carries no
// mutable state, so it is safe to share across goroutines.
type Kernel interface {
	// W returns the scalar weight at separation r for smoothing length h.
	W(r, h float64) float64

	// GradW returns the gradient of W with respect to the separation
	// vector rvec (from j to i, i.e. ri-rj), for |rvec|=r and smoothing
	// length h. Returns the zero vector at r=0 (no 1/r singularity).
	GradW(rvec vecd.Vec, r, h float64) vecd.Vec

	// DWDH returns dW/dh at separation r for smoothing length h.
	DWDH(r, h float64) float64

	// EffDim returns the effective dimension used for normalisation
	// (2 in 2.5-D "thin slab" mode even though positions are 3-D).
	EffDim() int

	// WAniso, GradWAniso and DWDHxyAniso implement the anisotropic
	// 2.5-D kernel of §4.4: a second, z-axis smoothing length hz
	// combines with the xy-plane smoothing length hxy via
	// q = sqrt((rxy/hxy)^2 + (rz/hz)^2). GradWAniso returns the full
	// 3-component gradient of W with respect to the separation vector
	// d (d[0],d[1] the xy components, d[2] the z component).
	// DWDHxyAniso returns dW/dhxy with hz held fixed, which is what the
	// anisotropic Newton-Raphson solve (hxy solved, hz fixed) needs.
	WAniso(rxy, rz, hxy, hz float64) float64
	GradWAniso(d vecd.Vec, hxy, hz float64) vecd.Vec
	DWDHxyAniso(rxy, rz, hxy, hz float64) float64
}

// NeighborNumberArea returns A_d, the d-dimensional analogue of the
// measure of a unit ball (A1=2, A2=pi, A3=4pi/3), used by the
// smoothing-length solve h^d * rho(h) = N_target * m / A_d.
func NeighborNumberArea(effDim int) float64 {
	switch effDim {
	case 1:
		return 2
	case 2:
		return math.Pi
	case 3:
		return 4 * math.Pi / 3
	}
	return 4 * math.Pi / 3
}

// allocators holds all available kernels; kernel name => allocator.
var allocators = make(map[string]func(effDim int) Kernel)

// register is called from each concrete kernel's init() to populate
// the allocators registry, mirroring the strategy-registry pattern
// used throughout this codebase for pluggable algorithmic families.
func register(name string, alloc func(effDim int) Kernel) {
	allocators[name] = alloc
}

// New returns a new Kernel by name ("CubicSpline" or "Wendland") for
// the given effective dimension.
func New(name string, effDim int) (k Kernel, err error) {
	if effDim < 1 || effDim > 3 {
		return nil, chk.Err("kernel: effective dimension must be 1, 2 or 3; got %d", effDim)
	}
	alloc, ok := allocators[name]
	if !ok {
		return nil, chk.Err("kernel: %q is not available in the kernel database", name)
	}
	return alloc(effDim), nil
}
