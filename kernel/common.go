// Copyright 2026 The GoSPH Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package kernel

import "math"

const pi = math.Pi

// hpow returns h^d for small integer d without calling math.Pow.
func hpow(h float64, d int) float64 {
	switch d {
	case 1:
		return h
	case 2:
		return h * h
	default:
		return h * h * h
	}
}

// anisoQ returns the anisotropic 2.5-D kernel argument of §4.4,
// q = sqrt((rxy/A)^2 + (rz/B)^2), shared by every kernel's WAniso/
// GradWAniso/DWDHxyAniso (A, B are the kernel's own internal xy/z
// length scales, not necessarily hxy/hz themselves — the cubic spline
// halves them the same way its isotropic W/GradW/DWDH do).
func anisoQ(rxy, rz, A, B float64) float64 {
	return math.Sqrt((rxy*rxy)/(A*A) + (rz*rz)/(B*B))
}
