// Copyright 2026 The GoSPH Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package kernel

import (
	"math"
	"testing"

	"github.com/cpmech/gosl/chk"

	"github.com/cpmech/gosph/vecd"
)

// integrate W over a fine 1-D/2-D/3-D grid out to the support radius
// and check the normalisation integral is close to 1 (testable
// property #4 in the specification).
func checkNormalisation(t *testing.T, name string, effDim int, support float64) {
	k, err := New(name, effDim)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	h := 1.0
	n := 4000
	dr := support * h / float64(n)
	var integral float64
	switch effDim {
	case 1:
		for i := 0; i < n; i++ {
			r := (float64(i) + 0.5) * dr
			integral += 2 * k.W(r, h) * dr // both +/- r
		}
	case 2:
		for i := 0; i < n; i++ {
			r := (float64(i) + 0.5) * dr
			integral += k.W(r, h) * 2 * math.Pi * r * dr
		}
	default:
		for i := 0; i < n; i++ {
			r := (float64(i) + 0.5) * dr
			integral += k.W(r, h) * 4 * math.Pi * r * r * dr
		}
	}
	chk.Scalar(t, name, 1e-3, integral, 1.0)
}

func TestCubicSplineNormalisation1D(t *testing.T) { checkNormalisation(t, "CubicSpline", 1, 2) }
func TestCubicSplineNormalisation2D(t *testing.T) { checkNormalisation(t, "CubicSpline", 2, 2) }
func TestCubicSplineNormalisation3D(t *testing.T) { checkNormalisation(t, "CubicSpline", 3, 2) }
func TestWendlandNormalisation1D(t *testing.T)    { checkNormalisation(t, "Wendland", 1, 1) }
func TestWendlandNormalisation2D(t *testing.T)    { checkNormalisation(t, "Wendland", 2, 1) }
func TestWendlandNormalisation3D(t *testing.T)    { checkNormalisation(t, "Wendland", 3, 1) }

func TestCompactSupportAndZeroGradAtOrigin(t *testing.T) {
	for _, name := range []string{"CubicSpline", "Wendland"} {
		k, err := New(name, 3)
		if err != nil {
			t.Fatalf("New: %v", err)
		}
		h := 1.0
		if w := k.W(h, h); w != 0 {
			t.Fatalf("%s: expected W(r=h)=0, got %g", name, w)
		}
		if w := k.W(2*h, h); w != 0 {
			t.Fatalf("%s: expected W(r>h)=0, got %g", name, w)
		}
		g := k.GradW(vecd.Vec{}, 0, h)
		if g != (vecd.Vec{}) {
			t.Fatalf("%s: expected zero gradient at r=0, got %v", name, g)
		}
		gh := k.GradW(vecd.New(h, 0, 0), h, h)
		if gh != (vecd.Vec{}) {
			t.Fatalf("%s: expected zero gradient at r=h, got %v", name, gh)
		}
	}
}

func TestUnknownKernel(t *testing.T) {
	if _, err := New("Bogus", 3); err == nil {
		t.Fatal("expected error for unknown kernel name")
	}
}
