// Copyright 2026 The GoSPH Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package parloop

import "testing"

func TestRangeCoversEveryIndexExactlyOnce(t *testing.T) {
	n := 997 // prime, exercises uneven chunking
	seen := make([]int, n)
	Range(n, func(lo, hi int) {
		for i := lo; i < hi; i++ {
			seen[i]++
		}
	})
	for i, c := range seen {
		if c != 1 {
			t.Fatalf("index %d visited %d times, want 1", i, c)
		}
	}
}

func TestMinFloat64(t *testing.T) {
	n := 500
	vals := make([]float64, n)
	for i := range vals {
		vals[i] = float64(n - i)
	}
	vals[321] = -5
	got := MinFloat64(n, func(i int) float64 { return vals[i] })
	if got != -5 {
		t.Fatalf("got %g, want -5", got)
	}
}
