// Copyright 2026 The GoSPH Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package parloop implements the "parallel threads over particles"
// scheduling model of the concurrency design (§5): the outermost loop
// of a pre-interaction/fluid-force/gravity/timestep module partitions
// the particle index range into contiguous chunks, one per worker
// goroutine, and joins at a full barrier before returning. Each
// worker only ever writes to the particle indices in its own chunk
// (or to its own slot of a per-worker accumulator), so no locking is
// required; every module in this repository goes through this one
// helper instead of five ad-hoc goroutine-fan-out implementations.
package parloop

import (
	"math"
	"runtime"
	"sync"
)

// Workers is the number of goroutines Range splits n into; it
// defaults to GOMAXPROCS and may be overridden (e.g. by tests that
// want deterministic single-threaded execution).
var Workers = runtime.GOMAXPROCS(0)

// Range calls body(lo, hi) once per chunk of the index range [0,n),
// split across Workers goroutines, and blocks until every chunk has
// completed. body must only touch indices in [lo,hi).
func Range(n int, body func(lo, hi int)) {
	if n <= 0 {
		return
	}
	workers := Workers
	if workers < 1 {
		workers = 1
	}
	if workers > n {
		workers = n
	}
	if workers == 1 {
		body(0, n)
		return
	}

	chunk := (n + workers - 1) / workers
	var wg sync.WaitGroup
	for lo := 0; lo < n; lo += chunk {
		hi := lo + chunk
		if hi > n {
			hi = n
		}
		wg.Add(1)
		go func(lo, hi int) {
			defer wg.Done()
			body(lo, hi)
		}(lo, hi)
	}
	wg.Wait()
}

// MinFloat64 runs a per-chunk reduction over [0,n) computing the
// minimum of f(i) across all i, using one accumulator per worker
// joined at the barrier (Design Notes: "global reductions... per-
// thread accumulators joined at the barrier").
func MinFloat64(n int, f func(i int) float64) float64 {
	if n <= 0 {
		return 0
	}
	workers := Workers
	if workers < 1 {
		workers = 1
	}
	if workers > n {
		workers = n
	}
	partials := make([]float64, workers)
	for w := range partials {
		partials[w] = math.Inf(1)
	}

	chunk := (n + workers - 1) / workers
	var wg sync.WaitGroup
	for w := 0; w*chunk < n; w++ {
		lo := w * chunk
		hi := lo + chunk
		if hi > n {
			hi = n
		}
		wg.Add(1)
		go func(w, lo, hi int) {
			defer wg.Done()
			m := math.Inf(1)
			for i := lo; i < hi; i++ {
				if v := f(i); v < m {
					m = v
				}
			}
			partials[w] = m
		}(w, lo, hi)
	}
	wg.Wait()

	best := partials[0]
	for _, v := range partials[1:] {
		if v < best {
			best = v
		}
	}
	return best
}
