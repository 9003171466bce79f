// Copyright 2026 The GoSPH Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package variant implements the four SPH discretisations (SSPH,
// DISPH, GSPH, GDISPH) as a tagged family of strategy objects sharing
// common AV/Balsara/grad-h/smoothing-length logic, mirroring the
// Model/allocators registry pattern used for material models
// throughout this codebase (mdl/solid, mdl/fluid, ...): the driver
// owns a single (PreInteraction, FluidForce) pair chosen once at
// start, never a type switch on the variant name.
package variant

import (
	"github.com/cpmech/gosl/chk"

	"github.com/cpmech/gosph/bhtree"
	"github.com/cpmech/gosph/config"
	"github.com/cpmech/gosph/particle"
)

// PreInteraction solves for smoothing length and the density/volume
// state every fluid-force assembly depends on (§4.4).
type PreInteraction interface {
	Run(sim *particle.Simulation, tree *bhtree.Tree, cfg config.Config) error
}

// FluidForce assembles acceleration and specific-energy rate from the
// state a PreInteraction pass produced (§4.5).
type FluidForce interface {
	Run(sim *particle.Simulation, tree *bhtree.Tree, cfg config.Config) error
}

// Pair bundles one variant's pre-interaction and fluid-force strategy
// objects, the two methods the driver ever calls.
type Pair struct {
	Pre   PreInteraction
	Force FluidForce
}

// allocators holds all available variants; SPHType name => allocator.
var allocators = make(map[string]func() Pair)

func register(name string, alloc func() Pair) {
	allocators[name] = alloc
}

// New returns the (PreInteraction, FluidForce) pair for the named
// SPHType ("SSPH", "DISPH", "GSPH" or "GDISPH").
func New(name string) (Pair, error) {
	alloc, ok := allocators[name]
	if !ok {
		return Pair{}, chk.Err("variant: %q is not available in the variant database", name)
	}
	return alloc(), nil
}
