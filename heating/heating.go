// Copyright 2026 The GoSPH Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package heating implements the optional heating/cooling hook of
// §4.8 step 6 ("additive to u̇ only"): a named, time-dependent source
// term added to the DEne of every particle that is not a point mass, after the fluid-force and
// gravity passes run. The function-definition shape (Name/Type/Prms,
// resolved by name through a registry) is adapted directly from
// inp/func.go's FuncsData/fun.New pattern, the teacher's own
// mechanism for describing a time-dependent boundary or source term
// from a config file; this package drops only the plotting
// (gosl/plt) side of that file, which has no role in a particle
// source term.
package heating

import (
	"math"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/fun"
	"github.com/cpmech/gosl/fun/dbf"
	"github.com/cpmech/gosl/io"

	"github.com/cpmech/gosph/parloop"
	"github.com/cpmech/gosph/particle"
	"github.com/cpmech/gosph/vecd"
)

// FuncData names one time-dependent function by type and parameters,
// the same wire shape inp.FuncData used for FE boundary conditions.
type FuncData struct {
	Name string     `json:"name" toml:"name"` // e.g. "heatsource"
	Type string     `json:"type" toml:"type"` // e.g. "cte", "rmp" (gosl/fun function types)
	Prms dbf.Params `json:"prms" toml:"prms"`
}

// FuncsData is the keyed collection the Spec.Funcs field holds; Get
// resolves a function by name, "zero"/"none" always returning the
// additive identity without a table lookup.
type FuncsData []*FuncData

// Get resolves a named function against the table, mirroring
// inp.FuncsData.Get.
func (o FuncsData) Get(name string) (fun.TimeSpace, error) {
	if name == "" || name == "zero" || name == "none" {
		return &fun.Zero, nil
	}
	for _, f := range o {
		if f.Name == name {
			fcn, err := fun.New(f.Type, f.Prms)
			if err != nil {
				return nil, chk.Err("heating: function %q: %v", name, err)
			}
			return fcn, nil
		}
	}
	return nil, chk.Err("heating: no function named %q", name)
}

func (o FuncData) String() string {
	return io.Sf("{%q: {type:%q, prms:%v}}", o.Name, o.Type, o.Prms)
}

// Spec is the configuration-record shape for the hook: which named
// function (by rate per unit energy) drives the source term, and
// whether it is spatially uniform or an inverse-square point source
// centred at Origin (a simple stand-in for the many source-geometry
// choices a scenario file might want; anything richer belongs in the
// IC/scenario collaborator, not the core).
type Spec struct {
	FuncName string     `json:"funcName" toml:"func_name"`
	Funcs    FuncsData  `json:"funcs" toml:"funcs"`
	PointSrc bool       `json:"pointSource" toml:"point_source"`
	Origin   [3]float64 `json:"origin" toml:"origin"`
}

// Hook implements solver.Hook: DEne_i += rate(t) * weight_i, where
// weight_i is 1 for a spatially uniform source or 1/(4*pi*r^2) for a
// point source at Spec.Origin (r clamped away from zero by the
// particle's own smoothing length to avoid a singularity at the
// source itself).
type Hook struct {
	spec Spec
	fcn  fun.TimeSpace
}

// New resolves spec's named function once; the returned Hook is safe
// to call Apply on every step without re-parsing the function table.
func New(spec Spec) (*Hook, error) {
	fcn, err := spec.Funcs.Get(spec.FuncName)
	if err != nil {
		return nil, err
	}
	return &Hook{spec: spec, fcn: fcn}, nil
}

// Apply adds this step's heating/cooling rate to every non-point-mass
// particle's DEne, leaving Acc and every other field untouched (§4.8:
// "optional heating/cooling hook (additive to u̇ only)"). It takes no
// Config: the hook only ever reads sim.T and its own resolved Spec,
// so threading the full Config through would be an unused parameter.
func (h *Hook) Apply(sim *particle.Simulation) {
	rate := h.fcn.F(sim.T, nil)
	if rate == 0 {
		return
	}
	origin := vecd.New(h.spec.Origin[0], h.spec.Origin[1], h.spec.Origin[2])
	n := len(sim.Particles)
	parloop.Range(n, func(lo, hi int) {
		for i := lo; i < hi; i++ {
			p := &sim.Particles[i]
			if p.IsPointMass {
				continue
			}
			weight := 1.0
			if h.spec.PointSrc {
				d := sim.Periodic.Displacement(p.Pos, origin)
				r := d.Norm(sim.Dim)
				if r < p.Sml {
					r = p.Sml
				}
				weight = 1 / (4 * math.Pi * r * r)
			}
			p.DEne += rate * weight
		}
	})
}
