// Copyright 2026 The GoSPH Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package heating

import (
	"testing"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/fun/dbf"

	"github.com/cpmech/gosph/kernel"
	"github.com/cpmech/gosph/particle"
	"github.com/cpmech/gosph/vecd"
)

func simWithTwoParticles(t *testing.T) *particle.Simulation {
	t.Helper()
	k, err := kernel.New("CubicSpline", 3)
	if err != nil {
		t.Fatal(err)
	}
	per, err := vecd.NewPeriodic(3, []vecd.AxisRange{{}, {}, {}})
	if err != nil {
		t.Fatal(err)
	}
	sim, err := particle.NewSimulation(3, k, per)
	if err != nil {
		t.Fatal(err)
	}
	sim.Particles = []particle.Particle{
		{Pos: vecd.New(1, 0, 0), Sml: 0.1},
		{Pos: vecd.New(2, 0, 0), Sml: 0.1, IsPointMass: true},
	}
	return sim
}

func TestUniformHeatingAddsConstantRate(t *testing.T) {
	sim := simWithTwoParticles(t)
	spec := Spec{
		FuncName: "q",
		Funcs: FuncsData{
			{Name: "q", Type: "cte", Prms: dbf.Params{{N: "c", V: 2.0}}},
		},
	}
	h, err := New(spec)
	if err != nil {
		t.Fatal(err)
	}
	h.Apply(sim)
	chk.Scalar(t, "dene[0]", 1e-12, sim.Particles[0].DEne, 2.0)
}

func TestHeatingSkipsPointMasses(t *testing.T) {
	sim := simWithTwoParticles(t)
	spec := Spec{
		FuncName: "q",
		Funcs: FuncsData{
			{Name: "q", Type: "cte", Prms: dbf.Params{{N: "c", V: 2.0}}},
		},
	}
	h, err := New(spec)
	if err != nil {
		t.Fatal(err)
	}
	h.Apply(sim)
	chk.Scalar(t, "dene[1]", 1e-12, sim.Particles[1].DEne, 0)
}

func TestZeroFuncNameIsNoOp(t *testing.T) {
	sim := simWithTwoParticles(t)
	h, err := New(Spec{FuncName: "zero"})
	if err != nil {
		t.Fatal(err)
	}
	h.Apply(sim)
	chk.Scalar(t, "dene[0]", 1e-12, sim.Particles[0].DEne, 0)
}
