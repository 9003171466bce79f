// Copyright 2026 The GoSPH Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package particle implements the per-particle state and the shared
// simulation-wide state threaded through every module of a step.
package particle

import (
	"github.com/cpmech/gosph/vecd"
)

// ShockMode enumerates the discrete shock-sensor state of a particle.
// It is per-particle state only; none of the fluid-force variants
// reads it.
type ShockMode int

const (
	// NoShock indicates the particle is not currently part of a
	// detected shock region.
	NoShock ShockMode = iota
	// InShock indicates the particle is inside a detected shock region.
	InShock
	// Transitioning indicates the particle is leaving a shock region
	// but is still blended to avoid a discontinuous switch.
	Transitioning
)

// Particle is the per-particle state (arrays-of-structs layout: a
// Simulation holds a []Particle, not a struct-of-arrays, matching the
// "value-type" requirement and keeping the hot loops cache-friendly
// without extra indirection).
type Particle struct {
	// kinematics
	Pos   vecd.Vec // position
	Vel   vecd.Vec // velocity
	VelP  vecd.Vec // predicted velocity (mid-step)
	Acc   vecd.Vec // acceleration

	// thermodynamic state
	Mass float64 // mass (immutable after init)
	Dens float64 // density
	Pres float64 // pressure
	Ene  float64 // specific internal energy
	EneP float64 // predicted specific internal energy
	DEne float64 // du/dt

	// kernel/solver state
	Sml   float64 // smoothing length h
	SmlZ  float64 // anisotropic z-axis smoothing length (2.5-D mode only)
	Sound float64 // sound speed

	// DISPH/GDISPH volume-element state
	Volume float64 // V = m/rho
	Q      float64 // smoothed energy density, sum_j m_j u_j W_ij

	// corrections and switches
	GradH   float64 // grad-h correction f_i
	Balsara float64 // Balsara switch value
	Alpha   float64 // time-dependent artificial-viscosity coefficient

	// gravity
	Phi          float64 // gravitational potential
	IsPointMass  bool    // point masses only source external gravity
	PointMassFixed bool  // if true, a point mass is kinematically held (never integrated)

	// flags and diagnostics
	ID       int  // integer id
	Neighbor int  // neighbour count (diagnostic)
	IsWall   bool // excluded from certain relaxation forces

	ShockSensor            float64   // shock diagnostic scalar
	ShockMode              ShockMode // current shock state
	OldShockMode           ShockMode // shock state at the previous step
	SwitchToNoShockRegion  bool      // monitoring flag for shock-mode transition

	EneFloored bool // set when the energy floor was applied this step
}

// Body adapts a *Particle (plus its index within the owning array) to
// the narrow read-only accessor shape the Barnes-Hut tree needs. It is
// a thin wrapper rather than methods on Particle itself, since
// Particle's exported fields (Pos, Mass, Sml) already occupy those
// names; keeping the adapter separate also means bhtree never needs
// to import this package to consume it (structural typing).
type Body struct {
	p   *Particle
	idx int
}

// NewBody wraps particle p, recorded at index idx in its Simulation's array.
func NewBody(p *Particle, idx int) Body { return Body{p: p, idx: idx} }

// Coord returns the wrapped particle's position.
func (b Body) Coord() vecd.Vec { return b.p.Pos }

// Smoothing returns the wrapped particle's smoothing length, the
// larger of Sml and SmlZ when the anisotropic 2.5-D z-axis length is
// set: the tree's ball query needs a single conservative reach bound,
// and in 2.5-D mode a particle's true kernel support can extend
// further along z than along xy (or vice versa).
func (b Body) Smoothing() float64 {
	if b.p.SmlZ > b.p.Sml {
		return b.p.SmlZ
	}
	return b.p.Sml
}

// BodyMass returns the wrapped particle's mass.
func (b Body) BodyMass() float64 { return b.p.Mass }

// Index returns the wrapped particle's index in its owning array.
func (b Body) Index() int { return b.idx }
