// Copyright 2026 The GoSPH Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package solver

import "github.com/cpmech/gosl/io"

// Kind tags one of the error classes of §7. Only the classes the spec
// says "escape step boundaries" (ConfigError, DimensionMismatch,
// Fatal) are ever returned as an error, by New (ConfigError,
// DimensionMismatch) or by RunStep/Run (Fatal); everything else
// (SmoothingLengthNonConvergence, NeighborListOverflow, NumericalFloor)
// is recovered locally by the module that detects it (io.Pfyel
// warnings in variant, the EneFloored flag here) and never surfaces
// here, per the propagation policy.
type Kind int

const (
	// ConfigError: unknown variant, missing keys, inconsistent config.
	ConfigError Kind = iota
	// DimensionMismatch: compile-time D differs from the IC/config D.
	DimensionMismatch
	// Fatal: NaN/inf detected in a conserved field.
	Fatal
)

func (k Kind) String() string {
	switch k {
	case ConfigError:
		return "ConfigError"
	case DimensionMismatch:
		return "DimensionMismatch"
	case Fatal:
		return "Fatal"
	default:
		return "Unknown"
	}
}

// Error is the propagation-worthy error type of §7: everything
// recoverable is handled where it is detected, so by the time an error
// reaches the driver it is always one of the three fatal-to-the-run
// classes above.
type Error struct {
	Kind Kind
	Msg  string
}

func (e *Error) Error() string { return io.Sf("%s: %s", e.Kind, e.Msg) }

// newError builds an *Error with a formatted message.
func newError(kind Kind, format string, args ...interface{}) *Error {
	return &Error{Kind: kind, Msg: io.Sf(format, args...)}
}
