// Copyright 2026 The GoSPH Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package config

import (
	"testing"

	"github.com/cpmech/gosph/vecd"
)

func TestValidateRejectsUnknownVariant(t *testing.T) {
	c := Default()
	c.SPHType = "BOGUS"
	if err := c.Validate(); err == nil {
		t.Fatal("expected ConfigError for unknown SPHType")
	}
}

func TestValidateRejectsBadPeriodicAxisCount(t *testing.T) {
	c := Default()
	c.Dim = 2
	c.Periodic = true
	c.Axes = []vecd.AxisRange{{On: true, Min: 0, Max: 1}} // only 1 of 2 axes
	if err := c.Validate(); err == nil {
		t.Fatal("expected ConfigError for mismatched periodic axis count")
	}
}

func TestDefaultIsValid(t *testing.T) {
	c := Default()
	if err := c.Validate(); err != nil {
		t.Fatalf("Default() should validate cleanly: %v", err)
	}
}

func TestEffDimAnisotropic(t *testing.T) {
	c := Default()
	c.Dim = 3
	c.TwoAndHalfSim = true
	if c.EffDim() != 2 {
		t.Fatalf("expected EffDim=2 in 2.5-D mode, got %d", c.EffDim())
	}
}
