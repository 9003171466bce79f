// Copyright 2026 The GoSPH Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package ic

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/cpmech/gosph/config"
)

const sample = `[
  {"id":0,"pos":[0,0,0],"vel":[0,0,0],"mass":1.0,"dens":1.0,"pres":1.0,"ene":2.5},
  {"id":1,"pos":[0.1,0,0],"vel":[0,0,0],"mass":1.0,"dens":1.0,"pres":1.0,"ene":2.5,"sml":0.25}
]`

func writeSample(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "ic.json")
	if err := os.WriteFile(path, []byte(sample), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadFillsMissingSmoothingLength(t *testing.T) {
	path := writeSample(t)
	cfg := config.Default()
	cfg.Dim = 3
	cfg.NeighborNumber = 32

	sim, err := Load(path, cfg)
	if err != nil {
		t.Fatal(err)
	}
	if len(sim.Particles) != 2 {
		t.Fatalf("expected 2 particles, got %d", len(sim.Particles))
	}
	if sim.Particles[0].Sml <= 0 {
		t.Fatalf("expected particle 0 to get a derived sml, got %g", sim.Particles[0].Sml)
	}
	if sim.Particles[1].Sml != 0.25 {
		t.Fatalf("expected particle 1's explicit sml to survive, got %g", sim.Particles[1].Sml)
	}
}

func TestLoadDefaultsAlphaToAlphaMax(t *testing.T) {
	path := writeSample(t)
	cfg := config.Default()
	cfg.AlphaMax = 1.5

	sim, err := Load(path, cfg)
	if err != nil {
		t.Fatal(err)
	}
	for _, p := range sim.Particles {
		if p.Alpha != 1.5 {
			t.Fatalf("expected alpha=%g, got %g", cfg.AlphaMax, p.Alpha)
		}
	}
}

func TestLoadRejectsEmptyFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "empty.json")
	if err := os.WriteFile(path, []byte("[]"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path, config.Default()); err == nil {
		t.Fatal("expected an error for an empty IC file")
	}
}
