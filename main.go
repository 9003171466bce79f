// Copyright 2026 The GoSPH Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"flag"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"

	"github.com/cpmech/gosph/config"
	"github.com/cpmech/gosph/heating"
	"github.com/cpmech/gosph/ic"
	"github.com/cpmech/gosph/particle"
	"github.com/cpmech/gosph/snapshot"
	"github.com/cpmech/gosph/solver"
)

func main() {

	// catch errors the way the teacher's own main does: a recover at
	// the top that prints the caller chain and aborts non-zero.
	defer func() {
		if err := recover(); err != nil {
			chk.Verbose = true
			for i := 8; i > 3; i-- {
				chk.CallerInfo(i)
			}
			io.PfRed("ERROR: %v\n", err)
		}
	}()

	// flags: config file, initial-conditions file, output directory,
	// checkpoint-on-fatal path. A restart (-restart) loads a
	// checkpoint's particle array in place of -ic; -cfg is still
	// required, and the checkpoint's config then replaces the loaded one.
	cfgPath := flag.String("cfg", "", "configuration file (.json or .toml)")
	icPath := flag.String("ic", "", "initial-conditions file (.json)")
	restartPath := flag.String("restart", "", "resume from a checkpoint instead of -ic")
	outDir := flag.String("out", "out", "snapshot output directory")
	checkpointPath := flag.String("checkpoint", "", "path to dump a checkpoint on a Fatal error")
	flag.Parse()

	if *cfgPath == "" {
		chk.Panic("Please provide a configuration file with -cfg\n")
	}

	var cfg config.Config
	var err error
	if io.FnExt(*cfgPath) == ".toml" {
		cfg, err = config.LoadTOML(*cfgPath)
	} else {
		cfg, err = config.Load(*cfgPath)
	}
	if err != nil {
		chk.Panic("%v", err)
	}

	var drv *solver.Driver
	if *restartPath != "" {
		cp, err := snapshot.LoadCheckpoint(*restartPath)
		if err != nil {
			chk.Panic("%v", err)
		}
		cfg = cp.Config
		sim, err := ic.FromCheckpoint(cp, cfg)
		if err != nil {
			chk.Panic("%v", err)
		}
		drv, err = solver.New(sim, cfg)
		if err != nil {
			chk.Panic("%v", err)
		}
		drv.StepCount = cp.Step
	} else {
		if *icPath == "" {
			chk.Panic("Please provide an initial-conditions file with -ic (or -restart)\n")
		}
		sim, err := ic.Load(*icPath, cfg)
		if err != nil {
			chk.Panic("%v", err)
		}
		drv, err = solver.New(sim, cfg)
		if err != nil {
			chk.Panic("%v", err)
		}
	}
	drv.CheckpointPath = *checkpointPath

	// §4.8 step 6: wire the optional heating/cooling hook if the
	// config names a source function; FuncName=="" leaves it disabled.
	if cfg.Heating.FuncName != "" {
		hook, herr := heating.New(cfg.Heating)
		if herr != nil {
			chk.Panic("%v", herr)
		}
		drv.Heating = hook
	}

	io.PfWhite("\nGoSPH -- particle-based SPH/gravity solver\n\n")
	io.Pf("  variant         = %s\n", cfg.SPHType)
	io.Pf("  kernel          = %s\n", cfg.Kernel)
	io.Pf("  dim             = %d\n", cfg.Dim)
	io.Pf("  endTime         = %g\n", cfg.EndTime)
	io.Pf("  outputInterval  = %g\n\n", cfg.OutputInterval)

	snapIdx := 0
	err = drv.Run(func(sim *particle.Simulation, step int) {
		fname := io.Sf("snap_%06d.csv", snapIdx)
		if werr := snapshot.WriteCSV(drv.Sim, drv.Config, *outDir, fname); werr != nil {
			io.Pfred("snapshot write failed: %v\n", werr)
		}
		stats := snapshot.Summarize(snapshot.Build(sim, drv.Config))
		io.Pf("t=%-12g step=%-8d -> %s/%s  (neighbor mean=%.1f min=%d max=%d)\n",
			sim.T, step, *outDir, fname, stats.Mean, stats.Min, stats.Max)
		snapIdx++
	})
	if err != nil {
		chk.Panic("%v", err)
	}
	io.Pfgreen("\nDone: t=%g after %d steps\n", drv.Sim.T, drv.StepCount)
}
