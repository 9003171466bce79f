// Copyright 2026 The GoSPH Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package config

import "github.com/cpmech/gosph/vecd"

// BuildPeriodic constructs the vecd.Periodic descriptor this
// configuration implies. When Periodic is false every axis is
// disabled regardless of the Axes slice's contents.
func (c Config) BuildPeriodic() (vecd.Periodic, error) {
	axes := make([]vecd.AxisRange, c.Dim)
	if c.Periodic {
		copy(axes, c.Axes)
	}
	return vecd.NewPeriodic(c.Dim, axes)
}
