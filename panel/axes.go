// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package panel

import (
	"image/color"

	"cogentcore.org/xyzpanel/options"
	"cogentcore.org/xyzpanel/xyz"
	"gonum.org/v1/gonum/spatial/r3"
)

var (
	// GridColor is the color of the grid lines.
	GridColor = color.RGBA{0x88, 0x88, 0x88, 0xff}

	// LabelOffset is the distance of each axis label beyond its axis extent.
	LabelOffset = 0.5
)

// GridLines returns the unit grid in the y=0 plane for the given axis
// configuration: lines of constant x spanning the z range, then lines
// of constant z spanning the x range, at every integer step from the
// start of each range to its end, inclusive. The ranges start at the
// negated extent if negative axes are shown, and at 0 otherwise.
func GridLines(axis options.Axis) []xyz.Segment {
	startX, endX := 0.0, axis.MaxX
	startZ, endZ := 0.0, axis.MaxZ
	if axis.ShowNegativeAxes {
		startX, startZ = -axis.MaxX, -axis.MaxZ
	}
	var segs []xyz.Segment
	for x := startX; x <= endX; x++ {
		segs = append(segs, xyz.Segment{A: r3.Vec{X: x, Z: startZ}, B: r3.Vec{X: x, Z: endZ}})
	}
	for z := startZ; z <= endZ; z++ {
		segs = append(segs, xyz.Segment{A: r3.Vec{X: startX, Z: z}, B: r3.Vec{X: endX, Z: z}})
	}
	return segs
}

// AxesLength returns the length of the axes indicator, which is the
// largest extent, and at least 1.
func AxesLength(axis options.Axis) float64 {
	return max(axis.MaxX, axis.MaxY, axis.MaxZ, 1)
}

// ReconcileAxes replaces the grid, axes and labels with ones built for
// the given axis configuration. Any previous grid, axes and label nodes
// are removed and disposed, however many there are.
func (st *State) ReconcileAxes(axis options.Axis) {
	if st.closed {
		return
	}
	removed := st.tags.remove(st.Scene, Grid, Axes, Label)

	grid := xyz.NewLineSegments("grid", GridLines(axis), GridColor)
	st.add(grid, Grid)

	st.add(xyz.NewAxesHelper("axes", AxesLength(axis)), Axes)

	for _, l := range []struct {
		text string
		pos  r3.Vec
	}{
		{"X", r3.Vec{X: axis.MaxX + LabelOffset}},
		{"Y", r3.Vec{Y: axis.MaxY + LabelOffset}},
		{"Z", r3.Vec{Z: axis.MaxZ + LabelOffset}},
	} {
		lbl := xyz.NewText2D("label-"+l.text, l.text)
		lbl.Pose.Pos = l.pos
		st.add(lbl, Label)
	}
	st.logger.Debug("reconciled axes", "removed", removed, "gridLines", len(grid.Segments),
		"maxX", axis.MaxX, "maxY", axis.MaxY, "maxZ", axis.MaxZ, "negative", axis.ShowNegativeAxes)
}
