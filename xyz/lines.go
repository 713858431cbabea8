// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package xyz

import (
	"image/color"

	"gonum.org/v1/gonum/spatial/r3"
)

// Segment is a straight line between two points.
type Segment struct {
	A, B r3.Vec
}

// LineSegments is a node that draws a set of independent line segments.
type LineSegments struct {
	NodeBase

	// Segments are the segments in local coordinates.
	Segments []Segment

	// Colors are optional per-segment colors; segments without one
	// use Material.Color.
	Colors []color.RGBA

	// Material gives the default line color.
	Material *Material

	// Width is the line width in pixels.
	Width float64
}

// NewLineSegments returns a new line segments node with the given
// name, segments and color.
func NewLineSegments(name string, segs []Segment, clr color.RGBA) *LineSegments {
	ls := &LineSegments{Segments: segs, Material: NewMaterial(clr), Width: 1}
	ls.Name = name
	ls.Pose.Defaults()
	return ls
}

// AsLineSegments returns the line segments node itself; it lets
// nodes that embed LineSegments be rendered as lines.
func (ls *LineSegments) AsLineSegments() *LineSegments {
	return ls
}

// SegmentColor returns the color of segment i.
func (ls *LineSegments) SegmentColor(i int) color.RGBA {
	if i < len(ls.Colors) {
		return ls.Colors[i]
	}
	return ls.Material.Color
}

// Dispose releases the segment data and material.
func (ls *LineSegments) Dispose() {
	ls.Segments = nil
	ls.Colors = nil
	ls.Material.Dispose()
	ls.NodeBase.Dispose()
}

// Axis colors of an [AxesHelper].
var (
	AxisXColor = color.RGBA{255, 0, 0, 255}
	AxisYColor = color.RGBA{0, 255, 0, 255}
	AxisZColor = color.RGBA{0, 0, 255, 255}
)

// AxesHelper draws the three positive axes from the origin,
// X in red, Y in green and Z in blue.
type AxesHelper struct {
	LineSegments

	// Size is the length of each axis line.
	Size float64
}

// NewAxesHelper returns a new axes helper with the given axis length.
func NewAxesHelper(name string, size float64) *AxesHelper {
	ah := &AxesHelper{Size: size}
	ah.Name = name
	ah.Pose.Defaults()
	ah.Material = NewMaterial(AxisXColor)
	ah.Width = 2
	ah.Segments = []Segment{
		{B: r3.Vec{X: size}},
		{B: r3.Vec{Y: size}},
		{B: r3.Vec{Z: size}},
	}
	ah.Colors = []color.RGBA{AxisXColor, AxisYColor, AxisZColor}
	return ah
}
