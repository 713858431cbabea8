// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package panel

import (
	"cogentcore.org/xyzpanel/frame"
	"cogentcore.org/xyzpanel/options"
	"cogentcore.org/xyzpanel/xyz"
)

// ShapeSegments is the number of segments of the round marker meshes.
const ShapeSegments = 32

// MarkerMesh returns the mesh for the given shape: a cube of side
// scale, a cone of base radius scale/2 and height scale, and otherwise
// a sphere of radius scale/2.
func MarkerMesh(shape options.Shape) xyz.Mesh {
	switch shape.Type {
	case options.Cube:
		return xyz.NewBox("marker-cube", shape.Scale, shape.Scale, shape.Scale)
	case options.Cone:
		return xyz.NewCone("marker-cone", shape.Scale/2, shape.Scale, ShapeSegments)
	default:
		return xyz.NewSphere("marker-sphere", shape.Scale/2, ShapeSegments)
	}
}

// ReconcileShape replaces the marker with one built for the given
// shape configuration. The previous marker is removed and its mesh and
// material are disposed. The new marker keeps the position of the
// previous one.
func (st *State) ReconcileShape(shape options.Shape) {
	if st.closed {
		return
	}
	prev := st.marker
	if prev != nil {
		st.tags.remove(st.Scene, Marker)
		st.marker = nil
	}
	if shape.Type == options.Custom {
		st.logger.Debug("custom models are not supported, using a sphere")
	}
	sld := xyz.NewSolid("marker", MarkerMesh(shape), xyz.NewMaterial(shape.Color))
	if prev != nil {
		sld.Pose.Pos = prev.Pose.Pos
	}
	st.add(sld, Marker)
	st.marker = sld
	st.logger.Debug("reconciled shape", "type", shape.Type, "scale", shape.Scale, "color", shape.Color)
}

// UpdatePosition moves the marker to the last of the given samples.
// It does nothing if there are no samples or no marker yet.
func (st *State) UpdatePosition(samples []frame.Sample) {
	last, ok := frame.Latest(samples)
	if !ok || st.marker == nil {
		return
	}
	st.marker.Pose.SetPos(last.X, last.Y, last.Z)
}
