// Copyright (c) 2019, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package xyz

import (
	"math"

	"gonum.org/v1/gonum/spatial/r3"
)

// Node is the interface for all nodes in a [Scene].
// Nodes own the resources (meshes, materials, textures) they reference,
// and release them in Dispose.
type Node interface {

	// AsNodeBase returns the [NodeBase] for this Node.
	AsNodeBase() *NodeBase

	// Dispose releases the resources owned by the node.
	// The node must not be rendered after Dispose.
	Dispose()

	// IsDisposed returns whether Dispose has been called.
	IsDisposed() bool
}

// NodeBase provides the core implementation of the [Node] interface.
type NodeBase struct {

	// Name is the name of the node, used for logging and debugging.
	Name string

	// Pose is the position and scale of the node in world coordinates.
	Pose Pose

	// Invisible hides the node from rendering.
	Invisible bool

	disposed bool
}

func (nb *NodeBase) AsNodeBase() *NodeBase {
	return nb
}

func (nb *NodeBase) Dispose() {
	nb.disposed = true
}

func (nb *NodeBase) IsDisposed() bool {
	return nb.disposed
}

// IsVisible returns whether the node should be rendered.
func (nb *NodeBase) IsVisible() bool {
	return !nb.Invisible && !nb.disposed && nb.Pose.IsFinite()
}

// Pose is the position and scale of a node.
type Pose struct {

	// Pos is the position in world coordinates.
	Pos r3.Vec

	// Scale is the scale applied to the local coordinates; the zero
	// value is treated as unit scale.
	Scale r3.Vec
}

// Defaults sets unit scale if scale has not been set.
func (ps *Pose) Defaults() {
	if ps.Scale == (r3.Vec{}) {
		ps.Scale = r3.Vec{X: 1, Y: 1, Z: 1}
	}
}

// SetPos sets the position.
func (ps *Pose) SetPos(x, y, z float64) {
	ps.Pos = r3.Vec{X: x, Y: y, Z: z}
}

// Transform transforms the given local point into world coordinates.
func (ps *Pose) Transform(v r3.Vec) r3.Vec {
	sc := ps.Scale
	if sc == (r3.Vec{}) {
		sc = r3.Vec{X: 1, Y: 1, Z: 1}
	}
	return r3.Add(ps.Pos, r3.Vec{X: v.X * sc.X, Y: v.Y * sc.Y, Z: v.Z * sc.Z})
}

// IsFinite returns whether the position is a finite point.
func (ps *Pose) IsFinite() bool {
	return isFinite(ps.Pos)
}

func isFinite(v r3.Vec) bool {
	for _, f := range [3]float64{v.X, v.Y, v.Z} {
		if math.IsNaN(f) || math.IsInf(f, 0) {
			return false
		}
	}
	return true
}
