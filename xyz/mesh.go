// Copyright (c) 2019, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package xyz

import (
	"gonum.org/v1/gonum/spatial/r3"
)

// Mesh parametrizes the shape used for rendering a [Solid].
// Only indexed triangle meshes are supported; every three entries
// of Index are one triangle, wound counter-clockwise when seen from
// outside the solid.
type Mesh interface {

	// AsMeshBase returns the [MeshBase] for this Mesh,
	// which provides the core functionality of a mesh.
	AsMeshBase() *MeshBase
}

// MeshBase provides the core implementation of the [Mesh] interface.
type MeshBase struct {

	// Name is the name of the mesh.
	Name string

	// Vertex are the vertex positions in local coordinates.
	Vertex []r3.Vec

	// Index are the triangle vertex indexes.
	Index []int

	// BBox is the bounding box of the vertexes.
	BBox r3.Box

	disposed bool
}

func (ms *MeshBase) AsMeshBase() *MeshBase {
	return ms
}

// NumTriangles returns the number of triangles in the mesh.
func (ms *MeshBase) NumTriangles() int {
	return len(ms.Index) / 3
}

// Dispose releases the vertex data. The mesh must not be used after.
func (ms *MeshBase) Dispose() {
	ms.Vertex = nil
	ms.Index = nil
	ms.disposed = true
}

// IsDisposed returns whether Dispose has been called.
func (ms *MeshBase) IsDisposed() bool {
	return ms.disposed
}

// addTri adds a triangle, oriented so that its normal points away from
// the local origin. All the built-in meshes are convex around the origin.
func (ms *MeshBase) addTri(a, b, c int) {
	va, vb, vc := ms.Vertex[a], ms.Vertex[b], ms.Vertex[c]
	n := r3.Cross(r3.Sub(vb, va), r3.Sub(vc, va))
	ctr := r3.Scale(1.0/3, r3.Add(va, r3.Add(vb, vc)))
	if r3.Dot(n, ctr) < 0 {
		b, c = c, b
	}
	ms.Index = append(ms.Index, a, b, c)
}

// updateBBox recomputes the bounding box from the vertexes.
func (ms *MeshBase) updateBBox() {
	if len(ms.Vertex) == 0 {
		ms.BBox = r3.Box{}
		return
	}
	bb := r3.Box{Min: ms.Vertex[0], Max: ms.Vertex[0]}
	for _, v := range ms.Vertex[1:] {
		bb.Min = r3.Vec{X: min(bb.Min.X, v.X), Y: min(bb.Min.Y, v.Y), Z: min(bb.Min.Z, v.Z)}
		bb.Max = r3.Vec{X: max(bb.Max.X, v.X), Y: max(bb.Max.Y, v.Y), Z: max(bb.Max.Z, v.Z)}
	}
	ms.BBox = bb
}
