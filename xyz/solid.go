// Copyright (c) 2019, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package xyz

import (
	"image/color"
)

// Solid represents an individual 3D solid element.
// It has its own unique spatial transforms and material properties,
// and points to a mesh structure defining the shape of the solid.
// The solid owns its mesh and material.
type Solid struct {
	NodeBase

	// Mesh is the shape of the solid.
	Mesh Mesh

	// Material contains the material properties of the surface.
	Material *Material
}

// NewSolid returns a new solid with the given name, mesh and material.
func NewSolid(name string, ms Mesh, mt *Material) *Solid {
	sld := &Solid{Mesh: ms, Material: mt}
	sld.Name = name
	sld.Defaults()
	return sld
}

// Defaults sets default initial settings for solid params.
func (sld *Solid) Defaults() {
	sld.Pose.Defaults()
	if sld.Material == nil {
		sld.Material = NewMaterial(color.RGBA{128, 128, 128, 255})
	}
}

// SetColor sets the [Material.Color].
func (sld *Solid) SetColor(v color.RGBA) *Solid {
	sld.Material.Color = v
	return sld
}

// SetPos sets the [Pose.Pos] position of the solid.
func (sld *Solid) SetPos(x, y, z float64) *Solid {
	sld.Pose.SetPos(x, y, z)
	return sld
}

// Dispose releases the mesh and material of the solid.
func (sld *Solid) Dispose() {
	if sld.Mesh != nil {
		sld.Mesh.AsMeshBase().Dispose()
	}
	sld.Material.Dispose()
	sld.NodeBase.Dispose()
}

func (sld *Solid) IsVisible() bool {
	if sld.Mesh == nil || sld.Mesh.AsMeshBase().IsDisposed() {
		return false
	}
	return sld.NodeBase.IsVisible()
}
