// Copyright (c) 2019, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package xyz

import (
	"image"
	"image/color"
)

// Material describes the material properties of a surface:
// its color and an optional texture.
// Main color is used for both ambient and diffuse color, and alpha component
// is used for opacity.
type Material struct {

	// Color is the main color of the surface.
	Color color.RGBA

	// Texture, if set, provides the color for the surface instead of Color.
	// The material owns the texture and disposes it with itself.
	Texture *Texture

	disposed bool
}

// NewMaterial returns a new material with the given color.
func NewMaterial(c color.RGBA) *Material {
	return &Material{Color: c}
}

// Dispose releases the material and its texture.
func (mt *Material) Dispose() {
	if mt == nil {
		return
	}
	if mt.Texture != nil {
		mt.Texture.Dispose()
	}
	mt.disposed = true
}

// IsDisposed returns whether Dispose has been called.
func (mt *Material) IsDisposed() bool {
	return mt.disposed
}

// IsTransparent returns true if the material has transparency.
func (mt *Material) IsTransparent() bool {
	if mt.Texture != nil {
		return true
	}
	return mt.Color.A < 255
}

// Texture is an image used to color a surface.
type Texture struct {

	// Name is the name of the texture.
	Name string

	// RGBA is the texture image.
	RGBA *image.RGBA

	disposed bool
}

// NewTexture returns a new texture with the given name and image.
func NewTexture(name string, img *image.RGBA) *Texture {
	return &Texture{Name: name, RGBA: img}
}

// Image returns the texture image, nil after Dispose.
func (tx *Texture) Image() *image.RGBA {
	return tx.RGBA
}

// Dispose releases the texture image.
func (tx *Texture) Dispose() {
	tx.RGBA = nil
	tx.disposed = true
}

// IsDisposed returns whether Dispose has been called.
func (tx *Texture) IsDisposed() bool {
	return tx.disposed
}
