// Copyright (c) 2019, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package xyz

import (
	"image/color"

	"gonum.org/v1/gonum/spatial/r3"
)

// Light represents a light that illuminates a scene.
// These are stored on the [Scene] object and not within the node list.
type Light interface {

	// AsLightBase returns the [LightBase] for this Light,
	// which provides the core functionality of a light.
	AsLightBase() *LightBase
}

// LightBase provides the core implementation of the [Light] interface.
type LightBase struct {

	// Name is the name of the light, which matters since lights are accessed by name.
	Name string

	// On is whether the light is turned on.
	On bool

	// Lumens is the brightness/intensity/strength of the light in normalized 0-1 units.
	// It is just multiplied by the color, and is convenient for easily modulating overall brightness.
	Lumens float64

	// Color is the color of the light at full intensity.
	Color color.RGBA
}

func (lb *LightBase) AsLightBase() *LightBase {
	return lb
}

// intensity returns the light color times lumens, per channel in 0-1 units.
func (lb *LightBase) intensity() r3.Vec {
	return r3.Vec{
		X: float64(lb.Color.R) / 255 * lb.Lumens,
		Y: float64(lb.Color.G) / 255 * lb.Lumens,
		Z: float64(lb.Color.B) / 255 * lb.Lumens,
	}
}

// AmbientLight provides diffuse uniform lighting; typically only one of these in a [Scene].
type AmbientLight struct {
	LightBase
}

// NewAmbientLight adds an ambient light to the given scene, with the given name,
// color, and lumens (0-1 normalized).
func NewAmbientLight(sc *Scene, name string, lumens float64, clr color.RGBA) *AmbientLight {
	lt := &AmbientLight{}
	lt.Name = name
	lt.On = true
	lt.Color = clr
	lt.Lumens = lumens
	sc.AddLight(lt)
	return lt
}

// PointLight is an omnidirectional light with a position.
type PointLight struct {
	LightBase

	// Pos is the position of the light in world coordinates.
	Pos r3.Vec
}

// NewPointLight adds a point light to the given scene, with the given name,
// color, and lumens (0-1 normalized).
// By default it is located at 0,5,5; set Pos to change.
func NewPointLight(sc *Scene, name string, lumens float64, clr color.RGBA) *PointLight {
	lt := &PointLight{}
	lt.Name = name
	lt.On = true
	lt.Color = clr
	lt.Lumens = lumens
	lt.Pos = r3.Vec{Y: 5, Z: 5}
	sc.AddLight(lt)
	return lt
}

// shade returns the lit color of a surface with the given base color,
// center point and unit normal, under all the lights of the scene.
func (sc *Scene) shade(base color.RGBA, pt, norm r3.Vec) color.RGBA {
	var lit r3.Vec
	for _, kv := range sc.Lights.Order {
		lb := kv.Value.AsLightBase()
		if !lb.On {
			continue
		}
		switch lt := kv.Value.(type) {
		case *AmbientLight:
			lit = r3.Add(lit, lt.intensity())
		case *PointLight:
			dir := r3.Sub(lt.Pos, pt)
			if r3.Norm2(dir) == 0 {
				continue
			}
			if d := r3.Dot(norm, r3.Unit(dir)); d > 0 {
				lit = r3.Add(lit, r3.Scale(d, lt.intensity()))
			}
		}
	}
	ch := func(c uint8, f float64) uint8 {
		return uint8(min(255, float64(c)*min(f, 1)+0.5))
	}
	return color.RGBA{ch(base.R, lit.X), ch(base.G, lit.Y), ch(base.B, lit.Z), base.A}
}
