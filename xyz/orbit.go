// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package xyz

import (
	"math"

	"gonum.org/v1/gonum/spatial/r3"
)

// OrbitControls moves a [Camera] around its target: orbiting on a sphere
// centered at the target, panning the target in the view plane, and
// zooming toward or away from the target.
// Pixel deltas are those of pointer drags on a view of the given height.
type OrbitControls struct {

	// Camera is the controlled camera.
	Camera *Camera

	// RotateSpeed is the orbit angle in radians per pixel of drag.
	RotateSpeed float64

	// MinDistance and MaxDistance bound the distance to the target.
	MinDistance, MaxDistance float64

	// saved is the camera state restored by Reset.
	saved Camera
}

// minPolar keeps the camera from crossing the poles, where the up
// direction would flip.
const minPolar = 1e-6

// NewOrbitControls returns new controls for the given camera, saving its
// current state for [OrbitControls.Reset].
func NewOrbitControls(cam *Camera) *OrbitControls {
	oc := &OrbitControls{
		Camera:      cam,
		RotateSpeed: 2 * math.Pi / 800,
		MinDistance: 0.1,
		MaxDistance: math.Inf(1),
	}
	oc.Save()
	return oc
}

// Save saves the current camera state as the one restored by Reset.
func (oc *OrbitControls) Save() {
	oc.saved = *oc.Camera
}

// Reset restores the saved camera state.
func (oc *OrbitControls) Reset() {
	*oc.Camera = oc.saved
}

// spherical returns the camera offset from the target as radius,
// polar angle from +Y and azimuth around Y.
func (oc *OrbitControls) spherical() (radius, polar, azimuth float64) {
	off := r3.Sub(oc.Camera.Pos, oc.Camera.Target)
	radius = r3.Norm(off)
	if radius == 0 {
		return 0, math.Pi / 2, 0
	}
	polar = math.Acos(max(-1, min(1, off.Y/radius)))
	azimuth = math.Atan2(off.X, off.Z)
	return
}

func (oc *OrbitControls) setSpherical(radius, polar, azimuth float64) {
	radius = max(oc.MinDistance, min(radius, oc.MaxDistance))
	polar = max(minPolar, min(polar, math.Pi-minPolar))
	sp := math.Sin(polar)
	off := r3.Vec{
		X: radius * sp * math.Sin(azimuth),
		Y: radius * math.Cos(polar),
		Z: radius * sp * math.Cos(azimuth),
	}
	oc.Camera.Pos = r3.Add(oc.Camera.Target, off)
}

// Orbit rotates the camera around the target by the given pixel drag:
// dx rotates around the vertical axis, dy changes the elevation.
func (oc *OrbitControls) Orbit(dx, dy float64) {
	r, polar, az := oc.spherical()
	oc.setSpherical(r, polar-dy*oc.RotateSpeed, az-dx*oc.RotateSpeed)
}

// Pan moves the camera and its target together in the view plane by
// the given pixel drag, on a view of the given height in pixels, so that
// the point under the pointer follows it.
func (oc *OrbitControls) Pan(dx, dy float64, height int) {
	if height <= 0 {
		return
	}
	cm := oc.Camera
	v := cm.view(1, height)
	dist := cm.DistanceTo(cm.Target)
	perPixel := 2 * dist * v.tanHalf / float64(height)
	move := r3.Add(r3.Scale(-dx*perPixel, v.right), r3.Scale(dy*perPixel, v.up))
	cm.Pos = r3.Add(cm.Pos, move)
	cm.Target = r3.Add(cm.Target, move)
}

// Zoom multiplies the distance to the target by the given factor:
// factors below 1 move closer.
func (oc *OrbitControls) Zoom(factor float64) {
	if factor <= 0 || math.IsNaN(factor) {
		return
	}
	r, polar, az := oc.spherical()
	oc.setSpherical(r*factor, polar, az)
}
