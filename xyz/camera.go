// Copyright (c) 2019, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package xyz

import (
	"math"

	"gonum.org/v1/gonum/spatial/r3"
)

// Camera is a perspective camera looking from its position toward a
// target point.
type Camera struct {

	// Pos is the position of the camera in world coordinates.
	Pos r3.Vec

	// Target is the point the camera looks at.
	Target r3.Vec

	// Up is the up direction of the camera, typically +Y.
	Up r3.Vec

	// FOV is the vertical field of view in degrees.
	FOV float64

	// Aspect is the width / height ratio of the view.
	Aspect float64

	// Near and Far are the distances of the clipping planes.
	Near, Far float64
}

// Defaults sets default camera parameters.
func (cm *Camera) Defaults() {
	cm.Pos = r3.Vec{Z: 10}
	cm.Target = r3.Vec{}
	cm.Up = r3.Vec{Y: 1}
	cm.FOV = 30
	cm.Aspect = 1.5
	cm.Near = 0.1
	cm.Far = 1000
}

// NewCamera returns a new perspective camera with the given vertical field
// of view in degrees, aspect ratio and clipping distances.
func NewCamera(fov, aspect, near, far float64) *Camera {
	cm := &Camera{}
	cm.Defaults()
	cm.FOV = fov
	cm.Aspect = aspect
	cm.Near = near
	cm.Far = far
	return cm
}

// LookAt sets the camera target.
func (cm *Camera) LookAt(target r3.Vec) {
	cm.Target = target
}

// LookAtOrigin sets the camera target to the origin.
func (cm *Camera) LookAtOrigin() {
	cm.Target = r3.Vec{}
}

// SetAspect sets the aspect ratio from the given view size in pixels;
// non-positive sizes are ignored.
func (cm *Camera) SetAspect(width, height int) {
	if width <= 0 || height <= 0 {
		return
	}
	cm.Aspect = float64(width) / float64(height)
}

// DistanceTo returns the distance from the camera to the given point.
func (cm *Camera) DistanceTo(pt r3.Vec) float64 {
	return r3.Norm(r3.Sub(pt, cm.Pos))
}

// view is the camera basis for one frame.
type view struct {
	eye            r3.Vec
	right, up, fwd r3.Vec
	tanHalf        float64
	aspect         float64
	near, far      float64
	width, height  float64
}

// view returns the camera basis for a view of the given pixel size.
func (cm *Camera) view(width, height int) view {
	fwd := r3.Sub(cm.Target, cm.Pos)
	if r3.Norm2(fwd) == 0 {
		fwd = r3.Vec{Z: -1}
	}
	fwd = r3.Unit(fwd)
	up := cm.Up
	if r3.Norm2(up) == 0 {
		up = r3.Vec{Y: 1}
	}
	right := r3.Cross(fwd, up)
	if r3.Norm2(right) < 1e-12 {
		// looking straight along up: pick any perpendicular
		right = r3.Cross(fwd, r3.Vec{Z: 1})
	}
	right = r3.Unit(right)
	return view{
		eye:     cm.Pos,
		right:   right,
		up:      r3.Cross(right, fwd),
		fwd:     fwd,
		tanHalf: math.Tan(cm.FOV * math.Pi / 360),
		aspect:  cm.Aspect,
		near:    cm.Near,
		far:     cm.Far,
		width:   float64(width),
		height:  float64(height),
	}
}

// toCamera returns the point in camera coordinates: X right, Y up, Z depth.
func (v *view) toCamera(p r3.Vec) r3.Vec {
	d := r3.Sub(p, v.eye)
	return r3.Vec{X: r3.Dot(d, v.right), Y: r3.Dot(d, v.up), Z: r3.Dot(d, v.fwd)}
}

// toScreen projects a camera-space point with positive depth to pixel
// coordinates, with Y down.
func (v *view) toScreen(c r3.Vec) (x, y float64) {
	nx := c.X / (c.Z * v.tanHalf * v.aspect)
	ny := c.Y / (c.Z * v.tanHalf)
	return (nx + 1) / 2 * v.width, (1 - ny) / 2 * v.height
}

// pixelsPerUnit returns the number of pixels per world unit at the given depth.
func (v *view) pixelsPerUnit(depth float64) float64 {
	return v.height / (2 * depth * v.tanHalf)
}

// Project returns the pixel coordinates of the given world point in a view
// of the given size, and false if the point is not in front of the camera.
func (cm *Camera) Project(p r3.Vec, width, height int) (x, y float64, ok bool) {
	v := cm.view(width, height)
	c := v.toCamera(p)
	if c.Z < v.near || c.Z > v.far {
		return 0, 0, false
	}
	x, y = v.toScreen(c)
	return x, y, true
}
