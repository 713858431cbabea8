// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package panel keeps a 3D scene of a grid, axes, axis labels and a
// marker shape consistent with the panel options and data, and renders
// it continuously to a host surface.
//
// A [State] owns the scene and its reconcilers; a [Panel] confines a
// State to one goroutine that applies host updates and runs the render
// loop.
package panel

import (
	"image/color"
	"log/slog"

	"cogentcore.org/xyzpanel/xyz"
	"gonum.org/v1/gonum/spatial/r3"
)

// Fixed scene parameters.
const (
	CameraFOV  = 30
	CameraNear = 0.1
	CameraFar  = 1000

	AmbientLumens = 0.6
	PointLumens   = 1
)

var (
	// CameraPos is the initial camera position; the camera looks at the origin.
	CameraPos = r3.Vec{X: 15, Y: 15, Z: 15}

	// PointLightPos is the position of the point light.
	PointLightPos = r3.Vec{X: 10, Y: 10, Z: 10}

	white = color.RGBA{255, 255, 255, 255}
)

// State is the scene state of one panel instance: the renderer,
// camera, controls and lights created once, plus the grid, axes, labels
// and marker owned by the reconcilers. A State is not safe for
// concurrent use.
type State struct {

	// Scene is the scene graph.
	Scene *xyz.Scene

	// Camera is the perspective camera.
	Camera *xyz.Camera

	// Renderer draws the scene to the surface.
	Renderer *xyz.Renderer

	controls *xyz.OrbitControls
	tags     tagIndex
	marker   *xyz.Solid
	logger   *slog.Logger
	closed   bool
}

// NewState returns a new scene state rendering to the given surface,
// with a view of the given size.
func NewState(surface xyz.Surface, width, height int) *State {
	st := &State{logger: slog.Default()}
	st.Scene = xyz.NewScene("xyzpanel")
	st.Renderer = xyz.NewRenderer(surface, width, height)

	st.Camera = xyz.NewCamera(CameraFOV, 1, CameraNear, CameraFar)
	st.Camera.Pos = CameraPos
	st.Camera.LookAtOrigin()
	st.Camera.SetAspect(width, height)
	st.controls = xyz.NewOrbitControls(st.Camera)
	st.tags.set(st.Camera, CameraRig)
	st.tags.set(st.controls, CameraRig)

	amb := xyz.NewAmbientLight(st.Scene, "ambient", AmbientLumens, white)
	pt := xyz.NewPointLight(st.Scene, "point", PointLumens, white)
	pt.Pos = PointLightPos
	st.tags.set(amb, Light)
	st.tags.set(pt, Light)
	return st
}

// SetLogger sets the logger used for scene events.
func (st *State) SetLogger(l *slog.Logger) {
	st.logger = l
}

// Controls returns the orbit controls of the camera.
func (st *State) Controls() *xyz.OrbitControls {
	return st.controls
}

// Marker returns the current marker, or nil before the first shape
// configuration.
func (st *State) Marker() *xyz.Solid {
	return st.marker
}

// Nodes returns the owned scene nodes with the given tag, in the order
// they were added.
func (st *State) Nodes(t Tags) []xyz.Node {
	return st.tags.nodes(t)
}

// Count returns the number of owned scene objects with the given tag.
func (st *State) Count(t Tags) int {
	return st.tags.count(t)
}

// TagOf returns the tag of the given scene object, if it is owned.
func (st *State) TagOf(obj any) (Tags, bool) {
	return st.tags.tagOf(obj)
}

// IsClosed returns whether Close has been called.
func (st *State) IsClosed() bool {
	return st.closed
}

// Resize sets the size of the view, updating the renderer and the
// camera aspect ratio. Non-positive sizes are ignored.
func (st *State) Resize(width, height int) {
	if st.closed || width <= 0 || height <= 0 {
		return
	}
	st.Renderer.SetSize(width, height)
	st.Camera.SetAspect(width, height)
}

// Render renders the scene and presents it to the surface.
// It returns [xyz.ErrClosed] after Close.
func (st *State) Render() error {
	return st.Renderer.Render(st.Scene, st.Camera)
}

// Close removes and disposes all the owned nodes, and unbinds the
// renderer from its surface. It is safe to call more than once.
func (st *State) Close() {
	if st.closed {
		return
	}
	st.closed = true
	n := st.tags.remove(st.Scene, Grid, Axes, Label, Marker)
	st.Scene.Clear()
	st.tags.Reset()
	st.marker = nil
	st.Renderer.Close()
	st.logger.Debug("closed scene", "removed", n)
}

func (st *State) add(n xyz.Node, t Tags) {
	st.Scene.Add(n)
	st.tags.set(n, t)
}
