// Copyright (c) 2019, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package xyz is a small 3D scenegraph rendered on the CPU: a [Scene] of
// [Node]s (solids, line segments, text billboards) lit by [Light]s and
// viewed through a perspective [Camera], drawn by a [Renderer] into an
// image that is presented to a [Surface].
//
// Nodes own their meshes, materials and textures, which are released
// explicitly with Dispose when a node is replaced.
package xyz

import (
	"fmt"
	"image/color"
	"slices"

	"cogentcore.org/core/base/ordmap"
)

// Scene is the overall scenegraph containing nodes as a flat list of children.
type Scene struct {

	// Name of the scene, for logging.
	Name string

	// Background is the color the frame is cleared to before rendering;
	// the zero value is transparent.
	Background color.RGBA

	// Lights are all the lights used in the scene.
	Lights ordmap.Map[string, Light]

	// children are the nodes, in the order added.
	children []Node
}

// NewScene returns a new empty scene.
func NewScene(name string) *Scene {
	sc := &Scene{Name: name}
	sc.Lights.Init()
	return sc
}

// AddLight adds the given light, replacing any light of the same name.
func (sc *Scene) AddLight(lt Light) {
	sc.Lights.Add(lt.AsLightBase().Name, lt)
}

// LightByName returns the named light, or an error if not found.
func (sc *Scene) LightByName(name string) (Light, error) {
	lt, ok := sc.Lights.ValueByKeyTry(name)
	if !ok {
		return nil, fmt.Errorf("xyz.Scene %s: light named %q not found", sc.Name, name)
	}
	return lt, nil
}

// Add adds the given nodes to the scene. Nodes already present are not
// added twice.
func (sc *Scene) Add(nodes ...Node) {
	for _, n := range nodes {
		if n == nil || sc.Has(n) {
			continue
		}
		sc.children = append(sc.children, n)
	}
}

// Remove removes the given node from the scene, returning whether it
// was present. It does not dispose the node.
func (sc *Scene) Remove(n Node) bool {
	i := slices.Index(sc.children, n)
	if i < 0 {
		return false
	}
	sc.children = slices.Delete(sc.children, i, i+1)
	return true
}

// Has returns whether the node is in the scene.
func (sc *Scene) Has(n Node) bool {
	return slices.Contains(sc.children, n)
}

// Children returns a copy of the list of nodes in the scene.
func (sc *Scene) Children() []Node {
	return slices.Clone(sc.children)
}

// Len returns the number of nodes in the scene.
func (sc *Scene) Len() int {
	return len(sc.children)
}

// Clear removes and disposes all the nodes in the scene.
func (sc *Scene) Clear() {
	for _, n := range sc.children {
		n.Dispose()
	}
	sc.children = nil
}
