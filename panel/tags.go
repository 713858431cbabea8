// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package panel

import (
	"slices"

	"cogentcore.org/core/base/ordmap"
	"cogentcore.org/xyzpanel/xyz"
)

// Tags are the categories of the scene objects owned by a [State].
type Tags int32

const (
	// Grid is the ground plane wire grid.
	Grid Tags = iota

	// Axes is the 3-axis indicator.
	Axes

	// Label is an axis text label.
	Label

	// Marker is the moving marker solid.
	Marker

	// Light is an ambient or point light.
	Light

	// CameraRig is the camera and its controls.
	CameraRig

	// TagsN is the number of tags.
	TagsN
)

var tagNames = [TagsN]string{"grid", "axes", "label", "marker", "light", "camera-rig"}

func (t Tags) String() string {
	if t < 0 || t >= TagsN {
		return "unknown"
	}
	return tagNames[t]
}

// tagIndex maps each owned scene object (nodes, lights, camera rig)
// to its tag, in the order tagged. Objects are keyed by pointer.
type tagIndex struct {
	ordmap.Map[any, Tags]
}

// set tags the given object.
func (ti *tagIndex) set(obj any, t Tags) {
	ti.Add(obj, t)
}

// tagOf returns the tag of the given object, if any.
func (ti *tagIndex) tagOf(obj any) (Tags, bool) {
	return ti.ValueByKeyTry(obj)
}

// nodes returns the scene nodes with any of the given tags.
func (ti *tagIndex) nodes(tags ...Tags) []xyz.Node {
	var ns []xyz.Node
	for _, kv := range ti.Order {
		if !slices.Contains(tags, kv.Value) {
			continue
		}
		if n, ok := kv.Key.(xyz.Node); ok {
			ns = append(ns, n)
		}
	}
	return ns
}

// count returns the number of objects with the given tag.
func (ti *tagIndex) count(t Tags) int {
	n := 0
	for _, kv := range ti.Order {
		if kv.Value == t {
			n++
		}
	}
	return n
}

// remove removes the scene nodes with any of the given tags from the
// scene and from the index, and disposes them. It returns the number
// of nodes removed.
func (ti *tagIndex) remove(sc *xyz.Scene, tags ...Tags) int {
	ns := ti.nodes(tags...)
	for _, n := range ns {
		sc.Remove(n)
		n.Dispose()
		ti.DeleteKey(n)
	}
	return len(ns)
}
