// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package options

import "strings"

// ShapeTypes are the kinds of marker geometry.
type ShapeTypes int32

const (
	// Sphere is a sphere of diameter Scale.
	Sphere ShapeTypes = iota

	// Cube is a cube of side Scale.
	Cube

	// Cone is a cone of base diameter and height Scale.
	Cone

	// Custom is an external model. Loading models is not supported,
	// so it renders as a [Sphere].
	Custom

	ShapeTypesN
)

var shapeTypeNames = [ShapeTypesN]string{"sphere", "cube", "cone", "custom"}

// ShapeTypesValues returns all valid shape types.
func ShapeTypesValues() []ShapeTypes {
	return []ShapeTypes{Sphere, Cube, Cone, Custom}
}

func (i ShapeTypes) String() string {
	if i < 0 || i >= ShapeTypesN {
		return "sphere"
	}
	return shapeTypeNames[i]
}

// SetString sets the shape type from its name, case-insensitively.
// Unrecognized names set [Sphere] and return false.
func (i *ShapeTypes) SetString(s string) bool {
	s = strings.ToLower(strings.TrimSpace(s))
	for j, nm := range shapeTypeNames {
		if nm == s {
			*i = ShapeTypes(j)
			return true
		}
	}
	*i = Sphere
	return false
}

func (i ShapeTypes) MarshalText() ([]byte, error) {
	return []byte(i.String()), nil
}

// UnmarshalText never fails: unknown names fall back to [Sphere].
func (i *ShapeTypes) UnmarshalText(text []byte) error {
	i.SetString(string(text))
	return nil
}
