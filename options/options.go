// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package options defines the user-facing configuration of the xyz panel,
// its defaults and settings form, and its persistence as TOML.
package options

import (
	"fmt"
	"image/color"
	"math"
	"strings"

	"cogentcore.org/core/colors"
)

const (
	// DefaultScale is the default marker scale.
	DefaultScale = 0.5

	// MinScale and MaxScale bound the marker scale.
	MinScale = 0.1
	MaxScale = 10

	// DefaultMax is the default extent of each axis.
	DefaultMax = 5

	// MaxExtent bounds the magnitude of each axis extent, which
	// keeps the unit grid to a drawable number of lines.
	MaxExtent = 1000

	// DefaultShapeColor is the default marker color.
	DefaultShapeColor = "#ff0000"
)

// Options are the recognized panel options, as persisted by the host.
// The field names in the encodings match the host option paths.
type Options struct {

	// ShapeType is the kind of marker geometry.
	ShapeType ShapeTypes `toml:"shapeType" json:"shapeType"`

	// CustomModelURL is the URL of an external 3D model, only meaningful
	// for the custom shape type. It is persisted but never loaded.
	CustomModelURL string `toml:"customModelUrl" json:"customModelUrl,omitempty"`

	// Scale is the uniform marker size factor, in [MinScale, MaxScale].
	Scale float64 `toml:"scale" json:"scale"`

	// MaxX is the extent of the X axis.
	MaxX float64 `toml:"maxX" json:"maxX"`

	// MaxY is the extent of the Y axis.
	MaxY float64 `toml:"maxY" json:"maxY"`

	// MaxZ is the extent of the Z axis.
	MaxZ float64 `toml:"maxZ" json:"maxZ"`

	// ShowNegativeAxes includes the negative half of the grid.
	ShowNegativeAxes bool `toml:"showNegativeAxes" json:"showNegativeAxes"`

	// ShapeColor is the marker color, as a hex string or color name.
	ShapeColor string `toml:"shapeColor" json:"shapeColor"`
}

// Axis is the part of the options that drives the grid, axes and labels.
type Axis struct {
	MaxX, MaxY, MaxZ float64
	ShowNegativeAxes bool
}

// Shape is the part of the options that drives the marker.
type Shape struct {
	Type  ShapeTypes
	Scale float64
	Color color.RGBA
}

// New returns new options with default values.
func New() *Options {
	o := &Options{}
	o.Defaults()
	return o
}

// Defaults sets all options to their default values.
func (o *Options) Defaults() {
	o.ShapeType = Sphere
	o.CustomModelURL = ""
	o.Scale = DefaultScale
	o.MaxX = DefaultMax
	o.MaxY = DefaultMax
	o.MaxZ = DefaultMax
	o.ShowNegativeAxes = true
	o.ShapeColor = DefaultShapeColor
}

// Validate brings the options into their valid ranges: the scale is
// clamped, non-finite values are reset to their defaults, and axis extents
// are bounded by [MaxExtent]. It returns an error describing the shape
// color if it cannot be parsed; the color is then reset to the default.
func (o *Options) Validate() error {
	switch {
	case math.IsNaN(o.Scale) || math.IsInf(o.Scale, 0):
		o.Scale = DefaultScale
	case o.Scale < MinScale:
		o.Scale = MinScale
	case o.Scale > MaxScale:
		o.Scale = MaxScale
	}
	o.MaxX = validExtent(o.MaxX)
	o.MaxY = validExtent(o.MaxY)
	o.MaxZ = validExtent(o.MaxZ)
	if _, err := ParseColor(o.ShapeColor); err != nil {
		o.ShapeColor = DefaultShapeColor
		return err
	}
	return nil
}

func validExtent(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return DefaultMax
	}
	return max(-MaxExtent, min(v, MaxExtent))
}

// Axis returns the axis configuration.
func (o *Options) Axis() Axis {
	return Axis{MaxX: o.MaxX, MaxY: o.MaxY, MaxZ: o.MaxZ, ShowNegativeAxes: o.ShowNegativeAxes}
}

// Shape returns the marker configuration. An unparsable color yields
// the default color.
func (o *Options) Shape() Shape {
	c, err := ParseColor(o.ShapeColor)
	if err != nil {
		c, _ = ParseColor(DefaultShapeColor)
	}
	return Shape{Type: o.ShapeType, Scale: o.Scale, Color: c}
}

// ParseColor parses a hex color (#rgb, #rrggbb, #rrggbbaa, with or without
// the #) or a standard color name.
func ParseColor(s string) (color.RGBA, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return color.RGBA{}, fmt.Errorf("options: empty color")
	}
	if !strings.HasPrefix(s, "#") {
		if c, err := colors.FromName(strings.ToLower(s)); err == nil {
			return c, nil
		}
	}
	if !isHexColor(strings.TrimPrefix(s, "#")) {
		return color.RGBA{}, fmt.Errorf("options: invalid color %q", s)
	}
	return colors.FromHex(s)
}

// isHexColor returns whether s is 3, 6 or 8 hex digits.
func isHexColor(s string) bool {
	switch len(s) {
	case 3, 6, 8:
	default:
		return false
	}
	for _, c := range s {
		if !strings.ContainsRune("0123456789abcdefABCDEF", c) {
			return false
		}
	}
	return true
}
