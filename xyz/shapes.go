// Copyright (c) 2019, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package xyz

import (
	"math"

	"gonum.org/v1/gonum/spatial/r3"
)

// Sphere is a sphere mesh centered at the origin.
type Sphere struct {
	MeshBase

	// Radius of the sphere.
	Radius float64

	// WidthSegs is the number of segments around the equator.
	WidthSegs int

	// HeightSegs is the number of segments from pole to pole.
	HeightSegs int
}

// NewSphere returns a new sphere mesh with the given radius and the
// given number of segments in each direction (minimum 3 and 2).
func NewSphere(name string, radius float64, segs int) *Sphere {
	sp := &Sphere{Radius: radius, WidthSegs: max(segs, 3), HeightSegs: max(segs, 2)}
	sp.Name = name
	sp.build()
	return sp
}

func (sp *Sphere) build() {
	w, h := sp.WidthSegs, sp.HeightSegs
	sp.Vertex = make([]r3.Vec, 0, (w+1)*(h+1))
	for iy := 0; iy <= h; iy++ {
		v := float64(iy) / float64(h)
		for ix := 0; ix <= w; ix++ {
			u := float64(ix) / float64(w)
			sp.Vertex = append(sp.Vertex, r3.Vec{
				X: -sp.Radius * math.Cos(u*2*math.Pi) * math.Sin(v*math.Pi),
				Y: sp.Radius * math.Cos(v*math.Pi),
				Z: sp.Radius * math.Sin(u*2*math.Pi) * math.Sin(v*math.Pi),
			})
		}
	}
	row := w + 1
	for iy := 0; iy < h; iy++ {
		for ix := 0; ix < w; ix++ {
			a := iy*row + ix + 1
			b := iy*row + ix
			c := (iy+1)*row + ix
			d := (iy+1)*row + ix + 1
			if iy != 0 {
				sp.addTri(a, b, d)
			}
			if iy != h-1 {
				sp.addTri(b, c, d)
			}
		}
	}
	sp.updateBBox()
}

// Box is a rectangular box mesh centered at the origin.
type Box struct {
	MeshBase

	// Size is the size of the box in each dimension.
	Size r3.Vec
}

// NewBox returns a new box mesh with the given width (X),
// height (Y) and depth (Z).
func NewBox(name string, width, height, depth float64) *Box {
	bx := &Box{Size: r3.Vec{X: width, Y: height, Z: depth}}
	bx.Name = name
	bx.build()
	return bx
}

func (bx *Box) build() {
	hs := r3.Scale(0.5, bx.Size)
	bx.Vertex = make([]r3.Vec, 0, 8)
	for i := range 8 {
		v := hs
		if i&1 != 0 {
			v.X = -v.X
		}
		if i&2 != 0 {
			v.Y = -v.Y
		}
		if i&4 != 0 {
			v.Z = -v.Z
		}
		bx.Vertex = append(bx.Vertex, v)
	}
	// each face is the 4 corners sharing one coordinate sign
	faces := [6][4]int{
		{0, 2, 6, 4}, // +x
		{1, 3, 7, 5}, // -x
		{0, 1, 5, 4}, // +y
		{2, 3, 7, 6}, // -y
		{0, 1, 3, 2}, // +z
		{4, 5, 7, 6}, // -z
	}
	for _, f := range faces {
		bx.addTri(f[0], f[1], f[2])
		bx.addTri(f[0], f[2], f[3])
	}
	bx.updateBBox()
}

// Cone is a cone mesh centered at the origin, with its apex pointing up
// the Y axis and its base closed.
type Cone struct {
	MeshBase

	// Radius is the radius of the base.
	Radius float64

	// Height is the distance from the base to the apex.
	Height float64

	// RadialSegs is the number of segments around the base.
	RadialSegs int
}

// NewCone returns a new cone mesh with the given base radius, height
// and number of radial segments (minimum 3).
func NewCone(name string, radius, height float64, segs int) *Cone {
	cn := &Cone{Radius: radius, Height: height, RadialSegs: max(segs, 3)}
	cn.Name = name
	cn.build()
	return cn
}

func (cn *Cone) build() {
	n := cn.RadialSegs
	hh := cn.Height / 2
	cn.Vertex = make([]r3.Vec, 0, n+2)
	cn.Vertex = append(cn.Vertex, r3.Vec{Y: hh}, r3.Vec{Y: -hh})
	for i := range n {
		th := float64(i) / float64(n) * 2 * math.Pi
		cn.Vertex = append(cn.Vertex, r3.Vec{X: cn.Radius * math.Sin(th), Y: -hh, Z: cn.Radius * math.Cos(th)})
	}
	for i := range n {
		a := 2 + i
		b := 2 + (i+1)%n
		cn.addTri(0, a, b)
		cn.addTri(1, b, a)
	}
	cn.updateBBox()
}
