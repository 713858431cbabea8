// Copyright (c) 2019, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package xyz

import (
	"cmp"
	"errors"
	"image"
	"image/color"
	"math"
	"slices"

	"golang.org/x/image/draw"
	"golang.org/x/image/vector"
	"gonum.org/v1/gonum/spatial/r3"
)

// Surface is a drawing target, owned by the host, that rendered frames
// are presented to. The image passed to Present is reused for the next
// frame, so a Surface that keeps it must copy it.
type Surface interface {
	Present(img *image.RGBA) error
}

// ErrClosed is returned when rendering with a closed [Renderer].
var ErrClosed = errors.New("xyz.Renderer: closed")

// RenderStats counts the primitives drawn in the last frame.
type RenderStats struct {
	Triangles int
	Lines     int
	Sprites   int
}

// Renderer draws a [Scene] through a [Camera] into an RGBA frame
// and presents it to its [Surface]. Triangles are flat shaded and drawn
// together with lines and billboards in back to front order.
// A Renderer is not safe for concurrent use.
type Renderer struct {

	// Stats are the counts of the last rendered frame.
	Stats RenderStats

	// Frames is the number of frames rendered.
	Frames int

	surface Surface
	img     *image.RGBA
	ras     *vector.Rasterizer
	items   []drawItem
	closed  bool
}

// NewRenderer returns a new renderer bound to the given surface,
// with a frame of the given size.
func NewRenderer(surface Surface, width, height int) *Renderer {
	rn := &Renderer{surface: surface, ras: vector.NewRasterizer(1, 1)}
	rn.img = image.NewRGBA(image.Rect(0, 0, max(width, 1), max(height, 1)))
	return rn
}

// SetSize sets the frame size. Non-positive sizes are ignored.
func (rn *Renderer) SetSize(width, height int) {
	if width <= 0 || height <= 0 {
		return
	}
	if rn.img.Bounds().Size() == (image.Point{width, height}) {
		return
	}
	rn.img = image.NewRGBA(image.Rect(0, 0, width, height))
}

// Size returns the frame size.
func (rn *Renderer) Size() image.Point {
	return rn.img.Bounds().Size()
}

// Image returns the frame image, valid until the next render.
func (rn *Renderer) Image() *image.RGBA {
	return rn.img
}

// Close unbinds the renderer from its surface; nothing is presented
// after Close.
func (rn *Renderer) Close() {
	rn.closed = true
	rn.surface = nil
	rn.items = nil
}

// IsClosed returns whether Close has been called.
func (rn *Renderer) IsClosed() bool {
	return rn.closed
}

// Render draws the scene as seen from the camera, and presents the
// frame to the surface.
func (rn *Renderer) Render(sc *Scene, cam *Camera) error {
	if rn.closed {
		return ErrClosed
	}
	rn.Draw(sc, cam)
	if rn.surface == nil {
		return nil
	}
	return rn.surface.Present(rn.img)
}

// Draw draws the scene as seen from the camera into the frame image,
// without presenting it.
func (rn *Renderer) Draw(sc *Scene, cam *Camera) {
	sz := rn.img.Bounds().Size()
	draw.Draw(rn.img, rn.img.Bounds(), image.NewUniform(sc.Background), image.Point{}, draw.Src)

	v := cam.view(sz.X, sz.Y)
	rn.items = rn.items[:0]
	for _, n := range sc.children {
		switch n := n.(type) {
		case *Solid:
			if n.IsVisible() {
				rn.addSolid(sc, &v, n)
			}
		case *Text2D:
			if n.IsVisible() {
				rn.addText(&v, n)
			}
		case interface{ AsLineSegments() *LineSegments }:
			ls := n.AsLineSegments()
			if ls.IsVisible() {
				rn.addLines(&v, ls)
			}
		}
	}
	slices.SortStableFunc(rn.items, func(a, b drawItem) int {
		return cmp.Compare(b.depth, a.depth)
	})

	rn.Stats = RenderStats{}
	for i := range rn.items {
		it := &rn.items[i]
		switch it.kind {
		case triItem:
			rn.fillPolygon(it.pts[:3], it.color)
			rn.Stats.Triangles++
		case lineItem:
			rn.strokeLine(it.pts[0], it.pts[1], it.width, it.color)
			rn.Stats.Lines++
		case spriteItem:
			draw.ApproxBiLinear.Scale(rn.img, it.rect, it.tex, it.tex.Bounds(), draw.Over, nil)
			rn.Stats.Sprites++
		}
	}
	rn.Frames++
}

type itemKinds int

const (
	triItem itemKinds = iota
	lineItem
	spriteItem
)

// point is a point in pixel coordinates.
type point struct {
	X, Y float64
}

// drawItem is one primitive in the back to front draw list.
type drawItem struct {
	kind  itemKinds
	depth float64
	pts   [3]point
	color color.RGBA
	width float64
	rect  image.Rectangle
	tex   *image.RGBA
}

func (rn *Renderer) addSolid(sc *Scene, v *view, sld *Solid) {
	ms := sld.Mesh.AsMeshBase()
	world := make([]r3.Vec, len(ms.Vertex))
	for i, p := range ms.Vertex {
		world[i] = sld.Pose.Transform(p)
	}
	base := sld.Material.Color
	for t := 0; t+2 < len(ms.Index); t += 3 {
		a, b, c := world[ms.Index[t]], world[ms.Index[t+1]], world[ms.Index[t+2]]
		n := r3.Cross(r3.Sub(b, a), r3.Sub(c, a))
		if r3.Norm2(n) == 0 {
			continue
		}
		ctr := r3.Scale(1.0/3, r3.Add(a, r3.Add(b, c)))
		if r3.Dot(n, r3.Sub(v.eye, ctr)) <= 0 {
			continue // back face
		}
		ca, cb, cc := v.toCamera(a), v.toCamera(b), v.toCamera(c)
		if ca.Z < v.near || cb.Z < v.near || cc.Z < v.near {
			continue
		}
		depth := (ca.Z + cb.Z + cc.Z) / 3
		if depth > v.far {
			continue
		}
		it := drawItem{kind: triItem, depth: depth, color: sc.shade(base, ctr, r3.Unit(n))}
		for i, p := range [3]r3.Vec{ca, cb, cc} {
			it.pts[i].X, it.pts[i].Y = v.toScreen(p)
		}
		rn.items = append(rn.items, it)
	}
}

func (rn *Renderer) addLines(v *view, ls *LineSegments) {
	for i, sg := range ls.Segments {
		a := v.toCamera(ls.Pose.Transform(sg.A))
		b := v.toCamera(ls.Pose.Transform(sg.B))
		if a.Z < v.near && b.Z < v.near {
			continue
		}
		// clip to the near plane
		if a.Z < v.near {
			a = r3.Add(a, r3.Scale((v.near-a.Z)/(b.Z-a.Z), r3.Sub(b, a)))
		} else if b.Z < v.near {
			b = r3.Add(b, r3.Scale((v.near-b.Z)/(a.Z-b.Z), r3.Sub(a, b)))
		}
		it := drawItem{kind: lineItem, depth: (a.Z + b.Z) / 2, color: ls.SegmentColor(i), width: ls.Width}
		it.pts[0].X, it.pts[0].Y = v.toScreen(a)
		it.pts[1].X, it.pts[1].Y = v.toScreen(b)
		rn.items = append(rn.items, it)
	}
}

func (rn *Renderer) addText(v *view, txt *Text2D) {
	tex := txt.Material.Texture
	if tex == nil || tex.Image() == nil {
		return
	}
	c := v.toCamera(txt.Pose.Pos)
	if c.Z < v.near || c.Z > v.far {
		return
	}
	ppu := v.pixelsPerUnit(c.Z)
	sc := txt.Pose.Scale
	if sc == (r3.Vec{}) {
		sc = r3.Vec{X: 1, Y: 1, Z: 1}
	}
	w := txt.Size[0] * sc.X * ppu
	h := txt.Size[1] * sc.Y * ppu
	x, y := v.toScreen(c)
	r := image.Rect(int(x-w/2), int(y-h/2), int(x+w/2), int(y+h/2))
	if r.Empty() || !r.Overlaps(rn.img.Bounds()) {
		return
	}
	rn.items = append(rn.items, drawItem{kind: spriteItem, depth: c.Z, rect: r, tex: tex.Image()})
}

// strokeLine draws a line of the given pixel width as a filled quad.
func (rn *Renderer) strokeLine(a, b point, width float64, clr color.RGBA) {
	dx, dy := b.X-a.X, b.Y-a.Y
	l2 := dx*dx + dy*dy
	if l2 < 1e-18 {
		return
	}
	hw := max(width, 1) / 2
	s := hw / math.Sqrt(l2)
	px, py := -dy*s, dx*s
	rn.fillPolygon([]point{
		{a.X + px, a.Y + py},
		{b.X + px, b.Y + py},
		{b.X - px, b.Y - py},
		{a.X - px, a.Y - py},
	}, clr)
}
