// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package xyz

import (
	"image"
	"image/color"
	"math"
)

// fillPolygon fills the given convex polygon in pixel coordinates with
// an anti-aliased solid color, drawn over the frame.
func (rn *Renderer) fillPolygon(pts []point, clr color.RGBA) {
	if len(pts) < 3 {
		return
	}
	minX, minY := math.Inf(1), math.Inf(1)
	maxX, maxY := math.Inf(-1), math.Inf(-1)
	for _, p := range pts {
		if math.IsNaN(p.X) || math.IsNaN(p.Y) {
			return
		}
		minX, maxX = min(minX, p.X), max(maxX, p.X)
		minY, maxY = min(minY, p.Y), max(maxY, p.Y)
	}
	b := rn.img.Bounds()
	r := image.Rect(
		int(math.Floor(max(minX, float64(b.Min.X)))),
		int(math.Floor(max(minY, float64(b.Min.Y)))),
		int(math.Ceil(min(maxX, float64(b.Max.X)))),
		int(math.Ceil(min(maxY, float64(b.Max.Y)))),
	).Intersect(b)
	if r.Empty() {
		return
	}
	poly := clipPolygon(pts, r)
	if len(poly) < 3 {
		return
	}
	ox, oy := float64(r.Min.X), float64(r.Min.Y)
	rn.ras.Reset(r.Dx(), r.Dy())
	rn.ras.MoveTo(float32(poly[0].X-ox), float32(poly[0].Y-oy))
	for _, p := range poly[1:] {
		rn.ras.LineTo(float32(p.X-ox), float32(p.Y-oy))
	}
	rn.ras.ClosePath()
	rn.ras.Draw(rn.img, r, image.NewUniform(clr), image.Point{})
}

// clipPolygon clips a convex polygon to the rectangle, one edge at a time.
func clipPolygon(pts []point, r image.Rectangle) []point {
	x0, y0 := float64(r.Min.X), float64(r.Min.Y)
	x1, y1 := float64(r.Max.X), float64(r.Max.Y)
	out := clipEdge(pts, func(p point) float64 { return p.X - x0 })
	out = clipEdge(out, func(p point) float64 { return x1 - p.X })
	out = clipEdge(out, func(p point) float64 { return p.Y - y0 })
	return clipEdge(out, func(p point) float64 { return y1 - p.Y })
}

// clipEdge keeps the part of the polygon where dist is non-negative.
func clipEdge(pts []point, dist func(point) float64) []point {
	if len(pts) == 0 {
		return nil
	}
	out := make([]point, 0, len(pts)+2)
	prev := pts[len(pts)-1]
	dp := dist(prev)
	for _, cur := range pts {
		dc := dist(cur)
		if (dp >= 0) != (dc >= 0) {
			t := dp / (dp - dc)
			out = append(out, point{prev.X + t*(cur.X-prev.X), prev.Y + t*(cur.Y-prev.Y)})
		}
		if dc >= 0 {
			out = append(out, cur)
		}
		prev, dp = cur, dc
	}
	return out
}
