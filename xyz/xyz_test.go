// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package xyz

import (
	"image"
	"image/color"
	"math"
	"testing"

	"cogentcore.org/core/base/iox/imagex"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/spatial/r3"
)

type testSurface struct {
	presented int
	last      *image.RGBA
}

func (ts *testSurface) Present(img *image.RGBA) error {
	ts.presented++
	ts.last = image.NewRGBA(img.Bounds())
	copy(ts.last.Pix, img.Pix)
	return nil
}

func testScene() (*Scene, *Camera) {
	sc := NewScene("test")
	sc.Background = color.RGBA{0, 0, 0, 255}
	NewAmbientLight(sc, "ambient", 1, color.RGBA{255, 255, 255, 255})
	cam := NewCamera(30, 1, 0.1, 1000)
	cam.Pos = r3.Vec{Z: 10}
	return sc, cam
}

func TestMeshes(t *testing.T) {
	sp := NewSphere("sphere", 1, 32)
	assert.Equal(t, 33*33, len(sp.Vertex))
	assert.Equal(t, 32*(2*32-2), sp.NumTriangles())
	assert.InDelta(t, 1, sp.BBox.Max.Y, 1e-9)
	assert.InDelta(t, -1, sp.BBox.Min.Y, 1e-9)

	bx := NewBox("box", 2, 4, 6)
	assert.Equal(t, 12, bx.NumTriangles())
	assert.Equal(t, r3.Vec{X: 1, Y: 2, Z: 3}, bx.BBox.Max)
	assert.Equal(t, r3.Vec{X: -1, Y: -2, Z: -3}, bx.BBox.Min)

	cn := NewCone("cone", 1, 2, 32)
	assert.Equal(t, 64, cn.NumTriangles())
	assert.InDelta(t, 1, cn.BBox.Max.Y, 1e-9)
	assert.InDelta(t, -1, cn.BBox.Min.Y, 1e-9)

	// all triangles face outward
	for _, ms := range []*MeshBase{&sp.MeshBase, &bx.MeshBase, &cn.MeshBase} {
		for i := 0; i < len(ms.Index); i += 3 {
			a, b, c := ms.Vertex[ms.Index[i]], ms.Vertex[ms.Index[i+1]], ms.Vertex[ms.Index[i+2]]
			n := r3.Cross(r3.Sub(b, a), r3.Sub(c, a))
			ctr := r3.Add(a, r3.Add(b, c))
			assert.GreaterOrEqual(t, r3.Dot(n, ctr), 0.0, "%s triangle %d", ms.Name, i/3)
		}
	}
}

func TestDispose(t *testing.T) {
	sld := NewSolid("s", NewBox("b", 1, 1, 1), nil)
	assert.True(t, sld.IsVisible())
	sld.Dispose()
	assert.True(t, sld.IsDisposed())
	assert.True(t, sld.Mesh.AsMeshBase().IsDisposed())
	assert.True(t, sld.Material.IsDisposed())
	assert.Nil(t, sld.Mesh.AsMeshBase().Vertex)
	assert.False(t, sld.IsVisible())

	txt := NewText2D("t", "X")
	tex := txt.Material.Texture
	require.NotNil(t, tex)
	assert.NotNil(t, tex.Image())
	txt.Dispose()
	assert.True(t, tex.IsDisposed())
	assert.Nil(t, tex.Image())
	assert.False(t, txt.IsVisible())

	ah := NewAxesHelper("axes", 5)
	ah.Dispose()
	assert.True(t, ah.IsDisposed())
	assert.True(t, ah.Material.IsDisposed())
	assert.Empty(t, ah.Segments)
}

func TestText2D(t *testing.T) {
	txt := NewText2D("t", "X")
	img := txt.Material.Texture.Image()
	assert.Equal(t, image.Point{256, 64}, img.Bounds().Size())
	opaque := 0
	for i := 3; i < len(img.Pix); i += 4 {
		if img.Pix[i] > 0 {
			opaque++
		}
	}
	assert.Greater(t, opaque, 0)

	old := txt.Material.Texture
	txt.Text = "Y"
	require.NoError(t, txt.RenderText())
	assert.True(t, old.IsDisposed())
	assert.NotSame(t, old, txt.Material.Texture)
}

func TestPose(t *testing.T) {
	var ps Pose
	ps.SetPos(1, 2, 3)
	assert.Equal(t, r3.Vec{X: 2, Y: 3, Z: 4}, ps.Transform(r3.Vec{X: 1, Y: 1, Z: 1}))
	ps.Scale = r3.Vec{X: 2, Y: 2, Z: 2}
	assert.Equal(t, r3.Vec{X: 3, Y: 4, Z: 5}, ps.Transform(r3.Vec{X: 1, Y: 1, Z: 1}))
	assert.True(t, ps.IsFinite())
	ps.Pos.X = math.NaN()
	assert.False(t, ps.IsFinite())
	ps.Pos.X = math.Inf(1)
	assert.False(t, ps.IsFinite())
}

func TestScene(t *testing.T) {
	sc := NewScene("s")
	a := NewSolid("a", NewBox("b", 1, 1, 1), nil)
	b := NewAxesHelper("axes", 1)
	sc.Add(a, b, a, nil)
	assert.Equal(t, 2, sc.Len())
	assert.True(t, sc.Has(a))

	assert.True(t, sc.Remove(a))
	assert.False(t, sc.Remove(a))
	assert.False(t, a.IsDisposed())
	assert.Equal(t, []Node{b}, sc.Children())

	sc.Clear()
	assert.Equal(t, 0, sc.Len())
	assert.True(t, b.IsDisposed())

	NewPointLight(sc, "point", 1, color.RGBA{255, 255, 255, 255})
	lt, err := sc.LightByName("point")
	require.NoError(t, err)
	assert.Equal(t, r3.Vec{Y: 5, Z: 5}, lt.(*PointLight).Pos)
	_, err = sc.LightByName("none")
	assert.Error(t, err)
}

func TestShade(t *testing.T) {
	sc := NewScene("s")
	red := color.RGBA{255, 0, 0, 255}
	assert.Equal(t, color.RGBA{0, 0, 0, 255}, sc.shade(red, r3.Vec{}, r3.Vec{Z: 1}))

	NewAmbientLight(sc, "ambient", 0.6, color.RGBA{255, 255, 255, 255})
	assert.Equal(t, color.RGBA{153, 0, 0, 255}, sc.shade(red, r3.Vec{}, r3.Vec{Z: 1}))

	pl := NewPointLight(sc, "point", 1, color.RGBA{255, 255, 255, 255})
	pl.Pos = r3.Vec{Z: 10}
	assert.Equal(t, red, sc.shade(red, r3.Vec{}, r3.Vec{Z: 1}))
	// facing away from the point light
	assert.Equal(t, color.RGBA{153, 0, 0, 255}, sc.shade(red, r3.Vec{}, r3.Vec{Z: -1}))
}

func TestCameraProject(t *testing.T) {
	cam := NewCamera(30, 1, 0.1, 1000)
	cam.Pos = r3.Vec{Z: 10}

	x, y, ok := cam.Project(r3.Vec{}, 100, 100)
	require.True(t, ok)
	assert.InDelta(t, 50, x, 1e-9)
	assert.InDelta(t, 50, y, 1e-9)

	x, y, ok = cam.Project(r3.Vec{X: 1, Y: 1}, 100, 100)
	require.True(t, ok)
	assert.Greater(t, x, 50.0)
	assert.Less(t, y, 50.0)

	_, _, ok = cam.Project(r3.Vec{Z: 20}, 100, 100)
	assert.False(t, ok)

	cam.SetAspect(200, 100)
	assert.Equal(t, 2.0, cam.Aspect)
	cam.SetAspect(0, 100)
	assert.Equal(t, 2.0, cam.Aspect)
}

func TestOrbitControls(t *testing.T) {
	cam := NewCamera(30, 1, 0.1, 1000)
	cam.Pos = r3.Vec{X: 15, Y: 15, Z: 15}
	oc := NewOrbitControls(cam)
	dist := cam.DistanceTo(cam.Target)

	oc.Orbit(100, 50)
	assert.InDelta(t, dist, cam.DistanceTo(cam.Target), 1e-9)
	assert.NotEqual(t, r3.Vec{X: 15, Y: 15, Z: 15}, cam.Pos)

	// cannot pass over the pole
	oc.Orbit(0, 1e6)
	assert.Greater(t, cam.Pos.Y, 0.0)
	assert.InDelta(t, dist, cam.DistanceTo(cam.Target), 1e-6)

	oc.Zoom(0.5)
	assert.InDelta(t, dist/2, cam.DistanceTo(cam.Target), 1e-6)
	oc.Zoom(-1)
	assert.InDelta(t, dist/2, cam.DistanceTo(cam.Target), 1e-6)

	oc.Pan(10, 0, 100)
	assert.NotEqual(t, r3.Vec{}, cam.Target)

	oc.Reset()
	assert.Equal(t, r3.Vec{X: 15, Y: 15, Z: 15}, cam.Pos)
	assert.Equal(t, r3.Vec{}, cam.Target)
}

func TestRender(t *testing.T) {
	sc, cam := testScene()
	box := NewSolid("box", NewBox("box", 2, 2, 2), NewMaterial(color.RGBA{255, 0, 0, 255}))
	sc.Add(box)

	ts := &testSurface{}
	rn := NewRenderer(ts, 64, 64)
	require.NoError(t, rn.Render(sc, cam))
	assert.Equal(t, 1, ts.presented)
	assert.Equal(t, 1, rn.Frames)
	// only the front face is visible
	assert.Equal(t, 2, rn.Stats.Triangles)
	// the front face spans about 26 pixels around the center
	red, black := color.RGBA{255, 0, 0, 255}, color.RGBA{0, 0, 0, 255}
	for _, p := range []image.Point{{40, 30}, {26, 32}, {38, 32}, {32, 24}, {32, 40}} {
		assert.Equal(t, red, ts.last.RGBAAt(p.X, p.Y), p)
	}
	for _, p := range []image.Point{{0, 0}, {10, 32}, {54, 32}, {32, 10}, {32, 54}} {
		assert.Equal(t, black, ts.last.RGBAAt(p.X, p.Y), p)
	}
	imagex.Assert(t, rn.Image(), "render-box")

	rn.SetSize(32, 16)
	assert.Equal(t, image.Point{32, 16}, rn.Size())
	rn.SetSize(0, 16)
	assert.Equal(t, image.Point{32, 16}, rn.Size())
	require.NoError(t, rn.Render(sc, cam))
	assert.Equal(t, image.Point{32, 16}, ts.last.Bounds().Size())

	rn.Close()
	assert.True(t, rn.IsClosed())
	assert.ErrorIs(t, rn.Render(sc, cam), ErrClosed)
	assert.Equal(t, 2, ts.presented)
}

func TestRenderSkipsNonFinite(t *testing.T) {
	sc, cam := testScene()
	box := NewSolid("box", NewBox("box", 2, 2, 2), nil)
	box.SetPos(math.NaN(), 0, 0)
	sc.Add(box)

	rn := NewRenderer(nil, 64, 64)
	require.NoError(t, rn.Render(sc, cam))
	assert.Equal(t, 0, rn.Stats.Triangles)

	box.SetPos(0, 0, 0)
	rn.Draw(sc, cam)
	assert.Equal(t, 2, rn.Stats.Triangles)

	box.Invisible = true
	rn.Draw(sc, cam)
	assert.Equal(t, 0, rn.Stats.Triangles)
}

func TestRenderLinesAndText(t *testing.T) {
	sc, cam := testScene()
	cam.Pos = r3.Vec{X: 15, Y: 15, Z: 15}
	sc.Add(NewAxesHelper("axes", 5))
	lbl := NewText2D("label", "X")
	lbl.Pose.SetPos(5.5, 0, 0)
	sc.Add(lbl)

	const size = 512
	rn := NewRenderer(nil, size, size)
	rn.Draw(sc, cam)
	assert.Equal(t, 3, rn.Stats.Lines)
	assert.Equal(t, 1, rn.Stats.Sprites)
	img := rn.Image()

	// each axis is drawn in its own color at its midpoint
	for i, mid := range []r3.Vec{{X: 2.5}, {Y: 2.5}, {Z: 2.5}} {
		x, y, ok := cam.Project(mid, size, size)
		require.True(t, ok)
		c := img.RGBAAt(int(x), int(y))
		ch := [3]uint8{c.R, c.G, c.B}
		for j := range ch {
			if j == i {
				assert.Greater(t, ch[j], uint8(64), "axis %d", i)
			} else {
				assert.Zero(t, ch[j], "axis %d", i)
			}
		}
	}

	// white label text around its position
	x, y, ok := cam.Project(lbl.Pose.Pos, size, size)
	require.True(t, ok)
	gray := 0
	for py := int(y) - 16; py <= int(y)+16; py++ {
		for px := int(x) - 48; px <= int(x)+48; px++ {
			c := img.RGBAAt(px, py)
			if c.R > 32 && c.R == c.G && c.G == c.B {
				gray++
			}
		}
	}
	assert.Greater(t, gray, 10)
	imagex.Assert(t, img, "render-axes")

	// line passing behind the camera is clipped, not dropped
	sc.Clear()
	sc.Add(NewLineSegments("through", []Segment{{A: r3.Vec{}, B: r3.Vec{X: 30, Z: 30}}}, color.RGBA{255, 255, 255, 255}))
	rn.Draw(sc, cam)
	assert.Equal(t, 1, rn.Stats.Lines)
}
