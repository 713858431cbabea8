// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package panel

import (
	"context"
	"testing"
	"time"

	"cogentcore.org/xyzpanel/frame"
	"cogentcore.org/xyzpanel/options"
	"cogentcore.org/xyzpanel/xyz"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/spatial/r3"
)

func testProps() Props {
	return Props{
		Width:   64,
		Height:  48,
		Options: *options.New(),
		Data: frame.NewData(frame.NewFrame("A",
			frame.NewField("x", 1.0, 2.0),
			frame.NewField("Y", 1.0, 3.0),
			frame.NewField("z", 1.0, 4.0),
		)),
	}
}

// startPanel runs a new panel until the test ends.
func startPanel(t *testing.T, ts *testSurface, props Props) (*Panel, chan error) {
	p := New(ts, props, WithFrameInterval(5*time.Millisecond))
	errc := make(chan error, 1)
	go func() { errc <- p.Run(context.Background()) }()
	t.Cleanup(p.Close)
	return p, errc
}

func TestNewAppliesFirstProps(t *testing.T) {
	p := New(&testSurface{}, testProps())
	defer p.Close()
	st := p.state
	assert.Equal(t, 1, st.Count(Grid))
	assert.Equal(t, 1, st.Count(Axes))
	assert.Equal(t, 3, st.Count(Label))
	assert.Equal(t, 1, st.Count(Marker))
	assert.Len(t, p.samples, 2)
	assert.NotEqual(t, uuid.Nil, p.ID)
}

func TestPanelRun(t *testing.T) {
	ts := &testSurface{}
	p, _ := startPanel(t, ts, testProps())

	require.Eventually(t, func() bool { return ts.count() > 2 }, time.Second, time.Millisecond)

	var pos r3.Vec
	require.True(t, p.Do(func(st *State) { pos = st.Marker().Pose.Pos }))
	assert.Equal(t, r3.Vec{X: 2, Y: 3, Z: 4}, pos)
}

func TestPanelDispatch(t *testing.T) {
	ts := &testSurface{}
	props := testProps()
	p, _ := startPanel(t, ts, props)

	var grid, marker xyz.Node
	snapshot := func() (xyz.Node, xyz.Node) {
		var g, m xyz.Node
		require.True(t, p.Do(func(st *State) { g, m = st.Nodes(Grid)[0], st.Marker() }))
		return g, m
	}
	grid, marker = snapshot()

	// data only: nothing is rebuilt, the marker moves
	props.Data = frame.NewData(frame.NewFrame("A",
		frame.NewField("x", "7"), frame.NewField("y", 8), frame.NewField("z", 9.5)))
	p.Update(props)
	require.Eventually(t, func() bool {
		var pos r3.Vec
		p.Do(func(st *State) { pos = st.Marker().Pose.Pos })
		return pos == r3.Vec{X: 7, Y: 8, Z: 9.5}
	}, time.Second, time.Millisecond)
	g, m := snapshot()
	assert.Same(t, grid, g)
	assert.Same(t, marker, m)

	// size only
	props.Width, props.Height = 80, 40
	p.Update(props)
	require.Eventually(t, func() bool {
		var sz [2]int
		p.Do(func(st *State) { s := st.Renderer.Size(); sz = [2]int{s.X, s.Y} })
		return sz == [2]int{80, 40}
	}, time.Second, time.Millisecond)
	g, m = snapshot()
	assert.Same(t, grid, g)
	assert.Same(t, marker, m)

	// shape only
	props.Options.ShapeType = options.Cube
	p.Update(props)
	require.Eventually(t, func() bool {
		_, m = snapshot()
		return m != marker
	}, time.Second, time.Millisecond)
	g, _ = snapshot()
	assert.Same(t, grid, g)
	assert.True(t, marker.IsDisposed())

	// custom model url alone changes nothing
	props.Options.CustomModelURL = "https://example.com/model.glb"
	p.Update(props)
	marker = m
	props.Options.MaxX = 2
	p.Update(props)
	require.Eventually(t, func() bool {
		g, _ = snapshot()
		return g != grid
	}, time.Second, time.Millisecond)
	_, m = snapshot()
	assert.Same(t, marker, m)
	assert.True(t, grid.IsDisposed())
}

func TestPanelControls(t *testing.T) {
	p, _ := startPanel(t, &testSurface{}, testProps())
	var dist float64
	require.True(t, p.Controls(func(oc *xyz.OrbitControls) {
		oc.Zoom(0.5)
		dist = oc.Camera.DistanceTo(oc.Camera.Target)
	}))
	assert.InDelta(t, r3.Norm(CameraPos)/2, dist, 1e-9)
}

func TestPanelClose(t *testing.T) {
	ts := &testSurface{}
	p, errc := startPanel(t, ts, testProps())
	require.Eventually(t, func() bool { return ts.count() > 0 }, time.Second, time.Millisecond)

	p.Close()
	p.Close()
	assert.NoError(t, <-errc)
	n := ts.count()
	time.Sleep(30 * time.Millisecond)
	assert.Equal(t, n, ts.count())

	assert.True(t, p.state.IsClosed())
	assert.False(t, p.Do(func(st *State) {}))
	assert.ErrorIs(t, p.Run(context.Background()), ErrClosed)
}

func TestPanelContextCancel(t *testing.T) {
	ts := &testSurface{}
	p := New(ts, testProps(), WithFrameInterval(5*time.Millisecond))
	defer p.Close()
	ctx, cancel := context.WithCancel(context.Background())
	errc := make(chan error, 1)
	go func() { errc <- p.Run(ctx) }()
	require.Eventually(t, func() bool { return ts.count() > 0 }, time.Second, time.Millisecond)

	cancel()
	assert.ErrorIs(t, <-errc, context.Canceled)
	n := ts.count()
	time.Sleep(30 * time.Millisecond)
	assert.Equal(t, n, ts.count())
	assert.True(t, p.state.IsClosed())
	assert.ErrorIs(t, p.Run(context.Background()), ErrClosed)
}

func TestPanelDoAfterContextCancel(t *testing.T) {
	p := New(&testSurface{}, testProps(), WithFrameInterval(5*time.Millisecond))
	defer p.Close()
	ctx, cancel := context.WithCancel(context.Background())
	errc := make(chan error, 1)
	go func() { errc <- p.Run(ctx) }()
	require.True(t, p.Do(func(st *State) {}))
	cancel()
	assert.ErrorIs(t, <-errc, context.Canceled)

	done := make(chan bool, 2)
	go func() { done <- p.Do(func(st *State) {}) }()
	go func() { done <- p.Controls(func(oc *xyz.OrbitControls) {}) }()
	for range 2 {
		select {
		case ran := <-done:
			assert.False(t, ran)
		case <-time.After(2 * time.Second):
			t.Fatal("Do blocked after the loop stopped")
		}
	}
}

func TestPanelCloseBeforeRun(t *testing.T) {
	ts := &testSurface{}
	p := New(ts, testProps())
	p.Close()
	assert.ErrorIs(t, p.Run(context.Background()), ErrClosed)
	assert.Equal(t, 0, ts.count())
	assert.Equal(t, 0, p.state.Scene.Len())
}
