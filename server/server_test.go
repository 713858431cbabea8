// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package server

import (
	"bytes"
	"encoding/json"
	"image"
	"image/color"
	"image/png"
	"io"
	"math"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"cogentcore.org/xyzpanel/frame"
	"cogentcore.org/xyzpanel/options"
	"cogentcore.org/xyzpanel/panel"
	"cogentcore.org/xyzpanel/xyz"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/spatial/r3"
)

type testTarget struct {
	mu       sync.Mutex
	props    []panel.Props
	controls *xyz.OrbitControls
	closed   bool
}

func newTestTarget() *testTarget {
	cam := xyz.NewCamera(panel.CameraFOV, 1, panel.CameraNear, panel.CameraFar)
	cam.Pos = panel.CameraPos
	return &testTarget{controls: xyz.NewOrbitControls(cam)}
}

func (tu *testTarget) Controls(fn func(oc *xyz.OrbitControls)) bool {
	tu.mu.Lock()
	defer tu.mu.Unlock()
	if tu.closed {
		return false
	}
	fn(tu.controls)
	return true
}

func (tu *testTarget) camera() xyz.Camera {
	tu.mu.Lock()
	defer tu.mu.Unlock()
	return *tu.controls.Camera
}

func (tu *testTarget) Update(props panel.Props) {
	tu.mu.Lock()
	defer tu.mu.Unlock()
	tu.props = append(tu.props, props)
}

func (tu *testTarget) last() (panel.Props, int) {
	tu.mu.Lock()
	defer tu.mu.Unlock()
	if len(tu.props) == 0 {
		return panel.Props{}, 0
	}
	return tu.props[len(tu.props)-1], len(tu.props)
}

func testImage(c color.RGBA) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, 4, 3))
	for i := 0; i < len(img.Pix); i += 4 {
		img.Pix[i], img.Pix[i+1], img.Pix[i+2], img.Pix[i+3] = c.R, c.G, c.B, c.A
	}
	return img
}

func testServer(t *testing.T) (*Server, *testTarget, *httptest.Server) {
	tu := newTestTarget()
	pv := NewPreview()
	pv.MinInterval = 0
	s := New(pv, tu, panel.Props{Width: 4, Height: 3, Options: *options.New()})
	hs := httptest.NewServer(s)
	t.Cleanup(hs.Close)
	return s, tu, hs
}

func TestPreviewThrottle(t *testing.T) {
	pv := NewPreview()
	pv.MinInterval = time.Hour
	_, ok := pv.Frame()
	assert.False(t, ok)

	require.NoError(t, pv.Present(testImage(color.RGBA{255, 0, 0, 255})))
	first, ok := pv.Frame()
	require.True(t, ok)
	require.NoError(t, pv.Present(testImage(color.RGBA{0, 255, 0, 255})))
	second, _ := pv.Frame()
	assert.Equal(t, first, second)

	img, err := png.Decode(bytes.NewReader(first))
	require.NoError(t, err)
	r, g, _, _ := img.At(0, 0).RGBA()
	assert.Equal(t, uint32(0xffff), r)
	assert.Equal(t, uint32(0), g)
}

func TestFrameEndpoint(t *testing.T) {
	s, _, hs := testServer(t)
	resp, err := http.Get(hs.URL + "/frame.png")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	require.NoError(t, s.Preview.Present(testImage(color.RGBA{0, 0, 255, 255})))
	resp, err = http.Get(hs.URL + "/frame.png")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "image/png", resp.Header.Get("Content-Type"))
	img, err := png.Decode(resp.Body)
	require.NoError(t, err)
	assert.Equal(t, image.Pt(4, 3), img.Bounds().Size())
}

func TestWebsocketStream(t *testing.T) {
	s, _, hs := testServer(t)
	require.NoError(t, s.Preview.Present(testImage(color.RGBA{255, 0, 0, 255})))

	url := "ws" + strings.TrimPrefix(hs.URL, "http") + "/ws"
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	defer conn.Close()
	conn.SetReadDeadline(time.Now().Add(5 * time.Second))

	typ, msg, err := conn.ReadMessage()
	require.NoError(t, err)
	assert.Equal(t, websocket.BinaryMessage, typ)
	_, err = png.Decode(bytes.NewReader(msg))
	require.NoError(t, err)

	require.NoError(t, s.Preview.Present(testImage(color.RGBA{0, 255, 0, 255})))
	_, msg, err = conn.ReadMessage()
	require.NoError(t, err)
	img, err := png.Decode(bytes.NewReader(msg))
	require.NoError(t, err)
	_, g, _, _ := img.At(0, 0).RGBA()
	assert.Equal(t, uint32(0xffff), g)

	conn.Close()
	require.Eventually(t, func() bool { return s.Preview.Subscribers() == 0 }, 2*time.Second, 5*time.Millisecond)
}

func TestOptionsEndpoints(t *testing.T) {
	_, tu, hs := testServer(t)

	resp, err := http.Get(hs.URL + "/api/options")
	require.NoError(t, err)
	var got struct {
		Options map[string]any   `json:"options"`
		Form    []map[string]any `json:"form"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&got))
	resp.Body.Close()
	assert.Equal(t, "sphere", got.Options["shapeType"])
	assert.Equal(t, 0.5, got.Options["scale"])
	require.Len(t, got.Form, 8)
	assert.Equal(t, "shapeType", got.Form[0]["path"])

	put := func(body string) *http.Response {
		req, err := http.NewRequest(http.MethodPut, hs.URL+"/api/options", strings.NewReader(body))
		require.NoError(t, err)
		resp, err := http.DefaultClient.Do(req)
		require.NoError(t, err)
		io.Copy(io.Discard, resp.Body)
		resp.Body.Close()
		return resp
	}

	resp = put(`{"shapeType": "cone", "scale": 20, "maxX": 3}`)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	props, n := tu.last()
	require.Equal(t, 1, n)
	assert.Equal(t, options.Cone, props.Options.ShapeType)
	assert.Equal(t, float64(options.MaxScale), props.Options.Scale)
	assert.Equal(t, 3.0, props.Options.MaxX)
	assert.Equal(t, 5.0, props.Options.MaxY)
	assert.Equal(t, 4, props.Width)

	resp = put(`{"shapeColor": "#zzzzzz"}`)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	resp = put(`{`)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	_, n = tu.last()
	assert.Equal(t, 1, n)
}

func TestDataEndpoint(t *testing.T) {
	s, tu, hs := testServer(t)
	body := `{"series": [{"name": "A", "fields": [
		{"name": "x", "values": [1, 2]},
		{"name": "y", "values": ["3", 4]},
		{"name": "z", "values": [5, 6.5]}]}]}`
	resp, err := http.Post(hs.URL+"/api/data", "application/json", strings.NewReader(body))
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)

	props, n := tu.last()
	require.Equal(t, 1, n)
	assert.Equal(t, []frame.Sample{{X: 1, Y: 3, Z: 5}, {X: 2, Y: 4, Z: 6.5}}, frame.Extract(props.Data))
	assert.Same(t, props.Data, s.Props().Data)

	resp, err = http.Post(hs.URL+"/api/data", "application/json", strings.NewReader("nope"))
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestCameraEndpoint(t *testing.T) {
	_, tu, hs := testServer(t)
	post := func(body string) int {
		resp, err := http.Post(hs.URL+"/api/camera", "application/json", strings.NewReader(body))
		require.NoError(t, err)
		resp.Body.Close()
		return resp.StatusCode
	}
	dist := r3.Norm(panel.CameraPos)

	assert.Equal(t, http.StatusNoContent, post(`{"op": "zoom", "factor": 0.5}`))
	cam := tu.camera()
	assert.InDelta(t, dist/2, cam.DistanceTo(cam.Target), 1e-9)

	assert.Equal(t, http.StatusNoContent, post(`{"op": "orbit", "dx": 100, "dy": 20}`))
	cam = tu.camera()
	assert.InDelta(t, dist/2, cam.DistanceTo(cam.Target), 1e-9)
	assert.NotEqual(t, r3.Scale(0.5, panel.CameraPos), cam.Pos)

	assert.Equal(t, http.StatusNoContent, post(`{"op": "pan", "dx": 10, "dy": 0}`))
	assert.NotEqual(t, r3.Vec{}, tu.camera().Target)

	assert.Equal(t, http.StatusNoContent, post(`{"op": "reset"}`))
	cam = tu.camera()
	assert.Equal(t, panel.CameraPos, cam.Pos)
	assert.Equal(t, r3.Vec{}, cam.Target)

	assert.Equal(t, http.StatusBadRequest, post(`{"op": "spin"}`))
	assert.Equal(t, http.StatusBadRequest, post(`{"op": "zoom", "factor": 0}`))
	assert.Equal(t, http.StatusBadRequest, post(`{`))
	assert.Equal(t, panel.CameraPos, tu.camera().Pos)

	tu.mu.Lock()
	tu.closed = true
	tu.mu.Unlock()
	assert.Equal(t, http.StatusServiceUnavailable, post(`{"op": "reset"}`))
}

func TestWebsocketCamera(t *testing.T) {
	_, tu, hs := testServer(t)
	url := "ws" + strings.TrimPrefix(hs.URL, "http") + "/ws"
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	defer conn.Close()

	require.NoError(t, conn.WriteMessage(websocket.TextMessage, []byte("not json")))
	require.NoError(t, conn.WriteJSON(CameraMessage{Op: Zoom, Factor: 2}))
	dist := r3.Norm(panel.CameraPos)
	require.Eventually(t, func() bool {
		cam := tu.camera()
		return math.Abs(cam.DistanceTo(cam.Target)-2*dist) < 1e-9
	}, 2*time.Second, 5*time.Millisecond)
}

func TestPanelTarget(t *testing.T) {
	pv := NewPreview()
	props := panel.Props{Width: 16, Height: 12, Options: *options.New()}
	pn := panel.New(pv, props)
	s := New(pv, pn, props)
	go pn.Run(t.Context())
	defer pn.Close()

	require.NoError(t, s.Camera(CameraMessage{Op: Zoom, Factor: 0.5}))
	var dist float64
	require.True(t, pn.Controls(func(oc *xyz.OrbitControls) {
		dist = oc.Camera.DistanceTo(oc.Camera.Target)
	}))
	assert.InDelta(t, r3.Norm(panel.CameraPos)/2, dist, 1e-9)

	pn.Close()
	assert.ErrorIs(t, s.Camera(CameraMessage{Op: Reset}), errPanelClosed)
}
