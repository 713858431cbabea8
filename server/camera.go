// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package server

import (
	"errors"
	"fmt"
	"math"

	"cogentcore.org/xyzpanel/xyz"
)

// CameraOps are the camera control operations of a [CameraMessage].
type CameraOps string

const (
	// Orbit rotates the camera around its target by a pointer drag
	// of DX, DY pixels.
	Orbit CameraOps = "orbit"

	// Pan moves the camera and its target by a pointer drag of DX, DY
	// pixels on the current view.
	Pan CameraOps = "pan"

	// Zoom multiplies the distance to the target by Factor.
	Zoom CameraOps = "zoom"

	// Reset restores the initial camera.
	Reset CameraOps = "reset"
)

// CameraMessage is a camera control message forwarded from the pointer
// input of a client, sent as a websocket text message or to
// POST /api/camera, for example {"op": "orbit", "dx": 12, "dy": -3}.
type CameraMessage struct {
	Op     CameraOps `json:"op"`
	DX     float64   `json:"dx,omitempty"`
	DY     float64   `json:"dy,omitempty"`
	Factor float64   `json:"factor,omitempty"`
}

var errPanelClosed = errors.New("server: panel closed")

// Validate returns an error if the message is not a known operation
// with finite arguments.
func (cm *CameraMessage) Validate() error {
	for _, v := range []float64{cm.DX, cm.DY, cm.Factor} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return fmt.Errorf("server: camera %s: non-finite argument", cm.Op)
		}
	}
	switch cm.Op {
	case Orbit, Pan, Reset:
	case Zoom:
		if cm.Factor <= 0 {
			return fmt.Errorf("server: camera zoom: factor %g must be positive", cm.Factor)
		}
	default:
		return fmt.Errorf("server: unknown camera op %q", cm.Op)
	}
	return nil
}

// Camera applies the camera control message to the panel camera.
func (s *Server) Camera(cm CameraMessage) error {
	if err := cm.Validate(); err != nil {
		return err
	}
	height := s.Props().Height
	ok := s.target.Controls(func(oc *xyz.OrbitControls) {
		switch cm.Op {
		case Orbit:
			oc.Orbit(cm.DX, cm.DY)
		case Pan:
			oc.Pan(cm.DX, cm.DY, height)
		case Zoom:
			oc.Zoom(cm.Factor)
		case Reset:
			oc.Reset()
		}
	})
	if !ok {
		return errPanelClosed
	}
	return nil
}
