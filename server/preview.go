// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package server

import (
	"bytes"
	"image"
	"image/png"
	"sync"
	"time"
)

// DefaultFrameInterval is the default minimum time between frames
// encoded by a [Preview].
const DefaultFrameInterval = 100 * time.Millisecond

// Preview is a drawing surface that keeps the latest presented frame
// as PNG and streams it to subscribers. Frames presented sooner than
// MinInterval after the last encoded one are dropped.
// It is safe for concurrent use.
type Preview struct {

	// MinInterval is the minimum time between encoded frames.
	MinInterval time.Duration

	mu   sync.Mutex
	png  []byte
	last time.Time
	subs map[chan []byte]struct{}
	enc  png.Encoder
}

// NewPreview returns a new preview surface.
func NewPreview() *Preview {
	return &Preview{
		MinInterval: DefaultFrameInterval,
		subs:        make(map[chan []byte]struct{}),
		enc:         png.Encoder{CompressionLevel: png.BestSpeed},
	}
}

// Present encodes the frame and sends it to the subscribers.
func (pv *Preview) Present(img *image.RGBA) error {
	now := time.Now()
	pv.mu.Lock()
	if pv.png != nil && now.Sub(pv.last) < pv.MinInterval {
		pv.mu.Unlock()
		return nil
	}
	pv.last = now
	pv.mu.Unlock()

	var buf bytes.Buffer
	if err := pv.enc.Encode(&buf, img); err != nil {
		return err
	}
	b := buf.Bytes()

	pv.mu.Lock()
	defer pv.mu.Unlock()
	pv.png = b
	for ch := range pv.subs {
		select {
		case ch <- b:
		default: // slow subscriber; it gets a later frame
		}
	}
	return nil
}

// Frame returns the latest frame as PNG, and false if there is none yet.
func (pv *Preview) Frame() ([]byte, bool) {
	pv.mu.Lock()
	defer pv.mu.Unlock()
	return pv.png, pv.png != nil
}

// Subscribe returns a channel receiving each new frame as PNG, starting
// with the latest one if any, and a function to cancel the subscription.
func (pv *Preview) Subscribe() (<-chan []byte, func()) {
	ch := make(chan []byte, 1)
	pv.mu.Lock()
	pv.subs[ch] = struct{}{}
	if pv.png != nil {
		ch <- pv.png
	}
	pv.mu.Unlock()
	return ch, func() {
		pv.mu.Lock()
		delete(pv.subs, ch)
		pv.mu.Unlock()
	}
}

// Subscribers returns the number of subscribers.
func (pv *Preview) Subscribers() int {
	pv.mu.Lock()
	defer pv.mu.Unlock()
	return len(pv.subs)
}
