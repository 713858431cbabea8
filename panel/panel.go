// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package panel

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"cogentcore.org/xyzpanel/frame"
	"cogentcore.org/xyzpanel/options"
	"cogentcore.org/xyzpanel/xyz"
	"github.com/google/uuid"
)

// DefaultFrameInterval is the default time between rendered frames.
const DefaultFrameInterval = time.Second / 60

var (
	// ErrRunning is returned by [Panel.Run] if the panel is already running.
	ErrRunning = errors.New("panel: already running")

	// ErrClosed is returned by [Panel.Run] after [Panel.Close].
	ErrClosed = errors.New("panel: closed")
)

// Props are the inputs of a panel supplied by the host. Each field is
// an independent change stream.
type Props struct {

	// Width and Height are the size of the view in pixels.
	Width, Height int

	// Data is the latest query result. A different pointer is a change.
	Data *frame.Data

	// Options are the panel options.
	Options options.Options
}

// Option configures a [Panel].
type Option func(p *Panel)

// WithFrameInterval sets the time between rendered frames.
func WithFrameInterval(d time.Duration) Option {
	return func(p *Panel) {
		if d > 0 {
			p.interval = d
		}
	}
}

// WithLogger sets the logger, to which the panel id is added.
func WithLogger(l *slog.Logger) Option {
	return func(p *Panel) {
		p.logger = l
	}
}

// Panel is one panel instance. All scene mutation happens on the
// goroutine running [Panel.Run]; the host talks to it with
// [Panel.Update], [Panel.Do] and [Panel.Controls], which are safe for
// concurrent use.
type Panel struct {

	// ID identifies the panel in logs.
	ID uuid.UUID

	state    *State
	interval time.Duration
	logger   *slog.Logger

	// owned by the loop goroutine
	props   Props
	samples []frame.Sample
	lastErr string

	pendMu  sync.Mutex
	pending *Props
	notify  chan struct{}
	actions chan func(st *State)

	ctx    context.Context
	cancel context.CancelFunc
	done   chan struct{}

	mu      sync.Mutex
	running bool
	closed  bool
}

// New returns a new panel rendering to the given surface, with the
// given initial props applied: the view is sized, and the axes and the
// marker are built for the first time. Call [Panel.Run] to start
// rendering.
func New(surface xyz.Surface, props Props, opts ...Option) *Panel {
	p := &Panel{
		ID:       uuid.New(),
		interval: DefaultFrameInterval,
		logger:   slog.Default(),
		notify:   make(chan struct{}, 1),
		actions:  make(chan func(st *State), 16),
		done:     make(chan struct{}),
	}
	for _, o := range opts {
		o(p)
	}
	p.logger = p.logger.With("panel", p.ID.String())
	p.ctx, p.cancel = context.WithCancel(context.Background())
	p.state = NewState(surface, props.Width, props.Height)
	p.state.SetLogger(p.logger)
	p.apply(props, true)
	return p
}

// Update queues new props, which are applied on the loop goroutine
// before the next frame. Only the reconcilers whose inputs changed
// run. Props queued before the previous ones were applied replace them.
func (p *Panel) Update(props Props) {
	p.pendMu.Lock()
	p.pending = &props
	p.pendMu.Unlock()
	select {
	case p.notify <- struct{}{}:
	default:
	}
}

// Do runs fn with the scene state on the loop goroutine and waits for
// it to return. It returns false if the panel closed before fn ran.
func (p *Panel) Do(fn func(st *State)) bool {
	ran := make(chan struct{})
	select {
	case p.actions <- func(st *State) { fn(st); close(ran) }:
	case <-p.ctx.Done():
		return false
	}
	select {
	case <-ran:
		return true
	case <-p.ctx.Done():
		select {
		case <-ran:
			return true
		default:
			return false
		}
	}
}

// Controls runs fn with the camera controls on the loop goroutine, as
// for forwarded pointer input, and waits for it to return.
func (p *Panel) Controls(fn func(oc *xyz.OrbitControls)) bool {
	return p.Do(func(st *State) { fn(st.Controls()) })
}

// Run runs the render loop until the context is done or the panel is
// closed, then closes the panel and its scene state. Each frame moves the marker to
// the latest sample, renders the scene and presents it. Nothing is
// presented after Run returns.
func (p *Panel) Run(ctx context.Context) error {
	p.mu.Lock()
	switch {
	case p.closed:
		p.mu.Unlock()
		return ErrClosed
	case p.running:
		p.mu.Unlock()
		return ErrRunning
	}
	p.running = true
	p.mu.Unlock()

	defer close(p.done)
	defer p.state.Close()
	defer p.stop()
	p.logger.Info("render loop started", "interval", p.interval)

	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			p.logger.Info("render loop stopped", "reason", ctx.Err())
			return ctx.Err()
		case <-p.ctx.Done():
			p.logger.Info("render loop stopped", "reason", "closed")
			return nil
		case <-p.notify:
			p.pendMu.Lock()
			props := p.pending
			p.pending = nil
			p.pendMu.Unlock()
			if props != nil {
				p.apply(*props, false)
			}
		case fn := <-p.actions:
			fn(p.state)
		case <-ticker.C:
			p.frame()
		}
	}
}

// Close stops the render loop, waiting for it to finish, and releases
// the scene. It is safe to call more than once.
func (p *Panel) Close() {
	p.mu.Lock()
	already := p.closed
	p.closed = true
	running := p.running
	p.mu.Unlock()

	p.cancel()
	if running {
		<-p.done
		return
	}
	if !already {
		p.state.Close()
	}
}

// stop marks the panel closed when the loop exits, so that pending and
// later calls to Do return false.
func (p *Panel) stop() {
	p.mu.Lock()
	p.closed = true
	p.mu.Unlock()
	p.cancel()
}

// apply diffs the props against the last applied ones and runs only
// the reconcilers whose inputs changed.
func (p *Panel) apply(props Props, first bool) {
	if err := props.Options.Validate(); err != nil {
		p.logger.Warn("invalid options", "err", err)
	}
	prev := p.props
	if first || props.Width != prev.Width || props.Height != prev.Height {
		p.state.Resize(props.Width, props.Height)
	}
	if axis := props.Options.Axis(); first || axis != prev.Options.Axis() {
		p.state.ReconcileAxes(axis)
	}
	if shape := props.Options.Shape(); first || shape != prev.Options.Shape() {
		p.state.ReconcileShape(shape)
	}
	if first || props.Data != prev.Data {
		p.samples = frame.Extract(props.Data)
		p.logger.Debug("extracted samples", "n", len(p.samples))
	}
	p.props = props
}

// frame renders one frame, logging render errors when they change.
func (p *Panel) frame() {
	p.state.UpdatePosition(p.samples)
	err := p.state.Render()
	msg := ""
	if err != nil {
		msg = err.Error()
	}
	if msg != p.lastErr && err != nil {
		p.logger.Error("render failed", "err", err)
	}
	p.lastErr = msg
}
