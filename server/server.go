// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package server serves a live preview of a panel over HTTP: the
// latest frame as PNG, a websocket stream of frames, and endpoints to
// read and replace the panel options, post new data and control the
// camera. Camera control messages may also be sent on the websocket.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"sync"
	"time"

	cerrors "cogentcore.org/core/base/errors"
	"cogentcore.org/xyzpanel/frame"
	"cogentcore.org/xyzpanel/options"
	"cogentcore.org/xyzpanel/panel"
	"cogentcore.org/xyzpanel/xyz"
	"github.com/gorilla/websocket"
)

// Target is the panel driven by a server, as [panel.Panel].
type Target interface {

	// Update applies new props.
	Update(props panel.Props)

	// Controls runs fn with the camera controls, returning false if
	// the panel is closed.
	Controls(fn func(oc *xyz.OrbitControls)) bool
}

// Server is the preview server of one panel. It keeps the current
// props of the panel, and forwards every change and every camera
// control message to the [Target].
type Server struct {

	// Preview is the surface the panel renders to.
	Preview *Preview

	target   Target
	upgrader websocket.Upgrader
	mux      *http.ServeMux

	mu    sync.Mutex
	props panel.Props
}

// OptionsResponse is the body of GET /api/options.
type OptionsResponse struct {
	Options options.Options     `json:"options"`
	Form    []options.FormField `json:"form"`
}

// New returns a new server for a panel rendering to the preview, with
// the given current props.
func New(pv *Preview, target Target, props panel.Props) *Server {
	s := &Server{Preview: pv, target: target, props: props, mux: http.NewServeMux()}
	s.mux.HandleFunc("GET /frame.png", s.handleFrame)
	s.mux.HandleFunc("GET /ws", s.handleWS)
	s.mux.HandleFunc("GET /api/options", s.handleGetOptions)
	s.mux.HandleFunc("PUT /api/options", s.handlePutOptions)
	s.mux.HandleFunc("POST /api/data", s.handlePostData)
	s.mux.HandleFunc("POST /api/camera", s.handlePostCamera)
	return s
}

// ServeHTTP implements [http.Handler].
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.mux.ServeHTTP(w, r)
}

// Props returns the current props.
func (s *Server) Props() panel.Props {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.props
}

// SetOptions replaces the panel options.
func (s *Server) SetOptions(o options.Options) {
	s.update(func(p *panel.Props) { p.Options = o })
}

// SetData replaces the panel data.
func (s *Server) SetData(d *frame.Data) {
	s.update(func(p *panel.Props) { p.Data = d })
}

// SetSize sets the size of the panel view.
func (s *Server) SetSize(width, height int) {
	s.update(func(p *panel.Props) { p.Width, p.Height = width, height })
}

func (s *Server) update(fn func(p *panel.Props)) {
	s.mu.Lock()
	fn(&s.props)
	props := s.props
	s.mu.Unlock()
	s.target.Update(props)
}

// ListenAndServe serves on the given address until the context is done.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{Addr: addr, Handler: s, ReadHeaderTimeout: 10 * time.Second}
	errc := make(chan error, 1)
	go func() { errc <- srv.ListenAndServe() }()
	slog.Info("preview server listening", "addr", addr)
	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
		sctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(sctx); err != nil {
			return err
		}
		if err := <-errc; !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	}
}

func (s *Server) handleFrame(w http.ResponseWriter, r *http.Request) {
	b, ok := s.Preview.Frame()
	if !ok {
		http.Error(w, "no frame rendered yet", http.StatusNotFound)
		return
	}
	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Cache-Control", "no-store")
	w.Write(b)
}

func (s *Server) handleWS(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if cerrors.Log(err) != nil {
		return
	}
	defer conn.Close()
	frames, cancel := s.Preview.Subscribe()
	defer cancel()
	slog.Debug("preview client connected", "remote", r.RemoteAddr)

	// text messages are camera controls; a read error means the client is gone
	gone := make(chan struct{})
	go func() {
		defer close(gone)
		for {
			typ, b, err := conn.ReadMessage()
			if err != nil {
				return
			}
			if typ != websocket.TextMessage {
				continue
			}
			var cm CameraMessage
			if err := json.Unmarshal(b, &cm); err != nil {
				slog.Debug("invalid camera message", "remote", r.RemoteAddr, "err", err)
				continue
			}
			if err := s.Camera(cm); err != nil {
				slog.Debug("camera message failed", "remote", r.RemoteAddr, "err", err)
			}
		}
	}()
	for {
		select {
		case <-gone:
			slog.Debug("preview client disconnected", "remote", r.RemoteAddr)
			return
		case <-r.Context().Done():
			return
		case b := <-frames:
			conn.SetWriteDeadline(time.Now().Add(5 * time.Second))
			if err := conn.WriteMessage(websocket.BinaryMessage, b); err != nil {
				slog.Debug("preview client write failed", "remote", r.RemoteAddr, "err", err)
				return
			}
		}
	}
}

func (s *Server) handleGetOptions(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, OptionsResponse{Options: s.Props().Options, Form: options.Form()})
}

func (s *Server) handlePutOptions(w http.ResponseWriter, r *http.Request) {
	o := s.Props().Options
	if err := json.NewDecoder(r.Body).Decode(&o); err != nil {
		http.Error(w, fmt.Sprintf("decoding options: %v", err), http.StatusBadRequest)
		return
	}
	if err := o.Validate(); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	s.SetOptions(o)
	slog.Info("options updated", "remote", r.RemoteAddr)
	writeJSON(w, o)
}

func (s *Server) handlePostData(w http.ResponseWriter, r *http.Request) {
	d, err := frame.ReadJSON(r.Body)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	s.SetData(d)
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handlePostCamera(w http.ResponseWriter, r *http.Request) {
	var cm CameraMessage
	if err := json.NewDecoder(r.Body).Decode(&cm); err != nil {
		http.Error(w, fmt.Sprintf("decoding camera message: %v", err), http.StatusBadRequest)
		return
	}
	switch err := s.Camera(cm); {
	case errors.Is(err, errPanelClosed):
		http.Error(w, err.Error(), http.StatusServiceUnavailable)
	case err != nil:
		http.Error(w, err.Error(), http.StatusBadRequest)
	default:
		w.WriteHeader(http.StatusNoContent)
	}
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	cerrors.Log(json.NewEncoder(w).Encode(v))
}
