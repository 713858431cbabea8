// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Command xyzpanel renders a 3D panel of a grid, axes and a marker
// following the latest (x, y, z) point of a data source, and serves a
// live preview of it over HTTP.
package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	cerrors "cogentcore.org/core/base/errors"
	"cogentcore.org/core/base/iox/imagex"
	"cogentcore.org/core/cli"
	"cogentcore.org/xyzpanel/frame"
	"cogentcore.org/xyzpanel/options"
	"cogentcore.org/xyzpanel/panel"
	"cogentcore.org/xyzpanel/server"
	"cogentcore.org/xyzpanel/source"
	"golang.org/x/sync/errgroup"
)

// Config is the command configuration.
type Config struct {

	// Options is the TOML options file, which is watched for changes.
	// It is created with default options if it does not exist.
	Options string

	// CSV is a CSV data file with x, y and z columns, which is watched.
	CSV string

	// SQLite is a sqlite database queried for data.
	SQLite string

	// Query is the query run on the SQLite database.
	Query string `default:"SELECT x, y, z FROM points"`

	// Interval is the time in seconds between SQLite queries.
	Interval float64 `default:"1"`

	// Serial is a serial port streaming x, y, z lines.
	Serial string

	// Baud is the serial port speed.
	Baud int `default:"9600"`

	// Window is the number of serial samples kept.
	Window int `default:"100"`

	// Addr is the preview server address.
	Addr string `default:"localhost:8080"`

	// Size is the view size as WIDTHxHEIGHT.
	Size string `default:"800x600"`

	// FPS is the number of frames rendered per second.
	FPS float64 `default:"60"`

	// Snapshot renders one frame to the given PNG file and exits.
	Snapshot string

	// Form prints the settings form as JSON and exits.
	Form bool

	// Verbose enables debug logging.
	Verbose bool
}

// newConfig returns a new configuration with the default values.
func newConfig() *Config {
	cfg := &Config{}
	cerrors.Log(cli.SetFromDefaults(cfg))
	return cfg
}

func main() {
	cfg := newConfig()
	flag.StringVar(&cfg.Options, "options", cfg.Options, "TOML options `file`, watched for changes")
	flag.StringVar(&cfg.CSV, "csv", cfg.CSV, "CSV data `file` with x, y, z columns")
	flag.StringVar(&cfg.SQLite, "sqlite", cfg.SQLite, "sqlite database `dsn` to query")
	flag.StringVar(&cfg.Query, "query", cfg.Query, "`sql` query run on the sqlite database")
	flag.Float64Var(&cfg.Interval, "interval", cfg.Interval, "`seconds` between sqlite queries")
	flag.StringVar(&cfg.Serial, "serial", cfg.Serial, "serial `port` streaming x, y, z lines")
	flag.IntVar(&cfg.Baud, "baud", cfg.Baud, "serial port baud `rate`")
	flag.IntVar(&cfg.Window, "window", cfg.Window, "number of serial `samples` kept")
	flag.StringVar(&cfg.Addr, "addr", cfg.Addr, "preview server `address`")
	flag.StringVar(&cfg.Size, "size", cfg.Size, "view size as `WxH`")
	flag.Float64Var(&cfg.FPS, "fps", cfg.FPS, "frames rendered per second")
	flag.StringVar(&cfg.Snapshot, "snapshot", cfg.Snapshot, "render one frame to the PNG `file` and exit")
	flag.BoolVar(&cfg.Form, "form", cfg.Form, "print the settings form as JSON and exit")
	flag.BoolVar(&cfg.Verbose, "v", cfg.Verbose, "verbose debug logging")
	flag.Parse()

	level := slog.LevelInfo
	if cfg.Verbose {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))

	if err := run(cfg); err != nil {
		slog.Error("xyzpanel", "err", err)
		os.Exit(1)
	}
}

func run(cfg *Config) error {
	if cfg.Form {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "\t")
		return enc.Encode(options.Form())
	}
	width, height, err := parseSize(cfg.Size)
	if err != nil {
		return err
	}
	opts, err := loadOptions(cfg.Options)
	if err != nil {
		return err
	}
	src, err := newSource(cfg)
	if err != nil {
		return err
	}
	if c, ok := src.(interface{ Close() error }); ok {
		defer c.Close()
	}
	props := panel.Props{Width: width, Height: height, Options: *opts}

	if cfg.Snapshot != "" {
		return snapshot(cfg.Snapshot, props, src)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	pv := server.NewPreview()
	fps := cfg.FPS
	if fps <= 0 {
		fps = 60
	}
	pn := panel.New(pv, props, panel.WithFrameInterval(time.Duration(float64(time.Second)/fps)))
	defer pn.Close()
	srv := server.New(pv, pn, props)

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error { return ignoreCanceled(pn.Run(ctx)) })
	g.Go(func() error { return srv.ListenAndServe(ctx, cfg.Addr) })
	if src != nil {
		g.Go(func() error { return ignoreCanceled(src.Run(ctx, srv.SetData)) })
	}
	if cfg.Options != "" {
		g.Go(func() error {
			return options.Watch(ctx, cfg.Options, func(o *options.Options) { srv.SetOptions(*o) })
		})
	}
	return g.Wait()
}

// snapshot renders one frame of the first data of the source.
func snapshot(filename string, props panel.Props, src source.Source) error {
	st := panel.NewState(nil, props.Width, props.Height)
	defer st.Close()
	st.ReconcileAxes(props.Options.Axis())
	st.ReconcileShape(props.Options.Shape())
	if src != nil {
		ctx, cancel := context.WithCancel(context.Background())
		var data *frame.Data
		err := src.Run(ctx, func(d *frame.Data) {
			data = d
			cancel()
		})
		if err := ignoreCanceled(err); err != nil {
			return err
		}
		st.UpdatePosition(frame.Extract(data))
	}
	if err := st.Render(); err != nil {
		return err
	}
	if err := imagex.Save(st.Renderer.Image(), filename); err != nil {
		return err
	}
	slog.Info("saved snapshot", "file", filename)
	return nil
}

// loadOptions opens the options file, creating it with default options
// if it does not exist.
func loadOptions(filename string) (*options.Options, error) {
	if filename == "" {
		return options.New(), nil
	}
	o, err := options.Open(filename)
	if errors.Is(err, fs.ErrNotExist) {
		o = options.New()
		if err := o.Save(filename); err != nil {
			return nil, err
		}
		slog.Info("created options file", "file", filename)
		return o, nil
	}
	return o, err
}

// newSource returns the data source selected by the configuration,
// or nil if there is none.
func newSource(cfg *Config) (source.Source, error) {
	n := 0
	for _, s := range []string{cfg.CSV, cfg.SQLite, cfg.Serial} {
		if s != "" {
			n++
		}
	}
	switch {
	case n > 1:
		return nil, errors.New("only one of -csv, -sqlite and -serial can be used")
	case cfg.CSV != "":
		return source.NewCSV(cfg.CSV), nil
	case cfg.SQLite != "":
		s, err := source.OpenSQL(cfg.SQLite, cfg.Query)
		if err != nil {
			return nil, err
		}
		if cfg.Interval > 0 {
			s.Interval = time.Duration(cfg.Interval * float64(time.Second))
		}
		return s, nil
	case cfg.Serial != "":
		s := source.NewSerial(cfg.Serial, cfg.Baud)
		s.Window = cfg.Window
		return s, nil
	}
	return nil, nil
}

func parseSize(s string) (width, height int, err error) {
	if _, err := fmt.Sscanf(s, "%dx%d", &width, &height); err != nil {
		return 0, 0, fmt.Errorf("invalid size %q: %w", s, err)
	}
	if width <= 0 || height <= 0 {
		return 0, 0, fmt.Errorf("invalid size %q", s)
	}
	return width, height, nil
}

func ignoreCanceled(err error) error {
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}
