// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package source

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"cogentcore.org/core/base/errors"
	"cogentcore.org/xyzpanel/frame"
	"github.com/fsnotify/fsnotify"
)

// CSV is a source that reads a CSV file with a header row, and reads it
// again every time it is written or re-created.
type CSV struct {

	// Filename is the CSV file.
	Filename string
}

// NewCSV returns a new CSV source for the given file.
func NewCSV(filename string) *CSV {
	return &CSV{Filename: filename}
}

// Load reads the file into data with a single frame named after it.
func (c *CSV) Load() (*frame.Data, error) {
	f, err := os.Open(c.Filename)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	name := strings.TrimSuffix(filepath.Base(c.Filename), filepath.Ext(c.Filename))
	fr, err := frame.ReadCSV(f, name)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", c.Filename, err)
	}
	return frame.NewData(fr), nil
}

// Run loads the file and calls fn with it, then again on every change,
// until the context is done. The initial load must succeed; later load
// errors are logged and skipped.
func (c *CSV) Run(ctx context.Context, fn func(d *frame.Data)) error {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("source.CSV: %w", err)
	}
	defer w.Close()
	if err := w.Add(filepath.Dir(c.Filename)); err != nil {
		return fmt.Errorf("source.CSV: %w", err)
	}

	d, err := c.Load()
	if err != nil {
		return err
	}
	fn(d)

	base := filepath.Base(c.Filename)
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case ev, ok := <-w.Events:
			if !ok {
				return nil
			}
			if filepath.Base(ev.Name) != base || !(ev.Has(fsnotify.Write) || ev.Has(fsnotify.Create)) {
				continue
			}
			d, err := c.Load()
			if errors.Log(err) != nil {
				continue
			}
			slog.Debug("csv reloaded", "file", c.Filename)
			fn(d)
		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			errors.Log(err)
		}
	}
}
