// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package options

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"cogentcore.org/core/base/errors"
	"github.com/fsnotify/fsnotify"
	"github.com/pelletier/go-toml/v2"
)

// Read reads options in TOML format from the given reader.
// Keys that are not present keep their default values, and
// the result is validated.
func Read(r io.Reader) (*Options, error) {
	o := New()
	if err := toml.NewDecoder(r).Decode(o); err != nil {
		return nil, fmt.Errorf("options: decoding TOML: %w", err)
	}
	errors.Log(o.Validate())
	return o, nil
}

// Write writes the options in TOML format to the given writer.
func (o *Options) Write(w io.Writer) error {
	return toml.NewEncoder(w).Encode(o)
}

// Open reads options from the given TOML file.
func Open(filename string) (*Options, error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	o, err := Read(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", filename, err)
	}
	return o, nil
}

// Save writes the options to the given TOML file.
func (o *Options) Save(filename string) error {
	f, err := os.Create(filename)
	if err != nil {
		return err
	}
	if err := o.Write(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// Watch watches the given options file and calls fn with the newly read
// options every time the file is written or re-created, until the context
// is done. Files that fail to parse are logged and skipped, so that a
// partially written file does not stop the watch.
func Watch(ctx context.Context, filename string, fn func(o *Options)) error {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("options.Watch: %w", err)
	}
	defer w.Close()
	// watching the directory catches editors that replace the file
	if err := w.Add(filepath.Dir(filename)); err != nil {
		return fmt.Errorf("options.Watch: %w", err)
	}
	base := filepath.Base(filename)
	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-w.Events:
			if !ok {
				return nil
			}
			if filepath.Base(ev.Name) != base {
				continue
			}
			if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) {
				continue
			}
			o, err := Open(filename)
			if errors.Log(err) != nil {
				continue
			}
			slog.Debug("options reloaded", "file", filename)
			fn(o)
		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			errors.Log(err)
		}
	}
}
