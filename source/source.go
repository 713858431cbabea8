// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package source provides query results for a panel from local data:
// a watched CSV file, a periodic SQL query on a sqlite database, and
// a stream of coordinate lines from a serial port.
package source

import (
	"context"

	"cogentcore.org/xyzpanel/frame"
)

// Source produces query results.
type Source interface {

	// Run calls fn with each new result until the context is done or
	// the source fails. It returns nil or the context error when the
	// context is done.
	Run(ctx context.Context, fn func(d *frame.Data)) error
}
