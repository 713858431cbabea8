// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package source

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"cogentcore.org/core/base/errors"
	"cogentcore.org/xyzpanel/frame"
	_ "modernc.org/sqlite"
)

// DefaultQueryInterval is the default time between SQL queries.
const DefaultQueryInterval = time.Second

// SQL is a source that runs a query periodically, with each result
// column becoming a field of the same name.
type SQL struct {

	// DB is the database to query.
	DB *sql.DB

	// Query is the query to run; its columns are typically x, y and z.
	Query string

	// Interval is the time between queries.
	Interval time.Duration
}

// OpenSQL opens the sqlite database with the given data source name
// and returns a source running the given query on it. The caller
// closes the returned source.
func OpenSQL(dsn, query string) (*SQL, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("source.SQL: opening %s: %w", dsn, err)
	}
	return NewSQL(db, query), nil
}

// NewSQL returns a new source running the given query on the database.
func NewSQL(db *sql.DB, query string) *SQL {
	return &SQL{DB: db, Query: query, Interval: DefaultQueryInterval}
}

// Close closes the database.
func (s *SQL) Close() error {
	return s.DB.Close()
}

// Load runs the query once and returns the result as data with a
// single frame.
func (s *SQL) Load(ctx context.Context) (*frame.Data, error) {
	rows, err := s.DB.QueryContext(ctx, s.Query)
	if err != nil {
		return nil, fmt.Errorf("source.SQL: %w", err)
	}
	defer rows.Close()
	cols, err := rows.Columns()
	if err != nil {
		return nil, fmt.Errorf("source.SQL: %w", err)
	}
	fr := frame.NewFrame("query")
	for _, c := range cols {
		fr.Fields = append(fr.Fields, frame.NewField(c))
	}
	vals := make([]any, len(cols))
	ptrs := make([]any, len(cols))
	for i := range vals {
		ptrs[i] = &vals[i]
	}
	for rows.Next() {
		if err := rows.Scan(ptrs...); err != nil {
			return nil, fmt.Errorf("source.SQL: %w", err)
		}
		for i, v := range vals {
			if b, ok := v.([]byte); ok {
				v = string(b)
			}
			fr.Fields[i].Values = append(fr.Fields[i].Values, v)
		}
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("source.SQL: %w", err)
	}
	return frame.NewData(fr), nil
}

// Run runs the query now and then at every interval, calling fn with
// each result, until the context is done. The first query must succeed;
// later failures are logged and skipped.
func (s *SQL) Run(ctx context.Context, fn func(d *frame.Data)) error {
	d, err := s.Load(ctx)
	if err != nil {
		return err
	}
	fn(d)
	interval := s.Interval
	if interval <= 0 {
		interval = DefaultQueryInterval
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			d, err := s.Load(ctx)
			if errors.Log(err) != nil {
				continue
			}
			fn(d)
		}
	}
}
