// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package frame provides the tabular query result that a host hands to a
// panel, and the extraction of (x, y, z) coordinate samples from it.
//
// A [Data] holds a list of [Frame]s (the query "series"), each of which is a
// set of named [Field] columns with indexable values. Values are kept as
// loosely typed as the host produces them; conversion to float64 happens only
// in [Extract].
package frame

import (
	"strings"
)

// Data is the result of a host query: zero or more frames.
type Data struct {

	// Series is the list of frames, in query order.
	Series []*Frame `json:"series"`
}

// Frame is one named table of parallel columns.
type Frame struct {

	// Name is the optional name of the frame (query ref id, table name).
	Name string `json:"name,omitempty"`

	// Fields are the columns of the frame.
	Fields []*Field `json:"fields"`
}

// Field is a named column of values. Columns of a frame are expected to
// have the same length but nothing enforces it.
type Field struct {

	// Name of the column.
	Name string `json:"name"`

	// Values holds the column values: numbers, strings, or anything else
	// the source produced.
	Values []any `json:"values"`
}

// NewField returns a new field with the given name and values.
func NewField(name string, values ...any) *Field {
	return &Field{Name: name, Values: values}
}

// NewFrame returns a new frame with the given fields.
func NewFrame(name string, fields ...*Field) *Frame {
	return &Frame{Name: name, Fields: fields}
}

// NewData returns a new Data holding the given frames.
func NewData(frames ...*Frame) *Data {
	return &Data{Series: frames}
}

// Len returns the number of values in the field, 0 for a nil field.
func (f *Field) Len() int {
	if f == nil {
		return 0
	}
	return len(f.Values)
}

// At returns the value at index i, or nil if i is out of range.
func (f *Field) At(i int) any {
	if f == nil || i < 0 || i >= len(f.Values) {
		return nil
	}
	return f.Values[i]
}

// FieldByName returns the first field whose name matches the given name
// case-insensitively, or nil if there is none.
func (fr *Frame) FieldByName(name string) *Field {
	if fr == nil {
		return nil
	}
	for _, f := range fr.Fields {
		if f != nil && strings.EqualFold(f.Name, name) {
			return f
		}
	}
	return nil
}

// First returns the first frame, or nil if there is none.
func (d *Data) First() *Frame {
	if d == nil || len(d.Series) == 0 {
		return nil
	}
	return d.Series[0]
}
