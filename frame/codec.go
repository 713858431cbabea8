// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package frame

import (
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"
)

// ReadJSON decodes a [Data] from JSON of the form
//
//	{"series": [{"name": "a", "fields": [{"name": "x", "values": [1, 2]}]}]}
//
// Numbers are kept as [json.Number] so that no precision is lost before
// [Extract] converts them.
func ReadJSON(r io.Reader) (*Data, error) {
	dec := json.NewDecoder(r)
	dec.UseNumber()
	d := &Data{}
	if err := dec.Decode(d); err != nil {
		return nil, fmt.Errorf("frame.ReadJSON: %w", err)
	}
	return d, nil
}

// WriteJSON encodes the data as JSON.
func WriteJSON(w io.Writer, d *Data) error {
	return json.NewEncoder(w).Encode(d)
}

// ReadCSV reads a frame from CSV data whose first record is the header of
// column names. Cell values are kept as strings. Rows that are shorter than
// the header get nil values for their missing cells, so that all columns
// stay aligned by row.
func ReadCSV(r io.Reader, name string) (*Frame, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true
	cr.Comment = '#'
	header, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return NewFrame(name), nil
	}
	if err != nil {
		return nil, fmt.Errorf("frame.ReadCSV: header: %w", err)
	}
	fr := NewFrame(name)
	for _, h := range header {
		fr.Fields = append(fr.Fields, NewField(strings.TrimSpace(h)))
	}
	for {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("frame.ReadCSV: %w", err)
		}
		for i, f := range fr.Fields {
			if i < len(rec) {
				f.Values = append(f.Values, rec[i])
			} else {
				f.Values = append(f.Values, nil)
			}
		}
	}
	return fr, nil
}
