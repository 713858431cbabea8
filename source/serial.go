// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package source

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log/slog"
	"math"
	"strings"

	"cogentcore.org/xyzpanel/frame"
	"go.bug.st/serial"
)

// DefaultWindow is the default number of samples kept by a [Serial] source.
const DefaultWindow = 100

// Serial is a source that reads coordinate lines from a serial port.
// Each line holds x, y and z values separated by commas, semicolons or
// spaces. Every line read yields data holding the last Window samples.
type Serial struct {

	// Port is the serial port name, such as /dev/ttyUSB0.
	Port string

	// BaudRate is the port speed.
	BaudRate int

	// Window is the number of most recent samples kept.
	Window int
}

// NewSerial returns a new serial source for the given port and baud rate.
func NewSerial(port string, baud int) *Serial {
	return &Serial{Port: port, BaudRate: baud, Window: DefaultWindow}
}

// Run opens the port and reads lines from it until the context is done
// or the port fails.
func (s *Serial) Run(ctx context.Context, fn func(d *frame.Data)) error {
	mode := &serial.Mode{
		BaudRate: s.BaudRate,
		DataBits: 8,
		Parity:   serial.NoParity,
		StopBits: serial.OneStopBit,
	}
	port, err := serial.Open(s.Port, mode)
	if err != nil {
		return fmt.Errorf("source.Serial: opening %s: %w", s.Port, err)
	}
	defer port.Close()
	slog.Info("serial port opened", "port", s.Port, "baud", s.BaudRate)
	return ReadLines(ctx, port, s.Window, fn)
}

// ReadLines reads coordinate lines from r until the context is done or
// r ends, and calls fn with the last window samples after each valid
// line. Lines without three values, or with no numeric value, are skipped.
// If r is an [io.Closer], it is closed when the context is done, which
// ends any read still pending; otherwise the caller must unblock it.
func ReadLines(ctx context.Context, r io.Reader, window int, fn func(d *frame.Data)) error {
	if window <= 0 {
		window = DefaultWindow
	}
	scan := bufio.NewScanner(r)
	lines := make(chan string)
	errc := make(chan error, 1)
	go func() {
		defer close(lines)
		for scan.Scan() {
			select {
			case lines <- scan.Text():
			case <-ctx.Done():
				return
			}
		}
		errc <- scan.Err()
	}()

	var samples []frame.Sample
	for {
		select {
		case <-ctx.Done():
			if c, ok := r.(io.Closer); ok {
				c.Close()
			}
			return ctx.Err()
		case line, ok := <-lines:
			if !ok {
				return <-errc
			}
			sm, ok := ParseLine(line)
			if !ok {
				slog.Debug("skipping serial line", "line", line)
				continue
			}
			samples = append(samples, sm)
			if len(samples) > window {
				samples = samples[len(samples)-window:]
			}
			fn(SamplesData(samples))
		}
	}
}

// ParseLine parses a line of three coordinate values. It returns false
// if the line does not have exactly three values, or if none of them
// is a number, as for a header line.
func ParseLine(line string) (frame.Sample, bool) {
	fs := strings.FieldsFunc(line, func(r rune) bool {
		return r == ',' || r == ';' || r == ' ' || r == '\t'
	})
	if len(fs) != 3 {
		return frame.Sample{}, false
	}
	sm := frame.Sample{X: frame.ParseFloat(fs[0]), Y: frame.ParseFloat(fs[1]), Z: frame.ParseFloat(fs[2])}
	if math.IsNaN(sm.X) && math.IsNaN(sm.Y) && math.IsNaN(sm.Z) {
		return frame.Sample{}, false
	}
	return sm, true
}

// SamplesData returns data with a single frame holding the samples as
// x, y and z fields.
func SamplesData(samples []frame.Sample) *frame.Data {
	x := make([]any, len(samples))
	y := make([]any, len(samples))
	z := make([]any, len(samples))
	for i, sm := range samples {
		x[i], y[i], z[i] = sm.X, sm.Y, sm.Z
	}
	return frame.NewData(frame.NewFrame("serial",
		frame.NewField("x", x...), frame.NewField("y", y...), frame.NewField("z", z...)))
}
