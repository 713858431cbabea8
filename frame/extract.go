// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package frame

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
	"unicode"
)

// Sample is one (x, y, z) coordinate taken from a row of a frame.
type Sample struct {
	X, Y, Z float64
}

// IsFinite returns whether all three coordinates are finite numbers.
func (s Sample) IsFinite() bool {
	return !math.IsNaN(s.X) && !math.IsInf(s.X, 0) &&
		!math.IsNaN(s.Y) && !math.IsInf(s.Y, 0) &&
		!math.IsNaN(s.Z) && !math.IsInf(s.Z, 0)
}

func (s Sample) String() string {
	return fmt.Sprintf("(%g, %g, %g)", s.X, s.Y, s.Z)
}

// Extract returns the coordinate samples held in the first frame of the
// given data, using the fields named x, y and z (case-insensitive).
// The number of samples is the length of the shortest of the three fields.
// If there is no frame, or any of the three fields is missing, it returns
// nil. Values that do not parse as numbers become NaN.
// Extract has no side effects and may be called any number of times.
func Extract(data *Data) []Sample {
	fr := data.First()
	if fr == nil {
		return nil
	}
	xf := fr.FieldByName("x")
	yf := fr.FieldByName("y")
	zf := fr.FieldByName("z")
	if xf == nil || yf == nil || zf == nil {
		return nil
	}
	n := min(xf.Len(), yf.Len(), zf.Len())
	if n == 0 {
		return nil
	}
	samples := make([]Sample, n)
	for i := range n {
		samples[i] = Sample{
			X: ParseFloat(xf.Values[i]),
			Y: ParseFloat(yf.Values[i]),
			Z: ParseFloat(zf.Values[i]),
		}
	}
	return samples
}

// Latest returns the last sample, and false if there are none.
func Latest(samples []Sample) (Sample, bool) {
	if len(samples) == 0 {
		return Sample{}, false
	}
	return samples[len(samples)-1], true
}

// ParseFloat converts a loosely typed cell value to a float64 in the
// lenient way query results are usually read: numbers convert directly,
// strings are parsed for their longest leading decimal number (so "2.5m"
// is 2.5 and "  -3" is -3), and anything else is NaN.
func ParseFloat(v any) float64 {
	switch x := v.(type) {
	case float64:
		return x
	case float32:
		return float64(x)
	case int:
		return float64(x)
	case int8:
		return float64(x)
	case int16:
		return float64(x)
	case int32:
		return float64(x)
	case int64:
		return float64(x)
	case uint:
		return float64(x)
	case uint8:
		return float64(x)
	case uint16:
		return float64(x)
	case uint32:
		return float64(x)
	case uint64:
		return float64(x)
	case json.Number:
		return parseFloatPrefix(string(x))
	case string:
		return parseFloatPrefix(x)
	case []byte:
		return parseFloatPrefix(string(x))
	case fmt.Stringer:
		return parseFloatPrefix(x.String())
	}
	return math.NaN()
}

// parseFloatPrefix parses the longest prefix of s (after leading white space)
// that is a decimal floating point literal, or an optionally signed Infinity.
func parseFloatPrefix(s string) float64 {
	s = strings.TrimLeftFunc(s, unicode.IsSpace)
	n := floatPrefixLen(s)
	if n == 0 {
		return math.NaN()
	}
	f, err := strconv.ParseFloat(s[:n], 64)
	if err != nil {
		// out of range values come back as ±Inf with an error, which is
		// the value we want
		if ne, ok := err.(*strconv.NumError); ok && ne.Err == strconv.ErrRange {
			return f
		}
		return math.NaN()
	}
	return f
}

// floatPrefixLen returns the length of the decimal literal at the start of s.
func floatPrefixLen(s string) int {
	i := 0
	if i < len(s) && (s[i] == '+' || s[i] == '-') {
		i++
	}
	if strings.HasPrefix(s[i:], "Infinity") {
		return i + len("Infinity")
	}
	digits := 0
	for i < len(s) && isDigit(s[i]) {
		i++
		digits++
	}
	if i < len(s) && s[i] == '.' {
		j := i + 1
		frac := 0
		for j < len(s) && isDigit(s[j]) {
			j++
			frac++
		}
		if digits > 0 || frac > 0 {
			i = j
			digits += frac
		}
	}
	if digits == 0 {
		return 0
	}
	if i < len(s) && (s[i] == 'e' || s[i] == 'E') {
		j := i + 1
		if j < len(s) && (s[j] == '+' || s[j] == '-') {
			j++
		}
		exp := 0
		for j < len(s) && isDigit(s[j]) {
			j++
			exp++
		}
		if exp > 0 {
			i = j
		}
	}
	return i
}

func isDigit(c byte) bool {
	return '0' <= c && c <= '9'
}
