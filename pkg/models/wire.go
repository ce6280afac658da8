/*
 * Copyright 2025 Carver Automation Corporation.
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *     http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

// Package models holds the campus inventory and telemetry records consumed by
// the dashboard, the view models it produces, and service configuration.
package models

import (
	"bytes"
	"encoding/json"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/araddon/dateparse"
)

// Timestamp decodes leniently: RFC 3339, date-only, and most human layouts
// are accepted via dateparse, numbers are epoch milliseconds, and anything
// unparseable decodes to the zero value instead of failing the payload.
type Timestamp struct {
	time.Time
}

func NewTimestamp(t time.Time) Timestamp {
	if t.IsZero() {
		return Timestamp{}
	}

	return Timestamp{Time: t.UTC()}
}

// ParseTimestamp returns the zero time when s cannot be parsed.
func ParseTimestamp(s string) time.Time {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}
	}

	parsed, err := dateparse.ParseIn(s, time.UTC)
	if err != nil {
		return time.Time{}
	}

	return parsed.UTC()
}

func (t *Timestamp) UnmarshalJSON(b []byte) error {
	raw := bytes.TrimSpace(b)
	t.Time = time.Time{}

	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return nil
	}

	if raw[0] == '"' {
		var s string
		if err := json.Unmarshal(raw, &s); err == nil {
			t.Time = ParseTimestamp(s)
		}

		return nil
	}

	ms, err := strconv.ParseFloat(string(raw), 64)
	if err != nil || math.IsNaN(ms) || math.IsInf(ms, 0) {
		return nil
	}

	t.Time = time.UnixMilli(int64(ms)).UTC()

	return nil
}

func (t Timestamp) MarshalJSON() ([]byte, error) {
	if t.IsZero() {
		return []byte("null"), nil
	}

	return json.Marshal(t.UTC().Format(time.RFC3339Nano))
}

// Valid reports whether the timestamp was present and parseable.
func (t Timestamp) Valid() bool {
	return !t.IsZero()
}

// Metric is a producer-supplied number that may arrive missing, null, as a
// numeric string, or as garbage. Garbage decodes to NaN so consumers can
// tell it apart from a genuine zero.
type Metric float64

func (m *Metric) UnmarshalJSON(b []byte) error {
	raw := bytes.TrimSpace(b)

	switch {
	case len(raw) == 0 || bytes.Equal(raw, []byte("null")):
		*m = 0
	case raw[0] == '"':
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			*m = Metric(math.NaN())
			return nil
		}

		v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
		if err != nil {
			*m = Metric(math.NaN())
			return nil
		}

		*m = Metric(v)
	default:
		v, err := strconv.ParseFloat(string(raw), 64)
		if err != nil {
			*m = Metric(math.NaN())
			return nil
		}

		*m = Metric(v)
	}

	return nil
}

func (m Metric) MarshalJSON() ([]byte, error) {
	f := float64(m)
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return []byte("null"), nil
	}

	return json.Marshal(f)
}

// Finite reports whether m is a usable number.
func (m Metric) Finite() bool {
	f := float64(m)

	return !math.IsNaN(f) && !math.IsInf(f, 0)
}

// Percent returns m when it lies in [0,100] and 0 otherwise.
func (m Metric) Percent() float64 {
	f := float64(m)
	if !m.Finite() || f < 0 || f > 100 {
		return 0
	}

	return f
}

// NonNegative returns m when it is finite and >= 0, otherwise 0.
func (m Metric) NonNegative() float64 {
	f := float64(m)
	if !m.Finite() || f < 0 {
		return 0
	}

	return f
}
