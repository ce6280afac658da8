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

package models

import "encoding/json"

// AlertSeverity is one of the three histogram buckets.
type AlertSeverity string

const (
	AlertCritical AlertSeverity = "critical"
	AlertMajor    AlertSeverity = "major"
	AlertMinor    AlertSeverity = "minor"
)

// AlertEvent is one alert from the alerting system.
type AlertEvent struct {
	ID       string        `json:"id"`
	DeviceID string        `json:"deviceId"`
	Severity AlertSeverity `json:"severity"`
	Type     string        `json:"type"`
	OpenedAt Timestamp     `json:"openedAt"`
	Status   string        `json:"status"`

	Malformed bool `json:"-"`
}

// UnmarshalJSON flags a wrongly typed event instead of failing the feed.
func (e *AlertEvent) UnmarshalJSON(b []byte) error {
	type wire AlertEvent

	var w wire
	err := json.Unmarshal(b, &w)

	*e = AlertEvent(w)
	e.Malformed = err != nil

	return nil
}

// AlertFeed is the alert summary payload; Recent is expected most-recent
// first.
type AlertFeed struct {
	Total  *int         `json:"total,omitempty"`
	Open   *int         `json:"open,omitempty"`
	Closed *int         `json:"closed,omitempty"`
	Recent []AlertEvent `json:"recent,omitempty"`
}
