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

import "time"

const (
	CloudEventsSpecVersion = "1.0"
	EventSource            = "campusnoc/dashboard"

	// DashboardRefreshedEventType announces a newly published view.
	DashboardRefreshedEventType = "com.carverauto.campusnoc.dashboard.refreshed"
	DashboardRefreshedSubject   = "campusnoc.dashboard.refreshed"
)

// CloudEvent represents a CloudEvents v1.0 compliant event.
type CloudEvent struct {
	SpecVersion     string      `json:"specversion"`
	ID              string      `json:"id"`
	Source          string      `json:"source"`
	Type            string      `json:"type"`
	DataContentType string      `json:"datacontenttype"`
	Subject         string      `json:"subject,omitempty"`
	Time            *time.Time  `json:"time,omitempty"`
	Data            interface{} `json:"data,omitempty"`
}

// DashboardRefreshedData is the payload of a refresh event. It carries the
// headline numbers only; consumers fetch the full view over HTTP.
type DashboardRefreshedData struct {
	RefreshID        string     `json:"refresh_id"`
	Version          uint64     `json:"version"`
	Range            string     `json:"range"`
	RangeDays        int        `json:"range_days"`
	RefreshedAt      time.Time  `json:"refreshed_at"`
	Overview         Overview   `json:"overview"`
	Drops            DropCounts `json:"drops"`
	SelectedDeviceID string     `json:"selected_device_id,omitempty"`
}
