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

// ErrorResponse is the JSON body of every API error.
type ErrorResponse struct {
	Message string `json:"message"`
	Status  int    `json:"status"`
}

// SelectionRequest is the body of a device selection call.
type SelectionRequest struct {
	DeviceID string `json:"device_id"`
}

// StatusResponse is the liveness payload.
type StatusResponse struct {
	Status      string    `json:"status"`
	Loaded      bool      `json:"loaded"`
	Version     uint64    `json:"version"`
	Range       string    `json:"range"`
	RefreshedAt time.Time `json:"refreshed_at"`
	LastError   string    `json:"last_error,omitempty"`
}
