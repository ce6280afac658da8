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


package dashboard

import (
	"errors"
	"fmt"
)

var (
	// ErrTransportFailure marks a batch or history fetch that did not reach a
	// usable response.
	ErrTransportFailure = errors.New("failed to load dashboard data from backend")
	// ErrSelectionSuperseded is returned when a newer device selection was
	// issued while this one was in flight.
	ErrSelectionSuperseded = errors.New("device selection superseded by a newer request")
	// ErrDeviceIDRequired is returned when a selection names no device.
	ErrDeviceIDRequired = errors.New("device id is required")
)

// Fetch operation names, used in errors, spans and log fields.
const (
	OpDevices         = "devices"
	OpAutomation      = "automation_summary"
	OpCompliance      = "compliance"
	OpAlerts          = "alerts"
	OpTrends          = "trends"
	OpRecommendations = "recommendations"
	OpConfigHistory   = "config_history"
	OpDeviceStatus    = "device_status"
	OpTickets         = "tickets"
)

// FetchError records which source call failed.
type FetchError struct {
	Op  string
	Err error
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("fetch %s: %v", e.Op, e.Err)
}

func (e *FetchError) Unwrap() error {
	return e.Err
}

func transportError(op string, err error) error {
	return fmt.Errorf("%w: %w", ErrTransportFailure, &FetchError{Op: op, Err: err})
}
