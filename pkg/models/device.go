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

import (
	"encoding/json"
	"strings"
)

// DeviceRole is a device's position in the campus hierarchy.
type DeviceRole string

const (
	RoleRouter             DeviceRole = "router"
	RoleDistributionSwitch DeviceRole = "distribution-switch"
	RoleAccessSwitch       DeviceRole = "access-switch"
)

// KnownRoles returns the three roles in display order.
func KnownRoles() []DeviceRole {
	return []DeviceRole{RoleRouter, RoleDistributionSwitch, RoleAccessSwitch}
}

// Label is the human-readable role name used on role cards.
func (r DeviceRole) Label() string {
	switch r {
	case RoleRouter:
		return "Routers"
	case RoleDistributionSwitch:
		return "Distribution Switches"
	case RoleAccessSwitch:
		return "Access Switches"
	default:
		return string(r)
	}
}

// NormalizeRole maps a raw role token to a known role. The inventory service
// emits "dist-switch" for distribution switches.
func NormalizeRole(raw string) (DeviceRole, bool) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "router":
		return RoleRouter, true
	case "distribution-switch", "dist-switch":
		return RoleDistributionSwitch, true
	case "access-switch":
		return RoleAccessSwitch, true
	default:
		return "", false
	}
}

// ComplianceStatus is the verdict delivered by the external rule engine.
type ComplianceStatus string

const (
	ComplianceCompliant    ComplianceStatus = "compliant"
	ComplianceWarning      ComplianceStatus = "warning"
	ComplianceNonCompliant ComplianceStatus = "non-compliant"
)

// Device is one inventory entry as delivered by the device registry.
type Device struct {
	ID               string           `json:"id"`
	Name             string           `json:"name"`
	Role             string           `json:"role"`
	Layer            string           `json:"layer,omitempty"`
	IPAddress        string           `json:"ipAddress,omitempty"`
	Model            string           `json:"model,omitempty"`
	OSVersion        string           `json:"osVersion,omitempty"`
	HealthScore      Metric           `json:"healthScore"`
	CPUUsage         Metric           `json:"cpuUsage"`
	MemoryUsage      Metric           `json:"memoryUsage"`
	UptimeHours      Metric           `json:"uptimeHours"`
	ComplianceStatus ComplianceStatus `json:"complianceStatus,omitempty"`
	LastConfigBackup Timestamp        `json:"lastConfigBackup"`

	// Malformed is set when a field arrived with the wrong JSON type.
	Malformed bool `json:"-"`
}

// UnmarshalJSON keeps a record whose fields have the wrong JSON type and
// flags it instead of failing the whole registry payload.
func (d *Device) UnmarshalJSON(b []byte) error {
	type wire Device

	var w wire
	err := json.Unmarshal(b, &w)

	*d = Device(w)
	d.Malformed = err != nil

	return nil
}

// DisplayName falls back to the identifier when the registry has no name.
func (d *Device) DisplayName() string {
	if d.Name != "" {
		return d.Name
	}

	return d.ID
}
