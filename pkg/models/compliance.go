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

// RuleSeverity tags a catalog rule.
type RuleSeverity string

const (
	SeverityHigh   RuleSeverity = "high"
	SeverityMedium RuleSeverity = "medium"
	SeverityLow    RuleSeverity = "low"
)

// ComplianceRule is one entry of the external rule catalog.
type ComplianceRule struct {
	ID       string       `json:"id" csv:"id"`
	Name     string       `json:"name" csv:"name"`
	Severity RuleSeverity `json:"severity" csv:"severity"`
}

// DefaultRuleCatalog is used when the compliance feed ships no catalog.
func DefaultRuleCatalog() []ComplianceRule {
	return []ComplianceRule{
		{ID: "SSH enabled", Name: "SSH enabled (no Telnet)", Severity: SeverityHigh},
		{ID: "SNMP community not 'public'", Name: "SNMP community not 'public'", Severity: SeverityHigh},
		{ID: "NTP configured", Name: "NTP configured", Severity: SeverityMedium},
		{ID: "Banner configured", Name: "Security login banner present", Severity: SeverityLow},
	}
}

// ComplianceRecord is the per-device verdict from the rule engine.
type ComplianceRecord struct {
	DeviceID    string           `json:"deviceId"`
	DeviceName  string           `json:"deviceName"`
	Status      ComplianceStatus `json:"status"`
	FailedRules []string         `json:"failedRules"`

	Malformed bool `json:"-"`
}

// UnmarshalJSON flags a wrongly typed verdict instead of failing the rollup
// payload.
func (r *ComplianceRecord) UnmarshalJSON(b []byte) error {
	type wire ComplianceRecord

	var w wire
	err := json.Unmarshal(b, &w)

	*r = ComplianceRecord(w)
	r.Malformed = err != nil

	return nil
}

// ComplianceFeed is the compliance rollup payload.
type ComplianceFeed struct {
	OverallCompliancePercent *Metric            `json:"overallCompliancePercent,omitempty"`
	Compliant                int                `json:"compliant"`
	Warning                  int                `json:"warning"`
	NonCompliant             int                `json:"nonCompliant"`
	Devices                  []ComplianceRecord `json:"devices"`
	Rules                    []ComplianceRule   `json:"rules,omitempty"`
}
