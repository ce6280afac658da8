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

// RoleBucket summarizes one device role. When Count is zero the averages are
// nil and Available is false.
type RoleBucket struct {
	Role      DeviceRole `json:"role"`
	Label     string     `json:"label"`
	Count     int        `json:"count"`
	Available bool       `json:"available"`
	AvgCPU    *int       `json:"avg_cpu"`
	AvgMemory *int       `json:"avg_memory"`
	AvgHealth *int       `json:"avg_health"`
}

// RoleSummary is the RoleAggregator output. Ignored counts devices whose role
// token matched none of the known roles.
type RoleSummary struct {
	Buckets []RoleBucket `json:"buckets"`
	Ignored int          `json:"ignored"`
}

// Bucket returns the bucket for role, or nil.
func (s *RoleSummary) Bucket(role DeviceRole) *RoleBucket {
	for i := range s.Buckets {
		if s.Buckets[i].Role == role {
			return &s.Buckets[i]
		}
	}

	return nil
}

type UptimeEntry struct {
	DeviceID    string  `json:"device_id"`
	Name        string  `json:"name"`
	UptimeHours float64 `json:"uptime_hours"`
	Formatted   string  `json:"formatted"`
}

// UptimeExtrema holds the longest and shortest running devices; both are nil
// for an empty inventory.
type UptimeExtrema struct {
	Longest  *UptimeEntry `json:"longest"`
	Shortest *UptimeEntry `json:"shortest"`
}

type DeviceLoad struct {
	DeviceID string  `json:"device_id"`
	Name     string  `json:"name"`
	CPU      float64 `json:"cpu"`
	Health   float64 `json:"health"`
}

// RecentTask is one row of the recent automation table. DurationSeconds is
// nil when the duration is unknown.
type RecentTask struct {
	TaskID          string     `json:"task_id"`
	TaskType        string     `json:"task_type"`
	Status          TaskStatus `json:"status"`
	DeviceCount     int        `json:"device_count"`
	DevicesInvolved []string   `json:"devices_involved"`
	StartedAt       Timestamp  `json:"started_at"`
	EndedAt         Timestamp  `json:"ended_at"`
	DurationSeconds *float64   `json:"duration_seconds"`
}

type AutomationView struct {
	Total       int            `json:"total"`
	Success     int            `json:"success"`
	Failed      int            `json:"failed"`
	SuccessRate int            `json:"success_rate"`
	ByType      map[string]int `json:"by_type"`
	Recent      []RecentTask   `json:"recent"`
}

type NonCompliantDevice struct {
	DeviceID        string           `json:"device_id"`
	DeviceName      string           `json:"device_name"`
	Status          ComplianceStatus `json:"status"`
	FailedRules     []string         `json:"failed_rules"`
	FailedRuleCount int              `json:"failed_rule_count"`
}

// ComplianceView separates "no data" (HasData false) from "all good"
// (AllCompliant true).
type ComplianceView struct {
	HasData        bool                 `json:"has_data"`
	OverallPercent *float64             `json:"overall_percent"`
	Compliant      int                  `json:"compliant"`
	Warning        int                  `json:"warning"`
	NonCompliant   int                  `json:"non_compliant"`
	AllCompliant   bool                 `json:"all_compliant"`
	Devices        []NonCompliantDevice `json:"non_compliant_devices"`
	Rules          []ComplianceRule     `json:"rules"`
}

type SeverityHistogram struct {
	Critical int `json:"critical"`
	Major    int `json:"major"`
	Minor    int `json:"minor"`
}

type DayCount struct {
	Date  string `json:"date"`
	Count int    `json:"count"`
}

type AlertRow struct {
	ID         string        `json:"id"`
	DeviceID   string        `json:"device_id"`
	DeviceName string        `json:"device_name"`
	Severity   AlertSeverity `json:"severity"`
	Type       string        `json:"type"`
	OpenedAt   Timestamp     `json:"opened_at"`
	Status     string        `json:"status"`
}

type AlertView struct {
	Total    int               `json:"total"`
	Open     int               `json:"open"`
	Closed   int               `json:"closed"`
	Severity SeverityHistogram `json:"severity"`
	PerDay   []DayCount        `json:"per_day"`
	Recent   []AlertRow        `json:"recent"`
}

// ConfigDiffState distinguishes a usable pair from the two empty states.
type ConfigDiffState string

const (
	ConfigDiffReady               ConfigDiffState = "ready"
	ConfigDiffInsufficientHistory ConfigDiffState = "insufficient_history"
	ConfigDiffUnavailable         ConfigDiffState = "unavailable"
)

// ConfigDiffView is either a before/after pair (Ready) or an empty state;
// Before and After are never set individually. UndatedSnapshots counts
// backups skipped for lacking a usable timestamp, MalformedSnapshots those
// that arrived with wrongly typed fields.
type ConfigDiffView struct {
	DeviceID           string          `json:"device_id"`
	DeviceName         string          `json:"device_name"`
	State              ConfigDiffState `json:"state"`
	Before             *ConfigSnapshot `json:"before"`
	After              *ConfigSnapshot `json:"after"`
	Message            string          `json:"message"`
	UndatedSnapshots   int             `json:"undated_snapshots"`
	MalformedSnapshots int             `json:"malformed_snapshots"`
}

type TrendSeries struct {
	RangeDays int          `json:"range_days"`
	Points    []TrendPoint `json:"points"`
	Dropped   int          `json:"dropped"`
}

type RecommendationCategory struct {
	Key      string   `json:"key"`
	Title    string   `json:"title"`
	Items    []string `json:"items"`
	Fallback bool     `json:"fallback"`
}

type Overview struct {
	TotalDevices         int `json:"total_devices"`
	Routers              int `json:"routers"`
	DistributionSwitches int `json:"distribution_switches"`
	AccessSwitches       int `json:"access_switches"`
	AvgHealth            int `json:"avg_health"`
	AutomationSuccessPct int `json:"automation_success_pct"`
	AutomationTasks      int `json:"automation_tasks"`
	OpenAlerts           int `json:"open_alerts"`
}

// DropCounts records malformed or unclassifiable records skipped while
// aggregating. Skips never fail a refresh.
type DropCounts struct {
	UnknownRoles          int `json:"unknown_roles"`
	UnknownTaskStatus     int `json:"unknown_task_status"`
	UnknownAlertSeverity  int `json:"unknown_alert_severity"`
	UnparseableAlertTimes int `json:"unparseable_alert_times"`
	InvalidCompliance     int `json:"invalid_compliance"`
	InvalidTrendPoints    int `json:"invalid_trend_points"`
	MalformedDevices      int `json:"malformed_devices"`
	MalformedTasks        int `json:"malformed_tasks"`
	MalformedCompliance   int `json:"malformed_compliance"`
	MalformedAlerts       int `json:"malformed_alerts"`
	MalformedTrendPoints  int `json:"malformed_trend_points"`
	MalformedTickets      int `json:"malformed_tickets"`
}

// Total sums every counter.
func (d DropCounts) Total() int {
	return d.UnknownRoles + d.UnknownTaskStatus + d.UnknownAlertSeverity +
		d.UnparseableAlertTimes + d.InvalidCompliance + d.InvalidTrendPoints +
		d.MalformedDevices + d.MalformedTasks + d.MalformedCompliance +
		d.MalformedAlerts + d.MalformedTrendPoints + d.MalformedTickets
}

// DashboardView is the full display model for one range.
type DashboardView struct {
	Overview        Overview                 `json:"overview"`
	Roles           []RoleBucket             `json:"roles"`
	Uptime          UptimeExtrema            `json:"uptime"`
	DeviceLoad      []DeviceLoad             `json:"device_load"`
	Devices         []Device                 `json:"devices"`
	Automation      *AutomationView          `json:"automation"`
	Compliance      ComplianceView           `json:"compliance"`
	Alerts          *AlertView               `json:"alerts"`
	Trends          TrendSeries              `json:"trends"`
	Recommendations []RecommendationCategory `json:"recommendations"`
	Reachability    ReachabilityView         `json:"reachability"`
	Tickets         TicketView               `json:"tickets"`
	Drops           DropCounts               `json:"drops"`
}

// DashboardState is the versioned view owned by the orchestrator. A new
// value replaces the previous one on every change; values are never mutated
// after publication.
type DashboardState struct {
	Version          uint64          `json:"version"`
	Range            string          `json:"range"`
	RangeDays        int             `json:"range_days"`
	SelectedDeviceID string          `json:"selected_device_id"`
	RefreshedAt      time.Time       `json:"refreshed_at"`
	RefreshID        string          `json:"refresh_id"`
	Dashboard        *DashboardView  `json:"dashboard"`
	ConfigDiff       *ConfigDiffView `json:"config_diff"`
	LastError        string          `json:"last_error,omitempty"`
}

// Loaded reports whether a batch has succeeded at least once.
func (s *DashboardState) Loaded() bool {
	return s != nil && s.Dashboard != nil
}
