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


package db

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/carverauto/campusnoc/pkg/logger"
	"github.com/carverauto/campusnoc/pkg/models"
)

const (
	configHistoryLimit = 20
	trendDayLayout     = "2006-01-02"
)

const (
	cnpgDevicesQuery = `
SELECT id, name, role, layer, ip_address, model, os_version,
       health_score, cpu_usage, memory_usage, uptime_hours,
       compliance_status, last_config_backup
FROM campus_devices
ORDER BY inventory_position, id`

	cnpgAutomationTasksQuery = `
SELECT task_id, task_type, devices_involved, started_at, ended_at, status
FROM automation_tasks
WHERE started_at IS NULL OR started_at >= now() - make_interval(days => $1)
ORDER BY started_at DESC NULLS LAST, task_id`

	cnpgComplianceRulesQuery = `
SELECT rule_id, name, severity
FROM compliance_rules
ORDER BY position, rule_id`

	cnpgDeviceComplianceQuery = `
SELECT c.device_id, d.name, c.status, c.failed_rules
FROM device_compliance c
LEFT JOIN campus_devices d ON d.id = c.device_id
ORDER BY c.device_id`

	cnpgAlertsQuery = `
SELECT id, device_id, severity, alert_type, opened_at, status
FROM campus_alerts
WHERE opened_at IS NULL OR opened_at >= now() - make_interval(days => $1)
ORDER BY opened_at DESC NULLS LAST, id`

	cnpgTrendsQuery = `
SELECT day, avg_health_score, automation_success_rate
FROM dashboard_daily_trends
WHERE day > current_date - $1::int
ORDER BY day`

	cnpgRecommendationsQuery = `
SELECT category, message
FROM dashboard_recommendations
ORDER BY category, position`

	cnpgConfigHistoryQuery = `
SELECT device_id, config_version, taken_at, change_summary
FROM config_backups
WHERE device_id = $1
ORDER BY taken_at DESC NULLS LAST
LIMIT $2`

	cnpgReachabilityQuery = `
SELECT address, state
FROM device_reachability
ORDER BY address`

	cnpgTicketsQuery = `
SELECT number, short_description, priority, category, state, created_on
FROM campus_tickets
ORDER BY created_on DESC NULLS LAST, number`
)

// Querier is the subset of pgxpool.Pool used by CNPGSource.
type Querier interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
}

// CNPGSource serves the dashboard feeds straight from the CNPG tables.
type CNPGSource struct {
	querier Querier
	logger  logger.Logger
}

// NewCNPGSource wraps a pool (or any Querier).
func NewCNPGSource(q Querier, log logger.Logger) (*CNPGSource, error) {
	if q == nil {
		return nil, ErrQuerierRequired
	}

	if log == nil {
		log = logger.NewTestLogger()
	}

	return &CNPGSource{querier: q, logger: log}, nil
}

// FetchDevices reads the inventory in its configured order.
func (s *CNPGSource) FetchDevices(ctx context.Context) ([]models.Device, error) {
	rows, err := s.querier.Query(ctx, cnpgDevicesQuery)
	if err != nil {
		return nil, fmt.Errorf("cnpg devices: %w: %w", ErrFailedToQuery, err)
	}
	defer rows.Close()

	return gatherDevices(rows)
}

// FetchAutomationSummary returns the raw tasks of the window; counting is
// left to the analytics layer.
func (s *CNPGSource) FetchAutomationSummary(ctx context.Context, rangeDays int) (*models.AutomationFeed, error) {
	rows, err := s.querier.Query(ctx, cnpgAutomationTasksQuery, rangeDays)
	if err != nil {
		return nil, fmt.Errorf("cnpg automation tasks: %w: %w", ErrFailedToQuery, err)
	}
	defer rows.Close()

	tasks, err := gatherAutomationTasks(rows)
	if err != nil {
		return nil, err
	}

	return &models.AutomationFeed{Tasks: tasks}, nil
}

// FetchCompliance reads the rule catalog and the per-device verdicts and
// derives the rollup counts.
func (s *CNPGSource) FetchCompliance(ctx context.Context) (*models.ComplianceFeed, error) {
	ruleRows, err := s.querier.Query(ctx, cnpgComplianceRulesQuery)
	if err != nil {
		return nil, fmt.Errorf("cnpg compliance rules: %w: %w", ErrFailedToQuery, err)
	}

	rules, err := gatherComplianceRules(ruleRows)
	ruleRows.Close()

	if err != nil {
		return nil, err
	}

	recordRows, err := s.querier.Query(ctx, cnpgDeviceComplianceQuery)
	if err != nil {
		return nil, fmt.Errorf("cnpg device compliance: %w: %w", ErrFailedToQuery, err)
	}
	defer recordRows.Close()

	records, err := gatherComplianceRecords(recordRows)
	if err != nil {
		return nil, err
	}

	return buildComplianceFeed(rules, records), nil
}

func buildComplianceFeed(rules []models.ComplianceRule, records []models.ComplianceRecord) *models.ComplianceFeed {
	feed := &models.ComplianceFeed{Devices: records, Rules: rules}

	for i := range records {
		switch records[i].Status {
		case models.ComplianceCompliant:
			feed.Compliant++
		case models.ComplianceWarning:
			feed.Warning++
		case models.ComplianceNonCompliant:
			feed.NonCompliant++
		}
	}

	if len(records) > 0 {
		pct := models.Metric(float64(feed.Compliant) * 100 / float64(len(records)))
		feed.OverallCompliancePercent = &pct
	}

	return feed
}

// FetchAlerts returns the window's alerts, newest first. Totals are left
// unset so they are counted from the events.
func (s *CNPGSource) FetchAlerts(ctx context.Context, rangeDays int) (*models.AlertFeed, error) {
	rows, err := s.querier.Query(ctx, cnpgAlertsQuery, rangeDays)
	if err != nil {
		return nil, fmt.Errorf("cnpg alerts: %w: %w", ErrFailedToQuery, err)
	}
	defer rows.Close()

	events, err := gatherAlerts(rows)
	if err != nil {
		return nil, err
	}

	return &models.AlertFeed{Recent: events}, nil
}

// FetchTrends reads the daily rollups of the window.
func (s *CNPGSource) FetchTrends(ctx context.Context, rangeDays int) ([]models.RawTrendPoint, error) {
	rows, err := s.querier.Query(ctx, cnpgTrendsQuery, rangeDays)
	if err != nil {
		return nil, fmt.Errorf("cnpg trends: %w: %w", ErrFailedToQuery, err)
	}
	defer rows.Close()

	return gatherTrendPoints(rows)
}

// FetchRecommendations groups the stored advisory lines by category.
// Unknown categories are skipped.
func (s *CNPGSource) FetchRecommendations(ctx context.Context) (*models.RecommendationBundle, error) {
	rows, err := s.querier.Query(ctx, cnpgRecommendationsQuery)
	if err != nil {
		return nil, fmt.Errorf("cnpg recommendations: %w: %w", ErrFailedToQuery, err)
	}
	defer rows.Close()

	bundle := &models.RecommendationBundle{}
	skipped := 0

	for rows.Next() {
		var category, message string
		if err := rows.Scan(&category, &message); err != nil {
			return nil, fmt.Errorf("cnpg recommendations: %w: %w", ErrFailedToScan, err)
		}

		switch strings.ToLower(strings.TrimSpace(category)) {
		case "performance":
			bundle.Performance = append(bundle.Performance, message)
		case "reliability":
			bundle.Reliability = append(bundle.Reliability, message)
		case "compliance":
			bundle.Compliance = append(bundle.Compliance, message)
		case "automation":
			bundle.Automation = append(bundle.Automation, message)
		default:
			skipped++
		}
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("cnpg recommendations: iterate rows: %w", err)
	}

	if skipped > 0 {
		s.logger.Debug().Int("skipped", skipped).Msg("Ignored recommendations with unknown category")
	}

	return bundle, nil
}

// FetchConfigHistory returns the newest backups for one device.
func (s *CNPGSource) FetchConfigHistory(ctx context.Context, deviceID string) ([]models.ConfigSnapshot, error) {
	if deviceID == "" {
		return nil, ErrDeviceIDRequired
	}

	rows, err := s.querier.Query(ctx, cnpgConfigHistoryQuery, deviceID, configHistoryLimit)
	if err != nil {
		return nil, fmt.Errorf("cnpg config history: %w: %w", ErrFailedToQuery, err)
	}
	defer rows.Close()

	return gatherConfigSnapshots(rows)
}

// FetchDeviceStatus reads the last reachability state per address.
func (s *CNPGSource) FetchDeviceStatus(ctx context.Context) (models.ReachabilityFeed, error) {
	rows, err := s.querier.Query(ctx, cnpgReachabilityQuery)
	if err != nil {
		return nil, fmt.Errorf("cnpg device status: %w: %w", ErrFailedToQuery, err)
	}
	defer rows.Close()

	feed := models.ReachabilityFeed{}

	for rows.Next() {
		var addr, state string
		if err := rows.Scan(&addr, &state); err != nil {
			return nil, fmt.Errorf("cnpg device status: %w: %w", ErrFailedToScan, err)
		}

		feed[addr] = state
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("cnpg device status: iterate rows: %w", err)
	}

	return feed, nil
}

// FetchTickets reads the mirrored incidents, newest first.
func (s *CNPGSource) FetchTickets(ctx context.Context) ([]models.Ticket, error) {
	rows, err := s.querier.Query(ctx, cnpgTicketsQuery)
	if err != nil {
		return nil, fmt.Errorf("cnpg tickets: %w: %w", ErrFailedToQuery, err)
	}
	defer rows.Close()

	tickets := make([]models.Ticket, 0)

	for rows.Next() {
		var (
			ticket                    models.Ticket
			priority, category, state sql.NullString
			created                   sql.NullTime
		)

		if err := rows.Scan(&ticket.Number, &ticket.ShortDescription, &priority, &category, &state, &created); err != nil {
			return nil, fmt.Errorf("cnpg tickets: %w: %w", ErrFailedToScan, err)
		}

		ticket.Priority = priority.String
		ticket.Category = category.String
		ticket.State = state.String
		ticket.CreatedOn = timestampFromNull(created)

		tickets = append(tickets, ticket)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("cnpg tickets: iterate rows: %w", err)
	}

	return tickets, nil
}

func gatherDevices(rows pgx.Rows) ([]models.Device, error) {
	devices := make([]models.Device, 0)

	for rows.Next() {
		device, err := scanDevice(rows)
		if err != nil {
			return nil, err
		}

		devices = append(devices, device)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("cnpg devices: iterate rows: %w", err)
	}

	return devices, nil
}

func scanDevice(row pgx.Row) (models.Device, error) {
	var (
		device                                 models.Device
		layer, ip, model, osVersion, compliant sql.NullString
		health, cpu, memory, uptime            sql.NullFloat64
		lastBackup                             sql.NullTime
	)

	if err := row.Scan(
		&device.ID,
		&device.Name,
		&device.Role,
		&layer,
		&ip,
		&model,
		&osVersion,
		&health,
		&cpu,
		&memory,
		&uptime,
		&compliant,
		&lastBackup,
	); err != nil {
		return models.Device{}, fmt.Errorf("cnpg devices: %w: %w", ErrFailedToScan, err)
	}

	device.Layer = layer.String
	device.IPAddress = ip.String
	device.Model = model.String
	device.OSVersion = osVersion.String
	device.HealthScore = metricFromNull(health)
	device.CPUUsage = metricFromNull(cpu)
	device.MemoryUsage = metricFromNull(memory)
	device.UptimeHours = metricFromNull(uptime)
	device.ComplianceStatus = models.ComplianceStatus(compliant.String)
	device.LastConfigBackup = timestampFromNull(lastBackup)

	return device, nil
}

func gatherAutomationTasks(rows pgx.Rows) ([]models.AutomationTask, error) {
	tasks := make([]models.AutomationTask, 0)

	for rows.Next() {
		var (
			task           models.AutomationTask
			status         string
			started, ended sql.NullTime
		)

		if err := rows.Scan(&task.TaskID, &task.TaskType, &task.DevicesInvolved, &started, &ended, &status); err != nil {
			return nil, fmt.Errorf("cnpg automation tasks: %w: %w", ErrFailedToScan, err)
		}

		task.StartedAt = timestampFromNull(started)
		task.EndedAt = timestampFromNull(ended)
		task.Status = models.TaskStatus(strings.ToLower(status))

		tasks = append(tasks, task)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("cnpg automation tasks: iterate rows: %w", err)
	}

	return tasks, nil
}

func gatherComplianceRules(rows pgx.Rows) ([]models.ComplianceRule, error) {
	var rules []models.ComplianceRule

	for rows.Next() {
		var (
			rule     models.ComplianceRule
			severity string
		)

		if err := rows.Scan(&rule.ID, &rule.Name, &severity); err != nil {
			return nil, fmt.Errorf("cnpg compliance rules: %w: %w", ErrFailedToScan, err)
		}

		rule.Severity = models.RuleSeverity(strings.ToLower(severity))
		rules = append(rules, rule)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("cnpg compliance rules: iterate rows: %w", err)
	}

	return rules, nil
}

func gatherComplianceRecords(rows pgx.Rows) ([]models.ComplianceRecord, error) {
	records := make([]models.ComplianceRecord, 0)

	for rows.Next() {
		var (
			record models.ComplianceRecord
			name   sql.NullString
			status string
		)

		if err := rows.Scan(&record.DeviceID, &name, &status, &record.FailedRules); err != nil {
			return nil, fmt.Errorf("cnpg device compliance: %w: %w", ErrFailedToScan, err)
		}

		record.DeviceName = name.String
		if record.DeviceName == "" {
			record.DeviceName = record.DeviceID
		}

		record.Status = models.ComplianceStatus(strings.ToLower(status))
		records = append(records, record)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("cnpg device compliance: iterate rows: %w", err)
	}

	return records, nil
}

func gatherAlerts(rows pgx.Rows) ([]models.AlertEvent, error) {
	events := make([]models.AlertEvent, 0)

	for rows.Next() {
		var (
			event    models.AlertEvent
			severity string
			opened   sql.NullTime
		)

		if err := rows.Scan(&event.ID, &event.DeviceID, &severity, &event.Type, &opened, &event.Status); err != nil {
			return nil, fmt.Errorf("cnpg alerts: %w: %w", ErrFailedToScan, err)
		}

		event.Severity = models.AlertSeverity(strings.ToLower(severity))
		event.OpenedAt = timestampFromNull(opened)

		events = append(events, event)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("cnpg alerts: iterate rows: %w", err)
	}

	return events, nil
}

func gatherTrendPoints(rows pgx.Rows) ([]models.RawTrendPoint, error) {
	points := make([]models.RawTrendPoint, 0)

	for rows.Next() {
		var (
			day          sql.NullTime
			health, rate sql.NullFloat64
		)

		if err := rows.Scan(&day, &health, &rate); err != nil {
			return nil, fmt.Errorf("cnpg trends: %w: %w", ErrFailedToScan, err)
		}

		point := models.RawTrendPoint{
			AvgHealthScore:        rawNumber(health),
			AutomationSuccessRate: rawNumber(rate),
		}

		if day.Valid {
			point.Date = day.Time.UTC().Format(trendDayLayout)
		}

		points = append(points, point)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("cnpg trends: iterate rows: %w", err)
	}

	return points, nil
}

func gatherConfigSnapshots(rows pgx.Rows) ([]models.ConfigSnapshot, error) {
	snapshots := make([]models.ConfigSnapshot, 0)

	for rows.Next() {
		var (
			snap  models.ConfigSnapshot
			taken sql.NullTime
		)

		if err := rows.Scan(&snap.DeviceID, &snap.ConfigVersion, &taken, &snap.ChangeSummary); err != nil {
			return nil, fmt.Errorf("cnpg config history: %w: %w", ErrFailedToScan, err)
		}

		snap.Timestamp = timestampFromNull(taken)
		if snap.ChangeSummary == nil {
			snap.ChangeSummary = []string{}
		}

		snapshots = append(snapshots, snap)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("cnpg config history: iterate rows: %w", err)
	}

	return snapshots, nil
}

// metricFromNull maps NULL to zero, matching a missing JSON field.
func metricFromNull(v sql.NullFloat64) models.Metric {
	if !v.Valid {
		return 0
	}

	return models.Metric(v.Float64)
}

func timestampFromNull(v sql.NullTime) models.Timestamp {
	if !v.Valid {
		return models.Timestamp{}
	}

	return models.NewTimestamp(v.Time)
}

// rawNumber renders a column as the JSON the trend assembler validates.
// NULL and non-finite values become null and are dropped there.
func rawNumber(v sql.NullFloat64) json.RawMessage {
	if !v.Valid || math.IsNaN(v.Float64) || math.IsInf(v.Float64, 0) {
		return json.RawMessage("null")
	}

	return json.RawMessage(strconv.FormatFloat(v.Float64, 'f', -1, 64))
}
