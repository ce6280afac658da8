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
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/carverauto/campusnoc/pkg/logger"
	"github.com/carverauto/campusnoc/pkg/models"
)

func newTestSource(t *testing.T, q *fakeQuerier) *CNPGSource {
	t.Helper()

	src, err := NewCNPGSource(q, logger.NewTestLogger())
	require.NoError(t, err)

	return src
}

func TestNewCNPGSourceRequiresQuerier(t *testing.T) {
	_, err := NewCNPGSource(nil, nil)
	require.ErrorIs(t, err, ErrQuerierRequired)
}

func TestCNPGFetchDevicesHandlesNulls(t *testing.T) {
	backup := time.Date(2025, 6, 1, 3, 0, 0, 0, time.UTC)
	rows := &fakeRows{rows: [][]any{
		{"r1", "core-1", "router", "core", "10.0.0.1", "C9500", "17.9", 82.5, 30.0, 40.0, 720.0, "compliant", backup},
		{"a1", "access-1", "access-switch", nil, nil, nil, nil, nil, nil, nil, nil, nil, nil},
	}}

	src := newTestSource(t, &fakeQuerier{results: map[string]*fakeRows{cnpgDevicesQuery: rows}})

	devices, err := src.FetchDevices(context.Background())
	require.NoError(t, err)
	require.Len(t, devices, 2)
	assert.True(t, rows.closed)

	assert.Equal(t, "core-1", devices[0].Name)
	assert.Equal(t, "10.0.0.1", devices[0].IPAddress)
	assert.InDelta(t, 82.5, float64(devices[0].HealthScore), 0.001)
	assert.Equal(t, models.ComplianceCompliant, devices[0].ComplianceStatus)
	assert.True(t, devices[0].LastConfigBackup.Equal(backup))

	assert.Empty(t, devices[1].Layer)
	assert.Zero(t, float64(devices[1].HealthScore))
	assert.False(t, devices[1].LastConfigBackup.Valid())
}

func TestCNPGFetchAutomationSummaryPassesRange(t *testing.T) {
	start := time.Date(2025, 6, 2, 8, 0, 0, 0, time.UTC)
	q := &fakeQuerier{results: map[string]*fakeRows{
		cnpgAutomationTasksQuery: {rows: [][]any{
			{"t1", "backup", []string{"r1"}, start, start.Add(time.Minute), "SUCCESS"},
			{"t2", "push", []string{}, nil, nil, "failed"},
		}},
	}}

	feed, err := newTestSource(t, q).FetchAutomationSummary(context.Background(), 30)
	require.NoError(t, err)

	require.Len(t, q.calls, 1)
	assert.Equal(t, []any{30}, q.calls[0].args)

	require.Len(t, feed.Tasks, 2)
	assert.Nil(t, feed.Total)
	assert.Equal(t, models.TaskSuccess, feed.Tasks[0].Status)
	assert.Equal(t, []string{"r1"}, feed.Tasks[0].DevicesInvolved)
	assert.False(t, feed.Tasks[1].StartedAt.Valid())
}

func TestCNPGFetchComplianceDerivesCounts(t *testing.T) {
	q := &fakeQuerier{results: map[string]*fakeRows{
		cnpgComplianceRulesQuery: {rows: [][]any{{"ssh", "SSH enabled", "HIGH"}}},
		cnpgDeviceComplianceQuery: {rows: [][]any{
			{"r1", "core-1", "compliant", []string{}},
			{"r2", "core-2", "compliant", []string{}},
			{"d1", nil, "warning", []string{"NTP configured"}},
			{"a1", "access-1", "non-compliant", []string{"SSH enabled", "Banner configured"}},
		}},
	}}

	feed, err := newTestSource(t, q).FetchCompliance(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 2, feed.Compliant)
	assert.Equal(t, 1, feed.Warning)
	assert.Equal(t, 1, feed.NonCompliant)
	require.NotNil(t, feed.OverallCompliancePercent)
	assert.InDelta(t, 50, float64(*feed.OverallCompliancePercent), 0.001)
	assert.Equal(t, "d1", feed.Devices[2].DeviceName)
	assert.Equal(t, []models.ComplianceRule{{ID: "ssh", Name: "SSH enabled", Severity: models.SeverityHigh}}, feed.Rules)
}

func TestCNPGFetchComplianceWithoutVerdicts(t *testing.T) {
	q := &fakeQuerier{results: map[string]*fakeRows{
		cnpgComplianceRulesQuery:  {},
		cnpgDeviceComplianceQuery: {},
	}}

	feed, err := newTestSource(t, q).FetchCompliance(context.Background())
	require.NoError(t, err)
	assert.Nil(t, feed.OverallCompliancePercent)
	assert.Empty(t, feed.Rules)
	assert.Empty(t, feed.Devices)
}

func TestCNPGFetchAlerts(t *testing.T) {
	opened := time.Date(2025, 6, 2, 10, 0, 0, 0, time.UTC)
	q := &fakeQuerier{results: map[string]*fakeRows{
		cnpgAlertsQuery: {rows: [][]any{
			{"al-1", "r1", "Critical", "link_down", opened, "open"},
			{"al-2", "a1", "minor", "cpu_high", nil, "closed"},
		}},
	}}

	feed, err := newTestSource(t, q).FetchAlerts(context.Background(), 7)
	require.NoError(t, err)
	require.Len(t, feed.Recent, 2)
	assert.Nil(t, feed.Open)
	assert.Equal(t, models.AlertCritical, feed.Recent[0].Severity)
	assert.True(t, feed.Recent[0].OpenedAt.Equal(opened))
	assert.False(t, feed.Recent[1].OpenedAt.Valid())
	assert.Equal(t, []any{7}, q.calls[0].args)
}

func TestCNPGFetchTrendsRendersRawNumbers(t *testing.T) {
	day := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	q := &fakeQuerier{results: map[string]*fakeRows{
		cnpgTrendsQuery: {rows: [][]any{
			{day, 81.25, 90.0},
			{day.AddDate(0, 0, 1), nil, 75.5},
		}},
	}}

	points, err := newTestSource(t, q).FetchTrends(context.Background(), 7)
	require.NoError(t, err)
	require.Len(t, points, 2)

	assert.Equal(t, "2025-06-01", points[0].Date)
	assert.JSONEq(t, `81.25`, string(points[0].AvgHealthScore))
	assert.JSONEq(t, `90`, string(points[0].AutomationSuccessRate))
	assert.Equal(t, "null", string(points[1].AvgHealthScore))
}

func TestCNPGFetchRecommendationsGroupsByCategory(t *testing.T) {
	q := &fakeQuerier{results: map[string]*fakeRows{
		cnpgRecommendationsQuery: {rows: [][]any{
			{"automation", "Schedule nightly backups"},
			{"Performance", "Upgrade core-1 uplinks"},
			{"performance", "Rebalance VLAN 20"},
			{"security", "ignored"},
		}},
	}}

	bundle, err := newTestSource(t, q).FetchRecommendations(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"Upgrade core-1 uplinks", "Rebalance VLAN 20"}, bundle.Performance)
	assert.Equal(t, []string{"Schedule nightly backups"}, bundle.Automation)
	assert.Empty(t, bundle.Reliability)
}

func TestCNPGFetchConfigHistory(t *testing.T) {
	taken := time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC)
	q := &fakeQuerier{results: map[string]*fakeRows{
		cnpgConfigHistoryQuery: {rows: [][]any{
			{"r1", "v2", taken, []string{"ntp server added"}},
			{"r1", "v1", nil, nil},
		}},
	}}

	history, err := newTestSource(t, q).FetchConfigHistory(context.Background(), "r1")
	require.NoError(t, err)
	require.Len(t, history, 2)
	assert.Equal(t, []any{"r1", configHistoryLimit}, q.calls[0].args)
	assert.Equal(t, []string{"ntp server added"}, history[0].ChangeSummary)
	assert.Equal(t, []string{}, history[1].ChangeSummary)
	assert.False(t, history[1].Timestamp.Valid())

	_, err = newTestSource(t, q).FetchConfigHistory(context.Background(), "")
	require.ErrorIs(t, err, ErrDeviceIDRequired)
}

func TestCNPGFetchDeviceStatus(t *testing.T) {
	q := &fakeQuerier{results: map[string]*fakeRows{
		cnpgReachabilityQuery: {rows: [][]any{
			{"10.0.0.1", "ON"},
			{"10.0.0.2", "OFF"},
		}},
	}}

	feed, err := newTestSource(t, q).FetchDeviceStatus(context.Background())
	require.NoError(t, err)
	assert.Equal(t, models.ReachabilityFeed{"10.0.0.1": "ON", "10.0.0.2": "OFF"}, feed)
}

func TestCNPGFetchDeviceStatusEmptyIsNotNil(t *testing.T) {
	q := &fakeQuerier{results: map[string]*fakeRows{cnpgReachabilityQuery: {}}}

	feed, err := newTestSource(t, q).FetchDeviceStatus(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, feed)
	assert.Empty(t, feed)
}

func TestCNPGFetchTickets(t *testing.T) {
	created := time.Date(2025, 6, 2, 9, 30, 0, 0, time.UTC)
	q := &fakeQuerier{results: map[string]*fakeRows{
		cnpgTicketsQuery: {rows: [][]any{
			{"INC0010002", "Uplink flapping on dist-2", "2 - High", "network", "In Progress", created},
			{"INC0010001", "Printer offline", nil, nil, nil, nil},
		}},
	}}

	tickets, err := newTestSource(t, q).FetchTickets(context.Background())
	require.NoError(t, err)
	require.Len(t, tickets, 2)

	assert.Equal(t, "Uplink flapping on dist-2", tickets[0].ShortDescription)
	assert.Equal(t, "2 - High", tickets[0].Priority)
	assert.True(t, tickets[0].CreatedOn.Equal(created))
	assert.Empty(t, tickets[1].Priority)
	assert.False(t, tickets[1].CreatedOn.Valid())
}

func TestCNPGQueryFailureIsWrapped(t *testing.T) {
	q := &fakeQuerier{fail: map[string]error{cnpgDevicesQuery: errFakeQueryFailed}}

	_, err := newTestSource(t, q).FetchDevices(context.Background())
	require.ErrorIs(t, err, ErrFailedToQuery)
	require.ErrorIs(t, err, errFakeQueryFailed)
}

func TestCNPGIterationErrorSurfaces(t *testing.T) {
	q := &fakeQuerier{results: map[string]*fakeRows{
		cnpgAlertsQuery: {err: errFakeQueryFailed},
	}}

	_, err := newTestSource(t, q).FetchAlerts(context.Background(), 7)
	require.ErrorIs(t, err, errFakeQueryFailed)
}
