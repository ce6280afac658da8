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

package analytics

import "github.com/carverauto/campusnoc/pkg/models"

// Inputs is one fetched batch. Every field except Range may be nil. A nil
// Reachability or Tickets means that optional feed failed and is rendered as
// unavailable.
type Inputs struct {
	Range           models.Range
	Devices         []models.Device
	Automation      *models.AutomationFeed
	Compliance      *models.ComplianceFeed
	Alerts          *models.AlertFeed
	Trends          []models.RawTrendPoint
	Recommendations *models.RecommendationBundle
	Reachability    models.ReachabilityFeed
	Tickets         []models.Ticket
}

// BuildDashboard runs every aggregator over one batch. Records that failed
// to decode are dropped before aggregation. Aggregators only share the
// device name lookup.
func BuildDashboard(in *Inputs) models.DashboardView {
	devices, malformedDevices := wellFormedDevices(in.Devices)
	if devices == nil {
		devices = []models.Device{}
	}

	automationFeed, malformedTasks := wellFormedAutomation(in.Automation)
	complianceFeed, malformedCompliance := wellFormedCompliance(in.Compliance)
	alertFeed, malformedAlerts := wellFormedAlerts(in.Alerts)
	points, malformedPoints := wellFormedTrendPoints(in.Trends)

	names := NewDeviceNames(devices)
	roles := AggregateRoles(devices)
	automation, unknownStatus := SummarizeAutomationFeed(automationFeed)
	compliance, invalidCompliance := RollupCompliance(complianceFeed)
	alerts, alertDrops := BucketAlerts(alertFeed, names)
	trends := AssembleTrends(in.Range, points)
	tickets, malformedTickets := BuildTicketView(in.Tickets)

	return models.DashboardView{
		Overview:        BuildOverview(devices, roles, automation, alerts),
		Roles:           roles.Buckets,
		Uptime:          SelectUptimeExtrema(devices),
		DeviceLoad:      ProjectDeviceLoad(devices),
		Devices:         devices,
		Automation:      automation,
		Compliance:      compliance,
		Alerts:          alerts,
		Trends:          trends,
		Recommendations: RenderRecommendations(in.Recommendations),
		Reachability:    SummarizeReachability(in.Reachability),
		Tickets:         tickets,
		Drops: models.DropCounts{
			UnknownRoles:          roles.Ignored,
			UnknownTaskStatus:     unknownStatus,
			UnknownAlertSeverity:  alertDrops.UnknownSeverity,
			UnparseableAlertTimes: alertDrops.UnparseableTime,
			InvalidCompliance:     invalidCompliance,
			InvalidTrendPoints:    trends.Dropped,
			MalformedDevices:      malformedDevices,
			MalformedTasks:        malformedTasks,
			MalformedCompliance:   malformedCompliance,
			MalformedAlerts:       malformedAlerts,
			MalformedTrendPoints:  malformedPoints,
			MalformedTickets:      malformedTickets,
		},
	}
}
