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
	"context"
	"sync"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"

	"github.com/carverauto/campusnoc/pkg/models"
)

type dashboardMetricsState struct {
	once       sync.Once
	refreshes  metric.Int64Counter
	dropped    metric.Int64Counter
	superseded metric.Int64Counter
}

var dashboardMetrics dashboardMetricsState

func initDashboardMetrics() {
	dashboardMetrics.once.Do(func() {
		meter := otel.Meter("campusnoc.dashboard")

		refreshes, err := meter.Int64Counter(
			"campusnoc_dashboard_refreshes_total",
			metric.WithDescription("Dashboard batch refreshes by outcome"),
		)
		if err == nil {
			dashboardMetrics.refreshes = refreshes
		}

		dropped, err := meter.Int64Counter(
			"campusnoc_dashboard_dropped_records_total",
			metric.WithDescription("Upstream records skipped while aggregating"),
		)
		if err == nil {
			dashboardMetrics.dropped = dropped
		}

		superseded, err := meter.Int64Counter(
			"campusnoc_dashboard_superseded_selections_total",
			metric.WithDescription("Config history results discarded for a newer selection"),
		)
		if err == nil {
			dashboardMetrics.superseded = superseded
		}
	})
}

func recordRefreshMetric(ctx context.Context, outcome string, rng models.Range) {
	initDashboardMetrics()

	if dashboardMetrics.refreshes == nil {
		return
	}

	dashboardMetrics.refreshes.Add(ctx, 1, metric.WithAttributes(
		attribute.String("outcome", outcome),
		attribute.String("range", rng.String()),
	))
}

func recordDroppedRecords(ctx context.Context, kind string, count int) {
	if count <= 0 {
		return
	}

	initDashboardMetrics()

	if dashboardMetrics.dropped == nil {
		return
	}

	dashboardMetrics.dropped.Add(ctx, int64(count), metric.WithAttributes(attribute.String("kind", kind)))
}

func recordDropCounts(ctx context.Context, drops models.DropCounts) {
	recordDroppedRecords(ctx, "unknown_role", drops.UnknownRoles)
	recordDroppedRecords(ctx, "unknown_task_status", drops.UnknownTaskStatus)
	recordDroppedRecords(ctx, "unknown_alert_severity", drops.UnknownAlertSeverity)
	recordDroppedRecords(ctx, "unparseable_alert_time", drops.UnparseableAlertTimes)
	recordDroppedRecords(ctx, "invalid_compliance", drops.InvalidCompliance)
	recordDroppedRecords(ctx, "invalid_trend_point", drops.InvalidTrendPoints)
	recordDroppedRecords(ctx, "malformed_device", drops.MalformedDevices)
	recordDroppedRecords(ctx, "malformed_task", drops.MalformedTasks)
	recordDroppedRecords(ctx, "malformed_compliance", drops.MalformedCompliance)
	recordDroppedRecords(ctx, "malformed_alert", drops.MalformedAlerts)
	recordDroppedRecords(ctx, "malformed_trend_point", drops.MalformedTrendPoints)
	recordDroppedRecords(ctx, "malformed_ticket", drops.MalformedTickets)
}

func recordSupersededSelection(ctx context.Context) {
	initDashboardMetrics()

	if dashboardMetrics.superseded == nil {
		return
	}

	dashboardMetrics.superseded.Add(ctx, 1)
}
