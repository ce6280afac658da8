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

//go:generate mockgen -destination=mock_source.go -package=dashboard github.com/carverauto/campusnoc/pkg/dashboard Source

import (
	"context"

	"github.com/carverauto/campusnoc/pkg/models"
)

// Source reads the upstream inventory and analytics feeds. Implementations
// return the payloads as received; tolerance for missing or malformed fields
// lives in the analytics package.
type Source interface {
	FetchDevices(ctx context.Context) ([]models.Device, error)
	FetchAutomationSummary(ctx context.Context, rangeDays int) (*models.AutomationFeed, error)
	FetchCompliance(ctx context.Context) (*models.ComplianceFeed, error)
	FetchAlerts(ctx context.Context, rangeDays int) (*models.AlertFeed, error)
	FetchTrends(ctx context.Context, rangeDays int) ([]models.RawTrendPoint, error)
	FetchRecommendations(ctx context.Context) (*models.RecommendationBundle, error)
	FetchConfigHistory(ctx context.Context, deviceID string) ([]models.ConfigSnapshot, error)
	FetchDeviceStatus(ctx context.Context) (models.ReachabilityFeed, error)
	FetchTickets(ctx context.Context) ([]models.Ticket, error)
}

// RefreshNotifier is told about every successful batch.
type RefreshNotifier interface {
	PublishDashboardRefreshed(ctx context.Context, state *models.DashboardState) error
}
