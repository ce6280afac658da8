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


// Package dashboard owns the versioned dashboard state. It fans out one batch
// of source fetches per refresh, builds the view through the analytics
// package and swaps it in atomically, and resolves config history for the
// selected device.
package dashboard

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/errgroup"

	"github.com/carverauto/campusnoc/pkg/analytics"
	"github.com/carverauto/campusnoc/pkg/logger"
	"github.com/carverauto/campusnoc/pkg/models"
)

const (
	defaultRefreshInterval = 60 * time.Second
	componentName          = "dashboard_orchestrator"
)

// Option customizes an Orchestrator.
type Option func(*Orchestrator)

// WithInterval overrides the periodic refresh interval. Zero disables
// periodic refreshes; negative values are ignored.
func WithInterval(interval time.Duration) Option {
	return func(o *Orchestrator) {
		if interval >= 0 {
			o.interval = interval
		}
	}
}

// WithClock overrides the time source used for refresh timestamps.
func WithClock(now func() time.Time) Option {
	return func(o *Orchestrator) {
		if now != nil {
			o.now = now
		}
	}
}

// WithIDGenerator overrides how refresh identifiers are minted.
func WithIDGenerator(newID func() string) Option {
	return func(o *Orchestrator) {
		if newID != nil {
			o.newID = newID
		}
	}
}

// WithNotifier publishes every successful refresh.
func WithNotifier(notifier RefreshNotifier) Option {
	return func(o *Orchestrator) {
		if notifier != nil {
			o.notifier = notifier
		}
	}
}

// WithRange sets the range used by Run until a refresh asks for another.
func WithRange(rng models.Range) Option {
	return func(o *Orchestrator) {
		if rng != "" {
			o.rng = rng
		}
	}
}

// Orchestrator serializes batch refreshes and tracks the device selection.
// Readers always see a complete state value.
type Orchestrator struct {
	source   Source
	logger   logger.Logger
	notifier RefreshNotifier
	tracer   trace.Tracer
	interval time.Duration
	now      func() time.Time
	newID    func() string

	refreshMu sync.Mutex
	selectSeq atomic.Uint64

	mu      sync.RWMutex
	rng     models.Range
	current *models.DashboardState
	names   analytics.DeviceNames
	lastErr string
}

// NewOrchestrator constructs an orchestrator over source.
func NewOrchestrator(source Source, log logger.Logger, opts ...Option) *Orchestrator {
	o := &Orchestrator{
		source:   source,
		logger:   log,
		tracer:   otel.Tracer("campusnoc/dashboard"),
		interval: defaultRefreshInterval,
		now:      time.Now,
		newID:    uuid.NewString,
		rng:      models.DefaultRange,
		names:    analytics.DeviceNames{},
	}

	for _, opt := range opts {
		opt(o)
	}

	if o.logger == nil {
		o.logger = logger.NewTestLogger()
	}

	o.current = &models.DashboardState{
		Range:     o.rng.String(),
		RangeDays: o.rng.Days(),
	}

	return o
}

// Run refreshes immediately and then on every interval until ctx is done.
// Refresh failures are logged and retried on the next tick.
func (o *Orchestrator) Run(ctx context.Context) {
	if _, err := o.Refresh(ctx, o.Range()); err != nil {
		o.logger.Warn().Err(err).Str("component", componentName).Msg("Initial dashboard refresh failed")
	}

	if o.interval <= 0 {
		return
	}

	ticker := time.NewTicker(o.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if _, err := o.Refresh(ctx, o.Range()); err != nil {
				o.logger.Warn().Err(err).Str("component", componentName).Msg("Periodic dashboard refresh failed")
			}
		}
	}
}

// State returns a copy of the current state.
func (o *Orchestrator) State() *models.DashboardState {
	o.mu.RLock()
	defer o.mu.RUnlock()

	state := *o.current
	state.LastError = o.lastErr

	return &state
}

// Range is the range of the most recent refresh request.
func (o *Orchestrator) Range() models.Range {
	o.mu.RLock()
	defer o.mu.RUnlock()

	return o.rng
}

type batch struct {
	devices         []models.Device
	automation      *models.AutomationFeed
	compliance      *models.ComplianceFeed
	alerts          *models.AlertFeed
	trends          []models.RawTrendPoint
	recommendations *models.RecommendationBundle
	reachability    models.ReachabilityFeed
	tickets         []models.Ticket
}

// Refresh fetches a complete batch for rng and replaces the dashboard view.
// When any fetch fails the previous view stays in place, the state carries a
// single error message and the returned error wraps ErrTransportFailure.
// The first successful load selects the first device when none is selected.
func (o *Orchestrator) Refresh(ctx context.Context, rng models.Range) (*models.DashboardState, error) {
	if rng == "" {
		rng = models.DefaultRange
	}

	o.refreshMu.Lock()
	defer o.refreshMu.Unlock()

	ctx, span := o.tracer.Start(ctx, "dashboard.refresh",
		trace.WithAttributes(attribute.String("range", rng.String())))
	defer span.End()

	o.mu.Lock()
	o.rng = rng
	o.mu.Unlock()

	started := o.now()

	b, err := o.fetchBatch(ctx, rng.Days())
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "batch fetch failed")
		recordRefreshMetric(ctx, "failure", rng)

		o.mu.Lock()
		o.lastErr = ErrTransportFailure.Error()
		o.mu.Unlock()

		o.logger.Error().
			Err(err).
			Str("component", componentName).
			Str("range", rng.String()).
			Msg("Dashboard refresh failed; keeping previous view")

		return nil, err
	}

	view := analytics.BuildDashboard(&analytics.Inputs{
		Range:           rng,
		Devices:         b.devices,
		Automation:      b.automation,
		Compliance:      b.compliance,
		Alerts:          b.alerts,
		Trends:          b.trends,
		Recommendations: b.recommendations,
		Reachability:    b.reachability,
		Tickets:         b.tickets,
	})

	o.mu.Lock()
	previous := o.current
	next := *previous
	next.Version++
	next.Range = rng.String()
	next.RangeDays = rng.Days()
	next.RefreshedAt = o.now().UTC()
	next.RefreshID = o.newID()
	next.Dashboard = &view
	o.current = &next
	o.names = analytics.NewDeviceNames(view.Devices)
	o.lastErr = ""
	needsSelection := next.SelectedDeviceID == "" && len(view.Devices) > 0
	o.mu.Unlock()

	recordRefreshMetric(ctx, "success", rng)
	recordDropCounts(ctx, view.Drops)
	o.logRefresh(previous.Dashboard, &next, o.now().Sub(started))

	if o.notifier != nil {
		if err := o.notifier.PublishDashboardRefreshed(ctx, &next); err != nil {
			o.logger.Warn().Err(err).Str("component", componentName).Msg("Failed to publish dashboard refresh event")
		}
	}

	if needsSelection {
		if _, err := o.SelectDevice(ctx, view.Devices[0].ID); err != nil {
			o.logger.Warn().
				Err(err).
				Str("component", componentName).
				Str("device_id", view.Devices[0].ID).
				Msg("Default device selection did not complete")
		}
	}

	return o.State(), nil
}

func (o *Orchestrator) fetchBatch(ctx context.Context, rangeDays int) (*batch, error) {
	var b batch

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		devices, err := o.source.FetchDevices(gctx)
		if err != nil {
			return transportError(OpDevices, err)
		}

		b.devices = devices

		return nil
	})

	g.Go(func() error {
		feed, err := o.source.FetchAutomationSummary(gctx, rangeDays)
		if err != nil {
			return transportError(OpAutomation, err)
		}

		b.automation = feed

		return nil
	})

	g.Go(func() error {
		feed, err := o.source.FetchCompliance(gctx)
		if err != nil {
			return transportError(OpCompliance, err)
		}

		b.compliance = feed

		return nil
	})

	g.Go(func() error {
		feed, err := o.source.FetchAlerts(gctx, rangeDays)
		if err != nil {
			return transportError(OpAlerts, err)
		}

		b.alerts = feed

		return nil
	})

	g.Go(func() error {
		points, err := o.source.FetchTrends(gctx, rangeDays)
		if err != nil {
			return transportError(OpTrends, err)
		}

		b.trends = points

		return nil
	})

	g.Go(func() error {
		bundle, err := o.source.FetchRecommendations(gctx)
		if err != nil {
			return transportError(OpRecommendations, err)
		}

		b.recommendations = bundle

		return nil
	})

	// Reachability and tickets come from separate systems; losing either one
	// renders that panel unavailable without failing the batch.
	g.Go(func() error {
		feed, err := o.source.FetchDeviceStatus(gctx)
		if err != nil {
			o.logOptionalFailure(OpDeviceStatus, err)
			return nil
		}

		if feed == nil {
			feed = models.ReachabilityFeed{}
		}

		b.reachability = feed

		return nil
	})

	g.Go(func() error {
		tickets, err := o.source.FetchTickets(gctx)
		if err != nil {
			o.logOptionalFailure(OpTickets, err)
			return nil
		}

		if tickets == nil {
			tickets = []models.Ticket{}
		}

		b.tickets = tickets

		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}

	return &b, nil
}

func (o *Orchestrator) logOptionalFailure(op string, err error) {
	o.logger.Warn().
		Err(err).
		Str("component", componentName).
		Str("op", op).
		Msg("Optional dashboard feed unavailable")
}

// SelectDevice makes deviceID the selected device and resolves its config
// diff. Only the most recently issued selection may apply its result; an
// older one returns ErrSelectionSuperseded and leaves the state alone. A
// failed history fetch applies the unavailable view and returns an error
// wrapping ErrTransportFailure.
func (o *Orchestrator) SelectDevice(ctx context.Context, deviceID string) (*models.ConfigDiffView, error) {
	if deviceID == "" {
		return nil, ErrDeviceIDRequired
	}

	o.mu.Lock()
	token := o.selectSeq.Add(1)
	next := *o.current
	next.Version++
	next.SelectedDeviceID = deviceID
	o.current = &next
	o.mu.Unlock()

	ctx, span := o.tracer.Start(ctx, "dashboard.select_device",
		trace.WithAttributes(attribute.String("device_id", deviceID)))
	defer span.End()

	history, fetchErr := o.source.FetchConfigHistory(ctx, deviceID)

	var view models.ConfigDiffView
	if fetchErr != nil {
		fetchErr = transportError(OpConfigHistory, fetchErr)
		span.RecordError(fetchErr)
		span.SetStatus(codes.Error, "config history fetch failed")
		view = analytics.UnavailableConfigDiff(deviceID)
	} else {
		view = analytics.ResolveConfigSnapshots(deviceID, history)
	}

	o.mu.Lock()
	if token != o.selectSeq.Load() {
		o.mu.Unlock()

		recordSupersededSelection(ctx)
		o.logger.Debug().
			Str("component", componentName).
			Str("device_id", deviceID).
			Uint64("selection_token", token).
			Msg("Discarding superseded config history result")

		return nil, ErrSelectionSuperseded
	}

	analytics.LabelConfigDiff(&view, o.names.Name(deviceID))

	applied := *o.current
	applied.Version++
	applied.ConfigDiff = &view
	o.current = &applied
	o.mu.Unlock()

	recordDroppedRecords(ctx, "undated_snapshot", view.UndatedSnapshots)
	recordDroppedRecords(ctx, "malformed_snapshot", view.MalformedSnapshots)

	if fetchErr != nil {
		o.logger.Warn().
			Err(fetchErr).
			Str("component", componentName).
			Str("device_id", deviceID).
			Msg("Config history unavailable")

		return nil, fetchErr
	}

	result := view

	return &result, nil
}

func (o *Orchestrator) logRefresh(previous *models.DashboardView, current *models.DashboardState, elapsed time.Duration) {
	if current == nil || current.Dashboard == nil {
		return
	}

	cur := current.Dashboard.Overview
	drops := current.Dashboard.Drops.Total()

	if previous != nil && previous.Overview == cur && drops == 0 {
		o.logger.Debug().
			Str("component", componentName).
			Str("refresh_id", current.RefreshID).
			Uint64("version", current.Version).
			Msg("Dashboard refreshed without changes")

		return
	}

	event := o.logger.Info().
		Str("component", componentName).
		Str("refresh_id", current.RefreshID).
		Uint64("version", current.Version).
		Str("range", current.Range).
		Dur("elapsed", elapsed).
		Int("total_devices", cur.TotalDevices).
		Int("avg_health", cur.AvgHealth).
		Int("automation_tasks", cur.AutomationTasks).
		Int("automation_success_pct", cur.AutomationSuccessPct).
		Int("open_alerts", cur.OpenAlerts).
		Int("dropped_records", drops)

	if previous != nil {
		prev := previous.Overview
		event = event.
			Int("prev_total_devices", prev.TotalDevices).
			Int("prev_open_alerts", prev.OpenAlerts).
			Int("delta_total_devices", cur.TotalDevices-prev.TotalDevices).
			Int("delta_open_alerts", cur.OpenAlerts-prev.OpenAlerts)
	} else {
		event = event.Bool("initial_snapshot", true)
	}

	event.Msg("Dashboard snapshot refreshed")
}
