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
	"bytes"
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/carverauto/campusnoc/pkg/logger"
	"github.com/carverauto/campusnoc/pkg/models"
)

var (
	errBackendDown = errors.New("backend down")
	errPublish     = errors.New("publish failed")
)

type recordingNotifier struct {
	mu     sync.Mutex
	states []*models.DashboardState
	err    error
}

func (n *recordingNotifier) PublishDashboardRefreshed(_ context.Context, state *models.DashboardState) error {
	n.mu.Lock()
	defer n.mu.Unlock()

	n.states = append(n.states, state)

	return n.err
}

func (n *recordingNotifier) count() int {
	n.mu.Lock()
	defer n.mu.Unlock()

	return len(n.states)
}

func intPtr(v int) *int { return &v }

func testDevices() []models.Device {
	return []models.Device{
		{ID: "r1", Name: "core-1", Role: "router", HealthScore: 70, CPUUsage: 20, UptimeHours: 100},
		{ID: "a1", Name: "access-1", Role: "access-switch", HealthScore: 90, CPUUsage: 40, UptimeHours: 30},
	}
}

func history(deviceID string) []models.ConfigSnapshot {
	return []models.ConfigSnapshot{
		{DeviceID: deviceID, ConfigVersion: "v1", Timestamp: models.NewTimestamp(time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC))},
		{DeviceID: deviceID, ConfigVersion: "v2", Timestamp: models.NewTimestamp(time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC))},
	}
}

func expectBatch(src *MockSource, rangeDays int, devices []models.Device) {
	src.EXPECT().FetchDevices(gomock.Any()).Return(devices, nil)
	src.EXPECT().FetchAutomationSummary(gomock.Any(), rangeDays).Return(&models.AutomationFeed{
		Total: intPtr(10), Success: intPtr(7), Failed: intPtr(3),
	}, nil)
	src.EXPECT().FetchCompliance(gomock.Any()).Return(&models.ComplianceFeed{}, nil)
	src.EXPECT().FetchAlerts(gomock.Any(), rangeDays).Return(&models.AlertFeed{Open: intPtr(2)}, nil)
	src.EXPECT().FetchTrends(gomock.Any(), rangeDays).Return(nil, nil)
	src.EXPECT().FetchRecommendations(gomock.Any()).Return(&models.RecommendationBundle{}, nil)
	src.EXPECT().FetchDeviceStatus(gomock.Any()).Return(models.ReachabilityFeed{"10.0.0.1": "ON", "10.0.0.2": "OFF"}, nil)
	src.EXPECT().FetchTickets(gomock.Any()).Return([]models.Ticket{{Number: "INC0010001"}}, nil)
}

func newTestOrchestrator(src Source, opts ...Option) *Orchestrator {
	fixed := time.Date(2025, 6, 3, 12, 0, 0, 0, time.UTC)
	base := []Option{
		WithClock(func() time.Time { return fixed }),
		WithIDGenerator(func() string { return "refresh-1" }),
	}

	return NewOrchestrator(src, logger.NewTestLogger(), append(base, opts...)...)
}

func TestRefreshBuildsDashboardAndSelectsFirstDevice(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	src := NewMockSource(ctrl)
	expectBatch(src, 7, testDevices())
	src.EXPECT().FetchConfigHistory(gomock.Any(), "r1").Return(history("r1"), nil)

	notifier := &recordingNotifier{}
	o := newTestOrchestrator(src, WithNotifier(notifier))

	assert.False(t, o.State().Loaded())

	state, err := o.Refresh(context.Background(), models.Range7d)
	require.NoError(t, err)
	require.True(t, state.Loaded())

	assert.Equal(t, "7d", state.Range)
	assert.Equal(t, 7, state.RangeDays)
	assert.Equal(t, "refresh-1", state.RefreshID)
	assert.Empty(t, state.LastError)
	assert.Equal(t, 2, state.Dashboard.Overview.TotalDevices)
	assert.Equal(t, 70, state.Dashboard.Overview.AutomationSuccessPct)
	assert.Equal(t, 2, state.Dashboard.Overview.OpenAlerts)
	assert.Equal(t, models.ReachabilityView{Available: true, Total: 2, Online: 1, Offline: 1}, state.Dashboard.Reachability)
	assert.Equal(t, 1, state.Dashboard.Tickets.Count)

	assert.Equal(t, "r1", state.SelectedDeviceID)
	require.NotNil(t, state.ConfigDiff)
	assert.Equal(t, models.ConfigDiffReady, state.ConfigDiff.State)
	assert.Equal(t, "v1", state.ConfigDiff.Before.ConfigVersion)
	assert.Equal(t, "v2", state.ConfigDiff.After.ConfigVersion)
	assert.Equal(t, "core-1", state.ConfigDiff.DeviceName)

	assert.Equal(t, 1, notifier.count())
}

func TestRefreshPassesRangeDays(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	src := NewMockSource(ctrl)
	expectBatch(src, 30, nil)

	o := newTestOrchestrator(src)

	state, err := o.Refresh(context.Background(), models.Range30d)
	require.NoError(t, err)

	assert.Equal(t, "30d", state.Range)
	assert.Equal(t, 30, state.RangeDays)
	assert.Equal(t, models.Range30d, o.Range())
	assert.Empty(t, state.SelectedDeviceID)
	assert.Nil(t, state.ConfigDiff)
	assert.Empty(t, state.Dashboard.Devices)
}

func TestRefreshFailureKeepsPreviousView(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	src := NewMockSource(ctrl)
	expectBatch(src, 7, nil)

	o := newTestOrchestrator(src)

	first, err := o.Refresh(context.Background(), models.Range7d)
	require.NoError(t, err)

	src.EXPECT().FetchDevices(gomock.Any()).Return(testDevices(), nil).AnyTimes()
	src.EXPECT().FetchAutomationSummary(gomock.Any(), 7).Return(&models.AutomationFeed{}, nil).AnyTimes()
	src.EXPECT().FetchCompliance(gomock.Any()).Return(&models.ComplianceFeed{}, nil).AnyTimes()
	src.EXPECT().FetchAlerts(gomock.Any(), 7).Return(nil, errBackendDown)
	src.EXPECT().FetchTrends(gomock.Any(), 7).Return(nil, nil).AnyTimes()
	src.EXPECT().FetchRecommendations(gomock.Any()).Return(nil, nil).AnyTimes()
	src.EXPECT().FetchDeviceStatus(gomock.Any()).Return(nil, nil).AnyTimes()
	src.EXPECT().FetchTickets(gomock.Any()).Return(nil, nil).AnyTimes()

	state, err := o.Refresh(context.Background(), models.Range7d)
	require.Error(t, err)
	assert.Nil(t, state)
	require.ErrorIs(t, err, ErrTransportFailure)
	require.ErrorIs(t, err, errBackendDown)

	var fetchErr *FetchError
	require.ErrorAs(t, err, &fetchErr)
	assert.Equal(t, OpAlerts, fetchErr.Op)

	current := o.State()
	assert.Equal(t, first.Version, current.Version)
	assert.Same(t, first.Dashboard, current.Dashboard)
	assert.Equal(t, ErrTransportFailure.Error(), current.LastError)
}

func TestRefreshOptionalFeedFailureKeepsBatch(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	src := NewMockSource(ctrl)
	src.EXPECT().FetchDevices(gomock.Any()).Return(nil, nil)
	src.EXPECT().FetchAutomationSummary(gomock.Any(), 7).Return(nil, nil)
	src.EXPECT().FetchCompliance(gomock.Any()).Return(nil, nil)
	src.EXPECT().FetchAlerts(gomock.Any(), 7).Return(nil, nil)
	src.EXPECT().FetchTrends(gomock.Any(), 7).Return(nil, nil)
	src.EXPECT().FetchRecommendations(gomock.Any()).Return(nil, nil)
	src.EXPECT().FetchDeviceStatus(gomock.Any()).Return(nil, errBackendDown)
	src.EXPECT().FetchTickets(gomock.Any()).Return(nil, errBackendDown)

	o := newTestOrchestrator(src)

	state, err := o.Refresh(context.Background(), models.Range7d)
	require.NoError(t, err)
	require.True(t, state.Loaded())

	assert.False(t, state.Dashboard.Reachability.Available)
	assert.Equal(t, "Failed to load device status", state.Dashboard.Reachability.Message)
	assert.False(t, state.Dashboard.Tickets.Available)
	assert.Equal(t, "Failed to load tickets", state.Dashboard.Tickets.Message)
	assert.Empty(t, state.LastError)
}

func TestRefreshOptionalFeedFailureLogsWarning(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	var buf bytes.Buffer

	sink := zerolog.New(zerolog.SyncWriter(&buf))

	log := logger.NewMockLogger(ctrl)
	log.EXPECT().Debug().Return(nil).AnyTimes()
	log.EXPECT().Info().Return(nil).AnyTimes()
	log.EXPECT().Warn().DoAndReturn(sink.Warn).Times(1)

	src := NewMockSource(ctrl)
	src.EXPECT().FetchDevices(gomock.Any()).Return(nil, nil)
	src.EXPECT().FetchAutomationSummary(gomock.Any(), 7).Return(nil, nil)
	src.EXPECT().FetchCompliance(gomock.Any()).Return(nil, nil)
	src.EXPECT().FetchAlerts(gomock.Any(), 7).Return(nil, nil)
	src.EXPECT().FetchTrends(gomock.Any(), 7).Return(nil, nil)
	src.EXPECT().FetchRecommendations(gomock.Any()).Return(nil, nil)
	src.EXPECT().FetchDeviceStatus(gomock.Any()).Return(models.ReachabilityFeed{}, nil)
	src.EXPECT().FetchTickets(gomock.Any()).Return(nil, errBackendDown)

	o := NewOrchestrator(src, log)

	_, err := o.Refresh(context.Background(), models.Range7d)
	require.NoError(t, err)

	out := buf.String()
	assert.Contains(t, out, `"op":"tickets"`)
	assert.Contains(t, out, "backend down")
}

func TestRefreshEmptyOptionalFeedsAreAvailable(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	src := NewMockSource(ctrl)
	src.EXPECT().FetchDevices(gomock.Any()).Return(nil, nil)
	src.EXPECT().FetchAutomationSummary(gomock.Any(), 7).Return(nil, nil)
	src.EXPECT().FetchCompliance(gomock.Any()).Return(nil, nil)
	src.EXPECT().FetchAlerts(gomock.Any(), 7).Return(nil, nil)
	src.EXPECT().FetchTrends(gomock.Any(), 7).Return(nil, nil)
	src.EXPECT().FetchRecommendations(gomock.Any()).Return(nil, nil)
	src.EXPECT().FetchDeviceStatus(gomock.Any()).Return(nil, nil)
	src.EXPECT().FetchTickets(gomock.Any()).Return(nil, nil)

	o := newTestOrchestrator(src)

	state, err := o.Refresh(context.Background(), models.Range7d)
	require.NoError(t, err)

	assert.True(t, state.Dashboard.Reachability.Available)
	assert.Zero(t, state.Dashboard.Reachability.Total)
	assert.True(t, state.Dashboard.Tickets.Available)
	assert.Empty(t, state.Dashboard.Tickets.Rows)
}

func TestRefreshFailureBeforeFirstLoad(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	src := NewMockSource(ctrl)
	src.EXPECT().FetchDevices(gomock.Any()).Return(nil, errBackendDown)
	src.EXPECT().FetchAutomationSummary(gomock.Any(), gomock.Any()).Return(nil, nil).AnyTimes()
	src.EXPECT().FetchCompliance(gomock.Any()).Return(nil, nil).AnyTimes()
	src.EXPECT().FetchAlerts(gomock.Any(), gomock.Any()).Return(nil, nil).AnyTimes()
	src.EXPECT().FetchTrends(gomock.Any(), gomock.Any()).Return(nil, nil).AnyTimes()
	src.EXPECT().FetchRecommendations(gomock.Any()).Return(nil, nil).AnyTimes()
	src.EXPECT().FetchDeviceStatus(gomock.Any()).Return(nil, nil).AnyTimes()
	src.EXPECT().FetchTickets(gomock.Any()).Return(nil, nil).AnyTimes()

	o := newTestOrchestrator(src)

	_, err := o.Refresh(context.Background(), models.Range7d)
	require.ErrorIs(t, err, ErrTransportFailure)

	state := o.State()
	assert.False(t, state.Loaded())
	assert.Equal(t, ErrTransportFailure.Error(), state.LastError)
}

func TestRefreshNotifierErrorDoesNotFailRefresh(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	src := NewMockSource(ctrl)
	expectBatch(src, 7, nil)

	notifier := &recordingNotifier{err: errPublish}
	o := newTestOrchestrator(src, WithNotifier(notifier))

	state, err := o.Refresh(context.Background(), "")
	require.NoError(t, err)
	assert.True(t, state.Loaded())
	assert.Equal(t, 1, notifier.count())
}

func TestRefreshKeepsExistingSelection(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	src := NewMockSource(ctrl)
	src.EXPECT().FetchConfigHistory(gomock.Any(), "a1").Return(history("a1"), nil)
	expectBatch(src, 7, testDevices())

	o := newTestOrchestrator(src)

	_, err := o.SelectDevice(context.Background(), "a1")
	require.NoError(t, err)

	state, err := o.Refresh(context.Background(), models.Range7d)
	require.NoError(t, err)
	assert.Equal(t, "a1", state.SelectedDeviceID)
	assert.Equal(t, "a1", state.ConfigDiff.DeviceID)
}

func TestSelectDeviceSupersededResultIsDiscarded(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	src := NewMockSource(ctrl)

	started := make(chan struct{})
	release := make(chan struct{})

	src.EXPECT().FetchConfigHistory(gomock.Any(), "r1").DoAndReturn(
		func(context.Context, string) ([]models.ConfigSnapshot, error) {
			close(started)
			<-release

			return history("r1"), nil
		})
	src.EXPECT().FetchConfigHistory(gomock.Any(), "a1").Return(history("a1")[:1], nil)

	o := newTestOrchestrator(src)

	errCh := make(chan error, 1)

	go func() {
		_, err := o.SelectDevice(context.Background(), "r1")
		errCh <- err
	}()

	<-started

	view, err := o.SelectDevice(context.Background(), "a1")
	require.NoError(t, err)
	assert.Equal(t, models.ConfigDiffInsufficientHistory, view.State)

	close(release)
	require.ErrorIs(t, <-errCh, ErrSelectionSuperseded)

	state := o.State()
	assert.Equal(t, "a1", state.SelectedDeviceID)
	require.NotNil(t, state.ConfigDiff)
	assert.Equal(t, "a1", state.ConfigDiff.DeviceID)
	assert.Equal(t, models.ConfigDiffInsufficientHistory, state.ConfigDiff.State)
}

func TestSelectDeviceFetchFailure(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	src := NewMockSource(ctrl)
	src.EXPECT().FetchConfigHistory(gomock.Any(), "r9").Return(nil, errBackendDown)

	o := newTestOrchestrator(src)

	view, err := o.SelectDevice(context.Background(), "r9")
	require.ErrorIs(t, err, ErrTransportFailure)
	assert.Nil(t, view)

	state := o.State()
	assert.Equal(t, "r9", state.SelectedDeviceID)
	require.NotNil(t, state.ConfigDiff)
	assert.Equal(t, models.ConfigDiffUnavailable, state.ConfigDiff.State)
	assert.Equal(t, "Failed to load config history for r9.", state.ConfigDiff.Message)
}

func TestSelectDeviceRequiresID(t *testing.T) {
	o := newTestOrchestrator(nil)

	_, err := o.SelectDevice(context.Background(), "")
	require.ErrorIs(t, err, ErrDeviceIDRequired)
	assert.Equal(t, uint64(0), o.State().Version)
}

func TestStateReturnsCopy(t *testing.T) {
	o := newTestOrchestrator(nil)

	state := o.State()
	state.SelectedDeviceID = "mutated"

	assert.Empty(t, o.State().SelectedDeviceID)
}

func TestRunWithoutIntervalRefreshesOnce(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	src := NewMockSource(ctrl)
	expectBatch(src, 30, nil)

	o := newTestOrchestrator(src, WithInterval(0), WithRange(models.Range30d))

	o.Run(context.Background())

	state := o.State()
	assert.True(t, state.Loaded())
	assert.Equal(t, uint64(1), state.Version)
	assert.Equal(t, "30d", state.Range)
}

func TestRunStopsOnContextCancel(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	src := NewMockSource(ctrl)
	src.EXPECT().FetchDevices(gomock.Any()).Return(nil, nil).MinTimes(1)
	src.EXPECT().FetchAutomationSummary(gomock.Any(), 7).Return(nil, nil).MinTimes(1)
	src.EXPECT().FetchCompliance(gomock.Any()).Return(nil, nil).MinTimes(1)
	src.EXPECT().FetchAlerts(gomock.Any(), 7).Return(nil, nil).MinTimes(1)
	src.EXPECT().FetchTrends(gomock.Any(), 7).Return(nil, nil).MinTimes(1)
	src.EXPECT().FetchRecommendations(gomock.Any()).Return(nil, nil).MinTimes(1)
	src.EXPECT().FetchDeviceStatus(gomock.Any()).Return(nil, nil).MinTimes(1)
	src.EXPECT().FetchTickets(gomock.Any()).Return(nil, nil).MinTimes(1)

	o := newTestOrchestrator(src, WithInterval(10*time.Millisecond))

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})

	go func() {
		o.Run(ctx)
		close(done)
	}()

	require.Eventually(t, func() bool { return o.State().Version >= 2 }, time.Second, 5*time.Millisecond)
	cancel()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Run did not return after cancel")
	}
}
