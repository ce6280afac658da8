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

import (
	"math"
	"testing"

	"github.com/carverauto/campusnoc/pkg/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSelectUptimeExtrema(t *testing.T) {
	devices := []models.Device{
		{ID: "a", Name: "core-1", UptimeHours: 100},
		{ID: "b", Name: "core-2", UptimeHours: 250},
		{ID: "c", Name: "edge-1", UptimeHours: 250},
		{ID: "d", Name: "edge-2", UptimeHours: models.Metric(math.NaN())},
		{ID: "e", Name: "edge-3", UptimeHours: -4},
	}

	ext := SelectUptimeExtrema(devices)
	require.NotNil(t, ext.Longest)
	require.NotNil(t, ext.Shortest)

	assert.Equal(t, "b", ext.Longest.DeviceID)
	assert.Equal(t, "10d 10h", ext.Longest.Formatted)
	assert.Equal(t, "d", ext.Shortest.DeviceID)
	assert.InDelta(t, 0, ext.Shortest.UptimeHours, 0)
}

func TestSelectUptimeExtremaEmptyAndSingle(t *testing.T) {
	ext := SelectUptimeExtrema(nil)
	assert.Nil(t, ext.Longest)
	assert.Nil(t, ext.Shortest)

	ext = SelectUptimeExtrema([]models.Device{{ID: "only", UptimeHours: 5}})
	assert.Equal(t, "only", ext.Longest.DeviceID)
	assert.Equal(t, "only", ext.Shortest.DeviceID)
	assert.Equal(t, "only", ext.Longest.Name)
}

func TestFormatUptime(t *testing.T) {
	tests := map[float64]string{
		0:     "0d 0h",
		23:    "0d 23h",
		24:    "1d 0h",
		49:    "2d 1h",
		120.5: "5d 0.5h",
		-3:    "0d 0h",
	}

	for hours, want := range tests {
		assert.Equal(t, want, FormatUptime(hours), "hours=%v", hours)
	}
}
