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

func metricPtr(v float64) *models.Metric {
	m := models.Metric(v)
	return &m
}

func TestRollupCompliance(t *testing.T) {
	feed := &models.ComplianceFeed{
		OverallCompliancePercent: metricPtr(82.5),
		Compliant:                3,
		Warning:                  1,
		NonCompliant:             1,
		Devices: []models.ComplianceRecord{
			{DeviceID: "r1", DeviceName: "core-1", Status: models.ComplianceCompliant},
			{DeviceID: "d1", DeviceName: "dist-1", Status: models.ComplianceWarning, FailedRules: []string{"NTP configured"}},
			{DeviceID: "a1", DeviceName: "acc-1", Status: models.ComplianceNonCompliant, FailedRules: []string{"SSH enabled", "Banner configured"}},
		},
	}

	view, invalid := RollupCompliance(feed)
	assert.Equal(t, 0, invalid)
	assert.True(t, view.HasData)
	assert.False(t, view.AllCompliant)
	require.NotNil(t, view.OverallPercent)
	assert.InDelta(t, 82.5, *view.OverallPercent, 0)
	assert.Equal(t, 3, view.Compliant)

	require.Len(t, view.Devices, 2)
	assert.Equal(t, "d1", view.Devices[0].DeviceID)
	assert.Equal(t, 1, view.Devices[0].FailedRuleCount)
	assert.Equal(t, 2, view.Devices[1].FailedRuleCount)
	assert.Equal(t, models.DefaultRuleCatalog(), view.Rules)
}

func TestRollupComplianceAllCompliantVersusNoData(t *testing.T) {
	empty, _ := RollupCompliance(nil)
	assert.False(t, empty.HasData)
	assert.False(t, empty.AllCompliant)
	assert.NotNil(t, empty.Devices)

	good, _ := RollupCompliance(&models.ComplianceFeed{
		OverallCompliancePercent: metricPtr(100),
		Compliant:                2,
		Devices: []models.ComplianceRecord{
			{DeviceID: "r1", Status: models.ComplianceCompliant},
			{DeviceID: "r2", Status: models.ComplianceCompliant},
		},
	})
	assert.True(t, good.HasData)
	assert.True(t, good.AllCompliant)
	assert.Empty(t, good.Devices)
}

func TestRollupComplianceInvalidPercent(t *testing.T) {
	for _, v := range []float64{-1, 100.01, math.NaN()} {
		view, invalid := RollupCompliance(&models.ComplianceFeed{OverallCompliancePercent: metricPtr(v)})
		assert.Equal(t, 1, invalid, "value %v", v)
		assert.Nil(t, view.OverallPercent)
	}

	view, invalid := RollupCompliance(&models.ComplianceFeed{})
	assert.Equal(t, 0, invalid)
	assert.Nil(t, view.OverallPercent)
}

func TestRollupComplianceCustomCatalog(t *testing.T) {
	rules := []models.ComplianceRule{{ID: "AAA", Name: "AAA configured", Severity: models.SeverityHigh}}

	view, _ := RollupCompliance(&models.ComplianceFeed{Rules: rules})
	assert.Equal(t, rules, view.Rules)
}
