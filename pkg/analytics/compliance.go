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

// RollupCompliance validates the overall percentage and isolates every
// device whose verdict is not compliant. A nil feed means no data, which is
// distinct from AllCompliant. The second result is 1 when a supplied
// percentage was out of range or not a number.
func RollupCompliance(feed *models.ComplianceFeed) (models.ComplianceView, int) {
	view := models.ComplianceView{
		Devices: []models.NonCompliantDevice{},
		Rules:   models.DefaultRuleCatalog(),
	}

	if feed == nil {
		return view, 0
	}

	invalid := 0
	view.HasData = true

	if p := feed.OverallCompliancePercent; p != nil {
		v := float64(*p)
		if p.Finite() && v >= 0 && v <= 100 {
			view.OverallPercent = &v
		} else {
			invalid++
		}
	}

	view.Compliant = max(feed.Compliant, 0)
	view.Warning = max(feed.Warning, 0)
	view.NonCompliant = max(feed.NonCompliant, 0)

	for i := range feed.Devices {
		rec := &feed.Devices[i]
		if rec.Status == models.ComplianceCompliant {
			continue
		}

		failed := make([]string, len(rec.FailedRules))
		copy(failed, rec.FailedRules)

		view.Devices = append(view.Devices, models.NonCompliantDevice{
			DeviceID:        rec.DeviceID,
			DeviceName:      rec.DeviceName,
			Status:          rec.Status,
			FailedRules:     failed,
			FailedRuleCount: len(failed),
		})
	}

	view.AllCompliant = len(view.Devices) == 0

	if len(feed.Rules) > 0 {
		view.Rules = make([]models.ComplianceRule, len(feed.Rules))
		copy(view.Rules, feed.Rules)
	}

	return view, invalid
}
