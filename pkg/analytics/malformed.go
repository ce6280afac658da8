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

// keepWellFormed returns the records that decoded cleanly and how many were
// dropped. The input is never modified.
func keepWellFormed[T any](records []T, malformed func(*T) bool) ([]T, int) {
	if records == nil {
		return nil, 0
	}

	kept := make([]T, 0, len(records))
	dropped := 0

	for i := range records {
		if malformed(&records[i]) {
			dropped++
			continue
		}

		kept = append(kept, records[i])
	}

	return kept, dropped
}

func wellFormedDevices(devices []models.Device) ([]models.Device, int) {
	return keepWellFormed(devices, func(d *models.Device) bool { return d.Malformed })
}

func wellFormedTrendPoints(points []models.RawTrendPoint) ([]models.RawTrendPoint, int) {
	return keepWellFormed(points, func(p *models.RawTrendPoint) bool { return p.Malformed })
}

// wellFormedAutomation copies feed without malformed tasks.
func wellFormedAutomation(feed *models.AutomationFeed) (*models.AutomationFeed, int) {
	if feed == nil {
		return nil, 0
	}

	isBad := func(t *models.AutomationTask) bool { return t.Malformed }

	out := *feed
	tasks, badTasks := keepWellFormed(feed.Tasks, isBad)
	recent, badRecent := keepWellFormed(feed.Recent, isBad)
	out.Tasks, out.Recent = tasks, recent

	return &out, badTasks + badRecent
}

func wellFormedCompliance(feed *models.ComplianceFeed) (*models.ComplianceFeed, int) {
	if feed == nil {
		return nil, 0
	}

	out := *feed
	records, dropped := keepWellFormed(feed.Devices, func(r *models.ComplianceRecord) bool { return r.Malformed })
	out.Devices = records

	return &out, dropped
}

func wellFormedAlerts(feed *models.AlertFeed) (*models.AlertFeed, int) {
	if feed == nil {
		return nil, 0
	}

	out := *feed
	recent, dropped := keepWellFormed(feed.Recent, func(e *models.AlertEvent) bool { return e.Malformed })
	out.Recent = recent

	return &out, dropped
}
