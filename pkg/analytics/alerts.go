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
	"sort"

	"github.com/carverauto/campusnoc/pkg/models"
)

const (
	// RecentAlertLimit caps the recent alert table.
	RecentAlertLimit = 6

	dayLayout = "2006-01-02"
)

// AlertDrops counts alerts left out of the derived views.
type AlertDrops struct {
	UnknownSeverity int
	UnparseableTime int
}

// BucketAlerts builds the severity histogram, the per-day series and the
// recent table. Recent keeps the feed's order: the alerting system is
// expected to deliver newest first and this function does not re-sort.
// A nil feed yields a nil view.
func BucketAlerts(feed *models.AlertFeed, names DeviceNames) (*models.AlertView, AlertDrops) {
	var drops AlertDrops

	if feed == nil {
		return nil, drops
	}

	events := feed.Recent
	view := &models.AlertView{
		PerDay: []models.DayCount{},
		Recent: make([]models.AlertRow, 0, min(len(events), RecentAlertLimit)),
	}

	perDay := make(map[string]int)
	open, closed := 0, 0

	for i := range events {
		ev := &events[i]

		switch ev.Severity {
		case models.AlertCritical:
			view.Severity.Critical++
		case models.AlertMajor:
			view.Severity.Major++
		case models.AlertMinor:
			view.Severity.Minor++
		default:
			drops.UnknownSeverity++
		}

		if ev.OpenedAt.Valid() {
			perDay[ev.OpenedAt.UTC().Format(dayLayout)]++
		} else {
			drops.UnparseableTime++
		}

		switch ev.Status {
		case "open":
			open++
		case "closed":
			closed++
		}

		if i < RecentAlertLimit {
			view.Recent = append(view.Recent, models.AlertRow{
				ID:         ev.ID,
				DeviceID:   ev.DeviceID,
				DeviceName: names.Name(ev.DeviceID),
				Severity:   ev.Severity,
				Type:       ev.Type,
				OpenedAt:   ev.OpenedAt,
				Status:     ev.Status,
			})
		}
	}

	days := make([]string, 0, len(perDay))
	for day := range perDay {
		days = append(days, day)
	}

	sort.Strings(days)

	for _, day := range days {
		view.PerDay = append(view.PerDay, models.DayCount{Date: day, Count: perDay[day]})
	}

	view.Total = countOr(feed.Total, len(events))
	view.Open = countOr(feed.Open, open)
	view.Closed = countOr(feed.Closed, closed)

	return view, drops
}

func countOr(supplied *int, counted int) int {
	if supplied == nil {
		return counted
	}

	return max(*supplied, 0)
}
