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
	"sort"

	"github.com/carverauto/campusnoc/pkg/models"
)

// RecentTaskLimit caps the recent automation table.
const RecentTaskLimit = 5

// SummarizeAutomation counts outcomes and task types over a task collection
// already scoped to the selected range. Tasks with a status other than
// success or failed count toward Total only; their number is returned.
func SummarizeAutomation(tasks []models.AutomationTask) (models.AutomationView, int) {
	view := models.AutomationView{
		Total:  len(tasks),
		ByType: make(map[string]int),
	}

	unknown := 0

	for i := range tasks {
		switch tasks[i].Status {
		case models.TaskSuccess:
			view.Success++
		case models.TaskFailed:
			view.Failed++
		default:
			unknown++
		}

		view.ByType[tasks[i].TaskType]++
	}

	view.SuccessRate = percentOf(view.Success, view.Total)
	view.Recent = RecentTasks(tasks)

	return view, unknown
}

// SummarizeAutomationFeed accepts either shape of the automation payload. A
// raw task list wins; otherwise the pre-aggregated counters are used, and
// when those are absent too the recent slice is counted. A nil feed yields
// a nil view.
func SummarizeAutomationFeed(feed *models.AutomationFeed) (*models.AutomationView, int) {
	if feed == nil {
		return nil, 0
	}

	if feed.Tasks != nil {
		view, unknown := SummarizeAutomation(feed.Tasks)
		return &view, unknown
	}

	if feed.Total == nil && feed.Success == nil && feed.Failed == nil {
		view, unknown := SummarizeAutomation(feed.Recent)
		if feed.ByType != nil {
			view.ByType = copyCounts(feed.ByType)
		}

		return &view, unknown
	}

	view := models.AutomationView{
		Success: nonNegative(feed.Success),
		Failed:  nonNegative(feed.Failed),
		ByType:  copyCounts(feed.ByType),
		Recent:  RecentTasks(feed.Recent),
	}

	view.Total = nonNegative(feed.Total)
	if known := view.Success + view.Failed; known > view.Total {
		view.Total = known
	}

	view.SuccessRate = percentOf(view.Success, view.Total)

	return &view, 0
}

// RecentTasks returns up to RecentTaskLimit tasks, most recent start first.
// Tasks without a start time sort last, keeping input order among equals.
func RecentTasks(tasks []models.AutomationTask) []models.RecentTask {
	ordered := make([]models.AutomationTask, len(tasks))
	copy(ordered, tasks)

	sort.SliceStable(ordered, func(i, j int) bool {
		a, b := ordered[i].StartedAt, ordered[j].StartedAt
		if !a.Valid() || !b.Valid() {
			return a.Valid() && !b.Valid()
		}

		return a.After(b.Time)
	})

	if len(ordered) > RecentTaskLimit {
		ordered = ordered[:RecentTaskLimit]
	}

	recent := make([]models.RecentTask, 0, len(ordered))

	for i := range ordered {
		t := &ordered[i]

		devices := make([]string, len(t.DevicesInvolved))
		copy(devices, t.DevicesInvolved)

		recent = append(recent, models.RecentTask{
			TaskID:          t.TaskID,
			TaskType:        t.TaskType,
			Status:          t.Status,
			DeviceCount:     len(devices),
			DevicesInvolved: devices,
			StartedAt:       t.StartedAt,
			EndedAt:         t.EndedAt,
			DurationSeconds: TaskDuration(t),
		})
	}

	return recent
}

// TaskDuration is end minus start in seconds, or nil when either end is
// missing or the result is negative or not finite.
func TaskDuration(t *models.AutomationTask) *float64 {
	if !t.StartedAt.Valid() || !t.EndedAt.Valid() {
		return nil
	}

	seconds := t.EndedAt.Sub(t.StartedAt.Time).Seconds()
	if math.IsNaN(seconds) || math.IsInf(seconds, 0) || seconds < 0 {
		return nil
	}

	return &seconds
}

func copyCounts(in map[string]int) map[string]int {
	out := make(map[string]int, len(in))
	for k, v := range in {
		if v < 0 {
			v = 0
		}

		out[k] = v
	}

	return out
}

func nonNegative(v *int) int {
	if v == nil || *v < 0 {
		return 0
	}

	return *v
}
