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
	"fmt"
	"sort"

	"github.com/carverauto/campusnoc/pkg/models"
)

// ResolveConfigSnapshots picks the newest backup and the newest one taken
// strictly before it. Snapshots without a usable timestamp are dropped and
// counted in UndatedSnapshots, wrongly typed ones in MalformedSnapshots. Fewer than two dated snapshots, or no
// strictly older one, gives an insufficient history view; a half-filled pair
// is never returned.
func ResolveConfigSnapshots(deviceID string, history []models.ConfigSnapshot) models.ConfigDiffView {
	dated := make([]models.ConfigSnapshot, 0, len(history))
	undated, malformed := 0, 0

	for i := range history {
		if history[i].Malformed {
			malformed++
			continue
		}

		if !history[i].Timestamp.Valid() {
			undated++
			continue
		}

		dated = append(dated, history[i])
	}

	sort.SliceStable(dated, func(i, j int) bool {
		return dated[i].Timestamp.Before(dated[j].Timestamp.Time)
	})

	view := models.ConfigDiffView{
		DeviceID:           deviceID,
		State:              models.ConfigDiffInsufficientHistory,
		UndatedSnapshots:   undated,
		MalformedSnapshots: malformed,
	}

	if len(dated) >= 2 {
		after := dated[len(dated)-1]

		for i := len(dated) - 2; i >= 0; i-- {
			if dated[i].Timestamp.Before(after.Timestamp.Time) {
				before := dated[i]
				view.State = models.ConfigDiffReady
				view.Before = &before
				view.After = &after

				break
			}
		}
	}

	LabelConfigDiff(&view, "")

	return view
}

// UnavailableConfigDiff is the view shown when the history fetch failed.
func UnavailableConfigDiff(deviceID string) models.ConfigDiffView {
	view := models.ConfigDiffView{DeviceID: deviceID, State: models.ConfigDiffUnavailable}
	LabelConfigDiff(&view, "")

	return view
}

// LabelConfigDiff sets the display name and the summary line. An empty name
// falls back to the device identifier.
func LabelConfigDiff(view *models.ConfigDiffView, name string) {
	if name == "" {
		name = view.DeviceID
	}

	view.DeviceName = name

	switch view.State {
	case models.ConfigDiffReady:
		view.Message = fmt.Sprintf("Config updated from %s to %s on %s.",
			view.Before.ConfigVersion, view.After.ConfigVersion, name)
	case models.ConfigDiffInsufficientHistory:
		view.Message = fmt.Sprintf("Not enough backup history for %s. Run at least two backups to see diff.", name)
	case models.ConfigDiffUnavailable:
		view.Message = fmt.Sprintf("Failed to load config history for %s.", name)
	}
}
