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
	"math"
	"strconv"

	"github.com/carverauto/campusnoc/pkg/models"
)

// SelectUptimeExtrema returns the longest and shortest running devices.
// Missing or negative uptime compares as 0 and ties go to the earlier
// device. Both entries are nil for an empty inventory.
func SelectUptimeExtrema(devices []models.Device) models.UptimeExtrema {
	if len(devices) == 0 {
		return models.UptimeExtrema{}
	}

	longest, shortest := 0, 0
	maxHours := devices[0].UptimeHours.NonNegative()
	minHours := maxHours

	for i := 1; i < len(devices); i++ {
		h := devices[i].UptimeHours.NonNegative()

		if h > maxHours {
			longest, maxHours = i, h
		}

		if h < minHours {
			shortest, minHours = i, h
		}
	}

	return models.UptimeExtrema{
		Longest:  uptimeEntry(&devices[longest], maxHours),
		Shortest: uptimeEntry(&devices[shortest], minHours),
	}
}

func uptimeEntry(d *models.Device, hours float64) *models.UptimeEntry {
	return &models.UptimeEntry{
		DeviceID:    d.ID,
		Name:        d.DisplayName(),
		UptimeHours: hours,
		Formatted:   FormatUptime(hours),
	}
}

// FormatUptime renders hours as "<days>d <hours>h" with days =
// floor(hours/24) and the remainder hours mod 24, kept to one decimal.
func FormatUptime(hours float64) string {
	if math.IsNaN(hours) || math.IsInf(hours, 0) || hours < 0 {
		hours = 0
	}

	days := math.Floor(hours / 24)
	rem := math.Round(math.Mod(hours, 24)*10) / 10

	if rem >= 24 {
		days++
		rem -= 24
	}

	return fmt.Sprintf("%sd %sh",
		strconv.FormatFloat(days, 'f', -1, 64),
		strconv.FormatFloat(rem, 'f', -1, 64))
}
