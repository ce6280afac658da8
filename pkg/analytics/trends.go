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
	"bytes"
	"encoding/json"
	"math"

	"github.com/carverauto/campusnoc/pkg/models"
)

// AssembleTrends validates a backend trend series for the given range.
// Points need a parseable date and both metrics as JSON numbers in [0,100];
// anything else is dropped and counted in Dropped. Order is preserved and
// dates are normalized to YYYY-MM-DD.
func AssembleTrends(rng models.Range, points []models.RawTrendPoint) models.TrendSeries {
	series := models.TrendSeries{
		RangeDays: rng.Days(),
		Points:    make([]models.TrendPoint, 0, len(points)),
	}

	for i := range points {
		p := &points[i]

		day := models.ParseTimestamp(p.Date)
		health, okHealth := percentValue(p.AvgHealthScore)
		rate, okRate := percentValue(p.AutomationSuccessRate)

		if day.IsZero() || !okHealth || !okRate {
			series.Dropped++
			continue
		}

		series.Points = append(series.Points, models.TrendPoint{
			Date:                  day.Format(dayLayout),
			AvgHealthScore:        health,
			AutomationSuccessRate: rate,
		})
	}

	return series
}

func percentValue(raw json.RawMessage) (float64, bool) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || trimmed[0] == '"' || bytes.Equal(trimmed, []byte("null")) {
		return 0, false
	}

	var v float64
	if err := json.Unmarshal(trimmed, &v); err != nil {
		return 0, false
	}

	if math.IsNaN(v) || math.IsInf(v, 0) || v < 0 || v > 100 {
		return 0, false
	}

	return v, true
}
