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

package models

import "encoding/json"

// RawTrendPoint is a trend sample exactly as delivered. The metrics are kept
// raw so a non-numeric value can be detected and dropped per point instead of
// failing the whole series. A date that is not a JSON string leaves Date
// empty, which the assembler treats as unparseable.
type RawTrendPoint struct {
	Date                  string          `json:"date"`
	AvgHealthScore        json.RawMessage `json:"avgHealthScore"`
	AutomationSuccessRate json.RawMessage `json:"automationSuccessRate"`

	Malformed bool `json:"-"`
}

func (p *RawTrendPoint) UnmarshalJSON(b []byte) error {
	type wire struct {
		Date                  json.RawMessage `json:"date"`
		AvgHealthScore        json.RawMessage `json:"avgHealthScore"`
		AutomationSuccessRate json.RawMessage `json:"automationSuccessRate"`
	}

	var w wire
	if err := json.Unmarshal(b, &w); err != nil {
		*p = RawTrendPoint{Malformed: true}
		return nil
	}

	*p = RawTrendPoint{
		AvgHealthScore:        w.AvgHealthScore,
		AutomationSuccessRate: w.AutomationSuccessRate,
	}

	if len(w.Date) > 0 && w.Date[0] == '"' {
		p.Malformed = json.Unmarshal(w.Date, &p.Date) != nil
	} else if len(w.Date) > 0 && string(w.Date) != "null" {
		p.Malformed = true
	}

	return nil
}

// TrendPoint is a validated daily sample.
type TrendPoint struct {
	Date                  string  `json:"date"`
	AvgHealthScore        float64 `json:"avg_health_score"`
	AutomationSuccessRate float64 `json:"automation_success_rate"`
}

// RecommendationBundle is the external engine's advisory text per category.
type RecommendationBundle struct {
	Performance []string `json:"performance,omitempty"`
	Reliability []string `json:"reliability,omitempty"`
	Compliance  []string `json:"compliance,omitempty"`
	Automation  []string `json:"automation,omitempty"`
}
