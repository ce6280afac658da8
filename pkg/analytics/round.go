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

// Package analytics turns raw campus records into display-ready views. Every
// function is pure: the same input always yields an identical result, and
// malformed records are skipped and counted rather than reported as errors.
package analytics

import (
	"math"

	"github.com/montanaflynn/stats"
)

// RoundHalfUp rounds a non-negative value to the nearest integer, with .5
// going up. Non-finite input rounds to 0.
func RoundHalfUp(v float64) int {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}

	rounded, err := stats.Round(v, 0)
	if err != nil {
		return 0
	}

	return int(rounded)
}

// roundedMean returns nil for an empty sample.
func roundedMean(values []float64) *int {
	if len(values) == 0 {
		return nil
	}

	mean, err := stats.Mean(values)
	if err != nil {
		return nil
	}

	r := RoundHalfUp(mean)

	return &r
}

// percentOf returns part/whole*100 rounded half up, or 0 when whole is 0.
func percentOf(part, whole int) int {
	if whole <= 0 {
		return 0
	}

	return RoundHalfUp(float64(part) * 100 / float64(whole))
}
