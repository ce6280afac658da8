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

	"github.com/carverauto/campusnoc/pkg/models"
)

// RenderRecommendations lays out the four advisory categories in fixed
// order. Text is passed through untouched; an absent or empty category gets
// a single fallback line.
func RenderRecommendations(bundle *models.RecommendationBundle) []models.RecommendationCategory {
	if bundle == nil {
		bundle = &models.RecommendationBundle{}
	}

	categories := []struct {
		key, title string
		items      []string
	}{
		{"performance", "Performance", bundle.Performance},
		{"reliability", "Reliability", bundle.Reliability},
		{"compliance", "Compliance", bundle.Compliance},
		{"automation", "Automation", bundle.Automation},
	}

	out := make([]models.RecommendationCategory, 0, len(categories))

	for _, c := range categories {
		rendered := models.RecommendationCategory{Key: c.key, Title: c.title}

		if len(c.items) == 0 {
			rendered.Items = []string{fmt.Sprintf("No %s-related insights.", c.key)}
			rendered.Fallback = true
		} else {
			rendered.Items = make([]string, len(c.items))
			copy(rendered.Items, c.items)
		}

		out = append(out, rendered)
	}

	return out
}
