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

// SummarizeReachability counts checked devices as online or offline. A nil
// feed means the status service could not be reached.
func SummarizeReachability(feed models.ReachabilityFeed) models.ReachabilityView {
	if feed == nil {
		return models.ReachabilityView{Message: "Failed to load device status"}
	}

	view := models.ReachabilityView{Available: true, Total: len(feed)}

	for addr := range feed {
		if feed.Online(addr) {
			view.Online++
		}
	}

	view.Offline = view.Total - view.Online

	return view
}
