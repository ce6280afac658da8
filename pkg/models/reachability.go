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

import (
	"encoding/json"
	"strings"
)

// ReachabilityOnline is the reachability state of a reachable device.
const ReachabilityOnline = "ON"

// ReachabilityFeed maps a device address to its last reachability state. Any state
// other than ON counts as offline.
type ReachabilityFeed map[string]string

// UnmarshalJSON accepts the status map with non-string states, which are kept
// as empty strings and so count as offline.
func (f *ReachabilityFeed) UnmarshalJSON(b []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}

	out := make(ReachabilityFeed, len(raw))

	for addr, value := range raw {
		var state string
		if err := json.Unmarshal(value, &state); err != nil {
			state = ""
		}

		out[addr] = state
	}

	*f = out

	return nil
}

// Online reports whether the state for addr is ON.
func (f ReachabilityFeed) Online(addr string) bool {
	return strings.EqualFold(strings.TrimSpace(f[addr]), ReachabilityOnline)
}

// ReachabilityView is the online/offline rollup shown on the overview.
type ReachabilityView struct {
	Available bool   `json:"available"`
	Total     int    `json:"total"`
	Online    int    `json:"online"`
	Offline   int    `json:"offline"`
	Message   string `json:"message,omitempty"`
}
