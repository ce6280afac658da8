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

// ConfigSnapshot is one configuration backup. ChangeSummary lines are opaque
// text from the backup system.
type ConfigSnapshot struct {
	DeviceID      string    `json:"device_id,omitempty"`
	ConfigVersion string    `json:"config_version"`
	Timestamp     Timestamp `json:"timestamp"`
	ChangeSummary []string  `json:"change_summary"`

	Malformed bool `json:"-"`
}

type configSnapshotWire struct {
	DeviceID      string    `json:"deviceId"`
	ConfigVersion string    `json:"configVersion"`
	Timestamp     Timestamp `json:"timestamp"`
	ChangeSummary []string  `json:"changeSummary"`
	Changes       []string  `json:"changes"`
}

// UnmarshalJSON reads the backup service's camelCase shape, which names the
// change lines either changeSummary or changes. A wrongly typed field flags
// the snapshot Malformed rather than failing the history.
func (s *ConfigSnapshot) UnmarshalJSON(b []byte) error {
	var wire configSnapshotWire
	malformed := json.Unmarshal(b, &wire) != nil

	lines := wire.ChangeSummary
	if lines == nil {
		lines = wire.Changes
	}

	if lines == nil {
		lines = []string{}
	}

	*s = ConfigSnapshot{
		DeviceID:      wire.DeviceID,
		ConfigVersion: wire.ConfigVersion,
		Timestamp:     wire.Timestamp,
		ChangeSummary: lines,
		Malformed:     malformed,
	}

	return nil
}

// MarshalJSON writes the snake_case view shape.
func (s ConfigSnapshot) MarshalJSON() ([]byte, error) {
	type view ConfigSnapshot

	v := view(s)
	if v.ChangeSummary == nil {
		v.ChangeSummary = []string{}
	}

	return json.Marshal(v)
}
