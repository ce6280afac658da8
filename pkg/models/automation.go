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

// TaskStatus is the terminal state of an automation run.
type TaskStatus string

const (
	TaskSuccess TaskStatus = "success"
	TaskFailed  TaskStatus = "failed"
)

// AutomationTask is one automation runner log entry.
type AutomationTask struct {
	TaskID          string     `json:"taskId"`
	TaskType        string     `json:"taskType"`
	DevicesInvolved []string   `json:"devicesInvolved"`
	StartedAt       Timestamp  `json:"startedAt"`
	EndedAt         Timestamp  `json:"endedAt"`
	Status          TaskStatus `json:"status"`

	Malformed bool `json:"-"`
}

func (t *AutomationTask) UnmarshalJSON(b []byte) error {
	type wire AutomationTask

	var w wire
	err := json.Unmarshal(b, &w)

	*t = AutomationTask(w)
	t.Malformed = err != nil

	return nil
}

// AutomationFeed is the automation summary endpoint payload. The backend
// either ships the raw Tasks for the range, or pre-aggregated counters plus
// a Recent slice. Every field is optional.
type AutomationFeed struct {
	Total   *int             `json:"total,omitempty"`
	Success *int             `json:"success,omitempty"`
	Failed  *int             `json:"failed,omitempty"`
	ByType  map[string]int   `json:"byType,omitempty"`
	Recent  []AutomationTask `json:"recent,omitempty"`
	Tasks   []AutomationTask `json:"tasks,omitempty"`
}
