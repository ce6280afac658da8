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


package api

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gocarina/gocsv"

	"github.com/carverauto/campusnoc/pkg/models"
)

type complianceCSVRow struct {
	DeviceID        string `csv:"device_id"`
	DeviceName      string `csv:"device_name"`
	Status          string `csv:"status"`
	FailedRuleCount int    `csv:"failed_rule_count"`
	FailedRules     string `csv:"failed_rules"`
}

// automationCSVRow leaves time and duration cells empty when unknown.
type automationCSVRow struct {
	TaskID          string `csv:"task_id"`
	TaskType        string `csv:"task_type"`
	Status          string `csv:"status"`
	DeviceCount     int    `csv:"device_count"`
	DevicesInvolved string `csv:"devices_involved"`
	StartedAt       string `csv:"started_at"`
	EndedAt         string `csv:"ended_at"`
	DurationSeconds string `csv:"duration_seconds"`
}

func newAutomationCSVRow(task *models.RecentTask) *automationCSVRow {
	row := &automationCSVRow{
		TaskID:          task.TaskID,
		TaskType:        task.TaskType,
		Status:          string(task.Status),
		DeviceCount:     task.DeviceCount,
		DevicesInvolved: strings.Join(task.DevicesInvolved, "; "),
		StartedAt:       csvTime(task.StartedAt),
		EndedAt:         csvTime(task.EndedAt),
	}

	if task.DurationSeconds != nil {
		row.DurationSeconds = strconv.FormatFloat(*task.DurationSeconds, 'f', -1, 64)
	}

	return row
}

func csvTime(ts models.Timestamp) string {
	if !ts.Valid() {
		return ""
	}

	return ts.UTC().Format(time.RFC3339)
}

func (s *APIServer) exportCompliance(w http.ResponseWriter, _ *http.Request) {
	state := s.dashboard.State()
	if !state.Loaded() {
		writeNotLoaded(w, state)

		return
	}

	devices := state.Dashboard.Compliance.Devices
	rows := make([]*complianceCSVRow, 0, len(devices))

	for i := range devices {
		d := &devices[i]
		rows = append(rows, &complianceCSVRow{
			DeviceID:        d.DeviceID,
			DeviceName:      d.DeviceName,
			Status:          string(d.Status),
			FailedRuleCount: d.FailedRuleCount,
			FailedRules:     strings.Join(d.FailedRules, "; "),
		})
	}

	s.writeCSV(w, "compliance.csv", rows)
}

func (s *APIServer) exportAutomation(w http.ResponseWriter, _ *http.Request) {
	state := s.dashboard.State()
	if !state.Loaded() {
		writeNotLoaded(w, state)

		return
	}

	rows := make([]*automationCSVRow, 0)

	if automation := state.Dashboard.Automation; automation != nil {
		for i := range automation.Recent {
			rows = append(rows, newAutomationCSVRow(&automation.Recent[i]))
		}
	}

	s.writeCSV(w, "automation.csv", rows)
}

func (s *APIServer) exportTickets(w http.ResponseWriter, _ *http.Request) {
	state := s.dashboard.State()
	if !state.Loaded() {
		writeNotLoaded(w, state)

		return
	}

	rows := make([]*models.TicketRow, 0, len(state.Dashboard.Tickets.Rows))
	for i := range state.Dashboard.Tickets.Rows {
		rows = append(rows, &state.Dashboard.Tickets.Rows[i])
	}

	s.writeCSV(w, "tickets.csv", rows)
}

func (s *APIServer) writeCSV(w http.ResponseWriter, filename string, rows interface{}) {
	csv, err := gocsv.MarshalString(rows)
	if err != nil {
		s.logger.Error().Err(err).Str("file", filename).Msg("Error encoding CSV export")
		writeError(w, "failed to encode export", http.StatusInternalServerError)

		return
	}

	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", `attachment; filename="`+filename+`"`)

	if _, err := w.Write([]byte(csv)); err != nil {
		s.logger.Warn().Err(err).Str("file", filename).Msg("Error writing CSV export")
	}
}
