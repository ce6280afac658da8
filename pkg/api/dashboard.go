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
	"encoding/json"
	"errors"
	"net/http"

	"github.com/carverauto/campusnoc/pkg/dashboard"
	"github.com/carverauto/campusnoc/pkg/models"
)

const maxSelectionBody = 4 << 10

var errNotLoaded = errors.New("dashboard has not loaded yet")

func (s *APIServer) getStatus(w http.ResponseWriter, _ *http.Request) {
	state := s.dashboard.State()

	status := models.StatusResponse{
		Status:      "ok",
		Loaded:      state.Loaded(),
		Version:     state.Version,
		Range:       state.Range,
		RefreshedAt: state.RefreshedAt,
		LastError:   state.LastError,
	}

	if !status.Loaded {
		status.Status = "loading"
	}

	s.encodeJSONResponse(w, status)
}

func (s *APIServer) getDashboard(w http.ResponseWriter, _ *http.Request) {
	state := s.dashboard.State()
	if !state.Loaded() {
		writeNotLoaded(w, state)

		return
	}

	s.encodeJSONResponse(w, state)
}

func (s *APIServer) refreshDashboard(w http.ResponseWriter, r *http.Request) {
	rng := s.dashboard.Range()

	if token := r.URL.Query().Get("range"); token != "" {
		parsed, err := models.ParseRange(token)
		if err != nil {
			writeError(w, err.Error(), http.StatusBadRequest)

			return
		}

		rng = parsed
	}

	state, err := s.dashboard.Refresh(r.Context(), rng)
	if err != nil {
		s.logger.Warn().Err(err).Str("range", rng.String()).Msg("Dashboard refresh request failed")

		if errors.Is(err, dashboard.ErrTransportFailure) {
			writeError(w, dashboard.ErrTransportFailure.Error(), http.StatusBadGateway)

			return
		}

		writeError(w, "refresh failed", http.StatusInternalServerError)

		return
	}

	s.encodeJSONResponse(w, state)
}

func (s *APIServer) getConfigDiff(w http.ResponseWriter, _ *http.Request) {
	state := s.dashboard.State()
	if state.ConfigDiff == nil {
		writeError(w, "no device selected", http.StatusNotFound)

		return
	}

	s.encodeJSONResponse(w, state.ConfigDiff)
}

func (s *APIServer) putSelection(w http.ResponseWriter, r *http.Request) {
	var req models.SelectionRequest

	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxSelectionBody)).Decode(&req); err != nil {
		writeError(w, "invalid selection body", http.StatusBadRequest)

		return
	}

	view, err := s.dashboard.SelectDevice(r.Context(), req.DeviceID)

	switch {
	case err == nil:
		s.encodeJSONResponse(w, view)
	case errors.Is(err, dashboard.ErrDeviceIDRequired):
		writeError(w, err.Error(), http.StatusBadRequest)
	case errors.Is(err, dashboard.ErrSelectionSuperseded):
		writeError(w, err.Error(), http.StatusConflict)
	case errors.Is(err, dashboard.ErrTransportFailure):
		writeError(w, dashboard.ErrTransportFailure.Error(), http.StatusBadGateway)
	default:
		s.logger.Error().Err(err).Str("device_id", req.DeviceID).Msg("Device selection failed")
		writeError(w, "selection failed", http.StatusInternalServerError)
	}
}

// writeNotLoaded reports the last batch error when there is one.
func writeNotLoaded(w http.ResponseWriter, state *models.DashboardState) {
	message := errNotLoaded.Error()
	if state.LastError != "" {
		message = state.LastError
	}

	writeError(w, message, http.StatusServiceUnavailable)
}
