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


// Package api provides the HTTP API serving the campus dashboard view.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	srHttp "github.com/carverauto/campusnoc/pkg/http"
	"github.com/carverauto/campusnoc/pkg/logger"
	"github.com/carverauto/campusnoc/pkg/models"
)

const (
	defaultReadTimeout     = 10 * time.Second
	defaultWriteTimeout    = 60 * time.Second
	defaultIdleTimeout     = 60 * time.Second
	defaultShutdownTimeout = 5 * time.Second
)

// DashboardService is the orchestrator surface the API drives.
type DashboardService interface {
	State() *models.DashboardState
	Range() models.Range
	Refresh(ctx context.Context, rng models.Range) (*models.DashboardState, error)
	SelectDevice(ctx context.Context, deviceID string) (*models.ConfigDiffView, error)
}

// APIServer serves the dashboard view model over HTTP.
type APIServer struct {
	router     *mux.Router
	handler    http.Handler
	dashboard  DashboardService
	corsConfig models.CORSConfig
	apiKey     string
	logger     logger.Logger
}

// NewAPIServer creates a new API server instance with the given configuration
func NewAPIServer(config models.CORSConfig, dashboard DashboardService, options ...func(server *APIServer)) *APIServer {
	s := &APIServer{
		router:     mux.NewRouter(),
		dashboard:  dashboard,
		corsConfig: config,
		logger:     logger.NewTestLogger(),
	}

	for _, o := range options {
		o(s)
	}

	s.setupRoutes()

	return s
}

// WithLogger sets the logger used for request and handler logging.
func WithLogger(log logger.Logger) func(server *APIServer) {
	return func(server *APIServer) {
		server.logger = log
	}
}

// WithAPIKey requires the key in X-API-Key on every route but /api/status.
func WithAPIKey(key string) func(server *APIServer) {
	return func(server *APIServer) {
		server.apiKey = key
	}
}

// setupRoutes registers the routes. CORS wraps the whole router so
// preflight requests are answered before method matching.
func (s *APIServer) setupRoutes() {
	s.router.HandleFunc("/api/status", s.getStatus).Methods(http.MethodGet)

	protected := s.router.PathPrefix("/api/dashboard").Subrouter()
	protected.Use(srHttp.APIKeyMiddlewareWithOptions(srHttp.APIKeyOptions{
		APIKey:          s.apiKey,
		LogUnauthorized: true,
		Logger:          s.logger,
	}))

	protected.HandleFunc("", s.getDashboard).Methods(http.MethodGet)
	protected.HandleFunc("/refresh", s.refreshDashboard).Methods(http.MethodPost)
	protected.HandleFunc("/config", s.getConfigDiff).Methods(http.MethodGet)
	protected.HandleFunc("/selection", s.putSelection).Methods(http.MethodPut)
	protected.HandleFunc("/compliance.csv", s.exportCompliance).Methods(http.MethodGet)
	protected.HandleFunc("/automation.csv", s.exportAutomation).Methods(http.MethodGet)
	protected.HandleFunc("/tickets.csv", s.exportTickets).Methods(http.MethodGet)

	s.handler = srHttp.CommonMiddleware(s.router, s.corsConfig, s.logger)
}

// Handler returns the root handler with middleware applied.
func (s *APIServer) Handler() http.Handler {
	return s.handler
}

// Start serves on addr until ctx is cancelled, then shuts down gracefully.
func (s *APIServer) Start(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:         addr,
		Handler:      s.handler,
		ReadTimeout:  defaultReadTimeout,
		WriteTimeout: defaultWriteTimeout,
		IdleTimeout:  defaultIdleTimeout,
	}

	errCh := make(chan error, 1)

	go func() {
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), defaultShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}

	if err := <-errCh; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}

	return nil
}

func (s *APIServer) encodeJSONResponse(w http.ResponseWriter, data interface{}) {
	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(data); err != nil {
		s.logger.Error().Err(err).Msg("Error encoding response")
	}
}

func writeError(w http.ResponseWriter, message string, statusCode int) {
	w.Header().Set("Content-Type", "application/json")

	w.WriteHeader(statusCode)

	errResponse := models.ErrorResponse{
		Message: message,
		Status:  statusCode,
	}

	if err := json.NewEncoder(w).Encode(errResponse); err != nil {
		http.Error(w, "Failed to encode error response", http.StatusInternalServerError)
	}
}
