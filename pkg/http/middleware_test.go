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


package http

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/carverauto/campusnoc/pkg/logger"
	"github.com/carverauto/campusnoc/pkg/models"
)

func okHandler(t *testing.T) http.Handler {
	t.Helper()

	return http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		if _, err := w.Write([]byte("OK")); err != nil {
			t.Errorf("Error writing response: %v", err)
		}
	})
}

func TestCommonMiddleware_CORS(t *testing.T) {
	corsConfig := models.CORSConfig{
		AllowedOrigins:   []string{"http://localhost:3000"},
		AllowCredentials: true,
	}

	handler := CommonMiddleware(okHandler(t), corsConfig, logger.NewTestLogger())

	req := httptest.NewRequest(http.MethodGet, "/", http.NoBody)
	req.Header.Set("Origin", "http://localhost:3000")

	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "http://localhost:3000", rr.Header().Get("Access-Control-Allow-Origin"))
	assert.Equal(t, "true", rr.Header().Get("Access-Control-Allow-Credentials"))

	req = httptest.NewRequest(http.MethodGet, "/", http.NoBody)
	req.Header.Set("Origin", "http://evil.com")

	rr = httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	assert.Empty(t, rr.Header().Get("Access-Control-Allow-Origin"), "CORS allowed an unpermitted origin")
}

func TestCommonMiddleware_Preflight(t *testing.T) {
	called := false
	next := http.HandlerFunc(func(http.ResponseWriter, *http.Request) { called = true })

	handler := CommonMiddleware(next, models.CORSConfig{AllowedOrigins: []string{"*"}}, logger.NewTestLogger())

	req := httptest.NewRequest(http.MethodOptions, "/api/dashboard", http.NoBody)
	req.Header.Set("Origin", "http://noc.campus.local")

	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.False(t, called)
	assert.Equal(t, "http://noc.campus.local", rr.Header().Get("Access-Control-Allow-Origin"))
	assert.Empty(t, rr.Header().Get("Access-Control-Allow-Credentials"))
}

func TestAPIKeyMiddleware_Unauthorized(t *testing.T) {
	opts := APIKeyOptions{
		APIKey:          "test-key",
		ExcludePaths:    []string{"/api/status"},
		LogUnauthorized: true,
		Logger:          logger.NewTestLogger(),
	}

	handler := APIKeyMiddlewareWithOptions(opts)(okHandler(t))

	tests := []struct {
		name   string
		path   string
		key    string
		status int
	}{
		{name: "missing key", path: "/api/dashboard", status: http.StatusUnauthorized},
		{name: "wrong key", path: "/api/dashboard", key: "nope", status: http.StatusUnauthorized},
		{name: "valid key", path: "/api/dashboard", key: "test-key", status: http.StatusOK},
		{name: "excluded path", path: "/api/status", status: http.StatusOK},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, tc.path, http.NoBody)
			if tc.key != "" {
				req.Header.Set("X-API-Key", tc.key)
			}

			rr := httptest.NewRecorder()
			handler.ServeHTTP(rr, req)

			assert.Equal(t, tc.status, rr.Code)
		})
	}
}

func TestAPIKeyMiddleware_DisabledWithoutKey(t *testing.T) {
	handler := APIKeyMiddlewareWithOptions(APIKeyOptions{})(okHandler(t))

	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/api/dashboard", http.NoBody))

	assert.Equal(t, http.StatusOK, rr.Code)
}
