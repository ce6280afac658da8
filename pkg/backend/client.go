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


// Package backend reads dashboard feeds from the campus automation backend
// over HTTP.
package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"path"
	"strconv"
	"strings"
	"time"

	"github.com/carverauto/campusnoc/pkg/logger"
	"github.com/carverauto/campusnoc/pkg/models"
)

const (
	defaultHTTPTimeout = 10 * time.Second
	maxErrorBody       = 2048
)

var (
	errBaseURLRequired = errors.New("backend base url is required")
	// ErrUnexpectedStatus is returned for any non-2xx response.
	ErrUnexpectedStatus = errors.New("unexpected backend response status")
	// ErrUnexpectedPayload is returned when a response has none of the
	// accepted shapes.
	ErrUnexpectedPayload = errors.New("unexpected backend payload shape")
	// ErrBackendReported is returned when a 2xx body carries {"error": ...}.
	ErrBackendReported = errors.New("backend reported an error")
)

// ClientConfig controls how the backend client behaves.
type ClientConfig struct {
	BaseURL string
	APIKey  string
	Timeout time.Duration
	Logger  logger.Logger
	HTTP    *http.Client
}

// Client implements dashboard.Source against the backend REST API.
type Client struct {
	baseURL *url.URL
	apiKey  string
	client  *http.Client
	logger  logger.Logger
}

// NewClient constructs a backend client.
func NewClient(cfg ClientConfig) (*Client, error) {
	if strings.TrimSpace(cfg.BaseURL) == "" {
		return nil, errBaseURLRequired
	}

	parsed, err := url.Parse(strings.TrimRight(cfg.BaseURL, "/"))
	if err != nil {
		return nil, fmt.Errorf("invalid backend base url: %w", err)
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultHTTPTimeout
	}

	httpClient := cfg.HTTP
	if httpClient == nil {
		httpClient = &http.Client{Timeout: timeout}
	}

	log := cfg.Logger
	if log == nil {
		log = logger.NewTestLogger()
	}

	return &Client{
		baseURL: parsed,
		apiKey:  cfg.APIKey,
		client:  httpClient,
		logger:  log,
	}, nil
}

// NewClientFromConfig builds a client from the service's source section.
func NewClientFromConfig(cfg *models.HTTPSourceConfig, log logger.Logger) (*Client, error) {
	if cfg == nil {
		return nil, errBaseURLRequired
	}

	return NewClient(ClientConfig{
		BaseURL: cfg.BaseURL,
		APIKey:  cfg.APIKey,
		Timeout: time.Duration(cfg.Timeout),
		Logger:  log,
	})
}

// FetchDevices reads the inventory. Both a bare array and {"devices": [...]}
// are accepted.
func (c *Client) FetchDevices(ctx context.Context) ([]models.Device, error) {
	raw, err := c.get(ctx, nil, "devices")
	if err != nil {
		return nil, err
	}

	var devices []models.Device
	if err := decodeList(raw, &devices, "devices", "data"); err != nil {
		return nil, fmt.Errorf("decode devices: %w", err)
	}

	return devices, nil
}

// FetchAutomationSummary reads the automation summary for the window.
func (c *Client) FetchAutomationSummary(ctx context.Context, rangeDays int) (*models.AutomationFeed, error) {
	raw, err := c.get(ctx, rangeQuery(rangeDays), "automation", "summary")
	if err != nil {
		return nil, err
	}

	var feed models.AutomationFeed
	if err := decodeObject(raw, &feed); err != nil {
		return nil, fmt.Errorf("decode automation summary: %w", err)
	}

	return &feed, nil
}

// FetchCompliance reads the compliance summary.
func (c *Client) FetchCompliance(ctx context.Context) (*models.ComplianceFeed, error) {
	raw, err := c.get(ctx, nil, "compliance")
	if err != nil {
		return nil, err
	}

	var feed models.ComplianceFeed
	if err := decodeObject(raw, &feed); err != nil {
		return nil, fmt.Errorf("decode compliance: %w", err)
	}

	return &feed, nil
}

// FetchAlerts reads the alert summary for the window.
func (c *Client) FetchAlerts(ctx context.Context, rangeDays int) (*models.AlertFeed, error) {
	raw, err := c.get(ctx, rangeQuery(rangeDays), "alerts")
	if err != nil {
		return nil, err
	}

	var feed models.AlertFeed
	if err := decodeObject(raw, &feed); err != nil {
		return nil, fmt.Errorf("decode alerts: %w", err)
	}

	return &feed, nil
}

// FetchTrends reads the daily series. The backend wraps it as
// {"data": [...]}; a missing wrapper key yields an empty series.
func (c *Client) FetchTrends(ctx context.Context, rangeDays int) ([]models.RawTrendPoint, error) {
	raw, err := c.get(ctx, rangeQuery(rangeDays), "trends")
	if err != nil {
		return nil, err
	}

	var points []models.RawTrendPoint

	err = decodeList(raw, &points, "data", "trends")
	if errors.Is(err, ErrUnexpectedPayload) {
		return []models.RawTrendPoint{}, nil
	}

	if err != nil {
		return nil, fmt.Errorf("decode trends: %w", err)
	}

	return points, nil
}

// FetchRecommendations reads the recommendation bundle, unwrapping
// {"insights": {...}} when present.
func (c *Client) FetchRecommendations(ctx context.Context) (*models.RecommendationBundle, error) {
	raw, err := c.get(ctx, nil, "recommendations")
	if err != nil {
		return nil, err
	}

	if isNull(raw) {
		return &models.RecommendationBundle{}, nil
	}

	var wrapper struct {
		Insights *models.RecommendationBundle `json:"insights"`
	}

	if err := json.Unmarshal(raw, &wrapper); err != nil {
		return nil, fmt.Errorf("decode recommendations: %w", err)
	}

	if wrapper.Insights != nil {
		return wrapper.Insights, nil
	}

	var bundle models.RecommendationBundle
	if err := json.Unmarshal(raw, &bundle); err != nil {
		return nil, fmt.Errorf("decode recommendations: %w", err)
	}

	return &bundle, nil
}

// FetchConfigHistory reads backups for one device. The backend may answer
// with a list, a {"snapshots": [...]} wrapper, or a precomputed
// {"before": ..., "after": ...} pair; all are flattened into a history.
func (c *Client) FetchConfigHistory(ctx context.Context, deviceID string) ([]models.ConfigSnapshot, error) {
	raw, err := c.get(ctx, nil, "config", deviceID)
	if err != nil {
		return nil, err
	}

	var history []models.ConfigSnapshot

	err = decodeList(raw, &history, "snapshots", "history", "data")
	if err == nil {
		return fillDeviceID(history, deviceID), nil
	}

	if !errors.Is(err, ErrUnexpectedPayload) {
		return nil, fmt.Errorf("decode config history: %w", err)
	}

	var pair struct {
		Before *models.ConfigSnapshot `json:"before"`
		After  *models.ConfigSnapshot `json:"after"`
	}

	if err := json.Unmarshal(raw, &pair); err != nil {
		return nil, fmt.Errorf("decode config history: %w", err)
	}

	history = make([]models.ConfigSnapshot, 0, 2)
	for _, snap := range []*models.ConfigSnapshot{pair.Before, pair.After} {
		if snap != nil {
			history = append(history, *snap)
		}
	}

	return fillDeviceID(history, deviceID), nil
}

// FetchDeviceStatus reads the reachability map keyed by device address.
func (c *Client) FetchDeviceStatus(ctx context.Context) (models.ReachabilityFeed, error) {
	raw, err := c.get(ctx, nil, "status")
	if err != nil {
		return nil, err
	}

	feed := models.ReachabilityFeed{}
	if err := decodeObject(raw, &feed); err != nil {
		return nil, fmt.Errorf("decode device status: %w", err)
	}

	return feed, nil
}

// FetchTickets reads the open ticket list. The ticketing proxy answers with a
// bare array, a {"result": [...]} wrapper, or {"error": "..."}.
func (c *Client) FetchTickets(ctx context.Context) ([]models.Ticket, error) {
	raw, err := c.get(ctx, nil, "tickets")
	if err != nil {
		return nil, err
	}

	if msg, ok := reportedError(raw); ok {
		return nil, fmt.Errorf("%w: %s", ErrBackendReported, msg)
	}

	var tickets []models.Ticket
	if err := decodeList(raw, &tickets, "result", "tickets", "data"); err != nil {
		return nil, fmt.Errorf("decode tickets: %w", err)
	}

	return tickets, nil
}

func reportedError(raw json.RawMessage) (string, bool) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || trimmed[0] != '{' {
		return "", false
	}

	var body struct {
		Error *string `json:"error"`
	}

	if err := json.Unmarshal(trimmed, &body); err != nil || body.Error == nil {
		return "", false
	}

	return *body.Error, true
}

func fillDeviceID(history []models.ConfigSnapshot, deviceID string) []models.ConfigSnapshot {
	for i := range history {
		if history[i].DeviceID == "" {
			history[i].DeviceID = deviceID
		}
	}

	return history
}

func rangeQuery(rangeDays int) url.Values {
	return url.Values{"range": []string{strconv.Itoa(rangeDays)}}
}

func (c *Client) get(ctx context.Context, query url.Values, segments ...string) (json.RawMessage, error) {
	endpoint := *c.baseURL

	escaped := make([]string, 0, len(segments)+1)
	escaped = append(escaped, endpoint.EscapedPath())

	plain := make([]string, 0, len(segments)+1)
	plain = append(plain, endpoint.Path)

	for _, seg := range segments {
		escaped = append(escaped, url.PathEscape(seg))
		plain = append(plain, seg)
	}

	endpoint.Path = path.Join(plain...)
	endpoint.RawPath = path.Join(escaped...)
	endpoint.RawQuery = query.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint.String(), http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("failed to create backend request: %w", err)
	}

	req.Header.Set("Accept", "application/json")

	if c.apiKey != "" {
		req.Header.Set("X-API-Key", c.apiKey)
	}

	start := time.Now()

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("backend request %s failed: %w", endpoint.Path, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))

		return nil, fmt.Errorf("%w %d from %s: %s", ErrUnexpectedStatus, resp.StatusCode, endpoint.Path,
			strings.TrimSpace(string(msg)))
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read backend response: %w", err)
	}

	c.logger.Debug().
		Str("endpoint", endpoint.Path).
		Int("status", resp.StatusCode).
		Int("bytes", len(body)).
		Dur("elapsed", time.Since(start)).
		Msg("Backend request completed")

	return body, nil
}

func isNull(raw json.RawMessage) bool {
	trimmed := bytes.TrimSpace(raw)

	return len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null"))
}

// decodeList accepts a bare array or an object carrying the array under one
// of keys. Null decodes to an empty list.
func decodeList(raw json.RawMessage, out any, keys ...string) error {
	if isNull(raw) {
		return json.Unmarshal([]byte("[]"), out)
	}

	trimmed := bytes.TrimSpace(raw)

	switch trimmed[0] {
	case '[':
		return json.Unmarshal(trimmed, out)
	case '{':
		var wrapper map[string]json.RawMessage
		if err := json.Unmarshal(trimmed, &wrapper); err != nil {
			return err
		}

		for _, key := range keys {
			if inner, ok := wrapper[key]; ok {
				return decodeList(inner, out)
			}
		}
	}

	return ErrUnexpectedPayload
}

// decodeObject decodes an object payload; null leaves out untouched.
func decodeObject(raw json.RawMessage, out any) error {
	if isNull(raw) {
		return nil
	}

	if bytes.TrimSpace(raw)[0] != '{' {
		return ErrUnexpectedPayload
	}

	return json.Unmarshal(raw, out)
}
