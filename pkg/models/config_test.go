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
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestServiceConfigValidateDefaults(t *testing.T) {
	cfg := ServiceConfig{
		Source: SourceConfig{HTTP: &HTTPSourceConfig{BaseURL: "http://backend:8000/api"}},
	}

	require.NoError(t, cfg.Validate())
	assert.Equal(t, DefaultListenAddr, cfg.ListenAddr)
	assert.Equal(t, "7d", cfg.DefaultRange)
	assert.Equal(t, DefaultRefreshInterval, cfg.Interval())
	assert.Equal(t, SourceHTTP, cfg.Source.Kind)
	assert.Equal(t, Duration(DefaultHTTPTimeout), cfg.Source.HTTP.Timeout)
}

func TestServiceConfigValidateErrors(t *testing.T) {
	tests := []struct {
		name string
		cfg  ServiceConfig
		want error
	}{
		{
			name: "bad range",
			cfg:  ServiceConfig{DefaultRange: "1y", Source: SourceConfig{HTTP: &HTTPSourceConfig{BaseURL: "x"}}},
			want: ErrUnknownRange,
		},
		{
			name: "missing base url",
			cfg:  ServiceConfig{Source: SourceConfig{Kind: SourceHTTP}},
			want: ErrMissingBaseURL,
		},
		{
			name: "unknown source",
			cfg:  ServiceConfig{Source: SourceConfig{Kind: "snmp"}},
			want: ErrUnknownSourceKind,
		},
		{
			name: "cnpg without host",
			cfg:  ServiceConfig{Source: SourceConfig{Kind: SourceCNPG, CNPG: &CNPGDatabase{Database: "noc"}}},
			want: ErrMissingCNPG,
		},
		{
			name: "events without nats",
			cfg: ServiceConfig{
				Source: SourceConfig{HTTP: &HTTPSourceConfig{BaseURL: "x"}},
				Events: &EventsConfig{Enabled: true},
			},
			want: ErrNATSURLRequired,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			require.ErrorIs(t, err, tt.want)
		})
	}
}

func TestServiceConfigRefreshDisabled(t *testing.T) {
	var cfg ServiceConfig

	payload := `{"refresh_interval":"0s","source":{"kind":"http","http":{"base_url":"http://b","timeout":"3s"}}}`
	require.NoError(t, json.Unmarshal([]byte(payload), &cfg))
	require.NoError(t, cfg.Validate())

	assert.Equal(t, time.Duration(0), cfg.Interval())
	assert.Equal(t, Duration(3*time.Second), cfg.Source.HTTP.Timeout)
}

func TestServiceConfigYAML(t *testing.T) {
	doc := `
listen_addr: ":9000"
default_range: 30d
refresh_interval: 2m
source:
  kind: cnpg
  cnpg:
    host: pg.campus.local
    database: noc
    statement_timeout: 5s
nats:
  url: nats://nats:4222
events:
  enabled: true
cors:
  allowed_origins: ["http://localhost:5173"]
logging:
  level: debug
`

	var cfg ServiceConfig
	require.NoError(t, yaml.Unmarshal([]byte(doc), &cfg))
	require.NoError(t, cfg.Validate())

	assert.Equal(t, ":9000", cfg.ListenAddr)
	assert.Equal(t, "30d", cfg.DefaultRange)
	assert.Equal(t, 2*time.Minute, cfg.Interval())
	assert.Equal(t, Duration(5*time.Second), cfg.Source.CNPG.StatementTimeout)
	assert.Equal(t, DefaultEventsStream, cfg.Events.StreamName)
	assert.Equal(t, []string{DefaultEventsSubject}, cfg.Events.Subjects)
	assert.Equal(t, "debug", cfg.Logging.Level)
}

func TestDurationRejectsGarbage(t *testing.T) {
	var d Duration
	require.ErrorIs(t, json.Unmarshal([]byte(`"soon"`), &d), ErrInvalidDuration)
	require.ErrorIs(t, json.Unmarshal([]byte(`true`), &d), ErrInvalidDuration)
}
