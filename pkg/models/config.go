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
	"fmt"
	"time"

	"github.com/carverauto/campusnoc/pkg/logger"
	"gopkg.in/yaml.v3"
)

const (
	DefaultListenAddr      = ":8090"
	DefaultRefreshInterval = 60 * time.Second
	DefaultHTTPTimeout     = 10 * time.Second
	DefaultEventsStream    = "CAMPUSNOC_EVENTS"
	DefaultEventsSubject   = "campusnoc.dashboard.>"

	SourceHTTP = "http"
	SourceCNPG = "cnpg"
)

// Duration accepts a Go duration string or integer nanoseconds.
type Duration time.Duration

func (d *Duration) UnmarshalJSON(b []byte) error {
	var v interface{}
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}

	return d.set(v)
}

func (d *Duration) UnmarshalYAML(node *yaml.Node) error {
	var v interface{}
	if err := node.Decode(&v); err != nil {
		return err
	}

	return d.set(v)
}

func (d *Duration) set(v interface{}) error {
	switch value := v.(type) {
	case float64:
		*d = Duration(time.Duration(value))
	case int:
		*d = Duration(time.Duration(value))
	case string:
		dur, err := time.ParseDuration(value)
		if err != nil {
			return fmt.Errorf("%w: %w", ErrInvalidDuration, err)
		}

		*d = Duration(dur)
	default:
		return fmt.Errorf("%w: %v", ErrInvalidDuration, v)
	}

	return nil
}

func (d Duration) MarshalJSON() ([]byte, error) {
	return json.Marshal(time.Duration(d).String())
}

// TLSConfig points at PEM material on disk. Relative paths resolve against
// SecurityConfig.CertDir.
type TLSConfig struct {
	CertFile     string `json:"cert_file" yaml:"cert_file"`
	KeyFile      string `json:"key_file" yaml:"key_file"`
	CAFile       string `json:"ca_file" yaml:"ca_file"`
	ClientCAFile string `json:"client_ca_file,omitempty" yaml:"client_ca_file,omitempty"`
}

type SecurityConfig struct {
	Mode       string    `json:"mode" yaml:"mode"`
	CertDir    string    `json:"cert_dir" yaml:"cert_dir"`
	ServerName string    `json:"server_name,omitempty" yaml:"server_name,omitempty"`
	TLS        TLSConfig `json:"tls" yaml:"tls"`
}

// CNPGDatabase configures the Postgres (CloudNativePG) connection.
type CNPGDatabase struct {
	Host               string            `json:"host" yaml:"host"`
	Port               int               `json:"port" yaml:"port"`
	Database           string            `json:"database" yaml:"database"`
	Username           string            `json:"username" yaml:"username"`
	Password           string            `json:"password" yaml:"password"`
	SSLMode            string            `json:"ssl_mode" yaml:"ssl_mode"`
	ApplicationName    string            `json:"application_name" yaml:"application_name"`
	CertDir            string            `json:"cert_dir" yaml:"cert_dir"`
	TLS                *TLSConfig        `json:"tls,omitempty" yaml:"tls,omitempty"`
	MaxConnections     int32             `json:"max_connections" yaml:"max_connections"`
	MinConnections     int32             `json:"min_connections" yaml:"min_connections"`
	MaxConnLifetime    Duration          `json:"max_conn_lifetime" yaml:"max_conn_lifetime"`
	HealthCheckPeriod  Duration          `json:"health_check_period" yaml:"health_check_period"`
	StatementTimeout   Duration          `json:"statement_timeout" yaml:"statement_timeout"`
	ExtraRuntimeParams map[string]string `json:"extra_runtime_params,omitempty" yaml:"extra_runtime_params,omitempty"`
}

// HTTPSourceConfig configures the dashboard backend REST client. Timeout
// bounds each fetch.
type HTTPSourceConfig struct {
	BaseURL string   `json:"base_url" yaml:"base_url"`
	Timeout Duration `json:"timeout" yaml:"timeout"`
	APIKey  string   `json:"api_key,omitempty" yaml:"api_key,omitempty"`
}

type SourceConfig struct {
	Kind string            `json:"kind" yaml:"kind"`
	HTTP *HTTPSourceConfig `json:"http,omitempty" yaml:"http,omitempty"`
	CNPG *CNPGDatabase     `json:"cnpg,omitempty" yaml:"cnpg,omitempty"`
}

// Validate defaults Kind to http and checks the selected backend is usable.
func (c *SourceConfig) Validate() error {
	if c.Kind == "" {
		c.Kind = SourceHTTP
	}

	switch c.Kind {
	case SourceHTTP:
		if c.HTTP == nil || c.HTTP.BaseURL == "" {
			return ErrMissingBaseURL
		}

		if c.HTTP.Timeout <= 0 {
			c.HTTP.Timeout = Duration(DefaultHTTPTimeout)
		}
	case SourceCNPG:
		if c.CNPG == nil || c.CNPG.Host == "" || c.CNPG.Database == "" {
			return ErrMissingCNPG
		}
	default:
		return fmt.Errorf("%w: %q", ErrUnknownSourceKind, c.Kind)
	}

	return nil
}

// NATSConfig configures NATS connectivity
type NATSConfig struct {
	URL          string          `json:"url" yaml:"url"`
	Domain       string          `json:"domain,omitempty" yaml:"domain,omitempty"`
	Security     *SecurityConfig `json:"security,omitempty" yaml:"security,omitempty"`
	CredsFile    string          `json:"creds_file,omitempty" yaml:"creds_file,omitempty"`
	NKeySeedFile string          `json:"nkey_seed_file,omitempty" yaml:"nkey_seed_file,omitempty"`
}

// Validate ensures the NATS configuration is valid
func (c *NATSConfig) Validate() error {
	if c.URL == "" {
		return ErrNATSURLRequired
	}

	return nil
}

// EventsConfig configures refresh event publishing.
type EventsConfig struct {
	Enabled    bool     `json:"enabled" yaml:"enabled"`
	StreamName string   `json:"stream_name" yaml:"stream_name"`
	Subjects   []string `json:"subjects" yaml:"subjects"`
}

// Validate fills in stream defaults when publishing is enabled.
func (c *EventsConfig) Validate() error {
	if !c.Enabled {
		return nil
	}

	if c.StreamName == "" {
		c.StreamName = DefaultEventsStream
	}

	if len(c.Subjects) == 0 {
		c.Subjects = []string{DefaultEventsSubject}
	}

	return nil
}

type CORSConfig struct {
	AllowedOrigins   []string `json:"allowed_origins" yaml:"allowed_origins"`
	AllowCredentials bool     `json:"allow_credentials" yaml:"allow_credentials"`
}

// ServiceConfig is the campusnoc service configuration file.
type ServiceConfig struct {
	ListenAddr      string         `json:"listen_addr" yaml:"listen_addr"`
	DefaultRange    string         `json:"default_range" yaml:"default_range"`
	RefreshInterval *Duration      `json:"refresh_interval,omitempty" yaml:"refresh_interval,omitempty"`
	Source          SourceConfig   `json:"source" yaml:"source"`
	NATS            *NATSConfig    `json:"nats,omitempty" yaml:"nats,omitempty"`
	Events          *EventsConfig  `json:"events,omitempty" yaml:"events,omitempty"`
	CORS            CORSConfig     `json:"cors" yaml:"cors"`
	APIKey          string         `json:"api_key,omitempty" yaml:"api_key,omitempty"`
	Logging         *logger.Config `json:"logging,omitempty" yaml:"logging,omitempty"`
}

// Validate normalizes defaults and rejects unusable settings.
func (c *ServiceConfig) Validate() error {
	if c.ListenAddr == "" {
		c.ListenAddr = DefaultListenAddr
	}

	rng, err := ParseRange(c.DefaultRange)
	if err != nil {
		return fmt.Errorf("default_range: %w", err)
	}

	c.DefaultRange = rng.String()

	if c.RefreshInterval == nil {
		d := Duration(DefaultRefreshInterval)
		c.RefreshInterval = &d
	} else if *c.RefreshInterval < 0 {
		return ErrNegativeRefresh
	}

	if err := c.Source.Validate(); err != nil {
		return fmt.Errorf("source: %w", err)
	}

	if c.Events != nil && c.Events.Enabled {
		if c.NATS == nil {
			return fmt.Errorf("events: %w", ErrNATSURLRequired)
		}

		if err := c.NATS.Validate(); err != nil {
			return fmt.Errorf("nats: %w", err)
		}

		if err := c.Events.Validate(); err != nil {
			return fmt.Errorf("events: %w", err)
		}
	}

	return nil
}

// Interval returns the background refresh period; zero disables it.
func (c *ServiceConfig) Interval() time.Duration {
	if c.RefreshInterval == nil {
		return DefaultRefreshInterval
	}

	return time.Duration(*c.RefreshInterval)
}
