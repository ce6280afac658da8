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


package db

import (
	"context"
	"crypto/tls"
	"crypto/x509"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/carverauto/campusnoc/pkg/logger"
	"github.com/carverauto/campusnoc/pkg/models"
)

const defaultCNPGPort = 5432

// NewCNPGPool dials the configured CNPG cluster and returns a pgx pool for
// the dashboard reads.
func NewCNPGPool(ctx context.Context, cfg *models.CNPGDatabase, log logger.Logger) (*pgxpool.Pool, error) {
	if cfg == nil {
		return nil, ErrCNPGConfigRequired
	}

	connURL, err := buildCNPGConnURL(cfg)
	if err != nil {
		return nil, err
	}

	poolConfig, err := pgxpool.ParseConfig(connURL.String())
	if err != nil {
		return nil, fmt.Errorf("cnpg: failed to parse connection string: %w", err)
	}

	applyCNPGPoolLimits(poolConfig, cfg)

	tlsConfig, err := buildCNPGTLSConfig(cfg)
	if err != nil {
		return nil, err
	}

	if tlsConfig != nil {
		poolConfig.ConnConfig.TLSConfig = tlsConfig
	}

	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		return nil, fmt.Errorf("cnpg: failed to initialize pool: %w", err)
	}

	if log != nil {
		log.Info().
			Str("host", cfg.Host).
			Int("port", int(poolConfig.ConnConfig.Port)).
			Str("database", cfg.Database).
			Int32("max_conns", poolConfig.MaxConns).
			Msg("connected to CNPG cluster")
	}

	return pool, nil
}

func applyCNPGPoolLimits(poolConfig *pgxpool.Config, cfg *models.CNPGDatabase) {
	if cfg.MaxConnections > 0 {
		poolConfig.MaxConns = cfg.MaxConnections
	}

	if cfg.MinConnections > 0 {
		poolConfig.MinConns = cfg.MinConnections
	}

	if cfg.MaxConnLifetime > 0 {
		poolConfig.MaxConnLifetime = time.Duration(cfg.MaxConnLifetime)
	}

	if cfg.HealthCheckPeriod > 0 {
		poolConfig.HealthCheckPeriod = time.Duration(cfg.HealthCheckPeriod)
	}

	if poolConfig.ConnConfig.RuntimeParams == nil {
		poolConfig.ConnConfig.RuntimeParams = make(map[string]string)
	}

	for k, v := range cfg.ExtraRuntimeParams {
		if k == "" || strings.HasPrefix(strings.ToLower(k), "ssl") {
			continue
		}

		poolConfig.ConnConfig.RuntimeParams[k] = v
	}

	if cfg.StatementTimeout > 0 {
		ms := time.Duration(cfg.StatementTimeout) / time.Millisecond
		poolConfig.ConnConfig.RuntimeParams["statement_timeout"] = strconv.FormatInt(int64(ms), 10)
	}
}

// buildCNPGConnURL renders the postgres:// URL. TLS material paths are
// resolved against CertDir and passed as libpq ssl* parameters.
func buildCNPGConnURL(cfg *models.CNPGDatabase) (*url.URL, error) {
	port := cfg.Port
	if port == 0 {
		port = defaultCNPGPort
	}

	connURL := &url.URL{
		Scheme: "postgres",
		Host:   fmt.Sprintf("%s:%d", cfg.Host, port),
		Path:   "/" + cfg.Database,
	}

	if cfg.Username != "" {
		if cfg.Password != "" {
			connURL.User = url.UserPassword(cfg.Username, cfg.Password)
		} else {
			connURL.User = url.User(cfg.Username)
		}
	}

	sslMode, err := resolveCNPGSSLMode(cfg)
	if err != nil {
		return nil, err
	}

	query := connURL.Query()
	query.Set("sslmode", sslMode)

	if cfg.ApplicationName != "" {
		query.Set("application_name", cfg.ApplicationName)
	}

	if cfg.TLS != nil {
		setIfPresent(query, "sslcert", resolveCNPGPath(cfg, cfg.TLS.CertFile))
		setIfPresent(query, "sslkey", resolveCNPGPath(cfg, cfg.TLS.KeyFile))
		setIfPresent(query, "sslrootcert", resolveCNPGPath(cfg, cfg.TLS.CAFile))
	}

	connURL.RawQuery = query.Encode()

	return connURL, nil
}

func setIfPresent(q url.Values, key, value string) {
	if value != "" {
		q.Set(key, value)
	}
}

// resolveCNPGSSLMode picks SSLMode, then an sslmode runtime param, then a
// default that depends on whether TLS material is configured.
func resolveCNPGSSLMode(cfg *models.CNPGDatabase) (string, error) {
	mode := strings.ToLower(strings.TrimSpace(cfg.SSLMode))

	if mode == "" {
		for k, v := range cfg.ExtraRuntimeParams {
			if strings.EqualFold(k, "sslmode") {
				mode = strings.ToLower(strings.TrimSpace(v))
				break
			}
		}
	}

	if mode == "" {
		if cfg.TLS != nil {
			return "verify-full", nil
		}

		return "disable", nil
	}

	if mode == "disable" && cfg.TLS != nil {
		return "", ErrCNPGTLSDisabled
	}

	return mode, nil
}

func resolveCNPGPath(cfg *models.CNPGDatabase, path string) string {
	if path == "" || filepath.IsAbs(path) || cfg.CertDir == "" {
		return path
	}

	return filepath.Join(cfg.CertDir, path)
}

func buildCNPGTLSConfig(cfg *models.CNPGDatabase) (*tls.Config, error) {
	if cfg == nil || cfg.TLS == nil {
		return nil, nil
	}

	certFile := resolveCNPGPath(cfg, cfg.TLS.CertFile)
	keyFile := resolveCNPGPath(cfg, cfg.TLS.KeyFile)
	caFile := resolveCNPGPath(cfg, cfg.TLS.CAFile)

	if certFile == "" || keyFile == "" || caFile == "" {
		return nil, fmt.Errorf("cnpg tls: %w", models.ErrTLSMaterialRequired)
	}

	clientCert, err := tls.LoadX509KeyPair(certFile, keyFile)
	if err != nil {
		return nil, fmt.Errorf("cnpg tls: failed to load client keypair: %w", err)
	}

	caBytes, err := os.ReadFile(caFile)
	if err != nil {
		return nil, fmt.Errorf("cnpg tls: failed to read CA file: %w", err)
	}

	caPool := x509.NewCertPool()
	if !caPool.AppendCertsFromPEM(caBytes) {
		return nil, ErrCNPGInvalidCA
	}

	return &tls.Config{
		Certificates: []tls.Certificate{clientCert},
		RootCAs:      caPool,
		MinVersion:   tls.VersionTLS12,
		ServerName:   cfg.Host,
	}, nil
}
