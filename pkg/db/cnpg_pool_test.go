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
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/carverauto/campusnoc/pkg/models"
)

func tlsCNPG() *models.CNPGDatabase {
	return &models.CNPGDatabase{
		Host:     "cnpg-rw",
		Port:     5432,
		Database: "campusnoc",
		TLS: &models.TLSConfig{
			CertFile: "client.crt",
			KeyFile:  "client.key",
			CAFile:   "ca.crt",
		},
	}
}

func TestBuildCNPGConnURL_DefaultsSSLModeDisableWithoutTLS(t *testing.T) {
	t.Parallel()

	u, err := buildCNPGConnURL(&models.CNPGDatabase{
		Host:            "cnpg-rw",
		Database:        "campusnoc",
		Username:        "noc",
		Password:        "s3cret",
		ApplicationName: "campusnoc",
	})
	require.NoError(t, err)

	assert.Equal(t, "cnpg-rw:5432", u.Host)
	assert.Equal(t, "/campusnoc", u.Path)
	assert.Equal(t, "disable", u.Query().Get("sslmode"))
	assert.Equal(t, "campusnoc", u.Query().Get("application_name"))

	pass, ok := u.User.Password()
	assert.True(t, ok)
	assert.Equal(t, "s3cret", pass)
}

func TestBuildCNPGConnURL_DefaultsSSLModeVerifyFullWithTLS(t *testing.T) {
	t.Parallel()

	u, err := buildCNPGConnURL(tlsCNPG())
	require.NoError(t, err)
	assert.Equal(t, "verify-full", u.Query().Get("sslmode"))
}

func TestBuildCNPGConnURL_RejectsTLSWithSSLModeDisable(t *testing.T) {
	t.Parallel()

	cfg := tlsCNPG()
	cfg.SSLMode = "disable"

	_, err := buildCNPGConnURL(cfg)
	require.ErrorIs(t, err, ErrCNPGTLSDisabled)
}

func TestBuildCNPGConnURL_TLSPathsResolveViaCertDir(t *testing.T) {
	t.Parallel()

	cfg := tlsCNPG()
	cfg.CertDir = "/etc/campusnoc/cnpg"

	u, err := buildCNPGConnURL(cfg)
	require.NoError(t, err)

	q := u.Query()
	assert.Equal(t, "/etc/campusnoc/cnpg/client.crt", q.Get("sslcert"))
	assert.Equal(t, "/etc/campusnoc/cnpg/client.key", q.Get("sslkey"))
	assert.Equal(t, "/etc/campusnoc/cnpg/ca.crt", q.Get("sslrootcert"))
}

func TestResolveCNPGSSLMode_UsesRuntimeParamsFallback(t *testing.T) {
	t.Parallel()

	got, err := resolveCNPGSSLMode(&models.CNPGDatabase{
		ExtraRuntimeParams: map[string]string{"sslmode": "Verify-CA"},
	})
	require.NoError(t, err)
	assert.Equal(t, "verify-ca", got)
}

func TestApplyCNPGPoolLimits(t *testing.T) {
	t.Parallel()

	u, err := buildCNPGConnURL(&models.CNPGDatabase{Host: "cnpg-rw", Database: "campusnoc"})
	require.NoError(t, err)

	poolConfig, err := pgxpool.ParseConfig(u.String())
	require.NoError(t, err)

	applyCNPGPoolLimits(poolConfig, &models.CNPGDatabase{
		MaxConnections:     8,
		MinConnections:     2,
		MaxConnLifetime:    models.Duration(30 * time.Minute),
		StatementTimeout:   models.Duration(5 * time.Second),
		ExtraRuntimeParams: map[string]string{"search_path": "noc", "sslmode": "require"},
	})

	assert.EqualValues(t, 8, poolConfig.MaxConns)
	assert.EqualValues(t, 2, poolConfig.MinConns)
	assert.Equal(t, 30*time.Minute, poolConfig.MaxConnLifetime)
	assert.Equal(t, "5000", poolConfig.ConnConfig.RuntimeParams["statement_timeout"])
	assert.Equal(t, "noc", poolConfig.ConnConfig.RuntimeParams["search_path"])
	assert.NotContains(t, poolConfig.ConnConfig.RuntimeParams, "sslmode")
}

func TestBuildCNPGTLSConfigRequiresMaterial(t *testing.T) {
	t.Parallel()

	tlsCfg, err := buildCNPGTLSConfig(&models.CNPGDatabase{Host: "cnpg-rw"})
	require.NoError(t, err)
	assert.Nil(t, tlsCfg)

	_, err = buildCNPGTLSConfig(&models.CNPGDatabase{Host: "cnpg-rw", TLS: &models.TLSConfig{CertFile: "c"}})
	require.ErrorIs(t, err, models.ErrTLSMaterialRequired)
}
