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

package natsutil

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/nats-io/nats-server/v2/server"
	"github.com/nats-io/nkeys"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/carverauto/campusnoc/pkg/logger"
	"github.com/carverauto/campusnoc/pkg/models"
)

func writeUserSeed(t *testing.T, dir string) string {
	t.Helper()

	kp, err := nkeys.CreateUser()
	require.NoError(t, err)

	seed, err := kp.Seed()
	require.NoError(t, err)

	require.NoError(t, os.WriteFile(filepath.Join(dir, "user.nk"), append(seed, '\n'), 0o600))

	pub, err := kp.PublicKey()
	require.NoError(t, err)

	return pub
}

func runNKeyServer(t *testing.T, pub string) *server.Server {
	t.Helper()

	srv, err := server.NewServer(&server.Options{
		Host:  "127.0.0.1",
		Port:  -1,
		Nkeys: []*server.NkeyUser{{Nkey: pub}},
	})
	require.NoError(t, err)

	go srv.Start()

	if !srv.ReadyForConnections(10 * time.Second) {
		srv.Shutdown()
		t.Fatalf("embedded NATS server not ready for connections")
	}

	t.Cleanup(srv.Shutdown)

	return srv
}

func TestConnectWithNKeySeed(t *testing.T) {
	dir := t.TempDir()
	pub := writeUserSeed(t, dir)
	srv := runNKeyServer(t, pub)

	_, err := ConnectWithSecurity(context.Background(), &models.NATSConfig{URL: srv.ClientURL()}, logger.NewTestLogger())
	require.Error(t, err, "server requires nkey auth")

	cfg := &models.NATSConfig{
		URL:          srv.ClientURL(),
		NKeySeedFile: filepath.Join(dir, "user.nk"),
	}

	nc, err := ConnectWithSecurity(context.Background(), cfg, logger.NewTestLogger())
	require.NoError(t, err)

	defer nc.Close()

	assert.True(t, nc.IsConnected())
}

func TestNKeyOptionRejectsNonUserSeed(t *testing.T) {
	dir := t.TempDir()

	kp, err := nkeys.CreateAccount()
	require.NoError(t, err)

	seed, err := kp.Seed()
	require.NoError(t, err)

	path := filepath.Join(dir, "account.nk")
	require.NoError(t, os.WriteFile(path, seed, 0o600))

	_, err = nkeyOptionFromFile(path)
	require.ErrorIs(t, err, ErrNotUserSeed)

	_, err = nkeyOptionFromFile(filepath.Join(dir, "missing.nk"))
	require.Error(t, err)
}

func TestAuthOptions(t *testing.T) {
	opts, err := authOptions(&models.NATSConfig{})
	require.NoError(t, err)
	assert.Empty(t, opts)

	opts, err = authOptions(&models.NATSConfig{CredsFile: "user.creds"})
	require.NoError(t, err)
	assert.Len(t, opts, 1)

	_, err = authOptions(&models.NATSConfig{CredsFile: "user.creds", NKeySeedFile: "user.nk"})
	require.ErrorIs(t, err, ErrConflictingCredentials)
}

func TestResolvePath(t *testing.T) {
	sec := &models.SecurityConfig{CertDir: "/etc/campusnoc/certs"}

	assert.Equal(t, "/etc/campusnoc/certs/user.nk", resolvePath("user.nk", sec))
	assert.Equal(t, "/run/secrets/user.nk", resolvePath("/run/secrets/user.nk", sec))
	assert.Equal(t, "user.nk", resolvePath("user.nk", nil))
}
