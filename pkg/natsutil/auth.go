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
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/nats-io/nats.go"
	"github.com/nats-io/nkeys"

	"github.com/carverauto/campusnoc/pkg/models"
)

var (
	// ErrConflictingCredentials is returned when both a creds file and an nkey
	// seed file are configured.
	ErrConflictingCredentials = errors.New("nats creds_file and nkey_seed_file are mutually exclusive")
	// ErrNotUserSeed is returned when the seed file holds a non-user key.
	ErrNotUserSeed = errors.New("nkey seed is not a user seed")
)

// authOptions returns the credential options for cfg. A creds file carries
// the user JWT and seed; a seed file alone authenticates with a bare nkey.
func authOptions(cfg *models.NATSConfig) ([]nats.Option, error) {
	switch {
	case cfg.CredsFile != "" && cfg.NKeySeedFile != "":
		return nil, ErrConflictingCredentials
	case cfg.CredsFile != "":
		return []nats.Option{nats.UserCredentials(resolvePath(cfg.CredsFile, cfg.Security))}, nil
	case cfg.NKeySeedFile != "":
		opt, err := nkeyOptionFromFile(resolvePath(cfg.NKeySeedFile, cfg.Security))
		if err != nil {
			return nil, err
		}

		return []nats.Option{opt}, nil
	default:
		return nil, nil
	}
}

func nkeyOptionFromFile(path string) (nats.Option, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read nkey seed: %w", err)
	}

	kp, err := nkeys.FromSeed(bytes.TrimSpace(raw))
	if err != nil {
		return nil, fmt.Errorf("parse nkey seed: %w", err)
	}

	pub, err := kp.PublicKey()
	if err != nil {
		return nil, fmt.Errorf("derive nkey public key: %w", err)
	}

	if !nkeys.IsValidPublicUserKey(pub) {
		return nil, ErrNotUserSeed
	}

	return nats.Nkey(pub, kp.Sign), nil
}

// resolvePath anchors relative credential paths at the security cert dir.
func resolvePath(path string, sec *models.SecurityConfig) string {
	if filepath.IsAbs(path) || sec == nil || sec.CertDir == "" {
		return path
	}

	return filepath.Join(sec.CertDir, path)
}
