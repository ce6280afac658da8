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


// Package config loads service configuration from a file or the environment
// and normalizes TLS material paths before validation.
package config

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"reflect"
	"strings"

	"github.com/rs/zerolog"

	"github.com/carverauto/campusnoc/pkg/logger"
	"github.com/carverauto/campusnoc/pkg/models"
)

var (
	errInvalidConfigSource = errors.New("invalid CONFIG_SOURCE value")
	errInvalidConfigPtr    = errors.New("config must be a non-nil pointer")
)

const (
	configSourceFile = "file"
	configSourceEnv  = "env"

	// DefaultEnvPrefix is used by CONFIG_SOURCE=env when CONFIG_ENV_PREFIX
	// is unset.
	DefaultEnvPrefix = "CAMPUSNOC_"
)

// ConfigLoader fills dst from path or another source.
type ConfigLoader interface {
	Load(ctx context.Context, path string, dst interface{}) error
}

// Validator is implemented by configs that can check themselves.
type Validator interface {
	Validate() error
}

// Config holds the configuration loading dependencies.
type Config struct {
	defaultLoader ConfigLoader
	logger        logger.Logger
}

// NewConfig initializes a Config with the file loader. A nil logger gets a
// stderr logger at warn level.
func NewConfig(log logger.Logger) *Config {
	if log == nil {
		log = logger.NewWriterLogger(os.Stderr, zerolog.WarnLevel)
	}

	return &Config{
		defaultLoader: &FileConfigLoader{logger: log},
		logger:        log,
	}
}

// ValidateConfig validates a configuration if it implements Validator.
func ValidateConfig(cfg interface{}) error {
	v, ok := cfg.(Validator)
	if !ok {
		return nil
	}

	return v.Validate()
}

// LoadAndValidate loads cfg from the source named by CONFIG_SOURCE,
// normalizes every nested SecurityConfig and validates the result.
func (c *Config) LoadAndValidate(ctx context.Context, path string, cfg interface{}) error {
	loader, err := c.loaderFor(os.Getenv("CONFIG_SOURCE"))
	if err != nil {
		return err
	}

	if err := loader.Load(ctx, path, cfg); err != nil {
		return err
	}

	if err := c.normalizeSecurityConfig(cfg); err != nil {
		return fmt.Errorf("failed to normalize SecurityConfig: %w", err)
	}

	return ValidateConfig(cfg)
}

func (c *Config) loaderFor(source string) (ConfigLoader, error) {
	switch strings.ToLower(strings.TrimSpace(source)) {
	case configSourceFile, "":
		return c.defaultLoader, nil
	case configSourceEnv:
		prefix := os.Getenv("CONFIG_ENV_PREFIX")
		if prefix == "" {
			prefix = DefaultEnvPrefix
		}

		return NewEnvConfigLoader(c.logger, prefix), nil
	default:
		return nil, fmt.Errorf("%w: %s (expected '%s' or '%s')",
			errInvalidConfigSource, source, configSourceFile, configSourceEnv)
	}
}

var securityConfigType = reflect.TypeOf((*models.SecurityConfig)(nil))

// normalizeSecurityConfig walks cfg and resolves the TLS paths of every
// *SecurityConfig it finds, at any depth.
func (c *Config) normalizeSecurityConfig(cfg interface{}) error {
	v := reflect.ValueOf(cfg)
	if v.Kind() != reflect.Ptr || v.IsNil() {
		return errInvalidConfigPtr
	}

	c.normalizeValue(v.Elem())

	return nil
}

func (c *Config) normalizeValue(v reflect.Value) {
	switch v.Kind() {
	case reflect.Ptr:
		if v.IsNil() {
			return
		}

		if v.Type() == securityConfigType {
			sec := v.Interface().(*models.SecurityConfig)
			NormalizeTLSPaths(&sec.TLS, sec.CertDir)

			c.logger.Debug().
				Str("cert_file", sec.TLS.CertFile).
				Str("ca_file", sec.TLS.CAFile).
				Msg("Normalized TLS paths")

			return
		}

		c.normalizeValue(v.Elem())
	case reflect.Struct:
		for i := 0; i < v.NumField(); i++ {
			if v.Type().Field(i).IsExported() {
				c.normalizeValue(v.Field(i))
			}
		}
	default:
	}
}

// NormalizeTLSPaths resolves relative TLS paths against certDir. An unset
// client CA falls back to the CA file.
func NormalizeTLSPaths(tls *models.TLSConfig, certDir string) {
	resolve := func(p string) string {
		if p == "" || filepath.IsAbs(p) {
			return p
		}

		return filepath.Join(certDir, p)
	}

	tls.CertFile = resolve(tls.CertFile)
	tls.KeyFile = resolve(tls.KeyFile)
	tls.CAFile = resolve(tls.CAFile)

	if tls.ClientCAFile == "" {
		tls.ClientCAFile = tls.CAFile
	} else {
		tls.ClientCAFile = resolve(tls.ClientCAFile)
	}
}
