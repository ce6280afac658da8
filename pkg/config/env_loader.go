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


package config

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"reflect"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/carverauto/campusnoc/pkg/logger"
)

var (
	// ErrDstMustBeNonNilPointer indicates that the destination must be a non-nil pointer.
	ErrDstMustBeNonNilPointer = errors.New("dst must be a non-nil pointer")
	// ErrDstMustBePointerToStruct indicates that the destination must be a pointer to a struct.
	ErrDstMustBePointerToStruct = errors.New("dst must be a pointer to a struct")
)

var (
	jsonUnmarshalerType = reflect.TypeOf((*json.Unmarshaler)(nil)).Elem()
	durationType        = reflect.TypeOf(time.Duration(0))
)

// EnvConfigLoader loads configuration from environment variables. Nested
// fields join their json names with underscores, so SOURCE_HTTP_BASE_URL
// maps to Source.HTTP.BaseURL. Nil pointer sections are only allocated when
// at least one variable under their prefix is set.
type EnvConfigLoader struct {
	logger logger.Logger
	prefix string
}

// NewEnvConfigLoader creates a new environment variable config loader.
func NewEnvConfigLoader(log logger.Logger, prefix string) *EnvConfigLoader {
	return &EnvConfigLoader{
		logger: log,
		prefix: prefix,
	}
}

// Load implements ConfigLoader. A complete document in <prefix>CONFIG_JSON
// wins over individual variables.
func (e *EnvConfigLoader) Load(_ context.Context, _ string, dst interface{}) error {
	if doc := os.Getenv(e.prefix + "CONFIG_JSON"); doc != "" {
		if err := json.Unmarshal([]byte(doc), dst); err != nil {
			return fmt.Errorf("failed to unmarshal %sCONFIG_JSON: %w", e.prefix, err)
		}

		e.debug().Msg("Loaded configuration from CONFIG_JSON environment variable")

		return nil
	}

	v := reflect.ValueOf(dst)
	if v.Kind() != reflect.Ptr || v.IsNil() {
		return ErrDstMustBeNonNilPointer
	}

	v = v.Elem()
	if v.Kind() != reflect.Struct {
		return ErrDstMustBePointerToStruct
	}

	e.loadStruct(v, e.prefix)

	return nil
}

func (e *EnvConfigLoader) loadStruct(v reflect.Value, prefix string) {
	t := v.Type()

	for i := 0; i < t.NumField(); i++ {
		field := v.Field(i)
		if !field.CanSet() {
			continue
		}

		name, _, _ := strings.Cut(t.Field(i).Tag.Get("json"), ",")
		if name == "" || name == "-" {
			continue
		}

		envName := prefix + strings.ToUpper(strings.ReplaceAll(name, ".", "_"))

		if err := e.loadField(field, envName); err != nil {
			e.debug().Err(err).Str("env", envName).Msg("Ignoring invalid environment value")
		}
	}
}

func (e *EnvConfigLoader) loadField(field reflect.Value, envName string) error {
	if handled, err := e.loadUnmarshaler(field, envName); handled {
		return err
	}

	switch {
	case field.Kind() == reflect.Struct:
		e.loadStruct(field, envName+"_")

		return nil
	case field.Kind() == reflect.Ptr && field.Type().Elem().Kind() == reflect.Struct:
		if field.IsNil() {
			if !envPrefixPresent(envName + "_") {
				return nil
			}

			field.Set(reflect.New(field.Type().Elem()))
		}

		e.loadStruct(field.Elem(), envName+"_")

		return nil
	}

	value, ok := os.LookupEnv(envName)
	if !ok || value == "" {
		return nil
	}

	if field.Kind() == reflect.Ptr {
		if field.IsNil() {
			field.Set(reflect.New(field.Type().Elem()))
		}

		field = field.Elem()
	}

	if err := setScalar(field, value); err != nil {
		return fmt.Errorf("%s: %w", envName, err)
	}

	e.debug().Str("env", envName).Msg("Loaded value from environment variable")

	return nil
}

// loadUnmarshaler handles types with their own JSON decoding, such as
// duration wrappers. Bare strings are retried as JSON strings.
func (e *EnvConfigLoader) loadUnmarshaler(field reflect.Value, envName string) (bool, error) {
	target := field
	isPtr := field.Kind() == reflect.Ptr

	switch {
	case isPtr && field.Type().Implements(jsonUnmarshalerType):
	case !isPtr && field.CanAddr() && field.Addr().Type().Implements(jsonUnmarshalerType):
		target = field.Addr()
	default:
		return false, nil
	}

	value, ok := os.LookupEnv(envName)
	if !ok || value == "" {
		return true, nil
	}

	holder := reflect.New(target.Type().Elem())
	decoder := holder.Interface().(json.Unmarshaler)

	if err := decoder.UnmarshalJSON([]byte(value)); err != nil {
		if err := decoder.UnmarshalJSON([]byte(strconv.Quote(value))); err != nil {
			return true, fmt.Errorf("%s: %w", envName, err)
		}
	}

	if isPtr {
		field.Set(holder)
	} else {
		field.Set(holder.Elem())
	}

	e.debug().Str("env", envName).Msg("Loaded value from environment variable")

	return true, nil
}

func setScalar(field reflect.Value, value string) error {
	switch field.Kind() {
	case reflect.String:
		field.SetString(value)
	case reflect.Bool:
		b, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("invalid boolean: %w", err)
		}

		field.SetBool(b)
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		if field.Type() == durationType {
			d, err := time.ParseDuration(value)
			if err != nil {
				return fmt.Errorf("invalid duration: %w", err)
			}

			field.SetInt(int64(d))

			return nil
		}

		i, err := strconv.ParseInt(value, 10, field.Type().Bits())
		if err != nil {
			return fmt.Errorf("invalid integer: %w", err)
		}

		field.SetInt(i)
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		u, err := strconv.ParseUint(value, 10, field.Type().Bits())
		if err != nil {
			return fmt.Errorf("invalid unsigned integer: %w", err)
		}

		field.SetUint(u)
	case reflect.Float32, reflect.Float64:
		f, err := strconv.ParseFloat(value, field.Type().Bits())
		if err != nil {
			return fmt.Errorf("invalid float: %w", err)
		}

		field.SetFloat(f)
	case reflect.Slice:
		if field.Type().Elem().Kind() == reflect.String {
			parts := strings.Split(value, ",")
			slice := reflect.MakeSlice(field.Type(), len(parts), len(parts))

			for i, p := range parts {
				slice.Index(i).SetString(strings.TrimSpace(p))
			}

			field.Set(slice)

			return nil
		}

		return json.Unmarshal([]byte(value), field.Addr().Interface())
	default:
		return json.Unmarshal([]byte(value), field.Addr().Interface())
	}

	return nil
}

func envPrefixPresent(prefix string) bool {
	for _, kv := range os.Environ() {
		if strings.HasPrefix(kv, prefix) {
			return true
		}
	}

	return false
}

// debug returns nil without a logger; zerolog events are nil-safe.
func (e *EnvConfigLoader) debug() *zerolog.Event {
	if e.logger == nil {
		return nil
	}

	return e.logger.Debug()
}
