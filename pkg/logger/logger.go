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

// Package logger provides JSON structured logging using zerolog
package logger

import (
	"context"
	"io"
	"os"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

type Config struct {
	Level      string     `json:"level" yaml:"level"`
	Debug      bool       `json:"debug" yaml:"debug"`
	Output     string     `json:"output" yaml:"output"`
	TimeFormat string     `json:"time_format" yaml:"time_format"`
	OTel       OTelConfig `json:"otel" yaml:"otel"`
}

//nolint:gochecknoglobals // process-wide logger mirrors zerolog/log
var (
	globalMu     sync.RWMutex
	globalLogger = zerolog.New(os.Stdout).With().Timestamp().Logger()
)

// Init replaces the process-wide logger. When OTel export is enabled the
// output is teed into the OTLP log pipeline.
func Init(ctx context.Context, config *Config) error {
	if config == nil {
		config = DefaultConfig()
	}

	level, err := ParseLevel(config)
	if err != nil {
		return err
	}

	output, err := buildOutput(ctx, config)
	if err != nil {
		return err
	}

	if config.TimeFormat != "" {
		zerolog.TimeFieldFormat = config.TimeFormat
	} else {
		zerolog.TimeFieldFormat = time.RFC3339
	}

	l := zerolog.New(output).Level(level).With().Timestamp().Logger()

	globalMu.Lock()
	globalLogger = l
	log.Logger = l
	globalMu.Unlock()

	return nil
}

// ParseLevel resolves the effective level, letting Debug override Level.
func ParseLevel(config *Config) (zerolog.Level, error) {
	if config.Debug {
		return zerolog.DebugLevel, nil
	}

	if config.Level == "" {
		return zerolog.InfoLevel, nil
	}

	return zerolog.ParseLevel(config.Level)
}

func buildOutput(ctx context.Context, config *Config) (io.Writer, error) {
	var output io.Writer = os.Stdout
	if config.Output == "stderr" {
		output = os.Stderr
	}

	if !config.OTel.Enabled || config.OTel.Endpoint == "" {
		return output, nil
	}

	otelWriter, err := NewOTELWriter(ctx, config.OTel)
	if err != nil {
		return nil, err
	}

	return io.MultiWriter(output, otelWriter), nil
}

// BuildOutput exposes the writer selection used by Init so injected loggers
// share the same destinations.
func BuildOutput(ctx context.Context, config *Config) (io.Writer, error) {
	if config == nil {
		config = DefaultConfig()
	}

	return buildOutput(ctx, config)
}

func GetLogger() zerolog.Logger {
	globalMu.RLock()
	defer globalMu.RUnlock()

	return globalLogger
}

func SetLevel(level zerolog.Level) {
	globalMu.Lock()
	globalLogger = globalLogger.Level(level)
	log.Logger = globalLogger
	globalMu.Unlock()
}

func SetDebug(debug bool) {
	if debug {
		SetLevel(zerolog.DebugLevel)
	} else {
		SetLevel(zerolog.InfoLevel)
	}
}

func WithComponent(component string) zerolog.Logger {
	l := GetLogger()

	return l.With().Str("component", component).Logger()
}

// Shutdown flushes the OTLP log and metric pipelines, if any were started.
func Shutdown() error {
	return ShutdownOTEL()
}
