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

// Package lifecycle sets up loggers and telemetry providers for campusnoc binaries.
package lifecycle

import (
	"context"
	"errors"
	"fmt"

	"github.com/carverauto/campusnoc/pkg/logger"
	"github.com/rs/zerolog"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
)

// InitializeLogger initializes the global logger. A nil config falls back to
// logger.DefaultConfig.
func InitializeLogger(ctx context.Context, config *logger.Config) error {
	if err := logger.Init(ctx, config); err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}

	return nil
}

// LoggerImpl implements the logger.Logger interface without using global state
type LoggerImpl struct {
	logger zerolog.Logger
}

// NewLoggerImpl creates a new logger implementation
func NewLoggerImpl(ctx context.Context, config *logger.Config) (*LoggerImpl, error) {
	if config == nil {
		config = logger.DefaultConfig()
	}

	level, err := logger.ParseLevel(config)
	if err != nil {
		return nil, err
	}

	output, err := logger.BuildOutput(ctx, config)
	if err != nil && !errors.Is(err, logger.ErrOTelLoggingDisabled) {
		return nil, err
	}

	zlog := zerolog.New(output).
		Level(level).
		With().
		Timestamp().
		Logger()

	return &LoggerImpl{logger: zlog}, nil
}

func (l *LoggerImpl) Trace() *zerolog.Event { return l.logger.Trace() }
func (l *LoggerImpl) Debug() *zerolog.Event { return l.logger.Debug() }
func (l *LoggerImpl) Info() *zerolog.Event  { return l.logger.Info() }
func (l *LoggerImpl) Warn() *zerolog.Event  { return l.logger.Warn() }
func (l *LoggerImpl) Error() *zerolog.Event { return l.logger.Error() }
func (l *LoggerImpl) Fatal() *zerolog.Event { return l.logger.Fatal() }
func (l *LoggerImpl) Panic() *zerolog.Event { return l.logger.Panic() }
func (l *LoggerImpl) With() zerolog.Context { return l.logger.With() }

func (l *LoggerImpl) WithComponent(component string) zerolog.Logger {
	return l.logger.With().Str("component", component).Logger()
}

func (l *LoggerImpl) WithFields(fields map[string]interface{}) zerolog.Logger {
	return l.logger.With().Fields(fields).Logger()
}

func (l *LoggerImpl) SetLevel(level zerolog.Level) {
	l.logger = l.logger.Level(level)
}

func (l *LoggerImpl) SetDebug(debug bool) {
	if debug {
		l.SetLevel(zerolog.DebugLevel)
	} else {
		l.SetLevel(zerolog.InfoLevel)
	}
}

// CreateComponentLogger creates a logger whose every event carries the
// component field.
func CreateComponentLogger(ctx context.Context, component string, config *logger.Config) (logger.Logger, error) {
	impl, err := NewLoggerImpl(ctx, config)
	if err != nil {
		return nil, err
	}

	return &LoggerImpl{
		logger: impl.logger.With().Str("component", component).Logger(),
	}, nil
}

// Telemetry bundles the OTel providers started for a process.
type Telemetry struct {
	tracer *sdktrace.TracerProvider
}

// StartTelemetry brings up tracing and, when an OTLP endpoint is configured,
// metric export. A disabled metrics exporter is not an error.
func StartTelemetry(ctx context.Context, service, version string, config *logger.Config, log logger.Logger) (*Telemetry, error) {
	if config == nil {
		config = logger.DefaultConfig()
	}

	tp, err := logger.InitializeTracing(ctx, logger.TracingConfig{
		ServiceName:    service,
		ServiceVersion: version,
		Logger:         log,
		OTel:           &config.OTel,
	})
	if err != nil {
		return nil, err
	}

	_, err = logger.InitializeMetrics(ctx, logger.MetricsConfig{
		ServiceName:    service,
		ServiceVersion: version,
		OTel:           &config.OTel,
	})
	if err != nil && !errors.Is(err, logger.ErrOTelMetricsDisabled) {
		_ = tp.Shutdown(ctx)

		return nil, err
	}

	return &Telemetry{tracer: tp}, nil
}

// Shutdown flushes spans, metrics and OTLP logs.
func (t *Telemetry) Shutdown(ctx context.Context) error {
	var errs []error

	if t != nil && t.tracer != nil {
		if err := t.tracer.Shutdown(ctx); err != nil {
			errs = append(errs, err)
		}
	}

	if err := logger.Shutdown(); err != nil {
		errs = append(errs, err)
	}

	return errors.Join(errs...)
}
