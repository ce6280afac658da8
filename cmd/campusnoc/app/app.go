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


// Package app wires the campusnoc service together.
package app

import (
	"context"
	"errors"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/carverauto/campusnoc/pkg/api"
	"github.com/carverauto/campusnoc/pkg/backend"
	"github.com/carverauto/campusnoc/pkg/config"
	"github.com/carverauto/campusnoc/pkg/dashboard"
	"github.com/carverauto/campusnoc/pkg/db"
	"github.com/carverauto/campusnoc/pkg/lifecycle"
	"github.com/carverauto/campusnoc/pkg/logger"
	"github.com/carverauto/campusnoc/pkg/models"
	"github.com/carverauto/campusnoc/pkg/natsutil"
	"github.com/carverauto/campusnoc/pkg/version"
)

const (
	serviceName     = "campusnoc"
	shutdownTimeout = 5 * time.Second
)

var errUnsupportedSource = errors.New("unsupported source kind")

// Options contains runtime configuration derived from CLI flags.
type Options struct {
	ConfigPath string
}

// Run boots the service and blocks until ctx is cancelled or the API
// server fails.
func Run(ctx context.Context, opts Options) error {
	var cfg models.ServiceConfig

	if err := config.NewConfig(nil).LoadAndValidate(ctx, opts.ConfigPath, &cfg); err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	mainLogger, err := lifecycle.CreateComponentLogger(ctx, "campusnoc-main", cfg.Logging)
	if err != nil {
		return err
	}

	telemetry, err := lifecycle.StartTelemetry(ctx, serviceName, version.GetVersion(), cfg.Logging, mainLogger)
	if err != nil {
		return err
	}

	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		if err := telemetry.Shutdown(shutdownCtx); err != nil {
			mainLogger.Error().Err(err).Msg("Error shutting down telemetry")
		}
	}()

	source, closeSource, err := buildSource(ctx, &cfg, mainLogger)
	if err != nil {
		return err
	}
	defer closeSource()

	rng, err := models.ParseRange(cfg.DefaultRange)
	if err != nil {
		return err
	}

	orchestratorOpts := []dashboard.Option{
		dashboard.WithInterval(cfg.Interval()),
		dashboard.WithRange(rng),
	}

	publisher, nc, err := natsutil.InitializeEventPublisher(ctx, cfg.NATS, cfg.Events, mainLogger)
	if err != nil {
		return err
	}

	if publisher != nil {
		defer nc.Close()

		orchestratorOpts = append(orchestratorOpts, dashboard.WithNotifier(publisher))
	}

	orchestrator := dashboard.NewOrchestrator(source, mainLogger, orchestratorOpts...)

	apiServer := api.NewAPIServer(cfg.CORS, orchestrator,
		api.WithLogger(mainLogger),
		api.WithAPIKey(cfg.APIKey),
	)

	mainLogger.Info().
		Str("version", version.GetFullVersion()).
		Str("listen_addr", cfg.ListenAddr).
		Str("source", cfg.Source.Kind).
		Str("range", rng.String()).
		Dur("refresh_interval", cfg.Interval()).
		Msg("Starting campusnoc")

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		orchestrator.Run(gctx)

		return nil
	})

	g.Go(func() error {
		return apiServer.Start(gctx, cfg.ListenAddr)
	})

	err = g.Wait()

	mainLogger.Info().Msg("campusnoc stopped")

	return err
}

// buildSource returns the configured backend and a function releasing it.
func buildSource(ctx context.Context, cfg *models.ServiceConfig, log logger.Logger) (dashboard.Source, func(), error) {
	switch cfg.Source.Kind {
	case models.SourceHTTP:
		client, err := backend.NewClientFromConfig(cfg.Source.HTTP, log)
		if err != nil {
			return nil, nil, err
		}

		return client, func() {}, nil
	case models.SourceCNPG:
		pool, err := db.NewCNPGPool(ctx, cfg.Source.CNPG, log)
		if err != nil {
			return nil, nil, err
		}

		if err := db.RunCNPGMigrations(ctx, pool, log); err != nil {
			pool.Close()

			return nil, nil, err
		}

		source, err := db.NewCNPGSource(pool, log)
		if err != nil {
			pool.Close()

			return nil, nil, err
		}

		return source, pool.Close, nil
	default:
		return nil, nil, fmt.Errorf("%w: %q", errUnsupportedSource, cfg.Source.Kind)
	}
}
