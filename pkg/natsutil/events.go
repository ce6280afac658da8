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


// Package natsutil connects to NATS and publishes dashboard refresh events
// to JetStream as CloudEvents.
package natsutil

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/google/uuid"
	"github.com/nats-io/nats.go"
	"github.com/nats-io/nats.go/jetstream"

	"github.com/carverauto/campusnoc/pkg/logger"
	"github.com/carverauto/campusnoc/pkg/models"
)

// ErrNothingToPublish is returned for a state that has never loaded.
var ErrNothingToPublish = errors.New("dashboard state has no view to publish")

// EventPublisher provides methods for publishing CloudEvents to NATS JetStream.
type EventPublisher struct {
	js       jetstream.JetStream
	stream   string
	subjects []string
	logger   logger.Logger
}

// NewEventPublisher creates a new EventPublisher for the specified stream.
func NewEventPublisher(js jetstream.JetStream, streamName string, subjects []string, log logger.Logger) *EventPublisher {
	return &EventPublisher{
		js:       js,
		stream:   streamName,
		subjects: subjects,
		logger:   log,
	}
}

// Stream returns the JetStream stream the publisher writes to.
func (p *EventPublisher) Stream() string {
	return p.stream
}

// PublishDashboardRefreshed announces a newly published dashboard view.
func (p *EventPublisher) PublishDashboardRefreshed(ctx context.Context, state *models.DashboardState) error {
	if !state.Loaded() {
		return ErrNothingToPublish
	}

	refreshedAt := state.RefreshedAt

	event := models.CloudEvent{
		SpecVersion:     models.CloudEventsSpecVersion,
		ID:              uuid.NewString(),
		Source:          models.EventSource,
		Type:            models.DashboardRefreshedEventType,
		DataContentType: "application/json",
		Subject:         models.DashboardRefreshedSubject,
		Time:            &refreshedAt,
		Data: models.DashboardRefreshedData{
			RefreshID:        state.RefreshID,
			Version:          state.Version,
			Range:            state.Range,
			RangeDays:        state.RangeDays,
			RefreshedAt:      refreshedAt,
			Overview:         state.Dashboard.Overview,
			Drops:            state.Dashboard.Drops,
			SelectedDeviceID: state.SelectedDeviceID,
		},
	}

	eventBytes, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal dashboard refresh event: %w", err)
	}

	ack, err := p.js.Publish(ctx, event.Subject, eventBytes)
	if err != nil {
		return fmt.Errorf("failed to publish dashboard refresh event: %w", err)
	}

	p.logger.Debug().
		Str("event_id", event.ID).
		Str("subject", event.Subject).
		Str("stream", ack.Stream).
		Uint64("seq", ack.Sequence).
		Msg("Published dashboard refresh event")

	return nil
}

// ConnectWithSecurity creates a NATS connection with the configured security.
func ConnectWithSecurity(_ context.Context, cfg *models.NATSConfig, log logger.Logger, extraOpts ...nats.Option) (*nats.Conn, error) {
	var opts []nats.Option

	if cfg.Security != nil {
		tlsConf, err := TLSConfig(cfg.Security)
		if err != nil {
			return nil, fmt.Errorf("failed to build NATS TLS config: %w", err)
		}

		opts = append(opts, nats.Secure(tlsConf))
	}

	authOpts, err := authOptions(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to build NATS credentials: %w", err)
	}

	opts = append(opts, authOpts...)

	opts = append(opts,
		nats.Name("campusnoc"),
		nats.MaxReconnects(-1),
		nats.ErrorHandler(func(_ *nats.Conn, _ *nats.Subscription, err error) {
			log.Error().Err(err).Msg("NATS error")
		}),
		nats.ConnectHandler(func(nc *nats.Conn) {
			log.Info().Str("url", nc.ConnectedUrl()).Msg("Connected to NATS")
		}),
		nats.DisconnectErrHandler(func(_ *nats.Conn, err error) {
			log.Warn().Err(err).Msg("NATS disconnected")
		}),
		nats.ReconnectHandler(func(nc *nats.Conn) {
			log.Info().Str("url", nc.ConnectedUrl()).Msg("NATS reconnected")
		}),
	)

	opts = append(opts, extraOpts...)

	nc, err := nats.Connect(cfg.URL, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to NATS: %w", err)
	}

	return nc, nil
}

// CreateEventPublisher creates an EventPublisher on an existing connection.
// The stream is created when missing and widened when its subjects do not
// cover the refresh subject.
func CreateEventPublisher(
	ctx context.Context, nc *nats.Conn, domain, streamName string, subjects []string, log logger.Logger,
) (*EventPublisher, error) {
	var js jetstream.JetStream

	var err error

	if domain != "" {
		js, err = jetstream.NewWithDomain(nc, domain)
		if err != nil {
			return nil, fmt.Errorf("failed to create JetStream context with domain %s: %w", domain, err)
		}
	} else {
		js, err = jetstream.New(nc)
		if err != nil {
			return nil, fmt.Errorf("failed to create JetStream context: %w", err)
		}
	}

	subjects = ensureSubjectList(slices.Clone(subjects), models.DashboardRefreshedSubject)

	stream, err := js.Stream(ctx, streamName)

	switch {
	case err == nil:
		info, infoErr := stream.Info(ctx)
		if infoErr != nil {
			return nil, fmt.Errorf("failed to read stream %s: %w", streamName, infoErr)
		}

		existing := info.Config.Subjects
		widened := ensureSubjectList(slices.Clone(existing), models.DashboardRefreshedSubject)

		if len(widened) != len(existing) {
			cfg := info.Config
			cfg.Subjects = widened

			if _, err = js.UpdateStream(ctx, cfg); err != nil {
				return nil, fmt.Errorf("failed to update stream %s: %w", streamName, err)
			}

			log.Info().Str("stream", streamName).Strs("subjects", widened).Msg("Updated NATS JetStream stream subjects")
		}

		subjects = widened
	case isStreamMissingErr(err):
		_, err = js.CreateOrUpdateStream(ctx, jetstream.StreamConfig{
			Name:     streamName,
			Subjects: subjects,
		})
		if err != nil {
			return nil, fmt.Errorf("failed to create stream %s: %w", streamName, err)
		}

		log.Info().Str("stream", streamName).Strs("subjects", subjects).Msg("Created NATS JetStream stream")
	default:
		return nil, fmt.Errorf("failed to look up stream %s: %w", streamName, err)
	}

	return NewEventPublisher(js, streamName, subjects, log), nil
}

// InitializeEventPublisher connects to NATS and prepares the refresh event
// publisher. It returns nil values when events are disabled.
func InitializeEventPublisher(
	ctx context.Context, natsCfg *models.NATSConfig, eventsCfg *models.EventsConfig, log logger.Logger,
) (*EventPublisher, *nats.Conn, error) {
	if eventsCfg == nil || !eventsCfg.Enabled {
		log.Info().Msg("Events not configured or disabled, event publishing disabled")

		return nil, nil, nil
	}

	if natsCfg == nil {
		log.Info().Msg("NATS not configured, event publishing disabled")

		return nil, nil, nil
	}

	if err := natsCfg.Validate(); err != nil {
		return nil, nil, fmt.Errorf("invalid NATS configuration: %w", err)
	}

	if err := eventsCfg.Validate(); err != nil {
		return nil, nil, fmt.Errorf("invalid events configuration: %w", err)
	}

	nc, err := ConnectWithSecurity(ctx, natsCfg, log)
	if err != nil {
		return nil, nil, err
	}

	publisher, err := CreateEventPublisher(ctx, nc, natsCfg.Domain, eventsCfg.StreamName, eventsCfg.Subjects, log)
	if err != nil {
		nc.Close()

		return nil, nil, fmt.Errorf("failed to create event publisher: %w", err)
	}

	log.Info().Str("stream", eventsCfg.StreamName).Msg("NATS event publisher initialized")

	return publisher, nc, nil
}

// ensureSubjectList appends subject unless an existing pattern covers it.
func ensureSubjectList(subjects []string, subject string) []string {
	for _, pattern := range subjects {
		if matchesSubject(pattern, subject) {
			return subjects
		}
	}

	return append(subjects, subject)
}

// matchesSubject reports whether a NATS subject pattern matches subject.
func matchesSubject(pattern, subject string) bool {
	if pattern == subject {
		return true
	}

	patternTokens := strings.Split(pattern, ".")
	subjectTokens := strings.Split(subject, ".")

	for i, token := range patternTokens {
		if token == ">" {
			return len(subjectTokens) > i
		}

		if i >= len(subjectTokens) {
			return false
		}

		if token != "*" && token != subjectTokens[i] {
			return false
		}
	}

	return len(patternTokens) == len(subjectTokens)
}

func isStreamMissingErr(err error) bool {
	return errors.Is(err, jetstream.ErrStreamNotFound) ||
		errors.Is(err, jetstream.ErrNoStreamResponse) ||
		errors.Is(err, nats.ErrStreamNotFound) ||
		errors.Is(err, nats.ErrNoStreamResponse) ||
		errors.Is(err, nats.ErrNoResponders)
}
