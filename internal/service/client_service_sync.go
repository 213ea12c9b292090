// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.opentelemetry.io/otel/metric"

	"github.com/ST10257746/prog7314-part1-sub000/internal/adapter"
	"github.com/ST10257746/prog7314-part1-sub000/internal/entity"
	"github.com/ST10257746/prog7314-part1-sub000/internal/identity"
	"github.com/ST10257746/prog7314-part1-sub000/internal/logger"
	"github.com/ST10257746/prog7314-part1-sub000/internal/store"
	"github.com/ST10257746/prog7314-part1-sub000/models"
)

// SyncOptions tunes a [SyncOrchestrator].
type SyncOptions struct {
	// QuarantineRejected moves records the remote store rejects to the
	// failed state. When false they stay pending and are retried every run.
	QuarantineRejected bool

	// MeterProvider receives the sync metrics. Nil uses the global provider.
	MeterProvider metric.MeterProvider
}

type syncOrchestrator struct {
	records  store.RecordStore
	owners   identity.OwnerResolver
	registry *entity.Registry

	quarantine bool
	metrics    *syncMetrics
	now        func() time.Time

	logger *logger.Logger
}

// NewSyncOrchestrator builds the orchestrator of sync runs over records,
// pushing through the adapters of registry on behalf of the owner reported
// by owners.
func NewSyncOrchestrator(records store.RecordStore, owners identity.OwnerResolver, registry *entity.Registry, opts SyncOptions, logger *logger.Logger) (SyncOrchestrator, error) {
	metrics, err := newSyncMetrics(opts.MeterProvider)
	if err != nil {
		return nil, err
	}

	return &syncOrchestrator{
		records:    records,
		owners:     owners,
		registry:   registry,
		quarantine: opts.QuarantineRejected,
		metrics:    metrics,
		now:        time.Now,
		logger:     logger,
	}, nil
}

func (o *syncOrchestrator) RunSync(ctx context.Context) models.RunReport {
	report := models.RunReport{
		Outcome:   models.RunCompleted,
		StartedAt: o.now(),
		PerEntity: make(map[models.EntityType]models.EntityReport),
	}
	defer func() {
		report.Duration = o.now().Sub(report.StartedAt)
		o.metrics.recordRun(ctx, report)
	}()

	ownerID, ok := o.owners.CurrentOwner(ctx)
	if !ok {
		o.logger.Info().Msg("no signed-in owner, sync run skipped")
		return report
	}
	report.OwnerID = ownerID

	log := o.logger.WithOwner(ownerID)
	log.Info().Msg("sync run started")

	for _, e := range o.registry.Entities() {
		er, err := o.syncEntity(ctx, log, ownerID, e)
		report.PerEntity[e] = er
		report.Pushed += er.Pushed
		report.Failed += er.Failed
		o.metrics.recordEntity(ctx, e, er)

		if err != nil {
			report.Outcome = models.RunShouldRetry
			report.Err = err
			log.Error().Err(err).Str("entity", e.String()).Msg("sync run aborted")
			return report
		}
	}

	log.Info().
		Int("pushed", report.Pushed).
		Int("failed", report.Failed).
		Msg("sync run finished")

	return report
}

// syncEntity pushes the pending records of one entity type. A returned error
// aborts the run; per-record failures are only counted.
func (o *syncOrchestrator) syncEntity(ctx context.Context, log *logger.Logger, ownerID string, e models.EntityType) (models.EntityReport, error) {
	var er models.EntityReport

	adp, err := o.registry.Adapter(e)
	if err != nil {
		return er, err
	}

	pending, err := o.records.ListPending(ctx, ownerID, e)
	if err != nil {
		return er, fmt.Errorf("%w: list pending %s: %w", ErrStoreFailure, e, err)
	}
	er.Pending = len(pending)

	for _, rec := range pending {
		if err = ctx.Err(); err != nil {
			return er, err
		}

		recLog := log.With().Str("entity", e.String()).Str("local_id", rec.LocalID).Logger()

		remoteID, pushErr := adp.Push(ctx, rec)
		if errors.Is(pushErr, entity.ErrLocalRead) {
			return er, fmt.Errorf("%w: push %s: %w", ErrStoreFailure, rec.LocalID, pushErr)
		}
		if pushErr != nil {
			er.Failed++
			recLog.Warn().
				Err(pushErr).
				Stringer("class", adapter.Classify(pushErr)).
				Int("attempt", rec.SyncAttempts+1).
				Msg("push failed, record stays pending")

			if err = o.recordFailure(ctx, rec, pushErr); err != nil {
				return er, err
			}
			continue
		}

		err = o.records.MarkSynced(ctx, rec, remoteID)
		switch {
		case err == nil:
			er.Pushed++
			recLog.Debug().Str("remote_id", remoteID).Msg("record synced")
		case errors.Is(err, store.ErrRecordChanged):
			// the remote id is stored, the newer edit goes out next run
			er.Pushed++
			recLog.Debug().Str("remote_id", remoteID).Msg("record edited during push, stays pending")
		case errors.Is(err, store.ErrRecordNotFound):
			recLog.Warn().Str("remote_id", remoteID).Msg("record deleted during push")
		default:
			return er, fmt.Errorf("%w: mark synced %s: %w", ErrStoreFailure, rec.LocalID, err)
		}
	}

	return er, nil
}

func (o *syncOrchestrator) recordFailure(ctx context.Context, rec models.Record, pushErr error) error {
	var err error
	if o.quarantine && adapter.Classify(pushErr) == adapter.ClassRejected {
		err = o.records.MarkFailed(ctx, rec.OwnerID, rec.LocalID, pushErr.Error())
	} else {
		err = o.records.RecordSyncFailure(ctx, rec.OwnerID, rec.LocalID, pushErr.Error())
	}

	if err != nil && !errors.Is(err, store.ErrRecordNotFound) {
		return fmt.Errorf("%w: record sync failure %s: %w", ErrStoreFailure, rec.LocalID, err)
	}
	return nil
}
