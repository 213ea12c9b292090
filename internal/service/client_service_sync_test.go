// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"
	"go.uber.org/mock/gomock"

	"github.com/ST10257746/prog7314-part1-sub000/internal/adapter"
	"github.com/ST10257746/prog7314-part1-sub000/internal/entity"
	"github.com/ST10257746/prog7314-part1-sub000/internal/logger"
	"github.com/ST10257746/prog7314-part1-sub000/internal/mock"
	"github.com/ST10257746/prog7314-part1-sub000/internal/store"
	"github.com/ST10257746/prog7314-part1-sub000/models"
)

const testOwner = "owner-1"

type orchestratorFixture struct {
	orchestrator *syncOrchestrator
	records      *mock.MockRecordStore
	owners       *mock.MockOwnerResolver
	adapters     map[models.EntityType]*mock.MockAdapter
	reader       *sdkmetric.ManualReader
}

func newOrchestratorFixture(t *testing.T, ctrl *gomock.Controller, quarantine bool) *orchestratorFixture {
	t.Helper()

	f := &orchestratorFixture{
		records:  mock.NewMockRecordStore(ctrl),
		owners:   mock.NewMockOwnerResolver(ctrl),
		adapters: make(map[models.EntityType]*mock.MockAdapter),
		reader:   sdkmetric.NewManualReader(),
	}

	adapters := make([]entity.Adapter, 0, len(models.AllEntityTypes()))
	for _, e := range models.AllEntityTypes() {
		a := mock.NewMockAdapter(ctrl)
		a.EXPECT().Entity().Return(e).AnyTimes()
		f.adapters[e] = a
		adapters = append(adapters, a)
	}

	registry, err := entity.NewRegistry(adapters...)
	require.NoError(t, err)

	orch, err := NewSyncOrchestrator(f.records, f.owners, registry, SyncOptions{
		QuarantineRejected: quarantine,
		MeterProvider:      sdkmetric.NewMeterProvider(sdkmetric.WithReader(f.reader)),
	}, logger.Nop())
	require.NoError(t, err)
	f.orchestrator = orch.(*syncOrchestrator)

	return f
}

// expectNoPending makes every entity except the listed ones report an empty
// pending queue.
func (f *orchestratorFixture) expectNoPending(except ...models.EntityType) {
	skip := make(map[models.EntityType]bool, len(except))
	for _, e := range except {
		skip[e] = true
	}
	for _, e := range models.AllEntityTypes() {
		if !skip[e] {
			f.records.EXPECT().ListPending(gomock.Any(), testOwner, e).Return(nil, nil)
		}
	}
}

func pendingRecord(localID string, e models.EntityType) models.Record {
	return models.Record{
		LocalID:    localID,
		OwnerID:    testOwner,
		EntityType: e,
		Status:     models.SyncPending,
		Payload:    json.RawMessage(`{}`),
		Version:    1,
	}
}

func (f *orchestratorFixture) sum(t *testing.T, name string) int64 {
	t.Helper()

	var rm metricdata.ResourceMetrics
	require.NoError(t, f.reader.Collect(context.Background(), &rm))

	var total int64
	for _, sm := range rm.ScopeMetrics {
		for _, m := range sm.Metrics {
			if m.Name != name {
				continue
			}
			data, ok := m.Data.(metricdata.Sum[int64])
			require.True(t, ok, "metric %s is not an int64 sum", name)
			for _, dp := range data.DataPoints {
				total += dp.Value
			}
		}
	}
	return total
}

func TestSyncOrchestrator_NoOwner_IsNoop(t *testing.T) {
	ctrl := gomock.NewController(t)
	f := newOrchestratorFixture(t, ctrl, false)

	f.owners.EXPECT().CurrentOwner(gomock.Any()).Return("", false)

	report := f.orchestrator.RunSync(context.Background())

	assert.Equal(t, models.RunCompleted, report.Outcome)
	assert.Zero(t, report.Pushed)
	assert.Empty(t, report.OwnerID)
	assert.Equal(t, int64(1), f.sum(t, MetricRuns))
}

func TestSyncOrchestrator_PushesPendingAndMarksSynced(t *testing.T) {
	ctrl := gomock.NewController(t)
	f := newOrchestratorFixture(t, ctrl, false)

	oatmeal := pendingRecord("n-1", models.EntityNutrition)

	f.owners.EXPECT().CurrentOwner(gomock.Any()).Return(testOwner, true)
	f.expectNoPending(models.EntityNutrition)
	f.records.EXPECT().ListPending(gomock.Any(), testOwner, models.EntityNutrition).Return([]models.Record{oatmeal}, nil)
	f.adapters[models.EntityNutrition].EXPECT().Push(gomock.Any(), oatmeal).Return("abc123", nil)
	f.records.EXPECT().MarkSynced(gomock.Any(), oatmeal, "abc123").Return(nil)

	report := f.orchestrator.RunSync(context.Background())

	assert.Equal(t, models.RunCompleted, report.Outcome)
	assert.Equal(t, testOwner, report.OwnerID)
	assert.Equal(t, 1, report.Pushed)
	assert.Zero(t, report.Failed)
	assert.Equal(t, models.EntityReport{Pending: 1, Pushed: 1}, report.PerEntity[models.EntityNutrition])
	assert.Equal(t, int64(1), f.sum(t, MetricRecordsPushed))
}

func TestSyncOrchestrator_ProcessesEntitiesInFixedOrder(t *testing.T) {
	ctrl := gomock.NewController(t)
	f := newOrchestratorFixture(t, ctrl, false)

	f.owners.EXPECT().CurrentOwner(gomock.Any()).Return(testOwner, true)

	calls := make([]any, 0, len(models.AllEntityTypes()))
	for _, e := range models.AllEntityTypes() {
		calls = append(calls, f.records.EXPECT().ListPending(gomock.Any(), testOwner, e).Return(nil, nil))
	}
	gomock.InOrder(calls...)

	report := f.orchestrator.RunSync(context.Background())
	assert.Equal(t, models.RunCompleted, report.Outcome)
	assert.Len(t, report.PerEntity, len(models.AllEntityTypes()))
}

func TestSyncOrchestrator_PartialBatchFailureKeepsGoing(t *testing.T) {
	ctrl := gomock.NewController(t)
	f := newOrchestratorFixture(t, ctrl, false)

	first := pendingRecord("s-1", models.EntityWorkoutSession)
	second := pendingRecord("s-2", models.EntityWorkoutSession)
	pushErr := fmt.Errorf("%w: connection refused", adapter.ErrNetwork)

	f.owners.EXPECT().CurrentOwner(gomock.Any()).Return(testOwner, true)
	f.expectNoPending(models.EntityWorkoutSession)
	f.records.EXPECT().ListPending(gomock.Any(), testOwner, models.EntityWorkoutSession).Return([]models.Record{first, second}, nil)

	sessions := f.adapters[models.EntityWorkoutSession]
	gomock.InOrder(
		sessions.EXPECT().Push(gomock.Any(), first).Return("", pushErr),
		f.records.EXPECT().RecordSyncFailure(gomock.Any(), testOwner, "s-1", pushErr.Error()).Return(nil),
		sessions.EXPECT().Push(gomock.Any(), second).Return("remote-2", nil),
		f.records.EXPECT().MarkSynced(gomock.Any(), second, "remote-2").Return(nil),
	)

	report := f.orchestrator.RunSync(context.Background())

	assert.Equal(t, models.RunCompleted, report.Outcome)
	assert.Equal(t, 1, report.Pushed)
	assert.Equal(t, 1, report.Failed)
	assert.Equal(t, int64(1), f.sum(t, MetricRecordsFailed))
}

func TestSyncOrchestrator_ListPendingFailureAbortsRun(t *testing.T) {
	ctrl := gomock.NewController(t)
	f := newOrchestratorFixture(t, ctrl, false)

	f.owners.EXPECT().CurrentOwner(gomock.Any()).Return(testOwner, true)
	f.records.EXPECT().ListPending(gomock.Any(), testOwner, models.EntityWorkoutSession).Return(nil, nil)
	f.records.EXPECT().ListPending(gomock.Any(), testOwner, models.EntityNutrition).Return(nil, store.ErrExecutingQuery)

	report := f.orchestrator.RunSync(context.Background())

	assert.Equal(t, models.RunShouldRetry, report.Outcome)
	assert.ErrorIs(t, report.Err, ErrStoreFailure)
	assert.ErrorIs(t, report.Err, store.ErrExecutingQuery)
	assert.NotContains(t, report.PerEntity, models.EntityGoal)
}

func TestSyncOrchestrator_ExerciseReadFailureAbortsRun(t *testing.T) {
	ctrl := gomock.NewController(t)
	f := newOrchestratorFixture(t, ctrl, true)

	workout := pendingRecord("cw-1", models.EntityCustomWorkout)
	readErr := fmt.Errorf("%w: exercises of cw-1: %w", entity.ErrLocalRead, store.ErrExecutingQuery)

	f.owners.EXPECT().CurrentOwner(gomock.Any()).Return(testOwner, true)
	f.expectNoPending(models.EntityCustomWorkout)
	f.records.EXPECT().ListPending(gomock.Any(), testOwner, models.EntityCustomWorkout).Return([]models.Record{workout}, nil)
	f.adapters[models.EntityCustomWorkout].EXPECT().Push(gomock.Any(), workout).Return("", readErr)
	// neither a sync failure nor a quarantine is recorded against the workout
	f.records.EXPECT().RecordSyncFailure(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Times(0)
	f.records.EXPECT().MarkFailed(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Times(0)

	report := f.orchestrator.RunSync(context.Background())

	assert.Equal(t, models.RunShouldRetry, report.Outcome)
	assert.ErrorIs(t, report.Err, ErrStoreFailure)
	assert.ErrorIs(t, report.Err, store.ErrExecutingQuery)
	assert.Zero(t, report.Failed)
}

func TestSyncOrchestrator_MarkSyncedFailureAbortsRun(t *testing.T) {
	ctrl := gomock.NewController(t)
	f := newOrchestratorFixture(t, ctrl, false)

	goal := pendingRecord("g-1", models.EntityGoal)

	f.owners.EXPECT().CurrentOwner(gomock.Any()).Return(testOwner, true)
	for _, e := range []models.EntityType{models.EntityWorkoutSession, models.EntityNutrition, models.EntityDailyActivity} {
		f.records.EXPECT().ListPending(gomock.Any(), testOwner, e).Return(nil, nil)
	}
	f.records.EXPECT().ListPending(gomock.Any(), testOwner, models.EntityGoal).Return([]models.Record{goal}, nil)
	f.adapters[models.EntityGoal].EXPECT().Push(gomock.Any(), goal).Return("goal-remote", nil)
	f.records.EXPECT().MarkSynced(gomock.Any(), goal, "goal-remote").Return(store.ErrExecutingStatement)

	report := f.orchestrator.RunSync(context.Background())

	assert.Equal(t, models.RunShouldRetry, report.Outcome)
	assert.ErrorIs(t, report.Err, ErrStoreFailure)
}

func TestSyncOrchestrator_RecordChangedDuringPush(t *testing.T) {
	ctrl := gomock.NewController(t)
	f := newOrchestratorFixture(t, ctrl, false)

	profile := pendingRecord("p-1", models.EntityProfile)

	f.owners.EXPECT().CurrentOwner(gomock.Any()).Return(testOwner, true)
	f.expectNoPending(models.EntityProfile)
	f.records.EXPECT().ListPending(gomock.Any(), testOwner, models.EntityProfile).Return([]models.Record{profile}, nil)
	f.adapters[models.EntityProfile].EXPECT().Push(gomock.Any(), profile).Return(testOwner, nil)
	f.records.EXPECT().MarkSynced(gomock.Any(), profile, testOwner).Return(store.ErrRecordChanged)

	report := f.orchestrator.RunSync(context.Background())

	assert.Equal(t, models.RunCompleted, report.Outcome)
	assert.Equal(t, 1, report.Pushed)
	assert.Zero(t, report.Failed)
}

func TestSyncOrchestrator_RejectedRecords(t *testing.T) {
	rejected := fmt.Errorf("%w: missing fields", adapter.ErrBadRequest)
	network := fmt.Errorf("%w: 503", adapter.ErrServer)

	tests := []struct {
		name       string
		quarantine bool
		pushErr    error
		failed     bool
	}{
		{name: "rejected retried by default", quarantine: false, pushErr: rejected, failed: false},
		{name: "rejected quarantined", quarantine: true, pushErr: rejected, failed: true},
		{name: "network never quarantined", quarantine: true, pushErr: network, failed: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			f := newOrchestratorFixture(t, ctrl, tt.quarantine)

			workout := pendingRecord("cw-1", models.EntityCustomWorkout)

			f.owners.EXPECT().CurrentOwner(gomock.Any()).Return(testOwner, true)
			f.expectNoPending(models.EntityCustomWorkout)
			f.records.EXPECT().ListPending(gomock.Any(), testOwner, models.EntityCustomWorkout).Return([]models.Record{workout}, nil)
			f.adapters[models.EntityCustomWorkout].EXPECT().Push(gomock.Any(), workout).Return("", tt.pushErr)

			if tt.failed {
				f.records.EXPECT().MarkFailed(gomock.Any(), testOwner, "cw-1", tt.pushErr.Error()).Return(nil)
			} else {
				f.records.EXPECT().RecordSyncFailure(gomock.Any(), testOwner, "cw-1", tt.pushErr.Error()).Return(nil)
			}

			report := f.orchestrator.RunSync(context.Background())

			assert.Equal(t, models.RunCompleted, report.Outcome)
			assert.Equal(t, 1, report.Failed)
		})
	}
}

func TestSyncOrchestrator_FailureBookkeepingError(t *testing.T) {
	ctrl := gomock.NewController(t)
	f := newOrchestratorFixture(t, ctrl, false)

	session := pendingRecord("s-1", models.EntityWorkoutSession)

	f.owners.EXPECT().CurrentOwner(gomock.Any()).Return(testOwner, true)
	f.records.EXPECT().ListPending(gomock.Any(), testOwner, models.EntityWorkoutSession).Return([]models.Record{session}, nil)
	f.adapters[models.EntityWorkoutSession].EXPECT().Push(gomock.Any(), session).Return("", adapter.ErrTimeout)
	f.records.EXPECT().RecordSyncFailure(gomock.Any(), testOwner, "s-1", gomock.Any()).Return(errors.New("disk I/O error"))

	report := f.orchestrator.RunSync(context.Background())

	assert.Equal(t, models.RunShouldRetry, report.Outcome)
	assert.ErrorIs(t, report.Err, ErrStoreFailure)
}

func TestSyncOrchestrator_CancelledContextStopsRun(t *testing.T) {
	ctrl := gomock.NewController(t)
	f := newOrchestratorFixture(t, ctrl, false)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	f.owners.EXPECT().CurrentOwner(gomock.Any()).Return(testOwner, true)
	f.records.EXPECT().ListPending(gomock.Any(), testOwner, models.EntityWorkoutSession).
		Return([]models.Record{pendingRecord("s-1", models.EntityWorkoutSession)}, nil)

	report := f.orchestrator.RunSync(ctx)

	assert.Equal(t, models.RunShouldRetry, report.Outcome)
	assert.ErrorIs(t, report.Err, context.Canceled)
}
