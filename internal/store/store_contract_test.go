package store

import (
	"context"
	"encoding/json"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ST10257746/prog7314-part1-sub000/internal/config"
	"github.com/ST10257746/prog7314-part1-sub000/internal/logger"
	"github.com/ST10257746/prog7314-part1-sub000/models"
)

type storeFactory func(t *testing.T) (RecordStore, SessionStore)

func sqliteFactory(t *testing.T) (RecordStore, SessionStore) {
	t.Helper()

	ctx := context.Background()
	dsn := filepath.Join(t.TempDir(), "local.db")
	db, err := NewConnectSQLite(ctx, config.ClientDB{DSN: dsn}, logger.Nop())
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	require.NoError(t, db.Migrate())

	return NewRecordRepository(db, logger.Nop()), NewSessionRepository(db, logger.Nop())
}

func memoryFactory(t *testing.T) (RecordStore, SessionStore) {
	t.Helper()
	m := NewMemoryStore()
	return m, m
}

var factories = map[string]storeFactory{
	"sqlite": sqliteFactory,
	"memory": memoryFactory,
}

var baseTime = time.Date(2026, 3, 1, 8, 0, 0, 0, time.UTC)

func newRecord(localID, owner string, entity models.EntityType, minute int) models.Record {
	return models.Record{
		LocalID:    localID,
		OwnerID:    owner,
		EntityType: entity,
		Payload:    json.RawMessage(`{"name":"` + localID + `"}`),
		CreatedAt:  baseTime.Add(time.Duration(minute) * time.Minute),
	}
}

func TestRecordStore_SaveAndGet(t *testing.T) {
	for name, factory := range factories {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			records, _ := factory(t)

			require.NoError(t, records.Save(ctx, newRecord("r1", "alice", models.EntityNutrition, 0)))

			got, err := records.Get(ctx, "alice", "r1")
			require.NoError(t, err)
			assert.Equal(t, models.SyncPending, got.Status)
			assert.Equal(t, int64(1), got.Version)
			assert.Nil(t, got.RemoteID)
			assert.Nil(t, got.SyncedAt)
			assert.Equal(t, models.EntityNutrition, got.EntityType)
			assert.JSONEq(t, `{"name":"r1"}`, string(got.Payload))

			err = records.Save(ctx, newRecord("r1", "alice", models.EntityNutrition, 0))
			assert.ErrorIs(t, err, ErrRecordAlreadyExists)

			err = records.Save(ctx, newRecord("r2", "", models.EntityNutrition, 0))
			assert.ErrorIs(t, err, ErrOwnerRequired)
		})
	}
}

func TestRecordStore_OwnerScoping(t *testing.T) {
	for name, factory := range factories {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			records, _ := factory(t)

			require.NoError(t, records.Save(ctx, newRecord("r1", "alice", models.EntityGoal, 0)))

			_, err := records.Get(ctx, "bob", "r1")
			assert.ErrorIs(t, err, ErrRecordNotFound)

			list, err := records.List(ctx, "bob", "")
			require.NoError(t, err)
			assert.Empty(t, list)

			err = records.MarkSynced(ctx, models.Record{LocalID: "r1", OwnerID: "bob", Version: 1}, "x")
			assert.ErrorIs(t, err, ErrRecordNotFound)

			assert.ErrorIs(t, records.DeleteLocal(ctx, "bob", "r1"), ErrRecordNotFound)

			got, err := records.Get(ctx, "alice", "r1")
			require.NoError(t, err)
			assert.Nil(t, got.RemoteID)
		})
	}
}

func TestRecordStore_ListPendingOrderAndFilter(t *testing.T) {
	for name, factory := range factories {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			records, _ := factory(t)

			require.NoError(t, records.Save(ctx, newRecord("late", "alice", models.EntityWorkoutSession, 5)))
			require.NoError(t, records.Save(ctx, newRecord("early", "alice", models.EntityWorkoutSession, 1)))
			require.NoError(t, records.Save(ctx, newRecord("meal", "alice", models.EntityNutrition, 2)))

			pending, err := records.ListPending(ctx, "alice", models.EntityWorkoutSession)
			require.NoError(t, err)
			require.Len(t, pending, 2)
			assert.Equal(t, "early", pending[0].LocalID)
			assert.Equal(t, "late", pending[1].LocalID)

			all, err := records.List(ctx, "alice", "")
			require.NoError(t, err)
			assert.Len(t, all, 3)
		})
	}
}

func TestRecordStore_MarkSynced(t *testing.T) {
	for name, factory := range factories {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			records, _ := factory(t)

			require.NoError(t, records.Save(ctx, newRecord("r1", "alice", models.EntityNutrition, 0)))
			rec, err := records.Get(ctx, "alice", "r1")
			require.NoError(t, err)

			require.NoError(t, records.MarkSynced(ctx, rec, "abc123"))

			got, err := records.Get(ctx, "alice", "r1")
			require.NoError(t, err)
			assert.Equal(t, models.SyncSynced, got.Status)
			require.NotNil(t, got.RemoteID)
			assert.Equal(t, "abc123", *got.RemoteID)
			assert.NotNil(t, got.SyncedAt)

			pending, err := records.ListPending(ctx, "alice", models.EntityNutrition)
			require.NoError(t, err)
			assert.Empty(t, pending)
		})
	}
}

func TestRecordStore_MarkSyncedAfterConcurrentEdit(t *testing.T) {
	for name, factory := range factories {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			records, _ := factory(t)

			require.NoError(t, records.Save(ctx, newRecord("r1", "alice", models.EntityGoal, 0)))
			listed, err := records.Get(ctx, "alice", "r1")
			require.NoError(t, err)

			edited, err := records.UpdatePayload(ctx, "alice", "r1", json.RawMessage(`{"name":"edited"}`))
			require.NoError(t, err)
			assert.Equal(t, int64(2), edited.Version)

			err = records.MarkSynced(ctx, listed, "remote-1")
			assert.ErrorIs(t, err, ErrRecordChanged)

			got, err := records.Get(ctx, "alice", "r1")
			require.NoError(t, err)
			assert.Equal(t, models.SyncPending, got.Status)
			require.NotNil(t, got.RemoteID)
			assert.Equal(t, "remote-1", *got.RemoteID)
			assert.JSONEq(t, `{"name":"edited"}`, string(got.Payload))
		})
	}
}

func TestRecordStore_UpdatePayloadKeepsRemoteID(t *testing.T) {
	for name, factory := range factories {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			records, _ := factory(t)

			require.NoError(t, records.Save(ctx, newRecord("r1", "alice", models.EntityGoal, 0)))
			rec, _ := records.Get(ctx, "alice", "r1")
			require.NoError(t, records.RecordSyncFailure(ctx, "alice", "r1", "boom"))
			require.NoError(t, records.MarkSynced(ctx, rec, "g-1"))

			got, err := records.UpdatePayload(ctx, "alice", "r1", json.RawMessage(`{"title":"x"}`))
			require.NoError(t, err)
			assert.Equal(t, models.SyncPending, got.Status)
			assert.Equal(t, 0, got.SyncAttempts)
			require.NotNil(t, got.RemoteID)
			assert.Equal(t, "g-1", *got.RemoteID)

			_, err = records.UpdatePayload(ctx, "alice", "missing", json.RawMessage(`{}`))
			assert.ErrorIs(t, err, ErrRecordNotFound)
		})
	}
}

func TestRecordStore_Failures(t *testing.T) {
	for name, factory := range factories {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			records, _ := factory(t)

			require.NoError(t, records.Save(ctx, newRecord("r1", "alice", models.EntityNutrition, 0)))

			require.NoError(t, records.RecordSyncFailure(ctx, "alice", "r1", "timeout"))
			require.NoError(t, records.RecordSyncFailure(ctx, "alice", "r1", "server error"))

			got, err := records.Get(ctx, "alice", "r1")
			require.NoError(t, err)
			assert.Equal(t, models.SyncPending, got.Status)
			assert.Equal(t, 2, got.SyncAttempts)
			assert.Equal(t, "server error", got.LastSyncError)

			require.NoError(t, records.MarkFailed(ctx, "alice", "r1", "rejected"))
			pending, err := records.ListPending(ctx, "alice", models.EntityNutrition)
			require.NoError(t, err)
			assert.Empty(t, pending)

			got, err = records.Get(ctx, "alice", "r1")
			require.NoError(t, err)
			assert.Equal(t, models.SyncFailed, got.Status)
			assert.Equal(t, 3, got.SyncAttempts)

			assert.ErrorIs(t, records.RecordSyncFailure(ctx, "alice", "nope", "x"), ErrRecordNotFound)
		})
	}
}

func TestRecordStore_Exercises(t *testing.T) {
	for name, factory := range factories {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			records, _ := factory(t)

			require.NoError(t, records.Save(ctx, newRecord("w1", "alice", models.EntityCustomWorkout, 0)))

			sets := 3
			require.NoError(t, records.SaveExercises(ctx, "alice", "w1", []models.Exercise{
				{Name: "Squat", OrderIndex: 1, Sets: &sets, RestSeconds: 60},
				{Name: "Push-up", OrderIndex: 0, RestSeconds: 30},
			}))

			list, err := records.ListExercises(ctx, "alice", "w1")
			require.NoError(t, err)
			require.Len(t, list, 2)
			assert.Equal(t, "Push-up", list[0].Name)
			assert.Nil(t, list[0].Sets)
			assert.Equal(t, "Squat", list[1].Name)
			require.NotNil(t, list[1].Sets)
			assert.Equal(t, 3, *list[1].Sets)

			require.NoError(t, records.SaveExercises(ctx, "alice", "w1", []models.Exercise{{Name: "Plank", RestSeconds: 60}}))
			list, err = records.ListExercises(ctx, "alice", "w1")
			require.NoError(t, err)
			require.Len(t, list, 1)
			assert.Equal(t, "Plank", list[0].Name)

			require.NoError(t, records.DeleteLocal(ctx, "alice", "w1"))
			list, err = records.ListExercises(ctx, "alice", "w1")
			require.NoError(t, err)
			assert.Empty(t, list)
		})
	}
}

func TestRecordStore_PurgeOwner(t *testing.T) {
	for name, factory := range factories {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			records, _ := factory(t)

			require.NoError(t, records.Save(ctx, newRecord("a1", "alice", models.EntityGoal, 0)))
			require.NoError(t, records.Save(ctx, newRecord("a2", "alice", models.EntityCustomWorkout, 1)))
			require.NoError(t, records.SaveExercises(ctx, "alice", "a2", []models.Exercise{{Name: "Lunge"}}))
			require.NoError(t, records.Save(ctx, newRecord("b1", "bob", models.EntityGoal, 2)))

			require.NoError(t, records.PurgeOwner(ctx, "alice"))
			assert.ErrorIs(t, records.PurgeOwner(ctx, ""), ErrOwnerRequired)

			alice, err := records.List(ctx, "alice", "")
			require.NoError(t, err)
			assert.Empty(t, alice)

			bob, err := records.List(ctx, "bob", "")
			require.NoError(t, err)
			assert.Len(t, bob, 1)
		})
	}
}

func TestSessionStore(t *testing.T) {
	for name, factory := range factories {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			_, sessions := factory(t)

			_, err := sessions.GetSession(ctx)
			assert.ErrorIs(t, err, ErrSessionNotFound)

			require.NoError(t, sessions.SaveSession(ctx, models.Session{
				OwnerID:      "alice",
				RefreshToken: "r-1",
				IDToken:      "id-1",
				Expiry:       baseTime,
			}))
			require.NoError(t, sessions.SaveSession(ctx, models.Session{
				OwnerID:      "alice",
				RefreshToken: "r-2",
			}))

			got, err := sessions.GetSession(ctx)
			require.NoError(t, err)
			assert.Equal(t, "alice", got.OwnerID)
			assert.Equal(t, "r-2", got.RefreshToken)
			assert.True(t, got.Expiry.IsZero())

			require.NoError(t, sessions.DeleteSession(ctx))
			_, err = sessions.GetSession(ctx)
			assert.ErrorIs(t, err, ErrSessionNotFound)
		})
	}
}
