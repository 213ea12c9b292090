// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package store implements the local record store of the sync client: a
// durable, owner-scoped table of typed records carrying a sync marker, the
// exercise rows of custom workouts, and the persisted sign-in session.
//
// Two implementations are provided. The SQLite one ([NewClientStorages]) is
// used by the client binary; the in-memory one ([NewMemoryStore]) backs
// tests and tooling.
package store

import (
	"context"
	"encoding/json"

	"github.com/ST10257746/prog7314-part1-sub000/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/store_mock.go -package=mock

// RecordStore is the owner-scoped local record store. Every method takes the
// owner id and never returns or modifies another owner's rows.
type RecordStore interface {
	// Save inserts a new record. The caller sets LocalID, OwnerID, EntityType
	// and Payload; the store fills the bookkeeping fields when empty.
	Save(ctx context.Context, rec models.Record) error

	// Get returns a single record or [ErrRecordNotFound].
	Get(ctx context.Context, ownerID, localID string) (models.Record, error)

	// List returns all records of entity for the owner, oldest first. An
	// empty entity lists every type.
	List(ctx context.Context, ownerID string, entity models.EntityType) ([]models.Record, error)

	// ListPending returns the records of entity that wait for a push,
	// oldest first.
	ListPending(ctx context.Context, ownerID string, entity models.EntityType) ([]models.Record, error)

	// UpdatePayload replaces the payload of a record, bumps its version and
	// puts it back into the pending state. The remote id is kept.
	UpdatePayload(ctx context.Context, ownerID, localID string, payload json.RawMessage) (models.Record, error)

	// MarkSynced stores remoteID and flips rec to synced in one atomic
	// statement, provided rec.Version is still current. When the record was
	// edited meanwhile, only the remote id is stored, the record stays
	// pending and [ErrRecordChanged] is returned.
	MarkSynced(ctx context.Context, rec models.Record, remoteID string) error

	// RecordSyncFailure increments the attempt counter of a pending record
	// and stores the failure message.
	RecordSyncFailure(ctx context.Context, ownerID, localID, syncErr string) error

	// MarkFailed moves a record into the failed state. Failed records are not
	// returned by ListPending until they are edited again.
	MarkFailed(ctx context.Context, ownerID, localID, syncErr string) error

	// DeleteLocal removes a record and its exercises.
	DeleteLocal(ctx context.Context, ownerID, localID string) error

	// SaveExercises replaces the exercise list of a custom workout.
	SaveExercises(ctx context.Context, ownerID, workoutLocalID string, exercises []models.Exercise) error

	// ListExercises returns the exercises of a custom workout ordered by
	// their order index.
	ListExercises(ctx context.Context, ownerID, workoutLocalID string) ([]models.Exercise, error)

	// PurgeOwner deletes every record and exercise of the owner.
	PurgeOwner(ctx context.Context, ownerID string) error
}

// SessionStore persists the single sign-in session of the device.
type SessionStore interface {
	SaveSession(ctx context.Context, session models.Session) error
	// GetSession returns the stored session or [ErrSessionNotFound].
	GetSession(ctx context.Context) (models.Session, error)
	DeleteSession(ctx context.Context) error
}
