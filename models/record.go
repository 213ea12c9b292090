// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import (
	"encoding/json"
	"time"
)

// SyncStatus is the per-record synchronization marker kept in the local store.
type SyncStatus string

const (
	// SyncPending marks a record that has not been acknowledged by the remote
	// store since its last local change.
	SyncPending SyncStatus = "pending"

	// SyncSynced marks a record whose latest local state has been accepted by
	// the remote store. RemoteID is always set in this state.
	SyncSynced SyncStatus = "synced"

	// SyncFailed marks a record the remote store rejected and that was taken
	// out of the pending queue. Only used when quarantine is enabled.
	SyncFailed SyncStatus = "failed"
)

// Record is a single syncable row of the local record store.
//
// LocalID is generated on the device and never changes. RemoteID is nil until
// the first successful push. Payload holds the entity-specific document in
// its wire form (see the *Payload types of this package).
type Record struct {
	LocalID    string          `json:"local_id"`
	RemoteID   *string         `json:"remote_id,omitempty"`
	OwnerID    string          `json:"owner_id"`
	EntityType EntityType      `json:"entity_type"`
	Status     SyncStatus      `json:"sync_status"`
	Payload    json.RawMessage `json:"payload"`

	// Version is incremented on every local change. MarkSynced uses it to
	// detect an edit that happened while the push was in flight.
	Version int64 `json:"version"`

	// SyncAttempts counts failed push attempts since the last local change.
	SyncAttempts int `json:"sync_attempts"`
	// LastSyncError holds the message of the most recent failed push.
	LastSyncError string `json:"last_sync_error,omitempty"`

	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
	SyncedAt  *time.Time `json:"synced_at,omitempty"`
}

// HasRemote reports whether the record already has a remote identity.
func (r Record) HasRemote() bool {
	return r.RemoteID != nil && *r.RemoteID != ""
}

// IsPending reports whether the record still waits for a remote
// acknowledgment.
func (r Record) IsPending() bool {
	return r.Status == SyncPending
}

// DecodePayload unmarshals the record payload into dst.
func (r Record) DecodePayload(dst any) error {
	return json.Unmarshal(r.Payload, dst)
}

// Exercise is a child row of a custom workout. Exercises are stored in a
// separate table keyed by the workout LocalID and are embedded into the
// custom workout document on push.
type Exercise struct {
	ID              string `json:"-"`
	WorkoutLocalID  string `json:"-"`
	Name            string `json:"name"`
	Description     string `json:"description"`
	MuscleGroup     string `json:"muscleGroup"`
	OrderIndex      int    `json:"orderIndex"`
	Sets            *int   `json:"sets"`
	Reps            *int   `json:"reps"`
	DurationSeconds *int   `json:"durationSeconds"`
	RestSeconds     int    `json:"restSeconds"`
	VideoURL        string `json:"videoUrl,omitempty"`
	ImageURL        string `json:"imageUrl,omitempty"`
}
