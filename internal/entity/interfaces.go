// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package entity maps local records of each entity type onto the remote
// store API.
//
// There is one [Adapter] per [models.EntityType]. Adapters serialise the
// record payload into its wire form, pick create or update based on the
// presence of a remote id and report the remote id back. They never write to
// the local store; recording the outcome is the job of the sync run.
package entity

import (
	"context"

	"github.com/ST10257746/prog7314-part1-sub000/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/entity_mock.go -package=mock

// Adapter pushes records of a single entity type.
type Adapter interface {
	// Entity returns the entity type handled by the adapter.
	Entity() models.EntityType

	// Push creates or updates the remote document of rec and returns its
	// remote id. A create carries rec.LocalID as clientId so that repeating
	// it after a lost reply does not duplicate the document.
	Push(ctx context.Context, rec models.Record) (string, error)

	// Delete removes the remote document of rec. Records without a remote id
	// and documents already gone are treated as deleted.
	Delete(ctx context.Context, rec models.Record) error
}

// ExerciseReader reads the exercise rows of a custom workout.
type ExerciseReader interface {
	ListExercises(ctx context.Context, ownerID, workoutLocalID string) ([]models.Exercise, error)
}
