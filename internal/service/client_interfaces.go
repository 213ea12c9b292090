package service

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/ST10257746/prog7314-part1-sub000/models"
)

// SyncOrchestrator pushes the pending records of the signed-in owner to the
// remote store.
type SyncOrchestrator interface {
	// RunSync performs one sync run. It walks the entity types in their fixed
	// order and pushes every pending record sequentially. Failures of single
	// records are counted in the report and leave the record pending. A
	// failure of the local store aborts the run with [models.RunShouldRetry].
	RunSync(ctx context.Context) models.RunReport
}

// JobState is the scheduling state of a [SyncJob].
type JobState string

const (
	JobIdle    JobState = "idle"
	JobRunning JobState = "running"
)

// SyncTrigger asks for a sync run without waiting for it.
type SyncTrigger interface {
	TriggerNow()
}

// SyncJob schedules sync runs. A run starts on a reachability event of the
// connectivity monitor, on every tick of the sync interval and on
// [SyncTrigger.TriggerNow]. Triggers that arrive while a run is in flight
// join that run.
type SyncJob interface {
	SyncTrigger

	// Start launches the scheduling goroutine. Any previously started job is
	// stopped first.
	Start(ctx context.Context)

	// Stop cancels the scheduling goroutine and blocks until it and the run in
	// flight, if any, have returned. Safe to call on a job that is not
	// started.
	Stop()

	// RunNow starts a run, or joins the one in flight, and waits for its
	// report.
	RunNow(ctx context.Context) models.RunReport

	// State reports whether a run is in flight.
	State() JobState

	// LastReport returns the report of the most recent finished run and false
	// when no run has finished yet.
	LastReport() (models.RunReport, bool)
}

// RecordService is the interactive path of the client. Every write succeeds
// as soon as the local store accepted it; pushing to the remote store is left
// to the sync job.
type RecordService interface {
	// Create stores payload as a new pending record of entity for the
	// signed-in owner.
	Create(ctx context.Context, entity models.EntityType, payload any) (models.Record, error)

	// CreateCustomWorkout stores a custom workout together with its exercises.
	// The position of an exercise in the slice is its order in the workout.
	CreateCustomWorkout(ctx context.Context, workout models.CustomWorkoutPayload, exercises []models.Exercise) (models.Record, error)

	// Update replaces the payload of a record and puts it back into the
	// pending state.
	Update(ctx context.Context, localID string, payload any) (models.Record, error)

	// UpdateExercises replaces the exercises of a custom workout and puts the
	// workout back into the pending state.
	UpdateExercises(ctx context.Context, localID string, exercises []models.Exercise) (models.Record, error)

	// Delete removes a record locally. Records already known to the remote
	// store are deleted there on a best-effort basis in the background.
	Delete(ctx context.Context, localID string) error

	// Get returns one record of the signed-in owner.
	Get(ctx context.Context, localID string) (models.Record, error)

	// List returns the records of entity, or of every type when entity is
	// empty.
	List(ctx context.Context, entity models.EntityType) ([]models.Record, error)

	// Logout purges every local record of the signed-in owner and clears
	// the session.
	Logout(ctx context.Context) error

	// Wait blocks until background remote deletes have returned.
	Wait()
}

// SessionCloser ends the sign-in session of the device.
type SessionCloser interface {
	SignOut(ctx context.Context) error
}

// marshalPayload accepts a payload struct or a document already in wire form.
func marshalPayload(payload any) (json.RawMessage, error) {
	var raw []byte
	switch p := payload.(type) {
	case nil:
		return nil, ErrEmptyPayload
	case json.RawMessage:
		raw = p
	case []byte:
		raw = p
	default:
		b, err := json.Marshal(payload)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrInvalidPayload, err)
		}
		raw = b
	}

	if len(raw) == 0 {
		return nil, ErrEmptyPayload
	}
	if !json.Valid(raw) {
		return nil, ErrInvalidPayload
	}
	return json.RawMessage(raw), nil
}
