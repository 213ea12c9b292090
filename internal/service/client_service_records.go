package service

import (
	"context"
	"encoding/json"
	"fmt"
	"slices"
	"sync"
	"time"

	"github.com/ST10257746/prog7314-part1-sub000/internal/entity"
	"github.com/ST10257746/prog7314-part1-sub000/internal/identity"
	"github.com/ST10257746/prog7314-part1-sub000/internal/logger"
	"github.com/ST10257746/prog7314-part1-sub000/internal/store"
	"github.com/ST10257746/prog7314-part1-sub000/internal/utils"
	"github.com/ST10257746/prog7314-part1-sub000/models"
)

// remoteDeleteTimeout bounds a background remote delete.
const remoteDeleteTimeout = time.Minute

type recordService struct {
	records  store.RecordStore
	owners   identity.OwnerResolver
	registry *entity.Registry
	sessions SessionCloser

	// trigger is nudged after every write; nil disables nudging
	trigger SyncTrigger

	ids *utils.UUIDGenerator
	now func() time.Time

	deletes sync.WaitGroup

	logger *logger.Logger
}

// NewRecordService creates the interactive record service. trigger may be
// nil, in which case writes are only picked up by scheduled runs.
func NewRecordService(records store.RecordStore, owners identity.OwnerResolver, registry *entity.Registry, sessions SessionCloser, trigger SyncTrigger, logger *logger.Logger) RecordService {
	return &recordService{
		records:  records,
		owners:   owners,
		registry: registry,
		sessions: sessions,
		trigger:  trigger,
		ids:      utils.NewUUIDGenerator(),
		now:      func() time.Time { return time.Now().UTC() },
		logger:   logger,
	}
}

func (s *recordService) Create(ctx context.Context, e models.EntityType, payload any) (models.Record, error) {
	if e == models.EntityCustomWorkout {
		if w, ok := payload.(models.CustomWorkoutPayload); ok {
			return s.CreateCustomWorkout(ctx, w, w.Exercises)
		}
	}

	ownerID, err := s.owner(ctx)
	if err != nil {
		return models.Record{}, err
	}
	if !e.Valid() {
		return models.Record{}, fmt.Errorf("%w: %q", ErrUnknownEntity, e)
	}

	raw, err := marshalPayload(payload)
	if err != nil {
		return models.Record{}, err
	}

	rec := s.newRecord(ownerID, e, raw)
	if err = s.records.Save(ctx, rec); err != nil {
		return models.Record{}, fmt.Errorf("error saving %s record: %w", e, err)
	}

	s.logger.Debug().Str("entity", e.String()).Str("local_id", rec.LocalID).Msg("record created")
	s.nudge()
	return rec, nil
}

func (s *recordService) CreateCustomWorkout(ctx context.Context, workout models.CustomWorkoutPayload, exercises []models.Exercise) (models.Record, error) {
	ownerID, err := s.owner(ctx)
	if err != nil {
		return models.Record{}, err
	}

	raw, err := customWorkoutPayload(workout, len(exercises))
	if err != nil {
		return models.Record{}, err
	}

	rec := s.newRecord(ownerID, models.EntityCustomWorkout, raw)
	if err = s.records.Save(ctx, rec); err != nil {
		return models.Record{}, fmt.Errorf("error saving custom workout record: %w", err)
	}

	if len(exercises) > 0 {
		if rec, err = s.writeExercises(ctx, rec, exercises); err != nil {
			if delErr := s.records.DeleteLocal(ctx, ownerID, rec.LocalID); delErr != nil {
				s.logger.Err(delErr).Str("local_id", rec.LocalID).Msg("error removing custom workout without exercises")
			}
			return models.Record{}, err
		}
	}

	s.logger.Debug().Str("local_id", rec.LocalID).Int("exercises", len(exercises)).Msg("custom workout created")
	s.nudge()
	return rec, nil
}

func (s *recordService) Update(ctx context.Context, localID string, payload any) (models.Record, error) {
	ownerID, err := s.owner(ctx)
	if err != nil {
		return models.Record{}, err
	}

	current, err := s.records.Get(ctx, ownerID, localID)
	if err != nil {
		return models.Record{}, fmt.Errorf("error loading record %s: %w", localID, err)
	}

	var raw json.RawMessage
	if w, ok := payload.(models.CustomWorkoutPayload); ok && current.EntityType == models.EntityCustomWorkout {
		exercises, listErr := s.records.ListExercises(ctx, ownerID, localID)
		if listErr != nil {
			return models.Record{}, fmt.Errorf("error loading exercises of %s: %w", localID, listErr)
		}
		raw, err = customWorkoutPayload(w, len(exercises))
	} else {
		raw, err = marshalPayload(payload)
	}
	if err != nil {
		return models.Record{}, err
	}

	rec, err := s.records.UpdatePayload(ctx, ownerID, localID, raw)
	if err != nil {
		return models.Record{}, fmt.Errorf("error updating record %s: %w", localID, err)
	}

	s.logger.Debug().Str("entity", rec.EntityType.String()).Str("local_id", localID).Int64("version", rec.Version).Msg("record updated")
	s.nudge()
	return rec, nil
}

func (s *recordService) UpdateExercises(ctx context.Context, localID string, exercises []models.Exercise) (models.Record, error) {
	ownerID, err := s.owner(ctx)
	if err != nil {
		return models.Record{}, err
	}

	rec, err := s.records.Get(ctx, ownerID, localID)
	if err != nil {
		return models.Record{}, fmt.Errorf("error loading record %s: %w", localID, err)
	}
	if rec.EntityType != models.EntityCustomWorkout {
		return models.Record{}, fmt.Errorf("%w: %s is %s", ErrNotCustomWorkout, localID, rec.EntityType)
	}

	var workout models.CustomWorkoutPayload
	if err = rec.DecodePayload(&workout); err != nil {
		return models.Record{}, fmt.Errorf("%w: %w", ErrInvalidPayload, err)
	}
	if rec.Payload, err = customWorkoutPayload(workout, len(exercises)); err != nil {
		return models.Record{}, err
	}

	if rec, err = s.writeExercises(ctx, rec, exercises); err != nil {
		return models.Record{}, err
	}

	s.nudge()
	return rec, nil
}

// writeExercises replaces the exercises of a custom workout and rewrites its
// payload. Slice position defines the stored order; the caller's slice is
// left untouched. The version bump keeps a push that raced with the exercise
// write from marking the workout synced.
func (s *recordService) writeExercises(ctx context.Context, rec models.Record, exercises []models.Exercise) (models.Record, error) {
	ordered := slices.Clone(exercises)
	for i := range ordered {
		ordered[i].OrderIndex = i
	}
	if err := s.records.SaveExercises(ctx, rec.OwnerID, rec.LocalID, ordered); err != nil {
		return rec, fmt.Errorf("error saving exercises of %s: %w", rec.LocalID, err)
	}

	updated, err := s.records.UpdatePayload(ctx, rec.OwnerID, rec.LocalID, rec.Payload)
	if err != nil {
		return rec, fmt.Errorf("error updating record %s: %w", rec.LocalID, err)
	}
	return updated, nil
}

func (s *recordService) Delete(ctx context.Context, localID string) error {
	ownerID, err := s.owner(ctx)
	if err != nil {
		return err
	}

	rec, err := s.records.Get(ctx, ownerID, localID)
	if err != nil {
		return fmt.Errorf("error loading record %s: %w", localID, err)
	}

	if err = s.records.DeleteLocal(ctx, ownerID, localID); err != nil {
		return fmt.Errorf("error deleting record %s: %w", localID, err)
	}

	if rec.HasRemote() {
		s.deleteRemote(context.WithoutCancel(ctx), rec)
	}
	return nil
}

// deleteRemote removes the remote document of rec in the background. A
// failure is logged only; the local record is already gone.
func (s *recordService) deleteRemote(ctx context.Context, rec models.Record) {
	adp, err := s.registry.Adapter(rec.EntityType)
	if err != nil {
		s.logger.Err(err).Str("local_id", rec.LocalID).Msg("no adapter for remote delete")
		return
	}

	s.deletes.Add(1)
	go func() {
		defer s.deletes.Done()

		ctx, cancel := context.WithTimeout(ctx, remoteDeleteTimeout)
		defer cancel()

		log := s.logger.With().
			Str("entity", rec.EntityType.String()).
			Str("local_id", rec.LocalID).
			Str("remote_id", *rec.RemoteID).
			Logger()

		if err := adp.Delete(ctx, rec); err != nil {
			log.Warn().Err(err).Msg("remote delete failed")
			return
		}
		log.Debug().Msg("remote document deleted")
	}()
}

// Wait blocks until background remote deletes have returned.
func (s *recordService) Wait() {
	s.deletes.Wait()
}

func (s *recordService) Get(ctx context.Context, localID string) (models.Record, error) {
	ownerID, err := s.owner(ctx)
	if err != nil {
		return models.Record{}, err
	}
	return s.records.Get(ctx, ownerID, localID)
}

func (s *recordService) List(ctx context.Context, e models.EntityType) ([]models.Record, error) {
	ownerID, err := s.owner(ctx)
	if err != nil {
		return nil, err
	}
	if e != "" && !e.Valid() {
		return nil, fmt.Errorf("%w: %q", ErrUnknownEntity, e)
	}
	return s.records.List(ctx, ownerID, e)
}

func (s *recordService) Logout(ctx context.Context) error {
	if ownerID, ok := s.owners.CurrentOwner(ctx); ok {
		if err := s.records.PurgeOwner(ctx, ownerID); err != nil {
			return fmt.Errorf("error purging local records: %w", err)
		}
		s.logger.Info().Str("owner_id", ownerID).Msg("local records purged")
	}

	if err := s.sessions.SignOut(ctx); err != nil {
		return fmt.Errorf("error signing out: %w", err)
	}
	return nil
}

func (s *recordService) owner(ctx context.Context) (string, error) {
	ownerID, ok := s.owners.CurrentOwner(ctx)
	if !ok {
		return "", ErrNoOwner
	}
	return ownerID, nil
}

func (s *recordService) newRecord(ownerID string, e models.EntityType, payload json.RawMessage) models.Record {
	now := s.now()
	return models.Record{
		LocalID:    s.ids.Generate(),
		OwnerID:    ownerID,
		EntityType: e,
		Status:     models.SyncPending,
		Payload:    payload,
		Version:    1,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
}

func (s *recordService) nudge() {
	if s.trigger != nil {
		s.trigger.TriggerNow()
	}
}

// customWorkoutPayload stores the workout without its exercises; they live
// in the exercise table and are embedded on push.
func customWorkoutPayload(w models.CustomWorkoutPayload, exerciseCount int) (json.RawMessage, error) {
	w.Exercises = nil
	w.IsCustom = true
	w.ExerciseCount = exerciseCount
	return marshalPayload(w)
}
