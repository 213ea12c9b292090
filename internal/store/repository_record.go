// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/ST10257746/prog7314-part1-sub000/internal/logger"
	"github.com/ST10257746/prog7314-part1-sub000/models"
)

// recordRepository is the SQLite-backed implementation of [RecordStore].
type recordRepository struct {
	*DB
	logger *logger.Logger
	now    func() time.Time
}

// NewRecordRepository constructs a [RecordStore] on top of db.
func NewRecordRepository(db *DB, logger *logger.Logger) RecordStore {
	return &recordRepository{
		DB:     db,
		logger: logger,
		now:    func() time.Time { return time.Now().UTC() },
	}
}

// rowScanner is satisfied by both *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanRecord(s rowScanner) (models.Record, error) {
	var (
		rec      models.Record
		remoteID sql.NullString
		entity   string
		status   string
		payload  string
		syncedAt sql.NullTime
	)

	err := s.Scan(
		&rec.LocalID,
		&remoteID,
		&rec.OwnerID,
		&entity,
		&status,
		&payload,
		&rec.Version,
		&rec.SyncAttempts,
		&rec.LastSyncError,
		&rec.CreatedAt,
		&rec.UpdatedAt,
		&syncedAt,
	)
	if err != nil {
		return models.Record{}, err
	}

	if remoteID.Valid {
		rec.RemoteID = &remoteID.String
	}
	if syncedAt.Valid {
		rec.SyncedAt = &syncedAt.Time
	}
	rec.EntityType = models.EntityType(entity)
	rec.Status = models.SyncStatus(status)
	rec.Payload = json.RawMessage(payload)

	return rec, nil
}

func (r *recordRepository) Save(ctx context.Context, rec models.Record) error {
	log := logger.FromContext(ctx)

	if rec.OwnerID == "" {
		return ErrOwnerRequired
	}

	now := r.now()
	if rec.Status == "" {
		rec.Status = models.SyncPending
	}
	if rec.Version == 0 {
		rec.Version = 1
	}
	if rec.CreatedAt.IsZero() {
		rec.CreatedAt = now
	}
	if rec.UpdatedAt.IsZero() {
		rec.UpdatedAt = rec.CreatedAt
	}

	query, args, err := buildInsertRecordQuery(rec)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	if _, err = r.DB.ExecContext(ctx, query, args...); err != nil {
		if isUniqueViolation(err) {
			return ErrRecordAlreadyExists
		}
		log.Err(err).
			Str("func", "recordRepository.Save").
			Str("local_id", rec.LocalID).
			Str("entity_type", rec.EntityType.String()).
			Msg("failed to insert record")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	return nil
}

func (r *recordRepository) Get(ctx context.Context, ownerID, localID string) (models.Record, error) {
	query, args, err := buildGetRecordQuery(ownerID, localID)
	if err != nil {
		return models.Record{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	rec, err := scanRecord(r.DB.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return models.Record{}, ErrRecordNotFound
	}
	if err != nil {
		logger.FromContext(ctx).Err(err).
			Str("func", "recordRepository.Get").
			Str("local_id", localID).
			Msg("failed to scan record row")
		return models.Record{}, fmt.Errorf("%w: %w", ErrScanningRow, err)
	}

	return rec, nil
}

func (r *recordRepository) List(ctx context.Context, ownerID string, entity models.EntityType) ([]models.Record, error) {
	return r.list(ctx, ownerID, entity, "")
}

func (r *recordRepository) ListPending(ctx context.Context, ownerID string, entity models.EntityType) ([]models.Record, error) {
	return r.list(ctx, ownerID, entity, models.SyncPending)
}

func (r *recordRepository) list(ctx context.Context, ownerID string, entity models.EntityType, status models.SyncStatus) ([]models.Record, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildListRecordsQuery(ownerID, entity, status)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		log.Err(err).
			Str("func", "recordRepository.list").
			Str("entity_type", entity.String()).
			Msg("failed to execute query for listing records")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	records := make([]models.Record, 0)
	for rows.Next() {
		rec, scanErr := scanRecord(rows)
		if scanErr != nil {
			log.Err(scanErr).
				Str("func", "recordRepository.list").
				Msg("failed to scan record row")
			return nil, fmt.Errorf("%w: %w", ErrScanningRow, scanErr)
		}
		records = append(records, rec)
	}

	if rowsErr := rows.Err(); rowsErr != nil {
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, rowsErr)
	}

	return records, nil
}

func (r *recordRepository) UpdatePayload(ctx context.Context, ownerID, localID string, payload json.RawMessage) (models.Record, error) {
	query, args, err := buildUpdatePayloadQuery(ownerID, localID, payload, r.now())
	if err != nil {
		return models.Record{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	if err = r.execAffectingOne(ctx, "recordRepository.UpdatePayload", query, args); err != nil {
		return models.Record{}, err
	}

	return r.Get(ctx, ownerID, localID)
}

func (r *recordRepository) MarkSynced(ctx context.Context, rec models.Record, remoteID string) error {
	log := logger.FromContext(ctx)

	query, args, err := buildMarkSyncedQuery(rec, remoteID, r.now())
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	res, err := r.DB.ExecContext(ctx, query, args...)
	if err != nil {
		log.Err(err).
			Str("func", "recordRepository.MarkSynced").
			Str("local_id", rec.LocalID).
			Msg("failed to mark record as synced")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	if n, _ := res.RowsAffected(); n > 0 {
		return nil
	}

	// either the record is gone or its version moved on
	query, args, err = buildAttachRemoteIDQuery(rec.OwnerID, rec.LocalID, remoteID)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}
	if err = r.execAffectingOne(ctx, "recordRepository.MarkSynced", query, args); err != nil {
		return err
	}

	log.Debug().
		Str("func", "recordRepository.MarkSynced").
		Str("local_id", rec.LocalID).
		Int64("version", rec.Version).
		Msg("record changed while pushing, kept pending")
	return ErrRecordChanged
}

func (r *recordRepository) RecordSyncFailure(ctx context.Context, ownerID, localID, syncErr string) error {
	query, args, err := buildRecordSyncFailureQuery(ownerID, localID, syncErr)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}
	return r.execAffectingOne(ctx, "recordRepository.RecordSyncFailure", query, args)
}

func (r *recordRepository) MarkFailed(ctx context.Context, ownerID, localID, syncErr string) error {
	query, args, err := buildMarkFailedQuery(ownerID, localID, syncErr)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}
	return r.execAffectingOne(ctx, "recordRepository.MarkFailed", query, args)
}

func (r *recordRepository) DeleteLocal(ctx context.Context, ownerID, localID string) error {
	exQuery, exArgs, err := buildDeleteExercisesQuery(ownerID, localID)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}
	recQuery, recArgs, err := buildDeleteRecordQuery(ownerID, localID)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	return r.inTx(ctx, "recordRepository.DeleteLocal", func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, exQuery, exArgs...); err != nil {
			return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
		}
		res, err := tx.ExecContext(ctx, recQuery, recArgs...)
		if err != nil {
			return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
		}
		if n, _ := res.RowsAffected(); n == 0 {
			return ErrRecordNotFound
		}
		return nil
	})
}

func (r *recordRepository) SaveExercises(ctx context.Context, ownerID, workoutLocalID string, exercises []models.Exercise) error {
	delQuery, delArgs, err := buildDeleteExercisesQuery(ownerID, workoutLocalID)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	return r.inTx(ctx, "recordRepository.SaveExercises", func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, delQuery, delArgs...); err != nil {
			return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
		}

		for i, ex := range exercises {
			ex.WorkoutLocalID = workoutLocalID
			if ex.ID == "" {
				ex.ID = fmt.Sprintf("%s-%d", workoutLocalID, i)
			}
			query, args, err := buildInsertExerciseQuery(ownerID, ex)
			if err != nil {
				return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
			}
			if _, err = tx.ExecContext(ctx, query, args...); err != nil {
				return fmt.Errorf("%w: exercise %d: %w", ErrExecutingStatement, i, err)
			}
		}
		return nil
	})
}

func (r *recordRepository) ListExercises(ctx context.Context, ownerID, workoutLocalID string) ([]models.Exercise, error) {
	query, args, err := buildListExercisesQuery(ownerID, workoutLocalID)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	exercises := make([]models.Exercise, 0)
	for rows.Next() {
		var (
			ex          models.Exercise
			owner       string
			sets, reps  sql.NullInt64
			durationSec sql.NullInt64
		)
		if err = rows.Scan(
			&ex.ID,
			&ex.WorkoutLocalID,
			&owner,
			&ex.Name,
			&ex.Description,
			&ex.MuscleGroup,
			&ex.OrderIndex,
			&sets,
			&reps,
			&durationSec,
			&ex.RestSeconds,
			&ex.VideoURL,
			&ex.ImageURL,
		); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrScanningRow, err)
		}
		ex.Sets = nullIntPtr(sets)
		ex.Reps = nullIntPtr(reps)
		ex.DurationSeconds = nullIntPtr(durationSec)
		exercises = append(exercises, ex)
	}

	if rowsErr := rows.Err(); rowsErr != nil {
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, rowsErr)
	}

	return exercises, nil
}

func (r *recordRepository) PurgeOwner(ctx context.Context, ownerID string) error {
	if ownerID == "" {
		return ErrOwnerRequired
	}

	exQuery, exArgs, err := buildPurgeExercisesQuery(ownerID)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}
	recQuery, recArgs, err := buildPurgeRecordsQuery(ownerID)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	return r.inTx(ctx, "recordRepository.PurgeOwner", func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, exQuery, exArgs...); err != nil {
			return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
		}
		if _, err := tx.ExecContext(ctx, recQuery, recArgs...); err != nil {
			return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
		}
		return nil
	})
}

// execAffectingOne executes an UPDATE and maps zero affected rows to
// [ErrRecordNotFound].
func (r *recordRepository) execAffectingOne(ctx context.Context, fn, query string, args []any) error {
	res, err := r.DB.ExecContext(ctx, query, args...)
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("func", fn).Msg("failed to execute statement")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}
	if n == 0 {
		return ErrRecordNotFound
	}

	return nil
}

func (r *recordRepository) inTx(ctx context.Context, fn string, do func(tx *sql.Tx) error) error {
	log := logger.FromContext(ctx)

	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		log.Err(err).Str("func", fn).Msg("failed to begin transaction")
		return fmt.Errorf("%w: %w", ErrBeginningTransaction, err)
	}
	defer tx.Rollback() //nolint:errcheck

	if err = do(tx); err != nil {
		if !errors.Is(err, ErrRecordNotFound) {
			log.Err(err).Str("func", fn).Msg("transaction aborted")
		}
		return err
	}

	if err = tx.Commit(); err != nil {
		log.Err(err).Str("func", fn).Msg("failed to commit transaction")
		return fmt.Errorf("%w: %w", ErrCommitingTransaction, err)
	}

	return nil
}

func nullIntPtr(v sql.NullInt64) *int {
	if !v.Valid {
		return nil
	}
	i := int(v.Int64)
	return &i
}
