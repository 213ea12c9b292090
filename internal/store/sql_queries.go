package store

import (
	"encoding/json"
	"time"

	sq "github.com/Masterminds/squirrel"

	"github.com/ST10257746/prog7314-part1-sub000/models"
)

const (
	recordsTable   = "records"
	exercisesTable = "exercises"
	sessionsTable  = "sessions"

	// sessionRowID is the fixed primary key of the single session row.
	sessionRowID = 1
)

// psql is the statement builder for SQLite placeholders.
var psql = sq.StatementBuilder.PlaceholderFormat(sq.Question)

var recordColumns = []string{
	"local_id",
	"remote_id",
	"owner_id",
	"entity_type",
	"sync_status",
	"payload",
	"version",
	"sync_attempts",
	"last_sync_error",
	"created_at",
	"updated_at",
	"synced_at",
}

var exerciseColumns = []string{
	"id",
	"workout_local_id",
	"owner_id",
	"name",
	"description",
	"muscle_group",
	"order_index",
	"sets",
	"reps",
	"duration_seconds",
	"rest_seconds",
	"video_url",
	"image_url",
}

func buildInsertRecordQuery(rec models.Record) (string, []any, error) {
	return psql.Insert(recordsTable).
		Columns(recordColumns...).
		Values(
			rec.LocalID,
			rec.RemoteID,
			rec.OwnerID,
			string(rec.EntityType),
			string(rec.Status),
			string(rec.Payload),
			rec.Version,
			rec.SyncAttempts,
			rec.LastSyncError,
			rec.CreatedAt,
			rec.UpdatedAt,
			rec.SyncedAt,
		).
		ToSql()
}

func buildGetRecordQuery(ownerID, localID string) (string, []any, error) {
	return psql.Select(recordColumns...).
		From(recordsTable).
		Where(sq.Eq{"owner_id": ownerID}).
		Where(sq.Eq{"local_id": localID}).
		ToSql()
}

// buildListRecordsQuery selects the owner's records. An empty entity selects
// every type; a non-empty status narrows the result to that sync status.
func buildListRecordsQuery(ownerID string, entity models.EntityType, status models.SyncStatus) (string, []any, error) {
	q := psql.Select(recordColumns...).
		From(recordsTable).
		Where(sq.Eq{"owner_id": ownerID})

	if entity != "" {
		q = q.Where(sq.Eq{"entity_type": string(entity)})
	}
	if status != "" {
		q = q.Where(sq.Eq{"sync_status": string(status)})
	}

	return q.OrderBy("created_at ASC", "local_id ASC").ToSql()
}

func buildUpdatePayloadQuery(ownerID, localID string, payload json.RawMessage, now time.Time) (string, []any, error) {
	return psql.Update(recordsTable).
		Set("payload", string(payload)).
		Set("sync_status", string(models.SyncPending)).
		Set("version", sq.Expr("version + 1")).
		Set("sync_attempts", 0).
		Set("last_sync_error", "").
		Set("updated_at", now).
		Where(sq.Eq{"owner_id": ownerID}).
		Where(sq.Eq{"local_id": localID}).
		ToSql()
}

// buildMarkSyncedQuery flips a record to synced only when its version is
// unchanged since it was read.
func buildMarkSyncedQuery(rec models.Record, remoteID string, now time.Time) (string, []any, error) {
	return psql.Update(recordsTable).
		Set("remote_id", remoteID).
		Set("sync_status", string(models.SyncSynced)).
		Set("sync_attempts", 0).
		Set("last_sync_error", "").
		Set("synced_at", now).
		Where(sq.Eq{"owner_id": rec.OwnerID}).
		Where(sq.Eq{"local_id": rec.LocalID}).
		Where(sq.Eq{"version": rec.Version}).
		ToSql()
}

// buildAttachRemoteIDQuery stores the remote id without touching the sync
// status. Used when the record was edited while its push was in flight.
func buildAttachRemoteIDQuery(ownerID, localID, remoteID string) (string, []any, error) {
	return psql.Update(recordsTable).
		Set("remote_id", remoteID).
		Where(sq.Eq{"owner_id": ownerID}).
		Where(sq.Eq{"local_id": localID}).
		ToSql()
}

func buildRecordSyncFailureQuery(ownerID, localID, syncErr string) (string, []any, error) {
	return psql.Update(recordsTable).
		Set("sync_attempts", sq.Expr("sync_attempts + 1")).
		Set("last_sync_error", syncErr).
		Where(sq.Eq{"owner_id": ownerID}).
		Where(sq.Eq{"local_id": localID}).
		ToSql()
}

func buildMarkFailedQuery(ownerID, localID, syncErr string) (string, []any, error) {
	return psql.Update(recordsTable).
		Set("sync_status", string(models.SyncFailed)).
		Set("sync_attempts", sq.Expr("sync_attempts + 1")).
		Set("last_sync_error", syncErr).
		Where(sq.Eq{"owner_id": ownerID}).
		Where(sq.Eq{"local_id": localID}).
		ToSql()
}

func buildDeleteRecordQuery(ownerID, localID string) (string, []any, error) {
	return psql.Delete(recordsTable).
		Where(sq.Eq{"owner_id": ownerID}).
		Where(sq.Eq{"local_id": localID}).
		ToSql()
}

func buildDeleteExercisesQuery(ownerID, workoutLocalID string) (string, []any, error) {
	return psql.Delete(exercisesTable).
		Where(sq.Eq{"owner_id": ownerID}).
		Where(sq.Eq{"workout_local_id": workoutLocalID}).
		ToSql()
}

func buildInsertExerciseQuery(ownerID string, ex models.Exercise) (string, []any, error) {
	return psql.Insert(exercisesTable).
		Columns(exerciseColumns...).
		Values(
			ex.ID,
			ex.WorkoutLocalID,
			ownerID,
			ex.Name,
			ex.Description,
			ex.MuscleGroup,
			ex.OrderIndex,
			ex.Sets,
			ex.Reps,
			ex.DurationSeconds,
			ex.RestSeconds,
			ex.VideoURL,
			ex.ImageURL,
		).
		ToSql()
}

func buildListExercisesQuery(ownerID, workoutLocalID string) (string, []any, error) {
	return psql.Select(exerciseColumns...).
		From(exercisesTable).
		Where(sq.Eq{"owner_id": ownerID}).
		Where(sq.Eq{"workout_local_id": workoutLocalID}).
		OrderBy("order_index ASC").
		ToSql()
}

func buildPurgeExercisesQuery(ownerID string) (string, []any, error) {
	return psql.Delete(exercisesTable).Where(sq.Eq{"owner_id": ownerID}).ToSql()
}

func buildPurgeRecordsQuery(ownerID string) (string, []any, error) {
	return psql.Delete(recordsTable).Where(sq.Eq{"owner_id": ownerID}).ToSql()
}

func buildUpsertSessionQuery(s models.Session) (string, []any, error) {
	return psql.Insert(sessionsTable).
		Columns("id", "owner_id", "refresh_token", "id_token", "expiry", "updated_at").
		Values(sessionRowID, s.OwnerID, s.RefreshToken, s.IDToken, nullTime(s.Expiry), s.UpdatedAt).
		Suffix("ON CONFLICT (id) DO UPDATE SET " +
			"owner_id = excluded.owner_id, " +
			"refresh_token = excluded.refresh_token, " +
			"id_token = excluded.id_token, " +
			"expiry = excluded.expiry, " +
			"updated_at = excluded.updated_at").
		ToSql()
}

func buildGetSessionQuery() (string, []any, error) {
	return psql.Select("owner_id", "refresh_token", "id_token", "expiry", "updated_at").
		From(sessionsTable).
		Where(sq.Eq{"id": sessionRowID}).
		ToSql()
}

func buildDeleteSessionQuery() (string, []any, error) {
	return psql.Delete(sessionsTable).Where(sq.Eq{"id": sessionRowID}).ToSql()
}

// nullTime maps the zero time to SQL NULL.
func nullTime(t time.Time) any {
	if t.IsZero() {
		return nil
	}
	return t
}
