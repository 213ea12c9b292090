package store

import (
	"context"
	"encoding/json"
	"fmt"
	"slices"
	"sort"
	"sync"
	"time"

	"github.com/ST10257746/prog7314-part1-sub000/models"
)

// MemoryStore is a process-local implementation of [RecordStore] and
// [SessionStore]. It has the same semantics as the SQLite store and is safe
// for concurrent use.
type MemoryStore struct {
	mu        sync.RWMutex
	records   map[string]models.Record
	exercises map[string][]models.Exercise
	session   *models.Session
	now       func() time.Time
}

// NewMemoryStore returns an empty [MemoryStore].
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		records:   make(map[string]models.Record),
		exercises: make(map[string][]models.Exercise),
		now:       func() time.Time { return time.Now().UTC() },
	}
}

func (s *MemoryStore) Save(_ context.Context, rec models.Record) error {
	if rec.OwnerID == "" {
		return ErrOwnerRequired
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.records[rec.LocalID]; ok {
		return ErrRecordAlreadyExists
	}

	now := s.now()
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

	s.records[rec.LocalID] = cloneRecord(rec)
	return nil
}

func (s *MemoryStore) Get(_ context.Context, ownerID, localID string) (models.Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rec, ok := s.lookup(ownerID, localID)
	if !ok {
		return models.Record{}, ErrRecordNotFound
	}
	return cloneRecord(rec), nil
}

func (s *MemoryStore) List(_ context.Context, ownerID string, entity models.EntityType) ([]models.Record, error) {
	return s.list(ownerID, entity, ""), nil
}

func (s *MemoryStore) ListPending(_ context.Context, ownerID string, entity models.EntityType) ([]models.Record, error) {
	return s.list(ownerID, entity, models.SyncPending), nil
}

func (s *MemoryStore) list(ownerID string, entity models.EntityType, status models.SyncStatus) []models.Record {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]models.Record, 0)
	for _, rec := range s.records {
		if rec.OwnerID != ownerID {
			continue
		}
		if entity != "" && rec.EntityType != entity {
			continue
		}
		if status != "" && rec.Status != status {
			continue
		}
		out = append(out, cloneRecord(rec))
	}

	sort.Slice(out, func(i, j int) bool {
		if out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].LocalID < out[j].LocalID
		}
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})
	return out
}

func (s *MemoryStore) UpdatePayload(_ context.Context, ownerID, localID string, payload json.RawMessage) (models.Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rec, ok := s.lookup(ownerID, localID)
	if !ok {
		return models.Record{}, ErrRecordNotFound
	}

	rec.Payload = slices.Clone(payload)
	rec.Status = models.SyncPending
	rec.Version++
	rec.SyncAttempts = 0
	rec.LastSyncError = ""
	rec.UpdatedAt = s.now()
	s.records[localID] = rec

	return cloneRecord(rec), nil
}

func (s *MemoryStore) MarkSynced(_ context.Context, rec models.Record, remoteID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	cur, ok := s.lookup(rec.OwnerID, rec.LocalID)
	if !ok {
		return ErrRecordNotFound
	}

	cur.RemoteID = &remoteID
	if cur.Version != rec.Version {
		s.records[rec.LocalID] = cur
		return ErrRecordChanged
	}

	now := s.now()
	cur.Status = models.SyncSynced
	cur.SyncAttempts = 0
	cur.LastSyncError = ""
	cur.SyncedAt = &now
	s.records[rec.LocalID] = cur
	return nil
}

func (s *MemoryStore) RecordSyncFailure(_ context.Context, ownerID, localID, syncErr string) error {
	return s.fail(ownerID, localID, syncErr, "")
}

func (s *MemoryStore) MarkFailed(_ context.Context, ownerID, localID, syncErr string) error {
	return s.fail(ownerID, localID, syncErr, models.SyncFailed)
}

func (s *MemoryStore) fail(ownerID, localID, syncErr string, status models.SyncStatus) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	rec, ok := s.lookup(ownerID, localID)
	if !ok {
		return ErrRecordNotFound
	}

	rec.SyncAttempts++
	rec.LastSyncError = syncErr
	if status != "" {
		rec.Status = status
	}
	s.records[localID] = rec
	return nil
}

func (s *MemoryStore) DeleteLocal(_ context.Context, ownerID, localID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.lookup(ownerID, localID); !ok {
		return ErrRecordNotFound
	}
	delete(s.records, localID)
	delete(s.exercises, localID)
	return nil
}

func (s *MemoryStore) SaveExercises(_ context.Context, ownerID, workoutLocalID string, exercises []models.Exercise) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.lookup(ownerID, workoutLocalID); !ok {
		return ErrRecordNotFound
	}

	list := make([]models.Exercise, len(exercises))
	for i, ex := range exercises {
		ex.WorkoutLocalID = workoutLocalID
		if ex.ID == "" {
			ex.ID = fmt.Sprintf("%s-%d", workoutLocalID, i)
		}
		list[i] = ex
	}
	s.exercises[workoutLocalID] = list
	return nil
}

func (s *MemoryStore) ListExercises(_ context.Context, ownerID, workoutLocalID string) ([]models.Exercise, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if _, ok := s.lookup(ownerID, workoutLocalID); !ok {
		return []models.Exercise{}, nil
	}

	out := slices.Clone(s.exercises[workoutLocalID])
	if out == nil {
		out = []models.Exercise{}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].OrderIndex < out[j].OrderIndex })
	return out, nil
}

func (s *MemoryStore) PurgeOwner(_ context.Context, ownerID string) error {
	if ownerID == "" {
		return ErrOwnerRequired
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for id, rec := range s.records {
		if rec.OwnerID == ownerID {
			delete(s.records, id)
			delete(s.exercises, id)
		}
	}
	return nil
}

func (s *MemoryStore) SaveSession(_ context.Context, session models.Session) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if session.UpdatedAt.IsZero() {
		session.UpdatedAt = s.now()
	}
	s.session = &session
	return nil
}

func (s *MemoryStore) GetSession(_ context.Context) (models.Session, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.session == nil {
		return models.Session{}, ErrSessionNotFound
	}
	return *s.session, nil
}

func (s *MemoryStore) DeleteSession(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.session = nil
	return nil
}

// lookup must be called with mu held.
func (s *MemoryStore) lookup(ownerID, localID string) (models.Record, bool) {
	rec, ok := s.records[localID]
	if !ok || rec.OwnerID != ownerID {
		return models.Record{}, false
	}
	return rec, true
}

func cloneRecord(rec models.Record) models.Record {
	rec.Payload = slices.Clone(rec.Payload)
	if rec.RemoteID != nil {
		id := *rec.RemoteID
		rec.RemoteID = &id
	}
	if rec.SyncedAt != nil {
		t := *rec.SyncedAt
		rec.SyncedAt = &t
	}
	return rec
}

var (
	_ RecordStore  = (*MemoryStore)(nil)
	_ SessionStore = (*MemoryStore)(nil)
)
