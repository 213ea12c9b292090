package store

import (
	"context"
	"fmt"

	"github.com/ST10257746/prog7314-part1-sub000/internal/config"
	"github.com/ST10257746/prog7314-part1-sub000/internal/logger"
)

// ClientStorages groups the client-side repositories into a single value that
// can be passed around the service layer.
type ClientStorages struct {
	// Records is the local record store of all entity types.
	Records RecordStore
	// Sessions holds the persisted sign-in session.
	Sessions SessionStore

	db *DB
}

// NewClientStorages opens the SQLite file named in cfg.DB.DSN, creating it
// when missing, applies migrations and wires the repositories.
func NewClientStorages(ctx context.Context, cfg config.ClientStorage, logger *logger.Logger) (*ClientStorages, error) {
	logger.Info().Msg("creating new storages...")

	db, err := NewConnectSQLite(ctx, cfg.DB, logger)
	if err != nil {
		return nil, fmt.Errorf("sqlite connection error: %w", err)
	}

	if err = db.Migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migration failed: %w", err)
	}

	return &ClientStorages{
		Records:  NewRecordRepository(db, logger),
		Sessions: NewSessionRepository(db, logger),
		db:       db,
	}, nil
}

// NewMemoryStorages returns storages backed by a single [MemoryStore].
func NewMemoryStorages() *ClientStorages {
	m := NewMemoryStore()
	return &ClientStorages{Records: m, Sessions: m}
}

// Close releases the database connection, if any.
func (s *ClientStorages) Close() error {
	if s.db == nil {
		return nil
	}
	return s.db.Close()
}
