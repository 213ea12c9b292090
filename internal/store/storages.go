package store

import "github.com/ST10257746/prog7314-part1-sub000/internal/logger"

// Storages groups the storage of the reference remote store.
type Storages struct {
	Documents DocumentStore
}

// NewStorages wires the in-process document storage of the reference
// server.
func NewStorages(logger *logger.Logger) *Storages {
	logger.Info().Msg("creating new storages...")
	return &Storages{Documents: NewMemoryDocumentStore()}
}
