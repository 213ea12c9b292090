// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"maps"
	"sort"
	"sync"
	"time"

	"github.com/ST10257746/prog7314-part1-sub000/internal/utils"
	"github.com/ST10257746/prog7314-part1-sub000/models"
)

// DocumentStore is the document storage of the reference remote store.
// Documents are addressed by collection and id and always carry their owner.
// Ownership checks are left to the caller.
type DocumentStore interface {
	// Insert stores fields as a new document, or updates the document of the
	// same owner and clientId when one exists. The bool reports whether a new
	// document was created.
	Insert(ctx context.Context, owner string, c models.Collection, clientID string, fields map[string]any) (models.Document, bool, error)
	// Get returns [ErrDocumentNotFound] for unknown ids.
	Get(ctx context.Context, c models.Collection, id string) (models.Document, error)
	// Replace overwrites the fields of an existing document.
	Replace(ctx context.Context, c models.Collection, id string, fields map[string]any) (models.Document, error)
	// Merge upserts the document with a caller-chosen id, overlaying fields
	// on the stored ones.
	Merge(ctx context.Context, owner string, c models.Collection, id string, fields map[string]any) (models.Document, error)
	// Delete removes a document. Unknown ids are not an error.
	Delete(ctx context.Context, c models.Collection, id string) error
	// List returns the owner's documents of c, oldest first.
	List(ctx context.Context, owner string, c models.Collection) ([]models.Document, error)
}

type docKey struct {
	c  models.Collection
	id string
}

type clientKey struct {
	owner    string
	c        models.Collection
	clientID string
}

type memoryDocumentStore struct {
	mu       sync.RWMutex
	docs     map[docKey]models.Document
	byClient map[clientKey]string
	ids      *utils.UUIDGenerator
	now      func() time.Time
}

// NewMemoryDocumentStore returns an empty in-process [DocumentStore].
func NewMemoryDocumentStore() DocumentStore {
	return &memoryDocumentStore{
		docs:     make(map[docKey]models.Document),
		byClient: make(map[clientKey]string),
		ids:      utils.NewUUIDGenerator(),
		now:      func() time.Time { return time.Now().UTC() },
	}
}

func (s *memoryDocumentStore) Insert(_ context.Context, owner string, c models.Collection, clientID string, fields map[string]any) (models.Document, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	if clientID != "" {
		if id, ok := s.byClient[clientKey{owner, c, clientID}]; ok {
			doc := s.docs[docKey{c, id}]
			doc.Fields = maps.Clone(fields)
			doc.UpdatedAt = now
			s.docs[docKey{c, id}] = doc
			return cloneDocument(doc), false, nil
		}
	}

	doc := models.Document{
		ID:         s.ids.Generate(),
		OwnerID:    owner,
		Collection: c,
		ClientID:   clientID,
		Fields:     maps.Clone(fields),
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	s.docs[docKey{c, doc.ID}] = doc
	if clientID != "" {
		s.byClient[clientKey{owner, c, clientID}] = doc.ID
	}

	return cloneDocument(doc), true, nil
}

func (s *memoryDocumentStore) Get(_ context.Context, c models.Collection, id string) (models.Document, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	doc, ok := s.docs[docKey{c, id}]
	if !ok {
		return models.Document{}, ErrDocumentNotFound
	}
	return cloneDocument(doc), nil
}

func (s *memoryDocumentStore) Replace(_ context.Context, c models.Collection, id string, fields map[string]any) (models.Document, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc, ok := s.docs[docKey{c, id}]
	if !ok {
		return models.Document{}, ErrDocumentNotFound
	}
	doc.Fields = maps.Clone(fields)
	doc.UpdatedAt = s.now()
	s.docs[docKey{c, id}] = doc

	return cloneDocument(doc), nil
}

func (s *memoryDocumentStore) Merge(_ context.Context, owner string, c models.Collection, id string, fields map[string]any) (models.Document, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	doc, ok := s.docs[docKey{c, id}]
	if !ok {
		doc = models.Document{
			ID:         id,
			OwnerID:    owner,
			Collection: c,
			Fields:     make(map[string]any, len(fields)),
			CreatedAt:  now,
		}
	}
	if doc.Fields == nil {
		doc.Fields = make(map[string]any, len(fields))
	}
	for k, v := range fields {
		doc.Fields[k] = v
	}
	doc.UpdatedAt = now
	s.docs[docKey{c, id}] = doc

	return cloneDocument(doc), nil
}

func (s *memoryDocumentStore) Delete(_ context.Context, c models.Collection, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc, ok := s.docs[docKey{c, id}]
	if !ok {
		return nil
	}
	delete(s.docs, docKey{c, id})
	if doc.ClientID != "" {
		delete(s.byClient, clientKey{doc.OwnerID, c, doc.ClientID})
	}
	return nil
}

func (s *memoryDocumentStore) List(_ context.Context, owner string, c models.Collection) ([]models.Document, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]models.Document, 0)
	for k, doc := range s.docs {
		if k.c == c && doc.OwnerID == owner {
			out = append(out, cloneDocument(doc))
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].ID < out[j].ID
		}
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})
	return out, nil
}

func cloneDocument(doc models.Document) models.Document {
	doc.Fields = maps.Clone(doc.Fields)
	return doc
}
