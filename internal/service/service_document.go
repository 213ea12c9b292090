package service

import (
	"context"
	"errors"
	"fmt"
	"maps"

	"github.com/ST10257746/prog7314-part1-sub000/internal/logger"
	"github.com/ST10257746/prog7314-part1-sub000/internal/store"
	"github.com/ST10257746/prog7314-part1-sub000/models"
)

// bookkeepingKeys are owned by the store and never taken from a request body.
var bookkeepingKeys = []string{"id", "userId", "clientId", "lastUpdated"}

type documentService struct {
	docs store.DocumentStore

	logger *logger.Logger
}

func NewDocumentService(docs store.DocumentStore, logger *logger.Logger) DocumentService {
	return &documentService{docs: docs, logger: logger}
}

func (s *documentService) Create(ctx context.Context, ownerID string, c models.Collection, fields map[string]any) (models.Document, bool, error) {
	if err := checkIDCollection(c); err != nil {
		return models.Document{}, false, err
	}

	clientID, _ := fields["clientId"].(string)
	doc, created, err := s.docs.Insert(ctx, ownerID, c, clientID, documentFields(fields))
	if err != nil {
		return models.Document{}, false, fmt.Errorf("error inserting %s document: %w", c, err)
	}

	logger.FromContext(ctx).Debug().
		Str("collection", string(c)).
		Str("remote_id", doc.ID).
		Bool("created", created).
		Msg("document stored")

	return doc, created, nil
}

func (s *documentService) Update(ctx context.Context, ownerID string, c models.Collection, id string, fields map[string]any) (models.Document, error) {
	if err := checkIDCollection(c); err != nil {
		return models.Document{}, err
	}
	if _, err := s.owned(ctx, ownerID, c, id); err != nil {
		return models.Document{}, err
	}

	doc, err := s.docs.Replace(ctx, c, id, documentFields(fields))
	if err != nil {
		return models.Document{}, mapDocumentError(err)
	}
	return doc, nil
}

func (s *documentService) Delete(ctx context.Context, ownerID string, c models.Collection, id string) error {
	if err := checkIDCollection(c); err != nil {
		return err
	}

	_, err := s.owned(ctx, ownerID, c, id)
	switch {
	case errors.Is(err, ErrDocumentNotFound):
		return nil
	case err != nil:
		return err
	}

	if err = s.docs.Delete(ctx, c, id); err != nil {
		return fmt.Errorf("error deleting %s document: %w", c, err)
	}
	return nil
}

func (s *documentService) PutDailyActivity(ctx context.Context, ownerID, pathOwner, date string, fields map[string]any) (models.Document, error) {
	if ownerID != pathOwner {
		return models.Document{}, ErrNotOwner
	}

	clean := documentFields(fields)
	clean["date"] = date

	doc, err := s.docs.Merge(ctx, ownerID, models.CollectionDailyActivity, DailyActivityID(ownerID, date), clean)
	if err != nil {
		return models.Document{}, fmt.Errorf("error merging daily activity: %w", err)
	}
	return doc, nil
}

func (s *documentService) PutProfile(ctx context.Context, ownerID, pathOwner string, fields map[string]any) (models.Document, error) {
	if ownerID != pathOwner {
		return models.Document{}, ErrNotOwner
	}

	doc, err := s.docs.Merge(ctx, ownerID, models.CollectionUsers, ownerID, documentFields(fields))
	if err != nil {
		return models.Document{}, fmt.Errorf("error merging profile: %w", err)
	}
	return doc, nil
}

func (s *documentService) List(ctx context.Context, ownerID string, c models.Collection) ([]models.Document, error) {
	if !knownCollection(c) {
		return nil, fmt.Errorf("%w: %q", ErrUnknownCollection, c)
	}

	docs, err := s.docs.List(ctx, ownerID, c)
	if err != nil {
		return nil, fmt.Errorf("error listing %s documents: %w", c, err)
	}
	return docs, nil
}

// owned loads a document and checks that it belongs to ownerID.
func (s *documentService) owned(ctx context.Context, ownerID string, c models.Collection, id string) (models.Document, error) {
	doc, err := s.docs.Get(ctx, c, id)
	if err != nil {
		return models.Document{}, mapDocumentError(err)
	}
	if doc.OwnerID != ownerID {
		return models.Document{}, ErrNotOwner
	}
	return doc, nil
}

// DailyActivityID is the document id of the daily activity of ownerID on
// date.
func DailyActivityID(ownerID, date string) string {
	return ownerID + "_" + date
}

func documentFields(fields map[string]any) map[string]any {
	clean := maps.Clone(fields)
	if clean == nil {
		clean = make(map[string]any)
	}
	for _, k := range bookkeepingKeys {
		delete(clean, k)
	}
	return clean
}

func checkIDCollection(c models.Collection) error {
	switch c {
	case models.CollectionWorkouts, models.CollectionNutrition, models.CollectionGoals, models.CollectionCustomWorkouts:
		return nil
	default:
		return fmt.Errorf("%w: %q", ErrUnknownCollection, c)
	}
}

func knownCollection(c models.Collection) bool {
	return checkIDCollection(c) == nil || c == models.CollectionDailyActivity || c == models.CollectionUsers
}

func mapDocumentError(err error) error {
	if errors.Is(err, store.ErrDocumentNotFound) {
		return ErrDocumentNotFound
	}
	return err
}
