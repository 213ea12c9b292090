package service

import (
	"context"
	"fmt"
	"maps"

	"github.com/ST10257746/prog7314-part1-sub000/internal/validators"
	"github.com/ST10257746/prog7314-part1-sub000/models"
)

type DocumentValidationService struct {
	inner     DocumentService
	validator validators.Validator
}

func NewDocumentValidationService() DocumentServiceWrapper {
	return &DocumentValidationService{
		validator: validators.NewDocumentValidator(),
	}
}

func (v *DocumentValidationService) Create(ctx context.Context, ownerID string, c models.Collection, fields map[string]any) (models.Document, bool, error) {
	doc := models.Document{OwnerID: ownerID, Collection: c, Fields: fields}
	if err := v.validator.Validate(ctx, doc); err != nil {
		return models.Document{}, false, fmt.Errorf("error during document validation before saving: %w", err)
	}

	return v.inner.Create(ctx, ownerID, c, fields)
}

func (v *DocumentValidationService) Update(ctx context.Context, ownerID string, c models.Collection, id string, fields map[string]any) (models.Document, error) {
	doc := models.Document{ID: id, OwnerID: ownerID, Collection: c, Fields: fields}
	if err := v.validator.Validate(ctx, doc); err != nil {
		return models.Document{}, fmt.Errorf("error during document validation before update: %w", err)
	}

	return v.inner.Update(ctx, ownerID, c, id, fields)
}

func (v *DocumentValidationService) Delete(ctx context.Context, ownerID string, c models.Collection, id string) error {
	return v.inner.Delete(ctx, ownerID, c, id)
}

func (v *DocumentValidationService) PutDailyActivity(ctx context.Context, ownerID, pathOwner, date string, fields map[string]any) (models.Document, error) {
	withDate := maps.Clone(fields)
	if withDate == nil {
		withDate = make(map[string]any, 1)
	}
	withDate["date"] = date

	doc := models.Document{OwnerID: ownerID, Collection: models.CollectionDailyActivity, Fields: withDate}
	if err := v.validator.Validate(ctx, doc, validators.RuleOwner, validators.RuleNumbers, validators.RuleDate); err != nil {
		return models.Document{}, fmt.Errorf("error during daily activity validation: %w", err)
	}

	return v.inner.PutDailyActivity(ctx, ownerID, pathOwner, date, fields)
}

func (v *DocumentValidationService) PutProfile(ctx context.Context, ownerID, pathOwner string, fields map[string]any) (models.Document, error) {
	doc := models.Document{OwnerID: ownerID, Collection: models.CollectionUsers, Fields: fields}
	if err := v.validator.Validate(ctx, doc, validators.RuleOwner, validators.RuleNumbers); err != nil {
		return models.Document{}, fmt.Errorf("error during profile validation: %w", err)
	}

	return v.inner.PutProfile(ctx, ownerID, pathOwner, fields)
}

func (v *DocumentValidationService) List(ctx context.Context, ownerID string, c models.Collection) ([]models.Document, error) {
	return v.inner.List(ctx, ownerID, c)
}

func (v *DocumentValidationService) Wrap(wrapped DocumentService) DocumentService {
	v.inner = wrapped
	return v
}
