// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package validators

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ST10257746/prog7314-part1-sub000/models"
)

func nutritionDoc(fields map[string]any) models.Document {
	return models.Document{
		OwnerID:    "owner-1",
		Collection: models.CollectionNutrition,
		Fields:     fields,
	}
}

func TestNewDocumentValidator(t *testing.T) {
	require.NotNil(t, NewDocumentValidator())
}

func TestValidate_UnsupportedType(t *testing.T) {
	err := NewDocumentValidator().Validate(context.Background(), "not a document")
	assert.ErrorIs(t, err, ErrUnsupportedType)
}

func TestValidate_PointerAndValue(t *testing.T) {
	doc := nutritionDoc(map[string]any{"foodName": "Oatmeal", "mealType": "BREAKFAST", "calories": float64(350)})
	v := NewDocumentValidator()

	assert.NoError(t, v.Validate(context.Background(), doc))
	assert.NoError(t, v.Validate(context.Background(), &doc))
}

func TestValidate_MissingRequiredFields(t *testing.T) {
	tests := []struct {
		name       string
		collection models.Collection
		fields     map[string]any
		missing    []string
	}{
		{
			name:       "workout without start time",
			collection: models.CollectionWorkouts,
			fields:     map[string]any{"workoutName": "Run"},
			missing:    []string{"startTime"},
		},
		{
			name:       "nutrition with blank food name and no calories",
			collection: models.CollectionNutrition,
			fields:     map[string]any{"foodName": "", "mealType": "LUNCH"},
			missing:    []string{"foodName", "calories"},
		},
		{
			name:       "custom workout with nothing",
			collection: models.CollectionCustomWorkouts,
			fields:     map[string]any{},
			missing:    []string{"name", "category", "difficulty"},
		},
		{
			name:       "goal with null title",
			collection: models.CollectionGoals,
			fields:     map[string]any{"title": nil},
			missing:    []string{"title"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc := models.Document{OwnerID: "owner-1", Collection: tt.collection, Fields: tt.fields}

			err := NewDocumentValidator().Validate(context.Background(), doc)

			require.ErrorIs(t, err, ErrMissingRequiredFields)
			var mf *MissingFieldsError
			require.True(t, errors.As(err, &mf))
			assert.Equal(t, tt.missing, mf.Missing)
			assert.Equal(t, RequiredFields(tt.collection), mf.Required)
		})
	}
}

func TestValidate_ZeroCaloriesIsPresent(t *testing.T) {
	doc := nutritionDoc(map[string]any{"foodName": "Water", "mealType": "SNACK", "calories": float64(0)})
	assert.NoError(t, NewDocumentValidator().Validate(context.Background(), doc))
}

func TestValidate_Owner(t *testing.T) {
	doc := nutritionDoc(map[string]any{"foodName": "Oatmeal", "mealType": "BREAKFAST", "calories": 350})
	doc.OwnerID = ""

	err := NewDocumentValidator().Validate(context.Background(), doc)
	assert.ErrorIs(t, err, ErrInvalidOwnerID)
}

func TestValidate_UnknownCollection(t *testing.T) {
	doc := models.Document{OwnerID: "owner-1", Collection: "photos"}

	err := NewDocumentValidator().Validate(context.Background(), doc)
	assert.ErrorIs(t, err, ErrUnknownCollection)
}

func TestValidate_Numbers(t *testing.T) {
	tests := []struct {
		name  string
		value any
		ok    bool
	}{
		{"float", float64(350), true},
		{"int", 350, true},
		{"json number", json.Number("12.5"), true},
		{"negative", float64(-1), false},
		{"string", "350", false},
		{"bool", true, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc := nutritionDoc(map[string]any{"calories": tt.value})

			err := NewDocumentValidator().Validate(context.Background(), doc, RuleNumbers)
			if tt.ok {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, ErrInvalidFieldValue)
			}
		})
	}
}

func TestValidate_DailyActivityDate(t *testing.T) {
	v := NewDocumentValidator()
	doc := models.Document{
		OwnerID:    "owner-1",
		Collection: models.CollectionDailyActivity,
		Fields:     map[string]any{"date": "2025-10-07", "steps": float64(5400)},
	}
	assert.NoError(t, v.Validate(context.Background(), doc))

	doc.Fields["date"] = "07/10/2025"
	assert.ErrorIs(t, v.Validate(context.Background(), doc), ErrInvalidFieldValue)

	delete(doc.Fields, "date")
	assert.ErrorIs(t, v.Validate(context.Background(), doc, RuleDate), ErrInvalidFieldValue)
}

func TestValidate_RuleScoping(t *testing.T) {
	// a partial document passes when only numbers are checked
	doc := nutritionDoc(map[string]any{"calories": float64(120)})
	v := NewDocumentValidator()

	assert.NoError(t, v.Validate(context.Background(), doc, RuleOwner, RuleNumbers))
	assert.ErrorIs(t, v.Validate(context.Background(), doc, RuleRequired), ErrMissingRequiredFields)
	assert.ErrorIs(t, v.Validate(context.Background(), doc, "unknown"), ErrUnknownField)
}

func TestMissingFieldsError_Message(t *testing.T) {
	err := &MissingFieldsError{Required: []string{"a", "b"}, Missing: []string{"b"}}
	assert.Equal(t, "missing required fields: b", err.Error())
}
