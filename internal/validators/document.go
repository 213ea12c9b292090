package validators

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/ST10257746/prog7314-part1-sub000/models"
)

// Rule names accepted by [DocumentValidator.Validate] to restrict
// validation to a subset of checks.
const (
	// RuleOwner requires a non-empty owner id.
	RuleOwner = "owner"

	// RuleRequired requires the mandatory fields of the collection.
	RuleRequired = "required"

	// RuleNumbers requires numeric fields, when present, to be
	// non-negative numbers.
	RuleNumbers = "numbers"

	// RuleDate requires the date of a daily activity to use the yyyy-MM-dd
	// layout.
	RuleDate = "date"
)

var allRules = []string{RuleOwner, RuleRequired, RuleNumbers, RuleDate}

// requiredFields lists the mandatory fields of each collection as reported
// back to the client in the error reply.
var requiredFields = map[models.Collection][]string{
	models.CollectionWorkouts:       {"workoutName", "startTime"},
	models.CollectionNutrition:      {"foodName", "mealType", "calories"},
	models.CollectionGoals:          {"title"},
	models.CollectionCustomWorkouts: {"name", "category", "difficulty"},
	models.CollectionDailyActivity:  nil,
	models.CollectionUsers:          nil,
}

var numericFields = map[models.Collection][]string{
	models.CollectionWorkouts:       {"startTime", "endTime", "durationSeconds", "caloriesBurned", "distanceKm", "steps"},
	models.CollectionNutrition:      {"calories", "proteinG", "carbsG", "fatsG", "fiberG", "sugarG", "timestamp"},
	models.CollectionGoals:          {"createdAt"},
	models.CollectionCustomWorkouts: {"durationMinutes", "estimatedCalories", "exerciseCount"},
	models.CollectionDailyActivity:  {"steps", "caloriesBurned", "distance", "activeMinutes", "waterGlasses"},
	models.CollectionUsers:          {"dailyStepGoal", "dailyCalorieGoal", "dailyWaterGoal", "weeklyWorkoutGoal"},
}

// RequiredFields returns the mandatory fields of c.
func RequiredFields(c models.Collection) []string {
	return append([]string(nil), requiredFields[c]...)
}

type DocumentValidator struct {
}

func NewDocumentValidator() Validator {
	return &DocumentValidator{}
}

func (v *DocumentValidator) Validate(ctx context.Context, obj any, rules ...string) error {
	switch value := obj.(type) {
	case models.Document:
		return v.validateDocument(ctx, value, rules...)
	case *models.Document:
		return v.validateDocument(ctx, *value, rules...)
	default:
		return ErrUnsupportedType
	}
}

func (v *DocumentValidator) validateDocument(_ context.Context, doc models.Document, rules ...string) error {
	required, known := requiredFields[doc.Collection]
	if !known {
		return fmt.Errorf("%w: %q", ErrUnknownCollection, doc.Collection)
	}

	if len(rules) == 0 {
		rules = allRules
	}

	for _, r := range rules {
		switch r {
		case RuleOwner:
			if doc.OwnerID == "" {
				return ErrInvalidOwnerID
			}
		case RuleRequired:
			var missing []string
			for _, f := range required {
				if isBlank(doc.Fields[f]) {
					missing = append(missing, f)
				}
			}
			if len(missing) > 0 {
				return &MissingFieldsError{Required: RequiredFields(doc.Collection), Missing: missing}
			}
		case RuleNumbers:
			for _, f := range numericFields[doc.Collection] {
				value, ok := doc.Fields[f]
				if !ok || value == nil {
					continue
				}
				if n, isNum := toFloat(value); !isNum || n < 0 {
					return fmt.Errorf("%w: %s must be a non-negative number", ErrInvalidFieldValue, f)
				}
			}
		case RuleDate:
			if doc.Collection != models.CollectionDailyActivity {
				continue
			}
			date, ok := doc.Fields["date"].(string)
			if !ok {
				return fmt.Errorf("%w: date is required", ErrInvalidFieldValue)
			}
			if _, err := time.Parse(models.DailyActivityDateLayout, date); err != nil {
				return fmt.Errorf("%w: date %q is not yyyy-MM-dd", ErrInvalidFieldValue, date)
			}
		default:
			return ErrUnknownField
		}
	}

	return nil
}

func isBlank(value any) bool {
	switch v := value.(type) {
	case nil:
		return true
	case string:
		return v == ""
	default:
		return false
	}
}

func toFloat(value any) (float64, bool) {
	switch n := value.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	case json.Number:
		f, err := n.Float64()
		return f, err == nil
	default:
		return 0, false
	}
}
