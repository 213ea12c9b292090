// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

// Payload documents in their wire form. Timestamps are Unix milliseconds.
// ClientID carries the record LocalID and lets the remote store upsert a
// repeated create instead of inserting a duplicate.

// Workout session statuses.
const (
	SessionPlanned    = "PLANNED"
	SessionInProgress = "IN_PROGRESS"
	SessionPaused     = "PAUSED"
	SessionCompleted  = "COMPLETED"
	SessionCancelled  = "CANCELLED"
)

// Meal types accepted for nutrition entries.
const (
	MealBreakfast = "BREAKFAST"
	MealLunch     = "LUNCH"
	MealDinner    = "DINNER"
	MealSnack     = "SNACK"
)

// DefaultWorkoutType is sent when a session has no workout type set.
const DefaultWorkoutType = "CARDIO"

// WorkoutSessionPayload is the document of an [EntityWorkoutSession] record.
type WorkoutSessionPayload struct {
	ClientID        string   `json:"clientId,omitempty"`
	WorkoutName     string   `json:"workoutName"`
	WorkoutType     string   `json:"workoutType"`
	StartTime       int64    `json:"startTime"`
	EndTime         int64    `json:"endTime,omitempty"`
	DurationSeconds int      `json:"durationSeconds"`
	CaloriesBurned  int      `json:"caloriesBurned"`
	DistanceKm      float64  `json:"distanceKm"`
	Steps           int      `json:"steps"`
	AvgHeartRate    *int     `json:"avgHeartRate,omitempty"`
	MaxHeartRate    *int     `json:"maxHeartRate,omitempty"`
	AvgPace         *float64 `json:"avgPace,omitempty"`
	Notes           string   `json:"notes,omitempty"`
	Status          string   `json:"status"`
}

// NutritionPayload is the document of an [EntityNutrition] record.
type NutritionPayload struct {
	ClientID    string  `json:"clientId,omitempty"`
	FoodName    string  `json:"foodName"`
	MealType    string  `json:"mealType"`
	ServingSize string  `json:"servingSize,omitempty"`
	Calories    int     `json:"calories"`
	ProteinG    float64 `json:"proteinG"`
	CarbsG      float64 `json:"carbsG"`
	FatsG       float64 `json:"fatsG"`
	FiberG      float64 `json:"fiberG"`
	SugarG      float64 `json:"sugarG"`
	Notes       string  `json:"notes,omitempty"`
	Timestamp   int64   `json:"timestamp"`
}

// DailyActivityPayload is the document of an [EntityDailyActivity] record.
// Date uses the yyyy-MM-dd layout and together with the owner forms the
// remote key.
type DailyActivityPayload struct {
	Date           string  `json:"date"`
	Steps          int     `json:"steps"`
	CaloriesBurned int     `json:"caloriesBurned"`
	Distance       float64 `json:"distance"`
	ActiveMinutes  int     `json:"activeMinutes"`
	WaterGlasses   int     `json:"waterGlasses"`
}

// DailyActivityDateLayout is the layout of [DailyActivityPayload.Date].
const DailyActivityDateLayout = "2006-01-02"

// GoalPayload is the document of an [EntityGoal] record.
type GoalPayload struct {
	ClientID    string `json:"clientId,omitempty"`
	UserID      string `json:"userId,omitempty"`
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
	Date        string `json:"date"`
	IsCompleted bool   `json:"isCompleted"`
	CompletedAt *int64 `json:"completedAt,omitempty"`
	CreatedAt   int64  `json:"createdAt"`
}

// ProfilePayload is the document of an [EntityProfile] record.
type ProfilePayload struct {
	DisplayName       string   `json:"displayName"`
	Age               *int     `json:"age,omitempty"`
	WeightKg          *float64 `json:"weightKg,omitempty"`
	HeightCm          *float64 `json:"heightCm,omitempty"`
	ProfileImageURL   string   `json:"profileImageUrl,omitempty"`
	DailyStepGoal     int      `json:"dailyStepGoal"`
	DailyCalorieGoal  int      `json:"dailyCalorieGoal"`
	DailyWaterGoal    int      `json:"dailyWaterGoal"`
	WeeklyWorkoutGoal int      `json:"weeklyWorkoutGoal"`
	ProteinGoalG      int      `json:"proteinGoalG"`
	CarbsGoalG        int      `json:"carbsGoalG"`
	FatsGoalG         int      `json:"fatsGoalG"`
}

// CustomWorkoutPayload is the document of an [EntityCustomWorkout] record.
// Exercises are not stored in the payload; the custom workout adapter loads
// them from the exercise table right before the push.
type CustomWorkoutPayload struct {
	ClientID          string     `json:"clientId,omitempty"`
	Name              string     `json:"name"`
	Description       string     `json:"description,omitempty"`
	Category          string     `json:"category"`
	Difficulty        string     `json:"difficulty"`
	DurationMinutes   int        `json:"durationMinutes"`
	EstimatedCalories int        `json:"estimatedCalories"`
	ExerciseCount     int        `json:"exerciseCount"`
	IsCustom          bool       `json:"isCustom"`
	Exercises         []Exercise `json:"exercises,omitempty"`
}
