package entity

import (
	"context"
	"fmt"

	"github.com/ST10257746/prog7314-part1-sub000/internal/adapter"
	"github.com/ST10257746/prog7314-part1-sub000/models"
)

// Remote collection paths.
const (
	workoutsPath       = "/api/workouts"
	nutritionPath      = "/api/nutrition"
	goalsPath          = "/api/goals"
	customWorkoutsPath = "/api/custom-workouts"
	dailyActivityPath  = "/api/daily-activity"
	usersPath          = "/api/users"
)

// NewSessionAdapter returns the adapter of workout sessions.
func NewSessionAdapter(remote adapter.RemoteClient) Adapter {
	return &collectionAdapter{
		entity:      models.EntityWorkoutSession,
		path:        workoutsPath,
		envelopeKey: "workout",
		encode:      encodeSession,
		remote:      remote,
	}
}

// NewNutritionAdapter returns the adapter of nutrition entries.
func NewNutritionAdapter(remote adapter.RemoteClient) Adapter {
	return &collectionAdapter{
		entity:      models.EntityNutrition,
		path:        nutritionPath,
		envelopeKey: "nutrition",
		encode:      encodeNutrition,
		remote:      remote,
	}
}

// NewGoalAdapter returns the adapter of goals.
func NewGoalAdapter(remote adapter.RemoteClient) Adapter {
	return &collectionAdapter{
		entity:      models.EntityGoal,
		path:        goalsPath,
		envelopeKey: "goal",
		encode:      encodeGoal,
		remote:      remote,
	}
}

// NewCustomWorkoutAdapter returns the adapter of custom workouts. The
// exercises of a workout are read through exercises and embedded into the
// pushed document.
func NewCustomWorkoutAdapter(remote adapter.RemoteClient, exercises ExerciseReader) Adapter {
	return &collectionAdapter{
		entity:      models.EntityCustomWorkout,
		path:        customWorkoutsPath,
		envelopeKey: "workout",
		encode: func(ctx context.Context, rec models.Record) (any, error) {
			return encodeCustomWorkout(ctx, rec, exercises)
		},
		remote: remote,
	}
}

func encodeSession(_ context.Context, rec models.Record) (any, error) {
	var p models.WorkoutSessionPayload
	if err := rec.DecodePayload(&p); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidPayload, err)
	}

	p.ClientID = rec.LocalID
	if p.WorkoutType == "" {
		p.WorkoutType = models.DefaultWorkoutType
	}
	if p.Status == "" {
		p.Status = models.SessionCompleted
	}
	if p.EndTime == 0 && p.StartTime > 0 {
		p.EndTime = p.StartTime + int64(p.DurationSeconds)*1000
	}

	return p, nil
}

func encodeNutrition(_ context.Context, rec models.Record) (any, error) {
	var p models.NutritionPayload
	if err := rec.DecodePayload(&p); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidPayload, err)
	}

	p.ClientID = rec.LocalID
	if p.Timestamp == 0 {
		p.Timestamp = rec.CreatedAt.UnixMilli()
	}

	return p, nil
}

func encodeGoal(_ context.Context, rec models.Record) (any, error) {
	var p models.GoalPayload
	if err := rec.DecodePayload(&p); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidPayload, err)
	}

	p.ClientID = rec.LocalID
	p.UserID = rec.OwnerID
	if p.CreatedAt == 0 {
		p.CreatedAt = rec.CreatedAt.UnixMilli()
	}
	if !p.IsCompleted {
		p.CompletedAt = nil
	}

	return p, nil
}

func encodeCustomWorkout(ctx context.Context, rec models.Record, exercises ExerciseReader) (any, error) {
	var p models.CustomWorkoutPayload
	if err := rec.DecodePayload(&p); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidPayload, err)
	}

	list, err := exercises.ListExercises(ctx, rec.OwnerID, rec.LocalID)
	if err != nil {
		return nil, fmt.Errorf("%w: exercises of %s: %w", ErrLocalRead, rec.LocalID, err)
	}

	p.ClientID = rec.LocalID
	p.IsCustom = true
	p.Exercises = list
	p.ExerciseCount = len(list)

	return p, nil
}
