// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import "fmt"

// EntityType identifies one kind of syncable record. The set is closed:
// every value listed in [AllEntityTypes] must have exactly one entity adapter
// registered on the client and one collection on the remote store.
type EntityType string

const (
	// EntityWorkoutSession is a recorded workout (run, ride, gym session).
	EntityWorkoutSession EntityType = "session"

	// EntityNutrition is a single logged food item.
	EntityNutrition EntityType = "nutrition"

	// EntityDailyActivity is the per-day aggregate of steps, water and
	// calories. It is keyed remotely by (owner, date) instead of an id.
	EntityDailyActivity EntityType = "daily_activity"

	// EntityGoal is a user goal with an optional completion timestamp.
	EntityGoal EntityType = "goal"

	// EntityProfile is the user profile. There is at most one per owner and it
	// is keyed remotely by the owner id.
	EntityProfile EntityType = "profile"

	// EntityCustomWorkout is a user-defined workout template together with
	// its ordered exercise list.
	EntityCustomWorkout EntityType = "custom_workout"
)

// AllEntityTypes returns every entity type in the order the sync run
// processes them.
func AllEntityTypes() []EntityType {
	return []EntityType{
		EntityWorkoutSession,
		EntityNutrition,
		EntityDailyActivity,
		EntityGoal,
		EntityProfile,
		EntityCustomWorkout,
	}
}

// Valid reports whether e is one of the known entity types.
func (e EntityType) Valid() bool {
	for _, known := range AllEntityTypes() {
		if e == known {
			return true
		}
	}
	return false
}

func (e EntityType) String() string {
	return string(e)
}

// ParseEntityType converts s into an [EntityType] and fails for unknown values.
func ParseEntityType(s string) (EntityType, error) {
	e := EntityType(s)
	if !e.Valid() {
		return "", fmt.Errorf("unknown entity type %q", s)
	}
	return e, nil
}
