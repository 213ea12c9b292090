package entity

import (
	"fmt"

	"github.com/ST10257746/prog7314-part1-sub000/internal/adapter"
	"github.com/ST10257746/prog7314-part1-sub000/models"
)

// Registry is the closed set of adapters, one per entity type.
type Registry struct {
	adapters map[models.EntityType]Adapter
}

// NewRegistry checks that adapters cover every [models.EntityType] exactly
// once.
func NewRegistry(adapters ...Adapter) (*Registry, error) {
	r := &Registry{adapters: make(map[models.EntityType]Adapter, len(adapters))}

	for _, a := range adapters {
		e := a.Entity()
		if !e.Valid() {
			return nil, fmt.Errorf("%w: %q", ErrMissingAdapter, e)
		}
		if _, ok := r.adapters[e]; ok {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateAdapter, e)
		}
		r.adapters[e] = a
	}

	for _, e := range models.AllEntityTypes() {
		if _, ok := r.adapters[e]; !ok {
			return nil, fmt.Errorf("%w: %s", ErrMissingAdapter, e)
		}
	}

	return r, nil
}

// NewDefaultRegistry wires the adapter of every entity type to remote.
func NewDefaultRegistry(remote adapter.RemoteClient, exercises ExerciseReader) (*Registry, error) {
	return NewRegistry(
		NewSessionAdapter(remote),
		NewNutritionAdapter(remote),
		NewDailyActivityAdapter(remote),
		NewGoalAdapter(remote),
		NewProfileAdapter(remote),
		NewCustomWorkoutAdapter(remote, exercises),
	)
}

// Adapter returns the adapter of e.
func (r *Registry) Adapter(e models.EntityType) (Adapter, error) {
	a, ok := r.adapters[e]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrMissingAdapter, e)
	}
	return a, nil
}

// Entities returns the registered entity types in sync order.
func (r *Registry) Entities() []models.EntityType {
	return models.AllEntityTypes()
}
