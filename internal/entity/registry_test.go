package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ST10257746/prog7314-part1-sub000/internal/store"
	"github.com/ST10257746/prog7314-part1-sub000/models"
)

func TestNewDefaultRegistry(t *testing.T) {
	remote := newFakeRemote(t)
	r, err := NewDefaultRegistry(remote.client(t), store.NewMemoryStore())
	require.NoError(t, err)

	for _, e := range models.AllEntityTypes() {
		a, err := r.Adapter(e)
		require.NoError(t, err)
		assert.Equal(t, e, a.Entity())
	}
	assert.Equal(t, models.AllEntityTypes(), r.Entities())

	_, err = r.Adapter("steps")
	assert.ErrorIs(t, err, ErrMissingAdapter)
}

func TestNewRegistry_RequiresEveryEntityOnce(t *testing.T) {
	remote := newFakeRemote(t).client(t)

	_, err := NewRegistry(NewSessionAdapter(remote), NewNutritionAdapter(remote))
	assert.ErrorIs(t, err, ErrMissingAdapter)

	_, err = NewRegistry(
		NewSessionAdapter(remote),
		NewSessionAdapter(remote),
		NewNutritionAdapter(remote),
		NewDailyActivityAdapter(remote),
		NewGoalAdapter(remote),
		NewProfileAdapter(remote),
		NewCustomWorkoutAdapter(remote, store.NewMemoryStore()),
	)
	assert.ErrorIs(t, err, ErrDuplicateAdapter)
}
