package models

import "time"

// Collection names a document collection of the reference remote store.
type Collection string

const (
	CollectionWorkouts       Collection = "workouts"
	CollectionNutrition      Collection = "nutrition"
	CollectionGoals          Collection = "goals"
	CollectionCustomWorkouts Collection = "custom-workouts"
	CollectionDailyActivity  Collection = "daily-activity"
	CollectionUsers          Collection = "users"
)

// Document is a stored document of the reference remote store. Fields holds
// the client document as sent, minus the bookkeeping keys.
type Document struct {
	ID         string         `json:"id"`
	OwnerID    string         `json:"userId"`
	Collection Collection     `json:"-"`
	ClientID   string         `json:"clientId,omitempty"`
	Fields     map[string]any `json:"-"`
	CreatedAt  time.Time      `json:"-"`
	UpdatedAt  time.Time      `json:"-"`
}

// Flatten merges the bookkeeping keys into a copy of Fields, producing the
// reply shape {id, userId, clientId, ...fields, createdAt, lastUpdated}.
func (d Document) Flatten() map[string]any {
	out := make(map[string]any, len(d.Fields)+5)
	for k, v := range d.Fields {
		out[k] = v
	}
	out["id"] = d.ID
	out["userId"] = d.OwnerID
	if d.ClientID != "" {
		out["clientId"] = d.ClientID
	}
	if _, ok := out["createdAt"]; !ok && !d.CreatedAt.IsZero() {
		out["createdAt"] = d.CreatedAt.UnixMilli()
	}
	out["lastUpdated"] = d.UpdatedAt.UnixMilli()
	return out
}
