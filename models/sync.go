// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import "time"

// RunOutcome is the result of one sync run as seen by the scheduler.
type RunOutcome int

const (
	// RunCompleted means the run finished. Individual records may still have
	// failed and stay pending for the next run.
	RunCompleted RunOutcome = iota

	// RunShouldRetry means the run was aborted by a run-level failure and
	// should be scheduled again after a backoff.
	RunShouldRetry
)

func (o RunOutcome) String() string {
	switch o {
	case RunCompleted:
		return "completed"
	case RunShouldRetry:
		return "should_retry"
	default:
		return "unknown"
	}
}

// EntityReport counts what happened to the pending records of one entity
// type during a run.
type EntityReport struct {
	Pending int `json:"pending"`
	Pushed  int `json:"pushed"`
	Failed  int `json:"failed"`
}

// RunReport summarises a single sync run.
type RunReport struct {
	Outcome   RunOutcome                  `json:"outcome"`
	OwnerID   string                      `json:"owner_id,omitempty"`
	Pushed    int                         `json:"pushed"`
	Failed    int                         `json:"failed"`
	PerEntity map[EntityType]EntityReport `json:"per_entity,omitempty"`
	StartedAt time.Time                   `json:"started_at"`
	Duration  time.Duration               `json:"duration"`
	Err       error                       `json:"-"`
}
