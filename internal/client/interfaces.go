// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package client

import (
	"context"

	"github.com/ST10257746/prog7314-part1-sub000/models"
)

// Client defines the minimal lifecycle contract for runnable client
// applications.
type Client interface {
	// Run executes the configured command and blocks until it is done.
	Run(ctx context.Context) error
}

// Identity is the part of the identity manager the commands use.
type Identity interface {
	SignIn(ctx context.Context, refreshToken, idToken string) (string, error)
	CurrentOwner(ctx context.Context) (string, bool)
}

// SessionIssuer obtains the first token pair of an owner.
type SessionIssuer interface {
	IssueSession(ctx context.Context, userID string) (models.TokenResponse, error)
}

// Runner runs the background workers until ctx is done.
type Runner interface {
	Run(ctx context.Context) error
}
