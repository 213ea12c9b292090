// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import "time"

// Session is the persisted sign-in state of the device. There is at most one
// session per local store. OwnerID is the subject of the identity token.
type Session struct {
	OwnerID      string    `json:"owner_id"`
	RefreshToken string    `json:"refresh_token"`
	IDToken      string    `json:"id_token"`
	Expiry       time.Time `json:"expiry"`
	UpdatedAt    time.Time `json:"updated_at"`
}
