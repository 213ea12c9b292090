// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package adapter provides the transport to the remote document store.
//
// The primary abstraction is [RemoteClient], a thin authenticated JSON client
// that decouples the entity adapters from HTTP. The package ships an
// HTTP/REST implementation ([NewHTTPRemoteClient]) on top of resty.
//
// Error values defined in errors.go are mapped from HTTP status codes by
// mapHTTPError. They fall into two classes: [ErrNetwork] for conditions that
// may clear up on their own (transport failures, 401, 408, 429, 5xx) and
// [ErrRejected] for requests the remote store will never accept as sent.
// Callers use [errors.Is] or [Classify] to tell them apart.
package adapter

import (
	"context"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/remote_client_mock.go -package=mock

// RemoteClient performs authenticated JSON calls against the remote store.
// Every call carries a fresh identity token, when one is available, and is
// bounded by the configured request timeout.
type RemoteClient interface {
	// Call sends req and returns the 2xx response. Non-2xx replies are
	// returned as a [*StatusError] wrapping one of the sentinels of this
	// package.
	Call(ctx context.Context, req Request) (Response, error)
}
