package config

import "errors"

// Validation errors returned by the config views when required
// configuration groups are incomplete or invalid.
var (
	// ErrInvalidAdapterConfigs indicates invalid remote client settings
	// (for example, missing base URL or request timeout).
	ErrInvalidAdapterConfigs = errors.New("invalid adapter configuration")
	// ErrInvalidStorageConfigs indicates invalid local store settings
	// (for example, empty DSN or a non-durable in-memory DSN).
	ErrInvalidStorageConfigs = errors.New("invalid storage configuration")
	// ErrInvalidAppConfigs indicates invalid token settings of the
	// reference server.
	ErrInvalidAppConfigs = errors.New("invalid app configuration")
	// ErrInvalidWorkerConfigs indicates invalid sync scheduling settings
	// (for example, zero sync interval or a backoff cap below its base).
	ErrInvalidWorkerConfigs = errors.New("invalid worker configuration")
	// ErrInvalidIdentityConfigs indicates a missing token refresh endpoint.
	ErrInvalidIdentityConfigs = errors.New("invalid identity configuration")
	// ErrInvalidServerConfigs indicates missing listen address or timeout of
	// the reference server.
	ErrInvalidServerConfigs = errors.New("invalid server configuration")
)
