// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"fmt"
	"strings"
)

// validate checks the merged [StructuredConfig] for values that are invalid
// regardless of which binary consumes it. Binary-specific requirements are
// checked by the view configs.
func (cfg *StructuredConfig) validate() error {
	if cfg.Workers.StableProbes < 0 {
		return fmt.Errorf("%w: negative stable probes", ErrInvalidWorkerConfigs)
	}

	return nil
}

func (cfg *ClientConfig) validate() error {
	dsn := strings.TrimSpace(cfg.Storage.DB.DSN)
	if dsn == "" || strings.Contains(dsn, "memory") {
		return ErrInvalidStorageConfigs
	}

	if cfg.Adapter.HTTPAddress == "" || cfg.Adapter.RequestTimeout <= 0 {
		return ErrInvalidAdapterConfigs
	}

	if cfg.Identity.TokenURL == "" {
		return ErrInvalidIdentityConfigs
	}

	w := cfg.Workers
	if w.SyncInterval <= 0 || w.ProbeInterval <= 0 || w.StableProbes <= 0 {
		return ErrInvalidWorkerConfigs
	}
	if w.RetryBase <= 0 || w.RetryCap < w.RetryBase {
		return ErrInvalidWorkerConfigs
	}

	return nil
}

func (cfg *ServerConfig) validate() error {
	if cfg.Server.HTTPAddress == "" || cfg.Server.RequestTimeout <= 0 {
		return ErrInvalidServerConfigs
	}

	if cfg.Auth.TokenSignKey == "" || cfg.Auth.TokenIssuer == "" || cfg.Auth.TokenDuration <= 0 {
		return ErrInvalidAppConfigs
	}

	return nil
}
