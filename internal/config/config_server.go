package config

import (
	"fmt"
	"time"
)

// ServerAuth holds the token settings of the reference remote store.
type ServerAuth struct {
	TokenSignKey         string
	TokenIssuer          string
	TokenDuration        time.Duration
	RefreshTokenDuration time.Duration
}

// ServerConfig is the configuration view of the reference remote store.
type ServerConfig struct {
	Server  Server
	Auth    ServerAuth
	Version string
}

// GetServerConfig builds and validates the reference server config view.
func GetServerConfig() (*ServerConfig, error) {
	cfg, err := GetStructuredConfig()
	if err != nil {
		return nil, fmt.Errorf("error get structured config: %w", err)
	}

	serverCfg := NewServerConfig(cfg)
	return serverCfg, serverCfg.validate()
}

// NewServerConfig maps the fields of cfg relevant to the reference server.
func NewServerConfig(cfg *StructuredConfig) *ServerConfig {
	return &ServerConfig{
		Server: cfg.Server,
		Auth: ServerAuth{
			TokenSignKey:         cfg.App.TokenSignKey,
			TokenIssuer:          cfg.App.TokenIssuer,
			TokenDuration:        cfg.App.TokenDuration,
			RefreshTokenDuration: cfg.App.RefreshTokenDuration,
		},
		Version: cfg.App.Version,
	}
}
