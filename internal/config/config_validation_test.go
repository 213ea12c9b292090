package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func validClientConfig() *ClientConfig {
	cfg := defaultConfig()
	cfg.Storage.DB.DSN = "./local.db"
	cfg.Adapter.HTTPAddress = "http://localhost:8080"
	cfg.Identity.TokenURL = "http://localhost:8080/api/auth/token"
	return NewClientConfig(cfg)
}

func TestClientConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(c *ClientConfig)
		wantErr error
	}{
		{name: "valid", mutate: func(c *ClientConfig) {}},
		{name: "empty dsn", mutate: func(c *ClientConfig) { c.Storage.DB.DSN = "" }, wantErr: ErrInvalidStorageConfigs},
		{name: "in-memory dsn", mutate: func(c *ClientConfig) { c.Storage.DB.DSN = ":memory:" }, wantErr: ErrInvalidStorageConfigs},
		{name: "no remote address", mutate: func(c *ClientConfig) { c.Adapter.HTTPAddress = "" }, wantErr: ErrInvalidAdapterConfigs},
		{name: "zero timeout", mutate: func(c *ClientConfig) { c.Adapter.RequestTimeout = 0 }, wantErr: ErrInvalidAdapterConfigs},
		{name: "no token url", mutate: func(c *ClientConfig) { c.Identity.TokenURL = "" }, wantErr: ErrInvalidIdentityConfigs},
		{name: "zero sync interval", mutate: func(c *ClientConfig) { c.Workers.SyncInterval = 0 }, wantErr: ErrInvalidWorkerConfigs},
		{name: "zero stable probes", mutate: func(c *ClientConfig) { c.Workers.StableProbes = 0 }, wantErr: ErrInvalidWorkerConfigs},
		{name: "cap below base", mutate: func(c *ClientConfig) { c.Workers.RetryCap = time.Second }, wantErr: ErrInvalidWorkerConfigs},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validClientConfig()
			tt.mutate(cfg)

			err := cfg.validate()
			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestServerConfig_Validate(t *testing.T) {
	base := func() *ServerConfig {
		cfg := defaultConfig()
		cfg.Server.HTTPAddress = "localhost:8080"
		cfg.App.TokenSignKey = "secret"
		cfg.App.TokenIssuer = "fittrackr"
		return NewServerConfig(cfg)
	}

	assert.NoError(t, base().validate())

	noAddr := base()
	noAddr.Server.HTTPAddress = ""
	assert.ErrorIs(t, noAddr.validate(), ErrInvalidServerConfigs)

	noKey := base()
	noKey.Auth.TokenSignKey = ""
	assert.ErrorIs(t, noKey.validate(), ErrInvalidAppConfigs)
}
