package config

import (
	"fmt"
	"strings"
	"time"
)

// ClientApp holds client-side application settings.
type ClientApp struct {
	// Version is reported in the User-Agent of remote calls.
	Version string
}

// ClientAdapter holds the settings of the remote client and the
// connectivity probe.
type ClientAdapter struct {
	// HTTPAddress is the base URL of the remote store.
	HTTPAddress string
	// RequestTimeout bounds every remote call.
	RequestTimeout time.Duration
	// HealthPath is the path probed by the connectivity monitor.
	HealthPath string
}

// ClientDB contains local database connection settings for the client.
type ClientDB struct {
	// DSN is the SQLite file path.
	DSN string
}

// ClientStorage groups client storage backend settings.
type ClientStorage struct {
	DB ClientDB
}

// ClientIdentity holds the identity token refresh settings.
type ClientIdentity struct {
	TokenURL string
	APIKey   string
}

// ClientWorkers contains the sync job and connectivity monitor settings.
type ClientWorkers struct {
	SyncInterval       time.Duration
	ProbeInterval      time.Duration
	StableProbes       int
	RetryBase          time.Duration
	RetryCap           time.Duration
	QuarantineRejected bool
	TriggerOnWrite     bool
}

// ClientLog holds the client log file location.
type ClientLog struct {
	FilePath string
}

// ClientConfig is the top-level client configuration assembled from
// [StructuredConfig].
type ClientConfig struct {
	App      ClientApp
	Adapter  ClientAdapter
	Storage  ClientStorage
	Identity ClientIdentity
	Workers  ClientWorkers
	Log      ClientLog

	// Args is the client command with its arguments.
	Args []string
}

// GetClientConfig builds and validates a client-specific config view from the
// merged structured configuration.
func GetClientConfig() (*ClientConfig, error) {
	cfg, err := GetStructuredConfig()
	if err != nil {
		return nil, fmt.Errorf("error get structured config: %w", err)
	}

	clientCfg := NewClientConfig(cfg)
	return clientCfg, clientCfg.validate()
}

// NewClientConfig maps the fields of cfg relevant to the client runtime.
func NewClientConfig(cfg *StructuredConfig) *ClientConfig {
	return &ClientConfig{
		App: ClientApp{Version: cfg.App.Version},
		Adapter: ClientAdapter{
			HTTPAddress:    cfg.Adapter.HTTPAddress,
			RequestTimeout: cfg.Adapter.RequestTimeout,
			HealthPath:     cfg.Adapter.HealthPath,
		},
		Storage: ClientStorage{
			DB: ClientDB{DSN: cfg.Storage.DB.DSN},
		},
		Identity: ClientIdentity{
			TokenURL: tokenURLOrDefault(cfg.Identity.TokenURL, cfg.Adapter.HTTPAddress),
			APIKey:   cfg.Identity.APIKey,
		},
		Workers: ClientWorkers{
			SyncInterval:       cfg.Workers.SyncInterval,
			ProbeInterval:      cfg.Workers.ProbeInterval,
			StableProbes:       cfg.Workers.StableProbes,
			RetryBase:          cfg.Workers.RetryBase,
			RetryCap:           cfg.Workers.RetryCap,
			QuarantineRejected: cfg.Workers.QuarantineRejected,
			TriggerOnWrite:     cfg.Workers.TriggerOnWrite,
		},
		Log:  ClientLog{FilePath: cfg.Log.FilePath},
		Args: cfg.Args,
	}
}

// referenceTokenPath is the refresh-token endpoint of the reference remote
// store, used when no identity token URL is configured.
const referenceTokenPath = "/api/auth/token"

func tokenURLOrDefault(tokenURL, remoteAddress string) string {
	if tokenURL != "" || remoteAddress == "" {
		return tokenURL
	}

	base := strings.TrimRight(remoteAddress, "/")
	if !strings.Contains(base, "://") {
		base = "http://" + base
	}
	return base + referenceTokenPath
}
