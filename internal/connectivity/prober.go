package connectivity

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/ST10257746/prog7314-part1-sub000/internal/config"
	"github.com/ST10257746/prog7314-part1-sub000/internal/utils"
)

// HTTPProber probes the health endpoint of the remote store. Only a 2xx
// reply counts as reachable.
type HTTPProber struct {
	client *utils.HTTPClient
	url    string
}

// NewHTTPProber builds a prober for cfg.HTTPAddress + cfg.HealthPath.
func NewHTTPProber(cfg config.ClientAdapter) *HTTPProber {
	base := strings.TrimRight(strings.TrimSpace(cfg.HTTPAddress), "/")
	if base != "" && !strings.Contains(base, "://") {
		base = "http://" + base
	}
	path := cfg.HealthPath
	if path == "" {
		path = config.DefaultHealthPath
	}
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}

	timeout := cfg.RequestTimeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}

	client := utils.NewHTTPClient()
	client.SetTimeout(timeout)

	return &HTTPProber{client: client, url: base + path}
}

// Probe implements [Prober].
func (p *HTTPProber) Probe(ctx context.Context) error {
	resp, err := p.client.R().SetContext(ctx).Get(p.url)
	if err != nil {
		return fmt.Errorf("health probe: %w", err)
	}
	if !resp.IsSuccess() {
		return fmt.Errorf("health probe: http %d", resp.StatusCode())
	}
	return nil
}
