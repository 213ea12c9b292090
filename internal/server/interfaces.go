package server

import "context"

// Server is the lifecycle contract of the reference remote store.
type Server interface {
	// Run serves requests until ctx is done or the listener fails, then
	// shuts the server down.
	Run(ctx context.Context) error

	// Shutdown gracefully stops the server.
	Shutdown(ctx context.Context) error
}
