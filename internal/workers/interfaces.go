// Package workers runs the background units of the sync client (the
// connectivity monitor and the sync job) as one supervised group.
package workers

import "context"

// Worker is a background unit that runs until ctx is done.
//
// Run returns nil on a clean stop. A non-nil error stops the whole group.
type Worker interface {
	Run(ctx context.Context) error
}

// WorkerFunc adapts a function to [Worker].
type WorkerFunc func(ctx context.Context) error

// Run calls f(ctx).
func (f WorkerFunc) Run(ctx context.Context) error {
	return f(ctx)
}
