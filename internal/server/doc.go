// Package server runs the HTTP server of the reference remote store and
// shuts it down gracefully when its context is cancelled.
package server
