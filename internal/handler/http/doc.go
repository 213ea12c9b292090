// Package http implements the REST surface of the reference remote store.
//
// It wires the chi routes of the document collections, the token endpoints
// and the health probe. Authentication, request tracing, access logging and
// response compression are handled as middleware before requests reach the
// service layer.
package http
