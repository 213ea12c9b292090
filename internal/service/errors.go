package service

import "errors"

var (
	ErrNoOwner          = errors.New("no signed-in owner")
	ErrEmptyPayload     = errors.New("payload is empty")
	ErrInvalidPayload   = errors.New("payload is not a valid document")
	ErrUnknownEntity    = errors.New("unknown entity type")
	ErrNotCustomWorkout = errors.New("record is not a custom workout")
	ErrStoreFailure     = errors.New("local store failure")

	ErrVersionIsNotSpecified = errors.New("app version is not specified")
)

// Reference remote store errors.
var (
	ErrInvalidDataProvided = errors.New("invalid data provided")
	ErrInvalidToken        = errors.New("invalid token")
	ErrTokenIsExpired      = errors.New("token is expired")
	ErrWrongTokenUse       = errors.New("wrong token use")
	ErrNotOwner            = errors.New("document belongs to another owner")
	ErrDocumentNotFound    = errors.New("document not found")
	ErrUnknownCollection   = errors.New("unknown collection")
)
