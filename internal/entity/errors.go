package entity

import (
	"errors"
	"fmt"

	"github.com/ST10257746/prog7314-part1-sub000/internal/adapter"
)

var (
	// ErrInvalidPayload is returned when a record payload cannot be encoded
	// into its wire form. It belongs to the rejected class since retrying
	// the same payload cannot succeed.
	ErrInvalidPayload = fmt.Errorf("%w: invalid payload", adapter.ErrRejected)

	// ErrEntityMismatch is returned when a record is handed to the adapter of
	// another entity type.
	ErrEntityMismatch = fmt.Errorf("%w: entity type mismatch", adapter.ErrRejected)
)

// ErrLocalRead is returned when an adapter fails to read supporting rows from
// the local record store. It says nothing about the record itself.
var ErrLocalRead = errors.New("local record store read failed")

var (
	// ErrMissingAdapter is returned by [NewRegistry] when an entity type has
	// no adapter, and by [Registry.Adapter] for unknown types.
	ErrMissingAdapter = errors.New("no adapter registered for entity type")
	// ErrDuplicateAdapter is returned by [NewRegistry] when an entity type has
	// more than one adapter.
	ErrDuplicateAdapter = errors.New("duplicate adapter for entity type")
)
