package validators

import (
	"errors"
	"strings"
)

var (
	ErrUnsupportedType = errors.New("unsupported type for validation")
	ErrUnknownField    = errors.New("unknown field for validation")

	ErrInvalidOwnerID        = errors.New("invalid owner id")
	ErrUnknownCollection     = errors.New("unknown collection")
	ErrMissingRequiredFields = errors.New("missing required fields")
	ErrInvalidFieldValue     = errors.New("invalid field value")
)

// MissingFieldsError lists the required fields of a collection when at least
// one of them is absent. It matches [ErrMissingRequiredFields].
type MissingFieldsError struct {
	Required []string
	Missing  []string
}

func (e *MissingFieldsError) Error() string {
	return ErrMissingRequiredFields.Error() + ": " + strings.Join(e.Missing, ", ")
}

func (e *MissingFieldsError) Is(target error) bool {
	return target == ErrMissingRequiredFields
}
