// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package validators checks the documents accepted by the reference remote
// store before they reach storage.
//
// A [Validator] is injected into the document service through a wrapper, so
// that handlers and storage stay free of field-level rules. Validate may be
// scoped to a subset of rules by passing their names.
package validators

import "context"

// Validator validates arbitrary input values.
type Validator interface {
	// Validate validates the provided input and optionally restricts
	// validation to the named rules.
	Validate(context.Context, any, ...string) error
}
