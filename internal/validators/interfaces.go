// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package validators checks user and catalog input against the business
// rules of the ledger before it reaches storage.
//
// Validators only report problems. Normalization (trimming names, folding
// unknown product types) stays with the caller.
package validators

import "context"

// Validator validates an arbitrary model value. Optional field names
// restrict validation to that subset of fields.
type Validator interface {
	Validate(context.Context, any, ...string) error
}
