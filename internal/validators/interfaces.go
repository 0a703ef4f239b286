// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package validators checks user input before it reaches the services:
// credentials on register/login and print job parameters on submit,
// cancel and progress reports.
//
// A Validator accepts a value and optional field names; with no names every
// known field of the value is checked.
package validators

import "context"

// Validator validates a value, optionally restricted to the named fields.
type Validator interface {
	Validate(context.Context, any, ...string) error
}
