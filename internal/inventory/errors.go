// Copyright (c) 2025 Henoct Shimanga <henoctshimanga@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package inventory

import "fmt"

// ParseError is fatal: the structured-inventory output (or a canonical JSON
// document handed to ParseJSON) was present but could not be decoded into
// the model. The builder never falls back to scalar reconstruction on a
// present-but-invalid value; that would silently emit an inventory built
// from stale data.
type ParseError struct {
	Key string
	Err error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("invalid %s document: %v", e.Key, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}
