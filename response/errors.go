// Copyright 2026 Canonical Ltd.
// Licensed under the AGPLv3, see LICENCE file for details.

package response

import (
	"fmt"

	"github.com/juju/errors"

	"github.com/juju/gamejolt/request"
)

const (
	// ErrBatchFailed is returned when the outer batch envelope does not
	// report success.
	ErrBatchFailed = errors.ConstError("batch failed")

	// ErrCountMismatch is returned when a batch answers a different
	// number of sub-requests than were submitted.
	ErrCountMismatch = errors.ConstError("batch response count mismatch")
)

// DecodeError reports a response that does not follow the protocol, such
// as a missing success flag or an unknown enumeration value. It is
// distinct from a well formed response reporting failure.
type DecodeError struct {
	Endpoint request.Endpoint
	Err      error
}

// Error implements error.
func (e *DecodeError) Error() string {
	return fmt.Sprintf("decoding %s response: %v", e.Endpoint, e.Err)
}

// Unwrap returns the underlying cause.
func (e *DecodeError) Unwrap() error {
	return e.Err
}

// IsDecodeError reports whether err is, or wraps, a DecodeError.
func IsDecodeError(err error) bool {
	var target *DecodeError
	return errors.As(err, &target)
}

func decodeError(endpoint request.Endpoint, err error) error {
	return &DecodeError{Endpoint: endpoint, Err: err}
}
