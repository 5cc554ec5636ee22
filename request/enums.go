// Copyright 2026 Canonical Ltd.
// Licensed under the AGPLv3, see LICENCE file for details.

package request

import (
	"net/url"
	"strings"

	"github.com/juju/errors"
)

// SessionStatus is the activity state reported with a session ping.
type SessionStatus int

const (
	// SessionStatusUnset leaves the status out of the ping.
	SessionStatusUnset SessionStatus = iota
	SessionActive
	SessionIdle
)

var sessionStatusNames = map[SessionStatus]string{
	SessionActive: "active",
	SessionIdle:   "idle",
}

// String returns the protocol name of the status.
func (s SessionStatus) String() string {
	return sessionStatusNames[s]
}

// EncodeValues implements query.Encoder so the status is written
// using its protocol name.
func (s SessionStatus) EncodeValues(key string, v *url.Values) error {
	name, ok := sessionStatusNames[s]
	if !ok {
		return errors.NotValidf("session status %d", int(s))
	}
	v.Add(key, name)
	return nil
}

// ParseSessionStatus returns the status with the given protocol name.
func ParseSessionStatus(name string) (SessionStatus, error) {
	for status, n := range sessionStatusNames {
		if strings.EqualFold(n, name) {
			return status, nil
		}
	}
	return SessionStatusUnset, errors.NotValidf("session status %q", name)
}

// Operation is the arithmetic or string operation applied by a
// data-store update.
type Operation int

const (
	OperationUnset Operation = iota
	OperationAdd
	OperationSubtract
	OperationMultiply
	OperationDivide
	OperationAppend
	OperationPrepend
)

var operationNames = map[Operation]string{
	OperationAdd:      "add",
	OperationSubtract: "subtract",
	OperationMultiply: "multiply",
	OperationDivide:   "divide",
	OperationAppend:   "append",
	OperationPrepend:  "prepend",
}

// String returns the protocol name of the operation.
func (o Operation) String() string {
	return operationNames[o]
}

// EncodeValues implements query.Encoder.
func (o Operation) EncodeValues(key string, v *url.Values) error {
	name, ok := operationNames[o]
	if !ok {
		return errors.NotValidf("operation %d", int(o))
	}
	v.Add(key, name)
	return nil
}

// ParseOperation returns the operation with the given protocol name.
func ParseOperation(name string) (Operation, error) {
	for op, n := range operationNames {
		if strings.EqualFold(n, name) {
			return op, nil
		}
	}
	return OperationUnset, errors.NotValidf("operation %q", name)
}
