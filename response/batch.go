// Copyright 2026 Canonical Ltd.
// Licensed under the AGPLv3, see LICENCE file for details.

package response

import (
	"github.com/juju/errors"
	"github.com/juju/schema"

	"github.com/juju/gamejolt/request"
)

var batchChecker = schema.FieldMap(
	schema.Fields{
		"success":   schema.Bool(),
		"message":   schema.String(),
		"responses": schema.List(schema.StringMap(schema.Any())),
	},
	schema.Defaults{
		"success":   false,
		"message":   "",
		"responses": schema.Omit,
	},
)

// DecodeBatch demultiplexes a batch response body. The i-th value
// answers the i-th sub-request of b; the protocol is positional.
//
// The whole batch is rejected with ErrBatchFailed when the envelope does
// not report success, even if some sub-requests completed before a
// break on error. ErrCountMismatch is returned when the number of
// answers differs from the number of sub-requests, and a DecodeError
// when any single answer is malformed. No values are returned in any of
// these cases.
func DecodeBatch(b *request.BatchRequest, body []byte) ([]Value, error) {
	tree, err := Parse(body)
	if err != nil {
		return nil, errors.Annotate(ErrBatchFailed, err.Error())
	}
	coerced, err := batchChecker.Coerce(Unwrap(tree), nil)
	if err != nil {
		return nil, errors.Annotate(ErrBatchFailed, err.Error())
	}
	valid := coerced.(map[string]interface{})
	if !valid["success"].(bool) {
		if message := valid["message"].(string); message != "" {
			return nil, errors.Annotate(ErrBatchFailed, message)
		}
		return nil, ErrBatchFailed
	}

	items := list(valid, "responses")
	reqs := b.Requests()
	if len(items) != len(reqs) {
		return nil, errors.Annotatef(ErrCountMismatch, "sent %d, received %d", len(reqs), len(items))
	}

	values := make([]Value, len(items))
	for i, item := range items {
		value, err := Decode(reqs[i], item.(map[string]interface{}))
		if err != nil {
			return nil, errors.Annotatef(err, "sub-request %d", i)
		}
		values[i] = value
	}
	return values, nil
}
