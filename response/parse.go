// Copyright 2026 Canonical Ltd.
// Licensed under the AGPLv3, see LICENCE file for details.

package response

import (
	"bytes"

	"github.com/goccy/go-json"
	"github.com/juju/errors"
)

// Parse reads a response body into a JSON object tree. Numbers are kept
// as json.Number so that the decoders can coerce them without loss,
// whether the server sends them quoted or not.
func Parse(body []byte) (map[string]interface{}, error) {
	dec := json.NewDecoder(bytes.NewReader(body))
	dec.UseNumber()
	var tree map[string]interface{}
	if err := dec.Decode(&tree); err != nil {
		return nil, errors.Annotate(err, "parsing response body")
	}
	if tree == nil {
		return nil, errors.NotValidf("null response body")
	}
	return tree, nil
}

// Unwrap returns the payload of a response. Depending on the server
// version the payload is either wrapped in a "response" object or sent
// directly.
func Unwrap(tree map[string]interface{}) map[string]interface{} {
	if inner, ok := tree["response"].(map[string]interface{}); ok {
		return inner
	}
	return tree
}
