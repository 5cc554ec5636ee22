// Copyright 2026 Canonical Ltd.
// Licensed under the AGPLv3, see LICENCE file for details.

package request

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/google/go-querystring/query"
)

// Encode returns the canonical path and query string of a request,
// without the base URL or signature. The result only depends on the
// request, so encoding the same request twice gives identical strings.
//
// A batch request encodes to its outer call without sub-requests; use
// EncodeBatch to include them.
func Encode(req Request) string {
	return encode(req.Endpoint(), req.query())
}

// EncodeBatch returns the canonical outer call of a batch. Each entry of
// signed is an already signed sub-request URL, in submission order.
func EncodeBatch(b *BatchRequest, signed []string) string {
	p := b.query().(batchParams)
	p.Requests = signed
	return encode(Batch, p)
}

func encode(endpoint Endpoint, params interface{}) string {
	values, err := query.Values(params)
	if err != nil {
		// Parameters are validated when the request is built, so this
		// is a programming error.
		panic(fmt.Sprintf("encoding %s parameters: %v", endpoint, err))
	}

	var buf strings.Builder
	buf.WriteString(endpoint.Path())
	sep := byte('?')
	for _, name := range endpointParams[endpoint] {
		for _, value := range values[name] {
			buf.WriteByte(sep)
			buf.WriteString(name)
			buf.WriteByte('=')
			buf.WriteString(Escape(value))
			sep = '&'
		}
	}
	return buf.String()
}

// Escape percent-encodes a query value, rendering spaces as %20 rather
// than '+'.
func Escape(value string) string {
	return strings.ReplaceAll(url.QueryEscape(value), "+", "%20")
}
