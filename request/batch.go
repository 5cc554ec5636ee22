// Copyright 2026 Canonical Ltd.
// Licensed under the AGPLv3, see LICENCE file for details.

package request

import (
	"github.com/juju/errors"
)

// BatchParams control how the server processes a batch.
type BatchParams struct {
	GameID string

	// Parallel asks the server to run the sub-requests concurrently.
	Parallel bool

	// BreakOnError stops processing at the first failing sub-request.
	BreakOnError bool
}

// BatchRequest groups sub-requests into one call. The server answers
// with one response per processed sub-request, in submission order.
type BatchRequest struct {
	base
	parallel     bool
	breakOnError bool
	requests     []Request
}

// NewBatch returns a validated batch of the given sub-requests. Parallel
// and BreakOnError are mutually exclusive and batches cannot be nested.
func NewBatch(p BatchParams, requests ...Request) (*BatchRequest, error) {
	if err := checkGameID(p.GameID); err != nil {
		return nil, errors.Trace(err)
	}
	if p.Parallel && p.BreakOnError {
		return nil, errors.NotValidf("parallel with break on error")
	}
	if len(requests) == 0 {
		return nil, errors.NotValidf("empty batch")
	}
	for i, req := range requests {
		if req == nil {
			return nil, errors.NotValidf("nil sub-request %d", i)
		}
		if req.Endpoint() == Batch {
			return nil, errors.NotValidf("nested batch at sub-request %d", i)
		}
	}
	return &BatchRequest{
		base:         base{Batch, p.GameID},
		parallel:     p.Parallel,
		breakOnError: p.BreakOnError,
		requests:     append([]Request(nil), requests...),
	}, nil
}

// Requests returns the sub-requests in submission order.
func (b *BatchRequest) Requests() []Request {
	return append([]Request(nil), b.requests...)
}

// Len returns the number of sub-requests.
func (b *BatchRequest) Len() int {
	return len(b.requests)
}

// Parallel reports whether the server may run sub-requests concurrently.
func (b *BatchRequest) Parallel() bool {
	return b.parallel
}

// BreakOnError reports whether the server stops at the first failure.
func (b *BatchRequest) BreakOnError() bool {
	return b.breakOnError
}

// query is only used to satisfy Request; the outer call carries signed
// sub-requests and is built by EncodeBatch.
func (b *BatchRequest) query() interface{} {
	return batchParams{GameID: b.gameID, Parallel: b.parallel, BreakOnError: b.breakOnError}
}

type batchParams struct {
	GameID       string   `url:"game_id"`
	Parallel     bool     `url:"parallel,omitempty"`
	BreakOnError bool     `url:"break_on_error,omitempty"`
	Requests     []string `url:"requests[]"`
}
