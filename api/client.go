// Copyright 2026 Canonical Ltd.
// Licensed under the AGPLv3, see LICENCE file for details.

package api

import (
	"context"

	"github.com/google/uuid"
	"github.com/juju/errors"
	"github.com/kr/pretty"

	"github.com/juju/gamejolt/request"
	"github.com/juju/gamejolt/response"
	"github.com/juju/gamejolt/signature"
)

// ErrCancelled is returned by Call and CallBatch when the listener was
// told the call was cancelled.
const ErrCancelled = errors.ConstError("call cancelled")

// Client dispatches signed requests to the game API. A Client holds no
// mutable state and may be used by concurrent goroutines.
type Client struct {
	config    Config
	root      string
	requester *APIRequester
}

// NewClient returns a Client for config.
func NewClient(config Config) (*Client, error) {
	if err := config.Validate(); err != nil {
		return nil, errors.Trace(err)
	}
	return &Client{
		config:    config,
		root:      config.root(),
		requester: NewAPIRequester(config.Transport, config.Logger),
	}, nil
}

// URL returns the signed absolute URL for req. The signature covers the
// path relative to the versioned root, including the query.
func (c *Client) URL(req request.Request) string {
	if b, ok := req.(*request.BatchRequest); ok {
		return c.batchURL(b)
	}
	return c.root + signature.Append(request.Encode(req), c.config.PrivateKey)
}

func (c *Client) batchURL(b *request.BatchRequest) string {
	reqs := b.Requests()
	signed := make([]string, len(reqs))
	for i, req := range reqs {
		signed[i] = signature.Append(request.Encode(req), c.config.PrivateKey)
	}
	return c.root + signature.Append(request.EncodeBatch(b, signed), c.config.PrivateKey)
}

// Send dispatches req and reports its outcome to listener before
// returning. A batch request is dispatched as by SendBatch.
//
// Transport failures and cancellation are reported to listener only.
// A response that does not follow the protocol is returned as a
// *response.DecodeError and listener is not notified.
func (c *Client) Send(ctx context.Context, req request.Request, listener Listener) error {
	if b, ok := req.(*request.BatchRequest); ok {
		return c.SendBatch(ctx, b, listener)
	}
	callID := uuid.NewString()
	endpoint := req.Endpoint()

	body, ok := c.exchange(ctx, callID, endpoint, c.URL(req), listener)
	if !ok {
		return nil
	}
	value, err := response.DecodeBody(req, body)
	if err != nil {
		c.config.Logger.Errorf("call %s: %v", callID, err)
		c.config.Metrics.outcome(endpoint, OutcomeFailed)
		return errors.Trace(err)
	}
	c.traceValue(callID, value)
	c.config.Metrics.outcome(endpoint, OutcomeReceived)
	listener.Received(req, value)
	return nil
}

// SendBatch dispatches every sub-request of b in one call. On success
// listener receives one value per sub-request, in submission order.
//
// When the batch envelope reports failure, the answer count differs from
// the sub-request count, or any answer is malformed, listener is told
// the batch was cancelled and receives no values. The cause is logged.
func (c *Client) SendBatch(ctx context.Context, b *request.BatchRequest, listener Listener) error {
	callID := uuid.NewString()
	c.config.Metrics.batch(b.Len())

	body, ok := c.exchange(ctx, callID, request.Batch, c.batchURL(b), listener)
	if !ok {
		return nil
	}
	values, err := response.DecodeBatch(b, body)
	if err != nil {
		c.config.Logger.Warningf("call %s: batch of %d cancelled: %v", callID, b.Len(), err)
		c.config.Metrics.outcome(request.Batch, OutcomeCancelled)
		listener.Cancelled()
		return nil
	}
	c.config.Metrics.outcome(request.Batch, OutcomeReceived)
	reqs := b.Requests()
	for i, value := range values {
		c.traceValue(callID, value)
		listener.Received(reqs[i], value)
	}
	return nil
}

// exchange performs the HTTP call. It returns false once listener has
// been notified of a transport failure or cancellation.
func (c *Client) exchange(
	ctx context.Context, callID string, endpoint request.Endpoint, url string, listener Listener,
) ([]byte, bool) {
	c.config.Logger.Debugf("call %s: %s", callID, endpoint)

	start := c.config.Clock.Now()
	body, err := c.requester.Get(ctx, url)
	elapsed := c.config.Clock.Now().Sub(start)
	c.config.Metrics.duration(endpoint, elapsed)

	switch {
	case err == nil:
		c.config.Logger.Debugf("call %s: %s answered in %v", callID, endpoint, elapsed)
		return body, true
	case ctx.Err() != nil || errors.Is(err, context.Canceled):
		c.config.Logger.Debugf("call %s: %s cancelled: %v", callID, endpoint, err)
		c.config.Metrics.outcome(endpoint, OutcomeCancelled)
		listener.Cancelled()
	default:
		c.config.Logger.Debugf("call %s: %s failed: %v", callID, endpoint, err)
		c.config.Metrics.outcome(endpoint, OutcomeFailed)
		listener.Failed(errors.Annotatef(err, "%s", endpoint))
	}
	return nil, false
}

func (c *Client) traceValue(callID string, value response.Value) {
	if c.config.Logger.IsTraceEnabled() {
		c.config.Logger.Tracef("call %s: %s value %s", callID, value.Endpoint(), pretty.Sprint(value))
	}
}

// Call dispatches req and returns its value. Transport failures are
// returned as errors and cancellation as ErrCancelled. Batch requests
// must use CallBatch.
func (c *Client) Call(ctx context.Context, req request.Request) (response.Value, error) {
	if _, ok := req.(*request.BatchRequest); ok {
		return nil, errors.NotSupportedf("batch request in Call")
	}
	var result collector
	if err := c.Send(ctx, req, &result); err != nil {
		return nil, errors.Trace(err)
	}
	if err := result.outcome(); err != nil {
		return nil, errors.Trace(err)
	}
	return result.values[0], nil
}

// CallBatch dispatches b and returns one value per sub-request, in
// submission order.
func (c *Client) CallBatch(ctx context.Context, b *request.BatchRequest) ([]response.Value, error) {
	var result collector
	if err := c.SendBatch(ctx, b, &result); err != nil {
		return nil, errors.Trace(err)
	}
	if err := result.outcome(); err != nil {
		return nil, errors.Trace(err)
	}
	return result.values, nil
}
