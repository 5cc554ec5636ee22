// Copyright 2026 Canonical Ltd.
// Licensed under the AGPLv3, see LICENCE file for details.

package api

import (
	"github.com/juju/gamejolt/request"
	"github.com/juju/gamejolt/response"
)

// Listener receives the terminal outcome of a call. For a single call
// exactly one method is invoked. For a batch, Received is invoked once
// per sub-request in submission order, or Failed or Cancelled is
// invoked once for the whole batch.
type Listener interface {
	// Received is invoked with a decoded value and the request that
	// produced it. A value whose Outcome reports no success is still a
	// received value.
	Received(req request.Request, value response.Value)

	// Failed is invoked when the transport could not complete the call.
	Failed(err error)

	// Cancelled is invoked when the call was cancelled, or when a batch
	// response could not be correlated with its sub-requests.
	Cancelled()
}

// Handler handles a value from one endpoint.
type Handler func(req request.Request, value response.Value)

// Handlers is a Listener dispatching received values to a handler
// registered for the value's endpoint. Values with no registered
// handler, or of a type the handler does not expect, are logged and
// dropped.
type Handlers struct {
	logger      Logger
	handlers    map[request.Endpoint]Handler
	onFailed    func(error)
	onCancelled func()
}

// NewHandlers returns an empty Handlers which logs dropped values to
// logger.
func NewHandlers(logger Logger) *Handlers {
	return &Handlers{
		logger:   logger,
		handlers: make(map[request.Endpoint]Handler),
	}
}

// Handle registers h for values from endpoint, replacing any previous
// handler for it.
func (h *Handlers) Handle(endpoint request.Endpoint, handler Handler) *Handlers {
	h.handlers[endpoint] = handler
	return h
}

// OnFailed registers the transport failure callback.
func (h *Handlers) OnFailed(f func(error)) *Handlers {
	h.onFailed = f
	return h
}

// OnCancelled registers the cancellation callback.
func (h *Handlers) OnCancelled(f func()) *Handlers {
	h.onCancelled = f
	return h
}

// Received is part of the Listener interface.
func (h *Handlers) Received(req request.Request, value response.Value) {
	endpoint := req.Endpoint()
	handler, ok := h.handlers[endpoint]
	if !ok {
		h.logger.Warningf("no handler for %s value, dropping", endpoint)
		return
	}
	handler(req, value)
}

// Failed is part of the Listener interface.
func (h *Handlers) Failed(err error) {
	if h.onFailed == nil {
		h.logger.Warningf("unhandled call failure: %v", err)
		return
	}
	h.onFailed(err)
}

// Cancelled is part of the Listener interface.
func (h *Handlers) Cancelled() {
	if h.onCancelled == nil {
		h.logger.Warningf("unhandled call cancellation")
		return
	}
	h.onCancelled()
}

// HandleValue registers a typed handler for endpoint on h. A value of
// another type delivered for endpoint is logged and dropped.
func HandleValue[V response.Value](h *Handlers, endpoint request.Endpoint, handler func(request.Request, V)) *Handlers {
	return h.Handle(endpoint, func(req request.Request, value response.Value) {
		v, ok := value.(V)
		if !ok {
			h.logger.Warningf("%s handler expects %T, got %T, dropping", endpoint, *new(V), value)
			return
		}
		handler(req, v)
	})
}

// collector is a Listener accumulating a single outcome for Call and
// CallBatch.
type collector struct {
	values    []response.Value
	err       error
	cancelled bool
}

func (c *collector) Received(_ request.Request, value response.Value) {
	c.values = append(c.values, value)
}

func (c *collector) Failed(err error) {
	c.err = err
}

func (c *collector) Cancelled() {
	c.cancelled = true
}

func (c *collector) outcome() error {
	switch {
	case c.err != nil:
		return c.err
	case c.cancelled:
		return ErrCancelled
	}
	return nil
}
