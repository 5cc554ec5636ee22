// Copyright 2026 Canonical Ltd.
// Licensed under the AGPLv3, see LICENCE file for details.

package api

import (
	"context"
	"io"
	"net/http"
	"net/http/httputil"
	"time"

	"github.com/juju/errors"
)

// JSON is the MIME type requested from the server.
const JSON = "application/json"

// maxBodySize bounds the response bodies read from the server.
const maxBodySize = 16 << 20

// Transport defines a type for making the actual request.
type Transport interface {
	// Do performs the *http.Request and returns a *http.Response or an error
	// if it fails to construct the transport.
	Do(*http.Request) (*http.Response, error)
}

// DefaultHTTPTransport returns an HTTP client with the given overall
// timeout for each exchange. Timeouts are left entirely to the
// transport; the client adds none of its own.
func DefaultHTTPTransport(timeout time.Duration) Transport {
	return &http.Client{Timeout: timeout}
}

// APIRequester creates a wrapper around the transport to allow for better
// error handling.
type APIRequester struct {
	transport Transport
	logger    Logger
}

// NewAPIRequester creates a new requester for making requests to the
// server through transport.
func NewAPIRequester(transport Transport, logger Logger) *APIRequester {
	return &APIRequester{
		transport: transport,
		logger:    logger,
	}
}

// Do performs the *http.Request and returns a *http.Response with a 2xx
// status, or an error. A 404 is reported as a NotFound error.
func (t *APIRequester) Do(req *http.Request) (*http.Response, error) {
	if t.logger.IsTraceEnabled() {
		if data, err := httputil.DumpRequest(req, true); err == nil {
			t.logger.Tracef("%s request %s", req.Method, data)
		} else {
			t.logger.Tracef("%s request DumpRequest error %s", req.Method, err.Error())
		}
	}

	resp, err := t.transport.Do(req)
	if err != nil {
		return nil, errors.Trace(err)
	}

	if t.logger.IsTraceEnabled() {
		if data, err := httputil.DumpResponse(resp, true); err == nil {
			t.logger.Tracef("%s response %s", req.Method, data)
		} else {
			t.logger.Tracef("%s response DumpResponse error %s", req.Method, err.Error())
		}
	}

	if resp.StatusCode >= http.StatusOK && resp.StatusCode <= http.StatusNoContent {
		return resp, nil
	}

	defer func() {
		_, _ = io.Copy(io.Discard, resp.Body)
		_ = resp.Body.Close()
	}()
	if resp.StatusCode == http.StatusNotFound {
		return nil, errors.NotFoundf("%q", req.URL.Redacted())
	}
	t.logger.Errorf("%s %s responded with status %q", req.Method, req.URL.Redacted(), resp.Status)
	if resp.StatusCode >= http.StatusInternalServerError {
		return nil, errors.Errorf("server error %q", req.URL.Redacted())
	}
	return nil, errors.Errorf("unexpected status %d from %q", resp.StatusCode, req.URL.Redacted())
}

// Get performs a GET of url and returns the response body.
func (t *APIRequester) Get(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, errors.Annotate(err, "can not make new request")
	}
	req.Header.Set("Accept", JSON)

	resp, err := t.Do(req)
	if err != nil {
		return nil, errors.Trace(err)
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize+1))
	if err != nil {
		return nil, errors.Annotate(err, "reading response body")
	}
	if len(body) > maxBodySize {
		return nil, errors.NotValidf("response larger than %d bytes", maxBodySize)
	}
	return body, nil
}
