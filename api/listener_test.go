// Copyright 2026 Canonical Ltd.
// Licensed under the AGPLv3, see LICENCE file for details.

package api_test

import (
	"fmt"

	"github.com/juju/errors"
	"github.com/juju/testing"
	jc "github.com/juju/testing/checkers"
	gc "gopkg.in/check.v1"

	"github.com/juju/gamejolt/api"
	"github.com/juju/gamejolt/request"
	"github.com/juju/gamejolt/response"
)

// warningLogger records warnings and discards everything else.
type warningLogger struct {
	warnings []string
}

func (l *warningLogger) IsTraceEnabled() bool          { return false }
func (l *warningLogger) Tracef(string, ...interface{}) {}
func (l *warningLogger) Debugf(string, ...interface{}) {}
func (l *warningLogger) Errorf(string, ...interface{}) {}

func (l *warningLogger) Warningf(format string, args ...interface{}) {
	l.warnings = append(l.warnings, fmt.Sprintf(format, args...))
}

type HandlersSuite struct {
	testing.IsolationSuite

	logger *warningLogger
	req    request.Request
}

var _ = gc.Suite(&HandlersSuite{})

func (s *HandlersSuite) SetUpTest(c *gc.C) {
	s.IsolationSuite.SetUpTest(c)
	s.logger = &warningLogger{}
	var err error
	s.req, err = request.NewTimeFetch(gameID)
	c.Assert(err, jc.ErrorIsNil)
}

func (s *HandlersSuite) timeValue(c *gc.C) response.Value {
	value, err := response.DecodeBody(s.req, []byte(timeItem))
	c.Assert(err, jc.ErrorIsNil)
	return value
}

func (s *HandlersSuite) TestHandleValue(c *gc.C) {
	var got []response.TimeValue
	h := api.HandleValue(api.NewHandlers(s.logger), request.TimeFetch,
		func(req request.Request, v response.TimeValue) {
			c.Check(req == s.req, jc.IsTrue)
			got = append(got, v)
		})

	h.Received(s.req, s.timeValue(c))
	c.Assert(got, gc.HasLen, 1)
	c.Check(got[0].Year, gc.Equals, 2021)
	c.Check(s.logger.warnings, gc.HasLen, 0)
}

func (s *HandlersSuite) TestUnregisteredEndpointDropped(c *gc.C) {
	h := api.HandleValue(api.NewHandlers(s.logger), request.ScoresFetch,
		func(request.Request, response.ScoresValue) {
			c.Fatalf("unexpected delivery")
		})

	h.Received(s.req, s.timeValue(c))
	c.Assert(s.logger.warnings, gc.DeepEquals, []string{"no handler for time value, dropping"})
}

func (s *HandlersSuite) TestMismatchedValueDropped(c *gc.C) {
	h := api.HandleValue(api.NewHandlers(s.logger), request.TimeFetch,
		func(request.Request, response.ScoresValue) {
			c.Fatalf("unexpected delivery")
		})

	h.Received(s.req, s.timeValue(c))
	c.Assert(s.logger.warnings, gc.DeepEquals, []string{
		"time handler expects response.ScoresValue, got response.TimeValue, dropping",
	})
}

func (s *HandlersSuite) TestFailedAndCancelled(c *gc.C) {
	var (
		failed    error
		cancelled bool
	)
	h := api.NewHandlers(s.logger).
		OnFailed(func(err error) { failed = err }).
		OnCancelled(func() { cancelled = true })

	h.Failed(errors.New("boom"))
	h.Cancelled()
	c.Check(failed, gc.ErrorMatches, "boom")
	c.Check(cancelled, jc.IsTrue)
	c.Check(s.logger.warnings, gc.HasLen, 0)
}

func (s *HandlersSuite) TestUnhandledOutcomesLogged(c *gc.C) {
	h := api.NewHandlers(s.logger)
	h.Failed(errors.New("boom"))
	h.Cancelled()
	c.Check(s.logger.warnings, gc.DeepEquals, []string{
		"unhandled call failure: boom",
		"unhandled call cancellation",
	})
}
