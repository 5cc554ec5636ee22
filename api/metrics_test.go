// Copyright 2026 Canonical Ltd.
// Licensed under the AGPLv3, see LICENCE file for details.

package api_test

import (
	"context"
	"strings"

	"github.com/juju/errors"
	"github.com/juju/loggo/v2"
	jc "github.com/juju/testing/checkers"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"go.uber.org/mock/gomock"
	gc "gopkg.in/check.v1"

	"github.com/juju/gamejolt/api"
	"github.com/juju/gamejolt/request"
)

type MetricsSuite struct {
	baseSuite
}

var _ = gc.Suite(&MetricsSuite{})

func (s *MetricsSuite) TestRequestsByOutcome(c *gc.C) {
	defer s.setupMocks(c).Finish()

	req, err := request.NewTimeFetch(gameID)
	c.Assert(err, jc.ErrorIsNil)
	gomock.InOrder(
		s.transport.EXPECT().Do(gomock.Any()).Return(respond(200, `{"response":`+timeItem+`}`), nil),
		s.transport.EXPECT().Do(gomock.Any()).Return(nil, errors.New("boom")),
	)
	client := s.newClient(c)
	var listener recordingListener
	c.Assert(client.Send(context.Background(), req, &listener), jc.ErrorIsNil)
	c.Assert(client.Send(context.Background(), req, &listener), jc.ErrorIsNil)

	err = testutil.CollectAndCompare(s.metrics, strings.NewReader(`
# HELP gamejolt_client_requests_total The number of calls by endpoint and terminal outcome.
# TYPE gamejolt_client_requests_total counter
gamejolt_client_requests_total{endpoint="time",outcome="failed"} 1
gamejolt_client_requests_total{endpoint="time",outcome="received"} 1
`), "gamejolt_client_requests_total")
	c.Assert(err, jc.ErrorIsNil)
	c.Check(testutil.CollectAndCount(s.metrics, "gamejolt_client_request_duration_seconds"), gc.Equals, 1)
}

func (s *MetricsSuite) TestBatch(c *gc.C) {
	defer s.setupMocks(c).Finish()

	batch, _ := s.newBatch(c, request.BatchParams{})
	s.expectBody(`{"response":{"success":"false"}}`)

	var listener recordingListener
	c.Assert(s.newClient(c).SendBatch(context.Background(), batch, &listener), jc.ErrorIsNil)

	err := testutil.CollectAndCompare(s.metrics, strings.NewReader(`
# HELP gamejolt_client_requests_total The number of calls by endpoint and terminal outcome.
# TYPE gamejolt_client_requests_total counter
gamejolt_client_requests_total{endpoint="batch",outcome="cancelled"} 1
`), "gamejolt_client_requests_total")
	c.Assert(err, jc.ErrorIsNil)
	c.Check(testutil.CollectAndCount(s.metrics, "gamejolt_client_batch_size"), gc.Equals, 1)
}

func (s *MetricsSuite) TestNilCollector(c *gc.C) {
	defer s.setupMocks(c).Finish()

	req, err := request.NewTimeFetch(gameID)
	c.Assert(err, jc.ErrorIsNil)
	s.expectBody(`{"response":` + timeItem + `}`)

	client, err := api.NewClient(api.Config{
		PrivateKey: key,
		Transport:  s.transport,
		Logger:     loggo.GetLogger("gamejolt.api.test"),
		Clock:      s.clock,
	})
	c.Assert(err, jc.ErrorIsNil)
	_, err = client.Call(context.Background(), req)
	c.Assert(err, jc.ErrorIsNil)
}
