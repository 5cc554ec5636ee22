// Copyright 2026 Canonical Ltd.
// Licensed under the AGPLv3, see LICENCE file for details.

package api_test

import (
	"context"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/juju/clock/testclock"
	"github.com/juju/errors"
	"github.com/juju/loggo/v2"
	"github.com/juju/testing"
	jc "github.com/juju/testing/checkers"
	"go.uber.org/mock/gomock"
	gc "gopkg.in/check.v1"

	"github.com/juju/gamejolt/api"
	"github.com/juju/gamejolt/api/mocks"
	"github.com/juju/gamejolt/request"
	"github.com/juju/gamejolt/response"
)

const (
	gameID = "869827"
	key    = "key"
	root   = "https://api.gamejolt.com/api/game/v1_2"

	timeItem = `{"success":"true","timestamp":1,"year":2021,"month":2,"day":3,"hour":4,"minute":5,"second":6}`
)

type event struct {
	kind  string
	req   request.Request
	value response.Value
	err   error
}

type recordingListener struct {
	events []event
}

func (l *recordingListener) Received(req request.Request, value response.Value) {
	l.events = append(l.events, event{kind: "received", req: req, value: value})
}

func (l *recordingListener) Failed(err error) {
	l.events = append(l.events, event{kind: "failed", err: err})
}

func (l *recordingListener) Cancelled() {
	l.events = append(l.events, event{kind: "cancelled"})
}

func respond(status int, body string) *http.Response {
	return &http.Response{
		StatusCode: status,
		Status:     http.StatusText(status),
		Header:     make(http.Header),
		Body:       io.NopCloser(strings.NewReader(body)),
	}
}

type baseSuite struct {
	testing.IsolationSuite

	transport *mocks.MockTransport
	clock     *testclock.Clock
	metrics   *api.Collector
}

type ClientSuite struct {
	baseSuite
}

var _ = gc.Suite(&ClientSuite{})

func (s *baseSuite) setupMocks(c *gc.C) *gomock.Controller {
	ctrl := gomock.NewController(c)
	s.transport = mocks.NewMockTransport(ctrl)
	s.clock = testclock.NewClock(time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC))
	s.metrics = api.NewMetricsCollector()
	return ctrl
}

func (s *baseSuite) newClient(c *gc.C) *api.Client {
	client, err := api.NewClient(api.Config{
		PrivateKey: key,
		Transport:  s.transport,
		Logger:     loggo.GetLogger("gamejolt.api.test"),
		Clock:      s.clock,
		Metrics:    s.metrics,
	})
	c.Assert(err, jc.ErrorIsNil)
	return client
}

func (s *baseSuite) expectBody(body string) {
	s.transport.EXPECT().Do(gomock.Any()).Return(respond(http.StatusOK, body), nil)
}

func (s *ClientSuite) TestNewClientInvalidConfig(c *gc.C) {
	_, err := api.NewClient(api.Config{})
	c.Assert(err, jc.Satisfies, errors.IsNotValid)
}

func (s *ClientSuite) TestURLIsSigned(c *gc.C) {
	defer s.setupMocks(c).Finish()

	req, err := request.NewScoresFetch(request.ScoresFetchParams{GameID: gameID})
	c.Assert(err, jc.ErrorIsNil)

	c.Check(s.newClient(c).URL(req), gc.Equals,
		root+"/scores/?game_id=869827&signature=8ae194402d7a740cc042fb8a54af63c3")
}

func (s *ClientSuite) TestURLCustomRoot(c *gc.C) {
	defer s.setupMocks(c).Finish()

	client, err := api.NewClient(api.Config{
		BaseURL:    "http://localhost:8080/api/game/",
		PrivateKey: key,
		Transport:  s.transport,
		Logger:     loggo.GetLogger("gamejolt.api.test"),
		Clock:      s.clock,
	})
	c.Assert(err, jc.ErrorIsNil)
	req, err := request.NewScoresFetch(request.ScoresFetchParams{GameID: gameID})
	c.Assert(err, jc.ErrorIsNil)

	c.Check(client.URL(req), jc.HasPrefix, "http://localhost:8080/api/game/v1_2/scores/?game_id=869827&signature=")
}

func (s *ClientSuite) TestSendDelivers(c *gc.C) {
	defer s.setupMocks(c).Finish()

	req, err := request.NewScoresFetch(request.ScoresFetchParams{GameID: gameID})
	c.Assert(err, jc.ErrorIsNil)
	s.transport.EXPECT().Do(gomock.Any()).DoAndReturn(func(r *http.Request) (*http.Response, error) {
		c.Check(r.Method, gc.Equals, http.MethodGet)
		c.Check(r.URL.String(), gc.Equals, root+"/scores/?game_id=869827&signature=8ae194402d7a740cc042fb8a54af63c3")
		return respond(http.StatusOK, `{"response":{"success":"true","scores":[]}}`), nil
	})

	var listener recordingListener
	err = s.newClient(c).Send(context.Background(), req, &listener)
	c.Assert(err, jc.ErrorIsNil)
	c.Assert(listener.events, gc.HasLen, 1)
	c.Check(listener.events[0].kind, gc.Equals, "received")
	c.Check(listener.events[0].req == request.Request(req), jc.IsTrue)
	scores, ok := listener.events[0].value.(response.ScoresValue)
	c.Assert(ok, jc.IsTrue)
	c.Check(scores.Success, jc.IsTrue)
	c.Check(scores.Scores, gc.HasLen, 0)
}

func (s *ClientSuite) TestSendProtocolFailureIsReceived(c *gc.C) {
	defer s.setupMocks(c).Finish()

	req, err := request.NewSessionsOpen(gameID, request.Credentials{Username: "alice", UserToken: "t"})
	c.Assert(err, jc.ErrorIsNil)
	s.expectBody(`{"response":{"success":"false","message":"No such user."}}`)

	var listener recordingListener
	err = s.newClient(c).Send(context.Background(), req, &listener)
	c.Assert(err, jc.ErrorIsNil)
	c.Assert(listener.events, gc.HasLen, 1)
	c.Check(listener.events[0].kind, gc.Equals, "received")
	c.Check(listener.events[0].value.Outcome().Success, jc.IsFalse)
	c.Check(listener.events[0].value.Outcome().Message, gc.Equals, "No such user.")
}

func (s *ClientSuite) TestSendTransportFailure(c *gc.C) {
	defer s.setupMocks(c).Finish()

	req, err := request.NewTimeFetch(gameID)
	c.Assert(err, jc.ErrorIsNil)
	s.transport.EXPECT().Do(gomock.Any()).Return(nil, errors.New("connection refused"))

	var listener recordingListener
	err = s.newClient(c).Send(context.Background(), req, &listener)
	c.Assert(err, jc.ErrorIsNil)
	c.Assert(listener.events, gc.HasLen, 1)
	c.Check(listener.events[0].kind, gc.Equals, "failed")
	c.Check(listener.events[0].err, gc.ErrorMatches, "time: connection refused")
}

func (s *ClientSuite) TestSendServerError(c *gc.C) {
	defer s.setupMocks(c).Finish()

	req, err := request.NewTimeFetch(gameID)
	c.Assert(err, jc.ErrorIsNil)
	s.transport.EXPECT().Do(gomock.Any()).Return(respond(http.StatusBadGateway, "oops"), nil)

	var listener recordingListener
	err = s.newClient(c).Send(context.Background(), req, &listener)
	c.Assert(err, jc.ErrorIsNil)
	c.Assert(listener.events, gc.HasLen, 1)
	c.Check(listener.events[0].kind, gc.Equals, "failed")
	c.Check(listener.events[0].err, gc.ErrorMatches, `time: server error .*`)
}

func (s *ClientSuite) TestSendCancelled(c *gc.C) {
	defer s.setupMocks(c).Finish()

	req, err := request.NewTimeFetch(gameID)
	c.Assert(err, jc.ErrorIsNil)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	s.transport.EXPECT().Do(gomock.Any()).Return(nil, context.Canceled)

	var listener recordingListener
	err = s.newClient(c).Send(ctx, req, &listener)
	c.Assert(err, jc.ErrorIsNil)
	c.Assert(listener.events, gc.HasLen, 1)
	c.Check(listener.events[0].kind, gc.Equals, "cancelled")
}

func (s *ClientSuite) TestSendDecodeError(c *gc.C) {
	defer s.setupMocks(c).Finish()

	req, err := request.NewTimeFetch(gameID)
	c.Assert(err, jc.ErrorIsNil)
	s.expectBody(`{"response":{"timezone":"UTC"}}`)

	var listener recordingListener
	err = s.newClient(c).Send(context.Background(), req, &listener)
	c.Assert(err, jc.Satisfies, response.IsDecodeError)
	c.Check(listener.events, gc.HasLen, 0)
}

func (s *baseSuite) newBatch(c *gc.C, p request.BatchParams) (*request.BatchRequest, []request.Request) {
	a, err := request.NewTimeFetch(gameID)
	c.Assert(err, jc.ErrorIsNil)
	b, err := request.NewScoresGetRank(request.ScoresGetRankParams{GameID: gameID, Sort: 42})
	c.Assert(err, jc.ErrorIsNil)
	d, err := request.NewTimeFetch(gameID)
	c.Assert(err, jc.ErrorIsNil)
	p.GameID = gameID
	batch, err := request.NewBatch(p, a, b, d)
	c.Assert(err, jc.ErrorIsNil)
	return batch, []request.Request{a, b, d}
}

func (s *ClientSuite) TestSendBatchDeliversInOrder(c *gc.C) {
	defer s.setupMocks(c).Finish()

	batch, reqs := s.newBatch(c, request.BatchParams{Parallel: true})
	s.transport.EXPECT().Do(gomock.Any()).DoAndReturn(func(r *http.Request) (*http.Response, error) {
		c.Check(r.URL.String(), jc.HasPrefix, root+"/batch/?game_id=869827&parallel=true&requests[]=%2Ftime%2F%3Fgame_id%3D869827%26signature%3D")
		c.Check(strings.Count(r.URL.RawQuery, "requests[]="), gc.Equals, 3)
		c.Check(strings.Count(r.URL.RawQuery, "&signature="), gc.Equals, 1)
		return respond(http.StatusOK, `{"response":{"success":"true","responses":[`+
			timeItem+`,{"success":"true","rank":"7"},`+timeItem+`]}}`), nil
	})

	var listener recordingListener
	err := s.newClient(c).SendBatch(context.Background(), batch, &listener)
	c.Assert(err, jc.ErrorIsNil)
	c.Assert(listener.events, gc.HasLen, 3)
	for i, e := range listener.events {
		c.Check(e.kind, gc.Equals, "received")
		c.Check(e.req == reqs[i], jc.IsTrue)
		c.Check(e.value.Request() == reqs[i], jc.IsTrue)
	}
	c.Check(listener.events[1].value.(response.RankValue).Rank, gc.Equals, int64(7))
}

func (s *ClientSuite) TestSendRoutesBatch(c *gc.C) {
	defer s.setupMocks(c).Finish()

	batch, _ := s.newBatch(c, request.BatchParams{})
	s.expectBody(`{"success":true,"responses":[` + timeItem + `,{"success":true},` + timeItem + `]}`)

	var listener recordingListener
	err := s.newClient(c).Send(context.Background(), batch, &listener)
	c.Assert(err, jc.ErrorIsNil)
	c.Check(listener.events, gc.HasLen, 3)
}

func (s *ClientSuite) TestSendBatchCountMismatch(c *gc.C) {
	defer s.setupMocks(c).Finish()

	batch, _ := s.newBatch(c, request.BatchParams{})
	s.expectBody(`{"response":{"success":"true","responses":[` + timeItem + `,{"success":"true"}]}}`)

	var listener recordingListener
	err := s.newClient(c).SendBatch(context.Background(), batch, &listener)
	c.Assert(err, jc.ErrorIsNil)
	c.Assert(listener.events, gc.HasLen, 1)
	c.Check(listener.events[0].kind, gc.Equals, "cancelled")
}

func (s *ClientSuite) TestSendBatchEnvelopeFailure(c *gc.C) {
	defer s.setupMocks(c).Finish()

	batch, _ := s.newBatch(c, request.BatchParams{BreakOnError: true})
	s.expectBody(`{"response":{"success":"false","message":"break","responses":[` + timeItem + `]}}`)

	var listener recordingListener
	err := s.newClient(c).SendBatch(context.Background(), batch, &listener)
	c.Assert(err, jc.ErrorIsNil)
	c.Assert(listener.events, gc.HasLen, 1)
	c.Check(listener.events[0].kind, gc.Equals, "cancelled")
}

func (s *ClientSuite) TestSendBatchMalformedItemCancels(c *gc.C) {
	defer s.setupMocks(c).Finish()

	batch, _ := s.newBatch(c, request.BatchParams{})
	s.expectBody(`{"response":{"success":"true","responses":[` + timeItem + `,{"rank":"1"},` + timeItem + `]}}`)

	var listener recordingListener
	err := s.newClient(c).SendBatch(context.Background(), batch, &listener)
	c.Assert(err, jc.ErrorIsNil)
	c.Assert(listener.events, gc.HasLen, 1)
	c.Check(listener.events[0].kind, gc.Equals, "cancelled")
}

func (s *ClientSuite) TestSendBatchTransportFailure(c *gc.C) {
	defer s.setupMocks(c).Finish()

	batch, _ := s.newBatch(c, request.BatchParams{})
	s.transport.EXPECT().Do(gomock.Any()).Return(nil, errors.New("no route to host"))

	var listener recordingListener
	err := s.newClient(c).SendBatch(context.Background(), batch, &listener)
	c.Assert(err, jc.ErrorIsNil)
	c.Assert(listener.events, gc.HasLen, 1)
	c.Check(listener.events[0].kind, gc.Equals, "failed")
	c.Check(listener.events[0].err, gc.ErrorMatches, "batch: no route to host")
}

func (s *ClientSuite) TestCall(c *gc.C) {
	defer s.setupMocks(c).Finish()

	req, err := request.NewTimeFetch(gameID)
	c.Assert(err, jc.ErrorIsNil)
	s.expectBody(`{"response":` + timeItem + `}`)

	value, err := s.newClient(c).Call(context.Background(), req)
	c.Assert(err, jc.ErrorIsNil)
	t, ok := value.(response.TimeValue)
	c.Assert(ok, jc.IsTrue)
	c.Check(t.Year, gc.Equals, 2021)
	c.Check(t.Second, gc.Equals, 6)
}

func (s *ClientSuite) TestCallRejectsBatch(c *gc.C) {
	defer s.setupMocks(c).Finish()

	batch, _ := s.newBatch(c, request.BatchParams{})
	_, err := s.newClient(c).Call(context.Background(), batch)
	c.Assert(err, jc.Satisfies, errors.IsNotSupported)
}

func (s *ClientSuite) TestCallTransportFailure(c *gc.C) {
	defer s.setupMocks(c).Finish()

	req, err := request.NewTimeFetch(gameID)
	c.Assert(err, jc.ErrorIsNil)
	s.transport.EXPECT().Do(gomock.Any()).Return(nil, errors.New("boom"))

	_, err = s.newClient(c).Call(context.Background(), req)
	c.Assert(err, gc.ErrorMatches, "time: boom")
}

func (s *ClientSuite) TestCallBatchCancelled(c *gc.C) {
	defer s.setupMocks(c).Finish()

	batch, _ := s.newBatch(c, request.BatchParams{})
	s.expectBody(`{"response":{"success":"true","responses":[]}}`)

	values, err := s.newClient(c).CallBatch(context.Background(), batch)
	c.Check(values, gc.IsNil)
	c.Check(errors.Is(err, api.ErrCancelled), jc.IsTrue)
}

func (s *ClientSuite) TestCallBatch(c *gc.C) {
	defer s.setupMocks(c).Finish()

	batch, reqs := s.newBatch(c, request.BatchParams{})
	s.expectBody(`{"response":{"success":"true","responses":[` + timeItem + `,{"success":"true","rank":"3"},` + timeItem + `]}}`)

	values, err := s.newClient(c).CallBatch(context.Background(), batch)
	c.Assert(err, jc.ErrorIsNil)
	c.Assert(values, gc.HasLen, 3)
	for i, value := range values {
		c.Check(value.Request() == reqs[i], jc.IsTrue)
	}
}
