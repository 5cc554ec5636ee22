// Copyright 2026 Canonical Ltd.
// Licensed under the AGPLv3, see LICENCE file for details.

package api_test

import (
	"context"
	"net/http"
	"strings"

	"github.com/juju/errors"
	"github.com/juju/loggo/v2"
	jc "github.com/juju/testing/checkers"
	"go.uber.org/mock/gomock"
	gc "gopkg.in/check.v1"

	"github.com/juju/gamejolt/api"
)

type AvatarSuite struct {
	baseSuite
}

var _ = gc.Suite(&AvatarSuite{})

const avatarURL = "https://m.gjcdn.net/user-avatar/60/1234-abcd.png"

func (s *AvatarSuite) fetcher() *api.AvatarFetcher {
	return api.NewAvatarFetcher(s.transport, loggo.GetLogger("gamejolt.api.test"))
}

func (s *AvatarSuite) TestFetch(c *gc.C) {
	defer s.setupMocks(c).Finish()

	s.transport.EXPECT().Do(gomock.Any()).DoAndReturn(func(r *http.Request) (*http.Response, error) {
		c.Check(r.URL.String(), gc.Equals, avatarURL)
		return respond(http.StatusOK, "\x89PNG"), nil
	})

	data, err := s.fetcher().FetchAvatar(context.Background(), avatarURL)
	c.Assert(err, jc.ErrorIsNil)
	c.Check(string(data), gc.Equals, "\x89PNG")
}

func (s *AvatarSuite) TestEmptyURL(c *gc.C) {
	defer s.setupMocks(c).Finish()

	_, err := s.fetcher().FetchAvatar(context.Background(), "")
	c.Assert(err, jc.Satisfies, errors.IsNotFound)
}

func (s *AvatarSuite) TestMissing(c *gc.C) {
	defer s.setupMocks(c).Finish()

	s.transport.EXPECT().Do(gomock.Any()).Return(respond(http.StatusNotFound, ""), nil)

	_, err := s.fetcher().FetchAvatar(context.Background(), avatarURL)
	c.Assert(err, jc.Satisfies, errors.IsNotFound)
}

func (s *AvatarSuite) TestTooLarge(c *gc.C) {
	defer s.setupMocks(c).Finish()

	s.transport.EXPECT().Do(gomock.Any()).Return(respond(http.StatusOK, strings.Repeat("x", 4<<20+1)), nil)

	_, err := s.fetcher().FetchAvatar(context.Background(), avatarURL)
	c.Assert(err, jc.Satisfies, errors.IsNotValid)
}
