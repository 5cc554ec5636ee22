// Copyright 2026 Canonical Ltd.
// Licensed under the AGPLv3, see LICENCE file for details.

package api

import (
	"context"
	"io"
	"net/http"

	"github.com/juju/errors"
)

// maxAvatarSize bounds the size of a fetched avatar image.
const maxAvatarSize = 4 << 20

// AvatarFetcher downloads user avatar images, as referenced by
// response.User.AvatarURL. The bytes are returned undecoded.
type AvatarFetcher struct {
	requester *APIRequester
}

// NewAvatarFetcher returns an AvatarFetcher using transport.
func NewAvatarFetcher(transport Transport, logger Logger) *AvatarFetcher {
	return &AvatarFetcher{
		requester: NewAPIRequester(transport, logger),
	}
}

// FetchAvatar returns the image at url. A user without an avatar, or an
// avatar that no longer exists, is reported as NotFound.
func (f *AvatarFetcher) FetchAvatar(ctx context.Context, url string) ([]byte, error) {
	if url == "" {
		return nil, errors.NotFoundf("avatar")
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, errors.Annotate(err, "can not make new request")
	}
	resp, err := f.requester.Do(req)
	if err != nil {
		return nil, errors.Annotatef(err, "fetching avatar")
	}
	defer func() { _ = resp.Body.Close() }()

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxAvatarSize+1))
	if err != nil {
		return nil, errors.Annotate(err, "reading avatar")
	}
	if len(data) > maxAvatarSize {
		return nil, errors.NotValidf("avatar larger than %d bytes", maxAvatarSize)
	}
	return data, nil
}
