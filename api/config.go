// Copyright 2026 Canonical Ltd.
// Licensed under the AGPLv3, see LICENCE file for details.

package api

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/juju/clock"
	"github.com/juju/errors"
	"github.com/juju/loggo/v2"
	"github.com/juju/version/v2"
)

const (
	// DefaultBaseURL is the root of the public game API, without the
	// protocol version segment.
	DefaultBaseURL = "https://api.gamejolt.com/api/game"
)

// DefaultProtocolVersion is the protocol version this client speaks.
var DefaultProtocolVersion = version.Number{Major: 1, Minor: 2}

// Logger represents the logging methods used by the client.
type Logger interface {
	IsTraceEnabled() bool
	Tracef(string, ...interface{})
	Debugf(string, ...interface{})
	Warningf(string, ...interface{})
	Errorf(string, ...interface{})
}

// DefaultLogger returns the module logger used when none is configured.
func DefaultLogger() Logger {
	return loggo.GetLogger("gamejolt.api")
}

// Config holds the dependencies and credentials of a Client.
type Config struct {
	// BaseURL is the API root. DefaultBaseURL is used when empty.
	BaseURL string

	// ProtocolVersion selects the versioned path segment, rendered as
	// "v1_2" for version 1.2. DefaultProtocolVersion is used when zero.
	ProtocolVersion version.Number

	// PrivateKey is the game's secret used to sign every call.
	PrivateKey string

	// Transport performs the HTTP exchange.
	Transport Transport

	Logger Logger
	Clock  clock.Clock

	// Metrics is optional.
	Metrics *Collector
}

// Validate returns an error if config cannot drive a Client.
func (config Config) Validate() error {
	if config.PrivateKey == "" {
		return errors.NotValidf("empty PrivateKey")
	}
	if config.Transport == nil {
		return errors.NotValidf("nil Transport")
	}
	if config.Logger == nil {
		return errors.NotValidf("nil Logger")
	}
	if config.Clock == nil {
		return errors.NotValidf("nil Clock")
	}
	if config.BaseURL != "" {
		u, err := url.Parse(config.BaseURL)
		if err != nil {
			return errors.NewNotValid(err, "BaseURL")
		}
		if u.Scheme != "http" && u.Scheme != "https" {
			return errors.NotValidf("BaseURL scheme %q", u.Scheme)
		}
	}
	return nil
}

// root returns the base URL joined with the protocol version segment.
func (config Config) root() string {
	base := config.BaseURL
	if base == "" {
		base = DefaultBaseURL
	}
	v := config.ProtocolVersion
	if v == version.Zero {
		v = DefaultProtocolVersion
	}
	return strings.TrimRight(base, "/") + "/" + VersionPath(v)
}

// VersionPath renders a protocol version as its URL path segment.
func VersionPath(v version.Number) string {
	return fmt.Sprintf("v%d_%d", v.Major, v.Minor)
}
