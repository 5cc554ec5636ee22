// Copyright 2026 Canonical Ltd.
// Licensed under the AGPLv3, see LICENCE file for details.

package main

import (
	"github.com/juju/errors"
	"github.com/juju/schema"
	"github.com/juju/version/v2"
	"gopkg.in/juju/environschema.v1"
	"gopkg.in/yaml.v3"

	"github.com/juju/gamejolt/api"
	"github.com/juju/gamejolt/request"
)

const (
	gameIDKey          = "game-id"
	privateKeyKey      = "private-key"
	baseURLKey         = "base-url"
	protocolVersionKey = "protocol-version"
	usernameKey        = "username"
	userTokenKey       = "user-token"
	timeoutKey         = "timeout"
)

var configSchema = environschema.Fields{
	gameIDKey: {
		Description: "The id of the game, as shown on its dashboard.",
		Type:        environschema.Tstring,
		Mandatory:   true,
	},
	privateKeyKey: {
		Description: "The private key used to sign calls.",
		Type:        environschema.Tstring,
		Mandatory:   true,
		Secret:      true,
	},
	baseURLKey: {
		Description: "The root of the game API.",
		Type:        environschema.Tstring,
	},
	protocolVersionKey: {
		Description: "The protocol version, as major.minor.",
		Type:        environschema.Tstring,
	},
	usernameKey: {
		Description: "The player's username, for user scoped calls.",
		Type:        environschema.Tstring,
	},
	userTokenKey: {
		Description: "The player's game token, for user scoped calls.",
		Type:        environschema.Tstring,
		Secret:      true,
	},
	timeoutKey: {
		Description: "The HTTP timeout in seconds.",
		Type:        environschema.Tint,
	},
}

var configDefaults = schema.Defaults{
	baseURLKey:         api.DefaultBaseURL,
	protocolVersionKey: "1.2",
	usernameKey:        "",
	userTokenKey:       "",
	timeoutKey:         30,
}

var configChecker = func() schema.Checker {
	fields, _, err := configSchema.ValidationSchema()
	if err != nil {
		panic(err)
	}
	// Game ids are numeric and commonly written unquoted.
	fields[gameIDKey] = schema.Stringified(schema.Int())
	return schema.FieldMap(fields, configDefaults)
}()

// Config is the validated content of a CLI configuration file.
type Config struct {
	GameID          string
	PrivateKey      string
	BaseURL         string
	ProtocolVersion version.Number
	Credentials     request.Credentials
	TimeoutSeconds  int
}

// ParseConfig parses a YAML configuration file.
func ParseConfig(data []byte) (Config, error) {
	var attrs map[string]interface{}
	if err := yaml.Unmarshal(data, &attrs); err != nil {
		return Config{}, errors.Annotate(err, "parsing config")
	}
	if attrs == nil {
		attrs = make(map[string]interface{})
	}
	coerced, err := configChecker.Coerce(attrs, nil)
	if err != nil {
		return Config{}, errors.NewNotValid(err, "config")
	}
	valid := coerced.(map[string]interface{})

	v, err := parseProtocolVersion(valid[protocolVersionKey].(string))
	if err != nil {
		return Config{}, errors.Trace(err)
	}
	cfg := Config{
		GameID:          valid[gameIDKey].(string),
		PrivateKey:      valid[privateKeyKey].(string),
		BaseURL:         valid[baseURLKey].(string),
		ProtocolVersion: v,
		Credentials: request.Credentials{
			Username:  valid[usernameKey].(string),
			UserToken: valid[userTokenKey].(string),
		},
		TimeoutSeconds: intValue(valid[timeoutKey]),
	}
	if cfg.GameID == "" {
		return Config{}, errors.NotValidf("empty %s", gameIDKey)
	}
	if cfg.PrivateKey == "" {
		return Config{}, errors.NotValidf("empty %s", privateKeyKey)
	}
	if cfg.TimeoutSeconds <= 0 {
		return Config{}, errors.NotValidf("%s %d", timeoutKey, cfg.TimeoutSeconds)
	}
	return cfg, nil
}

// parseProtocolVersion accepts "major.minor" as well as full version
// strings.
func parseProtocolVersion(s string) (version.Number, error) {
	major, minor, err := version.ParseMajorMinor(s)
	if err == nil {
		return version.Number{Major: major, Minor: minor}, nil
	}
	n, err := version.Parse(s)
	if err != nil {
		return version.Number{}, errors.NotValidf("%s %q", protocolVersionKey, s)
	}
	return n, nil
}

func intValue(v interface{}) int {
	switch v := v.(type) {
	case int:
		return v
	case int64:
		return int(v)
	}
	return 0
}
