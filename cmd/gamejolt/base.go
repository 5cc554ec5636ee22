// Copyright 2026 Canonical Ltd.
// Licensed under the AGPLv3, see LICENCE file for details.

package main

import (
	"context"
	"strconv"
	"strings"
	"time"

	"github.com/juju/clock"
	"github.com/juju/errors"
	"github.com/juju/gnuflag"
	"github.com/juju/loggo/v2"
	"github.com/juju/retry"

	"github.com/juju/gamejolt/api"
	"github.com/juju/gamejolt/cmd"
	"github.com/juju/gamejolt/request"
	"github.com/juju/gamejolt/response"
)

const defaultConfigFile = "gamejolt.yaml"

var logger = loggo.GetLogger("gamejolt.cmd.gamejolt")

// retryDelay is the pause between attempts of a failed call.
var retryDelay = time.Second

// baseCommand holds what every API command shares: the configuration
// file, the output flags and the way to reach the server.
type baseCommand struct {
	cmd.CommandBase

	transport  api.Transport
	configFile cmd.FileVar
	out        cmd.Output
	attempts   int

	config Config
}

func (c *baseCommand) SetFlags(f *gnuflag.FlagSet) {
	if c.configFile.Path == "" {
		c.configFile.Path = defaultConfigFile
	}
	f.Var(&c.configFile, "config", "Path to the configuration file")
	f.IntVar(&c.attempts, "attempts", 1, "Number of attempts for calls failing in transport")
	c.out.AddFlags(f, "yaml", formatters)
}

// loadConfig reads the configuration file into c.config.
func (c *baseCommand) loadConfig(ctx *cmd.Context) error {
	data, err := c.configFile.Read(ctx)
	if err != nil {
		return errors.Trace(err)
	}
	c.config, err = ParseConfig(data)
	return errors.Annotatef(err, "reading %s", c.configFile.Path)
}

func (c *baseCommand) apiTransport() api.Transport {
	if c.transport != nil {
		return c.transport
	}
	return api.DefaultHTTPTransport(time.Duration(c.config.TimeoutSeconds) * time.Second)
}

func (c *baseCommand) newClient() (*api.Client, error) {
	return api.NewClient(api.Config{
		BaseURL:         c.config.BaseURL,
		ProtocolVersion: c.config.ProtocolVersion,
		PrivateKey:      c.config.PrivateKey,
		Transport:       c.apiTransport(),
		Logger:          api.DefaultLogger(),
		Clock:           clock.WallClock,
	})
}

// call loads the configuration, builds a request with it, sends the
// request and writes the decoded value. A value reporting failure is
// returned as an error carrying the server's message.
func (c *baseCommand) call(ctx *cmd.Context, build func(Config) (request.Request, error)) error {
	value, err := c.send(ctx, build)
	if err != nil {
		return errors.Trace(err)
	}
	return errors.Trace(c.out.Write(ctx, value))
}

func (c *baseCommand) send(ctx *cmd.Context, build func(Config) (request.Request, error)) (response.Value, error) {
	if err := c.loadConfig(ctx); err != nil {
		return nil, errors.Trace(err)
	}
	req, err := build(c.config)
	if err != nil {
		return nil, errors.Trace(err)
	}
	client, err := c.newClient()
	if err != nil {
		return nil, errors.Trace(err)
	}
	attempts := c.attempts
	if attempts < 1 {
		attempts = 1
	}
	var value response.Value
	err = retry.Call(retry.CallArgs{
		Func: func() error {
			var err error
			value, err = client.Call(context.Background(), req)
			return err
		},
		IsFatalError: isFatal,
		NotifyFunc: func(err error, attempt int) {
			logger.Debugf("attempt %d: %v", attempt, err)
		},
		Attempts: attempts,
		Delay:    retryDelay,
		Clock:    clock.WallClock,
	})
	if err != nil {
		return nil, errors.Trace(lastError(err))
	}
	if err := outcomeError(value); err != nil {
		return nil, errors.Trace(err)
	}
	return value, nil
}

// isFatal reports whether a failed call should not be attempted again.
// Only transport failures are retried.
func isFatal(err error) bool {
	return response.IsDecodeError(err) ||
		errors.Is(err, api.ErrCancelled) ||
		errors.IsNotFound(err) ||
		errors.IsNotValid(err) ||
		errors.IsNotSupported(err)
}

// lastError returns the final failure behind an exhausted retry. Fatal
// errors are returned by retry.Call unwrapped and are passed through.
func lastError(err error) error {
	if retry.IsAttemptsExceeded(err) || retry.IsDurationExceeded(err) {
		return retry.LastError(err)
	}
	return err
}

func outcomeError(value response.Value) error {
	outcome := value.Outcome()
	if outcome.Success {
		return nil
	}
	if outcome.Message == "" {
		return errors.Errorf("%s failed", value.Endpoint())
	}
	return errors.Errorf("%s failed: %s", value.Endpoint(), outcome.Message)
}

// userFlag adds the --user flag, selecting the configured player for
// calls that may be either global or user scoped.
type userFlag struct {
	user bool
}

func (u *userFlag) addFlag(f *gnuflag.FlagSet) {
	f.BoolVar(&u.user, "user", false, "Scope the call to the configured player")
}

func (u *userFlag) credentials(cfg Config) request.Credentials {
	if !u.user {
		return request.Credentials{}
	}
	return cfg.Credentials
}

// optionalInt64 is a gnuflag.Value which records whether it was set.
type optionalInt64 struct {
	value *int64
}

func (o *optionalInt64) Set(s string) error {
	v, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return errors.NotValidf("integer %q", s)
	}
	o.value = &v
	return nil
}

func (o *optionalInt64) String() string {
	if o.value == nil {
		return ""
	}
	return strconv.FormatInt(*o.value, 10)
}

// optionalBool is a gnuflag.Value which records whether it was set.
type optionalBool struct {
	value *bool
}

func (o *optionalBool) Set(s string) error {
	v, err := strconv.ParseBool(s)
	if err != nil {
		return errors.NotValidf("boolean %q", s)
	}
	o.value = &v
	return nil
}

func (o *optionalBool) String() string {
	if o.value == nil {
		return ""
	}
	return strconv.FormatBool(*o.value)
}

// idList is a gnuflag.Value holding a comma separated list of ids.
type idList []int

func (l *idList) Set(s string) error {
	var ids []int
	for _, field := range strings.Split(s, ",") {
		id, err := strconv.Atoi(strings.TrimSpace(field))
		if err != nil {
			return errors.NotValidf("id %q", field)
		}
		ids = append(ids, id)
	}
	*l = ids
	return nil
}

func (l *idList) String() string {
	parts := make([]string, len(*l))
	for i, id := range *l {
		parts[i] = strconv.Itoa(id)
	}
	return strings.Join(parts, ",")
}

func parseInt(name, s string) (int, error) {
	v, err := strconv.Atoi(s)
	if err != nil {
		return 0, errors.NotValidf("%s %q", name, s)
	}
	return v, nil
}
