// Copyright 2026 Canonical Ltd.
// Licensed under the AGPLv3, see LICENCE file for details.

package main

import (
	"context"

	"github.com/juju/errors"
	"github.com/juju/gnuflag"

	"github.com/juju/gamejolt/cmd"
	"github.com/juju/gamejolt/request"
	"github.com/juju/gamejolt/response"
)

type timeCommand struct {
	baseCommand
}

func (c *timeCommand) Info() *cmd.Info {
	return &cmd.Info{
		Name:    "time",
		Purpose: "Show the server time",
	}
}

func (c *timeCommand) Run(ctx *cmd.Context) error {
	return c.call(ctx, func(cfg Config) (request.Request, error) {
		return request.NewTimeFetch(cfg.GameID)
	})
}

type batchTimeCommand struct {
	baseCommand

	count        int
	parallel     bool
	breakOnError bool
}

func (c *batchTimeCommand) Info() *cmd.Info {
	return &cmd.Info{
		Name:    "batch-time",
		Purpose: "Fetch the server time several times in one batch",
		Doc: `
Sends --count time fetches as a single batch call and shows the answers
in the order the fetches were submitted.
`,
	}
}

func (c *batchTimeCommand) SetFlags(f *gnuflag.FlagSet) {
	c.baseCommand.SetFlags(f)
	f.IntVar(&c.count, "count", 2, "Number of time fetches")
	f.BoolVar(&c.parallel, "parallel", false, "Let the server process the fetches in parallel")
	f.BoolVar(&c.breakOnError, "break-on-error", false, "Stop at the first failed fetch")
}

func (c *batchTimeCommand) Init(args []string) error {
	if c.count < 1 {
		return errors.NotValidf("count %d", c.count)
	}
	return cmd.CheckEmpty(args)
}

func (c *batchTimeCommand) Run(ctx *cmd.Context) error {
	if err := c.loadConfig(ctx); err != nil {
		return errors.Trace(err)
	}
	reqs := make([]request.Request, c.count)
	for i := range reqs {
		req, err := request.NewTimeFetch(c.config.GameID)
		if err != nil {
			return errors.Trace(err)
		}
		reqs[i] = req
	}
	batch, err := request.NewBatch(request.BatchParams{
		GameID:       c.config.GameID,
		Parallel:     c.parallel,
		BreakOnError: c.breakOnError,
	}, reqs...)
	if err != nil {
		return errors.Trace(err)
	}

	client, err := c.newClient()
	if err != nil {
		return errors.Trace(err)
	}
	values, err := client.CallBatch(context.Background(), batch)
	if err != nil {
		return errors.Trace(err)
	}
	times := make([]response.TimeValue, len(values))
	for i, value := range values {
		if err := outcomeError(value); err != nil {
			return errors.Annotatef(err, "fetch %d", i)
		}
		times[i] = value.(response.TimeValue)
	}
	return errors.Trace(c.out.Write(ctx, times))
}
