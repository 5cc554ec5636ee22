// Copyright 2026 Canonical Ltd.
// Licensed under the AGPLv3, see LICENCE file for details.

package main

import (
	"github.com/juju/errors"
	"github.com/juju/gnuflag"

	"github.com/juju/gamejolt/cmd"
	"github.com/juju/gamejolt/request"
)

// dataCommand holds what the data-store commands share: an optional
// player scope and, for most of them, a key.
type dataCommand struct {
	baseCommand
	userFlag

	key string
}

func (c *dataCommand) SetFlags(f *gnuflag.FlagSet) {
	c.baseCommand.SetFlags(f)
	c.addFlag(f)
}

func (c *dataCommand) initKey(args []string, rest int) ([]string, error) {
	if len(args) < 1+rest {
		return nil, errors.Errorf("expected %d arguments, got %d", 1+rest, len(args))
	}
	c.key = args[0]
	return args[1:], nil
}

func (c *dataCommand) params(cfg Config) request.DataStoreParams {
	return request.DataStoreParams{
		GameID:      cfg.GameID,
		Key:         c.key,
		Credentials: c.credentials(cfg),
	}
}

type dataGetCommand struct {
	dataCommand
}

func (c *dataGetCommand) Info() *cmd.Info {
	return &cmd.Info{
		Name:    "data-get",
		Args:    "<key>",
		Purpose: "Show a data-store item",
	}
}

func (c *dataGetCommand) Init(args []string) error {
	rest, err := c.initKey(args, 0)
	if err != nil {
		return errors.Trace(err)
	}
	return cmd.CheckEmpty(rest)
}

func (c *dataGetCommand) Run(ctx *cmd.Context) error {
	return c.call(ctx, func(cfg Config) (request.Request, error) {
		return request.NewDataStoreFetch(c.params(cfg))
	})
}

type dataSetCommand struct {
	dataCommand

	data string
}

func (c *dataSetCommand) Info() *cmd.Info {
	return &cmd.Info{
		Name:    "data-set",
		Args:    "<key> <data>",
		Purpose: "Store a data-store item",
	}
}

func (c *dataSetCommand) Init(args []string) error {
	rest, err := c.initKey(args, 1)
	if err != nil {
		return errors.Trace(err)
	}
	c.data = rest[0]
	return cmd.CheckEmpty(rest[1:])
}

func (c *dataSetCommand) Run(ctx *cmd.Context) error {
	return c.call(ctx, func(cfg Config) (request.Request, error) {
		return request.NewDataStoreSet(request.DataStoreSetParams{
			GameID:      cfg.GameID,
			Key:         c.key,
			Data:        c.data,
			Credentials: c.credentials(cfg),
		})
	})
}

type dataUpdateCommand struct {
	dataCommand

	operation request.Operation
	value     string
}

func (c *dataUpdateCommand) Info() *cmd.Info {
	return &cmd.Info{
		Name:    "data-update",
		Args:    "<key> <operation> <value>",
		Purpose: "Update a data-store item in place",
		Doc: `
Applies an operation to a stored item and shows the new data. The
operation is one of add, subtract, multiply, divide, append or prepend.
`,
	}
}

func (c *dataUpdateCommand) Init(args []string) error {
	rest, err := c.initKey(args, 2)
	if err != nil {
		return errors.Trace(err)
	}
	if c.operation, err = request.ParseOperation(rest[0]); err != nil {
		return errors.Trace(err)
	}
	c.value = rest[1]
	return cmd.CheckEmpty(rest[2:])
}

func (c *dataUpdateCommand) Run(ctx *cmd.Context) error {
	return c.call(ctx, func(cfg Config) (request.Request, error) {
		return request.NewDataStoreUpdate(request.DataStoreUpdateParams{
			GameID:      cfg.GameID,
			Key:         c.key,
			Operation:   c.operation,
			Value:       c.value,
			Credentials: c.credentials(cfg),
		})
	})
}

type dataRemoveCommand struct {
	dataCommand
}

func (c *dataRemoveCommand) Info() *cmd.Info {
	return &cmd.Info{
		Name:    "data-remove",
		Args:    "<key>",
		Purpose: "Remove a data-store item",
	}
}

func (c *dataRemoveCommand) Init(args []string) error {
	rest, err := c.initKey(args, 0)
	if err != nil {
		return errors.Trace(err)
	}
	return cmd.CheckEmpty(rest)
}

func (c *dataRemoveCommand) Run(ctx *cmd.Context) error {
	return c.call(ctx, func(cfg Config) (request.Request, error) {
		return request.NewDataStoreRemove(c.params(cfg))
	})
}

type dataKeysCommand struct {
	dataCommand

	pattern string
}

func (c *dataKeysCommand) Info() *cmd.Info {
	return &cmd.Info{
		Name:    "data-keys",
		Purpose: "List data-store keys",
	}
}

func (c *dataKeysCommand) SetFlags(f *gnuflag.FlagSet) {
	c.dataCommand.SetFlags(f)
	f.StringVar(&c.pattern, "pattern", "", "Only list keys matching this pattern, * is a wildcard")
}

func (c *dataKeysCommand) Run(ctx *cmd.Context) error {
	return c.call(ctx, func(cfg Config) (request.Request, error) {
		return request.NewDataStoreGetKeys(request.DataStoreGetKeysParams{
			GameID:      cfg.GameID,
			Credentials: c.credentials(cfg),
			Pattern:     c.pattern,
		})
	})
}
