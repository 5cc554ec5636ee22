// Copyright 2026 Canonical Ltd.
// Licensed under the AGPLv3, see LICENCE file for details.

package main

import (
	"github.com/juju/errors"
	"github.com/juju/gnuflag"

	"github.com/juju/gamejolt/cmd"
	"github.com/juju/gamejolt/request"
)

type trophiesCommand struct {
	baseCommand

	achieved optionalBool
	ids      idList
}

func (c *trophiesCommand) Info() *cmd.Info {
	return &cmd.Info{
		Name:    "trophies",
		Purpose: "List the game's trophies for the configured player",
		Doc: `
Lists every trophy, or only those the player has (--achieved=true) or
lacks (--achieved=false), or those listed by --ids.
`,
	}
}

func (c *trophiesCommand) SetFlags(f *gnuflag.FlagSet) {
	c.baseCommand.SetFlags(f)
	f.Var(&c.achieved, "achieved", "Filter on whether the trophy is achieved")
	f.Var(&c.ids, "ids", "Comma separated trophy ids")
}

func (c *trophiesCommand) Run(ctx *cmd.Context) error {
	return c.call(ctx, func(cfg Config) (request.Request, error) {
		return request.NewTrophiesFetch(request.TrophiesFetchParams{
			GameID:      cfg.GameID,
			Credentials: cfg.Credentials,
			Achieved:    c.achieved.value,
			TrophyIDs:   c.ids,
		})
	})
}

type achieveCommand struct {
	baseCommand

	trophyID int
	remove   bool
}

func (c *achieveCommand) Info() *cmd.Info {
	return &cmd.Info{
		Name:    "achieve",
		Args:    "<trophy-id>",
		Purpose: "Grant a trophy to the configured player",
	}
}

func (c *achieveCommand) SetFlags(f *gnuflag.FlagSet) {
	c.baseCommand.SetFlags(f)
	f.BoolVar(&c.remove, "remove", false, "Revoke the trophy instead")
}

func (c *achieveCommand) Init(args []string) error {
	if len(args) == 0 {
		return errors.New("trophy id required")
	}
	id, err := parseInt("trophy id", args[0])
	if err != nil {
		return errors.Trace(err)
	}
	c.trophyID = id
	return cmd.CheckEmpty(args[1:])
}

func (c *achieveCommand) Run(ctx *cmd.Context) error {
	return c.call(ctx, func(cfg Config) (request.Request, error) {
		p := request.TrophyParams{
			GameID:      cfg.GameID,
			Credentials: cfg.Credentials,
			TrophyID:    c.trophyID,
		}
		if c.remove {
			return request.NewTrophiesRemoveAchieved(p)
		}
		return request.NewTrophiesAddAchieved(p)
	})
}
