// Copyright 2026 Canonical Ltd.
// Licensed under the AGPLv3, see LICENCE file for details.

package main

import (
	"context"
	"fmt"
	"os"

	"github.com/dustin/go-humanize"
	"github.com/juju/errors"
	"github.com/juju/gnuflag"

	"github.com/juju/gamejolt/api"
	"github.com/juju/gamejolt/cmd"
	"github.com/juju/gamejolt/request"
	"github.com/juju/gamejolt/response"
)

type authCommand struct {
	baseCommand
}

func (c *authCommand) Info() *cmd.Info {
	return &cmd.Info{
		Name:    "auth",
		Purpose: "Check the configured player's credentials",
	}
}

func (c *authCommand) Run(ctx *cmd.Context) error {
	return c.call(ctx, func(cfg Config) (request.Request, error) {
		return request.NewUsersAuth(cfg.GameID, cfg.Credentials)
	})
}

type sessionCommand struct {
	baseCommand

	action string
	status string
}

func (c *sessionCommand) Info() *cmd.Info {
	return &cmd.Info{
		Name:    "session",
		Args:    "open|ping|check|close",
		Purpose: "Manage the configured player's session",
		Doc: `
Sessions track how long players play. A session is opened, pinged at
least every two minutes to keep it alive, and closed. A ping may report
the player as active or idle with --status.
`,
	}
}

func (c *sessionCommand) SetFlags(f *gnuflag.FlagSet) {
	c.baseCommand.SetFlags(f)
	f.StringVar(&c.status, "status", "", "Status reported by ping (active|idle)")
}

func (c *sessionCommand) Init(args []string) error {
	if len(args) == 0 {
		return errors.New("session action required")
	}
	switch args[0] {
	case "open", "ping", "check", "close":
	default:
		return errors.NotValidf("session action %q", args[0])
	}
	if c.status != "" && args[0] != "ping" {
		return errors.New("--status is only valid with ping")
	}
	c.action = args[0]
	return cmd.CheckEmpty(args[1:])
}

func (c *sessionCommand) Run(ctx *cmd.Context) error {
	return c.call(ctx, func(cfg Config) (request.Request, error) {
		switch c.action {
		case "open":
			return request.NewSessionsOpen(cfg.GameID, cfg.Credentials)
		case "check":
			return request.NewSessionsCheck(cfg.GameID, cfg.Credentials)
		case "close":
			return request.NewSessionsClose(cfg.GameID, cfg.Credentials)
		}
		p := request.SessionsPingParams{
			GameID:      cfg.GameID,
			Credentials: cfg.Credentials,
		}
		if c.status != "" {
			status, err := request.ParseSessionStatus(c.status)
			if err != nil {
				return nil, errors.Trace(err)
			}
			p.Status = status
		}
		return request.NewSessionsPing(p)
	})
}

type friendsCommand struct {
	baseCommand
}

func (c *friendsCommand) Info() *cmd.Info {
	return &cmd.Info{
		Name:    "friends",
		Purpose: "List the configured player's friends",
	}
}

func (c *friendsCommand) Run(ctx *cmd.Context) error {
	return c.call(ctx, func(cfg Config) (request.Request, error) {
		return request.NewFriendsFetch(cfg.GameID, cfg.Credentials)
	})
}

type usersCommand struct {
	baseCommand

	username string
	ids      idList
}

func (c *usersCommand) Info() *cmd.Info {
	return &cmd.Info{
		Name:    "users",
		Args:    "[<username>]",
		Purpose: "Show public user records",
		Doc: `
Shows a user by name, or the users listed by --ids.
`,
	}
}

func (c *usersCommand) SetFlags(f *gnuflag.FlagSet) {
	c.baseCommand.SetFlags(f)
	f.Var(&c.ids, "ids", "Comma separated user ids")
}

func (c *usersCommand) Init(args []string) error {
	if len(args) > 0 {
		c.username, args = args[0], args[1:]
	}
	return cmd.CheckEmpty(args)
}

func (c *usersCommand) Run(ctx *cmd.Context) error {
	return c.call(ctx, func(cfg Config) (request.Request, error) {
		return request.NewUsersFetch(request.UsersFetchParams{
			GameID:   cfg.GameID,
			Username: c.username,
			UserIDs:  c.ids,
		})
	})
}

type avatarCommand struct {
	baseCommand

	username string
	file     string
}

func (c *avatarCommand) Info() *cmd.Info {
	return &cmd.Info{
		Name:    "avatar",
		Args:    "<username> <file>",
		Purpose: "Download a user's avatar image",
	}
}

func (c *avatarCommand) Init(args []string) error {
	if len(args) < 2 {
		return errors.New("username and file required")
	}
	c.username, c.file = args[0], args[1]
	return cmd.CheckEmpty(args[2:])
}

func (c *avatarCommand) Run(ctx *cmd.Context) error {
	value, err := c.send(ctx, func(cfg Config) (request.Request, error) {
		return request.NewUsersFetch(request.UsersFetchParams{
			GameID:   cfg.GameID,
			Username: c.username,
		})
	})
	if err != nil {
		return errors.Trace(err)
	}
	users := value.(response.UsersValue).Users
	if len(users) == 0 {
		return errors.NotFoundf("user %q", c.username)
	}

	fetcher := api.NewAvatarFetcher(c.apiTransport(), api.DefaultLogger())
	data, err := fetcher.FetchAvatar(context.Background(), users[0].AvatarURL)
	if err != nil {
		return errors.Trace(err)
	}
	if err := os.WriteFile(ctx.AbsPath(c.file), data, 0644); err != nil {
		return errors.Trace(err)
	}
	fmt.Fprintf(ctx.Stdout, "wrote %s to %s\n", humanize.IBytes(uint64(len(data))), c.file)
	return nil
}
