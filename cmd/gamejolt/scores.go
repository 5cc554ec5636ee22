// Copyright 2026 Canonical Ltd.
// Licensed under the AGPLv3, see LICENCE file for details.

package main

import (
	"strconv"

	"github.com/juju/errors"
	"github.com/juju/gnuflag"

	"github.com/juju/gamejolt/cmd"
	"github.com/juju/gamejolt/request"
)

type scoresCommand struct {
	baseCommand
	userFlag

	guest      string
	limit      int
	tableID    int
	betterThan optionalInt64
	worseThan  optionalInt64
}

func (c *scoresCommand) Info() *cmd.Info {
	return &cmd.Info{
		Name:    "scores",
		Purpose: "List scores of a table",
		Doc: `
Lists scores, best first. Without --table the game's primary table is used.
--better-than and --worse-than select scores around a sort value and
cannot be combined.
`,
	}
}

func (c *scoresCommand) SetFlags(f *gnuflag.FlagSet) {
	c.baseCommand.SetFlags(f)
	c.addFlag(f)
	f.StringVar(&c.guest, "guest", "", "Only list scores of this guest")
	f.IntVar(&c.limit, "limit", 0, "Maximum number of scores")
	f.IntVar(&c.tableID, "table", 0, "Score table id")
	f.Var(&c.betterThan, "better-than", "Only list scores better than this sort value")
	f.Var(&c.worseThan, "worse-than", "Only list scores worse than this sort value")
}

func (c *scoresCommand) Run(ctx *cmd.Context) error {
	return c.call(ctx, func(cfg Config) (request.Request, error) {
		return request.NewScoresFetch(request.ScoresFetchParams{
			GameID:      cfg.GameID,
			Credentials: c.credentials(cfg),
			Guest:       c.guest,
			Limit:       c.limit,
			TableID:     c.tableID,
			BetterThan:  c.betterThan.value,
			WorseThan:   c.worseThan.value,
		})
	})
}

type addScoreCommand struct {
	baseCommand

	score     string
	sort      int64
	guest     string
	extraData string
	tableID   int
}

func (c *addScoreCommand) Info() *cmd.Info {
	return &cmd.Info{
		Name:    "add-score",
		Args:    "<score> <sort>",
		Purpose: "Add a score to a table",
		Doc: `
Adds a score for the configured player, or for a guest with --guest. The
score is the text shown to players and sort is its numeric value.
`,
	}
}

func (c *addScoreCommand) SetFlags(f *gnuflag.FlagSet) {
	c.baseCommand.SetFlags(f)
	f.StringVar(&c.guest, "guest", "", "Add the score for this guest")
	f.StringVar(&c.extraData, "extra", "", "Extra data stored with the score")
	f.IntVar(&c.tableID, "table", 0, "Score table id")
}

func (c *addScoreCommand) Init(args []string) error {
	if len(args) < 2 {
		return errors.New("score and sort value required")
	}
	c.score = args[0]
	sort, err := strconv.ParseInt(args[1], 10, 64)
	if err != nil {
		return errors.NotValidf("sort value %q", args[1])
	}
	c.sort = sort
	return cmd.CheckEmpty(args[2:])
}

func (c *addScoreCommand) Run(ctx *cmd.Context) error {
	return c.call(ctx, func(cfg Config) (request.Request, error) {
		p := request.ScoresAddParams{
			GameID:    cfg.GameID,
			Guest:     c.guest,
			Score:     c.score,
			Sort:      c.sort,
			ExtraData: c.extraData,
			TableID:   c.tableID,
		}
		if c.guest == "" {
			p.Credentials = cfg.Credentials
		}
		return request.NewScoresAdd(p)
	})
}

type rankCommand struct {
	baseCommand

	sort    int64
	tableID int
}

func (c *rankCommand) Info() *cmd.Info {
	return &cmd.Info{
		Name:    "rank",
		Args:    "<sort>",
		Purpose: "Show the rank of a sort value",
	}
}

func (c *rankCommand) SetFlags(f *gnuflag.FlagSet) {
	c.baseCommand.SetFlags(f)
	f.IntVar(&c.tableID, "table", 0, "Score table id")
}

func (c *rankCommand) Init(args []string) error {
	if len(args) == 0 {
		return errors.New("sort value required")
	}
	sort, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		return errors.NotValidf("sort value %q", args[0])
	}
	c.sort = sort
	return cmd.CheckEmpty(args[1:])
}

func (c *rankCommand) Run(ctx *cmd.Context) error {
	return c.call(ctx, func(cfg Config) (request.Request, error) {
		return request.NewScoresGetRank(request.ScoresGetRankParams{
			GameID:  cfg.GameID,
			Sort:    c.sort,
			TableID: c.tableID,
		})
	})
}

type tablesCommand struct {
	baseCommand
}

func (c *tablesCommand) Info() *cmd.Info {
	return &cmd.Info{
		Name:    "tables",
		Purpose: "List the score tables of the game",
	}
}

func (c *tablesCommand) Run(ctx *cmd.Context) error {
	return c.call(ctx, func(cfg Config) (request.Request, error) {
		return request.NewScoresTables(cfg.GameID)
	})
}
