// Copyright 2026 Canonical Ltd.
// Licensed under the AGPLv3, see LICENCE file for details.

package cmd_test

import (
	"github.com/juju/loggo/v2"
	"github.com/juju/testing"
	gc "gopkg.in/check.v1"

	"github.com/juju/gamejolt/cmd"
	cmdtesting "github.com/juju/gamejolt/cmd/testing"
)

type SuperCommandSuite struct {
	testing.IsolationSuite
}

var _ = gc.Suite(&SuperCommandSuite{})

func newSuper() *cmd.SuperCommand {
	super := cmd.NewSuperCommand(cmd.SuperCommandParams{
		Name:    "game",
		Purpose: "play the game",
	})
	super.Register(&TestCommand{Name: "verb"})
	super.Register(&TestCommand{Name: "another"})
	return super
}

func (s *SuperCommandSuite) TestDispatch(c *gc.C) {
	ctx := cmdtesting.Context(c)
	code := cmd.Main(newSuper(), ctx, []string{"verb", "--option", "hello"})
	c.Check(code, gc.Equals, 0)
	c.Check(cmdtesting.Stdout(ctx), gc.Equals, "hello\n")
}

func (s *SuperCommandSuite) TestHelpListsCommands(c *gc.C) {
	ctx := cmdtesting.Context(c)
	code := cmd.Main(newSuper(), ctx, []string{"help"})
	c.Check(code, gc.Equals, 0)
	c.Check(cmdtesting.Stdout(ctx), gc.Matches, `(?s)usage: game \[options\] <command> \.\.\.
purpose: play the game
.*commands:
    another - another the game
    verb    - verb the game
`)
}

func (s *SuperCommandSuite) TestNoArgsShowsHelp(c *gc.C) {
	ctx := cmdtesting.Context(c)
	code := cmd.Main(newSuper(), ctx, nil)
	c.Check(code, gc.Equals, 0)
	c.Check(cmdtesting.Stdout(ctx), gc.Matches, `(?s)usage: game .*`)
}

func (s *SuperCommandSuite) TestHelpSubcommand(c *gc.C) {
	ctx := cmdtesting.Context(c)
	code := cmd.Main(newSuper(), ctx, []string{"help", "verb"})
	c.Check(code, gc.Equals, 0)
	c.Check(cmdtesting.Stdout(ctx), gc.Matches, `(?s)usage: game verb \[options\] <something>
purpose: verb the game
.*--option.*`)
}

func (s *SuperCommandSuite) TestUnknownCommand(c *gc.C) {
	ctx := cmdtesting.Context(c)
	code := cmd.Main(newSuper(), ctx, []string{"jump"})
	c.Check(code, gc.Equals, 2)
	c.Check(cmdtesting.Stderr(ctx), gc.Matches, `(?s)ERROR command "jump" not found\n.*`)
}

func (s *SuperCommandSuite) TestRegisterTwicePanics(c *gc.C) {
	super := newSuper()
	c.Assert(func() { super.Register(&TestCommand{Name: "verb"}) }, gc.PanicMatches, `command already registered: "verb"`)
}

func (s *SuperCommandSuite) TestLoggingConfig(c *gc.C) {
	s.AddCleanup(func(*gc.C) { loggo.ResetLogging() })

	ctx := cmdtesting.Context(c)
	code := cmd.Main(newSuper(), ctx, []string{"--logging-config", "gamejolt=TRACE", "verb"})
	c.Check(code, gc.Equals, 0)
	c.Check(loggo.GetLogger("gamejolt").LogLevel(), gc.Equals, loggo.TRACE)
}

func (s *SuperCommandSuite) TestInvalidLoggingConfig(c *gc.C) {
	s.AddCleanup(func(*gc.C) { loggo.ResetLogging() })

	ctx := cmdtesting.Context(c)
	code := cmd.Main(newSuper(), ctx, []string{"--logging-config", "gamejolt=NOPE", "verb"})
	c.Check(code, gc.Equals, 1)
	c.Check(cmdtesting.Stderr(ctx), gc.Matches, "ERROR configuring loggers: .*\n")
}
