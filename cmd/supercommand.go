// Copyright 2026 Canonical Ltd.
// Licensed under the AGPLv3, see LICENCE file for details.

package cmd

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/juju/collections/set"
	"github.com/juju/errors"
	"github.com/juju/gnuflag"
	"github.com/juju/loggo/v2"
)

// SuperCommandParams provides a way to have default parameter to the
// NewSuperCommand call.
type SuperCommandParams struct {
	Name    string
	Purpose string
	Doc     string

	// DefaultLoggingConfig is applied before the --logging-config flag.
	DefaultLoggingConfig string
}

// SuperCommand is a Command that selects a subcommand and assumes its
// properties; any command line arguments that were not used in selecting
// the subcommand are passed down to it, and to Run a SuperCommand is to
// run its selected subcommand.
type SuperCommand struct {
	CommandBase

	name    string
	purpose string
	doc     string

	loggingConfig string
	subcmds       map[string]Command
	subcmd        Command
	showHelp      bool
}

// NewSuperCommand creates and initializes a new SuperCommand.
func NewSuperCommand(params SuperCommandParams) *SuperCommand {
	return &SuperCommand{
		name:          params.Name,
		purpose:       params.Purpose,
		doc:           params.Doc,
		loggingConfig: params.DefaultLoggingConfig,
		subcmds:       make(map[string]Command),
	}
}

// Register makes a subcommand available for use on the command line. It
// panics if a subcommand with the same name is already registered.
func (c *SuperCommand) Register(subcmd Command) {
	name := subcmd.Info().Name
	if _, found := c.subcmds[name]; found || name == "help" {
		panic(fmt.Sprintf("command already registered: %q", name))
	}
	c.subcmds[name] = subcmd
}

// Info returns a description of the currently selected subcommand, or of
// the SuperCommand itself if no subcommand has been specified.
func (c *SuperCommand) Info() *Info {
	if c.subcmd != nil {
		info := *c.subcmd.Info()
		info.Name = fmt.Sprintf("%s %s", c.name, info.Name)
		return &info
	}
	return &Info{
		Name:    c.name,
		Args:    "<command> ...",
		Purpose: c.purpose,
		Doc:     strings.TrimSpace(c.doc + "\n\n" + c.describeCommands()),
	}
}

func (c *SuperCommand) describeCommands() string {
	names := set.NewStrings()
	longest := 0
	for name := range c.subcmds {
		names.Add(name)
		if len(name) > longest {
			longest = len(name)
		}
	}
	var buf bytes.Buffer
	buf.WriteString("commands:\n")
	for _, name := range names.SortedValues() {
		fmt.Fprintf(&buf, "    %-*s - %s\n", longest, name, c.subcmds[name].Info().Purpose)
	}
	return buf.String()
}

// AllowInterspersedFlags returns false so that flags following the
// subcommand name are left for the subcommand.
func (c *SuperCommand) AllowInterspersedFlags() bool {
	return false
}

// SetFlags adds the options that apply to all commands, and those of the
// selected subcommand.
func (c *SuperCommand) SetFlags(f *gnuflag.FlagSet) {
	f.StringVar(&c.loggingConfig, "logging-config", c.loggingConfig, "Specify log levels for modules")
	f.BoolVar(&c.showHelp, "h", false, "Show help on a command")
	f.BoolVar(&c.showHelp, "help", false, "")
	if c.subcmd != nil {
		c.subcmd.SetFlags(f)
	}
}

// Init initializes the command for running.
func (c *SuperCommand) Init(args []string) error {
	if len(args) == 0 {
		c.showHelp = true
		return nil
	}
	if args[0] == "help" {
		c.showHelp = true
		if len(args) > 1 {
			return c.selectSubcommand(args[1], nil)
		}
		return nil
	}
	return c.selectSubcommand(args[0], args[1:])
}

func (c *SuperCommand) selectSubcommand(name string, args []string) error {
	subcmd, found := c.subcmds[name]
	if !found {
		return errors.NotFoundf("command %q", name)
	}
	c.subcmd = subcmd
	if c.showHelp {
		return nil
	}
	// Flags after the subcommand name belong to the subcommand, and may
	// be interspersed with its positional arguments.
	f := NewFlagSet(c)
	if err := f.Parse(true, args); err != nil {
		return err
	}
	if c.showHelp {
		return nil
	}
	return c.subcmd.Init(f.Args())
}

// Run executes the subcommand that was selected in Init.
func (c *SuperCommand) Run(ctx *Context) error {
	if c.showHelp {
		info := c.Info()
		_, err := ctx.Stdout.Write(info.Help(NewFlagSet(c)))
		return errors.Trace(err)
	}
	if err := loggo.ConfigureLoggers(c.loggingConfig); err != nil {
		return errors.Annotate(err, "configuring loggers")
	}
	logger.Debugf("running %s", c.Info().Name)
	return c.subcmd.Run(ctx)
}
