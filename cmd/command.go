// Copyright 2026 Canonical Ltd.
// Licensed under the AGPLv3, see LICENCE file for details.

// Package cmd holds a small framework for command line tools built from
// subcommands.
package cmd

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/juju/errors"
	"github.com/juju/gnuflag"
	"github.com/juju/loggo/v2"
)

var logger = loggo.GetLogger("gamejolt.cmd")

// ErrSilent can be returned from Run to signal that Main should exit with
// code 1 without producing error output.
const ErrSilent = errors.ConstError("cmd: error out silently")

// Context represents the run context of a Command. Command implementations
// should interpret file names relative to Dir (see AbsPath), and read from
// and write to the streams it holds rather than the process's own.
type Context struct {
	Dir    string
	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer
}

// DefaultContext returns a Context suitable for use in non-hosted
// command line tools.
func DefaultContext() (*Context, error) {
	dir, err := os.Getwd()
	if err != nil {
		return nil, errors.Trace(err)
	}
	abs, err := filepath.Abs(dir)
	if err != nil {
		return nil, errors.Trace(err)
	}
	return &Context{
		Dir:    abs,
		Stdin:  os.Stdin,
		Stdout: os.Stdout,
		Stderr: os.Stderr,
	}, nil
}

// AbsPath returns an absolute representation of path, with relative paths
// interpreted as relative to ctx.Dir.
func (ctx *Context) AbsPath(path string) string {
	if filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(ctx.Dir, path)
}

// Info holds everything necessary to describe a Command's intent and usage.
type Info struct {
	// Name is the Command's name.
	Name string

	// Args describes the command's expected positional arguments.
	Args string

	// Purpose is a short explanation of the Command's purpose.
	Purpose string

	// Doc is the long documentation for the Command.
	Doc string
}

// Usage combines Name and Args to describe the Command's intended usage.
func (i *Info) Usage() string {
	if i.Args == "" {
		return i.Name
	}
	return fmt.Sprintf("%s [options] %s", i.Name, i.Args)
}

// Help renders i as a help message, including the defaults held by f.
func (i *Info) Help(f *gnuflag.FlagSet) []byte {
	buf := &bytes.Buffer{}
	fmt.Fprintf(buf, "usage: %s\n", i.Usage())
	if i.Purpose != "" {
		fmt.Fprintf(buf, "purpose: %s\n", i.Purpose)
	}
	var options bytes.Buffer
	f.SetOutput(&options)
	f.PrintDefaults()
	if options.Len() > 0 {
		fmt.Fprintf(buf, "\noptions:\n%s", options.String())
	}
	if i.Doc != "" {
		fmt.Fprintf(buf, "\n%s\n", strings.TrimSpace(i.Doc))
	}
	return buf.Bytes()
}

// Command is implemented by types that interpret command-line arguments.
type Command interface {
	// Info returns information about the Command.
	Info() *Info

	// SetFlags adds command specific flags to the flag set.
	SetFlags(f *gnuflag.FlagSet)

	// Init initializes the Command before running, from the positional
	// arguments left after flag parsing.
	Init(args []string) error

	// Run will execute the Command as directed by the options and
	// positional arguments passed to Init.
	Run(ctx *Context) error
}

// CommandBase provides the default implementation for SetFlags and Init.
type CommandBase struct{}

// SetFlags does nothing in the simplest case.
func (c *CommandBase) SetFlags(f *gnuflag.FlagSet) {}

// Init rejects any positional arguments in the simplest case.
func (c *CommandBase) Init(args []string) error {
	return CheckEmpty(args)
}

// NewFlagSet returns a FlagSet initialized for use with c.
func NewFlagSet(c Command) *gnuflag.FlagSet {
	f := gnuflag.NewFlagSet(c.Info().Name, gnuflag.ContinueOnError)
	f.SetOutput(io.Discard)
	c.SetFlags(f)
	return f
}

// Parse parses args on c and initializes it. This must be called before
// c is Run. Options may follow positional arguments unless c reports
// otherwise through an AllowInterspersedFlags method.
func Parse(c Command, args []string) error {
	intersperse := true
	if ic, ok := c.(interface{ AllowInterspersedFlags() bool }); ok {
		intersperse = ic.AllowInterspersedFlags()
	}
	f := NewFlagSet(c)
	if err := f.Parse(intersperse, args); err != nil {
		return err
	}
	return c.Init(f.Args())
}

// CheckEmpty is a utility function that returns an error if args is not
// empty.
func CheckEmpty(args []string) error {
	if len(args) != 0 {
		return errors.Errorf("unrecognized args: %q", args)
	}
	return nil
}

// Main runs the given Command in the supplied Context with the given
// arguments, which should not include the command name. It returns a code
// suitable for passing to os.Exit.
func Main(c Command, ctx *Context, args []string) int {
	if err := Parse(c, args); err != nil {
		if err == gnuflag.ErrHelp {
			_, _ = ctx.Stdout.Write(c.Info().Help(NewFlagSet(c)))
			return 0
		}
		fmt.Fprintf(ctx.Stderr, "ERROR %v\n", err)
		_, _ = ctx.Stderr.Write(c.Info().Help(NewFlagSet(c)))
		return 2
	}
	if err := c.Run(ctx); err != nil {
		if err != ErrSilent {
			logger.Debugf("%s command failed: %s", c.Info().Name, errors.ErrorStack(err))
			fmt.Fprintf(ctx.Stderr, "ERROR %v\n", err)
		}
		return 1
	}
	return 0
}
