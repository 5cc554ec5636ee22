// Copyright 2026 Canonical Ltd.
// Licensed under the AGPLv3, see LICENCE file for details.

package testing

import (
	"bytes"
	"io"

	gc "gopkg.in/check.v1"

	"github.com/juju/gamejolt/cmd"
)

// Context returns a command context rooted in a fresh temporary directory,
// with empty stdin and buffered stdout and stderr.
func Context(c *gc.C) *cmd.Context {
	return &cmd.Context{
		Dir:    c.MkDir(),
		Stdin:  &bytes.Buffer{},
		Stdout: &bytes.Buffer{},
		Stderr: &bytes.Buffer{},
	}
}

// Stdout returns the buffered stdout of a context made by Context.
func Stdout(ctx *cmd.Context) string {
	return bufferString(ctx.Stdout)
}

// Stderr returns the buffered stderr of a context made by Context.
func Stderr(ctx *cmd.Context) string {
	return bufferString(ctx.Stderr)
}

func bufferString(w io.Writer) string {
	return w.(*bytes.Buffer).String()
}

// HelpText returns a command's formatted help text.
func HelpText(command cmd.Command) string {
	return string(command.Info().Help(cmd.NewFlagSet(command)))
}

// RunCommand parses args on com and runs it in a new context, returning
// the context for inspection of its output.
func RunCommand(c *gc.C, com cmd.Command, args ...string) (*cmd.Context, error) {
	if err := cmd.Parse(com, args); err != nil {
		return nil, err
	}
	ctx := Context(c)
	return ctx, com.Run(ctx)
}

// RunCommandInDir is like RunCommand, running com in ctx.
func RunCommandInDir(ctx *cmd.Context, com cmd.Command, args ...string) error {
	if err := cmd.Parse(com, args); err != nil {
		return err
	}
	return com.Run(ctx)
}
